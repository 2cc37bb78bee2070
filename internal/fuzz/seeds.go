package fuzztests

import (
	"testing"
)

const maxSeedBytes = 64 << 10 // 64 KiB — ограничение для корпуса

var declSeeds = []string{
	"",
	"let a = 1\n",
	"@Model\nstruct User: Codable {\n    let id = UUID()\n    var name = \"\"\n    var count = other\n}\n",
	"final class C {\n    static let shared = C()\n    lazy var cache: [String: Int] = [:]\n    var total: Int { items.count }\n}\n",
	"enum E: Int {\n    case a = 1, b\n    #if DEBUG\n    static var debug = true\n    #endif\n}\n",
	"extension Array where Element: Equatable {\n    func f() {}\n}\n",
	"actor A {\n    var (x, y) = (1, 2.5)\n    var f = { (a: Int) async throws -> Int in a }\n}\n",
	"struct S<T: P> {\n    var a: Int {\n        get { 1 }\n        set(v) { }\n    }\n    subscript(i: Int) -> Int { i }\n}\n",
	"struct Broken {\n    var a = [1, 2\n",
	"}}}{{{",
}

var exprSeeds = []string{
	"1",
	"-2.5e3",
	"\"a\\(b)c\"",
	"[1: \"a\", 2: \"b\"]",
	"[[1], [2, 3]]",
	"(x: 1, y: true)",
	"try? foo()",
	"{ (a: Int) -> Int in a }",
	"UUID()",
	"Set<Int>()",
	"nil",
	"((((1))))",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range declSeeds {
		f.Add(clampSeed([]byte(s)))
	}
}

func addExprSeeds(f *testing.F) {
	for _, s := range exprSeeds {
		f.Add([]byte(s))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
