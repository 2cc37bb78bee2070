package parser

import (
	"testing"

	"macroessentials/internal/testkit"
)

func TestSpanInvariants(t *testing.T) {
	sources := map[string]string{
		"empty":     "",
		"var":       "let a = 1, b: Int = 2\n",
		"attrs":     "@Model @Sendable\npublic final class User: Codable {\n    @Published var name = \"\"\n}\n",
		"nested":    "struct Outer {\n    let a = [1: \"x\"]\n    enum Inner: Int {\n        case one, two\n        static var all = [Inner]()\n    }\n}\n",
		"computed":  "struct S {\n    var x: Int {\n        get { 1 }\n        set { }\n    }\n    func f() -> Int { return 1 }\n}\n",
		"extension": "extension Array where Element: Equatable {\n    var first2 = 0\n}\n",
	}
	for name, src := range sources {
		t.Run(name, func(t *testing.T) {
			p := parseClean(t, src)
			file := p.fs.Get(0)
			if err := testkit.CheckSpanInvariants(p.b, p.fileID, file); err != nil {
				t.Fatalf("span invariants: %v", err)
			}
		})
	}
}
