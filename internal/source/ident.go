package source

import "golang.org/x/text/unicode/norm"

// IdentKey is the comparison form of an identifier: NFC, so `café` with a
// combining accent and with a precomposed letter share one key. Never use it
// for output, the source spelling stays authoritative.
func IdentKey(s string) string {
	if norm.NFC.IsNormalString(s) {
		return s
	}
	return norm.NFC.String(s)
}

// SameIdent reports whether a and b name the same identifier.
func SameIdent(a, b string) bool {
	return a == b || IdentKey(a) == IdentKey(b)
}
