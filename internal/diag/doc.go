// Package diag holds the diagnostic data model shared by the lexer, the parser
// and the macro analysis passes.
//
// A Diagnostic is anchored twice: Primary is the byte span used for rendering,
// Node names the syntax node it was built from (kind, arena id, span) so that
// macro hosts can map it back onto their tree. Notes and fix-its carry their own
// anchors. One MessageID is shared by a diagnostic, its notes and its fix-its.
//
// Fix-its are fully materialised: every Fix lists TextEdits with the expected
// old text as a guard, so the fix engine can apply them without re-running
// analysis.
package diag
