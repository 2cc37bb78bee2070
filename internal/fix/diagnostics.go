package fix

import (
	"unicode"
	"unicode/utf8"

	"macroessentials/internal/ast"
	"macroessentials/internal/diag"
	"macroessentials/internal/format"
	"macroessentials/internal/members"
)

// Builder produces macro diagnostics anchored to nodes of one tree. Fix-its
// are built from record-update copies allocated in the same tree; the nodes
// the caller passes in are never modified.
type Builder struct {
	session *diag.Session
	tree    *ast.Builder
	printer *format.Printer
}

func NewBuilder(session *diag.Session, tree *ast.Builder, printer *format.Printer) *Builder {
	if session == nil {
		session = diag.NewSession("")
	}
	return &Builder{session: session, tree: tree, printer: printer}
}

func (fb *Builder) Session() *diag.Session {
	return fb.session
}

type settings struct {
	id       diag.MessageID
	code     diag.Code
	severity diag.Severity
}

// DiagOption tunes a diagnostic produced by Builder.
type DiagOption func(*settings)

// ID uses a caller-chosen message id instead of the next session id.
func ID(id diag.MessageID) DiagOption {
	return func(s *settings) { s.id = id }
}

func Code(code diag.Code) DiagOption {
	return func(s *settings) { s.code = code }
}

func Severity(sev diag.Severity) DiagOption {
	return func(s *settings) { s.severity = sev }
}

func (fb *Builder) settings(opts []DiagOption) settings {
	s := settings{code: diag.SemaMacroMisuse, severity: diag.SevError}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	if s.id.IsZero() {
		s.id = fb.session.Next()
	}
	return s
}

func (fb *Builder) anchor(ref ast.NodeRef) diag.Anchor {
	return diag.Anchor{Kind: ref.Kind.String(), ID: ref.ID, Span: fb.tree.Span(ref)}
}

func (fb *Builder) base(msg string, highlight ast.NodeRef, s settings) diag.Diagnostic {
	return diag.New(s.severity, s.code, fb.tree.Span(highlight), msg).
		WithNode(fb.anchor(highlight)).
		WithMessageID(s.id)
}

// Error builds a diagnostic that only highlights a node.
func (fb *Builder) Error(msg string, highlight ast.NodeRef, opts ...DiagOption) diag.Diagnostic {
	return fb.base(msg, highlight, fb.settings(opts))
}

// EditFunc returns a replacement for old, built with the record-update
// helpers of ast.Builder. An invalid ref means there is nothing to suggest.
type EditFunc func(b *ast.Builder, old ast.NodeRef) ast.NodeRef

// ReplacingError builds a diagnostic with a fix-it replacing old by the node
// edit returns. The fix keeps both node references and carries the text edit
// turning the rendered old node into the rendered new one.
func (fb *Builder) ReplacingError(msg string, highlight, old ast.NodeRef, fixMsg string, edit EditFunc, opts ...DiagOption) diag.Diagnostic {
	s := fb.settings(opts)
	d := fb.base(msg, highlight, s)
	if edit == nil {
		return d
	}
	repl := edit(fb.tree, old)
	if !repl.IsValid() {
		return d
	}
	return d.WithFixSuggestion(fb.replacement(s.id, fixMsg, old, repl))
}

func (fb *Builder) replacement(id diag.MessageID, title string, old, repl ast.NodeRef) diag.Fix {
	oldText := fb.printer.Node(old)
	newText := fb.printer.Node(repl)
	opts := []Option{WithID(id.String())}
	if hasPlaceholder(newText) {
		opts = append(opts, WithApplicability(diag.FixApplicabilityManualReview))
	}
	f := Rewrite(title, fb.tree.Span(old), oldText, newText, opts...)
	f.MessageID = id
	f.OldNode = fb.anchor(old)
	f.NewNode = fb.anchor(repl)
	return f
}

// RemovalError reports an attribute that has to go. The attribute is looked
// up in decl's attribute list by its rendered text; when found, the fix-it
// removes it and hands its trailing separator to the attribute before it.
// Otherwise the diagnostic only highlights attr.
func (fb *Builder) RemovalError(decl ast.ItemID, attr ast.AttrID, msg string, opts ...DiagOption) diag.Diagnostic {
	highlight := ast.AttrRef(attr)
	h, ok := fb.tree.Items.Header(decl)
	if !ok || !h.Attrs.IsValid() {
		return fb.Error(msg, highlight, opts...)
	}
	want := fb.printer.Attr(attr)
	idx := -1
	for i, a := range fb.tree.Items.AttrsOf(h.Attrs) {
		if fb.printer.Attr(a) == want {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fb.Error(msg, highlight, opts...)
	}
	name := fb.tree.Name(fb.tree.Items.Attr(attr).Name)
	list := h.Attrs
	return fb.ReplacingError(msg, highlight, ast.AttrListRef(list), "Remove `"+name+"`",
		func(b *ast.Builder, _ ast.NodeRef) ast.NodeRef {
			return ast.AttrListRef(b.WithoutAttr(list, idx))
		}, opts...)
}

// CannotInferBinding is the diagnostic for a member whose type could not be
// inferred. The fix-it annotates the declaration's last binding with a type
// placeholder, or with the callee name when the initializer calls an
// upper-case function (`let id = Identifier()`).
func (fb *Builder) CannotInferBinding(macro string, m members.Member, cause error) diag.Diagnostic {
	idName := "cannotInferType." + m.Name
	if macro != "" {
		idName = macro + "." + idName
	}
	id := fb.session.Named(idName)

	highlight := ast.ItemRef(m.Decl)
	d := fb.ReplacingError(
		"Type of `"+m.Name+"` cannot be inferred, please declare explicitly",
		highlight, highlight,
		"Declare Type for `"+m.Name+"`",
		func(b *ast.Builder, old ast.NodeRef) ast.NodeRef {
			return ast.ItemRef(fb.annotateLast(ast.ItemID(old.ID)))
		},
		ID(id), Code(diag.SemaCannotInferType),
	)
	if cause != nil {
		d = d.WithNodeNote(fb.anchor(ast.BindingRef(m.Binding)), cause.Error())
	}
	return d
}

func (fb *Builder) annotateLast(decl ast.ItemID) ast.ItemID {
	v, ok := fb.tree.Items.Var(decl)
	if !ok {
		return ast.NoItemID
	}
	last, ok := v.LastBinding()
	if !ok {
		return ast.NoItemID
	}
	typ := fb.tree.NewPlaceholderType("type")
	if name := fb.upperCallee(fb.tree.Items.Binding(last).Init); name != "" {
		typ = fb.tree.NewNamedType(name)
	}
	nb := fb.tree.WithBinding(last, func(bd *ast.Binding) {
		bd.Type = typ
	})
	return fb.tree.WithVar(decl, func(d *ast.VarDecl) {
		d.Bindings[len(d.Bindings)-1] = nb
	})
}

// upperCallee returns the callee of `Name(...)` when Name starts upper-case.
func (fb *Builder) upperCallee(init ast.ExprID) string {
	call, ok := fb.tree.Exprs.Call(init)
	if !ok || fb.tree.Exprs.Get(init).Kind != ast.ExprCall {
		return ""
	}
	ident, ok := fb.tree.Exprs.Ident(call.Callee)
	if !ok {
		return ""
	}
	name := fb.tree.Name(ident.Name)
	if r, _ := utf8.DecodeRuneInString(name); unicode.IsUpper(r) {
		return name
	}
	return ""
}
