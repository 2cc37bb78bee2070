package driver

import (
	"context"
	"fmt"
	"strconv"

	"fortio.org/safecast"

	"macroessentials/internal/ast"
	"macroessentials/internal/diag"
	"macroessentials/internal/fix"
	"macroessentials/internal/format"
	"macroessentials/internal/infer"
	"macroessentials/internal/members"
	"macroessentials/internal/parser"
	"macroessentials/internal/source"
	"macroessentials/internal/trace"
)

// MemberReport is the analysis of one binding.
type MemberReport struct {
	Name     string `json:"name" msgpack:"name"`
	Kind     string `json:"kind" msgpack:"kind"`
	Type     string `json:"type,omitempty" msgpack:"type,omitempty"`
	Failure  string `json:"failure,omitempty" msgpack:"failure,omitempty"`
	Explicit bool   `json:"explicit" msgpack:"explicit"`
}

// TypeReport summarises one type declaration. Name is qualified with the
// enclosing types (`Outer.Inner`).
type TypeReport struct {
	Name         string         `json:"name" msgpack:"name"`
	Kind         string         `json:"kind" msgpack:"kind"`
	Line         uint32         `json:"line" msgpack:"line"`
	Macros       []string       `json:"macros" msgpack:"macros"`
	Conformances []string       `json:"conformances" msgpack:"conformances"`
	Members      []MemberReport `json:"members" msgpack:"members"`
}

// FileResult is the outcome of analysing one file.
type FileResult struct {
	Path   string
	FileID source.FileID
	Bag    *diag.Bag
	Types  []TypeReport
	// Builder holds the parsed tree; nil when the result came from the cache.
	Builder *ast.Builder
	ASTFile ast.FileID
	Cached  bool
}

// AnalyzeFile runs the pipeline over a file already loaded into fs: parse,
// walk the members of every type declaration, infer binding types and
// report what cannot be inferred.
func AnalyzeFile(ctx context.Context, fs *source.FileSet, id source.FileID, opts Options) *FileResult {
	file := fs.Get(id)
	span, ctx := trace.Start(ctx, trace.ScopeFile, file.Path)
	defer span.End("")

	res := &FileResult{Path: file.Path, FileID: id}
	key := cacheKey(file, &opts)
	if opts.Cache != nil {
		opts.Events.emit(file.Path, StageCache, StatusWorking)
		if cached, ok := loadCached(opts.Cache, key, id, opts.MaxDiagnostics); ok {
			span.WithExtra("cache", "hit")
			cached.Path = file.Path
			return cached
		}
	}

	bag := diag.NewBag(opts.MaxDiagnostics)
	maxErrors, err := safecast.Conv[uint](max(opts.MaxDiagnostics, 0))
	if err != nil {
		panic(fmt.Errorf("maxDiagnostics overflow: %w", err))
	}

	opts.Events.emit(file.Path, StageParse, StatusWorking)
	parseSpan, _ := trace.Start(ctx, trace.ScopePass, "parse")
	tree := ast.NewBuilder(ast.Hints{}, nil)
	parsed := parser.ParseFile(file, tree, parser.Options{
		Reporter:  diag.BagReporter{Bag: bag},
		MaxErrors: maxErrors,
	})
	parseSpan.End("")
	res.Builder = tree
	res.ASTFile = parsed.File

	opts.Events.emit(file.Path, StageAnalyze, StatusWorking)
	analyzeSpan, actx := trace.Start(ctx, trace.ScopePass, "members")
	a := newAnalyzer(fs, tree, bag, &opts)
	for _, item := range tree.Files.Get(parsed.File).Items {
		a.item(actx, item, "")
	}
	analyzeSpan.WithExtra("types", strconv.Itoa(len(a.types))).End("")

	bag.Sort()
	res.Bag = bag
	res.Types = a.types

	if opts.Cache != nil {
		if err := storeCached(opts.Cache, key, res); err != nil {
			trace.Point(ctx, trace.ScopeFile, "cache.put", err.Error())
		}
	}
	return res
}

type analyzer struct {
	fs    *source.FileSet
	tree  *ast.Builder
	inf   *infer.Inferencer
	fb    *fix.Builder
	bag   *diag.Bag
	opts  *Options
	types []TypeReport
}

func newAnalyzer(fs *source.FileSet, tree *ast.Builder, bag *diag.Bag, opts *Options) *analyzer {
	pr := format.New(tree, fs)
	var inferOpts []infer.Option
	if opts.Constructors != nil {
		inferOpts = append(inferOpts, infer.WithConstructors(opts.Constructors...))
	}
	return &analyzer{
		fs:   fs,
		tree: tree,
		inf:  infer.New(tree, pr, inferOpts...),
		fb:   fix.NewBuilder(opts.session(), tree, pr),
		bag:  bag,
		opts: opts,
	}
}

func (a *analyzer) item(ctx context.Context, id ast.ItemID, outer string) {
	td, ok := a.tree.Items.TypeDecl(id)
	if !ok {
		return
	}
	name := a.tree.Name(td.Name)
	if outer != "" {
		name = outer + "." + name
	}
	span, nctx := trace.Start(ctx, trace.ScopeNode, name)
	a.typeDecl(id, td, name)
	span.End("")
	for _, m := range td.Members {
		a.item(nctx, m, name)
	}
}

type inferred struct {
	member members.Member
	err    error
}

func (a *analyzer) typeDecl(id ast.ItemID, td *ast.TypeDecl, name string) {
	attached := members.AttachedMacros(a.tree, id)
	report := TypeReport{
		Name:         name,
		Kind:         td.Kind.String(),
		Macros:       attached,
		Conformances: members.Conformances(a.tree, id),
	}
	if item := a.tree.Items.Get(id); item != nil {
		start, _ := a.fs.Resolve(item.Span)
		report.Line = start.Line
	}

	var failures []inferred
	report.Members, _ = members.Map(a.tree, id, func(m members.Member) (MemberReport, bool, error) {
		mr := MemberReport{
			Name:     m.Name,
			Kind:     m.Kind.String(),
			Explicit: a.tree.Items.Binding(m.Binding).Type.IsValid(),
		}
		t, err := a.inf.Binding(m.Binding)
		if err != nil {
			mr.Failure = err.Error()
			if m.Kind.IsStored() && !m.Kind.IsStatic() {
				failures = append(failures, inferred{member: m, err: err})
			}
		} else {
			mr.Type = t.String()
		}
		return mr, true, nil
	})
	a.types = append(a.types, report)

	if len(a.opts.Macros) == 0 {
		a.reportFailures(name, failures)
		return
	}
	var first string
	applicable := true
	for _, attachedName := range attached {
		macro, ok := a.configuredMacro(attachedName)
		if !ok {
			continue
		}
		// все неприменимые макросы сообщаются за один проход
		if !a.checkApplicable(id, td, attachedName) {
			applicable = false
			continue
		}
		a.checkConformance(id, name, macro)
		if first == "" {
			first = macro
		}
	}
	if applicable && first != "" {
		a.reportFailures(first+"."+name, failures)
	}
}

// configuredMacro returns the configured spelling matching an attached macro.
func (a *analyzer) configuredMacro(attached string) (string, bool) {
	for _, m := range a.opts.Macros {
		if source.SameIdent(m, attached) {
			return m, true
		}
	}
	return "", false
}

func (a *analyzer) reportFailures(prefix string, failures []inferred) {
	for _, f := range failures {
		a.bag.Add(a.fb.CannotInferBinding(prefix, f.member, f.err))
	}
}

// checkApplicable rejects macros attached to extensions and protocols.
func (a *analyzer) checkApplicable(id ast.ItemID, td *ast.TypeDecl, macro string) bool {
	switch td.Kind {
	case ast.TypeDeclExtension, ast.TypeDeclProtocol:
	default:
		return true
	}
	attr, ok := a.findAttr(id, macro)
	if !ok {
		return false
	}
	a.bag.Add(a.fb.RemovalError(id, attr,
		"`@"+macro+"` cannot be applied to "+td.Kind.String()+" declarations",
		fix.Code(diag.SemaMacroNotApplicable),
		fix.ID(a.fb.Session().Named(macro+".notApplicable."+a.tree.Name(td.Name)))))
	return false
}

func (a *analyzer) checkConformance(id ast.ItemID, name, macro string) {
	proto, ok := a.opts.Requires[macro]
	if !ok || members.Conforms(a.tree, id, proto) {
		return
	}
	highlight := ast.ItemRef(id)
	a.bag.Add(a.fb.ReplacingError(
		"`"+name+"` must conform to `"+proto+"` to use `@"+macro+"`",
		highlight, highlight,
		"Add `"+proto+"` conformance",
		func(b *ast.Builder, old ast.NodeRef) ast.NodeRef {
			return ast.ItemRef(b.WithTypeDecl(ast.ItemID(old.ID), func(d *ast.TypeDecl) {
				d.Inherits = append(d.Inherits, b.NewNamedType(proto))
			}))
		},
		fix.Code(diag.SemaMissingConformance),
		fix.ID(a.fb.Session().Named(macro+".missingConformance."+name)),
	))
}

func (a *analyzer) findAttr(id ast.ItemID, macro string) (ast.AttrID, bool) {
	h, ok := a.tree.Items.Header(id)
	if !ok {
		return ast.NoAttrID, false
	}
	for _, attr := range a.tree.Items.AttrsOf(h.Attrs) {
		if source.SameIdent(a.tree.Name(a.tree.Items.Attr(attr).Name), macro) {
			return attr, true
		}
	}
	return ast.NoAttrID, false
}
