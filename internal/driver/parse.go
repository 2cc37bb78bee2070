package driver

import (
	"fmt"

	"fortio.org/safecast"

	"macroessentials/internal/ast"
	"macroessentials/internal/diag"
	"macroessentials/internal/format"
	"macroessentials/internal/infer"
	"macroessentials/internal/parser"
	"macroessentials/internal/source"
	"macroessentials/internal/types"
)

// ExprResult is the outcome of inferring a standalone expression.
type ExprResult struct {
	FileSet *source.FileSet
	Builder *ast.Builder
	Expr    ast.ExprID
	// Bag holds syntax errors; Type and Err are meaningful only without them.
	Bag  *diag.Bag
	Type types.Type
	Err  error
}

// InferExpr parses text as one expression and infers its type.
func InferExpr(text string, opts Options) *ExprResult {
	fs := source.NewFileSet()
	id := fs.AddVirtual("<expr>", []byte(text))
	file := fs.Get(id)

	bag := diag.NewBag(opts.MaxDiagnostics)
	maxErrors, err := safecast.Conv[uint](max(opts.MaxDiagnostics, 0))
	if err != nil {
		panic(fmt.Errorf("maxDiagnostics overflow: %w", err))
	}
	tree := ast.NewBuilder(ast.Hints{}, nil)
	expr, _ := parser.ParseExpr(file, tree, parser.Options{
		Reporter:  diag.BagReporter{Bag: bag},
		MaxErrors: maxErrors,
	})
	res := &ExprResult{FileSet: fs, Builder: tree, Expr: expr, Bag: bag}
	if bag.HasErrors() || !expr.IsValid() {
		return res
	}
	var inferOpts []infer.Option
	if opts.Constructors != nil {
		inferOpts = append(inferOpts, infer.WithConstructors(opts.Constructors...))
	}
	res.Type, res.Err = infer.New(tree, format.New(tree, fs), inferOpts...).Expr(expr)
	return res
}
