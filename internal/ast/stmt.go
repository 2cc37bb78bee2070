package ast

import "macroessentials/internal/source"

type StmtKind uint8

const (
	// StmtExpr is a bare expression statement.
	StmtExpr StmtKind = iota
	StmtReturn
	// StmtDecl is a local declaration (`let`, `var`, nested func...).
	StmtDecl
	// StmtOther covers control flow the analysis never looks into (if, for, guard...).
	StmtOther
)

func (k StmtKind) String() string {
	switch k {
	case StmtExpr:
		return "expr"
	case StmtReturn:
		return "return"
	case StmtDecl:
		return "decl"
	default:
		return "other"
	}
}

type Stmt struct {
	Kind StmtKind
	Span source.Span
	Expr ExprID // StmtExpr, StmtReturn (может быть NoExprID)
	Item ItemID // StmtDecl
}

type Stmts struct {
	Arena *Arena[Stmt]
}

func NewStmts(capHint uint) *Stmts {
	return &Stmts{Arena: NewArena[Stmt](capHint)}
}

func (s *Stmts) New(kind StmtKind, sp source.Span, expr ExprID, item ItemID) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{Kind: kind, Span: sp, Expr: expr, Item: item}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}
