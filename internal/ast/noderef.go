package ast

import (
	"fmt"

	"macroessentials/internal/source"
)

// NodeKind says which arena a NodeRef points into.
type NodeKind uint8

const (
	NodeNone NodeKind = iota
	NodeItem
	NodeBinding
	NodeAttrList
	NodeAttr
	NodeExpr
	NodeType
	NodeStmt
	NodeAccessorBlock
)

var nodeKindNames = [...]string{
	NodeNone:          "none",
	NodeItem:          "item",
	NodeBinding:       "binding",
	NodeAttrList:      "attributes",
	NodeAttr:          "attribute",
	NodeExpr:          "expr",
	NodeType:          "type",
	NodeStmt:          "stmt",
	NodeAccessorBlock: "accessors",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return fmt.Sprintf("NodeKind(%d)", k)
}

// NodeRef is a typed handle to any node of one Builder.
type NodeRef struct {
	Kind NodeKind
	ID   uint32
}

func (r NodeRef) IsValid() bool { return r.Kind != NodeNone && r.ID != 0 }

func (r NodeRef) String() string {
	return fmt.Sprintf("%s#%d", r.Kind, r.ID)
}

func ItemRef(id ItemID) NodeRef         { return NodeRef{Kind: NodeItem, ID: uint32(id)} }
func BindingRef(id BindingID) NodeRef   { return NodeRef{Kind: NodeBinding, ID: uint32(id)} }
func AttrListRef(id AttrListID) NodeRef { return NodeRef{Kind: NodeAttrList, ID: uint32(id)} }
func AttrRef(id AttrID) NodeRef         { return NodeRef{Kind: NodeAttr, ID: uint32(id)} }
func ExprRef(id ExprID) NodeRef         { return NodeRef{Kind: NodeExpr, ID: uint32(id)} }
func TypeRef(id TypeID) NodeRef         { return NodeRef{Kind: NodeType, ID: uint32(id)} }
func StmtRef(id StmtID) NodeRef         { return NodeRef{Kind: NodeStmt, ID: uint32(id)} }
func AccessorsRef(id AccessorBlockID) NodeRef {
	return NodeRef{Kind: NodeAccessorBlock, ID: uint32(id)}
}

// Span returns the source span of the referenced node. Synthetic nodes report
// the span of the node they were copied from; freshly created ones an empty span.
func (b *Builder) Span(ref NodeRef) source.Span {
	switch ref.Kind {
	case NodeItem:
		if it := b.Items.Get(ItemID(ref.ID)); it != nil {
			return it.Span
		}
	case NodeBinding:
		if bd := b.Items.Binding(BindingID(ref.ID)); bd != nil {
			return bd.Span
		}
	case NodeAttrList:
		if l := b.Items.AttrList(AttrListID(ref.ID)); l != nil {
			return l.Span
		}
	case NodeAttr:
		if a := b.Items.Attr(AttrID(ref.ID)); a != nil {
			return a.Span
		}
	case NodeExpr:
		if e := b.Exprs.Get(ExprID(ref.ID)); e != nil {
			return e.Span
		}
	case NodeType:
		if t := b.Types.Get(TypeID(ref.ID)); t != nil {
			return t.Span
		}
	case NodeStmt:
		if s := b.Stmts.Get(StmtID(ref.ID)); s != nil {
			return s.Span
		}
	case NodeAccessorBlock:
		if blk := b.Items.AccessorBlock(AccessorBlockID(ref.ID)); blk != nil {
			return blk.Span
		}
	}
	return source.Span{}
}

// IsSynthetic reports whether ref was produced by an edit rather than the parser.
func (b *Builder) IsSynthetic(ref NodeRef) bool {
	switch ref.Kind {
	case NodeItem:
		if it := b.Items.Get(ItemID(ref.ID)); it != nil {
			return it.Synthetic
		}
	case NodeBinding:
		if bd := b.Items.Binding(BindingID(ref.ID)); bd != nil {
			return bd.Synthetic
		}
	case NodeAttrList:
		if l := b.Items.AttrList(AttrListID(ref.ID)); l != nil {
			return l.Synthetic
		}
	case NodeAttr:
		if a := b.Items.Attr(AttrID(ref.ID)); a != nil {
			return a.Synthetic
		}
	case NodeExpr:
		if e := b.Exprs.Get(ExprID(ref.ID)); e != nil {
			return e.Synthetic
		}
	case NodeType:
		if t := b.Types.Get(TypeID(ref.ID)); t != nil {
			return t.Synthetic
		}
	}
	return false
}
