package ast

// Node is the single concrete node type used throughout the pipeline. The
// original model carries a generic payload per pass (spec.md §4.A); per the
// design note in spec.md §9 ("the target may use a single concrete
// Node{expr, tag?, span?, ann?}"), we collapse that into one mutable struct
// shared by every stage.
type Node struct {
	Expr Expr
	Tag  Tag
	Span *Span
	Ann  Annotation
}

// NewNode wraps e with no tag/span/annotation yet attached.
func NewNode(e Expr) *Node {
	return &Node{Expr: e}
}

// WithSpan attaches a span and returns the node, for fluent construction in
// tests and in the (external) parser's tree-building.
func (n *Node) WithSpan(s *Span) *Node {
	n.Span = s
	return n
}

// WithAnn attaches an annotation and returns the node.
func (n *Node) WithAnn(a Annotation) *Node {
	n.Ann = a
	return n
}

// Expr is the base interface implemented by every expression variant in
// spec.md §3. Children exposes the node's immediate expression children in
// their fixed declared order; this order is the sole source of determinism
// for tag numbering, unification order and spec insertion order (spec.md
// §4.A, §5).
type Expr interface {
	exprNode()
	Children() []*Node
}
