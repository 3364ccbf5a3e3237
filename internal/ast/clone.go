package ast

// Clone deep-copies a node and its entire subtree. The reducer clones a
// referenced declaration's body (or an applied lambda's body) before
// splicing it in, so that two expansion sites never share mutable node
// pointers (spec.md §4.H: "replace the expression with a clone of the node
// returned by lookup(id)").
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	clone := &Node{
		Tag:  n.Tag,
		Span: n.Span,
		Ann:  n.Ann,
	}
	clone.Expr = cloneExpr(n.Expr)
	return clone
}

func cloneExpr(e Expr) Expr {
	switch e := e.(type) {
	case *Literal:
		cp := *e
		return &cp
	case *Primitive:
		cp := *e
		return &cp
	case *Variable:
		cp := *e
		return &cp
	case *Binding:
		cp := *e
		return &cp
	case *Lambda:
		bindings := make([]*Node, len(e.Bindings))
		for i, b := range e.Bindings {
			bindings[i] = b.Clone()
		}
		return &Lambda{Bindings: bindings, Body: e.Body.Clone()}
	case *Application:
		args := make([]*Node, len(e.Args))
		for i, a := range e.Args {
			args[i] = a.Clone()
		}
		return &Application{Name: e.Name, Args: args}
	case *Uri:
		segments := make([]UriSegment, len(e.Segments))
		for i, s := range e.Segments {
			segments[i] = s
			if !s.IsLiteral {
				segments[i].Variable = s.Variable.Clone()
			}
		}
		return &Uri{Segments: segments, Params: e.Params.Clone()}
	case *Array:
		return &Array{Item: e.Item.Clone()}
	case *Property:
		return &Property{Name: e.Name, Value: e.Value.Clone()}
	case *Object:
		props := make([]*Node, len(e.Properties))
		for i, p := range e.Properties {
			props[i] = p.Clone()
		}
		return &Object{Properties: props}
	case *Content:
		return &Content{
			Schema:  e.Schema.Clone(),
			Status:  e.Status.Clone(),
			Media:   e.Media.Clone(),
			Headers: e.Headers.Clone(),
		}
	case *Transfer:
		ranges := make([]*Node, len(e.Ranges))
		for i, r := range e.Ranges {
			ranges[i] = r.Clone()
		}
		return &Transfer{
			Methods: e.Methods,
			Domain:  e.Domain.Clone(),
			Ranges:  ranges,
			Params:  e.Params.Clone(),
		}
	case *Relation:
		xfers := make([]*Node, len(e.Transfers))
		for i, x := range e.Transfers {
			xfers[i] = x.Clone()
		}
		return &Relation{Uri: e.Uri.Clone(), Transfers: xfers}
	case *VariadicOp:
		operands := make([]*Node, len(e.Operands))
		for i, o := range e.Operands {
			operands[i] = o.Clone()
		}
		return &VariadicOp{Op: e.Op, Operands: operands}
	default:
		return e
	}
}
