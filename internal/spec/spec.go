// Package spec implements stage J: projecting the reduced, type-checked
// tree into a Spec of Relations and References, suitable for a downstream
// emitter such as an OpenAPI serializer (spec.md §4.J). The serializer
// itself is an external collaborator; this package stops at the Spec value.
package spec

import (
	"strings"

	"github.com/oal-lang/oal/internal/ast"
	"github.com/oal-lang/oal/internal/oalerr"
	"github.com/oal-lang/oal/internal/scope"
	"github.com/oal-lang/oal/internal/traverse"
	"github.com/oal-lang/oal/pkg/module"
)

// Spec is the compiled, language-independent catalogue (spec.md §3). Rels
// and Refs preserve insertion order; the index maps exist only to detect
// duplicates and first-occurrence-wins cheaply.
type Spec struct {
	Rels []Relation
	Refs []Reference

	relIndex map[string]int
	refIndex map[ast.Ident]int
}

func newSpec() *Spec {
	return &Spec{relIndex: map[string]int{}, refIndex: map[ast.Ident]int{}}
}

// Relation is a URI paired with its per-method transfers, keyed by
// lower-case method name (get, put, ...).
type Relation struct {
	Pattern   string
	Uri       Uri
	Transfers map[string]Transfer
}

// Reference is a named, reusable schema surviving from a reference-level
// variable that reduction left untouched.
type Reference struct {
	Name   ast.Ident
	Schema Schema
}

// UriSegment is one path component: a literal, or a variable bound to a
// primitive schema.
type UriSegment struct {
	IsLiteral bool
	Literal   string
	Name      string
	Schema    Schema
}

type Uri struct {
	Segments []UriSegment
	Params   *Schema
	Example  string
}

// Pattern renders the path with literal segments as /<literal> and variable
// segments as /{<name>}, the key Relations are deduplicated by (spec.md
// §4.J, §8's pattern regex invariant).
func (u Uri) Pattern() string {
	if len(u.Segments) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, seg := range u.Segments {
		b.WriteByte('/')
		if seg.IsLiteral {
			b.WriteString(seg.Literal)
		} else {
			b.WriteByte('{')
			b.WriteString(seg.Name)
			b.WriteByte('}')
		}
	}
	return b.String()
}

type Transfer struct {
	Domain *Schema
	Ranges Ranges
	Params *Schema
}

// RangeKey is the (status, media) pair a Content is filed under.
type RangeKey struct {
	Status *int
	Media  *string
}

type RangeEntry struct {
	Key     RangeKey
	Content Content
}

// Ranges preserves insertion order, matching spec.rs's IndexMap.
type Ranges struct {
	entries []RangeEntry
}

func (r *Ranges) insert(key RangeKey, c Content) {
	r.entries = append(r.entries, RangeEntry{Key: key, Content: c})
}

func (r Ranges) Entries() []RangeEntry { return r.entries }

type Content struct {
	Schema  *Schema
	Status  *int
	Media   *string
	Headers *Schema
	Desc    string
}

type Schema struct {
	Expr     SchemaExpr
	Desc     string
	Title    string
	Required bool
}

// SchemaExpr is the projected shape of a schema-tagged expression.
type SchemaExpr interface{ isSchemaExpr() }

type Num struct {
	Minimum, Maximum, MultipleOf *float64
	Example                      string
}
type Int struct {
	Minimum, Maximum, MultipleOf *int64
	Example                      string
}
type Str struct {
	Pattern string
	Enum    []string
	Example string
}
type Bool struct{}

// Rel is a schema that is itself a relation, referenced by pattern.
type Rel struct{ Pattern string }

type UriSchema struct{ Uri Uri }
type Arr struct{ Item *Schema }
type Obj struct{ Props []Property }
type Op struct {
	Op       ast.Operator
	Operands []Schema
}

// Ref is an unresolved reference inside a schema position, e.g. a property
// whose value is `@name`.
type Ref struct{ Name ast.Ident }

func (Num) isSchemaExpr()       {}
func (Int) isSchemaExpr()       {}
func (Str) isSchemaExpr()       {}
func (Bool) isSchemaExpr()      {}
func (Rel) isSchemaExpr()       {}
func (UriSchema) isSchemaExpr() {}
func (Arr) isSchemaExpr()       {}
func (Obj) isSchemaExpr()       {}
func (Op) isSchemaExpr()        {}
func (Ref) isSchemaExpr()       {}

type Property struct {
	Name     ast.Ident
	Schema   Schema
	Desc     string
	Required bool
}

// Export walks an already-reduced, type-checked prog and builds a Spec.
// modules is consulted the same way reduction consulted it, for
// reference-level identifiers resolved across module boundaries.
func Export(prog *ast.Program, modules module.Set) (*Spec, error) {
	s := newSpec()
	env := scope.New(modules)
	var unused struct{}
	err := traverse.Scan(prog, env, &unused, func(_ *struct{}, env *scope.Env, ref traverse.Ref) error {
		switch ref.Kind {
		case traverse.RefResource:
			rel, err := exportRelation(ref.Res.Expr)
			if err != nil {
				return err
			}
			if _, exists := s.relIndex[rel.Pattern]; exists {
				return oalerr.New(oalerr.Conflict, "duplicate resource pattern %s", rel.Pattern).At(ref.Res.Span)
			}
			s.relIndex[rel.Pattern] = len(s.Rels)
			s.Rels = append(s.Rels, rel)

		case traverse.RefExpr:
			v, ok := ref.Node.Expr.(*ast.Variable)
			if !ok || !v.Name.IsReference() {
				return nil
			}
			if _, exists := s.refIndex[v.Name]; exists {
				return nil
			}
			referent, found := env.Lookup(v.Name)
			if !found {
				return oalerr.New(oalerr.NotInScope, "reference not in scope: %s", v.Name).At(ref.Node.Span)
			}
			schema, err := exportSchema(referent)
			if err != nil {
				return err
			}
			s.refIndex[v.Name] = len(s.Refs)
			s.Refs = append(s.Refs, Reference{Name: v.Name, Schema: schema})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func exportRelation(n *ast.Node) (Relation, error) {
	rel, ok := n.Expr.(*ast.Relation)
	if !ok {
		return Relation{}, oalerr.New(oalerr.UnexpectedExpression, "expected relation").At(n.Span)
	}
	uri, err := exportUri(rel.Uri)
	if err != nil {
		return Relation{}, err
	}
	transfers := map[string]Transfer{}
	for _, tn := range rel.Transfers {
		t, ok := tn.Expr.(*ast.Transfer)
		if !ok {
			return Relation{}, oalerr.New(oalerr.UnexpectedExpression, "expected transfer").At(tn.Span)
		}
		transfer, err := exportTransfer(t)
		if err != nil {
			return Relation{}, err
		}
		for _, name := range t.Methods.Names() {
			transfers[name] = transfer
		}
	}
	return Relation{Pattern: uri.Pattern(), Uri: uri, Transfers: transfers}, nil
}

func exportUri(n *ast.Node) (Uri, error) {
	u, ok := n.Expr.(*ast.Uri)
	if !ok {
		return Uri{}, oalerr.New(oalerr.UnexpectedExpression, "expected uri").At(n.Span)
	}
	segs := make([]UriSegment, 0, len(u.Segments))
	for _, seg := range u.Segments {
		if seg.IsLiteral {
			segs = append(segs, UriSegment{IsLiteral: true, Literal: seg.Literal})
			continue
		}
		prop, ok := seg.Variable.Expr.(*ast.Property)
		if !ok {
			return Uri{}, oalerr.New(oalerr.UnexpectedExpression, "expected property").At(seg.Variable.Span)
		}
		schema, err := exportSchema(prop.Value)
		if err != nil {
			return Uri{}, err
		}
		segs = append(segs, UriSegment{Name: string(prop.Name), Schema: schema})
	}
	var params *Schema
	if u.Params != nil {
		sc, err := exportSchema(u.Params)
		if err != nil {
			return Uri{}, err
		}
		params = &sc
	}
	return Uri{Segments: segs, Params: params, Example: get(n.Ann, "example")}, nil
}

func exportTransfer(t *ast.Transfer) (Transfer, error) {
	var domain *Schema
	if t.Domain != nil {
		content, err := exportContent(t.Domain)
		if err != nil {
			return Transfer{}, err
		}
		domain = content.Schema
	}
	var params *Schema
	if t.Params != nil {
		sc, err := exportSchema(t.Params)
		if err != nil {
			return Transfer{}, err
		}
		params = &sc
	}
	var ranges Ranges
	for _, rn := range flattenRanges(t.Ranges) {
		content, err := exportContent(rn)
		if err != nil {
			return Transfer{}, err
		}
		ranges.insert(RangeKey{Status: content.Status, Media: content.Media}, content)
	}
	return Transfer{Domain: domain, Ranges: ranges, Params: params}, nil
}

// flattenRanges descends into any VariadicOp(Range) node `a :: b` produces
// so each leaf Content is projected once, regardless of how deeply `::`
// combinators were chained.
func flattenRanges(nodes []*ast.Node) []*ast.Node {
	var out []*ast.Node
	for _, n := range nodes {
		if vop, ok := n.Expr.(*ast.VariadicOp); ok && vop.Op == ast.OpRange {
			out = append(out, flattenRanges(vop.Operands)...)
			continue
		}
		out = append(out, n)
	}
	return out
}

// exportContent projects a Content node, or a bare schema used directly in
// a range/domain position (inheriting that schema's description). A
// Content whose status was not explicitly given defaults to 204 (spec.md
// §4.J, §8's "every Content with no schema has status 204" — the more
// general no-explicit-status trigger used here also covers that case).
func exportContent(n *ast.Node) (Content, error) {
	c, ok := n.Expr.(*ast.Content)
	if !ok {
		schema, err := exportSchema(n)
		if err != nil {
			return Content{}, err
		}
		status := 204
		return Content{Schema: &schema, Status: &status, Desc: schema.Desc}, nil
	}

	var schema *Schema
	if c.Schema != nil {
		sc, err := exportSchema(c.Schema)
		if err != nil {
			return Content{}, err
		}
		schema = &sc
	}
	var status *int
	if c.Status != nil {
		st, err := exportStatus(c.Status)
		if err != nil {
			return Content{}, err
		}
		status = &st
	}
	var media *string
	if c.Media != nil {
		m, err := exportMedia(c.Media)
		if err != nil {
			return Content{}, err
		}
		media = &m
	}
	var headers *Schema
	if c.Headers != nil {
		h, err := exportSchema(c.Headers)
		if err != nil {
			return Content{}, err
		}
		headers = &h
	}
	if status == nil {
		d := 204
		status = &d
	}
	desc := ""
	if schema != nil {
		desc = schema.Desc
	}
	return Content{Schema: schema, Status: status, Media: media, Headers: headers, Desc: desc}, nil
}

func exportStatus(n *ast.Node) (int, error) {
	lit, ok := n.Expr.(*ast.Literal)
	if !ok || lit.Kind != ast.LitStatus {
		return 0, oalerr.New(oalerr.UnexpectedExpression, "expected status literal").At(n.Span)
	}
	if lit.Status < 100 || lit.Status > 599 {
		return 0, oalerr.New(oalerr.InvalidSyntax, "http status %d out of range 100-599", lit.Status).At(n.Span)
	}
	return lit.Status, nil
}

func exportMedia(n *ast.Node) (string, error) {
	lit, ok := n.Expr.(*ast.Literal)
	if !ok || lit.Kind != ast.LitText {
		return "", oalerr.New(oalerr.UnexpectedExpression, "expected media literal").At(n.Span)
	}
	return lit.Text, nil
}

// exportSchema projects any schema-tagged node, folding its annotations
// into the per-kind fields §4.J names (description, title, required,
// minimum/maximum/multipleOf, pattern, enum, example).
func exportSchema(n *ast.Node) (Schema, error) {
	desc, _ := n.Ann.GetString("description")
	title, _ := n.Ann.GetString("title")
	required, _ := n.Ann.GetBool("required")
	base := Schema{Desc: desc, Title: title, Required: required}

	switch e := n.Expr.(type) {
	case *ast.Primitive:
		switch e.Kind {
		case ast.PrimNumber:
			base.Expr = Num{
				Minimum:    numPtr(n.Ann, "minimum"),
				Maximum:    numPtr(n.Ann, "maximum"),
				MultipleOf: numPtr(n.Ann, "multipleOf"),
				Example:    get(n.Ann, "example"),
			}
		case ast.PrimInteger:
			base.Expr = Int{
				Minimum:    intPtr(n.Ann, "minimum"),
				Maximum:    intPtr(n.Ann, "maximum"),
				MultipleOf: intPtr(n.Ann, "multipleOf"),
				Example:    get(n.Ann, "example"),
			}
		case ast.PrimString:
			enum, _ := n.Ann.GetEnum("enum")
			base.Expr = Str{
				Pattern: get(n.Ann, "pattern"),
				Enum:    enum,
				Example: get(n.Ann, "example"),
			}
		case ast.PrimBoolean:
			base.Expr = Bool{}
		}

	case *ast.Uri:
		u, err := exportUri(n)
		if err != nil {
			return Schema{}, err
		}
		base.Expr = UriSchema{Uri: u}

	case *ast.Array:
		item, err := exportSchema(e.Item)
		if err != nil {
			return Schema{}, err
		}
		base.Expr = Arr{Item: &item}

	case *ast.Object:
		props := make([]Property, 0, len(e.Properties))
		for _, pn := range e.Properties {
			p, ok := pn.Expr.(*ast.Property)
			if !ok {
				return Schema{}, oalerr.New(oalerr.UnexpectedExpression, "expected property").At(pn.Span)
			}
			ps, err := exportSchema(p.Value)
			if err != nil {
				return Schema{}, err
			}
			pdesc, _ := pn.Ann.GetString("description")
			preq, _ := pn.Ann.GetBool("required")
			props = append(props, Property{Name: p.Name, Schema: ps, Desc: pdesc, Required: preq})
		}
		base.Expr = Obj{Props: props}

	case *ast.VariadicOp:
		operands := make([]Schema, 0, len(e.Operands))
		for _, o := range e.Operands {
			os, err := exportSchema(o)
			if err != nil {
				return Schema{}, err
			}
			operands = append(operands, os)
		}
		base.Expr = Op{Op: e.Op, Operands: operands}

	case *ast.Relation:
		rel, err := exportRelation(n)
		if err != nil {
			return Schema{}, err
		}
		base.Expr = Rel{Pattern: rel.Pattern}

	case *ast.Variable:
		if !e.Name.IsReference() {
			return Schema{}, oalerr.New(oalerr.UnexpectedExpression, "expected reference in schema position").At(n.Span)
		}
		base.Expr = Ref{Name: e.Name}

	default:
		return Schema{}, oalerr.New(oalerr.UnexpectedExpression, "node is not a schema").At(n.Span)
	}
	return base, nil
}

func get(ann ast.Annotation, key string) string {
	v, _ := ann.GetString(key)
	return v
}

func numPtr(ann ast.Annotation, key string) *float64 {
	if v, ok := ann.GetNum(key); ok {
		return &v
	}
	return nil
}

func intPtr(ann ast.Annotation, key string) *int64 {
	if v, ok := ann.GetInt(key); ok {
		return &v
	}
	return nil
}
