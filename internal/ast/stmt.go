package ast

// Statement is the base interface for the four top-level forms (spec.md
// §3: "Declaration | Resource | Annotation | Import").
type Statement interface {
	stmtNode()
}

// Declaration binds Name to Expr. A lambda declaration (`let f x = ...`) is
// sugar, resolved by the (external) parser into Declaration{Name: "f", Expr:
// a *Lambda node} — the compiler never sees the sugared form.
type Declaration struct {
	Name Ident
	Expr *Node
	Span *Span
	Ann  Annotation
}

func (*Declaration) stmtNode() {}

// Resource declares one exposed relation.
type Resource struct {
	Expr *Node
	Span *Span
	Ann  Annotation
}

func (*Resource) stmtNode() {}

// AnnotationStmt is a standalone doc-comment line not attached to a
// following declaration (e.g. a module-level banner comment).
type AnnotationStmt struct {
	Text string
	Span *Span
}

func (*AnnotationStmt) stmtNode() {}

// Import names a module to load, by its opaque locator string (spec.md §6).
type Import struct {
	ModulePath string
	Span       *Span
}

func (*Import) stmtNode() {}

// Program is an ordered list of statements — one parsed source file.
type Program struct {
	Statements []Statement
}
