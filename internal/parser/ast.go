// # internal/parser/ast.go
package parser

import "strings"

// Module is the parsed form of one stub file. Name is the fully qualified
// dotted module name derived from the file's location in its package tree.
type Module struct {
	Name    string
	Path    string
	Package bool // built from an __init__.pyi
	Body    []Stmt
	Scope   *Scope
}

// ShortName is the last dotted segment, the prefix under which the module's
// classes are addressed by user code (e.g. "QtWidgets" for
// "PySide6.QtWidgets").
func (m *Module) ShortName() string {
	parts := strings.Split(m.Name, ".")
	return parts[len(parts)-1]
}

// RelativeToAbsolute resolves a relative import against this module's own
// dotted path. level is the number of leading dots; modname may be empty
// (`from . import x`).
func (m *Module) RelativeToAbsolute(modname string, level int) string {
	parts := strings.Split(m.Name, ".")

	var pkg string
	switch {
	case level > 0:
		if m.Package {
			level--
		}
		if level > len(parts)-1 {
			level = len(parts) - 1
		}
		pkg = strings.Join(parts[:len(parts)-level], ".")
	case m.Package:
		pkg = m.Name
	default:
		pkg = strings.Join(parts[:len(parts)-1], ".")
	}

	if pkg == "" {
		return modname
	}
	if modname == "" {
		return pkg
	}
	return pkg + "." + modname
}

type Stmt interface {
	stmt()
}

type ImportName struct {
	Name  string
	Alias string
}

// Import is a plain `import a.b [as c]` statement.
type Import struct {
	Names []ImportName
}

// ImportFrom is a `from x import y [as z]` statement. Level counts the
// leading dots of a relative import.
type ImportFrom struct {
	Module string
	Level  int
	Names  []ImportName
}

// Class is a class definition together with the scope its body introduces.
// QualName is the defining module plus any enclosing classes plus the name.
type Class struct {
	Name     string
	QualName string
	Bases    []Expr
	Body     []Stmt
	Scope    *Scope
}

// AnnAssign is an annotated assignment (`NAME: type [= value]`). Inside an
// enum class body these are the member definitions.
type AnnAssign struct {
	Target     string
	TargetAttr bool // target was an attribute access, not a plain name
	Annotation Expr
}

// Assign is a plain single-name assignment. Assignments with attribute,
// subscript, or multiple targets do not produce statements or bindings.
type Assign struct {
	Target string
}

func (*Import) stmt()     {}
func (*ImportFrom) stmt() {}
func (*Class) stmt()      {}
func (*AnnAssign) stmt()  {}
func (*Assign) stmt()     {}

// Expr is the closed set of expression shapes the resolver understands.
// Every expression knows its source text and the scope it appeared in.
type Expr interface {
	Text() string
	Scope() *Scope
	expr()
}

type exprBase struct {
	text  string
	scope *Scope
}

func (e exprBase) Text() string  { return e.text }
func (e exprBase) Scope() *Scope { return e.scope }
func (exprBase) expr()           {}

// NameExpr is a bare identifier.
type NameExpr struct {
	exprBase
	Ident string
}

// AttributeExpr is a dotted access like `enum.Enum`.
type AttributeExpr struct {
	exprBase
}

// SubscriptExpr is `Container[arg, ...]`.
type SubscriptExpr struct {
	exprBase
	Value Expr
	Args  []Expr
}

type TupleExpr struct {
	exprBase
	Elts []Expr
}

type ListExpr struct {
	exprBase
	Elts []Expr
}

// BinOpExpr is a binary expression; only the `|` type union is resolved,
// anything else falls back to source text.
type BinOpExpr struct {
	exprBase
	Op    string
	Left  Expr
	Right Expr
}

// ConstExpr is a literal. Value carries the unquoted string for string
// literals and the source text otherwise.
type ConstExpr struct {
	exprBase
	Value string
}

// CallExpr is a call; its arguments are collapsed to `()` after resolution.
type CallExpr struct {
	exprBase
}

// RawExpr is the fallback for anything the resolver does not model.
type RawExpr struct {
	exprBase
}
