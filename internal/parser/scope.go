// # internal/parser/scope.go
package parser

// Binding is anything a name can be bound to in a scope: an import, a class
// definition, or a plain assignment.
type Binding interface {
	binding()
}

func (*Import) binding()        {}
func (*ImportFrom) binding()    {}
func (*Class) binding()         {}
func (*AssignBinding) binding() {}

// AssignBinding records a plain name assignment and the scope it happened in.
type AssignBinding struct {
	Name  string
	Scope *Scope
}

// Scope is the binding table of one namespace (module or class body). It is
// built once during parsing and never mutated afterwards.
type Scope struct {
	Parent   *Scope
	QualName string
	Module   *Module

	bindings map[string][]Binding
}

func NewScope(parent *Scope, qualName string, module *Module) *Scope {
	return &Scope{
		Parent:   parent,
		QualName: qualName,
		Module:   module,
		bindings: make(map[string][]Binding),
	}
}

func (s *Scope) Add(name string, b Binding) {
	s.bindings[name] = append(s.bindings[name], b)
}

// Lookup returns the bindings for a name from the nearest enclosing scope
// that defines it, in definition order.
func (s *Scope) Lookup(name string) []Binding {
	if bs, ok := s.bindings[name]; ok {
		return bs
	}
	if s.Parent != nil {
		return s.Parent.Lookup(name)
	}
	return nil
}
