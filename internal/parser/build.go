// # internal/parser/build.go
package parser

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// builder converts a tree-sitter concrete syntax tree into the typed module
// tree, filling each scope's binding table as it goes.
type builder struct {
	source []byte
	module *Module
}

func (b *builder) text(node *sitter.Node) string {
	return string(b.source[node.StartByte():node.EndByte()])
}

func (b *builder) buildModule(root *sitter.Node, name string, isPackage bool, path string) *Module {
	m := &Module{
		Name:    name,
		Path:    path,
		Package: isPackage,
	}
	b.module = m
	m.Scope = NewScope(nil, name, m)
	m.Body = b.buildBlock(root, m.Scope, name)
	return m
}

func (b *builder) buildBlock(node *sitter.Node, scope *Scope, qualPrefix string) []Stmt {
	var stmts []Stmt
	for i := uint(0); i < node.NamedChildCount(); i++ {
		if stmt := b.buildStmt(node.NamedChild(i), scope, qualPrefix); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

func (b *builder) buildStmt(node *sitter.Node, scope *Scope, qualPrefix string) Stmt {
	switch node.Kind() {
	case "import_statement":
		return b.buildImport(node, scope)
	case "import_from_statement", "future_import_statement":
		return b.buildImportFrom(node, scope)
	case "class_definition":
		return b.buildClass(node, scope, qualPrefix)
	case "decorated_definition":
		if def := node.ChildByFieldName("definition"); def != nil && def.Kind() == "class_definition" {
			return b.buildClass(def, scope, qualPrefix)
		}
	case "expression_statement":
		if inner := node.NamedChild(0); inner != nil && inner.Kind() == "assignment" {
			return b.buildAssignment(inner, scope)
		}
	}
	return nil
}

func (b *builder) buildImport(node *sitter.Node, scope *Scope) Stmt {
	imp := &Import{}

	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		switch child.Kind() {
		case "dotted_name", "identifier":
			imp.Names = append(imp.Names, ImportName{Name: b.text(child)})
		case "aliased_import":
			imp.Names = append(imp.Names, b.buildAliasedImport(child))
		}
	}

	// `import a.b` binds "a"; `import a.b as c` binds "c".
	for _, in := range imp.Names {
		symbol := in.Alias
		if symbol == "" {
			symbol = strings.SplitN(in.Name, ".", 2)[0]
		}
		scope.Add(symbol, imp)
	}

	return imp
}

func (b *builder) buildImportFrom(node *sitter.Node, scope *Scope) Stmt {
	imp := &ImportFrom{}

	foundImport := false
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.Kind() == "import" {
			foundImport = true
			continue
		}

		if !foundImport {
			switch child.Kind() {
			case "relative_import":
				text := b.text(child)
				trimmed := strings.TrimLeft(text, ".")
				imp.Level = len(text) - len(trimmed)
				imp.Module = trimmed
			case "dotted_name", "identifier":
				imp.Module = b.text(child)
			}
			continue
		}

		switch child.Kind() {
		case "dotted_name", "identifier":
			imp.Names = append(imp.Names, ImportName{Name: b.text(child)})
		case "aliased_import":
			imp.Names = append(imp.Names, b.buildAliasedImport(child))
		}
	}

	for _, in := range imp.Names {
		symbol := in.Alias
		if symbol == "" {
			symbol = in.Name
		}
		scope.Add(symbol, imp)
	}

	return imp
}

func (b *builder) buildAliasedImport(node *sitter.Node) ImportName {
	in := ImportName{}
	if name := node.ChildByFieldName("name"); name != nil {
		in.Name = b.text(name)
	}
	if alias := node.ChildByFieldName("alias"); alias != nil {
		in.Alias = b.text(alias)
	}
	return in
}

func (b *builder) buildClass(node *sitter.Node, scope *Scope, qualPrefix string) Stmt {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}

	cls := &Class{Name: b.text(nameNode)}
	cls.QualName = qualPrefix + "." + cls.Name
	cls.Scope = NewScope(scope, cls.QualName, b.module)

	// Bases are expressions in the enclosing scope. Keyword arguments
	// (metaclass=...) are not bases.
	if supers := node.ChildByFieldName("superclasses"); supers != nil {
		for i := uint(0); i < supers.NamedChildCount(); i++ {
			arg := supers.NamedChild(i)
			if arg.Kind() == "keyword_argument" || arg.Kind() == "comment" {
				continue
			}
			cls.Bases = append(cls.Bases, b.buildExpr(arg, scope))
		}
	}

	if body := node.ChildByFieldName("body"); body != nil {
		cls.Body = b.buildBlock(body, cls.Scope, cls.QualName)
	}

	scope.Add(cls.Name, cls)
	return cls
}

func (b *builder) buildAssignment(node *sitter.Node, scope *Scope) Stmt {
	left := node.ChildByFieldName("left")
	if left == nil {
		return nil
	}

	if typ := node.ChildByFieldName("type"); typ != nil {
		ann := &AnnAssign{}

		annExpr := typ
		if typ.Kind() == "type" && typ.NamedChildCount() > 0 {
			annExpr = typ.NamedChild(0)
		}
		ann.Annotation = b.buildExpr(annExpr, scope)

		switch left.Kind() {
		case "identifier":
			ann.Target = b.text(left)
			scope.Add(ann.Target, &AssignBinding{Name: ann.Target, Scope: scope})
		case "attribute":
			ann.TargetAttr = true
			if attr := left.ChildByFieldName("attribute"); attr != nil {
				ann.Target = b.text(attr)
			}
		default:
			return nil
		}
		return ann
	}

	// Plain assignment: only a single plain-name target binds; attribute,
	// subscript, and tuple targets are not bindings we track.
	if left.Kind() != "identifier" {
		return nil
	}

	name := b.text(left)
	scope.Add(name, &AssignBinding{Name: name, Scope: scope})
	return &Assign{Target: name}
}

func (b *builder) buildExpr(node *sitter.Node, scope *Scope) Expr {
	base := exprBase{text: b.text(node), scope: scope}

	switch node.Kind() {
	case "identifier":
		return &NameExpr{exprBase: base, Ident: base.text}
	case "attribute":
		return &AttributeExpr{exprBase: base}
	case "subscript":
		sub := &SubscriptExpr{exprBase: base}
		start := uint(0)
		if value := node.ChildByFieldName("value"); value != nil {
			sub.Value = b.buildExpr(value, scope)
			start = 1
		}
		for i := start; i < node.NamedChildCount(); i++ {
			sub.Args = append(sub.Args, b.buildExpr(node.NamedChild(i), scope))
		}
		return sub
	case "tuple":
		tup := &TupleExpr{exprBase: base}
		for i := uint(0); i < node.NamedChildCount(); i++ {
			tup.Elts = append(tup.Elts, b.buildExpr(node.NamedChild(i), scope))
		}
		return tup
	case "list":
		lst := &ListExpr{exprBase: base}
		for i := uint(0); i < node.NamedChildCount(); i++ {
			lst.Elts = append(lst.Elts, b.buildExpr(node.NamedChild(i), scope))
		}
		return lst
	case "binary_operator":
		op := node.ChildByFieldName("operator")
		left := node.ChildByFieldName("left")
		right := node.ChildByFieldName("right")
		if op != nil && left != nil && right != nil {
			return &BinOpExpr{
				exprBase: base,
				Op:       b.text(op),
				Left:     b.buildExpr(left, scope),
				Right:    b.buildExpr(right, scope),
			}
		}
		return &RawExpr{exprBase: base}
	case "string":
		return &ConstExpr{exprBase: base, Value: trimQuotes(base.text)}
	case "integer", "float", "true", "false", "none":
		return &ConstExpr{exprBase: base, Value: base.text}
	case "call":
		return &CallExpr{exprBase: base}
	case "parenthesized_expression":
		if inner := node.NamedChild(0); inner != nil {
			return b.buildExpr(inner, scope)
		}
		return &RawExpr{exprBase: base}
	default:
		return &RawExpr{exprBase: base}
	}
}

func trimQuotes(s string) string {
	for _, q := range []string{`"""`, `'''`, `"`, `'`} {
		if len(s) >= 2*len(q) && strings.HasPrefix(s, q) && strings.HasSuffix(s, q) {
			return s[len(q) : len(s)-len(q)]
		}
	}
	return s
}
