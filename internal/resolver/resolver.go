// # internal/resolver/resolver.go
package resolver

import (
	"regexp"
	"strings"

	"enumsed/internal/parser"
)

var callArgs = regexp.MustCompile(`\(.*\)`)

// ResolveQualName resolves a partially qualified base name to the fully
// qualified name of the entity it denotes, by walking the binding sites
// visible from scope for the name's first dotted segment. Names that no
// binding explains pass through unchanged.
func ResolveQualName(scope *parser.Scope, basename string, isCall bool) string {
	full := basename
	top := strings.SplitN(callArgs.ReplaceAllString(basename, ""), ".", 2)[0]

	for _, binding := range scope.Lookup(top) {
		stop := true
		switch b := binding.(type) {
		case *parser.ImportFrom:
			full = strings.Replace(basename, top, fullImportName(scope.Module, b, top), 1)
		case *parser.Import:
			full = strings.Replace(basename, top, resolveImportAlias(top, b.Names), 1)
		case *parser.Class:
			full = b.QualName
		case *parser.AssignBinding:
			// Assignments do not stop the walk: the last assignment to
			// the name wins.
			full = b.Scope.QualName + "." + b.Name
			stop = false
		default:
			stop = false
		}
		if stop {
			break
		}
	}

	if isCall {
		full = callArgs.ReplaceAllString(full, "()")
	}

	full = strings.TrimPrefix(full, "builtins.")
	full = strings.TrimPrefix(full, "__builtin__.")
	return full
}

// resolveImportAlias maps a potentially aliased imported name back to the
// original name from the import's name list.
func resolveImportAlias(name string, names []parser.ImportName) string {
	resolved := name
	for _, in := range names {
		if in.Name == name {
			break
		}
		if in.Alias == name {
			resolved = in.Name
			break
		}
	}
	return resolved
}

// fullImportName returns the absolute dotted path of a name bound by a
// `from x import y` statement, resolving relative imports against the
// importing module's own path.
func fullImportName(m *parser.Module, imp *parser.ImportFrom, name string) string {
	partial := resolveImportAlias(name, imp.Names)

	moduleName := imp.Module
	if imp.Level > 0 {
		moduleName = m.RelativeToAbsolute(imp.Module, imp.Level)
	}

	return moduleName + "." + partial
}

// ResolveAnnotation renders a base-class or annotation expression with every
// name it contains resolved to its qualified form. Shapes the resolver does
// not model degrade to their source text.
func ResolveAnnotation(annotation parser.Expr) string {
	var resolved string

	switch a := annotation.(type) {
	case *parser.ConstExpr:
		resolved = ResolveQualName(a.Scope(), a.Value, false)
	case *parser.NameExpr:
		resolved = ResolveQualName(a.Scope(), a.Ident, false)
	case *parser.AttributeExpr:
		resolved = ResolveQualName(a.Scope(), a.Text(), false)
	case *parser.CallExpr:
		resolved = ResolveQualName(a.Scope(), a.Text(), true)
	case *parser.SubscriptExpr:
		if a.Value == nil {
			resolved = a.Text()
			break
		}
		value := ResolveAnnotation(a.Value)

		args := a.Args
		if len(args) == 1 {
			if tup, ok := args[0].(*parser.TupleExpr); ok {
				args = tup.Elts
			}
		}

		rendered := make([]string, 0, len(args))
		for _, arg := range args {
			// Literal arguments are literal values, not names: keep
			// their source text.
			if value == "Literal" {
				if c, ok := arg.(*parser.ConstExpr); ok {
					rendered = append(rendered, c.Text())
					continue
				}
			}
			rendered = append(rendered, ResolveAnnotation(arg))
		}
		resolved = value + "[" + strings.Join(rendered, ", ") + "]"
	case *parser.TupleExpr:
		resolved = "(" + joinResolved(a.Elts) + ")"
	case *parser.ListExpr:
		resolved = "[" + joinResolved(a.Elts) + "]"
	case *parser.BinOpExpr:
		if a.Op == "|" {
			resolved = ResolveAnnotation(a.Left) + " | " + ResolveAnnotation(a.Right)
		} else {
			resolved = a.Text()
		}
	default:
		resolved = annotation.Text()
	}

	if strings.HasPrefix(resolved, "typing.") {
		return resolved[len("typing."):]
	}

	// Same-module references need no qualification.
	modulePrefix := annotation.Scope().Module.Name + "."
	if strings.HasPrefix(resolved, modulePrefix) {
		return resolved[len(modulePrefix):]
	}

	return resolved
}

func joinResolved(elts []parser.Expr) string {
	rendered := make([]string, 0, len(elts))
	for _, elt := range elts {
		rendered = append(rendered, ResolveAnnotation(elt))
	}
	return strings.Join(rendered, ", ")
}
