// # internal/extract/extract.go
package extract

import (
	"strings"

	"enumsed/internal/parser"
	"enumsed/internal/resolver"
	"enumsed/internal/sedgen"
)

// Enums walks a parsed stub module and returns one substitution per enum
// member it defines. Only classes directly at module level (and classes
// directly nested inside them) are candidates; a class is an enum when any
// of its resolved bases is rooted at "enum".
func Enums(m *parser.Module) []sedgen.Substitution {
	var subs []sedgen.Substitution

	for _, stmt := range m.Body {
		if cls, ok := stmt.(*parser.Class); ok {
			subs = append(subs, enumsInClass(cls, m.ShortName())...)
		}
	}

	return subs
}

// enumsInClass extracts members from one class, threading the qualification
// prefix (module short name plus enclosing class names) through the
// recursion.
func enumsInClass(cls *parser.Class, prefix string) []sedgen.Substitution {
	qual := prefix + "." + cls.Name

	if !isEnumClass(cls) {
		var subs []sedgen.Substitution
		for _, stmt := range cls.Body {
			if nested, ok := stmt.(*parser.Class); ok {
				subs = append(subs, enumsInClass(nested, qual)...)
			}
		}
		return subs
	}

	var subs []sedgen.Substitution
	for _, stmt := range cls.Body {
		ann, ok := stmt.(*parser.AnnAssign)
		if !ok {
			continue
		}
		// Attribute targets are not member definitions.
		if ann.TargetAttr || ann.Target == "" {
			continue
		}
		subs = append(subs, sedgen.Substitution{
			Member:   ann.Target,
			QualName: qual + "." + ann.Target,
		})
	}
	return subs
}

func isEnumClass(cls *parser.Class) bool {
	for _, base := range cls.Bases {
		resolved := resolver.ResolveAnnotation(base)
		if strings.SplitN(resolved, ".", 2)[0] == "enum" {
			return true
		}
	}
	return false
}
