// # internal/resolver/resolver_test.go
package resolver

import (
	"testing"

	"enumsed/internal/parser"
)

func parseModule(t *testing.T, name string, code string) *parser.Module {
	t.Helper()
	p := parser.NewParser(parser.NewGrammarLoader())
	m, err := p.Parse(name, false, name+".pyi", []byte(code))
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func classByName(t *testing.T, m *parser.Module, name string) *parser.Class {
	t.Helper()
	for _, stmt := range m.Body {
		if cls, ok := stmt.(*parser.Class); ok && cls.Name == name {
			return cls
		}
	}
	t.Fatalf("class %s not found", name)
	return nil
}

func annotationByTarget(t *testing.T, m *parser.Module, target string) parser.Expr {
	t.Helper()
	for _, stmt := range m.Body {
		if ann, ok := stmt.(*parser.AnnAssign); ok && ann.Target == target {
			return ann.Annotation
		}
	}
	t.Fatalf("annotated assignment %s not found", target)
	return nil
}

func TestResolveBases(t *testing.T) {
	code := `
import enum
import enum as aliased
from enum import Enum
from enum import Flag as F

class A(enum.Enum): ...
class B(aliased.IntEnum): ...
class C(Enum): ...
class D(F): ...
`
	m := parseModule(t, "mod", code)

	tests := []struct {
		class    string
		expected string
	}{
		{"A", "enum.Enum"},
		{"B", "enum.IntEnum"},
		{"C", "enum.Enum"},
		{"D", "enum.Flag"},
	}

	for _, tt := range tests {
		cls := classByName(t, m, tt.class)
		got := ResolveAnnotation(cls.Bases[0])
		if got != tt.expected {
			t.Errorf("base of %s = %s, expected %s", tt.class, got, tt.expected)
		}
	}
}

func TestResolveRelativeImport(t *testing.T) {
	code := `
from . import QtCore

class M(QtCore.QFlag): ...
`
	m := parseModule(t, "PySide6.QtWidgets", code)

	cls := classByName(t, m, "M")
	got := ResolveAnnotation(cls.Bases[0])
	if got != "PySide6.QtCore.QFlag" {
		t.Errorf("Expected PySide6.QtCore.QFlag, got %s", got)
	}
}

func TestResolveClassBinding(t *testing.T) {
	code := `
class Base: ...
class Sub(Base): ...
`
	m := parseModule(t, "mod", code)

	// A same-module class resolves to its qualified name, then the module
	// prefix is dropped again.
	cls := classByName(t, m, "Sub")
	got := ResolveAnnotation(cls.Bases[0])
	if got != "Base" {
		t.Errorf("Expected Base, got %s", got)
	}
}

func TestResolveQualName_LastAssignmentWins(t *testing.T) {
	// An assignment match does not stop the candidate walk: a later
	// import binding still takes over, and with only assignments the last
	// one wins.
	code := `
Alias = 1
from enum import Enum as Alias

class M(Alias): ...

X = 1
X = 2
class N(X): ...
`
	m := parseModule(t, "mod", code)

	if got := ResolveAnnotation(classByName(t, m, "M").Bases[0]); got != "enum.Enum" {
		t.Errorf("Expected enum.Enum, got %s", got)
	}
	if got := ResolveAnnotation(classByName(t, m, "N").Bases[0]); got != "X" {
		t.Errorf("Expected X, got %s", got)
	}
}

func TestResolveAnnotationComposites(t *testing.T) {
	code := `
import typing
from typing import Literal, Optional

class A: ...

a: Optional[int]
b: Literal["x", "y"]
c: int | None
d: typing.Union[int, str]
e: list[A]
f: builtins.int
g: (A, int)
h: [A, int]
`
	m := parseModule(t, "mod", code)

	tests := []struct {
		target   string
		expected string
	}{
		{"a", "Optional[int]"},
		{"b", `Literal["x", "y"]`},
		{"c", "int | None"},
		{"d", "Union[int, str]"},
		{"e", "list[A]"},
		{"f", "int"},
		{"g", "(A, int)"},
		{"h", "[A, int]"},
	}

	for _, tt := range tests {
		got := ResolveAnnotation(annotationByTarget(t, m, tt.target))
		if got != tt.expected {
			t.Errorf("annotation %s = %s, expected %s", tt.target, got, tt.expected)
		}
	}
}

func TestResolveCallCollapsesArguments(t *testing.T) {
	code := `
class M(make_base(1, 2)): ...
`
	m := parseModule(t, "mod", code)

	got := ResolveAnnotation(classByName(t, m, "M").Bases[0])
	if got != "make_base()" {
		t.Errorf("Expected make_base(), got %s", got)
	}
}

func TestResolveUnknownNamePassesThrough(t *testing.T) {
	code := `
class M(QWidget): ...
`
	m := parseModule(t, "mod", code)

	got := ResolveAnnotation(classByName(t, m, "M").Bases[0])
	if got != "QWidget" {
		t.Errorf("Expected QWidget, got %s", got)
	}
}
