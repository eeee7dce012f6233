// # internal/extract/extract_test.go
package extract

import (
	"testing"

	"enumsed/internal/parser"
	"enumsed/internal/sedgen"
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

func TestExtractNestedEnumMembers(t *testing.T) {
	code := `
import enum

class QAbstractItemView:
    class SelectionMode(enum.Enum):
        MultiSelection: int
        SingleSelection: int
`
	m := parseModule(t, "PySide6.QtWidgets", code)

	subs := Enums(m)
	expected := []sedgen.Substitution{
		{Member: "MultiSelection", QualName: "QtWidgets.QAbstractItemView.SelectionMode.MultiSelection"},
		{Member: "SingleSelection", QualName: "QtWidgets.QAbstractItemView.SelectionMode.SingleSelection"},
	}

	if len(subs) != len(expected) {
		t.Fatalf("Expected %d substitutions, got %d: %v", len(expected), len(subs), subs)
	}
	for i, want := range expected {
		if subs[i] != want {
			t.Errorf("Substitution %d = %v, expected %v", i, subs[i], want)
		}
	}
}

func TestNonEnumClassYieldsNothing(t *testing.T) {
	code := `
class QWidget:
    width: int
    height: int
`
	m := parseModule(t, "PySide6.QtWidgets", code)

	if subs := Enums(m); len(subs) != 0 {
		t.Errorf("Expected no substitutions, got %v", subs)
	}
}

func TestDeeplyNestedEnum(t *testing.T) {
	code := `
from enum import Flag

class Outer:
    class Middle:
        class Mode(Flag):
            ReadWrite: int
`
	m := parseModule(t, "PySide6.QtCore", code)

	subs := Enums(m)
	if len(subs) != 1 {
		t.Fatalf("Expected 1 substitution, got %d", len(subs))
	}
	if subs[0].QualName != "QtCore.Outer.Middle.Mode.ReadWrite" {
		t.Errorf("Unexpected qual name %s", subs[0].QualName)
	}
}

func TestEnumSkipsNonMemberStatements(t *testing.T) {
	code := `
import enum

class C:
    class E(enum.Enum):
        Member: int
        plain = 1
        obj.attr: int
`
	m := parseModule(t, "mod", code)

	subs := Enums(m)
	if len(subs) != 1 {
		t.Fatalf("Expected 1 substitution, got %d: %v", len(subs), subs)
	}
	if subs[0].Member != "Member" {
		t.Errorf("Unexpected member %s", subs[0].Member)
	}
}

func TestEnumDoesNotRecurse(t *testing.T) {
	code := `
import enum

class E(enum.Enum):
    Value: int
    class Nested(enum.Enum):
        Hidden: int
`
	m := parseModule(t, "mod", code)

	subs := Enums(m)
	if len(subs) != 1 || subs[0].Member != "Value" {
		t.Errorf("Expected only Value, got %v", subs)
	}
}

func TestModuleLevelAssignmentsIgnored(t *testing.T) {
	code := `
import enum

Member: int

class E(enum.Enum):
    Real: int
`
	m := parseModule(t, "mod", code)

	subs := Enums(m)
	if len(subs) != 1 || subs[0].Member != "Real" {
		t.Errorf("Expected only Real, got %v", subs)
	}
}
