package errors

import (
	"errors"
	"testing"
)

func TestDomainError(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		err := New(CodeNotFound, "stub not found")
		if err.Error() != "[NOT_FOUND] stub not found" {
			t.Errorf("expected [NOT_FOUND] stub not found, got %s", err.Error())
		}
	})

	t.Run("Wrap", func(t *testing.T) {
		original := errors.New("original error")
		err := Wrap(original, CodeInternal, "internal failure")
		expected := "[INTERNAL_ERROR] internal failure: original error"
		if err.Error() != expected {
			t.Errorf("expected %s, got %s", expected, err.Error())
		}
	})

	t.Run("IsCode", func(t *testing.T) {
		err := New(CodeValidation, "invalid binding")
		if !IsCode(err, CodeValidation) {
			t.Error("expected IsCode to return true for CodeValidation")
		}
		if IsCode(err, CodeNotFound) {
			t.Error("expected IsCode to return false for CodeNotFound")
		}
	})

	t.Run("WithContext", func(t *testing.T) {
		err := (&DomainError{Code: CodeParseError, Message: "parse failed"}).
			WithContext(CtxPath, "widgets.pyi")
		if err.Context[CtxPath] != "widgets.pyi" {
			t.Errorf("expected path context, got %v", err.Context)
		}
	})

	t.Run("Unwrap", func(t *testing.T) {
		original := errors.New("original error")
		err := Wrap(original, CodeInternal, "internal failure")
		if !errors.Is(err, original) {
			t.Error("expected wrapped error to unwrap to original")
		}
	})
}
