package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestRecover_WithPanic(t *testing.T) {
	testFunc := func() (err error) {
		defer Recover(&err, "LinearRegression.Fit")
		panic("mat: dimension mismatch")
	}

	err := testFunc()
	if err == nil {
		t.Fatal("Expected error from recovered panic, got nil")
	}

	var panicErr *PanicError
	if !errors.As(err, &panicErr) {
		t.Fatalf("Expected PanicError, got %T", err)
	}

	if panicErr.Operation != "LinearRegression.Fit" {
		t.Errorf("Expected operation 'LinearRegression.Fit', got '%s'", panicErr.Operation)
	}
	if panicErr.StackTrace == "" {
		t.Error("Expected non-empty stack trace")
	}

	expectedMsg := "panic in LinearRegression.Fit: mat: dimension mismatch"
	if panicErr.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, panicErr.Error())
	}
}

func TestRecover_WithoutPanic(t *testing.T) {
	testFunc := func() (err error) {
		defer Recover(&err, "LinearRegression.Predict")
		return nil
	}

	if err := testFunc(); err != nil {
		t.Fatalf("Expected no error when no panic occurs, got: %v", err)
	}
}

func TestRecover_WithExistingError(t *testing.T) {
	originalErr := fmt.Errorf("original error")

	testFunc := func() (err error) {
		defer Recover(&err, "LinearRegression.Fit")
		err = originalErr
		panic("panic after error")
	}

	err := testFunc()
	if err == nil {
		t.Fatal("Expected error, got nil")
	}

	errMsg := err.Error()
	if !strings.Contains(errMsg, "panic in LinearRegression.Fit") {
		t.Errorf("Error message should contain panic info: %s", errMsg)
	}
	if !errors.Is(err, originalErr) {
		t.Error("Should be able to identify original error with errors.Is")
	}
}

func TestPanicError_Unwrap(t *testing.T) {
	plain := NewPanicError("op", "text")
	if plain.Unwrap() != nil {
		t.Error("non-error panic value should not unwrap")
	}

	cause := fmt.Errorf("index out of range")
	wrapped := NewPanicError("op", cause)
	if !errors.Is(wrapped, cause) {
		t.Error("error panic value should be reachable with errors.Is")
	}

	if !strings.Contains(wrapped.String(), "Stack trace:") {
		t.Error("String() should include stack trace information")
	}
}

func BenchmarkRecover_NoPanic(b *testing.B) {
	for i := 0; i < b.N; i++ {
		func() (err error) {
			defer Recover(&err, "BenchmarkOp")
			return nil
		}()
	}
}
