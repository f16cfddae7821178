package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorKindsSurviveWrapping(t *testing.T) {
	base := errors.New("boom")
	cases := []struct {
		name string
		err  error
		is   func(error) bool
		msg  string
	}{
		{"not found", NotFoundError{Resource: "bus"}, IsNotFound, "bus not found"},
		{"validation", ValidationError{Field: "age", Msg: "must not be negative"}, IsValidation, "age: must not be negative"},
		{"internal", InternalError{Msg: "catalog unreadable", Err: base}, IsInternal, "catalog unreadable: boom"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := fmt.Errorf("outer: %w", tc.err)
			if !tc.is(wrapped) {
				t.Fatalf("expected wrapped error to keep its kind")
			}
			if tc.err.Error() != tc.msg {
				t.Fatalf("message got %q want %q", tc.err.Error(), tc.msg)
			}
		})
	}
	if !errors.Is(InternalError{Err: base}, base) {
		t.Fatalf("InternalError should unwrap to its cause")
	}
	if IsNotFound(ValidationError{}) {
		t.Fatalf("validation error must not match not found")
	}
}
