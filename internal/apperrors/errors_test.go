package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestUserMessage(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{ErrIncompleteForm, "All fields are required!"},
		{ErrInvalidEmail, "Invalid or mismatched Email!"},
		{ErrInvalidPassword, "Invalid or mismatched password!"},
		{ErrInvalidAge, "Age must be between 16 and 60!"},
		{fmt.Errorf("%w: %w", ErrSaveFailed, ErrConstraintViolation), "Database save failed!"},
		{errors.New("boom"), "Something went wrong."},
	}
	for _, tc := range cases {
		if got := UserMessage(tc.err); got != tc.want {
			t.Errorf("UserMessage(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestKind_SaveFailedWins(t *testing.T) {
	err := fmt.Errorf("%w: %w", ErrSaveFailed, fmt.Errorf("%w: disk", ErrStoreUnavailable))
	if got := Kind(err); got != "SaveFailed" {
		t.Fatalf("Kind = %q", got)
	}
	if got := Kind(fmt.Errorf("wrap: %w", ErrInvalidAge)); got != "InvalidAge" {
		t.Fatalf("Kind = %q", got)
	}
	if got := Kind(errors.New("x")); got != "" {
		t.Fatalf("Kind = %q", got)
	}
}

func TestIsInputError(t *testing.T) {
	if !IsInputError(fmt.Errorf("x: %w", ErrInvalidEmail)) {
		t.Error("wrapped input error not recognised")
	}
	if IsInputError(ErrSaveFailed) {
		t.Error("save failure is not an input error")
	}
}
