package pwerr

import (
	"errors"
	"testing"
)

func TestInvalid(t *testing.T) {
	err := Invalid("password", "must not be empty")
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if got, want := err.Error(), "invalid argument: password must not be empty"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
