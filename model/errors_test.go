package model

import (
	"errors"
	"testing"
)

func TestErrorKindRoundTrip(t *testing.T) {
	cause := errors.New("truncated stream")
	err := NewTryLaterError("waiting for more bytes", cause)

	if KindOf(err) != ErrTryLater {
		t.Fatalf("KindOf = %v, want ErrTryLater", KindOf(err))
	}
	if !IsTryLater(err) {
		t.Fatalf("IsTryLater(err) = false")
	}
	if !errors.Is(err, &Error{Kind: ErrTryLater}) {
		t.Fatalf("errors.Is should match by kind")
	}
	if errors.Unwrap(err) != cause {
		t.Fatalf("Unwrap should return the wrapped cause")
	}
}

func TestGenericErrorIsNotTryLater(t *testing.T) {
	err := NewGenericError("unsupported feature", nil)
	if IsTryLater(err) {
		t.Fatalf("a generic error must not report as try-later")
	}
	if IsTryLater(errors.New("plain error")) {
		t.Fatalf("a plain error must not report as try-later")
	}
}
