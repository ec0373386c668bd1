package errors

import (
	"errors"
	"testing"
)

func TestWrapClassification(t *testing.T) {
	err := Wrap(ErrConfiguration, "cli", errors.New("missing password"))
	if !IsConfigurationError(err) {
		t.Error("expected a configuration error")
	}
	if IsIOError(err) || IsUsageError(err) {
		t.Error("wrapped error classified under the wrong category")
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(ErrIO, "op", nil) != nil {
		t.Error("Wrap of a nil error should return nil")
	}
}

func TestIsCredentialError(t *testing.T) {
	cases := map[string]bool{
		"403 Forbidden":                    true,
		"ExpiredToken: token has expired":  true,
		"context deadline exceeded":        false,
		"NoSuchKey: key does not exist":    false,
	}
	for msg, want := range cases {
		if got := IsCredentialError(errors.New(msg)); got != want {
			t.Errorf("IsCredentialError(%q) = %v, want %v", msg, got, want)
		}
	}
}

func TestIsNetworkError(t *testing.T) {
	if !IsNetworkError(errors.New("dial tcp: i/o timeout")) {
		t.Error("expected a network error")
	}
	if IsNetworkError(errors.New("access denied")) {
		t.Error("did not expect a network error")
	}
}
