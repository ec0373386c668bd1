package cli

import "testing"

func TestValidateFlagFormAccepts(t *testing.T) {
	err := validateFlagForm([]string{"--secrets=/tmp/s.json", "sync", "file:///a", "file:///b"})
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateFlagFormRejectsMissingEquals(t *testing.T) {
	if err := validateFlagForm([]string{"--secrets", "/tmp/s.json"}); err == nil {
		t.Fatal("expected error for space-separated flag value")
	}
}

func TestValidateFlagFormRejectsEmptyValue(t *testing.T) {
	if err := validateFlagForm([]string{"--secrets="}); err == nil {
		t.Fatal("expected error for empty flag value")
	}
}

func TestValidateFlagFormIgnoresPositionalArgs(t *testing.T) {
	if err := validateFlagForm([]string{"sync", "file:///a", "s3://bucket/prefix"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
