package secrets

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSecretsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "secrets.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadParsesKnownFields(t *testing.T) {
	path := writeSecretsFile(t, `{
		"password": "hunter2",
		"accessKeyId": "AKIA...",
		"secretAccessKey": "shh",
		"region": "us-east-1"
	}`)

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Password != "hunter2" {
		t.Errorf("Password = %q, want %q", s.Password, "hunter2")
	}
	if s.AccessKeyID != "AKIA..." {
		t.Errorf("AccessKeyID = %q", s.AccessKeyID)
	}
	if s.Region != "us-east-1" {
		t.Errorf("Region = %q", s.Region)
	}
}

func TestLoadIgnoresUnknownFields(t *testing.T) {
	path := writeSecretsFile(t, `{"password": "x", "somethingNew": 123}`)

	if _, err := Load(path); err != nil {
		t.Fatalf("Load should tolerate unknown fields: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing secrets file")
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	path := writeSecretsFile(t, `not json`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}
