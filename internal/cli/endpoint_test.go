package cli

import (
	"context"
	"testing"

	"github.com/chadvoegele/s7/internal/s3endpoint"
	"github.com/chadvoegele/s7/internal/secrets"
)

func TestBuildEndpointFile(t *testing.T) {
	dir := t.TempDir()
	ep, err := buildEndpoint(context.Background(), "file://"+dir, secrets.Secrets{}, "", s3endpoint.DefaultRestoreRequest(), nil)
	if err != nil {
		t.Fatalf("buildEndpoint: %v", err)
	}
	if ep.ToString() != "file://"+dir {
		t.Errorf("ToString() = %q, want %q", ep.ToString(), "file://"+dir)
	}
}

func TestBuildEndpointEncryptedFileRequiresPassword(t *testing.T) {
	dir := t.TempDir()
	_, err := buildEndpoint(context.Background(), "enc+file://"+dir, secrets.Secrets{}, "", s3endpoint.DefaultRestoreRequest(), nil)
	if err == nil {
		t.Fatal("expected error for enc+ endpoint without a password")
	}
}

func TestBuildEndpointEncryptedFile(t *testing.T) {
	dir := t.TempDir()
	ep, err := buildEndpoint(context.Background(), "enc+file://"+dir, secrets.Secrets{Password: "hunter2"}, "", s3endpoint.DefaultRestoreRequest(), nil)
	if err != nil {
		t.Fatalf("buildEndpoint: %v", err)
	}
	if ep.ToString() != "enc+file://"+dir {
		t.Errorf("ToString() = %q", ep.ToString())
	}
}

func TestBuildEndpointUnknownScheme(t *testing.T) {
	_, err := buildEndpoint(context.Background(), "ftp://example.com", secrets.Secrets{}, "", s3endpoint.DefaultRestoreRequest(), nil)
	if err == nil {
		t.Fatal("expected error for unknown scheme")
	}
}
