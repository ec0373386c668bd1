package cryptendpoint

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/chadvoegele/s7/internal/fsendpoint"
	"github.com/chadvoegele/s7/internal/synccrypto"
	synclibErrors "github.com/chadvoegele/s7/internal/synclib/errors"
)

func newWrapper(t *testing.T) *Wrapper {
	t.Helper()
	key, err := synccrypto.DeriveKey("test password")
	if err != nil {
		t.Fatalf("DeriveKey: %v", err)
	}
	inner := fsendpoint.New(t.TempDir())
	return New(inner, key)
}

func TestWriteReadRoundTrip(t *testing.T) {
	w := newWrapper(t)
	ctx := context.Background()

	content := []byte("the quick brown fox")
	if err := w.Write(ctx, "notes/a.txt", int64(len(content)), bytes.NewReader(content)); err != nil {
		t.Fatalf("Write: %v", err)
	}

	rc, err := w.Read(ctx, "notes/a.txt")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	defer rc.Close()

	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Errorf("got %q, want %q", got, content)
	}
}

func TestListDecryptsNamesAndSizes(t *testing.T) {
	w := newWrapper(t)
	ctx := context.Background()

	content := []byte("hello world")
	if err := w.Write(ctx, "plain-name.txt", int64(len(content)), bytes.NewReader(content)); err != nil {
		t.Fatalf("Write: %v", err)
	}

	entries, err := w.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].Path != "plain-name.txt" {
		t.Errorf("Path = %q, want %q", entries[0].Path, "plain-name.txt")
	}
	if entries[0].Size != int64(len(content)) {
		t.Errorf("Size = %d, want %d", entries[0].Size, len(content))
	}
}

func TestToString(t *testing.T) {
	w := newWrapper(t)
	if got := w.ToString(); got[:4] != "enc+" {
		t.Errorf("ToString() = %q, want enc+ prefix", got)
	}
}

func TestWriteRefusesOverCeiling(t *testing.T) {
	w := newWrapper(t)
	const ceilingPlusOne = 64*1024*1024*1024 + 1

	err := w.Write(context.Background(), "big.bin", ceilingPlusOne, bytes.NewReader(nil))
	if err == nil {
		t.Fatal("expected Write to refuse a size over the ceiling")
	}
	if !synclibErrors.IsCapacityRefusal(err) {
		t.Errorf("got %v, want a capacity-refusal error", err)
	}
}

func TestIsWriteSupportedRejectsOverCeiling(t *testing.T) {
	w := newWrapper(t)
	const ceilingPlusOne = 64*1024*1024*1024 + 1
	if w.IsWriteSupported(ceilingPlusOne) {
		t.Error("expected IsWriteSupported to reject a size over the 64 GiB ceiling")
	}
	if !w.IsWriteSupported(1024) {
		t.Error("expected IsWriteSupported to accept a small size")
	}
}
