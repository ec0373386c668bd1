package synccrypto

import (
	"bytes"
	"io"
	"testing"

	"github.com/chadvoegele/s7/internal/constants"
)

func mustKey(t *testing.T) []byte {
	t.Helper()
	key, err := DeriveKey("correct horse battery staple")
	if err != nil {
		t.Fatalf("DeriveKey: %v", err)
	}
	return key
}

func encryptBytes(t *testing.T, key, plaintext []byte) []byte {
	t.Helper()
	var out bytes.Buffer
	ew, err := NewEncryptWriter(key, &out)
	if err != nil {
		t.Fatalf("NewEncryptWriter: %v", err)
	}
	if _, err := ew.Write(plaintext); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := ew.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return out.Bytes()
}

func TestRoundTrip(t *testing.T) {
	key := mustKey(t)
	cases := [][]byte{
		{},
		[]byte("a"),
		bytes.Repeat([]byte("0123456789"), 10000),
	}

	for _, plaintext := range cases {
		ciphertext := encryptBytes(t, key, plaintext)

		wantLen := len(plaintext) + constants.FramingOverhead
		if len(ciphertext) != wantLen {
			t.Errorf("ciphertext length = %d, want %d", len(ciphertext), wantLen)
		}

		dr, err := NewDecryptReader(key, bytes.NewReader(ciphertext))
		if err != nil {
			t.Fatalf("NewDecryptReader: %v", err)
		}
		got, err := io.ReadAll(dr)
		if err != nil {
			t.Fatalf("ReadAll: %v", err)
		}
		if !bytes.Equal(got, plaintext) {
			t.Errorf("round trip mismatch: got %q, want %q", got, plaintext)
		}
	}
}

func TestDecryptWrongKeyFails(t *testing.T) {
	key := mustKey(t)
	other, err := DeriveKey("a different password")
	if err != nil {
		t.Fatalf("DeriveKey: %v", err)
	}

	ciphertext := encryptBytes(t, key, []byte("top secret"))

	dr, err := NewDecryptReader(other, bytes.NewReader(ciphertext))
	if err != nil {
		t.Fatalf("NewDecryptReader: %v", err)
	}
	if _, err := io.ReadAll(dr); err == nil {
		t.Fatal("expected integrity error decrypting with wrong key")
	}
}

func TestDecryptTamperedBodyFails(t *testing.T) {
	key := mustKey(t)
	ciphertext := encryptBytes(t, key, []byte("top secret"))
	ciphertext[len(ciphertext)-1] ^= 0xFF

	dr, err := NewDecryptReader(key, bytes.NewReader(ciphertext))
	if err != nil {
		t.Fatalf("NewDecryptReader: %v", err)
	}
	if _, err := io.ReadAll(dr); err == nil {
		t.Fatal("expected integrity error for tampered tag")
	}
}

func TestDecryptRejectsUnknownVersion(t *testing.T) {
	key := mustKey(t)
	ciphertext := encryptBytes(t, key, []byte("hello"))
	ciphertext[0] = 0xFE

	if _, err := NewDecryptReader(key, bytes.NewReader(ciphertext)); err != ErrUnsupportedVersion {
		t.Fatalf("got err %v, want ErrUnsupportedVersion", err)
	}
}

func TestDecryptTruncatedFails(t *testing.T) {
	key := mustKey(t)
	ciphertext := encryptBytes(t, key, []byte("hello world"))
	truncated := ciphertext[:len(ciphertext)-5]

	dr, err := NewDecryptReader(key, bytes.NewReader(truncated))
	if err != nil {
		t.Fatalf("NewDecryptReader: %v", err)
	}
	if _, err := io.ReadAll(dr); err == nil {
		t.Fatal("expected error for truncated body")
	}
}
