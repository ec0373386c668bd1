package synccrypto

import (
	"strings"
	"testing"
)

func TestEncryptNameRoundTrip(t *testing.T) {
	key := mustKey(t)

	names := []string{"report.csv", "dir/nested/file.bin", "", "unicode-éè.txt"}
	for _, name := range names {
		enc, err := EncryptName(key, name)
		if err != nil {
			t.Fatalf("EncryptName(%q): %v", name, err)
		}
		if strings.Contains(enc, "/") {
			t.Errorf("EncryptName(%q) = %q contains a path separator", name, enc)
		}

		dec, err := DecryptName(key, enc)
		if err != nil {
			t.Fatalf("DecryptName(%q): %v", enc, err)
		}
		if dec != name {
			t.Errorf("round trip mismatch: got %q, want %q", dec, name)
		}
	}
}

func TestEncryptNameDeterministic(t *testing.T) {
	key := mustKey(t)

	a, err := EncryptName(key, "same-name.txt")
	if err != nil {
		t.Fatalf("EncryptName: %v", err)
	}
	b, err := EncryptName(key, "same-name.txt")
	if err != nil {
		t.Fatalf("EncryptName: %v", err)
	}
	if a != b {
		t.Fatalf("EncryptName is not deterministic: %q != %q", a, b)
	}
}

func TestEncryptNameDistinctForDistinctNames(t *testing.T) {
	key := mustKey(t)

	a, err := EncryptName(key, "a.txt")
	if err != nil {
		t.Fatalf("EncryptName: %v", err)
	}
	b, err := EncryptName(key, "b.txt")
	if err != nil {
		t.Fatalf("EncryptName: %v", err)
	}
	if a == b {
		t.Fatal("distinct plaintext names encrypted to the same ciphertext name")
	}
}

func TestDecryptNameWrongKeyFails(t *testing.T) {
	key := mustKey(t)
	other, err := DeriveKey("a different password")
	if err != nil {
		t.Fatalf("DeriveKey: %v", err)
	}

	enc, err := EncryptName(key, "secret.txt")
	if err != nil {
		t.Fatalf("EncryptName: %v", err)
	}
	if _, err := DecryptName(other, enc); err == nil {
		t.Fatal("expected error decrypting name with wrong key")
	}
}
