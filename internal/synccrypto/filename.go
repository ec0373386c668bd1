package synccrypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/chadvoegele/s7/internal/constants"
)

// domainSeparator ties the synthetic IV derivation to this specific cipher
// construction, so the same key can't be reused to derive IVs for some
// other purpose without a collision analysis.
const domainSeparator = "S7" + "aes-256-gcm"

// syntheticIV derives a deterministic 16-byte IV for encrypting name from
// key: H1 = HMAC-SHA256(key, domainSeparator), H2 = HMAC-SHA256(H1, name),
// IV = the last 16 bytes of H2.
//
// Determinism is the point: two encryptions of the same plaintext name
// under the same key must produce the same ciphertext name, so a listing
// can dedupe and overwrite by ciphertext name the same way it would by
// plaintext name.
func syntheticIV(key []byte, name string) []byte {
	mac1 := hmac.New(sha256.New, key)
	mac1.Write([]byte(domainSeparator))
	h1 := mac1.Sum(nil)

	mac2 := hmac.New(sha256.New, h1)
	mac2.Write([]byte(name))
	h2 := mac2.Sum(nil)

	return h2[len(h2)-constants.BodyIVSize:]
}

// pathSafeEncoding is standard-alphabet base64 without '=' padding, with '/'
// swapped for '_', so encoded names never introduce a path separator.
var pathSafeEncoding = base64.StdEncoding.WithPadding(base64.NoPadding)

func encodePathSafe(b []byte) string {
	return strings.ReplaceAll(pathSafeEncoding.EncodeToString(b), "/", "_")
}

func decodePathSafe(s string) ([]byte, error) {
	return pathSafeEncoding.DecodeString(strings.ReplaceAll(s, "_", "/"))
}

// EncryptName encrypts a plaintext entry name under key using a synthetic,
// deterministic IV, and returns the path-safe base64 encoding of
// version || iv || ciphertext || tag.
func EncryptName(key []byte, name string) (string, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	iv := syntheticIV(key, name)
	sealed := gcm.Seal(nil, iv, []byte(name), nil)

	out := make([]byte, 0, 1+len(iv)+len(sealed))
	out = append(out, constants.CurrentVersion)
	out = append(out, iv...)
	out = append(out, sealed...)

	return encodePathSafe(out), nil
}

// DecryptName reverses EncryptName. It does not re-derive and check the
// synthetic IV against the plaintext it recovers; the AEAD tag alone is
// sufficient to detect tampering or a wrong key.
func DecryptName(key []byte, encoded string) (string, error) {
	raw, err := decodePathSafe(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrIntegrity, err)
	}
	if len(raw) < 1+constants.BodyIVSize {
		return "", fmt.Errorf("%w: name too short", ErrIntegrity)
	}
	if raw[0] != constants.CurrentVersion {
		return "", ErrUnsupportedVersion
	}

	iv := raw[1 : 1+constants.BodyIVSize]
	sealed := raw[1+constants.BodyIVSize:]

	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	plaintext, err := gcm.Open(nil, iv, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrIntegrity, err)
	}

	return string(plaintext), nil
}
