// Package synccrypto implements the streaming authenticated-encryption
// format used by the encryption endpoint wrapper: AES-256-GCM bodies with a
// versioned frame, and a synthetic-IV scheme for deterministic filename
// encryption.
package synccrypto

import (
	"fmt"

	"golang.org/x/crypto/scrypt"

	"github.com/chadvoegele/s7/internal/constants"
	synclibErrors "github.com/chadvoegele/s7/internal/synclib/errors"
)

// DeriveKey derives a 32-byte AES-256 key from a password using scrypt with
// the package's fixed salt and default cost parameters.
//
// The fixed salt is a deliberate compatibility choice, not an oversight:
// two installs using the same password must derive the same key so that
// synthetic filename IVs stay stable across machines. Do not randomize it.
func DeriveKey(password string) ([]byte, error) {
	if password == "" {
		return nil, synclibErrors.Wrap(synclibErrors.ErrConfiguration, "synccrypto", fmt.Errorf("password must not be empty"))
	}

	// N=16384, r=8, p=1 are scrypt's own recommended interactive defaults.
	key, err := scrypt.Key([]byte(password), []byte(constants.ScryptSalt), 1<<14, 8, 1, constants.KeySize)
	if err != nil {
		return nil, fmt.Errorf("synccrypto: derive key: %w", err)
	}
	return key, nil
}
