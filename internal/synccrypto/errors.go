package synccrypto

import "errors"

// ErrIntegrity is returned when a decrypted body or filename fails
// authentication: wrong password, truncated input, or bit-level corruption.
var ErrIntegrity = errors.New("synccrypto: integrity check failed")

// ErrUnsupportedVersion is returned when the framing version header does not
// match a version this build understands.
var ErrUnsupportedVersion = errors.New("synccrypto: unsupported framing version")
