// Package constants holds sizing and timing constants shared across the
// crypto, endpoint, and sync packages.
package constants

import "time"

const (
	// ScryptSalt is the fixed salt used for key derivation. It is a
	// deliberate compatibility choice: two installs with the same password
	// must derive the same key so filename IVs stay stable across hosts.
	// Do not change it.
	ScryptSalt = "salt"

	// KeySize is the AES-256 key size in bytes.
	KeySize = 32

	// BodyIVSize is the IV size used for body encryption and for the
	// synthetic filename IV.
	BodyIVSize = 16

	// TagSize is the AES-GCM authentication tag size in bytes.
	TagSize = 16

	// VersionHeaderSize is the one-byte framing version header.
	VersionHeaderSize = 1

	// FramingOverhead is the total per-body overhead the encryption layer
	// adds: version header + IV + tag.
	FramingOverhead = VersionHeaderSize + BodyIVSize + TagSize

	// CurrentVersion is the only framing version this implementation
	// produces or accepts.
	CurrentVersion = byte(1)
)

// Object-store multipart sizing (AWS S3 hard limits).
const (
	MinPartSize      = 5 * 1024 * 1024                // 5 MiB
	MaxPartSize      = 5 * 1024 * 1024 * 1024          // 5 GiB
	MaxPartsPerUpload = 10000
	MaxObjectSize    = 5 * 1024 * 1024 * 1024 * 1024  // 5 TiB
	DefaultPartSize  = MinPartSize
)

// EncryptionMaxPlaintextSize is the self-imposed ceiling on the encryption
// wrapper: beyond it a single AEAD tag covers too much data to be a
// practical integrity story, so the driver skips the file instead of
// encrypting it.
const EncryptionMaxPlaintextSize = 64 * 1024 * 1024 * 1024 // 64 GiB

// DefaultStorageClass is used when --storage-class is not supplied.
const DefaultStorageClass = "DEEP_ARCHIVE"

// Retry settings for object-store operations. No package reads these: the
// object-store backend makes no retries of its own beyond the AWS SDK's
// default retryer.
const (
	MaxRetries        = 5
	RetryInitialDelay = 200 * time.Millisecond
	RetryMaxDelay     = 15 * time.Second
)

// StreamBufferSize is the chunk size used while piping bytes through the
// streaming cipher.
const StreamBufferSize = 64 * 1024
