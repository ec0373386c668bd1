package synccrypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	"github.com/chadvoegele/s7/internal/constants"
	"github.com/chadvoegele/s7/internal/util/buffers"
)

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("synccrypto: new cipher: %w", err)
	}
	gcm, err := cipher.NewGCMWithNonceSize(block, constants.BodyIVSize)
	if err != nil {
		return nil, fmt.Errorf("synccrypto: new gcm: %w", err)
	}
	return gcm, nil
}

// EncryptWriter wraps an underlying io.Writer, buffering plaintext written
// to it and emitting the framed, encrypted body on Close.
//
// The wire format is: 1-byte version, 16-byte IV, AEAD ciphertext, 16-byte
// tag. A single AEAD tag covers the whole body, so the ciphertext can't be
// finalized until every plaintext byte has been seen; Close is where the
// actual encryption happens.
type EncryptWriter struct {
	gcm cipher.AEAD
	w   io.Writer
	buf bytes.Buffer
}

// NewEncryptWriter returns a writer that encrypts everything written to it
// and flushes the framed ciphertext to w on Close.
func NewEncryptWriter(key []byte, w io.Writer) (*EncryptWriter, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	return &EncryptWriter{gcm: gcm, w: w}, nil
}

func (e *EncryptWriter) Write(p []byte) (int, error) {
	return e.buf.Write(p)
}

// Close encrypts the buffered plaintext and writes the framed ciphertext.
// It does not close the underlying writer.
func (e *EncryptWriter) Close() error {
	iv := make([]byte, constants.BodyIVSize)
	if _, err := rand.Read(iv); err != nil {
		return fmt.Errorf("synccrypto: generate iv: %w", err)
	}

	if _, err := e.w.Write([]byte{constants.CurrentVersion}); err != nil {
		return fmt.Errorf("synccrypto: write version: %w", err)
	}
	if _, err := e.w.Write(iv); err != nil {
		return fmt.Errorf("synccrypto: write iv: %w", err)
	}

	ciphertext := e.gcm.Seal(nil, iv, e.buf.Bytes(), nil)
	if _, err := e.w.Write(ciphertext); err != nil {
		return fmt.Errorf("synccrypto: write ciphertext: %w", err)
	}
	return nil
}

// DecryptReader wraps an underlying io.Reader, verifying and decrypting a
// framed body produced by EncryptWriter.
//
// Decryption can't begin until the trailing 16-byte tag has been located,
// and the tag isn't distinguishable from ciphertext until the source is
// exhausted. DecryptReader reads the source into a rolling window that
// always holds back the last TagSize bytes, so whatever is read past the
// window is guaranteed to be ciphertext and never the tag.
type DecryptReader struct {
	gcm       cipher.AEAD
	src       io.Reader
	iv        []byte
	plaintext *bytes.Reader
	opened    bool
}

// NewDecryptReader reads the version and IV header from r and returns a
// reader over the decrypted plaintext. The body is not decrypted (and the
// tag is not verified) until the first call to Read.
func NewDecryptReader(key []byte, r io.Reader) (*DecryptReader, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	header := make([]byte, constants.VersionHeaderSize+constants.BodyIVSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("synccrypto: read header: %w", err)
	}
	if header[0] != constants.CurrentVersion {
		return nil, ErrUnsupportedVersion
	}

	return &DecryptReader{
		gcm: gcm,
		src: r,
		iv:  header[constants.VersionHeaderSize:],
	}, nil
}

func (d *DecryptReader) Read(p []byte) (int, error) {
	if !d.opened {
		if err := d.openAll(); err != nil {
			return 0, err
		}
	}
	return d.plaintext.Read(p)
}

// openAll drains d.src while maintaining a rolling TagSize trailer, so the
// final TagSize bytes are never appended to the ciphertext buffer, then
// verifies and decrypts the accumulated ciphertext in one AEAD call.
func (d *DecryptReader) openAll() error {
	var ciphertext bytes.Buffer
	trailer := make([]byte, 0, constants.TagSize)

	chunk := buffers.Get()
	defer buffers.Put(chunk)

	for {
		n, err := d.src.Read(*chunk)
		if n > 0 {
			trailer = append(trailer, (*chunk)[:n]...)
			if len(trailer) > constants.TagSize {
				spill := len(trailer) - constants.TagSize
				ciphertext.Write(trailer[:spill])
				trailer = trailer[spill:]
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("synccrypto: read body: %w", err)
		}
	}

	if len(trailer) != constants.TagSize {
		return fmt.Errorf("%w: truncated body", ErrIntegrity)
	}

	sealed := append(ciphertext.Bytes(), trailer...)
	plaintext, err := d.gcm.Open(nil, d.iv, sealed, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIntegrity, err)
	}

	d.plaintext = bytes.NewReader(plaintext)
	d.opened = true
	return nil
}
