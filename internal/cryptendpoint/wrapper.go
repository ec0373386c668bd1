// Package cryptendpoint implements the encryption wrapper backend: an
// endpoint.Endpoint decorator that encrypts filenames and bodies before
// delegating to an inner endpoint.
package cryptendpoint

import (
	"context"
	"fmt"
	"io"

	"github.com/chadvoegele/s7/internal/constants"
	"github.com/chadvoegele/s7/internal/endpoint"
	"github.com/chadvoegele/s7/internal/synccrypto"
	synclibErrors "github.com/chadvoegele/s7/internal/synclib/errors"
)

// Wrapper composes an inner endpoint.Endpoint with a derived key, presenting
// the same Endpoint contract over plaintext names and sizes.
type Wrapper struct {
	inner endpoint.Endpoint
	key   []byte
}

// New returns a Wrapper that encrypts names and bodies under key before
// delegating to inner.
func New(inner endpoint.Endpoint, key []byte) *Wrapper {
	return &Wrapper{inner: inner, key: key}
}

func (w *Wrapper) ToString() string {
	return "enc+" + w.inner.ToString()
}

// List iterates the inner listing, decrypting each name and subtracting the
// framing overhead from each reported size. An inner entry whose size is
// too small to have come from this wrapper fails the whole listing: the
// wrapped store contains something it did not produce.
func (w *Wrapper) List(ctx context.Context) ([]endpoint.Entry, error) {
	inner, err := w.inner.List(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]endpoint.Entry, 0, len(inner))
	for _, e := range inner {
		if e.Size < constants.FramingOverhead {
			return nil, synclibErrors.Wrap(synclibErrors.ErrIntegrity, "cryptendpoint",
				fmt.Errorf("entry %q has size %d, smaller than the %d byte framing overhead",
					e.Path, e.Size, constants.FramingOverhead))
		}

		name, err := synccrypto.DecryptName(w.key, e.Path)
		if err != nil {
			return nil, synclibErrors.Wrap(synclibErrors.ErrIntegrity, "cryptendpoint",
				fmt.Errorf("decrypt name %q: %w", e.Path, err))
		}

		entries = append(entries, endpoint.Entry{
			Path:    name,
			Size:    e.Size - constants.FramingOverhead,
			MtimeMs: e.MtimeMs,
		})
	}

	return entries, nil
}

func (w *Wrapper) Size(ctx context.Context, path string) (int64, error) {
	encName, err := synccrypto.EncryptName(w.key, path)
	if err != nil {
		return 0, err
	}
	size, err := w.inner.Size(ctx, encName)
	if err != nil {
		return 0, err
	}
	return size - constants.FramingOverhead, nil
}

func (w *Wrapper) Read(ctx context.Context, path string) (io.ReadCloser, error) {
	encName, err := synccrypto.EncryptName(w.key, path)
	if err != nil {
		return nil, err
	}

	inner, err := w.inner.Read(ctx, encName)
	if err != nil {
		return nil, err
	}

	dr, err := synccrypto.NewDecryptReader(w.key, inner)
	if err != nil {
		inner.Close()
		return nil, synclibErrors.Wrap(synclibErrors.ErrIntegrity, "cryptendpoint", fmt.Errorf("read %s: %w", path, err))
	}

	return &decryptReadCloser{dr: dr, inner: inner}, nil
}

type decryptReadCloser struct {
	dr    *synccrypto.DecryptReader
	inner io.ReadCloser
}

func (d *decryptReadCloser) Read(p []byte) (int, error) { return d.dr.Read(p) }
func (d *decryptReadCloser) Close() error               { return d.inner.Close() }

// Write encrypts r and writes it, under the encrypted name, with
// FramingOverhead added to the declared size. Callers are expected to check
// IsWriteSupported first; Write still refuses a size over the ceiling
// rather than silently truncating or failing mid-transfer.
func (w *Wrapper) Write(ctx context.Context, path string, size int64, r io.Reader) error {
	if !w.IsWriteSupported(size) {
		return synclibErrors.Wrap(synclibErrors.ErrCapacityRefusal, "cryptendpoint",
			fmt.Errorf("%s: size %d exceeds what %s will accept", path, size, w.ToString()))
	}

	encName, err := synccrypto.EncryptName(w.key, path)
	if err != nil {
		return err
	}

	pr, pw := io.Pipe()
	ew, err := synccrypto.NewEncryptWriter(w.key, pw)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		_, copyErr := io.Copy(ew, r)
		if copyErr != nil {
			pw.CloseWithError(copyErr)
			errCh <- copyErr
			return
		}
		closeErr := ew.Close()
		if closeErr != nil {
			pw.CloseWithError(closeErr)
			errCh <- closeErr
			return
		}
		errCh <- pw.Close()
	}()

	writeErr := w.inner.Write(ctx, encName, size+constants.FramingOverhead, pr)
	if writeErr != nil {
		// Unblock the encrypt goroutine if it's still writing to pr so it
		// doesn't leak: nothing will read from pr again.
		pr.CloseWithError(writeErr)
	}

	if err := <-errCh; err != nil && writeErr == nil {
		return fmt.Errorf("cryptendpoint: encrypt %s: %w", path, err)
	}
	if writeErr != nil {
		return fmt.Errorf("cryptendpoint: write %s: %w", path, writeErr)
	}

	return nil
}

func (w *Wrapper) Remove(ctx context.Context, path string) error {
	encName, err := synccrypto.EncryptName(w.key, path)
	if err != nil {
		return err
	}
	return w.inner.Remove(ctx, encName)
}

// IsWriteSupported enforces the 64 GiB self-imposed ceiling on top of
// whatever the inner endpoint supports for the inflated size.
func (w *Wrapper) IsWriteSupported(size int64) bool {
	if size > constants.EncryptionMaxPlaintextSize {
		return false
	}
	return w.inner.IsWriteSupported(size + constants.FramingOverhead)
}

// restorable is satisfied by inner endpoints that support archive restore.
type restorable interface {
	Head(ctx context.Context, path string) (endpoint.RestoreStatus, error)
	Restore(ctx context.Context, path string) error
}

// Head delegates to the inner endpoint if it supports restore.
func (w *Wrapper) Head(ctx context.Context, path string) (endpoint.RestoreStatus, error) {
	r, ok := w.inner.(restorable)
	if !ok {
		return endpoint.RestoreStatus{}, fmt.Errorf("cryptendpoint: inner endpoint %s does not support head", w.inner.ToString())
	}
	encName, err := synccrypto.EncryptName(w.key, path)
	if err != nil {
		return endpoint.RestoreStatus{}, err
	}
	return r.Head(ctx, encName)
}

// Restore delegates to the inner endpoint if it supports restore.
func (w *Wrapper) Restore(ctx context.Context, path string) error {
	r, ok := w.inner.(restorable)
	if !ok {
		return fmt.Errorf("cryptendpoint: inner endpoint %s does not support restore", w.inner.ToString())
	}
	encName, err := synccrypto.EncryptName(w.key, path)
	if err != nil {
		return err
	}
	return r.Restore(ctx, encName)
}
