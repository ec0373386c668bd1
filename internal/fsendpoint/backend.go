// Package fsendpoint implements the filesystem endpoint backend: a plain
// directory tree addressed by paths relative to a root.
package fsendpoint

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/chadvoegele/s7/internal/endpoint"
	synclibErrors "github.com/chadvoegele/s7/internal/synclib/errors"
)

// Backend is a filesystem-rooted endpoint.Endpoint.
type Backend struct {
	root string
}

// New returns a Backend rooted at root. root need not exist yet; it is
// created on the first Write.
func New(root string) *Backend {
	return &Backend{root: filepath.Clean(root)}
}

func (b *Backend) abs(relPath string) string {
	return filepath.Join(b.root, filepath.FromSlash(relPath))
}

// List walks the root depth-first, returning every regular file as an
// Entry. Symlinks and other non-regular files are skipped rather than
// followed, to avoid walk loops.
func (b *Backend) List(ctx context.Context) ([]endpoint.Entry, error) {
	var entries []endpoint.Entry

	err := filepath.WalkDir(b.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == b.root {
				return nil
			}
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			return nil
		}
		if d.Type()&os.ModeSymlink != 0 || !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("fsendpoint: stat %s: %w", path, err)
		}

		rel, err := filepath.Rel(b.root, path)
		if err != nil {
			return fmt.Errorf("fsendpoint: relativize %s: %w", path, err)
		}

		entries = append(entries, endpoint.Entry{
			Path:    filepath.ToSlash(rel),
			Size:    info.Size(),
			MtimeMs: info.ModTime().UnixMilli(),
		})
		return nil
	})
	if err != nil {
		return nil, synclibErrors.Wrap(synclibErrors.ErrIO, "fsendpoint", fmt.Errorf("list %s: %w", b.root, err))
	}

	return entries, nil
}

func (b *Backend) Size(ctx context.Context, path string) (int64, error) {
	info, err := os.Stat(b.abs(path))
	if err != nil {
		return 0, synclibErrors.Wrap(synclibErrors.ErrIO, "fsendpoint", fmt.Errorf("size %s: %w", path, err))
	}
	return info.Size(), nil
}

func (b *Backend) Read(ctx context.Context, path string) (io.ReadCloser, error) {
	f, err := os.Open(b.abs(path))
	if err != nil {
		return nil, synclibErrors.Wrap(synclibErrors.ErrIO, "fsendpoint", fmt.Errorf("read %s: %w", path, err))
	}
	return f, nil
}

func (b *Backend) Write(ctx context.Context, path string, size int64, r io.Reader) error {
	dest := b.abs(path)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return synclibErrors.Wrap(synclibErrors.ErrIO, "fsendpoint", fmt.Errorf("mkdir for %s: %w", path, err))
	}

	tmp := dest + ".s7tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return synclibErrors.Wrap(synclibErrors.ErrIO, "fsendpoint", fmt.Errorf("create %s: %w", path, err))
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(tmp)
		return synclibErrors.Wrap(synclibErrors.ErrIO, "fsendpoint", fmt.Errorf("write %s: %w", path, err))
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return synclibErrors.Wrap(synclibErrors.ErrIO, "fsendpoint", fmt.Errorf("close %s: %w", path, err))
	}
	if err := os.Rename(tmp, dest); err != nil {
		return synclibErrors.Wrap(synclibErrors.ErrIO, "fsendpoint", fmt.Errorf("finalize %s: %w", path, err))
	}
	return nil
}

func (b *Backend) Remove(ctx context.Context, path string) error {
	if err := os.Remove(b.abs(path)); err != nil {
		return synclibErrors.Wrap(synclibErrors.ErrIO, "fsendpoint", fmt.Errorf("remove %s: %w", path, err))
	}
	return nil
}

// IsWriteSupported is always true: the local filesystem has no practical
// size ceiling for this tool's purposes.
func (b *Backend) IsWriteSupported(size int64) bool {
	return true
}

func (b *Backend) ToString() string {
	return "file://" + filepath.ToSlash(b.root)
}
