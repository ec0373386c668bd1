// Package endpoint defines the storage-backend abstraction that the differ
// and sync driver operate against: a uniform listing and byte-stream
// contract implemented by the filesystem backend, the object-store backend,
// and the encryption decorator that can wrap either.
package endpoint

import (
	"context"
	"io"
)

// Entry describes one object in an endpoint's listing.
type Entry struct {
	// Path is the entry's logical path, relative to the endpoint's root.
	Path string
	// Size is the entry's size in bytes, as the endpoint reports it. For an
	// encrypted endpoint this is the plaintext size, not the size on the
	// wire.
	Size int64
	// MtimeMs is the entry's last-modified time, in milliseconds since the
	// Unix epoch.
	MtimeMs int64
}

// ActionKind identifies what a differ Action should do to the target.
type ActionKind int

const (
	// Add copies an entry that exists on the source but not the target.
	Add ActionKind = iota
	// Update overwrites a target entry that differs from its source
	// counterpart.
	Update
	// Delete removes a target entry that no longer exists on the source.
	Delete
)

func (k ActionKind) String() string {
	switch k {
	case Add:
		return "add"
	case Update:
		return "update"
	case Delete:
		return "delete"
	default:
		return "unknown"
	}
}

// Action is one unit of sync work produced by the differ.
type Action struct {
	Kind ActionKind
	// Entry is the source entry for Add/Update, or the target entry for
	// Delete.
	Entry Entry
}

// Endpoint is the storage contract every backend and decorator implements.
// Paths passed to and returned from an Endpoint are always relative to its
// own root; callers never see the underlying URI scheme.
type Endpoint interface {
	// List returns every entry under the endpoint's root. Order is
	// unspecified; callers that need an ordering sort it themselves.
	List(ctx context.Context) ([]Entry, error)

	// Size returns the size, in bytes, that path would have in a List
	// result, without listing the whole endpoint.
	Size(ctx context.Context, path string) (int64, error)

	// Read opens path for streaming read. The caller must Close the
	// returned ReadCloser.
	Read(ctx context.Context, path string) (io.ReadCloser, error)

	// Write streams size bytes from r to path, creating or overwriting it.
	// Callers must check IsWriteSupported(size) first; Write may refuse or
	// behave unexpectedly for a size it does not support.
	Write(ctx context.Context, path string, size int64, r io.Reader) error

	// Remove deletes path. Removing a path that does not exist fails.
	Remove(ctx context.Context, path string) error

	// IsWriteSupported reports whether a Write of the given size is
	// expected to succeed, without attempting it. The sync driver uses
	// this to skip oversized entries instead of starting and failing a
	// transfer.
	IsWriteSupported(size int64) bool

	// ToString returns the endpoint's canonical URI, suitable for log
	// lines. It never leaks credentials.
	ToString() string
}

// RestoreStatus is the result of checking whether an archived entry is
// retrievable.
type RestoreStatus struct {
	// Archived is true if the entry is stored in a tier that requires a
	// restore request before it can be read.
	Archived bool
	// Ongoing is true if a restore request is already in flight for this
	// entry.
	Ongoing bool
	// Available is true if a restore has completed and the entry can be
	// read without further delay.
	Available bool
}

// Restorable is implemented by endpoints backed by storage tiers that
// support archival (object stores), where a Read may need to be preceded by
// a restore request and a wait.
type Restorable interface {
	// Head reports an entry's current restore status.
	Head(ctx context.Context, path string) (RestoreStatus, error)

	// Restore requests retrieval of an archived entry. Calling Restore on
	// an entry that is not archived, or that already has an ongoing or
	// completed restore, is a no-op.
	Restore(ctx context.Context, path string) error
}
