// Package synturi parses the tool's endpoint URI grammar:
// [enc+](file|s3)://<path>.
package synturi

import (
	"fmt"
	"strings"
)

// Scheme identifies which backend a URI names.
type Scheme int

const (
	// File names a local filesystem tree.
	File Scheme = iota
	// S3 names an object-store bucket and prefix.
	S3
)

// URI is a parsed endpoint address.
type URI struct {
	// Encrypted is true if the enc+ prefix was present.
	Encrypted bool
	Scheme    Scheme

	// Root is the filesystem root for a File URI.
	Root string

	// Bucket and Prefix are the object-store coordinates for an S3 URI.
	// Prefix may be empty.
	Bucket string
	Prefix string
}

// Parse parses raw against the [enc+](file|s3):// grammar. A malformed or
// unrecognized URI is a usage error.
func Parse(raw string) (URI, error) {
	var u URI

	rest := raw
	if trimmed, ok := strings.CutPrefix(rest, "enc+"); ok {
		u.Encrypted = true
		rest = trimmed
	}

	switch {
	case strings.HasPrefix(rest, "file://"):
		u.Scheme = File
		u.Root = strings.TrimPrefix(rest, "file://")
		if u.Root == "" {
			return URI{}, fmt.Errorf("synturi: %q: file:// requires a root path", raw)
		}

	case strings.HasPrefix(rest, "s3://"):
		u.Scheme = S3
		body := strings.TrimPrefix(rest, "s3://")
		if body == "" {
			return URI{}, fmt.Errorf("synturi: %q: s3:// requires a bucket", raw)
		}
		bucket, prefix, _ := strings.Cut(body, "/")
		if bucket == "" {
			return URI{}, fmt.Errorf("synturi: %q: s3:// requires a bucket", raw)
		}
		u.Bucket = bucket
		u.Prefix = prefix

	default:
		return URI{}, fmt.Errorf("synturi: %q: unknown scheme (want file:// or s3://)", raw)
	}

	return u, nil
}
