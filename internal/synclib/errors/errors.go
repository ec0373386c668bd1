// Package errors classifies the errors that cross package boundaries in
// this tool into a small set of categories, the way
// internal/cloud/storage/errors.go classifies storage errors: sentinel
// values callers can check with errors.Is, plus string-sniffing helpers for
// classifying errors returned by libraries that don't expose sentinels of
// their own.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Category sentinels. Operation errors are wrapped with one of these so a
// caller several layers up can tell what kind of failure it's looking at
// without matching on message text.
var (
	// ErrUsage marks a command-line invocation that cannot be parsed:
	// bad flag grammar, wrong argument count, an unparsable URI.
	ErrUsage = errors.New("usage error")
	// ErrConfiguration marks a problem with --secrets or the flags
	// derived from it: missing credentials, an unreadable file, a
	// scheme that needs a password it wasn't given.
	ErrConfiguration = errors.New("configuration error")
	// ErrIO marks a failure talking to a backend: a filesystem call or
	// an object-store request that failed.
	ErrIO = errors.New("I/O error")
	// ErrIntegrity marks a body or filename that failed authentication,
	// or a store holding something this tool didn't write.
	ErrIntegrity = errors.New("integrity error")
	// ErrCapacityRefusal marks a transfer an endpoint declined because
	// of a size ceiling, not a transient failure.
	ErrCapacityRefusal = errors.New("capacity refusal")
)

// Wrap annotates err with op and category so Is* below can classify it and
// %v still prints a readable chain.
func Wrap(category error, op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", op, category, err)
}

func IsUsageError(err error) bool         { return errors.Is(err, ErrUsage) }
func IsConfigurationError(err error) bool { return errors.Is(err, ErrConfiguration) }
func IsIOError(err error) bool            { return errors.Is(err, ErrIO) }
func IsIntegrityError(err error) bool     { return errors.Is(err, ErrIntegrity) }
func IsCapacityRefusal(err error) bool    { return errors.Is(err, ErrCapacityRefusal) }

// IsCredentialError reports whether err looks like an authentication or
// authorization failure from an underlying library that doesn't give us a
// typed error to check, such as the AWS SDK.
func IsCredentialError(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	for _, indicator := range []string{"403", "unauthorized", "expiredtoken", "invalid access key", "signature"} {
		if strings.Contains(s, indicator) {
			return true
		}
	}
	return false
}

// IsNetworkError reports whether err looks like a transient network
// failure rather than a configuration or integrity problem.
func IsNetworkError(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	for _, indicator := range []string{"connection", "timeout", "network", "eof", "broken pipe"} {
		if strings.Contains(s, indicator) {
			return true
		}
	}
	return false
}
