package cli

import (
	"fmt"
	"strings"

	synclibErrors "github.com/chadvoegele/s7/internal/synclib/errors"
)

// validateFlagForm enforces the command line's flag grammar: every option
// must be spelled --key=value, never a bare --key followed by a separate
// value argument. Positional arguments (the URIs) are untouched.
func validateFlagForm(args []string) error {
	for _, arg := range args {
		if !strings.HasPrefix(arg, "--") {
			continue
		}
		body := strings.TrimPrefix(arg, "--")
		key, value, hasEq := strings.Cut(body, "=")
		if !hasEq || key == "" || value == "" {
			return synclibErrors.Wrap(synclibErrors.ErrUsage, "cli", fmt.Errorf("%q: options must be given as --key=value", arg))
		}
	}
	return nil
}
