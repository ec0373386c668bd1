package syncrunner

import (
	"context"
	"fmt"

	"github.com/chadvoegele/s7/internal/endpoint"
	"github.com/chadvoegele/s7/internal/logging"
	synclibErrors "github.com/chadvoegele/s7/internal/synclib/errors"
)

// restorable is implemented by object-store-backed endpoints, and by the
// encryption wrapper around one.
type restorable interface {
	endpoint.Endpoint
	endpoint.Restorable
}

// RestoreSummary tallies what a restore command did.
type RestoreSummary struct {
	Requested int
	AlreadyOngoing int
	AlreadyAvailable int
}

// Restore iterates target's listing and, for each archived entry without an
// ongoing or completed retrieval, issues a restore request. It is
// idempotent: running it again while a restore is in flight does nothing
// further for that entry.
func Restore(ctx context.Context, target endpoint.Endpoint, log *logging.Logger) (RestoreSummary, error) {
	r, ok := target.(restorable)
	if !ok {
		return RestoreSummary{}, synclibErrors.Wrap(synclibErrors.ErrUsage, "syncrunner",
			fmt.Errorf("%s does not support restore", target.ToString()))
	}

	log.Info().Str("target", target.ToString()).Msg("Starting restore")

	entries, err := r.List(ctx)
	if err != nil {
		return RestoreSummary{}, synclibErrors.Wrap(synclibErrors.ErrIO, "syncrunner",
			fmt.Errorf("list %s: %w", target.ToString(), err))
	}

	var summary RestoreSummary
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		status, err := r.Head(ctx, e.Path)
		if err != nil {
			return summary, synclibErrors.Wrap(synclibErrors.ErrIO, "syncrunner", fmt.Errorf("head %s: %w", e.Path, err))
		}

		switch {
		case !status.Archived:
			continue
		case status.Ongoing:
			summary.AlreadyOngoing++
		case status.Available:
			summary.AlreadyAvailable++
		default:
			log.Info().Str("path", e.Path).Msg("Requesting restore")
			if err := r.Restore(ctx, e.Path); err != nil {
				return summary, synclibErrors.Wrap(synclibErrors.ErrIO, "syncrunner", fmt.Errorf("restore %s: %w", e.Path, err))
			}
			summary.Requested++
		}
	}

	log.Info().
		Int("requested", summary.Requested).
		Int("already_ongoing", summary.AlreadyOngoing).
		Int("already_available", summary.AlreadyAvailable).
		Msg("Restore complete")

	return summary, nil
}
