// Package syncrunner drives a sync or restore between two endpoints,
// applying the differ's actions in order and reporting progress through a
// logger.
package syncrunner

import (
	"context"
	"fmt"

	"github.com/chadvoegele/s7/internal/differ"
	"github.com/chadvoegele/s7/internal/endpoint"
	"github.com/chadvoegele/s7/internal/logging"
	synclibErrors "github.com/chadvoegele/s7/internal/synclib/errors"
)

// Summary tallies what a sync did.
type Summary struct {
	Added   int
	Updated int
	Deleted int
	Skipped int
}

// Sync lists source and target, diffs them, and applies the resulting
// actions in order against target. Actions are applied one at a time; a
// write to one path completes before the next action starts.
func Sync(ctx context.Context, source, target endpoint.Endpoint, log *logging.Logger) (Summary, error) {
	log.Info().Str("source", source.ToString()).Str("target", target.ToString()).Msg("Starting sync")

	sourceEntries, err := source.List(ctx)
	if err != nil {
		return Summary{}, synclibErrors.Wrap(synclibErrors.ErrIO, "syncrunner", fmt.Errorf("list source: %w", err))
	}
	targetEntries, err := target.List(ctx)
	if err != nil {
		return Summary{}, synclibErrors.Wrap(synclibErrors.ErrIO, "syncrunner", fmt.Errorf("list target: %w", err))
	}

	actions := differ.Diff(sourceEntries, targetEntries)

	var summary Summary
	for _, action := range actions {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		switch action.Kind {
		case endpoint.Add, endpoint.Update:
			if err := applyWrite(ctx, source, target, action, log, &summary); err != nil {
				return summary, err
			}
		case endpoint.Delete:
			log.Info().Str("path", action.Entry.Path).Msg("Removing")
			if err := target.Remove(ctx, action.Entry.Path); err != nil {
				return summary, synclibErrors.Wrap(synclibErrors.ErrIO, "syncrunner",
					fmt.Errorf("remove %s: %w", action.Entry.Path, err))
			}
			summary.Deleted++
		}
	}

	log.Info().
		Int("added", summary.Added).
		Int("updated", summary.Updated).
		Int("deleted", summary.Deleted).
		Int("skipped", summary.Skipped).
		Msg("Sync complete")

	return summary, nil
}

func applyWrite(ctx context.Context, source, target endpoint.Endpoint, action endpoint.Action, log *logging.Logger, summary *Summary) error {
	path := action.Entry.Path

	size, err := source.Size(ctx, path)
	if err != nil {
		return synclibErrors.Wrap(synclibErrors.ErrIO, "syncrunner", fmt.Errorf("size %s: %w", path, err))
	}

	if !target.IsWriteSupported(size) {
		log.Warn().Str("path", path).Int64("size", size).Msg("Skipping")
		summary.Skipped++
		return nil
	}

	verb := "Copying"
	if action.Kind == endpoint.Update {
		verb = "Updating"
	}
	log.Info().Str("path", path).Msg(verb)

	r, err := source.Read(ctx, path)
	if err != nil {
		return synclibErrors.Wrap(synclibErrors.ErrIO, "syncrunner", fmt.Errorf("read %s: %w", path, err))
	}
	defer r.Close()

	if err := target.Write(ctx, path, size, r); err != nil {
		return synclibErrors.Wrap(synclibErrors.ErrIO, "syncrunner", fmt.Errorf("write %s: %w", path, err))
	}

	if action.Kind == endpoint.Add {
		summary.Added++
	} else {
		summary.Updated++
	}
	return nil
}
