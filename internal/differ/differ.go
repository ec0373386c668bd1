// Package differ implements the sort-merge comparison between a source and
// target listing, producing the actions the sync driver carries out.
package differ

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/chadvoegele/s7/internal/endpoint"
)

// pathCollator provides a total, deterministic, locale-aware ordering over
// entry paths. Go's byte-wise string comparison is deterministic but not
// locale-aware and doesn't agree with how the underlying filesystems or
// object stores may present names to a user; collate.New gives the same
// total order every run regardless of GOOS or process locale.
var pathCollator = collate.New(language.Und)

// Diff sorts source and target by path and walks them with two cursors,
// producing add/update/delete actions. Neither input needs to be sorted on
// entry.
//
// Duplicate paths within a single listing are a caller error: behavior is
// unspecified (entries may be silently skipped or double-processed) but
// Diff will not loop forever.
func Diff(source, target []endpoint.Entry) []endpoint.Action {
	src := append([]endpoint.Entry(nil), source...)
	tgt := append([]endpoint.Entry(nil), target...)

	sortByPath(src)
	sortByPath(tgt)

	var actions []endpoint.Action
	i, j := 0, 0

	for i < len(src) || j < len(tgt) {
		switch {
		case j >= len(tgt) || (i < len(src) && comparePaths(src[i].Path, tgt[j].Path) < 0):
			actions = append(actions, endpoint.Action{Kind: endpoint.Add, Entry: src[i]})
			i++
		case i >= len(src) || comparePaths(src[i].Path, tgt[j].Path) > 0:
			actions = append(actions, endpoint.Action{Kind: endpoint.Delete, Entry: tgt[j]})
			j++
		default:
			if needsUpdate(src[i], tgt[j]) {
				actions = append(actions, endpoint.Action{Kind: endpoint.Update, Entry: src[i]})
			}
			i++
			j++
		}
	}

	return actions
}

// needsUpdate implements the asymmetric mtime tie-break: a source newer
// than target by at least 1ms triggers an update, but a source that is
// older than target never does, since a target store can legitimately
// report a slightly later mtime than the source filesystem without the
// content having changed.
func needsUpdate(source, target endpoint.Entry) bool {
	if source.Size != target.Size {
		return true
	}
	return source.MtimeMs-target.MtimeMs >= 1
}

func sortByPath(entries []endpoint.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return comparePaths(entries[i].Path, entries[j].Path) < 0
	})
}

func comparePaths(a, b string) int {
	return pathCollator.CompareString(a, b)
}
