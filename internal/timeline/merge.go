package timeline

import (
	"sort"
	"strings"
)

// Less is the merged-timeline ordering: known capture times ascending, then
// the nil-time bucket, nil-vs-nil by case-insensitive name. Together with
// stable sorting this is a total order, so every item has one deterministic
// position for scroll-to-item behavior.
func Less(a, b Item) bool {
	switch {
	case a.CapturedAt != nil && b.CapturedAt != nil:
		return a.CapturedAt.Before(*b.CapturedAt)
	case a.CapturedAt != nil:
		return true
	case b.CapturedAt != nil:
		return false
	default:
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	}
}

// Merge combines independently-fetched sources into one chronological
// sequence. Sources may be partial; the merge is recomputed from scratch on
// every change rather than patched incrementally.
func Merge(sources ...[]Item) []Item {
	var merged []Item
	for _, src := range sources {
		merged = append(merged, src...)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return Less(merged[i], merged[j])
	})
	return merged
}
