package domains

import (
	"maps"
	"slices"

	"urllistsync/internal/domain"
)

// NewSet dedupes entries and sorts them ascending. Sorting keeps chunk
// boundaries stable between runs over the same source.
func NewSet(entries []string) domain.DomainSet {
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		seen[e] = struct{}{}
	}
	return domain.DomainSet(slices.Sorted(maps.Keys(seen)))
}
