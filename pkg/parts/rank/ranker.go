package rank

import (
	"sort"

	"pc-estimate-be/pkg/parts"
)

// DefaultShortlistSize is how many candidates per category survive into
// the prompt.
const DefaultShortlistSize = 8

// Shortlist dedupes, orders and truncates one category's candidates.
//
// Dedup key is (name, category), first occurrence wins, and records
// without a positive price are dropped. CPU and GPU sort by price
// descending so the generator sees the strongest options first; every
// other category sorts ascending to bias toward value. This ordering is
// deliberate, not incidental.
func Shortlist(candidates []parts.Candidate, size int) []parts.Candidate {
	if size <= 0 {
		size = DefaultShortlistSize
	}

	type dedupKey struct {
		name     string
		category string
	}
	seen := make(map[dedupKey]struct{}, len(candidates))
	unique := make([]parts.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Price <= 0 {
			continue
		}
		key := dedupKey{name: c.Name, category: c.Category}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, c)
	}

	sort.SliceStable(unique, func(i, j int) bool {
		if descending(unique[i].Category) {
			return unique[i].Price > unique[j].Price
		}
		return unique[i].Price < unique[j].Price
	})

	if len(unique) > size {
		unique = unique[:size]
	}
	return unique
}

// descending reports whether a category ranks performance-first.
func descending(category string) bool {
	return category == parts.CategoryCPU || category == parts.CategoryGPU
}
