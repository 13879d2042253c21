// Package report turns a link counter into a filtered, ordered list of
// entries and renders that list in one of several textual formats.
package report

import (
	"sort"

	"github.com/adrian5/wikidigest-link-count/linkpass"
)

// Entry is one ranked row of output: a (namespace, title) key together
// with its accumulated link count.
type Entry struct {
	Namespace linkpass.Namespace
	Title     linkpass.PageTitle
	Count     linkpass.LinkCount
}

// Filter drops every (namespace, title) whose total link count is below
// threshold (spec §4.8 step 1).
func Filter(counts linkpass.LinkCounter, threshold uint64) []Entry {
	entries := make([]Entry, 0)
	for ns, inner := range counts {
		for title, count := range inner {
			if count.Total() < threshold {
				continue
			}
			entries = append(entries, Entry{Namespace: ns, Title: title, Count: count})
		}
	}
	return entries
}

// Sort orders entries in descending order of total link count (spec
// §4.8 step 2). Ties are broken by ascending title, then ascending
// namespace, so that repeated runs over the same input produce
// byte-identical output (spec §8's idempotence property) without relying
// on the order of iteration over the underlying maps.
func Sort(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if ta, tb := a.Count.Total(), b.Count.Total(); ta != tb {
			return ta > tb
		}
		if a.Title != b.Title {
			return a.Title < b.Title
		}
		return a.Namespace < b.Namespace
	})
}

// FilterAndSort is the combined post-processing step described in spec §4.8.
func FilterAndSort(counts linkpass.LinkCounter, threshold uint64) []Entry {
	entries := Filter(counts, threshold)
	Sort(entries)
	return entries
}
