// Package pipeline derives the filtered and sorted view of a record store.
//
// Apply is a pure function of (store, search term, sort config). Filtering is
// a case-insensitive substring match on name and email plus a literal match on
// phone; sorting is stable so equal records keep store order.
package pipeline

import (
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"crmtable/internal/storage"
)

// parallelThreshold is the record count above which filtering fans out.
const parallelThreshold = 1 << 16

// Index holds the lowercased search material for a store, computed once.
type Index struct {
	records []storage.Record
	names   []string
	emails  []string
	workers int
}

// NewIndex prepares store for repeated searching.
func NewIndex(store *storage.Store) *Index {
	records := store.All()
	ix := &Index{
		records: records,
		names:   make([]string, len(records)),
		emails:  make([]string, len(records)),
		workers: runtime.GOMAXPROCS(0),
	}
	for i, r := range records {
		ix.names[i] = strings.ToLower(r.Name)
		ix.emails[i] = strings.ToLower(r.Email)
	}
	return ix
}

// Len returns the number of indexed records.
func (ix *Index) Len() int {
	return len(ix.records)
}

// Records returns the indexed records in store order.
func (ix *Index) Records() []storage.Record {
	return ix.records
}

// Query is the user-controlled input to the pipeline.
type Query struct {
	Search string
	Sort   SortConfig
}

// Apply returns the records of ix matching q.Search, ordered by q.Sort.
// With an empty search and no sort the store slice itself is returned.
func Apply(ix *Index, q Query) []storage.Record {
	return Sort(ix.Filter(q.Search), q.Sort)
}

// matches reports whether record i satisfies term, which must already be lowercased.
func (ix *Index) matches(i int, term string) bool {
	return strings.Contains(ix.names[i], term) ||
		strings.Contains(ix.emails[i], term) ||
		strings.Contains(ix.records[i].Phone, term)
}

// Filter returns the records matching search in store order.
func (ix *Index) Filter(search string) []storage.Record {
	if search == "" {
		return ix.records
	}
	term := strings.ToLower(search)
	n := len(ix.records)
	if n < parallelThreshold || ix.workers < 2 {
		return ix.filterRange(term, 0, n)
	}

	chunks := ix.workers
	size := (n + chunks - 1) / chunks
	parts := make([][]storage.Record, chunks)
	var g errgroup.Group
	for c := 0; c < chunks; c++ {
		lo := c * size
		hi := min(lo+size, n)
		if lo >= hi {
			break
		}
		c := c
		g.Go(func() error {
			parts[c] = ix.filterRange(term, lo, hi)
			return nil
		})
	}
	_ = g.Wait()

	total := 0
	for _, p := range parts {
		total += len(p)
	}
	out := make([]storage.Record, 0, total)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func (ix *Index) filterRange(term string, lo, hi int) []storage.Record {
	var out []storage.Record
	for i := lo; i < hi; i++ {
		if ix.matches(i, term) {
			out = append(out, ix.records[i])
		}
	}
	return out
}
