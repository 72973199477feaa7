// Package pagination maintains the materialized prefix of a filtered view.
package pagination

import (
	"crmtable/internal/storage"
)

// DefaultPageSize is the number of rows added per page.
const DefaultPageSize = 30

// Request is an in-flight page load. It carries the rows it will append so the
// delayed completion does not need to look at the view again.
type Request struct {
	Generation int
	Page       int
	Start      int
	Records    []storage.Record
}

// Window is the growing prefix of a view. It is not safe for concurrent use; all
// calls are expected from a single event loop.
type Window struct {
	pageSize   int
	page       int
	view       []storage.Record
	count      int
	loading    bool
	generation int
}

// NewWindow returns an empty window. A non-positive pageSize uses DefaultPageSize.
func NewWindow(pageSize int) *Window {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Window{pageSize: pageSize, page: 1}
}

// Reset points the window at view and materializes its first page. Any load still
// in flight will be discarded when it completes.
func (w *Window) Reset(view []storage.Record) {
	w.generation++
	w.view = view
	w.page = 1
	w.count = min(w.pageSize, len(view))
}

// LoadMore starts loading the next page. It reports false when a load is already
// in flight or the view is fully materialized.
func (w *Window) LoadMore() (Request, bool) {
	if w.loading {
		return Request{}, false
	}
	if w.count >= len(w.view) {
		return Request{}, false
	}
	start := w.page * w.pageSize
	if start >= len(w.view) {
		return Request{}, false
	}
	end := min(start+w.pageSize, len(w.view))
	w.loading = true
	return Request{
		Generation: w.generation,
		Page:       w.page + 1,
		Start:      start,
		Records:    w.view[start:end:end],
	}, true
}

// Complete applies a finished request. It always clears the in-flight flag and
// reports whether the rows were appended; a request from before the last Reset
// is dropped.
func (w *Window) Complete(req Request) bool {
	w.loading = false
	if req.Generation != w.generation || req.Start != w.count {
		return false
	}
	w.count += len(req.Records)
	w.page = req.Page
	return true
}

// Rows returns the materialized prefix. Callers must not modify it.
func (w *Window) Rows() []storage.Record {
	return w.view[:w.count:w.count]
}

// Len returns the number of materialized rows.
func (w *Window) Len() int {
	return w.count
}

// Total returns the length of the underlying view.
func (w *Window) Total() int {
	return len(w.view)
}

// Page returns the number of pages materialized.
func (w *Window) Page() int {
	return w.page
}

// PageSize returns the configured page size.
func (w *Window) PageSize() int {
	return w.pageSize
}

// Loading reports whether a load is in flight.
func (w *Window) Loading() bool {
	return w.loading
}

// Exhausted reports whether every row of the view is materialized.
func (w *Window) Exhausted() bool {
	return w.count >= len(w.view)
}
