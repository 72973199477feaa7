// Package browse owns the customer table state: the search term, the sort,
// the derived view and its pagination window. Every change goes through one of
// SetSearch, SetSort, ToggleSort, LoadMore or Complete, so the whole flow can be
// exercised without a terminal.
package browse

import (
	"time"

	"github.com/rs/zerolog"

	"crmtable/internal/pagination"
	"crmtable/internal/pipeline"
	"crmtable/internal/storage"
)

// Controller is the single owner of table state. Not safe for concurrent use.
type Controller struct {
	index    *pipeline.Index
	query    pipeline.Query
	view     []storage.Record
	window   *pagination.Window
	revision int
	log      zerolog.Logger
}

// New builds a controller over index and materializes the first page of the
// unfiltered, unsorted view.
func New(index *pipeline.Index, pageSize int, log zerolog.Logger) *Controller {
	c := &Controller{
		index:  index,
		window: pagination.NewWindow(pageSize),
		log:    log,
	}
	c.recompute()
	return c
}

// SetSearch updates the search term. It reports false when the term is unchanged.
func (c *Controller) SetSearch(term string) bool {
	if term == c.query.Search {
		return false
	}
	c.query.Search = term
	c.recompute()
	return true
}

// ToggleSort advances the sort cycle for key.
func (c *Controller) ToggleSort(key storage.Field) pipeline.SortConfig {
	c.SetSort(c.query.Sort.Cycle(key))
	return c.query.Sort
}

// SetSort replaces the sort config.
func (c *Controller) SetSort(cfg pipeline.SortConfig) {
	if !cfg.Active() {
		cfg = pipeline.SortConfig{}
	}
	if cfg == c.query.Sort {
		return
	}
	c.query.Sort = cfg
	c.recompute()
}

// Reset re-materializes the first page of the current view.
func (c *Controller) Reset() {
	c.window.Reset(c.view)
	c.revision++
}

// LoadMore starts a page load; see pagination.Window.LoadMore.
func (c *Controller) LoadMore() (pagination.Request, bool) {
	req, ok := c.window.LoadMore()
	if !ok {
		return req, false
	}
	c.revision++
	c.log.Debug().
		Int("page", req.Page).
		Int("start", req.Start).
		Int("rows", len(req.Records)).
		Msg("page requested")
	return req, true
}

// Complete applies a finished page load.
func (c *Controller) Complete(req pagination.Request) bool {
	applied := c.window.Complete(req)
	c.revision++
	if !applied {
		c.log.Debug().Int("page", req.Page).Msg("stale page dropped")
		return false
	}
	c.log.Debug().Int("page", req.Page).Int("loaded", c.window.Len()).Msg("page applied")
	return true
}

// LoadAll materializes pages synchronously until maxPages loads have run or the
// view is exhausted. A non-positive maxPages loads everything.
func (c *Controller) LoadAll(maxPages int) int {
	loaded := 0
	for maxPages <= 0 || loaded < maxPages {
		req, ok := c.LoadMore()
		if !ok {
			break
		}
		c.Complete(req)
		loaded++
	}
	return loaded
}

func (c *Controller) recompute() {
	start := time.Now()
	c.view = pipeline.Apply(c.index, c.query)
	c.log.Debug().
		Str("search", c.query.Search).
		Str("sort", c.query.Sort.String()).
		Int("matches", len(c.view)).
		Dur("took", time.Since(start)).
		Msg("view recomputed")
	c.Reset()
}

// Rows returns the materialized rows.
func (c *Controller) Rows() []storage.Record {
	return c.window.Rows()
}

// Search returns the current search term.
func (c *Controller) Search() string {
	return c.query.Search
}

// Sort returns the current sort config.
func (c *Controller) Sort() pipeline.SortConfig {
	return c.query.Sort
}

// Matches returns the size of the filtered view.
func (c *Controller) Matches() int {
	return len(c.view)
}

// Total returns the size of the record store.
func (c *Controller) Total() int {
	return c.index.Len()
}

// Loading reports whether a page load is in flight.
func (c *Controller) Loading() bool {
	return c.window.Loading()
}

// Exhausted reports whether the whole view is materialized.
func (c *Controller) Exhausted() bool {
	return c.window.Exhausted()
}

// Page returns the number of materialized pages.
func (c *Controller) Page() int {
	return c.window.Page()
}

// Revision changes whenever the materialized rows or the loading state change.
func (c *Controller) Revision() int {
	return c.revision
}
