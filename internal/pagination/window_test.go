package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crmtable/internal/storage"
)

func makeView(n int) []storage.Record {
	view := make([]storage.Record, n)
	for i := range view {
		view[i] = storage.Record{ID: int64(i + 1)}
	}
	return view
}

func loadPage(t *testing.T, w *Window) {
	t.Helper()
	req, ok := w.LoadMore()
	require.True(t, ok)
	require.True(t, w.Complete(req))
}

func TestResetMaterializesFirstPage(t *testing.T) {
	w := NewWindow(0)
	assert.Equal(t, DefaultPageSize, w.PageSize())

	w.Reset(makeView(100))
	assert.Equal(t, 30, w.Len())
	assert.Equal(t, 1, w.Page())
	assert.Equal(t, 100, w.Total())
	assert.False(t, w.Exhausted())
}

func TestHundredRecordsScenario(t *testing.T) {
	w := NewWindow(30)
	w.Reset(makeView(100))
	require.Equal(t, 30, w.Len())

	loadPage(t, w)
	assert.Equal(t, 60, w.Len())
	loadPage(t, w)
	loadPage(t, w)
	assert.Equal(t, 100, w.Len())
	assert.Equal(t, 4, w.Page())
	assert.True(t, w.Exhausted())

	for i := 0; i < 3; i++ {
		_, ok := w.LoadMore()
		assert.False(t, ok)
		assert.Equal(t, 100, w.Len())
	}
	assert.False(t, w.Loading())
}

func TestResetThenNLoads(t *testing.T) {
	for _, total := range []int{0, 1, 29, 30, 31, 59, 60, 61, 95, 250} {
		w := NewWindow(30)
		view := makeView(total)
		w.Reset(view)
		for n := 0; n <= 10; n++ {
			assert.Equal(t, min((n+1)*30, total), w.Len(), "total=%d n=%d", total, n)
			assert.Equal(t, view[:w.Len()], w.Rows())
			if req, ok := w.LoadMore(); ok {
				w.Complete(req)
			}
		}
	}
}

func TestLoadMoreIsNotReentrant(t *testing.T) {
	w := NewWindow(30)
	w.Reset(makeView(100))

	first, ok := w.LoadMore()
	require.True(t, ok)
	assert.True(t, w.Loading())

	_, ok = w.LoadMore()
	assert.False(t, ok, "second load while in flight must be dropped")

	require.True(t, w.Complete(first))
	assert.Equal(t, 60, w.Len())
	assert.False(t, w.Loading())
}

func TestShortFinalPage(t *testing.T) {
	w := NewWindow(30)
	w.Reset(makeView(45))
	req, ok := w.LoadMore()
	require.True(t, ok)
	assert.Len(t, req.Records, 15)
	assert.Equal(t, 30, req.Start)
	w.Complete(req)
	assert.Equal(t, 45, w.Len())
	_, ok = w.LoadMore()
	assert.False(t, ok)
}

func TestSmallViewHasNothingToLoad(t *testing.T) {
	w := NewWindow(30)
	w.Reset(makeView(2))
	assert.Equal(t, 2, w.Len())
	_, ok := w.LoadMore()
	assert.False(t, ok)
	assert.False(t, w.Loading())
}

func TestStaleCompletionIsDiscarded(t *testing.T) {
	w := NewWindow(30)
	w.Reset(makeView(100))
	req, ok := w.LoadMore()
	require.True(t, ok)

	narrowed := makeView(40)
	w.Reset(narrowed)
	assert.True(t, w.Loading(), "reset does not cancel the outstanding load")

	assert.False(t, w.Complete(req))
	assert.False(t, w.Loading())
	assert.Equal(t, 30, w.Len())
	assert.Equal(t, narrowed[:30], w.Rows())

	loadPage(t, w)
	assert.Equal(t, 40, w.Len())
}

func TestRowsCannotClobberView(t *testing.T) {
	view := makeView(60)
	w := NewWindow(30)
	w.Reset(view)
	rows := w.Rows()
	_ = append(rows, storage.Record{ID: 999})
	assert.Equal(t, int64(31), view[30].ID)
}
