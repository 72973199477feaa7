package browse

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crmtable/internal/pipeline"
	"crmtable/internal/storage"
)

func newController(t *testing.T, records []storage.Record) *Controller {
	t.Helper()
	store, err := storage.NewStore(records)
	require.NoError(t, err)
	return New(pipeline.NewIndex(store), 30, zerolog.Nop())
}

func rowIDs(c *Controller) []int64 {
	rows := c.Rows()
	out := make([]int64, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func TestControllerPagesThroughHundredRecords(t *testing.T) {
	c := newController(t, storage.Generate(storage.GenerateOptions{Count: 100, Seed: 1}))
	assert.Len(t, c.Rows(), 30)
	assert.Equal(t, 100, c.Matches())
	assert.Equal(t, 100, c.Total())

	req, ok := c.LoadMore()
	require.True(t, ok)
	assert.True(t, c.Loading())
	_, again := c.LoadMore()
	assert.False(t, again)
	require.True(t, c.Complete(req))
	assert.Len(t, c.Rows(), 60)

	assert.Equal(t, 2, c.LoadAll(0))
	assert.Len(t, c.Rows(), 100)
	assert.True(t, c.Exhausted())
	assert.Equal(t, 0, c.LoadAll(0))
	assert.Len(t, c.Rows(), 100)
}

func TestSearchResetsWindow(t *testing.T) {
	records := storage.Generate(storage.GenerateOptions{Count: 500, Seed: 2})
	c := newController(t, records)
	c.LoadAll(3)
	require.Len(t, c.Rows(), 120)

	rev := c.Revision()
	assert.True(t, c.SetSearch("a"))
	assert.NotEqual(t, rev, c.Revision())
	assert.Equal(t, 1, c.Page())
	assert.Len(t, c.Rows(), min(30, c.Matches()))
	assert.False(t, c.SetSearch("a"), "same term is a no-op")
}

func TestMillionRecordsFilteredToTwo(t *testing.T) {
	records := make([]storage.Record, 1_000_000)
	for i := range records {
		records[i] = storage.Record{ID: int64(i + 1), Name: "Customer Name", Phone: "+917600060001", Email: "john.doe@gmail.com", Score: "23"}
	}
	records[10].Name = "Zed Zebra"
	records[999_998].Email = "zebra@zoo.example"
	c := newController(t, records)

	c.SetSearch("ZEBRA")
	assert.Equal(t, 2, c.Matches())
	assert.Equal(t, []int64{11, 999_999}, rowIDs(c))

	_, ok := c.LoadMore()
	assert.False(t, ok)
	assert.Len(t, c.Rows(), 2)
}

func TestToggleSortCyclesAndResets(t *testing.T) {
	c := newController(t, []storage.Record{
		{ID: 1, Score: "23"},
		{ID: 2, Score: "15"},
		{ID: 3, Score: "23"},
	})

	cfg := c.ToggleSort(storage.FieldScore)
	assert.Equal(t, pipeline.Ascending, cfg.Direction)
	assert.Equal(t, []int64{2, 1, 3}, rowIDs(c))

	cfg = c.ToggleSort(storage.FieldScore)
	assert.Equal(t, pipeline.Descending, cfg.Direction)
	assert.Equal(t, []int64{1, 3, 2}, rowIDs(c))

	cfg = c.ToggleSort(storage.FieldScore)
	assert.False(t, cfg.Active())
	assert.Equal(t, []int64{1, 2, 3}, rowIDs(c))

	c.ToggleSort(storage.FieldScore)
	cfg = c.ToggleSort(storage.FieldName)
	assert.Equal(t, pipeline.SortConfig{Key: storage.FieldName, Direction: pipeline.Ascending}, cfg)
}

func TestStaleLoadAfterSearchIsDropped(t *testing.T) {
	c := newController(t, storage.Generate(storage.GenerateOptions{Count: 300, Seed: 4}))
	req, ok := c.LoadMore()
	require.True(t, ok)

	c.SetSort(pipeline.SortConfig{Key: storage.FieldEmail, Direction: pipeline.Descending})
	before := rowIDs(c)
	assert.False(t, c.Complete(req))
	assert.Equal(t, before, rowIDs(c))
	assert.False(t, c.Loading())

	req, ok = c.LoadMore()
	require.True(t, ok)
	assert.True(t, c.Complete(req))
	assert.Len(t, c.Rows(), 60)
}

func TestSetSortNormalizesInactive(t *testing.T) {
	c := newController(t, storage.Generate(storage.GenerateOptions{Count: 10}))
	rev := c.Revision()
	c.SetSort(pipeline.SortConfig{Key: storage.FieldName})
	assert.Equal(t, pipeline.SortConfig{}, c.Sort())
	assert.Equal(t, rev, c.Revision(), "no change, no recompute")
}
