package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	store, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, store.Path())
	assert.Equal(t, DefaultRecords, store.Config.Records)
	assert.Equal(t, DefaultPageSize, store.Config.PageSize)
	assert.Equal(t, DefaultLoadDelay, store.Config.LoadDelay)
	assert.Equal(t, time.Duration(0), store.Config.SearchDebounce)
	assert.Equal(t, []string{"Kartikey Mishra"}, store.Config.AddedBy)
	assert.Equal(t, "synthetic", store.Config.Source.Kind)

	_, err = os.Stat(path)
	require.NoError(t, err, "defaults are written on first load")
}

func TestLoadReadsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := strings.Join([]string{
		"records: 500",
		"page_size: 10",
		"load_delay: 250ms",
		"search_debounce: 50ms",
		"timezone: Asia/Kolkata",
		"added_by: [Alice, Bob]",
		"source:",
		"  kind: csv",
		"  path: /tmp/customers.csv",
		"log:",
		"  level: debug",
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	store, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 500, store.Config.Records)
	assert.Equal(t, 10, store.Config.PageSize)
	assert.Equal(t, 250*time.Millisecond, store.Config.LoadDelay)
	assert.Equal(t, 50*time.Millisecond, store.Config.SearchDebounce)
	assert.Equal(t, []string{"Alice", "Bob"}, store.Config.AddedBy)
	assert.Equal(t, SourceConfig{Kind: "csv", Path: "/tmp/customers.csv"}, store.Config.Source)
	assert.Equal(t, "debug", store.Config.Log.Level)
	assert.Equal(t, "Asia/Kolkata", store.Location().String())
}

func TestLoadRejectsBrokenYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("records: [1, 2"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	store, err := Load(path)
	require.NoError(t, err)

	store.Config.PageSize = 45
	store.Config.LoadDelay = 2 * time.Second
	require.NoError(t, store.Save())

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 45, reloaded.Config.PageSize)
	assert.Equal(t, 2*time.Second, reloaded.Config.LoadDelay)
}

func TestLocationFallsBackToUTC(t *testing.T) {
	var nilStore *Store
	assert.Equal(t, time.UTC, nilStore.Location())

	store := &Store{Config: Data{Timezone: "Mars/Olympus"}}
	assert.Equal(t, time.UTC, store.Location())
}

func TestInitLoggerWritesToFile(t *testing.T) {
	dir := t.TempDir()
	store := &Store{path: filepath.Join(dir, "config.yaml")}
	path := store.LogPath()
	assert.Equal(t, filepath.Join(dir, "crmtable.log"), path)

	logger, closer, err := InitLogger("bogus", path)
	require.NoError(t, err)
	logger.Debug().Msg("hidden")
	logger.Info().Str("k", "v").Msg("visible")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"visible"`)
	assert.NotContains(t, string(data), "hidden")
}
