package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crmtable/internal/cli"
	"crmtable/internal/pipeline"
	"crmtable/internal/storage"
)

// run executes the root command with an isolated config file and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	var out, errOut bytes.Buffer
	cmd := cli.NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", filepath.Join(dir, "config.yaml")}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func dataLines(t *testing.T, out string) []string {
	t.Helper()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 2, "header and summary")
	return lines[1 : len(lines)-1]
}

func TestRootCommand(t *testing.T) {
	root := cli.NewRootCmd()
	assert.Equal(t, "crm-table", root.Use)
	seed, _, err := root.Find([]string{"seed"})
	require.NoError(t, err)
	assert.Equal(t, "seed", seed.Name())
}

func TestPlainOutputShowsFirstPage(t *testing.T) {
	out, err := run(t, "--records", "100", "--plain")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "ID"), "header first")
	assert.Contains(t, out, "LAST MESSAGE SENT AT")
	assert.Len(t, dataLines(t, out), 30)
	assert.Contains(t, out, "showing 30 of 100 matches (100 records, sort none)")
}

func TestPlainOutputLoadsPages(t *testing.T) {
	out, err := run(t, "--records", "100", "--page-size", "20", "--pages", "2")
	require.NoError(t, err)
	assert.Len(t, dataLines(t, out), 60)

	out, err = run(t, "--records", "100", "--pages", "-1")
	require.NoError(t, err)
	assert.Contains(t, out, "showing 100 of 100 matches")
}

func TestPlainOutputSortsAndSearches(t *testing.T) {
	out, err := run(t, "--records", "50", "--sort", "id:desc")
	require.NoError(t, err)
	lines := dataLines(t, out)
	assert.True(t, strings.HasPrefix(lines[0], "50 "), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "49 "), lines[1])
	assert.Contains(t, out, "sort id:desc")

	out, err = run(t, "--records", "50", "--search", "no-such-customer")
	require.NoError(t, err)
	assert.Empty(t, dataLines(t, out))
	assert.Contains(t, out, "showing 0 of 0 matches (50 records")
}

func TestInvalidSortIsRejected(t *testing.T) {
	_, err := run(t, "--records", "10", "--sort", "avatar_url:sideways")
	require.Error(t, err)

	_, err = run(t, "--records", "10", "--sort", "favourite")
	require.ErrorIs(t, err, pipeline.ErrInvalidSortField)

	_, err = run(t, "--records", "10", "--sort", "score:up")
	require.ErrorIs(t, err, pipeline.ErrInvalidSortOrder)
}

func TestUnknownSourceIsRejected(t *testing.T) {
	_, err := run(t, "--source", "ldap")
	require.ErrorIs(t, err, storage.ErrUnknownSource)
}

func TestCSVSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "customers.csv")
	body := "id,name,phone,email,score\n" +
		"7,Ada Lovelace,+44123,ada@example.org,88\n" +
		"3,Alan Turing,+44999,alan@example.org,12\n" +
		"7,Duplicate Ada,,,1\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	out, err := run(t, "--source", "csv", "--path", path, "--sort", "score")
	require.NoError(t, err)
	lines := dataLines(t, out)
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "3 "), lines[0])
	assert.Contains(t, lines[1], "Ada Lovelace")
	assert.NotContains(t, out, "Duplicate Ada")
}

func TestSeedThenBrowseSQLite(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	dbPath := filepath.Join(dir, "customers.db")

	var out bytes.Buffer
	seed := cli.NewRootCmd()
	seed.SetOut(&out)
	seed.SetErr(&out)
	seed.SetArgs([]string{"--config", cfgPath, "seed", "--db", dbPath, "--records", "40"})
	require.NoError(t, seed.Execute())
	assert.Contains(t, out.String(), "wrote 40 customers to "+dbPath)

	out.Reset()
	browse := cli.NewRootCmd()
	browse.SetOut(&out)
	browse.SetErr(&out)
	browse.SetArgs([]string{"--config", cfgPath, "--source", "sqlite", "--path", dbPath, "--pages", "-1"})
	require.NoError(t, browse.Execute())
	assert.Len(t, dataLines(t, out.String()), 40)
	assert.Contains(t, out.String(), "showing 40 of 40 matches (40 records")

	_, err := os.Stat(filepath.Join(dir, "crmtable.log"))
	assert.NoError(t, err, "log file sits next to the config")
}
