package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func TestHistoryCmd_ImportAndList(t *testing.T) {
	flags := newTestFlags(t)
	app := newTestApp(t, flags)
	dir := t.TempDir()

	writeFile(t, dir, "2026/q1/msa.json", sampleReport)
	writeFile(t, dir, "2026/q2/nda.yaml", "id: nda-1\ntitle: NDA review\ndifferences:\n  - category: Scope\n    severity: low\n")
	writeFile(t, dir, "notes.txt", "ignored")

	_, err := run(t, NewHistoryCmd(flags, app), "history", "import", filepath.Join(dir, "**", "*.{json,yaml}"))
	require.NoError(t, err)

	entries, err := app.History.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	out, err := run(t, NewHistoryCmd(flags, app), "history", "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "NDA review")
	assert.Contains(t, out, "MSA 2024 vs MSA 2026")
	assert.Contains(t, out, "9f8e7d6c")

	out, err = run(t, NewHistoryCmd(flags, app), "history", "ls", "--json")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)

	var first historyJSON
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.NotEmpty(t, first.ID)
	assert.NotEmpty(t, first.ImportedAt)
}

func TestHistoryCmd_ImportFailures(t *testing.T) {
	flags := newTestFlags(t)
	app := newTestApp(t, flags)
	dir := t.TempDir()

	writeFile(t, dir, "good.json", sampleReport)
	writeFile(t, dir, "bad.json", "{not json")

	_, err := run(t, NewHistoryCmd(flags, app), "history", "import", filepath.Join(dir, "*.json"))
	require.Error(t, err, "exits non-zero when a file fails")

	entries, err := app.History.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, 1, "good files are still imported")
}

func TestHistoryCmd_ImportRequiresPattern(t *testing.T) {
	flags := newTestFlags(t)

	_, err := run(t, NewHistoryCmd(flags, newTestApp(t, flags)), "history", "import")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "glob pattern")
}

func TestHistoryCmd_Clear(t *testing.T) {
	flags := newTestFlags(t)
	app := newTestApp(t, flags)
	path := writeFile(t, t.TempDir(), "report.json", sampleReport)

	_, err := run(t, NewHistoryCmd(flags, app), "history", "import", path)
	require.NoError(t, err)

	_, err = run(t, NewHistoryCmd(flags, app), "history", "clear", "--yes")
	require.NoError(t, err)

	entries, err := app.History.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestHistoryCmd_Remove(t *testing.T) {
	flags := newTestFlags(t)
	app := newTestApp(t, flags)
	path := writeFile(t, t.TempDir(), "report.json", sampleReport)

	_, err := run(t, NewHistoryCmd(flags, app), "history", "import", path)
	require.NoError(t, err)

	_, err = run(t, NewHistoryCmd(flags, app), "history", "rm", "9f8e")
	require.NoError(t, err)

	entries, err := app.History.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = run(t, NewHistoryCmd(flags, app), "history", "rm", "9f8e")
	require.Error(t, err)
}

func TestHistoryIDCompleter(t *testing.T) {
	flags := newTestFlags(t)
	app := newTestApp(t, flags)
	path := writeFile(t, t.TempDir(), "report.json", sampleReport)

	_, err := run(t, NewHistoryCmd(flags, app), "history", "import", path)
	require.NoError(t, err)

	var buf bytes.Buffer
	root := &cli.Command{Name: "redline", Writer: &buf}
	HistoryIDCompleter(app)(context.Background(), root)

	assert.Equal(t, "9f8e7d6c-0000-4000-8000-000000000001:MSA 2024 vs MSA 2026\n", buf.String())
}
