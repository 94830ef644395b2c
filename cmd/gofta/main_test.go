package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofta/gofta/internal/fterr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func silentLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunWritesOutputDirectoryOnSuccess(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tree.fta")
	source := "- times: 1\n\n" +
		"Event: A\n- model_type: Fixed\n- probability: 0.1\n- intensity: 0\n\n" +
		"Gate: TOP\n- type: NULL\n- inputs: A\n"
	require.NoError(t, os.WriteFile(path, []byte(source), 0o644))

	err := run(path, silentLogger(), false)
	require.NoError(t, err)

	outDir := path + ".out"
	assert.DirExists(t, outDir)
	assert.FileExists(t, filepath.Join(outDir, "events.tsv"))
	assert.FileExists(t, filepath.Join(outDir, "gates.tsv"))
	assert.FileExists(t, filepath.Join(outDir, "cut_sets_TOP.tsv"))
}

func TestRunReplacesStaleOutputDirectoryContents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tree.fta")
	source := "- times: 1\n\n" +
		"Event: A\n- model_type: Fixed\n- probability: 0.1\n- intensity: 0\n\n" +
		"Gate: TOP\n- type: NULL\n- inputs: A\n"
	require.NoError(t, os.WriteFile(path, []byte(source), 0o644))

	outDir := path + ".out"
	require.NoError(t, os.MkdirAll(outDir, 0o755))
	stale := filepath.Join(outDir, "stale.tsv")
	require.NoError(t, os.WriteFile(stale, []byte("leftover"), 0o644))

	require.NoError(t, run(path, silentLogger(), false))
	assert.NoFileExists(t, stale)
	assert.FileExists(t, filepath.Join(outDir, "events.tsv"))
}

func TestRunReturnsFaultTreeTextErrorOnBadInput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.fta")
	require.NoError(t, os.WriteFile(path, []byte("not a valid line\n"), 0o644))

	err := run(path, silentLogger(), false)
	require.Error(t, err)
	var fe *fterr.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "InvalidLine", fe.Code)
}

func TestRunReturnsPlainErrorForMissingFile(t *testing.T) {
	err := run(filepath.Join(t.TempDir(), "missing.fta"), silentLogger(), false)
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}
