package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcnp-csg/internal/export"
)

const sampleDeck = `sample
1 0 -1 fill=1
2 0 1
3 0 -2 u=1
4 0 2 u=1

1 so 10
2 so 1
9 so 20
`

func writeDeck(t *testing.T, src string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "deck.i")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer

	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)

	err := root.Execute()

	return out.String(), err
}

func TestCheck(t *testing.T) {
	path := writeDeck(t, sampleDeck)

	out, err := run(t, "check", path)
	require.NoError(t, err)
	assert.Contains(t, out, "[unused-surface]")
	assert.Contains(t, out, "4 cells, 3 surfaces, 0 data cards, 4 instances")

	_, err = run(t, "check", "--strict", path)
	assert.ErrorIs(t, err, errStrict)
}

func TestCheck_BuildError(t *testing.T) {
	path := writeDeck(t, "bad\n1 0 -7\n\n1 so 1\n")

	_, err := run(t, "check", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "surface 7")
}

func TestCheck_ConfigFile(t *testing.T) {
	path := writeDeck(t, sampleDeck)
	cfg := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("strict: true\nlog_level: debug\n"), 0o644))

	_, err := run(t, "--config", cfg, "check", path)
	assert.ErrorIs(t, err, errStrict)

	_, err = run(t, "--config", cfg, "--strict=false", "check", path)
	assert.NoError(t, err)

	_, err = run(t, "--log-format", "xml", "check", path)
	assert.Error(t, err)
}

func TestExport(t *testing.T) {
	path := writeDeck(t, sampleDeck)

	out, err := run(t, "export", "--tree", path)
	require.NoError(t, err)

	m, err := export.Unmarshal([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, "sample", m.Title)
	assert.Len(t, m.Cells, 4)
	assert.Len(t, m.Instances, 4)
	assert.NotNil(t, m.Cells[0].Tree)

	file := filepath.Join(t.TempDir(), "out.yaml")
	_, err = run(t, "export", "--instances=false", "-o", file, path)
	require.NoError(t, err)

	data, err := os.ReadFile(file)
	require.NoError(t, err)

	m, err = export.Unmarshal(data)
	require.NoError(t, err)
	assert.Empty(t, m.Instances)
}

func TestCells(t *testing.T) {
	path := writeDeck(t, sampleDeck)

	out, err := run(t, "cells", "--universe", "1", path)
	require.NoError(t, err)
	assert.Contains(t, out, "CELL")
	assert.Contains(t, out, "-2")
	assert.NotContains(t, out, "[1]")

	out, err = run(t, "cells", path)
	require.NoError(t, err)
	assert.Contains(t, out, "[1]")
}

func TestDump(t *testing.T) {
	path := writeDeck(t, sampleDeck)

	out, err := run(t, "dump", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Title: (string) (len=6) \"sample\"")
}
