package main_test

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	main "github.com/fwojciec/wenji/cmd/wenji"
	"github.com/fwojciec/wenji/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articleHTML = `<html><body><h1>Title A</h1>
<div id="js_content"><p>Body text.</p><p><img src="./assets/a.png"></p></div>
</body></html>`

func newMain() *main.Main {
	m := main.NewMain()
	m.Now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
	return m
}

func writeSourceTree(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	dir := filepath.Join(root, "2024-03-01-a")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "assets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte(articleHTML), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assets", "a.png"), []byte("png"), 0o644))
	return root
}

// Story: CLI Help and Discovery

func TestCLI_ShowsHelpWhenAsked(t *testing.T) {
	t.Parallel()

	// Given: a CLI instance
	m := newMain()
	var stdout, stderr bytes.Buffer

	// When: running with --help flag
	err := m.Run(context.Background(), []string{"--help"}, &stdout, &stderr)

	// Then: help is displayed without error
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "wenji")
	assert.Contains(t, stdout.String(), "--output-file")
}

func TestCLI_ShowsHelpWhenNoArgumentsProvided(t *testing.T) {
	t.Parallel()

	// Given: a CLI instance
	m := newMain()
	var stdout, stderr bytes.Buffer

	// When: running with no arguments
	err := m.Run(context.Background(), []string{}, &stdout, &stderr)

	// Then: help is shown but an error is returned
	require.Error(t, err)
	assert.Contains(t, stdout.String(), "wenji")
}

func TestCLI_PrintsDefaultConfig(t *testing.T) {
	t.Parallel()

	m := newMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--print-config"}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Equal(t, string(config.DefaultYAML), stdout.String())
}

// Story: Converting a source tree

func TestCLI_ConvertsSourceTree(t *testing.T) {
	t.Parallel()

	// Given: a source tree with one article
	root := writeSourceTree(t)
	out := filepath.Join(t.TempDir(), "books", "out.epub")
	m := newMain()
	var stdout, stderr bytes.Buffer

	// When: converting it
	err := m.Run(context.Background(), []string{root, "-o", out}, &stdout, &stderr)

	// Then: the book is written and a summary printed
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "EPUB book created: "+out)
	assert.Contains(t, stdout.String(), "Total size: ")
	assert.Contains(t, stdout.String(), " MB")

	r, err := zip.OpenReader(out)
	require.NoError(t, err)
	defer r.Close()
	assert.Equal(t, "mimetype", r.File[0].Name)

	_, err = os.Stat(out + ".tmp")
	assert.True(t, os.IsNotExist(err))

	// And: progress is logged to stderr
	assert.Contains(t, stderr.String(), "Found 1 article directories")
}

func TestCLI_VerboseLogsDebugRecords(t *testing.T) {
	t.Parallel()

	root := writeSourceTree(t)
	out := filepath.Join(t.TempDir(), "out.epub")
	m := newMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{root, "-o", out, "-v"}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stderr.String(), "level=DEBUG")
	assert.Contains(t, stderr.String(), `msg="write book"`)
}

func TestCLI_ReadsConfigFile(t *testing.T) {
	t.Parallel()

	// Given: a config file naming the source and output
	root := writeSourceTree(t)
	out := filepath.Join(t.TempDir(), "configured.epub")
	cfgPath := filepath.Join(t.TempDir(), "wenji.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("source_dir: "+root+"\noutput_file: "+out+"\nbook:\n  title: Configured\n"), 0o644))
	m := newMain()
	var stdout, stderr bytes.Buffer

	// When: running with only the config flag
	err := m.Run(context.Background(), []string{"-c", cfgPath}, &stdout, &stderr)

	// Then: the configured paths are used
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "EPUB book created: "+out)
	_, err = os.Stat(out)
	assert.NoError(t, err)
}

// Story: Failures

func TestCLI_FailsOnMissingSourceDirectory(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "out.epub")
	m := newMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{filepath.Join(t.TempDir(), "missing"), "-o", out}, &stdout, &stderr)

	require.Error(t, err)
	assert.Contains(t, stderr.String(), "error:")
	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
	_, statErr = os.Stat(out + ".tmp")
	assert.True(t, os.IsNotExist(statErr))
}

func TestCLI_RejectsUnknownFallback(t *testing.T) {
	t.Parallel()

	m := newMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{".", "--fallback", "magic"}, &stdout, &stderr)

	require.Error(t, err)
	assert.Contains(t, stderr.String(), "fallback_extractor")
}

func TestCLI_FailsOnMissingConfigFile(t *testing.T) {
	t.Parallel()

	m := newMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"-c", filepath.Join(t.TempDir(), "nope.yaml")}, &stdout, &stderr)

	require.Error(t, err)
	assert.Contains(t, stderr.String(), "config file not found")
}
