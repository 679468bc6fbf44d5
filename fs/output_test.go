package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/wenji/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Story: Atomic Book Output
// The book is written to a temporary sibling and renamed into place.

func TestOutputFile_CreateWritesToTempFile(t *testing.T) {
	t.Parallel()

	// Given an output file in a fresh directory
	base := t.TempDir()
	path := filepath.Join(base, "book.epub")
	out := fs.NewOutputFile(path)

	// When I write to it
	w, err := out.Create()
	require.NoError(t, err)
	_, err = w.Write([]byte("data"))
	require.NoError(t, err)

	// Then the temporary file exists
	_, err = os.Stat(path + ".tmp")
	require.NoError(t, err, "temp file should exist while writing")

	// And the final file does not exist yet
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "final file should not exist until commit")

	require.NoError(t, out.Abort())
}

func TestOutputFile_CommitMovesTempToFinal(t *testing.T) {
	t.Parallel()

	// Given an output file with written content
	base := t.TempDir()
	path := filepath.Join(base, "book.epub")
	out := fs.NewOutputFile(path)
	w, err := out.Create()
	require.NoError(t, err)
	_, err = w.Write([]byte("epub bytes"))
	require.NoError(t, err)

	// When I commit
	size, err := out.Commit()

	// Then the final file holds the content
	require.NoError(t, err)
	assert.Equal(t, int64(len("epub bytes")), size)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "epub bytes", string(content))

	// And the temp file is gone
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be gone after commit")
}

func TestOutputFile_CommitReplacesExistingFile(t *testing.T) {
	t.Parallel()

	// Given an existing book at the destination
	base := t.TempDir()
	path := filepath.Join(base, "book.epub")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

	// When a new book is committed
	out := fs.NewOutputFile(path)
	w, err := out.Create()
	require.NoError(t, err)
	_, err = w.Write([]byte("new"))
	require.NoError(t, err)
	_, err = out.Commit()
	require.NoError(t, err)

	// Then the old content is replaced
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(content))
}

func TestOutputFile_AbortLeavesExistingFile(t *testing.T) {
	t.Parallel()

	// Given an existing book at the destination
	base := t.TempDir()
	path := filepath.Join(base, "book.epub")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

	// When a new write is aborted
	out := fs.NewOutputFile(path)
	w, err := out.Create()
	require.NoError(t, err)
	_, err = w.Write([]byte("partial"))
	require.NoError(t, err)
	err = out.Abort()

	// Then the old book is untouched and the temp file is gone
	require.NoError(t, err)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old", string(content))
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be removed after abort")
}

func TestOutputFile_CreatesParentDirectories(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	path := filepath.Join(base, "nested", "dir", "book.epub")
	out := fs.NewOutputFile(path)

	_, err := out.Create()
	require.NoError(t, err)
	_, err = out.Commit()

	require.NoError(t, err)
	assert.Equal(t, path, out.Path())
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestOutputFile_AbortWithoutCreate(t *testing.T) {
	t.Parallel()

	out := fs.NewOutputFile(filepath.Join(t.TempDir(), "book.epub"))

	assert.NoError(t, out.Abort())
}
