package persistence

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beggers/positional-inverted-index/index"
	"github.com/beggers/positional-inverted-index/internal/fs"
)

func TestSaveToFileFS_DiskFull(t *testing.T) {
	faultyFS := fs.NewFaultyFS(nil)
	faultyFS.SetFault(fs.Fault{FailAfterBytes: 32, Err: errors.New("fake disk full")})

	dir := t.TempDir()
	path := filepath.Join(dir, "corpus.pidx")

	err := SaveToFileFS(faultyFS, path, newTestIndex(), nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fake disk full")

	// The failed save must leave nothing behind, not even a temp file.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSaveToFileFS_SyncFailure(t *testing.T) {
	faultyFS := fs.NewFaultyFS(fs.LocalFS{})
	faultyFS.SetFault(fs.Fault{FailAfterBytes: -1, FailOnSync: true})

	dir := t.TempDir()
	path := filepath.Join(dir, "corpus.pidx")

	require.Error(t, SaveToFileFS(faultyFS, path, newTestIndex(), nil, nil))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSaveToFileFS_FailureKeepsPrevious(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corpus.pidx")
	require.NoError(t, SaveToFile(path, newTestIndex(), nil, nil))

	faultyFS := fs.NewFaultyFS(nil)
	faultyFS.SetFault(fs.Fault{FailAfterBytes: 32, Err: errors.New("fake disk full")})

	replacement := index.New()
	replacement.Add(9, "replacement corpus")
	require.Error(t, SaveToFileFS(faultyFS, path, replacement, nil, nil))

	// The target still holds the previous snapshot.
	snap, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 2, 3}, snap.Index.Search("here"))
}

func TestLoadFromFileFS_ReadsThroughFS(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.pidx")
	require.NoError(t, SaveToFile(path, newTestIndex(), nil, nil))

	// A custom filesystem bypasses mmap, so every read goes through it.
	snap, err := LoadFromFileFS(fs.NewFaultyFS(nil), path)
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 2}, snap.Index.Search("is some"))
}
