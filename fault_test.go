package posidx

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beggers/positional-inverted-index/internal/fs"
)

func TestDB_SaveToFile_DiskFull(t *testing.T) {
	faultyFS := fs.NewFaultyFS(nil)
	faultyFS.SetFault(fs.Fault{FailAfterBytes: 32, Err: errors.New("fake disk full")})

	collector := NewBasicMetricsCollector()
	db := newCorpusDB(WithFileSystem(faultyFS), WithMetricsCollector(collector))

	err := db.SaveToFile(filepath.Join(t.TempDir(), "corpus.idx"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fake disk full")
	assert.Equal(t, int64(1), collector.GetStats().SaveErrors)
}

func TestDB_RoundTripThroughCustomFS(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.idx")

	faultyFS := fs.NewFaultyFS(nil)
	db := newCorpusDB(WithFileSystem(faultyFS))
	require.NoError(t, db.SaveToFile(path))
	assert.Greater(t, faultyFS.Written(), int64(0))

	loaded, err := NewFromFile(path, WithFileSystem(faultyFS))
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 2}, loaded.Search("is some"))
}
