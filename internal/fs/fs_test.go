package fs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFS(t *testing.T) {
	tmp := t.TempDir()
	lfs := LocalFS{}

	// CreateTemp
	f, err := lfs.CreateTemp(tmp, "test-*.idx")
	require.NoError(t, err)
	name := f.Name()
	assert.Equal(t, tmp, filepath.Dir(name))

	// Write, Sync, Chmod
	_, err = f.Write([]byte("hello"))
	assert.NoError(t, err)
	assert.NoError(t, f.Chmod(0o644))
	assert.NoError(t, f.Sync())
	assert.NoError(t, f.Close())

	// Rename
	final := filepath.Join(tmp, "final.idx")
	require.NoError(t, lfs.Rename(name, final))

	// Open and read back
	r, err := lfs.Open(final)
	require.NoError(t, err)
	buf := make([]byte, 5)
	_, err = r.Read(buf)
	assert.NoError(t, err)
	assert.Equal(t, "hello", string(buf))
	assert.NoError(t, r.Close())

	// Remove
	assert.NoError(t, lfs.Remove(final))
	_, err = os.Stat(final)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLocalFS_OpenMissing(t *testing.T) {
	_, err := LocalFS{}.Open(filepath.Join(t.TempDir(), "missing"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestFaultyFS_FailAfterBytes(t *testing.T) {
	ffs := NewFaultyFS(nil)
	ffs.SetFault(Fault{FailAfterBytes: 8, Err: errors.New("fake disk full")})

	f, err := ffs.CreateTemp(t.TempDir(), "test-*")
	require.NoError(t, err)
	defer f.Close()

	// First write fits under the limit.
	n, err := f.Write([]byte("12345"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, int64(5), ffs.Written())

	// Second write would exceed it.
	_, err = f.Write([]byte("67890"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fake disk full")
	assert.Equal(t, int64(5), ffs.Written())
}

func TestFaultyFS_FailOnSync(t *testing.T) {
	ffs := NewFaultyFS(LocalFS{})
	ffs.SetFault(Fault{FailAfterBytes: -1, FailOnSync: true})

	f, err := ffs.CreateTemp(t.TempDir(), "test-*")
	require.NoError(t, err)
	defer f.Close()

	_, err = f.Write([]byte("data"))
	require.NoError(t, err)
	assert.Error(t, f.Sync())
}

func TestFaultyFS_FailOnClose(t *testing.T) {
	ffs := NewFaultyFS(nil)
	ffs.SetFault(Fault{FailAfterBytes: -1, FailOnClose: true})

	f, err := ffs.CreateTemp(t.TempDir(), "test-*")
	require.NoError(t, err)

	assert.Error(t, f.Close())
}

func TestFaultyFS_Passthrough(t *testing.T) {
	tmp := t.TempDir()
	ffs := NewFaultyFS(nil)

	f, err := ffs.CreateTemp(tmp, "test-*")
	require.NoError(t, err)
	_, err = f.Write([]byte("content"))
	require.NoError(t, err)
	require.NoError(t, f.Sync())
	require.NoError(t, f.Close())

	final := filepath.Join(tmp, "final")
	require.NoError(t, ffs.Rename(f.Name(), final))

	r, err := ffs.Open(final)
	require.NoError(t, err)
	require.NoError(t, r.Close())

	require.NoError(t, ffs.Remove(final))
}
