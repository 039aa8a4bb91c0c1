package persistence

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/beggers/positional-inverted-index/codec"
	"github.com/beggers/positional-inverted-index/index"
	"github.com/beggers/positional-inverted-index/internal/fs"
	"github.com/beggers/positional-inverted-index/internal/mmap"
)

// SaveToFile writes idx to filename as a complete index file. The write is
// atomic: bytes go to a temp file in the same directory which is then
// renamed over the target, so a crash never leaves a half-written index
// behind.
func SaveToFile(filename string, idx *index.Index, c codec.Codec, comp Compressor) error {
	return SaveToFileFS(fs.Default, filename, idx, c, comp)
}

// SaveToFileFS is SaveToFile with an explicit filesystem. This is primarily
// used for testing and fault injection.
func SaveToFileFS(fsys fs.FileSystem, filename string, idx *index.Index, c codec.Codec, comp Compressor) error {
	return writeFileAtomic(fsys, filename, func(w io.Writer) error {
		return SaveToWriter(w, idx, c, comp)
	})
}

func writeFileAtomic(fsys fs.FileSystem, filename string, writeFunc func(io.Writer) error) error {
	dir := filepath.Dir(filename)
	base := filepath.Base(filename)

	// Write to a temp file in the same directory to ensure rename is atomic.
	tmp, err := fsys.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = fsys.Remove(tmpName)
	}()

	// Match typical file permissions (best-effort).
	_ = tmp.Chmod(0644)

	buf := bufio.NewWriterSize(tmp, 256*1024)
	if err := writeFunc(buf); err != nil {
		return err
	}
	if err := buf.Flush(); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	// Atomically replace target.
	if err := fsys.Rename(tmpName, filename); err != nil {
		return err
	}

	// Best-effort: fsync the directory so the rename is durable on POSIX.
	if d, err := fsys.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}

	// Success: prevent deferred cleanup from removing the final file.
	tmpName = ""
	return nil
}

// LoadFromFile loads a complete index file. A missing file is reported via
// os.ErrNotExist so callers can tell "no index yet" apart from a corrupt
// one.
//
// The file is memory-mapped when possible so sections parse straight out
// of the page cache; otherwise plain reads are used. Nothing in the
// returned snapshot aliases the mapping, which is closed before returning.
func LoadFromFile(filename string) (*Snapshot, error) {
	return LoadFromFileFS(fs.Default, filename)
}

// LoadFromFileFS is LoadFromFile with an explicit filesystem. Memory
// mapping is used only on the local filesystem; a custom filesystem sees
// every read go through it.
func LoadFromFileFS(fsys fs.FileSystem, filename string) (*Snapshot, error) {
	if _, ok := fsys.(fs.LocalFS); ok {
		m, err := mmap.Open(filename)
		if err == nil {
			snap, loadErr := LoadFromReader(bytes.NewReader(m.Data))
			if closeErr := m.Close(); closeErr != nil && loadErr == nil {
				loadErr = closeErr
			}
			if loadErr != nil {
				return nil, loadErr
			}
			return snap, nil
		}
		if errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	f, err := fsys.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return LoadFromReader(f)
}
