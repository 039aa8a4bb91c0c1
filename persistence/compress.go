package persistence

import (
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compressor compresses whole section payloads. Index files record the
// compressor name in their header, so a file written with one compressor
// must be opened by a build that provides it.
type Compressor interface {
	// Compress returns the stored form of data. It may return data itself
	// when compression would not help.
	Compress(data []byte) ([]byte, error)

	// Decompress returns the raw bytes of a stored section. rawLen is the
	// exact decompressed length recorded in the directory. The returned
	// slice may alias data.
	Decompress(data []byte, rawLen int) ([]byte, error)

	Name() string
}

// CompressorByName returns a built-in compressor by its stable name.
func CompressorByName(name string) (Compressor, bool) {
	switch name {
	case "none":
		return None{}, true
	case "zstd":
		return Zstd{}, true
	case "lz4":
		return LZ4{}, true
	default:
		return nil, false
	}
}

// DefaultCompressor is used for newly-written index files. Plain storage
// keeps files inspectable; callers that want smaller files opt in to zstd
// or lz4.
var DefaultCompressor Compressor = None{}

// None stores sections uncompressed.
type None struct{}

// Compress returns data unchanged.
func (None) Compress(data []byte) ([]byte, error) { return data, nil }

// Decompress returns data unchanged after checking its length.
func (None) Decompress(data []byte, rawLen int) ([]byte, error) {
	if len(data) != rawLen {
		return nil, fmt.Errorf("stored length %d does not match raw length %d", len(data), rawLen)
	}
	return data, nil
}

// Name returns the unique name of the compressor ("none").
func (None) Name() string { return "none" }

// Encoder/decoder pools so repeated saves and loads reuse zstd state.
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func putZstdEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

func putZstdDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

// Zstd compresses sections with zstd frames. Frames are self-describing,
// so incompressible data is stored as a (slightly larger) frame rather
// than falling back to raw storage.
type Zstd struct{}

// Compress returns data as a zstd frame.
func (Zstd) Compress(data []byte) ([]byte, error) {
	enc := getZstdEncoder()
	defer putZstdEncoder(enc)

	return enc.EncodeAll(data, nil), nil
}

// Decompress decodes a zstd frame and checks the decoded length.
func (Zstd) Decompress(data []byte, rawLen int) ([]byte, error) {
	dec := getZstdDecoder()
	defer putZstdDecoder(dec)

	raw, err := dec.DecodeAll(data, make([]byte, 0, rawLen))
	if err != nil {
		return nil, err
	}
	if len(raw) != rawLen {
		return nil, errors.New("decompressed size mismatch")
	}
	return raw, nil
}

// Name returns the unique name of the compressor ("zstd").
func (Zstd) Name() string { return "zstd" }

// LZ4 compresses sections with LZ4 block compression. Incompressible
// sections are stored raw; since a compressed block is always shorter than
// its input, a stored length equal to the raw length identifies raw
// storage.
type LZ4 struct{}

// Compress returns an LZ4 block, or data itself when compression would not
// shrink it.
func (LZ4) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return data, nil
	}

	buf := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := lz4.CompressBlock(data, buf, nil)
	if err != nil {
		return nil, err
	}
	if n == 0 || n >= len(data) {
		// Incompressible.
		return data, nil
	}
	return buf[:n], nil
}

// Decompress decodes an LZ4 block, or returns data itself when it was
// stored raw.
func (LZ4) Decompress(data []byte, rawLen int) ([]byte, error) {
	if len(data) == rawLen {
		return data, nil
	}
	if len(data) > rawLen {
		return nil, fmt.Errorf("stored length %d exceeds raw length %d", len(data), rawLen)
	}

	raw := make([]byte, rawLen)
	n, err := lz4.UncompressBlock(data, raw)
	if err != nil {
		return nil, err
	}
	if n != rawLen {
		return nil, errors.New("decompressed size mismatch")
	}
	return raw, nil
}

// Name returns the unique name of the compressor ("lz4").
func (LZ4) Name() string { return "lz4" }
