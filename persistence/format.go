package persistence

import "errors"

var (
	fileMagic   = [4]byte{'P', 'I', 'X', '1'}
	dirMagic    = [4]byte{'P', 'I', 'D', '1'}
	footerMagic = [4]byte{'P', 'I', 'F', '1'}
)

// FormatVersion is the current index file format version.
const FormatVersion = uint16(1)

// Section types within an index file.
const (
	sectionMeta     = uint16(1)
	sectionPostings = uint16(2)
)

const (
	headerSize    = 16
	dirHeaderSize = 12
	dirEntrySize  = 32
	footerSize    = 24

	// maxRawSectionLen caps the decompressed size of a single section so a
	// corrupt length field cannot trigger an oversized allocation.
	maxRawSectionLen = 1 << 31

	maxSectionCount = 16
)

var (
	// ErrInvalidMagic is returned when a file does not start with the
	// index file magic, i.e. it is not an index file at all.
	ErrInvalidMagic = errors.New("invalid magic number")

	// ErrUnsupportedVersion is returned when a file was written by an
	// incompatible format version.
	ErrUnsupportedVersion = errors.New("unsupported format version")

	// ErrUnknownCodec is returned when a file names a codec this build
	// does not provide.
	ErrUnknownCodec = errors.New("unknown codec")

	// ErrUnknownCompression is returned when a file names a compression
	// this build does not provide.
	ErrUnknownCompression = errors.New("unknown compression")

	// ErrTruncated is returned when a file ends before its structure does.
	ErrTruncated = errors.New("truncated index file")
)

// sectionEntry is one 32-byte directory entry.
//
// Layout:
//
//	[0:2]   type
//	[2:4]   reserved
//	[4:8]   CRC32 of the stored section bytes
//	[8:16]  offset
//	[16:24] stored length
//	[24:32] raw (decompressed) length
type sectionEntry struct {
	Type      uint16
	Checksum  uint32
	Offset    uint64
	StoredLen uint64
	RawLen    uint64
}
