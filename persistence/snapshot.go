package persistence

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/beggers/positional-inverted-index/codec"
	"github.com/beggers/positional-inverted-index/index"
	"github.com/beggers/positional-inverted-index/internal/conv"
)

// MetaFormat identifies index files in their metadata section. A container
// whose meta section carries a different format string was written by some
// other tool and is rejected on load.
const MetaFormat = "positional-inverted-index"

// Meta describes a persisted index.
type Meta struct {
	Format    string    `json:"format"`
	Ordering  string    `json:"ordering"`
	Documents int       `json:"documents"`
	Terms     int       `json:"terms"`
	Postings  int       `json:"postings"`
	SavedAt   time.Time `json:"saved_at"`
}

// Snapshot is a fully loaded index file.
type Snapshot struct {
	Index *index.Index
	Meta  Meta
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

// SaveToWriter writes idx to w as a complete index file. A nil codec or
// compressor selects the package default.
//
// Format:
//  1. header (magic/version/codec name/compression name)
//  2. meta section (codec-marshaled Meta)
//  3. postings section (term dictionary binary stream)
//  4. directory (type/checksum/offset/lengths per section)
//  5. footer (directory offset/length)
func SaveToWriter(w io.Writer, idx *index.Index, c codec.Codec, comp Compressor) error {
	if w == nil {
		return fmt.Errorf("save: writer is nil")
	}
	if idx == nil {
		return fmt.Errorf("save: index is nil")
	}
	if c == nil {
		c = codec.Default
	}
	if comp == nil {
		comp = DefaultCompressor
	}

	codecName := c.Name()
	compName := comp.Name()
	if len(codecName) > 0xFFFF {
		return fmt.Errorf("codec name too long: %d", len(codecName))
	}
	if len(compName) > 0xFFFF {
		return fmt.Errorf("compression name too long: %d", len(compName))
	}

	cw := &countingWriter{w: w}

	var hdr [headerSize]byte
	copy(hdr[0:4], fileMagic[:])
	binary.LittleEndian.PutUint16(hdr[4:6], FormatVersion)
	binary.LittleEndian.PutUint16(hdr[8:10], uint16(len(codecName)))
	binary.LittleEndian.PutUint16(hdr[10:12], uint16(len(compName)))
	binary.LittleEndian.PutUint16(hdr[12:14], 2)
	if _, err := cw.Write(hdr[:]); err != nil {
		return err
	}
	if _, err := io.WriteString(cw, codecName); err != nil {
		return err
	}
	if _, err := io.WriteString(cw, compName); err != nil {
		return err
	}

	stats := idx.Stats()
	meta := Meta{
		Format:    MetaFormat,
		Ordering:  idx.Ordering().String(),
		Documents: stats.Documents,
		Terms:     stats.Terms,
		Postings:  stats.Postings,
		SavedAt:   time.Now().UTC(),
	}
	metaRaw, err := c.Marshal(meta)
	if err != nil {
		return fmt.Errorf("failed to encode meta: %w", err)
	}
	metaEntry, err := writeSection(cw, sectionMeta, metaRaw, comp)
	if err != nil {
		return fmt.Errorf("failed to write meta section: %w", err)
	}

	var postings bytes.Buffer
	if _, err := idx.WriteTo(&postings); err != nil {
		return fmt.Errorf("failed to encode postings: %w", err)
	}
	postingsEntry, err := writeSection(cw, sectionPostings, postings.Bytes(), comp)
	if err != nil {
		return fmt.Errorf("failed to write postings section: %w", err)
	}

	dirOff := uint64(cw.n)
	if err := writeDirectory(cw, []sectionEntry{metaEntry, postingsEntry}); err != nil {
		return err
	}
	dirLen := uint64(cw.n) - dirOff

	return writeFooter(cw, dirOff, dirLen)
}

func writeSection(cw *countingWriter, typ uint16, raw []byte, comp Compressor) (sectionEntry, error) {
	stored, err := comp.Compress(raw)
	if err != nil {
		return sectionEntry{}, err
	}

	entry := sectionEntry{
		Type:      typ,
		Checksum:  ComputeChecksum(stored),
		Offset:    uint64(cw.n),
		StoredLen: uint64(len(stored)),
		RawLen:    uint64(len(raw)),
	}
	if _, err := cw.Write(stored); err != nil {
		return sectionEntry{}, err
	}
	return entry, nil
}

func writeDirectory(w io.Writer, entries []sectionEntry) error {
	// Directory header (12 bytes)
	// [0:4] magic
	// [4:6] version
	// [6:8] reserved
	// [8:12] entry count
	var hdr [dirHeaderSize]byte
	copy(hdr[0:4], dirMagic[:])
	binary.LittleEndian.PutUint16(hdr[4:6], FormatVersion)
	binary.LittleEndian.PutUint32(hdr[8:12], uint32(len(entries)))
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}

	for _, e := range entries {
		var b [dirEntrySize]byte
		binary.LittleEndian.PutUint16(b[0:2], e.Type)
		binary.LittleEndian.PutUint32(b[4:8], e.Checksum)
		binary.LittleEndian.PutUint64(b[8:16], e.Offset)
		binary.LittleEndian.PutUint64(b[16:24], e.StoredLen)
		binary.LittleEndian.PutUint64(b[24:32], e.RawLen)
		if _, err := w.Write(b[:]); err != nil {
			return err
		}
	}
	return nil
}

func writeFooter(w io.Writer, dirOffset, dirLen uint64) error {
	// Footer is 24 bytes
	// [0:4] magic
	// [4:6] version
	// [6:8] reserved
	// [8:16] directory offset
	// [16:24] directory length
	var b [footerSize]byte
	copy(b[0:4], footerMagic[:])
	binary.LittleEndian.PutUint16(b[4:6], FormatVersion)
	binary.LittleEndian.PutUint64(b[8:16], dirOffset)
	binary.LittleEndian.PutUint64(b[16:24], dirLen)
	_, err := w.Write(b[:])
	return err
}

// LoadFromReader loads a complete index file from r.
//
// The container requires random access (io.ReadSeeker) so the footer and
// directory can be located before the sections are read. The codec and
// compressor are selected from the names in the header.
func LoadFromReader(r io.ReadSeeker) (*Snapshot, error) {
	if r == nil {
		return nil, fmt.Errorf("load: reader is nil")
	}

	codecName, compName, sections, err := readDirectory(r)
	if err != nil {
		return nil, err
	}

	c, ok := codec.ByName(codecName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, codecName)
	}
	comp, ok := CompressorByName(compName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCompression, compName)
	}

	metaRaw, err := readSection(r, sections, sectionMeta, comp)
	if err != nil {
		return nil, err
	}
	var meta Meta
	if err := c.Unmarshal(metaRaw, &meta); err != nil {
		return nil, fmt.Errorf("failed to decode meta: %w", err)
	}
	if meta.Format != MetaFormat {
		return nil, fmt.Errorf("file format %q is not %q", meta.Format, MetaFormat)
	}

	postingsRaw, err := readSection(r, sections, sectionPostings, comp)
	if err != nil {
		return nil, err
	}
	idx := index.New()
	pr := bytes.NewReader(postingsRaw)
	if _, err := idx.ReadFrom(pr); err != nil {
		return nil, fmt.Errorf("failed to decode postings: %w", err)
	}
	if pr.Len() != 0 {
		return nil, fmt.Errorf("postings section has %d trailing bytes", pr.Len())
	}

	// The meta counts must agree with the dictionary that was actually
	// decoded, otherwise the sections came from different saves.
	stats := idx.Stats()
	if meta.Documents != stats.Documents || meta.Terms != stats.Terms || meta.Postings != stats.Postings {
		return nil, fmt.Errorf("meta does not match postings: %d/%d/%d documents/terms/postings in meta, %d/%d/%d in postings",
			meta.Documents, meta.Terms, meta.Postings, stats.Documents, stats.Terms, stats.Postings)
	}
	if meta.Ordering != idx.Ordering().String() {
		return nil, fmt.Errorf("meta ordering %q does not match postings ordering %q", meta.Ordering, idx.Ordering())
	}

	return &Snapshot{Index: idx, Meta: meta}, nil
}

func sectionName(typ uint16) string {
	switch typ {
	case sectionMeta:
		return "meta"
	case sectionPostings:
		return "postings"
	default:
		return fmt.Sprintf("type-%d", typ)
	}
}

func readSection(r io.ReadSeeker, sections map[uint16]sectionEntry, typ uint16, comp Compressor) ([]byte, error) {
	entry, ok := sections[typ]
	if !ok {
		return nil, fmt.Errorf("missing %s section", sectionName(typ))
	}
	if entry.RawLen > maxRawSectionLen {
		return nil, fmt.Errorf("%s section raw length %d exceeds limit", sectionName(typ), entry.RawLen)
	}

	// The lengths come straight off disk, so convert with bounds checks
	// rather than truncating casts.
	storedLen, err := conv.Uint64ToInt(entry.StoredLen)
	if err != nil {
		return nil, fmt.Errorf("invalid %s section stored length: %w", sectionName(typ), err)
	}
	rawLen, err := conv.Uint64ToInt(entry.RawLen)
	if err != nil {
		return nil, fmt.Errorf("invalid %s section raw length: %w", sectionName(typ), err)
	}

	if _, err := r.Seek(int64(entry.Offset), io.SeekStart); err != nil {
		return nil, err
	}
	stored := make([]byte, storedLen)
	if err := readFull(r, stored); err != nil {
		return nil, fmt.Errorf("failed to read %s section: %w", sectionName(typ), err)
	}

	if actual := ComputeChecksum(stored); actual != entry.Checksum {
		return nil, &ChecksumMismatchError{Expected: entry.Checksum, Actual: actual}
	}

	raw, err := comp.Decompress(stored, rawLen)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress %s section: %w", sectionName(typ), err)
	}
	return raw, nil
}

// readFull reads exactly len(buf) bytes, reporting a clean truncation error
// when the input runs out.
func readFull(r io.Reader, buf []byte) error {
	if _, err := io.ReadFull(r, buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return ErrTruncated
		}
		return err
	}
	return nil
}

func readDirectory(r io.ReadSeeker) (codecName, compName string, sections map[uint16]sectionEntry, err error) {
	// Header
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", "", nil, err
	}
	var hdr [headerSize]byte
	if err := readFull(r, hdr[:]); err != nil {
		return "", "", nil, err
	}
	if [4]byte(hdr[0:4]) != fileMagic {
		return "", "", nil, fmt.Errorf("%w: got %q", ErrInvalidMagic, hdr[0:4])
	}
	ver := binary.LittleEndian.Uint16(hdr[4:6])
	if ver != FormatVersion {
		return "", "", nil, fmt.Errorf("%w: got %d", ErrUnsupportedVersion, ver)
	}
	codecNameLen := int(binary.LittleEndian.Uint16(hdr[8:10]))
	compNameLen := int(binary.LittleEndian.Uint16(hdr[10:12]))
	sectionCount := int(binary.LittleEndian.Uint16(hdr[12:14]))
	if sectionCount <= 0 || sectionCount > maxSectionCount {
		return "", "", nil, fmt.Errorf("invalid section count: %d", sectionCount)
	}

	names := make([]byte, codecNameLen+compNameLen)
	if err := readFull(r, names); err != nil {
		return "", "", nil, err
	}
	codecName = string(names[:codecNameLen])
	compName = string(names[codecNameLen:])

	// Footer (last 24 bytes)
	end, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return "", "", nil, err
	}
	if end < int64(headerSize+codecNameLen+compNameLen+footerSize) {
		return "", "", nil, ErrTruncated
	}
	if _, err := r.Seek(end-footerSize, io.SeekStart); err != nil {
		return "", "", nil, err
	}
	var foot [footerSize]byte
	if err := readFull(r, foot[:]); err != nil {
		return "", "", nil, err
	}
	if [4]byte(foot[0:4]) != footerMagic {
		return "", "", nil, fmt.Errorf("invalid footer magic")
	}
	fver := binary.LittleEndian.Uint16(foot[4:6])
	if fver != FormatVersion {
		return "", "", nil, fmt.Errorf("%w: footer version %d", ErrUnsupportedVersion, fver)
	}

	const maxInt64u = uint64(^uint64(0) >> 1)
	dirOffsetU := binary.LittleEndian.Uint64(foot[8:16])
	dirLenU := binary.LittleEndian.Uint64(foot[16:24])
	if dirOffsetU > maxInt64u || dirLenU > maxInt64u {
		return "", "", nil, fmt.Errorf("invalid directory offsets")
	}
	dataEndU := uint64(end - footerSize)
	if dirLenU < dirHeaderSize || dirOffsetU > dataEndU || dirLenU > dataEndU-dirOffsetU {
		return "", "", nil, fmt.Errorf("invalid directory range")
	}

	// Directory header
	if _, err := r.Seek(int64(dirOffsetU), io.SeekStart); err != nil {
		return "", "", nil, err
	}
	var dh [dirHeaderSize]byte
	if err := readFull(r, dh[:]); err != nil {
		return "", "", nil, err
	}
	if [4]byte(dh[0:4]) != dirMagic {
		return "", "", nil, fmt.Errorf("invalid directory magic")
	}
	dver := binary.LittleEndian.Uint16(dh[4:6])
	if dver != FormatVersion {
		return "", "", nil, fmt.Errorf("%w: directory version %d", ErrUnsupportedVersion, dver)
	}
	entryCount := int(binary.LittleEndian.Uint32(dh[8:12]))
	if entryCount != sectionCount {
		return "", "", nil, fmt.Errorf("directory entry count %d does not match header section count %d", entryCount, sectionCount)
	}

	headerEndU := uint64(headerSize + codecNameLen + compNameLen)
	sections = make(map[uint16]sectionEntry, entryCount)
	for i := 0; i < entryCount; i++ {
		var eb [dirEntrySize]byte
		if err := readFull(r, eb[:]); err != nil {
			return "", "", nil, err
		}
		entry := sectionEntry{
			Type:      binary.LittleEndian.Uint16(eb[0:2]),
			Checksum:  binary.LittleEndian.Uint32(eb[4:8]),
			Offset:    binary.LittleEndian.Uint64(eb[8:16]),
			StoredLen: binary.LittleEndian.Uint64(eb[16:24]),
			RawLen:    binary.LittleEndian.Uint64(eb[24:32]),
		}
		if _, exists := sections[entry.Type]; exists {
			return "", "", nil, fmt.Errorf("duplicate section type %d", entry.Type)
		}

		// Sections must not point into the header (including names) and
		// must end before the directory.
		if entry.Offset < headerEndU {
			return "", "", nil, fmt.Errorf("invalid %s section offset", sectionName(entry.Type))
		}
		if entry.Offset > dirOffsetU || entry.StoredLen > dirOffsetU-entry.Offset {
			return "", "", nil, fmt.Errorf("invalid %s section range", sectionName(entry.Type))
		}
		sections[entry.Type] = entry
	}

	return codecName, compName, sections, nil
}
