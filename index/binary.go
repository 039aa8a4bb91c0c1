package index

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// binaryVersion is the version byte of the term dictionary stream format.
const binaryVersion = 1

const (
	maxBinaryTerms    = 100_000_000
	maxBinaryPostings = 100_000_000
)

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

type countingReader struct {
	r io.Reader
	n int64
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	cr.n += int64(n)
	return n, err
}

// WriteTo writes the index to w in binary form. Terms are written in
// lexicographic order and postings in ascending document order, so equal
// indexes always produce identical bytes.
//
// It matches the io.WriterTo interface for toolchain friendliness.
func (x *Index) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}

	var header [8]byte
	header[0] = binaryVersion
	header[1] = byte(x.ordering)
	binary.LittleEndian.PutUint32(header[4:8], uint32(len(x.terms)))
	if _, err := cw.Write(header[:]); err != nil {
		return cw.n, err
	}

	for _, term := range x.sortedTerms() {
		if err := writeTerm(cw, term, x.terms[term]); err != nil {
			return cw.n, err
		}
	}

	return cw.n, nil
}

func writeTerm(w io.Writer, term string, pl *postingList) error {
	if len(term) > math.MaxUint16 {
		return fmt.Errorf("term length %d exceeds limit", len(term))
	}

	var scratch [8]byte
	binary.LittleEndian.PutUint16(scratch[0:2], uint16(len(term)))
	if _, err := w.Write(scratch[0:2]); err != nil {
		return err
	}
	if _, err := io.WriteString(w, term); err != nil {
		return err
	}

	docs := pl.docs.ToArray()
	binary.LittleEndian.PutUint32(scratch[0:4], uint32(len(docs)))
	if _, err := w.Write(scratch[0:4]); err != nil {
		return err
	}

	for _, doc := range docs {
		positions := pl.positions[doc]
		binary.LittleEndian.PutUint32(scratch[0:4], doc)
		binary.LittleEndian.PutUint32(scratch[4:8], uint32(len(positions)))
		if _, err := w.Write(scratch[0:8]); err != nil {
			return err
		}

		buf := make([]byte, 4*len(positions))
		for i, pos := range positions {
			binary.LittleEndian.PutUint32(buf[4*i:], pos)
		}
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}

	return nil
}

// ReadFrom replaces the contents of x with the index read from r. The
// stream is validated as it is read: terms must arrive in strictly
// ascending lexicographic order, document ids in strictly ascending order
// within a term, and positions in strictly ascending order within a
// document. On error the index is left in an unspecified state.
//
// It matches the io.ReaderFrom interface for toolchain friendliness.
func (x *Index) ReadFrom(r io.Reader) (int64, error) {
	cr := &countingReader{r: r}

	var header [8]byte
	if _, err := io.ReadFull(cr, header[:]); err != nil {
		return cr.n, fmt.Errorf("failed to read term dictionary header: %w", err)
	}
	if header[0] != binaryVersion {
		return cr.n, fmt.Errorf("unsupported term dictionary version %d", header[0])
	}
	ordering := QueryOrdering(header[1])
	if ordering > AscendingFrequencyOrder {
		return cr.n, fmt.Errorf("invalid query ordering %d", header[1])
	}
	termCount := binary.LittleEndian.Uint32(header[4:8])
	if termCount > maxBinaryTerms {
		return cr.n, fmt.Errorf("term count %d exceeds limit", termCount)
	}

	x.ordering = ordering
	x.terms = make(map[string]*postingList, termCount)
	x.docTerms = make(map[uint32][]string)
	x.freqs = make(map[string]int, termCount)

	prevTerm := ""
	for i := uint32(0); i < termCount; i++ {
		term, err := x.readTerm(cr)
		if err != nil {
			return cr.n, err
		}
		if i > 0 && term <= prevTerm {
			return cr.n, fmt.Errorf("term %q out of order", term)
		}
		prevTerm = term
	}

	return cr.n, nil
}

// readTerm reads one term record and merges it into the index. Terms
// arrive in lexicographic order, so appending to docTerms keeps each
// document's term slice sorted.
func (x *Index) readTerm(r io.Reader) (string, error) {
	var scratch [8]byte
	if _, err := io.ReadFull(r, scratch[0:2]); err != nil {
		return "", fmt.Errorf("failed to read term length: %w", err)
	}
	termLen := binary.LittleEndian.Uint16(scratch[0:2])
	if termLen == 0 {
		return "", fmt.Errorf("invalid empty term")
	}

	termBuf := make([]byte, termLen)
	if _, err := io.ReadFull(r, termBuf); err != nil {
		return "", fmt.Errorf("failed to read term: %w", err)
	}
	term := string(termBuf)

	if _, err := io.ReadFull(r, scratch[0:4]); err != nil {
		return term, fmt.Errorf("failed to read posting count for term %q: %w", term, err)
	}
	docCount := binary.LittleEndian.Uint32(scratch[0:4])
	if docCount == 0 {
		return term, fmt.Errorf("term %q has no postings", term)
	}
	if docCount > maxBinaryPostings {
		return term, fmt.Errorf("posting count %d exceeds limit", docCount)
	}

	pl := newPostingList()
	x.terms[term] = pl

	var prevDoc uint32
	for i := uint32(0); i < docCount; i++ {
		if _, err := io.ReadFull(r, scratch[0:8]); err != nil {
			return term, fmt.Errorf("failed to read posting for term %q: %w", term, err)
		}
		doc := binary.LittleEndian.Uint32(scratch[0:4])
		posCount := binary.LittleEndian.Uint32(scratch[4:8])

		if i > 0 && doc <= prevDoc {
			return term, fmt.Errorf("document ids out of order for term %q", term)
		}
		prevDoc = doc

		if posCount == 0 {
			return term, fmt.Errorf("document %d has no positions for term %q", doc, term)
		}
		if posCount > maxBinaryPostings {
			return term, fmt.Errorf("position count %d exceeds limit", posCount)
		}

		buf := make([]byte, 4*posCount)
		if _, err := io.ReadFull(r, buf); err != nil {
			return term, fmt.Errorf("failed to read positions for term %q: %w", term, err)
		}

		positions := make([]uint32, posCount)
		for j := range positions {
			positions[j] = binary.LittleEndian.Uint32(buf[4*j:])
			if j > 0 && positions[j] <= positions[j-1] {
				return term, fmt.Errorf("positions out of order for term %q", term)
			}
		}

		pl.docs.Add(doc)
		pl.positions[doc] = positions
		x.freqs[term] += len(positions)
		x.docTerms[doc] = append(x.docTerms[doc], term)
	}

	return term, nil
}
