package index

// postingSlotSize is the accounted size in bytes of one posting slot: a
// document id or a single stored position. Both are counted as 8 bytes so
// size figures stay stable across word sizes and container encodings.
const postingSlotSize = 8

// TermListSize returns the total byte length of all distinct terms in the
// dictionary. Adding documents never shrinks it.
func (x *Index) TermListSize() int {
	var n int
	for term := range x.terms {
		n += len(term)
	}
	return n
}

// PostingListSize returns the accounted size in bytes of term's posting
// list: one slot per document id plus one slot per stored position. A term
// with no postings has size zero.
func (x *Index) PostingListSize(term string) int {
	pl, ok := x.terms[term]
	if !ok {
		return 0
	}
	var slots int
	for _, positions := range pl.positions {
		slots += 1 + len(positions)
	}
	return slots * postingSlotSize
}

// PostingListSizes returns the accounted size of every posting list, one
// entry per distinct term in lexicographic term order. The size reported
// for a given term never shrinks while documents are only added.
func (x *Index) PostingListSizes() []int {
	terms := x.sortedTerms()
	sizes := make([]int, len(terms))
	for i, term := range terms {
		sizes[i] = x.PostingListSize(term)
	}
	return sizes
}

// PostingListSizesByTerm returns the accounted size of every posting list
// keyed by term.
func (x *Index) PostingListSizesByTerm() map[string]int {
	sizes := make(map[string]int, len(x.terms))
	for term := range x.terms {
		sizes[term] = x.PostingListSize(term)
	}
	return sizes
}

// Stats summarizes the size and shape of an Index.
type Stats struct {
	// Terms is the number of distinct terms in the dictionary.
	Terms int

	// Documents is the number of documents with at least one posting.
	Documents int

	// Postings is the total number of stored positions across all terms.
	Postings int

	// TermBytes is the total byte length of all distinct terms.
	TermBytes int

	// PostingBytes is the total accounted size of all posting lists.
	PostingBytes int
}

// Stats returns summary statistics for the index.
func (x *Index) Stats() Stats {
	var postings, postingBytes int
	for _, pl := range x.terms {
		slots := 0
		for _, positions := range pl.positions {
			postings += len(positions)
			slots += 1 + len(positions)
		}
		postingBytes += slots * postingSlotSize
	}

	return Stats{
		Terms:        len(x.terms),
		Documents:    len(x.docTerms),
		Postings:     postings,
		TermBytes:    x.TermListSize(),
		PostingBytes: postingBytes,
	}
}
