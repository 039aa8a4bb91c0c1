// Package index implements a positional inverted index: a term dictionary
// mapping each term to the documents it occurs in and the token positions
// at which it occurs.
//
// The index supports document insertion with replace semantics (re-indexing
// a document id drops its prior postings), conjunctive multi-term search
// over per-term document bitmaps, document deletion, and approximate size
// reporting for the term dictionary and each posting list.
package index

import (
	"sort"

	"github.com/RoaringBitmap/roaring/v2"
)

// QueryOrdering selects the order in which Search evaluates query terms.
// The choice never changes results, only how early an intersection can
// short-circuit to empty.
type QueryOrdering uint8

const (
	// TokenOrder evaluates query terms in the order they appear in the query.
	TokenOrder QueryOrdering = iota

	// AscendingFrequencyOrder evaluates the rarest terms first so the
	// intersection shrinks as early as possible.
	AscendingFrequencyOrder
)

// String returns the stable name of the ordering.
func (o QueryOrdering) String() string {
	switch o {
	case AscendingFrequencyOrder:
		return "ascending-frequency"
	default:
		return "token-order"
	}
}

// QueryOrderingByName returns an ordering by its stable name.
func QueryOrderingByName(name string) (QueryOrdering, bool) {
	switch name {
	case "token-order":
		return TokenOrder, true
	case "ascending-frequency":
		return AscendingFrequencyOrder, true
	default:
		return TokenOrder, false
	}
}

// Options configures an Index.
type Options struct {
	// Ordering selects the query-term evaluation order used by Search.
	Ordering QueryOrdering
}

// DefaultOptions holds the default Index configuration.
var DefaultOptions = Options{
	Ordering: TokenOrder,
}

// Index is a positional inverted index over uint32 document ids.
//
// It is not safe for concurrent use; callers that share an Index across
// goroutines must provide their own synchronization.
type Index struct {
	ordering QueryOrdering

	// terms is the term dictionary: term -> posting list.
	terms map[string]*postingList

	// docTerms maps each document id to the sorted distinct terms of its
	// current text, so re-indexing and deletion can drop stale postings.
	docTerms map[uint32][]string

	// freqs tracks the total number of stored positions per term. It is
	// derivable from the posting lists and rebuilt on load.
	freqs map[string]int
}

// postingList holds one term's postings. docs always contains exactly the
// keys of positions.
type postingList struct {
	docs      *roaring.Bitmap
	positions map[uint32][]uint32
}

func newPostingList() *postingList {
	return &postingList{
		docs:      roaring.New(),
		positions: make(map[uint32][]uint32),
	}
}

// New creates an empty Index.
func New(optFns ...func(o *Options)) *Index {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Index{
		ordering: opts.Ordering,
		terms:    make(map[string]*postingList),
		docTerms: make(map[uint32][]string),
		freqs:    make(map[string]int),
	}
}

// Ordering returns the query-term evaluation order used by Search.
func (x *Index) Ordering() QueryOrdering {
	return x.ordering
}

// SetOrdering changes the query-term evaluation order used by Search.
func (x *Index) SetOrdering(o QueryOrdering) {
	x.ordering = o
}

// Add indexes text under docID, replacing any postings from a previous text
// for the same id. Tokens are lowercased and split on whitespace; the slice
// index of each token is its stored position. Empty text removes the
// document entirely.
func (x *Index) Add(docID uint32, text string) {
	if _, ok := x.docTerms[docID]; ok {
		x.removeDocument(docID)
	}

	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return
	}

	occurrences := make(map[string][]uint32)
	for i, term := range tokens {
		occurrences[term] = append(occurrences[term], uint32(i))
	}

	terms := make([]string, 0, len(occurrences))
	for term, positions := range occurrences {
		pl, ok := x.terms[term]
		if !ok {
			pl = newPostingList()
			x.terms[term] = pl
		}
		pl.docs.Add(docID)
		pl.positions[docID] = positions
		x.freqs[term] += len(positions)
		terms = append(terms, term)
	}

	sort.Strings(terms)
	x.docTerms[docID] = terms
}

// Delete removes docID from every posting list. It reports whether the
// document was present. Terms whose posting list becomes empty leave the
// dictionary.
func (x *Index) Delete(docID uint32) bool {
	if _, ok := x.docTerms[docID]; !ok {
		return false
	}
	x.removeDocument(docID)
	return true
}

// Has reports whether docID currently has postings in the index.
func (x *Index) Has(docID uint32) bool {
	_, ok := x.docTerms[docID]
	return ok
}

func (x *Index) removeDocument(docID uint32) {
	for _, term := range x.docTerms[docID] {
		pl := x.terms[term]
		if pl == nil {
			continue
		}
		x.freqs[term] -= len(pl.positions[docID])
		delete(pl.positions, docID)
		pl.docs.Remove(docID)
		if len(pl.positions) == 0 {
			delete(x.terms, term)
			delete(x.freqs, term)
		}
	}
	delete(x.docTerms, docID)
}

// Search returns the ids of all documents containing every distinct term of
// query, ascending. Queries are pure conjunction: a term absent from the
// dictionary yields an empty result immediately. Positions are stored but
// not consulted. An empty query matches nothing.
func (x *Index) Search(query string) []uint32 {
	tokens := Tokenize(query)
	if len(tokens) == 0 {
		return nil
	}

	terms := make([]string, 0, len(tokens))
	seen := make(map[string]struct{}, len(tokens))
	for _, term := range tokens {
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		terms = append(terms, term)
	}

	if x.ordering == AscendingFrequencyOrder {
		// Unknown terms have frequency zero and sort first, which
		// short-circuits the intersection immediately.
		sort.SliceStable(terms, func(i, j int) bool {
			return x.freqs[terms[i]] < x.freqs[terms[j]]
		})
	}

	var acc *roaring.Bitmap
	for _, term := range terms {
		pl, ok := x.terms[term]
		if !ok {
			return nil
		}
		if acc == nil {
			acc = pl.docs.Clone()
		} else {
			acc.And(pl.docs)
		}
		if acc.IsEmpty() {
			return nil
		}
	}

	return acc.ToArray()
}

// Positions returns the stored positions of term in docID, or nil when the
// (term, document) pair has no posting. The returned slice must not be
// modified.
func (x *Index) Positions(term string, docID uint32) []uint32 {
	pl, ok := x.terms[term]
	if !ok {
		return nil
	}
	return pl.positions[docID]
}

// TermFrequency returns the total number of stored positions for term
// across all documents.
func (x *Index) TermFrequency(term string) int {
	return x.freqs[term]
}

// Terms returns the number of distinct terms in the dictionary.
func (x *Index) Terms() int {
	return len(x.terms)
}

// Documents returns the number of documents with at least one posting.
func (x *Index) Documents() int {
	return len(x.docTerms)
}

// sortedTerms returns the dictionary terms in lexicographic order.
func (x *Index) sortedTerms() []string {
	terms := make([]string, 0, len(x.terms))
	for term := range x.terms {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}
