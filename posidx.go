// Package posidx provides an embedded positional inverted index for Go.
//
// Documents are plain text keyed by a numeric id. Indexing tokenizes the
// text, records every position of every term, and replaces whatever was
// previously indexed under the same id. Queries are conjunctive: a search
// returns the ids of documents containing all query terms, in ascending
// order.
//
// Features:
//
//   - In-memory positional inverted index with replace-on-reindex updates
//   - Conjunctive (AND) keyword search over Roaring bitmap posting lists
//   - Term and posting list size accounting for capacity planning
//   - Snapshot persistence: checksummed sections, pluggable codecs
//     (JSON, go-json) and compression (zstd, LZ4), atomic file writes
//   - Structured logging via slog and pluggable metrics collection
//
// # Quick Start
//
//	db := posidx.New()
//	db.Index(1, "here is some content")
//	db.Index(2, "here is some more content")
//	db.Index(3, "here is even more content")
//
//	ids := db.Search("is some") // [1 2]
//
// Persist the index and load it back:
//
//	if err := db.SaveToFile("docs.idx"); err != nil {
//	    log.Fatal(err)
//	}
//
//	db2, err := posidx.NewFromFile("docs.idx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// The database is single-threaded: callers that share a DB across
// goroutines must provide their own synchronization.
package posidx

import (
	"io"
	"math/rand"
	"time"

	"github.com/beggers/positional-inverted-index/codec"
	"github.com/beggers/positional-inverted-index/index"
	"github.com/beggers/positional-inverted-index/internal/fs"
	"github.com/beggers/positional-inverted-index/persistence"
)

// DB is a positional inverted index database.
type DB struct {
	idx        *index.Index
	codec      codec.Codec
	compressor persistence.Compressor
	metrics    MetricsCollector
	logger     *Logger
	rng        *rand.Rand
	fsys       fs.FileSystem
}

// New creates an empty database.
func New(optFns ...Option) *DB {
	opts := applyOptions(optFns)
	return newDB(index.New(), opts)
}

// NewFromReader loads a database from a snapshot read from r.
func NewFromReader(r io.ReadSeeker, optFns ...Option) (*DB, error) {
	opts := applyOptions(optFns)

	start := time.Now()
	snap, err := persistence.LoadFromReader(r)
	duration := time.Since(start)
	opts.metricsCollector.RecordLoad(duration, err)
	if err != nil {
		opts.logger.LogLoad("", 0, 0, err)
		return nil, err
	}
	opts.logger.LogLoad("", snap.Meta.Documents, snap.Meta.Terms, nil)

	return newDB(snap.Index, opts), nil
}

// NewFromFile loads a database from the snapshot file at filename.
//
// If the file does not exist, the returned error wraps fs.ErrNotExist so
// callers can decide whether a missing index is fatal or the starting
// point of a fresh one.
func NewFromFile(filename string, optFns ...Option) (*DB, error) {
	opts := applyOptions(optFns)

	start := time.Now()
	snap, err := persistence.LoadFromFileFS(opts.fsys, filename)
	duration := time.Since(start)
	opts.metricsCollector.RecordLoad(duration, err)
	if err != nil {
		opts.logger.LogLoad(filename, 0, 0, err)
		return nil, err
	}
	opts.logger.LogLoad(filename, snap.Meta.Documents, snap.Meta.Terms, nil)

	return newDB(snap.Index, opts), nil
}

func newDB(idx *index.Index, opts options) *DB {
	if opts.orderingSet {
		idx.SetOrdering(opts.ordering)
	}

	seed := opts.randSeed
	if !opts.randSeedSet {
		seed = time.Now().UnixNano()
	}

	return &DB{
		idx:        idx,
		codec:      opts.codec,
		compressor: opts.compressor,
		metrics:    opts.metricsCollector,
		logger:     opts.logger,
		rng:        rand.New(rand.NewSource(seed)),
		fsys:       opts.fsys,
	}
}

// Index tokenizes text and indexes it under docID, replacing any document
// previously indexed under the same id. Indexing empty text removes the
// document.
func (db *DB) Index(docID uint32, text string) {
	start := time.Now()
	db.idx.Add(docID, text)
	duration := time.Since(start)
	db.metrics.RecordIndex(duration)
	db.logger.LogIndex(docID, db.idx.Documents())
}

// Search returns the ids of all documents containing every term of query,
// in ascending order. An empty query and a query containing a term absent
// from the index both return no ids.
func (db *DB) Search(query string) []uint32 {
	start := time.Now()
	ids := db.idx.Search(query)
	duration := time.Since(start)
	db.metrics.RecordSearch(duration, len(ids))
	db.logger.LogSearch(query, len(ids))
	return ids
}

// Delete removes the document indexed under docID. It returns
// ErrDocumentNotFound if no such document exists.
func (db *DB) Delete(docID uint32) error {
	start := time.Now()
	var err error
	if !db.idx.Delete(docID) {
		err = ErrDocumentNotFound
	}
	duration := time.Since(start)
	db.metrics.RecordDelete(duration, err)
	db.logger.LogDelete(docID, err)
	return err
}

// Has reports whether a document is indexed under docID.
func (db *DB) Has(docID uint32) bool {
	return db.idx.Has(docID)
}

// Documents returns the number of indexed documents.
func (db *DB) Documents() int {
	return db.idx.Documents()
}

// Terms returns the number of distinct terms in the index.
func (db *DB) Terms() int {
	return db.idx.Terms()
}

// Ordering returns the query term evaluation order.
func (db *DB) Ordering() index.QueryOrdering {
	return db.idx.Ordering()
}

// TermFrequency returns the total number of occurrences of term across
// all documents.
func (db *DB) TermFrequency(term string) int {
	return db.idx.TermFrequency(term)
}

// Positions returns the token positions of term within the document
// indexed under docID, or nil if the term does not occur there.
func (db *DB) Positions(term string, docID uint32) []uint32 {
	return db.idx.Positions(term, docID)
}

// TermListSize returns the total byte length of all distinct terms.
func (db *DB) TermListSize() int {
	return db.idx.TermListSize()
}

// PostingListSize returns the byte size of the posting list for term.
func (db *DB) PostingListSize(term string) int {
	return db.idx.PostingListSize(term)
}

// PostingListSizes returns the byte sizes of all posting lists, ordered
// by term.
func (db *DB) PostingListSizes() []int {
	return db.idx.PostingListSizes()
}

// PostingListSizesByTerm returns the byte size of every posting list
// keyed by term.
func (db *DB) PostingListSizesByTerm() map[string]int {
	return db.idx.PostingListSizesByTerm()
}

// RandomTerms returns up to n distinct terms sampled with probability
// proportional to occurrence count. Sampling is reproducible when the
// database was created with WithRandSeed.
func (db *DB) RandomTerms(n int) []string {
	return db.idx.RandomTerms(db.rng, n)
}

// Stats returns statistics about the underlying index.
func (db *DB) Stats() index.Stats {
	return db.idx.Stats()
}

// SaveToWriter writes a snapshot of the database to w.
// Uses a sectioned snapshot container: header + sections + directory + footer.
func (db *DB) SaveToWriter(w io.Writer) error {
	start := time.Now()
	err := persistence.SaveToWriter(w, db.idx, db.codec, db.compressor)
	duration := time.Since(start)
	db.metrics.RecordSave(duration, err)
	db.logger.LogSave("", err)
	return err
}

// SaveToFile writes a snapshot of the database to filename. The file is
// written atomically: a temporary file is written, synced, and renamed
// over the target.
func (db *DB) SaveToFile(filename string) error {
	start := time.Now()
	err := persistence.SaveToFileFS(db.fsys, filename, db.idx, db.codec, db.compressor)
	duration := time.Since(start)
	db.metrics.RecordSave(duration, err)
	db.logger.LogSave(filename, err)
	return err
}
