package posidx

import "errors"

// ErrDocumentNotFound is returned when an operation names a document id
// that has no postings in the index.
var ErrDocumentNotFound = errors.New("document not found")
