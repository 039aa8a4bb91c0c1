// Package persistence reads and writes whole-index files.
//
// An index file is a self-describing container: a header naming the codec
// and compression in use, a metadata section, a postings section, a
// directory locating the sections with per-section CRC32C checksums, and a
// footer locating the directory. Files are written atomically (temp file
// plus rename) and loaded in full; there is no incremental update path.
package persistence
