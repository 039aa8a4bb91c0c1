package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage information to the given writer.
func printUsage(w io.Writer) {
	fmt.Fprint(w, `posidx - Positional inverted index

Usage:
  posidx <command> [options] [arguments]

Commands:
  index               Index a document
  search              Search for documents containing every query term
  delete              Delete a document
  term_list_size      Print the total byte length of all terms
  posting_list_sizes  Print the byte size of every posting list
  stats               Print index statistics
  top_terms           Print the largest posting lists
  benchmark           Run an indexing and query benchmark over a corpus
  version             Show version information

Use "posidx <command> -h" for more information about a command.
`)
}

// printIndexUsage prints the index command usage.
func printIndexUsage(w io.Writer) {
	fmt.Fprint(w, `Index a document

Tokenizes the text and indexes it under the document id, replacing any
document previously indexed under the same id. A missing index file
starts a fresh index. Multiple text arguments are joined with spaces.

Usage:
  posidx index [options] <index_name> <document_id> <text...>

Options:
  -codec string
        Snapshot metadata codec: json, go-json (default "go-json")
  -compression string
        Snapshot compression: none, zstd, lz4 (default "none")
  -log-level string
        Log level: debug, info, warn, error (default "warn")
  -h, -help
        Show this help message
`)
}

// printSearchUsage prints the search command usage.
func printSearchUsage(w io.Writer) {
	fmt.Fprint(w, `Search for documents containing every query term

Prints matching document ids in ascending order, space-separated on one
line. Multiple query arguments are joined with spaces.

Usage:
  posidx search [options] <index_name> <query...>

Options:
  -log-level string
        Log level: debug, info, warn, error (default "warn")
  -h, -help
        Show this help message
`)
}

// printDeleteUsage prints the delete command usage.
func printDeleteUsage(w io.Writer) {
	fmt.Fprint(w, `Delete a document

Usage:
  posidx delete [options] <index_name> <document_id>

Options:
  -codec string
        Snapshot metadata codec: json, go-json (default "go-json")
  -compression string
        Snapshot compression: none, zstd, lz4 (default "none")
  -log-level string
        Log level: debug, info, warn, error (default "warn")
  -h, -help
        Show this help message
`)
}

// printTermListSizeUsage prints the term_list_size command usage.
func printTermListSizeUsage(w io.Writer) {
	fmt.Fprint(w, `Print the total byte length of all distinct terms

Usage:
  posidx term_list_size [options] <index_name>

Options:
  -log-level string
        Log level: debug, info, warn, error (default "warn")
  -h, -help
        Show this help message
`)
}

// printPostingListSizesUsage prints the posting_list_sizes command usage.
func printPostingListSizesUsage(w io.Writer) {
	fmt.Fprint(w, `Print the byte size of every posting list

Sizes are printed space-separated on one line, ordered by term.

Usage:
  posidx posting_list_sizes [options] <index_name>

Options:
  -log-level string
        Log level: debug, info, warn, error (default "warn")
  -h, -help
        Show this help message
`)
}

// printStatsUsage prints the stats command usage.
func printStatsUsage(w io.Writer) {
	fmt.Fprint(w, `Print index statistics

Usage:
  posidx stats [options] <index_name>

Options:
  -log-level string
        Log level: debug, info, warn, error (default "warn")
  -h, -help
        Show this help message
`)
}

// printTopTermsUsage prints the top_terms command usage.
func printTopTermsUsage(w io.Writer) {
	fmt.Fprint(w, `Print the largest posting lists

Usage:
  posidx top_terms [options] <index_name>

Options:
  -n int
        Number of posting lists to show (default 10)
  -log-level string
        Log level: debug, info, warn, error (default "warn")
  -h, -help
        Show this help message
`)
}

// printBenchmarkUsage prints the benchmark command usage.
func printBenchmarkUsage(w io.Writer) {
	fmt.Fprint(w, `Run an indexing and query benchmark over a paragraph corpus

Corpus files are split into paragraphs on blank lines and each paragraph
is indexed as one document. CSV reports are written to the output
directory. Flags override values from the config file.

Usage:
  posidx benchmark [options] <corpus files...>

Options:
  -config string
        Path to YAML config file
  -query-frequency int
        Run a query batch every N documents (default 100)
  -num-queries int
        Queries per batch (default 10)
  -max-query-tokens int
        Maximum terms per generated query (default 3)
  -distribution string
        Query term distribution: fixed, weighted (default "fixed")
  -seed int
        Random seed (default 1)
  -qps float
        Query pacing in queries per second, 0 disables (default 0)
  -output string
        Report output directory (default "benchmark-results")
  -h, -help
        Show this help message
`)
}

// printVersionUsage prints the version command usage.
func printVersionUsage(w io.Writer) {
	fmt.Fprint(w, `Show version information

Usage:
  posidx version [options]

Options:
  -short
        Show only version number
  -h, -help
        Show this help message
`)
}
