// Package main provides the CLI commands for the posidx inverted index.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	posidx "github.com/beggers/positional-inverted-index"
	"github.com/beggers/positional-inverted-index/benchmark"
	"github.com/beggers/positional-inverted-index/codec"
	"github.com/beggers/positional-inverted-index/persistence"
)

func parseLogLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}

func parseDocumentID(s string) (uint32, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid document id %q", s)
	}
	return uint32(id), nil
}

// dbOptions resolves the shared CLI flags into database options. Empty
// codec and compression names keep the library defaults.
func dbOptions(logLevel, codecName, compressionName string) ([]posidx.Option, error) {
	level, err := parseLogLevel(logLevel)
	if err != nil {
		return nil, err
	}
	opts := []posidx.Option{posidx.WithLogLevel(level)}

	if codecName != "" {
		c, ok := codec.ByName(codecName)
		if !ok {
			return nil, fmt.Errorf("unknown codec %q", codecName)
		}
		opts = append(opts, posidx.WithCodec(c))
	}

	if compressionName != "" {
		comp, ok := persistence.CompressorByName(compressionName)
		if !ok {
			return nil, fmt.Errorf("unknown compression %q", compressionName)
		}
		opts = append(opts, posidx.WithCompressor(comp))
	}

	return opts, nil
}

func formatIDs(ids []uint32) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	return strings.Join(parts, " ")
}

func formatSizes(sizes []int) string {
	parts := make([]string, len(sizes))
	for i, size := range sizes {
		parts[i] = strconv.Itoa(size)
	}
	return strings.Join(parts, " ")
}

// indexCmd handles the index command. A missing index file starts a fresh
// index; every other open failure is fatal.
func indexCmd(args []string) int {
	flags := flag.NewFlagSet("index", flag.ContinueOnError)
	flags.SetOutput(os.Stderr)

	logLevel := flags.String("log-level", "warn", "Log level: debug, info, warn, error")
	codecName := flags.String("codec", "", "Snapshot metadata codec: json, go-json")
	compressionName := flags.String("compression", "", "Snapshot compression: none, zstd, lz4")
	help := flags.Bool("h", false, "Show help message")
	helpLong := flags.Bool("help", false, "Show help message")

	if err := flags.Parse(args); err != nil {
		return 1
	}

	if *help || *helpLong {
		printIndexUsage(os.Stdout)
		return 0
	}

	rest := flags.Args()
	if len(rest) < 3 {
		fmt.Fprintln(os.Stderr, "Error: index requires <index_name> <document_id> <text>")
		return 1
	}

	filename := rest[0]
	docID, err := parseDocumentID(rest[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	text := strings.Join(rest[2:], " ")

	opts, err := dbOptions(*logLevel, *codecName, *compressionName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	db, err := posidx.NewFromFile(filename, opts...)
	if errors.Is(err, fs.ErrNotExist) {
		db = posidx.New(opts...)
	} else if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening index: %v\n", err)
		return 1
	}

	db.Index(docID, text)

	if err := db.SaveToFile(filename); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving index: %v\n", err)
		return 1
	}

	return 0
}

// searchCmd handles the search command.
func searchCmd(args []string) int {
	flags := flag.NewFlagSet("search", flag.ContinueOnError)
	flags.SetOutput(os.Stderr)

	logLevel := flags.String("log-level", "warn", "Log level: debug, info, warn, error")
	help := flags.Bool("h", false, "Show help message")
	helpLong := flags.Bool("help", false, "Show help message")

	if err := flags.Parse(args); err != nil {
		return 1
	}

	if *help || *helpLong {
		printSearchUsage(os.Stdout)
		return 0
	}

	rest := flags.Args()
	if len(rest) < 2 {
		fmt.Fprintln(os.Stderr, "Error: search requires <index_name> <query>")
		return 1
	}

	db, code := openExisting(rest[0], *logLevel)
	if db == nil {
		return code
	}

	fmt.Println(formatIDs(db.Search(strings.Join(rest[1:], " "))))
	return 0
}

// deleteCmd handles the delete command.
func deleteCmd(args []string) int {
	flags := flag.NewFlagSet("delete", flag.ContinueOnError)
	flags.SetOutput(os.Stderr)

	logLevel := flags.String("log-level", "warn", "Log level: debug, info, warn, error")
	codecName := flags.String("codec", "", "Snapshot metadata codec: json, go-json")
	compressionName := flags.String("compression", "", "Snapshot compression: none, zstd, lz4")
	help := flags.Bool("h", false, "Show help message")
	helpLong := flags.Bool("help", false, "Show help message")

	if err := flags.Parse(args); err != nil {
		return 1
	}

	if *help || *helpLong {
		printDeleteUsage(os.Stdout)
		return 0
	}

	rest := flags.Args()
	if len(rest) < 2 {
		fmt.Fprintln(os.Stderr, "Error: delete requires <index_name> <document_id>")
		return 1
	}

	filename := rest[0]
	docID, err := parseDocumentID(rest[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	opts, err := dbOptions(*logLevel, *codecName, *compressionName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	db, err := posidx.NewFromFile(filename, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening index: %v\n", err)
		return 1
	}

	if err := db.Delete(docID); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if err := db.SaveToFile(filename); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving index: %v\n", err)
		return 1
	}

	return 0
}

// termListSizeCmd handles the term_list_size command.
func termListSizeCmd(args []string) int {
	return singleIndexCmd("term_list_size", args, printTermListSizeUsage, func(db *posidx.DB) {
		fmt.Println(db.TermListSize())
	})
}

// postingListSizesCmd handles the posting_list_sizes command.
func postingListSizesCmd(args []string) int {
	return singleIndexCmd("posting_list_sizes", args, printPostingListSizesUsage, func(db *posidx.DB) {
		fmt.Println(formatSizes(db.PostingListSizes()))
	})
}

// statsCmd handles the stats command.
func statsCmd(args []string) int {
	return singleIndexCmd("stats", args, printStatsUsage, func(db *posidx.DB) {
		stats := db.Stats()
		fmt.Printf("Documents:     %s\n", humanize.Comma(int64(stats.Documents)))
		fmt.Printf("Terms:         %s\n", humanize.Comma(int64(stats.Terms)))
		fmt.Printf("Postings:      %s\n", humanize.Comma(int64(stats.Postings)))
		fmt.Printf("Term bytes:    %s\n", humanize.IBytes(uint64(stats.TermBytes)))
		fmt.Printf("Posting bytes: %s\n", humanize.IBytes(uint64(stats.PostingBytes)))
	})
}

// singleIndexCmd parses the shared flag set of the read-only commands that
// take nothing but an index name, then invokes show on the loaded index.
func singleIndexCmd(name string, args []string, usage func(w io.Writer), show func(db *posidx.DB)) int {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(os.Stderr)

	logLevel := flags.String("log-level", "warn", "Log level: debug, info, warn, error")
	help := flags.Bool("h", false, "Show help message")
	helpLong := flags.Bool("help", false, "Show help message")

	if err := flags.Parse(args); err != nil {
		return 1
	}

	if *help || *helpLong {
		usage(os.Stdout)
		return 0
	}

	rest := flags.Args()
	if len(rest) < 1 {
		fmt.Fprintf(os.Stderr, "Error: %s requires <index_name>\n", name)
		return 1
	}

	db, code := openExisting(rest[0], *logLevel)
	if db == nil {
		return code
	}

	show(db)
	return 0
}

// openExisting loads an index file for a read-only command. It returns a
// nil database and the exit code on failure.
func openExisting(filename, logLevel string) (*posidx.DB, int) {
	opts, err := dbOptions(logLevel, "", "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, 1
	}

	db, err := posidx.NewFromFile(filename, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening index: %v\n", err)
		return nil, 1
	}

	return db, 0
}

// topTermsCmd handles the top_terms command.
func topTermsCmd(args []string) int {
	flags := flag.NewFlagSet("top_terms", flag.ContinueOnError)
	flags.SetOutput(os.Stderr)

	n := flags.Int("n", 10, "Number of posting lists to show")
	logLevel := flags.String("log-level", "warn", "Log level: debug, info, warn, error")
	help := flags.Bool("h", false, "Show help message")
	helpLong := flags.Bool("help", false, "Show help message")

	if err := flags.Parse(args); err != nil {
		return 1
	}

	if *help || *helpLong {
		printTopTermsUsage(os.Stdout)
		return 0
	}

	rest := flags.Args()
	if len(rest) < 1 {
		fmt.Fprintln(os.Stderr, "Error: top_terms requires <index_name>")
		return 1
	}

	if *n < 1 {
		fmt.Fprintf(os.Stderr, "Error: -n must be at least 1, got %d\n", *n)
		return 1
	}

	db, code := openExisting(rest[0], *logLevel)
	if db == nil {
		return code
	}

	type termSize struct {
		term string
		size int
	}

	byTerm := db.PostingListSizesByTerm()
	entries := make([]termSize, 0, len(byTerm))
	for term, size := range byTerm {
		entries = append(entries, termSize{term: term, size: size})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].size != entries[j].size {
			return entries[i].size > entries[j].size
		}
		return entries[i].term < entries[j].term
	})

	if *n < len(entries) {
		entries = entries[:*n]
	}

	fmt.Printf("Top %d posting lists:\n", len(entries))
	for _, entry := range entries {
		fmt.Printf("%s: %s\n", entry.term, humanize.IBytes(uint64(entry.size)))
	}

	return 0
}

// benchmarkCmd handles the benchmark command.
func benchmarkCmd(args []string) int {
	flags := flag.NewFlagSet("benchmark", flag.ContinueOnError)
	flags.SetOutput(os.Stderr)

	defaults := benchmark.DefaultConfig()
	configPath := flags.String("config", "", "Path to YAML config file")
	queryFrequency := flags.Int("query-frequency", defaults.QueryFrequency, "Run a query batch every N documents")
	numQueries := flags.Int("num-queries", defaults.NumQueries, "Queries per batch")
	maxQueryTokens := flags.Int("max-query-tokens", defaults.MaxQueryTokens, "Maximum terms per generated query")
	distribution := flags.String("distribution", defaults.Distribution, "Query term distribution: fixed, weighted")
	seed := flags.Int64("seed", defaults.Seed, "Random seed")
	qps := flags.Float64("qps", defaults.QPS, "Query pacing in queries per second (0 disables)")
	output := flags.String("output", defaults.OutputDir, "Report output directory")
	help := flags.Bool("h", false, "Show help message")
	helpLong := flags.Bool("help", false, "Show help message")

	if err := flags.Parse(args); err != nil {
		return 1
	}

	if *help || *helpLong {
		printBenchmarkUsage(os.Stdout)
		return 0
	}

	cfg, err := benchmark.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return 1
	}

	// Flags override the config file only when explicitly set.
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "query-frequency":
			cfg.QueryFrequency = *queryFrequency
		case "num-queries":
			cfg.NumQueries = *numQueries
		case "max-query-tokens":
			cfg.MaxQueryTokens = *maxQueryTokens
		case "distribution":
			cfg.Distribution = *distribution
		case "seed":
			cfg.Seed = *seed
		case "qps":
			cfg.QPS = *qps
		case "output":
			cfg.OutputDir = *output
		}
	})

	filenames, err := cfg.ResolveCorpus(flags.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	runner, err := benchmark.NewRunner(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	summary, err := runner.Run(context.Background(), filenames)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Benchmark failed: %v\n", err)
		return 1
	}

	fmt.Printf("Benchmark completed in %v\n", summary.Elapsed.Round(time.Millisecond))
	fmt.Printf("  Documents: %s\n", humanize.Comma(int64(summary.Documents)))
	fmt.Printf("  Queries:   %s\n", humanize.Comma(int64(summary.Queries)))
	fmt.Printf("  Terms:     %s\n", humanize.Comma(int64(summary.Terms)))
	fmt.Printf("  Postings:  %s\n", humanize.Comma(int64(summary.Postings)))
	fmt.Printf("  Reports:   %s\n", cfg.OutputDir)

	return 0
}
