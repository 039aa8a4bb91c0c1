// Package benchmark measures indexing and query latency of a positional
// inverted index over a paragraph corpus and reports the results as CSV
// files: per-document indexing durations, per-query durations, posting
// list size statistics sampled over time, and the final per-term sizes.
package benchmark

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	posidx "github.com/beggers/positional-inverted-index"
	"github.com/beggers/positional-inverted-index/internal/conv"
)

// Summary describes a completed benchmark run.
type Summary struct {
	Documents int
	Queries   int
	Terms     int
	Postings  int
	Elapsed   time.Duration
}

// Runner executes one benchmark over a corpus.
type Runner struct {
	cfg     Config
	db      *posidx.DB
	gen     *QueryGenerator
	limiter *rate.Limiter
}

// NewRunner validates cfg and prepares a runner with an empty database.
func NewRunner(cfg Config) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	distribution, _ := DistributionByName(cfg.Distribution)

	r := &Runner{
		cfg: cfg,
		db:  posidx.New(posidx.WithRandSeed(cfg.Seed)),
		gen: NewQueryGenerator(distribution, cfg.MaxQueryTokens, rand.New(rand.NewSource(cfg.Seed))),
	}

	if cfg.QPS > 0 {
		r.limiter = rate.NewLimiter(rate.Limit(cfg.QPS), 1)
	}

	return r, nil
}

// DB returns the database under test.
func (r *Runner) DB() *posidx.DB {
	return r.db
}

// Run loads the corpus files, indexes each paragraph as one document
// timing the call, runs a generated query batch every QueryFrequency
// documents, and writes the CSV reports to Config.OutputDir.
func (r *Runner) Run(ctx context.Context, filenames []string) (*Summary, error) {
	paragraphs, err := LoadCorpus(ctx, filenames)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(r.cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	indexing, err := newReportWriter(r.cfg.OutputDir, IndexingReport, []string{"Document Count", "Indexing Duration"})
	if err != nil {
		return nil, err
	}
	defer indexing.Close()

	querying, err := newReportWriter(r.cfg.OutputDir, QueryingReport, []string{"Document Count", "Tokens in Query", "Query Duration"})
	if err != nil {
		return nil, err
	}
	defer querying.Close()

	sizes, err := newReportWriter(r.cfg.OutputDir, SizeReport, []string{"Paragraph", "Mean Posting List Size", "Std Dev Posting List Size"})
	if err != nil {
		return nil, err
	}
	defer sizes.Close()

	summary := &Summary{}
	runStart := time.Now()

	for i, paragraph := range paragraphs {
		docID, err := conv.IntToUint32(i)
		if err != nil {
			return nil, fmt.Errorf("corpus too large: %w", err)
		}

		start := time.Now()
		r.db.Index(docID, paragraph)
		duration := time.Since(start)

		if err := indexing.Write([]string{strconv.Itoa(i), duration.String()}); err != nil {
			return nil, err
		}
		summary.Documents++

		if i%r.cfg.QueryFrequency == 0 {
			ran, err := r.runQueryBatch(ctx, querying, i)
			if err != nil {
				return nil, err
			}
			summary.Queries += ran

			mean, stdDev := MeanStdDev(r.db.PostingListSizes())
			record := []string{
				strconv.Itoa(i),
				strconv.FormatFloat(mean, 'f', -1, 64),
				strconv.FormatFloat(stdDev, 'f', -1, 64),
			}
			if err := sizes.Write(record); err != nil {
				return nil, err
			}
		}
	}

	if err := r.writeFinalSizes(); err != nil {
		return nil, err
	}

	for _, report := range []*reportWriter{indexing, querying, sizes} {
		if err := report.Close(); err != nil {
			return nil, err
		}
	}

	summary.Elapsed = time.Since(runStart)

	stats := r.db.Stats()
	summary.Terms = stats.Terms
	summary.Postings = stats.Postings

	return summary, nil
}

func (r *Runner) runQueryBatch(ctx context.Context, report *reportWriter, documents int) (int, error) {
	queries := r.gen.Queries(r.db, r.cfg.NumQueries)

	for _, query := range queries {
		if r.limiter != nil {
			if err := r.limiter.Wait(ctx); err != nil {
				return 0, err
			}
		}

		start := time.Now()
		r.db.Search(query)
		duration := time.Since(start)

		record := []string{
			strconv.Itoa(documents),
			strconv.Itoa(len(strings.Fields(query))),
			duration.String(),
		}
		if err := report.Write(record); err != nil {
			return 0, err
		}
	}

	return len(queries), nil
}

func (r *Runner) writeFinalSizes() error {
	report, err := newReportWriter(r.cfg.OutputDir, FinalPostingSizesReport, []string{"Term", "Size"})
	if err != nil {
		return err
	}
	defer report.Close()

	byTerm := r.db.PostingListSizesByTerm()
	terms := make([]string, 0, len(byTerm))
	for term := range byTerm {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	for _, term := range terms {
		if err := report.Write([]string{term, strconv.Itoa(byTerm[term])}); err != nil {
			return err
		}
	}

	return report.Close()
}
