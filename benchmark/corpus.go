package benchmark

import (
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"
)

// ReadParagraphs reads the named file and splits it into paragraphs on
// blank lines. Paragraphs are trimmed and empty ones are dropped.
func ReadParagraphs(filename string) ([]string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus file: %w", err)
	}
	return splitParagraphs(string(data)), nil
}

func splitParagraphs(text string) []string {
	var paragraphs []string

	var current []string
	flush := func() {
		if len(current) == 0 {
			return
		}
		p := strings.TrimSpace(strings.Join(current, "\n"))
		if p != "" {
			paragraphs = append(paragraphs, p)
		}
		current = current[:0]
	}

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()

	return paragraphs
}

// LoadCorpus reads every named file concurrently and returns their
// paragraphs in file order.
func LoadCorpus(ctx context.Context, filenames []string) ([]string, error) {
	g, _ := errgroup.WithContext(ctx)
	// Limit concurrency to avoid FD exhaustion on large corpora
	g.SetLimit(8)

	perFile := make([][]string, len(filenames))
	for i, filename := range filenames {
		i, filename := i, filename
		g.Go(func() error {
			paragraphs, err := ReadParagraphs(filename)
			if err != nil {
				return err
			}
			perFile[i] = paragraphs
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []string
	for _, paragraphs := range perFile {
		all = append(all, paragraphs...)
	}
	return all, nil
}
