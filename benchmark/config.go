package benchmark

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config controls a benchmark run.
type Config struct {
	// CorpusFiles are glob patterns naming paragraph corpus files.
	CorpusFiles []string `yaml:"corpusFiles"`

	// QueryFrequency runs a query batch every QueryFrequency documents.
	QueryFrequency int `yaml:"queryFrequency"`

	// NumQueries is the number of queries per batch.
	NumQueries int `yaml:"numQueries"`

	// MaxQueryTokens caps the number of terms per generated query.
	MaxQueryTokens int `yaml:"maxQueryTokens"`

	// Distribution selects how query terms are drawn: "fixed" or "weighted".
	Distribution string `yaml:"distribution"`

	// Seed makes indexing order and query generation reproducible.
	Seed int64 `yaml:"seed"`

	// QPS paces query execution. Zero disables pacing.
	QPS float64 `yaml:"qps"`

	// OutputDir receives the CSV reports.
	OutputDir string `yaml:"outputDir"`
}

// DefaultConfig returns a Config with defaults suitable for small corpora.
func DefaultConfig() Config {
	return Config{
		QueryFrequency: 100,
		NumQueries:     10,
		MaxQueryTokens: 3,
		Distribution:   "fixed",
		Seed:           1,
		QPS:            0,
		OutputDir:      "benchmark-results",
	}
}

// LoadConfig reads a YAML config file over DefaultConfig. An empty path
// returns the defaults unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the config for values the runner cannot work with.
func (c Config) Validate() error {
	if c.QueryFrequency < 1 {
		return fmt.Errorf("queryFrequency must be at least 1, got %d", c.QueryFrequency)
	}

	if c.NumQueries < 0 {
		return fmt.Errorf("numQueries must not be negative, got %d", c.NumQueries)
	}

	if c.MaxQueryTokens < 1 {
		return fmt.Errorf("maxQueryTokens must be at least 1, got %d", c.MaxQueryTokens)
	}

	if _, ok := DistributionByName(c.Distribution); !ok {
		return fmt.Errorf("unknown distribution %q", c.Distribution)
	}

	if c.QPS < 0 {
		return fmt.Errorf("qps must not be negative, got %g", c.QPS)
	}

	if c.OutputDir == "" {
		return fmt.Errorf("outputDir must not be empty")
	}

	return nil
}

// ResolveCorpus expands the configured corpus globs and appends extra
// literal paths. It fails when no corpus file remains.
func (c Config) ResolveCorpus(extra []string) ([]string, error) {
	var filenames []string

	for _, pattern := range c.CorpusFiles {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid corpus glob %q: %w", pattern, err)
		}
		filenames = append(filenames, matches...)
	}

	filenames = append(filenames, extra...)

	if len(filenames) == 0 {
		return nil, fmt.Errorf("no corpus files")
	}

	return filenames, nil
}
