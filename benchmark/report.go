package benchmark

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// Report file names written into Config.OutputDir.
const (
	IndexingReport          = "indexing_data.csv"
	QueryingReport          = "querying_data.csv"
	SizeReport              = "size_data.csv"
	FinalPostingSizesReport = "final_posting_list_sizes.csv"
)

// MeanStdDev returns the mean and population standard deviation of sizes.
func MeanStdDev(sizes []int) (mean, stdDev float64) {
	if len(sizes) == 0 {
		return 0, 0
	}

	sum := 0
	for _, size := range sizes {
		sum += size
	}
	mean = float64(sum) / float64(len(sizes))

	variance := 0.0
	for _, size := range sizes {
		diff := float64(size) - mean
		variance += diff * diff
	}
	variance /= float64(len(sizes))

	return mean, math.Sqrt(variance)
}

// reportWriter owns one CSV report file.
type reportWriter struct {
	f *os.File
	w *csv.Writer
}

func newReportWriter(dir, name string, header []string) (*reportWriter, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to create report file: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to write report header: %w", err)
	}

	return &reportWriter{f: f, w: w}, nil
}

func (r *reportWriter) Write(record []string) error {
	return r.w.Write(record)
}

// Close flushes and closes the report. It is safe to call twice.
func (r *reportWriter) Close() error {
	if r.f == nil {
		return nil
	}

	r.w.Flush()
	err := r.w.Error()

	if cerr := r.f.Close(); err == nil {
		err = cerr
	}
	r.f = nil

	return err
}
