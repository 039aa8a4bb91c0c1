package posidx

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines the interface for collecting database metrics.
type MetricsCollector interface {
	// RecordIndex records metrics for a document index operation.
	RecordIndex(duration time.Duration)

	// RecordSearch records metrics for a search operation.
	RecordSearch(duration time.Duration, results int)

	// RecordDelete records metrics for a delete operation.
	RecordDelete(duration time.Duration, err error)

	// RecordSave records metrics for a save operation.
	RecordSave(duration time.Duration, err error)

	// RecordLoad records metrics for a load operation.
	RecordLoad(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordIndex(duration time.Duration) {}

func (NoopMetricsCollector) RecordSearch(duration time.Duration, results int) {}

func (NoopMetricsCollector) RecordDelete(duration time.Duration, err error) {}

func (NoopMetricsCollector) RecordSave(duration time.Duration, err error) {}

func (NoopMetricsCollector) RecordLoad(duration time.Duration, err error) {}

// BasicMetricsCollector provides a simple in-memory metrics implementation.
type BasicMetricsCollector struct {
	indexCount       atomic.Int64
	indexTotalNanos  atomic.Int64
	searchCount      atomic.Int64
	searchTotalNanos atomic.Int64
	searchResults    atomic.Int64
	deleteCount      atomic.Int64
	deleteErrors     atomic.Int64
	saveCount        atomic.Int64
	saveErrors       atomic.Int64
	loadCount        atomic.Int64
	loadErrors       atomic.Int64
}

// NewBasicMetricsCollector creates a new basic metrics collector.
func NewBasicMetricsCollector() *BasicMetricsCollector {
	return &BasicMetricsCollector{}
}

func (m *BasicMetricsCollector) RecordIndex(duration time.Duration) {
	m.indexCount.Add(1)
	m.indexTotalNanos.Add(int64(duration))
}

func (m *BasicMetricsCollector) RecordSearch(duration time.Duration, results int) {
	m.searchCount.Add(1)
	m.searchTotalNanos.Add(int64(duration))
	m.searchResults.Add(int64(results))
}

func (m *BasicMetricsCollector) RecordDelete(duration time.Duration, err error) {
	m.deleteCount.Add(1)
	if err != nil {
		m.deleteErrors.Add(1)
	}
}

func (m *BasicMetricsCollector) RecordSave(duration time.Duration, err error) {
	m.saveCount.Add(1)
	if err != nil {
		m.saveErrors.Add(1)
	}
}

func (m *BasicMetricsCollector) RecordLoad(duration time.Duration, err error) {
	m.loadCount.Add(1)
	if err != nil {
		m.loadErrors.Add(1)
	}
}

// GetStats returns a snapshot of collected metrics.
func (m *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		IndexCount:      m.indexCount.Load(),
		SearchCount:     m.searchCount.Load(),
		SearchResults:   m.searchResults.Load(),
		DeleteCount:     m.deleteCount.Load(),
		DeleteErrors:    m.deleteErrors.Load(),
		SaveCount:       m.saveCount.Load(),
		SaveErrors:      m.saveErrors.Load(),
		LoadCount:       m.loadCount.Load(),
		LoadErrors:      m.loadErrors.Load(),
		AvgIndexNanos:   avgNanos(m.indexTotalNanos.Load(), m.indexCount.Load()),
		AvgSearchNanos:  avgNanos(m.searchTotalNanos.Load(), m.searchCount.Load()),
	}
}

// BasicMetricsStats represents collected metrics statistics.
type BasicMetricsStats struct {
	IndexCount     int64
	SearchCount    int64
	SearchResults  int64
	DeleteCount    int64
	DeleteErrors   int64
	SaveCount      int64
	SaveErrors     int64
	LoadCount      int64
	LoadErrors     int64
	AvgIndexNanos  int64
	AvgSearchNanos int64
}

func avgNanos(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}
