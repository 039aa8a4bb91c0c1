package posidx

import (
	"log/slog"

	"github.com/beggers/positional-inverted-index/codec"
	"github.com/beggers/positional-inverted-index/index"
	"github.com/beggers/positional-inverted-index/internal/fs"
	"github.com/beggers/positional-inverted-index/persistence"
)

type options struct {
	codec            codec.Codec
	compressor       persistence.Compressor
	ordering         index.QueryOrdering
	orderingSet      bool
	randSeed         int64
	randSeedSet      bool
	metricsCollector MetricsCollector
	logger           *Logger
	fsys             fs.FileSystem
}

// Option configures how a DB is created.
type Option func(*options)

// WithCodec configures the codec used to encode snapshot metadata.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCompressor configures the compressor used for snapshot sections.
//
// If nil is passed, persistence.DefaultCompressor is used.
func WithCompressor(comp persistence.Compressor) Option {
	return func(o *options) {
		if comp == nil {
			comp = persistence.DefaultCompressor
		}
		o.compressor = comp
	}
}

// WithOrdering sets the query term evaluation order. When loading from a
// file it overrides the ordering stored in the snapshot.
func WithOrdering(ordering index.QueryOrdering) Option {
	return func(o *options) {
		o.ordering = ordering
		o.orderingSet = true
	}
}

// WithRandSeed seeds the random source used by RandomTerms, making term
// sampling reproducible.
func WithRandSeed(seed int64) Option {
	return func(o *options) {
		o.randSeed = seed
		o.randSeedSet = true
	}
}

// WithMetricsCollector sets a custom metrics collector.
func WithMetricsCollector(collector MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = collector
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel sets up a text logger at the given level.
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithFileSystem sets the file system used for snapshot files.
// This is primarily used for testing and fault injection.
func WithFileSystem(fsys fs.FileSystem) Option {
	return func(o *options) {
		if fsys == nil {
			fsys = fs.Default
		}
		o.fsys = fsys
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		fsys:             fs.Default,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
