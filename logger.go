package posidx

import (
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger to provide database-specific logging helpers.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new logger with the given handler.
// If handler is nil, it defaults to a text handler writing to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewTextLogger creates a logger that writes human-readable output to stderr.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewJSONLogger creates a logger that writes JSON output to stderr.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger returns a logger that discards all output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // above any level anyone logs at
	}))
}

// LogIndex logs a document index operation.
func (l *Logger) LogIndex(docID uint32, documents int) {
	l.Debug("document indexed",
		slog.Uint64("doc_id", uint64(docID)),
		slog.Int("documents", documents),
	)
}

// LogSearch logs a search operation.
func (l *Logger) LogSearch(query string, results int) {
	l.Debug("search completed",
		slog.String("query", query),
		slog.Int("results", results),
	)
}

// LogDelete logs a delete operation.
func (l *Logger) LogDelete(docID uint32, err error) {
	if err != nil {
		l.Error("delete failed",
			slog.Uint64("doc_id", uint64(docID)),
			slog.String("error", err.Error()),
		)
	} else {
		l.Debug("document deleted",
			slog.Uint64("doc_id", uint64(docID)),
		)
	}
}

// LogSave logs a save operation.
func (l *Logger) LogSave(filename string, err error) {
	if err != nil {
		l.Error("save failed",
			slog.String("filename", filename),
			slog.String("error", err.Error()),
		)
	} else {
		l.Info("index saved",
			slog.String("filename", filename),
		)
	}
}

// LogLoad logs a load operation.
func (l *Logger) LogLoad(filename string, documents, terms int, err error) {
	if err != nil {
		l.Error("load failed",
			slog.String("filename", filename),
			slog.String("error", err.Error()),
		)
	} else {
		l.Info("index loaded",
			slog.String("filename", filename),
			slog.Int("documents", documents),
			slog.Int("terms", terms),
		)
	}
}
