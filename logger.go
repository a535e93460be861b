package optics

import (
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with index- and clustering-specific helpers so
// field names stay consistent.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler.
// If handler is nil, uses a text handler to stderr at Info level.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger creates a Logger that writes JSON to stderr.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NewTextLogger creates a Logger that writes human-readable text to stderr.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NoopLogger creates a Logger that discards all output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000),
	}))
}

// LogInsert logs an insert operation.
func (l *Logger) LogInsert(id DBID, dimension int, err error) {
	if err != nil {
		l.Error("insert failed", "id", id, "dimension", dimension, "error", err)
		return
	}
	l.Debug("insert completed", "id", id, "dimension", dimension)
}

// LogDelete logs a delete operation.
func (l *Logger) LogDelete(id DBID, found bool) {
	l.Debug("delete completed", "id", id, "found", found)
}

// LogSearch logs a range or k-NN query.
func (l *Logger) LogSearch(kind string, results int, err error) {
	if err != nil {
		l.Error("search failed", "kind", kind, "error", err)
		return
	}
	l.Debug("search completed", "kind", kind, "results", results)
}

// LogSplit logs a node split.
func (l *Logger) LogSplit(nodeID, newNodeID int, leaf bool) {
	l.Debug("node split", "node", nodeID, "new_node", newNodeID, "leaf", leaf)
}

// LogClusterOrder logs a finished cluster ordering run.
func (l *Logger) LogClusterOrder(objects, runs int, ioAccess int64) {
	l.Info("cluster order completed", "objects", objects, "runs", runs, "io_access", ioAccess)
}
