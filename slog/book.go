package slog

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/wenji"
)

// Ensure LoggingBookWriter implements wenji.BookWriter.
var _ wenji.BookWriter = (*LoggingBookWriter)(nil)

// LoggingBookWriter wraps a BookWriter with logging.
type LoggingBookWriter struct {
	next   wenji.BookWriter
	logger *slog.Logger
}

// NewLoggingBookWriter creates a new LoggingBookWriter.
func NewLoggingBookWriter(next wenji.BookWriter, logger *slog.Logger) *LoggingBookWriter {
	return &LoggingBookWriter{next: next, logger: logger}
}

// WriteBook delegates to the wrapped writer and logs the book size.
func (b *LoggingBookWriter) WriteBook(ctx context.Context, w io.Writer, book *wenji.Book) (err error) {
	cw := &countingWriter{w: w}
	defer func(begin time.Time) {
		b.logger.Debug("write book",
			"title", book.Metadata.Title,
			"chapters", len(book.Chapters),
			"resources", len(book.Resources()),
			"bytes", cw.n,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return b.next.WriteBook(ctx, cw, book)
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
