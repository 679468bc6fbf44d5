package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/wenji"
)

// Ensure LoggingArticleSource implements wenji.ArticleSource.
var _ wenji.ArticleSource = (*LoggingArticleSource)(nil)

// LoggingArticleSource wraps an ArticleSource with debug logging.
type LoggingArticleSource struct {
	next   wenji.ArticleSource
	logger *slog.Logger
}

// NewLoggingArticleSource creates a new LoggingArticleSource.
func NewLoggingArticleSource(next wenji.ArticleSource, logger *slog.Logger) *LoggingArticleSource {
	return &LoggingArticleSource{next: next, logger: logger}
}

// Discover delegates to the wrapped source and logs the operation.
func (s *LoggingArticleSource) Discover(ctx context.Context, root string) (articles []*wenji.Article, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("discover",
			"root", root,
			"count", len(articles),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Discover(ctx, root)
}

// ReadEntry delegates to the wrapped source and logs the operation.
func (s *LoggingArticleSource) ReadEntry(ctx context.Context, article *wenji.Article) (html string, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("read entry",
			"dir", article.Name,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ReadEntry(ctx, article)
}

// ReadAsset delegates to the wrapped source and logs the operation.
func (s *LoggingArticleSource) ReadAsset(ctx context.Context, article *wenji.Article, relPath string) (data []byte, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("read asset",
			"dir", article.Name,
			"path", relPath,
			"bytes", len(data),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ReadAsset(ctx, article, relPath)
}
