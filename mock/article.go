package mock

import (
	"context"

	"github.com/fwojciec/wenji"
)

var _ wenji.ArticleSource = (*ArticleSource)(nil)

// ArticleSource is a mock implementation of wenji.ArticleSource.
type ArticleSource struct {
	DiscoverFn  func(ctx context.Context, root string) ([]*wenji.Article, error)
	ReadEntryFn func(ctx context.Context, article *wenji.Article) (string, error)
	ReadAssetFn func(ctx context.Context, article *wenji.Article, relPath string) ([]byte, error)
}

func (s *ArticleSource) Discover(ctx context.Context, root string) ([]*wenji.Article, error) {
	return s.DiscoverFn(ctx, root)
}

func (s *ArticleSource) ReadEntry(ctx context.Context, article *wenji.Article) (string, error) {
	return s.ReadEntryFn(ctx, article)
}

func (s *ArticleSource) ReadAsset(ctx context.Context, article *wenji.Article, relPath string) ([]byte, error) {
	return s.ReadAssetFn(ctx, article, relPath)
}
