// Package fs provides file-based access to article directories and book output.
package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fwojciec/wenji"
)

// Ensure ArticleSource implements wenji.ArticleSource at compile time.
var _ wenji.ArticleSource = (*ArticleSource)(nil)

// ArticleSource reads article directories from the local filesystem.
type ArticleSource struct{}

// NewArticleSource creates a new ArticleSource.
func NewArticleSource() *ArticleSource {
	return &ArticleSource{}
}

// Discover lists the immediate subdirectories of root that hold an entry
// document, skipping hidden directories. The result is sorted by the date in
// the directory name. os.ReadDir returns entries sorted by filename, so
// directories sharing a date stay in lexical order.
func (s *ArticleSource) Discover(ctx context.Context, root string) ([]*wenji.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading source directory: %w", err)
	}

	var articles []*wenji.Article
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		dir := filepath.Join(root, name)
		if !isDir(dir) {
			continue
		}
		if _, err := os.Stat(filepath.Join(dir, wenji.EntryFileName)); err != nil {
			continue
		}

		articles = append(articles, &wenji.Article{
			Name: name,
			Path: dir,
			Date: wenji.ExtractDate(name),
		})
	}

	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].Date.Before(articles[j].Date)
	})

	return articles, nil
}

// ReadEntry returns the entry document of an article.
func (s *ArticleSource) ReadEntry(ctx context.Context, article *wenji.Article) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := filepath.Join(article.Path, wenji.EntryFileName)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", wenji.Errorf(wenji.ENOTFOUND, "entry document not found: %s", path)
	} else if err != nil {
		return "", err
	}
	return string(data), nil
}

// ReadAsset returns the bytes of a file referenced from the article's entry
// document. relPath uses forward slashes and must stay inside the article
// directory.
func (s *ArticleSource) ReadAsset(ctx context.Context, article *wenji.Article, relPath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base := filepath.Clean(article.Path)
	path := filepath.Join(base, filepath.FromSlash(relPath))
	if !strings.HasPrefix(path, base+string(filepath.Separator)) {
		return nil, wenji.Errorf(wenji.EINVALID, "asset path escapes article directory: %s", relPath)
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, wenji.Errorf(wenji.ENOTFOUND, "asset not found: %s", path)
	} else if err != nil {
		return nil, err
	}
	return data, nil
}

// isDir reports whether path is a directory, following symlinks.
func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
