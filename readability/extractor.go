// Package readability provides a heuristic fallback extractor for article
// pages that lack the expected content container.
package readability

import (
	"strings"

	"github.com/fwojciec/wenji"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements wenji.Extractor at compile time.
var _ wenji.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
// Local image references are left untouched; the caller rewrites them.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*wenji.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, wenji.Errorf(wenji.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &wenji.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
