// Package goquery implements article cleaning on top of goquery: locating the
// article body, stripping boilerplate and normalizing inline styles.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/wenji"
	"golang.org/x/net/html"
)

// ContentNotFound is the markup returned for pages without a content container.
const ContentNotFound = "<p>Content not found</p>"

// removedElements never carry readable content.
const removedElements = "script, style, meta, link, noscript, iframe"

// Content container selectors, tried in order.
var containerSelectors = []string{
	"div#js_content",
	"div.rich_media_content",
}

// Ensure Extractor implements wenji.Extractor at compile time.
var _ wenji.Extractor = (*Extractor)(nil)

// Extractor extracts the article body from scraped article pages.
type Extractor struct {
	fallback wenji.Extractor
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithFallback sets an extractor used for pages that have no known content
// container. Its output is cleaned the same way as a regular container.
func WithFallback(e wenji.Extractor) Option {
	return func(x *Extractor) {
		x.fallback = e
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	x := &Extractor{}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Extract parses an article page and returns its title, the cleaned content
// container and the local images it references.
//
// The title is the text of the first h1. A page without a content container
// yields ContentNotFound rather than an error.
func (x *Extractor) Extract(rawHTML string) (*wenji.ExtractResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, wenji.Errorf(wenji.EINVALID, "failed to parse HTML: %v", err)
	}

	doc.Find(removedElements).Remove()
	for _, n := range doc.Nodes {
		removeComments(n)
	}

	title := strings.TrimSpace(doc.Find("h1").First().Text())

	container := findContainer(doc.Selection)
	if container == nil {
		return x.extractFallback(rawHTML, title)
	}

	content, images, err := cleanContainer(container.Clone())
	if err != nil {
		return nil, err
	}

	return &wenji.ExtractResult{
		Title:       title,
		ContentHTML: content,
		Images:      images,
	}, nil
}

// extractFallback handles pages without a known content container.
func (x *Extractor) extractFallback(rawHTML, title string) (*wenji.ExtractResult, error) {
	notFound := &wenji.ExtractResult{Title: title, ContentHTML: ContentNotFound}
	if x.fallback == nil {
		return notFound, nil
	}

	result, err := x.fallback.Extract(rawHTML)
	if err != nil || strings.TrimSpace(result.ContentHTML) == "" {
		return notFound, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<div>" + result.ContentHTML + "</div>"))
	if err != nil {
		return notFound, nil
	}
	doc.Find(removedElements).Remove()

	content, images, err := cleanContainer(doc.Find("body > div").First())
	if err != nil {
		return nil, err
	}

	if title == "" {
		title = strings.TrimSpace(result.Title)
	}

	return &wenji.ExtractResult{
		Title:       title,
		ContentHTML: content,
		Images:      images,
	}, nil
}

// findContainer returns the first matching content container, or nil.
func findContainer(sel *goquery.Selection) *goquery.Selection {
	for _, selector := range containerSelectors {
		if found := sel.Find(selector).First(); found.Length() > 0 {
			return found
		}
	}
	return nil
}

// cleanContainer strips footers, normalizes styles and rewrites local image
// references in place, then serializes the container.
//
// The container's own style is dropped: article pages hide it until a script
// reveals it, and scripts are gone by now.
func cleanContainer(container *goquery.Selection) (string, []string, error) {
	container.RemoveAttr("style")
	StripFooter(container)
	NormalizeStyles(container)
	images := RewriteImages(container)

	markup, err := goquery.OuterHtml(container)
	if err != nil {
		return "", nil, wenji.Errorf(wenji.EINTERNAL, "failed to render content: %v", err)
	}

	return JoinParagraphs(markup), images, nil
}

// removeComments detaches every comment node below n.
func removeComments(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.CommentNode {
			n.RemoveChild(c)
		} else {
			removeComments(c)
		}
		c = next
	}
}
