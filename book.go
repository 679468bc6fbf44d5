package wenji

import (
	"context"
	"io"

	"github.com/cespare/xxhash/v2"
)

// Metadata describes the book as a whole.
type Metadata struct {
	Identifier string
	Title      string
	Language   string
	Author     string
}

// Validate returns an error if the metadata contains invalid fields.
func (m *Metadata) Validate() error {
	if m.Identifier == "" {
		return Errorf(EINVALID, "book identifier required")
	}
	if m.Title == "" {
		return Errorf(EINVALID, "book title required")
	}
	if m.Language == "" {
		return Errorf(EINVALID, "book language required")
	}
	return nil
}

// Document is a single XHTML page of the book.
type Document struct {
	ID       string
	FileName string
	Title    string

	// Body is the markup placed inside the page body.
	Body string
}

// Chapter is the document built from one article.
type Chapter struct {
	Document

	// Ordinal is the 1-based position of the article in sorted order.
	Ordinal int

	// DateText is the literal date shown under the chapter title.
	DateText string

	// Article is the directory the chapter was built from.
	Article *Article

	// Images are the resources registered for this chapter.
	Images []*Resource
}

// Resource is a binary file embedded into the book, such as an image.
type Resource struct {
	ID        string
	Href      string
	MediaType string
	Data      []byte
}

// NavPoint is one entry of the navigation document.
type NavPoint struct {
	ID    string
	Title string
	Href  string
}

// Book is the assembled ebook handed to a BookWriter.
type Book struct {
	Metadata Metadata
	Cover    *Document
	TOCPage  *Document
	Chapters []*Chapter
	Nav      []NavPoint

	resources []*Resource
	hashes    map[string]uint64
}

// NewBook returns an empty book with the given metadata.
func NewBook(meta Metadata) *Book {
	return &Book{
		Metadata: meta,
		hashes:   make(map[string]uint64),
	}
}

// AddResource registers a resource for packaging.
// A resource whose href is already registered with identical bytes is not
// stored twice and reports added=false. The same href with different bytes
// returns ECONFLICT, since a container holds one file per path.
func (b *Book) AddResource(r *Resource) (added bool, err error) {
	if r.Href == "" {
		return false, Errorf(EINVALID, "resource href required")
	}
	if b.hashes == nil {
		b.hashes = make(map[string]uint64)
	}

	sum := xxhash.Sum64(r.Data)
	if existing, ok := b.hashes[r.Href]; ok {
		if existing == sum {
			return false, nil
		}
		return false, Errorf(ECONFLICT, "resource %q already exists with different content", r.Href)
	}

	b.hashes[r.Href] = sum
	b.resources = append(b.resources, r)
	return true, nil
}

// Resources returns the registered resources in registration order.
func (b *Book) Resources() []*Resource {
	return b.resources
}

// Spine returns the reading order: cover, table of contents, then chapters.
func (b *Book) Spine() []*Document {
	spine := make([]*Document, 0, len(b.Chapters)+2)
	if b.Cover != nil {
		spine = append(spine, b.Cover)
	}
	if b.TOCPage != nil {
		spine = append(spine, b.TOCPage)
	}
	for _, ch := range b.Chapters {
		spine = append(spine, &ch.Document)
	}
	return spine
}

// Validate returns an error if the book cannot be packaged.
func (b *Book) Validate() error {
	if err := b.Metadata.Validate(); err != nil {
		return err
	}
	if b.Cover == nil {
		return Errorf(EINVALID, "book cover required")
	}
	if b.TOCPage == nil {
		return Errorf(EINVALID, "book table of contents required")
	}
	return nil
}

// BookWriter serializes a book into a container format.
type BookWriter interface {
	// WriteBook writes the complete book to w.
	WriteBook(ctx context.Context, w io.Writer, book *Book) error
}
