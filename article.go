package wenji

import (
	"context"
	"time"
)

// EntryFileName is the name of the document every article directory must hold.
const EntryFileName = "index.html"

// AssetsPrefix is the relative prefix of image references that are embedded
// into the book.
const AssetsPrefix = "./assets/"

// Article represents one scraped article directory.
type Article struct {
	// Name is the directory name. It encodes the publication date.
	Name string

	// Path is the directory path as found under the source root.
	Path string

	// Date is the sort key derived from Name with ExtractDate.
	Date time.Time
}

// ArticleSource enumerates article directories and reads their files.
type ArticleSource interface {
	// Discover lists the article directories directly under root, sorted
	// ascending by Date. Ties keep enumeration order.
	Discover(ctx context.Context, root string) ([]*Article, error)

	// ReadEntry returns the entry document of an article.
	// Returns ENOTFOUND if the article has no entry document.
	ReadEntry(ctx context.Context, article *Article) (string, error)

	// ReadAsset returns the bytes of a file referenced relative to the
	// article directory. Returns ENOTFOUND if the file does not exist.
	ReadAsset(ctx context.Context, article *Article, relPath string) ([]byte, error)
}
