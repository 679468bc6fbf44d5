// Package epub packages a wenji.Book into an EPUB 3 container.
//
// The container is a ZIP archive whose first entry is an uncompressed
// mimetype file. Package, navigation and content documents are generated
// with etree, so every document in the archive is well-formed XML.
package epub

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/fwojciec/wenji"
)

// Container layout. Paths other than the mimetype and container.xml are
// relative to ContentDir.
const (
	MimeType      = "application/epub+zip"
	ContainerPath = "META-INF/container.xml"
	ContentDir    = "EPUB"
	PackagePath   = ContentDir + "/content.opf"

	StylesheetPath = "style/default.css"
	NCXPath        = "toc.ncx"
	NavPath        = "nav.xhtml"
)

// Media types of the generated files.
const (
	mediaTypeXHTML = "application/xhtml+xml"
	mediaTypeNCX   = "application/x-dtbncx+xml"
	mediaTypeCSS   = "text/css"
)

// modifiedLayout is the dcterms:modified format required by EPUB 3.
const modifiedLayout = "2006-01-02T15:04:05Z"

// Ensure Writer implements wenji.BookWriter at compile time.
var _ wenji.BookWriter = (*Writer)(nil)

// Writer serializes books as EPUB 3 archives.
type Writer struct {
	stylesheet string
	now        func() time.Time
}

// Option configures a Writer.
type Option func(*Writer)

// WithStylesheet replaces the stylesheet linked from every document.
func WithStylesheet(css string) Option {
	return func(w *Writer) {
		w.stylesheet = css
	}
}

// WithClock sets the clock used for the dcterms:modified timestamp.
func WithClock(now func() time.Time) Option {
	return func(w *Writer) {
		w.now = now
	}
}

// NewWriter creates a new Writer.
func NewWriter(opts ...Option) *Writer {
	w := &Writer{
		stylesheet: DefaultStylesheet,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// manifestItem is one entry of the package manifest.
type manifestItem struct {
	id         string
	href       string
	mediaType  string
	properties string
}

// WriteBook writes the complete book to out as an EPUB archive.
func (w *Writer) WriteBook(ctx context.Context, out io.Writer, book *wenji.Book) error {
	if err := book.Validate(); err != nil {
		return err
	}

	zw := zip.NewWriter(out)
	if err := w.writeArchive(ctx, zw, book); err != nil {
		_ = zw.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("closing archive: %w", err)
	}
	return nil
}

func (w *Writer) writeArchive(ctx context.Context, zw *zip.Writer, book *wenji.Book) error {
	if err := writeMimeType(zw); err != nil {
		return err
	}
	if err := writeXML(zw, ContainerPath, containerDocument()); err != nil {
		return err
	}

	ids := newIDSet("ncx", "nav", "style")
	spine := book.Spine()
	spineIDs := make([]string, len(spine))
	manifest := []manifestItem{
		{id: "ncx", href: NCXPath, mediaType: mediaTypeNCX},
		{id: "nav", href: NavPath, mediaType: mediaTypeXHTML, properties: "nav"},
		{id: "style", href: StylesheetPath, mediaType: mediaTypeCSS},
	}
	for i, d := range spine {
		id := d.ID
		if id == "" {
			id = strings.TrimSuffix(d.FileName, path.Ext(d.FileName))
		}
		spineIDs[i] = ids.unique(id)
		manifest = append(manifest, manifestItem{id: spineIDs[i], href: d.FileName, mediaType: mediaTypeXHTML})
	}
	for _, r := range book.Resources() {
		manifest = append(manifest, manifestItem{id: ids.unique(r.ID), href: r.Href, mediaType: r.MediaType})
	}

	modified := w.now().UTC().Format(modifiedLayout)
	if err := writeXML(zw, PackagePath, packageDocument(book.Metadata, modified, manifest, spineIDs)); err != nil {
		return err
	}
	if err := writeXML(zw, contentPath(NCXPath), ncxDocument(book.Metadata, book.Nav)); err != nil {
		return err
	}
	if err := writeXML(zw, contentPath(NavPath), navDocument(book.Metadata, book.Nav)); err != nil {
		return err
	}
	if err := writeFile(zw, contentPath(StylesheetPath), []byte(w.stylesheet)); err != nil {
		return err
	}

	for _, d := range spine {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := renderDocument(d, book.Metadata.Language)
		if err != nil {
			return fmt.Errorf("rendering %s: %w", d.FileName, err)
		}
		if err := writeFile(zw, contentPath(d.FileName), data); err != nil {
			return err
		}
	}

	for _, r := range book.Resources() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := writeFile(zw, contentPath(r.Href), r.Data); err != nil {
			return err
		}
	}

	return nil
}

// writeMimeType writes the mimetype entry. It must be the first entry of
// the archive and must not be compressed.
func writeMimeType(zw *zip.Writer) error {
	f, err := zw.CreateHeader(&zip.FileHeader{
		Name:   "mimetype",
		Method: zip.Store,
	})
	if err != nil {
		return fmt.Errorf("writing mimetype: %w", err)
	}
	if _, err := io.WriteString(f, MimeType); err != nil {
		return fmt.Errorf("writing mimetype: %w", err)
	}
	return nil
}

func writeXML(zw *zip.Writer, name string, doc *etree.Document) error {
	data, err := doc.WriteToBytes()
	if err != nil {
		return fmt.Errorf("rendering %s: %w", name, err)
	}
	return writeFile(zw, name, data)
}

func writeFile(zw *zip.Writer, name string, data []byte) error {
	f, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

func contentPath(href string) string {
	return ContentDir + "/" + href
}
