package epub_test

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/fwojciec/wenji"
	"github.com/fwojciec/wenji/epub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2024, 3, 15, 8, 30, 0, 0, time.UTC)

func testBook(t *testing.T) *wenji.Book {
	t.Helper()

	book := wenji.NewBook(wenji.Metadata{
		Identifier: "id123456789",
		Title:      "布达文萨文集",
		Language:   "zh-CN",
		Author:     "Buddhavamsa",
	})
	book.Cover = &wenji.Document{ID: "cover", FileName: "cover.xhtml", Title: "封面", Body: "<h1>布达文萨文集</h1>"}
	book.TOCPage = &wenji.Document{ID: "toc", FileName: "toc.xhtml", Title: "目录", Body: `<h1>目录</h1><ul><li><a href="chapter_1.xhtml">2023-05-01 - A</a></li></ul>`}
	book.Chapters = []*wenji.Chapter{
		{
			Document: wenji.Document{
				ID:       "chapter_1",
				FileName: "chapter_1.xhtml",
				Title:    "A",
				Body:     `<h1>A</h1><p>line<br>break</p><p><img src="images/a.png" alt="x"></p>`,
			},
			Ordinal: 1,
		},
		{
			Document: wenji.Document{ID: "chapter_2", FileName: "chapter_2.xhtml", Title: "B", Body: "<h1>B</h1><p>b &amp; c</p>"},
			Ordinal:  2,
		},
	}
	book.Nav = []wenji.NavPoint{
		{ID: "toc", Title: "目录", Href: "toc.xhtml"},
		{ID: "chapter_1", Title: "A", Href: "chapter_1.xhtml"},
		{ID: "chapter_2", Title: "B", Href: "chapter_2.xhtml"},
	}

	_, err := book.AddResource(&wenji.Resource{ID: "image_1_a.png", Href: "images/a.png", MediaType: wenji.MediaTypePNG, Data: []byte("png")})
	require.NoError(t, err)
	return book
}

func writeBook(t *testing.T, book *wenji.Book, opts ...epub.Option) *zip.Reader {
	t.Helper()

	opts = append([]epub.Option{epub.WithClock(func() time.Time { return fixedTime })}, opts...)
	var buf bytes.Buffer
	err := epub.NewWriter(opts...).WriteBook(context.Background(), &buf, book)
	require.NoError(t, err)

	r, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	return r
}

func readEntry(t *testing.T, r *zip.Reader, name string) []byte {
	t.Helper()

	f, err := r.Open(name)
	require.NoError(t, err, "missing entry %s", name)
	defer f.Close()

	data, err := io.ReadAll(f)
	require.NoError(t, err)
	return data
}

func readXML(t *testing.T, r *zip.Reader, name string) *etree.Document {
	t.Helper()

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(readEntry(t, r, name)), "%s is not well-formed", name)
	return doc
}

func attrValues(elements []*etree.Element, key string) []string {
	values := make([]string, 0, len(elements))
	for _, el := range elements {
		values = append(values, el.SelectAttrValue(key, ""))
	}
	return values
}

func TestWriter_WriteBook(t *testing.T) {
	t.Parallel()

	t.Run("mimetype is the first entry and uncompressed", func(t *testing.T) {
		t.Parallel()

		r := writeBook(t, testBook(t))

		require.NotEmpty(t, r.File)
		first := r.File[0]
		assert.Equal(t, "mimetype", first.Name)
		assert.Equal(t, zip.Store, first.Method)
		assert.Equal(t, epub.MimeType, string(readEntry(t, r, "mimetype")))
	})

	t.Run("container points at the package document", func(t *testing.T) {
		t.Parallel()

		r := writeBook(t, testBook(t))

		doc := readXML(t, r, epub.ContainerPath)
		rootfile := doc.FindElement("//rootfile")
		require.NotNil(t, rootfile)
		assert.Equal(t, epub.PackagePath, rootfile.SelectAttrValue("full-path", ""))
	})

	t.Run("package metadata", func(t *testing.T) {
		t.Parallel()

		r := writeBook(t, testBook(t))

		doc := readXML(t, r, epub.PackagePath)
		assert.Equal(t, "3.0", doc.Root().SelectAttrValue("version", ""))
		assert.Equal(t, "id123456789", doc.FindElement("//dc:identifier").Text())
		assert.Equal(t, "布达文萨文集", doc.FindElement("//dc:title").Text())
		assert.Equal(t, "zh-CN", doc.FindElement("//dc:language").Text())
		assert.Equal(t, "Buddhavamsa", doc.FindElement("//dc:creator").Text())
		assert.Equal(t, "2024-03-15T08:30:00Z", doc.FindElement("//meta[@property='dcterms:modified']").Text())
	})

	t.Run("spine follows the book reading order", func(t *testing.T) {
		t.Parallel()

		r := writeBook(t, testBook(t))

		doc := readXML(t, r, epub.PackagePath)
		spine := doc.FindElement("//spine")
		require.NotNil(t, spine)
		assert.Equal(t, "ncx", spine.SelectAttrValue("toc", ""))
		assert.Equal(t, []string{"cover", "toc", "chapter_1", "chapter_2"}, attrValues(spine.SelectElements("itemref"), "idref"))
	})

	t.Run("manifest lists every file with its media type", func(t *testing.T) {
		t.Parallel()

		r := writeBook(t, testBook(t))

		doc := readXML(t, r, epub.PackagePath)
		items := doc.FindElements("//manifest/item")
		mediaTypes := make(map[string]string)
		for _, item := range items {
			mediaTypes[item.SelectAttrValue("href", "")] = item.SelectAttrValue("media-type", "")
		}
		assert.Equal(t, map[string]string{
			"toc.ncx":           "application/x-dtbncx+xml",
			"nav.xhtml":         "application/xhtml+xml",
			"style/default.css": "text/css",
			"cover.xhtml":       "application/xhtml+xml",
			"toc.xhtml":         "application/xhtml+xml",
			"chapter_1.xhtml":   "application/xhtml+xml",
			"chapter_2.xhtml":   "application/xhtml+xml",
			"images/a.png":      "image/png",
		}, mediaTypes)

		nav := doc.FindElement("//manifest/item[@href='nav.xhtml']")
		require.NotNil(t, nav)
		assert.Equal(t, "nav", nav.SelectAttrValue("properties", ""))
	})

	t.Run("every manifest item is in the archive", func(t *testing.T) {
		t.Parallel()

		r := writeBook(t, testBook(t))

		doc := readXML(t, r, epub.PackagePath)
		for _, href := range attrValues(doc.FindElements("//manifest/item"), "href") {
			readEntry(t, r, epub.ContentDir+"/"+href)
		}
		assert.Equal(t, "png", string(readEntry(t, r, "EPUB/images/a.png")))
	})

	t.Run("navigation lists nav points in order", func(t *testing.T) {
		t.Parallel()

		r := writeBook(t, testBook(t))

		ncx := readXML(t, r, "EPUB/toc.ncx")
		points := ncx.FindElements("//navPoint")
		assert.Equal(t, []string{"1", "2", "3"}, attrValues(points, "playOrder"))
		assert.Equal(t, []string{"toc.xhtml", "chapter_1.xhtml", "chapter_2.xhtml"}, attrValues(ncx.FindElements("//navPoint/content"), "src"))

		nav := readXML(t, r, "EPUB/nav.xhtml")
		assert.Equal(t, []string{"toc.xhtml", "chapter_1.xhtml", "chapter_2.xhtml"}, attrValues(nav.FindElements("//nav/ol/li/a"), "href"))
		assert.Equal(t, "目录", nav.FindElement("//nav/ol/li/a").Text())
	})

	t.Run("chapters are well-formed XHTML", func(t *testing.T) {
		t.Parallel()

		r := writeBook(t, testBook(t))

		doc := readXML(t, r, "EPUB/chapter_1.xhtml")
		assert.Equal(t, "http://www.w3.org/1999/xhtml", doc.Root().SelectAttrValue("xmlns", ""))
		assert.Equal(t, "zh-CN", doc.Root().SelectAttrValue("xml:lang", ""))
		assert.Equal(t, "A", doc.FindElement("//head/title").Text())
		assert.Equal(t, epub.StylesheetPath, doc.FindElement("//head/link").SelectAttrValue("href", ""))
		assert.Equal(t, "A", doc.FindElement("//body/h1").Text())
		assert.NotNil(t, doc.FindElement("//body/p/br"))

		img := doc.FindElement("//body/p/img")
		require.NotNil(t, img)
		assert.Equal(t, "images/a.png", img.SelectAttrValue("src", ""))
		assert.Equal(t, "x", img.SelectAttrValue("alt", ""))

		second := readXML(t, r, "EPUB/chapter_2.xhtml")
		assert.Equal(t, "b & c", second.FindElement("//body/p").Text())
	})

	t.Run("writes the default stylesheet", func(t *testing.T) {
		t.Parallel()

		r := writeBook(t, testBook(t))

		assert.Equal(t, epub.DefaultStylesheet, string(readEntry(t, r, "EPUB/style/default.css")))
	})

	t.Run("writes a custom stylesheet", func(t *testing.T) {
		t.Parallel()

		r := writeBook(t, testBook(t), epub.WithStylesheet("body { margin: 0; }"))

		assert.Equal(t, "body { margin: 0; }", string(readEntry(t, r, "EPUB/style/default.css")))
	})

	t.Run("sanitizes manifest ids", func(t *testing.T) {
		t.Parallel()

		book := testBook(t)
		_, err := book.AddResource(&wenji.Resource{ID: "image_2_照片 1.png", Href: "images/照片 1.png", MediaType: wenji.MediaTypePNG, Data: []byte("x")})
		require.NoError(t, err)
		_, err = book.AddResource(&wenji.Resource{ID: "image_2_照片_1.png", Href: "images/照片_1.png", MediaType: wenji.MediaTypePNG, Data: []byte("y")})
		require.NoError(t, err)

		r := writeBook(t, book)

		doc := readXML(t, r, epub.PackagePath)
		ids := attrValues(doc.FindElements("//manifest/item"), "id")
		assert.Contains(t, ids, "image_2_照片_1.png")
		assert.Contains(t, ids, "image_2_照片_1.png_2")
	})

	t.Run("rejects an incomplete book", func(t *testing.T) {
		t.Parallel()

		book := testBook(t)
		book.Cover = nil

		err := epub.NewWriter().WriteBook(context.Background(), io.Discard, book)

		require.Error(t, err)
		assert.Equal(t, wenji.EINVALID, wenji.ErrorCode(err))
	})

	t.Run("stops on cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := epub.NewWriter().WriteBook(ctx, io.Discard, testBook(t))

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestWriter_WriteBookErrors(t *testing.T) {
	t.Parallel()

	err := epub.NewWriter().WriteBook(context.Background(), failingWriter{}, testBook(t))

	require.Error(t, err)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, io.ErrShortWrite
}
