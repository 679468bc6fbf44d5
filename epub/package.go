package epub

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/beevik/etree"
	"github.com/fwojciec/wenji"
)

const (
	nsContainer = "urn:oasis:names:tc:opendocument:xmlns:container"
	nsOPF       = "http://www.idpf.org/2007/opf"
	nsDC        = "http://purl.org/dc/elements/1.1/"
	nsNCX       = "http://www.daisy.org/z3986/2005/ncx/"
)

// uniqueIdentifierID is the id of the dc:identifier element.
const uniqueIdentifierID = "id"

func newXMLDocument() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)
	return doc
}

func containerDocument() *etree.Document {
	doc := newXMLDocument()
	container := doc.CreateElement("container")
	container.CreateAttr("version", "1.0")
	container.CreateAttr("xmlns", nsContainer)

	rootfile := container.CreateElement("rootfiles").CreateElement("rootfile")
	rootfile.CreateAttr("full-path", PackagePath)
	rootfile.CreateAttr("media-type", "application/oebps-package+xml")

	doc.Indent(2)
	return doc
}

func packageDocument(meta wenji.Metadata, modified string, manifest []manifestItem, spine []string) *etree.Document {
	doc := newXMLDocument()
	pkg := doc.CreateElement("package")
	pkg.CreateAttr("xmlns", nsOPF)
	pkg.CreateAttr("version", "3.0")
	pkg.CreateAttr("unique-identifier", uniqueIdentifierID)
	pkg.CreateAttr("xml:lang", meta.Language)

	metadata := pkg.CreateElement("metadata")
	metadata.CreateAttr("xmlns:dc", nsDC)
	metadata.CreateAttr("xmlns:opf", nsOPF)

	identifier := metadata.CreateElement("dc:identifier")
	identifier.CreateAttr("id", uniqueIdentifierID)
	identifier.SetText(meta.Identifier)
	metadata.CreateElement("dc:title").SetText(meta.Title)
	metadata.CreateElement("dc:language").SetText(meta.Language)
	if meta.Author != "" {
		creator := metadata.CreateElement("dc:creator")
		creator.CreateAttr("id", "creator")
		creator.SetText(meta.Author)
	}
	modifiedEl := metadata.CreateElement("meta")
	modifiedEl.CreateAttr("property", "dcterms:modified")
	modifiedEl.SetText(modified)

	manifestEl := pkg.CreateElement("manifest")
	for _, item := range manifest {
		el := manifestEl.CreateElement("item")
		el.CreateAttr("href", item.href)
		el.CreateAttr("id", item.id)
		el.CreateAttr("media-type", item.mediaType)
		if item.properties != "" {
			el.CreateAttr("properties", item.properties)
		}
	}

	spineEl := pkg.CreateElement("spine")
	spineEl.CreateAttr("toc", "ncx")
	for _, id := range spine {
		spineEl.CreateElement("itemref").CreateAttr("idref", id)
	}

	doc.Indent(2)
	return doc
}

func ncxDocument(meta wenji.Metadata, nav []wenji.NavPoint) *etree.Document {
	doc := newXMLDocument()
	ncx := doc.CreateElement("ncx")
	ncx.CreateAttr("xmlns", nsNCX)
	ncx.CreateAttr("version", "2005-1")

	head := ncx.CreateElement("head")
	for _, m := range [][2]string{
		{"dtb:uid", meta.Identifier},
		{"dtb:depth", "1"},
		{"dtb:totalPageCount", "0"},
		{"dtb:maxPageNumber", "0"},
	} {
		el := head.CreateElement("meta")
		el.CreateAttr("name", m[0])
		el.CreateAttr("content", m[1])
	}

	ncx.CreateElement("docTitle").CreateElement("text").SetText(meta.Title)

	ids := newIDSet()
	navMap := ncx.CreateElement("navMap")
	for i, p := range nav {
		point := navMap.CreateElement("navPoint")
		point.CreateAttr("id", ids.unique(p.ID))
		point.CreateAttr("playOrder", strconv.Itoa(i+1))
		point.CreateElement("navLabel").CreateElement("text").SetText(p.Title)
		point.CreateElement("content").CreateAttr("src", p.Href)
	}

	doc.Indent(2)
	return doc
}

func navDocument(meta wenji.Metadata, nav []wenji.NavPoint) *etree.Document {
	doc, body := newXHTMLDocument(meta.Title, meta.Language, "")

	el := body.CreateElement("nav")
	el.CreateAttr("epub:type", "toc")
	el.CreateAttr("id", "toc")
	el.CreateElement("h2").SetText(meta.Title)

	list := el.CreateElement("ol")
	for _, p := range nav {
		a := list.CreateElement("li").CreateElement("a")
		a.CreateAttr("href", p.Href)
		a.SetText(p.Title)
	}

	doc.Indent(2)
	return doc
}

// idSet hands out XML IDs that are valid and unique within one document.
type idSet map[string]bool

func newIDSet(reserved ...string) idSet {
	s := make(idSet, len(reserved))
	for _, id := range reserved {
		s[id] = true
	}
	return s
}

func (s idSet) unique(raw string) string {
	id := sanitizeID(raw)
	candidate := id
	for n := 2; s[candidate]; n++ {
		candidate = id + "_" + strconv.Itoa(n)
	}
	s[candidate] = true
	return candidate
}

// sanitizeID maps raw onto a valid XML ID by replacing disallowed runes with
// underscores. IDs must start with a letter or underscore.
func sanitizeID(raw string) string {
	var b strings.Builder
	for i, r := range raw {
		switch {
		case unicode.IsLetter(r) || r == '_':
			b.WriteRune(r)
		case unicode.IsDigit(r) || r == '-' || r == '.':
			if i == 0 {
				b.WriteString("id_")
			}
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "id"
	}
	return b.String()
}
