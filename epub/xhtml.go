package epub

import (
	"strings"
	"unicode"

	"github.com/beevik/etree"
	"github.com/fwojciec/wenji"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// XML namespaces used by the container documents.
const (
	nsXHTML = "http://www.w3.org/1999/xhtml"
	nsOPS   = "http://www.idpf.org/2007/ops"
	nsSVG   = "http://www.w3.org/2000/svg"
	nsXLink = "http://www.w3.org/1999/xlink"
	nsMath  = "http://www.w3.org/1998/Math/MathML"
)

// newXHTMLDocument returns an XHTML document with head filled in and an
// empty body.
func newXHTMLDocument(title, lang, stylesheetHref string) (*etree.Document, *etree.Element) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)
	doc.CreateDirective("DOCTYPE html")

	root := doc.CreateElement("html")
	root.CreateAttr("xmlns", nsXHTML)
	root.CreateAttr("xmlns:epub", nsOPS)
	if lang != "" {
		root.CreateAttr("lang", lang)
		root.CreateAttr("xml:lang", lang)
	}

	head := root.CreateElement("head")
	head.CreateElement("title").SetText(title)
	if stylesheetHref != "" {
		link := head.CreateElement("link")
		link.CreateAttr("href", stylesheetHref)
		link.CreateAttr("rel", "stylesheet")
		link.CreateAttr("type", "text/css")
	}

	return doc, root.CreateElement("body")
}

// renderDocument converts a book document into a well-formed XHTML page.
func renderDocument(d *wenji.Document, lang string) ([]byte, error) {
	doc, body := newXHTMLDocument(d.Title, lang, StylesheetPath)
	if err := appendMarkup(body, d.Body); err != nil {
		return nil, err
	}
	return doc.WriteToBytes()
}

// appendMarkup parses an HTML fragment and appends it to parent as XML.
// Comments and doctypes are dropped; attributes and tags whose names are not
// valid XML names are dropped, keeping the children of such tags.
func appendMarkup(parent *etree.Element, markup string) error {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return wenji.Errorf(wenji.EINVALID, "failed to parse document body: %v", err)
	}
	for _, n := range nodes {
		appendNode(parent, n, "")
	}
	return nil
}

func appendNode(parent *etree.Element, n *html.Node, parentNS string) {
	switch n.Type {
	case html.TextNode:
		parent.CreateText(n.Data)
	case html.ElementNode:
		if !isXMLName(n.Data, false) {
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				appendNode(parent, c, parentNS)
			}
			return
		}

		el := parent.CreateElement(n.Data)
		if n.Namespace != parentNS {
			switch n.Namespace {
			case "svg":
				el.CreateAttr("xmlns", nsSVG)
				el.CreateAttr("xmlns:xlink", nsXLink)
			case "math":
				el.CreateAttr("xmlns", nsMath)
			}
		}

		for _, attr := range n.Attr {
			key := attr.Key
			if attr.Namespace != "" {
				key = attr.Namespace + ":" + attr.Key
			}
			if !isXMLName(key, true) || key == "xmlns" {
				continue
			}
			el.CreateAttr(key, attr.Val)
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			appendNode(el, c, n.Namespace)
		}
	}
}

// isXMLName reports whether s is usable as an element or attribute name.
// Colons are accepted for attributes only, where they carry a namespace prefix.
func isXMLName(s string, allowColon bool) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case unicode.IsLetter(r) || r == '_':
		case i > 0 && (unicode.IsDigit(r) || r == '-' || r == '.'):
		case i > 0 && allowColon && r == ':':
		default:
			return false
		}
	}
	return true
}
