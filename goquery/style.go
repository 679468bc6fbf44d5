package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// HeadingStyle is the declaration every heading receives.
const HeadingStyle = "text-align: center; font-weight: bold;"

var (
	textAlignPattern  = regexp.MustCompile(`text-align:\s*([^;]+)`)
	textIndentPattern = regexp.MustCompile(`text-indent:\s*([^;]+)`)
)

// NormalizeStyles reduces inline styles inside a container to the subset
// that carries meaning in an ebook. Paragraphs keep text-align, bold weight
// and text-indent; headings are forced to HeadingStyle.
func NormalizeStyles(container *goquery.Selection) {
	container.Find("p").Each(func(_ int, p *goquery.Selection) {
		style, _ := p.Attr("style")
		if normalized := NormalizeParagraphStyle(style); normalized != "" {
			p.SetAttr("style", normalized)
		} else {
			p.RemoveAttr("style")
		}
	})

	container.Find("h1, h2, h3, h4, h5, h6").SetAttr("style", HeadingStyle)
}

// NormalizeParagraphStyle returns the allowed subset of a paragraph style
// declaration, or an empty string when nothing is kept.
//
// Values of text-align and text-indent are copied verbatim. Bold is
// detected leniently: any declaration mentioning both font-weight and
// "bold" anywhere counts, even when "bold" belongs to another property.
func NormalizeParagraphStyle(style string) string {
	var decls []string

	if m := textAlignPattern.FindStringSubmatch(style); m != nil {
		decls = append(decls, "text-align: "+m[1])
	}

	if strings.Contains(style, "font-weight") && strings.Contains(style, "bold") {
		decls = append(decls, "font-weight: bold")
	}

	if m := textIndentPattern.FindStringSubmatch(style); m != nil {
		decls = append(decls, "text-indent: "+m[1])
	}

	return strings.Join(decls, "; ")
}

// JoinParagraphs puts adjacent paragraphs on separate lines.
func JoinParagraphs(markup string) string {
	return strings.ReplaceAll(markup, "</p><p", "</p>\n<p")
}
