package goquery

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

const (
	// minFooterParagraphs is the paragraph count below which a container is
	// considered too short to carry a footer.
	minFooterParagraphs = 3

	// maxFooterParagraphs bounds how far from the end footers are searched.
	maxFooterParagraphs = 5
)

// emailPatterns match contact details in the raw paragraph markup.
var emailPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\[email[^\]]*\]`),
	regexp.MustCompile(`邮箱`),
	regexp.MustCompile(`@`),
	regexp.MustCompile(`__cf_email__`),
}

// authorTokens mark signature and subscription paragraphs by their text.
var authorTokens = []string{
	"Buddhavamsa",
	"布达文萨",
	"公众号",
	"关注",
}

// footerStyleMarkers are inline-style fingerprints of the publishing
// platform's footer blocks.
var footerStyleMarkers = []string{
	"color: rgb(34, 34, 34)",
	"Helvetica Neue",
}

// StripFooter removes the trailing run of boilerplate paragraphs from a
// content container. Only the last five paragraphs are examined, from the
// last one backward, and scanning stops at the first paragraph that looks
// like real content. Containers with fewer than three paragraphs are left
// untouched.
func StripFooter(container *goquery.Selection) {
	paragraphs := container.Find("p")
	n := paragraphs.Length()
	if n < minFooterParagraphs {
		return
	}

	var footer []*goquery.Selection
	for i := 0; i < min(maxFooterParagraphs, n); i++ {
		p := paragraphs.Eq(n - 1 - i)
		if !IsFooterParagraph(p) {
			break
		}
		footer = append(footer, p)
	}

	for _, p := range footer {
		p.Remove()
	}
}

// IsFooterParagraph reports whether a paragraph looks like boilerplate:
// contact details, an author or subscription line, an image with almost no
// text (QR codes, logos), or short text in the platform's footer styling.
func IsFooterParagraph(p *goquery.Selection) bool {
	markup, err := goquery.OuterHtml(p)
	if err != nil {
		return false
	}
	text := strings.TrimSpace(p.Text())

	for _, re := range emailPatterns {
		if re.MatchString(markup) {
			return true
		}
	}

	for _, token := range authorTokens {
		if strings.Contains(text, token) {
			return true
		}
	}

	if p.Find("img").Length() > 0 && utf8.RuneCountInString(text) < 3 {
		return true
	}

	for _, marker := range footerStyleMarkers {
		if strings.Contains(markup, marker) {
			return utf8.RuneCountInString(text) < 30
		}
	}

	return false
}
