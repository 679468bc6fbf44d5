package goquery

import (
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/wenji"
)

// RewriteImages points local image references at their base filename and
// strips every image attribute except src and alt. It returns the original
// src of each local image in document order.
func RewriteImages(container *goquery.Selection) []string {
	var images []string

	container.Find("img").Each(func(_ int, img *goquery.Selection) {
		if src, ok := img.Attr("src"); ok && strings.HasPrefix(src, wenji.AssetsPrefix) {
			images = append(images, src)
			img.SetAttr("src", path.Base(src))
		}

		for _, n := range img.Nodes {
			kept := n.Attr[:0]
			for _, attr := range n.Attr {
				if attr.Namespace == "" && (attr.Key == "src" || attr.Key == "alt") {
					kept = append(kept, attr)
				}
			}
			n.Attr = kept
		}
	})

	return images
}

// RelinkImages replaces image sources in markup using hrefs, a map from the
// current src to the new one. Images whose src is not in hrefs are left alone.
func RelinkImages(markup string, hrefs map[string]string) (string, error) {
	if len(hrefs) == 0 {
		return markup, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return "", wenji.Errorf(wenji.EINVALID, "failed to parse content: %v", err)
	}

	doc.Find("img[src]").Each(func(_ int, img *goquery.Selection) {
		if href, ok := hrefs[img.AttrOr("src", "")]; ok {
			img.SetAttr("src", href)
		}
	})

	out, err := doc.Find("body").Html()
	if err != nil {
		return "", wenji.Errorf(wenji.EINTERNAL, "failed to render content: %v", err)
	}
	return out, nil
}
