// Package assemble builds a book from a tree of article directories.
// It coordinates discovery, extraction, image embedding and packaging.
package assemble

import (
	"context"
	"fmt"
	"html"
	"io"
	"log/slog"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/wenji"
	"github.com/fwojciec/wenji/goquery"
)

// Fixed titles of the generated pages.
const (
	CoverTitle = "封面"
	TOCTitle   = "目录"
)

// File names of the generated pages.
const (
	CoverFileName = "cover.xhtml"
	TOCFileName   = "toc.xhtml"
)

// ImagesDir is the book directory holding embedded images.
const ImagesDir = "images"

// Assembler orchestrates the conversion of article directories into a book.
type Assembler struct {
	Source    wenji.ArticleSource
	Extractor wenji.Extractor
	Writer    wenji.BookWriter
	Metadata  wenji.Metadata

	// Logger receives progress and skip messages. Nil discards them.
	Logger *slog.Logger

	// Now returns the generation date shown on the cover. Defaults to time.Now.
	Now func() time.Time
}

// Result holds the outcome of an assembly.
type Result struct {
	Articles      int
	Chapters      int
	Skipped       int
	Images        int
	MissingImages int
}

// ProgressEvent reports progress while articles are processed.
type ProgressEvent struct {
	Article   string
	Completed int
	Total     int
	Error     error
}

// ProgressFunc is called after each article is processed.
type ProgressFunc func(ProgressEvent)

// Run builds the book found under root and writes it to w.
func (a *Assembler) Run(ctx context.Context, root string, w io.Writer, progress ProgressFunc) (*Result, error) {
	book, result, err := a.Build(ctx, root, progress)
	if err != nil {
		return nil, err
	}

	if err := a.Writer.WriteBook(ctx, w, book); err != nil {
		return nil, fmt.Errorf("writing book: %w", err)
	}
	a.logger().Info("EPUB created successfully", "chapters", result.Chapters, "images", result.Images)

	return result, nil
}

// Build discovers the articles under root and assembles them into a book.
// Articles that cannot be read or extracted are logged and skipped; only a
// failure to enumerate root is returned.
func (a *Assembler) Build(ctx context.Context, root string, progress ProgressFunc) (*wenji.Book, *Result, error) {
	log := a.logger()
	log.Info("Processing directory", "path", root)

	articles, err := a.Source.Discover(ctx, root)
	if err != nil {
		return nil, nil, fmt.Errorf("discovering articles: %w", err)
	}
	log.Info(fmt.Sprintf("Found %d article directories", len(articles)))

	book := wenji.NewBook(a.Metadata)
	result := &Result{Articles: len(articles)}

	for i, article := range articles {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		chapter, err := a.buildChapter(ctx, book, article, i+1, result)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, nil, ctxErr
			}
			log.Warn("Skipping article", "dir", article.Name, "error", err)
			result.Skipped++
		} else {
			book.Chapters = append(book.Chapters, chapter)
			result.Chapters++
		}

		if progress != nil {
			progress(ProgressEvent{
				Article:   article.Name,
				Completed: i + 1,
				Total:     len(articles),
				Error:     err,
			})
		}
	}

	book.Cover = a.coverPage(len(articles))
	book.TOCPage = tocPage(book.Chapters)
	book.Nav = navigation(book.Chapters)

	return book, result, nil
}

// buildChapter turns one article into a chapter and registers its images.
func (a *Assembler) buildChapter(ctx context.Context, book *wenji.Book, article *wenji.Article, ordinal int, result *Result) (*wenji.Chapter, error) {
	log := a.logger()

	rawHTML, err := a.Source.ReadEntry(ctx, article)
	if err != nil {
		return nil, err
	}
	log.Info("Processing: " + filepath.Join(article.Path, wenji.EntryFileName))

	extracted, err := a.Extractor.Extract(rawHTML)
	if err != nil {
		return nil, err
	}

	title := extracted.Title
	if title == "" {
		title = article.Name
	}

	chapter := &wenji.Chapter{
		Document: wenji.Document{
			ID:       fmt.Sprintf("chapter_%d", ordinal),
			FileName: fmt.Sprintf("chapter_%d.xhtml", ordinal),
			Title:    title,
		},
		Ordinal:  ordinal,
		DateText: wenji.DateText(article.Name),
		Article:  article,
	}

	hrefs := make(map[string]string)
	for _, src := range extracted.Images {
		data, err := a.Source.ReadAsset(ctx, article, src)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			log.Debug("Image not found", "dir", article.Name, "src", src, "error", err)
			result.MissingImages++
			continue
		}

		name := path.Base(src)
		resource := &wenji.Resource{
			ID:        fmt.Sprintf("image_%d_%s", ordinal, name),
			Href:      ImagesDir + "/" + name,
			MediaType: wenji.MediaTypeByExtension(name),
			Data:      data,
		}
		added, err := book.AddResource(resource)
		if err != nil {
			log.Warn("Skipping image", "dir", article.Name, "src", src, "error", err)
			result.MissingImages++
			continue
		}
		if added {
			result.Images++
		}
		if _, seen := hrefs[name]; !seen {
			chapter.Images = append(chapter.Images, resource)
			hrefs[name] = resource.Href
		}
	}

	content, err := goquery.RelinkImages(extracted.ContentHTML, hrefs)
	if err != nil {
		return nil, err
	}
	chapter.Body = chapterHeader(title, chapter.DateText) + content

	return chapter, nil
}

func (a *Assembler) coverPage(articles int) *wenji.Document {
	now := time.Now
	if a.Now != nil {
		now = a.Now
	}

	var b strings.Builder
	b.WriteString(`<div style="text-align: center; padding-top: 20%;">`)
	fmt.Fprintf(&b, "<h1>%s</h1>", html.EscapeString(a.Metadata.Title))
	fmt.Fprintf(&b, "<p>共收录 %d 篇文章</p>", articles)
	fmt.Fprintf(&b, "<p>生成日期: %s</p>", now().Format(wenji.DateLayout))
	b.WriteString("</div>")

	return &wenji.Document{
		ID:       "cover",
		FileName: CoverFileName,
		Title:    CoverTitle,
		Body:     b.String(),
	}
}

func (a *Assembler) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.Logger
}

func chapterHeader(title, date string) string {
	return fmt.Sprintf("<h1>%s</h1>\n<p class=\"center\"><strong>%s</strong></p>\n", html.EscapeString(title), html.EscapeString(date))
}

func tocPage(chapters []*wenji.Chapter) *wenji.Document {
	var b strings.Builder
	b.WriteString("<h1>" + TOCTitle + "</h1><ul>")
	for _, ch := range chapters {
		fmt.Fprintf(&b, `<li><a href="%s">%s - %s</a></li>`, ch.FileName, html.EscapeString(ch.DateText), html.EscapeString(ch.Title))
	}
	b.WriteString("</ul>")

	return &wenji.Document{
		ID:       "toc",
		FileName: TOCFileName,
		Title:    TOCTitle,
		Body:     b.String(),
	}
}

func navigation(chapters []*wenji.Chapter) []wenji.NavPoint {
	nav := make([]wenji.NavPoint, 0, len(chapters)+1)
	nav = append(nav, wenji.NavPoint{ID: "toc", Title: TOCTitle, Href: TOCFileName})
	for _, ch := range chapters {
		nav = append(nav, wenji.NavPoint{ID: ch.ID, Title: ch.Title, Href: ch.FileName})
	}
	return nav
}
