package wenji

// ExtractResult holds the extracted content from an article page.
type ExtractResult struct {
	// Title is the text of the first h1, or empty.
	Title string

	// ContentHTML is the cleaned main content.
	// Boilerplate (scripts, styles, footers) has been removed.
	ContentHTML string

	// Images lists the original relative paths of local images, in document
	// order. Their src attributes in ContentHTML hold only the base filename.
	Images []string
}

// Extractor extracts main content from article pages, removing boilerplate.
type Extractor interface {
	// Extract processes raw HTML and returns the main content.
	Extract(html string) (*ExtractResult, error)
}
