// Package wenji converts a tree of scraped article pages into a single EPUB
// anthology. Each article lives in its own directory holding an index.html
// entry document and an optional assets folder of images; chapters are
// ordered by the date embedded in the directory name.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, epub/, fs/).
package wenji
