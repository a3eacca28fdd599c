package anydocs

import "context"

// Page is a single Markdown document being imported into a doc set.
type Page struct {
	// Name is the file name the page is stored under, including the
	// Markdown extension.
	Name string

	// SourceURL is the page's origin, if known.
	SourceURL string

	// Content is the page body as Markdown.
	Content string
}

// PageStore persists pages to storage with atomic semantics.
// Save writes to a temporary location; Commit makes changes permanent;
// Abort discards pending changes.
type PageStore interface {
	Save(ctx context.Context, page *Page) error
	Commit() error
	Abort() error
}

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms an HTML page into Markdown suitable for indexing:
	// ATX headings and fenced code blocks.
	Convert(html string) (string, error)
}
