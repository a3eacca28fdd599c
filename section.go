package anydocs

import (
	"strings"
	"unicode"
)

// Section is a node in a document's heading hierarchy.
type Section struct {
	ID         string      `json:"id"`
	File       string      `json:"file"`
	Title      string      `json:"title"`
	Level      int         `json:"level"`
	Path       []string    `json:"path"`
	Content    string      `json:"content"`
	CodeBlocks []CodeBlock `json:"codeBlocks"`
	SourceURL  string      `json:"sourceUrl,omitempty"`
	Children   []*Section  `json:"children,omitempty"`
}

// Breadcrumb joins the ancestor titles with sep.
func (s *Section) Breadcrumb(sep string) string {
	return strings.Join(s.Path, sep)
}

// Trail joins the ancestor titles and the section's own title with sep.
func (s *Section) Trail(sep string) string {
	return strings.Join(append(s.Path[:len(s.Path):len(s.Path)], s.Title), sep)
}

// Anchor returns a URL-safe fragment for the section title.
// Converts to lowercase, replaces spaces with hyphens, removes special chars.
func (s *Section) Anchor() string {
	var sb strings.Builder
	prevHyphen := false

	for _, r := range strings.ToLower(s.Title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			prevHyphen = false
		} else if unicode.IsSpace(r) || r == '-' {
			if !prevHyphen && sb.Len() > 0 {
				sb.WriteRune('-')
				prevHyphen = true
			}
		}
	}

	return strings.TrimSuffix(sb.String(), "-")
}

// FlattenSections returns the sections depth-first, parents before their
// children, children in document order.
func FlattenSections(sections []*Section) []*Section {
	var out []*Section
	var walk func([]*Section)
	walk = func(secs []*Section) {
		for _, s := range secs {
			out = append(out, s)
			walk(s.Children)
		}
	}
	walk(sections)
	return out
}

// RenderTOC renders a section tree as a nested list, one "- title" line per
// section, indented two spaces per depth level.
func RenderTOC(sections []*Section) string {
	var lines []string
	var walk func([]*Section, int)
	walk = func(secs []*Section, depth int) {
		for _, s := range secs {
			lines = append(lines, strings.Repeat("  ", depth)+"- "+s.Title)
			walk(s.Children, depth+1)
		}
	}
	walk(sections, 0)
	return strings.Join(lines, "\n")
}
