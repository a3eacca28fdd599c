package anydocs

import (
	"fmt"
	"strings"
	"time"
)

// RenderContent restores a section body to Markdown by putting each
// extracted code block back in place of its marker.
func RenderContent(s *Section) string {
	if len(s.CodeBlocks) == 0 {
		return s.Content
	}
	var sb strings.Builder
	rest := s.Content
	for _, b := range s.CodeBlocks {
		i := strings.Index(rest, CodeBlockMarker)
		if i < 0 {
			break
		}
		sb.WriteString(rest[:i])
		sb.WriteString("```" + b.Language + "\n" + b.Code + "\n```")
		rest = rest[i+len(CodeBlockMarker):]
	}
	sb.WriteString(rest)
	return sb.String()
}

// FormatSection formats a section for display or LLM context.
func FormatSection(s *Section) string {
	var sb strings.Builder
	sb.WriteString("## " + s.Title + "\n")
	if len(s.Path) > 0 {
		sb.WriteString("**Path:** " + s.Breadcrumb(" > ") + "\n")
	}
	sb.WriteString("**ID:** " + s.ID + "\n")
	if s.SourceURL != "" {
		sb.WriteString("**Source:** " + s.SourceURL + "\n")
	}
	if body := RenderContent(s); body != "" {
		sb.WriteString("\n" + body + "\n")
	}
	return sb.String()
}

// FormatResults formats ranked search results for query.
// Sections are separated by horizontal rules.
func FormatResults(query string, sections []*Section) string {
	if len(sections) == 0 {
		return fmt.Sprintf("No results found for %q.", query)
	}

	parts := make([]string, 0, len(sections))
	for _, s := range sections {
		parts = append(parts, FormatSection(s))
	}
	header := fmt.Sprintf("# Search results for %q (%d)\n\n", query, len(sections))
	return header + strings.Join(parts, "\n---\n\n")
}

// FormatStats formats index statistics as labelled lines.
func FormatStats(st IndexStats) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Name:        %s\n", st.Name)
	fmt.Fprintf(&sb, "Path:        %s\n", st.Path)
	fmt.Fprintf(&sb, "Files:       %d\n", st.Files)
	fmt.Fprintf(&sb, "Sections:    %d\n", st.Sections)
	fmt.Fprintf(&sb, "Terms:       %d\n", st.Terms)
	fmt.Fprintf(&sb, "Build time:  %dms\n", st.BuildTime.Milliseconds())
	fmt.Fprintf(&sb, "Built at:    %s\n", st.BuiltAt.Format(time.RFC3339))
	fmt.Fprintf(&sb, "Fingerprint: %s\n", st.Fingerprint)
	fmt.Fprintf(&sb, "Generation:  %d", st.Generation)
	return sb.String()
}
