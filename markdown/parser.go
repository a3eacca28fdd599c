// Package markdown splits Markdown files into trees of heading-delimited
// sections.
package markdown

import (
	"bytes"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/anydocs"
)

var (
	// anchorRe matches zero-width anchor links left behind by HTML
	// converters, e.g. "[​](#install)".
	anchorRe = regexp.MustCompile(`\s*\[\x{200B}\]\(#[^)]+\)`)

	// sourceRe matches a "**Source:** https://..." annotation.
	sourceRe = regexp.MustCompile(`\*\*Source:\*\*\s*(https?://\S+)`)
)

var bom = []byte("\xef\xbb\xbf")

// Parser splits Markdown documents into section trees.
type Parser struct {
	logger *slog.Logger
}

// NewParser creates a new Parser. Limit warnings from code block extraction
// are written to logger; a nil logger discards them.
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Parser{logger: logger}
}

// Parse splits data into a tree of sections by ATX heading level and
// returns the top-level sections in document order. Text before the first
// heading is discarded, so a file without headings yields no sections.
// Section IDs are "<file>-<n>" with n counting headings from zero.
func (p *Parser) Parse(file string, data []byte) ([]*anydocs.Section, error) {
	if !utf8.Valid(data) {
		return nil, anydocs.Errorf(anydocs.EINVALID, "%s: not valid UTF-8 text", file)
	}
	data = bytes.TrimPrefix(data, bom)

	var (
		roots   []*anydocs.Section
		stack   []*anydocs.Section
		pending []string
		nextID  int
	)

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSuffix(line, "\r")

		level, title, ok := parseHeading(line)
		if !ok {
			pending = append(pending, line)
			continue
		}

		if len(stack) > 0 {
			p.finalize(stack[len(stack)-1], pending)
		}
		pending = pending[:0]

		for len(stack) > 0 && stack[len(stack)-1].Level >= level {
			stack = stack[:len(stack)-1]
		}

		path := make([]string, 0, len(stack))
		for _, open := range stack {
			path = append(path, open.Title)
		}

		section := &anydocs.Section{
			ID:    fmt.Sprintf("%s-%d", file, nextID),
			File:  file,
			Title: cleanTitle(title),
			Level: level,
			Path:  path,
		}
		nextID++

		if len(stack) > 0 {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, section)
		} else {
			roots = append(roots, section)
		}
		stack = append(stack, section)
	}

	if len(stack) > 0 {
		p.finalize(stack[len(stack)-1], pending)
	}

	return roots, nil
}

// finalize assigns the body collected since the section's heading.
func (p *Parser) finalize(s *anydocs.Section, lines []string) {
	raw := strings.TrimSpace(strings.Join(lines, "\n"))

	ex := anydocs.ExtractCodeBlocks(raw)
	if ex.Truncated {
		p.logger.Warn("section content truncated",
			"section", s.ID,
			"bytes", len(raw),
			"limit", anydocs.MaxContentSize,
		)
	}
	if ex.Capped {
		p.logger.Warn("code block limit reached",
			"section", s.ID,
			"limit", anydocs.MaxCodeBlocks,
		)
	}

	s.Content = ex.Content
	s.CodeBlocks = ex.CodeBlocks
	if m := sourceRe.FindStringSubmatch(raw); m != nil {
		s.SourceURL = m[1]
	}
}

// parseHeading recognizes 1-6 '#' characters, at least one whitespace
// character and non-empty title text.
func parseHeading(line string) (level int, title string, ok bool) {
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > 6 || level == len(line) || !isSpace(line[level]) {
		return 0, "", false
	}
	title = strings.TrimSpace(line[level:])
	if title == "" {
		return 0, "", false
	}
	return level, title, true
}

func cleanTitle(title string) string {
	return strings.TrimSpace(anchorRe.ReplaceAllString(title, ""))
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\v' || b == '\f'
}
