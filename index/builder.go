// Package index builds in-memory documentation indexes from directories of
// Markdown files, ranks sections against queries and holds the active index
// snapshot.
package index

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/anydocs"
	"github.com/fwojciec/anydocs/markdown"
)

// Ext is the file extension of indexed documents. Matching is case-sensitive.
const Ext = ".md"

// Ensure Builder implements anydocs.IndexBuilder.
var _ anydocs.IndexBuilder = (*Builder)(nil)

// Builder builds indexes from directories of Markdown files.
type Builder struct {
	parser *markdown.Parser
	now    func() time.Time
}

// NewBuilder creates a Builder. A nil parser is replaced with one that
// discards limit warnings.
func NewBuilder(parser *markdown.Parser) *Builder {
	if parser == nil {
		parser = markdown.NewParser(nil)
	}
	return &Builder{parser: parser, now: time.Now}
}

// BuildIndex parses every Markdown file directly inside dir. Subdirectories
// and non-regular files are skipped. Any unreadable or undecodable file fails
// the whole build.
func (b *Builder) BuildIndex(ctx context.Context, dir, name string) (*anydocs.Index, error) {
	start := b.now()

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, anydocs.Errorf(anydocs.ENOTFOUND, "documentation directory not found: %s", dir)
		}
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	idx := &anydocs.Index{
		Name:     name,
		Path:     dir,
		Sections: make(map[string][]*anydocs.Section),
		TOC:      make(map[string]string),
		ByID:     make(map[string]*anydocs.Section),
	}
	digest := xxhash.New()

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !strings.HasSuffix(entry.Name(), Ext) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}

		file := strings.TrimSuffix(entry.Name(), Ext)
		sections, err := b.parser.Parse(file, data)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}

		_, _ = digest.WriteString(entry.Name())
		_, _ = digest.Write([]byte{0})
		_, _ = digest.Write(data)

		idx.Files = append(idx.Files, file)
		idx.Sections[file] = sections
		idx.TOC[file] = anydocs.RenderTOC(sections)
		for _, s := range anydocs.FlattenSections(sections) {
			idx.All = append(idx.All, s)
			idx.ByID[s.ID] = s
		}
	}

	idx.DocumentFrequency = DocumentFrequency(idx.All)
	idx.Fingerprint = hex.EncodeToString(digest.Sum(nil))
	idx.BuiltAt = b.now()
	idx.BuildTime = idx.BuiltAt.Sub(start)
	return idx, nil
}

// DocumentFrequency counts, for every lowercased whitespace-delimited token
// longer than two characters, the number of sections whose title and content
// contain it.
func DocumentFrequency(sections []*anydocs.Section) map[string]int {
	df := make(map[string]int)
	seen := make(map[string]struct{})
	for _, s := range sections {
		clear(seen)
		for _, tok := range strings.Fields(strings.ToLower(s.Title + " " + s.Content)) {
			if utf8.RuneCountInString(tok) <= 2 {
				continue
			}
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	return df
}
