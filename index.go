package anydocs

import (
	"context"
	"strings"
	"time"
)

// DefaultMaxResults is used when SearchOptions.MaxResults is not positive.
const DefaultMaxResults = 10

// SearchScope selects which part of a section a query is matched against.
type SearchScope string

// SearchScope constants for SearchOptions.
const (
	SearchAll     SearchScope = "all"
	SearchTitle   SearchScope = "title"
	SearchContent SearchScope = "content"
)

// ParseSearchScope converts s to a SearchScope. The empty string means SearchAll.
func ParseSearchScope(s string) (SearchScope, error) {
	switch SearchScope(strings.ToLower(s)) {
	case "", SearchAll:
		return SearchAll, nil
	case SearchTitle:
		return SearchTitle, nil
	case SearchContent:
		return SearchContent, nil
	}
	return "", Errorf(EINVALID, "invalid search scope %q (expected title, content or all)", s)
}

// SearchOptions configures a search.
type SearchOptions struct {
	// Maximum number of results; DefaultMaxResults when zero or negative.
	MaxResults int `json:"maxResults,omitempty"`

	// Region to match query terms against; SearchAll when empty.
	SearchIn SearchScope `json:"searchIn,omitempty"`

	// Case-insensitive substring filter on the section file identifier.
	FileFilter string `json:"fileFilter,omitempty"`
}

// WithDefaults returns a copy of o with zero values replaced by defaults.
func (o SearchOptions) WithDefaults() SearchOptions {
	if o.MaxResults <= 0 {
		o.MaxResults = DefaultMaxResults
	}
	if o.SearchIn == "" {
		o.SearchIn = SearchAll
	}
	return o
}

// Index is an immutable, in-memory snapshot of an indexed documentation set.
// It is never modified after it has been published; a rebuild produces a
// new Index.
type Index struct {
	// Name of the documentation set, used in the overview heading.
	Name string `json:"name"`

	// Directory the index was built from.
	Path string `json:"path"`

	// File identifiers (base names without extension) in directory order.
	Files []string `json:"files"`

	// Top-level sections per file identifier.
	Sections map[string][]*Section `json:"-"`

	// Every section, depth-first per file, files in Files order.
	All []*Section `json:"-"`

	// Rendered table of contents per file identifier.
	TOC map[string]string `json:"-"`

	// Number of sections whose title and content contain a lowercased term.
	DocumentFrequency map[string]int `json:"-"`

	// Sections keyed by ID.
	ByID map[string]*Section `json:"-"`

	Fingerprint string        `json:"fingerprint"`
	BuiltAt     time.Time     `json:"builtAt"`
	BuildTime   time.Duration `json:"buildTime"`

	// Generation is assigned when the index is published and increases with
	// every publish.
	Generation uint64 `json:"generation"`
}

// FileList returns the indexed file identifiers.
func (idx *Index) FileList() []string {
	if idx == nil {
		return nil
	}
	return append([]string(nil), idx.Files...)
}

// FileTOC returns the rendered table of contents for file.
func (idx *Index) FileTOC(file string) (string, bool) {
	if idx == nil {
		return "", false
	}
	toc, ok := idx.TOC[file]
	return toc, ok
}

// Section returns the section with the given ID.
func (idx *Index) Section(id string) (*Section, bool) {
	if idx == nil {
		return nil, false
	}
	s, ok := idx.ByID[id]
	return s, ok
}

// SectionsByTitle returns sections whose title contains title,
// case-insensitively. A non-empty file restricts matches to file
// identifiers containing it.
func (idx *Index) SectionsByTitle(title, file string) []*Section {
	if idx == nil {
		return nil
	}
	title = strings.ToLower(title)
	file = strings.ToLower(file)

	var out []*Section
	for _, s := range idx.All {
		if !strings.Contains(strings.ToLower(s.Title), title) {
			continue
		}
		if file != "" && !strings.Contains(strings.ToLower(s.File), file) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Overview renders, per file, the titles of sections at heading level 1 or 2.
// The whole tree is walked, so a level-2 section nested under a level-1
// heading is listed too, not only the file's top-level sections.
func (idx *Index) Overview() string {
	if idx == nil {
		return ""
	}
	lines := []string{"# " + idx.Name + " Documentation Overview\n"}
	for _, file := range idx.Files {
		var titles []string
		for _, s := range FlattenSections(idx.Sections[file]) {
			if s.Level <= 2 {
				titles = append(titles, "  - "+s.Title)
			}
		}
		if len(titles) == 0 {
			continue
		}
		lines = append(lines, "## "+file)
		lines = append(lines, titles...)
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// Stats summarizes the index.
func (idx *Index) Stats() IndexStats {
	if idx == nil {
		return IndexStats{}
	}
	return IndexStats{
		Name:        idx.Name,
		Path:        idx.Path,
		Files:       len(idx.Files),
		Sections:    len(idx.All),
		Terms:       len(idx.DocumentFrequency),
		Fingerprint: idx.Fingerprint,
		BuiltAt:     idx.BuiltAt,
		BuildTime:   idx.BuildTime,
		Generation:  idx.Generation,
	}
}

// IndexStats describes a built index.
type IndexStats struct {
	Name        string        `json:"name"`
	Path        string        `json:"path"`
	Files       int           `json:"files"`
	Sections    int           `json:"sections"`
	Terms       int           `json:"terms"`
	Fingerprint string        `json:"fingerprint"`
	BuiltAt     time.Time     `json:"builtAt"`
	BuildTime   time.Duration `json:"buildTime"`
	Generation  uint64        `json:"generation"`
}

// Built reports whether the stats describe a published index.
func (s IndexStats) Built() bool {
	return s.Generation > 0
}

// IndexBuilder builds an Index from a directory of Markdown files.
type IndexBuilder interface {
	// BuildIndex parses every Markdown file in dir. A missing directory or
	// an undecodable file fails the whole build; no partial index is returned.
	BuildIndex(ctx context.Context, dir, name string) (*Index, error)
}

// IndexService answers queries against the active index. All methods are
// safe for concurrent use and never fail: an unbuilt or empty index yields
// empty results.
type IndexService interface {
	// Search returns the sections most relevant to query, best first.
	Search(query string, opts SearchOptions) []*Section

	// Overview renders the level 1 and 2 headings of every file.
	Overview() string

	// Files returns the indexed file identifiers.
	Files() []string

	// FileTOC returns the table of contents for a file.
	FileTOC(file string) (string, bool)

	// Section returns a section by exact ID.
	Section(id string) (*Section, bool)

	// SectionsByTitle returns sections whose title contains title.
	SectionsByTitle(title, file string) []*Section

	// Stats describes the active index.
	Stats() IndexStats
}

// IndexSwitcher changes or rebuilds the active index.
type IndexSwitcher interface {
	// Switch builds the documentation set in dir and publishes it. On
	// failure the previous index stays active.
	Switch(ctx context.Context, dir, name string) error

	// Refresh rebuilds the active documentation set from disk.
	// Returns EINVALID if no set has been selected.
	Refresh(ctx context.Context) error
}
