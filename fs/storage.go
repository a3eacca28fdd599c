// Package fs provides file-based storage for documentation sets.
package fs

import (
	"errors"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/fwojciec/anydocs"
)

// PageExt is the extension pages are stored with.
const PageExt = ".md"

// PageName converts a document location to a flat Markdown file name.
// URLs use their path; file paths use their base name. Path segments are
// joined with hyphens because indexing does not descend into
// subdirectories.
// Example: https://example.com/docs/api/users → docs-api-users.md
func PageName(location string) string {
	p := location
	if u, err := url.Parse(location); err == nil && u.Scheme != "" && u.Host != "" {
		p = strings.TrimSuffix(u.Path, "/")
	} else {
		p = path.Base(filepath.ToSlash(location))
		p = strings.TrimSuffix(p, path.Ext(p))
	}

	var segments []string
	for _, seg := range strings.Split(p, "/") {
		if seg = slug(seg); seg != "" {
			segments = append(segments, seg)
		}
	}
	if len(segments) == 0 {
		return "index" + PageExt
	}
	return strings.Join(segments, "-") + PageExt
}

// slug drops the extension of s, lowercases it and collapses runs of
// characters other than letters, digits and underscores into single hyphens.
func slug(s string) string {
	s = strings.TrimSuffix(s, path.Ext(s))
	var b strings.Builder
	hyphen := false
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			b.WriteRune(r)
			hyphen = false
		case !hyphen && b.Len() > 0:
			b.WriteByte('-')
			hyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}

// Storage lays out documentation sets as subdirectories of a root
// directory, one directory of Markdown pages per set.
type Storage struct {
	root string
}

// NewStorage creates a Storage rooted at root.
func NewStorage(root string) *Storage {
	return &Storage{root: root}
}

// Root returns the storage root directory.
func (s *Storage) Root() string {
	return s.root
}

// Dir returns the directory holding the named documentation set.
func (s *Storage) Dir(name string) string {
	return filepath.Join(s.root, name)
}

// Store returns a PageStore that atomically replaces the named set.
func (s *Storage) Store(name string) anydocs.PageStore {
	return NewFileStore(s.root, name)
}

// Names lists the documentation sets present on disk, sorted. Pending
// import directories are skipped. A missing root yields no names.
func (s *Storage) Names() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() || strings.HasSuffix(e.Name(), tmpSuffix) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Remove deletes the named set from disk.
func (s *Storage) Remove(name string) error {
	dir := s.Dir(name)
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return anydocs.Errorf(anydocs.ENOTFOUND, "documentation set %q not found on disk", name)
	}
	return os.RemoveAll(dir)
}

// Usage reports the number of Markdown pages and their total size in bytes
// for the named set.
func (s *Storage) Usage(name string) (pages int, size int64, err error) {
	entries, err := os.ReadDir(s.Dir(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, 0, anydocs.Errorf(anydocs.ENOTFOUND, "documentation set %q not found on disk", name)
		}
		return 0, 0, err
	}
	for _, e := range entries {
		if !e.Type().IsRegular() || !strings.HasSuffix(e.Name(), PageExt) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return 0, 0, err
		}
		pages++
		size += info.Size()
	}
	return pages, size, nil
}
