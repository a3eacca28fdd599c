// Package ingest imports local documentation files into a stored,
// registered and indexed documentation set.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/anydocs"
	"github.com/fwojciec/anydocs/bloom"
	"github.com/fwojciec/anydocs/fs"
	"golang.org/x/sync/errgroup"
)

// Dedupe filter sizing.
const (
	dedupeFalsePositiveRate = 0.01
	defaultConcurrency      = 8
)

// Storage locates documentation sets on disk.
type Storage interface {
	Dir(name string) string
	Store(name string) anydocs.PageStore
}

// Importer reads Markdown and HTML files from a directory, converts them to
// Markdown, drops duplicate pages, stores them as a documentation set,
// indexes the result and records it in the registry.
type Importer struct {
	Converter    anydocs.Converter
	Storage      Storage
	Builder      anydocs.IndexBuilder
	DocSets      anydocs.DocSetService
	TokenCounter anydocs.TokenCounter
	Concurrency  int
}

// Result holds the outcome of an import.
type Result struct {
	DocSet     *anydocs.DocSet
	Saved      int
	Duplicates int
	Failed     int
	Bytes      int
	Tokens     int
	Sections   int
}

// ProgressEvent reports progress during an import.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	File      string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressDuplicate
	ProgressFinished
)

// ProgressFunc is a callback for reporting import progress.
type ProgressFunc func(event ProgressEvent)

// Importable reports whether a file name has an extension the importer reads.
func Importable(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown", ".html", ".htm":
		return true
	}
	return false
}

// convertResult holds the outcome of reading one file.
type convertResult struct {
	position int
	file     string
	markdown string
	err      error
}

// Import stores the importable files of srcDir as the documentation set
// name, replacing any previous contents atomically. sourceURL, if set, is
// recorded on the set and used as the base of each page's source URL.
func (im *Importer) Import(ctx context.Context, name, srcDir, sourceURL string, progress ProgressFunc) (*Result, error) {
	set := &anydocs.DocSet{Name: name, SourceURL: sourceURL, LocalPath: im.Storage.Dir(name)}
	if err := set.Validate(); err != nil {
		return nil, err
	}

	files, err := listFiles(srcDir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, anydocs.Errorf(anydocs.EINVALID, "no Markdown or HTML files in %s", srcDir)
	}

	concurrency := im.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	total := len(files)
	notify(progress, ProgressEvent{Type: ProgressStarted, Total: total})

	resultCh := make(chan convertResult, total)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	go func() {
		for i, file := range files {
			g.Go(func() error {
				resultCh <- im.convert(gctx, i, file)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	completed := 0
	results := make([]convertResult, total)
	var result Result
	for r := range resultCh {
		completed++
		results[r.position] = r
		if r.err != nil {
			result.Failed++
			notify(progress, ProgressEvent{Type: ProgressFailed, Completed: completed, Total: total, File: r.file, Error: r.err})
			continue
		}
		notify(progress, ProgressEvent{Type: ProgressCompleted, Completed: completed, Total: total, File: r.file})
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	store := im.Storage.Store(name)
	dedupe := bloom.NewDeduper(uint(total), dedupeFalsePositiveRate)
	used := make(map[string]bool)

	for _, r := range results {
		if r.err != nil {
			continue
		}
		if first, dup := dedupe.Seen(r.file, r.markdown); dup {
			result.Duplicates++
			notify(progress, ProgressEvent{Type: ProgressDuplicate, Total: total, File: r.file, Error: fmt.Errorf("same content as %s", first)})
			continue
		}

		page := &anydocs.Page{
			Name:      uniqueName(used, fs.PageName(r.file)),
			SourceURL: pageURL(sourceURL, r.file),
			Content:   r.markdown,
		}
		if err := store.Save(ctx, page); err != nil {
			return nil, errors.Join(fmt.Errorf("save %s: %w", page.Name, err), store.Abort())
		}

		result.Saved++
		result.Bytes += len(r.markdown)
		if im.TokenCounter != nil {
			if tokens, err := im.TokenCounter.CountTokens(ctx, r.markdown); err == nil {
				result.Tokens += tokens
			}
		}
	}

	if result.Saved == 0 {
		return nil, errors.Join(anydocs.Errorf(anydocs.EINVALID, "no pages could be imported from %s", srcDir), store.Abort())
	}
	if err := store.Commit(); err != nil {
		return nil, fmt.Errorf("commit pages: %w", err)
	}

	idx, err := im.Builder.BuildIndex(ctx, set.LocalPath, name)
	if err != nil {
		return nil, fmt.Errorf("index imported pages: %w", err)
	}
	stats := idx.Stats()
	result.Sections = stats.Sections

	set.Fingerprint = stats.Fingerprint
	set.Pages = stats.Files
	set.Sections = stats.Sections
	if result.DocSet, err = im.register(ctx, set); err != nil {
		return nil, err
	}

	notify(progress, ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	return &result, nil
}

// convert reads one file and converts HTML to Markdown.
func (im *Importer) convert(ctx context.Context, position int, file string) convertResult {
	r := convertResult{position: position, file: file}
	if err := ctx.Err(); err != nil {
		r.err = err
		return r
	}

	data, err := os.ReadFile(file)
	if err != nil {
		r.err = err
		return r
	}
	if !utf8.Valid(data) {
		r.err = anydocs.Errorf(anydocs.EINVALID, "%s: not valid UTF-8 text", filepath.Base(file))
		return r
	}

	switch strings.ToLower(filepath.Ext(file)) {
	case ".html", ".htm":
		r.markdown, r.err = im.Converter.Convert(string(data))
	default:
		r.markdown = string(data)
	}
	return r
}

// register creates the registry record for set, or updates the existing
// record with the same name.
func (im *Importer) register(ctx context.Context, set *anydocs.DocSet) (*anydocs.DocSet, error) {
	existing, err := im.DocSets.FindDocSets(ctx, anydocs.DocSetFilter{Name: &set.Name})
	if err != nil {
		return nil, fmt.Errorf("find doc set: %w", err)
	}
	if len(existing) == 0 {
		if err := im.DocSets.CreateDocSet(ctx, set); err != nil {
			return nil, fmt.Errorf("register doc set: %w", err)
		}
		return set, nil
	}

	upd := anydocs.DocSetUpdate{
		LocalPath:   &set.LocalPath,
		Fingerprint: &set.Fingerprint,
		Pages:       &set.Pages,
		Sections:    &set.Sections,
	}
	if set.SourceURL != "" {
		upd.SourceURL = &set.SourceURL
	}
	updated, err := im.DocSets.UpdateDocSet(ctx, existing[0].ID, upd)
	if err != nil {
		return nil, fmt.Errorf("update doc set: %w", err)
	}
	return updated, nil
}

// listFiles returns the importable regular files directly inside dir,
// sorted by name.
func listFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, anydocs.Errorf(anydocs.ENOTFOUND, "source directory not found: %s", dir)
		}
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if !Importable(e.Name()) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		files = append(files, path)
	}
	sort.Strings(files)
	return files, nil
}

// uniqueName appends a counter to name until it no longer collides with
// a name already used.
func uniqueName(used map[string]bool, name string) string {
	candidate := name
	base := strings.TrimSuffix(name, fs.PageExt)
	for n := 2; used[candidate]; n++ {
		candidate = base + "-" + strconv.Itoa(n) + fs.PageExt
	}
	used[candidate] = true
	return candidate
}

// pageURL joins the set's source URL with the file's base name.
func pageURL(sourceURL, file string) string {
	if sourceURL == "" {
		return ""
	}
	stem := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	u, err := url.JoinPath(sourceURL, stem)
	if err != nil {
		return ""
	}
	return u
}

func notify(progress ProgressFunc, event ProgressEvent) {
	if progress != nil {
		progress(event)
	}
}
