package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/fwojciec/anydocs"
	"github.com/go-chi/chi/v5"
)

// sectionView is the JSON form of a section. Code blocks are restored
// into the Markdown body; children are omitted.
type sectionView struct {
	ID         string              `json:"id"`
	File       string              `json:"file"`
	Title      string              `json:"title"`
	Level      int                 `json:"level"`
	Path       []string            `json:"path"`
	Markdown   string              `json:"markdown"`
	CodeBlocks []anydocs.CodeBlock `json:"codeBlocks"`
	SourceURL  string              `json:"sourceUrl,omitempty"`
}

func newSectionView(s *anydocs.Section) sectionView {
	blocks := s.CodeBlocks
	if blocks == nil {
		blocks = []anydocs.CodeBlock{}
	}
	return sectionView{
		ID:         s.ID,
		File:       s.File,
		Title:      s.Title,
		Level:      s.Level,
		Path:       s.Path,
		Markdown:   anydocs.RenderContent(s),
		CodeBlocks: blocks,
		SourceURL:  s.SourceURL,
	}
}

// sectionRef is the short JSON form used in listings.
type sectionRef struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Path  []string `json:"path"`
}

// requireIndex writes 503 and returns false when no index is active.
func (s *Server) requireIndex(w http.ResponseWriter) bool {
	if s.index.Stats().Built() {
		return true
	}
	jsonError(w, "no documentation index is active", http.StatusServiceUnavailable)
	return false
}

// handleSearch ranks sections for ?q=, honouring max_results, search_in
// and file.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := strings.TrimSpace(q.Get("q"))
	if query == "" {
		jsonError(w, "q query parameter is required", http.StatusBadRequest)
		return
	}

	scope, err := anydocs.ParseSearchScope(q.Get("search_in"))
	if err != nil {
		s.Error(w, r, err)
		return
	}

	var maxResults int
	if v := q.Get("max_results"); v != "" {
		if maxResults, err = strconv.Atoi(v); err != nil || maxResults < 1 {
			jsonError(w, "max_results must be a positive integer", http.StatusBadRequest)
			return
		}
	}

	if !s.requireIndex(w) {
		return
	}

	results := s.index.Search(query, anydocs.SearchOptions{
		MaxResults: maxResults,
		SearchIn:   scope,
		FileFilter: q.Get("file"),
	})
	views := make([]sectionView, 0, len(results))
	for _, sec := range results {
		views = append(views, newSectionView(sec))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"query":   query,
		"count":   len(views),
		"results": views,
	})
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	if !s.requireIndex(w) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"overview": s.index.Overview()})
}

func (s *Server) handleFiles(w http.ResponseWriter, r *http.Request) {
	if !s.requireIndex(w) {
		return
	}
	files := s.index.Files()
	if files == nil {
		files = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"files": files})
}

func (s *Server) handleFileTOC(w http.ResponseWriter, r *http.Request) {
	if !s.requireIndex(w) {
		return
	}
	file := chi.URLParam(r, "file")
	toc, ok := s.index.FileTOC(file)
	if !ok {
		s.Error(w, r, anydocs.Errorf(anydocs.ENOTFOUND, "file %q not found", file))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"file": file, "toc": toc})
}

func (s *Server) handleFindSections(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	if title == "" {
		jsonError(w, "title query parameter is required", http.StatusBadRequest)
		return
	}
	if !s.requireIndex(w) {
		return
	}

	sections := s.index.SectionsByTitle(title, r.URL.Query().Get("file"))
	refs := make([]sectionRef, 0, len(sections))
	for _, sec := range sections {
		refs = append(refs, sectionRef{ID: sec.ID, Title: sec.Title, Path: sec.Path})
	}
	writeJSON(w, http.StatusOK, map[string]any{"sections": refs})
}

// handleSection returns one section as JSON, or as HTML with ?format=html.
func (s *Server) handleSection(w http.ResponseWriter, r *http.Request) {
	if !s.requireIndex(w) {
		return
	}
	id := chi.URLParam(r, "id")
	sec, ok := s.index.Section(id)
	if !ok {
		s.Error(w, r, anydocs.Errorf(anydocs.ENOTFOUND, "section %q not found", id))
		return
	}

	switch r.URL.Query().Get("format") {
	case "", "json":
		writeJSON(w, http.StatusOK, newSectionView(sec))
	case "html":
		html, err := RenderHTML(sec)
		if err != nil {
			s.Error(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(html)
	default:
		jsonError(w, "format must be json or html", http.StatusBadRequest)
	}
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.index.Stats())
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.switcher.Refresh(r.Context()); err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.index.Stats())
}
