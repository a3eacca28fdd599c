package mcp_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/anydocs"
	"github.com/fwojciec/anydocs/index"
	anymcp "github.com/fwojciec/anydocs/mcp"
	"github.com/fwojciec/anydocs/mock"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const guide = `# Guide
**Source:** https://example.com/guide

Intro text.

## Install

Run this:

` + "```bash\nnpm install demo\n```" + `

## Configure hooks

Hooks run before each build.
`

// fixture builds a handle over a temporary documentation set.
func fixture(t *testing.T) (*anymcp.Tools, *index.Handle, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "guide.md"), []byte(guide), 0o644))

	h := index.NewHandle(index.NewBuilder(nil), nil)
	docSets := &mock.DocSetService{
		FindDocSetsFn: func(_ context.Context, filter anydocs.DocSetFilter) ([]*anydocs.DocSet, error) {
			set := &anydocs.DocSet{Name: "demo", LocalPath: dir, Pages: 1, Sections: 3}
			if filter.Name != nil && *filter.Name != "demo" {
				return nil, nil
			}
			return []*anydocs.DocSet{set}, nil
		},
	}
	return &anymcp.Tools{Index: h, Switcher: h, DocSets: docSets}, h, dir
}

func call(t *testing.T, tools *anymcp.Tools, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	var handler server.ToolHandlerFunc
	for _, st := range tools.ServerTools() {
		if st.Tool.Name == name {
			handler = st.Handler
		}
	}
	require.NotNil(t, handler, "tool %s not registered", name)

	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	res, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return tc.Text
}

func TestTools_ServerTools(t *testing.T) {
	t.Parallel()

	tools, _, _ := fixture(t)

	var names []string
	for _, st := range tools.ServerTools() {
		names = append(names, st.Tool.Name)
	}

	assert.Equal(t, []string{
		"search_docs", "get_overview", "list_doc_files", "get_file_toc", "get_section",
		"find_sections", "index_stats", "list_docs", "switch_docs", "refresh_docs",
	}, names)
	assert.NotNil(t, anymcp.NewServer("test", tools))
}

func TestTools_NoActiveIndex(t *testing.T) {
	t.Parallel()

	tools, _, _ := fixture(t)

	for name, args := range map[string]map[string]any{
		"search_docs":    {"query": "install"},
		"get_overview":   nil,
		"list_doc_files": nil,
		"get_file_toc":   {"file": "guide"},
		"get_section":    {"section_id": "guide-0"},
		"find_sections":  {"title": "install"},
		"index_stats":    nil,
	} {
		res := call(t, tools, name, args)
		assert.True(t, res.IsError, name)
		assert.Contains(t, text(t, res), "No documentation index is active", name)
	}
}

func TestTools_SearchDocs(t *testing.T) {
	t.Parallel()

	t.Run("formats ranked sections", func(t *testing.T) {
		t.Parallel()

		tools, h, dir := fixture(t)
		h.Open(dir, "demo")

		res := call(t, tools, "search_docs", map[string]any{"query": "npm install"})

		out := text(t, res)
		assert.False(t, res.IsError)
		assert.Contains(t, out, "## Install")
		assert.Contains(t, out, "**Path:** Guide\n")
		assert.Contains(t, out, "**ID:** guide-1")
		assert.Contains(t, out, "```bash\nnpm install demo\n```")
	})

	t.Run("reports no results separately from no index", func(t *testing.T) {
		t.Parallel()

		tools, h, dir := fixture(t)
		h.Open(dir, "demo")

		res := call(t, tools, "search_docs", map[string]any{"query": "kubernetes"})

		assert.False(t, res.IsError)
		assert.Equal(t, `No results found for "kubernetes".`, text(t, res))
	})

	t.Run("passes options to the index", func(t *testing.T) {
		t.Parallel()

		var got anydocs.SearchOptions
		tools := &anymcp.Tools{
			Index: &mock.IndexService{
				StatsFn: func() anydocs.IndexStats { return anydocs.IndexStats{Generation: 1} },
				SearchFn: func(_ string, opts anydocs.SearchOptions) []*anydocs.Section {
					got = opts
					return nil
				},
			},
			MaxResults: 10,
		}

		call(t, tools, "search_docs", map[string]any{
			"query":       "hooks",
			"max_results": float64(3),
			"search_in":   "title",
			"file_filter": "guide",
		})

		assert.Equal(t, anydocs.SearchOptions{MaxResults: 3, SearchIn: anydocs.SearchTitle, FileFilter: "guide"}, got)
	})

	t.Run("rejects a missing query", func(t *testing.T) {
		t.Parallel()

		tools, _, _ := fixture(t)

		res := call(t, tools, "search_docs", map[string]any{"query": "  "})

		assert.True(t, res.IsError)
		assert.Contains(t, text(t, res), "query is required")
	})

	t.Run("rejects an unknown scope", func(t *testing.T) {
		t.Parallel()

		tools, _, _ := fixture(t)

		res := call(t, tools, "search_docs", map[string]any{"query": "x", "search_in": "code"})

		assert.True(t, res.IsError)
		assert.Contains(t, text(t, res), "invalid search scope")
	})
}

func TestTools_Navigation(t *testing.T) {
	t.Parallel()

	tools, h, dir := fixture(t)
	h.Open(dir, "demo")

	t.Run("get_overview", func(t *testing.T) {
		t.Parallel()

		out := text(t, call(t, tools, "get_overview", nil))

		assert.Contains(t, out, "# demo Documentation Overview")
		assert.Contains(t, out, "  - Configure hooks")
	})

	t.Run("list_doc_files", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "guide", text(t, call(t, tools, "list_doc_files", nil)))
	})

	t.Run("get_file_toc", func(t *testing.T) {
		t.Parallel()

		out := text(t, call(t, tools, "get_file_toc", map[string]any{"file": "guide"}))

		assert.Equal(t, "# guide\n\n- Guide\n  - Install\n  - Configure hooks", out)
	})

	t.Run("get_file_toc unknown file", func(t *testing.T) {
		t.Parallel()

		res := call(t, tools, "get_file_toc", map[string]any{"file": "nope"})

		assert.True(t, res.IsError)
		assert.Contains(t, text(t, res), `file "nope" not found`)
	})

	t.Run("get_section", func(t *testing.T) {
		t.Parallel()

		out := text(t, call(t, tools, "get_section", map[string]any{"section_id": "guide-2"}))

		assert.Contains(t, out, "## Configure hooks")
		assert.Contains(t, out, "Hooks run before each build.")
	})

	t.Run("get_section unknown id", func(t *testing.T) {
		t.Parallel()

		res := call(t, tools, "get_section", map[string]any{"section_id": "guide-99"})

		assert.True(t, res.IsError)
	})

	t.Run("find_sections", func(t *testing.T) {
		t.Parallel()

		out := text(t, call(t, tools, "find_sections", map[string]any{"title": "HOOK"}))

		assert.Equal(t, "guide-2  Guide > Configure hooks\n", out)
	})

	t.Run("index_stats", func(t *testing.T) {
		t.Parallel()

		out := text(t, call(t, tools, "index_stats", nil))

		assert.Contains(t, out, "Name:        demo")
		assert.Contains(t, out, "Sections:    3")
	})
}

func TestTools_DocSets(t *testing.T) {
	t.Parallel()

	t.Run("list_docs marks the active set", func(t *testing.T) {
		t.Parallel()

		tools, h, dir := fixture(t)
		h.Open(dir, "demo")

		out := text(t, call(t, tools, "list_docs", nil))

		assert.Equal(t, "* demo  1 pages, 3 sections\n", out)
	})

	t.Run("switch_docs activates a registered set", func(t *testing.T) {
		t.Parallel()

		tools, h, _ := fixture(t)

		res := call(t, tools, "switch_docs", map[string]any{"name": "demo"})

		assert.False(t, res.IsError)
		assert.Contains(t, text(t, res), "Switched to demo.")
		assert.Equal(t, uint64(1), h.Stats().Generation)
	})

	t.Run("switch_docs rejects unknown sets", func(t *testing.T) {
		t.Parallel()

		tools, _, _ := fixture(t)

		res := call(t, tools, "switch_docs", map[string]any{"name": "other"})

		assert.True(t, res.IsError)
		assert.Contains(t, text(t, res), "not registered")
	})

	t.Run("refresh_docs rebuilds", func(t *testing.T) {
		t.Parallel()

		tools, h, dir := fixture(t)
		require.NoError(t, h.Switch(context.Background(), dir, "demo"))

		res := call(t, tools, "refresh_docs", nil)

		assert.False(t, res.IsError)
		assert.Equal(t, uint64(2), h.Stats().Generation)
	})

	t.Run("refresh_docs reports failures", func(t *testing.T) {
		t.Parallel()

		tools := &anymcp.Tools{
			Index: &mock.IndexService{},
			Switcher: &mock.IndexSwitcher{
				RefreshFn: func(context.Context) error { return errors.New("disk gone") },
			},
		}

		res := call(t, tools, "refresh_docs", nil)

		assert.True(t, res.IsError)
		assert.Equal(t, "disk gone", text(t, res))
	})
}
