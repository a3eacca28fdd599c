// Package mcp exposes the active documentation index as Model Context
// Protocol tools.
package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/anydocs"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ServerName identifies the server to MCP clients.
const ServerName = "anydocs"

const noIndex = "No documentation index is active. Use list_docs to see available documentation sets and switch_docs to select one."

// Tools implements the documentation tools over an index.
type Tools struct {
	Index    anydocs.IndexService
	Switcher anydocs.IndexSwitcher
	DocSets  anydocs.DocSetService

	// MaxResults is the default search_docs result limit.
	MaxResults int
}

// NewServer creates an MCP server with every documentation tool registered.
func NewServer(version string, tools *Tools) *server.MCPServer {
	s := server.NewMCPServer(
		ServerName,
		version,
		server.WithToolCapabilities(true),
	)
	s.AddTools(tools.ServerTools()...)
	return s
}

// ServerTools returns the tool definitions paired with their handlers.
func (t *Tools) ServerTools() []server.ServerTool {
	return []server.ServerTool{
		{Tool: searchTool(), Handler: t.search},
		{Tool: overviewTool(), Handler: t.overview},
		{Tool: filesTool(), Handler: t.files},
		{Tool: tocTool(), Handler: t.toc},
		{Tool: sectionTool(), Handler: t.section},
		{Tool: findTool(), Handler: t.find},
		{Tool: statsTool(), Handler: t.stats},
		{Tool: listDocsTool(), Handler: t.listDocs},
		{Tool: switchDocsTool(), Handler: t.switchDocs},
		{Tool: refreshDocsTool(), Handler: t.refreshDocs},
	}
}

// --- search_docs ---

func searchTool() mcp.Tool {
	return mcp.NewTool("search_docs",
		mcp.WithDescription("Search the active documentation set. Returns the best-matching sections with their breadcrumb, ID, source URL, content and code examples."),
		mcp.WithString("query",
			mcp.Description("Search terms, e.g. \"configure hooks\""),
			mcp.Required(),
		),
		mcp.WithNumber("max_results",
			mcp.Description("Maximum number of sections to return (default 10)"),
		),
		mcp.WithString("search_in",
			mcp.Description("Where to match terms: title, content or all (default all)"),
			mcp.Enum("all", "title", "content"),
		),
		mcp.WithString("file_filter",
			mcp.Description("Only search files whose name contains this text"),
		),
	)
}

func (t *Tools) search(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := strings.TrimSpace(req.GetString("query", ""))
	if query == "" {
		return toolError(fmt.Errorf("query is required"))
	}
	scope, err := anydocs.ParseSearchScope(req.GetString("search_in", ""))
	if err != nil {
		return toolError(err)
	}
	if !t.active() {
		return mcp.NewToolResultError(noIndex), nil
	}

	results := t.Index.Search(query, anydocs.SearchOptions{
		MaxResults: req.GetInt("max_results", t.MaxResults),
		SearchIn:   scope,
		FileFilter: req.GetString("file_filter", ""),
	})
	return mcp.NewToolResultText(anydocs.FormatResults(query, results)), nil
}

// --- get_overview ---

func overviewTool() mcp.Tool {
	return mcp.NewTool("get_overview",
		mcp.WithDescription("Show the top-level headings of every file in the active documentation set."),
	)
}

func (t *Tools) overview(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if !t.active() {
		return mcp.NewToolResultError(noIndex), nil
	}
	return mcp.NewToolResultText(t.Index.Overview()), nil
}

// --- list_doc_files ---

func filesTool() mcp.Tool {
	return mcp.NewTool("list_doc_files",
		mcp.WithDescription("List the files of the active documentation set."),
	)
}

func (t *Tools) files(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if !t.active() {
		return mcp.NewToolResultError(noIndex), nil
	}
	files := t.Index.Files()
	if len(files) == 0 {
		return mcp.NewToolResultText("No files indexed."), nil
	}
	return mcp.NewToolResultText(strings.Join(files, "\n")), nil
}

// --- get_file_toc ---

func tocTool() mcp.Tool {
	return mcp.NewTool("get_file_toc",
		mcp.WithDescription("Show the heading hierarchy of one documentation file."),
		mcp.WithString("file",
			mcp.Description("File name without extension, as listed by list_doc_files"),
			mcp.Required(),
		),
	)
}

func (t *Tools) toc(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	file := req.GetString("file", "")
	if file == "" {
		return toolError(fmt.Errorf("file is required"))
	}
	if !t.active() {
		return mcp.NewToolResultError(noIndex), nil
	}
	toc, ok := t.Index.FileTOC(file)
	if !ok {
		return toolError(fmt.Errorf("file %q not found", file))
	}
	if toc == "" {
		return mcp.NewToolResultText(fmt.Sprintf("%s has no headings.", file)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("# %s\n\n%s", file, toc)), nil
}

// --- get_section ---

func sectionTool() mcp.Tool {
	return mcp.NewTool("get_section",
		mcp.WithDescription("Read one section by ID, including its code examples."),
		mcp.WithString("section_id",
			mcp.Description("Section ID as shown in search results, e.g. guide-3"),
			mcp.Required(),
		),
	)
}

func (t *Tools) section(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("section_id", "")
	if id == "" {
		return toolError(fmt.Errorf("section_id is required"))
	}
	if !t.active() {
		return mcp.NewToolResultError(noIndex), nil
	}
	s, ok := t.Index.Section(id)
	if !ok {
		return toolError(fmt.Errorf("section %q not found", id))
	}
	return mcp.NewToolResultText(anydocs.FormatSection(s)), nil
}

// --- find_sections ---

func findTool() mcp.Tool {
	return mcp.NewTool("find_sections",
		mcp.WithDescription("Find sections whose title contains the given text."),
		mcp.WithString("title",
			mcp.Description("Text to look for in section titles (case-insensitive)"),
			mcp.Required(),
		),
		mcp.WithString("file",
			mcp.Description("Only match files whose name contains this text"),
		),
	)
}

func (t *Tools) find(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title := req.GetString("title", "")
	if title == "" {
		return toolError(fmt.Errorf("title is required"))
	}
	if !t.active() {
		return mcp.NewToolResultError(noIndex), nil
	}
	sections := t.Index.SectionsByTitle(title, req.GetString("file", ""))
	if len(sections) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No sections titled %q.", title)), nil
	}
	var sb strings.Builder
	for _, s := range sections {
		fmt.Fprintf(&sb, "%s  %s\n", s.ID, s.Trail(" > "))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// --- index_stats ---

func statsTool() mcp.Tool {
	return mcp.NewTool("index_stats",
		mcp.WithDescription("Describe the active index: files, sections, terms and build time."),
	)
}

func (t *Tools) stats(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st := t.Index.Stats()
	if !st.Built() {
		return mcp.NewToolResultError(noIndex), nil
	}
	return mcp.NewToolResultText(anydocs.FormatStats(st)), nil
}

// --- list_docs ---

func listDocsTool() mcp.Tool {
	return mcp.NewTool("list_docs",
		mcp.WithDescription("List the registered documentation sets."),
	)
}

func (t *Tools) listDocs(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sets, err := t.DocSets.FindDocSets(ctx, anydocs.DocSetFilter{})
	if err != nil {
		return toolError(err)
	}
	if len(sets) == 0 {
		return mcp.NewToolResultText("No documentation sets registered."), nil
	}

	active := t.Index.Stats().Name
	var sb strings.Builder
	for _, set := range sets {
		marker := " "
		if set.Name == active {
			marker = "*"
		}
		fmt.Fprintf(&sb, "%s %s  %d pages, %d sections", marker, set.Name, set.Pages, set.Sections)
		if set.SourceURL != "" {
			fmt.Fprintf(&sb, "  %s", set.SourceURL)
		}
		sb.WriteString("\n")
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// --- switch_docs ---

func switchDocsTool() mcp.Tool {
	return mcp.NewTool("switch_docs",
		mcp.WithDescription("Make another registered documentation set the active one."),
		mcp.WithString("name",
			mcp.Description("Documentation set name, as listed by list_docs"),
			mcp.Required(),
		),
	)
}

func (t *Tools) switchDocs(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("name", "")
	if name == "" {
		return toolError(fmt.Errorf("name is required"))
	}
	sets, err := t.DocSets.FindDocSets(ctx, anydocs.DocSetFilter{Name: &name})
	if err != nil {
		return toolError(err)
	}
	if len(sets) == 0 {
		return toolError(fmt.Errorf("documentation set %q is not registered", name))
	}
	if err := t.Switcher.Switch(ctx, sets[0].LocalPath, sets[0].Name); err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultText(fmt.Sprintf("Switched to %s.\n\n%s", name, anydocs.FormatStats(t.Index.Stats()))), nil
}

// --- refresh_docs ---

func refreshDocsTool() mcp.Tool {
	return mcp.NewTool("refresh_docs",
		mcp.WithDescription("Rebuild the active index from the files on disk."),
	)
}

func (t *Tools) refreshDocs(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := t.Switcher.Refresh(ctx); err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultText("Index rebuilt.\n\n" + anydocs.FormatStats(t.Index.Stats())), nil
}

// --- helpers ---

func (t *Tools) active() bool {
	return t.Index.Stats().Built()
}

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
