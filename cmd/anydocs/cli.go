package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/fwojciec/anydocs"
	"github.com/fwojciec/anydocs/fs"
	"github.com/fwojciec/anydocs/ingest"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdin    io.Reader
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Config   *Config
	Index    anydocs.IndexService
	Switcher anydocs.IndexSwitcher
	DocSets  anydocs.DocSetService
	Storage  *fs.Storage
	Importer *ingest.Importer
	Asker    anydocs.Asker

	// Target is the documentation set opened for this run, if any.
	Target *Target
}

// Target names a documentation set directory.
type Target struct {
	Name string
	Dir  string
}

// requireIndex prints an error and returns it when no index is active.
func (d *Dependencies) requireIndex() error {
	if d.Index.Stats().Built() {
		return nil
	}
	err := anydocs.Errorf(anydocs.ENOTFOUND, "no documentation index is active. Select one with --docs NAME or --path DIR, or set 'active' in the config file.")
	fmt.Fprintf(d.Stderr, "error: %s\n", anydocs.ErrorMessage(err))
	return err
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Docs    string `short:"d" help:"Registered documentation set to use (defaults to the configured active set)"`
	Path    string `short:"p" help:"Index this directory of Markdown files instead of a registered set"`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	Search   SearchCmd   `cmd:"" help:"Search the documentation"`
	Toc      TocCmd      `cmd:"" help:"Show the table of contents of a file"`
	Section  SectionCmd  `cmd:"" help:"Show a section by ID"`
	Find     FindCmd     `cmd:"" help:"Find sections by title"`
	Overview OverviewCmd `cmd:"" help:"Show the top-level headings of every file"`
	Files    FilesCmd    `cmd:"" help:"List indexed files"`
	Stats    StatsCmd    `cmd:"" help:"Show index statistics"`
	Import   ImportCmd   `cmd:"" help:"Import a directory of Markdown or HTML files as a documentation set"`
	List     ListCmd     `cmd:"" help:"List registered documentation sets"`
	Delete   DeleteCmd   `cmd:"" help:"Delete a documentation set"`
	Ask      AskCmd      `cmd:"" help:"Ask a question about the documentation"`
	Serve    ServeCmd    `cmd:"" help:"Serve the documentation as MCP tools over stdio"`
	HTTP     HTTPCmd     `cmd:"" name:"http" help:"Serve the documentation as a REST API"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query []string `arg:"" help:"Search terms"`
	Max   int      `short:"n" help:"Maximum number of results (defaults to max_results from config)"`
	In    string   `default:"all" enum:"all,title,content" help:"Match terms in title, content or all"`
	File  string   `short:"f" help:"Only search files whose name contains this text"`
}

// TocCmd is the "toc" subcommand.
type TocCmd struct {
	File string `arg:"" help:"File name without extension"`
}

// SectionCmd is the "section" subcommand.
type SectionCmd struct {
	ID string `arg:"" help:"Section ID, e.g. guide-3"`
}

// FindCmd is the "find" subcommand.
type FindCmd struct {
	Title string `arg:"" help:"Text to look for in section titles"`
	File  string `short:"f" help:"Only match files whose name contains this text"`
}

// OverviewCmd is the "overview" subcommand.
type OverviewCmd struct{}

// FilesCmd is the "files" subcommand.
type FilesCmd struct{}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct{}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	Name        string `arg:"" help:"Documentation set name"`
	Dir         string `arg:"" type:"existingdir" help:"Directory of .md, .markdown or .html files"`
	SourceURL   string `name:"source-url" help:"Base URL the pages were published at"`
	Concurrency int    `short:"c" default:"8" help:"Concurrent conversion limit"`
	Tokens      bool   `help:"Count tokens of the imported pages"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Name  string `arg:"" help:"Documentation set name"`
	Force bool   `help:"Confirm deletion"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question []string `arg:"" help:"Question to ask about the documentation"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Watch bool `short:"w" help:"Rebuild the index when files change"`
}

// HTTPCmd is the "http" subcommand.
type HTTPCmd struct {
	Addr  string `help:"Listen address (defaults to http.addr from config)"`
	Watch bool   `short:"w" help:"Rebuild the index when files change"`
}
