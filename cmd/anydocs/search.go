package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/anydocs"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	query := strings.Join(c.Query, " ")
	if strings.TrimSpace(query) == "" {
		fmt.Fprintln(deps.Stderr, "error: search query required")
		return anydocs.Errorf(anydocs.EINVALID, "search query required")
	}

	scope, err := anydocs.ParseSearchScope(c.In)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", anydocs.ErrorMessage(err))
		return err
	}

	if err := deps.requireIndex(); err != nil {
		return err
	}

	maxResults := c.Max
	if maxResults <= 0 && deps.Config != nil {
		maxResults = deps.Config.MaxResults
	}

	results := deps.Index.Search(query, anydocs.SearchOptions{
		MaxResults: maxResults,
		SearchIn:   scope,
		FileFilter: c.File,
	})
	fmt.Fprintln(deps.Stdout, anydocs.FormatResults(query, results))
	return nil
}
