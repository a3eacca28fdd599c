package main

import (
	"fmt"

	"github.com/fwojciec/anydocs"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	sets, err := deps.DocSets.FindDocSets(deps.Ctx, anydocs.DocSetFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", anydocs.ErrorMessage(err))
		return err
	}

	if len(sets) == 0 {
		fmt.Fprintln(deps.Stdout, "No documentation sets found. Use 'anydocs import' to add one.")
		return nil
	}

	var active string
	if deps.Config != nil {
		active = deps.Config.Active
	}
	for _, set := range sets {
		marker := " "
		if set.Name == active {
			marker = "*"
		}
		fmt.Fprintf(deps.Stdout, "%s %s  %d pages  %d sections  %s\n", marker, set.Name, set.Pages, set.Sections, set.LocalPath)
		if set.SourceURL != "" {
			fmt.Fprintf(deps.Stdout, "    %s\n", set.SourceURL)
		}
	}
	return nil
}
