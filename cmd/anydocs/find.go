package main

import (
	"fmt"
)

// Run executes the find command.
func (c *FindCmd) Run(deps *Dependencies) error {
	if err := deps.requireIndex(); err != nil {
		return err
	}

	sections := deps.Index.SectionsByTitle(c.Title, c.File)
	if len(sections) == 0 {
		fmt.Fprintf(deps.Stdout, "No sections titled %q.\n", c.Title)
		return nil
	}

	for _, s := range sections {
		fmt.Fprintf(deps.Stdout, "%s  %s\n", s.ID, s.Trail(" > "))
	}
	return nil
}
