package main

import (
	"fmt"

	"github.com/fwojciec/anydocs"
)

// Run executes the section command.
func (c *SectionCmd) Run(deps *Dependencies) error {
	if err := deps.requireIndex(); err != nil {
		return err
	}

	s, ok := deps.Index.Section(c.ID)
	if !ok {
		fmt.Fprintf(deps.Stderr, "error: section %q not found. Section IDs are shown by 'anydocs search' and 'anydocs find'.\n", c.ID)
		return anydocs.Errorf(anydocs.ENOTFOUND, "section %q not found", c.ID)
	}

	fmt.Fprint(deps.Stdout, anydocs.FormatSection(s))
	return nil
}
