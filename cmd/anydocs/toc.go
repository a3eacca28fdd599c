package main

import (
	"fmt"

	"github.com/fwojciec/anydocs"
)

// Run executes the toc command.
func (c *TocCmd) Run(deps *Dependencies) error {
	if err := deps.requireIndex(); err != nil {
		return err
	}

	toc, ok := deps.Index.FileTOC(c.File)
	if !ok {
		fmt.Fprintf(deps.Stderr, "error: file %q not found. Use 'anydocs files' to see indexed files.\n", c.File)
		return anydocs.Errorf(anydocs.ENOTFOUND, "file %q not found", c.File)
	}
	if toc == "" {
		fmt.Fprintf(deps.Stdout, "%s has no headings.\n", c.File)
		return nil
	}

	fmt.Fprintln(deps.Stdout, toc)
	return nil
}
