package main

import (
	"fmt"

	"github.com/fwojciec/anydocs"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return anydocs.Errorf(anydocs.EINVALID, "use --force to confirm deletion")
	}

	sets, err := deps.DocSets.FindDocSets(deps.Ctx, anydocs.DocSetFilter{Name: &c.Name})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", anydocs.ErrorMessage(err))
		return err
	}

	if len(sets) == 0 {
		fmt.Fprintf(deps.Stderr, "error: documentation set %q not found. Use 'anydocs list' to see available sets.\n", c.Name)
		return anydocs.Errorf(anydocs.ENOTFOUND, "documentation set %q not found", c.Name)
	}

	set := sets[0]
	if err := deps.DocSets.DeleteDocSet(deps.Ctx, set.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", anydocs.ErrorMessage(err))
		return err
	}

	// Files may already be gone; the registry entry is what matters.
	if err := deps.Storage.Remove(set.Name); err != nil && anydocs.ErrorCode(err) != anydocs.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "warning: could not remove files: %v\n", err)
	}

	fmt.Fprintf(deps.Stdout, "Deleted documentation set %q\n", set.Name)
	return nil
}
