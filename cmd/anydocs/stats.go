package main

import (
	"fmt"

	"github.com/fwojciec/anydocs"
)

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	if err := deps.requireIndex(); err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, anydocs.FormatStats(deps.Index.Stats()))
	return nil
}
