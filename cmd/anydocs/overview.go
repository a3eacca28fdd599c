package main

import "fmt"

// Run executes the overview command.
func (c *OverviewCmd) Run(deps *Dependencies) error {
	if err := deps.requireIndex(); err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, deps.Index.Overview())
	return nil
}
