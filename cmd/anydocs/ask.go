package main

import (
	"fmt"
	"strings"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	if err := deps.requireIndex(); err != nil {
		return err
	}

	answer, err := deps.Asker.Ask(deps.Ctx, strings.Join(c.Question, " "))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", message(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, answer)
	return nil
}
