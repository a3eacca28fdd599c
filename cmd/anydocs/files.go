package main

import "fmt"

// Run executes the files command.
func (c *FilesCmd) Run(deps *Dependencies) error {
	if err := deps.requireIndex(); err != nil {
		return err
	}

	files := deps.Index.Files()
	if len(files) == 0 {
		fmt.Fprintln(deps.Stdout, "No files indexed.")
		return nil
	}
	for _, f := range files {
		fmt.Fprintln(deps.Stdout, f)
	}
	return nil
}
