package main

import (
	"fmt"

	"github.com/fwojciec/anydocs"
	"github.com/fwojciec/anydocs/ingest"
)

// Run executes the import command.
func (c *ImportCmd) Run(deps *Dependencies) error {
	progress := func(event ingest.ProgressEvent) {
		switch event.Type {
		case ingest.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Found %d files\n", event.Total)
		case ingest.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", ingest.TruncatePath(event.File, 60), event.Error)
		case ingest.ProgressDuplicate:
			fmt.Fprintf(deps.Stderr, "  duplicate %s: %v\n", ingest.TruncatePath(event.File, 60), event.Error)
		}
	}

	result, err := deps.Importer.Import(deps.Ctx, c.Name, c.Dir, c.SourceURL, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", message(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Imported %q: %d pages, %d sections (%s",
		result.DocSet.Name, result.Saved, result.Sections, ingest.FormatBytes(int64(result.Bytes)))
	if result.Tokens > 0 {
		fmt.Fprintf(deps.Stdout, ", %s", ingest.FormatTokens(result.Tokens))
	}
	fmt.Fprintln(deps.Stdout, ")")
	if result.Duplicates > 0 || result.Failed > 0 {
		fmt.Fprintf(deps.Stdout, "  Skipped %d duplicates, %d failures\n", result.Duplicates, result.Failed)
	}
	return nil
}

// message returns the application message of err, or its text for
// wrapped non-application errors.
func message(err error) string {
	if anydocs.ErrorCode(err) == anydocs.EINTERNAL {
		return err.Error()
	}
	return anydocs.ErrorMessage(err)
}
