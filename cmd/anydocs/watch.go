package main

import (
	"context"
	"fmt"

	"github.com/fwojciec/anydocs/fsnotify"
)

// watch rebuilds the index whenever the target directory changes, until
// ctx is cancelled.
func watch(ctx context.Context, deps *Dependencies) error {
	if deps.Target == nil {
		return fmt.Errorf("--watch needs a documentation set; use --docs or --path")
	}

	w, err := fsnotify.New(deps.Target.Dir, fsnotify.Options{Logger: deps.Logger})
	if err != nil {
		return fmt.Errorf("watch %s: %w", deps.Target.Dir, err)
	}
	defer w.Close()

	deps.Logger.Info("watching for changes", "dir", deps.Target.Dir)
	return w.Run(ctx, deps.Switcher.Refresh)
}
