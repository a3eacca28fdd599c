package main

import (
	"context"
	"errors"
	"log/slog"

	"github.com/fwojciec/anydocs/mcp"
	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/errgroup"
)

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	tools := &mcp.Tools{
		Index:      deps.Index,
		Switcher:   deps.Switcher,
		DocSets:    deps.DocSets,
		MaxResults: deps.Config.MaxResults,
	}
	stdio := server.NewStdioServer(mcp.NewServer(version, tools))
	stdio.SetErrorLogger(slog.NewLogLogger(deps.Logger.Handler(), slog.LevelError))

	ctx, cancel := context.WithCancel(deps.Ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		return stdio.Listen(gctx, deps.Stdin, deps.Stdout)
	})
	if c.Watch {
		g.Go(func() error {
			return watch(gctx, deps)
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
