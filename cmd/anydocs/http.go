package main

import (
	"context"

	anyhttp "github.com/fwojciec/anydocs/http"
	"golang.org/x/sync/errgroup"
)

// Run executes the http command.
func (c *HTTPCmd) Run(deps *Dependencies) error {
	addr := c.Addr
	if addr == "" {
		addr = deps.Config.HTTP.Addr
	}
	srv := anyhttp.NewServer(deps.Index, deps.Switcher, deps.Logger,
		anyhttp.WithRateLimit(deps.Config.HTTP.RateLimit))

	ctx, cancel := context.WithCancel(deps.Ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		return srv.ListenAndServe(gctx, addr)
	})
	if c.Watch {
		g.Go(func() error {
			return watch(gctx, deps)
		})
	}

	return g.Wait()
}
