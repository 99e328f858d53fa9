package main

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/filecoin-project/go-posv/pkg/config"
	"github.com/filecoin-project/go-posv/pkg/metrics"
)

// startMetrics serves /metrics when --metrics-addr is given or the config
// enables it. The returned function stops the server.
func startMetrics(c *cli.Context, cfg *config.Config) (func(), error) {
	addr := c.String("metrics-addr")
	if addr == "" && cfg.Metrics != nil && cfg.Metrics.Enabled {
		addr = cfg.Metrics.Address
	}
	if addr == "" {
		return func() {}, nil
	}

	h, err := metrics.Handler("posv")
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(c.Context)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := metrics.Serve(ctx, addr, h); err != nil {
			log.Errorw("metrics server stopped", "address", addr, "error", err)
		}
	}()
	return func() {
		cancel()
		<-done
	}, nil
}
