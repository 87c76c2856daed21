package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	httpserver "github.com/jsamuelsen/quote-widget/internal/adapters/http"
	"github.com/jsamuelsen/quote-widget/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quote-widget/internal/adapters/http/middleware"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the widget as a web page and JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
}

func runServe(ctx context.Context, opts *rootOptions) error {
	c, err := bootstrap(ctx, opts, os.Stdout)
	if err != nil {
		return err
	}

	logger := c.logger

	server := httpserver.New(&c.cfg.Server, logger)

	healthHandler := handlers.NewHealthHandler(
		c.health,
		handlers.NewBuildInfo(Version, Commit, BuildTime),
	).WithGatherer(c.registry)

	var limiter *middleware.RateLimiter
	if c.cfg.RateLimit.Enabled {
		limiter = middleware.NewRateLimiter(c.cfg.RateLimit.RPS, c.cfg.RateLimit.Burst)
	}

	httpserver.SetupRouter(server.Engine(), httpserver.RouterConfig{
		ServiceName:   c.cfg.App.Name,
		HealthHandler: healthHandler,
		WidgetHandler: handlers.NewWidgetHandler(c.widget),
		RateLimiter:   limiter,
		Timeout:       c.cfg.Server.WriteTimeout,
	})

	err = c.widget.Activate(ctx)
	if err != nil {
		c.close(context.WithoutCancel(ctx))
		return fmt.Errorf("activating widget: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return server.Run(gctx)
	})

	if limiter != nil {
		g.Go(func() error {
			limiter.Run(gctx)
			return nil
		})
	}

	err = g.Wait()
	logger.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.cfg.Server.ShutdownTimeout)
	defer cancel()
	c.close(shutdownCtx)

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	logger.Info("shutdown complete", slog.String("service", c.cfg.App.Name))

	return nil
}
