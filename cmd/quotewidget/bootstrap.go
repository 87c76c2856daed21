package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/jsamuelsen/quote-widget/internal/adapters/clients"
	"github.com/jsamuelsen/quote-widget/internal/adapters/clients/acl"
	"github.com/jsamuelsen/quote-widget/internal/adapters/metrics"
	"github.com/jsamuelsen/quote-widget/internal/app"
	"github.com/jsamuelsen/quote-widget/internal/platform/config"
	"github.com/jsamuelsen/quote-widget/internal/platform/logging"
	"github.com/jsamuelsen/quote-widget/internal/platform/telemetry"
	"github.com/jsamuelsen/quote-widget/internal/ports"
)

// components holds everything both hosts share.
type components struct {
	cfg       *config.Config
	logger    *slog.Logger
	telemetry *telemetry.Provider
	registry  *prometheus.Registry
	health    *ports.DefaultHealthRegistry
	widget    *app.QuoteWidget
}

// bootstrap loads configuration and assembles the widget and its
// dependencies. A nil console writer sends logs to the file sink only.
func bootstrap(ctx context.Context, opts *rootOptions, console io.Writer) (*components, error) {
	// 1. Load configuration
	cfg, err := config.LoadWithOptions(config.Options{
		Profile:   opts.profile,
		ConfigDir: opts.configDir,
		EnvFile:   opts.envFile,
	})
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	err = cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	// 2. Initialize logger
	logger := logging.NewWithWriter(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	}, console)
	logging.SetDefault(logger)

	logger.Info("starting quote widget",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("build_time", BuildTime),
		slog.String("environment", cfg.App.Environment),
	)

	// 3. Initialize telemetry
	tp, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing telemetry: %w", err)
	}

	// 4. Create the quote provider
	client, err := clients.New(&clients.Config{
		BaseURL:       cfg.Services.Quote.BaseURL,
		ServiceName:   cfg.Services.Quote.Name,
		Timeout:       cfg.Client.Timeout,
		Transport:     cfg.Client.Transport,
		UserAgent:     cfg.App.Name + "/" + Version,
		Logger:        logger,
		MeterProvider: tp.MeterProvider(),
	})
	if err != nil {
		return nil, errors.Join(fmt.Errorf("creating quote client: %w", err), tp.Shutdown(ctx))
	}

	provider := acl.NewQuoteClient(acl.QuoteClientConfig{
		Client: client,
		Path:   cfg.Services.Quote.Path,
		Logger: logger,
	})

	// 5. Wire diagnostics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	promDiag, err := metrics.NewPrometheus(registry)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("creating prometheus diagnostics: %w", err), tp.Shutdown(ctx))
	}

	otelDiag, err := metrics.NewOTel(tp.MeterProvider())
	if err != nil {
		return nil, errors.Join(fmt.Errorf("creating otel diagnostics: %w", err), tp.Shutdown(ctx))
	}

	// 6. Create the widget
	widget := app.NewQuoteWidget(app.WidgetConfig{
		Provider: provider,
		Diagnostics: ports.NewMultiDiagnostics(
			app.NewLogDiagnostics(logger),
			promDiag,
			otelDiag,
		),
		Logger:          logger,
		RefreshInterval: cfg.Widget.RefreshInterval,
		RequestTimeout:  cfg.Widget.RequestTimeout,
	})

	// 7. Register health checks
	health := ports.NewHealthRegistry(ports.WithCheckTimeout(cfg.Widget.RequestTimeout))
	for _, checker := range []ports.HealthChecker{provider, widget} {
		err = health.Register(checker)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("registering health check: %w", err), tp.Shutdown(ctx))
		}
	}

	return &components{
		cfg:       cfg,
		logger:    logger,
		telemetry: tp,
		registry:  registry,
		health:    health,
		widget:    widget,
	}, nil
}

// close deactivates the widget and flushes telemetry.
func (c *components) close(ctx context.Context) {
	c.widget.Deactivate()

	err := c.telemetry.Shutdown(ctx)
	if err != nil {
		c.logger.Error("telemetry shutdown error", slog.String("error", err.Error()))
	}
}
