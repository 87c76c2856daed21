package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/quote-widget/internal/adapters/tui"
)

const tuiShutdownTimeout = 5 * time.Second

func newTUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Show the widget in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), opts)
		},
	}
}

func runTUI(ctx context.Context, opts *rootOptions) error {
	// The terminal belongs to the UI; logs go to the file sink only.
	c, err := bootstrap(ctx, opts, nil)
	if err != nil {
		return err
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), tuiShutdownTimeout)
		defer cancel()
		c.close(shutdownCtx)
	}()

	// Subscribe before activating so the first loading state is not missed.
	model := tui.NewModel(c.widget)

	err = c.widget.Activate(ctx)
	if err != nil {
		model.Close()
		return fmt.Errorf("activating widget: %w", err)
	}

	return tui.Run(ctx, model)
}
