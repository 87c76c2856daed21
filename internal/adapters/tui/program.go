package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run renders m until the user quits or ctx ends.
func Run(ctx context.Context, m Model, opts ...tea.ProgramOption) error {
	defer m.Close()

	opts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, opts...)
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("running terminal UI: %w", err)
	}

	return nil
}
