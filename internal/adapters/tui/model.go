// Package tui renders the quote widget in the terminal with Bubble Tea.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jsamuelsen/quote-widget/internal/app"
)

// ButtonLabel is the refresh control's label.
const ButtonLabel = "Get New Quote"

// Widget is the part of app.QuoteWidget the terminal renderer drives.
type Widget interface {
	Snapshot() app.WidgetState
	RequestRefresh() error
	Subscribe() (<-chan app.WidgetState, func())
}

type stateMsg app.WidgetState

// Model is the Bubble Tea model for the widget. It renders whatever state
// the widget publishes and forwards the refresh key to RequestRefresh.
type Model struct {
	widget  Widget
	updates <-chan app.WidgetState
	cancel  func()

	keys    keyMap
	spinner spinner.Model

	state  app.WidgetState
	width  int
	status string
}

// NewModel subscribes to w. Call Close when the program exits.
func NewModel(w Widget) Model {
	updates, cancel := w.Subscribe()

	return Model{
		widget:  w,
		updates: updates,
		cancel:  cancel,
		keys:    newKeyMap(),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle)),
		state:   w.Snapshot(),
	}
}

// Close ends the widget subscription.
func (m Model) Close() {
	if m.cancel != nil {
		m.cancel()
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.state.Loading {
		return tea.Batch(waitForState(m.updates), m.spinner.Tick)
	}

	return waitForState(m.updates)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateMsg:
		wasLoading := m.state.Loading
		m.state = app.WidgetState(msg)
		if !m.state.Loading {
			m.status = ""
		}
		if m.state.Loading && !wasLoading {
			return m, tea.Batch(waitForState(m.updates), m.spinner.Tick)
		}
		return m, waitForState(m.updates)
	case spinner.TickMsg:
		// The tick chain ends once loading does; the next loading state restarts it.
		if !m.state.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Refresh):
		if !m.state.CanRefresh() {
			return m, nil
		}

		err := m.widget.RequestRefresh()
		switch {
		case err == nil:
			m.status = ""
		case errors.Is(err, app.ErrRefreshInProgress):
		default:
			m.status = err.Error()
		}
		m.state = m.widget.Snapshot()
		if m.state.Loading {
			return m, m.spinner.Tick
		}
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var body string
	switch m.state.Branch() {
	case app.BranchLoading:
		body = m.spinner.View() + spinnerStyle.Render(" Loading…")
	case app.BranchQuote:
		body = contentStyle.Render(fmt.Sprintf("“%s”", m.state.Quote.Content)) + "\n" +
			authorStyle.Render("— "+m.state.Quote.Author)
	default:
		body = placeholderStyle.Render(app.Placeholder)
	}

	button := buttonStyle.Render(ButtonLabel)
	if !m.state.CanRefresh() {
		button = buttonDisabledStyle.Render(ButtonLabel)
	}

	card := cardStyle.Render(lipgloss.JoinVertical(lipgloss.Center, body, button))

	lines := []string{card}
	if m.status != "" {
		lines = append(lines, statusStyle.Render(m.status))
	}
	lines = append(lines, m.renderHelp())

	view := strings.Join(lines, "\n")
	if m.width > 0 {
		view = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, view)
	}

	return view
}

func waitForState(updates <-chan app.WidgetState) tea.Cmd {
	return func() tea.Msg {
		state, ok := <-updates
		if !ok {
			return nil
		}
		return stateMsg(state)
	}
}

func (m Model) renderHelp() string {
	bindings := m.keys.ShortHelp()
	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		if help.Key == "" && help.Desc == "" {
			continue
		}
		parts = append(parts, help.Key+" "+help.Desc)
	}

	return helpStyle.Render(strings.Join(parts, " • "))
}
