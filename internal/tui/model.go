// Package tui implements the live dashboard for the watch command.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/pengelbrecht/mathx/internal/styles"
	"github.com/pengelbrecht/mathx/internal/worksheet"
)

// SnapshotMsg delivers a re-evaluated worksheet snapshot to the model.
type SnapshotMsg struct {
	Snapshot *worksheet.Snapshot
}

// RemovedMsg signals that the watched worksheet was deleted.
type RemovedMsg struct{}

// BoardStateMsg reports a board connection state change.
type BoardStateMsg struct {
	State string
}

// Model is the bubbletea model for the watch dashboard.
type Model struct {
	sheet   string
	events  <-chan worksheet.Event
	spinner spinner.Model

	snapshot   *worksheet.Snapshot
	removed    bool
	updates    int
	boardState string
}

// NewModel creates a dashboard model for the given worksheet name, fed from
// the watcher's event channel.
func NewModel(sheet string, events <-chan worksheet.Event) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.DimStyle
	return Model{
		sheet:   sheet,
		events:  events,
		spinner: s,
	}
}

// Init starts the spinner and subscribes to watcher events.
func (m Model) Init() tea.Cmd {
	if m.events == nil {
		return m.spinner.Tick
	}
	return tea.Batch(m.spinner.Tick, waitForEvent(m.events))
}

// waitForEvent returns a command that delivers the next watcher event.
func waitForEvent(events <-chan worksheet.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return tea.Quit()
		}
		if event.Type == worksheet.Removed {
			return RemovedMsg{}
		}
		return SnapshotMsg{Snapshot: event.Snapshot}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
		return m, nil

	case SnapshotMsg:
		m.snapshot = msg.Snapshot
		m.removed = false
		m.updates++
		return m, m.resubscribe()

	case RemovedMsg:
		m.removed = true
		return m, m.resubscribe()

	case BoardStateMsg:
		m.boardState = msg.State
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// resubscribe re-arms the event subscription when the model owns a channel.
// Models fed externally via Program.Send have no channel to wait on.
func (m Model) resubscribe() tea.Cmd {
	if m.events == nil {
		return nil
	}
	return waitForEvent(m.events)
}

// View renders the dashboard.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(styles.BoldStyle.Render(m.sheet))
	if m.boardState != "" {
		b.WriteString("  " + styles.RenderDim("board: "+m.boardState))
	}
	b.WriteString("\n\n")

	switch {
	case m.removed:
		b.WriteString(styles.RenderError("worksheet removed") + "\n")
	case m.snapshot == nil:
		b.WriteString(m.spinner.View() + " waiting for worksheet...\n")
	case len(m.snapshot.Results) == 0:
		b.WriteString(styles.RenderDim("worksheet is empty") + "\n")
	default:
		for _, line := range formatRows(m.snapshot) {
			b.WriteString(line + "\n")
		}
	}

	footer := fmt.Sprintf("%d updates · q to quit", m.updates)
	if m.snapshot != nil {
		if n := m.snapshot.Errors(); n > 0 {
			footer = fmt.Sprintf("%d updates · %d errors · q to quit", m.updates, n)
		}
	}
	b.WriteString("\n" + styles.RenderDim(footer))
	return b.String()
}

// formatRows renders snapshot results as aligned "expr = value" rows.
func formatRows(snap *worksheet.Snapshot) []string {
	width := 0
	for _, r := range snap.Results {
		if w := ansi.StringWidth(r.Expr); w > width {
			width = w
		}
	}

	rows := make([]string, 0, len(snap.Results))
	for _, r := range snap.Results {
		pad := strings.Repeat(" ", width-ansi.StringWidth(r.Expr))
		if r.Err != "" {
			rows = append(rows, fmt.Sprintf("%s%s  %s", r.Expr, pad, styles.RenderError(r.Err)))
			continue
		}
		rows = append(rows, fmt.Sprintf("%s%s  = %s", r.Expr, pad, styles.RenderValue(fmt.Sprintf("%d", r.Value))))
	}
	return rows
}
