// Package ui provides the terminal progress display using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Styles for the progress display
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	phaseStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	bodyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229"))

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7B2CBF"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("60"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// Msg types for Bubble Tea
type (
	// PhaseMsg announces a new pipeline phase (fetching, rendering, ...).
	PhaseMsg struct {
		Name string
	}

	// ProgressMsg reports per-body fetch progress within the current phase.
	ProgressMsg struct {
		Body  string
		Done  int
		Total int
	}

	// DoneMsg ends the program; Err is nil on success.
	DoneMsg struct {
		Err error
	}

	// spinnerTickMsg drives the spinner animation.
	spinnerTickMsg time.Time
)

// ProgressModel is the Bubble Tea model shown while trajectories are
// fetched and scenes rendered.
type ProgressModel struct {
	title string
	phase string
	body  string
	done  int
	total int

	tick     int
	err      error
	finished bool
}

// NewProgressModel creates a progress model with the given run title.
func NewProgressModel(title string) ProgressModel {
	return ProgressModel{title: title}
}

// Err returns the error delivered by DoneMsg, if any.
func (m ProgressModel) Err() error {
	return m.err
}

// Finished reports whether DoneMsg arrived. False after Run means the user
// quit while the pipeline was still going.
func (m ProgressModel) Finished() bool {
	return m.finished
}

// Init implements tea.Model.
func (m ProgressModel) Init() tea.Cmd {
	return spinnerTickCmd()
}

// Update implements tea.Model.
func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case PhaseMsg:
		m.phase = msg.Name
		m.body = ""
		m.done = 0
		m.total = 0

	case ProgressMsg:
		m.body = msg.Body
		m.done = msg.Done
		m.total = msg.Total

	case DoneMsg:
		m.finished = true
		m.err = msg.Err
		return m, tea.Quit

	case spinnerTickMsg:
		m.tick++
		return m, spinnerTickCmd()
	}

	return m, nil
}

// View implements tea.Model.
func (m ProgressModel) View() string {
	var b strings.Builder

	b.WriteString("\n  ")
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")

	if m.finished {
		if m.err != nil {
			b.WriteString("  " + errorStyle.Render("Error: "+m.err.Error()) + "\n")
		} else {
			b.WriteString("  " + phaseStyle.Render("Done.") + "\n")
		}
		return b.String()
	}

	spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	spinner := spinnerFrames[m.tick%len(spinnerFrames)]

	b.WriteString("  " + barStyle.Render(spinner) + " " + phaseStyle.Render(m.phase))
	if m.body != "" {
		b.WriteString(dimStyle.Render(" · ") + bodyStyle.Render(m.body))
	}
	b.WriteString("\n")

	if m.total > 0 {
		b.WriteString("  " + renderBar(m.done, m.total, 30))
		b.WriteString(dimStyle.Render(fmt.Sprintf("  %d/%d", m.done, m.total)))
		b.WriteString("\n")
	}

	b.WriteString("\n  " + dimStyle.Render("q: quit") + "\n")
	return b.String()
}

// renderBar draws a fixed-width progress bar.
func renderBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	filled := done * width / total
	if filled > width {
		filled = width
	}
	return barStyle.Render(strings.Repeat("█", filled)) +
		dimStyle.Render(strings.Repeat("░", width-filled))
}

func spinnerTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}
