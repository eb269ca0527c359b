package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sokinpui/lnstrip/internal/ui"
	"github.com/sokinpui/lnstrip/model"
)

// --- Styles ---
var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")) // Mauve
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))            // Green
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("197"))           // Red
	lineNoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))           // Orange
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

// ErrInterrupted is returned when the program stopped before the operation finished.
var ErrInterrupted = errors.New("interrupted before the operation finished")

// ReportedError is an operation error the TUI has already shown to the user.
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string { return e.Err.Error() }

func (e *ReportedError) Unwrap() error { return e.Err }

// Runner performs the operation the TUI is waiting on.
type Runner func() (model.Summary, error)

// --- Messages ---
type summaryMsg struct {
	model.Summary
}

type errorMsg struct{ err error }

func (e errorMsg) Error() string { return e.err.Error() }

// --- Model ---
type Model struct {
	run      Runner
	spinner  spinner.Model
	state    state
	summary  summaryMsg
	err      error
	quitting bool // quit was requested while the file was still being written
}

type state int

const (
	stateProcessing state = iota
	stateSummary
	stateError
)

func New(run Runner) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return Model{
		run:     run,
		spinner: s,
		state:   stateProcessing,
	}
}

// Run starts the program and returns the operation's error, if any.
func Run(run Runner, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(New(run), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	m, ok := final.(Model)
	if !ok {
		return nil
	}
	switch m.state {
	case stateError:
		return &ReportedError{Err: m.err}
	case stateProcessing:
		return ErrInterrupted
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.runOperation)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			// The write cannot be abandoned halfway; quit once it is done.
			if m.state == stateProcessing {
				m.quitting = true
				return m, nil
			}
			return m, tea.Quit
		}

	case summaryMsg:
		m.state = stateSummary
		m.summary = msg
		return m, tea.Quit

	case errorMsg:
		m.state = stateError
		m.err = msg.err
		return m, tea.Quit

	default:
		var cmd tea.Cmd
		if m.state == stateProcessing {
			m.spinner, cmd = m.spinner.Update(msg)
		}
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	switch m.state {
	case stateProcessing:
		if m.quitting {
			return fmt.Sprintf("%s Finishing the current write before quitting...", m.spinner.View())
		}
		return fmt.Sprintf("%s Processing...", m.spinner.View())
	case stateError:
		return errorStyle.Render("Error: "+m.err.Error()) + "\n"
	case stateSummary:
		return m.renderSummary()
	default:
		return ""
	}
}

func (m *Model) renderSummary() string {
	var b strings.Builder
	s := m.summary.Summary

	if s.Operation == model.OpExcise {
		b.WriteString(headerStyle.Render(ui.AuditHeader(s)))
		b.WriteString("\n")
		if len(s.Removed) == 0 {
			b.WriteString(faintStyle.Render("  (no lines in range)"))
			b.WriteString("\n")
		}
		for _, l := range s.Removed {
			num, text, _ := strings.Cut(ui.AuditLine(l), ":")
			b.WriteString(lineNoStyle.Render(num + ":"))
			b.WriteString(text)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(successStyle.Render(ui.Headline(s)))
	b.WriteString("\n")
	for _, l := range ui.CountLines(s) {
		b.WriteString(faintStyle.Render(l))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) runOperation() tea.Msg {
	summary, err := m.run()
	if err != nil {
		return errorMsg{err}
	}
	return summaryMsg{
		Summary: summary,
	}
}
