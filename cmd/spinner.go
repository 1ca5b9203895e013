package cmd

import (
	"context"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// doneMsg tells the spinner program the background work has finished.
type doneMsg struct{}

type spinnerModel struct {
	spinner spinner.Model
	label   string
	done    bool
}

func newSpinnerModel(label string) spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff3366"))
	return spinnerModel{spinner: s, label: label}
}

func (m spinnerModel) Init() tea.Cmd { return m.spinner.Tick }

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(doneMsg); ok {
		m.done = true
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m spinnerModel) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + m.label + "\n"
}

// showSpinner reports whether a progress spinner may be drawn on stderr.
func showSpinner() bool {
	if flagJSON || (cfg != nil && cfg.Debug) {
		return false
	}
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// withSpinner runs fn, animating label on stderr while it works. Without a
// terminal fn simply runs in the foreground.
func withSpinner(ctx context.Context, label string, fn func(ctx context.Context) error) error {
	if !showSpinner() {
		return fn(ctx)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newSpinnerModel(label), tea.WithOutput(os.Stderr), tea.WithInput(nil))

	errc := make(chan error, 1)
	go func() {
		errc <- fn(ctx)
		p.Send(doneMsg{})
	}()

	if _, err := p.Run(); err != nil {
		// Interrupted: stop the work instead of waiting out its timeout.
		cancel()
	}
	return <-errc
}
