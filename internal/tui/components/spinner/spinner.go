package spinner

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Spinner shows progress on stderr for commands that run outside the TUI.
type Spinner struct {
	done   chan struct{}
	prog   *tea.Program
	ctx    context.Context
	cancel context.CancelFunc
}

type quitMsg struct{}

type spinnerModel struct {
	spinner  spinner.Model
	message  string
	quitting bool
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case quitMsg:
		m.quitting = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.quitting {
		return ""
	}
	return fmt.Sprintf("%s %s", m.spinner.View(), m.message)
}

func NewSpinner(message string) *Spinner {
	return newSpinner(message, lipgloss.NewStyle(), os.Stderr)
}

// NewThemedSpinner colors the spinner glyph.
func NewThemedSpinner(message string, color lipgloss.AdaptiveColor) *Spinner {
	return newSpinner(message, lipgloss.NewStyle().Foreground(color), os.Stderr)
}

func newSpinner(message string, style lipgloss.Style, out io.Writer) *Spinner {
	s := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(style))
	ctx, cancel := context.WithCancel(context.Background())
	prog := tea.NewProgram(
		spinnerModel{spinner: s, message: message},
		tea.WithOutput(out),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)
	return &Spinner{
		done:   make(chan struct{}),
		prog:   prog,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start runs the spinner in the background until Stop is called.
func (s *Spinner) Start() {
	go func() {
		defer close(s.done)
		go func() {
			<-s.ctx.Done()
			s.prog.Send(quitMsg{})
		}()
		if _, err := s.prog.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "spinner: %v\n", err)
		}
	}()
}

// Stop ends the spinner and waits for it to clear its line.
func (s *Spinner) Stop() {
	s.cancel()
	<-s.done
}
