package core

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/sst/widgetlink/internal/link"
	"github.com/sst/widgetlink/internal/pubsub"
	"github.com/sst/widgetlink/internal/status"
	"github.com/sst/widgetlink/internal/tui/styles"
	"github.com/sst/widgetlink/internal/tui/theme"
)

type StatusCmp interface {
	tea.Model
	SetHelpWidgetMsg(string)
}

type statusCmp struct {
	messages []status.StatusMessage
	width    int
	helpText string
	registry *link.Registry
}

type statusCleanupMsg struct {
	time time.Time
}

func (m *statusCmp) clearMessageCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return statusCleanupMsg{time: t}
	})
}

func (m *statusCmp) Init() tea.Cmd {
	return m.clearMessageCmd()
}

func (m *statusCmp) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case pubsub.Event[status.StatusMessage]:
		if msg.Type == pubsub.EventTypeCreated {
			m.messages = append(m.messages, msg.Payload)
		}
	case statusCleanupMsg:
		var active []status.StatusMessage
		for _, sm := range m.messages {
			if !sm.Expired(msg.time) {
				active = append(active, sm)
			}
		}
		m.messages = active
		return m, m.clearMessageCmd()
	}
	return m, nil
}

func (m *statusCmp) helpWidget() string {
	t := theme.CurrentTheme()
	text := m.helpText
	if text == "" {
		text = "? help"
	}
	return lipgloss.NewStyle().
		Padding(0, 1).
		Background(t.TextMuted()).
		Foreground(t.BackgroundPanel()).
		Bold(true).
		Render(text)
}

// registryInfo shows how many records and themes are live.
func (m *statusCmp) registryInfo() string {
	t := theme.CurrentTheme()
	records := 0
	if m.registry != nil {
		records = m.registry.Len()
	}
	return lipgloss.NewStyle().
		Padding(0, 1).
		Background(t.Secondary()).
		Foreground(t.Background()).
		Render(fmt.Sprintf("%s %d linked · %s", styles.LinkIcon, records, theme.CurrentThemeName()))
}

func (m *statusCmp) View() string {
	t := theme.CurrentTheme()
	help := m.helpWidget()
	info := m.registryInfo()
	width := max(0, m.width-lipgloss.Width(help)-lipgloss.Width(info))

	style := lipgloss.NewStyle().Padding(0, 1).Width(width)
	if len(m.messages) == 0 {
		return help + style.Background(t.BackgroundElement()).Render("") + info
	}

	sm := m.messages[0]
	style = style.Foreground(t.Background())
	icon := styles.InfoIcon
	switch sm.Level {
	case status.LevelInfo:
		style = style.Background(t.Info())
	case status.LevelWarn:
		style = style.Background(t.Warning())
		icon = styles.WarningIcon
	case status.LevelError:
		style = style.Background(t.Error())
		icon = styles.ErrorIcon
	default:
		style = style.Background(t.TextMuted())
	}
	msg := icon + " " + sm.Message
	if avail := width - 2; avail > 3 {
		msg = truncate.StringWithTail(msg, uint(avail), "...")
	}
	return help + style.Render(msg) + info
}

func (m *statusCmp) SetHelpWidgetMsg(s string) {
	m.helpText = s
}

func NewStatusCmp(registry *link.Registry) StatusCmp {
	return &statusCmp{registry: registry}
}
