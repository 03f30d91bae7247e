package logs

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/sst/widgetlink/internal/logging"
	"github.com/sst/widgetlink/internal/tui/layout"
	"github.com/sst/widgetlink/internal/tui/styles"
	"github.com/sst/widgetlink/internal/tui/theme"
)

type DetailComponent interface {
	tea.Model
	layout.Sizeable
	layout.Bindings
}

type detailCmp struct {
	width, height int
	current       logging.Log
	viewport      viewport.Model
}

func (i *detailCmp) Init() tea.Cmd {
	return nil
}

func (i *detailCmp) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(SelectedLogMsg); ok {
		if msg.ID != i.current.ID {
			i.current = logging.Log(msg)
			i.updateContent()
		}
	}
	return i, nil
}

func (i *detailCmp) updateContent() {
	t := theme.CurrentTheme()
	var content strings.Builder

	levelStyle := lipgloss.NewStyle().Bold(true)
	switch i.current.Level {
	case "error":
		levelStyle = levelStyle.Foreground(t.Error())
	case "warn":
		levelStyle = levelStyle.Foreground(t.Warning())
	case "debug":
		levelStyle = levelStyle.Foreground(t.TextMuted())
	default:
		levelStyle = levelStyle.Foreground(t.Info())
	}

	content.WriteString(styles.Muted().Render(i.current.Timestamp.Local().Format("2006-01-02 15:04:05")))
	content.WriteString("  ")
	content.WriteString(levelStyle.Render(strings.ToUpper(i.current.Level)))
	content.WriteString("\n\n")
	content.WriteString(styles.Bold().Foreground(t.Text()).Render("Message:"))
	content.WriteString("\n")
	content.WriteString(wordwrap.String(i.current.Message, max(10, i.width-2)))
	content.WriteString("\n\n")

	if len(i.current.Attributes) > 0 {
		content.WriteString(styles.Bold().Foreground(t.Text()).Render("Attributes:"))
		content.WriteString("\n")
		keys := make([]string, 0, len(i.current.Attributes))
		for k := range i.current.Attributes {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			fmt.Fprintf(&content, "  %s: %s\n",
				lipgloss.NewStyle().Foreground(t.Primary()).Render(k),
				i.current.Attributes[k])
		}
	}

	i.viewport.SetContent(content.String())
}

func (i *detailCmp) View() string {
	if i.current.ID == "" {
		return styles.Muted().Render("Select a log entry")
	}
	return i.viewport.View()
}

func (i *detailCmp) GetSize() (int, int) {
	return i.width, i.height
}

func (i *detailCmp) SetSize(width int, height int) tea.Cmd {
	i.width = width
	i.height = height
	i.viewport.Width = width
	i.viewport.Height = height
	i.updateContent()
	return nil
}

func (i *detailCmp) BindingKeys() []key.Binding {
	return layout.KeyMapToSlice(i.viewport.KeyMap)
}

func NewLogsDetails() DetailComponent {
	return &detailCmp{
		viewport: viewport.New(0, 0),
	}
}
