package page

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sst/widgetlink/internal/logging"
	"github.com/sst/widgetlink/internal/tui/components/logs"
	"github.com/sst/widgetlink/internal/tui/styles"
	"github.com/sst/widgetlink/internal/tui/util"
)

var LogsPage PageID = "logs"

var logsBackKey = key.NewBinding(
	key.WithKeys("esc", "q"),
	key.WithHelp("esc/q", "go back"),
)

type logsPage struct {
	width, height int
	table         logs.TableComponent
	details       logs.DetailComponent
}

func (p *logsPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return p, p.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if key.Matches(msg, logsBackKey) {
			return p, util.CmdHandler(BackMsg{})
		}
	}

	var cmds []tea.Cmd
	_, cmd := p.table.Update(msg)
	cmds = append(cmds, cmd)
	_, cmd = p.details.Update(msg)
	cmds = append(cmds, cmd)
	return p, tea.Batch(cmds...)
}

func (p *logsPage) View() string {
	tableView := lipgloss.NewStyle().PaddingRight(3).Render(p.table.View())
	return lipgloss.JoinVertical(
		lipgloss.Left,
		styles.Bold().Render(" esc")+styles.Muted().Render(" to go back"),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top,
			tableView,
			p.details.View(),
		),
	)
}

func (p *logsPage) BindingKeys() []key.Binding {
	return append(p.table.BindingKeys(), logsBackKey)
}

func (p *logsPage) GetSize() (int, int) {
	return p.width, p.height
}

func (p *logsPage) SetSize(width int, height int) tea.Cmd {
	p.width = width
	p.height = height
	return tea.Batch(
		p.table.SetSize(width/2, height-3),
		p.details.SetSize(width/2-3, height-3),
	)
}

func (p *logsPage) Init() tea.Cmd {
	return tea.Batch(
		p.table.Init(),
		p.table.Focus(),
		p.details.Init(),
	)
}

func NewLogsPage(service *logging.Service) Page {
	return &logsPage{
		table:   logs.NewLogsTable(service),
		details: logs.NewLogsDetails(),
	}
}
