package logs

import (
	"slices"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sst/widgetlink/internal/logging"
	"github.com/sst/widgetlink/internal/pubsub"
	"github.com/sst/widgetlink/internal/tui/layout"
	"github.com/sst/widgetlink/internal/tui/theme"
)

// logLimit caps the rows kept by the table.
const logLimit = 100

const (
	timeWidth  = 8
	levelWidth = 7
)

type TableComponent interface {
	tea.Model
	layout.Sizeable
	layout.Bindings
	layout.Focusable
}

type tableCmp struct {
	table    table.Model
	service  *logging.Service
	focused  bool
	logs     []logging.Log
	selected string
}

// SelectedLogMsg is emitted when the highlighted row changes.
type SelectedLogMsg logging.Log

type logsLoadedMsg struct {
	logs []logging.Log
}

func NewLogsTable(service *logging.Service) TableComponent {
	tm := table.New(table.WithColumns([]table.Column{
		{Title: "ID", Width: 0},
		{Title: "Time", Width: timeWidth},
		{Title: "Level", Width: levelWidth},
		{Title: "Message", Width: 30},
	}))
	return &tableCmp{table: tm, service: service}
}

func (tc *tableCmp) Init() tea.Cmd {
	service := tc.service
	return func() tea.Msg {
		if service == nil {
			return nil
		}
		return logsLoadedMsg{logs: service.List(logLimit)}
	}
}

func (tc *tableCmp) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case logsLoadedMsg:
		// The service lists oldest first.
		logs := slices.Clone(msg.logs)
		slices.Reverse(logs)
		tc.setLogs(logs)
		return tc, nil

	case pubsub.Event[logging.Log]:
		if msg.Type == logging.EventLogCreated {
			tc.setLogs(append([]logging.Log{msg.Payload}, tc.logs...))
		}
		return tc, nil

	case tea.KeyMsg:
		if !tc.focused {
			return tc, nil
		}
	}

	var cmd tea.Cmd
	tc.table, cmd = tc.table.Update(msg)
	return tc, tea.Batch(cmd, tc.selectionChanged())
}

// selectionChanged returns a command announcing the highlighted log when the
// cursor moved to a different row.
func (tc *tableCmp) selectionChanged() tea.Cmd {
	row := tc.table.SelectedRow()
	if row == nil || row[0] == tc.selected {
		return nil
	}
	tc.selected = row[0]
	idx := slices.IndexFunc(tc.logs, func(l logging.Log) bool { return l.ID == row[0] })
	if idx < 0 {
		return nil
	}
	selected := SelectedLogMsg(tc.logs[idx])
	return func() tea.Msg { return selected }
}

func (tc *tableCmp) setLogs(logs []logging.Log) {
	if len(logs) > logLimit {
		logs = logs[:logLimit]
	}
	tc.logs = logs

	rows := make([]table.Row, len(logs))
	for n, l := range logs {
		rows[n] = table.Row{l.ID, l.Timestamp.Local().Format("15:04:05"), l.Level, l.Message}
	}
	tc.table.SetRows(rows)
}

// Logs returns the rows currently shown, newest first.
func (tc *tableCmp) Logs() []logging.Log {
	return tc.logs
}

func (tc *tableCmp) View() string {
	t := theme.CurrentTheme()
	s := table.DefaultStyles()
	s.Selected = s.Selected.Foreground(t.Primary())
	s.Header = s.Header.Foreground(t.TextMuted())
	tc.table.SetStyles(s)
	return tc.table.View()
}

func (tc *tableCmp) GetSize() (int, int) {
	return tc.table.Width(), tc.table.Height()
}

func (tc *tableCmp) SetSize(width int, height int) tea.Cmd {
	tc.table.SetWidth(width)
	tc.table.SetHeight(height)

	columns := tc.table.Columns()
	columns[0].Width = 0
	columns[1].Width = timeWidth
	columns[2].Width = levelWidth
	columns[3].Width = max(10, width-timeWidth-levelWidth-5)
	tc.table.SetColumns(columns)
	return nil
}

func (tc *tableCmp) BindingKeys() []key.Binding {
	return layout.KeyMapToSlice(tc.table.KeyMap)
}

func (tc *tableCmp) Focus() tea.Cmd {
	tc.focused = true
	tc.table.Focus()
	return nil
}

func (tc *tableCmp) Blur() {
	tc.focused = false
	tc.table.Blur()
}

func (tc *tableCmp) IsFocused() bool {
	return tc.focused
}
