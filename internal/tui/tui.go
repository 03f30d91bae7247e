package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/sst/widgetlink/internal/app"
	"github.com/sst/widgetlink/internal/config"
	"github.com/sst/widgetlink/internal/logging"
	"github.com/sst/widgetlink/internal/pubsub"
	"github.com/sst/widgetlink/internal/status"
	"github.com/sst/widgetlink/internal/tui/components/core"
	"github.com/sst/widgetlink/internal/tui/layout"
	"github.com/sst/widgetlink/internal/tui/page"
	"github.com/sst/widgetlink/internal/tui/theme"
	"github.com/sst/widgetlink/internal/tui/util"
)

type keyMap struct {
	Logs        key.Binding
	Quit        key.Binding
	Help        key.Binding
	SwitchTheme key.Binding
}

var keys = keyMap{
	Logs: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "logs"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("ctrl+_"),
		key.WithHelp("ctrl+?", "toggle help"),
	),
	SwitchTheme: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("ctrl+t", "switch theme"),
	),
}

// evictMsg drives periodic eviction of stale registry records.
type evictMsg struct{}

type appModel struct {
	width, height int
	currentPage   page.PageID
	previousPage  page.PageID
	pages         map[page.PageID]tea.Model
	loadedPages   map[page.PageID]bool
	status        core.StatusCmp
	app           *app.App

	help     help.Model
	showHelp bool
}

func (a appModel) Init() tea.Cmd {
	var cmds []tea.Cmd
	cmds = append(cmds, a.pages[a.currentPage].Init())
	a.loadedPages[a.currentPage] = true
	cmds = append(cmds, a.status.Init())
	cmds = append(cmds, a.evictCmd())
	return tea.Batch(cmds...)
}

func (a appModel) evictAfter() time.Duration {
	if a.app.Config == nil {
		return 0
	}
	return a.app.Config.Registry.EvictAfter
}

// evictCmd schedules the next eviction pass, at half the eviction age with
// a floor of one second. It returns nil when eviction is disabled.
func (a appModel) evictCmd() tea.Cmd {
	after := a.evictAfter()
	if after <= 0 {
		return nil
	}
	return tea.Tick(max(time.Second, after/2), func(time.Time) tea.Msg {
		return evictMsg{}
	})
}

func (a appModel) updateAllPages(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	for id := range a.pages {
		a.pages[id], cmd = a.pages[id].Update(msg)
		cmds = append(cmds, cmd)
	}
	return a, tea.Batch(cmds...)
}

func (a appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case cursor.BlinkMsg:
		return a.updateAllPages(msg)
	case spinner.TickMsg:
		return a.updateAllPages(msg)

	case tea.WindowSizeMsg:
		msg.Height -= 2 // status bar and help line
		a.width, a.height = msg.Width, msg.Height
		a.help.Width = msg.Width

		s, _ := a.status.Update(msg)
		a.status = s.(core.StatusCmp)
		a.pages[a.currentPage], cmd = a.pages[a.currentPage].Update(msg)
		return a, cmd

	case evictMsg:
		if evicted := a.app.Registry.Evict(a.evictAfter()); len(evicted) > 0 {
			slog.Debug("Evicted stale link records", "ids", evicted)
		}
		return a, a.evictCmd()

	case page.PageChangeMsg:
		return a, a.moveToPage(msg.ID)

	case page.BackMsg:
		target := a.previousPage
		if target == "" || target == a.currentPage {
			target = page.GalleryPage
		}
		return a, a.moveToPage(target)

	case page.ShowDetailMsg:
		cmds = append(cmds, a.moveToPage(page.DetailPage))
		a.pages[page.DetailPage], cmd = a.pages[page.DetailPage].Update(msg)
		cmds = append(cmds, cmd)
		return a, tea.Batch(cmds...)

	case page.LinksChangedMsg:
		a.pages[page.LinkingPage], cmd = a.pages[page.LinkingPage].Update(msg)
		return a, cmd

	case util.ClipboardMsg:
		if msg.Err != nil {
			a.app.Status.Error("Copy failed: " + msg.Err.Error())
		} else {
			a.app.Status.Info("Copied " + msg.What + " to clipboard")
		}
		return a, nil

	case pubsub.Event[logging.Log]:
		a.pages[page.LogsPage], cmd = a.pages[page.LogsPage].Update(msg)
		return a, cmd

	case pubsub.Event[status.StatusMessage]:
		s, cmd := a.status.Update(msg)
		a.status = s.(core.StatusCmp)
		return a, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Logs):
			if a.currentPage == page.LogsPage {
				return a, a.moveToPage(a.previousPage)
			}
			return a, a.moveToPage(page.LogsPage)
		case key.Matches(msg, keys.SwitchTheme):
			name := theme.NextTheme()
			a.app.Status.Info("Theme changed to: " + name)
			if err := config.UpdateTheme(name); err != nil {
				slog.Debug("Theme not persisted", "theme", name, "error", err)
			}
			return a, nil
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		}
	}

	s, cmd := a.status.Update(msg)
	cmds = append(cmds, cmd)
	a.status = s.(core.StatusCmp)

	a.pages[a.currentPage], cmd = a.pages[a.currentPage].Update(msg)
	cmds = append(cmds, cmd)
	return a, tea.Batch(cmds...)
}

func (a *appModel) moveToPage(pageID page.PageID) tea.Cmd {
	if _, ok := a.pages[pageID]; !ok || pageID == a.currentPage {
		return nil
	}
	var cmds []tea.Cmd
	if _, ok := a.loadedPages[pageID]; !ok {
		cmds = append(cmds, a.pages[pageID].Init())
		a.loadedPages[pageID] = true
	}
	a.previousPage = a.currentPage
	a.currentPage = pageID
	if sizable, ok := a.pages[a.currentPage].(layout.Sizeable); ok {
		cmds = append(cmds, sizable.SetSize(a.width, a.height))
	}
	return tea.Batch(cmds...)
}

func (a appModel) bindings() []key.Binding {
	bindings := layout.KeyMapToSlice(keys)
	if p, ok := a.pages[a.currentPage].(layout.Bindings); ok {
		bindings = append(p.BindingKeys(), bindings...)
	}
	return bindings
}

func (a appModel) View() string {
	bindings := a.bindings()
	var helpView string
	if a.showHelp {
		helpView = a.help.FullHelpView([][]key.Binding{bindings})
	} else {
		helpView = a.help.ShortHelpView(bindings)
	}

	a.status.SetHelpWidgetMsg("ctrl+? help")
	pageView := lipgloss.NewStyle().
		Height(max(0, a.height-lipgloss.Height(helpView)+1)).
		MaxHeight(max(0, a.height-lipgloss.Height(helpView)+1)).
		Render(a.pages[a.currentPage].View())

	view := lipgloss.JoinVertical(lipgloss.Top,
		pageView,
		helpView,
		a.status.View(),
	)
	if zone.DefaultManager == nil {
		return view
	}
	return zone.Scan(view)
}

// New returns the root model. The gallery is the start page.
func New(app *app.App) tea.Model {
	h := help.New()
	h.ShortSeparator = " · "
	return &appModel{
		currentPage: page.GalleryPage,
		loadedPages: make(map[page.PageID]bool),
		status:      core.NewStatusCmp(app.Registry),
		app:         app,
		help:        h,
		pages: map[page.PageID]tea.Model{
			page.GalleryPage: page.NewGalleryPage(),
			page.DetailPage:  page.NewDetailPage(app),
			page.LinkingPage: page.NewLinkingPage(app),
			page.LogsPage:    page.NewLogsPage(app.Logs),
		},
	}
}
