package page

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/sst/widgetlink/internal/catalog"
	"github.com/sst/widgetlink/internal/tui/layout"
	"github.com/sst/widgetlink/internal/tui/styles"
	"github.com/sst/widgetlink/internal/tui/theme"
	"github.com/sst/widgetlink/internal/tui/util"
)

var GalleryPage PageID = "gallery"

type galleryKeyMap struct {
	Search  key.Binding
	Up      key.Binding
	Down    key.Binding
	Open    key.Binding
	Linking key.Binding
	Clear   key.Binding
}

var galleryKeys = galleryKeyMap{
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	Linking: key.NewBinding(
		key.WithKeys("l"),
		key.WithHelp("l", "linking demo"),
	),
	Clear: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear search"),
	),
}

type galleryPage struct {
	width, height int
	search        textinput.Model
	results       []catalog.Component
	cursor        int
}

func (p *galleryPage) Init() tea.Cmd {
	return nil
}

func (p *galleryPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return p, p.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if p.search.Focused() {
			return p, p.updateSearch(msg)
		}
		switch {
		case key.Matches(msg, galleryKeys.Search):
			return p, p.search.Focus()
		case key.Matches(msg, galleryKeys.Up):
			p.cursor = util.Clamp(p.cursor-1, 0, max(0, len(p.results)-1))
		case key.Matches(msg, galleryKeys.Down):
			p.cursor = util.Clamp(p.cursor+1, 0, max(0, len(p.results)-1))
		case key.Matches(msg, galleryKeys.Open):
			return p, p.open()
		case key.Matches(msg, galleryKeys.Linking):
			return p, util.CmdHandler(PageChangeMsg{ID: LinkingPage})
		case key.Matches(msg, galleryKeys.Clear):
			p.setQuery("")
		}
		return p, nil
	}

	var cmd tea.Cmd
	p.search, cmd = p.search.Update(msg)
	return p, cmd
}

func (p *galleryPage) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		p.search.Blur()
		return nil
	case tea.KeyEnter:
		p.search.Blur()
		return p.open()
	case tea.KeyUp, tea.KeyDown:
		p.search.Blur()
		return nil
	}

	var cmd tea.Cmd
	p.search, cmd = p.search.Update(msg)
	p.filter()
	return cmd
}

func (p *galleryPage) setQuery(q string) {
	p.search.SetValue(q)
	p.filter()
}

func (p *galleryPage) filter() {
	p.results = catalog.Search(p.search.Value())
	p.cursor = util.Clamp(p.cursor, 0, max(0, len(p.results)-1))
}

func (p *galleryPage) open() tea.Cmd {
	if len(p.results) == 0 {
		return nil
	}
	return util.CmdHandler(ShowDetailMsg{Name: p.results[p.cursor].Name})
}

// Selected returns the highlighted component, if any.
func (p *galleryPage) Selected() (catalog.Component, bool) {
	if len(p.results) == 0 {
		return catalog.Component{}, false
	}
	return p.results[p.cursor], true
}

func (p *galleryPage) View() string {
	t := theme.CurrentTheme()

	header := lipgloss.JoinVertical(lipgloss.Left,
		styles.Title().Render(styles.AppIcon+" Component Gallery"),
		styles.Muted().Render(fmt.Sprintf("%d of %d components", len(p.results), len(catalog.All()))),
	)

	searchBox := styles.Border()
	if p.search.Focused() {
		searchBox = styles.FocusedBorder()
	}
	search := searchBox.Width(max(20, p.width-4)).Render(p.search.View())

	var rows []string
	if len(p.results) == 0 {
		rows = append(rows, styles.Muted().Render(fmt.Sprintf("No components match %q", p.search.Value())))
	}
	descWidth := uint(max(10, p.width-8))
	for i, c := range p.results {
		name := lipgloss.NewStyle().Foreground(t.Text()).Bold(true).Render(c.Name)
		meta := styles.Muted().Render(fmt.Sprintf("  %s · %s", c.Category, c.Complexity))
		desc := styles.Muted().Render(truncate.StringWithTail(c.Description, descWidth, "…"))
		tags := make([]string, 0, len(c.Tags))
		for _, tag := range c.Tags {
			tags = append(tags, styles.Tag(false).Render(tag))
		}

		prefix := "  "
		if i == p.cursor {
			prefix = lipgloss.NewStyle().Foreground(t.Primary()).Render("▌ ")
			name = lipgloss.NewStyle().Foreground(t.Primary()).Bold(true).Render(c.Name)
		}
		rows = append(rows, lipgloss.JoinVertical(lipgloss.Left,
			prefix+name+meta,
			"  "+desc,
			"  "+strings.Join(tags, " "),
			"",
		))
	}

	return lipgloss.NewStyle().Padding(0, 1).Render(lipgloss.JoinVertical(lipgloss.Left,
		header,
		search,
		"",
		strings.Join(rows, "\n"),
	))
}

func (p *galleryPage) SetSize(width, height int) tea.Cmd {
	p.width, p.height = width, height
	p.search.Width = max(10, width-8)
	return nil
}

func (p *galleryPage) GetSize() (int, int) {
	return p.width, p.height
}

func (p *galleryPage) BindingKeys() []key.Binding {
	return layout.KeyMapToSlice(galleryKeys)
}

func NewGalleryPage() Page {
	search := textinput.New()
	search.Placeholder = "Search components..."
	search.Prompt = "/ "
	return &galleryPage{
		search:  search,
		results: catalog.Search(""),
	}
}
