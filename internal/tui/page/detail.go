package page

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sst/widgetlink/internal/app"
	"github.com/sst/widgetlink/internal/catalog"
	"github.com/sst/widgetlink/internal/tui/components/widget"
	"github.com/sst/widgetlink/internal/tui/layout"
	"github.com/sst/widgetlink/internal/tui/styles"
	"github.com/sst/widgetlink/internal/tui/theme"
	"github.com/sst/widgetlink/internal/tui/util"
)

var DetailPage PageID = "detail"

type detailTab int

const (
	tabPreview detailTab = iota
	tabCode
)

type detailKeyMap struct {
	SwitchTab key.Binding
	Copy      key.Binding
	Interact  key.Binding
	Back      key.Binding
}

var detailKeys = detailKeyMap{
	SwitchTab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "preview/code"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy share text"),
	),
	Interact: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "try it"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
}

var interactKeys = []key.Binding{
	key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next widget")),
	key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "stop")),
}

// previewWidget is a live widget shown on the preview tab.
type previewWidget interface {
	tea.Model
	layout.Focusable
	layout.Bindings
	SetWidth(int)
}

type closer interface {
	Close()
}

type detailPage struct {
	app           *app.App
	width, height int

	component catalog.Component
	tab       detailTab
	code      string

	// overview is the rendered markdown header, valid for overviewKey.
	overview    string
	overviewKey string

	widgets     []previewWidget
	focusIdx    int
	interactive bool
}

func (p *detailPage) Init() tea.Cmd {
	return nil
}

func (p *detailPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return p, p.SetSize(msg.Width, msg.Height)
	case ShowDetailMsg:
		return p, p.load(msg.Name)
	case widget.ButtonPressedMsg:
		p.app.Status.Infof("%s pressed", msg.ID)
		return p, nil
	case widget.CardActionMsg:
		if msg.Action == "Share" {
			return p, p.copyShareText()
		}
		p.app.Status.Infof("%s: %s", msg.CardID, msg.Action)
		return p, nil
	case tea.KeyMsg:
		if p.interactive {
			return p, p.updateInteractive(msg)
		}
		switch {
		case key.Matches(msg, detailKeys.SwitchTab):
			if p.tab == tabPreview {
				p.tab = tabCode
			} else {
				p.tab = tabPreview
			}
		case key.Matches(msg, detailKeys.Copy):
			return p, p.copyShareText()
		case key.Matches(msg, detailKeys.Interact):
			if p.tab == tabPreview && len(p.widgets) > 0 {
				p.interactive = true
				return p, p.focus(0)
			}
		case key.Matches(msg, detailKeys.Back):
			p.unload()
			return p, util.CmdHandler(PageChangeMsg{ID: GalleryPage})
		}
		return p, nil
	}

	// ticks, blinks and mouse events go to every widget
	var cmds []tea.Cmd
	for _, w := range p.widgets {
		_, cmd := w.Update(msg)
		cmds = append(cmds, cmd)
	}
	return p, tea.Batch(cmds...)
}

func (p *detailPage) updateInteractive(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		p.blurAll()
		p.interactive = false
		return nil
	case tea.KeyTab:
		return p.focus((p.focusIdx + 1) % len(p.widgets))
	}
	_, cmd := p.widgets[p.focusIdx].Update(msg)
	return cmd
}

func (p *detailPage) focus(i int) tea.Cmd {
	p.blurAll()
	p.focusIdx = i
	return p.widgets[i].Focus()
}

func (p *detailPage) blurAll() {
	for _, w := range p.widgets {
		w.Blur()
	}
}

func (p *detailPage) copyShareText() tea.Cmd {
	text, err := catalog.ShareText(p.component.Name)
	if err != nil {
		p.app.Status.Error(err.Error())
		return nil
	}
	what := "share text"
	if p.component.Published() {
		what = "URL"
	}
	return util.CopyToClipboard(p.component.Name+" "+what, text)
}

func (p *detailPage) load(name string) tea.Cmd {
	c, ok := catalog.Lookup(name)
	if !ok {
		p.app.Status.Error(fmt.Sprintf("unknown component %q", name))
		return nil
	}
	p.unload()
	p.component = c
	p.tab = tabPreview
	p.code = p.highlight(c.Name)
	p.widgets = p.buildPreview(c.Name)

	var cmds []tea.Cmd
	for _, w := range p.widgets {
		w.SetWidth(p.previewWidth())
		cmds = append(cmds, w.Init())
	}
	slog.Debug("detail: loaded component", "name", c.Name, "widgets", len(p.widgets))
	return tea.Batch(cmds...)
}

// unload closes the preview widgets so their records leave the registry.
func (p *detailPage) unload() {
	for _, w := range p.widgets {
		if c, ok := w.(closer); ok {
			c.Close()
		}
	}
	p.widgets = nil
	p.interactive = false
	p.focusIdx = 0
}

func (p *detailPage) buildPreview(name string) []previewWidget {
	reg := p.app.Registry
	switch name {
	case "FormBuilder":
		form := widget.NewForm(reg, widget.FormOptions{
			Label:           "Email Address",
			Placeholder:     "Enter your email...",
			FieldType:       widget.FieldText,
			Required:        true,
			ShowSuggestions: true,
		})
		button := widget.NewButton(reg, widget.ButtonOptions{
			Label:        "Subscribe",
			LinkedFormID: form.ID(),
		})
		tags := widget.NewForm(reg, widget.FormOptions{
			Label:           "Interests",
			FieldType:       widget.FieldChips,
			Options:         []string{"design", "go", "terminals", "ui"},
			ShowSuggestions: true,
		})
		return []previewWidget{form, button, tags}
	case "Button":
		return []previewWidget{
			widget.NewButton(reg, widget.ButtonOptions{Label: "Primary", Variant: widget.VariantPrimary}),
			widget.NewButton(reg, widget.ButtonOptions{Label: "Outline", Variant: widget.VariantOutline, Size: widget.SizeSmall}),
			widget.NewButton(reg, widget.ButtonOptions{Label: "Danger", Variant: widget.VariantDanger, Size: widget.SizeLarge}),
			widget.NewButton(reg, widget.ButtonOptions{Label: "Disabled", Variant: widget.VariantSecondary, Disabled: true}),
		}
	case "Card":
		return []previewWidget{
			widget.NewCard(widget.CardOptions{
				Title:         "Linked widgets",
				Subtitle:      "Card preview",
				Body:          "Cards group related content and actions. They take no part in linking but share the theme with every other widget.",
				Image:         "[ image ]",
				ImagePosition: widget.ImageLeft,
				Actions:       []string{"Share", "Open"},
				Elevation:     2,
			}),
		}
	}
	return nil
}

func (p *detailPage) highlight(name string) string {
	code, ok := catalog.Snippet(name)
	if !ok {
		return ""
	}
	var b strings.Builder
	if err := catalog.Highlight(&b, code, catalog.DefaultStyle); err != nil {
		slog.Warn("detail: highlight failed", "name", name, "error", err)
		return code
	}
	return b.String()
}

func (p *detailPage) previewWidth() int {
	return max(30, min(60, p.width-6))
}

func (p *detailPage) tabsView() string {
	t := theme.CurrentTheme()
	render := func(label string, active bool) string {
		style := lipgloss.NewStyle().Padding(0, 2)
		if active {
			return style.Background(t.Primary()).Foreground(t.Background()).Bold(true).Render(label)
		}
		return style.Background(t.BackgroundElement()).Foreground(t.TextMuted()).Render(label)
	}
	return render("Preview", p.tab == tabPreview) + " " + render("Code", p.tab == tabCode)
}

func (p *detailPage) View() string {
	if p.component.Name == "" {
		return styles.Muted().Render("No component selected")
	}
	textWidth := max(20, p.width-4)
	header := lipgloss.JoinVertical(lipgloss.Left,
		p.renderOverview(textWidth),
		"",
		p.tabsView(),
		"",
	)

	var body string
	if p.tab == tabCode {
		body = p.code
	} else {
		views := make([]string, 0, len(p.widgets))
		for _, w := range p.widgets {
			views = append(views, w.View())
		}
		body = lipgloss.JoinVertical(lipgloss.Left, views...)
		if !p.interactive {
			body += "\n\n" + styles.Muted().Render("press enter to try the widgets")
		}
	}

	return lipgloss.NewStyle().Padding(0, 1).Render(header + "\n" + body)
}

func (p *detailPage) renderOverview(width int) string {
	k := fmt.Sprintf("%s/%d/%s", p.component.Name, width, theme.CurrentThemeName())
	if k != p.overviewKey {
		p.overview = styles.RenderMarkdown(p.component.Overview(), width)
		p.overviewKey = k
	}
	return p.overview
}

func (p *detailPage) SetSize(width, height int) tea.Cmd {
	p.width, p.height = width, height
	for _, w := range p.widgets {
		w.SetWidth(p.previewWidth())
	}
	return nil
}

func (p *detailPage) GetSize() (int, int) {
	return p.width, p.height
}

func (p *detailPage) BindingKeys() []key.Binding {
	if !p.interactive {
		return layout.KeyMapToSlice(detailKeys)
	}
	bindings := append([]key.Binding{}, interactKeys...)
	if len(p.widgets) > 0 {
		bindings = append(bindings, p.widgets[p.focusIdx].BindingKeys()...)
	}
	return bindings
}

func NewDetailPage(app *app.App) Page {
	return &detailPage{app: app}
}
