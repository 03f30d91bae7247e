package page

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sst/widgetlink/internal/app"
	"github.com/sst/widgetlink/internal/link"
	"github.com/sst/widgetlink/internal/tui/components/widget"
	"github.com/sst/widgetlink/internal/tui/layout"
	"github.com/sst/widgetlink/internal/tui/styles"
	"github.com/sst/widgetlink/internal/tui/theme"
	"github.com/sst/widgetlink/internal/tui/util"
)

var LinkingPage PageID = "linking"

type linkLayout int

const (
	layoutSideBySide linkLayout = iota
	layoutStacked
)

func (l linkLayout) String() string {
	if l == layoutStacked {
		return "stacked"
	}
	return "side-by-side"
}

type linkingKeyMap struct {
	SwitchFocus  key.Binding
	Instructions key.Binding
	Layout       key.Binding
	Back         key.Binding
}

var linkingKeys = linkingKeyMap{
	SwitchFocus: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "form/button"),
	),
	Instructions: key.NewBinding(
		key.WithKeys("ctrl+o"),
		key.WithHelp("ctrl+o", "instructions"),
	),
	Layout: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "layout"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
}

type linkingPage struct {
	app           *app.App
	width, height int

	form   *widget.FormModel
	button *widget.ButtonModel

	showInstructions bool
	layout           linkLayout
}

func (p *linkingPage) Init() tea.Cmd {
	return tea.Batch(p.form.Focus(), p.button.Init())
}

func (p *linkingPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return p, p.SetSize(msg.Width, msg.Height)
	case LinksChangedMsg:
		p.Relink(msg.FormID, msg.LinkedFormID)
		return p, nil
	case widget.ButtonPressedMsg:
		p.app.Status.Infof("Subscribed with %q", p.form.Value())
		p.form.Clear()
		return p, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, linkingKeys.SwitchFocus):
			if p.form.IsFocused() {
				p.form.Blur()
				return p, p.button.Focus()
			}
			p.button.Blur()
			return p, p.form.Focus()
		case key.Matches(msg, linkingKeys.Instructions):
			p.showInstructions = !p.showInstructions
			return p, nil
		case key.Matches(msg, linkingKeys.Layout):
			p.layout = (p.layout + 1) % 2
			p.resize()
			return p, nil
		case key.Matches(msg, linkingKeys.Back):
			return p, util.CmdHandler(PageChangeMsg{ID: GalleryPage})
		}
		if p.button.IsFocused() {
			_, cmd := p.button.Update(msg)
			return p, cmd
		}
		_, cmd := p.form.Update(msg)
		return p, cmd
	}

	var cmds []tea.Cmd
	_, cmd := p.form.Update(msg)
	cmds = append(cmds, cmd)
	_, cmd = p.button.Update(msg)
	cmds = append(cmds, cmd)
	return p, tea.Batch(cmds...)
}

// Relink moves the form to formID and points the button at linkedFormID.
// Empty values leave the corresponding side unchanged.
func (p *linkingPage) Relink(formID, linkedFormID string) {
	if formID != "" && formID != p.form.ID() {
		p.form.SetID(formID)
	}
	if linkedFormID != "" && linkedFormID != p.button.LinkedFormID() {
		p.button.SetLinkedFormID(linkedFormID)
	}
	p.app.Status.Infof("Linked %s %s %s", p.button.ID(), styles.LinkIcon, p.button.LinkedFormID())
}

func (p *linkingPage) instructionsView() string {
	t := theme.CurrentTheme()
	lines := []string{
		styles.Bold().Foreground(t.Text()).Render(styles.LinkIcon + " ID-Based Linking"),
		fmt.Sprintf("1. Form ID: %s", p.form.ID()),
		fmt.Sprintf("2. Button ID: %s", p.button.ID()),
		"3. The button listens to the form id it is linked to",
		"4. Edit the link file to rebind them live",
	}
	return lipgloss.NewStyle().
		Padding(0, 1).
		Background(t.BackgroundPanel()).
		Foreground(t.TextMuted()).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// debugView mirrors the registry state as the button sees it.
func (p *linkingPage) debugView() string {
	t := theme.CurrentTheme()
	linkedID := p.button.LinkedFormID()

	producer := lipgloss.NewStyle().Foreground(t.Warning()).Render("no producer")
	if rec, ok := p.app.Registry.Get(linkedID); ok && rec.Kind == link.KindForm {
		producer = lipgloss.NewStyle().Foreground(t.Success()).Render("producer found")
	}

	enabled := "Yes"
	if p.button.IsDisabled() {
		enabled = "No"
	}
	value := p.form.Value()
	if value == "" {
		value = "(empty)"
	}
	return styles.Muted().Render(fmt.Sprintf(
		"Form Value: %s | Button Enabled: %s | %s %s (%s, %d subscribers)",
		value, enabled, p.button.Binding(), linkedID, producer, p.app.Registry.SubscriberCount(linkedID),
	))
}

func (p *linkingPage) View() string {
	var widgets string
	if p.layout == layoutStacked {
		widgets = lipgloss.JoinVertical(lipgloss.Left, p.form.View(), "", p.button.View())
	} else {
		widgets = lipgloss.JoinHorizontal(lipgloss.Bottom, p.form.View(), "  ", p.button.View())
	}

	parts := []string{
		styles.Title().Render("Linking") + styles.Muted().Render("  layout: "+p.layout.String()),
		"",
	}
	if p.showInstructions {
		parts = append(parts, p.instructionsView(), "")
	}
	parts = append(parts, widgets, "", p.debugView())
	return lipgloss.NewStyle().Padding(0, 1).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (p *linkingPage) resize() {
	formWidth := max(30, min(50, p.width-24))
	p.form.SetWidth(formWidth)
	p.button.SetWidth(formWidth)
}

func (p *linkingPage) SetSize(width, height int) tea.Cmd {
	p.width, p.height = width, height
	p.resize()
	return nil
}

func (p *linkingPage) GetSize() (int, int) {
	return p.width, p.height
}

func (p *linkingPage) BindingKeys() []key.Binding {
	bindings := layout.KeyMapToSlice(linkingKeys)
	if p.button.IsFocused() {
		return append(bindings, p.button.BindingKeys()...)
	}
	return append(bindings, p.form.BindingKeys()...)
}

// NewLinkingPage builds the form and button from the configured identifiers.
func NewLinkingPage(app *app.App) Page {
	formID, buttonID := "my-form-123", "my-button-456"
	if app.Config != nil {
		if app.Config.Links.FormID != "" {
			formID = app.Config.Links.FormID
		}
		if app.Config.Links.ButtonID != "" {
			buttonID = app.Config.Links.ButtonID
		}
	}

	form := widget.NewForm(app.Registry, widget.FormOptions{
		ID:              formID,
		Label:           "Email Address",
		Placeholder:     "Enter your email...",
		FieldType:       widget.FieldText,
		Required:        true,
		ShowSuggestions: true,
	})
	button := widget.NewButton(app.Registry, widget.ButtonOptions{
		ID:           buttonID,
		Label:        "Subscribe",
		Variant:      widget.VariantPrimary,
		Size:         widget.SizeMedium,
		LinkedFormID: formID,
	})
	return &linkingPage{
		app:              app,
		form:             form,
		button:           button,
		showInstructions: true,
	}
}
