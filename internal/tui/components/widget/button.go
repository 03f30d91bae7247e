package widget

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sst/widgetlink/internal/link"
	"github.com/sst/widgetlink/internal/tui/layout"
	"github.com/sst/widgetlink/internal/tui/theme"
)

type Variant string

const (
	VariantPrimary   Variant = "primary"
	VariantSecondary Variant = "secondary"
	VariantOutline   Variant = "outline"
	VariantGhost     Variant = "ghost"
	VariantDanger    Variant = "danger"
)

type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

type ButtonOptions struct {
	// ID is the identifier the button publishes its own state under.
	ID      string
	Label   string
	Variant Variant
	Size    Size
	// Disabled is the button's own flag. ExternalDisabled is set by the host.
	Disabled         bool
	ExternalDisabled bool
	Loading          bool
	FullWidth        bool
	// LinkedFormID is the form whose content gates the button.
	LinkedFormID string
	// Background and Foreground override the variant colors when non-empty.
	Background string
	Foreground string
	Width      int
}

// ButtonPressedMsg is emitted when an enabled button is activated.
type ButtonPressedMsg struct {
	ID string
}

var pressKey = key.NewBinding(
	key.WithKeys("enter", " "),
	key.WithHelp("enter", "press"),
)

// ButtonModel is a button that can be disabled by the content of a linked
// form. It is disabled when its own flag, the host's flag or the link says so.
type ButtonModel struct {
	opts     ButtonOptions
	binding  *link.Binding
	producer *link.Producer
	spinner  spinner.Model

	linkDisabled bool
	linked       *link.FormState
	focused      bool
}

var _ layout.Focusable = (*ButtonModel)(nil)

func NewButton(reg *link.Registry, opts ButtonOptions) *ButtonModel {
	if opts.ID == "" {
		opts.ID = NewComponentID("button")
	}
	if opts.Label == "" {
		opts.Label = "Button"
	}
	if opts.Variant == "" {
		opts.Variant = VariantPrimary
	}
	if opts.Size == "" {
		opts.Size = SizeMedium
	}

	b := &ButtonModel{
		opts:     opts,
		producer: link.NewProducer(reg, opts.ID),
		spinner:  spinner.New(spinner.WithSpinner(spinner.MiniDot)),
	}
	b.binding = link.NewBinding(reg, b.onLinked)
	b.binding.Bind(opts.LinkedFormID)
	b.publish()
	return b
}

func (b *ButtonModel) onLinked(p link.Payload) {
	switch p := p.(type) {
	case link.FormState:
		b.linkDisabled = p.DisablesButton()
		b.linked = &p
		b.publish()
	default:
		slog.Debug("button: ignoring non-form payload", "id", b.opts.ID, "linked", b.opts.LinkedFormID, "kind", p.Kind())
	}
}

func (b *ButtonModel) Init() tea.Cmd {
	if b.opts.Loading {
		return b.spinner.Tick
	}
	return nil
}

func (b *ButtonModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !b.opts.Loading {
			return b, nil
		}
		var cmd tea.Cmd
		b.spinner, cmd = b.spinner.Update(msg)
		return b, cmd
	case tea.KeyMsg:
		if b.focused && key.Matches(msg, pressKey) {
			return b, b.press()
		}
	case tea.MouseMsg:
		if zoneClicked(b.opts.ID, msg) {
			return b, b.press()
		}
	}
	return b, nil
}

func (b *ButtonModel) press() tea.Cmd {
	if b.IsDisabled() || b.opts.Loading {
		return nil
	}
	id := b.opts.ID
	return func() tea.Msg {
		return ButtonPressedMsg{ID: id}
	}
}

// IsDisabled reports whether the button ignores presses.
func (b *ButtonModel) IsDisabled() bool {
	return b.opts.Disabled || b.opts.ExternalDisabled || b.linkDisabled
}

// LinkDisabled reports whether the linked form currently disables the button.
func (b *ButtonModel) LinkDisabled() bool {
	return b.linkDisabled
}

// LinkedState returns the last form state received, if any.
func (b *ButtonModel) LinkedState() (link.FormState, bool) {
	if b.linked == nil {
		return link.FormState{}, false
	}
	return *b.linked, true
}

// SetLinkedFormID relinks the button. The link flag is cleared first so a
// button linked to a form that has not published yet stays enabled.
func (b *ButtonModel) SetLinkedFormID(id string) {
	b.opts.LinkedFormID = id
	b.linkDisabled = false
	b.linked = nil
	b.binding.Bind(id)
	b.publish()
}

func (b *ButtonModel) LinkedFormID() string {
	return b.opts.LinkedFormID
}

func (b *ButtonModel) Binding() link.BindingState {
	return b.binding.State()
}

func (b *ButtonModel) SetDisabled(disabled bool) {
	b.opts.Disabled = disabled
	b.publish()
}

func (b *ButtonModel) SetExternalDisabled(disabled bool) {
	b.opts.ExternalDisabled = disabled
	b.publish()
}

// SetLoading toggles the loading spinner and returns the command that
// drives it.
func (b *ButtonModel) SetLoading(loading bool) tea.Cmd {
	b.opts.Loading = loading
	b.publish()
	if loading {
		return b.spinner.Tick
	}
	return nil
}

func (b *ButtonModel) Loading() bool {
	return b.opts.Loading
}

func (b *ButtonModel) ID() string {
	return b.opts.ID
}

func (b *ButtonModel) State() link.ButtonState {
	return link.ButtonState{
		Disabled:     b.IsDisabled(),
		Loading:      b.opts.Loading,
		LinkedFormID: b.opts.LinkedFormID,
	}
}

func (b *ButtonModel) publish() {
	b.producer.Update(b.State())
}

// Close unsubscribes from the linked form and removes the button's record.
func (b *ButtonModel) Close() {
	b.binding.Release()
	b.producer.Close()
}

func (b *ButtonModel) Focus() tea.Cmd {
	b.focused = true
	return nil
}

func (b *ButtonModel) Blur() {
	b.focused = false
}

func (b *ButtonModel) IsFocused() bool {
	return b.focused
}

func (b *ButtonModel) SetWidth(width int) {
	b.opts.Width = width
}

func (b *ButtonModel) BindingKeys() []key.Binding {
	return []key.Binding{pressKey}
}

func (b *ButtonModel) style() lipgloss.Style {
	t := theme.CurrentTheme()
	style := lipgloss.NewStyle().Bold(true)

	switch b.opts.Size {
	case SizeSmall:
		style = style.Padding(0, 1)
	case SizeLarge:
		style = style.Padding(1, 4)
	default:
		style = style.Padding(0, 2)
	}

	bg, fg := t.Primary(), t.Background()
	switch b.opts.Variant {
	case VariantSecondary:
		bg, fg = t.Secondary(), t.Background()
	case VariantDanger:
		bg, fg = t.Error(), t.Background()
	case VariantOutline:
		style = style.Border(lipgloss.RoundedBorder()).BorderForeground(t.Primary()).Padding(0, 2)
		bg, fg = t.Background(), t.Primary()
	case VariantGhost:
		bg, fg = t.Background(), t.Text()
	}
	if c, err := theme.ParseAdaptiveColor(b.opts.Background); b.opts.Background != "" && err == nil {
		bg = c
	}
	if c, err := theme.ParseAdaptiveColor(b.opts.Foreground); b.opts.Foreground != "" && err == nil {
		fg = c
	}

	if b.IsDisabled() {
		bg = theme.Blend(bg, t.Background(), 0.6)
		fg = t.TextMuted()
	}
	if b.focused {
		style = style.Underline(true)
	}
	if b.opts.FullWidth && b.opts.Width > 0 {
		style = style.Width(b.opts.Width).Align(lipgloss.Center)
	}
	return style.Background(bg).Foreground(fg)
}

func (b *ButtonModel) View() string {
	label := b.opts.Label
	if b.opts.Loading {
		label = strings.TrimSpace(b.spinner.View()) + " " + label
	}
	return mark(b.opts.ID, b.style().Render(label))
}
