package widget

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sst/widgetlink/internal/link"
	"github.com/sst/widgetlink/internal/tui/layout"
	"github.com/sst/widgetlink/internal/tui/styles"
	"github.com/sst/widgetlink/internal/tui/theme"
)

type FieldType string

const (
	FieldText     FieldType = "text"
	FieldTextarea FieldType = "textarea"
	FieldDropdown FieldType = "dropdown"
	FieldRadio    FieldType = "radio"
	FieldChips    FieldType = "chips"
)

// ParseFieldType maps a name to a FieldType, defaulting to FieldText.
func ParseFieldType(s string) FieldType {
	switch ft := FieldType(strings.ToLower(s)); ft {
	case FieldTextarea, FieldDropdown, FieldRadio, FieldChips:
		return ft
	default:
		return FieldText
	}
}

type FormOptions struct {
	// ID is the identifier the form publishes under. Empty means generated.
	ID          string
	Label       string
	Placeholder string
	FieldType   FieldType
	Required    bool
	// Options are the choices of dropdown and radio fields and the chip
	// suggestions of chips fields.
	Options         []string
	ShowSuggestions bool
	// ButtonState overrides the derived button flag: "enabled" or "disabled".
	ButtonState string
	// ShowButton renders an inline submit button driven by the same state.
	ShowButton bool
	ButtonText string
	Width      int
}

type formKeyMap struct {
	Clear       key.Binding
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	Select      key.Binding
	Suggestions key.Binding
}

var formKeys = formKeyMap{
	Clear: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("ctrl+x", "clear"),
	),
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "previous option"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "next option"),
	),
	Left: key.NewBinding(
		key.WithKeys("left"),
		key.WithHelp("←", "previous chip"),
	),
	Right: key.NewBinding(
		key.WithKeys("right"),
		key.WithHelp("→", "next chip"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "select"),
	),
	Suggestions: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "toggle suggestions"),
	),
}

// FormModel is a single form field that publishes a link.FormState under
// its identifier whenever its content changes.
type FormModel struct {
	opts     FormOptions
	producer *link.Producer

	input textinput.Model
	area  textarea.Model

	// cursor is the highlighted option or chip, selected the chosen option
	// of dropdown and radio fields (-1 when none).
	cursor   int
	selected int
	open     bool
	chips    []string

	focused bool
	width   int
}

var _ layout.Focusable = (*FormModel)(nil)

func NewForm(reg *link.Registry, opts FormOptions) *FormModel {
	opts.FieldType = ParseFieldType(string(opts.FieldType))
	if opts.ID == "" {
		opts.ID = NewComponentID("form")
	}
	if opts.Label == "" {
		opts.Label = "Field Label"
	}
	if opts.Placeholder == "" {
		opts.Placeholder = "Enter text..."
	}
	if opts.ButtonText == "" {
		opts.ButtonText = "Submit"
	}
	if opts.Width <= 0 {
		opts.Width = 40
	}

	input := textinput.New()
	input.Placeholder = opts.Placeholder
	input.Prompt = ""
	input.Width = opts.Width - 4

	area := textarea.New()
	area.Placeholder = opts.Placeholder
	area.ShowLineNumbers = false
	area.SetWidth(opts.Width - 2)
	area.SetHeight(3)

	f := &FormModel{
		opts:     opts,
		producer: link.NewProducer(reg, opts.ID),
		input:    input,
		area:     area,
		selected: -1,
		width:    opts.Width,
	}
	f.publish()
	return f
}

func (f *FormModel) Init() tea.Cmd {
	return nil
}

func (f *FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !f.focused {
		return f, f.updateInputs(msg)
	}

	if key.Matches(keyMsg, formKeys.Clear) {
		f.Clear()
		return f, nil
	}

	var cmd tea.Cmd
	switch f.opts.FieldType {
	case FieldText:
		f.input, cmd = f.input.Update(msg)
	case FieldTextarea:
		f.area, cmd = f.area.Update(msg)
	case FieldDropdown:
		f.updateDropdown(keyMsg)
	case FieldRadio:
		f.updateRadio(keyMsg)
	case FieldChips:
		f.updateChips(keyMsg)
	}
	f.publish()
	return f, cmd
}

// updateInputs forwards non-key messages such as cursor blinks.
func (f *FormModel) updateInputs(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch f.opts.FieldType {
	case FieldText:
		f.input, cmd = f.input.Update(msg)
	case FieldTextarea:
		f.area, cmd = f.area.Update(msg)
	}
	return cmd
}

func (f *FormModel) updateDropdown(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, formKeys.Select):
		if f.open {
			f.Select(f.cursor)
		}
		f.open = !f.open
	case key.Matches(msg, formKeys.Up):
		f.moveCursor(-1)
	case key.Matches(msg, formKeys.Down):
		f.moveCursor(1)
	}
}

func (f *FormModel) updateRadio(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, formKeys.Select):
		f.Select(f.cursor)
	case key.Matches(msg, formKeys.Up):
		f.moveCursor(-1)
	case key.Matches(msg, formKeys.Down):
		f.moveCursor(1)
	}
}

func (f *FormModel) updateChips(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, formKeys.Suggestions):
		f.opts.ShowSuggestions = !f.opts.ShowSuggestions
	case !f.opts.ShowSuggestions:
		return
	case key.Matches(msg, formKeys.Select):
		if f.cursor < len(f.opts.Options) {
			f.ToggleChip(f.opts.Options[f.cursor])
		}
	case key.Matches(msg, formKeys.Left):
		f.moveCursor(-1)
	case key.Matches(msg, formKeys.Right):
		f.moveCursor(1)
	}
}

func (f *FormModel) moveCursor(delta int) {
	n := len(f.opts.Options)
	if n == 0 {
		return
	}
	f.cursor = (f.cursor + delta + n) % n
}

// Select chooses option i of a dropdown or radio field. An out of range
// index clears the choice.
func (f *FormModel) Select(i int) {
	if i < 0 || i >= len(f.opts.Options) {
		f.selected = -1
	} else {
		f.selected = i
		f.cursor = i
	}
	f.publish()
}

// ToggleChip selects chip, or deselects it if already selected.
func (f *FormModel) ToggleChip(chip string) {
	if i := slices.Index(f.chips, chip); i >= 0 {
		f.chips = slices.Delete(f.chips, i, i+1)
	} else {
		f.chips = append(f.chips, chip)
	}
	f.publish()
}

// SetValue replaces the text of text and textarea fields.
func (f *FormModel) SetValue(v string) {
	switch f.opts.FieldType {
	case FieldText:
		f.input.SetValue(v)
	case FieldTextarea:
		f.area.SetValue(v)
	default:
		slog.Debug("form: SetValue ignored for field type", "id", f.ID(), "fieldType", f.opts.FieldType)
		return
	}
	f.publish()
}

func (f *FormModel) Clear() {
	f.input.Reset()
	f.area.Reset()
	f.selected = -1
	f.chips = nil
	f.open = false
	f.publish()
}

// SetButtonState changes the button override and republishes.
func (f *FormModel) SetButtonState(state string) {
	f.opts.ButtonState = state
	f.publish()
}

// SetID moves the form to a new identifier.
func (f *FormModel) SetID(id string) {
	if id == "" {
		id = NewComponentID("form")
	}
	f.opts.ID = id
	f.producer.SetID(id)
}

func (f *FormModel) ID() string {
	return f.opts.ID
}

func (f *FormModel) Value() string {
	switch f.opts.FieldType {
	case FieldText:
		return f.input.Value()
	case FieldTextarea:
		return f.area.Value()
	case FieldDropdown, FieldRadio:
		if f.selected >= 0 {
			return f.opts.Options[f.selected]
		}
	}
	return ""
}

func (f *FormModel) SelectedChips() []string {
	return slices.Clone(f.chips)
}

func (f *FormModel) State() link.FormState {
	return link.NewFormState(string(f.opts.FieldType), f.opts.Label, f.Value(), f.chips, f.opts.ButtonState)
}

func (f *FormModel) publish() {
	f.producer.Update(f.State())
}

// Close removes the form's record from the registry.
func (f *FormModel) Close() {
	f.producer.Close()
}

func (f *FormModel) Focus() tea.Cmd {
	f.focused = true
	switch f.opts.FieldType {
	case FieldText:
		return f.input.Focus()
	case FieldTextarea:
		return f.area.Focus()
	}
	return nil
}

func (f *FormModel) Blur() {
	f.focused = false
	f.open = false
	f.input.Blur()
	f.area.Blur()
}

func (f *FormModel) IsFocused() bool {
	return f.focused
}

func (f *FormModel) SetWidth(width int) {
	if width <= 4 {
		return
	}
	f.width = width
	f.input.Width = width - 4
	f.area.SetWidth(width - 2)
}

func (f *FormModel) BindingKeys() []key.Binding {
	switch f.opts.FieldType {
	case FieldDropdown, FieldRadio:
		return []key.Binding{formKeys.Up, formKeys.Down, formKeys.Select, formKeys.Clear}
	case FieldChips:
		return []key.Binding{formKeys.Left, formKeys.Right, formKeys.Select, formKeys.Suggestions, formKeys.Clear}
	default:
		return []key.Binding{formKeys.Clear}
	}
}

func (f *FormModel) View() string {
	t := theme.CurrentTheme()

	label := styles.Bold().Foreground(t.Text()).Render(f.opts.Label)
	if f.opts.Required {
		label += lipgloss.NewStyle().Foreground(t.Error()).Render(" *")
	}

	box := styles.Border()
	if f.focused {
		box = styles.FocusedBorder()
	}
	box = box.Width(f.width - 2)

	var field string
	switch f.opts.FieldType {
	case FieldText:
		field = box.Render(f.input.View())
	case FieldTextarea:
		field = box.Render(f.area.View())
	case FieldDropdown:
		field = f.dropdownView(box)
	case FieldRadio:
		field = f.radioView()
	case FieldChips:
		field = f.chipsView()
	}

	parts := []string{label, field}
	if f.opts.ShowButton {
		parts = append(parts, f.inlineButtonView())
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (f *FormModel) dropdownView(box lipgloss.Style) string {
	t := theme.CurrentTheme()
	current := styles.Muted().Render(f.opts.Placeholder)
	if v := f.Value(); v != "" {
		current = lipgloss.NewStyle().Foreground(t.Text()).Render(v)
	}
	head := box.Render(current + " " + styles.DropdownArr)
	if !f.open {
		return head
	}

	lines := make([]string, 0, len(f.opts.Options))
	for i, opt := range f.opts.Options {
		style := lipgloss.NewStyle().Foreground(t.TextMuted()).PaddingLeft(2)
		if i == f.cursor {
			style = style.Foreground(t.Primary()).Bold(true)
		}
		if i == f.selected {
			opt += " " + styles.CheckIcon
		}
		lines = append(lines, style.Render(opt))
	}
	return lipgloss.JoinVertical(lipgloss.Left, head, strings.Join(lines, "\n"))
}

func (f *FormModel) radioView() string {
	t := theme.CurrentTheme()
	lines := make([]string, 0, len(f.opts.Options))
	for i, opt := range f.opts.Options {
		mark := styles.RadioOff
		if i == f.selected {
			mark = styles.RadioOn
		}
		style := lipgloss.NewStyle().Foreground(t.Text())
		if f.focused && i == f.cursor {
			style = style.Foreground(t.Primary())
		}
		lines = append(lines, style.Render(mark+" "+opt))
	}
	return strings.Join(lines, "\n")
}

func (f *FormModel) chipsView() string {
	if !f.opts.ShowSuggestions {
		return styles.Muted().Render(strings.Join(f.chips, ", ") + "  (ctrl+s for suggestions)")
	}
	t := theme.CurrentTheme()
	chips := make([]string, 0, len(f.opts.Options))
	for i, chip := range f.opts.Options {
		selected := slices.Contains(f.chips, chip)
		style := styles.Tag(selected)
		if f.focused && i == f.cursor {
			style = style.Underline(true).Foreground(t.Accent())
		}
		mark := styles.ChipOff
		if selected {
			mark = styles.ChipOn
		}
		chips = append(chips, style.Render(mark+" "+chip))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(chips, " "))
}

func (f *FormModel) inlineButtonView() string {
	t := theme.CurrentTheme()
	style := lipgloss.NewStyle().Padding(0, 2).MarginTop(1)
	if f.State().DisablesButton() {
		style = style.Background(theme.Blend(t.BackgroundElement(), t.Background(), 0.3)).Foreground(t.TextMuted())
	} else {
		style = style.Background(t.Primary()).Foreground(t.Background()).Bold(true)
	}
	return style.Render(f.opts.ButtonText)
}
