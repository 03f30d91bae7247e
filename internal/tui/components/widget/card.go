package widget

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"github.com/sst/widgetlink/internal/tui/image"
	"github.com/sst/widgetlink/internal/tui/layout"
	"github.com/sst/widgetlink/internal/tui/styles"
	"github.com/sst/widgetlink/internal/tui/theme"
)

type ImagePosition string

const (
	ImageTop    ImagePosition = "top"
	ImageBottom ImagePosition = "bottom"
	ImageLeft   ImagePosition = "left"
	ImageRight  ImagePosition = "right"
)

type CardOptions struct {
	ID            string
	Title         string
	Subtitle      string
	Body          string
	// Image is a path to a png, jpeg, gif or webp file drawn as a
	// thumbnail, or short text shown in the image slot.
	Image         string
	ImagePosition ImagePosition
	Actions       []string
	// Elevation from 0 (flat) to 3 picks the border.
	Elevation int
	Width     int
}

// CardActionMsg is emitted when an action of a card is activated.
type CardActionMsg struct {
	CardID string
	Action string
}

type cardKeyMap struct {
	Prev   key.Binding
	Next   key.Binding
	Select key.Binding
}

var cardKeys = cardKeyMap{
	Prev: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←", "previous action"),
	),
	Next: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→", "next action"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "run action"),
	),
}

// CardModel is a static content card with optional actions. It takes no
// part in linking.
type CardModel struct {
	opts    CardOptions
	cursor  int
	focused bool

	thumb      string
	thumbWidth int
	thumbErr   error
}

var _ layout.Focusable = (*CardModel)(nil)

func NewCard(opts CardOptions) *CardModel {
	if opts.ID == "" {
		opts.ID = NewComponentID("card")
	}
	if opts.ImagePosition == "" {
		opts.ImagePosition = ImageTop
	}
	if opts.Width <= 0 {
		opts.Width = 48
	}
	opts.Elevation = max(0, min(opts.Elevation, 3))
	return &CardModel{opts: opts}
}

func (c *CardModel) Init() tea.Cmd {
	return nil
}

func (c *CardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !c.focused || len(c.opts.Actions) == 0 {
			return c, nil
		}
		switch {
		case key.Matches(msg, cardKeys.Prev):
			c.cursor = max(0, c.cursor-1)
		case key.Matches(msg, cardKeys.Next):
			c.cursor = min(len(c.opts.Actions)-1, c.cursor+1)
		case key.Matches(msg, cardKeys.Select):
			return c, c.activate(c.cursor)
		}
	case tea.MouseMsg:
		for i := range c.opts.Actions {
			if zoneClicked(c.actionZone(i), msg) {
				c.cursor = i
				return c, c.activate(i)
			}
		}
	}
	return c, nil
}

func (c *CardModel) activate(i int) tea.Cmd {
	msg := CardActionMsg{CardID: c.opts.ID, Action: c.opts.Actions[i]}
	return func() tea.Msg { return msg }
}

func (c *CardModel) actionZone(i int) string {
	return c.opts.ID + "-" + c.opts.Actions[i]
}

func (c *CardModel) ID() string {
	return c.opts.ID
}

// Cursor returns the index of the highlighted action.
func (c *CardModel) Cursor() int {
	return c.cursor
}

func (c *CardModel) Focus() tea.Cmd {
	c.focused = true
	return nil
}

func (c *CardModel) Blur() {
	c.focused = false
}

func (c *CardModel) IsFocused() bool {
	return c.focused
}

func (c *CardModel) SetWidth(width int) {
	if width > 10 {
		c.opts.Width = width
	}
}

func (c *CardModel) BindingKeys() []key.Binding {
	return layout.KeyMapToSlice(cardKeys)
}

func (c *CardModel) frame() lipgloss.Style {
	t := theme.CurrentTheme()
	style := lipgloss.NewStyle().Padding(0, 1).Width(c.opts.Width - 2)
	switch c.opts.Elevation {
	case 0:
		style = style.Border(lipgloss.HiddenBorder())
	case 1:
		style = style.Border(lipgloss.NormalBorder()).BorderForeground(t.BorderSubtle())
	case 2:
		style = style.Border(lipgloss.RoundedBorder()).BorderForeground(t.Border())
	default:
		style = style.Border(lipgloss.ThickBorder()).BorderForeground(t.BorderActive())
	}
	if c.focused {
		style = style.BorderForeground(t.BorderActive())
	}
	return style
}

func (c *CardModel) View() string {
	t := theme.CurrentTheme()
	inner := c.opts.Width - 4
	horizontal := c.opts.Image != "" && (c.opts.ImagePosition == ImageLeft || c.opts.ImagePosition == ImageRight)

	textWidth := inner
	var pic string
	if c.opts.Image != "" {
		if horizontal {
			imgWidth := inner / 3
			textWidth = inner - imgWidth - 1
			pic = c.imageView(imgWidth)
		} else {
			pic = c.imageView(inner)
		}
	}

	var text []string
	if c.opts.Title != "" {
		text = append(text, styles.Title().Render(truncate.StringWithTail(c.opts.Title, uint(textWidth), "…")))
	}
	if c.opts.Subtitle != "" {
		text = append(text, styles.Muted().Render(truncate.StringWithTail(c.opts.Subtitle, uint(textWidth), "…")))
	}
	if c.opts.Body != "" {
		text = append(text, lipgloss.NewStyle().Foreground(t.Text()).Render(wordwrap.String(c.opts.Body, textWidth)))
	}
	if actions := c.actionsView(); actions != "" {
		text = append(text, "", actions)
	}
	content := strings.Join(text, "\n")

	var body string
	switch {
	case pic == "":
		body = content
	case c.opts.ImagePosition == ImageLeft:
		body = lipgloss.JoinHorizontal(lipgloss.Top, pic, " ", content)
	case c.opts.ImagePosition == ImageRight:
		body = lipgloss.JoinHorizontal(lipgloss.Top, content, " ", pic)
	case c.opts.ImagePosition == ImageBottom:
		body = lipgloss.JoinVertical(lipgloss.Left, content, "", pic)
	default:
		body = lipgloss.JoinVertical(lipgloss.Left, pic, "", content)
	}
	return c.frame().Render(body)
}

// imageView draws the image slot width columns wide. Image files are decoded
// once per width; anything else is shown as text.
func (c *CardModel) imageView(width int) string {
	if image.IsImageFile(c.opts.Image) {
		if c.thumbWidth != width {
			c.thumb, c.thumbErr = image.Preview(width, c.opts.Image)
			c.thumbWidth = width
			if c.thumbErr != nil {
				slog.Debug("card: image preview failed", "id", c.opts.ID, "image", c.opts.Image, "error", c.thumbErr)
			}
		}
		if c.thumbErr == nil {
			return c.thumb
		}
	}

	t := theme.CurrentTheme()
	return lipgloss.NewStyle().
		Background(t.BackgroundElement()).
		Foreground(t.TextMuted()).
		Align(lipgloss.Center).
		Width(width).
		Padding(1, 0).
		Render(truncate.StringWithTail(c.opts.Image, uint(width), "…"))
}

func (c *CardModel) actionsView() string {
	if len(c.opts.Actions) == 0 {
		return ""
	}
	t := theme.CurrentTheme()
	actions := make([]string, 0, len(c.opts.Actions))
	for i, a := range c.opts.Actions {
		style := lipgloss.NewStyle().Foreground(t.Primary()).Padding(0, 1)
		if c.focused && i == c.cursor {
			style = style.Background(t.Primary()).Foreground(t.Background()).Bold(true)
		}
		actions = append(actions, mark(c.actionZone(i), style.Render(a)))
	}
	return strings.Join(actions, " ")
}
