package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/sst/widgetlink/internal/tui/theme"
)

// BaseStyle returns the base style with background and foreground colors
func BaseStyle() lipgloss.Style {
	t := theme.CurrentTheme()
	return lipgloss.NewStyle().
		Background(t.Background()).
		Foreground(t.Text())
}

// Regular returns a basic unstyled lipgloss.Style
func Regular() lipgloss.Style {
	return lipgloss.NewStyle()
}

func Muted() lipgloss.Style {
	t := theme.CurrentTheme()
	return lipgloss.NewStyle().Foreground(t.TextMuted())
}

func Bold() lipgloss.Style {
	return Regular().Bold(true)
}

func Title() lipgloss.Style {
	t := theme.CurrentTheme()
	return Regular().Bold(true).Foreground(t.Primary())
}

// Border returns a style with a rounded border
func Border() lipgloss.Style {
	t := theme.CurrentTheme()
	return Regular().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border())
}

// FocusedBorder returns a style with a border using the focused border color
func FocusedBorder() lipgloss.Style {
	t := theme.CurrentTheme()
	return Regular().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderActive())
}

// Tag renders a small pill, used for tags and chips.
func Tag(selected bool) lipgloss.Style {
	t := theme.CurrentTheme()
	if selected {
		return Regular().Padding(0, 1).
			Background(t.Primary()).
			Foreground(t.Background())
	}
	return Regular().Padding(0, 1).
		Background(t.BackgroundElement()).
		Foreground(t.TextMuted())
}

// KeyHelp renders a key and its description for footers.
func KeyHelp(key, desc string) string {
	t := theme.CurrentTheme()
	return Regular().Foreground(t.Text()).Bold(true).Render(key) +
		Regular().Foreground(t.TextMuted()).Render(" "+desc)
}
