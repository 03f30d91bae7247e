package theme

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colors every widget and page draws with. All colors are
// adaptive so they work on light and dark terminals.
type Theme interface {
	Name() string

	Background() lipgloss.AdaptiveColor
	BackgroundPanel() lipgloss.AdaptiveColor
	BackgroundElement() lipgloss.AdaptiveColor

	BorderSubtle() lipgloss.AdaptiveColor
	Border() lipgloss.AdaptiveColor
	BorderActive() lipgloss.AdaptiveColor

	Primary() lipgloss.AdaptiveColor
	Secondary() lipgloss.AdaptiveColor
	Accent() lipgloss.AdaptiveColor

	TextMuted() lipgloss.AdaptiveColor
	Text() lipgloss.AdaptiveColor

	Error() lipgloss.AdaptiveColor
	Warning() lipgloss.AdaptiveColor
	Success() lipgloss.AdaptiveColor
	Info() lipgloss.AdaptiveColor
}

// BaseTheme implements Theme from plain fields and is embedded by the
// concrete themes.
type BaseTheme struct {
	ThemeName string

	BackgroundColor        lipgloss.AdaptiveColor
	BackgroundPanelColor   lipgloss.AdaptiveColor
	BackgroundElementColor lipgloss.AdaptiveColor

	BorderSubtleColor lipgloss.AdaptiveColor
	BorderColor       lipgloss.AdaptiveColor
	BorderActiveColor lipgloss.AdaptiveColor

	PrimaryColor   lipgloss.AdaptiveColor
	SecondaryColor lipgloss.AdaptiveColor
	AccentColor    lipgloss.AdaptiveColor

	TextMutedColor lipgloss.AdaptiveColor
	TextColor      lipgloss.AdaptiveColor

	ErrorColor   lipgloss.AdaptiveColor
	WarningColor lipgloss.AdaptiveColor
	SuccessColor lipgloss.AdaptiveColor
	InfoColor    lipgloss.AdaptiveColor
}

func (t *BaseTheme) Name() string { return t.ThemeName }

func (t *BaseTheme) Background() lipgloss.AdaptiveColor        { return t.BackgroundColor }
func (t *BaseTheme) BackgroundPanel() lipgloss.AdaptiveColor   { return t.BackgroundPanelColor }
func (t *BaseTheme) BackgroundElement() lipgloss.AdaptiveColor { return t.BackgroundElementColor }

func (t *BaseTheme) BorderSubtle() lipgloss.AdaptiveColor { return t.BorderSubtleColor }
func (t *BaseTheme) Border() lipgloss.AdaptiveColor       { return t.BorderColor }
func (t *BaseTheme) BorderActive() lipgloss.AdaptiveColor { return t.BorderActiveColor }

func (t *BaseTheme) Primary() lipgloss.AdaptiveColor   { return t.PrimaryColor }
func (t *BaseTheme) Secondary() lipgloss.AdaptiveColor { return t.SecondaryColor }
func (t *BaseTheme) Accent() lipgloss.AdaptiveColor    { return t.AccentColor }

func (t *BaseTheme) TextMuted() lipgloss.AdaptiveColor { return t.TextMutedColor }
func (t *BaseTheme) Text() lipgloss.AdaptiveColor      { return t.TextColor }

func (t *BaseTheme) Error() lipgloss.AdaptiveColor   { return t.ErrorColor }
func (t *BaseTheme) Warning() lipgloss.AdaptiveColor { return t.WarningColor }
func (t *BaseTheme) Success() lipgloss.AdaptiveColor { return t.SuccessColor }
func (t *BaseTheme) Info() lipgloss.AdaptiveColor    { return t.InfoColor }
