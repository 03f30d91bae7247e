package theme

import (
	"github.com/charmbracelet/lipgloss"
)

// NewTokyoNightTheme uses the Day palette on light terminals and Moon on
// dark ones.
func NewTokyoNightTheme() *BaseTheme {
	c := func(light, dark string) lipgloss.AdaptiveColor {
		return lipgloss.AdaptiveColor{Light: light, Dark: dark}
	}

	return &BaseTheme{
		ThemeName: "tokyonight",

		BackgroundColor:        c("#e1e2e7", "#1a1b26"),
		BackgroundPanelColor:   c("#d5d6db", "#1e2030"),
		BackgroundElementColor: c("#c8c9ce", "#222436"),

		BorderSubtleColor: c("#9699a8", "#545c7e"),
		BorderColor:       c("#737a8c", "#737aa2"),
		BorderActiveColor: c("#5a607d", "#9099b2"),

		PrimaryColor:   c("#2e7de9", "#82aaff"),
		SecondaryColor: c("#9854f1", "#c099ff"),
		AccentColor:    c("#b15c00", "#ff966c"),

		TextMutedColor: c("#8990a3", "#828bb8"),
		TextColor:      c("#3760bf", "#c8d3f5"),

		ErrorColor:   c("#f52a65", "#ff757f"),
		WarningColor: c("#8c6c3e", "#ffc777"),
		SuccessColor: c("#587539", "#c3e88d"),
		InfoColor:    c("#007197", "#86e1fc"),
	}
}
