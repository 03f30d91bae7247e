package theme

import (
	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
)

// NewCatppuccinTheme uses Latte on light terminals and Mocha on dark ones.
func NewCatppuccinTheme() *BaseTheme {
	light, dark := catppuccin.Latte, catppuccin.Mocha
	pick := func(f func(catppuccin.Flavor) catppuccin.Color) lipgloss.AdaptiveColor {
		return lipgloss.AdaptiveColor{Light: f(light).Hex, Dark: f(dark).Hex}
	}

	return &BaseTheme{
		ThemeName: "catppuccin",

		BackgroundColor:        pick(catppuccin.Flavor.Base),
		BackgroundPanelColor:   pick(catppuccin.Flavor.Mantle),
		BackgroundElementColor: pick(catppuccin.Flavor.Surface0),

		BorderSubtleColor: pick(catppuccin.Flavor.Surface1),
		BorderColor:       pick(catppuccin.Flavor.Overlay0),
		BorderActiveColor: pick(catppuccin.Flavor.Lavender),

		PrimaryColor:   pick(catppuccin.Flavor.Blue),
		SecondaryColor: pick(catppuccin.Flavor.Mauve),
		AccentColor:    pick(catppuccin.Flavor.Peach),

		TextMutedColor: pick(catppuccin.Flavor.Subtext0),
		TextColor:      pick(catppuccin.Flavor.Text),

		ErrorColor:   pick(catppuccin.Flavor.Red),
		WarningColor: pick(catppuccin.Flavor.Yellow),
		SuccessColor: pick(catppuccin.Flavor.Green),
		InfoColor:    pick(catppuccin.Flavor.Sky),
	}
}
