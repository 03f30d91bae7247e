package theme

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// DefaultTheme is registered first and sorts first.
const DefaultTheme = "catppuccin"

// Manager handles theme registration, selection, and retrieval.
type Manager struct {
	themes      map[string]Theme
	currentName string
	mu          sync.RWMutex
}

var globalManager = &Manager{
	themes: make(map[string]Theme),
}

func init() {
	RegisterTheme(DefaultTheme, NewCatppuccinTheme())
	RegisterTheme("tokyonight", NewTokyoNightTheme())
}

// RegisterTheme adds a theme. The first registered theme becomes current.
func RegisterTheme(name string, theme Theme) {
	globalManager.mu.Lock()
	defer globalManager.mu.Unlock()

	globalManager.themes[name] = theme
	if globalManager.currentName == "" {
		globalManager.currentName = name
	}
}

// SetTheme changes the active theme. It returns an error if the theme
// doesn't exist.
func SetTheme(name string) error {
	globalManager.mu.Lock()
	defer globalManager.mu.Unlock()

	if _, exists := globalManager.themes[name]; !exists {
		return fmt.Errorf("theme '%s' not found", name)
	}
	globalManager.currentName = name
	return nil
}

func CurrentTheme() Theme {
	globalManager.mu.RLock()
	defer globalManager.mu.RUnlock()

	if globalManager.currentName == "" {
		return nil
	}
	return globalManager.themes[globalManager.currentName]
}

func CurrentThemeName() string {
	globalManager.mu.RLock()
	defer globalManager.mu.RUnlock()

	return globalManager.currentName
}

// AvailableThemes returns the registered theme names, default first.
func AvailableThemes() []string {
	globalManager.mu.RLock()
	defer globalManager.mu.RUnlock()

	names := make([]string, 0, len(globalManager.themes))
	for name := range globalManager.themes {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b string) int {
		if a == DefaultTheme {
			return -1
		} else if b == DefaultTheme {
			return 1
		}
		return strings.Compare(a, b)
	})
	return names
}

// NextTheme activates the theme after the current one and returns its name.
func NextTheme() string {
	names := AvailableThemes()
	current := CurrentThemeName()
	next := names[0]
	for i, name := range names {
		if name == current {
			next = names[(i+1)%len(names)]
			break
		}
	}
	_ = SetTheme(next)
	return next
}

// LoadCustomTheme builds a theme from the default one with the colors in
// customTheme overridden. Keys are case-insensitive color names; values are
// a hex string or a {"light": ..., "dark": ...} map.
func LoadCustomTheme(customTheme map[string]any) (Theme, error) {
	theme := NewCatppuccinTheme()
	theme.ThemeName = "custom"

	for key, value := range customTheme {
		adaptiveColor, err := ParseAdaptiveColor(value)
		if err != nil {
			slog.Warn("Invalid color definition in custom theme", "key", key, "error", err)
			continue
		}

		switch strings.ToLower(key) {
		case "primary":
			theme.PrimaryColor = adaptiveColor
		case "secondary":
			theme.SecondaryColor = adaptiveColor
		case "accent":
			theme.AccentColor = adaptiveColor
		case "error":
			theme.ErrorColor = adaptiveColor
		case "warning":
			theme.WarningColor = adaptiveColor
		case "success":
			theme.SuccessColor = adaptiveColor
		case "info":
			theme.InfoColor = adaptiveColor
		case "text":
			theme.TextColor = adaptiveColor
		case "textmuted":
			theme.TextMutedColor = adaptiveColor
		case "background":
			theme.BackgroundColor = adaptiveColor
		case "backgroundpanel":
			theme.BackgroundPanelColor = adaptiveColor
		case "backgroundelement":
			theme.BackgroundElementColor = adaptiveColor
		case "border":
			theme.BorderColor = adaptiveColor
		case "borderactive":
			theme.BorderActiveColor = adaptiveColor
		case "bordersubtle":
			theme.BorderSubtleColor = adaptiveColor
		default:
			slog.Warn("Unknown color key in custom theme", "key", key)
		}
	}

	return theme, nil
}

// ParseAdaptiveColor accepts "#rrggbb" (used for both variants) or a map
// with "light" and "dark" hex strings.
func ParseAdaptiveColor(value any) (lipgloss.AdaptiveColor, error) {
	switch v := value.(type) {
	case string:
		hex, err := normalizeHex(v)
		if err != nil {
			return lipgloss.AdaptiveColor{}, err
		}
		return lipgloss.AdaptiveColor{Light: hex, Dark: hex}, nil
	case map[string]any:
		light, lok := v["light"].(string)
		dark, dok := v["dark"].(string)
		if !lok || !dok {
			return lipgloss.AdaptiveColor{}, fmt.Errorf("color map must contain string 'light' and 'dark' keys")
		}
		l, err := normalizeHex(light)
		if err != nil {
			return lipgloss.AdaptiveColor{}, fmt.Errorf("light: %w", err)
		}
		d, err := normalizeHex(dark)
		if err != nil {
			return lipgloss.AdaptiveColor{}, fmt.Errorf("dark: %w", err)
		}
		return lipgloss.AdaptiveColor{Light: l, Dark: d}, nil
	default:
		return lipgloss.AdaptiveColor{}, fmt.Errorf("color must be a hex string or a light/dark map, got %T", value)
	}
}

func normalizeHex(s string) (string, error) {
	c, err := colorful.Hex(strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return c.Hex(), nil
}

// Blend mixes a toward b by t in [0, 1] in Lab space, per variant. Widgets
// use it for disabled and hover shades.
func Blend(a, b lipgloss.AdaptiveColor, t float64) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{
		Light: blendHex(a.Light, b.Light, t),
		Dark:  blendHex(a.Dark, b.Dark, t),
	}
}

func blendHex(a, b string, t float64) string {
	ca, err := colorful.Hex(a)
	if err != nil {
		return a
	}
	cb, err := colorful.Hex(b)
	if err != nil {
		return a
	}
	return ca.BlendLab(cb, t).Clamped().Hex()
}
