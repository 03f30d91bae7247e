package styles

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/sst/widgetlink/internal/tui/theme"
)

const defaultMargin = 1

func boolPtr(b bool) *bool       { return &b }
func stringPtr(s string) *string { return &s }
func uintPtr(u uint) *uint       { return &u }

// AdaptiveColorToString picks the side of c matching the terminal background.
func AdaptiveColorToString(c lipgloss.AdaptiveColor) *string {
	if lipgloss.HasDarkBackground() {
		return stringPtr(c.Dark)
	}
	return stringPtr(c.Light)
}

// GetMarkdownRenderer returns a glamour renderer styled from the current
// theme, wrapping at width.
func GetMarkdownRenderer(width int) (*glamour.TermRenderer, error) {
	return glamour.NewTermRenderer(
		glamour.WithStyles(markdownStyleConfig()),
		glamour.WithWordWrap(width),
	)
}

// RenderMarkdown renders md at width. Lines glamour cannot wrap, such as long
// URLs, are cut at width. On error the source is returned unchanged.
func RenderMarkdown(md string, width int) string {
	r, err := GetMarkdownRenderer(width)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	lines := strings.Split(strings.Trim(out, "\n"), "\n")
	for i, line := range lines {
		if xansi.StringWidth(line) > width {
			lines[i] = xansi.Truncate(line, width, "…")
		}
	}
	return strings.Join(lines, "\n")
}

func markdownStyleConfig() ansi.StyleConfig {
	t := theme.CurrentTheme()
	text := AdaptiveColorToString(t.Text())
	heading := AdaptiveColorToString(t.Primary())

	return ansi.StyleConfig{
		Document: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{Color: text},
		},
		BlockQuote: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				Color:  AdaptiveColorToString(t.TextMuted()),
				Italic: boolPtr(true),
				Prefix: "┃ ",
			},
			Indent:      uintPtr(1),
			IndentToken: stringPtr(" "),
		},
		Paragraph: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{Color: text},
		},
		List: ansi.StyleList{
			LevelIndent: defaultMargin,
			StyleBlock: ansi.StyleBlock{
				IndentToken:    stringPtr(" "),
				StylePrimitive: ansi.StylePrimitive{Color: text},
			},
		},
		Heading: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				BlockSuffix: "\n",
				Color:       heading,
				Bold:        boolPtr(true),
			},
		},
		H1: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				Color: heading,
				Bold:  boolPtr(true),
			},
		},
		H2: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				Prefix: "▎ ",
				Color:  AdaptiveColorToString(t.Secondary()),
				Bold:   boolPtr(true),
			},
		},
		Emph: ansi.StylePrimitive{
			Color:  AdaptiveColorToString(t.TextMuted()),
			Italic: boolPtr(true),
		},
		Strong: ansi.StylePrimitive{
			Bold: boolPtr(true),
		},
		Item: ansi.StylePrimitive{
			BlockPrefix: "• ",
			Color:       AdaptiveColorToString(t.Success()),
		},
		Code: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				Color:           AdaptiveColorToString(t.Accent()),
				BackgroundColor: AdaptiveColorToString(t.BackgroundElement()),
				Prefix:          " ",
				Suffix:          " ",
			},
		},
		Link: ansi.StylePrimitive{
			Color:     AdaptiveColorToString(t.Info()),
			Underline: boolPtr(true),
		},
		LinkText: ansi.StylePrimitive{
			Color: AdaptiveColorToString(t.Info()),
			Bold:  boolPtr(true),
		},
	}
}
