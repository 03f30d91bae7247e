package catalog

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

const DefaultStyle = "catppuccin-mocha"

var snippets = map[string]string{
	"FormBuilder": `reg := link.New()

form := widget.NewForm(reg, widget.FormOptions{
	ID:          "my-form-123",
	Label:       "Project name",
	FieldType:   widget.FieldText,
	Placeholder: "Type something...",
	Required:    true,
})

// Every keystroke publishes a FormState under "my-form-123".
model, cmd := form.Update(msg)
`,
	"Button": `reg := link.New()

button := widget.NewButton(reg, widget.ButtonOptions{
	ID:           "my-button-456",
	Label:        "Submit",
	Variant:      widget.VariantPrimary,
	Size:         widget.SizeMedium,
	LinkedFormID: "my-form-123",
})

// The button stays disabled until the linked form has content.
defer button.Close()
`,
	"Card": `card := widget.NewCard(widget.CardOptions{
	Title:         "Component Link Registry",
	Body:          "Widgets publish state by id and react to each other.",
	ImagePosition: widget.ImageLeft,
	Actions:       []string{"Open", "Share"},
	Elevation:     2,
})
`,
}

// Snippet returns the Go usage example for the named component.
func Snippet(name string) (string, bool) {
	c, ok := Lookup(name)
	if !ok {
		return "", false
	}
	s, ok := snippets[c.Name]
	return s, ok
}

// Highlight writes code as ANSI-highlighted Go using the named chroma style,
// falling back to DefaultStyle when the style is unknown.
func Highlight(w io.Writer, code, style string) error {
	l := lexers.Get("go")
	if l == nil {
		l = lexers.Fallback
	}
	l = chroma.Coalesce(l)

	f := formatters.Get("terminal256")
	if f == nil {
		f = formatters.Fallback
	}

	s := styles.Get(style)
	if s == nil || s == styles.Fallback {
		s = styles.Get(DefaultStyle)
	}

	it, err := l.Tokenise(nil, code)
	if err != nil {
		return fmt.Errorf("tokenise: %w", err)
	}
	return f.Format(w, s, it)
}

// ShareText is what gets copied for a component: its URL when published,
// otherwise setup instructions around the usage snippet.
func ShareText(name string) (string, error) {
	c, ok := Lookup(name)
	if !ok {
		return "", fmt.Errorf("unknown component %q", name)
	}
	if c.Published() {
		return c.URL, nil
	}

	code, _ := Snippet(c.Name)
	var b strings.Builder
	fmt.Fprintf(&b, "%s component\n\n", c.Name)
	b.WriteString("Instructions:\n")
	b.WriteString("1. Import github.com/sst/widgetlink/internal/link and the widget package\n")
	b.WriteString("2. Create one registry at your application root\n")
	b.WriteString("3. Paste the code below and adjust the ids\n\n")
	b.WriteString("Code:\n")
	b.WriteString(code)
	b.WriteString("\nURL: ")
	if c.URL != "" {
		b.WriteString(c.URL + " (not yet published)")
	} else {
		b.WriteString("not yet published")
	}
	b.WriteString("\n")
	return b.String(), nil
}

// Overview describes a component as markdown for the detail page.
func (c Component) Overview() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", c.Name)
	fmt.Fprintf(&b, "*%s · %s*\n\n", c.Category, c.Complexity)
	fmt.Fprintf(&b, "%s\n\n", c.Description)
	if len(c.Features) > 0 {
		b.WriteString("## Features\n\n")
		for _, f := range c.Features {
			fmt.Fprintf(&b, "- %s\n", f)
		}
		b.WriteString("\n")
	}
	if len(c.Tags) > 0 {
		tags := make([]string, len(c.Tags))
		for i, t := range c.Tags {
			tags[i] = "`" + t + "`"
		}
		fmt.Fprintf(&b, "Tags: %s\n\n", strings.Join(tags, " "))
	}
	if c.Published() {
		fmt.Fprintf(&b, "[%s](%s)\n", c.URL, c.URL)
	} else {
		b.WriteString("> Not yet published. Copy the share text for setup instructions.\n")
	}
	return b.String()
}
