package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// OutputFormat selects how non-interactive commands print their results.
type OutputFormat string

const (
	TextFormat OutputFormat = "text"
	JSONFormat OutputFormat = "json"
)

func (f OutputFormat) IsValid() bool {
	return f == TextFormat || f == JSONFormat
}

func (f OutputFormat) String() string {
	return string(f)
}

// Parse accepts a format name case-insensitively. An empty name means text.
func Parse(name string) (OutputFormat, error) {
	if name == "" {
		return TextFormat, nil
	}
	f := OutputFormat(strings.ToLower(strings.TrimSpace(name)))
	if !f.IsValid() {
		return "", fmt.Errorf("unsupported output format: %s", name)
	}
	return f, nil
}

// Write prints text for TextFormat and value as indented JSON for
// JSONFormat.
func Write(w io.Writer, f OutputFormat, text string, value any) error {
	switch f {
	case TextFormat:
		if text != "" && !strings.HasSuffix(text, "\n") {
			text += "\n"
		}
		_, err := io.WriteString(w, text)
		return err
	case JSONFormat:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(value); err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", f)
	}
}
