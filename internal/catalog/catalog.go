// Package catalog describes the widgets shown in the gallery and produces the
// text users search, read and copy.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

type Complexity string

const (
	Simple  Complexity = "simple"
	Medium  Complexity = "medium"
	Complex Complexity = "complex"
)

// placeholderMarker marks URLs that were never replaced with a published one.
const placeholderMarker = "your-project"

type Component struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Tags        []string   `json:"tags"`
	Features    []string   `json:"features"`
	Category    string     `json:"category"`
	Complexity  Complexity `json:"complexity"`
	URL         string     `json:"url,omitempty"`
}

// Published reports whether the component has a real published URL.
func (c Component) Published() bool {
	return c.URL != "" && !strings.Contains(c.URL, placeholderMarker)
}

var components = []Component{
	{
		Name:        "FormBuilder",
		Description: "A comprehensive form component with multiple input types, chip suggestions, and extensive customization options.",
		Tags:        []string{"form", "input", "validation", "chips", "customizable"},
		Features: []string{
			"Multiple input types (text, textarea, dropdown, radio, chips)",
			"Chip suggestions with selection/deselection",
			"Clear button functionality",
			"Publishes its state under a component id",
			"Button state override for linked buttons",
		},
		Category:   "Forms",
		Complexity: Complex,
		URL:        "https://framer.com/design/your-project/formbuilder",
	},
	{
		Name:        "Button",
		Description: "A versatile button component with multiple variants, sizes, and interactive states.",
		Tags:        []string{"button", "interactive", "variants", "loading", "link"},
		Features: []string{
			"Multiple variants (primary, secondary, outline, ghost, danger, custom)",
			"Three sizes (small, medium, large)",
			"Loading state with spinner",
			"Disabled state",
			"Full width option",
			"Links to a form by id and disables itself while the form is empty",
		},
		Category:   "Interactive",
		Complexity: Medium,
		URL:        "https://framer.com/design/your-project/button",
	},
	{
		Name:        "Card",
		Description: "A flexible card component perfect for displaying content with optional images and actions.",
		Tags:        []string{"card", "layout", "content", "image", "actions"},
		Features: []string{
			"Flexible content layout",
			"Image positioning (top, bottom, left, right)",
			"Action buttons",
			"Elevation",
			"Word wrapped body text",
		},
		Category:   "Layout",
		Complexity: Medium,
		URL:        "https://framer.com/design/your-project/card",
	},
}

// All returns every component in catalog order.
func All() []Component {
	out := make([]Component, len(components))
	copy(out, components)
	return out
}

// Lookup finds a component by name, ignoring case.
func Lookup(name string) (Component, bool) {
	for _, c := range components {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Component{}, false
}

// Names returns the component names in catalog order.
func Names() []string {
	names := make([]string, len(components))
	for i, c := range components {
		names[i] = c.Name
	}
	return names
}

// Search returns the components matching query. Fuzzy name matches come
// first, closest first, followed by components whose description or tags
// contain the query. An empty query returns everything.
func Search(query string) []Component {
	query = strings.TrimSpace(query)
	if query == "" {
		return All()
	}

	ranks := fuzzy.RankFindNormalizedFold(query, Names())
	sort.Stable(ranks)

	seen := make(map[int]bool)
	var out []Component
	for _, r := range ranks {
		seen[r.OriginalIndex] = true
		out = append(out, components[r.OriginalIndex])
	}

	q := strings.ToLower(query)
	for i, c := range components {
		if seen[i] {
			continue
		}
		if strings.Contains(strings.ToLower(c.Description), q) || hasTag(c, q) {
			out = append(out, c)
		}
	}
	return out
}

func hasTag(c Component, q string) bool {
	for _, tag := range c.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// Match filters components by a doublestar glob over their lowercased
// "category/name" path, so both "form*" and "forms/**" work.
func Match(pattern string) ([]Component, error) {
	pattern = strings.ToLower(pattern)
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}

	var out []Component
	for _, c := range components {
		name := strings.ToLower(c.Name)
		path := strings.ToLower(c.Category) + "/" + name
		byName, _ := doublestar.Match(pattern, name)
		byPath, _ := doublestar.Match(pattern, path)
		if byName || byPath {
			out = append(out, c)
		}
	}
	return out, nil
}
