// Package widget holds the showcase widgets as bubbletea models. Forms and
// buttons never reference each other; they meet through a link.Registry.
package widget

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	zone "github.com/lrstanley/bubblezone"
)

// NewComponentID returns prefix followed by a short random suffix, used when
// a widget is created without an explicit id.
func NewComponentID(prefix string) string {
	return prefix + "-" + strings.SplitN(uuid.NewString(), "-", 2)[0]
}

// mark wraps v in a bubblezone marker when a zone manager is running.
func mark(id, v string) string {
	if zone.DefaultManager == nil {
		return v
	}
	return zone.Mark(id, v)
}

// zoneClicked reports whether msg is a left click released inside zone id.
func zoneClicked(id string, msg tea.MouseMsg) bool {
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return false
	}
	if zone.DefaultManager == nil {
		return false
	}
	return zone.Get(id).InBounds(msg)
}
