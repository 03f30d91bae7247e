package page

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sst/widgetlink/internal/tui/layout"
)

type PageID string

// PageChangeMsg is used to change the current page.
type PageChangeMsg struct {
	ID PageID
}

// BackMsg returns to the previous page.
type BackMsg struct{}

// ShowDetailMsg opens the detail page for the named component.
type ShowDetailMsg struct {
	Name string
}

// LinksChangedMsg carries a new revision of the link file to the linking
// page.
type LinksChangedMsg struct {
	FormID       string
	LinkedFormID string
}

type Page interface {
	tea.Model
	layout.Sizeable
	layout.Bindings
}
