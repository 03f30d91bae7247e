package page

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sst/widgetlink/internal/app"
	"github.com/sst/widgetlink/internal/config"
	"github.com/sst/widgetlink/internal/link"
	"github.com/sst/widgetlink/internal/tui/components/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *app.App {
	t.Helper()
	a := app.New(&config.Config{}, nil)
	t.Cleanup(a.Shutdown)
	return a
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestGallerySearch(t *testing.T) {
	p := NewGalleryPage().(*galleryPage)
	p.SetSize(80, 30)
	assert.Len(t, p.results, 3)

	p.Update(keyRunes("/"))
	require.True(t, p.search.Focused())
	for _, r := range "card" {
		p.Update(keyRunes(string(r)))
	}
	c, ok := p.Selected()
	require.True(t, ok)
	assert.Equal(t, "Card", c.Name)

	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, ShowDetailMsg{Name: "Card"}, cmd())
	assert.False(t, p.search.Focused())

	p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Len(t, p.results, 3)
}

func TestGalleryNoResults(t *testing.T) {
	p := NewGalleryPage().(*galleryPage)
	p.setQuery("zzzzqqq")

	assert.Empty(t, p.results)
	assert.Equal(t, 0, p.cursor)
	assert.Nil(t, p.open())
	assert.Contains(t, p.View(), "No components match")
}

func TestGalleryCursor(t *testing.T) {
	p := NewGalleryPage().(*galleryPage)

	p.Update(keyRunes("j"))
	p.Update(keyRunes("j"))
	p.Update(keyRunes("j"))
	assert.Equal(t, 2, p.cursor)

	p.Update(keyRunes("k"))
	assert.Equal(t, 1, p.cursor)
}

func TestLinkingTyping(t *testing.T) {
	a := newTestApp(t)
	p := NewLinkingPage(a).(*linkingPage)
	p.Init()

	assert.True(t, p.button.IsDisabled())
	assert.Contains(t, p.debugView(), "Button Enabled: No")

	p.Update(keyRunes("a@b.c"))
	assert.Equal(t, "a@b.c", p.form.Value())
	assert.False(t, p.button.IsDisabled())
	assert.Contains(t, p.debugView(), "producer found")

	p.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.True(t, p.button.IsFocused())
	p.Update(widget.ButtonPressedMsg{ID: p.button.ID()})
	assert.Equal(t, "", p.form.Value())
	assert.True(t, p.button.IsDisabled())
}

func TestLinkingRelink(t *testing.T) {
	a := newTestApp(t)
	p := NewLinkingPage(a).(*linkingPage)

	p.Update(LinksChangedMsg{LinkedFormID: "elsewhere"})
	assert.Equal(t, "elsewhere", p.button.LinkedFormID())
	assert.False(t, p.button.IsDisabled())
	assert.Contains(t, p.debugView(), "no producer")

	a.Registry.Publish("elsewhere", link.FormState{})
	assert.True(t, p.button.IsDisabled())

	p.Relink("elsewhere", "")
	assert.Equal(t, "elsewhere", p.form.ID())
	_, ok := a.Registry.Get("my-form-123")
	assert.False(t, ok)
}

func TestLinkingLayout(t *testing.T) {
	a := newTestApp(t)
	p := NewLinkingPage(a).(*linkingPage)
	p.SetSize(100, 30)

	assert.Contains(t, p.View(), "side-by-side")
	p.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.Contains(t, p.View(), "stacked")

	assert.True(t, p.showInstructions)
	p.Update(tea.KeyMsg{Type: tea.KeyCtrlO})
	assert.False(t, p.showInstructions)
}
