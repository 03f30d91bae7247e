package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sst/widgetlink/internal/app"
	"github.com/sst/widgetlink/internal/config"
	"github.com/sst/widgetlink/internal/link"
	"github.com/sst/widgetlink/internal/tui/page"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T, cfg *config.Config) (appModel, *app.App) {
	t.Helper()
	a := app.New(cfg, nil)
	t.Cleanup(a.Shutdown)
	m := *New(a).(*appModel)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(appModel), a
}

func send(t *testing.T, m appModel, msg tea.Msg) (appModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(appModel), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNavigation(t *testing.T) {
	m, _ := newTestModel(t, &config.Config{})
	assert.Equal(t, page.GalleryPage, m.currentPage)

	m, cmd := send(t, m, runes("l"))
	require.NotNil(t, cmd)
	assert.Equal(t, page.PageChangeMsg{ID: page.LinkingPage}, cmd())

	m, _ = send(t, m, page.PageChangeMsg{ID: page.LinkingPage})
	assert.Equal(t, page.LinkingPage, m.currentPage)
	assert.Equal(t, page.GalleryPage, m.previousPage)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.Equal(t, page.LogsPage, m.currentPage)

	m, _ = send(t, m, page.BackMsg{})
	assert.Equal(t, page.LinkingPage, m.currentPage)
}

func TestShowDetail(t *testing.T) {
	m, a := newTestModel(t, &config.Config{})
	before := a.Registry.Len()

	m, _ = send(t, m, page.ShowDetailMsg{Name: "FormBuilder"})
	assert.Equal(t, page.DetailPage, m.currentPage)
	assert.Contains(t, m.View(), "FormBuilder")
	// form, button and chips form
	assert.Equal(t, before+3, a.Registry.Len())

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, page.PageChangeMsg{ID: page.GalleryPage}, cmd())
	assert.Equal(t, before, a.Registry.Len())
}

func TestLinksChanged(t *testing.T) {
	m, a := newTestModel(t, &config.Config{
		Links: config.LinksConfig{FormID: "form-a", ButtonID: "button-a"},
	})
	assert.Equal(t, 1, a.Registry.SubscriberCount("form-a"))

	a.Registry.Publish("form-b", link.FormState{HasContent: true, Value: "x"})
	send(t, m, page.LinksChangedMsg{LinkedFormID: "form-b"})

	assert.Equal(t, 0, a.Registry.SubscriberCount("form-a"))
	assert.Equal(t, 1, a.Registry.SubscriberCount("form-b"))
	rec, ok := a.Registry.Get("button-a")
	require.True(t, ok)
	assert.Equal(t, link.ButtonState{LinkedFormID: "form-b"}, rec.Payload)
}

func TestEvict(t *testing.T) {
	m, a := newTestModel(t, &config.Config{
		Registry: config.RegistryConfig{EvictAfter: time.Nanosecond},
	})
	a.Registry.Publish("orphan", link.FormState{})
	time.Sleep(time.Millisecond)

	_, cmd := send(t, m, evictMsg{})

	assert.NotNil(t, cmd)
	_, ok := a.Registry.Get("orphan")
	assert.False(t, ok)
	// records of mounted widgets survive
	_, ok = a.Registry.Get("my-form-123")
	assert.True(t, ok)
	_, ok = a.Registry.Get("my-button-456")
	assert.True(t, ok)
}

func TestEvictDisabled(t *testing.T) {
	m, _ := newTestModel(t, &config.Config{})
	assert.Nil(t, m.evictCmd())
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t, &config.Config{})

	_, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}
