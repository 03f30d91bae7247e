package widget

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sst/widgetlink/internal/link"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeText(m tea.Model, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func press(m tea.Model, k tea.KeyType) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: k})
	return cmd
}

func TestNewComponentID(t *testing.T) {
	t.Parallel()
	a, b := NewComponentID("form"), NewComponentID("form")

	assert.True(t, strings.HasPrefix(a, "form-"))
	assert.NotEqual(t, a, b)
}

func TestParseFieldType(t *testing.T) {
	t.Parallel()
	assert.Equal(t, FieldChips, ParseFieldType("Chips"))
	assert.Equal(t, FieldRadio, ParseFieldType("radio"))
	assert.Equal(t, FieldText, ParseFieldType("slider"))
	assert.Equal(t, FieldText, ParseFieldType(""))
}

func TestFormPublishes(t *testing.T) {
	t.Parallel()

	t.Run("initial state is published on construction", func(t *testing.T) {
		t.Parallel()
		reg := link.New()
		f := NewForm(reg, FormOptions{ID: "form-a", Label: "Name"})

		rec, ok := reg.Get("form-a")
		require.True(t, ok)
		assert.Equal(t, link.KindForm, rec.Kind)
		state := rec.Payload.(link.FormState)
		assert.False(t, state.HasContent)
		assert.Equal(t, "Name", state.Label)
		assert.Equal(t, "text", state.FieldType)
		assert.Equal(t, "form-a", f.ID())
	})

	t.Run("generated id", func(t *testing.T) {
		t.Parallel()
		reg := link.New()
		f := NewForm(reg, FormOptions{})

		assert.True(t, strings.HasPrefix(f.ID(), "form-"))
		_, ok := reg.Get(f.ID())
		assert.True(t, ok)
	})

	t.Run("typing publishes content", func(t *testing.T) {
		t.Parallel()
		reg := link.New()
		f := NewForm(reg, FormOptions{ID: "form-a"})
		f.Focus()

		typeText(f, "hi")

		rec, _ := reg.Get("form-a")
		state := rec.Payload.(link.FormState)
		assert.True(t, state.HasContent)
		assert.Equal(t, "hi", state.Value)
		assert.Equal(t, "hi", f.Value())
	})

	t.Run("keys are ignored while blurred", func(t *testing.T) {
		t.Parallel()
		reg := link.New()
		f := NewForm(reg, FormOptions{ID: "form-a"})

		typeText(f, "hi")

		assert.Equal(t, "", f.Value())
		assert.False(t, f.IsFocused())
	})

	t.Run("whitespace is not content", func(t *testing.T) {
		t.Parallel()
		reg := link.New()
		f := NewForm(reg, FormOptions{ID: "form-a", FieldType: FieldTextarea})

		f.SetValue("   ")

		assert.False(t, f.State().HasContent)
	})

	t.Run("clear key empties the field", func(t *testing.T) {
		t.Parallel()
		reg := link.New()
		f := NewForm(reg, FormOptions{ID: "form-a"})
		f.Focus()
		f.SetValue("hello")

		press(f, tea.KeyCtrlX)

		rec, _ := reg.Get("form-a")
		assert.False(t, rec.Payload.(link.FormState).HasContent)
	})

	t.Run("set id moves the record", func(t *testing.T) {
		t.Parallel()
		reg := link.New()
		f := NewForm(reg, FormOptions{ID: "form-a"})
		f.SetValue("x")

		f.SetID("form-b")

		_, ok := reg.Get("form-a")
		assert.False(t, ok)
		rec, ok := reg.Get("form-b")
		require.True(t, ok)
		assert.Equal(t, "x", rec.Payload.(link.FormState).Value)
	})

	t.Run("close removes the record", func(t *testing.T) {
		t.Parallel()
		reg := link.New()
		f := NewForm(reg, FormOptions{ID: "form-a"})

		f.Close()

		assert.Equal(t, 0, reg.Len())
	})
}

func TestFormChoiceFields(t *testing.T) {
	t.Parallel()

	t.Run("radio selects with enter", func(t *testing.T) {
		t.Parallel()
		reg := link.New()
		f := NewForm(reg, FormOptions{ID: "form-a", FieldType: FieldRadio, Options: []string{"a", "b", "c"}})
		f.Focus()

		press(f, tea.KeyDown)
		press(f, tea.KeyEnter)

		assert.Equal(t, "b", f.Value())
		assert.True(t, f.State().HasContent)
	})

	t.Run("dropdown opens then selects", func(t *testing.T) {
		t.Parallel()
		reg := link.New()
		f := NewForm(reg, FormOptions{ID: "form-a", FieldType: FieldDropdown, Options: []string{"a", "b"}})
		f.Focus()

		press(f, tea.KeyEnter)
		assert.Equal(t, "", f.Value())
		assert.Contains(t, f.View(), "b")

		press(f, tea.KeyUp)
		press(f, tea.KeyEnter)
		assert.Equal(t, "b", f.Value())
	})

	t.Run("out of range select clears", func(t *testing.T) {
		t.Parallel()
		f := NewForm(link.New(), FormOptions{FieldType: FieldRadio, Options: []string{"a"}})

		f.Select(0)
		f.Select(5)

		assert.Equal(t, "", f.Value())
	})

	t.Run("chips toggle", func(t *testing.T) {
		t.Parallel()
		reg := link.New()
		f := NewForm(reg, FormOptions{
			ID:              "form-a",
			FieldType:       FieldChips,
			Options:         []string{"go", "rust"},
			ShowSuggestions: true,
		})
		f.Focus()

		press(f, tea.KeyRight)
		press(f, tea.KeyEnter)
		assert.Equal(t, []string{"rust"}, f.SelectedChips())

		rec, _ := reg.Get("form-a")
		state := rec.Payload.(link.FormState)
		assert.True(t, state.HasContent)
		assert.Equal(t, []string{"rust"}, state.SelectedChips)

		f.ToggleChip("rust")
		assert.Empty(t, f.SelectedChips())
		assert.False(t, f.State().HasContent)
	})

	t.Run("chips need suggestions open", func(t *testing.T) {
		t.Parallel()
		f := NewForm(link.New(), FormOptions{FieldType: FieldChips, Options: []string{"go"}})
		f.Focus()

		press(f, tea.KeyEnter)
		assert.Empty(t, f.SelectedChips())

		press(f, tea.KeyCtrlS)
		press(f, tea.KeyEnter)
		assert.Equal(t, []string{"go"}, f.SelectedChips())
	})
}

func TestButtonLink(t *testing.T) {
	t.Parallel()

	t.Run("linked empty form disables the button", func(t *testing.T) {
		t.Parallel()
		reg := link.New()
		f := NewForm(reg, FormOptions{ID: "form-a"})
		b := NewButton(reg, ButtonOptions{ID: "button-a", LinkedFormID: "form-a"})

		assert.Equal(t, link.Bound, b.Binding())
		assert.True(t, b.IsDisabled())

		f.SetValue("hello")
		assert.False(t, b.IsDisabled())

		f.Clear()
		assert.True(t, b.IsDisabled())
	})

	t.Run("unpublished form leaves the button enabled", func(t *testing.T) {
		t.Parallel()
		reg := link.New()
		b := NewButton(reg, ButtonOptions{LinkedFormID: "form-missing"})

		assert.False(t, b.IsDisabled())
		_, ok := b.LinkedState()
		assert.False(t, ok)
	})

	t.Run("form override wins", func(t *testing.T) {
		t.Parallel()
		reg := link.New()
		f := NewForm(reg, FormOptions{ID: "form-a", ButtonState: link.ButtonStateEnabled})
		b := NewButton(reg, ButtonOptions{LinkedFormID: "form-a"})

		assert.False(t, b.IsDisabled())

		f.SetValue("hi")
		f.SetButtonState(link.ButtonStateDisabled)
		assert.True(t, b.IsDisabled())
	})

	t.Run("own and external flags still apply", func(t *testing.T) {
		t.Parallel()
		reg := link.New()
		f := NewForm(reg, FormOptions{ID: "form-a"})
		f.SetValue("hi")
		b := NewButton(reg, ButtonOptions{LinkedFormID: "form-a", Disabled: true})

		assert.True(t, b.IsDisabled())
		b.SetDisabled(false)
		assert.False(t, b.IsDisabled())
		b.SetExternalDisabled(true)
		assert.True(t, b.IsDisabled())
	})

	t.Run("relinking resets the link flag", func(t *testing.T) {
		t.Parallel()
		reg := link.New()
		NewForm(reg, FormOptions{ID: "form-a"})
		full := NewForm(reg, FormOptions{ID: "form-b"})
		full.SetValue("content")
		b := NewButton(reg, ButtonOptions{LinkedFormID: "form-a"})
		require.True(t, b.IsDisabled())

		b.SetLinkedFormID("form-b")
		assert.False(t, b.IsDisabled())
		assert.Equal(t, 0, reg.SubscriberCount("form-a"))
		assert.Equal(t, 1, reg.SubscriberCount("form-b"))

		b.SetLinkedFormID("form-unknown")
		assert.False(t, b.IsDisabled())

		b.SetLinkedFormID("")
		assert.Equal(t, link.Unbound, b.Binding())
	})

	t.Run("button publishes its own state", func(t *testing.T) {
		t.Parallel()
		reg := link.New()
		f := NewForm(reg, FormOptions{ID: "form-a"})
		NewButton(reg, ButtonOptions{ID: "button-a", LinkedFormID: "form-a"})

		rec, ok := reg.Get("button-a")
		require.True(t, ok)
		assert.Equal(t, link.ButtonState{Disabled: true, LinkedFormID: "form-a"}, rec.Payload)

		f.SetValue("x")
		rec, _ = reg.Get("button-a")
		assert.False(t, rec.Payload.(link.ButtonState).Disabled)
	})

	t.Run("close releases the binding", func(t *testing.T) {
		t.Parallel()
		reg := link.New()
		NewForm(reg, FormOptions{ID: "form-a"})
		b := NewButton(reg, ButtonOptions{ID: "button-a", LinkedFormID: "form-a"})

		b.Close()

		assert.Equal(t, 0, reg.SubscriberCount("form-a"))
		_, ok := reg.Get("button-a")
		assert.False(t, ok)
	})
}

func TestButtonPress(t *testing.T) {
	t.Parallel()

	t.Run("enabled focused button emits a press", func(t *testing.T) {
		t.Parallel()
		b := NewButton(link.New(), ButtonOptions{ID: "button-a"})
		b.Focus()

		cmd := press(b, tea.KeyEnter)
		require.NotNil(t, cmd)
		assert.Equal(t, ButtonPressedMsg{ID: "button-a"}, cmd())
	})

	t.Run("disabled button swallows the press", func(t *testing.T) {
		t.Parallel()
		reg := link.New()
		NewForm(reg, FormOptions{ID: "form-a"})
		b := NewButton(reg, ButtonOptions{LinkedFormID: "form-a"})
		b.Focus()

		assert.Nil(t, press(b, tea.KeyEnter))
	})

	t.Run("loading button swallows the press", func(t *testing.T) {
		t.Parallel()
		b := NewButton(link.New(), ButtonOptions{})
		b.Focus()

		assert.NotNil(t, b.SetLoading(true))
		assert.Nil(t, press(b, tea.KeySpace))
		assert.Nil(t, b.SetLoading(false))
	})

	t.Run("unfocused button ignores keys", func(t *testing.T) {
		t.Parallel()
		b := NewButton(link.New(), ButtonOptions{})

		assert.Nil(t, press(b, tea.KeyEnter))
	})

	t.Run("view renders the label", func(t *testing.T) {
		t.Parallel()
		b := NewButton(link.New(), ButtonOptions{Label: "Send", Variant: VariantOutline})

		assert.Contains(t, b.View(), "Send")
	})
}

func TestCard(t *testing.T) {
	t.Parallel()

	t.Run("actions cycle and fire", func(t *testing.T) {
		t.Parallel()
		c := NewCard(CardOptions{ID: "card-a", Title: "Hello", Actions: []string{"Share", "Open"}})
		c.Focus()

		press(c, tea.KeyLeft)
		assert.Equal(t, 0, c.Cursor())
		press(c, tea.KeyRight)
		press(c, tea.KeyRight)
		assert.Equal(t, 1, c.Cursor())

		cmd := press(c, tea.KeyEnter)
		require.NotNil(t, cmd)
		assert.Equal(t, CardActionMsg{CardID: "card-a", Action: "Open"}, cmd())
	})

	t.Run("no actions means no command", func(t *testing.T) {
		t.Parallel()
		c := NewCard(CardOptions{Title: "Hello"})
		c.Focus()

		assert.Nil(t, press(c, tea.KeyEnter))
	})

	t.Run("view wraps the body", func(t *testing.T) {
		t.Parallel()
		c := NewCard(CardOptions{
			Title:         "Title",
			Body:          "one two three four five six seven eight nine ten",
			Image:         "img",
			ImagePosition: ImageLeft,
			Width:         30,
			Elevation:     9,
		})

		view := c.View()
		assert.Contains(t, view, "Title")
		assert.Contains(t, view, "img")
		assert.Greater(t, strings.Count(view, "\n"), 3)
	})

	t.Run("image file becomes a thumbnail", func(t *testing.T) {
		t.Parallel()
		img := image.NewRGBA(image.Rect(0, 0, 8, 8))
		path := filepath.Join(t.TempDir(), "cover.png")
		f, err := os.Create(path)
		require.NoError(t, err)
		require.NoError(t, png.Encode(f, img))
		require.NoError(t, f.Close())

		c := NewCard(CardOptions{Title: "Cover", Image: path, Width: 30})
		view := c.View()
		assert.Contains(t, view, "▀")
		assert.NotContains(t, view, "cover.png")
		require.NoError(t, c.thumbErr)
	})

	t.Run("unreadable image falls back to text", func(t *testing.T) {
		t.Parallel()
		c := NewCard(CardOptions{Title: "Cover", Image: "missing.png", Width: 30})

		assert.Contains(t, c.View(), "missing.png")
		assert.Error(t, c.thumbErr)
	})
}
