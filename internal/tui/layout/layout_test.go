package layout

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
)

func TestKeyMapToSlice(t *testing.T) {
	t.Parallel()

	km := struct {
		Open  key.Binding
		Close key.Binding
		count int
	}{
		Open:  key.NewBinding(key.WithKeys("enter")),
		Close: key.NewBinding(key.WithKeys("esc")),
	}

	got := KeyMapToSlice(km)
	assert.Len(t, got, 2)
	assert.Equal(t, []string{"enter"}, got[0].Keys())
	assert.Len(t, KeyMapToSlice(&km), 2)
	assert.Nil(t, KeyMapToSlice("nope"))
}
