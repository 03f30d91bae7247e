package spinner

import (
	"bytes"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestSpinner(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	s := newSpinner("Linking widgets", lipgloss.NewStyle(), &out)
	s.Start()
	time.Sleep(100 * time.Millisecond)

	assert.NotPanics(t, s.Stop)
}

func TestSpinnerModel(t *testing.T) {
	t.Parallel()

	m := spinnerModel{message: "Linking widgets"}
	assert.Contains(t, m.View(), "Linking widgets")

	next, cmd := m.Update(quitMsg{})
	assert.NotNil(t, cmd)
	assert.Equal(t, "", next.View())
}
