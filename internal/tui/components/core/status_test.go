package core

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sst/widgetlink/internal/link"
	"github.com/sst/widgetlink/internal/pubsub"
	"github.com/sst/widgetlink/internal/status"
	"github.com/stretchr/testify/assert"
)

func TestStatusCmp(t *testing.T) {
	reg := link.New()
	reg.Publish("form-a", link.FormState{})
	cmp := NewStatusCmp(reg)
	cmp.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Contains(t, cmp.View(), "1 linked")

	now := time.Now()
	cmp.Update(pubsub.Event[status.StatusMessage]{
		Type: pubsub.EventTypeCreated,
		Payload: status.StatusMessage{
			Level:     status.LevelWarn,
			Message:   "no producer for form-x",
			Timestamp: now,
			TTL:       time.Second,
		},
	})
	assert.Contains(t, cmp.View(), "no producer for form-x")

	cmp.Update(statusCleanupMsg{time: now.Add(2 * time.Second)})
	assert.NotContains(t, cmp.View(), "no producer for form-x")

	cmp.SetHelpWidgetMsg("ctrl+c quit")
	assert.Contains(t, cmp.View(), "ctrl+c quit")
}
