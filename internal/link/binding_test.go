package link

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinding(t *testing.T) {
	t.Parallel()

	t.Run("starts unbound", func(t *testing.T) {
		t.Parallel()
		b := NewBinding(New(), func(Payload) {})

		assert.Equal(t, Unbound, b.State())
		assert.Equal(t, "", b.ID())
		assert.NotPanics(t, b.Release)
	})

	t.Run("rebind moves the subscription", func(t *testing.T) {
		t.Parallel()
		reg := New()
		var got []Payload
		b := NewBinding(reg, func(p Payload) { got = append(got, p) })

		b.Bind("form-a")
		assert.Equal(t, Bound, b.State())
		assert.Equal(t, 1, reg.SubscriberCount("form-a"))

		b.Bind("form-b")
		assert.Equal(t, "form-b", b.ID())
		assert.Equal(t, 0, reg.SubscriberCount("form-a"))
		assert.Equal(t, 1, reg.SubscriberCount("form-b"))

		reg.Publish("form-a", FormState{Value: "old"})
		reg.Publish("form-b", FormState{Value: "new"})
		assert.Equal(t, []Payload{FormState{Value: "new"}}, got)
	})

	t.Run("same id is a no-op", func(t *testing.T) {
		t.Parallel()
		reg := New()
		reg.Publish("form-a", FormState{Value: "seed"})
		calls := 0
		b := NewBinding(reg, func(Payload) { calls++ })

		b.Bind("form-a")
		b.Bind("form-a")

		assert.Equal(t, 1, calls)
		assert.Equal(t, 1, reg.SubscriberCount("form-a"))
	})

	t.Run("bind replays the stored record", func(t *testing.T) {
		t.Parallel()
		reg := New()
		reg.Publish("form-a", FormState{HasContent: true, Value: "hi"})
		var got []Payload
		b := NewBinding(reg, func(p Payload) { got = append(got, p) })

		b.Bind("form-a")

		assert.Equal(t, []Payload{FormState{HasContent: true, Value: "hi"}}, got)
	})

	t.Run("empty id releases", func(t *testing.T) {
		t.Parallel()
		reg := New()
		b := NewBinding(reg, func(Payload) {})

		b.Bind("form-a")
		b.Bind("")

		assert.Equal(t, Unbound, b.State())
		assert.Equal(t, 0, reg.SubscriberCount("form-a"))
	})

	t.Run("release stops delivery", func(t *testing.T) {
		t.Parallel()
		reg := New()
		calls := 0
		b := NewBinding(reg, func(Payload) { calls++ })

		b.Bind("form-a")
		b.Release()
		b.Release()
		reg.Publish("form-a", FormState{})

		assert.Equal(t, 0, calls)
		assert.Equal(t, "unbound", b.State().String())
	})
}

func TestProducer(t *testing.T) {
	t.Parallel()

	t.Run("publishes only on change", func(t *testing.T) {
		t.Parallel()
		reg := New()
		r := &recorder{}
		reg.Subscribe("form-a", r)
		p := NewProducer(reg, "form-a")

		assert.True(t, p.Update(FormState{Value: "a"}))
		assert.False(t, p.Update(FormState{Value: "a"}))
		assert.True(t, p.Update(FormState{Value: "ab"}))
		assert.False(t, p.Update(nil))

		assert.Len(t, r.payloads(), 2)
		assert.Equal(t, FormState{Value: "ab"}, p.Last())
	})

	t.Run("without an id nothing is published", func(t *testing.T) {
		t.Parallel()
		reg := New()
		p := NewProducer(reg, "")

		assert.False(t, p.Update(FormState{Value: "a"}))
		assert.Equal(t, 0, reg.Len())

		p.SetID("form-a")
		rec, ok := reg.Get("form-a")
		assert.True(t, ok)
		assert.Equal(t, FormState{Value: "a"}, rec.Payload)
	})

	t.Run("set id moves the record", func(t *testing.T) {
		t.Parallel()
		reg := New()
		p := NewProducer(reg, "form-a")
		p.Update(FormState{Value: "a"})

		p.SetID("form-b")

		_, ok := reg.Get("form-a")
		assert.False(t, ok)
		rec, ok := reg.Get("form-b")
		assert.True(t, ok)
		assert.Equal(t, FormState{Value: "a"}, rec.Payload)
		assert.Equal(t, "form-b", p.ID())
	})

	t.Run("close removes the record", func(t *testing.T) {
		t.Parallel()
		reg := New()
		p := NewProducer(reg, "form-a")
		p.Update(FormState{Value: "a"})

		p.Close()

		assert.Equal(t, 0, reg.Len())
		assert.Nil(t, p.Last())
	})

	t.Run("live producer survives eviction", func(t *testing.T) {
		t.Parallel()
		clock := &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
		reg := New(WithClock(clock.Now))
		p := NewProducer(reg, "form-a")
		p.Update(FormState{Value: "a"})
		reg.Publish("orphan", FormState{})

		clock.Advance(time.Minute)
		assert.Equal(t, []string{"orphan"}, reg.Evict(30*time.Second))
		_, ok := reg.Get("form-a")
		assert.True(t, ok)

		p.SetID("form-b")
		reg.Publish("form-a", FormState{})
		clock.Advance(time.Minute)
		assert.Equal(t, []string{"form-a"}, reg.Evict(30*time.Second))

		p.Close()
		reg.Publish("form-b", FormState{})
		clock.Advance(time.Minute)
		assert.Equal(t, []string{"form-b"}, reg.Evict(30*time.Second))
	})
}

func TestRebindAfterEvictionReplaysLiveForm(t *testing.T) {
	t.Parallel()
	clock := &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	reg := New(WithClock(clock.Now))

	form := NewProducer(reg, "form-a")
	form.Update(NewFormState("text", "Name", "", nil, ""))

	disabled := false
	b := NewBinding(reg, func(p Payload) {
		if fs, ok := p.(FormState); ok {
			disabled = fs.DisablesButton()
		}
	})
	b.Bind("form-a")
	require.True(t, disabled)

	b.Bind("elsewhere")
	disabled = false
	clock.Advance(time.Minute)
	assert.Empty(t, reg.Evict(30*time.Second))

	b.Bind("form-a")
	assert.True(t, disabled, "empty form must disable the button after relinking")
}

func TestFormStateDisablesButton(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		state FormState
		want  bool
	}{
		{"empty", FormState{}, true},
		{"content", FormState{HasContent: true}, false},
		{"forced enabled", FormState{ButtonState: ButtonStateEnabled}, false},
		{"forced disabled", FormState{HasContent: true, ButtonState: ButtonStateDisabled}, true},
		{"unknown override", FormState{HasContent: true, ButtonState: "auto"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.state.DisablesButton())
		})
	}
}

func TestNewFormState(t *testing.T) {
	t.Parallel()

	assert.False(t, NewFormState("text", "Name", "   ", nil, "").HasContent)
	assert.True(t, NewFormState("text", "Name", "Ada", nil, "").HasContent)

	chips := []string{"go"}
	s := NewFormState("chips", "Tags", "", chips, "")
	assert.True(t, s.HasContent)
	chips[0] = "rust"
	assert.Equal(t, []string{"go"}, s.SelectedChips)
	assert.Equal(t, KindForm, s.Kind())
}
