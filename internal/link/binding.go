package link

import "sync"

// BindingState is the lifecycle state of a consumer Binding.
type BindingState int

const (
	Unbound BindingState = iota
	Bound
)

func (s BindingState) String() string {
	switch s {
	case Bound:
		return "bound"
	default:
		return "unbound"
	}
}

// Binding keeps a consumer subscribed to at most one identifier at a time.
// Widgets create one Binding when mounted, call Bind whenever their linked
// identifier changes and Release when unmounted.
type Binding struct {
	mu      sync.Mutex
	reg     *Registry
	handler Handler
	id      string
	state   BindingState
}

// NewBinding returns an unbound Binding that will deliver payloads to fn.
func NewBinding(reg *Registry, fn func(Payload)) *Binding {
	return &Binding{
		reg:     reg,
		handler: NewHandler(fn),
	}
}

// Bind links the consumer to id. Binding to a different identifier drops the
// previous subscription first; an empty id releases. When the binding moves
// to a new identifier, the latest record stored there is replayed to the
// handler.
func (b *Binding) Bind(id string) {
	if id == "" {
		b.Release()
		return
	}

	b.mu.Lock()
	if b.state == Bound && b.id == id {
		b.mu.Unlock()
		return
	}
	if b.state == Bound {
		b.reg.Unsubscribe(b.id, b.handler)
	}
	b.reg.Subscribe(id, b.handler)
	b.id = id
	b.state = Bound
	b.mu.Unlock()

	if rec, ok := b.reg.Get(id); ok {
		b.reg.deliver(id, b.handler, rec.Payload)
	}
}

// Release drops the subscription, if any.
func (b *Binding) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == Unbound {
		return
	}
	b.reg.Unsubscribe(b.id, b.handler)
	b.id = ""
	b.state = Unbound
}

func (b *Binding) State() BindingState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// ID returns the bound identifier, or "" when unbound.
func (b *Binding) ID() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.id
}
