package link

import (
	"reflect"
	"sync"
)

// Producer publishes a widget's state under its own identifier, only when
// the state actually changed since the last publish. While a producer holds
// an identifier, Registry.Evict leaves its record alone.
type Producer struct {
	mu   sync.Mutex
	reg  *Registry
	id   string
	held string
	last Payload
}

func NewProducer(reg *Registry, id string) *Producer {
	p := &Producer{reg: reg, id: id}
	p.holdLocked(id)
	return p
}

// holdLocked moves the producer's hold on the registry to id.
func (p *Producer) holdLocked(id string) {
	if id == p.held {
		return
	}
	if p.held != "" {
		p.reg.release(p.held)
	}
	if id != "" {
		p.reg.hold(id)
	}
	p.held = id
}

// Update publishes payload if it differs from the last published payload.
// It reports whether a publish happened. A producer without an identifier
// remembers the payload but publishes nothing.
func (p *Producer) Update(payload Payload) bool {
	if payload == nil {
		return false
	}

	p.mu.Lock()
	if p.last != nil && reflect.DeepEqual(p.last, payload) {
		p.mu.Unlock()
		return false
	}
	p.last = payload
	id := p.id
	p.holdLocked(id)
	p.mu.Unlock()

	if id == "" {
		return false
	}
	p.reg.Publish(id, payload)
	return true
}

// SetID moves the producer to id. The record under the old identifier is
// removed and the last payload is republished under the new one.
func (p *Producer) SetID(id string) {
	p.mu.Lock()
	if id == p.id {
		p.mu.Unlock()
		return
	}
	old := p.id
	p.id = id
	p.holdLocked(id)
	last := p.last
	p.mu.Unlock()

	if old != "" {
		p.reg.Remove(old)
	}
	if id != "" && last != nil {
		p.reg.Publish(id, last)
	}
}

func (p *Producer) ID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.id
}

// Last returns the most recent payload passed to Update.
func (p *Producer) Last() Payload {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

// Close removes the producer's record from the registry and gives up its
// hold. Consumers bound to the identifier stay subscribed but see no
// further updates.
func (p *Producer) Close() {
	p.mu.Lock()
	id := p.id
	p.last = nil
	p.holdLocked("")
	p.mu.Unlock()

	if id != "" {
		p.reg.Remove(id)
	}
}
