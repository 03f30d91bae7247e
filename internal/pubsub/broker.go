// Package pubsub fans events out from background services to channel
// subscribers, typically goroutines that forward them into the TUI program.
package pubsub

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
)

const defaultBufferSize = 64

type subscription[T any] struct {
	ch     chan Event[T]
	cancel context.CancelFunc
}

// Broker is an asynchronous, lossy event fan-out. A subscriber that falls
// behind by more than its buffer loses events instead of stalling the
// publisher.
type Broker[T any] struct {
	mu      sync.RWMutex
	subs    map[chan Event[T]]*subscription[T]
	bufSize int
	closed  bool
	dropped atomic.Uint64
}

func NewBroker[T any]() *Broker[T] {
	return NewBrokerWithBuffer[T](defaultBufferSize)
}

func NewBrokerWithBuffer[T any](size int) *Broker[T] {
	if size < 1 {
		size = 1
	}
	return &Broker[T]{
		subs:    make(map[chan Event[T]]*subscription[T]),
		bufSize: size,
	}
}

// Subscribe returns a channel that receives every event published until ctx
// is done or the broker shuts down, at which point the channel is closed.
func (b *Broker[T]) Subscribe(ctx context.Context) <-chan Event[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		ch := make(chan Event[T])
		close(ch)
		return ch
	}

	subCtx, cancel := context.WithCancel(ctx)
	sub := &subscription[T]{
		ch:     make(chan Event[T], b.bufSize),
		cancel: cancel,
	}
	b.subs[sub.ch] = sub

	go func() {
		<-subCtx.Done()
		b.unsubscribe(sub.ch)
	}()

	return sub.ch
}

func (b *Broker[T]) unsubscribe(ch chan Event[T]) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[ch]; ok {
		delete(b.subs, ch)
		close(ch)
	}
}

// Publish delivers an event to every subscriber without blocking.
func (b *Broker[T]) Publish(eventType EventType, payload T) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		slog.Warn("pubsub: publish on closed broker", "type", eventType, "payload_type", fmt.Sprintf("%T", payload))
		return
	}

	event := Event[T]{Type: eventType, Payload: payload}
	for ch := range b.subs {
		select {
		case ch <- event:
		default:
			b.dropped.Add(1)
		}
	}
}

// Dropped reports how many events were discarded because a subscriber's
// buffer was full.
func (b *Broker[T]) Dropped() uint64 {
	return b.dropped.Load()
}

func (b *Broker[T]) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Shutdown closes every subscriber channel. Later publishes are ignored and
// later subscribers get a closed channel.
func (b *Broker[T]) Shutdown() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	for ch, sub := range b.subs {
		sub.cancel()
		delete(b.subs, ch)
		close(ch)
	}
	b.mu.Unlock()
	slog.Debug("pubsub: broker shut down", "type", fmt.Sprintf("%T", *new(T)))
}
