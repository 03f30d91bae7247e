// Package link implements the component link registry: a keyed store through
// which independently rendered widgets publish their state and react to the
// state published by other widgets, without holding references to each other.
//
// A producer publishes a Payload under its own identifier. Consumers subscribe
// a Handler to the identifier they are linked to and are called synchronously
// on every publish to that identifier. Bindings wrap this for widgets that
// mount, rebind and unmount.
package link

import (
	"log/slog"
	"reflect"
	"sort"
	"sync"
	"time"
)

// Handler receives the payloads published to the identifier it is subscribed
// to. Handlers are compared by identity, so implementations must be
// comparable; pointer types are the norm.
type Handler interface {
	Handle(Payload)
}

type funcHandler struct {
	fn func(Payload)
}

func (h *funcHandler) Handle(p Payload) { h.fn(p) }

// NewHandler wraps fn in a new Handler. Every call returns a distinct
// subscription identity, even for the same fn.
func NewHandler(fn func(Payload)) Handler {
	return &funcHandler{fn: fn}
}

type Option func(*Registry)

// WithClock overrides the time source used to stamp records.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// WithDedup skips notification when a publish carries a payload equal to the
// stored one. The record timestamp is still refreshed.
func WithDedup(enabled bool) Option {
	return func(r *Registry) {
		r.dedup = enabled
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Registry stores the latest record per identifier and the handlers
// subscribed to each identifier. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	records map[string]Record
	subs    map[string]map[Handler]struct{}
	// live counts the mounted producers per identifier; Evict skips them.
	live map[string]int

	now    func() time.Time
	dedup  bool
	logger *slog.Logger
}

func New(opts ...Option) *Registry {
	r := &Registry{
		records: make(map[string]Record),
		subs:    make(map[string]map[Handler]struct{}),
		live:    make(map[string]int),
		now:     time.Now,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Publish stores payload under id, replacing any previous record, and then
// invokes every handler subscribed to id on the calling goroutine.
//
// A handler may publish again. Two identifiers whose handlers republish to
// each other on every update recurse without bound; avoiding such cycles is
// the caller's job.
func (r *Registry) Publish(id string, payload Payload) {
	if id == "" || payload == nil {
		return
	}

	r.mu.Lock()
	prev, existed := r.records[id]
	r.records[id] = Record{
		ID:          id,
		Kind:        payload.Kind(),
		Payload:     payload,
		PublishedAt: r.now(),
	}
	if r.dedup && existed && reflect.DeepEqual(prev.Payload, payload) {
		r.mu.Unlock()
		r.logger.Debug("link: unchanged payload, skipping notify", "id", id)
		return
	}
	handlers := r.handlersLocked(id)
	r.mu.Unlock()

	r.logger.Debug("link: published", "id", id, "kind", payload.Kind(), "subscribers", len(handlers))
	for _, h := range handlers {
		r.deliver(id, h, payload)
	}
}

// Get returns the latest record for id. The boolean is false when nothing
// has been published under id.
func (r *Registry) Get(id string) (Record, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[id]
	return rec, ok
}

// Remove deletes the record stored under id. Subscriptions are left alone:
// consumers stay linked and see the next publish if the producer returns.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[id]; !ok {
		return false
	}
	delete(r.records, id)
	r.logger.Debug("link: removed", "id", id)
	return true
}

// Subscribe adds h to the handlers for id. Subscribing the same handler twice
// is a no-op.
func (r *Registry) Subscribe(id string, h Handler) {
	if id == "" || h == nil {
		return
	}
	if !hashable(h) {
		r.logger.Warn("link: handler is not comparable, ignoring subscription", "id", id, "type", reflect.TypeOf(h).String())
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.subs[id]
	if !ok {
		set = make(map[Handler]struct{})
		r.subs[id] = set
	}
	set[h] = struct{}{}
	r.logger.Debug("link: subscribed", "id", id, "subscribers", len(set))
}

// Unsubscribe removes h from the handlers for id. It is safe to call for a
// handler that was never subscribed.
func (r *Registry) Unsubscribe(id string, h Handler) {
	if id == "" || h == nil || !hashable(h) {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.subs[id]
	if !ok {
		return
	}
	delete(set, h)
	if len(set) == 0 {
		delete(r.subs, id)
	}
	r.logger.Debug("link: unsubscribed", "id", id, "subscribers", len(set))
}

// SubscriberCount returns the number of handlers subscribed to id.
func (r *Registry) SubscriberCount(id string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subs[id])
}

// Len returns the number of stored records.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

// Snapshot returns a copy of all records sorted by identifier.
func (r *Registry) Snapshot() []Record {
	r.mu.RLock()
	records := make([]Record, 0, len(r.records))
	for _, rec := range r.records {
		records = append(records, rec)
	}
	r.mu.RUnlock()

	sort.Slice(records, func(i, j int) bool {
		return records[i].ID < records[j].ID
	})
	return records
}

// Evict drops records that were last published before olderThan ago, have
// no subscribers left and no live Producer. It returns the evicted
// identifiers, sorted.
func (r *Registry) Evict(olderThan time.Duration) []string {
	if olderThan <= 0 {
		return nil
	}
	cutoff := r.now().Add(-olderThan)

	r.mu.Lock()
	var evicted []string
	for id, rec := range r.records {
		if rec.PublishedAt.Before(cutoff) && len(r.subs[id]) == 0 && r.live[id] == 0 {
			delete(r.records, id)
			evicted = append(evicted, id)
		}
	}
	r.mu.Unlock()

	sort.Strings(evicted)
	if len(evicted) > 0 {
		r.logger.Info("link: evicted stale records", "count", len(evicted), "ids", evicted)
	}
	return evicted
}

// hold marks id as owned by a mounted producer. release undoes one hold.
func (r *Registry) hold(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.live[id]++
}

func (r *Registry) release(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.live[id] <= 1 {
		delete(r.live, id)
		return
	}
	r.live[id]--
}

// hashable reports whether h can be used as a map key. A comparable struct
// may still carry a slice or map inside an interface field, which only
// fails when hashed.
func hashable(h Handler) (ok bool) {
	if !reflect.TypeOf(h).Comparable() {
		return false
	}
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	_ = map[Handler]struct{}{h: {}}
	return true
}

func (r *Registry) handlersLocked(id string) []Handler {
	set := r.subs[id]
	if len(set) == 0 {
		return nil
	}
	handlers := make([]Handler, 0, len(set))
	for h := range set {
		handlers = append(handlers, h)
	}
	return handlers
}

// deliver calls h and contains a panic to that one handler.
func (r *Registry) deliver(id string, h Handler, payload Payload) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("link: subscriber panicked", "id", id, "kind", payload.Kind(), "panic", rec)
		}
	}()
	h.Handle(payload)
}
