// Package observable provides a process-wide value with publish/subscribe
// semantics. A subscriber registered at any time immediately receives the
// latest value and then every later one.
package observable

import (
	"sync"

	"github.com/google/uuid"
)

// Value holds a T and notifies subscribers on every change.
//
// Each mutation is one atomic replace-the-value step: subscribers observe
// either the previous or the new value, never a mix. Notifications are
// delivered in mutation order. Callbacks run synchronously on the mutating
// goroutine and must not mutate the same Value.
type Value[T any] struct {
	// publish serialises Set/Update/Subscribe so replay and fan-out happen in
	// mutation order.
	publish sync.Mutex

	mu          sync.RWMutex
	current     T
	subscribers map[uuid.UUID]func(T)
	order       []uuid.UUID
}

// New returns a Value that starts at initial.
func New[T any](initial T) *Value[T] {
	return &Value[T]{
		current:     initial,
		subscribers: make(map[uuid.UUID]func(T)),
	}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.current
}

// Set replaces the value and notifies subscribers.
func (v *Value[T]) Set(next T) {
	v.Update(func(T) T { return next })
}

// Update replaces the value with fn(current) and notifies subscribers.
func (v *Value[T]) Update(fn func(T) T) {
	v.publish.Lock()
	defer v.publish.Unlock()

	v.mu.Lock()
	v.current = fn(v.current)
	next := v.current
	callbacks := v.snapshot()
	v.mu.Unlock()

	for _, cb := range callbacks {
		cb(next)
	}
}

// Subscribe registers fn, calls it with the current value, and returns a
// function that removes the subscription. Unsubscribing twice is harmless.
func (v *Value[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	v.publish.Lock()
	defer v.publish.Unlock()

	id := uuid.New()

	v.mu.Lock()
	v.subscribers[id] = fn
	v.order = append(v.order, id)
	current := v.current
	v.mu.Unlock()

	fn(current)

	var once sync.Once
	return func() {
		once.Do(func() { v.remove(id) })
	}
}

// Subscribers reports how many callbacks are registered.
func (v *Value[T]) Subscribers() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.subscribers)
}

func (v *Value[T]) remove(id uuid.UUID) {
	v.mu.Lock()
	defer v.mu.Unlock()

	delete(v.subscribers, id)
	for i, existing := range v.order {
		if existing == id {
			v.order = append(v.order[:i], v.order[i+1:]...)
			break
		}
	}
}

// snapshot must be called with mu held.
func (v *Value[T]) snapshot() []func(T) {
	out := make([]func(T), 0, len(v.order))
	for _, id := range v.order {
		out = append(out, v.subscribers[id])
	}
	return out
}
