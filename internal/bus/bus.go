// Package bus broadcasts values to a set of observers.
package bus

import (
	"sync"

	"github.com/tessro/dial/internal/logging"
)

var logger = logging.For("bus")

type observer[T any] struct {
	id uint64
	fn func(T)
}

// Bus delivers every published value to the observers subscribed at the
// time of publishing, in registration order. There is no buffering or
// replay.
type Bus[T any] struct {
	mu        sync.Mutex
	observers []observer[T]
	nextID    uint64
}

// New returns an empty bus.
func New[T any]() *Bus[T] {
	return &Bus[T]{}
}

// Subscribe registers fn and returns a function that removes it. The
// returned function may be called any number of times, including from
// inside fn while a value is being delivered.
func (b *Bus[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.observers = append(b.observers, observer[T]{id: id, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

func (b *Bus[T]) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, o := range b.observers {
		if o.id == id {
			// Copy instead of shifting in place so a delivery in progress
			// keeps iterating over the slice it started with.
			next := make([]observer[T], 0, len(b.observers)-1)
			next = append(next, b.observers[:i]...)
			next = append(next, b.observers[i+1:]...)
			b.observers = next
			return
		}
	}
}

// Publish calls every current observer with v. A panicking observer is
// logged and does not stop delivery to the others.
func (b *Bus[T]) Publish(v T) {
	b.mu.Lock()
	observers := b.observers
	b.mu.Unlock()

	for _, o := range observers {
		deliver(o, v)
	}
}

func deliver[T any](o observer[T], v T) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithField("observer", o.id).Errorf("observer panicked: %v", r)
		}
	}()
	o.fn(v)
}

// UnsubscribeAll removes every observer.
func (b *Bus[T]) UnsubscribeAll() {
	b.mu.Lock()
	b.observers = nil
	b.mu.Unlock()
}

// Len returns the number of observers.
func (b *Bus[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.observers)
}
