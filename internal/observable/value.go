// Package observable provides a current-value cell with late-subscribe
// semantics: observers attached at any time get the latest value, if any,
// followed by every later update.
package observable

import (
	"context"
	"sync"
)

// Readable is the read-only side of a Value.
type Readable[T any] interface {
	Get() (T, bool)
	Observe(fn func(T)) (cancel func())
}

// Value holds the most recently published T.
//
// Delivery is serialized: an observer never sees two values concurrently
// and sees them in Set order. Observer funcs run on the publishing
// goroutine and must not block or call back into the same Value.
type Value[T any] struct {
	deliver sync.Mutex // held while notifying observers

	mu        sync.Mutex
	value     T
	set       bool
	nextID    int
	observers map[int]func(T)
}

// New returns an unset Value.
func New[T any]() *Value[T] {
	return &Value[T]{observers: make(map[int]func(T))}
}

// Get returns the latest value and whether one has been set.
func (v *Value[T]) Get() (T, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.value, v.set
}

// Set stores val and notifies every attached observer.
func (v *Value[T]) Set(val T) {
	v.deliver.Lock()
	defer v.deliver.Unlock()

	v.mu.Lock()
	v.value = val
	v.set = true
	fns := v.snapshot()
	v.mu.Unlock()

	for _, fn := range fns {
		fn(val)
	}
}

// Observe attaches fn. If a value is already set, fn is called with it
// before Observe returns. The returned cancel detaches fn; calling it more
// than once is a no-op.
func (v *Value[T]) Observe(fn func(T)) (cancel func()) {
	v.deliver.Lock()
	defer v.deliver.Unlock()

	v.mu.Lock()
	id := v.nextID
	v.nextID++
	v.observers[id] = fn
	val, set := v.value, v.set
	v.mu.Unlock()

	if set {
		fn(val)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			v.mu.Lock()
			delete(v.observers, id)
			v.mu.Unlock()
		})
	}
}

// Observers returns the number of attached observers.
func (v *Value[T]) Observers() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.observers)
}

// snapshot copies the observer set in attach order. Caller holds v.mu.
func (v *Value[T]) snapshot() []func(T) {
	fns := make([]func(T), 0, len(v.observers))
	for id := 0; id < v.nextID; id++ {
		if fn, ok := v.observers[id]; ok {
			fns = append(fns, fn)
		}
	}
	return fns
}

// Bind publishes every value received on ch into v until ch is closed or
// ctx is done. It blocks; run it on its own goroutine.
func Bind[T any](ctx context.Context, v *Value[T], ch <-chan T) {
	for {
		select {
		case <-ctx.Done():
			return
		case val, ok := <-ch:
			if !ok {
				return
			}
			// A value and cancellation can both be ready; cancellation wins.
			if ctx.Err() != nil {
				return
			}
			v.Set(val)
		}
	}
}
