// Package observe provides a small synchronous observer registry shared by the
// prospect store and the sort preference.
package observe

import "sync"

// Registry holds subscribers for values of type T. Notify calls every
// subscriber on the caller's goroutine, in subscription order.
type Registry[T any] struct {
	mu     sync.Mutex
	nextID int
	subs   []subscriber[T]
}

type subscriber[T any] struct {
	id int
	fn func(T)
}

// Subscribe registers fn and returns a function that removes it again.
// Calling the returned function more than once is harmless.
func (r *Registry[T]) Subscribe(fn func(T)) func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	id := r.nextID
	r.subs = append(r.subs, subscriber[T]{id: id, fn: fn})
	return func() { r.remove(id) }
}

// Notify delivers v to all current subscribers.
func (r *Registry[T]) Notify(v T) {
	r.mu.Lock()
	subs := append([]subscriber[T](nil), r.subs...)
	r.mu.Unlock()

	for _, s := range subs {
		s.fn(v)
	}
}

// Len reports the number of active subscribers.
func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs)
}

func (r *Registry[T]) remove(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.subs {
		if s.id == id {
			r.subs = append(r.subs[:i], r.subs[i+1:]...)
			return
		}
	}
}
