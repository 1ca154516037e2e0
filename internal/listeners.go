package internal

import (
	"sync"
)

// listenerSet provides thread-safe registration of change callbacks.
type listenerSet struct {
	mu   sync.Mutex
	next int
	fns  map[int]func()
}

// newListenerSet creates an empty listenerSet.
func newListenerSet() *listenerSet {
	return &listenerSet{
		fns: make(map[int]func()),
	}
}

// Add registers a callback and returns a function that removes it.
// A nil callback registers nothing.
func (ls *listenerSet) Add(fn func()) func() {
	if fn == nil {
		return func() {}
	}
	ls.mu.Lock()
	defer ls.mu.Unlock()
	id := ls.next
	ls.next++
	ls.fns[id] = fn
	return func() {
		ls.mu.Lock()
		defer ls.mu.Unlock()
		delete(ls.fns, id)
	}
}

// Len returns the number of registered callbacks.
func (ls *listenerSet) Len() int {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return len(ls.fns)
}

// Notify invokes every registered callback once. Callbacks run outside
// the set's lock so a listener may re-subscribe or unsubscribe.
func (ls *listenerSet) Notify() {
	ls.mu.Lock()
	fns := make([]func(), 0, len(ls.fns))
	for _, fn := range ls.fns {
		fns = append(fns, fn)
	}
	ls.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
