package store

import (
	"sync"

	"github.com/google/uuid"
)

// Token identifies one subscription
type Token string

type listener[T any] struct {
	token Token
	fn    func(T)
}

// Broadcaster is an observer list. Notify iterates a copy of the list, so
// listeners may subscribe, unsubscribe or mutate the owning store while being
// notified.
type Broadcaster[T any] struct {
	mu        sync.Mutex
	listeners []listener[T]
}

// Subscribe registers fn and returns the token that removes it
func (b *Broadcaster[T]) Subscribe(fn func(T)) Token {
	token := Token(uuid.NewString())

	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = append(b.listeners, listener[T]{token: token, fn: fn})
	return token
}

// Unsubscribe removes the listener registered under token. It reports
// whether anything was removed; removing twice is harmless.
func (b *Broadcaster[T]) Unsubscribe(token Token) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, l := range b.listeners {
		if l.token == token {
			// copy-on-write: a Notify in progress keeps its own slice
			next := make([]listener[T], 0, len(b.listeners)-1)
			next = append(next, b.listeners[:i]...)
			b.listeners = append(next, b.listeners[i+1:]...)
			return true
		}
	}
	return false
}

// Notify calls every listener registered at the time of the call
func (b *Broadcaster[T]) Notify(value T) {
	b.mu.Lock()
	snapshot := b.listeners
	b.mu.Unlock()

	for _, l := range snapshot {
		l.fn(value)
	}
}

// Len returns the number of registered listeners
func (b *Broadcaster[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners)
}
