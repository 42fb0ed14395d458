// Package bus provides a generic broadcast hub with channel
// subscriptions, used to fan out devtool transitions to live listeners.
package bus

import (
	"context"
	"sync"
)

const subscriberBuffer = 64

func NewHub[T any]() *Hub[T] {
	return &Hub[T]{
		subs: make(map[*chan T]struct{}),
	}
}

type Hub[T any] struct {
	mu   sync.Mutex
	subs map[*chan T]struct{}
}

// Broadcast delivers event to every subscriber. A subscriber whose
// buffer is full misses the event; a live debug feed prefers dropping
// over blocking the publisher.
func (h *Hub[T]) Broadcast(event T) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subs {
		select {
		case *sub <- event:
		default:
		}
	}
}

// Subscribe registers a buffered channel that receives future events
// until the returned function is called or ctx is done.
func (h *Hub[T]) Subscribe(ctx context.Context) (<-chan T, func()) {
	h.mu.Lock()
	c := make(chan T, subscriberBuffer)

	key := &c
	h.subs[key] = struct{}{}
	h.mu.Unlock()

	stop := func() {
		h.mu.Lock()
		delete(h.subs, key)
		h.mu.Unlock()
	}

	context.AfterFunc(ctx, stop)

	return c, stop
}
