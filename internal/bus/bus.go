// Package bus is the in-process notification sink. Layout, trails and the
// window lifecycle publish events here; IPC subscribers receive them through a
// Hub.
package bus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

var _ctx = context.Background()

func SetContext(ctx context.Context) {
	_ctx = ctx
}

var (
	subsMu sync.Mutex
	subs   = make(map[string][]func(ctx context.Context, T any))
)

func topic[T any]() string {
	return fmt.Sprintf("%T", *new(T))
}

func Subscribe[T any](name string, fn func(ctx context.Context, event T) error) {
	subsMu.Lock()
	defer subsMu.Unlock()

	t := topic[T]()
	subs[t] = append(subs[t], func(ctx context.Context, event any) {
		if err := fn(ctx, event.(T)); err != nil {
			slog.Error("Failed to handle event", "package", "bus", "name", name, "error", err)
		}
	})
}

func Publish[T any](event T) {
	subsMu.Lock()
	fns := subs[fmt.Sprintf("%T", event)]
	subsMu.Unlock()

	for _, fn := range fns {
		fn(_ctx, event)
	}
}

// Reset drops every subscriber.
func Reset() {
	subsMu.Lock()
	subs = make(map[string][]func(ctx context.Context, T any))
	subsMu.Unlock()
}

// HubBuffer is the per subscriber queue length of a Hub.
const HubBuffer = 64

func NewHub[T any]() *Hub[T] {
	return &Hub[T]{
		mu:   sync.Mutex{},
		subs: make(map[*chan T]struct{}),
	}
}

// Hub fans events out to subscribers. A subscriber that falls behind loses
// events instead of stalling the publisher.
type Hub[T any] struct {
	mu   sync.Mutex
	subs map[*chan T]struct{}
}

func (h *Hub[T]) Broadcast(ctx context.Context, event T) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case *sub <- event:
		default:
			slog.Warn("Dropped event for slow subscriber", "package", "bus", "event", fmt.Sprintf("%T", event))
		}
	}

	return nil
}

func (h *Hub[T]) Register() *Hub[T] {
	Subscribe("bus.Hub", h.Broadcast)
	return h
}

func (h *Hub[T]) Subscribe(ctx context.Context) (<-chan T, func()) {
	h.mu.Lock()
	c := make(chan T, HubBuffer)

	key := &c
	h.subs[key] = struct{}{}
	h.mu.Unlock()

	return c, func() {
		h.mu.Lock()
		delete(h.subs, key)
		h.mu.Unlock()
	}
}
