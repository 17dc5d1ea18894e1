package application

import (
	"context"
	"sync"

	"github.com/bnema/cloudahk-cli/internal/domain"
	"github.com/bnema/cloudahk-cli/internal/ports"
)

// EventHub hands each published message to every matching waiter; a
// waiter receives at most one message.
type EventHub struct {
	mu      sync.Mutex
	waiters map[uint64]*waiter
	nextID  uint64
}

type waiter struct {
	match func(domain.Message) bool
	ch    chan domain.Message
}

var _ ports.MessageSource = (*EventHub)(nil)

func NewEventHub() *EventHub {
	return &EventHub{waiters: make(map[uint64]*waiter)}
}

func (h *EventHub) Next(ctx context.Context, match func(domain.Message) bool) (domain.Message, error) {
	w := &waiter{match: match, ch: make(chan domain.Message, 1)}

	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.waiters[id] = w
	h.mu.Unlock()

	select {
	case msg := <-w.ch:
		return msg, nil
	case <-ctx.Done():
	}

	h.mu.Lock()
	delete(h.waiters, id)
	h.mu.Unlock()

	// A delivery that raced the deadline still wins.
	select {
	case msg := <-w.ch:
		return msg, nil
	default:
		return domain.Message{}, ctx.Err()
	}
}

func (h *EventHub) Publish(msg domain.Message) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	delivered := 0
	for id, w := range h.waiters {
		if w.match != nil && !w.match(msg) {
			continue
		}
		w.ch <- msg
		delete(h.waiters, id)
		delivered++
	}

	return delivered
}

func (h *EventHub) Waiting() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.waiters)
}
