package stream

import (
	"sync"

	"github.com/greenmandi/storefront/internal/domain/model"
)

// OrderEvent is a status snapshot pushed to order watchers.
type OrderEvent struct {
	Number        int64
	Status        model.OrderStatus
	PaymentStatus model.PaymentStatus
	FailureReason string
}

// Terminal reports whether subscribers can stop listening: the payment has
// settled either way, or fulfillment reached a final status.
func (e OrderEvent) Terminal() bool {
	return e.PaymentStatus != model.PaymentStatusPending || e.Status.Terminal()
}

// Hub fans order events out to per-order subscribers. Subscriptions close
// automatically after a terminal event is delivered, so watchers cannot
// observe a settled payment twice.
type Hub struct {
	mu   sync.Mutex
	subs map[int64]map[int]chan OrderEvent
	next int
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[int64]map[int]chan OrderEvent)}
}

// Subscribe registers a watcher for the order number. The returned cancel
// function is idempotent and must be called unless the channel closes first.
func (h *Hub) Subscribe(number int64, buffer int) (<-chan OrderEvent, func()) {
	if buffer <= 0 {
		buffer = 4
	}
	ch := make(chan OrderEvent, buffer)

	h.mu.Lock()
	id := h.next
	h.next++
	if h.subs[number] == nil {
		h.subs[number] = make(map[int]chan OrderEvent)
	}
	h.subs[number][id] = ch
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if subs, ok := h.subs[number]; ok {
			if c, ok := subs[id]; ok {
				delete(subs, id)
				close(c)
				if len(subs) == 0 {
					delete(h.subs, number)
				}
			}
		}
	}
	return ch, cancel
}

// Publish delivers the event to every watcher of the order. Slow watchers
// with a full buffer miss the event rather than block the publisher. A
// terminal event closes all subscriptions for the order.
func (h *Hub) Publish(event OrderEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.subs[event.Number]
	if !ok {
		return
	}
	for id, ch := range subs {
		select {
		case ch <- event:
		default:
		}
		if event.Terminal() {
			delete(subs, id)
			close(ch)
		}
	}
	if event.Terminal() {
		delete(h.subs, event.Number)
	}
}

// Subscribers reports the number of active watchers for an order.
func (h *Hub) Subscribers(number int64) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[number])
}
