// Package feed fans newly created messages out to connected SSE
// clients. The broadcaster is delivery-only: the feed of record stays
// in the messages table, and a dropped event is recovered on the next
// list call.
package feed

import (
	"sync"

	"github.com/google/uuid"
)

// clientBuffer is how many events a subscriber may lag before it is
// dropped.
const clientBuffer = 32

// Broadcaster manages feed subscribers and event fan-out.
type Broadcaster struct {
	mu      sync.RWMutex
	clients map[string]chan Event
	closed  bool
}

// NewBroadcaster creates an empty Broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		clients: make(map[string]chan Event),
	}
}

// Subscribe registers a new client and returns its id and event
// channel. The channel is closed when the client unsubscribes, falls
// too far behind, or the broadcaster shuts down.
func (b *Broadcaster) Subscribe() (string, <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, clientBuffer)
	if b.closed {
		close(ch)
		return "", ch
	}

	id := uuid.New().String()
	b.clients[id] = ch
	return id, ch
}

// Unsubscribe removes a client and closes its channel. Unknown ids are
// ignored; disconnects can race with a drop.
func (b *Broadcaster) Unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.clients[id]; ok {
		delete(b.clients, id)
		close(ch)
	}
}

// Publish delivers an event to every subscriber. A subscriber whose
// buffer is full is dropped rather than allowed to stall the feed.
func (b *Broadcaster) Publish(event Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	for id, ch := range b.clients {
		select {
		case ch <- event:
		default:
			delete(b.clients, id)
			close(ch)
		}
	}
}

// Close shuts the broadcaster down, closing every subscriber channel.
// Publish and Subscribe become no-ops afterwards.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.clients {
		delete(b.clients, id)
		close(ch)
	}
}

// Len reports the number of connected subscribers.
func (b *Broadcaster) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}
