package event

import (
	"github.com/MikeBiancalana/calpick/internal/logger"
)

// Listener receives published events.
type Listener func(Event)

type subscription struct {
	id       int
	name     Name
	listener Listener
}

// Bus is a synchronous publish/subscribe hub.
// Listeners run on the publishing goroutine in subscription order.
// A Bus is meant to be driven from a single event loop and is not safe for
// concurrent use.
type Bus struct {
	subs   []subscription
	nextID int
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn for events named name. An empty name subscribes to
// every event. The returned function removes the subscription and is safe
// to call more than once.
func (b *Bus) Subscribe(name Name, fn Listener) func() {
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, name: name, listener: fn})

	return func() {
		b.remove(id)
	}
}

func (b *Bus) remove(id int) {
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

// Publish delivers e to every matching listener.
func (b *Bus) Publish(e Event) {
	if b == nil {
		return
	}
	logger.Debug("event: publish", "name", e.Name, "source", e.Source)

	// Snapshot so listeners may unsubscribe while being notified.
	subs := make([]subscription, len(b.subs))
	copy(subs, b.subs)
	for _, s := range subs {
		if s.name == "" || s.name == e.Name {
			s.listener(e)
		}
	}
}

// Len returns the number of live subscriptions.
func (b *Bus) Len() int {
	return len(b.subs)
}
