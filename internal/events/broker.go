// Package events carries notifications from the binder to whoever is
// listening, usually the terminal UI's status bar.
package events

import (
	"sync"
	"sync/atomic"
)

const wildcard EventType = "*"

// Broker manages event distribution. Publish never blocks: a subscriber
// whose buffer is full misses the event and the drop is counted.
type Broker struct {
	subscribers map[EventType][]chan Event
	mu          sync.RWMutex
	bufferSize  int
	dropped     atomic.Int64
}

// BrokerOption configures a Broker.
type BrokerOption func(*Broker)

// WithBufferSize sets the channel buffer of each new subscription.
func WithBufferSize(n int) BrokerOption {
	return func(b *Broker) {
		if n > 0 {
			b.bufferSize = n
		}
	}
}

// NewBroker creates a new event broker
func NewBroker(opts ...BrokerOption) *Broker {
	b := &Broker{
		subscribers: make(map[EventType][]chan Event),
		bufferSize:  32,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe creates a subscription to specific event types.
// With no types the subscription receives every event.
func (b *Broker) Subscribe(eventTypes ...EventType) <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, b.bufferSize)
	if len(eventTypes) == 0 {
		eventTypes = []EventType{wildcard}
	}
	for _, eventType := range eventTypes {
		b.subscribers[eventType] = append(b.subscribers[eventType], ch)
	}
	return ch
}

// Unsubscribe removes a subscription from every type it was registered for
// and closes its channel.
func (b *Broker) Unsubscribe(ch <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var target chan Event
	for eventType, subscribers := range b.subscribers {
		for i, sub := range subscribers {
			if sub == ch {
				target = sub
				b.subscribers[eventType] = append(subscribers[:i], subscribers[i+1:]...)
				break
			}
		}
		if len(b.subscribers[eventType]) == 0 {
			delete(b.subscribers, eventType)
		}
	}
	if target != nil {
		close(target)
	}
}

// Publish sends an event to all subscribers of its type and to wildcard
// subscribers. A nil Broker ignores the call.
func (b *Broker) Publish(event Event) {
	if b == nil {
		return
	}
	b.mu.RLock()
	defer b.mu.RUnlock()

	b.send(b.subscribers[event.Type], event)
	if event.Type != wildcard {
		b.send(b.subscribers[wildcard], event)
	}
}

func (b *Broker) send(subscribers []chan Event, event Event) {
	for _, ch := range subscribers {
		select {
		case ch <- event:
		default:
			b.dropped.Add(1)
		}
	}
}

// Dropped returns how many deliveries were skipped because a buffer was full.
func (b *Broker) Dropped() int64 {
	return b.dropped.Load()
}

// Clear removes and closes all subscriptions
func (b *Broker) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	closed := make(map[chan Event]bool)
	for _, subscribers := range b.subscribers {
		for _, ch := range subscribers {
			if !closed[ch] {
				close(ch)
				closed[ch] = true
			}
		}
	}
	b.subscribers = make(map[EventType][]chan Event)
}
