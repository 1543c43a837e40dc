// Package events provides the in-process announcement bus the execution
// controller publishes to and observers (SSE clients, tests) subscribe to.
package events

import (
	"context"
	"sync"
	"time"
)

// Event is one announcement on the bus.
type Event struct {
	Topic string    `json:"topic"`
	At    time.Time `json:"at"`
	Data  any       `json:"data"`
}

// Bus fans events out to all subscribers. Publishing never blocks: a
// subscriber that stops draining its channel loses events instead of
// stalling the execution loop.
type Bus struct {
	mu     sync.RWMutex
	subs   map[*Subscription]struct{}
	closed bool
}

// Subscription is one observer's feed of bus events.
type Subscription struct {
	ch        chan Event
	bus       *Bus
	cancel    context.CancelFunc
	closeOnce sync.Once
}

func NewBus() *Bus {
	return &Bus{subs: make(map[*Subscription]struct{})}
}

// Subscribe registers an observer for all topics. The subscription ends when
// ctx is canceled, Unsubscribe is called, or the bus closes.
func (b *Bus) Subscribe(ctx context.Context) *Subscription {
	subCtx, cancel := context.WithCancel(ctx)
	sub := &Subscription{
		ch:     make(chan Event, 64),
		bus:    b,
		cancel: cancel,
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		cancel()
		sub.close()
		return sub
	}
	b.subs[sub] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-subCtx.Done()
		sub.Unsubscribe()
	}()

	return sub
}

// Publish delivers an event to every subscriber. Implements ports.Announcer.
func (b *Bus) Announce(topic string, data any) {
	ev := Event{Topic: topic, At: time.Now().UTC(), Data: data}

	// Snapshot under the read lock; sends happen outside it so a slow
	// subscriber cannot hold up Unsubscribe.
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return
	}
	subs := make([]*Subscription, 0, len(b.subs))
	for sub := range b.subs {
		subs = append(subs, sub)
	}
	b.mu.RUnlock()

	for _, sub := range subs {
		select {
		case sub.ch <- ev:
		default:
			// Subscriber buffer full, drop for this observer.
		}
	}
}

// Close ends all subscriptions. Subsequent Announce calls are no-ops.
func (b *Bus) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	subs := make([]*Subscription, 0, len(b.subs))
	for sub := range b.subs {
		subs = append(subs, sub)
		delete(b.subs, sub)
	}
	b.mu.Unlock()

	for _, sub := range subs {
		sub.cancel()
		sub.close()
	}
}

// C is the subscription's event channel. It is closed on Unsubscribe.
func (s *Subscription) C() <-chan Event { return s.ch }

// Unsubscribe removes the subscription from the bus and closes its channel.
func (s *Subscription) Unsubscribe() {
	s.bus.mu.Lock()
	delete(s.bus.subs, s)
	s.bus.mu.Unlock()

	s.cancel()
	s.close()
}

func (s *Subscription) close() {
	s.closeOnce.Do(func() { close(s.ch) })
}
