package sinks

import (
	"sync"

	"github.com/lucsky/cuid"
)

// Subscription is a single connection's outbound message queue. Within one
// subscription, messages preserve send order; across subscriptions there is
// no ordering guarantee.
type Subscription struct {
	ID      string
	Channel chan interface{}
}

// Broadcaster fans a message out to every current subscriber. It never
// blocks: a subscriber whose queue is full is coalesced by dropping its
// oldest queued message and enqueuing the newest one in its place, so a
// slow subscriber sees "latest state preferred" rather than a growing
// backlog of stale frames.
type Broadcaster struct {
	mu          sync.RWMutex
	subscribers map[string]*Subscription
	bufferSize  int
}

// NewBroadcaster constructs a Broadcaster whose per-subscriber queues hold
// bufferSize messages before coalescing (default 1 when bufferSize <= 0).
func NewBroadcaster(bufferSize int) *Broadcaster {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Broadcaster{subscribers: make(map[string]*Subscription), bufferSize: bufferSize}
}

// Subscribe registers a new subscriber and returns its queue.
func (b *Broadcaster) Subscribe() *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := &Subscription{ID: cuid.New(), Channel: make(chan interface{}, b.bufferSize)}
	b.subscribers[sub.ID] = sub
	return sub
}

// Unsubscribe removes and closes a subscriber's queue. Safe to call once a
// connection has disconnected; a second call is a no-op.
func (b *Broadcaster) Unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub, ok := b.subscribers[id]
	if !ok {
		return
	}
	delete(b.subscribers, id)
	close(sub.Channel)
}

// Broadcast enqueues message on every current subscriber, coalescing
// (dropping the oldest queued message) when a subscriber's queue is full.
func (b *Broadcaster) Broadcast(message interface{}) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, sub := range b.subscribers {
		select {
		case sub.Channel <- message:
		default:
			select {
			case <-sub.Channel:
			default:
			}
			select {
			case sub.Channel <- message:
			default:
			}
		}
	}
}

// Send enqueues message on exactly one subscriber, used for events scoped
// to the originating connection (presetSaved/presetUpdated/presetDeleted,
// error, connected).
func (b *Broadcaster) Send(id string, message interface{}) {
	b.mu.RLock()
	sub, ok := b.subscribers[id]
	b.mu.RUnlock()
	if !ok {
		return
	}
	select {
	case sub.Channel <- message:
	default:
		select {
		case <-sub.Channel:
		default:
		}
		select {
		case sub.Channel <- message:
		default:
		}
	}
}

// SubscriberCount returns the number of current subscribers.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
