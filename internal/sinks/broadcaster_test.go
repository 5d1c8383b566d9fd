package sinks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcasterDeliversToAllSubscribers(t *testing.T) {
	b := NewBroadcaster(4)
	a := b.Subscribe()
	c := b.Subscribe()

	b.Broadcast("hello")

	require.Len(t, a.Channel, 1)
	require.Len(t, c.Channel, 1)
	assert.Equal(t, "hello", <-a.Channel)
	assert.Equal(t, "hello", <-c.Channel)
}

func TestBroadcasterCoalescesWhenSubscriberIsSlow(t *testing.T) {
	b := NewBroadcaster(1)
	sub := b.Subscribe()

	b.Broadcast("first")
	b.Broadcast("second")

	require.Len(t, sub.Channel, 1)
	assert.Equal(t, "second", <-sub.Channel, "latest state preferred over stale backlog")
}

func TestBroadcasterUnsubscribeIsIdempotent(t *testing.T) {
	b := NewBroadcaster(1)
	sub := b.Subscribe()
	b.Unsubscribe(sub.ID)
	b.Unsubscribe(sub.ID)
	assert.Equal(t, 0, b.SubscriberCount())
}

func TestBroadcasterSendTargetsOneSubscriber(t *testing.T) {
	b := NewBroadcaster(2)
	a := b.Subscribe()
	other := b.Subscribe()

	b.Send(a.ID, "only-for-a")

	assert.Len(t, a.Channel, 1)
	assert.Len(t, other.Channel, 0)
}
