package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribePublishUnsubscribe(t *testing.T) {
	t.Parallel()

	b := NewBroadcaster()
	id, ch := b.Subscribe()
	require.NotEmpty(t, id)
	assert.Equal(t, 1, b.Len())

	b.Publish(Event{Name: "message", Data: `{"id":1}`})

	got := <-ch
	assert.Equal(t, "message", got.Name)
	assert.Equal(t, `{"id":1}`, got.Data)

	b.Unsubscribe(id)
	assert.Equal(t, 0, b.Len())

	_, open := <-ch
	assert.False(t, open)
}

func TestPublishReachesAllSubscribers(t *testing.T) {
	t.Parallel()

	b := NewBroadcaster()
	_, ch1 := b.Subscribe()
	_, ch2 := b.Subscribe()

	b.Publish(Event{Data: "hello"})

	assert.Equal(t, "hello", (<-ch1).Data)
	assert.Equal(t, "hello", (<-ch2).Data)
}

func TestSlowSubscriberDropped(t *testing.T) {
	t.Parallel()

	b := NewBroadcaster()
	_, ch := b.Subscribe()

	// Fill the buffer and then some; the subscriber never drains.
	for i := 0; i < clientBuffer+1; i++ {
		b.Publish(Event{Data: "x"})
	}

	assert.Equal(t, 0, b.Len())

	// The buffered events are still readable, then the channel closes.
	for i := 0; i < clientBuffer; i++ {
		_, open := <-ch
		require.True(t, open)
	}
	_, open := <-ch
	assert.False(t, open)
}

func TestCloseShutsDownSubscribers(t *testing.T) {
	t.Parallel()

	b := NewBroadcaster()
	_, ch := b.Subscribe()

	b.Close()
	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, b.Len())

	// Publish and Subscribe become no-ops.
	b.Publish(Event{Data: "late"})
	_, late := b.Subscribe()
	_, open = <-late
	assert.False(t, open)
}

func TestUnsubscribeUnknownID(t *testing.T) {
	t.Parallel()

	b := NewBroadcaster()
	b.Unsubscribe("no-such-client")
	assert.Equal(t, 0, b.Len())
}

func TestEventFormat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "event: message\ndata: {\"id\":1}\n\n", Event{Name: "message", Data: `{"id":1}`}.Format())
	assert.Equal(t, "data: ping\n\n", Event{Data: "ping"}.Format())
}
