package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesOnlyTopicSubscribers(t *testing.T) {
	hub := NewHub()

	a, cleanupA := hub.Subscribe("session-a")
	defer cleanupA()
	b, cleanupB := hub.Subscribe("session-b")
	defer cleanupB()

	hub.Publish("session-a", Event{Event: "state", Data: "idle"})

	select {
	case ev := <-a:
		assert.Equal(t, "session-a", ev.Topic)
		assert.Equal(t, "state", ev.Event)
		assert.Equal(t, "idle", ev.Data)
	default:
		t.Fatal("expected event on session-a")
	}

	select {
	case <-b:
		t.Fatal("session-b must not receive session-a events")
	default:
	}
}

func TestHub_CleanupIsIdempotent(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("u1")
	require.Equal(t, 1, hub.SubscriberCount("u1"))

	cleanup()
	cleanup()

	_, ok := <-ch
	assert.False(t, ok)
	assert.Equal(t, 0, hub.TotalSubscribers())
}

func TestHub_CloseTopicClosesChannels(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("kiosk-1")
	hub.CloseTopic("kiosk-1")

	_, ok := <-ch
	assert.False(t, ok)
	assert.Equal(t, 0, hub.SubscriberCount("kiosk-1"))

	// cleanup after CloseTopic must not double-close
	cleanup()
}

func TestHub_FullBufferDoesNotBlock(t *testing.T) {
	hub := NewHub()
	_, cleanup := hub.Subscribe("busy")
	defer cleanup()

	for i := 0; i < 50; i++ {
		hub.Publish("busy", Event{Event: "tick", Data: i})
	}
}
