package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubPublishReachesSubscribers(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe(TopicEmployees)
	assert.Equal(t, 1, hub.SubscriberCount(TopicEmployees))

	hub.Publish(TopicEmployees, map[string]string{"employee_id": "483920"})

	ev := <-ch
	require.NotEmpty(t, ev.ID)
	assert.Equal(t, TopicEmployees, ev.Topic)

	cleanup()
	assert.Equal(t, 0, hub.SubscriberCount(TopicEmployees))

	_, open := <-ch
	assert.False(t, open, "cleanup closes the channel")
}

func TestHubSkipsSlowSubscriber(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe(TopicEmployees)
	defer cleanup()

	// Fill the buffer past capacity; Publish must not block.
	for i := 0; i < 20; i++ {
		hub.Publish(TopicEmployees, i)
	}
	assert.Len(t, ch, 16)
}
