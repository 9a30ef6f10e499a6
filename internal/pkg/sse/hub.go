package sse

import (
	"sync"

	"github.com/google/uuid"
)

// Topic names published by the services.
const (
	TopicEmployees = "employees:updated"
)

// Event is one server-sent event delivered to subscribers. ID is assigned at
// publish time so clients can resume with Last-Event-ID.
type Event struct {
	ID    string
	Topic string
	Data  interface{}
}

// Hub fans events out to SSE subscribers. It replaces the content-hash
// polling the legacy frontend used for change detection.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a subscriber for a topic and returns the event channel
// and a cleanup function.
func (h *Hub) Subscribe(topic string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 16)

	if h.subscribers[topic] == nil {
		h.subscribers[topic] = make(map[chan Event]struct{})
	}
	h.subscribers[topic][ch] = struct{}{}

	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subscribers[topic], ch)
		close(ch)
		if len(h.subscribers[topic]) == 0 {
			delete(h.subscribers, topic)
		}
	}

	return ch, cleanup
}

// Publish sends an event to every subscriber of the topic. Slow subscribers
// with a full channel are skipped rather than blocked on.
func (h *Hub) Publish(topic string, data interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	event := Event{
		ID:    uuid.NewString(),
		Topic: topic,
		Data:  data,
	}

	for ch := range h.subscribers[topic] {
		select {
		case ch <- event:
		default:
		}
	}
}

// SubscriberCount returns the number of active subscribers for a topic.
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[topic])
}
