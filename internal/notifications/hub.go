package notifications

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type EventType string

// Event types mirror the analysis status transitions and history mutations a
// client may want to react to without polling.
const (
	EventAnalysisStarted   EventType = "analysis_started"
	EventAnalysisSucceeded EventType = "analysis_succeeded"
	EventAnalysisFailed    EventType = "analysis_failed"
	EventHistoryAdded      EventType = "history_added"
	EventHistoryDeleted    EventType = "history_deleted"
)

type Event struct {
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

// Hub fans events out to a user's SSE subscribers. Delivery is best effort:
// a subscriber with a full buffer misses the event rather than blocking the
// publisher.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[uuid.UUID]map[chan Event]struct{}
}

// NewHub creates the event hub.
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[uuid.UUID]map[chan Event]struct{}),
	}
}

// Subscribe registers a listener for one user's events. The returned function
// unsubscribes and closes the channel.
func (h *Hub) Subscribe(userID uuid.UUID) (<-chan Event, func()) {
	ch := make(chan Event, 10)

	h.mu.Lock()
	defer h.mu.Unlock()

	userSubs, ok := h.subscribers[userID]
	if !ok {
		userSubs = make(map[chan Event]struct{})
		h.subscribers[userID] = userSubs
	}
	userSubs[ch] = struct{}{}

	return ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()

		if subs, exists := h.subscribers[userID]; exists {
			delete(subs, ch)
			if len(subs) == 0 {
				delete(h.subscribers, userID)
			}
		}
		close(ch)
	}
}

// Publish delivers an event to all of a user's subscribers.
func (h *Hub) Publish(userID uuid.UUID, event Event) {
	event.Timestamp = time.Now().UTC()

	h.mu.RLock()
	defer h.mu.RUnlock()

	subs, ok := h.subscribers[userID]
	if !ok {
		return
	}

	for ch := range subs {
		select {
		case ch <- event:
		default:
		}
	}
}
