package notifications

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestHubPublishSubscribe(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()

	ch, unsubscribe := hub.Subscribe(userID)
	defer unsubscribe()

	hub.Publish(userID, Event{Type: EventAnalysisStarted})

	select {
	case event := <-ch:
		if event.Type != EventAnalysisStarted {
			t.Fatalf("expected analysis_started, got %s", event.Type)
		}
		if event.Timestamp.IsZero() {
			t.Fatal("expected timestamp to be set")
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected event to be delivered")
	}
}

// TestHubIsolatesUsers checks that events never cross user boundaries.
func TestHubIsolatesUsers(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()

	ch, unsubscribe := hub.Subscribe(userID)
	defer unsubscribe()

	hub.Publish(uuid.New(), Event{Type: EventHistoryAdded})

	select {
	case event := <-ch:
		t.Fatalf("expected no delivery, got %s", event.Type)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubUnsubscribe(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()

	ch, unsubscribe := hub.Subscribe(userID)
	unsubscribe()

	if _, ok := <-ch; ok {
		t.Fatal("expected channel to be closed")
	}
}
