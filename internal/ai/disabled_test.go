package ai

import (
	"context"
	"errors"
	"io"
	"testing"
)

// TestDisabledClientGeneration checks that a server started without an API
// key answers generation attempts with a service-unavailable error instead of
// refusing to start.
func TestDisabledClientGeneration(t *testing.T) {
	generator := NewGenerator(NewDisabledClient())

	_, _, err := generator.GeneratePlan(context.Background(), testInput())
	var genErr *GenerationError
	if !errors.As(err, &genErr) || genErr.Kind != KindServiceUnavailable {
		t.Fatalf("expected service unavailable, got %v", err)
	}
}

func TestDisabledClientChat(t *testing.T) {
	stream := NewDisabledClient().StartChat().SendTurn(context.Background(), "Halo")

	_, err := stream.Next()
	if err == nil || errors.Is(err, io.EOF) {
		t.Fatalf("expected a failure, not a clean end of stream, got %v", err)
	}
}
