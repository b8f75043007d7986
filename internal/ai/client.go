package ai

import "context"

// Client abstracts the generation service. The production implementation is
// the Gemini client in gemini.go; tests substitute stubs.
type Client interface {
	// GenerateStructured sends one prompt constrained by the plan schema and
	// returns the raw response text.
	GenerateStructured(ctx context.Context, prompt string) (string, error)
	// StartChat opens a stateful conversation seeded with the assistant
	// persona. Turn history is kept on the provider side.
	StartChat() ChatSession
}

// ChatSession is one provider-side conversation. Callers send user turns and
// consume the reply as an ordered fragment stream.
type ChatSession interface {
	SendTurn(ctx context.Context, text string) Stream
}

// Stream is a lazy, finite, ordered sequence of reply fragments. Next returns
// io.EOF after the final fragment; a stream is not restartable. Fragments must
// be concatenated in arrival order to reconstruct the full reply.
type Stream interface {
	Next() (string, error)
}
