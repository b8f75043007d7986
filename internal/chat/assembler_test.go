package chat

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/fatihahmukti-create/Marko-AI/internal/ai"
	"github.com/fatihahmukti-create/Marko-AI/internal/models"
)

type stubStream struct {
	fragments []string
	err       error
	pos       int
}

func (s *stubStream) Next() (string, error) {
	if s.pos < len(s.fragments) {
		fragment := s.fragments[s.pos]
		s.pos++
		return fragment, nil
	}
	if s.err != nil {
		return "", s.err
	}
	return "", io.EOF
}

type stubSession struct {
	stream *stubStream
	sent   []string
}

func (s *stubSession) SendTurn(_ context.Context, text string) ai.Stream {
	s.sent = append(s.sent, text)
	return s.stream
}

func TestAssemblerSeedsGreeting(t *testing.T) {
	assembler := NewAssembler(&stubSession{})

	messages := assembler.Messages()
	if len(messages) != 1 {
		t.Fatalf("expected a single greeting message, got %d", len(messages))
	}
	if messages[0].Role != models.ChatRoleModel || messages[0].Content != Greeting {
		t.Fatalf("unexpected greeting message: %+v", messages[0])
	}
}

// TestAssemblerAccumulatesFragments checks the last-message-replace rule: each
// fragment extends the reply in arrival order; earlier messages never change.
func TestAssemblerAccumulatesFragments(t *testing.T) {
	session := &stubSession{stream: &stubStream{fragments: []string{"Hal", "o, ", "dunia"}}}
	assembler := NewAssembler(session)

	var seen []string
	outcome, err := assembler.Send(context.Background(), "Apa kabar?", func(_, accumulated string) {
		seen = append(seen, accumulated)
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if outcome != OutcomeSuccess {
		t.Fatalf("expected success outcome, got %v", outcome)
	}

	if len(session.sent) != 1 || session.sent[0] != "Apa kabar?" {
		t.Fatalf("unexpected sent turns: %v", session.sent)
	}

	for i := 1; i < len(seen); i++ {
		if !strings.HasPrefix(seen[i], seen[i-1]) {
			t.Fatalf("accumulated text %q does not extend %q", seen[i], seen[i-1])
		}
	}

	messages := assembler.Messages()
	if len(messages) != 3 {
		t.Fatalf("expected greeting, user and model messages, got %d", len(messages))
	}
	if messages[1].Role != models.ChatRoleUser || messages[1].Content != "Apa kabar?" {
		t.Fatalf("unexpected user message: %+v", messages[1])
	}
	if messages[2].Role != models.ChatRoleModel || messages[2].Content != "Halo, dunia" {
		t.Fatalf("unexpected model message: %+v", messages[2])
	}
}

func TestAssemblerEmptyReply(t *testing.T) {
	session := &stubSession{stream: &stubStream{}}
	assembler := NewAssembler(session)

	outcome, err := assembler.Send(context.Background(), "Halo", nil)
	if err != nil || outcome != OutcomeSuccess {
		t.Fatalf("expected success on empty reply, got outcome=%v err=%v", outcome, err)
	}

	messages := assembler.Messages()
	last := messages[len(messages)-1]
	if last.Role != models.ChatRoleModel || last.Content != "" {
		t.Fatalf("expected empty model placeholder to remain, got %+v", last)
	}
}

// TestAssemblerMidStreamFailure keeps the partial reply and appends the
// fallback as a separate message.
func TestAssemblerMidStreamFailure(t *testing.T) {
	streamErr := errors.New("stream interrupted")
	session := &stubSession{stream: &stubStream{fragments: []string{"Sebagian "}, err: streamErr}}
	assembler := NewAssembler(session)

	outcome, err := assembler.Send(context.Background(), "Lanjutkan", nil)
	if !errors.Is(err, streamErr) {
		t.Fatalf("expected stream error surfaced, got %v", err)
	}
	if outcome != OutcomeFailed {
		t.Fatalf("expected failed outcome, got %v", outcome)
	}

	messages := assembler.Messages()
	if len(messages) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(messages))
	}
	if messages[2].Content != "Sebagian " {
		t.Fatalf("expected partial reply preserved, got %+v", messages[2])
	}
	if messages[3].Role != models.ChatRoleModel || messages[3].Content != FallbackMessage {
		t.Fatalf("expected fallback message appended, got %+v", messages[3])
	}

	// A failed turn settles the assembler; the next turn must be accepted.
	session.stream = &stubStream{fragments: []string{"Baik"}}
	if _, err := assembler.Send(context.Background(), "Coba lagi", nil); err != nil {
		t.Fatalf("expected next turn after failure to succeed, got %v", err)
	}
}

type blockingSession struct {
	started chan struct{}
	release chan struct{}
}

func (s *blockingSession) SendTurn(context.Context, string) ai.Stream {
	return &blockingStream{started: s.started, release: s.release}
}

type blockingStream struct {
	started chan struct{}
	release chan struct{}
	done    bool
}

func (s *blockingStream) Next() (string, error) {
	if s.done {
		return "", io.EOF
	}
	s.done = true
	close(s.started)
	<-s.release
	return "selesai", nil
}

func TestAssemblerRejectsConcurrentTurn(t *testing.T) {
	session := &blockingSession{started: make(chan struct{}), release: make(chan struct{})}
	assembler := NewAssembler(session)

	firstDone := make(chan error, 1)
	go func() {
		_, err := assembler.Send(context.Background(), "pertama", nil)
		firstDone <- err
	}()

	<-session.started

	if _, err := assembler.Send(context.Background(), "kedua", nil); !errors.Is(err, ErrTurnInFlight) {
		t.Fatalf("expected ErrTurnInFlight, got %v", err)
	}

	close(session.release)
	if err := <-firstDone; err != nil {
		t.Fatalf("expected first turn to finish cleanly, got %v", err)
	}
}
