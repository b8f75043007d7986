package chat

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/fatihahmukti-create/Marko-AI/internal/ai"
	"github.com/fatihahmukti-create/Marko-AI/internal/models"
)

// FallbackMessage replaces a failed reply. Appended as a distinct message so
// any partial text already streamed stays visible.
const FallbackMessage = "Maaf, terjadi kesalahan saat memproses pesan Anda."

// Greeting opens every chat panel, mirroring the assistant introducing itself.
const Greeting = "Halo! Saya Marko. Ada pertanyaan tentang strategi pemasaran Anda atau butuh ide konten spesifik? Tanyakan saja!"

// ErrTurnInFlight is returned when a turn is started while another is still
// streaming. Interleaved streams would corrupt the last-message-replace rule,
// so the assembler refuses rather than queueing.
var ErrTurnInFlight = errors.New("a chat turn is already in flight")

type turnState int

const (
	stateIdle turnState = iota
	stateSending
	stateStreaming
)

type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeFailed
)

// Assembler owns one conversation's message list and accumulates streamed
// reply fragments into the last message. One turn may be in flight at a time.
type Assembler struct {
	mu       sync.Mutex
	session  ai.ChatSession
	messages []models.ChatMessage
	state    turnState
}

// NewAssembler wraps a provider chat session and seeds the greeting message.
func NewAssembler(session ai.ChatSession) *Assembler {
	return &Assembler{
		session: session,
		messages: []models.ChatMessage{
			{Role: models.ChatRoleModel, Content: Greeting},
		},
	}
}

// Messages returns a snapshot of the conversation so far.
func (a *Assembler) Messages() []models.ChatMessage {
	a.mu.Lock()
	defer a.mu.Unlock()

	snapshot := make([]models.ChatMessage, len(a.messages))
	copy(snapshot, a.messages)
	return snapshot
}

// Send runs one full turn: the user message is appended immediately, an empty
// model placeholder is added when streaming starts, and every fragment
// replaces the last message with the concatenation so far, in arrival order.
// onFragment, when non-nil, observes each fragment as it lands. A mid-stream
// failure keeps the partial placeholder and appends FallbackMessage instead.
func (a *Assembler) Send(ctx context.Context, text string, onFragment func(fragment, accumulated string)) (Outcome, error) {
	a.mu.Lock()
	if a.state != stateIdle {
		a.mu.Unlock()
		return OutcomeFailed, ErrTurnInFlight
	}
	a.state = stateSending
	a.messages = append(a.messages, models.ChatMessage{Role: models.ChatRoleUser, Content: text})
	a.mu.Unlock()

	stream := a.session.SendTurn(ctx, text)

	a.mu.Lock()
	a.state = stateStreaming
	a.messages = append(a.messages, models.ChatMessage{Role: models.ChatRoleModel, Content: ""})
	a.mu.Unlock()

	var accumulated string
	for {
		fragment, err := stream.Next()
		if errors.Is(err, io.EOF) {
			a.mu.Lock()
			a.state = stateIdle
			a.mu.Unlock()
			return OutcomeSuccess, nil
		}
		if err != nil {
			a.mu.Lock()
			a.messages = append(a.messages, models.ChatMessage{Role: models.ChatRoleModel, Content: FallbackMessage})
			a.state = stateIdle
			a.mu.Unlock()
			return OutcomeFailed, err
		}

		accumulated += fragment

		a.mu.Lock()
		a.messages[len(a.messages)-1] = models.ChatMessage{Role: models.ChatRoleModel, Content: accumulated}
		a.mu.Unlock()

		if onFragment != nil {
			onFragment(fragment, accumulated)
		}
	}
}
