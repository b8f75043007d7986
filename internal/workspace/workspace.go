package workspace

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/fatihahmukti-create/Marko-AI/internal/ai"
	"github.com/fatihahmukti-create/Marko-AI/internal/chat"
	"github.com/fatihahmukti-create/Marko-AI/internal/models"
)

var (
	// ErrAnalysisInFlight rejects a second submission while one is LOADING.
	ErrAnalysisInFlight = errors.New("an analysis is already in progress")
	// ErrNotIdle rejects a submission before the previous result was reset.
	ErrNotIdle = errors.New("workspace is not idle")
	// ErrNoPlan is returned when chat is opened without a generated plan.
	ErrNoPlan = errors.New("no plan is available")
)

// Workspace is one user's analysis state: the status machine, the current
// plan, chat visibility and the pending report-to-chat seed message. All
// mutations go through this type; handlers never touch the fields directly.
type Workspace struct {
	mu          sync.Mutex
	status      models.AnalysisStatus
	plan        *models.MarketingPlan
	chatOpen    bool
	chatSeed    string
	chatSession *chat.Assembler
	newSession  func() ai.ChatSession
}

// Manager hands out per-user workspaces, creating them idle on first use.
type Manager struct {
	mu         sync.Mutex
	workspaces map[uuid.UUID]*Workspace
	newSession func() ai.ChatSession
}

// NewManager creates the workspace manager. newSession opens a fresh
// provider-side chat conversation whenever a workspace needs one.
func NewManager(newSession func() ai.ChatSession) *Manager {
	return &Manager{
		workspaces: make(map[uuid.UUID]*Workspace),
		newSession: newSession,
	}
}

// Get returns the user's workspace, creating an idle one if needed.
func (m *Manager) Get(userID uuid.UUID) *Workspace {
	m.mu.Lock()
	defer m.mu.Unlock()

	ws, ok := m.workspaces[userID]
	if !ok {
		ws = &Workspace{status: models.AnalysisStatusIdle, newSession: m.newSession}
		m.workspaces[userID] = ws
	}
	return ws
}

// Status reports the current analysis status.
func (w *Workspace) Status() models.AnalysisStatus {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

// Plan returns the plan currently on display, or nil.
func (w *Workspace) Plan() *models.MarketingPlan {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.plan == nil {
		return nil
	}
	planCopy := *w.plan
	return &planCopy
}

// BeginAnalysis moves IDLE to LOADING. A submission while LOADING is rejected
// outright; a submission after SUCCESS or ERROR requires a reset first.
func (w *Workspace) BeginAnalysis() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.status {
	case models.AnalysisStatusLoading:
		return ErrAnalysisInFlight
	case models.AnalysisStatusIdle:
		w.status = models.AnalysisStatusLoading
		return nil
	default:
		return ErrNotIdle
	}
}

// CompleteAnalysis stores the generated plan and moves LOADING to SUCCESS.
func (w *Workspace) CompleteAnalysis(plan models.MarketingPlan) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.status != models.AnalysisStatusLoading {
		return
	}
	w.plan = &plan
	w.status = models.AnalysisStatusSuccess
}

// FailAnalysis moves LOADING to ERROR without storing a plan.
func (w *Workspace) FailAnalysis() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.status != models.AnalysisStatusLoading {
		return
	}
	w.status = models.AnalysisStatusError
}

// Reset returns to IDLE, clearing the plan, the chat panel and any pending
// chat seed. The provider-side chat session is dropped with the assembler.
func (w *Workspace) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.plan = nil
	w.status = models.AnalysisStatusIdle
	w.chatOpen = false
	w.chatSeed = ""
	w.chatSession = nil
}

// SelectHistory replaces the displayed plan with a historical one without
// invoking the generator. Allowed from IDLE (the history list view) and from
// SUCCESS; rejected while an analysis is loading.
func (w *Workspace) SelectHistory(plan models.MarketingPlan) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.status == models.AnalysisStatusLoading {
		return ErrAnalysisInFlight
	}
	w.plan = &plan
	w.status = models.AnalysisStatusSuccess
	return nil
}

// OpenChat shows the chat panel and stores a prefabricated seed message from
// the report view. Requires a plan on display.
func (w *Workspace) OpenChat(seed string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.status != models.AnalysisStatusSuccess || w.plan == nil {
		return ErrNoPlan
	}
	w.chatOpen = true
	w.chatSeed = seed
	return nil
}

// CloseChat hides the chat panel. The conversation itself is kept so
// reopening continues where the user left off.
func (w *Workspace) CloseChat() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.chatOpen = false
}

// ChatOpen reports whether the chat panel is visible.
func (w *Workspace) ChatOpen() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.chatOpen
}

// TakeChatSeed returns the pending seed message and clears it.
func (w *Workspace) TakeChatSeed() string {
	w.mu.Lock()
	defer w.mu.Unlock()

	seed := w.chatSeed
	w.chatSeed = ""
	return seed
}

// Chat returns the conversation assembler, opening a provider session on
// first use.
func (w *Workspace) Chat() *chat.Assembler {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.chatSession == nil {
		w.chatSession = chat.NewAssembler(w.newSession())
	}
	return w.chatSession
}
