package workspace

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/fatihahmukti-create/Marko-AI/internal/ai"
	"github.com/fatihahmukti-create/Marko-AI/internal/models"
)

type noopSession struct{}

func (noopSession) SendTurn(context.Context, string) ai.Stream { return nil }

func newTestManager() *Manager {
	return NewManager(func() ai.ChatSession { return noopSession{} })
}

func samplePlan() models.MarketingPlan {
	return models.MarketingPlan{ExecutiveSummary: "Ringkasan"}
}

func TestManagerGetCreatesIdleWorkspace(t *testing.T) {
	manager := newTestManager()
	userID := uuid.New()

	ws := manager.Get(userID)
	if ws.Status() != models.AnalysisStatusIdle {
		t.Fatalf("expected idle workspace, got %s", ws.Status())
	}

	if manager.Get(userID) != ws {
		t.Fatal("expected the same workspace on repeated Get")
	}
	if manager.Get(uuid.New()) == ws {
		t.Fatal("expected distinct workspaces per user")
	}
}

// TestAnalysisLifecycle follows the status machine through a full run:
// IDLE -> LOADING -> SUCCESS, then reset back to IDLE.
func TestAnalysisLifecycle(t *testing.T) {
	ws := newTestManager().Get(uuid.New())

	if err := ws.BeginAnalysis(); err != nil {
		t.Fatalf("expected begin from idle to succeed, got %v", err)
	}
	if ws.Status() != models.AnalysisStatusLoading {
		t.Fatalf("expected loading, got %s", ws.Status())
	}

	if err := ws.BeginAnalysis(); !errors.Is(err, ErrAnalysisInFlight) {
		t.Fatalf("expected in-flight rejection, got %v", err)
	}

	ws.CompleteAnalysis(samplePlan())
	if ws.Status() != models.AnalysisStatusSuccess {
		t.Fatalf("expected success, got %s", ws.Status())
	}
	if ws.Plan() == nil {
		t.Fatal("expected a plan after completion")
	}

	if err := ws.BeginAnalysis(); !errors.Is(err, ErrNotIdle) {
		t.Fatalf("expected not-idle rejection after success, got %v", err)
	}

	ws.Reset()
	if ws.Status() != models.AnalysisStatusIdle {
		t.Fatalf("expected idle after reset, got %s", ws.Status())
	}
	if ws.Plan() != nil {
		t.Fatal("expected plan cleared after reset")
	}
}

func TestFailAnalysis(t *testing.T) {
	ws := newTestManager().Get(uuid.New())

	if err := ws.BeginAnalysis(); err != nil {
		t.Fatalf("begin: %v", err)
	}
	ws.FailAnalysis()

	if ws.Status() != models.AnalysisStatusError {
		t.Fatalf("expected error status, got %s", ws.Status())
	}
	if ws.Plan() != nil {
		t.Fatal("expected no plan after failure")
	}

	if err := ws.BeginAnalysis(); !errors.Is(err, ErrNotIdle) {
		t.Fatalf("expected reset to be required after failure, got %v", err)
	}

	// Transitions outside LOADING are ignored.
	ws.CompleteAnalysis(samplePlan())
	if ws.Status() != models.AnalysisStatusError || ws.Plan() != nil {
		t.Fatal("expected completion outside loading to be a no-op")
	}
}

func TestSelectHistory(t *testing.T) {
	ws := newTestManager().Get(uuid.New())

	if err := ws.SelectHistory(samplePlan()); err != nil {
		t.Fatalf("expected selection from idle to succeed, got %v", err)
	}
	if ws.Status() != models.AnalysisStatusSuccess || ws.Plan() == nil {
		t.Fatal("expected selected plan on display")
	}

	other := samplePlan()
	other.ExecutiveSummary = "Lain"
	if err := ws.SelectHistory(other); err != nil {
		t.Fatalf("expected selection from success to succeed, got %v", err)
	}
	if ws.Plan().ExecutiveSummary != "Lain" {
		t.Fatal("expected the displayed plan to be replaced")
	}

	ws.Reset()
	if err := ws.BeginAnalysis(); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := ws.SelectHistory(samplePlan()); !errors.Is(err, ErrAnalysisInFlight) {
		t.Fatalf("expected selection during loading to be rejected, got %v", err)
	}
}

func TestChatRequiresPlan(t *testing.T) {
	ws := newTestManager().Get(uuid.New())

	if err := ws.OpenChat(""); !errors.Is(err, ErrNoPlan) {
		t.Fatalf("expected no-plan rejection, got %v", err)
	}

	if err := ws.SelectHistory(samplePlan()); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := ws.OpenChat("Jelaskan analisis SWOT"); err != nil {
		t.Fatalf("expected chat to open, got %v", err)
	}
	if !ws.ChatOpen() {
		t.Fatal("expected chat panel open")
	}

	if seed := ws.TakeChatSeed(); seed != "Jelaskan analisis SWOT" {
		t.Fatalf("unexpected seed: %q", seed)
	}
	if seed := ws.TakeChatSeed(); seed != "" {
		t.Fatalf("expected seed consumed, got %q", seed)
	}

	ws.CloseChat()
	if ws.ChatOpen() {
		t.Fatal("expected chat panel closed")
	}
}

func TestChatSessionSurvivesClose(t *testing.T) {
	ws := newTestManager().Get(uuid.New())
	if err := ws.SelectHistory(samplePlan()); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := ws.OpenChat(""); err != nil {
		t.Fatalf("open: %v", err)
	}

	assembler := ws.Chat()
	ws.CloseChat()
	if ws.Chat() != assembler {
		t.Fatal("expected the conversation to survive closing the panel")
	}

	ws.Reset()
	if ws.Chat() == assembler {
		t.Fatal("expected reset to drop the conversation")
	}
}
