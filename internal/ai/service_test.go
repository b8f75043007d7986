package ai

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/fatihahmukti-create/Marko-AI/internal/models"
)

func testInput() models.BusinessInput {
	return models.BusinessInput{
		BusinessName:   "Kopi Senja",
		Industry:       "F&B",
		Description:    "Kedai kopi lokal dengan biji arabika",
		TargetAudience: "Pekerja kantoran 20-35 tahun",
		Goals:          "Naikkan penjualan online",
	}
}

type stubClient struct {
	response string
	err      error
	prompt   string
}

func (s *stubClient) GenerateStructured(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubClient) StartChat() ChatSession {
	return nil
}

func TestGeneratePlanSuccess(t *testing.T) {
	payload, err := json.Marshal(validPlan())
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}

	client := &stubClient{response: string(payload)}
	generator := NewGenerator(client)

	plan, prompt, err := generator.GeneratePlan(context.Background(), testInput())
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	if plan.ExecutiveSummary != "Ringkasan eksekutif" {
		t.Fatalf("unexpected plan content: %q", plan.ExecutiveSummary)
	}

	if !strings.Contains(prompt, "Nama Bisnis: Kopi Senja") {
		t.Fatalf("prompt missing business name: %q", prompt)
	}
	if !strings.Contains(client.prompt, "Tujuan: Naikkan penjualan online") {
		t.Fatalf("prompt missing goals: %q", client.prompt)
	}
}

func TestGeneratePlanAcceptsFencedResponse(t *testing.T) {
	payload, err := json.Marshal(validPlan())
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}

	client := &stubClient{response: "```json\n" + string(payload) + "\n```"}
	generator := NewGenerator(client)

	if _, _, err := generator.GeneratePlan(context.Background(), testInput()); err != nil {
		t.Fatalf("expected fenced response to parse, got %v", err)
	}
}

// TestGeneratePlanClassifiesErrors checks the split between transport failures
// and malformed model output.
func TestGeneratePlanClassifiesErrors(t *testing.T) {
	client := &stubClient{err: errors.New("provider down")}
	generator := NewGenerator(client)

	_, _, err := generator.GeneratePlan(context.Background(), testInput())
	var genErr *GenerationError
	if !errors.As(err, &genErr) || genErr.Kind != KindServiceUnavailable {
		t.Fatalf("expected service unavailable, got %v", err)
	}

	client = &stubClient{response: `{"executiveSummary": "saja"}`}
	generator = NewGenerator(client)

	_, _, err = generator.GeneratePlan(context.Background(), testInput())
	if !errors.As(err, &genErr) || genErr.Kind != KindInvalidResponseShape {
		t.Fatalf("expected invalid response shape, got %v", err)
	}

	client = &stubClient{response: "maaf, tidak bisa membantu"}
	generator = NewGenerator(client)

	_, _, err = generator.GeneratePlan(context.Background(), testInput())
	if !errors.As(err, &genErr) || genErr.Kind != KindInvalidResponseShape {
		t.Fatalf("expected non-json response to be an invalid shape, got %v", err)
	}
}

func TestGeneratePlanRejectsBadEnum(t *testing.T) {
	plan := validPlan()
	plan.RiskAnalysis[0].Impact = "Severe"

	payload, err := json.Marshal(plan)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}

	generator := NewGenerator(&stubClient{response: string(payload)})

	_, _, err = generator.GeneratePlan(context.Background(), testInput())
	var genErr *GenerationError
	if !errors.As(err, &genErr) || genErr.Kind != KindInvalidResponseShape {
		t.Fatalf("expected invalid response shape, got %v", err)
	}
}
