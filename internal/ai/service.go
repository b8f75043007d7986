package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/fatihahmukti-create/Marko-AI/internal/models"
)

// Generator produces marketing plans from business inputs through a Client.
type Generator struct {
	client Client
}

// NewGenerator creates the plan generator service.
func NewGenerator(client Client) *Generator {
	return &Generator{client: client}
}

// GeneratePlan asks the model for a structured marketing plan and validates
// the response. No retry is performed here; resubmission is the caller's
// responsibility. Failures are always *GenerationError.
func (g *Generator) GeneratePlan(ctx context.Context, input models.BusinessInput) (models.MarketingPlan, string, error) {
	prompt := buildPlanPrompt(input)

	content, err := g.client.GenerateStructured(ctx, prompt)
	if err != nil {
		return models.MarketingPlan{}, prompt, unavailable(err)
	}

	plan, err := decodePlan(content)
	if err != nil {
		return models.MarketingPlan{}, prompt, invalidShape(err)
	}

	return plan, prompt, nil
}

// StartChat opens a persona-seeded chat session on the underlying client.
func (g *Generator) StartChat() ChatSession {
	return g.client.StartChat()
}

func buildPlanPrompt(input models.BusinessInput) string {
	return fmt.Sprintf(`Bertindaklah sebagai Konsultan Pemasaran & Strategi Bisnis Senior (CMO level).
Tolong buatkan rencana pemasaran dan bisnis strategis yang komprehensif untuk:

Nama Bisnis: %s
Industri: %s
Deskripsi: %s
Target Audiens: %s
Tujuan: %s

Analisis harus mendalam, profesional, dan dapat ditindaklanjuti.
1. Sertakan analisis kompetitor (sebutkan 3 kompetitor tipikal/nyata) dan celah pasar.
2. Berikan rekomendasi investasi strategis (misalnya: alokasi budget untuk Ads, Tools, atau Influencer).
3. Untuk setiap rekomendasi investasi, sertakan 2-3 KPI (Key Performance Indicators) spesifik untuk mengukur keberhasilannya.
4. Berikan 6 ide konten digital marketing yang kreatif, spesifik, dan viral-potential (tentukan platform, tipe, dan topik).
5. Identifikasi 3-5 risiko bisnis potensial dan strategi mitigasinya.
Gunakan Bahasa Indonesia yang formal dan bisnis.`,
		input.BusinessName, input.Industry, input.Description, input.TargetAudience, input.Goals)
}

// decodePlan parses the response text as JSON and checks it against the
// declared shape. The schema constrains the model, but the result is never
// trusted without this pass.
func decodePlan(content string) (models.MarketingPlan, error) {
	payload := extractJSON(content)
	if payload == "" {
		return models.MarketingPlan{}, errors.New("response does not contain json")
	}

	var plan models.MarketingPlan
	if err := json.Unmarshal([]byte(payload), &plan); err != nil {
		return models.MarketingPlan{}, err
	}

	if err := validatePlan(plan); err != nil {
		return models.MarketingPlan{}, err
	}

	return plan, nil
}

// extractJSON strips code fences and surrounding prose the model sometimes
// adds despite the JSON response mime type.
func extractJSON(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ""
	}

	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimPrefix(strings.TrimSpace(trimmed), "json")
		trimmed = strings.TrimSpace(trimmed)
		if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
			trimmed = trimmed[:idx]
		}
		trimmed = strings.TrimSpace(trimmed)
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end == -1 || end <= start {
		return ""
	}

	return trimmed[start : end+1]
}
