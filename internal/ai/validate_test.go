package ai

import (
	"strings"
	"testing"

	"github.com/fatihahmukti-create/Marko-AI/internal/models"
)

func validPlan() models.MarketingPlan {
	return models.MarketingPlan{
		ExecutiveSummary: "Ringkasan eksekutif",
		MarketAnalysis:   "Analisis pasar",
		CompetitorAnalysis: models.CompetitorAnalysis{
			Competitors: []models.Competitor{
				{Name: "Kompetitor A", Strengths: "Brand kuat", Weaknesses: "Harga tinggi"},
			},
			MarketGap: "Segmen menengah belum terlayani",
		},
		TargetPersona: "Pemilik UMKM urban",
		SWOT: models.SWOT{
			Strengths:     []string{"Produk unik"},
			Weaknesses:    []string{"Modal terbatas"},
			Opportunities: []string{"Pasar online tumbuh"},
			Threats:       []string{"Kompetisi harga"},
		},
		MarketingMix: models.MarketingMix{
			ProductStrategy:   "Fokus kualitas",
			PriceStrategy:     "Harga kompetitif",
			PlaceStrategy:     "Marketplace",
			PromotionStrategy: "Konten organik",
		},
		ContentStrategy: []models.ContentIdea{
			{Platform: "Instagram", ContentType: "Reel", Topic: "Behind the scenes", Description: "Proses produksi"},
		},
		ActionPlan: []models.ActionItem{
			{Title: "Bangun profil", Description: "Lengkapi profil bisnis", Impact: models.RatingHigh, Difficulty: models.RatingLow},
		},
		RiskAnalysis: []models.RiskItem{
			{RiskType: "Operasional", Description: "Ketergantungan pemasok", Impact: models.RatingMedium, Mitigation: "Diversifikasi pemasok"},
		},
		InvestmentRecommendations: []models.InvestmentItem{
			{Area: "Ads", Reasoning: "Jangkauan cepat", Priority: models.RatingHigh, KPIs: []string{"CTR", "ROAS"}},
		},
		EstimatedGrowth: []float64{5, 12, 20, 31, 45, 60},
	}
}

func TestValidatePlanAccept(t *testing.T) {
	if err := validatePlan(validPlan()); err != nil {
		t.Fatalf("expected valid plan, got %v", err)
	}
}

func TestValidatePlanMissingFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*models.MarketingPlan)
	}{
		{"executive summary", func(p *models.MarketingPlan) { p.ExecutiveSummary = "   " }},
		{"market analysis", func(p *models.MarketingPlan) { p.MarketAnalysis = "" }},
		{"competitors", func(p *models.MarketingPlan) { p.CompetitorAnalysis.Competitors = nil }},
		{"market gap", func(p *models.MarketingPlan) { p.CompetitorAnalysis.MarketGap = "" }},
		{"target persona", func(p *models.MarketingPlan) { p.TargetPersona = "" }},
		{"swot threats", func(p *models.MarketingPlan) { p.SWOT.Threats = nil }},
		{"swot empty entry", func(p *models.MarketingPlan) { p.SWOT.Strengths = []string{" "} }},
		{"marketing mix", func(p *models.MarketingPlan) { p.MarketingMix.PriceStrategy = "" }},
		{"content strategy", func(p *models.MarketingPlan) { p.ContentStrategy = nil }},
		{"action plan", func(p *models.MarketingPlan) { p.ActionPlan = nil }},
		{"risk analysis", func(p *models.MarketingPlan) { p.RiskAnalysis = nil }},
		{"investments", func(p *models.MarketingPlan) { p.InvestmentRecommendations = nil }},
		{"investment kpis", func(p *models.MarketingPlan) { p.InvestmentRecommendations[0].KPIs = nil }},
		{"estimated growth", func(p *models.MarketingPlan) { p.EstimatedGrowth = nil }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			plan := validPlan()
			tc.mutate(&plan)
			if err := validatePlan(plan); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestValidatePlanRejectsUnknownRating(t *testing.T) {
	plan := validPlan()
	plan.ActionPlan[0].Impact = "Critical"
	if err := validatePlan(plan); err == nil {
		t.Fatal("expected invalid impact to be rejected")
	}

	plan = validPlan()
	plan.InvestmentRecommendations[0].Priority = "high"
	if err := validatePlan(plan); err == nil {
		t.Fatal("expected lowercase priority to be rejected")
	}
}

// TestExtractJSON checks stripping of markdown fences around the JSON body.
func TestExtractJSON(t *testing.T) {
	raw := `{"a":1}`
	if got := extractJSON(raw); got != raw {
		t.Fatalf("expected passthrough, got %q", got)
	}

	fenced := "```json\n{\"a\":1}\n```"
	if got := extractJSON(fenced); got != raw {
		t.Fatalf("expected fenced json extracted, got %q", got)
	}

	prose := "Berikut hasilnya:\n{\"a\":1}\nSemoga membantu."
	if got := extractJSON(prose); got != raw {
		t.Fatalf("expected json inside prose extracted, got %q", got)
	}

	if got := extractJSON("tidak ada json di sini"); got != "" {
		t.Fatalf("expected empty result, got %q", got)
	}

	if got := extractJSON(strings.Repeat(" ", 4)); got != "" {
		t.Fatalf("expected empty result for blank input, got %q", got)
	}
}
