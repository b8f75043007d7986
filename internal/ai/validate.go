package ai

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatihahmukti-create/Marko-AI/internal/models"
)

// validatePlan enforces the structural contract: every required field present
// and type-correct, every rating inside the High/Medium/Low enum. Item counts
// (3 competitors, 6 content ideas and so on) are requested in the prompt but
// deliberately not enforced here.
func validatePlan(plan models.MarketingPlan) error {
	if strings.TrimSpace(plan.ExecutiveSummary) == "" {
		return errors.New("executiveSummary is required")
	}
	if strings.TrimSpace(plan.MarketAnalysis) == "" {
		return errors.New("marketAnalysis is required")
	}
	if strings.TrimSpace(plan.TargetPersona) == "" {
		return errors.New("targetPersona is required")
	}

	if len(plan.CompetitorAnalysis.Competitors) == 0 {
		return errors.New("competitorAnalysis.competitors is required")
	}
	for i, competitor := range plan.CompetitorAnalysis.Competitors {
		if strings.TrimSpace(competitor.Name) == "" {
			return fmt.Errorf("competitor %d: name is required", i)
		}
		if strings.TrimSpace(competitor.Strengths) == "" {
			return fmt.Errorf("competitor %d: strengths is required", i)
		}
		if strings.TrimSpace(competitor.Weaknesses) == "" {
			return fmt.Errorf("competitor %d: weaknesses is required", i)
		}
	}
	if strings.TrimSpace(plan.CompetitorAnalysis.MarketGap) == "" {
		return errors.New("competitorAnalysis.marketGap is required")
	}

	if err := validateSWOT(plan.SWOT); err != nil {
		return err
	}
	if err := validateMarketingMix(plan.MarketingMix); err != nil {
		return err
	}

	if len(plan.ContentStrategy) == 0 {
		return errors.New("contentStrategy is required")
	}
	for i, idea := range plan.ContentStrategy {
		if strings.TrimSpace(idea.Platform) == "" {
			return fmt.Errorf("content idea %d: platform is required", i)
		}
		if strings.TrimSpace(idea.ContentType) == "" {
			return fmt.Errorf("content idea %d: contentType is required", i)
		}
		if strings.TrimSpace(idea.Topic) == "" {
			return fmt.Errorf("content idea %d: topic is required", i)
		}
		if strings.TrimSpace(idea.Description) == "" {
			return fmt.Errorf("content idea %d: description is required", i)
		}
	}

	if len(plan.ActionPlan) == 0 {
		return errors.New("actionPlan is required")
	}
	for i, action := range plan.ActionPlan {
		if strings.TrimSpace(action.Title) == "" {
			return fmt.Errorf("action %d: title is required", i)
		}
		if strings.TrimSpace(action.Description) == "" {
			return fmt.Errorf("action %d: description is required", i)
		}
		if !isRating(action.Impact) {
			return fmt.Errorf("action %d: invalid impact: %s", i, action.Impact)
		}
		if !isRating(action.Difficulty) {
			return fmt.Errorf("action %d: invalid difficulty: %s", i, action.Difficulty)
		}
	}

	if len(plan.RiskAnalysis) == 0 {
		return errors.New("riskAnalysis is required")
	}
	for i, risk := range plan.RiskAnalysis {
		if strings.TrimSpace(risk.RiskType) == "" {
			return fmt.Errorf("risk %d: riskType is required", i)
		}
		if strings.TrimSpace(risk.Description) == "" {
			return fmt.Errorf("risk %d: description is required", i)
		}
		if !isRating(risk.Impact) {
			return fmt.Errorf("risk %d: invalid impact: %s", i, risk.Impact)
		}
		if strings.TrimSpace(risk.Mitigation) == "" {
			return fmt.Errorf("risk %d: mitigation is required", i)
		}
	}

	if len(plan.InvestmentRecommendations) == 0 {
		return errors.New("investmentRecommendations is required")
	}
	for i, investment := range plan.InvestmentRecommendations {
		if strings.TrimSpace(investment.Area) == "" {
			return fmt.Errorf("investment %d: area is required", i)
		}
		if strings.TrimSpace(investment.Reasoning) == "" {
			return fmt.Errorf("investment %d: reasoning is required", i)
		}
		if !isRating(investment.Priority) {
			return fmt.Errorf("investment %d: invalid priority: %s", i, investment.Priority)
		}
		if len(investment.KPIs) == 0 {
			return fmt.Errorf("investment %d: kpis are required", i)
		}
		for j, kpi := range investment.KPIs {
			if strings.TrimSpace(kpi) == "" {
				return fmt.Errorf("investment %d: kpi %d is empty", i, j)
			}
		}
	}

	if len(plan.EstimatedGrowth) == 0 {
		return errors.New("estimatedGrowth is required")
	}

	return nil
}

func validateSWOT(swot models.SWOT) error {
	sections := []struct {
		name   string
		values []string
	}{
		{"strengths", swot.Strengths},
		{"weaknesses", swot.Weaknesses},
		{"opportunities", swot.Opportunities},
		{"threats", swot.Threats},
	}

	for _, section := range sections {
		if len(section.values) == 0 {
			return fmt.Errorf("swot.%s is required", section.name)
		}
		for i, value := range section.values {
			if strings.TrimSpace(value) == "" {
				return fmt.Errorf("swot.%s entry %d is empty", section.name, i)
			}
		}
	}

	return nil
}

func validateMarketingMix(mix models.MarketingMix) error {
	if strings.TrimSpace(mix.ProductStrategy) == "" {
		return errors.New("marketingMix.productStrategy is required")
	}
	if strings.TrimSpace(mix.PriceStrategy) == "" {
		return errors.New("marketingMix.priceStrategy is required")
	}
	if strings.TrimSpace(mix.PlaceStrategy) == "" {
		return errors.New("marketingMix.placeStrategy is required")
	}
	if strings.TrimSpace(mix.PromotionStrategy) == "" {
		return errors.New("marketingMix.promotionStrategy is required")
	}

	return nil
}

func isRating(value models.RatingLevel) bool {
	switch value {
	case models.RatingHigh, models.RatingMedium, models.RatingLow:
		return true
	default:
		return false
	}
}
