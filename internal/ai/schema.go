package ai

import "github.com/google/generative-ai-go/genai"

var ratingEnum = []string{"High", "Medium", "Low"}

// planSchema declares the exact output shape the model is constrained to emit.
// Sent with every generation request as the response schema; the validator in
// validate.go re-checks the parsed result field by field.
var planSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"executiveSummary": {Type: genai.TypeString, Description: "A brief professional summary of the strategy."},
		"marketAnalysis":   {Type: genai.TypeString, Description: "Analysis of current market trends and general competition landscape."},
		"competitorAnalysis": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"competitors": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"name":       {Type: genai.TypeString, Description: "Name of a real or typical competitor in this space"},
							"strengths":  {Type: genai.TypeString},
							"weaknesses": {Type: genai.TypeString},
						},
						Required: []string{"name", "strengths", "weaknesses"},
					},
				},
				"marketGap": {Type: genai.TypeString, Description: "Celah pasar spesifik yang belum dimanfaatkan oleh kompetitor."},
			},
			Required: []string{"competitors", "marketGap"},
		},
		"targetPersona": {Type: genai.TypeString, Description: "Detailed description of the ideal customer persona."},
		"swot": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"strengths":     {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
				"weaknesses":    {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
				"opportunities": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
				"threats":       {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			},
			Required: []string{"strengths", "weaknesses", "opportunities", "threats"},
		},
		"marketingMix": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"productStrategy":   {Type: genai.TypeString},
				"priceStrategy":     {Type: genai.TypeString},
				"placeStrategy":     {Type: genai.TypeString},
				"promotionStrategy": {Type: genai.TypeString},
			},
			Required: []string{"productStrategy", "priceStrategy", "placeStrategy", "promotionStrategy"},
		},
		"contentStrategy": {
			Type:        genai.TypeArray,
			Description: "List of 6 specific content ideas for digital marketing channels.",
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"platform":    {Type: genai.TypeString, Description: "Platform (Instagram, TikTok, LinkedIn, Blog, etc)"},
					"contentType": {Type: genai.TypeString, Description: "Type (Reels, Carousel, Article, Story)"},
					"topic":       {Type: genai.TypeString, Description: "Catchy title or topic"},
					"description": {Type: genai.TypeString, Description: "Brief detail of what the content is about"},
				},
				Required: []string{"platform", "contentType", "topic", "description"},
			},
		},
		"actionPlan": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"title":       {Type: genai.TypeString},
					"description": {Type: genai.TypeString},
					"impact":      {Type: genai.TypeString, Enum: ratingEnum},
					"difficulty":  {Type: genai.TypeString, Enum: ratingEnum},
				},
				Required: []string{"title", "description", "impact", "difficulty"},
			},
		},
		"riskAnalysis": {
			Type:        genai.TypeArray,
			Description: "Analisis risiko potensial dan strategi mitigasi.",
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"riskType":    {Type: genai.TypeString, Description: "Jenis risiko (e.g. Operasional, Finansial, Pasar)"},
					"description": {Type: genai.TypeString, Description: "Deskripsi risiko"},
					"impact":      {Type: genai.TypeString, Enum: ratingEnum},
					"mitigation":  {Type: genai.TypeString, Description: "Strategi mitigasi risiko"},
				},
				Required: []string{"riskType", "description", "impact", "mitigation"},
			},
		},
		"investmentRecommendations": {
			Type:        genai.TypeArray,
			Description: "Top 3 strategic areas where the business should invest money or resources.",
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"area":      {Type: genai.TypeString, Description: "Where to invest (e.g., SEO Tools, Ads, Equipment)"},
					"reasoning": {Type: genai.TypeString, Description: "Why this investment is crucial"},
					"priority":  {Type: genai.TypeString, Enum: ratingEnum},
					"kpis": {
						Type:        genai.TypeArray,
						Items:       &genai.Schema{Type: genai.TypeString},
						Description: "2-3 specific Key Performance Indicators (KPIs) to measure the ROI of this investment.",
					},
				},
				Required: []string{"area", "reasoning", "priority", "kpis"},
			},
		},
		"estimatedGrowth": {
			Type:        genai.TypeArray,
			Items:       &genai.Schema{Type: genai.TypeNumber},
			Description: "Projected percentage growth for the next 6 months (e.g., [5, 10, 15, 22, 30, 40]) based on successful strategy implementation.",
		},
	},
	Required: []string{
		"executiveSummary", "marketAnalysis", "competitorAnalysis", "targetPersona",
		"swot", "marketingMix", "contentStrategy", "actionPlan", "riskAnalysis",
		"investmentRecommendations", "estimatedGrowth",
	},
}
