package models

import (
	"time"

	"github.com/google/uuid"
)

type AnalysisStatus string

type RatingLevel string

type ChatRole string

const (
	AnalysisStatusIdle    AnalysisStatus = "IDLE"
	AnalysisStatusLoading AnalysisStatus = "LOADING"
	AnalysisStatusSuccess AnalysisStatus = "SUCCESS"
	AnalysisStatusError   AnalysisStatus = "ERROR"

	RatingHigh   RatingLevel = "High"
	RatingMedium RatingLevel = "Medium"
	RatingLow    RatingLevel = "Low"

	ChatRoleUser  ChatRole = "user"
	ChatRoleModel ChatRole = "model"
)

// BusinessInput is the business-description form payload a plan is generated from.
type BusinessInput struct {
	BusinessName   string `json:"businessName"`
	Industry       string `json:"industry"`
	Description    string `json:"description"`
	TargetAudience string `json:"targetAudience"`
	Goals          string `json:"goals"`
}

type Competitor struct {
	Name       string `json:"name"`
	Strengths  string `json:"strengths"`
	Weaknesses string `json:"weaknesses"`
}

type CompetitorAnalysis struct {
	Competitors []Competitor `json:"competitors"`
	MarketGap   string       `json:"marketGap"`
}

type SWOT struct {
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Opportunities []string `json:"opportunities"`
	Threats       []string `json:"threats"`
}

type MarketingMix struct {
	ProductStrategy   string `json:"productStrategy"`
	PriceStrategy     string `json:"priceStrategy"`
	PlaceStrategy     string `json:"placeStrategy"`
	PromotionStrategy string `json:"promotionStrategy"`
}

type ContentIdea struct {
	Platform    string `json:"platform"`
	ContentType string `json:"contentType"`
	Topic       string `json:"topic"`
	Description string `json:"description"`
}

type ActionItem struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Impact      RatingLevel `json:"impact"`
	Difficulty  RatingLevel `json:"difficulty"`
}

type RiskItem struct {
	RiskType    string      `json:"riskType"`
	Description string      `json:"description"`
	Impact      RatingLevel `json:"impact"`
	Mitigation  string      `json:"mitigation"`
}

type InvestmentItem struct {
	Area      string      `json:"area"`
	Reasoning string      `json:"reasoning"`
	Priority  RatingLevel `json:"priority"`
	KPIs      []string    `json:"kpis"`
}

// MarketingPlan is the structured aggregate the generation service must return.
// Every field is required; absence is a contract violation, not a valid state.
type MarketingPlan struct {
	ExecutiveSummary          string             `json:"executiveSummary"`
	MarketAnalysis            string             `json:"marketAnalysis"`
	CompetitorAnalysis        CompetitorAnalysis `json:"competitorAnalysis"`
	TargetPersona             string             `json:"targetPersona"`
	SWOT                      SWOT               `json:"swot"`
	MarketingMix              MarketingMix       `json:"marketingMix"`
	ContentStrategy           []ContentIdea      `json:"contentStrategy"`
	ActionPlan                []ActionItem       `json:"actionPlan"`
	RiskAnalysis              []RiskItem         `json:"riskAnalysis"`
	InvestmentRecommendations []InvestmentItem   `json:"investmentRecommendations"`
	EstimatedGrowth           []float64          `json:"estimatedGrowth"`
}

// HistoryItem is one generated plan kept in a user's history. Immutable after
// creation; the id is an opaque millisecond timestamp string.
type HistoryItem struct {
	ID           string        `json:"id"`
	Date         string        `json:"date"`
	BusinessName string        `json:"businessName"`
	Industry     string        `json:"industry"`
	Plan         MarketingPlan `json:"plan"`
}

// ChatMessage is one half of a chat turn. Only the last model message may be
// rewritten while a stream is in flight.
type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         *string   `json:"name,omitempty"`
	PhotoURL     *string   `json:"photo_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type RefreshToken struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	TokenHash  string     `json:"-"`
	ExpiresAt  time.Time  `json:"expires_at"`
	CreatedAt  time.Time  `json:"created_at"`
	RevokedAt  *time.Time `json:"revoked_at,omitempty"`
	ReplacedBy *uuid.UUID `json:"replaced_by,omitempty"`
}
