package types

// Trend describes the relation between the short and medium moving averages.
type Trend string

const (
	TrendUp       Trend = "Uptrend"
	TrendDown     Trend = "Downtrend"
	TrendSideways Trend = "Sideways"
)

// Outlook is the categorical forecast label derived from trend and momentum agreement.
type Outlook string

const (
	OutlookBullish Outlook = "Bullish"
	OutlookBearish Outlook = "Bearish"
	OutlookNeutral Outlook = "Neutral"
)

// AnalysisResult is the rule-based summary produced for a symbol. It is created
// fresh per request and never persisted.
type AnalysisResult struct {
	// Symbol is the uppercase ticker the analysis was computed for.
	Symbol string `json:"symbol"`
	// Summary is a one-sentence description of the trend and 30-day move.
	Summary string `json:"summary"`
	// Outlook is the categorical forecast label.
	Outlook Outlook `json:"outlook"`
	// RiskScore is a normalized volatility proxy in [0.05, 1.0], rounded to two
	// decimals. It is exactly 0.5 when there is not enough history to analyze.
	RiskScore float64 `json:"risk_score"`
	// KeyPoints is an ordered list of formatted indicator lines.
	KeyPoints []string `json:"key_points"`
}

// Favorite is the validated portion of a user favorite-stock record. Callers
// may attach arbitrary extra fields; those are persisted as-is by the document
// store and are not represented here.
type Favorite struct {
	Symbol string `json:"symbol" validate:"required"`
	UserID string `json:"user_id,omitempty"`
}
