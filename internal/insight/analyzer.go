// Package insight derives a rule-based trend and outlook summary from daily
// price bars. The analysis is a fixed set of moving-average and percent-change
// rules, not a pluggable strategy engine.
package insight

import (
	"fmt"
	"strings"

	"github.com/rxtech-lab/argo-insights/internal/types"
	"github.com/shopspring/decimal"
)

const (
	// minCloses is the smallest history that produces real indicators.
	// Anything shorter short-circuits to a fixed low-confidence result.
	minCloses = 10

	// momentumThreshold is the 30-day change magnitude required for a
	// Bullish or Bearish call. Momentum alone is not enough; the medium-term
	// trend must agree.
	momentumThreshold = 0.05

	// riskFloor and riskCeiling bound the volatility-derived risk score.
	riskFloor   = 0.05
	riskCeiling = 1.0

	// insufficientDataRisk is the sentinel risk score when there is not
	// enough history to analyze.
	insufficientDataRisk = 0.5
)

// Analyze computes the heuristic analysis for a symbol from its price bars.
// It is a pure function with no failure mode: sparse data degrades to a fixed
// low-confidence result rather than an error. The symbol is normalized to
// uppercase in the output.
func Analyze(symbol string, bars []types.PriceBar) types.AnalysisResult {
	closes := types.Closes(bars)
	upper := strings.ToUpper(symbol)

	if len(closes) < minCloses {
		return types.AnalysisResult{
			Symbol:    upper,
			Summary:   "Not enough data to analyze.",
			Outlook:   types.OutlookNeutral,
			RiskScore: insufficientDataRisk,
			KeyPoints: []string{"Collect more history for better insights."},
		}
	}

	n := len(closes)
	recent := closes[n-1]
	ma20 := mean(lastN(closes, 20))
	ma50 := mean(lastN(closes, 50))

	// 30-trading-day lookback. Requiring 31 closes guards both the index and
	// the division.
	change30 := 0.0
	if n >= 31 {
		change30 = (recent - closes[n-30]) / closes[n-30]
	}

	volatility := 0.0
	if ma20 != 0 {
		high, low := rangeOf(lastN(closes, 20))
		volatility = (high - low) / ma20
	}

	trend := classifyTrend(ma20, ma50)
	outlook := classifyOutlook(change30, trend)

	risk := volatility
	if risk < riskFloor {
		risk = riskFloor
	}

	if risk > riskCeiling {
		risk = riskCeiling
	}

	keyPoints := []string{
		fmt.Sprintf("20-day MA: %.2f", ma20),
		fmt.Sprintf("50-day MA: %.2f", ma50),
		fmt.Sprintf("30-day change: %.1f%%", change30*100),
		fmt.Sprintf("Trend: %s", trend),
		fmt.Sprintf("Volatility score: %.2f", volatility),
	}

	summary := fmt.Sprintf("%s shows a %s with a %.1f%% move over 30 days.",
		upper, strings.ToLower(string(trend)), change30*100)

	return types.AnalysisResult{
		Symbol:    upper,
		Summary:   summary,
		Outlook:   outlook,
		RiskScore: roundTwoPlaces(risk),
		KeyPoints: keyPoints,
	}
}

// classifyTrend compares the short and medium moving averages.
func classifyTrend(ma20, ma50 float64) types.Trend {
	switch {
	case ma20 > ma50:
		return types.TrendUp
	case ma20 < ma50:
		return types.TrendDown
	default:
		return types.TrendSideways
	}
}

// classifyOutlook requires agreement between short-term momentum and the
// medium-term trend direction. A single signal alone stays Neutral.
func classifyOutlook(change30 float64, trend types.Trend) types.Outlook {
	switch {
	case change30 > momentumThreshold && trend == types.TrendUp:
		return types.OutlookBullish
	case change30 < -momentumThreshold && trend == types.TrendDown:
		return types.OutlookBearish
	default:
		return types.OutlookNeutral
	}
}

// lastN returns the trailing n elements, or the whole slice when shorter.
func lastN(values []float64, n int) []float64 {
	if len(values) <= n {
		return values
	}

	return values[len(values)-n:]
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}

// rangeOf returns the maximum and minimum of values.
func rangeOf(values []float64) (high, low float64) {
	high = values[0]
	low = values[0]

	for _, v := range values[1:] {
		if v > high {
			high = v
		}

		if v < low {
			low = v
		}
	}

	return high, low
}

func roundTwoPlaces(v float64) float64 {
	rounded, _ := decimal.NewFromFloat(v).Round(2).Float64()

	return rounded
}
