package types

// PriceBar represents a single end-of-day OHLCV bar for a symbol.
type PriceBar struct {
	// Date is the calendar date of the bar in YYYY-MM-DD form.
	Date string `json:"date" csv:"date"`
	// Open is the opening price.
	Open float64 `json:"open" csv:"open"`
	// High is the highest traded price of the day.
	High float64 `json:"high" csv:"high"`
	// Low is the lowest traded price of the day.
	Low float64 `json:"low" csv:"low"`
	// Close is the closing price.
	Close float64 `json:"close" csv:"close"`
	// Volume is the number of shares traded. Zero when the source omits it.
	Volume int64 `json:"volume" csv:"volume"`
}

// Closes extracts the closing-price sequence from bars, preserving order.
func Closes(bars []PriceBar) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}

	return closes
}
