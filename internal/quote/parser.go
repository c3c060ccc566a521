package quote

import (
	"sort"
	"strconv"
	"strings"

	"github.com/rxtech-lab/argo-insights/internal/types"
	"github.com/rxtech-lab/argo-insights/pkg/errors"
)

// MaxBars caps the parsed history to the most recent bars. Older history is
// dropped to bound memory and downstream computation.
const MaxBars = 200

// minFields is the smallest number of comma-separated fields a usable data row
// can have (date plus OHLC plus volume).
const minFields = 6

// ParseDailyCSV turns a raw Stooq-style CSV body into chronologically ordered
// price bars. The first line must be a header naming at least Date, Open,
// High, Low, Close and Volume; column order is not assumed. Rows with fewer
// than six fields are skipped silently. Returns at most MaxBars of the most
// recent history.
func ParseDailyCSV(raw string) ([]types.PriceBar, error) {
	lines := strings.Split(strings.TrimSpace(raw), "\n")
	if len(lines) == 0 {
		return nil, errors.New(errors.ErrCodeNoUsableData, "no price data available")
	}

	// Build the name->column mapping once per response.
	idx := make(map[string]int)
	for i, name := range strings.Split(strings.TrimSpace(lines[0]), ",") {
		idx[strings.TrimSpace(name)] = i
	}

	required := []string{"Date", "Open", "High", "Low", "Close", "Volume"}
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			return nil, errors.Newf(errors.ErrCodeNoUsableData, "missing column %q in header", name)
		}
	}

	bars := make([]types.PriceBar, 0, len(lines)-1)

	for _, line := range lines[1:] {
		parts := strings.Split(strings.TrimSpace(line), ",")
		if len(parts) < minFields {
			// Truncated or corrupt row. Parsing is best-effort.
			continue
		}

		open, errOpen := strconv.ParseFloat(parts[idx["Open"]], 64)
		high, errHigh := strconv.ParseFloat(parts[idx["High"]], 64)
		low, errLow := strconv.ParseFloat(parts[idx["Low"]], 64)
		closePrice, errClose := strconv.ParseFloat(parts[idx["Close"]], 64)

		if errOpen != nil || errHigh != nil || errLow != nil || errClose != nil {
			continue
		}

		bars = append(bars, types.PriceBar{
			Date:   parts[idx["Date"]],
			Open:   open,
			High:   high,
			Low:    low,
			Close:  closePrice,
			Volume: parseVolume(parts[idx["Volume"]]),
		})
	}

	if len(bars) == 0 {
		return nil, errors.New(errors.ErrCodeNoUsableData, "no price data available")
	}

	// Ensure chronological order and drop duplicate dates. ISO dates sort
	// lexicographically.
	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Date < bars[j].Date })

	deduped := make([]types.PriceBar, 0, len(bars))

	for _, b := range bars {
		if len(deduped) > 0 && deduped[len(deduped)-1].Date == b.Date {
			continue
		}

		deduped = append(deduped, b)
	}

	bars = deduped

	if len(bars) > MaxBars {
		bars = bars[len(bars)-MaxBars:]
	}

	return bars, nil
}

// parseVolume parses a volume field, defaulting to 0 when the field is not
// purely numeric. The upstream uses placeholders for missing volume.
func parseVolume(field string) int64 {
	volume, err := strconv.ParseInt(field, 10, 64)
	if err != nil || volume < 0 {
		return 0
	}

	return volume
}
