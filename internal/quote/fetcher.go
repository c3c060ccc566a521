// Package quote fetches and normalizes end-of-day price history from a public
// CSV quote endpoint.
package quote

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rxtech-lab/argo-insights/internal/logger"
	"github.com/rxtech-lab/argo-insights/pkg/errors"
	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the public Stooq endpoint serving daily CSV history.
	DefaultBaseURL = "https://stooq.com"
	// DefaultTimeout bounds a single history fetch.
	DefaultTimeout = 10 * time.Second
)

// Fetcher retrieves raw daily CSV history for a symbol.
type Fetcher interface {
	// FetchDailyHistory returns the raw CSV body for the given symbol.
	FetchDailyHistory(ctx context.Context, symbol string) (string, error)
}

// CSVFetcher implements Fetcher against a Stooq-style CSV quote endpoint.
type CSVFetcher struct {
	baseURL string
	client  *http.Client
	logger  *logger.Logger
}

// NewCSVFetcher creates a fetcher for the given base URL. An empty baseURL
// selects the public default, and a zero timeout selects DefaultTimeout.
func NewCSVFetcher(baseURL string, timeout time.Duration, log *logger.Logger) *CSVFetcher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &CSVFetcher{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
		logger: log,
	}
}

// FetchDailyHistory performs one outbound request for the symbol's daily
// history. No retries and no caching. A non-2xx status, an empty body, or an
// HTML error page all signal that the symbol is unknown or has no data.
func (f *CSVFetcher) FetchDailyHistory(ctx context.Context, symbol string) (string, error) {
	endpoint := fmt.Sprintf("%s/q/d/l/?s=%s&i=d", f.baseURL, url.QueryEscape(strings.ToLower(symbol)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", errors.Wrapf(errors.ErrCodeQuoteFetchFailed, err, "failed to build request for symbol %s", symbol)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.Warn("quote request failed", zap.String("symbol", symbol), zap.Error(err))

		return "", errors.Wrapf(errors.ErrCodeQuoteFetchFailed, err, "failed to fetch history for symbol %s", symbol)
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrapf(errors.ErrCodeQuoteFetchFailed, err, "failed to read response for symbol %s", symbol)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		f.logger.Warn("quote endpoint returned non-success status",
			zap.String("symbol", symbol),
			zap.Int("status", resp.StatusCode))

		return "", errors.New(errors.ErrCodeSymbolNotFound, "symbol not found or data unavailable")
	}

	if len(body) == 0 || looksLikeHTML(body) {
		return "", errors.New(errors.ErrCodeSymbolNotFound, "symbol not found or data unavailable")
	}

	return string(body), nil
}

// looksLikeHTML reports whether the response body is an HTML document rather
// than CSV data. The upstream signals unknown symbols with an HTML error page
// and a 200 status, so the body must be sniffed. Centralized here so the
// heuristic can change with the upstream's error format.
func looksLikeHTML(body []byte) bool {
	return strings.HasPrefix(string(body), "<!DOCTYPE")
}
