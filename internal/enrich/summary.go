package enrich

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"
)

const (
	summaryMaxLen   = 1000
	summaryTruncLen = 997

	// SummaryFallback replaces the summary when the extraction service is
	// unreachable; creation proceeds with it in place.
	SummaryFallback = "Summary temporarily unavailable."

	maxSummaryBytes = 1 << 20
)

// Summary asks the text-extraction service for a readable summary of the
// target page, truncated to summaryMaxLen characters. Returns the fallback
// sentinel on any failure.
func (f *Fetcher) Summary(ctx context.Context, rawURL string) string {
	full := normalizeScheme(rawURL)
	endpoint := f.summaryBase + "/" + url.PathEscape(full)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return SummaryFallback
	}
	resp, err := f.client.Do(req)
	if err != nil {
		f.log.Warn("summary fetch failed", zap.String("url", full), zap.Error(err))
		return SummaryFallback
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		f.log.Warn("summary fetch non-success", zap.String("url", full), zap.Int("status", resp.StatusCode))
		return SummaryFallback
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSummaryBytes))
	if err != nil {
		return SummaryFallback
	}
	return truncateSummary(string(body))
}

func truncateSummary(s string) string {
	r := []rune(s)
	if len(r) <= summaryMaxLen {
		return s
	}
	return string(r[:summaryTruncLen]) + "..."
}
