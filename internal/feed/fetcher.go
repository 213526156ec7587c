package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/DEREKLIN1429/dereknou114/internal/csvtext"
)

// Fetcher downloads the yard CSV feed and runs it through the
// normalization pipeline.
type Fetcher struct {
	feedURL    string
	httpClient *http.Client
}

// NewFetcher creates a fetcher for the given feed URL.
func NewFetcher(feedURL string, timeout time.Duration) *Fetcher {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Fetcher{
		feedURL: feedURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch downloads the feed and returns the normalized event set.
// The request carries a cache-busting timestamp parameter so intermediate
// caches never serve a stale sheet.
func (f *Fetcher) Fetch(ctx context.Context) ([]TruckEvent, error) {
	if f.feedURL == "" {
		return nil, fmt.Errorf("feed URL is not configured")
	}

	u, err := url.Parse(f.feedURL)
	if err != nil {
		return nil, fmt.Errorf("invalid feed URL: %w", err)
	}
	params := u.Query()
	params.Set("_ts", fmt.Sprintf("%d", time.Now().UnixMilli()))
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	log.Debug().Str("url", u.String()).Msg("Requesting yard feed")
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed body: %w", err)
	}

	events, err := Parse(string(body))
	if err != nil {
		return nil, err
	}

	log.Info().Int("events", len(events)).Msg("Yard feed fetched")
	return events, nil
}

// Parse runs raw feed text through decode, column resolution, and record
// building. The only hard failure is a feed with no header row; malformed
// data rows degrade per-field instead.
func Parse(text string) ([]TruckEvent, error) {
	rows := csvtext.Decode(text)
	if len(rows) == 0 {
		return nil, fmt.Errorf("feed is empty")
	}

	cols := ResolveColumns(rows[0])
	return BuildEvents(rows[1:], cols), nil
}
