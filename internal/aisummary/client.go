// Package aisummary calls the external text-summary service. The service is
// an opaque request/response collaborator: we ship it the most recent
// records and a display language, it returns a bulleted natural-language
// string. Every failure path collapses to a fixed fallback message.
package aisummary

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/DEREKLIN1429/dereknou114/internal/feed"
)

// FallbackMessage is returned whenever the summary service cannot be
// reached or answers with something unusable.
const FallbackMessage = "AI summary is currently unavailable. Please try again later."

// maxRecords caps how many recent events are shipped to the service.
const maxRecords = 50

// Client talks to the summary endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a summary client. A zero timeout defaults to 45s.
func NewClient(endpoint string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 45 * time.Second
	}
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type summaryRequest struct {
	Language string            `json:"language"`
	Records  []feed.TruckEvent `json:"records"`
}

type summaryResponse struct {
	Summary string `json:"summary"`
}

// Summarize sends the 50 most recent events (by arrival, newest first) and
// returns the service's summary text. Any transport or decode error returns
// the fallback message; errors never propagate to the caller's view.
func (c *Client) Summarize(ctx context.Context, events []feed.TruckEvent, language string, loc *time.Location) string {
	if c.endpoint == "" {
		log.Debug().Msg("AI summary endpoint not configured")
		return FallbackMessage
	}

	recent := mostRecent(events, loc)

	body, err := json.Marshal(summaryRequest{Language: language, Records: recent})
	if err != nil {
		log.Warn().Err(err).Msg("Failed to encode summary request")
		return FallbackMessage
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		log.Warn().Err(err).Msg("Failed to build summary request")
		return FallbackMessage
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn().Err(err).Msg("AI summary request failed")
		return FallbackMessage
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn().Int("status", resp.StatusCode).Msg("AI summary returned non-OK status")
		return FallbackMessage
	}

	var parsed summaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil || parsed.Summary == "" {
		log.Warn().Err(err).Msg("Unusable AI summary response")
		return FallbackMessage
	}

	return parsed.Summary
}

// mostRecent returns up to maxRecords events sorted by arrival descending.
// Events with unparseable arrivals sink to the end and are cut first.
func mostRecent(events []feed.TruckEvent, loc *time.Location) []feed.TruckEvent {
	type timed struct {
		event   feed.TruckEvent
		arrival time.Time
		ok      bool
	}

	all := make([]timed, 0, len(events))
	for _, e := range events {
		arrival, ok := e.Arrival(loc)
		all = append(all, timed{event: e, arrival: arrival, ok: ok})
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].ok != all[j].ok {
			return all[i].ok
		}
		return all[i].arrival.After(all[j].arrival)
	})

	if len(all) > maxRecords {
		all = all[:maxRecords]
	}

	result := make([]feed.TruckEvent, 0, len(all))
	for _, t := range all {
		result = append(result, t.event)
	}
	return result
}
