package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DEREKLIN1429/dereknou114/internal/aisummary"
	"github.com/DEREKLIN1429/dereknou114/internal/config"
	"github.com/DEREKLIN1429/dereknou114/internal/feed"
	"github.com/DEREKLIN1429/dereknou114/internal/refresh"
	"github.com/DEREKLIN1429/dereknou114/internal/scheduler"
	"github.com/DEREKLIN1429/dereknou114/internal/stats"
	"github.com/DEREKLIN1429/dereknou114/internal/store"
)

var ist = time.FixedZone("IST", 5*3600+1800)

func newTestServer(t *testing.T, feedURL string) (*Server, *store.SnapshotStore) {
	t.Helper()

	cfg := &config.AppConfig{
		FeedURL:          feedURL,
		ListenAddr:       ":0",
		DataPath:         t.TempDir(),
		FactoryTZ:        "IST",
		Location:         ist,
		FetchTimeout:     5 * time.Second,
		AISummaryTimeout: time.Second,
	}

	snapshots := store.NewSnapshotStore()
	fetcher := feed.NewFetcher(feedURL, cfg.FetchTimeout)
	refresher := refresh.NewRefresher(fetcher, snapshots)
	countdown := scheduler.NewCountdown(600, func() {})
	summarizer := aisummary.NewClient("", time.Second)

	return New(cfg, config.NewSettingsStore(cfg.DataPath), snapshots, refresher, countdown, summarizer), snapshots
}

func seedEvents(snapshots *store.SnapshotStore) {
	snapshots.Replace([]feed.TruckEvent{
		{TruckID: "T1", MaterialName: "Limestone", ArrivalText: "2024-01-09 08:00", DurationMinutes: 45, WeightKg: 1200},
		{TruckID: "T2", MaterialName: "Clinker", ArrivalText: "2024-01-10 09:00", DurationMinutes: 30, WeightKg: 800},
	}, time.Now())
}

func TestReportEndpoint(t *testing.T) {
	srv, snapshots := newTestServer(t, "")
	seedEvents(snapshots)

	req := httptest.NewRequest(http.MethodGet, "/api/report?start=2024-01-09&end=2024-01-10", nil)
	resp, err := srv.App().Test(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	var report stats.Report
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		t.Fatalf("Bad report JSON: %v", err)
	}
	if report.Version != 1 {
		t.Errorf("Expected snapshot version 1, got %d", report.Version)
	}
	if len(report.Rollups) != 2 {
		t.Errorf("Expected 2 rollups, got %d", len(report.Rollups))
	}
	if report.Summary.TotalCounts != 2 {
		t.Errorf("Expected 2 events, got %d", report.Summary.TotalCounts)
	}
}

func TestMonitorEndpoint(t *testing.T) {
	srv, snapshots := newTestServer(t, "")
	seedEvents(snapshots)

	req := httptest.NewRequest(http.MethodGet, "/api/monitor?date=2024-01-09", nil)
	resp, err := srv.App().Test(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	var body struct {
		Version uint64            `json:"version"`
		Monitor stats.MonitorView `json:"monitor"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Bad monitor JSON: %v", err)
	}
	if len(body.Monitor.Entries) != 1 || body.Monitor.Entries[0].TruckID != "T1" {
		t.Errorf("Expected T1 on shift day 2024-01-09, got %+v", body.Monitor.Entries)
	}
}

func TestExportEndpoint(t *testing.T) {
	srv, snapshots := newTestServer(t, "")
	seedEvents(snapshots)

	req := httptest.NewRequest(http.MethodGet, "/api/export?start=2024-01-09&end=2024-01-10", nil)
	resp, err := srv.App().Test(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Expected text/csv, got %s", ct)
	}
	data, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(data), "Limestone") {
		t.Errorf("Expected exported events, got %q", string(data))
	}
}

func TestRefreshEndpointSwallowsFailure(t *testing.T) {
	// No feed server running: refresh fails but the endpoint reports it
	// gracefully and the old (empty) snapshot survives.
	srv, snapshots := newTestServer(t, "http://127.0.0.1:1/feed.csv")

	req := httptest.NewRequest(http.MethodPost, "/api/refresh", nil)
	resp, err := srv.App().Test(req, 10000)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200 on swallowed failure, got %d", resp.StatusCode)
	}

	var body struct {
		Refreshed bool   `json:"refreshed"`
		Version   uint64 `json:"version"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Refreshed {
		t.Error("Expected refreshed=false")
	}
	if body.Version != 0 || snapshots.Version() != 0 {
		t.Errorf("Failed refresh must not touch the snapshot version")
	}
}

func TestRefreshEndpointReplacesSnapshot(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("TruckNo,MatName,Arrival,Departure,TotalTime,Weight\nT1,Limestone,2024-01-09 08:00,,45,1200\n"))
	}))
	defer ts.Close()

	srv, snapshots := newTestServer(t, ts.URL)

	req := httptest.NewRequest(http.MethodPost, "/api/refresh", nil)
	resp, err := srv.App().Test(req, 10000)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	resp.Body.Close()

	if snapshots.Version() != 1 {
		t.Errorf("Expected snapshot version 1 after refresh, got %d", snapshots.Version())
	}
}

func TestTimerEndpoints(t *testing.T) {
	srv, _ := newTestServer(t, "")

	resp, err := srv.App().Test(httptest.NewRequest(http.MethodPost, "/api/timer/pause", nil))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	if !srv.countdown.Paused() {
		t.Error("Expected countdown paused")
	}

	resp, err = srv.App().Test(httptest.NewRequest(http.MethodPost, "/api/timer/resume", nil))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	if srv.countdown.Paused() {
		t.Error("Expected countdown resumed")
	}
}

func TestSettingsEndpoints(t *testing.T) {
	srv, _ := newTestServer(t, "")

	put := httptest.NewRequest(http.MethodPut, "/api/settings",
		strings.NewReader(`{"refreshRateSeconds": 60, "benchmarkMinutes": 45}`))
	put.Header.Set("Content-Type", "application/json")
	resp, err := srv.App().Test(put)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	// Countdown picks up the new refresh rate
	if srv.countdown.Remaining() > 60 {
		t.Errorf("Expected countdown interval updated, remaining %d", srv.countdown.Remaining())
	}

	resp, err = srv.App().Test(httptest.NewRequest(http.MethodGet, "/api/settings", nil))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var settings config.Settings
	if err := json.NewDecoder(resp.Body).Decode(&settings); err != nil {
		t.Fatal(err)
	}
	if settings.RefreshRateSeconds != 60 || settings.BenchmarkMinutes != 45 {
		t.Errorf("Expected persisted settings, got %+v", settings)
	}
}

func TestStatusEndpoint(t *testing.T) {
	srv, snapshots := newTestServer(t, "")
	seedEvents(snapshots)

	resp, err := srv.App().Test(httptest.NewRequest(http.MethodGet, "/api/status", nil))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var body struct {
		Version    uint64 `json:"version"`
		EventCount int    `json:"eventCount"`
		Paused     bool   `json:"paused"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Version != 1 || body.EventCount != 2 {
		t.Errorf("Unexpected status: %+v", body)
	}
}

func TestSummaryEndpointFallback(t *testing.T) {
	srv, snapshots := newTestServer(t, "")
	seedEvents(snapshots)

	resp, err := srv.App().Test(httptest.NewRequest(http.MethodGet, "/api/summary?lang=en", nil), 10000)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var body struct {
		Summary string `json:"summary"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Summary != aisummary.FallbackMessage {
		t.Errorf("Expected fallback summary, got %q", body.Summary)
	}
}
