// Package server exposes the presentation-layer contract over HTTP: every
// view model the aggregation engine produces, keyed by snapshot version,
// plus the refresh, timer, settings, export, and summary operations.
package server

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jszwec/csvutil"
	"github.com/rs/zerolog/log"

	"github.com/DEREKLIN1429/dereknou114/internal/aisummary"
	"github.com/DEREKLIN1429/dereknou114/internal/config"
	"github.com/DEREKLIN1429/dereknou114/internal/feed"
	"github.com/DEREKLIN1429/dereknou114/internal/refresh"
	"github.com/DEREKLIN1429/dereknou114/internal/scheduler"
	"github.com/DEREKLIN1429/dereknou114/internal/stats"
	"github.com/DEREKLIN1429/dereknou114/internal/store"
)

// Server wires the snapshot store, refresher, countdown, and settings into
// the HTTP API.
type Server struct {
	cfg        *config.AppConfig
	settings   *config.SettingsStore
	snapshots  *store.SnapshotStore
	refresher  *refresh.Refresher
	countdown  *scheduler.Countdown
	summarizer *aisummary.Client
	app        *fiber.App
}

// New assembles the server and registers all routes.
func New(cfg *config.AppConfig, settings *config.SettingsStore, snapshots *store.SnapshotStore,
	refresher *refresh.Refresher, countdown *scheduler.Countdown, summarizer *aisummary.Client) *Server {

	s := &Server{
		cfg:        cfg,
		settings:   settings,
		snapshots:  snapshots,
		refresher:  refresher,
		countdown:  countdown,
		summarizer: summarizer,
		app: fiber.New(fiber.Config{
			AppName:               "yardflow",
			DisableStartupMessage: true,
		}),
	}
	s.register()
	return s
}

func (s *Server) register() {
	api := s.app.Group("/api")

	api.Get("/report", s.handleReport)
	api.Get("/monitor", s.handleMonitor)
	api.Get("/export", s.handleExport)
	api.Post("/refresh", s.handleRefresh)
	api.Get("/settings", s.handleGetSettings)
	api.Put("/settings", s.handlePutSettings)
	api.Post("/timer/pause", s.handlePause)
	api.Post("/timer/resume", s.handleResume)
	api.Get("/status", s.handleStatus)
	api.Get("/summary", s.handleSummary)
}

// Listen starts serving on the configured address (blocking).
func (s *Server) Listen() error {
	log.Info().Str("addr", s.cfg.ListenAddr).Msg("HTTP API listening")
	return s.app.Listen(s.cfg.ListenAddr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) filterFromQuery(c *fiber.Ctx) stats.Filter {
	f := stats.Filter{
		StartDate: c.Query("start"),
		EndDate:   c.Query("end"),
		Material:  c.Query("material"),
	}
	if f.EndDate == "" {
		f.EndDate = feed.ShiftDate(time.Now().In(s.cfg.Location))
	}
	return f
}

func (s *Server) handleReport(c *fiber.Ctx) error {
	snap := s.snapshots.Current()
	report := stats.BuildReport(snap, s.filterFromQuery(c), s.settings.Load(), s.cfg.Location)
	return c.JSON(report)
}

func (s *Server) handleMonitor(c *fiber.Ctx) error {
	day := c.Query("date")
	if day == "" {
		day = feed.ShiftDate(time.Now().In(s.cfg.Location))
	}
	snap := s.snapshots.Current()
	view := stats.BuildMonitorView(snap.Events, day, c.Query("material"),
		s.settings.Load().BenchmarkMinutes, s.cfg.Location)
	return c.JSON(fiber.Map{
		"version": snap.Version,
		"monitor": view,
	})
}

func (s *Server) handleExport(c *fiber.Ctx) error {
	snap := s.snapshots.Current()
	filtered := stats.FilterEvents(snap.Events, s.filterFromQuery(c), s.cfg.Location)

	data, err := csvutil.Marshal(filtered)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="yard-events.csv"`)
	return c.Send(data)
}

func (s *Server) handleRefresh(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.FetchTimeout)
	defer cancel()

	version, err := s.refresher.Refresh(ctx)
	if err != nil {
		// The previous snapshot is still live; report the failure without a 5xx.
		return c.JSON(fiber.Map{"version": version, "refreshed": false, "error": err.Error()})
	}
	return c.JSON(fiber.Map{"version": version, "refreshed": true})
}

func (s *Server) handleGetSettings(c *fiber.Ctx) error {
	return c.JSON(s.settings.Load())
}

func (s *Server) handlePutSettings(c *fiber.Ctx) error {
	settings := s.settings.Load()
	if err := c.BodyParser(&settings); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid settings payload"})
	}
	if err := s.settings.Save(settings); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	s.countdown.SetInterval(settings.RefreshRateSeconds)
	return c.JSON(settings)
}

func (s *Server) handlePause(c *fiber.Ctx) error {
	s.countdown.Pause()
	return c.JSON(fiber.Map{"paused": true, "remainingSeconds": s.countdown.Remaining()})
}

func (s *Server) handleResume(c *fiber.Ctx) error {
	s.countdown.Resume()
	return c.JSON(fiber.Map{"paused": false, "remainingSeconds": s.countdown.Remaining()})
}

func (s *Server) handleStatus(c *fiber.Ctx) error {
	snap := s.snapshots.Current()
	return c.JSON(fiber.Map{
		"version":          snap.Version,
		"fetchedAt":        snap.FetchedAt,
		"eventCount":       len(snap.Events),
		"remainingSeconds": s.countdown.Remaining(),
		"paused":           s.countdown.Paused(),
	})
}

func (s *Server) handleSummary(c *fiber.Ctx) error {
	lang := c.Query("lang", "en")
	snap := s.snapshots.Current()

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.AISummaryTimeout)
	defer cancel()

	text := s.summarizer.Summarize(ctx, snap.Events, lang, s.cfg.Location)
	return c.JSON(fiber.Map{
		"version": snap.Version,
		"summary": text,
	})
}
