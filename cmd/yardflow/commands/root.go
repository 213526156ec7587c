package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/DEREKLIN1429/dereknou114/internal/aisummary"
	"github.com/DEREKLIN1429/dereknou114/internal/config"
	"github.com/DEREKLIN1429/dereknou114/internal/feed"
	"github.com/DEREKLIN1429/dereknou114/internal/logging"
	"github.com/DEREKLIN1429/dereknou114/internal/refresh"
	"github.com/DEREKLIN1429/dereknou114/internal/scheduler"
	"github.com/DEREKLIN1429/dereknou114/internal/server"
	"github.com/DEREKLIN1429/dereknou114/internal/stats"
	"github.com/DEREKLIN1429/dereknou114/internal/store"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose  bool
	openDash bool
	cfg      *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "yardflow",
	Short: "Yardflow serves truck-yard logistics analytics from a periodic CSV feed",
	Long: `A service that periodically fetches a CSV feed of truck-yard events
(arrivals, departures, material, weight, processing time), normalizes it into
an in-memory snapshot, and serves daily tonnage, pareto, hourly flow, and
monitoring views over an HTTP JSON API.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("Yardflow starting")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(ctx context.Context) error {
	settingsStore := config.NewSettingsStore(cfg.DataPath)
	settings := settingsStore.Load()

	snapshots := store.NewSnapshotStore()
	fetcher := feed.NewFetcher(cfg.FeedURL, cfg.FetchTimeout)
	refresher := refresh.NewRefresher(fetcher, snapshots)
	summarizer := aisummary.NewClient(cfg.AISummaryURL, cfg.AISummaryTimeout)

	countdown := scheduler.NewCountdown(settings.RefreshRateSeconds, func() {
		fetchCtx, cancel := context.WithTimeout(ctx, cfg.FetchTimeout)
		defer cancel()
		refresher.RefreshSilent(fetchCtx)
	})

	// Initial fetch; a failure leaves an empty snapshot and the timer retries.
	initCtx, cancel := context.WithTimeout(ctx, cfg.FetchTimeout)
	refresher.RefreshSilent(initCtx)
	cancel()

	go countdown.Run(ctx)

	srv := server.New(cfg, settingsStore, snapshots, refresher, countdown, summarizer)

	if openDash {
		url := "http://localhost" + cfg.ListenAddr
		if !strings.HasPrefix(cfg.ListenAddr, ":") {
			url = "http://" + cfg.ListenAddr
		}
		if err := browser.OpenURL(url + "/api/status"); err != nil {
			log.Warn().Err(err).Msg("Failed to open browser")
		}
	}

	return srv.Listen()
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch the feed once and print the current report as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		fetcher := feed.NewFetcher(cfg.FeedURL, cfg.FetchTimeout)

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.FetchTimeout)
		defer cancel()

		events, err := fetcher.Fetch(ctx)
		if err != nil {
			return err
		}

		snapshots := store.NewSnapshotStore()
		snap := snapshots.Replace(events, time.Now())

		today := feed.ShiftDate(time.Now().In(cfg.Location))
		report := stats.BuildReport(snap, stats.Filter{EndDate: today},
			config.NewSettingsStore(cfg.DataPath).Load(), cfg.Location)

		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.Flags().BoolVar(&openDash, "open", false, "open the API status page in a browser")
	rootCmd.AddCommand(fetchCmd)
}
