// Package refresh ties the feed fetcher to the snapshot store. Concurrent
// triggers (a timer fire plus a manual refresh) collapse into a single
// in-flight fetch via singleflight; a failed fetch is logged and swallowed
// so the previous snapshot stays live and the loop keeps its schedule.
package refresh

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/DEREKLIN1429/dereknou114/internal/feed"
	"github.com/DEREKLIN1429/dereknou114/internal/store"
)

// Refresher replaces the snapshot from the feed on demand.
type Refresher struct {
	fetcher *feed.Fetcher
	store   *store.SnapshotStore
	group   singleflight.Group
}

// NewRefresher creates a refresher writing into the given store.
func NewRefresher(fetcher *feed.Fetcher, snapshots *store.SnapshotStore) *Refresher {
	return &Refresher{fetcher: fetcher, store: snapshots}
}

// Refresh fetches the feed and atomically replaces the snapshot.
// Returns the resulting snapshot version, which is unchanged on failure.
func (r *Refresher) Refresh(ctx context.Context) (uint64, error) {
	v, err, shared := r.group.Do("refresh", func() (interface{}, error) {
		events, err := r.fetcher.Fetch(ctx)
		if err != nil {
			return r.store.Version(), err
		}
		snap := r.store.Replace(events, time.Now())
		log.Info().
			Uint64("version", snap.Version).
			Int("events", len(snap.Events)).
			Msg("Snapshot replaced")
		return snap.Version, nil
	})

	if shared {
		log.Debug().Msg("Refresh coalesced with in-flight fetch")
	}
	if err != nil {
		log.Warn().Err(err).Msg("Feed refresh failed, keeping previous snapshot")
		return v.(uint64), err
	}
	return v.(uint64), nil
}

// RefreshSilent is the timer-facing wrapper: outcomes are already logged,
// the countdown does not care about the error.
func (r *Refresher) RefreshSilent(ctx context.Context) {
	_, _ = r.Refresh(ctx)
}
