package stats

import (
	"time"

	"github.com/DEREKLIN1429/dereknou114/internal/config"
	"github.com/DEREKLIN1429/dereknou114/internal/store"
)

// BuildReport recomputes the full set of view models from a snapshot.
// Pure function of its inputs: the snapshot is never mutated and no state
// survives between recomputations, so two calls with the same inputs are
// identical. The monitor view defaults to the filter's end date.
func BuildReport(snap store.Snapshot, filter Filter, settings config.Settings, loc *time.Location) Report {
	rollups := CalculateDailyRollups(snap.Events, filter, loc)

	return Report{
		Version:   snap.Version,
		FetchedAt: snap.FetchedAt,
		Filter:    filter,
		Rollups:   rollups,
		Summary:   CalculateRangeSummary(rollups),
		Pareto:    CalculatePareto(snap.Events, filter, loc),
		Hourly:    CalculateHourlyFlow(snap.Events, filter, loc),
		Monitor:   BuildMonitorView(snap.Events, filter.EndDate, filter.Material, settings.BenchmarkMinutes, loc),
	}
}
