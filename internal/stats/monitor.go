package stats

import (
	"math"
	"sort"
	"time"

	"github.com/DEREKLIN1429/dereknou114/internal/feed"
)

// BuildMonitorView assembles the single-day operator view: every event of
// the chosen shift day (the range filter does not apply here, the material
// filter does), newest arrival first, each scored against the processing
// benchmark.
func BuildMonitorView(events []feed.TruckEvent, day string, material string, benchmarkMinutes float64, loc *time.Location) MonitorView {
	// Reuse the range filter with a single-day window
	timed := filterTimed(events, Filter{StartDate: day, EndDate: day, Material: material}, loc)

	sort.SliceStable(timed, func(i, j int) bool {
		return timed[i].arrival.After(timed[j].arrival)
	})

	view := MonitorView{Date: day}
	if len(timed) == 0 {
		return view
	}

	totalRate := 0
	for _, te := range timed {
		rate := onTimeRate(benchmarkMinutes, te.DurationMinutes)
		totalRate += rate
		view.Entries = append(view.Entries, MonitorEntry{
			TruckEvent: te.TruckEvent,
			OnTimeRate: rate,
		})
	}
	view.AvgOnTimeRate = int(math.Round(float64(totalRate) / float64(len(timed))))

	return view
}

// onTimeRate caps the benchmark/actual ratio at 100. A zero or missing
// duration counts as fully on time.
func onTimeRate(benchmarkMinutes, durationMinutes float64) int {
	if durationMinutes <= 0 {
		return 100
	}
	rate := int(math.Round(benchmarkMinutes / durationMinutes * 100))
	if rate > 100 {
		rate = 100
	}
	return rate
}
