package stats

import (
	"math"
	"sort"
	"time"

	"github.com/DEREKLIN1429/dereknou114/internal/feed"
)

// CalculateDailyRollups groups the filtered set by shift date.
// Tonnage is summed in kilograms and rounded to one decimal tonne at the
// rollup level, never per record. Output is sorted ascending by date key.
func CalculateDailyRollups(events []feed.TruckEvent, filter Filter, loc *time.Location) []DailyRollup {
	timed := filterTimed(events, filter, loc)
	if len(timed) == 0 {
		return nil
	}

	type bucket struct {
		weightKg float64
		minutes  float64
		count    int
	}
	byDay := make(map[string]*bucket)

	for _, te := range timed {
		day := feed.ShiftDate(te.arrival)
		b, ok := byDay[day]
		if !ok {
			b = &bucket{}
			byDay[day] = b
		}
		b.weightKg += te.WeightKg
		b.minutes += te.DurationMinutes
		b.count++
	}

	rollups := make([]DailyRollup, 0, len(byDay))
	for day, b := range byDay {
		avg := 0
		if b.count > 0 {
			avg = int(math.Round(b.minutes / float64(b.count)))
		}
		rollups = append(rollups, DailyRollup{
			Date:               day,
			Tonnage:            round1(b.weightKg / 1000),
			EventCount:         b.count,
			TotalMinutes:       b.minutes,
			AvgMinutesPerEvent: avg,
		})
	}

	sort.Slice(rollups, func(i, j int) bool {
		return rollups[i].Date < rollups[j].Date
	})

	return rollups
}

// CalculateRangeSummary aggregates rollups into the range-wide scalars.
// Days is clamped to a minimum of 1 so per-day averages never divide by
// zero; an empty rollup set yields an all-zero summary with Days 1.
func CalculateRangeSummary(rollups []DailyRollup) RangeSummary {
	var totalTons, totalMinutes float64
	totalCounts := 0
	for _, r := range rollups {
		totalTons += r.Tonnage
		totalMinutes += r.TotalMinutes
		totalCounts += r.EventCount
	}

	days := len(rollups)
	if days < 1 {
		days = 1
	}

	avgMinutes := 0
	if totalCounts > 0 {
		avgMinutes = int(math.Round(totalMinutes / float64(totalCounts)))
	}

	return RangeSummary{
		Days:               days,
		TotalTons:          round1(totalTons),
		TotalCounts:        totalCounts,
		TotalMinutes:       int(math.Round(totalMinutes)),
		AvgTonsPerDay:      round1(totalTons / float64(days)),
		AvgCountPerDay:     int(math.Round(float64(totalCounts) / float64(days))),
		AvgMinutesPerEvent: avgMinutes,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
