package stats

import (
	"math"
	"sort"
	"time"

	"github.com/DEREKLIN1429/dereknou114/internal/feed"
)

// CalculatePareto ranks materials by tonnage contribution across the
// filtered set. The sort is stable, so materials with equal tonnage keep
// their first-encounter order. The top 10 carry a running cumulative
// percentage of the top-10 total; the last entry lands on exactly 100 for
// any nonzero total.
func CalculatePareto(events []feed.TruckEvent, filter Filter, loc *time.Location) ParetoResult {
	timed := filterTimed(events, filter, loc)

	// 1. Sum tonnage per material, preserving encounter order
	totals := make(map[string]float64)
	var order []string
	for _, te := range timed {
		if _, seen := totals[te.MaterialName]; !seen {
			order = append(order, te.MaterialName)
		}
		totals[te.MaterialName] += te.WeightKg / 1000
	}

	type ranked struct {
		name string
		tons float64
	}
	entries := make([]ranked, 0, len(order))
	for _, name := range order {
		entries = append(entries, ranked{name: name, tons: totals[name]})
	}

	// 2. Stable descending sort, ties broken by encounter order
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].tons > entries[j].tons
	})

	if len(entries) > 10 {
		entries = entries[:10]
	}

	var top10Total float64
	for _, e := range entries {
		top10Total += e.tons
	}

	// 3. Running cumulative percentage of the top-10 total
	result := ParetoResult{TotalTons: round1(top10Total)}
	var cumulative float64
	for _, e := range entries {
		cumulative += e.tons
		pct := 0
		if top10Total > 0 {
			pct = int(math.Round(cumulative / top10Total * 100))
		}
		result.Entries = append(result.Entries, ParetoEntry{
			MaterialName:         e.name,
			Tonnage:              round1(e.tons),
			CumulativePercentage: pct,
		})
	}

	return result
}
