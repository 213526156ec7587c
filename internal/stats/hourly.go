package stats

import (
	"fmt"
	"time"

	"github.com/DEREKLIN1429/dereknou114/internal/feed"
)

// CalculateHourlyFlow buckets arrivals of the filtered set by true
// hour-of-day. Flow analysis deliberately uses the full 24-hour clock, not
// the 07:00 shift boundary that rollups use.
func CalculateHourlyFlow(events []feed.TruckEvent, filter Filter, loc *time.Location) HourlyFlow {
	timed := filterTimed(events, filter, loc)

	counts := make([]int, 24)
	for _, te := range timed {
		counts[te.arrival.Hour()]++
	}

	flow := HourlyFlow{
		Buckets: make([]HourBucket, 24),
		AMSpan:  activeSpan(counts, 0, 11),
		PMSpan:  activeSpan(counts, 12, 23),
	}
	for h := 0; h < 24; h++ {
		flow.Buckets[h] = HourBucket{
			Hour:  h,
			Label: fmt.Sprintf("%dh", h),
			Count: counts[h],
		}
	}

	return flow
}

// activeSpan reports the min~max of hours with nonzero arrivals inside
// [from, to], or "--" when the half is quiet.
func activeSpan(counts []int, from, to int) string {
	min, max := -1, -1
	for h := from; h <= to; h++ {
		if counts[h] == 0 {
			continue
		}
		if min == -1 {
			min = h
		}
		max = h
	}
	if min == -1 {
		return "--"
	}
	return fmt.Sprintf("%d~%d", min, max)
}
