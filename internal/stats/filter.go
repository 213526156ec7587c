package stats

import (
	"strings"
	"time"

	"github.com/DEREKLIN1429/dereknou114/internal/feed"
)

// timedEvent pairs an event with its parsed arrival so downstream views
// never re-parse per comparison.
type timedEvent struct {
	feed.TruckEvent
	arrival time.Time
}

// FilterEvents applies the shift-day range and material criteria.
// An event whose arrival text cannot be parsed is excluded; the range is
// half-open [07:00 start, 07:00 day-after-end).
func FilterEvents(events []feed.TruckEvent, filter Filter, loc *time.Location) []feed.TruckEvent {
	timed := filterTimed(events, filter, loc)
	result := make([]feed.TruckEvent, 0, len(timed))
	for _, te := range timed {
		result = append(result, te.TruckEvent)
	}
	return result
}

func filterTimed(events []feed.TruckEvent, filter Filter, loc *time.Location) []timedEvent {
	startBoundary, haveStart := feed.ShiftDayStart(filter.StartDate, loc)
	endBoundary, haveEnd := feed.ShiftDayStart(filter.EndDate, loc)
	if haveEnd {
		endBoundary = endBoundary.AddDate(0, 0, 1)
	}

	material := strings.ToLower(strings.TrimSpace(filter.Material))

	var result []timedEvent
	for _, e := range events {
		arrival, ok := e.Arrival(loc)
		if !ok {
			continue
		}
		if haveStart && arrival.Before(startBoundary) {
			continue
		}
		if haveEnd && !arrival.Before(endBoundary) {
			continue
		}
		if material != "" && !strings.Contains(strings.ToLower(e.MaterialName), material) {
			continue
		}
		result = append(result, timedEvent{TruckEvent: e, arrival: arrival})
	}
	return result
}
