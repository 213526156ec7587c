package stats

import (
	"time"

	"github.com/DEREKLIN1429/dereknou114/internal/feed"
)

// Filter narrows the event set to a shift-day range and a material match.
// The range is half-open on instants: [07:00 on StartDate, 07:00 on the day
// after EndDate). An empty Material matches everything.
type Filter struct {
	StartDate string `json:"startDate"` // shift-day key, YYYY-MM-DD
	EndDate   string `json:"endDate"`
	Material  string `json:"material"`
}

// DailyRollup is the per-shift-day aggregate of the filtered set.
type DailyRollup struct {
	Date               string  `json:"date"`
	Tonnage            float64 `json:"tonnage"` // tonnes, 1 decimal
	EventCount         int     `json:"eventCount"`
	TotalMinutes       float64 `json:"totalMinutes"`
	AvgMinutesPerEvent int     `json:"avgMinutesPerEvent"`
}

// RangeSummary is the scalar aggregate over all rollups in view.
type RangeSummary struct {
	Days               int     `json:"days"` // distinct shift days, min 1
	TotalTons          float64 `json:"totalTons"`
	TotalCounts        int     `json:"totalCounts"`
	TotalMinutes       int     `json:"totalMinutes"`
	AvgTonsPerDay      float64 `json:"avgTonsPerDay"`
	AvgCountPerDay     int     `json:"avgCountPerDay"`
	AvgMinutesPerEvent int     `json:"avgMinutesPerEvent"`
}

// ParetoEntry ranks one material by its tonnage contribution.
type ParetoEntry struct {
	MaterialName         string  `json:"materialName"`
	Tonnage              float64 `json:"tonnage"`
	CumulativePercentage int     `json:"cumulativePercentage"`
}

// ParetoResult is the top-10 material ranking plus the ranked total.
type ParetoResult struct {
	Entries   []ParetoEntry `json:"entries"`
	TotalTons float64       `json:"totalTons"`
}

// HourBucket counts arrivals for one hour of the 24-hour clock.
type HourBucket struct {
	Hour  int    `json:"hour"`
	Label string `json:"label"` // "0h".."23h"
	Count int    `json:"count"`
}

// HourlyFlow is the arrival distribution plus the active AM/PM spans.
type HourlyFlow struct {
	Buckets []HourBucket `json:"buckets"`
	AMSpan  string       `json:"amSpan"` // "min~max" over active hours 0-11, "--" if none
	PMSpan  string       `json:"pmSpan"` // likewise over 12-23
}

// MonitorEntry annotates one event with its on-time rate against the
// processing benchmark.
type MonitorEntry struct {
	feed.TruckEvent
	OnTimeRate int `json:"onTimeRate"`
}

// MonitorView is the single-day operator view: all matching events of one
// shift day, newest arrival first.
type MonitorView struct {
	Date          string         `json:"date"`
	Entries       []MonitorEntry `json:"entries"`
	AvgOnTimeRate int            `json:"avgOnTimeRate"`
}

// Report bundles the view models of one recomputation, keyed by the
// snapshot version so the presentation layer can detect staleness.
type Report struct {
	Version   uint64        `json:"version"`
	FetchedAt time.Time     `json:"fetchedAt"`
	Filter    Filter        `json:"filter"`
	Rollups   []DailyRollup `json:"rollups"`
	Summary   RangeSummary  `json:"summary"`
	Pareto    ParetoResult  `json:"pareto"`
	Hourly    HourlyFlow    `json:"hourly"`
	Monitor   MonitorView   `json:"monitor"`
}
