package feed

import (
	"strings"
	"time"
)

// TruckEvent is one normalized yard event. Timestamp text is kept verbatim
// for display; instants are re-derived on demand rather than cached here.
type TruckEvent struct {
	TruckID         string  `json:"truckId" csv:"truck_id"`
	MaterialName    string  `json:"materialName" csv:"material"`
	ArrivalText     string  `json:"arrivalText" csv:"arrival"`
	DepartureText   string  `json:"departureText" csv:"departure"`
	DurationMinutes float64 `json:"durationMinutes" csv:"duration_minutes"`
	WeightKg        float64 `json:"weightKg" csv:"weight_kg"`
}

// Arrival parses the event's arrival text in the given location.
func (e TruckEvent) Arrival(loc *time.Location) (time.Time, bool) {
	return ParseInstant(e.ArrivalText, loc)
}

// BuildEvents turns decoded rows (header excluded) into typed events.
// Unresolved or short rows default per field: "N/A" for the truck id, empty
// strings for timestamps, zero for numbers. Rows whose material is empty
// after trimming are dropped. Output preserves row order; duplicates are
// kept, a truck legitimately appears many times per day.
func BuildEvents(rows [][]string, cols ColumnMap) []TruckEvent {
	events := make([]TruckEvent, 0, len(rows))

	for _, row := range rows {
		material := strings.TrimSpace(cellAt(row, cols[FieldMaterial]))
		if material == "" {
			continue
		}

		truckID := strings.TrimSpace(cellAt(row, cols[FieldTruckID]))
		if truckID == "" {
			truckID = "N/A"
		}

		duration := ParseNumber(cellAt(row, cols[FieldDuration]))
		if duration < 0 {
			duration = 0
		}
		weight := ParseNumber(cellAt(row, cols[FieldWeight]))
		if weight < 0 {
			weight = 0
		}

		events = append(events, TruckEvent{
			TruckID:         truckID,
			MaterialName:    material,
			ArrivalText:     strings.TrimSpace(cellAt(row, cols[FieldArrival])),
			DepartureText:   strings.TrimSpace(cellAt(row, cols[FieldDeparture])),
			DurationMinutes: duration,
			WeightKg:        weight,
		})
	}

	return events
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
