package feed

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// The feed mixes year-first and day-first timestamp text, sometimes with
// invisible Unicode baggage pasted in from spreadsheets. Year-first is tried
// before day-first so ISO-like strings are never misread as day/month.
var (
	yearFirstRe = regexp.MustCompile(`^(\d{4})[-/.](\d{1,2})[-/.](\d{1,2})$`)
	// Day-first requires a 4-digit year; 2-digit years fall through to the
	// generic layout parse below.
	dayFirstRe = regexp.MustCompile(`^(\d{1,2})[-/.](\d{1,2})[-/.](\d{4})$`)
	timeRe     = regexp.MustCompile(`^(\d{1,2}):(\d{1,2})(?::(\d{1,2}))?$`)

	invisibleReplacer = strings.NewReplacer(
		"\u200B", "", // zero width space
		"\u200C", "", // zero width non-joiner
		"\u200D", "", // zero width joiner
		"\uFEFF", "", // byte order mark
		"\u00A0", " ", // non-breaking space
	)

	genericLayouts = []string{
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
		"2006/01/02 15:04:05",
		"2006/01/02 15:04",
		"02-Jan-2006 15:04",
		"02 Jan 2006 15:04",
		"2006-01-02",
	}
)

// ParseInstant parses heterogeneous timestamp text into an instant in the
// given location. Returns false when every strategy fails.
func ParseInstant(text string, loc *time.Location) (time.Time, bool) {
	cleaned := strings.TrimSpace(invisibleReplacer.Replace(text))
	if cleaned == "" {
		return time.Time{}, false
	}

	tokens := strings.Fields(cleaned)
	dateToken := tokens[0]
	timeToken := "00:00"
	if len(tokens) > 1 {
		timeToken = tokens[1]
	}

	hour, minute, second, timeOK := parseClock(timeToken)
	if !timeOK {
		hour, minute, second = 0, 0, 0
	}

	// (a) year-first: YYYY[-/.]M[-/.]D
	if m := yearFirstRe.FindStringSubmatch(dateToken); m != nil {
		if t, ok := makeDate(m[1], m[2], m[3], hour, minute, second, loc); ok {
			return t, true
		}
	}

	// (b) day-first: D[-/.]M[-/.]YYYY
	if m := dayFirstRe.FindStringSubmatch(dateToken); m != nil {
		if t, ok := makeDate(m[3], m[2], m[1], hour, minute, second, loc); ok {
			return t, true
		}
	}

	// (c) generic fallback over the cleaned full text
	for _, layout := range genericLayouts {
		if t, err := time.ParseInLocation(layout, cleaned, loc); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

func parseClock(token string) (hour, minute, second int, ok bool) {
	m := timeRe.FindStringSubmatch(token)
	if m == nil {
		return 0, 0, 0, false
	}
	hour, _ = strconv.Atoi(m[1])
	minute, _ = strconv.Atoi(m[2])
	if m[3] != "" {
		second, _ = strconv.Atoi(m[3])
	}
	if hour > 23 || minute > 59 || second > 59 {
		return 0, 0, 0, false
	}
	return hour, minute, second, true
}

// makeDate builds an instant and rejects impossible component combinations
// (time.Date would silently normalize 2024-13-45 otherwise).
func makeDate(yearS, monthS, dayS string, hour, minute, second int, loc *time.Location) (time.Time, bool) {
	year, _ := strconv.Atoi(yearS)
	month, _ := strconv.Atoi(monthS)
	day, _ := strconv.Atoi(dayS)

	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}

	t := time.Date(year, time.Month(month), day, hour, minute, second, 0, loc)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// ShiftDate derives the factory business day containing t. The factory day
// starts at 07:00, so instants before that hour belong to the previous
// calendar date. Only local wall-clock components are used; converting to
// UTC here would shift days near midnight.
func ShiftDate(t time.Time) string {
	if t.Hour() < 7 {
		t = t.AddDate(0, 0, -1)
	}
	return t.Format("2006-01-02")
}

// ShiftDayStart returns 07:00 local on the given shift day key, or false if
// the key is not a YYYY-MM-DD date.
func ShiftDayStart(day string, loc *time.Location) (time.Time, bool) {
	d, err := time.ParseInLocation("2006-01-02", day, loc)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 7, 0, 0, 0, loc), true
}
