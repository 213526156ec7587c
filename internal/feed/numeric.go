package feed

import (
	"math"
	"strconv"
	"strings"
)

// ParseNumber parses locale-formatted numeric text ("1,894" style thousands
// separators). Empty or invalid input yields 0; it never returns NaN and
// never fails, so malformed cells degrade to zero instead of aborting a
// batch.
func ParseNumber(text string) float64 {
	cleaned := strings.TrimSpace(strings.ReplaceAll(text, ",", ""))
	if cleaned == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
