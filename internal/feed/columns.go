package feed

import "strings"

// Field identifies one of the logical columns the pipeline consumes.
type Field int

const (
	FieldTruckID Field = iota
	FieldMaterial
	FieldArrival
	FieldDeparture
	FieldDuration
	FieldWeight
)

// ColumnMap maps each logical field to its column index in the feed,
// or -1 when no header matched.
type ColumnMap map[Field]int

// fieldKeywords is the data-driven header vocabulary. The yard exports
// headers in either Chinese or English depending on who generated the
// sheet; matching is case-insensitive containment, so "MatName" and
// "物料名称" both resolve the material column. New vocabularies are added
// here, not as code branches.
var fieldKeywords = map[Field][]string{
	FieldTruckID:   {"truckno", "truck", "plate", "vehicle", "车牌", "车号"},
	FieldMaterial:  {"matname", "material", "物料", "品名", "料名"},
	FieldArrival:   {"arrival", "arrive", "intime", "进厂", "入厂", "到达"},
	FieldDeparture: {"departure", "depart", "outtime", "出厂", "离厂", "离开"},
	FieldDuration:  {"totaltime", "duration", "minutes", "时长", "耗时"},
	FieldWeight:    {"weight", "net", "重量", "净重", "吨位"},
}

// ResolveColumns matches a header row against the keyword table.
// The first header cell containing any keyword variant wins; unmatched
// fields resolve to -1 and the record builder substitutes defaults.
func ResolveColumns(header []string) ColumnMap {
	cols := make(ColumnMap, len(fieldKeywords))
	for field := range fieldKeywords {
		cols[field] = -1
	}

	for field, keywords := range fieldKeywords {
		for idx, cell := range header {
			lower := strings.ToLower(strings.TrimSpace(cell))
			if containsAny(lower, keywords) {
				cols[field] = idx
				break
			}
		}
	}

	return cols
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
