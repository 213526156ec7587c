// Package csvtext implements the lenient delimited-text codec used by the
// yard feed. Unlike encoding/csv it never returns an error: malformed
// quoting simply toggles the quoted state and the scan continues, so a
// partially broken export still yields usable rows.
package csvtext

import "strings"

// Decode converts raw delimited text into rows of string cells.
//
// The scan is a single left-to-right pass maintaining a quoted-field flag.
// Inside quotes a doubled quote is an escaped literal quote and a lone quote
// closes the field. Outside quotes a comma ends a cell and \n or \r ends a
// row; a \r\n pair is consumed as one terminator. A trailing cell with no
// terminator is flushed at end of input. Rows may have differing lengths.
func Decode(text string) [][]string {
	var rows [][]string
	var row []string
	var cell strings.Builder
	inQuotes := false

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		c := runes[i]

		if inQuotes {
			if c == '"' {
				if i+1 < len(runes) && runes[i+1] == '"' {
					cell.WriteRune('"')
					i++
				} else {
					inQuotes = false
				}
			} else {
				cell.WriteRune(c)
			}
			continue
		}

		switch c {
		case '"':
			inQuotes = true
		case ',':
			row = append(row, cell.String())
			cell.Reset()
		case '\r', '\n':
			if c == '\r' && i+1 < len(runes) && runes[i+1] == '\n' {
				i++
			}
			row = append(row, cell.String())
			cell.Reset()
			rows = append(rows, row)
			row = nil
		default:
			cell.WriteRune(c)
		}
	}

	// Flush a trailing cell/row with no terminator
	if cell.Len() > 0 || len(row) > 0 {
		row = append(row, cell.String())
		rows = append(rows, row)
	}

	return rows
}

// Encode renders rows back into delimited text using the same quoting
// convention Decode understands: cells containing a comma, quote, or line
// break are wrapped in quotes with embedded quotes doubled.
func Encode(rows [][]string) string {
	var b strings.Builder
	for _, row := range rows {
		for i, cell := range row {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(encodeCell(cell))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func encodeCell(cell string) string {
	if !strings.ContainsAny(cell, ",\"\n\r") {
		return cell
	}
	return `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
}
