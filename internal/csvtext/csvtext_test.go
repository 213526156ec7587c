package csvtext

import (
	"reflect"
	"testing"
)

func TestDecodeBasicRows(t *testing.T) {
	rows := Decode("a,b,c\n1,2,3\n")
	want := [][]string{{"a", "b", "c"}, {"1", "2", "3"}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("Expected %v, got %v", want, rows)
	}
}

func TestDecodeQuotedFields(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want [][]string
	}{
		{
			name: "embedded comma",
			in:   `a,"b,c",d`,
			want: [][]string{{"a", "b,c", "d"}},
		},
		{
			name: "escaped quote",
			in:   `"say ""hi""",x`,
			want: [][]string{{`say "hi"`, "x"}},
		},
		{
			name: "embedded newline",
			in:   "\"line1\nline2\",x",
			want: [][]string{{"line1\nline2", "x"}},
		},
		{
			name: "crlf terminator is one break",
			in:   "a,b\r\nc,d",
			want: [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name: "bare cr terminator",
			in:   "a\rb",
			want: [][]string{{"a"}, {"b"}},
		},
		{
			name: "trailing cell without terminator",
			in:   "a,b\nc",
			want: [][]string{{"a", "b"}, {"c"}},
		},
		{
			name: "ragged rows survive",
			in:   "a,b,c\nx\n",
			want: [][]string{{"a", "b", "c"}, {"x"}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Decode(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Decode(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestDecodeMalformedQuotingDegrades(t *testing.T) {
	// A stray quote toggles state and the scan continues; no error, no panic.
	rows := Decode(`a"b,c`)
	if len(rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(rows))
	}
	// The quote opens a field mid-cell, swallowing the comma into the cell.
	if rows[0][0] != "ab,c" {
		t.Errorf("Expected graceful degradation cell %q, got %q", "ab,c", rows[0][0])
	}
}

func TestDecodeEmptyInput(t *testing.T) {
	if rows := Decode(""); rows != nil {
		t.Errorf("Expected no rows for empty input, got %v", rows)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	rows := [][]string{
		{"plain", "with,comma", `with"quote`},
		{"multi\nline", "", "tail"},
		{"crlf\r\ninside"},
	}

	decoded := Decode(Encode(rows))
	if !reflect.DeepEqual(decoded, rows) {
		t.Errorf("Round trip mismatch:\n in: %q\nout: %q", rows, decoded)
	}
}
