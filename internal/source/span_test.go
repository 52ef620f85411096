package source

import (
	"testing"
)

func pos(off uint32) Position {
	return Position{Offset: off, Line: 1, Col: off + 1}
}

func sp(file FileID, start, end uint32) Span {
	return Span{File: file, Start: pos(start), End: pos(end)}
}

func TestSpan_Merge(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Span
		expected Span
	}{
		{
			name:     "adjacent spans",
			a:        sp(1, 0, 1),
			b:        sp(1, 1, 3),
			expected: sp(1, 0, 3),
		},
		{
			name:     "argument order does not matter",
			a:        sp(1, 1, 3),
			b:        sp(1, 0, 1),
			expected: sp(1, 0, 3),
		},
		{
			name:     "nested span",
			a:        sp(1, 0, 10),
			b:        sp(1, 2, 4),
			expected: sp(1, 0, 10),
		},
		{
			name:     "gap between spans is covered",
			a:        sp(1, 0, 2),
			b:        sp(1, 8, 9),
			expected: sp(1, 0, 9),
		},
		{
			name:     "zero-length spans",
			a:        sp(1, 5, 5),
			b:        sp(1, 5, 5),
			expected: sp(1, 5, 5),
		},
		{
			name:     "different files keep receiver",
			a:        sp(1, 4, 6),
			b:        sp(2, 0, 10),
			expected: sp(1, 4, 6),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.a.Merge(tt.b)
			if result != tt.expected {
				t.Errorf("Merge() = %+v, want %+v", result, tt.expected)
			}
			if result.Start.Offset > result.End.Offset {
				t.Errorf("Merge() broke start <= end: %+v", result)
			}
		})
	}
}

func TestSpan_MergeKeepsLineAndColumn(t *testing.T) {
	a := Span{Start: Position{Offset: 4, Line: 2, Col: 1}, End: Position{Offset: 6, Line: 2, Col: 3}}
	b := Span{Start: Position{Offset: 0, Line: 1, Col: 1}, End: Position{Offset: 2, Line: 1, Col: 3}}

	got := a.Merge(b)
	if got.Start != b.Start {
		t.Errorf("start = %+v, want %+v", got.Start, b.Start)
	}
	if got.End != a.End {
		t.Errorf("end = %+v, want %+v", got.End, a.End)
	}
}

func TestSpan_Compare(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want int
	}{
		{"equal", sp(1, 2, 4), sp(1, 2, 4), 0},
		{"earlier start", sp(1, 1, 4), sp(1, 2, 4), -1},
		{"later start", sp(1, 3, 4), sp(1, 2, 4), 1},
		{"same start shorter", sp(1, 2, 3), sp(1, 2, 4), -1},
		{"file wins over offset", sp(0, 9, 9), sp(1, 0, 0), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Compare(tt.b); got != tt.want {
				t.Errorf("Compare() = %d, want %d", got, tt.want)
			}
			if got := tt.a.Less(tt.b); got != (tt.want < 0) {
				t.Errorf("Less() = %v, want %v", got, tt.want < 0)
			}
		})
	}
}

func TestSpan_CompareIgnoresLineColumn(t *testing.T) {
	a := Span{Start: Position{Offset: 3, Line: 9, Col: 9}, End: Position{Offset: 5}}
	b := Span{Start: Position{Offset: 3, Line: 1, Col: 1}, End: Position{Offset: 5, Line: 4}}
	if a.Compare(b) != 0 {
		t.Errorf("spans with equal offsets should compare equal")
	}
}

func TestSpan_Contains(t *testing.T) {
	outer := sp(1, 0, 10)
	if !outer.Contains(sp(1, 0, 10)) {
		t.Error("span should contain itself")
	}
	if !outer.Contains(sp(1, 3, 3)) {
		t.Error("span should contain inner zero-length span")
	}
	if outer.Contains(sp(1, 5, 11)) {
		t.Error("span should not contain overhanging span")
	}
	if outer.Contains(sp(2, 1, 2)) {
		t.Error("span should not contain span from another file")
	}
}

func TestSpan_ZeroideToStart(t *testing.T) {
	tests := []struct {
		name     string
		span     Span
		expected Span
	}{
		{"normal span", sp(1, 10, 20), sp(1, 10, 10)},
		{"already zero-length span", sp(1, 15, 15), sp(1, 15, 15)},
		{"span at position 0", sp(2, 0, 100), sp(2, 0, 0)},
		{"single character span", sp(1, 42, 43), sp(1, 42, 42)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.span.ZeroideToStart()
			if result != tt.expected {
				t.Errorf("ZeroideToStart() = %+v, want %+v", result, tt.expected)
			}
			if !result.Empty() {
				t.Errorf("Result is not zero-length: %+v", result)
			}
		})
	}
}

func TestSpan_ZeroideToEnd(t *testing.T) {
	tests := []struct {
		name     string
		span     Span
		expected Span
	}{
		{"normal span", sp(1, 10, 20), sp(1, 20, 20)},
		{"already zero-length span", sp(1, 15, 15), sp(1, 15, 15)},
		{"span at position 0", sp(2, 0, 100), sp(2, 100, 100)},
		{"single character span", sp(1, 42, 43), sp(1, 43, 43)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.span.ZeroideToEnd()
			if result != tt.expected {
				t.Errorf("ZeroideToEnd() = %+v, want %+v", result, tt.expected)
			}
			if result.Len() != 0 {
				t.Errorf("Result is not zero-length: %+v", result)
			}
		})
	}
}

func TestSpan_String(t *testing.T) {
	s := Span{File: 3, Start: Position{Offset: 0, Line: 1, Col: 1}, End: Position{Offset: 7, Line: 2, Col: 4}}
	if got, want := s.String(), "3:1:1-2:4"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
