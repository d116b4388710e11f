package weather

import (
	"strings"
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2024, 3, 1, 19, 5, 0, 0, time.UTC)
	for _, in := range []string{"2024-03-01T19:05:00", "2024-03-01T19:05:00Z", "2024-03-01 19:05:00", "2024-03-01T19:05"} {
		got, err := ParseTimestamp(in)
		if err != nil {
			t.Errorf("ParseTimestamp(%q): %v", in, err)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("ParseTimestamp(%q) = %v, want %v", in, got, want)
		}
	}

	offset, err := ParseTimestamp("2024-03-01T14:05:00-05:00")
	if err != nil || !offset.Equal(want) {
		t.Errorf("offset form = %v, %v", offset, err)
	}

	if _, err := ParseTimestamp(""); err == nil {
		t.Error("expected error for empty timestamp")
	}
}

func sampleSeries() Series {
	base := time.Date(2024, 3, 1, 14, 0, 0, 0, time.UTC)
	var pts []Minute
	for i := 5; i >= 0; i-- {
		pts = append(pts, Minute{Local: base.Add(time.Duration(i) * time.Minute), UTC: base.Add(5*time.Hour + time.Duration(i)*time.Minute), Temp: 10 + float64(i)})
	}
	return NewSeries(pts)
}

func TestSeriesHeadAndRange(t *testing.T) {
	s := sampleSeries()
	if s[0].Temp != 10 || s[5].Temp != 15 {
		t.Fatalf("series not sorted: %v .. %v", s[0].Temp, s[5].Temp)
	}
	if got := len(s.Head(5)); got != 5 {
		t.Errorf("Head(5) len = %d", got)
	}
	if got := len(s.Head(50)); got != 6 {
		t.Errorf("Head(50) len = %d", got)
	}
	lo, hi, ok := s.TempRange()
	if !ok || lo != 10 || hi != 15 {
		t.Errorf("TempRange = %v, %v, %v", lo, hi, ok)
	}
	if _, _, ok := Series(nil).TempRange(); ok {
		t.Error("empty series should report !ok")
	}
}

func TestSeriesTable(t *testing.T) {
	out := sampleSeries().Head(2).Table()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "timestamp_local") || !strings.Contains(lines[1], "2024-03-01 14:00:00") {
		t.Errorf("unexpected table:\n%s", out)
	}
	if !strings.Contains(lines[2], "11.0") {
		t.Errorf("second row should show 11.0:\n%s", out)
	}
}
