package lifelog

import (
	"testing"
	"time"
)

func TestDateOfUsesLocation(t *testing.T) {
	seoul := time.FixedZone("KST", 9*3600)
	ts := time.Date(2026, 10, 18, 16, 30, 0, 0, time.UTC) // 01:30 on the 19th in KST

	if got := DateOf(ts, time.UTC); got.Format(DateLayout) != "2026-10-18" {
		t.Fatalf("UTC day: got %s", got.Format(DateLayout))
	}
	got := DateOf(ts, seoul)
	if got.Format(DateLayout) != "2026-10-19" || got.Location() != time.UTC {
		t.Fatalf("KST day: got %s (%s)", got.Format(DateLayout), got.Location())
	}
}

func TestDayBounds(t *testing.T) {
	seoul := time.FixedZone("KST", 9*3600)
	day := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	start, end := DayBounds(day, seoul)
	if want := time.Date(2026, 10, 18, 15, 0, 0, 0, time.UTC); !start.Equal(want) {
		t.Fatalf("start: got %s want %s", start, want)
	}
	if end.Sub(start) != 24*time.Hour {
		t.Fatalf("expected a 24h day, got %s", end.Sub(start))
	}
}

func TestParseDateAndWindow(t *testing.T) {
	d, err := ParseDate("2026-10-19")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if got := WindowStart(d, 7).Format(DateLayout); got != "2026-10-13" {
		t.Fatalf("WindowStart(7): got %s", got)
	}
	if got := WindowStart(d, 0); !got.Equal(d) {
		t.Fatalf("WindowStart(0) should clamp to the day itself")
	}
	if _, err := ParseDate("19/10/2026"); err == nil {
		t.Fatalf("expected error for bad layout")
	}
}

func TestLogEntryMetadataLenient(t *testing.T) {
	bad := "{not json"
	e := &LogEntry{Meta: &bad}
	if m := e.Metadata(); len(m) != 0 {
		t.Fatalf("malformed meta should decode empty, got %v", m)
	}
	ok := `{"quality": 4}`
	e.Meta = &ok
	if m := e.Metadata(); m["quality"] != float64(4) {
		t.Fatalf("unexpected meta: %v", m)
	}
	if m := (&LogEntry{}).Metadata(); m == nil {
		t.Fatalf("nil meta should decode to empty map")
	}
}
