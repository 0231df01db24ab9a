package plan

import (
	"strings"
	"testing"
	"time"

	"github.com/yungbote/lifetwin-backend/internal/domain/planning"
	"github.com/yungbote/lifetwin-backend/internal/modules/lifetwin/simulation"
)

// a Monday
var today = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

func byCategory(events []planning.DraftEvent, category string) []planning.DraftEvent {
	var out []planning.DraftEvent
	for _, e := range events {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return out
}

func TestSleepEvents(t *testing.T) {
	seoul := time.FixedZone("KST", 9*3600)
	g := NewGenerator(seoul)
	events := g.Generate(map[string]float64{simulation.SleepHours: 1.0}, 30, Preferences{}, today)
	if len(events) != 14 {
		t.Fatalf("sleep events are capped at 14 days, got %d", len(events))
	}
	first := events[0]
	if want := time.Date(2026, 10, 20, 23, 0, 0, 0, seoul); !first.StartAt.Equal(want) {
		t.Fatalf("first bedtime: got %s want %s", first.StartAt, want)
	}
	if first.EndAt.Sub(first.StartAt) != 8*time.Hour {
		t.Fatalf("sleep duration: got %s", first.EndAt.Sub(first.StartAt))
	}
	if first.Status != planning.EventStatusPlanned || !strings.Contains(first.Note, "+1.0h") {
		t.Fatalf("unexpected event: %+v", first)
	}

	if got := g.Generate(map[string]float64{simulation.SleepHours: 0.4}, 7, Preferences{}, today); len(got) != 0 {
		t.Fatalf("changes under half an hour produce no sleep events, got %d", len(got))
	}

	bed := 22
	short := g.Generate(map[string]float64{simulation.SleepHours: -4}, 3, Preferences{BedtimeHour: &bed}, today)
	if len(short) != 3 || short[0].StartAt.Hour() != 22 || short[0].EndAt.Sub(short[0].StartAt) != 5*time.Hour {
		t.Fatalf("sleep clamp or bedtime preference ignored: %+v", short[0])
	}
}

func TestStudyEvents(t *testing.T) {
	g := NewGenerator(time.UTC)
	pomodoro := g.Generate(map[string]float64{simulation.StudyHours: 1.5}, 2, Preferences{}, today)
	if len(pomodoro) != 6 {
		t.Fatalf("1.5h is 3 sets a day for 2 days, got %d", len(pomodoro))
	}
	if !pomodoro[1].StartAt.Equal(time.Date(2026, 10, 20, 9, 35, 0, 0, time.UTC)) || ExpectedMinutes(pomodoro[1]) != 25 {
		t.Fatalf("second set: %+v", pomodoro[1])
	}
	if pomodoro[2].Title != "Study set 3/3 (25 min)" {
		t.Fatalf("title: got %q", pomodoro[2].Title)
	}

	block := g.Generate(map[string]float64{simulation.StudyHours: 0.5}, 1, Preferences{StudyFormat: "Block"}, today)
	if len(block) != 1 || block[0].StartAt.Hour() != 10 || ExpectedMinutes(block[0]) != 60 {
		t.Fatalf("block of at least an hour expected, got %+v", block)
	}

	if got := g.Generate(map[string]float64{simulation.StudyHours: -1}, 7, Preferences{}, today); len(got) != 0 {
		t.Fatalf("less study makes no events, got %d", len(got))
	}
}

func TestExerciseEvents(t *testing.T) {
	g := NewGenerator(time.UTC)
	events := g.Generate(map[string]float64{simulation.ExercisePerWeek: 3}, 7, Preferences{}, today)
	want := []time.Time{
		time.Date(2026, 10, 26, 7, 0, 0, 0, time.UTC),
		time.Date(2026, 10, 21, 7, 0, 0, 0, time.UTC),
		time.Date(2026, 10, 23, 7, 0, 0, 0, time.UTC),
	}
	if len(events) != len(want) {
		t.Fatalf("expected %d sessions, got %d", len(want), len(events))
	}
	for i, w := range want {
		if !events[i].StartAt.Equal(w) || ExpectedMinutes(events[i]) != 45 {
			t.Fatalf("session %d: got %+v want %s", i, events[i], w)
		}
	}

	// two sessions a week on preferred days over four weeks
	prefs := Preferences{ExerciseDays: []string{"sat", "TUESDAY", "xyz"}}
	month := g.Generate(map[string]float64{simulation.ExercisePerWeek: 2}, 28, prefs, today)
	if len(month) != 8 {
		t.Fatalf("expected 8 sessions, got %d", len(month))
	}
	for _, e := range month {
		if wd := e.StartAt.Weekday(); wd != time.Saturday && wd != time.Tuesday {
			t.Fatalf("session on %s", wd)
		}
		if e.StartAt.After(today.AddDate(0, 0, 28).Add(24 * time.Hour)) {
			t.Fatalf("session past horizon: %s", e.StartAt)
		}
	}

	// horizon shorter than a week skips days beyond it
	short := g.Generate(map[string]float64{simulation.ExercisePerWeek: 3}, 3, Preferences{}, today)
	if len(short) != 1 || short[0].StartAt.Day() != 21 {
		t.Fatalf("only Wednesday fits in three days, got %+v", short)
	}
}

func TestSpendAndPhoneEvents(t *testing.T) {
	g := NewGenerator(time.UTC)
	events := g.Generate(map[string]float64{simulation.SpendReduction10Pct: 2, simulation.PhoneMinus30Min: 1.5}, 14, Preferences{}, today)
	spend := byCategory(events, "general")
	if len(spend) != 2+14 {
		t.Fatalf("expected 2 weekly checks and 14 phone windows, got %d", len(spend))
	}
	if spend[0].Title != "Weekly spending check (-20% target)" || spend[1].StartAt.Day() != 27 {
		t.Fatalf("spend checks: %+v / %+v", spend[0], spend[1])
	}
	phone := spend[2]
	if phone.StartAt.Hour() != 20 || ExpectedMinutes(phone) != 45 {
		t.Fatalf("phone window: %+v", phone)
	}
}

func TestNoChangesNoEvents(t *testing.T) {
	if got := NewGenerator(nil).Generate(map[string]float64{"unknown": 5}, 7, Preferences{}, today); len(got) != 0 {
		t.Fatalf("expected no events, got %d", len(got))
	}
}
