package aggregate

import (
	"reflect"
	"testing"

	"github.com/yungbote/lifetwin-backend/internal/domain/lifelog"
)

func entry(typ lifelog.ActivityType, value float64, meta string) *lifelog.LogEntry {
	e := &lifelog.LogEntry{Type: typ, Value: value}
	if meta != "" {
		e.Meta = &meta
	}
	return e
}

func TestComputeStats(t *testing.T) {
	s := ComputeStats([]*lifelog.LogEntry{
		entry(lifelog.ActivityStudy, 2, ""),
		entry(lifelog.ActivityStudy, 3, ""),
		entry(lifelog.ActivityStudy, 1, ""),
	})
	if s.Count != 3 || s.Total != 6 || s.Average != 2 {
		t.Fatalf("unexpected stats: %+v", s)
	}
	if z := ComputeStats(nil); z.Count != 0 || z.Average != 0 {
		t.Fatalf("empty stats should be zero, got %+v", z)
	}
}

func TestSummarizeSleepAndStudy(t *testing.T) {
	sleep := Summarize(lifelog.ActivitySleep, []*lifelog.LogEntry{
		entry(lifelog.ActivitySleep, 7, `{"quality": 3}`),
		entry(lifelog.ActivitySleep, 8, `{"quality": 5}`),
		entry(lifelog.ActivitySleep, 6, `{}`),
	})
	if sleep[KeyAvgQuality] != 4.0 {
		t.Fatalf("avg_quality: got %v", sleep[KeyAvgQuality])
	}
	noQuality := Summarize(lifelog.ActivitySleep, []*lifelog.LogEntry{entry(lifelog.ActivitySleep, 8, "")})
	if v, ok := noQuality[KeyAvgQuality]; !ok || v != nil {
		t.Fatalf("avg_quality should be present and nil, got %v (%v)", v, ok)
	}

	study := Summarize(lifelog.ActivityStudy, []*lifelog.LogEntry{
		entry(lifelog.ActivityStudy, 1, `{"concentration": 4, "subject": "math"}`),
		entry(lifelog.ActivityStudy, 2, `{"concentration": "5", "subject": "english"}`),
		entry(lifelog.ActivityStudy, 1, `{"subject": "math"}`),
	})
	if study[KeyConcentrationAvg] != 4.5 {
		t.Fatalf("concentration_avg: got %v", study[KeyConcentrationAvg])
	}
	if got := study[KeySubjects]; !reflect.DeepEqual(got, []string{"english", "math"}) {
		t.Fatalf("subjects: got %v", got)
	}
}

func TestSummarizeHealth(t *testing.T) {
	got := Summarize(lifelog.ActivityHealth, []*lifelog.LogEntry{
		entry(lifelog.ActivityHealth, 1, `{"exercise_type": "run", "duration_min": 30}`),
		entry(lifelog.ActivityHealth, 1, `{"exercise_type": "run", "duration_min": 15}`),
		entry(lifelog.ActivityHealth, 1, `{"has_exercise": false}`),
	})
	if got[KeyHasExercise] != true {
		t.Fatalf("has_exercise: got %v", got[KeyHasExercise])
	}
	if got[KeyTotalDurationMin] != 45.0 {
		t.Fatalf("total_duration_min: got %v", got[KeyTotalDurationMin])
	}
	if !reflect.DeepEqual(got[KeyExerciseTypes], []string{"run", "run"}) {
		t.Fatalf("exercise_types should keep duplicates, got %v", got[KeyExerciseTypes])
	}

	// any health entry counts as exercise, even with an explicit false flag
	flagOnly := Summarize(lifelog.ActivityHealth, []*lifelog.LogEntry{entry(lifelog.ActivityHealth, 0, `{"has_exercise": false}`)})
	if flagOnly[KeyHasExercise] != true || flagOnly[KeyTotalDurationMin] != nil {
		t.Fatalf("unexpected health summary: %v", flagOnly)
	}
}

func TestSummarizeSpendAndMood(t *testing.T) {
	spend := Summarize(lifelog.ActivitySpend, []*lifelog.LogEntry{
		entry(lifelog.ActivitySpend, 12000, `{"is_impulse": true, "category": "food"}`),
		entry(lifelog.ActivitySpend, 3000, `{"category": "food"}`),
		entry(lifelog.ActivitySpend, 5000, `{"is_impulse": 1}`),
		entry(lifelog.ActivitySpend, 800, `not json`),
	})
	if spend[KeyImpulseRatio] != 0.5 || spend[KeySavingsRatio] != 0.5 {
		t.Fatalf("ratios: got %v / %v", spend[KeyImpulseRatio], spend[KeySavingsRatio])
	}
	wantCats := map[string]int{"food": 2, DefaultSpendCategory: 2}
	if !reflect.DeepEqual(spend[KeyCategories], wantCats) {
		t.Fatalf("categories: got %v", spend[KeyCategories])
	}

	mood := Summarize(lifelog.ActivityMood, []*lifelog.LogEntry{
		entry(lifelog.ActivityMood, 4, `{"emotion_type": "calm"}`),
		entry(lifelog.ActivityMood, 2, `{"emotion_type": "anxious"}`),
		entry(lifelog.ActivityMood, 5, `{"emotion_type": "calm"}`),
		entry(lifelog.ActivityMood, 3, ``),
	})
	if !reflect.DeepEqual(mood[KeyEmotionCounts], map[string]int{"calm": 2, "anxious": 1}) {
		t.Fatalf("emotion_counts: got %v", mood[KeyEmotionCounts])
	}

	if other := Summarize(lifelog.ActivityType("reading"), []*lifelog.LogEntry{entry("reading", 1, `{"a": 1}`)}); len(other) != 0 {
		t.Fatalf("unknown type should summarize empty, got %v", other)
	}
}

func TestGroupByTypeOrder(t *testing.T) {
	groups := GroupByType([]*lifelog.LogEntry{
		entry(lifelog.ActivityMood, 3, ""),
		entry("reading", 1, ""),
		entry(lifelog.ActivitySleep, 7, ""),
		entry(lifelog.ActivityMood, 4, ""),
	})
	var order []lifelog.ActivityType
	for _, g := range groups {
		order = append(order, g.Type)
	}
	want := []lifelog.ActivityType{lifelog.ActivitySleep, lifelog.ActivityMood, "reading"}
	if !reflect.DeepEqual(order, want) {
		t.Fatalf("group order: got %v want %v", order, want)
	}
	if len(groups[1].Entries) != 2 {
		t.Fatalf("mood group should hold 2 entries")
	}
}

func TestTruthyAndFloat(t *testing.T) {
	cases := []struct {
		in   any
		want bool
	}{
		{nil, false}, {false, false}, {true, true}, {0.0, false}, {1.0, true},
		{"", false}, {"no", true}, {[]any{}, false}, {map[string]any{"a": 1}, true},
	}
	for _, tc := range cases {
		if got := Truthy(tc.in); got != tc.want {
			t.Fatalf("Truthy(%#v)=%v want %v", tc.in, got, tc.want)
		}
	}
	if _, ok := Float(true); ok {
		t.Fatalf("booleans must not coerce to numbers")
	}
	if f, ok := Float(" 2.5 "); !ok || f != 2.5 {
		t.Fatalf("numeric string: got %v %v", f, ok)
	}
}
