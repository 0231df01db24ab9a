package aggregate

import (
	"sort"

	"github.com/yungbote/lifetwin-backend/internal/domain/lifelog"
)

// Metadata summary keys.
const (
	KeyAvgQuality       = "avg_quality"
	KeyConcentrationAvg = "concentration_avg"
	KeySubjects         = "subjects"
	KeyHasExercise      = "has_exercise"
	KeyTotalDurationMin = "total_duration_min"
	KeyExerciseTypes    = "exercise_types"
	KeyImpulseRatio     = "impulse_ratio"
	KeySavingsRatio     = "savings_ratio"
	KeyCategories       = "categories"
	KeyEmotionCounts    = "emotion_counts"
)

// DefaultSpendCategory buckets spend entries without a category.
const DefaultSpendCategory = "other"

// Stats holds the numeric rollup of one (date, type) group.
type Stats struct {
	Total   float64
	Average float64
	Count   int
}

// Group is one (date, type) bucket of entries, oldest first.
type Group struct {
	Type    lifelog.ActivityType
	Entries []*lifelog.LogEntry
}

// GroupByType buckets entries by activity type. Groups come back in the canonical type
// order followed by any unknown types sorted by name.
func GroupByType(entries []*lifelog.LogEntry) []Group {
	byType := map[lifelog.ActivityType][]*lifelog.LogEntry{}
	for _, e := range entries {
		if e == nil {
			continue
		}
		byType[e.Type] = append(byType[e.Type], e)
	}
	out := make([]Group, 0, len(byType))
	seen := map[lifelog.ActivityType]bool{}
	for _, t := range lifelog.ActivityTypes() {
		if es, ok := byType[t]; ok {
			out = append(out, Group{Type: t, Entries: es})
			seen[t] = true
		}
	}
	var rest []lifelog.ActivityType
	for t := range byType {
		if !seen[t] {
			rest = append(rest, t)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i] < rest[j] })
	for _, t := range rest {
		out = append(out, Group{Type: t, Entries: byType[t]})
	}
	return out
}

// ComputeStats returns count, sum and mean of the entry values.
func ComputeStats(entries []*lifelog.LogEntry) Stats {
	var s Stats
	for _, e := range entries {
		if e == nil {
			continue
		}
		s.Total += e.Value
		s.Count++
	}
	if s.Count > 0 {
		s.Average = s.Total / float64(s.Count)
	}
	return s
}

// Summarize builds the type specific metadata summary for one group. Unknown types get
// an empty map. Missing or malformed entry metadata counts as absent.
func Summarize(typ lifelog.ActivityType, entries []*lifelog.LogEntry) map[string]any {
	metas := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		if e != nil {
			metas = append(metas, e.Metadata())
		}
	}
	switch typ {
	case lifelog.ActivitySleep:
		return map[string]any{KeyAvgQuality: meanOf(metas, "quality")}
	case lifelog.ActivityStudy:
		return map[string]any{
			KeyConcentrationAvg: meanOf(metas, "concentration"),
			KeySubjects:         distinctStrings(metas, "subject"),
		}
	case lifelog.ActivityHealth:
		return summarizeHealth(metas)
	case lifelog.ActivitySpend:
		return summarizeSpend(metas)
	case lifelog.ActivityMood:
		return map[string]any{KeyEmotionCounts: histogram(metas, "emotion_type", "")}
	default:
		return map[string]any{}
	}
}

func summarizeHealth(metas []map[string]any) map[string]any {
	// A health log on that day counts as exercise even without an explicit flag.
	hasExercise := len(metas) > 0
	for _, m := range metas {
		if Truthy(m["has_exercise"]) {
			hasExercise = true
		}
		if _, ok := Str(m["exercise_type"]); ok {
			hasExercise = true
		}
	}

	var duration any
	sum, present := 0.0, false
	for _, m := range metas {
		if f, ok := Float(m["duration_min"]); ok {
			sum += f
			present = true
		}
	}
	if present {
		duration = sum
	}

	types := []string{}
	for _, m := range metas {
		if s, ok := Str(m["exercise_type"]); ok {
			types = append(types, s)
		}
	}

	return map[string]any{
		KeyHasExercise:      hasExercise,
		KeyTotalDurationMin: duration,
		KeyExerciseTypes:    types,
	}
}

func summarizeSpend(metas []map[string]any) map[string]any {
	impulse := 0
	for _, m := range metas {
		if Truthy(m["is_impulse"]) {
			impulse++
		}
	}
	ratio := 0.0
	if len(metas) > 0 {
		ratio = float64(impulse) / float64(len(metas))
	}
	return map[string]any{
		KeyImpulseRatio: ratio,
		KeySavingsRatio: 1 - ratio,
		KeyCategories:   histogram(metas, "category", DefaultSpendCategory),
	}
}

// meanOf returns the mean of the numeric values under key, or nil when none is present.
func meanOf(metas []map[string]any, key string) any {
	sum, n := 0.0, 0
	for _, m := range metas {
		if f, ok := Float(m[key]); ok {
			sum += f
			n++
		}
	}
	if n == 0 {
		return nil
	}
	return sum / float64(n)
}

func distinctStrings(metas []map[string]any, key string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, m := range metas {
		s, ok := Str(m[key])
		if !ok || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// histogram counts string values under key. With def set, entries lacking the key are
// counted under def; otherwise they are skipped.
func histogram(metas []map[string]any, key, def string) map[string]int {
	out := map[string]int{}
	for _, m := range metas {
		s, ok := Str(m[key])
		if !ok {
			if def == "" {
				continue
			}
			s = def
		}
		out[s]++
	}
	return out
}
