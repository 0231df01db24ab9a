package twinny

import (
	"fmt"
	"strings"

	"github.com/yungbote/lifetwin-backend/internal/domain/lifelog"
	"github.com/yungbote/lifetwin-backend/internal/modules/lifetwin/aggregate"
)

// Evidence produces one numeric justification per fired trigger, in firing order.
func Evidence(fired []Trigger, in Input) []string {
	out := []string{}
	for _, t := range fired {
		if line := evidenceFor(t, in); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func evidenceFor(t Trigger, in Input) string {
	today := in.Today
	switch t {
	case LowSleep3D:
		recent := newestFirst(in.Aggregates, lifelog.ActivitySleep, recentSleepDays)
		if len(recent) == 0 {
			return ""
		}
		return fmt.Sprintf("Average sleep %.1fh over the last %d logged days", meanAverage(recent), len(recent))
	case BurnoutRisk:
		return fmt.Sprintf("Energy %.1f vs focus %.1f: focus is running ahead of your energy", today.Energy, today.Focus)
	case ExerciseMissing:
		window := in.windowDays()
		missing := window - exerciseDays(in.Aggregates)
		if missing < 0 {
			missing = 0
		}
		return fmt.Sprintf("No exercise on %d of the last %d days", missing, window)
	case ImpulseSpending:
		spend := byType(in.Aggregates, lifelog.ActivitySpend)
		avg, ok := meanMeta(spend, aggregate.KeyImpulseRatio)
		if !ok {
			return ""
		}
		return fmt.Sprintf("Impulse purchases at %.0f%% of spending (last %d days)", avg*100, len(spend))
	case HighFocus:
		avg, ok := meanMeta(byType(in.Aggregates, lifelog.ActivityStudy), aggregate.KeyConcentrationAvg)
		if !ok {
			return ""
		}
		return fmt.Sprintf("Average study concentration %.1f / 5.0", avg)
	case ImprovingMood:
		recent := oldestFirst(in.Aggregates, lifelog.ActivityMood)
		if len(recent) > recentMoodDays {
			recent = recent[len(recent)-recentMoodDays:]
		}
		parts := make([]string, len(recent))
		for i, a := range recent {
			parts[i] = fmt.Sprintf("%.1f", a.Average)
		}
		return fmt.Sprintf("Mood trend %s (rising)", strings.Join(parts, " -> "))
	case LowEnergy:
		return fmt.Sprintf("Energy score %.1f / 100", today.Energy)
	case LowMental:
		return fmt.Sprintf("Mental score %.1f / 100", today.Mental)
	case GreatBalance:
		return fmt.Sprintf("Balance: energy %.1f / mental %.1f / focus %.1f / goal %.1f",
			today.Energy, today.Mental, today.Focus, today.GoalProgress)
	}
	return ""
}

// exerciseDays counts distinct days whose health aggregate reports exercise.
func exerciseDays(aggs []*lifelog.DailyAggregate) int {
	days := map[string]bool{}
	for _, a := range byType(aggs, lifelog.ActivityHealth) {
		if aggregate.Truthy(a.Summary()[aggregate.KeyHasExercise]) {
			days[a.Date.UTC().Format(lifelog.DateLayout)] = true
		}
	}
	return len(days)
}
