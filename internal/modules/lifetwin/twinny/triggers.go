package twinny

import (
	"sort"

	"github.com/yungbote/lifetwin-backend/internal/domain/lifelog"
	"github.com/yungbote/lifetwin-backend/internal/modules/lifetwin/aggregate"
)

// Trigger names a behavioral pattern detected over the recent window.
type Trigger string

const (
	LowSleep3D      Trigger = "LOW_SLEEP_3D"
	HighFocus       Trigger = "HIGH_FOCUS"
	ImpulseSpending Trigger = "IMPULSE_SPENDING"
	BurnoutRisk     Trigger = "BURNOUT_RISK"
	ImprovingMood   Trigger = "IMPROVING_MOOD"
	ExerciseMissing Trigger = "EXERCISE_MISSING"
	LowEnergy       Trigger = "LOW_ENERGY"
	LowMental       Trigger = "LOW_MENTAL"
	GreatBalance    Trigger = "GREAT_BALANCE"
)

const (
	lowSleepHours      = 6.0
	highConcentration  = 4.0
	impulseRatioLimit  = 0.5
	burnoutEnergyBelow = 35.0
	burnoutFocusAbove  = 65.0
	lowScoreBelow      = 30.0
	balanceAtLeast     = 60.0
	recentSleepDays    = 3
	recentMoodDays     = 3
	recentHealthDays   = 5
)

type detector struct {
	trigger Trigger
	fired   func(in Input) bool
}

// detectors run in this order; the reported trigger list follows it.
var detectors = []detector{
	{LowSleep3D, lowSleep},
	{HighFocus, highFocus},
	{ImpulseSpending, impulseSpending},
	{BurnoutRisk, func(in Input) bool {
		return in.Today.Energy < burnoutEnergyBelow && in.Today.Focus > burnoutFocusAbove
	}},
	{ImprovingMood, improvingMood},
	{ExerciseMissing, exerciseMissing},
	{LowEnergy, func(in Input) bool { return in.Today.Energy < lowScoreBelow }},
	{LowMental, func(in Input) bool { return in.Today.Mental < lowScoreBelow }},
	{GreatBalance, func(in Input) bool {
		for _, name := range lifelog.ScoreNames {
			if in.Today.Get(name) < balanceAtLeast {
				return false
			}
		}
		return true
	}},
}

// Detect returns every trigger that fires for in.
func Detect(in Input) []Trigger {
	out := []Trigger{}
	for _, d := range detectors {
		if d.fired(in) {
			out = append(out, d.trigger)
		}
	}
	return out
}

func lowSleep(in Input) bool {
	recent := newestFirst(in.Aggregates, lifelog.ActivitySleep, recentSleepDays)
	if len(recent) < 2 {
		return false
	}
	return meanAverage(recent) < lowSleepHours
}

func highFocus(in Input) bool {
	avg, ok := meanMeta(byType(in.Aggregates, lifelog.ActivityStudy), aggregate.KeyConcentrationAvg)
	return ok && avg > highConcentration
}

func impulseSpending(in Input) bool {
	avg, ok := meanMeta(byType(in.Aggregates, lifelog.ActivitySpend), aggregate.KeyImpulseRatio)
	return ok && avg > impulseRatioLimit
}

func improvingMood(in Input) bool {
	recent := oldestFirst(in.Aggregates, lifelog.ActivityMood)
	if len(recent) < recentMoodDays {
		return false
	}
	recent = recent[len(recent)-recentMoodDays:]
	for i := 1; i < len(recent); i++ {
		if !(recent[i-1].Average < recent[i].Average) {
			return false
		}
	}
	return true
}

func exerciseMissing(in Input) bool {
	for _, a := range newestFirst(in.Aggregates, lifelog.ActivityHealth, recentHealthDays) {
		if aggregate.Truthy(a.Summary()[aggregate.KeyHasExercise]) {
			return false
		}
	}
	return true
}

func byType(aggs []*lifelog.DailyAggregate, typ lifelog.ActivityType) []*lifelog.DailyAggregate {
	var out []*lifelog.DailyAggregate
	for _, a := range aggs {
		if a != nil && a.Type == typ {
			out = append(out, a)
		}
	}
	return out
}

func oldestFirst(aggs []*lifelog.DailyAggregate, typ lifelog.ActivityType) []*lifelog.DailyAggregate {
	out := byType(aggs, typ)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// newestFirst returns at most limit aggregates of typ, most recent first.
func newestFirst(aggs []*lifelog.DailyAggregate, typ lifelog.ActivityType, limit int) []*lifelog.DailyAggregate {
	out := byType(aggs, typ)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func meanAverage(aggs []*lifelog.DailyAggregate) float64 {
	if len(aggs) == 0 {
		return 0
	}
	sum := 0.0
	for _, a := range aggs {
		sum += a.Average
	}
	return sum / float64(len(aggs))
}

// meanMeta averages the numeric summary values under key, skipping aggregates where it
// is absent or null.
func meanMeta(aggs []*lifelog.DailyAggregate, key string) (float64, bool) {
	sum, n := 0.0, 0
	for _, a := range aggs {
		v, ok := aggregate.Float(a.Summary()[key])
		if !ok {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}
