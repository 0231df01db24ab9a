package simulation

import "github.com/yungbote/lifetwin-backend/internal/domain/lifelog"

// Variable names accepted in a changes map.
const (
	SleepHours          = "sleep_hours"
	StudyHours          = "study_hours"
	ExercisePerWeek     = "exercise_per_week"
	SpendReduction10Pct = "spend_reduction_10pct"
	PhoneMinus30Min     = "phone_minus_30min"
)

// Coefficients is the score change per unit of each variable.
var Coefficients = map[string]lifelog.ScoreSnapshot{
	SleepHours:          {Energy: 12, Mental: 5, Focus: 3, GoalProgress: 2},
	StudyHours:          {Energy: -2, Mental: -1.5, Focus: 10, GoalProgress: 8},
	ExercisePerWeek:     {Energy: 8, Mental: 5, Focus: 3, GoalProgress: 5},
	SpendReduction10Pct: {Energy: 0, Mental: 4, Focus: 2, GoalProgress: 3},
	PhoneMinus30Min:     {Energy: 2, Mental: 3, Focus: 8, GoalProgress: 2},
}

// SideEffect adds Extra when the change of Variable is strictly above Threshold.
type SideEffect struct {
	Variable  string
	Threshold float64
	Extra     lifelog.ScoreSnapshot
	Warning   string // format verb receives the change value
}

var SideEffects = []SideEffect{
	{
		Variable:  StudyHours,
		Threshold: 3.0,
		Extra:     lifelog.ScoreSnapshot{Mental: -3, Energy: -3},
		Warning:   "Adding %.1f hours of study raises focus, but fatigue and stress may build up along with it.",
	},
	{
		Variable:  SleepHours,
		Threshold: 2.0,
		Extra:     lifelog.ScoreSnapshot{GoalProgress: 3},
		Warning:   "Sleeping %.1f hours more pays off sleep debt quickly, which helps your goals even more.",
	},
}

// HorizonMultipliers scales the delta by projection horizon. Unknown horizons use 1.0.
var HorizonMultipliers = map[int]float64{
	7:  1.0,
	30: 0.75,
}

func HorizonMultiplier(days int) float64 {
	if m, ok := HorizonMultipliers[days]; ok {
		return m
	}
	return 1.0
}

// Known reports whether name has coefficients.
func Known(name string) bool {
	_, ok := Coefficients[name]
	return ok
}
