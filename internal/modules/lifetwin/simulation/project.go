package simulation

import (
	"fmt"

	"github.com/yungbote/lifetwin-backend/internal/domain/lifelog"
	"github.com/yungbote/lifetwin-backend/internal/modules/lifetwin/scoring"
)

// Result is a what-if projection.
type Result struct {
	Baseline  lifelog.ScoreSnapshot `json:"baseline"`
	Projected lifelog.ScoreSnapshot `json:"projected"`
	Delta     lifelog.ScoreSnapshot `json:"delta"`
	Comment   string                `json:"twinny_comment"`
	Warnings  []string              `json:"warnings"`
}

// Project applies changes to baseline over horizonDays. Unknown variables are ignored.
// Projected values are clamped to [0, 100]; the reported delta is not.
func Project(baseline lifelog.ScoreSnapshot, changes map[string]float64, horizonDays int) Result {
	var delta lifelog.ScoreSnapshot
	for name, change := range changes {
		coef, ok := Coefficients[name]
		if !ok {
			continue
		}
		for _, s := range lifelog.ScoreNames {
			delta.Set(s, delta.Get(s)+coef.Get(s)*change)
		}
	}

	warnings := []string{}
	for _, se := range SideEffects {
		change := changes[se.Variable]
		if !(change > se.Threshold) {
			continue
		}
		for _, s := range lifelog.ScoreNames {
			delta.Set(s, delta.Get(s)+se.Extra.Get(s))
		}
		warnings = append(warnings, fmt.Sprintf(se.Warning, change))
	}

	m := HorizonMultiplier(horizonDays)
	delta = delta.Map(func(v float64) float64 { return v * m })

	var projected lifelog.ScoreSnapshot
	for _, s := range lifelog.ScoreNames {
		projected.Set(s, scoring.Round1(scoring.Clamp(baseline.Get(s)+delta.Get(s))))
	}

	return Result{
		Baseline:  baseline,
		Projected: projected,
		Delta:     delta.Map(scoring.Round1),
		Comment:   Comment(changes, delta),
		Warnings:  warnings,
	}
}
