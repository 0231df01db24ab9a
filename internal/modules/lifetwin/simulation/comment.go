package simulation

import (
	"sort"
	"strings"

	"github.com/yungbote/lifetwin-backend/internal/domain/lifelog"
)

const notableDelta = 5.0

var scoreLabels = map[lifelog.ScoreName]string{
	lifelog.ScoreEnergy:       "energy",
	lifelog.ScoreMental:       "mental",
	lifelog.ScoreFocus:        "focus",
	lifelog.ScoreGoalProgress: "goal progress",
}

const balancedComment = "This plan looks like a balanced change overall."

type scored struct {
	name  lifelog.ScoreName
	value float64
}

// Comment summarizes a delta in one or two sentences: up to two notable gains, the
// single worst notable loss, and one caveat about restoring balance.
func Comment(changes map[string]float64, delta lifelog.ScoreSnapshot) string {
	var pos, neg []scored
	for _, s := range lifelog.ScoreNames {
		v := delta.Get(s)
		if v >= notableDelta {
			pos = append(pos, scored{s, v})
		}
		if v <= -notableDelta {
			neg = append(neg, scored{s, v})
		}
	}
	sort.SliceStable(pos, func(i, j int) bool { return pos[i].value > pos[j].value })
	sort.SliceStable(neg, func(i, j int) bool { return neg[i].value < neg[j].value })

	var parts []string
	if len(pos) > 0 {
		if len(pos) > 2 {
			pos = pos[:2]
		}
		names := make([]string, len(pos))
		for i, p := range pos {
			names[i] = scoreLabels[p.name]
		}
		parts = append(parts, capitalize(strings.Join(names, " and "))+" will notably improve")
	}
	declined := map[lifelog.ScoreName]bool{}
	for _, n := range neg {
		declined[n.name] = true
	}
	if len(neg) > 0 {
		parts = append(parts, "but "+scoreLabels[neg[0].name]+" may decline a little")
	}
	if len(parts) == 0 {
		return balancedComment
	}

	comment := strings.Join(parts, ", ")
	if len(pos) == 0 {
		comment = capitalize(strings.TrimPrefix(comment, "but "))
	}
	comment += "."

	switch {
	case declined[lifelog.ScoreEnergy] && changes[StudyHours] > 2:
		comment += " Adding some sleep as well would keep your energy up while you get better results."
	case declined[lifelog.ScoreMental] && changes[SpendReduction10Pct] == 0:
		comment += " Adjusting your spending habits a little would also help keep your mind steady."
	}
	return comment
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
