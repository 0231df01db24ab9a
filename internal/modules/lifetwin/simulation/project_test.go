package simulation

import (
	"math"
	"strings"
	"testing"

	"github.com/yungbote/lifetwin-backend/internal/domain/lifelog"
)

var neutral = lifelog.NeutralSnapshot()

func TestProjectScenarios(t *testing.T) {
	cases := []struct {
		name      string
		changes   map[string]float64
		projected lifelog.ScoreSnapshot
		delta     lifelog.ScoreSnapshot
		warnings  int
	}{
		{
			name:      "one more hour of sleep",
			changes:   map[string]float64{SleepHours: 1.0},
			projected: lifelog.ScoreSnapshot{Energy: 62, Mental: 55, Focus: 53, GoalProgress: 52},
			delta:     lifelog.ScoreSnapshot{Energy: 12, Mental: 5, Focus: 3, GoalProgress: 2},
			warnings:  0,
		},
		{
			name:      "four more hours of study",
			changes:   map[string]float64{StudyHours: 4.0},
			projected: lifelog.ScoreSnapshot{Energy: 39, Mental: 41, Focus: 90, GoalProgress: 82},
			delta:     lifelog.ScoreSnapshot{Energy: -11, Mental: -9, Focus: 40, GoalProgress: 32},
			warnings:  1,
		},
		{
			name:      "unknown variables are ignored",
			changes:   map[string]float64{"coffee_cups": 3},
			projected: neutral,
			delta:     lifelog.ScoreSnapshot{},
			warnings:  0,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := Project(neutral, tc.changes, 7)
			if r.Projected != tc.projected {
				t.Fatalf("projected: got %+v want %+v", r.Projected, tc.projected)
			}
			if r.Delta != tc.delta {
				t.Fatalf("delta: got %+v want %+v", r.Delta, tc.delta)
			}
			if len(r.Warnings) != tc.warnings {
				t.Fatalf("warnings: got %v", r.Warnings)
			}
			if r.Baseline != neutral {
				t.Fatalf("baseline must be echoed back")
			}
		})
	}
}

func TestStudyWarningMentionsTradeOff(t *testing.T) {
	r := Project(neutral, map[string]float64{StudyHours: 4.0}, 7)
	if !strings.Contains(r.Warnings[0], "4.0") || !strings.Contains(r.Warnings[0], "fatigue") {
		t.Fatalf("unexpected warning: %q", r.Warnings[0])
	}
	// threshold is strict
	if r := Project(neutral, map[string]float64{StudyHours: 3.0}, 7); len(r.Warnings) != 0 {
		t.Fatalf("3.0 must not cross the study threshold")
	}
}

func TestHorizonThirtyIsThreeQuarters(t *testing.T) {
	changes := map[string]float64{SleepHours: 1.0, ExercisePerWeek: 2, PhoneMinus30Min: 1}
	week := Project(neutral, changes, 7).Delta
	month := Project(neutral, changes, 30).Delta
	for _, s := range lifelog.ScoreNames {
		if math.Abs(month.Get(s)-0.75*week.Get(s)) > 0.06 {
			t.Fatalf("%s: 30d delta %v is not 0.75 x %v", s, month.Get(s), week.Get(s))
		}
	}
	if month.Energy != 22.5 {
		t.Fatalf("energy at 30 days: got %v want 22.5", month.Energy)
	}
	if other := Project(neutral, changes, 14).Delta; other != week {
		t.Fatalf("unknown horizon should use 1.0, got %+v", other)
	}
}

func TestProjectedClampedDeltaNot(t *testing.T) {
	r := Project(lifelog.ScoreSnapshot{Energy: 95, Mental: 5, Focus: 50, GoalProgress: 50}, map[string]float64{SleepHours: 3, StudyHours: 5}, 7)
	if r.Projected.Energy != 100 && r.Projected.Energy != 95+r.Delta.Energy {
		t.Fatalf("energy projection wrong: %+v", r)
	}
	if r.Projected.Mental < 0 || r.Projected.Focus != 100 {
		t.Fatalf("projection must be clamped: %+v", r.Projected)
	}
	if r.Delta.Focus <= 50 {
		t.Fatalf("delta must stay unclamped, got %v", r.Delta.Focus)
	}
	if len(r.Warnings) != 2 {
		t.Fatalf("both side effects should fire, got %v", r.Warnings)
	}
}

func TestComment(t *testing.T) {
	cases := []struct {
		name    string
		changes map[string]float64
		want    []string
		exact   string
	}{
		{
			name:    "balanced",
			changes: map[string]float64{SpendReduction10Pct: 1},
			exact:   balancedComment,
		},
		{
			name:    "study overload suggests sleep",
			changes: map[string]float64{StudyHours: 4},
			want:    []string{"Focus and goal progress will notably improve", "but energy may decline", "Adding some sleep"},
		},
		{
			name:    "mental loss without spend change",
			changes: map[string]float64{StudyHours: 2, PhoneMinus30Min: -1},
			want:    []string{"Goal progress and focus will notably improve", "but energy may decline", "Adjusting your spending habits"},
		},
		{
			name:    "only losses",
			changes: map[string]float64{ExercisePerWeek: -1},
			want:    []string{"Energy may decline a little."},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Project(neutral, tc.changes, 7).Comment
			if tc.exact != "" && got != tc.exact {
				t.Fatalf("got %q want %q", got, tc.exact)
			}
			for _, w := range tc.want {
				if !strings.Contains(got, w) {
					t.Fatalf("comment %q missing %q", got, w)
				}
			}
		})
	}
}
