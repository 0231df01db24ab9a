package twinny

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/lifetwin-backend/internal/domain/lifelog"
)

// DefaultWindowDays is the look-back window of a summary.
const DefaultWindowDays = 7

// Input is everything a narrator may look at.
type Input struct {
	UserID     uuid.UUID
	Date       time.Time
	WindowDays int
	Today      lifelog.ScoreSnapshot
	Aggregates []*lifelog.DailyAggregate
	Scores     []*lifelog.LifeScore
}

func (in Input) windowDays() int {
	if in.WindowDays > 0 {
		return in.WindowDays
	}
	return DefaultWindowDays
}

// Summary is the narrative answer for one day.
type Summary struct {
	SummaryText     string    `json:"summary_text"`
	RiskLevel       string    `json:"risk_level"`
	Recommendations []string  `json:"recommendations"`
	Evidence        []string  `json:"evidence"`
	Triggers        []Trigger `json:"triggers"`
	Source          string    `json:"source"`
}

const (
	SourceRule = "rule"
	SourceLLM  = "llm"
)

// Narrator turns an Input into a Summary.
type Narrator interface {
	Narrate(ctx context.Context, in Input) (Summary, error)
}

// Generate is the rule based summary: detect triggers, build evidence for each one,
// pick the narrative of the highest priority trigger.
func Generate(in Input) Summary {
	fired := Detect(in)
	_, tpl, _ := Select(fired)
	recs := make([]string, len(tpl.Recommendations))
	copy(recs, tpl.Recommendations)
	return Summary{
		SummaryText:     tpl.Summary,
		RiskLevel:       tpl.Risk,
		Recommendations: recs,
		Evidence:        Evidence(fired, in),
		Triggers:        fired,
		Source:          SourceRule,
	}
}

// RuleNarrator is the default Narrator. It never fails.
type RuleNarrator struct{}

func (RuleNarrator) Narrate(_ context.Context, in Input) (Summary, error) {
	return Generate(in), nil
}
