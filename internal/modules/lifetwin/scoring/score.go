package scoring

import (
	"math"
	"time"

	"github.com/yungbote/lifetwin-backend/internal/domain/lifelog"
	"github.com/yungbote/lifetwin-backend/internal/modules/lifetwin/aggregate"
)

const (
	// NoDataValue is the normalized contribution of a component with no data in its
	// window. It is deliberately above zero so "no data" and "bad data" differ.
	NoDataValue = 0.3
	// NeutralPositive stands in for the positive side when no positive weight exists.
	NeutralPositive = 0.5
)

type aggKey struct {
	date string
	typ  lifelog.ActivityType
}

// Index maps (date, type) to its aggregate for O(1) window lookups.
type Index map[aggKey]*lifelog.DailyAggregate

func NewIndex(aggs []*lifelog.DailyAggregate) Index {
	idx := make(Index, len(aggs))
	for _, a := range aggs {
		if a == nil {
			continue
		}
		idx[aggKey{date: a.Date.UTC().Format(lifelog.DateLayout), typ: a.Type}] = a
	}
	return idx
}

func (idx Index) Get(date time.Time, typ lifelog.ActivityType) *lifelog.DailyAggregate {
	return idx[aggKey{date: date.UTC().Format(lifelog.DateLayout), typ: typ}]
}

// Extract reads the raw component value from one aggregate. A missing or null value
// reports false.
func Extract(a *lifelog.DailyAggregate, c Component) (float64, bool) {
	if a == nil {
		return 0, false
	}
	if c.MetaKey != "" {
		v, ok := a.Summary()[c.MetaKey]
		if !ok || v == nil {
			return 0, false
		}
		if c.Boolean {
			if aggregate.Truthy(v) {
				return 1, true
			}
			return 0, true
		}
		return aggregate.Float(v)
	}
	return a.Field(c.Field)
}

// Normalize collects c over the window ending at date and maps it onto [0, 1].
// Negative raw values count as zero.
func Normalize(idx Index, c Component, date time.Time, windowDays int) float64 {
	start := lifelog.WindowStart(date, windowDays)
	sum, n := 0.0, 0
	for d := 0; d < windowDays; d++ {
		v, ok := Extract(idx.Get(start.AddDate(0, 0, d), c.Source), c)
		if !ok {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return NoDataValue
	}
	avg := sum / float64(n)
	if !c.Boolean {
		avg /= c.Scale
	}
	return math.Max(0, math.Min(avg, 1.0))
}

// Compute scores one config over the window ending at date. The result is clamped to
// [0, 100] and rounded to one decimal.
func Compute(idx Index, cfg ScoreConfig, date time.Time) float64 {
	var posSum, negSum, posWeight, negWeight float64
	for _, c := range cfg.Components {
		norm := Normalize(idx, c, date, cfg.WindowDays)
		if c.Weight >= 0 {
			posSum += c.Weight * norm
			posWeight += c.Weight
		} else {
			negSum += -c.Weight * norm
			negWeight += -c.Weight
		}
	}

	posScore := NeutralPositive
	if posWeight > 0 {
		posScore = posSum / posWeight
	}
	negPenalty := 0.0
	if negWeight > 0 {
		negPenalty = negSum / negWeight
	}
	ratio := 1.0
	if posWeight+negWeight > 0 {
		ratio = posWeight / (posWeight + negWeight)
	}

	return Round1(Clamp((posScore*ratio - negPenalty*(1-ratio)) * 100))
}

// ComputeAll scores every configured score for date.
func ComputeAll(t Table, aggs []*lifelog.DailyAggregate, date time.Time) lifelog.ScoreSnapshot {
	idx := NewIndex(aggs)
	var out lifelog.ScoreSnapshot
	for _, cfg := range t.Scores() {
		out.Set(cfg.Name, Compute(idx, cfg, date))
	}
	return out
}

// Baseline averages score rows field by field, rounded to one decimal. With no rows it
// returns the neutral snapshot.
func Baseline(rows []*lifelog.LifeScore) lifelog.ScoreSnapshot {
	var sum lifelog.ScoreSnapshot
	n := 0
	for _, r := range rows {
		if r == nil {
			continue
		}
		s := r.Snapshot()
		sum.Energy += s.Energy
		sum.Mental += s.Mental
		sum.Focus += s.Focus
		sum.GoalProgress += s.GoalProgress
		n++
	}
	if n == 0 {
		return lifelog.NeutralSnapshot()
	}
	return sum.Map(func(v float64) float64 { return Round1(v / float64(n)) })
}

func Clamp(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

// Round1 rounds half away from zero to one decimal.
func Round1(v float64) float64 {
	r := math.Round(v*10) / 10
	if r == 0 {
		return 0
	}
	return r
}
