package plan

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/yungbote/lifetwin-backend/internal/domain/planning"
	"github.com/yungbote/lifetwin-backend/internal/modules/lifetwin/simulation"
)

const (
	StudyFormatPomodoro = "pomodoro"
	StudyFormatBlock    = "block"

	defaultBedtimeHour = 23
	maxDailyDays       = 14
	baseSleepHours     = 7.0
	minSleepHours      = 5.0
	maxSleepHours      = 10.0
	pomodoroStartHour  = 9
	pomodoroMinutes    = 25
	pomodoroSpacing    = 35
	blockStartHour     = 10
	exerciseHour       = 7
	exerciseMinutes    = 45
	spendCheckHour     = 8
	spendCheckMinutes  = 15
	phoneLimitHour     = 20
)

// Preferences tunes the generated events. Zero values fall back to defaults.
type Preferences struct {
	BedtimeHour  *int     `json:"sleep_target_hour,omitempty"`
	StudyFormat  string   `json:"study_format,omitempty"`
	ExerciseDays []string `json:"exercise_days,omitempty"`
}

var weekdayCodes = map[string]time.Weekday{
	"MON": time.Monday,
	"TUE": time.Tuesday,
	"WED": time.Wednesday,
	"THU": time.Thursday,
	"FRI": time.Friday,
	"SAT": time.Saturday,
	"SUN": time.Sunday,
}

var defaultExerciseDays = []time.Weekday{time.Monday, time.Wednesday, time.Friday}

// Generator turns what-if changes into concrete calendar events. Event times are wall
// clock times in Location.
type Generator struct {
	Location *time.Location
}

func NewGenerator(loc *time.Location) Generator {
	if loc == nil {
		loc = time.UTC
	}
	return Generator{Location: loc}
}

// Generate builds events starting the day after today. today is a calendar date; only
// its year, month and day are used.
func (g Generator) Generate(changes map[string]float64, horizonDays int, prefs Preferences, today time.Time) []planning.DraftEvent {
	if horizonDays < 1 {
		horizonDays = 1
	}
	events := []planning.DraftEvent{}
	events = append(events, g.sleepEvents(changes[simulation.SleepHours], horizonDays, prefs, today)...)
	events = append(events, g.studyEvents(changes[simulation.StudyHours], horizonDays, prefs, today)...)
	events = append(events, g.exerciseEvents(changes[simulation.ExercisePerWeek], horizonDays, prefs, today)...)
	events = append(events, g.spendEvents(changes[simulation.SpendReduction10Pct], horizonDays, today)...)
	events = append(events, g.phoneEvents(changes[simulation.PhoneMinus30Min], horizonDays, today)...)
	return events
}

func (g Generator) at(today time.Time, dayOffset, hour, minute int) time.Time {
	d := today.AddDate(0, 0, dayOffset)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, g.Location)
}

func event(title, category string, start time.Time, d time.Duration, note string) planning.DraftEvent {
	return planning.DraftEvent{
		Title:    title,
		Category: category,
		StartAt:  start,
		EndAt:    start.Add(d),
		Note:     note,
		Status:   planning.EventStatusPlanned,
	}
}

func dailyDays(horizonDays int) int {
	if horizonDays > maxDailyDays {
		return maxDailyDays
	}
	return horizonDays
}

func weeks(horizonDays int) int {
	if w := horizonDays / 7; w > 1 {
		return w
	}
	return 1
}

func (g Generator) sleepEvents(delta float64, horizonDays int, prefs Preferences, today time.Time) []planning.DraftEvent {
	if math.Abs(delta) < 0.5 {
		return nil
	}
	hour := defaultBedtimeHour
	if prefs.BedtimeHour != nil && *prefs.BedtimeHour >= 0 && *prefs.BedtimeHour <= 23 {
		hour = *prefs.BedtimeHour
	}
	hours := math.Max(minSleepHours, math.Min(maxSleepHours, baseSleepHours+delta))
	var out []planning.DraftEvent
	for i := 0; i < dailyDays(horizonDays); i++ {
		out = append(out, event(
			fmt.Sprintf("Bedtime target (%02d:00), aim for %.1fh of sleep", hour, hours),
			"health",
			g.at(today, i+1, hour, 0),
			time.Duration(hours*float64(time.Hour)),
			fmt.Sprintf("Twin Lab plan: sleep %+.1fh", delta),
		))
	}
	return out
}

func (g Generator) studyEvents(delta float64, horizonDays int, prefs Preferences, today time.Time) []planning.DraftEvent {
	if delta <= 0 {
		return nil
	}
	target := math.Max(1, delta)
	format := strings.ToLower(strings.TrimSpace(prefs.StudyFormat))
	var out []planning.DraftEvent
	for i := 0; i < dailyDays(horizonDays); i++ {
		if format == StudyFormatBlock {
			out = append(out, event(
				fmt.Sprintf("Study block %.1fh", target),
				"study",
				g.at(today, i+1, blockStartHour, 0),
				time.Duration(target*float64(time.Hour)),
				fmt.Sprintf("Twin Lab plan: study %+.1fh", delta),
			))
			continue
		}
		sets := int(math.Max(1, math.RoundToEven(target/0.5)))
		for s := 0; s < sets; s++ {
			out = append(out, event(
				fmt.Sprintf("Study set %d/%d (25 min)", s+1, sets),
				"study",
				g.at(today, i+1, pomodoroStartHour, s*pomodoroSpacing),
				pomodoroMinutes*time.Minute,
				fmt.Sprintf("Twin Lab plan: study %+.1fh / pomodoro", delta),
			))
		}
	}
	return out
}

func (g Generator) exerciseEvents(delta float64, horizonDays int, prefs Preferences, today time.Time) []planning.DraftEvent {
	if delta <= 0 {
		return nil
	}
	sessions := int(math.Max(1, math.RoundToEven(delta)))
	days := parseWeekdays(prefs.ExerciseDays)
	if len(days) == 0 {
		days = defaultExerciseDays
	}
	if len(days) > sessions {
		days = days[:sessions]
	}

	var out []planning.DraftEvent
	for w := 0; w < weeks(horizonDays); w++ {
		rangeStart := w*7 + 1
		startDay := today.AddDate(0, 0, rangeStart).Weekday()
		for _, wd := range days {
			offset := rangeStart + (int(wd)-int(startDay)+7)%7
			if offset > horizonDays {
				continue
			}
			out = append(out, event(
				"Exercise 45 min",
				"health",
				g.at(today, offset, exerciseHour, 0),
				exerciseMinutes*time.Minute,
				fmt.Sprintf("Twin Lab plan: exercise %d times a week", sessions),
			))
		}
	}
	return out
}

func (g Generator) spendEvents(units float64, horizonDays int, today time.Time) []planning.DraftEvent {
	if units <= 0 {
		return nil
	}
	pct := units * 10
	var out []planning.DraftEvent
	for w := 0; w < weeks(horizonDays); w++ {
		out = append(out, event(
			fmt.Sprintf("Weekly spending check (-%.0f%% target)", pct),
			"general",
			g.at(today, w*7+1, spendCheckHour, 0),
			spendCheckMinutes*time.Minute,
			fmt.Sprintf("Twin Lab plan: cut spending by %.0f%%", pct),
		))
	}
	return out
}

func (g Generator) phoneEvents(units float64, horizonDays int, today time.Time) []planning.DraftEvent {
	if units <= 0 {
		return nil
	}
	minutes := int(units * 30)
	var out []planning.DraftEvent
	for i := 0; i < dailyDays(horizonDays); i++ {
		out = append(out, event(
			fmt.Sprintf("Focus mode / phone limit (%d min)", minutes),
			"general",
			g.at(today, i+1, phoneLimitHour, 0),
			time.Duration(minutes)*time.Minute,
			fmt.Sprintf("Twin Lab plan: phone -%d min", minutes),
		))
	}
	return out
}

// parseWeekdays accepts MON..SUN codes or full day names in any case, keeping order
// and dropping unknown or repeated days.
func parseWeekdays(raw []string) []time.Weekday {
	var out []time.Weekday
	seen := map[time.Weekday]bool{}
	for _, r := range raw {
		code := strings.ToUpper(strings.TrimSpace(r))
		if len(code) > 3 {
			code = code[:3]
		}
		wd, ok := weekdayCodes[code]
		if !ok || seen[wd] {
			continue
		}
		seen[wd] = true
		out = append(out, wd)
	}
	return out
}

// ExpectedMinutes is the task length derived from an event.
func ExpectedMinutes(ev planning.DraftEvent) int {
	if !ev.EndAt.After(ev.StartAt) {
		return 0
	}
	return int(ev.EndAt.Sub(ev.StartAt) / time.Minute)
}
