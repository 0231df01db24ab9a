package twinny

// Risk levels reported with a summary.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// Template is the canned narrative of one trigger.
type Template struct {
	Risk            string
	Summary         string
	Recommendations []string
}

type rule struct {
	trigger  Trigger
	template Template
}

// rules is scanned top to bottom; the first fired trigger selects the narrative.
var rules = []rule{
	{BurnoutRisk, Template{
		Risk:    RiskHigh,
		Summary: "Your energy is low but you are still pushing your focus. You may be overdoing it and heading toward burnout.",
		Recommendations: []string{
			"Split today's work into 4 short 25-minute sets and take real breaks between them",
			"Keep tonight light: a walk or some stretching is enough",
		},
	}},
	{LowEnergy, Template{
		Risk:    RiskHigh,
		Summary: "Your energy is very low today. It is worth checking your sleep, exercise and eating habits.",
		Recommendations: []string{
			"Do not push yourself today; focus on the single most important thing",
			"Drink plenty of water and do some light stretching",
		},
	}},
	{LowMental, Template{
		Risk:    RiskHigh,
		Summary: "Your mental score is low. Stress or mood swings may be weighing on you, so take some extra care of yourself.",
		Recommendations: []string{
			"Set aside a little time just for yourself today",
			"Writing your feelings down in a journal can help sort them out",
		},
	}},
	{LowSleep3D, Template{
		Risk:    RiskMedium,
		Summary: "You have been short on sleep for the past few days and your energy is dropping. Your body is asking for rest.",
		Recommendations: []string{
			"Go to bed 30 minutes earlier tonight",
			"Keep screens away for the last hour before bed to sleep better",
		},
	}},
	{ExerciseMissing, Template{
		Risk:    RiskMedium,
		Summary: "You have not been exercising lately. Moving a little each day will lift both your energy and your mood.",
		Recommendations: []string{
			"Walk or stretch for at least 15 minutes today",
			"Put an exercise session on your calendar this week",
		},
	}},
	{ImpulseSpending, Template{
		Risk:    RiskMedium,
		Summary: "Unplanned spending has been creeping up. Looking back at your spending pattern also helps keep your mind steady.",
		Recommendations: []string{
			"Try a 24-hour waiting rule before buying",
			"Set a daily spending limit for this week",
		},
	}},
	{GreatBalance, Template{
		Risk:    RiskLow,
		Summary: "Energy, mental, focus and goals are all in balance. You are in great shape right now.",
		Recommendations: []string{
			"Keep this routine going; consistency matters most",
			"This is a good time to add one new goal",
		},
	}},
	{HighFocus, Template{
		Risk:    RiskLow,
		Summary: "Your study focus is on a great streak. Keep the pace and protect your sleep to make it last.",
		Recommendations: []string{
			"Find your best focus hours and schedule important study then",
			"Get enough sleep to keep your concentration up",
		},
	}},
	{ImprovingMood, Template{
		Risk:    RiskLow,
		Summary: "Your mood has improved three days in a row. Things are moving in a good direction.",
		Recommendations: []string{
			"Note down the routines that lift your mood so you can return to them",
			"Ride this momentum to start a new habit",
		},
	}},
}

var defaultTemplate = Template{
	Risk:    RiskLow,
	Summary: "You are having a steady day. Keep logging and the analysis will get sharper.",
	Recommendations: []string{
		"Do not forget to log today's activities",
		"Small habits add up to big changes",
	},
}

// Select returns the highest priority fired trigger and its template. With nothing
// fired it returns the default template and ok=false.
func Select(fired []Trigger) (Trigger, Template, bool) {
	set := make(map[Trigger]bool, len(fired))
	for _, t := range fired {
		set[t] = true
	}
	for _, r := range rules {
		if set[r.trigger] {
			return r.trigger, r.template, true
		}
	}
	return "", defaultTemplate, false
}

// Priority lists triggers from highest to lowest priority.
func Priority() []Trigger {
	out := make([]Trigger, len(rules))
	for i, r := range rules {
		out[i] = r.trigger
	}
	return out
}
