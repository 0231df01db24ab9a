package lifelog

import "strings"

// ActivityType is the kind of a raw log entry and of the aggregate built from it.
type ActivityType string

const (
	ActivitySleep  ActivityType = "sleep"
	ActivityStudy  ActivityType = "study"
	ActivityHealth ActivityType = "health"
	ActivitySpend  ActivityType = "spend"
	ActivityMood   ActivityType = "mood"
)

var activityTypes = []ActivityType{ActivitySleep, ActivityStudy, ActivityHealth, ActivitySpend, ActivityMood}

// ActivityTypes lists the accepted log types in a stable order.
func ActivityTypes() []ActivityType {
	out := make([]ActivityType, len(activityTypes))
	copy(out, activityTypes)
	return out
}

// ParseActivityType normalizes and validates a client supplied type.
func ParseActivityType(raw string) (ActivityType, bool) {
	t := ActivityType(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range activityTypes {
		if t == known {
			return t, true
		}
	}
	return "", false
}
