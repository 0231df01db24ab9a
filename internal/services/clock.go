package services

import (
	"time"

	"github.com/yungbote/lifetwin-backend/internal/domain/lifelog"
)

// Clock fixes "now" and the calendar timezone for the lifetwin services.
type Clock struct {
	Now      func() time.Time
	Location *time.Location
}

func NewClock(loc *time.Location) Clock {
	return Clock{Now: time.Now, Location: loc}
}

func (c Clock) now() time.Time {
	if c.Now == nil {
		return time.Now().UTC()
	}
	return c.Now().UTC()
}

func (c Clock) loc() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}

// Today is the current calendar day in the configured timezone.
func (c Clock) Today() time.Time {
	return lifelog.DateOf(c.now(), c.loc())
}
