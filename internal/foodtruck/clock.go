package foodtruck

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// clockLayoutLen is the length of an "HH:MM" string.
const clockLayoutLen = 5

// Time-of-day bounds.
const (
	hoursPerDay    = 24
	minutesPerHour = 60
)

// Parse errors.
var (
	ErrMalformedTime = errors.New("malformed time of day")
	ErrUnknownDay    = errors.New("unknown day of week")
)

// Moment is a point in the weekly schedule: a weekday plus the time elapsed
// since local midnight.
type Moment struct {
	Weekday time.Weekday
	Clock   time.Duration
}

// MomentOf returns the Moment of t in t's location.
func MomentOf(t time.Time) Moment {
	// Wall-clock fields rather than t.Sub(midnight), which is off by an hour on DST days.
	clock := time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond())
	return Moment{
		Weekday: t.Weekday(),
		Clock:   clock,
	}
}

// String renders the moment as "Monday 10:00".
func (m Moment) String() string {
	h := int(m.Clock / time.Hour)
	mm := int((m.Clock % time.Hour) / time.Minute)
	return fmt.Sprintf("%s %02d:%02d", m.Weekday, h, mm)
}

// ParseClock parses a strict two-digit "HH:MM" 24-hour time of day into the
// duration since midnight.
func ParseClock(s string) (time.Duration, error) {
	if len(s) != clockLayoutLen || s[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, s)
	}
	h, okH := twoDigits(s[0:2])
	m, okM := twoDigits(s[3:5])
	if !okH || !okM || h >= hoursPerDay || m >= minutesPerHour {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, s)
	}
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute, nil
}

func twoDigits(s string) (int, bool) {
	if s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return 0, false
	}
	return int(s[0]-'0')*10 + int(s[1]-'0'), true
}

// ParseWeekday parses an English weekday name or its three-letter
// abbreviation, ignoring case and surrounding space.
func ParseWeekday(s string) (time.Weekday, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if key == name || key == name[:3] {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDay, s)
}
