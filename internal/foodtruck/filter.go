package foodtruck

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rshade/foodtruckfinder/internal/logging"
)

// MalformedPolicy selects what FilterOpen does with a record whose opening or
// closing time cannot be parsed.
type MalformedPolicy int

const (
	// MalformedAbort stops filtering and returns the parse error.
	MalformedAbort MalformedPolicy = iota
	// MalformedSkip drops the record and logs a warning.
	MalformedSkip
)

// TimeParseError reports a record whose schedule could not be parsed.
type TimeParseError struct {
	Truck Truck
	Field string
	Err   error
}

func (e *TimeParseError) Error() string {
	return fmt.Sprintf("truck %q: %s: %v", e.Truck.Name, e.Field, e.Err)
}

func (e *TimeParseError) Unwrap() error {
	return e.Err
}

// Window returns the parsed opening and closing times of t.
//
//nolint:nonamedreturns // Named returns document which bound is which.
func (t Truck) Window() (open, closing time.Duration, err error) {
	open, err = ParseClock(t.OpenTime)
	if err != nil {
		return 0, 0, &TimeParseError{Truck: t, Field: "start24", Err: err}
	}
	closing, err = ParseClock(t.CloseTime)
	if err != nil {
		return 0, 0, &TimeParseError{Truck: t, Field: "end24", Err: err}
	}
	return open, closing, nil
}

// OpenAt reports whether t is open at now. Both bounds are exclusive: a truck
// opening at 08:00 is not open at exactly 08:00, and one closing at 14:00 is
// not open at exactly 14:00. The schedule is parsed before the day is compared,
// so a malformed record is an error on any day.
func (t Truck) OpenAt(now Moment) (bool, error) {
	open, closing, err := t.Window()
	if err != nil {
		return false, err
	}
	if !strings.EqualFold(t.OpenDay, now.Weekday.String()) {
		return false, nil
	}
	return open < now.Clock && now.Clock < closing, nil
}

// FilterOpen returns the trucks open at now, in input order.
func FilterOpen(ctx context.Context, trucks []Truck, now Moment, policy MalformedPolicy) ([]Truck, error) {
	log := logging.FromContext(ctx)

	open := make([]Truck, 0, len(trucks))
	skipped := 0
	for _, t := range trucks {
		ok, err := t.OpenAt(now)
		if err != nil {
			if policy != MalformedSkip {
				return nil, err
			}
			skipped++
			log.Warn().Ctx(ctx).
				Str("component", "foodtruck").
				Str("operation", "filter_open").
				Str("truck", t.Name).
				Err(err).
				Msg("skipping record with malformed schedule")
			continue
		}
		if ok {
			open = append(open, t)
		}
	}

	log.Debug().Ctx(ctx).
		Str("component", "foodtruck").
		Str("operation", "filter_open").
		Str("moment", now.String()).
		Int("input", len(trucks)).
		Int("open", len(open)).
		Int("skipped", skipped).
		Msg("filtered batch")

	return open, nil
}
