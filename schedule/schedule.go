// Package schedule turns calendar dates into the rate-time and evolution-time
// vectors consumed by evolution.NewDescription.
package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/meenmo/marketmodel/calendar"
	"github.com/meenmo/marketmodel/utils"
)

// ErrInvalidSpec is wrapped by every Spec validation failure.
var ErrInvalidSpec = errors.New("schedule: invalid spec")

// Spec describes a regular grid of forward-rate tenor boundaries.
type Spec struct {
	// Reference is time zero of the simulation.
	Reference time.Time
	// Start is the first tenor boundary; defaults to Reference.
	Start    time.Time
	Tenor    string
	Periods  int
	Calendar calendar.CalendarID
	DayCount utils.DayCount
	// Roll is the business-day convention; empty means Modified Following.
	Roll calendar.Convention
}

// Dates returns the Periods+1 adjusted tenor boundaries of spec.
//
// Boundary k is Start plus k tenors, computed from Start rather than from the
// previous boundary so month-end rolls do not drift. A Start on the last
// business day of its month keeps every boundary on a month end. Dates are then
// adjusted with spec.Roll.
func Dates(spec Spec) ([]time.Time, error) {
	if spec.Periods <= 0 {
		return nil, fmt.Errorf("periods must be positive, got %d: %w", spec.Periods, ErrInvalidSpec)
	}
	if !calendar.Known(spec.Calendar) {
		return nil, fmt.Errorf("unknown calendar %q: %w", spec.Calendar, ErrInvalidSpec)
	}
	switch spec.Roll {
	case "", calendar.Following, calendar.ModifiedFollowing:
	default:
		return nil, fmt.Errorf("unknown roll convention %q: %w", spec.Roll, ErrInvalidSpec)
	}
	tenor, err := ParseTenor(spec.Tenor)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInvalidSpec)
	}

	start := spec.Start
	if start.IsZero() {
		start = spec.Reference
	}
	months, monthly := tenor.Months()
	days, _ := tenor.Days()
	eom := monthly && calendar.IsEndOfMonth(spec.Calendar, start)

	dates := make([]time.Time, 0, spec.Periods+1)
	for k := 0; k <= spec.Periods; k++ {
		var d time.Time
		switch {
		case k == 0:
			d = start
		case eom:
			d = calendar.LastBusinessDayOfMonth(spec.Calendar, utils.AddMonth(start, k*months))
		case monthly:
			d = utils.AddMonth(start, k*months)
		default:
			d = start.AddDate(0, 0, k*days)
		}
		if d, err = calendar.Roll(spec.Calendar, d, spec.Roll); err != nil {
			return nil, err
		}
		if n := len(dates); n > 0 && !d.After(dates[n-1]) {
			return nil, fmt.Errorf("tenor %s collapses boundaries %d and %d onto %s: %w",
				tenor, k-1, k, d.Format(utils.DateLayout), ErrInvalidSpec)
		}
		dates = append(dates, d)
	}
	return dates, nil
}

// Times converts dates to year fractions from reference.
func Times(reference time.Time, dates []time.Time, dc utils.DayCount) ([]float64, error) {
	out := make([]float64, len(dates))
	for i, d := range dates {
		if d.Before(reference) {
			return nil, fmt.Errorf("date %s is before reference %s: %w",
				d.Format(utils.DateLayout), reference.Format(utils.DateLayout), ErrInvalidSpec)
		}
		out[i] = utils.YearFraction(reference, d, dc)
	}
	return out, nil
}

// RateTimes builds the tenor dates of spec and converts them to times.
func RateTimes(spec Spec) ([]float64, error) {
	dates, err := Dates(spec)
	if err != nil {
		return nil, err
	}
	dc := spec.DayCount
	if dc == "" {
		dc = utils.Act365F
	}
	return Times(spec.Reference, dates, dc)
}

// EvolutionTimes picks every k-th rate time as a step boundary, starting from
// the first and always including the last non-terminal rate time. every == 1
// reproduces the default evolution of a Description.
func EvolutionTimes(rateTimes []float64, every int) ([]float64, error) {
	if every <= 0 {
		return nil, fmt.Errorf("step stride must be positive, got %d: %w", every, ErrInvalidSpec)
	}
	if len(rateTimes) < 2 {
		return nil, fmt.Errorf("need at least 2 rate times, got %d: %w", len(rateTimes), ErrInvalidSpec)
	}
	last := len(rateTimes) - 2
	out := make([]float64, 0, last/every+2)
	for i := 0; i <= last; i += every {
		out = append(out, rateTimes[i])
	}
	if last%every != 0 {
		out = append(out, rateTimes[last])
	}
	return out, nil
}
