package evolution

import (
	"errors"
	"fmt"
)

// Every failure returned by this package wraps one of these sentinels, so callers
// can branch with errors.Is while still getting the offending index and values
// in the message.
var (
	// ErrSizeMismatch is returned when a sequence has the wrong length, e.g. fewer
	// than two rate times or a numeraire vector that does not cover every step.
	ErrSizeMismatch = errors.New("evolution: size mismatch")

	// ErrOrdering is returned when rate or evolution times are not strictly
	// increasing, or when the first rate time is negative.
	ErrOrdering = errors.New("evolution: ordering violation")

	// ErrRangeExceeded is returned when the last evolution time is past the last
	// rate time, or an offset/numeraire index is outside [0, MaxNumeraire].
	ErrRangeExceeded = errors.New("evolution: range exceeded")

	// ErrNumeraireExpired is returned when a numeraire bond matures before the
	// end of a step that discounts off it.
	ErrNumeraireExpired = errors.New("evolution: numeraire expired")
)

// NumeraireExpiredError reports the first step whose numeraire has already
// expired at the step's evolution time.
type NumeraireExpiredError struct {
	Step          int
	EvolutionTime float64
	Numeraire     int
	RateTime      float64
}

func (e *NumeraireExpiredError) Error() string {
	return fmt.Sprintf("%s step, evolution time %g: the numeraire (%d), corresponding to rate time %g, is expired",
		ordinal(e.Step), e.EvolutionTime, e.Numeraire, e.RateTime)
}

func (e *NumeraireExpiredError) Unwrap() error {
	return ErrNumeraireExpired
}

// ordinal formats 0 as "0th", 1 as "1st", 11 as "11th" and so on.
func ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
