package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// Tenor is a period such as "1W", "3M" or "10Y".
type Tenor struct {
	Count int
	Unit  byte // 'D', 'W', 'M' or 'Y'
}

// ParseTenor parses tenor strings like "1W", "3M", "10Y".
func ParseTenor(s string) (Tenor, error) {
	s = strings.TrimSpace(strings.ToUpper(s))
	if len(s) < 2 {
		return Tenor{}, fmt.Errorf("invalid tenor %q", s)
	}
	unit := s[len(s)-1]
	switch unit {
	case 'D', 'W', 'M', 'Y':
	default:
		return Tenor{}, fmt.Errorf("invalid tenor unit in %q", s)
	}
	v, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || v <= 0 {
		return Tenor{}, fmt.Errorf("invalid tenor count in %q", s)
	}
	return Tenor{Count: v, Unit: unit}, nil
}

// Months returns the tenor length in months for M and Y tenors.
func (t Tenor) Months() (int, bool) {
	switch t.Unit {
	case 'M':
		return t.Count, true
	case 'Y':
		return 12 * t.Count, true
	default:
		return 0, false
	}
}

// Days returns the tenor length in days for D and W tenors.
func (t Tenor) Days() (int, bool) {
	switch t.Unit {
	case 'D':
		return t.Count, true
	case 'W':
		return 7 * t.Count, true
	default:
		return 0, false
	}
}

func (t Tenor) String() string {
	return strconv.Itoa(t.Count) + string(t.Unit)
}
