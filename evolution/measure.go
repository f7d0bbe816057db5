package evolution

import (
	"fmt"
	"slices"
	"strings"
)

// Measure names a family of numeraire assignments.
type Measure string

const (
	// Terminal discounts every step off the longest bond.
	Terminal Measure = "TERMINAL"
	// MoneyMarket discounts each step off the shortest bond alive at the step end.
	MoneyMarket Measure = "MONEY_MARKET"
	// MoneyMarketPlus shifts the money-market bond by a fixed index offset,
	// capped at the longest bond.
	MoneyMarketPlus Measure = "MONEY_MARKET_PLUS"
)

// ParseMeasure accepts the canonical names and the short forms "terminal", "mm"
// and "mmplus", case-insensitively.
func ParseMeasure(s string) (Measure, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TERMINAL":
		return Terminal, nil
	case "MONEY_MARKET", "MONEYMARKET", "MM":
		return MoneyMarket, nil
	case "MONEY_MARKET_PLUS", "MONEYMARKETPLUS", "MMPLUS", "MM+":
		return MoneyMarketPlus, nil
	default:
		return "", fmt.Errorf("unknown measure %q", s)
	}
}

// TerminalMeasure assigns the last bond, index len(rateTimes)-1, to every step.
func TerminalMeasure(d *Description) []int {
	out := make([]int, d.NumberOfSteps())
	for i := range out {
		out[i] = d.MaxNumeraire()
	}
	return out
}

// IsInTerminalMeasure reports whether the smallest numeraire is already the
// longest bond. An empty vector is not in any measure.
func IsInTerminalMeasure(d *Description, numeraires []int) bool {
	if len(numeraires) == 0 {
		return false
	}
	return slices.Min(numeraires) == d.MaxNumeraire()
}

// MoneyMarketPlusMeasure assigns to step i the first bond maturing at or after
// evolutionTimes[i], shifted by offset and capped at the longest bond.
func MoneyMarketPlusMeasure(d *Description, offset int) ([]int, error) {
	if err := checkOffset(d, offset); err != nil {
		return nil, err
	}
	alive := FirstIndexNotBefore(d.rateTimes, d.evolutionTimes)
	out := make([]int, len(alive))
	for i, j := range alive {
		out[i] = min(j+offset, d.MaxNumeraire())
	}
	return out, nil
}

// IsInMoneyMarketPlusMeasure reports whether numeraires equals
// MoneyMarketPlusMeasure(d, offset). Every step is compared, with no early exit.
func IsInMoneyMarketPlusMeasure(d *Description, numeraires []int, offset int) (bool, error) {
	if err := checkOffset(d, offset); err != nil {
		return false, err
	}
	if len(numeraires) != d.NumberOfSteps() {
		return false, nil
	}
	alive := FirstIndexNotBefore(d.rateTimes, d.evolutionTimes)
	res := true
	for i, j := range alive {
		res = numeraires[i] == min(j+offset, d.MaxNumeraire()) && res
	}
	return res, nil
}

// MoneyMarketMeasure is MoneyMarketPlusMeasure with offset 0.
func MoneyMarketMeasure(d *Description) []int {
	out, _ := MoneyMarketPlusMeasure(d, 0)
	return out
}

// IsInMoneyMarketMeasure is IsInMoneyMarketPlusMeasure with offset 0.
func IsInMoneyMarketMeasure(d *Description, numeraires []int) bool {
	ok, _ := IsInMoneyMarketPlusMeasure(d, numeraires, 0)
	return ok
}

// Numeraires generates the assignment for measure m. The offset is only used
// by MoneyMarketPlus.
func Numeraires(d *Description, m Measure, offset int) ([]int, error) {
	switch m {
	case Terminal:
		return TerminalMeasure(d), nil
	case MoneyMarket:
		return MoneyMarketMeasure(d), nil
	case MoneyMarketPlus:
		return MoneyMarketPlusMeasure(d, offset)
	default:
		return nil, fmt.Errorf("unknown measure %q", m)
	}
}

// Identify finds which known measure numeraires belongs to. Terminal wins over
// money-market-plus with an offset large enough to coincide with it, and the
// smallest matching offset is reported otherwise.
func Identify(d *Description, numeraires []int) (m Measure, offset int, ok bool) {
	if len(numeraires) != d.NumberOfSteps() || len(numeraires) == 0 {
		return "", 0, false
	}
	if IsInTerminalMeasure(d, numeraires) {
		return Terminal, 0, true
	}
	for k := 0; k <= d.MaxNumeraire(); k++ {
		if in, _ := IsInMoneyMarketPlusMeasure(d, numeraires, k); in {
			if k == 0 {
				return MoneyMarket, 0, true
			}
			return MoneyMarketPlus, k, true
		}
	}
	return "", 0, false
}

func checkOffset(d *Description, offset int) error {
	if offset > d.MaxNumeraire() {
		return fmt.Errorf("offset (%d) is greater than the max allowed value for numeraire (%d): %w",
			offset, d.MaxNumeraire(), ErrRangeExceeded)
	}
	if offset < 0 {
		return fmt.Errorf("offset (%d) must be non negative: %w", offset, ErrRangeExceeded)
	}
	return nil
}
