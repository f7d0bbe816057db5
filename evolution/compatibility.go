package evolution

import "fmt"

// CheckCompatibility verifies that numeraires can discount every step of d.
//
// There must be one numeraire per step, each a valid bond index, and the bond
// used in step i must not mature before evolutionTimes[i]. The last step is
// exempt from the expiry check: its numeraire may mature exactly at the final
// rate time.
func CheckCompatibility(d *Description, numeraires []int) error {
	n := d.NumberOfSteps()
	if len(numeraires) != n {
		return fmt.Errorf("size mismatch between numeraires (%d) and evolution times (%d): %w",
			len(numeraires), n, ErrSizeMismatch)
	}

	maxNumeraire := d.MaxNumeraire()
	for i, num := range numeraires {
		if num < 0 || num > maxNumeraire {
			return fmt.Errorf("%s step: numeraire %d outside [0, %d]: %w",
				ordinal(i), num, maxNumeraire, ErrRangeExceeded)
		}
	}

	for i := 0; i < n-1; i++ {
		if d.rateTimes[numeraires[i]] < d.evolutionTimes[i] {
			return &NumeraireExpiredError{
				Step:          i,
				EvolutionTime: d.evolutionTimes[i],
				Numeraire:     numeraires[i],
				RateTime:      d.rateTimes[numeraires[i]],
			}
		}
	}
	return nil
}
