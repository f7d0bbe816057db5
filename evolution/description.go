// Package evolution describes how a market model evolves forward rates through
// simulation steps, and which numeraire bond each step is discounted with.
//
// A Description is built once from rate times (the n+1 tenor boundaries of n
// forward rates) and evolution times (the simulation step boundaries). It checks
// the inputs, then derives the accrual periods, the effective stop time of every
// rate in every step and the first rate still alive at the start of each step.
// The measure helpers produce or recognise numeraire assignments for the
// terminal, money-market and money-market-plus measures.
package evolution

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// RatePair is an inclusive-exclusive index range [First, Last) of forward rates.
type RatePair struct {
	First int
	Last  int
}

// Description is the immutable time structure of a market-model evolution.
//
// The zero value is an empty description with no rates and no steps. All
// accessors return copies, so a published Description can be read from many
// goroutines without locking.
type Description struct {
	rateTimes      []float64
	rateTaus       []float64
	evolutionTimes []float64
	relevanceRates []RatePair
	stopTimes      *mat.Dense // steps x rates
	firstAliveRate []int
}

// NewDescription validates the inputs and derives the evolution time structure.
//
// An empty evolutionTimes defaults to every rate time except the last, so that
// one step ends on each intermediate tenor boundary. An empty relevanceRates
// defaults to (0, n) for every step.
func NewDescription(rateTimes, evolutionTimes []float64, relevanceRates []RatePair) (*Description, error) {
	if len(rateTimes) <= 1 {
		return nil, fmt.Errorf("rate times must have 2 elements at least, got %d: %w", len(rateTimes), ErrSizeMismatch)
	}
	if rateTimes[0] < 0 {
		return nil, fmt.Errorf("first rate time must be non negative, got %g: %w", rateTimes[0], ErrOrdering)
	}
	for i := 1; i < len(rateTimes); i++ {
		if !(rateTimes[i] > rateTimes[i-1]) {
			return nil, fmt.Errorf("rate times must be strictly increasing: rateTimes[%d]=%g, rateTimes[%d]=%g: %w",
				i-1, rateTimes[i-1], i, rateTimes[i], ErrOrdering)
		}
	}

	d := &Description{
		rateTimes: append([]float64(nil), rateTimes...),
	}
	if len(evolutionTimes) > 0 {
		d.evolutionTimes = append([]float64(nil), evolutionTimes...)
	} else {
		d.evolutionTimes = append([]float64(nil), rateTimes[:len(rateTimes)-1]...)
	}

	steps := len(d.evolutionTimes)
	if steps == 0 {
		return nil, fmt.Errorf("evolution times must have 1 element at least: %w", ErrSizeMismatch)
	}
	for i := 1; i < steps; i++ {
		if !(d.evolutionTimes[i] > d.evolutionTimes[i-1]) {
			return nil, fmt.Errorf("evolution times must be strictly increasing: evolutionTimes[%d]=%g, evolutionTimes[%d]=%g: %w",
				i-1, d.evolutionTimes[i-1], i, d.evolutionTimes[i], ErrOrdering)
		}
	}
	lastRate, lastEvolution := rateTimes[len(rateTimes)-1], d.evolutionTimes[steps-1]
	if lastRate < lastEvolution {
		return nil, fmt.Errorf("the last evolution time (%g) is past the last rate time (%g): %w",
			lastEvolution, lastRate, ErrRangeExceeded)
	}

	n := len(rateTimes) - 1
	if len(relevanceRates) == 0 {
		d.relevanceRates = make([]RatePair, steps)
		for j := range d.relevanceRates {
			d.relevanceRates[j] = RatePair{First: 0, Last: n}
		}
	} else {
		if len(relevanceRates) != steps {
			return nil, fmt.Errorf("relevance rates (%d) / evolution times (%d) mismatch: %w",
				len(relevanceRates), steps, ErrSizeMismatch)
		}
		d.relevanceRates = append([]RatePair(nil), relevanceRates...)
	}

	d.rateTaus = make([]float64, n)
	for i := range d.rateTaus {
		d.rateTaus[i] = d.rateTimes[i+1] - d.rateTimes[i]
	}

	d.stopTimes = mat.NewDense(steps, n, nil)
	for j := 0; j < steps; j++ {
		for i := 0; i < n; i++ {
			d.stopTimes.Set(j, i, min(d.evolutionTimes[j], d.rateTimes[i]))
		}
	}

	d.firstAliveRate = FirstIndexAfter(d.rateTimes, runningTimes(d.evolutionTimes))
	return d, nil
}

// RateTimes returns the n+1 tenor boundaries.
func (d *Description) RateTimes() []float64 {
	return append([]float64(nil), d.rateTimes...)
}

// RateTaus returns the n accrual periods rateTimes[i+1]-rateTimes[i].
func (d *Description) RateTaus() []float64 {
	return append([]float64(nil), d.rateTaus...)
}

// EvolutionTimes returns the step end times.
func (d *Description) EvolutionTimes() []float64 {
	return append([]float64(nil), d.evolutionTimes...)
}

// EffectiveStopTime returns a copy of the steps x rates matrix
// min(evolutionTimes[j], rateTimes[i]).
func (d *Description) EffectiveStopTime() mat.Matrix {
	if d.stopTimes == nil {
		return &mat.Dense{}
	}
	return mat.DenseCopyOf(d.stopTimes)
}

// EffectiveStopTimeAt returns the stop time of rate i during step j.
func (d *Description) EffectiveStopTimeAt(step, rate int) (float64, error) {
	if step < 0 || step >= d.NumberOfSteps() || rate < 0 || rate >= d.NumberOfRates() {
		return 0, fmt.Errorf("effective stop time (%d, %d) outside %dx%d: %w",
			step, rate, d.NumberOfSteps(), d.NumberOfRates(), ErrRangeExceeded)
	}
	return d.stopTimes.At(step, rate), nil
}

// FirstAliveRate returns, per step, the index of the first rate not yet expired
// when the step starts.
func (d *Description) FirstAliveRate() []int {
	return append([]int(nil), d.firstAliveRate...)
}

// RelevanceRates returns the per-step relevant rate ranges.
func (d *Description) RelevanceRates() []RatePair {
	return append([]RatePair(nil), d.relevanceRates...)
}

// NumberOfRates is the number of forward rates, len(RateTimes())-1.
func (d *Description) NumberOfRates() int {
	if len(d.rateTimes) == 0 {
		return 0
	}
	return len(d.rateTimes) - 1
}

// NumberOfSteps is the number of evolution steps.
func (d *Description) NumberOfSteps() int {
	return len(d.evolutionTimes)
}

// MaxNumeraire is the index of the longest zero-coupon bond.
func (d *Description) MaxNumeraire() int {
	return d.NumberOfRates()
}

func (d *Description) String() string {
	return fmt.Sprintf("evolution{rates=%d steps=%d rateTimes=%v evolutionTimes=%v}",
		d.NumberOfRates(), d.NumberOfSteps(), d.rateTimes, d.evolutionTimes)
}
