package evolution_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/marketmodel/evolution"
)

func TestNewDescription_DefaultEvolutionTimes(t *testing.T) {
	t.Parallel()

	d, err := evolution.NewDescription([]float64{0, 1, 2, 3}, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, d.NumberOfRates())
	assert.Equal(t, 3, d.NumberOfSteps())
	assert.Equal(t, 3, d.MaxNumeraire())
	assert.Equal(t, []float64{0, 1, 2}, d.EvolutionTimes())
	assert.Equal(t, []float64{1, 1, 1}, d.RateTaus())
	assert.Equal(t, []int{1, 1, 2}, d.FirstAliveRate())
	assert.Equal(t, []evolution.RatePair{{0, 3}, {0, 3}, {0, 3}}, d.RelevanceRates())
}

func TestNewDescription_Invariants(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name           string
		rateTimes      []float64
		evolutionTimes []float64
	}{
		{"default steps", []float64{0.5, 1, 1.5, 2, 3, 5}, nil},
		{"coarse steps", []float64{0, 0.25, 0.5, 1, 2, 5, 10}, []float64{0.5, 2, 10}},
		{"off-grid steps", []float64{0.1, 0.6, 1.1, 1.6}, []float64{0.05, 0.3, 0.9, 1.6}},
		{"single rate", []float64{1, 2}, []float64{0.5}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			d, err := evolution.NewDescription(tc.rateTimes, tc.evolutionTimes, nil)
			require.NoError(t, err)

			rateTimes := d.RateTimes()
			evolutionTimes := d.EvolutionTimes()
			require.Equal(t, len(rateTimes)-1, d.NumberOfRates())
			require.Equal(t, len(evolutionTimes), d.NumberOfSteps())

			taus := d.RateTaus()
			require.Len(t, taus, d.NumberOfRates())
			for i, tau := range taus {
				assert.InDelta(t, rateTimes[i+1]-rateTimes[i], tau, 1e-15)
				assert.Greater(t, tau, 0.0)
			}

			stop := d.EffectiveStopTime()
			rows, cols := stop.Dims()
			require.Equal(t, d.NumberOfSteps(), rows)
			require.Equal(t, d.NumberOfRates(), cols)
			for j := 0; j < rows; j++ {
				for i := 0; i < cols; i++ {
					want := min(evolutionTimes[j], rateTimes[i])
					assert.Equal(t, want, stop.At(j, i))
					got, err := d.EffectiveStopTimeAt(j, i)
					require.NoError(t, err)
					assert.Equal(t, want, got)
				}
			}

			alive := d.FirstAliveRate()
			require.Len(t, alive, d.NumberOfSteps())
			prev := 0.0
			for j, a := range alive {
				if j > 0 {
					assert.GreaterOrEqual(t, a, alive[j-1])
					prev = evolutionTimes[j-1]
				}
				assert.Greater(t, rateTimes[a], prev)
				if a > 0 {
					assert.LessOrEqual(t, rateTimes[a-1], prev)
				}
			}
		})
	}
}

func TestNewDescription_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name           string
		rateTimes      []float64
		evolutionTimes []float64
		relevance      []evolution.RatePair
		want           error
	}{
		{"no rate times", nil, nil, nil, evolution.ErrSizeMismatch},
		{"one rate time", []float64{1}, nil, nil, evolution.ErrSizeMismatch},
		{"negative first rate time", []float64{-0.5, 1}, nil, nil, evolution.ErrOrdering},
		{"flat rate times", []float64{0, 1, 1, 2}, nil, nil, evolution.ErrOrdering},
		{"decreasing rate times", []float64{0, 2, 1}, nil, nil, evolution.ErrOrdering},
		{"flat evolution times", []float64{0, 1, 2}, []float64{1, 1}, nil, evolution.ErrOrdering},
		{"evolution past last rate", []float64{0, 1, 2}, []float64{1, 2.5}, nil, evolution.ErrRangeExceeded},
		{"relevance size", []float64{0, 1, 2}, nil, []evolution.RatePair{{0, 2}}, evolution.ErrSizeMismatch},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			d, err := evolution.NewDescription(tc.rateTimes, tc.evolutionTimes, tc.relevance)
			require.ErrorIs(t, err, tc.want)
			assert.Nil(t, d)
		})
	}
}

func TestNewDescription_LastEvolutionOnLastRate(t *testing.T) {
	t.Parallel()

	d, err := evolution.NewDescription([]float64{0, 1, 2}, []float64{1, 2}, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, d.FirstAliveRate())
}

func TestNewDescription_CustomRelevanceRates(t *testing.T) {
	t.Parallel()

	relevance := []evolution.RatePair{{0, 2}, {1, 2}}
	d, err := evolution.NewDescription([]float64{0, 1, 2}, []float64{0.5, 1.5}, relevance)
	require.NoError(t, err)
	assert.Equal(t, relevance, d.RelevanceRates())
}

func TestDescription_DoesNotAliasInputsOrOutputs(t *testing.T) {
	t.Parallel()

	rateTimes := []float64{0, 1, 2}
	d, err := evolution.NewDescription(rateTimes, nil, nil)
	require.NoError(t, err)

	rateTimes[1] = 42
	assert.Equal(t, []float64{0, 1, 2}, d.RateTimes())

	out := d.RateTimes()
	out[0] = 42
	assert.Equal(t, []float64{0, 1, 2}, d.RateTimes())

	alive := d.FirstAliveRate()
	alive[0] = 42
	assert.NotEqual(t, 42, d.FirstAliveRate()[0])

	stop := d.EffectiveStopTime()
	before := stop.At(1, 1)
	if dense, ok := stop.(interface{ Set(i, j int, v float64) }); ok {
		dense.Set(1, 1, 42)
	}
	got, err := d.EffectiveStopTimeAt(1, 1)
	require.NoError(t, err)
	assert.Equal(t, before, got)
}

func TestDescription_EffectiveStopTimeAtOutOfRange(t *testing.T) {
	t.Parallel()

	d, err := evolution.NewDescription([]float64{0, 1, 2}, nil, nil)
	require.NoError(t, err)

	_, err = d.EffectiveStopTimeAt(2, 0)
	require.ErrorIs(t, err, evolution.ErrRangeExceeded)
	_, err = d.EffectiveStopTimeAt(0, -1)
	require.ErrorIs(t, err, evolution.ErrRangeExceeded)
}

func TestDescription_ZeroValue(t *testing.T) {
	t.Parallel()

	var d evolution.Description
	assert.Equal(t, 0, d.NumberOfRates())
	assert.Equal(t, 0, d.NumberOfSteps())
	assert.Empty(t, d.FirstAliveRate())
	assert.True(t, d.EffectiveStopTime().(interface{ IsEmpty() bool }).IsEmpty())
}
