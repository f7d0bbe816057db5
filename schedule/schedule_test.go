package schedule_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/marketmodel/calendar"
	"github.com/meenmo/marketmodel/evolution"
	"github.com/meenmo/marketmodel/schedule"
	"github.com/meenmo/marketmodel/utils"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRateTimes_SemiAnnual(t *testing.T) {
	t.Parallel()

	spec := schedule.Spec{
		Reference: date(2024, time.January, 15),
		Tenor:     "6M",
		Periods:   4,
		Calendar:  calendar.TARGET,
		DayCount:  utils.Act365F,
	}
	times, err := schedule.RateTimes(spec)
	require.NoError(t, err)

	want := []float64{0, 182.0 / 365, 366.0 / 365, 547.0 / 365, 731.0 / 365}
	require.Len(t, times, len(want))
	for i := range want {
		assert.InDelta(t, want[i], times[i], 1e-12, "boundary %d", i)
	}

	d, err := evolution.NewDescription(times, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, d.NumberOfRates())
	nums, err := evolution.MoneyMarketPlusMeasure(d, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, nums)
}

func TestDates_EndOfMonthRoll(t *testing.T) {
	t.Parallel()

	dates, err := schedule.Dates(schedule.Spec{
		Reference: date(2024, time.January, 31),
		Tenor:     "1M",
		Periods:   3,
		Calendar:  calendar.TARGET,
	})
	require.NoError(t, err)
	assert.Equal(t, []time.Time{
		date(2024, time.January, 31),
		date(2024, time.February, 29),
		date(2024, time.March, 28),
		date(2024, time.April, 30),
	}, dates)
}

func TestDates_RollConvention(t *testing.T) {
	t.Parallel()

	spec := schedule.Spec{
		Reference: date(2024, time.May, 30),
		Tenor:     "1M",
		Periods:   2,
		Calendar:  calendar.TARGET,
	}

	// The first boundary lands on Sunday 30 June.
	dates, err := schedule.Dates(spec)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{date(2024, time.May, 30), date(2024, time.June, 28), date(2024, time.July, 30)}, dates)

	spec.Roll = calendar.Following
	dates, err = schedule.Dates(spec)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{date(2024, time.May, 30), date(2024, time.July, 1), date(2024, time.July, 30)}, dates)

	spec.Roll = calendar.Convention("PRECEDING")
	_, err = schedule.Dates(spec)
	require.ErrorIs(t, err, schedule.ErrInvalidSpec)
}

func TestDates_Errors(t *testing.T) {
	t.Parallel()

	base := schedule.Spec{Reference: date(2024, time.May, 31), Tenor: "1D", Periods: 2, Calendar: calendar.WeekendsOnly}

	_, err := schedule.Dates(base)
	require.ErrorIs(t, err, schedule.ErrInvalidSpec)

	bad := base
	bad.Periods = 0
	_, err = schedule.Dates(bad)
	require.ErrorIs(t, err, schedule.ErrInvalidSpec)

	bad = base
	bad.Calendar = "KRW"
	_, err = schedule.Dates(bad)
	require.ErrorIs(t, err, schedule.ErrInvalidSpec)

	bad = base
	bad.Tenor = "3Q"
	_, err = schedule.Dates(bad)
	require.ErrorIs(t, err, schedule.ErrInvalidSpec)
}

func TestTimes_BeforeReference(t *testing.T) {
	t.Parallel()

	_, err := schedule.Times(date(2024, time.June, 1), []time.Time{date(2024, time.May, 31)}, utils.Act365F)
	require.ErrorIs(t, err, schedule.ErrInvalidSpec)
}

func TestEvolutionTimes(t *testing.T) {
	t.Parallel()

	rateTimes := []float64{0, 1, 2, 3, 4, 5}
	cases := []struct {
		every int
		want  []float64
	}{
		{1, []float64{0, 1, 2, 3, 4}},
		{2, []float64{0, 2, 4}},
		{3, []float64{0, 3, 4}},
		{10, []float64{0, 4}},
	}
	for _, tc := range cases {
		got, err := schedule.EvolutionTimes(rateTimes, tc.every)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "every %d", tc.every)
	}

	_, err := schedule.EvolutionTimes(rateTimes, 0)
	require.ErrorIs(t, err, schedule.ErrInvalidSpec)
}

func TestParseTenor(t *testing.T) {
	t.Parallel()

	tn, err := schedule.ParseTenor(" 10y ")
	require.NoError(t, err)
	months, ok := tn.Months()
	assert.True(t, ok)
	assert.Equal(t, 120, months)

	tn, err = schedule.ParseTenor("2W")
	require.NoError(t, err)
	days, ok := tn.Days()
	assert.True(t, ok)
	assert.Equal(t, 14, days)
	assert.Equal(t, "2W", tn.String())

	for _, bad := range []string{"", "M", "0M", "-1Y", "3X"} {
		_, err := schedule.ParseTenor(bad)
		assert.Error(t, err, bad)
	}
}
