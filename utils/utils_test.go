package utils_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/marketmodel/utils"
)

func TestAddMonth_EndOfMonth(t *testing.T) {
	t.Parallel()

	jan31 := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), utils.AddMonth(jan31, 1))
	assert.Equal(t, time.Date(2024, time.April, 30, 0, 0, 0, 0, time.UTC), utils.AddMonth(jan31, 3))
	assert.Equal(t, time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC), utils.AddMonth(jan31, 12))
}

func TestYearFraction(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC)

	assert.InDelta(t, 182.0/365.0, utils.YearFraction(start, end, utils.Act365F), 1e-15)
	assert.InDelta(t, 182.0/360.0, utils.YearFraction(start, end, utils.Act360), 1e-15)
	assert.InDelta(t, 0.5, utils.YearFraction(start, end, utils.Dc30E360), 1e-15)
}

func TestParseDayCount(t *testing.T) {
	t.Parallel()

	dc, err := utils.ParseDayCount("")
	require.NoError(t, err)
	assert.Equal(t, utils.Act365F, dc)

	dc, err = utils.ParseDayCount(" act/360 ")
	require.NoError(t, err)
	assert.Equal(t, utils.Act360, dc)

	_, err = utils.ParseDayCount("BUS/252")
	require.Error(t, err)
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	d, err := utils.ParseDate("2025-11-21")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.November, 21, 0, 0, 0, 0, time.UTC), d)

	_, err = utils.ParseDate("21/11/2025")
	require.Error(t, err)
}
