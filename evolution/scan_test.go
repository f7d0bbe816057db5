package evolution_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meenmo/marketmodel/evolution"
)

func TestFirstIndexNotBefore(t *testing.T) {
	t.Parallel()

	times := []float64{0, 1, 2, 3}
	cases := []struct {
		name    string
		targets []float64
		want    []int
	}{
		{"on grid", []float64{0, 1, 2}, []int{0, 1, 2}},
		{"between nodes", []float64{0.5, 1.5, 2.5}, []int{1, 2, 3}},
		{"repeated bucket", []float64{0.1, 0.2, 0.9}, []int{1, 1, 1}},
		{"past the end", []float64{2.5, 3, 4}, []int{3, 3, 4}},
		{"empty", nil, []int{}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, evolution.FirstIndexNotBefore(times, tc.targets))
		})
	}
}

func TestFirstIndexAfter(t *testing.T) {
	t.Parallel()

	times := []float64{0, 1, 2, 3}
	cases := []struct {
		name    string
		targets []float64
		want    []int
	}{
		{"on grid", []float64{0, 1, 2}, []int{1, 2, 3}},
		{"between nodes", []float64{0.5, 1.5, 2.5}, []int{1, 2, 3}},
		{"before first", []float64{-1}, []int{0}},
		{"past the end", []float64{3}, []int{4}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, evolution.FirstIndexAfter(times, tc.targets))
		})
	}
}
