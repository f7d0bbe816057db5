package evolution

// FirstIndexNotBefore maps every target to the smallest index i with times[i] >= target.
//
// Both slices must be sorted in ascending order. The cursor into times only moves
// forward, so the scan is linear in len(times)+len(targets). Targets past the last
// time map to len(times).
func FirstIndexNotBefore(times, targets []float64) []int {
	out := make([]int, len(targets))
	j := 0
	for i, t := range targets {
		for j < len(times) && times[j] < t {
			j++
		}
		out[i] = j
	}
	return out
}

// FirstIndexAfter maps every target to the smallest index i with times[i] > target.
//
// Same contract as FirstIndexNotBefore: sorted inputs, forward-only cursor,
// len(times) for exhausted targets.
func FirstIndexAfter(times, targets []float64) []int {
	out := make([]int, len(targets))
	j := 0
	for i, t := range targets {
		for j < len(times) && times[j] <= t {
			j++
		}
		out[i] = j
	}
	return out
}

// runningTimes returns the time each step starts from: 0 for the first step,
// then the previous step's evolution time.
func runningTimes(evolutionTimes []float64) []float64 {
	out := make([]float64, len(evolutionTimes))
	for j := 1; j < len(evolutionTimes); j++ {
		out[j] = evolutionTimes[j-1]
	}
	return out
}
