package calculator

import "math"

// MaxAbsDrawdown returns the maximum peak-to-trough distance before a
// new peak is attained, in absolute price terms. Zero for empty or
// monotonically rising input.
func MaxAbsDrawdown(values []float64) float64 {
	maxDrawdown := 0.0
	peak := math.Inf(-1)
	for _, v := range values {
		if v > peak {
			peak = v
		}
		if dd := peak - v; dd > maxDrawdown {
			maxDrawdown = dd
		}
	}
	return maxDrawdown
}
