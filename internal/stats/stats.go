// Package stats holds the small numeric kernel shared by the aggregation and
// anomaly-detection stages. All score math in the engine funnels through
// SafeMean so that missing or non-finite inputs degrade to 0.0 instead of
// poisoning downstream averages.
package stats

import "math"

// SafeMean averages values, skipping NaN and infinities. An empty or
// all-invalid input yields exactly 0.0, never an arithmetic fault.
func SafeMean(values []float64) float64 {
	var sum float64
	var n int
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0.0
	}
	return sum / float64(n)
}

// PopStdDev computes the population standard deviation (divisor n, matching
// numpy's default) over the finite values. Fewer than one finite value yields 0.
func PopStdDev(values []float64) float64 {
	mean := SafeMean(values)
	var sum float64
	var n int
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		d := v - mean
		sum += d * d
		n++
	}
	if n == 0 {
		return 0.0
	}
	return math.Sqrt(sum / float64(n))
}

// Round2 rounds to two decimal places for presentation. Internal computation
// stays full precision; only stored/emitted scores pass through here.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
