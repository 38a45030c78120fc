package ml

import "math"

// Slope returns the ordinary-least-squares slope of values regressed
// against their index. Series shorter than two points have no trend.
func Slope(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, y := range values {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	fn := float64(n)
	denom := fn*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (fn*sumXY - sumX*sumY) / denom
}

// Mean returns the arithmetic mean, 0 for an empty series
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// MeanLast returns the mean of the final k values, or of the whole
// series when it is shorter than k
func MeanLast(values []float64, k int) float64 {
	if len(values) > k {
		values = values[len(values)-k:]
	}
	return Mean(values)
}

// StdDev returns the population standard deviation, 0 for an empty series
func StdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := Mean(values)
	var sum float64
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)))
}
