package stats

import "gonum.org/v1/gonum/stat"

// LinearRegression performs simple ordinary least squares (y = a + bx).
// Returns slope (b) and intercept (a). Fewer than two points, or an x
// vector with zero spread, yields slope 0 and intercept mean(y).
func LinearRegression(x, y []float64) (slope, intercept float64) {
	if len(x) != len(y) || len(x) < 2 {
		return 0, Mean(y)
	}

	var spread float64
	meanX := Mean(x)
	for _, xi := range x {
		d := xi - meanX
		spread += d * d
	}
	if spread == 0 {
		return 0, Mean(y)
	}

	intercept, slope = stat.LinearRegression(x, y, nil, false)
	return slope, intercept
}

// Predict evaluates a fitted line at each x.
func Predict(x []float64, slope, intercept float64) []float64 {
	predictions := make([]float64, len(x))
	for i, xi := range x {
		predictions[i] = slope*xi + intercept
	}
	return predictions
}

// DeviationFromRegression calculates the mean squared residual of y
// about the fitted line.
func DeviationFromRegression(x, y []float64, slope, intercept float64) float64 {
	if len(x) != len(y) || len(x) == 0 {
		return 0
	}

	var sumSq float64
	for i, xi := range x {
		r := y[i] - (slope*xi + intercept)
		sumSq += r * r
	}
	return sumSq / float64(len(x))
}
