package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinearRegression(t *testing.T) {
	t.Run("exact line", func(t *testing.T) {
		slope, intercept := LinearRegression([]float64{0, 1, 2}, []float64{1, 3, 5})
		assert.InDelta(t, 2.0, slope, 1e-9)
		assert.InDelta(t, 1.0, intercept, 1e-9)
	})

	t.Run("zero x spread degrades to mean", func(t *testing.T) {
		slope, intercept := LinearRegression([]float64{5, 5, 5}, []float64{1, 2, 3})
		assert.Equal(t, 0.0, slope)
		assert.Equal(t, 2.0, intercept)
	})

	t.Run("fewer than two points degrades to mean", func(t *testing.T) {
		slope, intercept := LinearRegression([]float64{1}, []float64{7})
		assert.Equal(t, 0.0, slope)
		assert.Equal(t, 7.0, intercept)
	})
}

func TestPredict(t *testing.T) {
	got := Predict([]float64{0, 2}, 3, 1)
	assert.Equal(t, []float64{1, 7}, got)
}

func TestDeviationFromRegression(t *testing.T) {
	t.Run("perfect fit has zero deviation", func(t *testing.T) {
		x := []float64{0, 1, 2}
		y := []float64{1, 3, 5}
		assert.InDelta(t, 0.0, DeviationFromRegression(x, y, 2, 1), 1e-9)
	})

	t.Run("mean squared residual", func(t *testing.T) {
		x := []float64{0, 1}
		y := []float64{1, 1}
		// Line y = x: residuals 1 and 0.
		assert.InDelta(t, 0.5, DeviationFromRegression(x, y, 1, 0), 1e-9)
	})
}
