package reference

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurveEvaluate(t *testing.T) {
	curve := NewCurve(CurvePoint{5.0, 0.0}, CurvePoint{7.0, 1.0})

	t.Run("interpolates between breakpoints", func(t *testing.T) {
		assert.InDelta(t, 0.5, curve.Evaluate(6.0), 1e-9)
		assert.InDelta(t, 0.25, curve.Evaluate(5.5), 1e-9)
	})

	t.Run("exact breakpoints", func(t *testing.T) {
		assert.Equal(t, 0.0, curve.Evaluate(5.0))
		assert.Equal(t, 1.0, curve.Evaluate(7.0))
	})

	t.Run("clamps below the domain", func(t *testing.T) {
		assert.Equal(t, 0.0, curve.Evaluate(2.0))
	})

	t.Run("clamps above the domain", func(t *testing.T) {
		assert.Equal(t, 1.0, curve.Evaluate(12.0))
	})

	t.Run("empty curve evaluates to zero", func(t *testing.T) {
		assert.Equal(t, 0.0, Curve{}.Evaluate(6.0))
	})

	t.Run("NaN evaluates to zero instead of panicking", func(t *testing.T) {
		assert.Equal(t, 0.0, curve.Evaluate(math.NaN()))
	})
}

func TestNewCurveSortsBreakpoints(t *testing.T) {
	curve := NewCurve(CurvePoint{7.0, 1.0}, CurvePoint{5.0, 0.0}, CurvePoint{6.0, 0.5})
	assert.NoError(t, curve.Validate())
	low, high := curve.Domain()
	assert.Equal(t, 5.0, low)
	assert.Equal(t, 7.0, high)
}

func TestCurveValidate(t *testing.T) {
	t.Run("rejects empty curve", func(t *testing.T) {
		assert.Error(t, Curve{}.Validate())
	})

	t.Run("rejects duplicate breakpoints", func(t *testing.T) {
		curve := NewCurve(CurvePoint{5.0, 0.1}, CurvePoint{5.0, 0.2})
		assert.Error(t, curve.Validate())
	})
}
