package trial

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrisight/agro-analysis-go/internal/models"
	"github.com/agrisight/agro-analysis-go/pkg/agroerr"
)

func TestComputeInteractionMatrix(t *testing.T) {
	analyzer := newTestTrialAnalyzer()
	data := newTrialData(crossoverObservations())
	matrix := analyzer.ComputeInteractionMatrix(data)

	t.Run("interaction arithmetic", func(t *testing.T) {
		// 150 - 155 - 145 + 155 = +5
		v, ok := matrix.Value("V1", "L1")
		require.True(t, ok)
		assert.InDelta(t, 5.0, v, 1e-9)

		v, ok = matrix.Value("V1", "L2")
		require.True(t, ok)
		assert.InDelta(t, -5.0, v, 1e-9)

		v, ok = matrix.Value("V2", "L1")
		require.True(t, ok)
		assert.InDelta(t, -5.0, v, 1e-9)

		v, ok = matrix.Value("V2", "L2")
		require.True(t, ok)
		assert.InDelta(t, 5.0, v, 1e-9)
	})

	t.Run("rows and columns sum to zero on complete data", func(t *testing.T) {
		for _, variety := range matrix.Varieties {
			assert.InDelta(t, 0.0, matrix.RowSum(variety), 1e-9)
		}
		for _, location := range matrix.Locations {
			assert.InDelta(t, 0.0, matrix.ColSum(location), 1e-9)
		}
	})
}

func TestInteractionMatrixSparsity(t *testing.T) {
	analyzer := newTestTrialAnalyzer()
	observations := []models.VarietyPerformanceObservation{
		obs("V1", "L1", 2021, 150),
		obs("V1", "L2", 2021, 160),
		obs("V2", "L1", 2021, 140),
		// V2 was never grown at L2.
	}
	data := newTrialData(observations)
	matrix := analyzer.ComputeInteractionMatrix(data)

	_, ok := matrix.Value("V2", "L2")
	assert.False(t, ok, "missing cell must stay missing, not become zero")
	assert.Equal(t, 3, matrix.Len())
	assert.False(t, matrix.Complete())
}

func TestCompleteSubmatrix(t *testing.T) {
	t.Run("drops sparse locations then uncovered varieties", func(t *testing.T) {
		observations := []models.VarietyPerformanceObservation{
			obs("A", "L1", 2021, 100), obs("A", "L2", 2021, 110),
			obs("B", "L1", 2021, 120), obs("B", "L2", 2021, 115),
			obs("C", "L1", 2021, 90), obs("C", "L2", 2021, 95),
			// L3 has a single observed variety and must be dropped.
			obs("A", "L3", 2021, 105),
		}
		data := newTrialData(observations)

		varieties, locations, err := data.completeSubmatrix("test")
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B", "C"}, varieties)
		assert.Equal(t, []string{"L1", "L2"}, locations)
	})

	t.Run("variety missing from a retained location is dropped", func(t *testing.T) {
		observations := []models.VarietyPerformanceObservation{
			obs("A", "L1", 2021, 100), obs("A", "L2", 2021, 110),
			obs("B", "L1", 2021, 120), obs("B", "L2", 2021, 115),
			obs("C", "L1", 2021, 90), // C unobserved at L2
		}
		data := newTrialData(observations)

		varieties, _, err := data.completeSubmatrix("test")
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B"}, varieties)
	})

	t.Run("block smaller than 2x2 is insufficient", func(t *testing.T) {
		observations := []models.VarietyPerformanceObservation{
			obs("A", "L1", 2021, 100),
			obs("B", "L2", 2021, 120),
		}
		data := newTrialData(observations)

		_, _, err := data.completeSubmatrix("test")
		var ide *agroerr.InsufficientDataError
		assert.True(t, errors.As(err, &ide))
	})
}

func TestDoubleCentered(t *testing.T) {
	data := newTrialData(crossoverObservations())
	varieties, locations, err := data.completeSubmatrix("test")
	require.NoError(t, err)

	centered := data.doubleCentered(varieties, locations)
	for i := range centered {
		var rowSum float64
		for _, v := range centered[i] {
			rowSum += v
		}
		assert.InDelta(t, 0.0, rowSum, 1e-9)
	}
	for j := range centered[0] {
		var colSum float64
		for i := range centered {
			colSum += centered[i][j]
		}
		assert.InDelta(t, 0.0, colSum, 1e-9)
	}
}

func TestEnvironmentCentered(t *testing.T) {
	data := newTrialData(crossoverObservations())
	varieties, locations, err := data.completeSubmatrix("test")
	require.NoError(t, err)

	centered := data.environmentCentered(varieties, locations)
	// Columns sum to zero; rows keep the genotype main effect.
	for j := range centered[0] {
		var colSum float64
		for i := range centered {
			colSum += centered[i][j]
		}
		assert.InDelta(t, 0.0, colSum, 1e-9)
	}
}
