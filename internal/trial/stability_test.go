package trial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrisight/agro-analysis-go/internal/models"
)

func TestComputeStabilityCrossover(t *testing.T) {
	analyzer := newTestTrialAnalyzer()
	data := newTrialData(crossoverObservations())

	result, err := analyzer.ComputeStability(data)
	require.NoError(t, err)

	t.Run("coefficient of variation", func(t *testing.T) {
		// V1: yields 150,160 -> sd sqrt(50), mean 155 -> CV ~4.56%.
		// V2: yields 140,170 -> sd ~21.2, mean 155 -> CV ~13.7%.
		assert.InDelta(t, 4.562, result.Measures["V1"][models.MeasureCV], 0.01)
		assert.InDelta(t, 13.686, result.Measures["V2"][models.MeasureCV], 0.01)
	})

	t.Run("regression slope on the environmental index", func(t *testing.T) {
		// Environmental index is -10 at L1 and +10 at L2. V1 moves 10
		// bu over that 20-unit span, V2 moves 30.
		assert.InDelta(t, 0.5, result.Measures["V1"][models.MeasureRegressionSlope], 1e-9)
		assert.InDelta(t, 1.5, result.Measures["V2"][models.MeasureRegressionSlope], 1e-9)
	})

	t.Run("adaptation classes", func(t *testing.T) {
		// V1's CV is inside the stable band; V2 sits between the CV
		// extremes so its slope decides.
		assert.Equal(t, models.AdaptationStable, result.Adaptation["V1"])
		assert.Equal(t, models.AdaptationFavorableSpecific, result.Adaptation["V2"])
	})

	t.Run("ranks by ascending CV", func(t *testing.T) {
		assert.Equal(t, 1, result.Ranks["V1"])
		assert.Equal(t, 2, result.Ranks["V2"])
	})

	t.Run("recommendations attached", func(t *testing.T) {
		assert.NotEmpty(t, result.Recommendations["V1"])
		assert.NotEmpty(t, result.Recommendations["V2"])
	})
}

func TestComputeStabilityConstantVarieties(t *testing.T) {
	analyzer := newTestTrialAnalyzer()

	// Every variety yields the same at every location, so all variation
	// measures collapse to zero.
	observations := []models.VarietyPerformanceObservation{
		obs("A", "L1", 2021, 100), obs("A", "L2", 2021, 100), obs("A", "L3", 2021, 100),
		obs("B", "L1", 2021, 120), obs("B", "L2", 2021, 120), obs("B", "L3", 2021, 120),
		obs("C", "L1", 2021, 90), obs("C", "L2", 2021, 90), obs("C", "L3", 2021, 90),
	}
	data := newTrialData(observations)

	result, err := analyzer.ComputeStability(data)
	require.NoError(t, err)

	for _, variety := range []string{"A", "B", "C"} {
		assert.Equal(t, 0.0, result.Measures[variety][models.MeasureCV], variety)
		shukla, ok := result.Measures[variety][models.MeasureShuklaVariance]
		require.True(t, ok, "three varieties support Shukla variance")
		assert.InDelta(t, 0.0, shukla, 1e-9, variety)
		assert.Equal(t, models.AdaptationStable, result.Adaptation[variety])
	}
}

func TestShuklaVariances(t *testing.T) {
	analyzer := newTestTrialAnalyzer()

	t.Run("absent below three genotypes", func(t *testing.T) {
		data := newTrialData(crossoverObservations())
		assert.Nil(t, analyzer.shuklaVariances(data))
	})

	t.Run("never negative", func(t *testing.T) {
		observations := []models.VarietyPerformanceObservation{
			obs("A", "L1", 2021, 100), obs("A", "L2", 2021, 120), obs("A", "L3", 2021, 95),
			obs("B", "L1", 2021, 115), obs("B", "L2", 2021, 105), obs("B", "L3", 2021, 130),
			obs("C", "L1", 2021, 90), obs("C", "L2", 2021, 140), obs("C", "L3", 2021, 100),
		}
		data := newTrialData(observations)

		variances := analyzer.shuklaVariances(data)
		require.Len(t, variances, 3)
		for variety, v := range variances {
			assert.GreaterOrEqual(t, v, 0.0, variety)
		}
	})
}

func TestClassifyAdaptation(t *testing.T) {
	analyzer := newTestTrialAnalyzer()

	tests := []struct {
		name     string
		measures map[models.StabilityMeasure]float64
		want     models.AdaptationType
	}{
		{
			"very high CV is unstable regardless of slope",
			map[models.StabilityMeasure]float64{
				models.MeasureCV:              30,
				models.MeasureRegressionSlope: 1.0,
			},
			models.AdaptationUnstable,
		},
		{
			"low CV is stable",
			map[models.StabilityMeasure]float64{
				models.MeasureCV:              5,
				models.MeasureRegressionSlope: 1.8,
			},
			models.AdaptationStable,
		},
		{
			"steep slope favors rich environments",
			map[models.StabilityMeasure]float64{
				models.MeasureCV:              15,
				models.MeasureRegressionSlope: 1.4,
			},
			models.AdaptationFavorableSpecific,
		},
		{
			"shallow slope suits poor environments",
			map[models.StabilityMeasure]float64{
				models.MeasureCV:              15,
				models.MeasureRegressionSlope: 0.6,
			},
			models.AdaptationPoorSpecific,
		},
		{
			"unit slope with low deviation is generally adapted",
			map[models.StabilityMeasure]float64{
				models.MeasureCV:                  15,
				models.MeasureRegressionSlope:     1.0,
				models.MeasureRegressionDeviation: 10,
			},
			models.AdaptationGeneral,
		},
		{
			"unit slope with high deviation is unstable",
			map[models.StabilityMeasure]float64{
				models.MeasureCV:                  15,
				models.MeasureRegressionSlope:     1.0,
				models.MeasureRegressionDeviation: 100,
			},
			models.AdaptationUnstable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, analyzer.classifyAdaptation(tt.measures))
		})
	}
}
