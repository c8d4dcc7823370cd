package trial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrisight/agro-analysis-go/internal/models"
)

func TestComputeAMMI(t *testing.T) {
	analyzer := newTestTrialAnalyzer()
	data := newTrialData(crossoverObservations())

	result, err := analyzer.ComputeAMMI(data)
	require.NoError(t, err)

	t.Run("main effects", func(t *testing.T) {
		// Both varieties average 155 = grand mean.
		assert.InDelta(t, 0.0, result.GenotypeEffects["V1"], 1e-9)
		assert.InDelta(t, 0.0, result.GenotypeEffects["V2"], 1e-9)
		assert.InDelta(t, -10.0, result.EnvironmentEffects["L1"], 1e-9)
		assert.InDelta(t, 10.0, result.EnvironmentEffects["L2"], 1e-9)
	})

	t.Run("single component explains all interaction variance", func(t *testing.T) {
		// A 2x2 double-centered matrix has rank 1.
		require.Len(t, result.Components, 1)
		component := result.Components[0]
		assert.Equal(t, 1, component.Axis)
		assert.InDelta(t, 1.0, component.ExplainedVariance, 1e-9)
	})

	t.Run("stability is the squared IPCA score", func(t *testing.T) {
		// Interaction matrix [[5,-5],[-5,5]] has singular value 10; each
		// genotype score is ±sqrt(10)/sqrt(2), squared = 5.
		assert.InDelta(t, 5.0, result.Stability["V1"], 1e-9)
		assert.InDelta(t, 5.0, result.Stability["V2"], 1e-9)
	})

	t.Run("stability order breaks ties alphabetically", func(t *testing.T) {
		assert.Equal(t, []string{"V1", "V2"}, result.StabilityOrder)
	})
}

func TestComputeAMMIComponentCap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxIPCAComponents = 1
	analyzer := NewAnalyzer(cfg, nil, nil)

	// 3x3 grid with noise so the interaction has rank above 1.
	observations := []models.VarietyPerformanceObservation{
		obs("A", "L1", 2021, 100), obs("A", "L2", 2021, 120), obs("A", "L3", 2021, 95),
		obs("B", "L1", 2021, 115), obs("B", "L2", 2021, 105), obs("B", "L3", 2021, 130),
		obs("C", "L1", 2021, 90), obs("C", "L2", 2021, 140), obs("C", "L3", 2021, 100),
	}
	data := newTrialData(observations)

	result, err := analyzer.ComputeAMMI(data)
	require.NoError(t, err)
	assert.Len(t, result.Components, 1)
}

func TestComputeAMMIVarianceThreshold(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxIPCAComponents = 5
	cfg.VarianceThreshold = 0.5
	analyzer := NewAnalyzer(cfg, nil, nil)

	observations := []models.VarietyPerformanceObservation{
		obs("A", "L1", 2021, 100), obs("A", "L2", 2021, 120), obs("A", "L3", 2021, 95),
		obs("B", "L1", 2021, 115), obs("B", "L2", 2021, 105), obs("B", "L3", 2021, 130),
		obs("C", "L1", 2021, 90), obs("C", "L2", 2021, 140), obs("C", "L3", 2021, 100),
	}
	data := newTrialData(observations)

	result, err := analyzer.ComputeAMMI(data)
	require.NoError(t, err)

	// Components stop once cumulative explained variance crosses the
	// threshold; the first axis always explains the most, so one axis
	// crossing 50% means exactly one component.
	var cumulative float64
	for i, component := range result.Components {
		cumulative += component.ExplainedVariance
		if i < len(result.Components)-1 {
			assert.Less(t, cumulative, 0.5)
		}
	}
	assert.GreaterOrEqual(t, cumulative, 0.5)
}

func TestComputeAMMIConstantInteraction(t *testing.T) {
	analyzer := newTestTrialAnalyzer()

	// Purely additive data: every variety shifts by the same amount
	// between locations, so the interaction is exactly zero.
	observations := []models.VarietyPerformanceObservation{
		obs("A", "L1", 2021, 100), obs("A", "L2", 2021, 110),
		obs("B", "L1", 2021, 120), obs("B", "L2", 2021, 130),
		obs("C", "L1", 2021, 90), obs("C", "L2", 2021, 100),
	}
	data := newTrialData(observations)

	result, err := analyzer.ComputeAMMI(data)
	require.NoError(t, err)
	for _, variety := range []string{"A", "B", "C"} {
		assert.InDelta(t, 0.0, result.Stability[variety], 1e-9)
	}
	for _, component := range result.Components {
		for _, score := range component.GenotypeScores {
			assert.InDelta(t, 0.0, score, 1e-6)
		}
	}
}
