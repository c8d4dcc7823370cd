package soilph

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrisight/agro-analysis-go/internal/models"
	"github.com/agrisight/agro-analysis-go/internal/reference"
	"github.com/agrisight/agro-analysis-go/pkg/agroerr"
)

func newTestAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	tables := reference.Default()
	require.NoError(t, tables.Validate())
	return NewAnalyzer(tables, nil)
}

func TestAnalyze(t *testing.T) {
	analyzer := newTestAnalyzer(t)

	t.Run("optimal pH scores exactly one", func(t *testing.T) {
		result, err := analyzer.Analyze(models.SoilPHReading{PH: 6.5, OrganicMatterPct: 3}, "corn")
		require.NoError(t, err)
		assert.Equal(t, models.PHSlightlyAcidic, result.Classification)
		assert.Equal(t, 1.0, result.CropSuitability)
		assert.Empty(t, result.DefaultsApplied)
	})

	t.Run("nutrient availability stays within [0,1]", func(t *testing.T) {
		for _, ph := range []float64{2.0, 4.0, 6.5, 9.0, 11.0} {
			result, err := analyzer.Analyze(models.SoilPHReading{PH: ph, OrganicMatterPct: 2}, "corn")
			require.NoError(t, err)
			for nutrient, avail := range result.NutrientAvailability {
				assert.GreaterOrEqual(t, avail, 0.0, "%s at pH %.1f", nutrient, ph)
				assert.LessOrEqual(t, avail, 1.0, "%s at pH %.1f", nutrient, ph)
			}
		}
	})

	t.Run("pH outside the curve domain clamps to endpoint", func(t *testing.T) {
		low, err := analyzer.Analyze(models.SoilPHReading{PH: 2.0, OrganicMatterPct: 2}, "corn")
		require.NoError(t, err)
		// Default curves start at pH 4.0; pH 2 must read the endpoint,
		// never extrapolate past it.
		atDomainEdge, err := analyzer.Analyze(models.SoilPHReading{PH: 4.0, OrganicMatterPct: 2}, "corn")
		require.NoError(t, err)
		assert.Equal(t, atDomainEdge.NutrientAvailability, low.NutrientAvailability)
	})

	t.Run("unknown crop substitutes the documented default", func(t *testing.T) {
		result, err := analyzer.Analyze(models.SoilPHReading{PH: 6.5, OrganicMatterPct: 2}, "dragonfruit")
		require.NoError(t, err)
		require.Len(t, result.DefaultsApplied, 1)
		assert.Contains(t, result.DefaultsApplied[0], "dragonfruit")
		assert.Contains(t, result.DefaultsApplied[0], reference.DefaultCrop)
	})

	t.Run("suitability outside optimal range below one", func(t *testing.T) {
		result, err := analyzer.Analyze(models.SoilPHReading{PH: 5.0, OrganicMatterPct: 2}, "corn")
		require.NoError(t, err)
		assert.Less(t, result.CropSuitability, 1.0)
		assert.GreaterOrEqual(t, result.CropSuitability, 0.0)
	})
}

func TestAnalyzeValidation(t *testing.T) {
	analyzer := newTestAnalyzer(t)

	tests := []struct {
		name    string
		reading models.SoilPHReading
	}{
		{"pH below plausible floor", models.SoilPHReading{PH: 1.5, OrganicMatterPct: 2}},
		{"pH above plausible ceiling", models.SoilPHReading{PH: 11.5, OrganicMatterPct: 2}},
		{"negative organic matter", models.SoilPHReading{PH: 6.5, OrganicMatterPct: -1}},
		{"organic matter above 100", models.SoilPHReading{PH: 6.5, OrganicMatterPct: 101}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := analyzer.Analyze(tt.reading, "corn")
			var verr *agroerr.ValidationError
			assert.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
		})
	}
}

func TestRecommendAmendments(t *testing.T) {
	analyzer := newTestAnalyzer(t)

	t.Run("acidic soil gets lime", func(t *testing.T) {
		reading := models.SoilPHReading{PH: 5.8, OrganicMatterPct: 3, Texture: "loam"}
		recs, err := analyzer.RecommendAmendments(reading, 6.5, "corn")
		require.NoError(t, err)
		require.NotEmpty(t, recs)
		assert.Equal(t, models.RateUnitTonsPerAcre, recs[0].RateUnit)
	})

	t.Run("alkaline soil gets sulfur", func(t *testing.T) {
		reading := models.SoilPHReading{PH: 8.2, OrganicMatterPct: 2, Texture: "loam"}
		recs, err := analyzer.RecommendAmendments(reading, 7.0, "corn")
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, models.RateUnitLbsPerAcre, recs[0].RateUnit)
	})

	t.Run("pH at target needs nothing", func(t *testing.T) {
		reading := models.SoilPHReading{PH: 6.5, OrganicMatterPct: 2, Texture: "loam"}
		recs, err := analyzer.RecommendAmendments(reading, 6.5, "corn")
		require.NoError(t, err)
		// Empty, not nil: the JSON form must be [] rather than null.
		require.NotNil(t, recs)
		assert.Empty(t, recs)
	})

	t.Run("zero target derives from the crop optimal range", func(t *testing.T) {
		// Blueberry optimal range is 4.5-5.5, so the derived target is 5.0
		// and a pH 6.5 reading needs acidification.
		reading := models.SoilPHReading{PH: 6.5, OrganicMatterPct: 2, Texture: "sand"}
		recs, err := analyzer.RecommendAmendments(reading, 0, "blueberry")
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, models.RateUnitLbsPerAcre, recs[0].RateUnit)
		assert.InDelta(t, -1.5, recs[0].ExpectedPHChange, 1e-9)
	})

	t.Run("unknown crop flags the substitution on every recommendation", func(t *testing.T) {
		reading := models.SoilPHReading{PH: 5.5, OrganicMatterPct: 2, Texture: "loam"}
		recs, err := analyzer.RecommendAmendments(reading, 0, "dragonfruit")
		require.NoError(t, err)
		require.NotEmpty(t, recs)
		for _, rec := range recs {
			assert.NotEmpty(t, rec.DefaultsApplied)
		}
	})

	t.Run("implausible explicit target rejected", func(t *testing.T) {
		reading := models.SoilPHReading{PH: 6.0, OrganicMatterPct: 2, Texture: "loam"}
		_, err := analyzer.RecommendAmendments(reading, 12.5, "corn")
		var verr *agroerr.ValidationError
		assert.True(t, errors.As(err, &verr))
	})
}
