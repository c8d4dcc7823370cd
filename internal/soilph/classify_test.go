package soilph

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agrisight/agro-analysis-go/internal/models"
)

func TestClassifyPH(t *testing.T) {
	tests := []struct {
		ph   float64
		want models.PHClassification
	}{
		{2.0, models.PHUltraAcidic},
		{3.4, models.PHUltraAcidic},
		{3.5, models.PHExtremelyAcidic},
		{4.4, models.PHExtremelyAcidic},
		{4.5, models.PHVeryStronglyAcidic},
		{5.1, models.PHStronglyAcidic},
		{5.6, models.PHModeratelyAcidic},
		{6.0, models.PHModeratelyAcidic},
		{6.1, models.PHSlightlyAcidic},
		{6.6, models.PHNeutral},
		{7.0, models.PHNeutral},
		{7.4, models.PHSlightlyAlkaline},
		{7.9, models.PHModeratelyAlkaline},
		{8.4, models.PHModeratelyAlkaline},
		{8.5, models.PHStronglyAlkaline},
		{10.5, models.PHStronglyAlkaline},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyPH(tt.ph), "pH %.1f", tt.ph)
	}
}

// Every boundary value belongs to the band above it.
func TestClassifyPHBoundariesGoUp(t *testing.T) {
	boundaries := []float64{3.5, 4.5, 5.1, 5.6, 6.1, 6.6, 7.4, 7.9, 8.5}
	for _, b := range boundaries {
		below := ClassifyPH(b - 0.001)
		at := ClassifyPH(b)
		assert.NotEqual(t, below, at, "boundary %.1f", b)
	}
}
