package soilph

import "github.com/agrisight/agro-analysis-go/internal/models"

// phBand is one reaction class with its exclusive upper bound. The
// bands are contiguous and exhaustive over the real line; each shared
// boundary point belongs to the upper band.
type phBand struct {
	upper float64
	class models.PHClassification
}

var phBands = []phBand{
	{3.5, models.PHUltraAcidic},
	{4.5, models.PHExtremelyAcidic},
	{5.1, models.PHVeryStronglyAcidic},
	{5.6, models.PHStronglyAcidic},
	{6.1, models.PHModeratelyAcidic},
	{6.6, models.PHSlightlyAcidic},
	{7.4, models.PHNeutral},
	{7.9, models.PHSlightlyAlkaline},
	{8.5, models.PHModeratelyAlkaline},
}

// ClassifyPH maps a pH value to exactly one of the ten soil reaction
// classes. Values below the lowest band map to "ultra acidic" and
// values at or above 8.5 map to "strongly alkaline".
func ClassifyPH(ph float64) models.PHClassification {
	for _, band := range phBands {
		if ph < band.upper {
			return band.class
		}
	}
	return models.PHStronglyAlkaline
}
