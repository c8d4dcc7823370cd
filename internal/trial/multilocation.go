package trial

import (
	"github.com/agrisight/agro-analysis-go/internal/models"
	"github.com/agrisight/agro-analysis-go/internal/stats"
)

// ComputeMultiLocationMeans groups the filtered observations by variety
// and by location and computes arithmetic mean and sample standard
// deviation of yield for each group, plus the grand mean and standard
// deviation over all observations. A group with a single observation
// has standard deviation 0.
func (a *Analyzer) ComputeMultiLocationMeans(data *trialData) *models.MultiLocationMeans {
	result := &models.MultiLocationMeans{
		VarietyMeans:  make(map[string]models.MeanStd, len(data.varieties)),
		LocationMeans: make(map[string]models.MeanStd, len(data.locations)),
		Observations:  len(data.observations),
	}

	for variety, yields := range data.yieldsByVariety {
		result.VarietyMeans[variety] = models.MeanStd{
			Mean:   stats.Mean(yields),
			StdDev: stats.StdDev(yields),
			Count:  len(yields),
		}
	}
	for location, yields := range data.yieldsByLocation {
		result.LocationMeans[location] = models.MeanStd{
			Mean:   stats.Mean(yields),
			StdDev: stats.StdDev(yields),
			Count:  len(yields),
		}
	}

	all := make([]float64, 0, len(data.observations))
	for _, obs := range data.observations {
		all = append(all, obs.YieldValue)
	}
	result.GrandMean = stats.Mean(all)
	result.GrandStdDev = stats.StdDev(all)

	// Optional-trait summaries where the observations carried them.
	quality := make(map[string][]float64)
	disease := make(map[string][]float64)
	for _, obs := range data.observations {
		if obs.QualityScore != nil {
			quality[obs.Variety] = append(quality[obs.Variety], *obs.QualityScore)
		}
		if obs.DiseaseIncidence != nil {
			disease[obs.Variety] = append(disease[obs.Variety], *obs.DiseaseIncidence)
		}
	}
	if len(quality) > 0 {
		result.VarietyQuality = make(map[string]float64, len(quality))
		for variety, scores := range quality {
			result.VarietyQuality[variety] = stats.Mean(scores)
		}
	}
	if len(disease) > 0 {
		result.VarietyDisease = make(map[string]float64, len(disease))
		for variety, scores := range disease {
			result.VarietyDisease[variety] = stats.Mean(scores)
		}
	}

	return result
}
