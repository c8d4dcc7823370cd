package trial

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/agrisight/agro-analysis-go/internal/models"
	"github.com/agrisight/agro-analysis-go/internal/stats"
)

// ComputeStability calculates per-variety stability measures —
// coefficient of variation, environmental-index regression slope and
// deviation, and Shukla's stability variance — then classifies each
// variety's adaptation pattern, ranks varieties by CV (mean yield
// breaking ties, higher first), and attaches narrative recommendations.
func (a *Analyzer) ComputeStability(data *trialData) (*models.StabilityAnalysis, error) {
	result := &models.StabilityAnalysis{
		Measures:        make(map[string]map[models.StabilityMeasure]float64, len(data.varieties)),
		Adaptation:      make(map[string]models.AdaptationType, len(data.varieties)),
		Ranks:           make(map[string]int, len(data.varieties)),
		Recommendations: make(map[string]string, len(data.varieties)),
	}

	shukla := a.shuklaVariances(data)

	for _, variety := range data.varieties {
		locations, cellMeans := data.varietyCellMeans(variety)

		measures := make(map[models.StabilityMeasure]float64, 4)
		measures[models.MeasureCV] = stats.CoefficientOfVariation(cellMeans)

		// Environmental index: each location's mean yield centered on
		// the grand mean.
		index := make([]float64, len(locations))
		for i, location := range locations {
			index[i] = data.locationMeans[location] - data.grandMean
		}
		slope, intercept := stats.LinearRegression(index, cellMeans)
		measures[models.MeasureRegressionSlope] = slope
		measures[models.MeasureRegressionDeviation] = stats.DeviationFromRegression(index, cellMeans, slope, intercept)

		if variance, ok := shukla[variety]; ok {
			measures[models.MeasureShuklaVariance] = variance
		}

		result.Measures[variety] = measures
		result.Adaptation[variety] = a.classifyAdaptation(measures)
	}

	a.rankAndRecommend(data, result)

	a.logger.Debug("stability analysis complete",
		zap.Int("varieties", len(data.varieties)),
		zap.Bool("shukla_computed", len(shukla) > 0))
	return result, nil
}

// shuklaVariances estimates Shukla's stability variance from the
// double-centered complete submatrix. The estimator needs at least 3
// genotypes and 2 environments; otherwise the measure is absent (never
// NaN). Negative variance-component estimates clamp to 0.
func (a *Analyzer) shuklaVariances(data *trialData) map[string]float64 {
	varieties, locations, err := data.completeSubmatrix(SubAnalysisShukla)
	if err != nil || len(varieties) < 3 {
		return nil
	}

	w := data.doubleCentered(varieties, locations)
	t := float64(len(varieties))
	s := float64(len(locations))

	rowSS := make([]float64, len(varieties))
	var totalSS float64
	for i := range varieties {
		for j := range locations {
			rowSS[i] += w[i][j] * w[i][j]
		}
		totalSS += rowSS[i]
	}

	out := make(map[string]float64, len(varieties))
	for i, variety := range varieties {
		variance := (t*(t-1)*rowSS[i] - totalSS) / ((s - 1) * (t - 1) * (t - 2))
		if variance < 0 {
			variance = 0
		}
		out[variety] = variance
	}
	return out
}

// classifyAdaptation maps a variety's measures to an adaptation type.
// CV dominates at the extremes; between them the environmental-index
// regression decides: slope near 1 with low deviation means general
// adaptation, above 1 favors high-yield environments, below 1 favors
// poor environments.
func (a *Analyzer) classifyAdaptation(measures map[models.StabilityMeasure]float64) models.AdaptationType {
	cv := measures[models.MeasureCV]
	if cv >= a.cfg.UnstableCVMin {
		return models.AdaptationUnstable
	}
	if cv <= a.cfg.StableCVMax {
		return models.AdaptationStable
	}

	slope := measures[models.MeasureRegressionSlope]
	deviation := measures[models.MeasureRegressionDeviation]
	switch {
	case slope > 1+a.cfg.SlopeTolerance:
		return models.AdaptationFavorableSpecific
	case slope < 1-a.cfg.SlopeTolerance:
		return models.AdaptationPoorSpecific
	case deviation <= a.cfg.DeviationMax:
		return models.AdaptationGeneral
	default:
		return models.AdaptationUnstable
	}
}

// rankAndRecommend sorts varieties by ascending CV with mean yield as
// the tie-break (higher mean wins), assigns 1-based ranks, and writes
// the narrative recommendation per variety.
func (a *Analyzer) rankAndRecommend(data *trialData, result *models.StabilityAnalysis) {
	order := append([]string(nil), data.varieties...)
	sort.Slice(order, func(i, j int) bool {
		vi, vj := order[i], order[j]
		cvi := result.Measures[vi][models.MeasureCV]
		cvj := result.Measures[vj][models.MeasureCV]
		if cvi != cvj {
			return cvi < cvj
		}
		mi, mj := data.varietyMeans[vi], data.varietyMeans[vj]
		if mi != mj {
			return mi > mj
		}
		return vi < vj
	})

	for rank, variety := range order {
		result.Ranks[variety] = rank + 1
		result.Recommendations[variety] = adaptationRecommendation(
			result.Adaptation[variety], rank+1, len(order), data.varietyMeans[variety])
	}
}

func adaptationRecommendation(adaptation models.AdaptationType, rank, total int, meanYield float64) string {
	prefix := fmt.Sprintf("stability rank %d of %d, mean yield %.1f: ", rank, total, meanYield)
	switch adaptation {
	case models.AdaptationGeneral:
		return prefix + "broadly adapted; suitable for wide deployment across the region"
	case models.AdaptationFavorableSpecific:
		return prefix + "responds strongly to favorable conditions; target high-yield environments"
	case models.AdaptationPoorSpecific:
		return prefix + "holds yield under stress; suited to low-yield or marginal environments"
	case models.AdaptationStable:
		return prefix + "consistent performer across environments"
	default:
		return prefix + "inconsistent across environments; confirm local performance before wide deployment"
	}
}
