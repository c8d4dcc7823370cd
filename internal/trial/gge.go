package trial

import (
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/agrisight/agro-analysis-go/internal/models"
	"github.com/agrisight/agro-analysis-go/internal/stats"
	"github.com/agrisight/agro-analysis-go/pkg/agroerr"
)

// ComputeGGE projects genotypes and environments onto the first two
// singular components of the environment-centered GGE matrix (genotype
// main effect plus interaction — centered by environment only, unlike
// the doubly-centered AMMI residual). Also derives the which-won-where
// map and the mean-vs-stability classification.
func (a *Analyzer) ComputeGGE(data *trialData) (*models.GGEBiplotData, error) {
	varieties, locations, err := data.completeSubmatrix(SubAnalysisGGE)
	if err != nil {
		return nil, err
	}

	centered := data.environmentCentered(varieties, locations)
	m := mat.NewDense(len(varieties), len(locations), nil)
	for i := range varieties {
		for j := range locations {
			m.Set(i, j, centered[i][j])
		}
	}

	var svd mat.SVD
	if ok := svd.Factorize(m, mat.SVDThin); !ok {
		return nil, &agroerr.ComputationError{Op: "GGE singular value decomposition", Value: math.NaN()}
	}
	singular := svd.Values(nil)
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	var totalSS float64
	for _, s := range singular {
		totalSS += s * s
	}

	result := &models.GGEBiplotData{
		GenotypeScores:    make(map[string]models.BiplotPoint, len(varieties)),
		EnvironmentScores: make(map[string]models.BiplotPoint, len(locations)),
		WhichWonWhere:     make(map[string]string, len(data.locations)),
		MeanVsStability:   make(map[string]models.GGECategory, len(varieties)),
	}

	axes := 2
	if len(singular) < axes {
		axes = len(singular)
	}
	scale := make([]float64, 2)
	for k := 0; k < axes; k++ {
		scale[k] = math.Sqrt(singular[k])
		if totalSS > 0 {
			result.ExplainedVariance[k] = singular[k] * singular[k] / totalSS
		}
	}

	for i, variety := range varieties {
		point := models.BiplotPoint{PC1: u.At(i, 0) * scale[0]}
		if axes > 1 {
			point.PC2 = u.At(i, 1) * scale[1]
		}
		result.GenotypeScores[variety] = point
	}
	for j, location := range locations {
		point := models.BiplotPoint{PC1: v.At(j, 0) * scale[0]}
		if axes > 1 {
			point.PC2 = v.At(j, 1) * scale[1]
		}
		result.EnvironmentScores[location] = point
	}

	// Which-won-where over every location in the filtered data, not just
	// the decomposed block: the variety with the highest observed mean
	// yield at that location, ties broken alphabetically.
	for _, location := range data.locations {
		var (
			winner string
			best   float64
		)
		for _, variety := range data.varieties {
			yield, ok := data.cellMean(variety, location)
			if !ok {
				continue
			}
			if winner == "" || yield > best {
				winner = variety
				best = yield
			}
		}
		if winner != "" {
			result.WhichWonWhere[location] = winner
		}
	}

	a.classifyMeanVsStability(data, result, varieties)

	a.logger.Debug("GGE projection complete",
		zap.Int("varieties", len(varieties)),
		zap.Int("locations", len(locations)),
		zap.Float64("pc1_variance", result.ExplainedVariance[0]),
		zap.Float64("pc2_variance", result.ExplainedVariance[1]))
	return result, nil
}

// classifyMeanVsStability buckets each variety by its projection onto
// the average-environment axis (mean performance) and its perpendicular
// distance from that axis (instability). The split between high and low
// yield is at zero — environment centering puts the grand mean there —
// and the split between stable and unstable is at the median distance.
func (a *Analyzer) classifyMeanVsStability(data *trialData, result *models.GGEBiplotData, varieties []string) {
	// Average-environment axis: the mean of the environment markers.
	var axis models.BiplotPoint
	for _, point := range result.EnvironmentScores {
		axis.PC1 += point.PC1
		axis.PC2 += point.PC2
	}
	n := float64(len(result.EnvironmentScores))
	axis.PC1 /= n
	axis.PC2 /= n

	norm := math.Hypot(axis.PC1, axis.PC2)
	projections := make(map[string]float64, len(varieties))
	distances := make(map[string]float64, len(varieties))

	if norm == 0 {
		// Degenerate geometry: fall back to raw mean performance.
		for _, variety := range varieties {
			projections[variety] = data.varietyMeans[variety] - data.grandMean
			distances[variety] = 0
		}
	} else {
		ux, uy := axis.PC1/norm, axis.PC2/norm
		for _, variety := range varieties {
			point := result.GenotypeScores[variety]
			proj := point.PC1*ux + point.PC2*uy
			projections[variety] = proj
			distances[variety] = math.Hypot(point.PC1-proj*ux, point.PC2-proj*uy)
		}

		// Orient the axis so higher projection means higher yield.
		var alignment float64
		for _, variety := range varieties {
			alignment += projections[variety] * (data.varietyMeans[variety] - data.grandMean)
		}
		if alignment < 0 {
			for variety := range projections {
				projections[variety] = -projections[variety]
			}
		}
	}

	allDistances := make([]float64, 0, len(varieties))
	for _, variety := range varieties {
		allDistances = append(allDistances, distances[variety])
	}
	medianDistance := stats.Median(allDistances)

	for _, variety := range varieties {
		high := projections[variety] > 0
		stable := distances[variety] <= medianDistance
		switch {
		case high && stable:
			result.MeanVsStability[variety] = models.GGEHighYieldStable
		case high && !stable:
			result.MeanVsStability[variety] = models.GGEHighYieldUnstable
		case !high && stable:
			result.MeanVsStability[variety] = models.GGELowYieldStable
		default:
			result.MeanVsStability[variety] = models.GGELowYieldUnstable
		}
	}
}
