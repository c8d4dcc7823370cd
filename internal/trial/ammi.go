package trial

import (
	"math"
	"sort"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/agrisight/agro-analysis-go/internal/models"
	"github.com/agrisight/agro-analysis-go/pkg/agroerr"
)

// ComputeAMMI decomposes the trial data into additive main effects and
// a low-rank multiplicative interaction: genotype effect = variety mean
// - grand mean, environment effect = location mean - grand mean, and
// interaction principal components extracted by singular value
// decomposition of the double-centered complete submatrix. Components
// are retained until they jointly explain the configured variance
// threshold, capped at MaxIPCAComponents. Per-variety stability is the
// sum of squared IPCA scores across retained axes; lower is more
// stable.
func (a *Analyzer) ComputeAMMI(data *trialData) (*models.AMMIAnalysis, error) {
	varieties, locations, err := data.completeSubmatrix(SubAnalysisAMMI)
	if err != nil {
		return nil, err
	}

	result := &models.AMMIAnalysis{
		GenotypeEffects:    make(map[string]float64, len(data.varieties)),
		EnvironmentEffects: make(map[string]float64, len(data.locations)),
		Interactions:       a.ComputeInteractionMatrix(data),
		Stability:          make(map[string]float64, len(varieties)),
	}
	for _, variety := range data.varieties {
		result.GenotypeEffects[variety] = data.varietyMeans[variety] - data.grandMean
	}
	for _, location := range data.locations {
		result.EnvironmentEffects[location] = data.locationMeans[location] - data.grandMean
	}

	centered := data.doubleCentered(varieties, locations)
	m := mat.NewDense(len(varieties), len(locations), nil)
	for i := range varieties {
		for j := range locations {
			m.Set(i, j, centered[i][j])
		}
	}

	var svd mat.SVD
	if ok := svd.Factorize(m, mat.SVDThin); !ok {
		return nil, &agroerr.ComputationError{Op: "AMMI singular value decomposition", Value: math.NaN()}
	}
	singular := svd.Values(nil)

	var totalSS float64
	for _, s := range singular {
		totalSS += s * s
	}

	for _, variety := range varieties {
		result.Stability[variety] = 0
	}

	if totalSS > 0 {
		var u, v mat.Dense
		svd.UTo(&u)
		svd.VTo(&v)

		// Double-centering removes one rank in each direction.
		maxAxes := len(varieties) - 1
		if len(locations)-1 < maxAxes {
			maxAxes = len(locations) - 1
		}
		if len(singular) < maxAxes {
			maxAxes = len(singular)
		}

		var cumulative float64
		for k := 0; k < maxAxes && k < a.cfg.MaxIPCAComponents; k++ {
			explained := singular[k] * singular[k] / totalSS
			scale := math.Sqrt(singular[k])

			component := models.IPCAComponent{
				Axis:              k + 1,
				ExplainedVariance: explained,
				GenotypeScores:    make(map[string]float64, len(varieties)),
				EnvironmentScores: make(map[string]float64, len(locations)),
			}
			for i, variety := range varieties {
				score := u.At(i, k) * scale
				component.GenotypeScores[variety] = score
				result.Stability[variety] += score * score
			}
			for j, location := range locations {
				component.EnvironmentScores[location] = v.At(j, k) * scale
			}
			result.Components = append(result.Components, component)

			cumulative += explained
			if cumulative >= a.cfg.VarianceThreshold {
				break
			}
		}
	}

	// Most stable first; stability ties go to the variety closer to the
	// grand mean, then alphabetical.
	result.StabilityOrder = append(result.StabilityOrder, varieties...)
	sort.Slice(result.StabilityOrder, func(i, j int) bool {
		vi, vj := result.StabilityOrder[i], result.StabilityOrder[j]
		si, sj := result.Stability[vi], result.Stability[vj]
		if si != sj {
			return si < sj
		}
		gi := math.Abs(result.GenotypeEffects[vi])
		gj := math.Abs(result.GenotypeEffects[vj])
		if gi != gj {
			return gi < gj
		}
		return vi < vj
	})

	a.logger.Debug("AMMI decomposition complete",
		zap.Int("varieties", len(varieties)),
		zap.Int("locations", len(locations)),
		zap.Int("components", len(result.Components)))
	return result, nil
}
