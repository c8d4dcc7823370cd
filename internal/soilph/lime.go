package soilph

import (
	"sort"

	"go.uber.org/zap"

	"github.com/agrisight/agro-analysis-go/internal/models"
	"github.com/agrisight/agro-analysis-go/internal/reference"
	"github.com/agrisight/agro-analysis-go/pkg/agroerr"
)

// Organic matter buffers pH change; the factor scales lime need around
// a 2% OM baseline and is clamped to keep extreme readings from
// dominating the texture factor.
const (
	omBaselinePct  = 2.0
	omSlopePerPct  = 0.015
	omFactorFloor  = 0.9
	omFactorCeil   = 1.5
	bufferTargetPH = 6.5 // target the buffer-pH lookup table is calibrated for
)

func organicMatterFactor(omPct float64) float64 {
	f := 1 + omSlopePerPct*(omPct-omBaselinePct)
	if f < omFactorFloor {
		return omFactorFloor
	}
	if f > omFactorCeil {
		return omFactorCeil
	}
	return f
}

// CalculateLimeRequirement computes, for each candidate liming
// material, the application rate needed to raise the reading's pH to
// the target. Returns an empty list when no lime is needed (current pH
// at or above target). Two calculation paths:
//
//   - buffer-pH method when the reading carries a buffer pH and current
//     pH is below the table's calibration target: base CCE rate from the
//     buffer-pH lookup, scaled linearly for targets other than 6.5;
//   - simplified method otherwise: (target-current) scaled by the
//     texture buffer factor and the organic-matter factor.
//
// Rates above the single-pass ceiling are capped with the expected pH
// change scaled down proportionally and the split-application flag set.
func (a *Analyzer) CalculateLimeRequirement(reading models.SoilPHReading, targetPH float64) ([]models.PHAmendmentRecommendation, error) {
	if err := a.validateReading(reading); err != nil {
		return nil, err
	}
	if reading.PH >= targetPH {
		return []models.PHAmendmentRecommendation{}, nil
	}

	var defaults []string
	texture, known := a.tables.TextureOrDefault(reading.Texture)
	if !known {
		defaults = append(defaults,
			"unknown soil texture "+reading.Texture+": using "+reference.DefaultTexture+" buffer factor")
		a.logger.Warn("unknown soil texture, substituting default",
			zap.String("texture", reading.Texture),
			zap.String("default", reference.DefaultTexture))
	}

	omFactor := organicMatterFactor(reading.OrganicMatterPct)
	phDeficit := targetPH - reading.PH

	// Base requirement in tons of pure calcium carbonate equivalent.
	var baseCCE float64
	if reading.BufferPH != nil && reading.PH < bufferTargetPH {
		base := a.tables.BufferCurve.Evaluate(*reading.BufferPH)
		baseCCE = base * phDeficit / (bufferTargetPH - reading.PH)
	} else {
		baseCCE = phDeficit * texture.BufferFactor * omFactor
	}
	if !isFinite(baseCCE) || baseCCE < 0 {
		return nil, &agroerr.ComputationError{Op: "lime base requirement", Value: baseCCE}
	}
	if baseCCE == 0 {
		return []models.PHAmendmentRecommendation{}, nil
	}

	recs := make([]models.PHAmendmentRecommendation, 0, len(a.tables.LimeMaterials))
	for _, material := range a.tables.LimeMaterials {
		rate := baseCCE / (material.NeutralizingValue / 100)

		rec := models.PHAmendmentRecommendation{
			Material:         material.Name,
			Rate:             rate,
			RateUnit:         models.RateUnitTonsPerAcre,
			ExpectedPHChange: phDeficit,
			Timing:           material.Timing,
			DefaultsApplied:  defaults,
		}
		if rate > a.limits.MaxLimeTonsPerPass {
			rec.Rate = a.limits.MaxLimeTonsPerPass
			rec.ExpectedPHChange = phDeficit * a.limits.MaxLimeTonsPerPass / rate
			rec.SplitApplication = true
		}
		rec.CostPerAcre = rec.Rate * material.CostPerTon

		if !isFinite(rec.Rate) || !isFinite(rec.ExpectedPHChange) || !isFinite(rec.CostPerAcre) {
			return nil, &agroerr.ComputationError{Op: "lime rate for " + material.Name, Value: rec.Rate}
		}
		recs = append(recs, rec)
	}

	// Cheapest material first.
	sort.Slice(recs, func(i, j int) bool { return recs[i].CostPerAcre < recs[j].CostPerAcre })

	a.logger.Debug("lime requirement calculated",
		zap.Float64("current_ph", reading.PH),
		zap.Float64("target_ph", targetPH),
		zap.Float64("base_cce_tons", baseCCE),
		zap.Int("materials", len(recs)))
	return recs, nil
}
