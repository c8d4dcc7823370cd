package soilph

import (
	"go.uber.org/zap"

	"github.com/agrisight/agro-analysis-go/internal/models"
	"github.com/agrisight/agro-analysis-go/internal/reference"
	"github.com/agrisight/agro-analysis-go/pkg/agroerr"
)

// CalculateSulfurRequirement computes the elemental sulfur application
// that lowers the reading's pH to the target — the alkaline-correction
// mirror of CalculateLimeRequirement. Returns an empty list when the
// current pH is already at or below target. The rate is capped at the
// single-pass ceiling with the split-application flag set when the
// arithmetic requires more.
func (a *Analyzer) CalculateSulfurRequirement(reading models.SoilPHReading, targetPH float64) ([]models.PHAmendmentRecommendation, error) {
	if err := a.validateReading(reading); err != nil {
		return nil, err
	}
	if reading.PH <= targetPH {
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

	phExcess := reading.PH - targetPH
	rate := phExcess * texture.SulfurFactor * organicMatterFactor(reading.OrganicMatterPct)
	if !isFinite(rate) || rate < 0 {
		return nil, &agroerr.ComputationError{Op: "sulfur requirement", Value: rate}
	}

	rec := models.PHAmendmentRecommendation{
		Material:         a.tables.Sulfur.Name,
		Rate:             rate,
		RateUnit:         models.RateUnitLbsPerAcre,
		ExpectedPHChange: -phExcess,
		Timing:           a.tables.Sulfur.Timing,
		DefaultsApplied:  defaults,
	}
	if rate > a.limits.MaxSulfurLbsPerPass {
		rec.Rate = a.limits.MaxSulfurLbsPerPass
		rec.ExpectedPHChange = -phExcess * a.limits.MaxSulfurLbsPerPass / rate
		rec.SplitApplication = true
	}
	rec.CostPerAcre = rec.Rate * a.tables.Sulfur.CostPerLb

	a.logger.Debug("sulfur requirement calculated",
		zap.Float64("current_ph", reading.PH),
		zap.Float64("target_ph", targetPH),
		zap.Float64("rate_lbs", rec.Rate))
	return []models.PHAmendmentRecommendation{rec}, nil
}
