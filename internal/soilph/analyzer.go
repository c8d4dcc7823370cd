// Package soilph classifies soil pH readings and computes lime or
// sulfur amendment recommendations for a target crop. The analyzer is a
// stateless pure function of its inputs and the injected reference
// tables; the only side effect is logging.
package soilph

import (
	"math"

	"go.uber.org/zap"

	"github.com/agrisight/agro-analysis-go/internal/models"
	"github.com/agrisight/agro-analysis-go/internal/reference"
	"github.com/agrisight/agro-analysis-go/pkg/agroerr"
)

// Physically plausible input bounds. Readings outside are rejected with
// a ValidationError before any computation.
const (
	MinPlausiblePH = 2.0
	MaxPlausiblePH = 11.0
)

// Limits are the per-pass safety ceilings for amendment rates.
type Limits struct {
	// MaxLimeTonsPerPass caps a single lime application (tons/acre of
	// material). Arithmetic requiring more flags split applications.
	MaxLimeTonsPerPass float64

	// MaxSulfurLbsPerPass caps a single elemental sulfur application
	// (lbs/acre).
	MaxSulfurLbsPerPass float64
}

// DefaultLimits provides the standard safety ceilings.
var DefaultLimits = Limits{
	MaxLimeTonsPerPass:  6.0,
	MaxSulfurLbsPerPass: 500.0,
}

// Analyzer evaluates soil pH readings against the reference tables.
type Analyzer struct {
	tables *reference.Tables
	limits Limits
	logger *zap.Logger
}

// NewAnalyzer creates a soil pH analyzer over the given reference
// tables. A nil logger disables logging.
func NewAnalyzer(tables *reference.Tables, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{
		tables: tables,
		limits: DefaultLimits,
		logger: logger,
	}
}

// WithLimits overrides the per-pass safety ceilings.
func (a *Analyzer) WithLimits(limits Limits) *Analyzer {
	a.limits = limits
	return a
}

// Analyze classifies a reading and evaluates nutrient availability and
// crop suitability at its pH.
func (a *Analyzer) Analyze(reading models.SoilPHReading, cropType string) (*models.SoilPHAnalysis, error) {
	if err := a.validateReading(reading); err != nil {
		return nil, err
	}

	result := &models.SoilPHAnalysis{
		Classification:       ClassifyPH(reading.PH),
		NutrientAvailability: a.NutrientAvailability(reading.PH),
	}

	pref, known := a.tables.CropOrDefault(cropType)
	if !known {
		result.DefaultsApplied = append(result.DefaultsApplied,
			"unknown crop "+cropType+": using generic "+reference.DefaultCrop+" pH preference")
		a.logger.Warn("unknown crop, substituting default preference",
			zap.String("crop", cropType),
			zap.String("default", reference.DefaultCrop))
	}
	result.CropSuitability = CropSuitability(reading.PH, pref)

	for nutrient, avail := range result.NutrientAvailability {
		if !isFinite(avail) {
			return nil, &agroerr.ComputationError{Op: "nutrient availability " + nutrient, Value: avail}
		}
	}
	if !isFinite(result.CropSuitability) {
		return nil, &agroerr.ComputationError{Op: "crop suitability", Value: result.CropSuitability}
	}

	a.logger.Debug("soil pH analyzed",
		zap.Float64("ph", reading.PH),
		zap.String("classification", string(result.Classification)),
		zap.Float64("suitability", result.CropSuitability))
	return result, nil
}

// RecommendAmendments computes the amendment recommendations that shift
// the reading's pH toward the target. A non-positive target derives the
// target from the crop's optimal range midpoint. The direction of
// correction (lime vs sulfur) follows from the sign of target - current.
func (a *Analyzer) RecommendAmendments(reading models.SoilPHReading, targetPH float64, cropType string) ([]models.PHAmendmentRecommendation, error) {
	if err := a.validateReading(reading); err != nil {
		return nil, err
	}

	var defaults []string
	if targetPH <= 0 {
		pref, known := a.tables.CropOrDefault(cropType)
		if !known {
			defaults = append(defaults,
				"unknown crop "+cropType+": using generic "+reference.DefaultCrop+" pH preference")
		}
		targetPH = (pref.OptimalMin + pref.OptimalMax) / 2
	}
	if targetPH < MinPlausiblePH || targetPH > MaxPlausiblePH {
		return nil, &agroerr.ValidationError{
			Field:  "target_ph",
			Reason: "outside plausible range [2, 11]",
		}
	}

	var (
		recs []models.PHAmendmentRecommendation
		err  error
	)
	switch {
	case reading.PH < targetPH:
		recs, err = a.CalculateLimeRequirement(reading, targetPH)
	case reading.PH > targetPH:
		recs, err = a.CalculateSulfurRequirement(reading, targetPH)
	default:
		return []models.PHAmendmentRecommendation{}, nil
	}
	if err != nil {
		return nil, err
	}

	if len(defaults) > 0 {
		for i := range recs {
			recs[i].DefaultsApplied = append(defaults[:len(defaults):len(defaults)], recs[i].DefaultsApplied...)
		}
	}
	return recs, nil
}

func (a *Analyzer) validateReading(reading models.SoilPHReading) error {
	if math.IsNaN(reading.PH) || reading.PH < MinPlausiblePH || reading.PH > MaxPlausiblePH {
		return &agroerr.ValidationError{
			Field:  "ph",
			Reason: "outside plausible range [2, 11]",
		}
	}
	if math.IsNaN(reading.OrganicMatterPct) || reading.OrganicMatterPct < 0 || reading.OrganicMatterPct > 100 {
		return &agroerr.ValidationError{
			Field:  "organic_matter_pct",
			Reason: "outside range [0, 100]",
		}
	}
	if b := reading.BufferPH; b != nil {
		if math.IsNaN(*b) || *b < MinPlausiblePH || *b > MaxPlausiblePH {
			return &agroerr.ValidationError{
				Field:  "buffer_ph",
				Reason: "outside plausible range [2, 11]",
			}
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
