// Package trial turns raw multi-location, multi-year variety trial
// observations into interaction, stability, and ranking statistics:
// multi-location means, the GxE interaction matrix, AMMI and GGE
// decompositions, per-variety stability measures, and regional
// rankings. The analyzer is stateless: every call is a pure function of
// its input and the injected configuration, with no side effects beyond
// logging.
package trial

import (
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/agrisight/agro-analysis-go/internal/models"
	"github.com/agrisight/agro-analysis-go/pkg/agroerr"
)

// Sub-analysis names used as NotComputed keys on the result.
const (
	SubAnalysisInteractions = "interactions"
	SubAnalysisAMMI         = "ammi"
	SubAnalysisGGE          = "gge"
	SubAnalysisStability    = "stability"
	SubAnalysisShukla       = "shukla_stability_variance"
)

// Config holds the analysis thresholds.
type Config struct {
	// MaxIPCAComponents caps the number of retained interaction
	// principal components (IPCA1, IPCA2, ...).
	MaxIPCAComponents int

	// VarianceThreshold stops retaining components once their cumulative
	// explained interaction variance reaches this fraction.
	VarianceThreshold float64

	// StableCVMax and UnstableCVMin bucket the coefficient of variation
	// (percent): at or below the first a variety is "stable", at or
	// above the second "unstable" regardless of its regression slope.
	StableCVMax   float64
	UnstableCVMin float64

	// SlopeTolerance is the half-width around 1.0 within which the
	// environmental-index regression slope counts as unit response.
	SlopeTolerance float64

	// DeviationMax is the largest mean squared regression residual that
	// still counts as "low deviation" for general adaptation.
	DeviationMax float64

	// TrendMinDelta is the smallest earliest-to-latest-year mean yield
	// difference labeled a trend rather than noise.
	TrendMinDelta float64

	// TopN is how high a variety must rank at a location for that
	// location to count toward its adaptation zone.
	TopN int

	// ZoneRadiusKm is the single-linkage radius for grouping a variety's
	// adaptation-zone locations geographically.
	ZoneRadiusKm float64
}

// DefaultConfig provides the standard analysis thresholds.
func DefaultConfig() Config {
	return Config{
		MaxIPCAComponents: 2,
		VarianceThreshold: 1.0,
		StableCVMax:       10.0,
		UnstableCVMin:     25.0,
		SlopeTolerance:    0.1,
		DeviationMax:      25.0,
		TrendMinDelta:     5.0,
		TopN:              3,
		ZoneRadiusKm:      150.0,
	}
}

// Analyzer computes trial statistics. Location metadata is optional and
// only enriches ranking output (geographic zone clusters); analysis is
// fully defined without it.
type Analyzer struct {
	cfg       Config
	locations map[string]models.TrialLocation
	logger    *zap.Logger
}

// NewAnalyzer creates a trial analyzer. locations may be nil; a nil
// logger disables logging.
func NewAnalyzer(cfg Config, locations map[string]models.TrialLocation, logger *zap.Logger) *Analyzer {
	if cfg.MaxIPCAComponents <= 0 {
		cfg.MaxIPCAComponents = DefaultConfig().MaxIPCAComponents
	}
	if cfg.TopN <= 0 {
		cfg.TopN = DefaultConfig().TopN
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{
		cfg:       cfg,
		locations: locations,
		logger:    logger,
	}
}

// Analyze runs every sub-analysis the filtered data supports. Sub-
// analyses the data cannot support (e.g. AMMI on a single location) are
// reported in the result's NotComputed map instead of failing the call.
// Returns a NoDataError when filtering leaves nothing to analyze and a
// ValidationError for malformed observations.
func (a *Analyzer) Analyze(observations []models.VarietyPerformanceObservation, cropType string, filter *models.TrialFilter) (*models.TrialAnalysisResult, error) {
	if len(observations) == 0 {
		return nil, &agroerr.NoDataError{Reason: "no observations supplied"}
	}
	if err := validateObservations(observations); err != nil {
		return nil, err
	}

	filtered := filterObservations(observations, cropType, filter)
	if len(filtered) == 0 {
		return nil, &agroerr.NoDataError{Reason: fmt.Sprintf("no observations match crop %q and filter", cropType)}
	}

	data := newTrialData(filtered)
	result := &models.TrialAnalysisResult{
		CropType:    cropType,
		Means:       a.ComputeMultiLocationMeans(data),
		NotComputed: map[string]string{},
	}

	if len(data.locations) < 2 || len(data.varieties) < 2 {
		reason := "insufficient environments for interaction analysis: requires at least 2 locations and 2 varieties"
		result.NotComputed[SubAnalysisInteractions] = reason
		result.NotComputed[SubAnalysisAMMI] = reason
		result.NotComputed[SubAnalysisGGE] = reason
		result.NotComputed[SubAnalysisStability] = reason
		a.logger.Info("interaction analyses skipped",
			zap.Int("locations", len(data.locations)),
			zap.Int("varieties", len(data.varieties)))
	} else {
		result.Interactions = a.ComputeInteractionMatrix(data)

		if ammi, err := a.ComputeAMMI(data); err != nil {
			if insufficient := asInsufficient(err); insufficient != nil {
				result.NotComputed[SubAnalysisAMMI] = insufficient.Reason
			} else {
				return nil, err
			}
		} else {
			result.AMMI = ammi
		}

		if gge, err := a.ComputeGGE(data); err != nil {
			if insufficient := asInsufficient(err); insufficient != nil {
				result.NotComputed[SubAnalysisGGE] = insufficient.Reason
			} else {
				return nil, err
			}
		} else {
			result.GGE = gge
		}

		stability, err := a.ComputeStability(data)
		if err != nil {
			return nil, err
		}
		result.Stability = stability
		if len(data.varieties) < 3 {
			result.NotComputed[SubAnalysisShukla] = "Shukla stability variance requires at least 3 varieties"
		}
	}

	result.Rankings = a.GenerateRankings(data, result.Stability)

	if err := checkResultFinite(result); err != nil {
		a.logger.Error("non-finite value in analysis result", zap.Error(err))
		return nil, err
	}

	a.logger.Debug("trial analysis complete",
		zap.String("crop", cropType),
		zap.Int("observations", len(filtered)),
		zap.Int("varieties", len(data.varieties)),
		zap.Int("locations", len(data.locations)))
	return result, nil
}

func validateObservations(observations []models.VarietyPerformanceObservation) error {
	for i, obs := range observations {
		if obs.Variety == "" {
			return &agroerr.ValidationError{
				Field:  fmt.Sprintf("observations[%d].variety", i),
				Reason: "empty variety identifier",
			}
		}
		if obs.LocationID == "" {
			return &agroerr.ValidationError{
				Field:  fmt.Sprintf("observations[%d].location_id", i),
				Reason: "empty location identifier",
			}
		}
		if math.IsNaN(obs.YieldValue) || math.IsInf(obs.YieldValue, 0) || obs.YieldValue < 0 {
			return &agroerr.ValidationError{
				Field:  fmt.Sprintf("observations[%d].yield_value", i),
				Reason: "yield must be finite and non-negative",
			}
		}
	}
	return nil
}

func filterObservations(observations []models.VarietyPerformanceObservation, cropType string, filter *models.TrialFilter) []models.VarietyPerformanceObservation {
	out := make([]models.VarietyPerformanceObservation, 0, len(observations))
	for _, obs := range observations {
		if cropType != "" && obs.CropType != cropType {
			continue
		}
		if filter != nil && !filter.Matches(obs) {
			continue
		}
		out = append(out, obs)
	}
	return out
}

// trialData is the grouped view of the filtered observations every
// sub-analysis works from. Cell means are observation means per
// (variety, location) pair; pairs with no observation have no cell.
type trialData struct {
	observations []models.VarietyPerformanceObservation

	varieties []string // sorted
	locations []string // sorted
	years     []int    // sorted

	yieldsByVariety  map[string][]float64
	yieldsByLocation map[string][]float64
	cellYields       map[models.MatrixCell][]float64
	cellMeans        map[models.MatrixCell]float64

	varietyMeans  map[string]float64
	locationMeans map[string]float64
	grandMean     float64
}

func newTrialData(observations []models.VarietyPerformanceObservation) *trialData {
	d := &trialData{
		observations:     observations,
		yieldsByVariety:  make(map[string][]float64),
		yieldsByLocation: make(map[string][]float64),
		cellYields:       make(map[models.MatrixCell][]float64),
		cellMeans:        make(map[models.MatrixCell]float64),
		varietyMeans:     make(map[string]float64),
		locationMeans:    make(map[string]float64),
	}

	yearSet := make(map[int]struct{})
	var total float64
	for _, obs := range observations {
		d.yieldsByVariety[obs.Variety] = append(d.yieldsByVariety[obs.Variety], obs.YieldValue)
		d.yieldsByLocation[obs.LocationID] = append(d.yieldsByLocation[obs.LocationID], obs.YieldValue)
		cell := models.MatrixCell{Variety: obs.Variety, Location: obs.LocationID}
		d.cellYields[cell] = append(d.cellYields[cell], obs.YieldValue)
		yearSet[obs.Year] = struct{}{}
		total += obs.YieldValue
	}
	d.grandMean = total / float64(len(observations))

	for variety, yields := range d.yieldsByVariety {
		d.varieties = append(d.varieties, variety)
		d.varietyMeans[variety] = mean(yields)
	}
	for location, yields := range d.yieldsByLocation {
		d.locations = append(d.locations, location)
		d.locationMeans[location] = mean(yields)
	}
	for cell, yields := range d.cellYields {
		d.cellMeans[cell] = mean(yields)
	}
	for year := range yearSet {
		d.years = append(d.years, year)
	}
	sort.Strings(d.varieties)
	sort.Strings(d.locations)
	sort.Ints(d.years)
	return d
}

// cellMean returns the mean yield for a (variety, location) pair; the
// second return is false when the pair has no observation.
func (d *trialData) cellMean(variety, location string) (float64, bool) {
	v, ok := d.cellMeans[models.MatrixCell{Variety: variety, Location: location}]
	return v, ok
}

// varietyCellMeans returns one mean per location the variety was
// observed at, ordered by the sorted location list, together with the
// matching location IDs.
func (d *trialData) varietyCellMeans(variety string) (locations []string, means []float64) {
	for _, loc := range d.locations {
		if m, ok := d.cellMean(variety, loc); ok {
			locations = append(locations, loc)
			means = append(means, m)
		}
	}
	return locations, means
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func asInsufficient(err error) *agroerr.InsufficientDataError {
	if e, ok := err.(*agroerr.InsufficientDataError); ok {
		return e
	}
	return nil
}
