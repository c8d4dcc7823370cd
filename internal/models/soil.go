package models

import "time"

// SoilPHReading is a single soil test result. Input only, never mutated.
type SoilPHReading struct {
	PH               float64   `json:"ph"`
	OrganicMatterPct float64   `json:"organic_matter_pct"`
	BufferPH         *float64  `json:"buffer_ph,omitempty"`
	Texture          string    `json:"texture"`
	MeasuredAt       time.Time `json:"measured_at"`
}

// PHClassification is one of the ten soil reaction classes.
type PHClassification string

const (
	PHUltraAcidic        PHClassification = "ultra acidic"
	PHExtremelyAcidic    PHClassification = "extremely acidic"
	PHVeryStronglyAcidic PHClassification = "very strongly acidic"
	PHStronglyAcidic     PHClassification = "strongly acidic"
	PHModeratelyAcidic   PHClassification = "moderately acidic"
	PHSlightlyAcidic     PHClassification = "slightly acidic"
	PHNeutral            PHClassification = "neutral"
	PHSlightlyAlkaline   PHClassification = "slightly alkaline"
	PHModeratelyAlkaline PHClassification = "moderately alkaline"
	PHStronglyAlkaline   PHClassification = "strongly alkaline"
)

// SoilPHAnalysis is the result of analyzing one reading against a crop.
type SoilPHAnalysis struct {
	Classification       PHClassification   `json:"classification"`
	NutrientAvailability map[string]float64 `json:"nutrient_availability"`
	CropSuitability      float64            `json:"crop_suitability"`

	// DefaultsApplied records any documented fallback substituted for an
	// unknown input (e.g. unknown crop or texture); empty when the
	// reading matched the reference tables exactly.
	DefaultsApplied []string `json:"defaults_applied,omitempty"`
}

// ApplicationTiming is the recommended season for an amendment pass.
type ApplicationTiming string

const (
	TimingFall     ApplicationTiming = "fall"
	TimingSpring   ApplicationTiming = "spring"
	TimingPrePlant ApplicationTiming = "pre-plant"
)

// Amendment rate units.
const (
	RateUnitTonsPerAcre = "tons/acre"
	RateUnitLbsPerAcre  = "lbs/acre"
)

// PHAmendmentRecommendation is a single material recommendation for
// shifting soil pH toward a target. One reading can yield several, one
// per viable material, sorted by cost.
type PHAmendmentRecommendation struct {
	Material         string            `json:"material"`
	Rate             float64           `json:"rate"`
	RateUnit         string            `json:"rate_unit"`
	ExpectedPHChange float64           `json:"expected_ph_change"`
	CostPerAcre      float64           `json:"cost_per_acre"`
	Timing           ApplicationTiming `json:"timing"`

	// SplitApplication is set when the uncapped rate exceeded the
	// single-pass safety ceiling; the emitted rate is the capped pass and
	// further passes in later seasons are required to reach the target.
	SplitApplication bool `json:"split_application,omitempty"`

	// DefaultsApplied mirrors SoilPHAnalysis.DefaultsApplied.
	DefaultsApplied []string `json:"defaults_applied,omitempty"`
}
