package models

// MeanStd pairs an arithmetic mean with a sample standard deviation.
// A group with a single observation has standard deviation 0, not NaN.
type MeanStd struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Count  int     `json:"count"`
}

// MultiLocationMeans summarizes the filtered trial data by variety and
// by location, plus the grand mean across all observations.
type MultiLocationMeans struct {
	VarietyMeans  map[string]MeanStd `json:"variety_means"`
	LocationMeans map[string]MeanStd `json:"location_means"`
	GrandMean     float64            `json:"grand_mean"`
	GrandStdDev   float64            `json:"grand_std_dev"`
	Observations  int                `json:"observations"`

	// Optional-trait summaries, present only when the underlying
	// observations carried the trait.
	VarietyQuality map[string]float64 `json:"variety_quality,omitempty"`
	VarietyDisease map[string]float64 `json:"variety_disease,omitempty"`
}

// IPCAComponent is one retained interaction principal component of an
// AMMI decomposition.
type IPCAComponent struct {
	Axis              int                `json:"axis"` // 1-based: IPCA1, IPCA2, ...
	ExplainedVariance float64            `json:"explained_variance"`
	GenotypeScores    map[string]float64 `json:"genotype_scores"`
	EnvironmentScores map[string]float64 `json:"environment_scores"`
}

// AMMIAnalysis holds the additive main effects and multiplicative
// interaction decomposition of a complete GxE submatrix.
type AMMIAnalysis struct {
	GenotypeEffects    map[string]float64    `json:"genotype_effects"`
	EnvironmentEffects map[string]float64    `json:"environment_effects"`
	Interactions       *GxEInteractionMatrix `json:"interactions"`
	Components         []IPCAComponent       `json:"components"`

	// Stability is the sum of squared IPCA scores per variety across the
	// retained axes; lower means more stable across environments.
	Stability map[string]float64 `json:"stability"`

	// StabilityOrder lists varieties from most to least stable, ties
	// broken by lower absolute genotype effect (the variety closer to
	// the grand mean), then by name.
	StabilityOrder []string `json:"stability_order"`
}

// GGECategory classifies a variety on the mean-vs-stability view of a
// GGE biplot.
type GGECategory string

const (
	GGEHighYieldStable   GGECategory = "high-yield-stable"
	GGEHighYieldUnstable GGECategory = "high-yield-unstable"
	GGELowYieldStable    GGECategory = "low-yield-stable"
	GGELowYieldUnstable  GGECategory = "low-yield-unstable"
)

// BiplotPoint is a 2-D projection onto the first two GGE axes.
type BiplotPoint struct {
	PC1 float64 `json:"pc1"`
	PC2 float64 `json:"pc2"`
}

// GGEBiplotData projects genotypes and environments onto the first two
// singular components of the environment-centered GGE matrix.
type GGEBiplotData struct {
	GenotypeScores    map[string]BiplotPoint `json:"genotype_scores"`
	EnvironmentScores map[string]BiplotPoint `json:"environment_scores"`
	ExplainedVariance [2]float64             `json:"explained_variance"`

	// WhichWonWhere maps each location to its best-performing variety
	// (ties broken alphabetically for determinism).
	WhichWonWhere map[string]string `json:"which_won_where"`

	MeanVsStability map[string]GGECategory `json:"mean_vs_stability"`
}

// StabilityMeasure identifies one of the stability statistics computed
// per variety.
type StabilityMeasure string

const (
	MeasureCV                  StabilityMeasure = "coefficient_of_variation"
	MeasureRegressionSlope     StabilityMeasure = "regression_coefficient"
	MeasureRegressionDeviation StabilityMeasure = "deviation_from_regression"
	MeasureShuklaVariance      StabilityMeasure = "shukla_stability_variance"
)

// AdaptationType classifies a variety's response pattern across
// environments.
type AdaptationType string

const (
	AdaptationGeneral           AdaptationType = "general adaptation"
	AdaptationFavorableSpecific AdaptationType = "specific adaptation (favorable environments)"
	AdaptationPoorSpecific      AdaptationType = "specific adaptation (poor environments)"
	AdaptationStable            AdaptationType = "stable"
	AdaptationUnstable          AdaptationType = "unstable"
)

// StabilityAnalysis carries per-variety stability measures, adaptation
// classifications, integer ranks (1 = most stable) and narrative
// recommendations.
type StabilityAnalysis struct {
	Measures        map[string]map[StabilityMeasure]float64 `json:"measures"`
	Adaptation      map[string]AdaptationType               `json:"adaptation"`
	Ranks           map[string]int                          `json:"ranks"`
	Recommendations map[string]string                       `json:"recommendations"`
}

// TrendDirection labels a variety's multi-year yield trend.
type TrendDirection string

const (
	TrendIncreasing   TrendDirection = "increasing"
	TrendDecreasing   TrendDirection = "decreasing"
	TrendFlat         TrendDirection = "flat"
	TrendInsufficient TrendDirection = "insufficient-years"
)

// VarietyRank is one entry of a per-location performance ranking.
type VarietyRank struct {
	Variety   string  `json:"variety"`
	MeanYield float64 `json:"mean_yield"`
	Rank      int     `json:"rank"`
}

// RegionalPerformanceRanking holds per-location rankings and winners,
// per-variety multi-year trends, and per-variety adaptation zones.
type RegionalPerformanceRanking struct {
	LocationRankings map[string][]VarietyRank  `json:"location_rankings"`
	Winners          map[string]string         `json:"winners"`
	Trends           map[string]TrendDirection `json:"trends"`

	// AdaptationZones lists, per variety, the locations where it ranks in
	// the top N and its stability classification is not "unstable".
	AdaptationZones map[string][]string `json:"adaptation_zones"`

	// ZoneClusters groups each variety's adaptation-zone locations by
	// geographic proximity when location coordinates are known; absent
	// otherwise.
	ZoneClusters map[string][][]string `json:"zone_clusters,omitempty"`
}

// TrialAnalysisResult is the umbrella result of the trial analyzer.
// Sub-analyses that could not run on the available data are nil, with
// the reason recorded in NotComputed — never zero-filled placeholders.
type TrialAnalysisResult struct {
	CropType     string                      `json:"crop_type"`
	Means        *MultiLocationMeans         `json:"means"`
	Interactions *GxEInteractionMatrix       `json:"interactions,omitempty"`
	AMMI         *AMMIAnalysis               `json:"ammi,omitempty"`
	GGE          *GGEBiplotData              `json:"gge,omitempty"`
	Stability    *StabilityAnalysis          `json:"stability,omitempty"`
	Rankings     *RegionalPerformanceRanking `json:"rankings,omitempty"`

	// NotComputed maps a sub-analysis name ("interactions", "ammi",
	// "gge", "stability") to the reason it was skipped.
	NotComputed map[string]string `json:"not_computed,omitempty"`
}
