package models

// VarietyPerformanceObservation is one trial record: a single variety
// grown at a single location in a single year. Immutable once recorded;
// the unit of input to the trial analyzer.
type VarietyPerformanceObservation struct {
	Variety    string `json:"variety"`
	CropType   string `json:"crop_type"`
	LocationID string `json:"location_id"`
	Year       int    `json:"year"`

	YieldValue float64 `json:"yield_value"`

	// Optional measurements; nil means not recorded.
	QualityScore     *float64 `json:"quality_score,omitempty"`
	DiseaseIncidence *float64 `json:"disease_incidence,omitempty"`
	MaturityDays     *int     `json:"maturity_days,omitempty"`
}

// TrialFilter restricts which observations are analyzed. Empty slices
// match everything. If filtering leaves no observations the analyzer
// reports a NoDataError rather than silently returning zeros.
type TrialFilter struct {
	Varieties []string `json:"varieties,omitempty"`
	Locations []string `json:"locations,omitempty"`
	Years     []int    `json:"years,omitempty"`
}

// Matches reports whether an observation passes the filter.
func (f TrialFilter) Matches(obs VarietyPerformanceObservation) bool {
	if len(f.Varieties) > 0 && !containsString(f.Varieties, obs.Variety) {
		return false
	}
	if len(f.Locations) > 0 && !containsString(f.Locations, obs.LocationID) {
		return false
	}
	if len(f.Years) > 0 && !containsInt(f.Years, obs.Year) {
		return false
	}
	return true
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func containsInt(list []int, v int) bool {
	for _, n := range list {
		if n == v {
			return true
		}
	}
	return false
}
