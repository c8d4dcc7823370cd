package soilph

import "github.com/agrisight/agro-analysis-go/internal/reference"

// CropSuitability scores how well a pH suits a crop, in [0,1]. A pH
// inside the crop's optimal range scores exactly 1.0; elsewhere the
// crop's yield-impact curve is interpolated the same way as nutrient
// curves.
func CropSuitability(ph float64, pref reference.CropPHPreference) float64 {
	if ph >= pref.OptimalMin && ph <= pref.OptimalMax {
		return 1.0
	}

	score := pref.YieldCurve.Evaluate(ph)
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
