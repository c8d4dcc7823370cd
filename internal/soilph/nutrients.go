package soilph

// NutrientAvailability evaluates every nutrient availability curve at
// the given pH. Each value is a fraction in [0,1]; pH values outside a
// curve's defined domain clamp to the nearest endpoint.
func (a *Analyzer) NutrientAvailability(ph float64) map[string]float64 {
	out := make(map[string]float64, len(a.tables.NutrientCurves))
	for nutrient, curve := range a.tables.NutrientCurves {
		out[nutrient] = curve.Evaluate(ph)
	}
	return out
}
