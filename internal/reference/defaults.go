package reference

import "github.com/agrisight/agro-analysis-go/internal/models"

// Default returns the built-in calibration tables. Values follow common
// extension-service guidance; deployments override them from YAML or a
// SQLite store without touching analyzer code.
func Default() *Tables {
	return &Tables{
		Crops:          defaultCrops(),
		NutrientCurves: defaultNutrientCurves(),
		LimeMaterials:  defaultLimeMaterials(),
		Sulfur: SulfurMaterial{
			Name:      "elemental sulfur",
			CostPerLb: 0.62,
			Timing:    models.TimingSpring,
		},
		Textures:    defaultTextures(),
		BufferCurve: defaultBufferCurve(),
		Locations:   map[string]models.TrialLocation{},
	}
}

func defaultCrops() map[string]CropPHPreference {
	return map[string]CropPHPreference{
		"corn": {
			Crop:       "corn",
			OptimalMin: 6.0, OptimalMax: 6.8,
			AcceptableMin: 5.8, AcceptableMax: 7.5,
			CriticalMin: 5.0, CriticalMax: 8.5,
			YieldCurve: NewCurve(
				CurvePoint{4.5, 0.30}, CurvePoint{5.0, 0.50}, CurvePoint{5.5, 0.75},
				CurvePoint{6.0, 1.00}, CurvePoint{6.8, 1.00}, CurvePoint{7.5, 0.85},
				CurvePoint{8.0, 0.70}, CurvePoint{8.5, 0.55},
			),
		},
		"soybean": {
			Crop:       "soybean",
			OptimalMin: 6.0, OptimalMax: 6.8,
			AcceptableMin: 5.8, AcceptableMax: 7.2,
			CriticalMin: 5.2, CriticalMax: 8.0,
			YieldCurve: NewCurve(
				CurvePoint{4.5, 0.25}, CurvePoint{5.2, 0.55}, CurvePoint{5.8, 0.85},
				CurvePoint{6.0, 1.00}, CurvePoint{6.8, 1.00}, CurvePoint{7.2, 0.90},
				CurvePoint{8.0, 0.65}, CurvePoint{8.5, 0.50},
			),
		},
		"wheat": {
			Crop:       "wheat",
			OptimalMin: 6.0, OptimalMax: 7.0,
			AcceptableMin: 5.5, AcceptableMax: 7.5,
			CriticalMin: 5.0, CriticalMax: 8.5,
			YieldCurve: NewCurve(
				CurvePoint{4.5, 0.35}, CurvePoint{5.0, 0.55}, CurvePoint{5.5, 0.80},
				CurvePoint{6.0, 1.00}, CurvePoint{7.0, 1.00}, CurvePoint{7.5, 0.90},
				CurvePoint{8.5, 0.70},
			),
		},
		"alfalfa": {
			Crop:       "alfalfa",
			OptimalMin: 6.5, OptimalMax: 7.5,
			AcceptableMin: 6.2, AcceptableMax: 7.8,
			CriticalMin: 5.5, CriticalMax: 8.5,
			YieldCurve: NewCurve(
				CurvePoint{5.0, 0.20}, CurvePoint{5.5, 0.40}, CurvePoint{6.0, 0.70},
				CurvePoint{6.5, 1.00}, CurvePoint{7.5, 1.00}, CurvePoint{8.0, 0.85},
				CurvePoint{8.5, 0.70},
			),
		},
		"barley": {
			Crop:       "barley",
			OptimalMin: 6.3, OptimalMax: 7.2,
			AcceptableMin: 6.0, AcceptableMax: 7.8,
			CriticalMin: 5.3, CriticalMax: 8.5,
			YieldCurve: NewCurve(
				CurvePoint{5.0, 0.35}, CurvePoint{5.8, 0.70}, CurvePoint{6.3, 1.00},
				CurvePoint{7.2, 1.00}, CurvePoint{7.8, 0.90}, CurvePoint{8.5, 0.70},
			),
		},
		"potato": {
			Crop:       "potato",
			OptimalMin: 5.0, OptimalMax: 6.0,
			AcceptableMin: 4.8, AcceptableMax: 6.5,
			CriticalMin: 4.2, CriticalMax: 7.5,
			YieldCurve: NewCurve(
				CurvePoint{4.2, 0.55}, CurvePoint{4.8, 0.85}, CurvePoint{5.0, 1.00},
				CurvePoint{6.0, 1.00}, CurvePoint{6.5, 0.85}, CurvePoint{7.5, 0.60},
			),
		},
		"blueberry": {
			Crop:       "blueberry",
			OptimalMin: 4.5, OptimalMax: 5.5,
			AcceptableMin: 4.0, AcceptableMax: 5.8,
			CriticalMin: 3.8, CriticalMax: 6.5,
			YieldCurve: NewCurve(
				CurvePoint{3.8, 0.60}, CurvePoint{4.5, 1.00}, CurvePoint{5.5, 1.00},
				CurvePoint{5.8, 0.80}, CurvePoint{6.5, 0.40}, CurvePoint{7.0, 0.20},
			),
		},
		"cotton": {
			Crop:       "cotton",
			OptimalMin: 5.8, OptimalMax: 7.0,
			AcceptableMin: 5.5, AcceptableMax: 7.5,
			CriticalMin: 5.0, CriticalMax: 8.5,
			YieldCurve: NewCurve(
				CurvePoint{5.0, 0.45}, CurvePoint{5.5, 0.75}, CurvePoint{5.8, 1.00},
				CurvePoint{7.0, 1.00}, CurvePoint{7.5, 0.90}, CurvePoint{8.5, 0.70},
			),
		},
		// Generic fallback used when the requested crop is not in the
		// table; substitutions are flagged on the result.
		DefaultCrop: {
			Crop:       DefaultCrop,
			OptimalMin: 6.0, OptimalMax: 7.0,
			AcceptableMin: 5.5, AcceptableMax: 7.5,
			CriticalMin: 5.0, CriticalMax: 8.5,
			YieldCurve: NewCurve(
				CurvePoint{4.5, 0.35}, CurvePoint{5.0, 0.55}, CurvePoint{5.5, 0.80},
				CurvePoint{6.0, 1.00}, CurvePoint{7.0, 1.00}, CurvePoint{7.5, 0.85},
				CurvePoint{8.5, 0.60},
			),
		},
	}
}

// Nutrient availability as a fraction of maximum, by pH. Shapes are
// agriculturally directional: phosphorus peaks near pH 6.5-7.0,
// micronutrients other than molybdenum fall as pH rises, molybdenum and
// the base cations rise with pH.
func defaultNutrientCurves() map[string]Curve {
	return map[string]Curve{
		"phosphorus": NewCurve(
			CurvePoint{4.0, 0.20}, CurvePoint{5.0, 0.30}, CurvePoint{5.5, 0.45},
			CurvePoint{6.0, 0.70}, CurvePoint{6.5, 1.00}, CurvePoint{7.0, 1.00},
			CurvePoint{7.5, 0.80}, CurvePoint{8.0, 0.55}, CurvePoint{8.5, 0.40},
			CurvePoint{9.0, 0.30},
		),
		"potassium": NewCurve(
			CurvePoint{4.0, 0.50}, CurvePoint{5.0, 0.70}, CurvePoint{6.0, 0.90},
			CurvePoint{6.5, 1.00}, CurvePoint{7.5, 1.00}, CurvePoint{9.0, 0.95},
		),
		"calcium": NewCurve(
			CurvePoint{4.0, 0.30}, CurvePoint{5.0, 0.50}, CurvePoint{6.0, 0.75},
			CurvePoint{7.0, 0.95}, CurvePoint{8.0, 1.00}, CurvePoint{9.0, 1.00},
		),
		"magnesium": NewCurve(
			CurvePoint{4.0, 0.35}, CurvePoint{5.0, 0.55}, CurvePoint{6.0, 0.80},
			CurvePoint{7.0, 0.95}, CurvePoint{8.0, 1.00}, CurvePoint{9.0, 1.00},
		),
		"iron": NewCurve(
			CurvePoint{4.0, 1.00}, CurvePoint{5.0, 1.00}, CurvePoint{6.0, 0.90},
			CurvePoint{6.5, 0.80}, CurvePoint{7.0, 0.60}, CurvePoint{7.5, 0.40},
			CurvePoint{8.0, 0.25}, CurvePoint{9.0, 0.10},
		),
		"manganese": NewCurve(
			CurvePoint{4.0, 1.00}, CurvePoint{5.0, 1.00}, CurvePoint{6.0, 0.80},
			CurvePoint{6.5, 0.65}, CurvePoint{7.0, 0.50}, CurvePoint{7.5, 0.35},
			CurvePoint{8.0, 0.20}, CurvePoint{9.0, 0.10},
		),
		"zinc": NewCurve(
			CurvePoint{4.0, 1.00}, CurvePoint{5.0, 0.95}, CurvePoint{6.0, 0.85},
			CurvePoint{6.5, 0.75}, CurvePoint{7.0, 0.60}, CurvePoint{7.5, 0.45},
			CurvePoint{8.0, 0.30}, CurvePoint{9.0, 0.15},
		),
		"copper": NewCurve(
			CurvePoint{4.0, 1.00}, CurvePoint{5.0, 0.95}, CurvePoint{6.0, 0.85},
			CurvePoint{7.0, 0.70}, CurvePoint{8.0, 0.50}, CurvePoint{9.0, 0.35},
		),
		"boron": NewCurve(
			CurvePoint{4.0, 1.00}, CurvePoint{5.0, 0.95}, CurvePoint{6.0, 0.85},
			CurvePoint{7.0, 0.70}, CurvePoint{8.0, 0.45}, CurvePoint{9.0, 0.25},
		),
		"molybdenum": NewCurve(
			CurvePoint{4.0, 0.10}, CurvePoint{5.0, 0.25}, CurvePoint{6.0, 0.50},
			CurvePoint{7.0, 0.80}, CurvePoint{8.0, 1.00}, CurvePoint{9.0, 1.00},
		),
	}
}

func defaultLimeMaterials() []LimeMaterial {
	return []LimeMaterial{
		{Name: "agricultural limestone", NeutralizingValue: 90, CostPerTon: 45, Timing: models.TimingFall},
		{Name: "dolomitic lime", NeutralizingValue: 100, CostPerTon: 52, Timing: models.TimingFall},
		{Name: "pelletized lime", NeutralizingValue: 100, CostPerTon: 140, Timing: models.TimingSpring},
		{Name: "hydrated lime", NeutralizingValue: 135, CostPerTon: 185, Timing: models.TimingPrePlant},
	}
}

func defaultTextures() map[string]TextureProfile {
	return map[string]TextureProfile{
		"sand":       {Texture: "sand", BufferFactor: 1.0, SulfurFactor: 250},
		"sandy loam": {Texture: "sandy loam", BufferFactor: 1.3, SulfurFactor: 300},
		"loam":       {Texture: "loam", BufferFactor: 1.6, SulfurFactor: 350},
		"silt loam":  {Texture: "silt loam", BufferFactor: 1.9, SulfurFactor: 380},
		"clay loam":  {Texture: "clay loam", BufferFactor: 2.3, SulfurFactor: 420},
		"clay":       {Texture: "clay", BufferFactor: 2.7, SulfurFactor: 460},
	}
}

// SMP-style buffer pH to tons of pure CCE per acre, calibrated for a
// target pH of 6.5.
func defaultBufferCurve() Curve {
	return NewCurve(
		CurvePoint{5.6, 6.6}, CurvePoint{5.8, 5.7}, CurvePoint{6.0, 4.7},
		CurvePoint{6.2, 3.8}, CurvePoint{6.4, 2.8}, CurvePoint{6.6, 1.9},
		CurvePoint{6.8, 1.0}, CurvePoint{7.0, 0.0},
	)
}
