package reference

import (
	"fmt"

	"github.com/agrisight/agro-analysis-go/internal/models"
)

// Documented fallbacks substituted when an input names something the
// tables do not carry. Substitutions are always flagged on the result.
const (
	DefaultCrop    = "field crop"
	DefaultTexture = "loam"
)

// CropPHPreference describes a crop's pH tolerance: optimal and
// acceptable ranges, critical limits, and a yield-impact curve
// (pH -> fraction of attainable yield).
type CropPHPreference struct {
	Crop          string  `yaml:"crop" json:"crop"`
	OptimalMin    float64 `yaml:"optimal_min" json:"optimal_min"`
	OptimalMax    float64 `yaml:"optimal_max" json:"optimal_max"`
	AcceptableMin float64 `yaml:"acceptable_min" json:"acceptable_min"`
	AcceptableMax float64 `yaml:"acceptable_max" json:"acceptable_max"`
	CriticalMin   float64 `yaml:"critical_min" json:"critical_min"`
	CriticalMax   float64 `yaml:"critical_max" json:"critical_max"`
	YieldCurve    Curve   `yaml:"yield_curve" json:"yield_curve"`
}

// LimeMaterial describes one liming material. NeutralizingValue is the
// material's effectiveness relative to pure calcium carbonate, as a
// percentage (CCE).
type LimeMaterial struct {
	Name              string                   `yaml:"name" json:"name"`
	NeutralizingValue float64                  `yaml:"neutralizing_value" json:"neutralizing_value"`
	CostPerTon        float64                  `yaml:"cost_per_ton" json:"cost_per_ton"`
	Timing            models.ApplicationTiming `yaml:"timing" json:"timing"`
}

// SulfurMaterial describes the acidifying amendment for alkaline soils.
type SulfurMaterial struct {
	Name      string                   `yaml:"name" json:"name"`
	CostPerLb float64                  `yaml:"cost_per_lb" json:"cost_per_lb"`
	Timing    models.ApplicationTiming `yaml:"timing" json:"timing"`
}

// TextureProfile carries the buffering behavior of one soil texture
// class. BufferFactor is tons of CCE per acre required to raise pH one
// unit; SulfurFactor is lbs of elemental sulfur per acre to lower pH one
// unit. Clay and high-organic-matter soils buffer more strongly.
type TextureProfile struct {
	Texture      string  `yaml:"texture" json:"texture"`
	BufferFactor float64 `yaml:"buffer_factor" json:"buffer_factor"`
	SulfurFactor float64 `yaml:"sulfur_factor" json:"sulfur_factor"`
}

// Tables aggregates every reference table the analyzers consume.
type Tables struct {
	Crops          map[string]CropPHPreference     `yaml:"crops" json:"crops"`
	NutrientCurves map[string]Curve                `yaml:"nutrient_curves" json:"nutrient_curves"`
	LimeMaterials  []LimeMaterial                  `yaml:"lime_materials" json:"lime_materials"`
	Sulfur         SulfurMaterial                  `yaml:"sulfur" json:"sulfur"`
	Textures       map[string]TextureProfile       `yaml:"textures" json:"textures"`
	BufferCurve    Curve                           `yaml:"buffer_curve" json:"buffer_curve"`
	Locations      map[string]models.TrialLocation `yaml:"locations" json:"locations"`
}

// CropOrDefault looks up a crop's pH preference, falling back to the
// generic field-crop profile. The second return is false when the
// fallback was substituted.
func (t *Tables) CropOrDefault(crop string) (CropPHPreference, bool) {
	if pref, ok := t.Crops[crop]; ok {
		return pref, true
	}
	return t.Crops[DefaultCrop], false
}

// TextureOrDefault looks up a texture profile, falling back to loam.
// The second return is false when the fallback was substituted.
func (t *Tables) TextureOrDefault(texture string) (TextureProfile, bool) {
	if prof, ok := t.Textures[texture]; ok {
		return prof, true
	}
	return t.Textures[DefaultTexture], false
}

// Validate checks structural integrity of the tables: curves sorted and
// finite, nutrient fractions within [0,1], required fallback entries
// present, and material properties positive.
func (t *Tables) Validate() error {
	if _, ok := t.Crops[DefaultCrop]; !ok {
		return fmt.Errorf("crops table is missing the %q fallback entry", DefaultCrop)
	}
	if _, ok := t.Textures[DefaultTexture]; !ok {
		return fmt.Errorf("textures table is missing the %q fallback entry", DefaultTexture)
	}
	for name, pref := range t.Crops {
		if err := pref.YieldCurve.Validate(); err != nil {
			return fmt.Errorf("crop %q yield curve: %w", name, err)
		}
		if pref.OptimalMin > pref.OptimalMax {
			return fmt.Errorf("crop %q has inverted optimal range", name)
		}
	}
	for name, curve := range t.NutrientCurves {
		if err := curve.Validate(); err != nil {
			return fmt.Errorf("nutrient %q curve: %w", name, err)
		}
		for _, p := range curve.Points {
			if p.Value < 0 || p.Value > 1 {
				return fmt.Errorf("nutrient %q availability %.2f at pH %.1f outside [0,1]", name, p.Value, p.PH)
			}
		}
	}
	if len(t.LimeMaterials) == 0 {
		return fmt.Errorf("lime materials table is empty")
	}
	for _, m := range t.LimeMaterials {
		if m.NeutralizingValue <= 0 {
			return fmt.Errorf("lime material %q has non-positive neutralizing value", m.Name)
		}
		if m.CostPerTon < 0 {
			return fmt.Errorf("lime material %q has negative cost", m.Name)
		}
	}
	for name, prof := range t.Textures {
		if prof.BufferFactor <= 0 || prof.SulfurFactor <= 0 {
			return fmt.Errorf("texture %q has non-positive buffer factors", name)
		}
	}
	if err := t.BufferCurve.Validate(); err != nil {
		return fmt.Errorf("buffer-pH curve: %w", err)
	}
	return nil
}
