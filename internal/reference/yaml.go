package reference

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadYAML reads calibration tables from a YAML file. Sections absent
// from the file keep their built-in defaults; sections present replace
// the default section wholesale. The merged tables are validated before
// being returned.
func LoadYAML(path string) (*Tables, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read reference tables: %w", err)
	}

	var overrides Tables
	if err := yaml.Unmarshal(raw, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse reference tables: %w", err)
	}

	tables := Default()
	if len(overrides.Crops) > 0 {
		tables.Crops = overrides.Crops
	}
	if len(overrides.NutrientCurves) > 0 {
		tables.NutrientCurves = overrides.NutrientCurves
	}
	if len(overrides.LimeMaterials) > 0 {
		tables.LimeMaterials = overrides.LimeMaterials
	}
	if overrides.Sulfur.Name != "" {
		tables.Sulfur = overrides.Sulfur
	}
	if len(overrides.Textures) > 0 {
		tables.Textures = overrides.Textures
	}
	if len(overrides.BufferCurve.Points) > 0 {
		tables.BufferCurve = overrides.BufferCurve
	}
	if len(overrides.Locations) > 0 {
		tables.Locations = overrides.Locations
	}

	if err := tables.Validate(); err != nil {
		return nil, fmt.Errorf("reference tables from %s: %w", path, err)
	}
	return tables, nil
}
