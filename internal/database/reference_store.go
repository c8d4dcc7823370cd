package database

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/agrisight/agro-analysis-go/internal/models"
	"github.com/agrisight/agro-analysis-go/internal/reference"
)

// LoadTables reads calibration tables from the store. Sections with no
// rows keep their built-in defaults, matching the YAML loader's merge
// semantics. The merged tables are validated before being returned.
func LoadTables(db *sql.DB) (*reference.Tables, error) {
	tables := reference.Default()

	crops, err := loadCrops(db)
	if err != nil {
		return nil, err
	}
	if len(crops) > 0 {
		tables.Crops = crops
	}

	nutrients, err := loadNutrientCurves(db)
	if err != nil {
		return nil, err
	}
	if len(nutrients) > 0 {
		tables.NutrientCurves = nutrients
	}

	limes, err := loadLimeMaterials(db)
	if err != nil {
		return nil, err
	}
	if len(limes) > 0 {
		tables.LimeMaterials = limes
	}

	sulfur, ok, err := loadSulfur(db)
	if err != nil {
		return nil, err
	}
	if ok {
		tables.Sulfur = sulfur
	}

	textures, err := loadTextures(db)
	if err != nil {
		return nil, err
	}
	if len(textures) > 0 {
		tables.Textures = textures
	}

	buffer, ok, err := loadBufferCurve(db)
	if err != nil {
		return nil, err
	}
	if ok {
		tables.BufferCurve = buffer
	}

	locations, err := loadLocations(db)
	if err != nil {
		return nil, err
	}
	if len(locations) > 0 {
		tables.Locations = locations
	}

	if err := tables.Validate(); err != nil {
		return nil, fmt.Errorf("reference store: %w", err)
	}
	return tables, nil
}

// SeedTables writes a complete set of calibration tables into the
// store, replacing any existing rows.
func SeedTables(db *sql.DB, tables *reference.Tables) error {
	if err := tables.Validate(); err != nil {
		return fmt.Errorf("refusing to seed invalid tables: %w", err)
	}

	return Transaction(db, func(tx *sql.Tx) error {
		for _, table := range []string{
			"crop_ph_preferences", "nutrient_curves", "lime_materials",
			"sulfur_material", "soil_textures", "buffer_curve", "trial_locations",
		} {
			if _, err := tx.Exec("DELETE FROM " + table); err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}

		for crop, pref := range tables.Crops {
			curve, err := json.Marshal(pref.YieldCurve.Points)
			if err != nil {
				return fmt.Errorf("failed to encode yield curve for %s: %w", crop, err)
			}
			if _, err := tx.Exec(
				`INSERT INTO crop_ph_preferences
				 (crop, optimal_min, optimal_max, acceptable_min, acceptable_max, critical_min, critical_max, yield_curve_json)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				crop, pref.OptimalMin, pref.OptimalMax, pref.AcceptableMin,
				pref.AcceptableMax, pref.CriticalMin, pref.CriticalMax, string(curve),
			); err != nil {
				return fmt.Errorf("failed to insert crop %s: %w", crop, err)
			}
		}

		for nutrient, curve := range tables.NutrientCurves {
			points, err := json.Marshal(curve.Points)
			if err != nil {
				return fmt.Errorf("failed to encode curve for %s: %w", nutrient, err)
			}
			if _, err := tx.Exec(
				"INSERT INTO nutrient_curves (nutrient, curve_json) VALUES (?, ?)",
				nutrient, string(points),
			); err != nil {
				return fmt.Errorf("failed to insert nutrient %s: %w", nutrient, err)
			}
		}

		for _, material := range tables.LimeMaterials {
			if _, err := tx.Exec(
				"INSERT INTO lime_materials (name, neutralizing_value, cost_per_ton, timing) VALUES (?, ?, ?, ?)",
				material.Name, material.NeutralizingValue, material.CostPerTon, string(material.Timing),
			); err != nil {
				return fmt.Errorf("failed to insert lime material %s: %w", material.Name, err)
			}
		}

		if _, err := tx.Exec(
			"INSERT INTO sulfur_material (name, cost_per_lb, timing) VALUES (?, ?, ?)",
			tables.Sulfur.Name, tables.Sulfur.CostPerLb, string(tables.Sulfur.Timing),
		); err != nil {
			return fmt.Errorf("failed to insert sulfur material: %w", err)
		}

		for _, texture := range tables.Textures {
			if _, err := tx.Exec(
				"INSERT INTO soil_textures (texture, buffer_factor, sulfur_factor) VALUES (?, ?, ?)",
				texture.Texture, texture.BufferFactor, texture.SulfurFactor,
			); err != nil {
				return fmt.Errorf("failed to insert texture %s: %w", texture.Texture, err)
			}
		}

		bufferPoints, err := json.Marshal(tables.BufferCurve.Points)
		if err != nil {
			return fmt.Errorf("failed to encode buffer curve: %w", err)
		}
		if _, err := tx.Exec(
			"INSERT INTO buffer_curve (id, curve_json) VALUES (1, ?)", string(bufferPoints),
		); err != nil {
			return fmt.Errorf("failed to insert buffer curve: %w", err)
		}

		for _, loc := range tables.Locations {
			irrigation := 0
			if loc.IrrigationAvail {
				irrigation = 1
			}
			if _, err := tx.Exec(
				`INSERT INTO trial_locations
				 (location_id, name, latitude, longitude, state, county, climate_zone, soil_type, elevation_meters, irrigation_available)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				loc.LocationID, loc.Name, loc.Latitude, loc.Longitude,
				loc.State, loc.County, loc.ClimateZone, loc.SoilType,
				loc.ElevationMeters, irrigation,
			); err != nil {
				return fmt.Errorf("failed to insert location %s: %w", loc.LocationID, err)
			}
		}

		return nil
	})
}

func decodeCurve(raw string) (reference.Curve, error) {
	var points []reference.CurvePoint
	if err := json.Unmarshal([]byte(raw), &points); err != nil {
		return reference.Curve{}, err
	}
	return reference.NewCurve(points...), nil
}

func loadCrops(db *sql.DB) (map[string]reference.CropPHPreference, error) {
	rows, err := db.Query(
		`SELECT crop, optimal_min, optimal_max, acceptable_min, acceptable_max,
		        critical_min, critical_max, yield_curve_json
		 FROM crop_ph_preferences`)
	if err != nil {
		return nil, fmt.Errorf("failed to query crops: %w", err)
	}
	defer rows.Close()

	out := make(map[string]reference.CropPHPreference)
	for rows.Next() {
		var pref reference.CropPHPreference
		var curveJSON string
		if err := rows.Scan(&pref.Crop, &pref.OptimalMin, &pref.OptimalMax,
			&pref.AcceptableMin, &pref.AcceptableMax,
			&pref.CriticalMin, &pref.CriticalMax, &curveJSON); err != nil {
			return nil, fmt.Errorf("failed to scan crop: %w", err)
		}
		curve, err := decodeCurve(curveJSON)
		if err != nil {
			return nil, fmt.Errorf("failed to decode yield curve for %s: %w", pref.Crop, err)
		}
		pref.YieldCurve = curve
		out[pref.Crop] = pref
	}
	return out, rows.Err()
}

func loadNutrientCurves(db *sql.DB) (map[string]reference.Curve, error) {
	rows, err := db.Query("SELECT nutrient, curve_json FROM nutrient_curves")
	if err != nil {
		return nil, fmt.Errorf("failed to query nutrient curves: %w", err)
	}
	defer rows.Close()

	out := make(map[string]reference.Curve)
	for rows.Next() {
		var nutrient, curveJSON string
		if err := rows.Scan(&nutrient, &curveJSON); err != nil {
			return nil, fmt.Errorf("failed to scan nutrient curve: %w", err)
		}
		curve, err := decodeCurve(curveJSON)
		if err != nil {
			return nil, fmt.Errorf("failed to decode curve for %s: %w", nutrient, err)
		}
		out[nutrient] = curve
	}
	return out, rows.Err()
}

func loadLimeMaterials(db *sql.DB) ([]reference.LimeMaterial, error) {
	rows, err := db.Query("SELECT name, neutralizing_value, cost_per_ton, timing FROM lime_materials ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query lime materials: %w", err)
	}
	defer rows.Close()

	var out []reference.LimeMaterial
	for rows.Next() {
		var material reference.LimeMaterial
		var timing string
		if err := rows.Scan(&material.Name, &material.NeutralizingValue, &material.CostPerTon, &timing); err != nil {
			return nil, fmt.Errorf("failed to scan lime material: %w", err)
		}
		material.Timing = models.ApplicationTiming(timing)
		out = append(out, material)
	}
	return out, rows.Err()
}

func loadSulfur(db *sql.DB) (reference.SulfurMaterial, bool, error) {
	var material reference.SulfurMaterial
	var timing string
	err := db.QueryRow("SELECT name, cost_per_lb, timing FROM sulfur_material").
		Scan(&material.Name, &material.CostPerLb, &timing)
	if err == sql.ErrNoRows {
		return material, false, nil
	}
	if err != nil {
		return material, false, fmt.Errorf("failed to query sulfur material: %w", err)
	}
	material.Timing = models.ApplicationTiming(timing)
	return material, true, nil
}

func loadTextures(db *sql.DB) (map[string]reference.TextureProfile, error) {
	rows, err := db.Query("SELECT texture, buffer_factor, sulfur_factor FROM soil_textures")
	if err != nil {
		return nil, fmt.Errorf("failed to query textures: %w", err)
	}
	defer rows.Close()

	out := make(map[string]reference.TextureProfile)
	for rows.Next() {
		var profile reference.TextureProfile
		if err := rows.Scan(&profile.Texture, &profile.BufferFactor, &profile.SulfurFactor); err != nil {
			return nil, fmt.Errorf("failed to scan texture: %w", err)
		}
		out[profile.Texture] = profile
	}
	return out, rows.Err()
}

func loadBufferCurve(db *sql.DB) (reference.Curve, bool, error) {
	var curveJSON string
	err := db.QueryRow("SELECT curve_json FROM buffer_curve WHERE id = 1").Scan(&curveJSON)
	if err == sql.ErrNoRows {
		return reference.Curve{}, false, nil
	}
	if err != nil {
		return reference.Curve{}, false, fmt.Errorf("failed to query buffer curve: %w", err)
	}
	curve, err := decodeCurve(curveJSON)
	if err != nil {
		return reference.Curve{}, false, fmt.Errorf("failed to decode buffer curve: %w", err)
	}
	return curve, true, nil
}

func loadLocations(db *sql.DB) (map[string]models.TrialLocation, error) {
	rows, err := db.Query(
		`SELECT location_id, name, latitude, longitude, state, county,
		        climate_zone, soil_type, elevation_meters, irrigation_available
		 FROM trial_locations`)
	if err != nil {
		return nil, fmt.Errorf("failed to query trial locations: %w", err)
	}
	defer rows.Close()

	out := make(map[string]models.TrialLocation)
	for rows.Next() {
		var loc models.TrialLocation
		var state, county, climate, soil sql.NullString
		var elevation sql.NullFloat64
		var irrigation int
		if err := rows.Scan(&loc.LocationID, &loc.Name, &loc.Latitude, &loc.Longitude,
			&state, &county, &climate, &soil, &elevation, &irrigation); err != nil {
			return nil, fmt.Errorf("failed to scan trial location: %w", err)
		}
		loc.State = state.String
		loc.County = county.String
		loc.ClimateZone = climate.String
		loc.SoilType = soil.String
		loc.ElevationMeters = elevation.Float64
		loc.IrrigationAvail = irrigation != 0
		out[loc.LocationID] = loc
	}
	return out, rows.Err()
}
