package database

import (
	"database/sql"
	"fmt"
)

// Curves are stored as JSON breakpoint arrays: they are opaque to SQL
// and always read whole.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS crop_ph_preferences (
		crop TEXT PRIMARY KEY,
		optimal_min REAL NOT NULL,
		optimal_max REAL NOT NULL,
		acceptable_min REAL NOT NULL,
		acceptable_max REAL NOT NULL,
		critical_min REAL NOT NULL,
		critical_max REAL NOT NULL,
		yield_curve_json TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS nutrient_curves (
		nutrient TEXT PRIMARY KEY,
		curve_json TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS lime_materials (
		name TEXT PRIMARY KEY,
		neutralizing_value REAL NOT NULL,
		cost_per_ton REAL NOT NULL,
		timing TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS sulfur_material (
		name TEXT PRIMARY KEY,
		cost_per_lb REAL NOT NULL,
		timing TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS soil_textures (
		texture TEXT PRIMARY KEY,
		buffer_factor REAL NOT NULL,
		sulfur_factor REAL NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS buffer_curve (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		curve_json TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS trial_locations (
		location_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		latitude REAL NOT NULL,
		longitude REAL NOT NULL,
		state TEXT,
		county TEXT,
		climate_zone TEXT,
		soil_type TEXT,
		elevation_meters REAL,
		irrigation_available INTEGER NOT NULL DEFAULT 0
	)`,
}

// Migrate applies the reference-store schema. Statements are idempotent.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}
	return nil
}
