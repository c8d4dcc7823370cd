package models

// TrialLocation describes a trial site. Observations reference locations
// by LocationID only; there is no ownership relationship (pure lookup).
type TrialLocation struct {
	LocationID string  `json:"location_id" yaml:"location_id"`
	Name       string  `json:"name" yaml:"name"`
	Latitude   float64 `json:"latitude" yaml:"latitude"`
	Longitude  float64 `json:"longitude" yaml:"longitude"`

	State           string  `json:"state,omitempty" yaml:"state,omitempty"`
	County          string  `json:"county,omitempty" yaml:"county,omitempty"`
	ClimateZone     string  `json:"climate_zone,omitempty" yaml:"climate_zone,omitempty"`
	SoilType        string  `json:"soil_type,omitempty" yaml:"soil_type,omitempty"`
	ElevationMeters float64 `json:"elevation_meters,omitempty" yaml:"elevation_meters,omitempty"`
	IrrigationAvail bool    `json:"irrigation_available,omitempty" yaml:"irrigation_available,omitempty"`
}
