package models

import "encoding/json"

// MatrixCell keys one (variety, location) entry of the GxE matrix.
type MatrixCell struct {
	Variety  string
	Location string
}

// GxEInteractionMatrix is a sparse matrix of interaction effects keyed by
// (variety, location). A missing cell means "no data", never "zero
// interaction": silently treating absence as zero would corrupt any
// AMMI/GGE decomposition built on top of it.
type GxEInteractionMatrix struct {
	Varieties []string                `json:"varieties"` // sorted
	Locations []string                `json:"locations"` // sorted
	cells     map[MatrixCell]float64
}

// NewGxEInteractionMatrix creates an empty matrix over the given
// (sorted) variety and location label sets.
func NewGxEInteractionMatrix(varieties, locations []string) *GxEInteractionMatrix {
	return &GxEInteractionMatrix{
		Varieties: varieties,
		Locations: locations,
		cells:     make(map[MatrixCell]float64, len(varieties)*len(locations)),
	}
}

// Set records the interaction effect for a (variety, location) pair.
func (m *GxEInteractionMatrix) Set(variety, location string, effect float64) {
	m.cells[MatrixCell{Variety: variety, Location: location}] = effect
}

// Value returns the interaction effect for a (variety, location) pair.
// The second return is false when the pair has no observation.
func (m *GxEInteractionMatrix) Value(variety, location string) (float64, bool) {
	v, ok := m.cells[MatrixCell{Variety: variety, Location: location}]
	return v, ok
}

// Len returns the number of populated cells.
func (m *GxEInteractionMatrix) Len() int {
	return len(m.cells)
}

// RowSum sums the populated cells of one variety's row.
func (m *GxEInteractionMatrix) RowSum(variety string) float64 {
	var sum float64
	for _, loc := range m.Locations {
		if v, ok := m.Value(variety, loc); ok {
			sum += v
		}
	}
	return sum
}

// ColSum sums the populated cells of one location's column.
func (m *GxEInteractionMatrix) ColSum(location string) float64 {
	var sum float64
	for _, vr := range m.Varieties {
		if v, ok := m.Value(vr, location); ok {
			sum += v
		}
	}
	return sum
}

// Complete reports whether every (variety, location) pair has a cell.
func (m *GxEInteractionMatrix) Complete() bool {
	return len(m.cells) == len(m.Varieties)*len(m.Locations)
}

// Effects returns the populated cells as nested maps keyed by variety
// then location. Missing pairs are absent from the inner maps.
func (m *GxEInteractionMatrix) Effects() map[string]map[string]float64 {
	out := make(map[string]map[string]float64, len(m.Varieties))
	for cell, v := range m.cells {
		row, ok := out[cell.Variety]
		if !ok {
			row = make(map[string]float64)
			out[cell.Variety] = row
		}
		row[cell.Location] = v
	}
	return out
}

// MarshalJSON emits the matrix with its populated cells, keeping absent
// pairs absent in the serialized form as well.
func (m *GxEInteractionMatrix) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Varieties []string                      `json:"varieties"`
		Locations []string                      `json:"locations"`
		Effects   map[string]map[string]float64 `json:"effects"`
	}{
		Varieties: m.Varieties,
		Locations: m.Locations,
		Effects:   m.Effects(),
	})
}
