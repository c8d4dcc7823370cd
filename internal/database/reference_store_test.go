package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrisight/agro-analysis-go/internal/models"
	"github.com/agrisight/agro-analysis-go/internal/reference"
)

func openTestStore(t *testing.T) (path string) {
	t.Helper()
	return filepath.Join(t.TempDir(), "reference.db")
}

func TestOpenAndMigrate(t *testing.T) {
	db, err := Open(openTestStore(t))
	require.NoError(t, err)
	defer db.Close()

	// Migrations are idempotent.
	require.NoError(t, Migrate(db))
}

func TestSeedAndLoadRoundTrip(t *testing.T) {
	db, err := Open(openTestStore(t))
	require.NoError(t, err)
	defer db.Close()

	seeded := reference.Default()
	seeded.Sulfur.CostPerLb = 0.75
	seeded.Locations["ames"] = models.TrialLocation{
		LocationID:      "ames",
		Name:            "Ames Research Farm",
		Latitude:        42.03,
		Longitude:       -93.62,
		State:           "IA",
		ClimateZone:     "5a",
		IrrigationAvail: true,
	}
	require.NoError(t, SeedTables(db, seeded))

	loaded, err := LoadTables(db)
	require.NoError(t, err)

	assert.Equal(t, 0.75, loaded.Sulfur.CostPerLb)
	assert.Equal(t, len(seeded.Crops), len(loaded.Crops))
	assert.Equal(t, seeded.Crops["corn"].OptimalMin, loaded.Crops["corn"].OptimalMin)
	assert.Equal(t, seeded.Crops["corn"].YieldCurve.Points, loaded.Crops["corn"].YieldCurve.Points)
	assert.Equal(t, seeded.NutrientCurves["iron"].Points, loaded.NutrientCurves["iron"].Points)
	assert.Equal(t, seeded.BufferCurve.Points, loaded.BufferCurve.Points)
	assert.ElementsMatch(t, seeded.LimeMaterials, loaded.LimeMaterials)
	assert.Equal(t, seeded.Textures, loaded.Textures)

	loc, ok := loaded.Locations["ames"]
	require.True(t, ok)
	assert.Equal(t, "Ames Research Farm", loc.Name)
	assert.Equal(t, "IA", loc.State)
	assert.True(t, loc.IrrigationAvail)
}

func TestLoadTablesEmptyStoreKeepsDefaults(t *testing.T) {
	db, err := Open(openTestStore(t))
	require.NoError(t, err)
	defer db.Close()

	loaded, err := LoadTables(db)
	require.NoError(t, err)

	defaults := reference.Default()
	assert.Equal(t, len(defaults.Crops), len(loaded.Crops))
	assert.Equal(t, defaults.Sulfur, loaded.Sulfur)
	assert.NotEmpty(t, loaded.LimeMaterials)
}

func TestSeedRejectsInvalidTables(t *testing.T) {
	db, err := Open(openTestStore(t))
	require.NoError(t, err)
	defer db.Close()

	bad := reference.Default()
	bad.LimeMaterials = nil
	assert.Error(t, SeedTables(db, bad))
}

func TestSeedReplacesExistingRows(t *testing.T) {
	db, err := Open(openTestStore(t))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, SeedTables(db, reference.Default()))

	updated := reference.Default()
	updated.Sulfur.CostPerLb = 1.10
	require.NoError(t, SeedTables(db, updated))

	loaded, err := LoadTables(db)
	require.NoError(t, err)
	assert.Equal(t, 1.10, loaded.Sulfur.CostPerLb)
	assert.Equal(t, len(updated.LimeMaterials), len(loaded.LimeMaterials))
}
