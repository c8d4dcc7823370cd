package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrisight/agro-analysis-go/internal/models"
)

func TestHaversineDistance(t *testing.T) {
	t.Run("one degree of longitude at the equator", func(t *testing.T) {
		d := HaversineDistance(0, 0, 0, 1)
		assert.InDelta(t, 111195, d, 200)
	})

	t.Run("zero distance to itself", func(t *testing.T) {
		assert.InDelta(t, 0, HaversineDistance(42.0, -93.6, 42.0, -93.6), 1e-6)
	})

	t.Run("symmetric", func(t *testing.T) {
		a := HaversineDistance(40.7, -74.0, 41.9, -87.6)
		b := HaversineDistance(41.9, -87.6, 40.7, -74.0)
		assert.InDelta(t, a, b, 1e-6)
	})
}

func TestNearestLocation(t *testing.T) {
	lookup := map[string]models.TrialLocation{
		"A": {LocationID: "A", Latitude: 42.0, Longitude: -93.6},
		"B": {LocationID: "B", Latitude: 42.1, Longitude: -93.5},
		"C": {LocationID: "C", Latitude: 45.0, Longitude: -90.0},
	}

	nearest, ok := NearestLocation(lookup["A"], lookup)
	require.True(t, ok)
	assert.Equal(t, "B", nearest.LocationID)

	_, ok = NearestLocation(lookup["A"], map[string]models.TrialLocation{"A": lookup["A"]})
	assert.False(t, ok)
}

func TestClusterByProximity(t *testing.T) {
	lookup := map[string]models.TrialLocation{
		"A": {LocationID: "A", Latitude: 42.0, Longitude: -93.6},
		"B": {LocationID: "B", Latitude: 42.1, Longitude: -93.5},
		"C": {LocationID: "C", Latitude: 45.0, Longitude: -80.0},
	}

	t.Run("near sites cluster, far sites stand alone", func(t *testing.T) {
		clusters := ClusterByProximity([]string{"C", "A", "B"}, lookup, 50)
		require.Len(t, clusters, 2)
		assert.Equal(t, []string{"A", "B"}, clusters[0])
		assert.Equal(t, []string{"C"}, clusters[1])
	})

	t.Run("deterministic regardless of input order", func(t *testing.T) {
		first := ClusterByProximity([]string{"B", "C", "A"}, lookup, 50)
		second := ClusterByProximity([]string{"A", "B", "C"}, lookup, 50)
		assert.Equal(t, first, second)
	})

	t.Run("unknown id forms its own cluster", func(t *testing.T) {
		clusters := ClusterByProximity([]string{"A", "X"}, lookup, 50)
		assert.Contains(t, clusters, []string{"X"})
	})
}
