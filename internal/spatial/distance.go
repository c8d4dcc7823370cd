// Package spatial provides great-circle geometry over trial locations:
// distances, nearest-site lookup, and proximity clustering used to group
// a variety's adaptation zones geographically.
package spatial

import (
	"sort"

	"github.com/golang/geo/s2"

	"github.com/agrisight/agro-analysis-go/internal/models"
)

// Earth's mean radius.
const (
	EarthRadiusMeters = 6371000.0
	EarthRadiusKm     = 6371.0
)

// HaversineDistance calculates the great-circle distance between two
// points in meters.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// DistanceKm calculates the great-circle distance between two trial
// locations in kilometers.
func DistanceKm(a, b models.TrialLocation) float64 {
	return HaversineDistance(a.Latitude, a.Longitude, b.Latitude, b.Longitude) / 1000
}

// NearestLocation returns the location in the lookup closest to the
// given one, excluding itself. The second return is false when the
// lookup holds no other location.
func NearestLocation(loc models.TrialLocation, lookup map[string]models.TrialLocation) (models.TrialLocation, bool) {
	var (
		best     models.TrialLocation
		bestDist float64
		found    bool
	)
	for id, candidate := range lookup {
		if id == loc.LocationID {
			continue
		}
		d := DistanceKm(loc, candidate)
		if !found || d < bestDist || (d == bestDist && id < best.LocationID) {
			best = candidate
			bestDist = d
			found = true
		}
	}
	return best, found
}

// ClusterByProximity groups location IDs into clusters where each
// member is within radiusKm of at least one other member
// (single-linkage). IDs missing from the lookup each form their own
// cluster. Input order does not matter: IDs are processed sorted, so
// the clustering is deterministic.
func ClusterByProximity(ids []string, lookup map[string]models.TrialLocation, radiusKm float64) [][]string {
	sorted := make([]string, len(ids))
	copy(sorted, ids)
	sort.Strings(sorted)

	var clusters [][]string
	for _, id := range sorted {
		loc, ok := lookup[id]
		if !ok {
			clusters = append(clusters, []string{id})
			continue
		}

		placed := false
		for i, cluster := range clusters {
			for _, memberID := range cluster {
				member, ok := lookup[memberID]
				if !ok {
					continue
				}
				if DistanceKm(loc, member) <= radiusKm {
					clusters[i] = append(clusters[i], id)
					placed = true
					break
				}
			}
			if placed {
				break
			}
		}
		if !placed {
			clusters = append(clusters, []string{id})
		}
	}
	return clusters
}
