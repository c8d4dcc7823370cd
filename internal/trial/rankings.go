package trial

import (
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/agrisight/agro-analysis-go/internal/models"
	"github.com/agrisight/agro-analysis-go/internal/spatial"
	"github.com/agrisight/agro-analysis-go/internal/stats"
)

// GenerateRankings builds the regional ranking report: per-location
// variety rankings and winners, per-variety multi-year trends, and
// adaptation zones (locations where a variety ranks in the top N and is
// not classified unstable). stability may be nil when the interaction
// analyses were skipped; zones then use the ranking condition alone.
func (a *Analyzer) GenerateRankings(data *trialData, stability *models.StabilityAnalysis) *models.RegionalPerformanceRanking {
	result := &models.RegionalPerformanceRanking{
		LocationRankings: make(map[string][]models.VarietyRank, len(data.locations)),
		Winners:          make(map[string]string, len(data.locations)),
		Trends:           make(map[string]models.TrendDirection, len(data.varieties)),
		AdaptationZones:  make(map[string][]string, len(data.varieties)),
	}

	for _, location := range data.locations {
		var ranks []models.VarietyRank
		for _, variety := range data.varieties {
			if yield, ok := data.cellMean(variety, location); ok {
				ranks = append(ranks, models.VarietyRank{Variety: variety, MeanYield: yield})
			}
		}
		sort.Slice(ranks, func(i, j int) bool {
			if ranks[i].MeanYield != ranks[j].MeanYield {
				return ranks[i].MeanYield > ranks[j].MeanYield
			}
			return ranks[i].Variety < ranks[j].Variety
		})
		for i := range ranks {
			ranks[i].Rank = i + 1
		}
		result.LocationRankings[location] = ranks
		if len(ranks) > 0 {
			result.Winners[location] = ranks[0].Variety
		}
	}

	for _, variety := range data.varieties {
		result.Trends[variety] = a.yieldTrend(data, variety)
	}

	a.adaptationZones(data, stability, result)

	a.logger.Debug("regional rankings generated",
		zap.Int("locations", len(result.LocationRankings)),
		zap.Int("varieties", len(result.Trends)))
	return result
}

// yieldTrend compares a variety's mean yield in its earliest and latest
// trial years. Differences below the configured minimum delta are
// labeled flat so noise never reads as a trend.
func (a *Analyzer) yieldTrend(data *trialData, variety string) models.TrendDirection {
	byYear := make(map[int][]float64)
	for _, obs := range data.observations {
		if obs.Variety == variety {
			byYear[obs.Year] = append(byYear[obs.Year], obs.YieldValue)
		}
	}
	if len(byYear) < 2 {
		return models.TrendInsufficient
	}

	years := make([]int, 0, len(byYear))
	for year := range byYear {
		years = append(years, year)
	}
	sort.Ints(years)

	first := stats.Mean(byYear[years[0]])
	last := stats.Mean(byYear[years[len(years)-1]])
	delta := last - first
	switch {
	case math.Abs(delta) < a.cfg.TrendMinDelta:
		return models.TrendFlat
	case delta > 0:
		return models.TrendIncreasing
	default:
		return models.TrendDecreasing
	}
}

// adaptationZones collects, per variety, the locations where it ranks
// in the top N and its stability classification is not "unstable".
// When location coordinates are known the zone locations are also
// grouped into proximity clusters.
func (a *Analyzer) adaptationZones(data *trialData, stability *models.StabilityAnalysis, result *models.RegionalPerformanceRanking) {
	for _, variety := range data.varieties {
		if stability != nil && stability.Adaptation[variety] == models.AdaptationUnstable {
			continue
		}

		var zones []string
		for _, location := range data.locations {
			for _, rank := range result.LocationRankings[location] {
				if rank.Variety == variety && rank.Rank <= a.cfg.TopN {
					zones = append(zones, location)
					break
				}
			}
		}
		if len(zones) == 0 {
			continue
		}
		result.AdaptationZones[variety] = zones

		if len(a.locations) > 0 && a.allLocationsKnown(zones) {
			if result.ZoneClusters == nil {
				result.ZoneClusters = make(map[string][][]string)
			}
			result.ZoneClusters[variety] = spatial.ClusterByProximity(zones, a.locations, a.cfg.ZoneRadiusKm)
		}
	}
}

func (a *Analyzer) allLocationsKnown(ids []string) bool {
	for _, id := range ids {
		if _, ok := a.locations[id]; !ok {
			return false
		}
	}
	return true
}
