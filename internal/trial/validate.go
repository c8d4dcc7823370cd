package trial

import (
	"math"

	"github.com/agrisight/agro-analysis-go/internal/models"
	"github.com/agrisight/agro-analysis-go/pkg/agroerr"
)

// checkResultFinite walks every numeric output of a trial analysis and
// returns a ComputationError for the first non-finite value found. A
// NaN or Inf here is a defect: it must surface as a failure, never
// reach the caller inside a result.
func checkResultFinite(result *models.TrialAnalysisResult) error {
	check := func(op string, v float64) error {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &agroerr.ComputationError{Op: op, Value: v}
		}
		return nil
	}

	if m := result.Means; m != nil {
		if err := check("grand mean", m.GrandMean); err != nil {
			return err
		}
		if err := check("grand std dev", m.GrandStdDev); err != nil {
			return err
		}
		for variety, ms := range m.VarietyMeans {
			if err := check("variety mean "+variety, ms.Mean); err != nil {
				return err
			}
			if err := check("variety std dev "+variety, ms.StdDev); err != nil {
				return err
			}
		}
		for location, ms := range m.LocationMeans {
			if err := check("location mean "+location, ms.Mean); err != nil {
				return err
			}
			if err := check("location std dev "+location, ms.StdDev); err != nil {
				return err
			}
		}
	}

	if matrix := result.Interactions; matrix != nil {
		for variety, row := range matrix.Effects() {
			for location, effect := range row {
				if err := check("interaction "+variety+"@"+location, effect); err != nil {
					return err
				}
			}
		}
	}

	if ammi := result.AMMI; ammi != nil {
		for variety, effect := range ammi.GenotypeEffects {
			if err := check("genotype effect "+variety, effect); err != nil {
				return err
			}
		}
		for location, effect := range ammi.EnvironmentEffects {
			if err := check("environment effect "+location, effect); err != nil {
				return err
			}
		}
		for _, component := range ammi.Components {
			if err := check("IPCA explained variance", component.ExplainedVariance); err != nil {
				return err
			}
			for variety, score := range component.GenotypeScores {
				if err := check("IPCA genotype score "+variety, score); err != nil {
					return err
				}
			}
			for location, score := range component.EnvironmentScores {
				if err := check("IPCA environment score "+location, score); err != nil {
					return err
				}
			}
		}
		for variety, stability := range ammi.Stability {
			if err := check("AMMI stability "+variety, stability); err != nil {
				return err
			}
		}
	}

	if gge := result.GGE; gge != nil {
		for variety, point := range gge.GenotypeScores {
			if err := check("GGE genotype PC1 "+variety, point.PC1); err != nil {
				return err
			}
			if err := check("GGE genotype PC2 "+variety, point.PC2); err != nil {
				return err
			}
		}
		for location, point := range gge.EnvironmentScores {
			if err := check("GGE environment PC1 "+location, point.PC1); err != nil {
				return err
			}
			if err := check("GGE environment PC2 "+location, point.PC2); err != nil {
				return err
			}
		}
	}

	if stability := result.Stability; stability != nil {
		for variety, measures := range stability.Measures {
			for measure, value := range measures {
				if err := check(string(measure)+" "+variety, value); err != nil {
					return err
				}
			}
		}
	}

	if rankings := result.Rankings; rankings != nil {
		for location, ranks := range rankings.LocationRankings {
			for _, rank := range ranks {
				if err := check("ranking yield "+rank.Variety+"@"+location, rank.MeanYield); err != nil {
					return err
				}
			}
		}
	}

	return nil
}
