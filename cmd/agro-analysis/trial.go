package main

import (
	"github.com/spf13/cobra"

	"github.com/agrisight/agro-analysis-go/internal/models"
	"github.com/agrisight/agro-analysis-go/internal/trial"
)

func newTrialCommand(app *appContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trial",
		Short: "Multi-environment variety trial analysis",
	}
	cmd.AddCommand(newTrialAnalyzeCommand(app))
	return cmd
}

func newTrialAnalyzeCommand(app *appContext) *cobra.Command {
	var (
		inputPath string
		cropType  string
		varieties []string
		locations []string
		years     []int
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze trial observations",
		Long: `Reads a JSON array of trial observations and emits the full analysis:
multi-location means, the genotype-by-environment interaction matrix,
AMMI and GGE decompositions, stability measures, and regional rankings.
Sub-analyses the data cannot support are reported under "not_computed"
instead of failing the run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var observations []models.VarietyPerformanceObservation
			if err := readJSONInput(inputPath, &observations); err != nil {
				return err
			}

			var filter *models.TrialFilter
			if len(varieties) > 0 || len(locations) > 0 || len(years) > 0 {
				filter = &models.TrialFilter{
					Varieties: varieties,
					Locations: locations,
					Years:     years,
				}
			}

			analyzer := trial.NewAnalyzer(app.cfg.TrialAnalyzerConfig(), app.tables.Locations, app.logger)
			result, err := analyzer.Analyze(observations, cropType, filter)
			if err != nil {
				return err
			}
			return writeJSONOutput(cmd, result)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "-", "observations JSON file ('-' for stdin)")
	cmd.Flags().StringVar(&cropType, "crop", "", "restrict analysis to one crop type")
	cmd.Flags().StringSliceVar(&varieties, "varieties", nil, "restrict to these varieties")
	cmd.Flags().StringSliceVar(&locations, "locations", nil, "restrict to these location IDs")
	cmd.Flags().IntSliceVar(&years, "years", nil, "restrict to these trial years")
	return cmd
}
