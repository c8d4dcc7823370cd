package main

import (
	"github.com/spf13/cobra"

	"github.com/agrisight/agro-analysis-go/internal/models"
	"github.com/agrisight/agro-analysis-go/internal/soilph"
)

func newSoilCommand(app *appContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "soil",
		Short: "Soil pH analysis and amendment recommendations",
	}
	cmd.AddCommand(newSoilAnalyzeCommand(app))
	cmd.AddCommand(newSoilAmendCommand(app))
	return cmd
}

func newSoilAnalyzeCommand(app *appContext) *cobra.Command {
	var (
		ph       float64
		om       float64
		texture  string
		cropType string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Classify a soil pH reading",
		Long: `Classifies a reading into its soil reaction class and evaluates
nutrient availability and crop suitability at that pH.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			reading := models.SoilPHReading{
				PH:               ph,
				OrganicMatterPct: om,
				Texture:          texture,
			}

			analyzer := soilph.NewAnalyzer(app.tables, app.logger)
			result, err := analyzer.Analyze(reading, cropType)
			if err != nil {
				return err
			}
			return writeJSONOutput(cmd, result)
		},
	}

	cmd.Flags().Float64Var(&ph, "ph", 0, "measured soil pH (required)")
	cmd.Flags().Float64Var(&om, "om", 2.0, "organic matter percent")
	cmd.Flags().StringVar(&texture, "texture", "", "soil texture (defaults to loam when unknown)")
	cmd.Flags().StringVar(&cropType, "crop", "", "crop to evaluate suitability for")
	cmd.MarkFlagRequired("ph")
	return cmd
}

func newSoilAmendCommand(app *appContext) *cobra.Command {
	var (
		ph       float64
		om       float64
		bufferPH float64
		texture  string
		cropType string
		targetPH float64
	)

	cmd := &cobra.Command{
		Use:   "amend",
		Short: "Recommend pH amendments",
		Long: `Computes lime or sulfur recommendations that shift the measured pH
toward the target. When --target is omitted the target is derived from
the crop's optimal pH range. An empty result means the pH already
satisfies the target.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			reading := models.SoilPHReading{
				PH:               ph,
				OrganicMatterPct: om,
				Texture:          texture,
			}
			if cmd.Flags().Changed("buffer-ph") {
				reading.BufferPH = &bufferPH
			}

			analyzer := soilph.NewAnalyzer(app.tables, app.logger)
			recs, err := analyzer.RecommendAmendments(reading, targetPH, cropType)
			if err != nil {
				return err
			}
			return writeJSONOutput(cmd, recs)
		},
	}

	cmd.Flags().Float64Var(&ph, "ph", 0, "measured soil pH (required)")
	cmd.Flags().Float64Var(&om, "om", 2.0, "organic matter percent")
	cmd.Flags().Float64Var(&bufferPH, "buffer-ph", 0, "SMP buffer pH, when the lab reports one")
	cmd.Flags().StringVar(&texture, "texture", "", "soil texture (defaults to loam when unknown)")
	cmd.Flags().StringVar(&cropType, "crop", "", "crop whose optimal range supplies the default target")
	cmd.Flags().Float64Var(&targetPH, "target", 0, "target pH (0 derives it from the crop)")
	cmd.MarkFlagRequired("ph")
	return cmd
}
