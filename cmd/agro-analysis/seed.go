package main

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/agrisight/agro-analysis-go/internal/database"
)

func newSeedCommand(app *appContext) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed a SQLite reference store",
		Long: `Writes the active reference tables (built-in defaults, or the
--tables YAML override) into a SQLite store, creating it if needed.
Subsequent runs can then use --db to load calibration from the store.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" {
				return errors.New("--out is required")
			}

			db, err := database.Open(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := database.SeedTables(db, app.tables); err != nil {
				return err
			}
			app.logger.Info("reference store seeded", zap.String("path", dbPath))
			return nil
		},
	}

	cmd.Flags().StringVarP(&dbPath, "out", "o", "", "SQLite store path to create or overwrite (required)")
	cmd.MarkFlagRequired("out")
	return cmd
}
