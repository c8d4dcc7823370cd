package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/agrisight/agro-analysis-go/internal/config"
	"github.com/agrisight/agro-analysis-go/internal/database"
	"github.com/agrisight/agro-analysis-go/internal/reference"
)

// appContext carries the shared state every subcommand needs: the
// resolved configuration, the merged reference tables, and the logger.
type appContext struct {
	cfg    *config.Config
	tables *reference.Tables
	logger *zap.Logger
}

func newRootCommand() *cobra.Command {
	var (
		configPath string
		tablesPath string
		dbPath     string
		logLevel   string
	)
	app := &appContext{}

	root := &cobra.Command{
		Use:   "agro-analysis",
		Short: "Agronomic trial and soil pH analysis",
		Long: `agro-analysis evaluates multi-environment variety trials (means,
genotype-by-environment interactions, AMMI, GGE, stability, regional
rankings) and soil pH readings (classification, nutrient availability,
crop suitability, lime and sulfur recommendations).

Input and output are JSON on files or stdin/stdout, so results compose
with the rest of a data pipeline.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if tablesPath != "" {
				cfg.TablesPath = tablesPath
			}
			if dbPath != "" {
				cfg.DBPath = dbPath
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}

			logger, err := newLogger(cfg.LogLevel)
			if err != nil {
				return err
			}

			tables, err := resolveTables(cfg)
			if err != nil {
				return err
			}

			app.cfg = cfg
			app.tables = tables
			app.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.logger != nil {
				app.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (YAML)")
	root.PersistentFlags().StringVar(&tablesPath, "tables", "", "reference tables YAML override")
	root.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite reference store (takes precedence over --tables)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(newTrialCommand(app))
	root.AddCommand(newSoilCommand(app))
	root.AddCommand(newSeedCommand(app))
	return root
}

// resolveTables picks the reference-table source: the SQLite store if
// configured, else a YAML override file, else the built-in defaults.
func resolveTables(cfg *config.Config) (*reference.Tables, error) {
	if cfg.DBPath != "" {
		db, err := database.Open(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return database.LoadTables(db)
	}
	if cfg.TablesPath != "" {
		return reference.LoadYAML(cfg.TablesPath)
	}
	return reference.Default(), nil
}

func newLogger(level string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

// readJSONInput decodes JSON from a path, or from stdin when the path
// is "-" or empty.
func readJSONInput(path string, v any) error {
	var raw []byte
	var err error
	if path == "" || path == "-" {
		raw, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
	} else {
		raw, err = os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to parse input JSON: %w", err)
	}
	return nil
}

func writeJSONOutput(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
