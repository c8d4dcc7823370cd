// Package config loads runtime settings from an optional config file
// and AGRO_-prefixed environment variables. Every setting has a
// default, so a zero-configuration run is always valid.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/agrisight/agro-analysis-go/internal/trial"
)

// Config holds the application settings.
type Config struct {
	// LogLevel is the zap level name: debug, info, warn, or error.
	LogLevel string `mapstructure:"log_level"`

	// TablesPath is an optional YAML file overriding the built-in
	// agronomic reference tables.
	TablesPath string `mapstructure:"tables_path"`

	// DBPath is an optional SQLite reference store. When both TablesPath
	// and DBPath are set the store wins.
	DBPath string `mapstructure:"db_path"`

	Trial TrialConfig `mapstructure:"trial"`
}

// TrialConfig mirrors trial.Config with file-friendly keys.
type TrialConfig struct {
	MaxIPCAComponents int     `mapstructure:"max_ipca_components"`
	VarianceThreshold float64 `mapstructure:"variance_threshold"`
	StableCVMax       float64 `mapstructure:"stable_cv_max"`
	UnstableCVMin     float64 `mapstructure:"unstable_cv_min"`
	SlopeTolerance    float64 `mapstructure:"slope_tolerance"`
	DeviationMax      float64 `mapstructure:"deviation_max"`
	TrendMinDelta     float64 `mapstructure:"trend_min_delta"`
	TopN              int     `mapstructure:"top_n"`
	ZoneRadiusKm      float64 `mapstructure:"zone_radius_km"`
}

// Load reads configuration from path (optional; empty means defaults
// plus environment only). Environment variables use the AGRO_ prefix
// with underscores, e.g. AGRO_LOG_LEVEL, AGRO_TRIAL_TOP_N.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("AGRO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	defaults := trial.DefaultConfig()

	v.SetDefault("log_level", "info")
	v.SetDefault("tables_path", "")
	v.SetDefault("db_path", "")

	v.SetDefault("trial.max_ipca_components", defaults.MaxIPCAComponents)
	v.SetDefault("trial.variance_threshold", defaults.VarianceThreshold)
	v.SetDefault("trial.stable_cv_max", defaults.StableCVMax)
	v.SetDefault("trial.unstable_cv_min", defaults.UnstableCVMin)
	v.SetDefault("trial.slope_tolerance", defaults.SlopeTolerance)
	v.SetDefault("trial.deviation_max", defaults.DeviationMax)
	v.SetDefault("trial.trend_min_delta", defaults.TrendMinDelta)
	v.SetDefault("trial.top_n", defaults.TopN)
	v.SetDefault("trial.zone_radius_km", defaults.ZoneRadiusKm)
}

// TrialAnalyzerConfig converts the file representation into the
// analyzer's config type.
func (c *Config) TrialAnalyzerConfig() trial.Config {
	return trial.Config{
		MaxIPCAComponents: c.Trial.MaxIPCAComponents,
		VarianceThreshold: c.Trial.VarianceThreshold,
		StableCVMax:       c.Trial.StableCVMax,
		UnstableCVMin:     c.Trial.UnstableCVMin,
		SlopeTolerance:    c.Trial.SlopeTolerance,
		DeviationMax:      c.Trial.DeviationMax,
		TrendMinDelta:     c.Trial.TrendMinDelta,
		TopN:              c.Trial.TopN,
		ZoneRadiusKm:      c.Trial.ZoneRadiusKm,
	}
}
