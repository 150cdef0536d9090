// Package config loads dealerseed configuration from an optional
// config.yaml and DEALERSEED_* environment variables, and initializes the
// global logger.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Import   ImportConfig   `yaml:"import" mapstructure:"import"`
	Expand   ExpandConfig   `yaml:"expand" mapstructure:"expand"`
	Geonames GeonamesConfig `yaml:"geonames" mapstructure:"geonames"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// ImportConfig configures the spreadsheet importer.
type ImportConfig struct {
	RosterSheet   string `yaml:"roster_sheet" mapstructure:"roster_sheet"`
	PrioritySheet string `yaml:"priority_sheet" mapstructure:"priority_sheet"`
	DefaultOutput string `yaml:"default_output" mapstructure:"default_output"`
}

// ExpandConfig configures the coverage expander.
type ExpandConfig struct {
	DefaultRadiusMiles int    `yaml:"default_radius_miles" mapstructure:"default_radius_miles"`
	DefaultInput       string `yaml:"default_input" mapstructure:"default_input"`
	DefaultOutput      string `yaml:"default_output" mapstructure:"default_output"`
}

// GeonamesConfig configures the postal-code reference dataset.
type GeonamesConfig struct {
	URL      string `yaml:"url" mapstructure:"url"`
	CacheDir string `yaml:"cache_dir" mapstructure:"cache_dir"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("DEALERSEED")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("import.roster_sheet", "112 Dealers")
	v.SetDefault("import.priority_sheet", "Top 50")
	v.SetDefault("import.default_output", "dealers_processed.json")
	v.SetDefault("expand.default_radius_miles", 50)
	v.SetDefault("expand.default_input", "dealers_processed.json")
	v.SetDefault("expand.default_output", "dealers_expanded.json")
	v.SetDefault("geonames.url", "https://download.geonames.org/export/zip/US.zip")
	v.SetDefault("geonames.cache_dir", defaultCacheDir())
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// defaultCacheDir places the geonames archive under the user cache dir,
// falling back to a dotdir in the working directory.
func defaultCacheDir() string {
	if base, err := os.UserCacheDir(); err == nil {
		return filepath.Join(base, "dealerseed")
	}
	return ".dealerseed-cache"
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
