// Package config loads the application configuration file. Bank
// patterns and category keywords have their own YAML files; this is
// only the outer plumbing: directories, formats, parallelism.
package config

import (
	"fmt"
	"runtime"

	"github.com/spf13/viper"
)

// Config represents the application configuration.
type Config struct {
	StatementsDir   string   `mapstructure:"statements_dir"`
	OutputDir       string   `mapstructure:"output_dir"`
	Formats         []string `mapstructure:"formats"`
	Workers         int      `mapstructure:"workers"`
	DefaultCategory string   `mapstructure:"default_category"`
	PatternsFile    string   `mapstructure:"patterns_file"`   // empty = embedded defaults
	CategoriesFile  string   `mapstructure:"categories_file"` // empty = embedded defaults
	MoveProcessed   bool     `mapstructure:"move_processed"`
}

// Load reads configuration from a TOML file, filling in defaults for
// anything unset. An empty path returns pure defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("statements_dir", "data/statements")
	v.SetDefault("output_dir", "data/out")
	v.SetDefault("formats", []string{"csv"})
	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("default_category", "Other")
	v.SetDefault("move_processed", false)
}
