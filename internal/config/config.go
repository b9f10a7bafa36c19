// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Load layers defaults, an optional YAML file and HARMONY_* env vars.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"fmt"
	"strings"
)

// Files names each input table inside DataDir.
type Files struct {
	Profiles string `koanf:"profiles"`
	Tasks    string `koanf:"tasks"`
	Traits   string `koanf:"traits"`
	Skills   string `koanf:"skills"`
	Synergy  string `koanf:"synergy"`
	TopTeams string `koanf:"top_teams"`
	TopSolo  string `koanf:"top_solo"`
}

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log output.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DataDir is the directory holding the CSV tables.
	DataDir string `koanf:"data_dir"`

	// Files overrides individual table file names.
	Files Files `koanf:"files"`

	// DefaultTopN is the number of teams returned when a request omits it.
	DefaultTopN int `koanf:"default_top_n"`

	// MaxTopN caps GET /api/teams?top.
	MaxTopN int `koanf:"max_top_n"`

	// InsightsLimit is how many precomputed leaderboard rows the insights tab shows.
	InsightsLimit int `koanf:"insights_limit"`

	// MaxCandidates bounds the per-task candidate pool; 0 disables the bound.
	MaxCandidates int `koanf:"max_candidates"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:  "info",
		LogFormat: "text",
		Addr:      ":9080",
		DataDir:   "data",
		Files: Files{
			Profiles: "employee_profiles.csv",
			Tasks:    "task_inputs.csv",
			Traits:   "employee_trait_scores.csv",
			Skills:   "skill_match_scores.csv",
			Synergy:  "employee_synergy_scores.csv",
			TopTeams: "top_team_recommendations.csv",
			TopSolo:  "top_solo_recommendations.csv",
		},
		DefaultTopN:   3,
		MaxTopN:       50,
		InsightsLimit: 5,
		MaxCandidates: 0,
	}
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.DataDir) == "":
		return fmt.Errorf("%w: data_dir must not be empty", ErrInvalidConfig)
	case c.DefaultTopN < 1:
		return fmt.Errorf("%w: default_top_n must be positive", ErrInvalidConfig)
	case c.MaxTopN < c.DefaultTopN:
		return fmt.Errorf("%w: max_top_n must be >= default_top_n", ErrInvalidConfig)
	case c.InsightsLimit < 1:
		return fmt.Errorf("%w: insights_limit must be positive", ErrInvalidConfig)
	case c.MaxCandidates < 0:
		return fmt.Errorf("%w: max_candidates must not be negative", ErrInvalidConfig)
	}
	return nil
}
