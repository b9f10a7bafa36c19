package repository

import (
	"io/fs"

	"github.com/okian/harmony/pkg/logger"
)

// Files names each table inside the data directory. Empty fields keep the default.
type Files struct {
	Profiles string
	Tasks    string
	Traits   string
	Skills   string
	Synergy  string
	TopTeams string
	TopSolo  string
}

// DefaultFiles returns the file names the dashboard ships with.
func DefaultFiles() Files {
	return Files{
		Profiles: "employee_profiles.csv",
		Tasks:    "task_inputs.csv",
		Traits:   "employee_trait_scores.csv",
		Skills:   "skill_match_scores.csv",
		Synergy:  "employee_synergy_scores.csv",
		TopTeams: "top_team_recommendations.csv",
		TopSolo:  "top_solo_recommendations.csv",
	}
}

// Option applies a configuration option to the CSVStore.
type Option func(*CSVStore)

// WithDir reads tables from a directory on disk.
func WithDir(dir string) Option {
	return func(s *CSVStore) {
		if dir != "" {
			s.fsys = nil
			s.dir = dir
		}
	}
}

// WithFS reads tables from fsys instead of the disk.
func WithFS(fsys fs.FS) Option {
	return func(s *CSVStore) {
		if fsys != nil {
			s.fsys = fsys
		}
	}
}

// WithFiles overrides table file names; empty fields keep their defaults.
func WithFiles(f Files) Option {
	return func(s *CSVStore) {
		set := func(dst *string, v string) {
			if v != "" {
				*dst = v
			}
		}
		set(&s.files.Profiles, f.Profiles)
		set(&s.files.Tasks, f.Tasks)
		set(&s.files.Traits, f.Traits)
		set(&s.files.Skills, f.Skills)
		set(&s.files.Synergy, f.Synergy)
		set(&s.files.TopTeams, f.TopTeams)
		set(&s.files.TopSolo, f.TopSolo)
	}
}

// WithLogger sets the logger used while loading.
func WithLogger(l logger.Logger) Option {
	return func(s *CSVStore) {
		if l != nil {
			s.logger = l
		}
	}
}
