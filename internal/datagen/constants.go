package datagen

import "time"

// Default generator sizes.
const (
	DefaultEmployees = 24
	DefaultTasks     = 6
	DefaultSeed      = 42
)

// File permission constants.
const (
	directoryPermission = 0o750
	filePermission      = 0o600
)

// Score ranges.
const (
	maxMatchScore    = 10
	minSynergyScore  = -2
	synergySpread    = 8 // minSynergyScore .. minSynergyScore+synergySpread-1
	maxTraitScore    = 10
	maxExperience    = 20
	skillCoverage    = 0.7 // chance an employee is scored for a task
	synergyCoverage  = 0.3 // chance a pair gets a synergy row
	recommendedTeams = 3   // teams per task in the precomputed leaderboard
)

// Smoke run defaults.
const (
	DefaultSmokeTopN    = 5
	DefaultSmokeWorkers = 4
	DefaultSmokeTimeout = 30 * time.Second
)
