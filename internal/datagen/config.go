// Package datagen generates synthetic team-matching datasets and runs
// smoke checks against a live Harmony server.
package datagen

import "time"

// Config holds the generator settings.
type Config struct {
	OutDir    string // Directory the seven tables are written to
	Employees int    // Number of employees
	Tasks     int    // Number of tasks
	Seed      uint64 // Seed for a reproducible dataset
}

// SmokeConfig holds the settings for a smoke run.
type SmokeConfig struct {
	BaseURL string        // Base URL of the service
	TopN    int           // Teams requested per task
	Workers int           // Number of concurrent workers
	Timeout time.Duration // HTTP request timeout
}

// Summary describes a generated dataset.
type Summary struct {
	Dir  string
	Rows map[string]int // table file name -> data rows written
}

// SmokeStats holds smoke run statistics.
type SmokeStats struct {
	Tasks        int
	Ranked       int
	Insufficient int
	Failed       int
	Duration     time.Duration
	Failures     []string
}
