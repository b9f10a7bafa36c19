// Package repository loads the input tables into an immutable dataset snapshot.
package repository

import (
	"context"

	"github.com/okian/harmony/internal/domain/dataset"
)

// Store produces the read-only data context the service runs on.
type Store interface {
	// Load reads every table and returns a fully indexed snapshot.
	// Any missing or malformed table is an error.
	Load(ctx context.Context) (*dataset.Snapshot, error)
}

// Required columns of the typed tables.
const (
	ColumnTaskName     = "Task Name"
	ColumnEmployeeName = "Employee Name"
	ColumnMatchScore   = "Match Score"
	ColumnEmployee1    = "Employee 1"
	ColumnEmployee2    = "Employee 2"
	ColumnSynergyScore = "Synergy Score"
	ColumnProfileName  = "Name"
)
