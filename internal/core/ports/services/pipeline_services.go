package services

import (
	"context"

	"github.com/finlake/invoice_pipeline/internal/dto"
)

// SchemaSvc ensures the expected tables exist before any stage runs.
type SchemaSvc interface {
	// EnsureSchema compares existing table names (case-insensitively)
	// against the expected set and applies the schema scripts when any
	// expected table is missing. It reports whether scripts were applied.
	EnsureSchema(ctx context.Context) (bool, error)
}

// IntakeSvc loads source CSV files into the raw tier.
type IntakeSvc interface {
	// Run scans the configured source directory once and appends rows whose
	// business keys are not already stored. Re-running over unchanged files
	// inserts nothing.
	Run(ctx context.Context) (dto.IntakeResult, error)
}

// NormalizeSvc moves unprocessed raw rows into the validated tier.
type NormalizeSvc interface {
	// Run validates and cleans every unprocessed raw row in one
	// transaction. Rejected rows are consumed without being copied.
	Run(ctx context.Context) (dto.NormalizeResult, error)
}

// ProjectionSvc moves unprocessed validated rows into the reporting tier.
type ProjectionSvc interface {
	// Run resolves dimensions, inserts facts and applies payments in one
	// transaction.
	Run(ctx context.Context) (dto.ProjectionResult, error)
}
