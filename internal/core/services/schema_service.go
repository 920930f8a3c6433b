package services

import (
	"context"
	"fmt"
	"strings"

	portsrepo "github.com/finlake/invoice_pipeline/internal/core/ports/repositories"
	portssvc "github.com/finlake/invoice_pipeline/internal/core/ports/services"
)

// SchemaService makes sure the expected tables exist before the pipeline
// touches any data. Structural only; it never reads or writes rows.
type SchemaService struct {
	BaseService
	schemaRepo     portsrepo.SchemaRepository
	migrationsPath string
	expectedTables []string
}

var _ portssvc.SchemaSvc = (*SchemaService)(nil)

func NewSchemaService(schemaRepo portsrepo.SchemaRepository, migrationsPath string, expectedTables []string) *SchemaService {
	return &SchemaService{
		schemaRepo:     schemaRepo,
		migrationsPath: migrationsPath,
		expectedTables: expectedTables,
	}
}

// EnsureSchema compares existing table names (case-insensitively) against
// the expected set and applies the migration scripts if any are missing.
// The scripts are additive, so a partially present schema is completed
// rather than recreated. Returns whether scripts were applied.
func (s *SchemaService) EnsureSchema(ctx context.Context) (bool, error) {
	existing, err := s.schemaRepo.ExistingTableNames(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to inspect schema: %w", err)
	}

	present := make(map[string]struct{}, len(existing))
	for _, name := range existing {
		present[strings.ToLower(name)] = struct{}{}
	}

	var missing []string
	for _, want := range s.expectedTables {
		if _, ok := present[strings.ToLower(want)]; !ok {
			missing = append(missing, want)
		}
	}

	if len(missing) == 0 {
		s.LogInfo(ctx, "Schema already exists, skipping creation")
		return false, nil
	}

	s.LogInfo(ctx, "Schema missing, initializing", "missing_tables", missing)
	if err := s.schemaRepo.ApplySchema(s.migrationsPath); err != nil {
		return false, fmt.Errorf("failed to apply schema: %w", err)
	}
	s.LogInfo(ctx, "Schema created")
	return true, nil
}
