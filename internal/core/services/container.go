package services

import (
	"github.com/finlake/invoice_pipeline/internal/classification"
	portsrepo "github.com/finlake/invoice_pipeline/internal/core/ports/repositories"
	portssvc "github.com/finlake/invoice_pipeline/internal/core/ports/services"
	"github.com/finlake/invoice_pipeline/pkg/config"
)

// ServiceProvider holds the constructed services the entrypoints need.
type ServiceProvider struct {
	Schema     portssvc.SchemaSvc
	Intake     portssvc.IntakeSvc
	Normalize  portssvc.NormalizeSvc
	Projection portssvc.ProjectionSvc
	Reporting  portssvc.ReportingSvc
}

// NewServiceProvider wires the stage services onto the repositories and
// configuration. The classification lookup is loaded up front: a missing
// mappings file fails the invocation before any stage runs.
func NewServiceProvider(repos portsrepo.RepositoryProvider, cfg *config.Config) (*ServiceProvider, error) {
	lookup, err := classification.Load(cfg.DepartmentMappingsPath)
	if err != nil {
		return nil, err
	}

	return &ServiceProvider{
		Schema:     NewSchemaService(repos.SchemaRepo, cfg.MigrationsPath, cfg.ExpectedTables),
		Intake:     NewIntakeService(repos.RawRepo, cfg.RawDataDir, cfg.ProcessedDir),
		Normalize:  NewNormalizeService(repos.RawRepo, repos.ValidatedRepo),
		Projection: NewProjectionService(repos.ValidatedRepo, repos.ReportingRepo, lookup),
		Reporting:  NewReportingService(repos.ReportQueryRepo),
	}, nil
}
