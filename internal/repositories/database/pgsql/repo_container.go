package pgsql

import (
	portsrepo "github.com/finlake/invoice_pipeline/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool, databaseURL string) portsrepo.RepositoryProvider {
	schemaRepo := newSchemaRepository(dbPool, databaseURL)
	rawRepo := newPgxRawRepository(dbPool)
	validatedRepo := newPgxValidatedRepository(dbPool)
	reportingRepo := newPgxReportingRepository(dbPool)
	reportQueryRepo := newReportQueryRepository(dbPool)

	return portsrepo.RepositoryProvider{
		SchemaRepo:      schemaRepo,
		RawRepo:         rawRepo,
		ValidatedRepo:   validatedRepo,
		ReportingRepo:   reportingRepo,
		ReportQueryRepo: reportQueryRepo,
	}
}
