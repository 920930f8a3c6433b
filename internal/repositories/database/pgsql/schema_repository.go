package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	portsrepo "github.com/finlake/invoice_pipeline/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// schemaRepository answers structural questions about the store and applies
// the migration scripts. It never touches data rows.
type schemaRepository struct {
	BaseRepository
	databaseURL string
}

var _ portsrepo.SchemaRepository = (*schemaRepository)(nil)

func newSchemaRepository(pool *pgxpool.Pool, databaseURL string) portsrepo.SchemaRepository {
	return &schemaRepository{
		BaseRepository: BaseRepository{Pool: pool},
		databaseURL:    databaseURL,
	}
}

// ExistingTableNames lists the tables in the public schema, lowercased.
func (r *schemaRepository) ExistingTableNames(ctx context.Context) ([]string, error) {
	query := `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public' AND table_type = 'BASE TABLE';
	`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query existing tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		names = append(names, strings.ToLower(name))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating table names: %w", err)
	}

	return names, nil
}

// ApplySchema runs all up migrations from the given source path. The
// migration DDL uses CREATE ... IF NOT EXISTS, so re-applying over a partial
// schema is safe. A second sql.DB connection is opened with the pgx stdlib
// driver because the migrate postgres driver needs database/sql.
func (r *schemaRepository) ApplySchema(migrationsPath string) error {
	migrationDB, err := sql.Open("pgx", r.databaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database connection for migrations: %w", err)
	}
	defer migrationDB.Close()

	if err := migrationDB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database for migrations: %w", err)
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create postgres driver instance for migrations: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(migrationsPath, "postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return fmt.Errorf("migration source error: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("migration database error: %w", dbErr)
	}

	return nil
}
