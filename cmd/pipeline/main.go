package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/finlake/invoice_pipeline/internal/core/services"
	"github.com/finlake/invoice_pipeline/internal/middleware"
	"github.com/finlake/invoice_pipeline/internal/repositories/database/pgsql"
	"github.com/finlake/invoice_pipeline/pkg/config"
	"github.com/finlake/invoice_pipeline/pkg/database"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established")

	repos := pgsql.NewRepositoryProvider(dbPool, cfg.DatabaseURL)
	svc, err := services.NewServiceProvider(repos, cfg)
	if err != nil {
		logger.Error("Failed to build services", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := middleware.CtxWithLogger(context.Background(), logger)

	applied, err := svc.Schema.EnsureSchema(ctx)
	if err != nil {
		logger.Error("Schema stage failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Schema stage complete", slog.Bool("migrationsApplied", applied))

	intake, err := svc.Intake.Run(ctx)
	if err != nil {
		logger.Error("Intake stage failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Intake stage complete",
		slog.Int("files", len(intake.Files)),
		slog.Int("filesSkipped", intake.FilesSkipped),
		slog.Int("invoicesInserted", intake.InvoicesInserted),
		slog.Int("paymentsInserted", intake.PaymentsInserted),
		slog.Int("rowsSkipped", intake.RowsSkipped),
	)

	normalized, err := svc.Normalize.Run(ctx)
	if err != nil {
		logger.Error("Normalization stage failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Normalization stage complete",
		slog.Int("invoicesValidated", normalized.InvoicesValidated),
		slog.Int("invoicesRejected", normalized.InvoicesRejected),
		slog.Int("paymentsValidated", normalized.PaymentsValidated),
		slog.Int("paymentsRejected", normalized.PaymentsRejected),
	)

	projected, err := svc.Projection.Run(ctx)
	if err != nil {
		logger.Error("Projection stage failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Projection stage complete",
		slog.Int("customersCreated", projected.CustomersCreated),
		slog.Int("departmentsCreated", projected.DepartmentsCreated),
		slog.Int("invoicesProjected", projected.InvoicesProjected),
		slog.Int("paymentsApplied", projected.PaymentsApplied),
	)

	logger.Info("Pipeline run complete")
}
