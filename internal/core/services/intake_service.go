package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/finlake/invoice_pipeline/internal/apperrors"
	portsrepo "github.com/finlake/invoice_pipeline/internal/core/ports/repositories"
	portssvc "github.com/finlake/invoice_pipeline/internal/core/ports/services"
	"github.com/finlake/invoice_pipeline/internal/csvsource"
	"github.com/finlake/invoice_pipeline/internal/dto"
	"github.com/finlake/invoice_pipeline/internal/models"
	"github.com/jackc/pgx/v5"
)

// IntakeService loads source CSV drop files into the raw tier. Re-running
// over the same files is a no-op for already-seen business keys.
type IntakeService struct {
	BaseService
	rawRepo      portsrepo.RawRepositoryWithTx
	sourceDir    string
	processedDir string // empty disables relocation after load
	now          func() time.Time
}

var _ portssvc.IntakeSvc = (*IntakeService)(nil)

func NewIntakeService(rawRepo portsrepo.RawRepositoryWithTx, sourceDir, processedDir string) *IntakeService {
	return &IntakeService{
		rawRepo:      rawRepo,
		sourceDir:    sourceDir,
		processedDir: processedDir,
		now:          time.Now,
	}
}

// Run scans the source directory once and appends new rows to the raw
// tables, all inside one transaction. A file that fails to parse is skipped
// whole; a repository failure aborts the stage and rolls everything back;
// a missing source directory is fatal before any row is touched.
func (s *IntakeService) Run(ctx context.Context) (dto.IntakeResult, error) {
	var result dto.IntakeResult

	if _, err := os.Stat(s.sourceDir); err != nil {
		return result, fmt.Errorf("%w: source directory %s: %v", apperrors.ErrPrecondition, s.sourceDir, err)
	}

	entries, err := os.ReadDir(s.sourceDir)
	if err != nil {
		return result, fmt.Errorf("%w: reading source directory %s: %v", apperrors.ErrPrecondition, s.sourceDir, err)
	}

	tx, err := s.rawRepo.Begin(ctx)
	if err != nil {
		return result, err
	}
	defer s.rawRepo.Rollback(ctx, tx) // no-op once committed

	var loadedPaths []string
	ingestedAt := s.now().UTC()

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		path := filepath.Join(s.sourceDir, name)

		var file dto.FileIntakeResult
		switch csvsource.Classify(name) {
		case csvsource.KindInvoices:
			rows, parseErr := csvsource.ParseInvoices(path)
			if parseErr != nil {
				// Parse failures skip the whole file rather than load part of it.
				s.LogWarn(ctx, "Skipping unparseable file", "file", name, "error", parseErr.Error())
				result.FilesSkipped++
				continue
			}
			file, err = s.intakeInvoices(ctx, tx, rows, ingestedAt)
		case csvsource.KindPayments:
			rows, parseErr := csvsource.ParsePayments(path)
			if parseErr != nil {
				s.LogWarn(ctx, "Skipping unparseable file", "file", name, "error", parseErr.Error())
				result.FilesSkipped++
				continue
			}
			file, err = s.intakePayments(ctx, tx, rows, ingestedAt)
		default:
			s.LogWarn(ctx, "Skipping unrecognized file", "file", name)
			result.FilesSkipped++
			continue
		}
		if err != nil {
			// Repository failures abort the stage; the deferred rollback
			// discards whatever this run had staged.
			return dto.IntakeResult{}, err
		}

		file.FileName = name
		result.Files = append(result.Files, file)
		result.RowsSkipped += file.Skipped
		switch file.Table {
		case "raw_invoices":
			result.InvoicesInserted += file.Inserted
		case "raw_payments":
			result.PaymentsInserted += file.Inserted
		}
		loadedPaths = append(loadedPaths, path)
	}

	if err := s.rawRepo.Commit(ctx, tx); err != nil {
		return dto.IntakeResult{}, err
	}

	// Housekeeping happens only after the load committed; a relocation
	// failure is logged, not escalated.
	if s.processedDir != "" {
		s.relocate(ctx, loadedPaths)
	}

	s.LogInfo(ctx, "Raw intake finished",
		"invoices_inserted", result.InvoicesInserted,
		"payments_inserted", result.PaymentsInserted,
		"rows_skipped", result.RowsSkipped,
		"files_skipped", result.FilesSkipped,
	)
	return result, nil
}

func (s *IntakeService) intakeInvoices(ctx context.Context, tx pgx.Tx, rows []models.RawInvoice, ingestedAt time.Time) (dto.FileIntakeResult, error) {
	file := dto.FileIntakeResult{Table: "raw_invoices"}

	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.InvoiceID
	}
	existing, err := s.rawRepo.ExistingInvoiceIDs(ctx, tx, ids)
	if err != nil {
		return file, err
	}

	// Set difference against stored keys; seen also dedups within the file,
	// since the generator occasionally emits duplicate rows.
	seen := make(map[string]struct{}, len(rows))
	fresh := make([]models.RawInvoice, 0, len(rows))
	for _, row := range rows {
		if _, dup := existing[row.InvoiceID]; dup {
			file.Skipped++
			continue
		}
		if _, dup := seen[row.InvoiceID]; dup {
			file.Skipped++
			continue
		}
		seen[row.InvoiceID] = struct{}{}
		row.IngestedAt = ingestedAt
		fresh = append(fresh, row)
	}

	if err := s.rawRepo.InsertRawInvoices(ctx, tx, fresh); err != nil {
		return file, err
	}
	file.Inserted = len(fresh)
	return file, nil
}

func (s *IntakeService) intakePayments(ctx context.Context, tx pgx.Tx, rows []models.RawPayment, ingestedAt time.Time) (dto.FileIntakeResult, error) {
	file := dto.FileIntakeResult{Table: "raw_payments"}

	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.PaymentID
	}
	existing, err := s.rawRepo.ExistingPaymentIDs(ctx, tx, ids)
	if err != nil {
		return file, err
	}

	seen := make(map[string]struct{}, len(rows))
	fresh := make([]models.RawPayment, 0, len(rows))
	for _, row := range rows {
		if _, dup := existing[row.PaymentID]; dup {
			file.Skipped++
			continue
		}
		if _, dup := seen[row.PaymentID]; dup {
			file.Skipped++
			continue
		}
		seen[row.PaymentID] = struct{}{}
		row.IngestedAt = ingestedAt
		fresh = append(fresh, row)
	}

	if err := s.rawRepo.InsertRawPayments(ctx, tx, fresh); err != nil {
		return file, err
	}
	file.Inserted = len(fresh)
	return file, nil
}

// relocate moves loaded files into the processed directory.
func (s *IntakeService) relocate(ctx context.Context, paths []string) {
	if len(paths) == 0 {
		return
	}
	if err := os.MkdirAll(s.processedDir, 0o755); err != nil {
		s.LogWarn(ctx, "Could not create processed directory", "dir", s.processedDir, "error", err.Error())
		return
	}
	for _, path := range paths {
		target := filepath.Join(s.processedDir, filepath.Base(path))
		if err := os.Rename(path, target); err != nil {
			s.LogWarn(ctx, "Could not relocate processed file", "file", path, "error", err.Error())
		}
	}
}
