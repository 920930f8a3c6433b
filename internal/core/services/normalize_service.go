package services

import (
	"context"

	portsrepo "github.com/finlake/invoice_pipeline/internal/core/ports/repositories"
	portssvc "github.com/finlake/invoice_pipeline/internal/core/ports/services"
	"github.com/finlake/invoice_pipeline/internal/dto"
	"github.com/finlake/invoice_pipeline/internal/models"
	"github.com/finlake/invoice_pipeline/internal/utils/dates"
	"github.com/jackc/pgx/v5"
)

// NormalizeService moves unprocessed raw rows into the validated tier,
// applying the cleaning rules and the amount gate. A raw row is consumed
// exactly once: rejected rows are marked processed without being copied.
type NormalizeService struct {
	BaseService
	rawRepo       portsrepo.RawRepositoryWithTx
	validatedRepo portsrepo.ValidatedRepositoryFacade
}

var _ portssvc.NormalizeSvc = (*NormalizeService)(nil)

func NewNormalizeService(rawRepo portsrepo.RawRepositoryWithTx, validatedRepo portsrepo.ValidatedRepositoryFacade) *NormalizeService {
	return &NormalizeService{
		rawRepo:       rawRepo,
		validatedRepo: validatedRepo,
	}
}

// Run validates every unprocessed raw row in one transaction. Any error
// rolls back all inserts and flag updates together, so a partial run never
// leaves flags ahead of data.
func (s *NormalizeService) Run(ctx context.Context) (dto.NormalizeResult, error) {
	var result dto.NormalizeResult

	tx, err := s.rawRepo.Begin(ctx)
	if err != nil {
		return result, err
	}
	defer s.rawRepo.Rollback(ctx, tx) // no-op once committed

	if err := s.normalizeInvoices(ctx, tx, &result); err != nil {
		return dto.NormalizeResult{}, err
	}
	if err := s.normalizePayments(ctx, tx, &result); err != nil {
		return dto.NormalizeResult{}, err
	}

	if err := s.rawRepo.Commit(ctx, tx); err != nil {
		return dto.NormalizeResult{}, err
	}

	s.LogInfo(ctx, "Normalization finished",
		"invoices_validated", result.InvoicesValidated,
		"invoices_rejected", result.InvoicesRejected,
		"payments_validated", result.PaymentsValidated,
		"payments_rejected", result.PaymentsRejected,
	)
	return result, nil
}

func (s *NormalizeService) normalizeInvoices(ctx context.Context, tx pgx.Tx, result *dto.NormalizeResult) error {
	invoices, err := s.rawRepo.ListUnprocessedInvoices(ctx, tx)
	if err != nil {
		return err
	}

	for _, raw := range invoices {
		// Null or zero amount is a data-quality rejection: the row is
		// consumed without ever reaching the validated tier.
		if !raw.AmountDue.Valid || raw.AmountDue.Decimal.IsZero() {
			result.InvoicesRejected++
			if err := s.rawRepo.MarkInvoiceProcessed(ctx, tx, raw.InvoiceID); err != nil {
				return err
			}
			continue
		}

		exists, err := s.validatedRepo.InvoiceExists(ctx, tx, raw.InvoiceID)
		if err != nil {
			return err
		}
		if !exists {
			validated := models.ValidatedInvoice{
				InvoiceID:       raw.InvoiceID,
				CustomerID:      raw.CustomerID,
				FirstName:       raw.FirstName,
				LastName:        raw.LastName,
				CustomerEmail:   raw.CustomerEmail,
				CustomerAddress: raw.CustomerAddress,
				InvoiceType:     raw.InvoiceType,
				InvoiceDate:     dates.Normalize(raw.InvoiceDate),
				DueDate:         dates.Normalize(raw.DueDate),
				AmountDue:       raw.AmountDue.Decimal,
				Currency:        raw.Currency,
				Status:          raw.Status,
			}
			if err := s.validatedRepo.InsertValidatedInvoice(ctx, tx, validated); err != nil {
				return err
			}
			result.InvoicesValidated++
		}

		if err := s.rawRepo.MarkInvoiceProcessed(ctx, tx, raw.InvoiceID); err != nil {
			return err
		}
	}
	return nil
}

func (s *NormalizeService) normalizePayments(ctx context.Context, tx pgx.Tx, result *dto.NormalizeResult) error {
	payments, err := s.rawRepo.ListUnprocessedPayments(ctx, tx)
	if err != nil {
		return err
	}

	for _, raw := range payments {
		if !raw.AmountPaid.Valid || raw.AmountPaid.Decimal.IsZero() {
			result.PaymentsRejected++
			if err := s.rawRepo.MarkPaymentProcessed(ctx, tx, raw.PaymentID); err != nil {
				return err
			}
			continue
		}

		exists, err := s.validatedRepo.PaymentExists(ctx, tx, raw.PaymentID)
		if err != nil {
			return err
		}
		if !exists {
			validated := models.ValidatedPayment{
				PaymentID:   raw.PaymentID,
				InvoiceID:   raw.InvoiceID,
				DueDate:     dates.Normalize(raw.DueDate),
				PaymentDate: dates.Normalize(raw.PaymentDate),
				AmountDue:   raw.AmountDue.Decimal,
				AmountPaid:  raw.AmountPaid.Decimal,
			}
			if err := s.validatedRepo.InsertValidatedPayment(ctx, tx, validated); err != nil {
				return err
			}
			result.PaymentsValidated++
		}

		if err := s.rawRepo.MarkPaymentProcessed(ctx, tx, raw.PaymentID); err != nil {
			return err
		}
	}
	return nil
}
