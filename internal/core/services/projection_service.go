package services

import (
	"context"
	"errors"
	"time"

	"github.com/finlake/invoice_pipeline/internal/apperrors"
	"github.com/finlake/invoice_pipeline/internal/classification"
	portsrepo "github.com/finlake/invoice_pipeline/internal/core/ports/repositories"
	portssvc "github.com/finlake/invoice_pipeline/internal/core/ports/services"
	"github.com/finlake/invoice_pipeline/internal/dto"
	"github.com/finlake/invoice_pipeline/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ProjectionService moves unprocessed validated rows into the reporting
// tier: customer and department dimensions first, then invoice facts, then
// applied payments.
type ProjectionService struct {
	BaseService
	validatedRepo portsrepo.ValidatedRepositoryWithTx
	reportingRepo portsrepo.ReportingRepository
	lookup        *classification.Lookup
	now           func() time.Time
}

var _ portssvc.ProjectionSvc = (*ProjectionService)(nil)

func NewProjectionService(validatedRepo portsrepo.ValidatedRepositoryWithTx, reportingRepo portsrepo.ReportingRepository, lookup *classification.Lookup) *ProjectionService {
	return &ProjectionService{
		validatedRepo: validatedRepo,
		reportingRepo: reportingRepo,
		lookup:        lookup,
		now:           time.Now,
	}
}

// Run projects every unprocessed validated row in one transaction.
// Invoices go first so that payments landing in the same invocation find
// their parent already present.
func (s *ProjectionService) Run(ctx context.Context) (dto.ProjectionResult, error) {
	var result dto.ProjectionResult

	tx, err := s.validatedRepo.Begin(ctx)
	if err != nil {
		return result, err
	}
	defer s.validatedRepo.Rollback(ctx, tx) // no-op once committed

	if err := s.projectInvoices(ctx, tx, &result); err != nil {
		return dto.ProjectionResult{}, err
	}
	if err := s.projectPayments(ctx, tx, &result); err != nil {
		return dto.ProjectionResult{}, err
	}

	if err := s.validatedRepo.Commit(ctx, tx); err != nil {
		return dto.ProjectionResult{}, err
	}

	s.LogInfo(ctx, "Reporting projection finished",
		"customers_created", result.CustomersCreated,
		"departments_created", result.DepartmentsCreated,
		"invoices_projected", result.InvoicesProjected,
		"payments_applied", result.PaymentsApplied,
	)
	return result, nil
}

func (s *ProjectionService) projectInvoices(ctx context.Context, tx pgx.Tx, result *dto.ProjectionResult) error {
	invoices, err := s.validatedRepo.ListUnprocessedInvoices(ctx, tx)
	if err != nil {
		return err
	}

	for _, v := range invoices {
		created, err := s.upsertCustomer(ctx, tx, v)
		if err != nil {
			return err
		}
		if created {
			result.CustomersCreated++
		}

		departmentID, deptCreated, err := s.resolveDepartment(ctx, tx, v.InvoiceType)
		if err != nil {
			return err
		}
		if deptCreated {
			result.DepartmentsCreated++
		}

		exists, err := s.reportingRepo.InvoiceExists(ctx, tx, v.InvoiceID)
		if err != nil {
			return err
		}
		if !exists {
			now := s.now().UTC()
			invoice := models.Invoice{
				InvoiceID:    v.InvoiceID,
				CustomerID:   v.CustomerID,
				DepartmentID: departmentID,
				InvoiceType:  v.InvoiceType,
				InvoiceDate:  v.InvoiceDate,
				DueDate:      v.DueDate,
				AmountDue:    v.AmountDue,
				// Bootstrap invariant: nothing paid yet, payments are
				// applied separately as they arrive.
				AmountPaid: decimal.Zero,
				Balance:    v.AmountDue,
				Currency:   v.Currency,
				Status:     v.Status,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if err := s.reportingRepo.InsertInvoice(ctx, tx, invoice); err != nil {
				return err
			}
			result.InvoicesProjected++
		}

		if err := s.validatedRepo.MarkInvoiceProcessed(ctx, tx, v.InvoiceID); err != nil {
			return err
		}
	}
	return nil
}

func (s *ProjectionService) projectPayments(ctx context.Context, tx pgx.Tx, result *dto.ProjectionResult) error {
	payments, err := s.validatedRepo.ListUnprocessedPayments(ctx, tx)
	if err != nil {
		return err
	}

	for _, v := range payments {
		exists, err := s.reportingRepo.PaymentExists(ctx, tx, v.PaymentID)
		if err != nil {
			return err
		}
		if !exists {
			invoiceExists, err := s.reportingRepo.InvoiceExists(ctx, tx, v.InvoiceID)
			if err != nil {
				return err
			}
			if !invoiceExists {
				// Parent was rejected upstream or never ingested; the
				// payment is consumed, not retried.
				s.LogWarn(ctx, "Dropping payment without parent invoice",
					"payment_id", v.PaymentID, "invoice_id", v.InvoiceID)
			} else {
				payment := models.Payment{
					PaymentID:   v.PaymentID,
					InvoiceID:   v.InvoiceID,
					PaymentDate: v.PaymentDate,
					AmountPaid:  v.AmountPaid,
				}
				if err := s.reportingRepo.InsertPayment(ctx, tx, payment); err != nil {
					return err
				}
				if err := s.reportingRepo.ApplyPaymentToInvoice(ctx, tx, v.InvoiceID, v.AmountPaid, s.now().UTC()); err != nil {
					return err
				}
				result.PaymentsApplied++
			}
		}

		if err := s.validatedRepo.MarkPaymentProcessed(ctx, tx, v.PaymentID); err != nil {
			return err
		}
	}
	return nil
}

// upsertCustomer inserts the customer dimension row when absent. First
// write wins; an existing row is never touched.
func (s *ProjectionService) upsertCustomer(ctx context.Context, tx pgx.Tx, v models.ValidatedInvoice) (bool, error) {
	exists, err := s.reportingRepo.CustomerExists(ctx, tx, v.CustomerID)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	customer := models.Customer{
		CustomerID:      v.CustomerID,
		FirstName:       v.FirstName,
		LastName:        v.LastName,
		CustomerEmail:   v.CustomerEmail,
		CustomerAddress: v.CustomerAddress,
	}
	if err := s.reportingRepo.InsertCustomer(ctx, tx, customer); err != nil {
		return false, err
	}
	return true, nil
}

// resolveDepartment maps the invoice type through the classification lookup
// and finds or creates the department row for the resolved name.
func (s *ProjectionService) resolveDepartment(ctx context.Context, tx pgx.Tx, invoiceType string) (int64, bool, error) {
	name := s.lookup.DepartmentFor(invoiceType)

	id, err := s.reportingRepo.FindDepartmentIDByName(ctx, tx, name)
	if err == nil {
		return id, false, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return 0, false, err
	}

	id, err = s.reportingRepo.InsertDepartment(ctx, tx, name)
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}
