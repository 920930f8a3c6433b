package services_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/finlake/invoice_pipeline/internal/apperrors"
	"github.com/finlake/invoice_pipeline/internal/classification"
	"github.com/finlake/invoice_pipeline/internal/core/services"
	"github.com/finlake/invoice_pipeline/internal/dto"
	"github.com/finlake/invoice_pipeline/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// In-memory tier stores used to drive the full stage chain without a
// database. The stage services treat the transaction handle as opaque, so
// the fakes hand back nil and apply writes directly.

type fakeRawStore struct {
	invoices []models.RawInvoice
	payments []models.RawPayment
}

func (f *fakeRawStore) Begin(ctx context.Context) (pgx.Tx, error)     { return nil, nil }
func (f *fakeRawStore) Commit(ctx context.Context, tx pgx.Tx) error   { return nil }
func (f *fakeRawStore) Rollback(ctx context.Context, tx pgx.Tx) error { return nil }

func (f *fakeRawStore) ExistingInvoiceIDs(ctx context.Context, tx pgx.Tx, invoiceIDs []string) (map[string]struct{}, error) {
	existing := make(map[string]struct{})
	for _, id := range invoiceIDs {
		for _, inv := range f.invoices {
			if inv.InvoiceID == id {
				existing[id] = struct{}{}
			}
		}
	}
	return existing, nil
}

func (f *fakeRawStore) InsertRawInvoices(ctx context.Context, tx pgx.Tx, invoices []models.RawInvoice) error {
	f.invoices = append(f.invoices, invoices...)
	return nil
}

func (f *fakeRawStore) ListUnprocessedInvoices(ctx context.Context, tx pgx.Tx) ([]models.RawInvoice, error) {
	var out []models.RawInvoice
	for _, inv := range f.invoices {
		if !inv.Processed {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (f *fakeRawStore) MarkInvoiceProcessed(ctx context.Context, tx pgx.Tx, invoiceID string) error {
	for i := range f.invoices {
		if f.invoices[i].InvoiceID == invoiceID {
			f.invoices[i].Processed = true
		}
	}
	return nil
}

func (f *fakeRawStore) ExistingPaymentIDs(ctx context.Context, tx pgx.Tx, paymentIDs []string) (map[string]struct{}, error) {
	existing := make(map[string]struct{})
	for _, id := range paymentIDs {
		for _, p := range f.payments {
			if p.PaymentID == id {
				existing[id] = struct{}{}
			}
		}
	}
	return existing, nil
}

func (f *fakeRawStore) InsertRawPayments(ctx context.Context, tx pgx.Tx, payments []models.RawPayment) error {
	f.payments = append(f.payments, payments...)
	return nil
}

func (f *fakeRawStore) ListUnprocessedPayments(ctx context.Context, tx pgx.Tx) ([]models.RawPayment, error) {
	var out []models.RawPayment
	for _, p := range f.payments {
		if !p.Processed {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeRawStore) MarkPaymentProcessed(ctx context.Context, tx pgx.Tx, paymentID string) error {
	for i := range f.payments {
		if f.payments[i].PaymentID == paymentID {
			f.payments[i].Processed = true
		}
	}
	return nil
}

type fakeValidatedStore struct {
	invoices []models.ValidatedInvoice
	payments []models.ValidatedPayment
}

func (f *fakeValidatedStore) Begin(ctx context.Context) (pgx.Tx, error)     { return nil, nil }
func (f *fakeValidatedStore) Commit(ctx context.Context, tx pgx.Tx) error   { return nil }
func (f *fakeValidatedStore) Rollback(ctx context.Context, tx pgx.Tx) error { return nil }

func (f *fakeValidatedStore) InvoiceExists(ctx context.Context, tx pgx.Tx, invoiceID string) (bool, error) {
	for _, inv := range f.invoices {
		if inv.InvoiceID == invoiceID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeValidatedStore) InsertValidatedInvoice(ctx context.Context, tx pgx.Tx, invoice models.ValidatedInvoice) error {
	f.invoices = append(f.invoices, invoice)
	return nil
}

func (f *fakeValidatedStore) ListUnprocessedInvoices(ctx context.Context, tx pgx.Tx) ([]models.ValidatedInvoice, error) {
	var out []models.ValidatedInvoice
	for _, inv := range f.invoices {
		if !inv.Processed {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (f *fakeValidatedStore) MarkInvoiceProcessed(ctx context.Context, tx pgx.Tx, invoiceID string) error {
	for i := range f.invoices {
		if f.invoices[i].InvoiceID == invoiceID {
			f.invoices[i].Processed = true
		}
	}
	return nil
}

func (f *fakeValidatedStore) PaymentExists(ctx context.Context, tx pgx.Tx, paymentID string) (bool, error) {
	for _, p := range f.payments {
		if p.PaymentID == paymentID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeValidatedStore) InsertValidatedPayment(ctx context.Context, tx pgx.Tx, payment models.ValidatedPayment) error {
	f.payments = append(f.payments, payment)
	return nil
}

func (f *fakeValidatedStore) ListUnprocessedPayments(ctx context.Context, tx pgx.Tx) ([]models.ValidatedPayment, error) {
	var out []models.ValidatedPayment
	for _, p := range f.payments {
		if !p.Processed {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeValidatedStore) MarkPaymentProcessed(ctx context.Context, tx pgx.Tx, paymentID string) error {
	for i := range f.payments {
		if f.payments[i].PaymentID == paymentID {
			f.payments[i].Processed = true
		}
	}
	return nil
}

type fakeReportingStore struct {
	customers   []models.Customer
	departments []models.Department
	invoices    []models.Invoice
	payments    []models.Payment
}

func (f *fakeReportingStore) CustomerExists(ctx context.Context, tx pgx.Tx, customerID string) (bool, error) {
	for _, c := range f.customers {
		if c.CustomerID == customerID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeReportingStore) InsertCustomer(ctx context.Context, tx pgx.Tx, customer models.Customer) error {
	f.customers = append(f.customers, customer)
	return nil
}

func (f *fakeReportingStore) FindDepartmentIDByName(ctx context.Context, tx pgx.Tx, name string) (int64, error) {
	for _, d := range f.departments {
		if d.DepartmentName == name {
			return d.DepartmentID, nil
		}
	}
	return 0, apperrors.ErrNotFound
}

func (f *fakeReportingStore) InsertDepartment(ctx context.Context, tx pgx.Tx, name string) (int64, error) {
	id := int64(len(f.departments) + 1)
	f.departments = append(f.departments, models.Department{DepartmentID: id, DepartmentName: name})
	return id, nil
}

func (f *fakeReportingStore) InvoiceExists(ctx context.Context, tx pgx.Tx, invoiceID string) (bool, error) {
	for _, inv := range f.invoices {
		if inv.InvoiceID == invoiceID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeReportingStore) InsertInvoice(ctx context.Context, tx pgx.Tx, invoice models.Invoice) error {
	f.invoices = append(f.invoices, invoice)
	return nil
}

func (f *fakeReportingStore) PaymentExists(ctx context.Context, tx pgx.Tx, paymentID string) (bool, error) {
	for _, p := range f.payments {
		if p.PaymentID == paymentID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeReportingStore) InsertPayment(ctx context.Context, tx pgx.Tx, payment models.Payment) error {
	f.payments = append(f.payments, payment)
	return nil
}

func (f *fakeReportingStore) ApplyPaymentToInvoice(ctx context.Context, tx pgx.Tx, invoiceID string, amountPaid decimal.Decimal, appliedAt time.Time) error {
	for i := range f.invoices {
		if f.invoices[i].InvoiceID == invoiceID {
			f.invoices[i].AmountPaid = f.invoices[i].AmountPaid.Add(amountPaid)
			f.invoices[i].Balance = f.invoices[i].AmountDue.Sub(f.invoices[i].AmountPaid)
			f.invoices[i].UpdatedAt = appliedAt
		}
	}
	return nil
}

func writeDropFile(t *testing.T, dir, name string, lines ...string) {
	t.Helper()
	content := ""
	for _, line := range lines {
		content += line + "\n"
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func writeMappingsFile(t *testing.T, mappings map[string][]string) string {
	t.Helper()
	data, err := json.Marshal(mappings)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "department_mappings.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

// TestPipeline_DropFilesToReportingTier runs intake, normalization and
// projection over one drop of source files and checks the reporting tier
// that comes out the other end: the invoice with a missing amount is
// consumed in the raw tier and nothing downstream ever sees it, while the
// valid invoice picks up its customer, its department and its payment.
func TestPipeline_DropFilesToReportingTier(t *testing.T) {
	sourceDir := t.TempDir()
	writeDropFile(t, sourceDir, "invoices_2025_01_15.csv",
		invoiceHeader,
		"INV-1,CUST-1,Ada,Lovelace,ada@example.com,12 Analytical Way,Consulting,2025-01-10,2025-02-10,1500.00,USD,Pending",
		"INV-2,CUST-1,Ada,Lovelace,ada@example.com,12 Analytical Way,Consulting,2025-01-11,2025-02-11,,USD,Pending",
	)
	writeDropFile(t, sourceDir, "payments_2025_01_15.csv",
		paymentHeader,
		"PAY-1,INV-1,2025-02-10,2025-01-20,1500.00,750.00",
	)

	mappingsPath := writeMappingsFile(t, map[string][]string{
		"Professional Services": {"Consulting"},
	})
	lookup, err := classification.Load(mappingsPath)
	require.NoError(t, err)

	rawStore := &fakeRawStore{}
	validatedStore := &fakeValidatedStore{}
	reportingStore := &fakeReportingStore{}

	intake := services.NewIntakeService(rawStore, sourceDir, "")
	normalize := services.NewNormalizeService(rawStore, validatedStore)
	projection := services.NewProjectionService(validatedStore, reportingStore, lookup)

	ctx := context.Background()

	intakeResult, err := intake.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, intakeResult.InvoicesInserted)
	require.Equal(t, 1, intakeResult.PaymentsInserted)
	require.Equal(t, 0, intakeResult.FilesSkipped)

	normalizeResult, err := normalize.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, normalizeResult.InvoicesValidated)
	require.Equal(t, 1, normalizeResult.InvoicesRejected)
	require.Equal(t, 1, normalizeResult.PaymentsValidated)
	require.Equal(t, 0, normalizeResult.PaymentsRejected)

	projectionResult, err := projection.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, projectionResult.CustomersCreated)
	require.Equal(t, 1, projectionResult.DepartmentsCreated)
	require.Equal(t, 1, projectionResult.InvoicesProjected)
	require.Equal(t, 1, projectionResult.PaymentsApplied)

	// Exactly one row per reporting table.
	require.Len(t, reportingStore.customers, 1)
	require.Len(t, reportingStore.departments, 1)
	require.Len(t, reportingStore.invoices, 1)
	require.Len(t, reportingStore.payments, 1)

	require.Equal(t, "CUST-1", reportingStore.customers[0].CustomerID)
	require.Equal(t, "Professional Services", reportingStore.departments[0].DepartmentName)

	invoice := reportingStore.invoices[0]
	require.Equal(t, "INV-1", invoice.InvoiceID)
	require.Equal(t, reportingStore.departments[0].DepartmentID, invoice.DepartmentID)
	require.Equal(t, "01-10-2025", invoice.InvoiceDate)
	require.True(t, invoice.AmountDue.Equal(decimal.RequireFromString("1500.00")))
	require.True(t, invoice.AmountPaid.Equal(decimal.RequireFromString("750.00")))
	require.True(t, invoice.Balance.Equal(decimal.RequireFromString("750.00")))

	payment := reportingStore.payments[0]
	require.Equal(t, "PAY-1", payment.PaymentID)
	require.Equal(t, "INV-1", payment.InvoiceID)
	require.Equal(t, "01-20-2025", payment.PaymentDate)
	require.True(t, payment.AmountPaid.Equal(decimal.RequireFromString("750.00")))

	// The rejected raw invoice is consumed in place: processed, with no
	// validated counterpart.
	require.Len(t, rawStore.invoices, 2)
	for _, raw := range rawStore.invoices {
		require.True(t, raw.Processed, "raw invoice %s should be consumed", raw.InvoiceID)
	}
	require.Len(t, validatedStore.invoices, 1)
	require.Equal(t, "INV-1", validatedStore.invoices[0].InvoiceID)

	// A second pass over the same drop directory changes nothing.
	intakeResult, err = intake.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, intakeResult.InvoicesInserted)
	require.Equal(t, 0, intakeResult.PaymentsInserted)
	require.Equal(t, 3, intakeResult.RowsSkipped)

	normalizeResult, err = normalize.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, dto.NormalizeResult{}, normalizeResult)

	projectionResult, err = projection.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, dto.ProjectionResult{}, projectionResult)

	require.Len(t, reportingStore.invoices, 1)
	require.True(t, reportingStore.invoices[0].AmountPaid.Equal(decimal.RequireFromString("750.00")))
}
