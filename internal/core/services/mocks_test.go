package services_test

import (
	"context"
	"time"

	"github.com/finlake/invoice_pipeline/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// Shared mocks for the repository ports exercised by the stage services.

// MockRawRepository is a mock type for the RawRepositoryWithTx interface
type MockRawRepository struct {
	mock.Mock
}

func (m *MockRawRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockRawRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockRawRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockRawRepository) ExistingInvoiceIDs(ctx context.Context, tx pgx.Tx, invoiceIDs []string) (map[string]struct{}, error) {
	args := m.Called(ctx, tx, invoiceIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]struct{}), args.Error(1)
}

func (m *MockRawRepository) InsertRawInvoices(ctx context.Context, tx pgx.Tx, invoices []models.RawInvoice) error {
	args := m.Called(ctx, tx, invoices)
	return args.Error(0)
}

func (m *MockRawRepository) ListUnprocessedInvoices(ctx context.Context, tx pgx.Tx) ([]models.RawInvoice, error) {
	args := m.Called(ctx, tx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RawInvoice), args.Error(1)
}

func (m *MockRawRepository) MarkInvoiceProcessed(ctx context.Context, tx pgx.Tx, invoiceID string) error {
	args := m.Called(ctx, tx, invoiceID)
	return args.Error(0)
}

func (m *MockRawRepository) ExistingPaymentIDs(ctx context.Context, tx pgx.Tx, paymentIDs []string) (map[string]struct{}, error) {
	args := m.Called(ctx, tx, paymentIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]struct{}), args.Error(1)
}

func (m *MockRawRepository) InsertRawPayments(ctx context.Context, tx pgx.Tx, payments []models.RawPayment) error {
	args := m.Called(ctx, tx, payments)
	return args.Error(0)
}

func (m *MockRawRepository) ListUnprocessedPayments(ctx context.Context, tx pgx.Tx) ([]models.RawPayment, error) {
	args := m.Called(ctx, tx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RawPayment), args.Error(1)
}

func (m *MockRawRepository) MarkPaymentProcessed(ctx context.Context, tx pgx.Tx, paymentID string) error {
	args := m.Called(ctx, tx, paymentID)
	return args.Error(0)
}

// MockValidatedRepository is a mock type for the ValidatedRepositoryWithTx interface
type MockValidatedRepository struct {
	mock.Mock
}

func (m *MockValidatedRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockValidatedRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockValidatedRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockValidatedRepository) InvoiceExists(ctx context.Context, tx pgx.Tx, invoiceID string) (bool, error) {
	args := m.Called(ctx, tx, invoiceID)
	return args.Bool(0), args.Error(1)
}

func (m *MockValidatedRepository) InsertValidatedInvoice(ctx context.Context, tx pgx.Tx, invoice models.ValidatedInvoice) error {
	args := m.Called(ctx, tx, invoice)
	return args.Error(0)
}

func (m *MockValidatedRepository) ListUnprocessedInvoices(ctx context.Context, tx pgx.Tx) ([]models.ValidatedInvoice, error) {
	args := m.Called(ctx, tx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ValidatedInvoice), args.Error(1)
}

func (m *MockValidatedRepository) MarkInvoiceProcessed(ctx context.Context, tx pgx.Tx, invoiceID string) error {
	args := m.Called(ctx, tx, invoiceID)
	return args.Error(0)
}

func (m *MockValidatedRepository) PaymentExists(ctx context.Context, tx pgx.Tx, paymentID string) (bool, error) {
	args := m.Called(ctx, tx, paymentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockValidatedRepository) InsertValidatedPayment(ctx context.Context, tx pgx.Tx, payment models.ValidatedPayment) error {
	args := m.Called(ctx, tx, payment)
	return args.Error(0)
}

func (m *MockValidatedRepository) ListUnprocessedPayments(ctx context.Context, tx pgx.Tx) ([]models.ValidatedPayment, error) {
	args := m.Called(ctx, tx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ValidatedPayment), args.Error(1)
}

func (m *MockValidatedRepository) MarkPaymentProcessed(ctx context.Context, tx pgx.Tx, paymentID string) error {
	args := m.Called(ctx, tx, paymentID)
	return args.Error(0)
}

// MockReportingRepository is a mock type for the ReportingRepository interface
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) CustomerExists(ctx context.Context, tx pgx.Tx, customerID string) (bool, error) {
	args := m.Called(ctx, tx, customerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReportingRepository) InsertCustomer(ctx context.Context, tx pgx.Tx, customer models.Customer) error {
	args := m.Called(ctx, tx, customer)
	return args.Error(0)
}

func (m *MockReportingRepository) FindDepartmentIDByName(ctx context.Context, tx pgx.Tx, name string) (int64, error) {
	args := m.Called(ctx, tx, name)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReportingRepository) InsertDepartment(ctx context.Context, tx pgx.Tx, name string) (int64, error) {
	args := m.Called(ctx, tx, name)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReportingRepository) InvoiceExists(ctx context.Context, tx pgx.Tx, invoiceID string) (bool, error) {
	args := m.Called(ctx, tx, invoiceID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReportingRepository) InsertInvoice(ctx context.Context, tx pgx.Tx, invoice models.Invoice) error {
	args := m.Called(ctx, tx, invoice)
	return args.Error(0)
}

func (m *MockReportingRepository) PaymentExists(ctx context.Context, tx pgx.Tx, paymentID string) (bool, error) {
	args := m.Called(ctx, tx, paymentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReportingRepository) InsertPayment(ctx context.Context, tx pgx.Tx, payment models.Payment) error {
	args := m.Called(ctx, tx, payment)
	return args.Error(0)
}

func (m *MockReportingRepository) ApplyPaymentToInvoice(ctx context.Context, tx pgx.Tx, invoiceID string, amountPaid decimal.Decimal, appliedAt time.Time) error {
	args := m.Called(ctx, tx, invoiceID, amountPaid, appliedAt)
	return args.Error(0)
}

// MockSchemaRepository is a mock type for the SchemaRepository interface
type MockSchemaRepository struct {
	mock.Mock
}

func (m *MockSchemaRepository) ExistingTableNames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockSchemaRepository) ApplySchema(migrationsPath string) error {
	args := m.Called(migrationsPath)
	return args.Error(0)
}

// MockReportQueryRepository is a mock type for the ReportQueryRepository interface
type MockReportQueryRepository struct {
	mock.Mock
}

func (m *MockReportQueryRepository) TopCustomersByPaid(ctx context.Context, limit int) ([]models.CustomerPaidTotal, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CustomerPaidTotal), args.Error(1)
}

func (m *MockReportQueryRepository) InvoiceStatusDistribution(ctx context.Context) ([]models.PaymentStatusBucket, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PaymentStatusBucket), args.Error(1)
}

func (m *MockReportQueryRepository) RevenueByDepartment(ctx context.Context) ([]models.DepartmentRevenue, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DepartmentRevenue), args.Error(1)
}

func (m *MockReportQueryRepository) AveragePayment(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockReportQueryRepository) DailyPaymentTotals(ctx context.Context) ([]models.DailyPaymentTotal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DailyPaymentTotal), args.Error(1)
}
