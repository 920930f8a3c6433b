package repositories

import (
	"context"
	"time"

	"github.com/finlake/invoice_pipeline/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ReportingRepository defines write operations on the reporting tier
// dimensions and facts. All methods run inside the projection stage's
// single transaction.
type ReportingRepository interface {
	// CustomerExists reports whether the customer dimension already holds
	// the given business key. First write wins; existing rows are never updated.
	CustomerExists(ctx context.Context, tx pgx.Tx, customerID string) (bool, error)
	InsertCustomer(ctx context.Context, tx pgx.Tx, customer models.Customer) error

	// FindDepartmentIDByName resolves a department name to its surrogate id,
	// returning apperrors.ErrNotFound when absent.
	FindDepartmentIDByName(ctx context.Context, tx pgx.Tx, name string) (int64, error)

	// InsertDepartment creates a department and returns its auto-assigned id.
	InsertDepartment(ctx context.Context, tx pgx.Tx, name string) (int64, error)

	InvoiceExists(ctx context.Context, tx pgx.Tx, invoiceID string) (bool, error)
	InsertInvoice(ctx context.Context, tx pgx.Tx, invoice models.Invoice) error

	PaymentExists(ctx context.Context, tx pgx.Tx, paymentID string) (bool, error)
	InsertPayment(ctx context.Context, tx pgx.Tx, payment models.Payment) error

	// ApplyPaymentToInvoice accumulates an applied payment into the parent
	// invoice: amount_paid += amountPaid, balance = amount_due - amount_paid,
	// updated_at = appliedAt. Payments are the only writers of these fields.
	ApplyPaymentToInvoice(ctx context.Context, tx pgx.Tx, invoiceID string, amountPaid decimal.Decimal, appliedAt time.Time) error
}

// ReportingRepositoryWithTx extends ReportingRepository with transaction capabilities.
type ReportingRepositoryWithTx interface {
	ReportingRepository
	TransactionManager
}
