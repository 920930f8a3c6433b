package repositories

import (
	"context"

	"github.com/finlake/invoice_pipeline/internal/models"
	"github.com/jackc/pgx/v5"
)

// RawInvoiceRepository defines operations on the raw invoice tier. Methods
// that mutate or must see uncommitted stage work take an explicit pgx.Tx.
type RawInvoiceRepository interface {
	// ExistingInvoiceIDs returns the subset of the given business keys that
	// are already present in raw_invoices. Intake uses this for its
	// set-difference check before inserting anything.
	ExistingInvoiceIDs(ctx context.Context, tx pgx.Tx, invoiceIDs []string) (map[string]struct{}, error)

	// InsertRawInvoices appends the given rows to raw_invoices.
	InsertRawInvoices(ctx context.Context, tx pgx.Tx, invoices []models.RawInvoice) error

	// ListUnprocessedInvoices retrieves every raw invoice with processed = false.
	ListUnprocessedInvoices(ctx context.Context, tx pgx.Tx) ([]models.RawInvoice, error)

	// MarkInvoiceProcessed flips processed to true for one raw invoice.
	// The transition is monotonic; nothing ever reverts it.
	MarkInvoiceProcessed(ctx context.Context, tx pgx.Tx, invoiceID string) error
}

// RawPaymentRepository defines operations on the raw payment tier.
type RawPaymentRepository interface {
	ExistingPaymentIDs(ctx context.Context, tx pgx.Tx, paymentIDs []string) (map[string]struct{}, error)
	InsertRawPayments(ctx context.Context, tx pgx.Tx, payments []models.RawPayment) error
	ListUnprocessedPayments(ctx context.Context, tx pgx.Tx) ([]models.RawPayment, error)
	MarkPaymentProcessed(ctx context.Context, tx pgx.Tx, paymentID string) error
}

// RawRepositoryFacade combines both raw-tier repositories.
type RawRepositoryFacade interface {
	RawInvoiceRepository
	RawPaymentRepository
}

// RawRepositoryWithTx extends RawRepositoryFacade with transaction capabilities.
type RawRepositoryWithTx interface {
	RawRepositoryFacade
	TransactionManager
}
