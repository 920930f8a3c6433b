package repositories

import (
	"context"

	"github.com/finlake/invoice_pipeline/internal/models"
	"github.com/jackc/pgx/v5"
)

// ValidatedInvoiceRepository defines operations on the validated invoice tier.
type ValidatedInvoiceRepository interface {
	// InvoiceExists reports whether a validated invoice with the given
	// business key is already present. Normalization re-checks this even
	// though the processed filter should exclude reprocessing; it protects
	// against partial prior failures.
	InvoiceExists(ctx context.Context, tx pgx.Tx, invoiceID string) (bool, error)

	InsertValidatedInvoice(ctx context.Context, tx pgx.Tx, invoice models.ValidatedInvoice) error
	ListUnprocessedInvoices(ctx context.Context, tx pgx.Tx) ([]models.ValidatedInvoice, error)
	MarkInvoiceProcessed(ctx context.Context, tx pgx.Tx, invoiceID string) error
}

// ValidatedPaymentRepository defines operations on the validated payment tier.
type ValidatedPaymentRepository interface {
	PaymentExists(ctx context.Context, tx pgx.Tx, paymentID string) (bool, error)
	InsertValidatedPayment(ctx context.Context, tx pgx.Tx, payment models.ValidatedPayment) error
	ListUnprocessedPayments(ctx context.Context, tx pgx.Tx) ([]models.ValidatedPayment, error)
	MarkPaymentProcessed(ctx context.Context, tx pgx.Tx, paymentID string) error
}

// ValidatedRepositoryFacade combines both validated-tier repositories.
type ValidatedRepositoryFacade interface {
	ValidatedInvoiceRepository
	ValidatedPaymentRepository
}

// ValidatedRepositoryWithTx extends ValidatedRepositoryFacade with transaction capabilities.
type ValidatedRepositoryWithTx interface {
	ValidatedRepositoryFacade
	TransactionManager
}
