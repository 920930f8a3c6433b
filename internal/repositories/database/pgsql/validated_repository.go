package pgsql

import (
	"context"
	"fmt"

	portsrepo "github.com/finlake/invoice_pipeline/internal/core/ports/repositories"
	"github.com/finlake/invoice_pipeline/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxValidatedRepository struct {
	BaseRepository
}

// newPgxValidatedRepository creates a new repository for the validated tier.
func newPgxValidatedRepository(pool *pgxpool.Pool) portsrepo.ValidatedRepositoryWithTx {
	return &PgxValidatedRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ValidatedRepositoryWithTx = (*PgxValidatedRepository)(nil)

// InvoiceExists reports whether a validated invoice with the given key exists.
func (r *PgxValidatedRepository) InvoiceExists(ctx context.Context, tx pgx.Tx, invoiceID string) (bool, error) {
	return rowExists(ctx, tx, "validated_invoices", "invoice_id", invoiceID)
}

// PaymentExists reports whether a validated payment with the given key exists.
func (r *PgxValidatedRepository) PaymentExists(ctx context.Context, tx pgx.Tx, paymentID string) (bool, error) {
	return rowExists(ctx, tx, "validated_payments", "payment_id", paymentID)
}

func rowExists(ctx context.Context, tx pgx.Tx, table, keyColumn, id string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1);`, table, keyColumn)

	var exists bool
	if err := tx.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check %s for key %s: %w", table, id, err)
	}
	return exists, nil
}

// InsertValidatedInvoice writes one cleaned invoice into the validated tier.
func (r *PgxValidatedRepository) InsertValidatedInvoice(ctx context.Context, tx pgx.Tx, invoice models.ValidatedInvoice) error {
	query := `
		INSERT INTO validated_invoices (
			invoice_id, customer_id, first_name, last_name, customer_email, customer_address,
			invoice_type, invoice_date, due_date, amount_due, currency, status, processed
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, FALSE);
	`

	_, err := tx.Exec(ctx, query,
		invoice.InvoiceID,
		invoice.CustomerID,
		invoice.FirstName,
		invoice.LastName,
		invoice.CustomerEmail,
		invoice.CustomerAddress,
		invoice.InvoiceType,
		invoice.InvoiceDate,
		invoice.DueDate,
		invoice.AmountDue,
		invoice.Currency,
		invoice.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to insert validated invoice %s: %w", invoice.InvoiceID, err)
	}
	return nil
}

// InsertValidatedPayment writes one cleaned payment into the validated tier.
func (r *PgxValidatedRepository) InsertValidatedPayment(ctx context.Context, tx pgx.Tx, payment models.ValidatedPayment) error {
	query := `
		INSERT INTO validated_payments (
			payment_id, invoice_id, due_date, payment_date, amount_due, amount_paid, processed
		)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE);
	`

	_, err := tx.Exec(ctx, query,
		payment.PaymentID,
		payment.InvoiceID,
		payment.DueDate,
		payment.PaymentDate,
		payment.AmountDue,
		payment.AmountPaid,
	)
	if err != nil {
		return fmt.Errorf("failed to insert validated payment %s: %w", payment.PaymentID, err)
	}
	return nil
}

// ListUnprocessedInvoices retrieves every validated invoice with processed = false.
func (r *PgxValidatedRepository) ListUnprocessedInvoices(ctx context.Context, tx pgx.Tx) ([]models.ValidatedInvoice, error) {
	query := `
		SELECT invoice_id, customer_id, first_name, last_name, customer_email, customer_address,
			invoice_type, invoice_date, due_date, amount_due, currency, status, processed
		FROM validated_invoices
		WHERE processed = FALSE
		ORDER BY invoice_id;
	`

	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query unprocessed validated invoices: %w", err)
	}
	defer rows.Close()

	invoices, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ValidatedInvoice, error) {
		var inv models.ValidatedInvoice
		err := row.Scan(
			&inv.InvoiceID,
			&inv.CustomerID,
			&inv.FirstName,
			&inv.LastName,
			&inv.CustomerEmail,
			&inv.CustomerAddress,
			&inv.InvoiceType,
			&inv.InvoiceDate,
			&inv.DueDate,
			&inv.AmountDue,
			&inv.Currency,
			&inv.Status,
			&inv.Processed,
		)
		return inv, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan unprocessed validated invoices: %w", err)
	}

	return invoices, nil
}

// ListUnprocessedPayments retrieves every validated payment with processed = false.
func (r *PgxValidatedRepository) ListUnprocessedPayments(ctx context.Context, tx pgx.Tx) ([]models.ValidatedPayment, error) {
	query := `
		SELECT payment_id, invoice_id, due_date, payment_date, amount_due, amount_paid, processed
		FROM validated_payments
		WHERE processed = FALSE
		ORDER BY payment_id;
	`

	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query unprocessed validated payments: %w", err)
	}
	defer rows.Close()

	payments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ValidatedPayment, error) {
		var p models.ValidatedPayment
		err := row.Scan(
			&p.PaymentID,
			&p.InvoiceID,
			&p.DueDate,
			&p.PaymentDate,
			&p.AmountDue,
			&p.AmountPaid,
			&p.Processed,
		)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan unprocessed validated payments: %w", err)
	}

	return payments, nil
}

// MarkInvoiceProcessed flips processed to true for one validated invoice.
func (r *PgxValidatedRepository) MarkInvoiceProcessed(ctx context.Context, tx pgx.Tx, invoiceID string) error {
	_, err := tx.Exec(ctx, `UPDATE validated_invoices SET processed = TRUE WHERE invoice_id = $1;`, invoiceID)
	if err != nil {
		return fmt.Errorf("failed to mark validated invoice %s processed: %w", invoiceID, err)
	}
	return nil
}

// MarkPaymentProcessed flips processed to true for one validated payment.
func (r *PgxValidatedRepository) MarkPaymentProcessed(ctx context.Context, tx pgx.Tx, paymentID string) error {
	_, err := tx.Exec(ctx, `UPDATE validated_payments SET processed = TRUE WHERE payment_id = $1;`, paymentID)
	if err != nil {
		return fmt.Errorf("failed to mark validated payment %s processed: %w", paymentID, err)
	}
	return nil
}
