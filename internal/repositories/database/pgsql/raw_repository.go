package pgsql

import (
	"context"
	"fmt"

	portsrepo "github.com/finlake/invoice_pipeline/internal/core/ports/repositories"
	"github.com/finlake/invoice_pipeline/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxRawRepository struct {
	BaseRepository
}

// newPgxRawRepository creates a new repository for the raw landing tier.
func newPgxRawRepository(pool *pgxpool.Pool) portsrepo.RawRepositoryWithTx {
	return &PgxRawRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.RawRepositoryWithTx = (*PgxRawRepository)(nil)

// ExistingInvoiceIDs returns which of the given business keys already exist
// in raw_invoices. Intake checks this before inserting rather than relying
// on a uniqueness violation, since duplicate content with a fresh key is
// allowed but a seen key must be a no-op.
func (r *PgxRawRepository) ExistingInvoiceIDs(ctx context.Context, tx pgx.Tx, invoiceIDs []string) (map[string]struct{}, error) {
	return existingIDs(ctx, tx, "raw_invoices", "invoice_id", invoiceIDs)
}

// ExistingPaymentIDs mirrors ExistingInvoiceIDs for raw_payments.
func (r *PgxRawRepository) ExistingPaymentIDs(ctx context.Context, tx pgx.Tx, paymentIDs []string) (map[string]struct{}, error) {
	return existingIDs(ctx, tx, "raw_payments", "payment_id", paymentIDs)
}

func existingIDs(ctx context.Context, tx pgx.Tx, table, keyColumn string, ids []string) (map[string]struct{}, error) {
	existing := make(map[string]struct{}, len(ids))
	if len(ids) == 0 {
		return existing, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ANY($1);`, keyColumn, table, keyColumn)

	rows, err := tx.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query existing keys in %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan existing key from %s: %w", table, err)
		}
		existing[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating existing keys in %s: %w", table, err)
	}

	return existing, nil
}

// InsertRawInvoices appends the given rows to raw_invoices in one batch.
func (r *PgxRawRepository) InsertRawInvoices(ctx context.Context, tx pgx.Tx, invoices []models.RawInvoice) error {
	if len(invoices) == 0 {
		return nil
	}

	query := `
		INSERT INTO raw_invoices (
			invoice_id, customer_id, first_name, last_name, customer_email, customer_address,
			invoice_type, invoice_date, due_date, amount_due, currency, status, ingested_at, processed
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, FALSE);
	`

	batch := &pgx.Batch{}
	for _, inv := range invoices {
		batch.Queue(query,
			inv.InvoiceID,
			inv.CustomerID,
			inv.FirstName,
			inv.LastName,
			inv.CustomerEmail,
			inv.CustomerAddress,
			inv.InvoiceType,
			inv.InvoiceDate,
			inv.DueDate,
			inv.AmountDue,
			inv.Currency,
			inv.Status,
			inv.IngestedAt,
		)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for range invoices {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert raw invoice batch: %w", err)
		}
	}
	return nil
}

// InsertRawPayments appends the given rows to raw_payments in one batch.
func (r *PgxRawRepository) InsertRawPayments(ctx context.Context, tx pgx.Tx, payments []models.RawPayment) error {
	if len(payments) == 0 {
		return nil
	}

	query := `
		INSERT INTO raw_payments (
			payment_id, invoice_id, due_date, payment_date, amount_due, amount_paid, ingested_at, processed
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE);
	`

	batch := &pgx.Batch{}
	for _, p := range payments {
		batch.Queue(query,
			p.PaymentID,
			p.InvoiceID,
			p.DueDate,
			p.PaymentDate,
			p.AmountDue,
			p.AmountPaid,
			p.IngestedAt,
		)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for range payments {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert raw payment batch: %w", err)
		}
	}
	return nil
}

// ListUnprocessedInvoices retrieves every raw invoice with processed = false.
func (r *PgxRawRepository) ListUnprocessedInvoices(ctx context.Context, tx pgx.Tx) ([]models.RawInvoice, error) {
	query := `
		SELECT invoice_id, customer_id, first_name, last_name, customer_email, customer_address,
			invoice_type, invoice_date, due_date, amount_due, currency, status, ingested_at, processed
		FROM raw_invoices
		WHERE processed = FALSE
		ORDER BY ingested_at, invoice_id;
	`

	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query unprocessed raw invoices: %w", err)
	}
	defer rows.Close()

	invoices, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.RawInvoice, error) {
		var inv models.RawInvoice
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
			&inv.IngestedAt,
			&inv.Processed,
		)
		return inv, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan unprocessed raw invoices: %w", err)
	}

	return invoices, nil
}

// ListUnprocessedPayments retrieves every raw payment with processed = false.
func (r *PgxRawRepository) ListUnprocessedPayments(ctx context.Context, tx pgx.Tx) ([]models.RawPayment, error) {
	query := `
		SELECT payment_id, invoice_id, due_date, payment_date, amount_due, amount_paid, ingested_at, processed
		FROM raw_payments
		WHERE processed = FALSE
		ORDER BY ingested_at, payment_id;
	`

	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query unprocessed raw payments: %w", err)
	}
	defer rows.Close()

	payments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.RawPayment, error) {
		var p models.RawPayment
		err := row.Scan(
			&p.PaymentID,
			&p.InvoiceID,
			&p.DueDate,
			&p.PaymentDate,
			&p.AmountDue,
			&p.AmountPaid,
			&p.IngestedAt,
			&p.Processed,
		)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan unprocessed raw payments: %w", err)
	}

	return payments, nil
}

// MarkInvoiceProcessed flips processed to true for one raw invoice.
func (r *PgxRawRepository) MarkInvoiceProcessed(ctx context.Context, tx pgx.Tx, invoiceID string) error {
	_, err := tx.Exec(ctx, `UPDATE raw_invoices SET processed = TRUE WHERE invoice_id = $1;`, invoiceID)
	if err != nil {
		return fmt.Errorf("failed to mark raw invoice %s processed: %w", invoiceID, err)
	}
	return nil
}

// MarkPaymentProcessed flips processed to true for one raw payment.
func (r *PgxRawRepository) MarkPaymentProcessed(ctx context.Context, tx pgx.Tx, paymentID string) error {
	_, err := tx.Exec(ctx, `UPDATE raw_payments SET processed = TRUE WHERE payment_id = $1;`, paymentID)
	if err != nil {
		return fmt.Errorf("failed to mark raw payment %s processed: %w", paymentID, err)
	}
	return nil
}
