package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/finlake/invoice_pipeline/internal/apperrors"
	portsrepo "github.com/finlake/invoice_pipeline/internal/core/ports/repositories"
	"github.com/finlake/invoice_pipeline/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a new repository for the reporting tier
// dimensions and facts.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepositoryWithTx {
	return &PgxReportingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ReportingRepositoryWithTx = (*PgxReportingRepository)(nil)

// CustomerExists reports whether the customer dimension holds the given key.
func (r *PgxReportingRepository) CustomerExists(ctx context.Context, tx pgx.Tx, customerID string) (bool, error) {
	return rowExists(ctx, tx, "customers", "customer_id", customerID)
}

// InsertCustomer writes a customer dimension row. Callers check existence
// first; the customer dimension is first-write-wins and never updated.
func (r *PgxReportingRepository) InsertCustomer(ctx context.Context, tx pgx.Tx, customer models.Customer) error {
	query := `
		INSERT INTO customers (customer_id, first_name, last_name, customer_email, customer_address)
		VALUES ($1, $2, $3, $4, $5);
	`

	_, err := tx.Exec(ctx, query,
		customer.CustomerID,
		customer.FirstName,
		customer.LastName,
		customer.CustomerEmail,
		customer.CustomerAddress,
	)
	if err != nil {
		return fmt.Errorf("failed to insert customer %s: %w", customer.CustomerID, err)
	}
	return nil
}

// FindDepartmentIDByName resolves a department name to its surrogate id.
func (r *PgxReportingRepository) FindDepartmentIDByName(ctx context.Context, tx pgx.Tx, name string) (int64, error) {
	var id int64
	err := tx.QueryRow(ctx, `SELECT department_id FROM departments WHERE department_name = $1;`, name).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrNotFound
		}
		return 0, fmt.Errorf("failed to find department by name %q: %w", name, err)
	}
	return id, nil
}

// InsertDepartment creates a department row and returns its auto-assigned id.
func (r *PgxReportingRepository) InsertDepartment(ctx context.Context, tx pgx.Tx, name string) (int64, error) {
	var id int64
	err := tx.QueryRow(ctx,
		`INSERT INTO departments (department_name) VALUES ($1) RETURNING department_id;`, name,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert department %q: %w", name, err)
	}
	return id, nil
}

// InvoiceExists reports whether the reporting tier holds the given invoice.
func (r *PgxReportingRepository) InvoiceExists(ctx context.Context, tx pgx.Tx, invoiceID string) (bool, error) {
	return rowExists(ctx, tx, "invoices", "invoice_id", invoiceID)
}

// InsertInvoice writes a reporting invoice fact row.
func (r *PgxReportingRepository) InsertInvoice(ctx context.Context, tx pgx.Tx, invoice models.Invoice) error {
	query := `
		INSERT INTO invoices (
			invoice_id, customer_id, department_id, invoice_type, invoice_date, due_date,
			amount_due, amount_paid, balance, currency, status, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`

	_, err := tx.Exec(ctx, query,
		invoice.InvoiceID,
		invoice.CustomerID,
		invoice.DepartmentID,
		invoice.InvoiceType,
		invoice.InvoiceDate,
		invoice.DueDate,
		invoice.AmountDue,
		invoice.AmountPaid,
		invoice.Balance,
		invoice.Currency,
		invoice.Status,
		invoice.CreatedAt,
		invoice.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert invoice %s: %w", invoice.InvoiceID, err)
	}
	return nil
}

// PaymentExists reports whether the reporting tier holds the given payment.
func (r *PgxReportingRepository) PaymentExists(ctx context.Context, tx pgx.Tx, paymentID string) (bool, error) {
	return rowExists(ctx, tx, "payments", "payment_id", paymentID)
}

// InsertPayment writes a reporting payment fact row.
func (r *PgxReportingRepository) InsertPayment(ctx context.Context, tx pgx.Tx, payment models.Payment) error {
	query := `
		INSERT INTO payments (payment_id, invoice_id, payment_date, amount_paid)
		VALUES ($1, $2, $3, $4);
	`

	_, err := tx.Exec(ctx, query,
		payment.PaymentID,
		payment.InvoiceID,
		payment.PaymentDate,
		payment.AmountPaid,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment %s: %w", payment.PaymentID, err)
	}
	return nil
}

// ApplyPaymentToInvoice accumulates an applied payment into the parent
// invoice. Balance is always recomputed from the invoice's own amount_due,
// so multiple payments against one invoice sum instead of overwriting.
func (r *PgxReportingRepository) ApplyPaymentToInvoice(ctx context.Context, tx pgx.Tx, invoiceID string, amountPaid decimal.Decimal, appliedAt time.Time) error {
	query := `
		UPDATE invoices
		SET amount_paid = amount_paid + $2,
			balance = amount_due - (amount_paid + $2),
			updated_at = $3
		WHERE invoice_id = $1;
	`

	tag, err := tx.Exec(ctx, query, invoiceID, amountPaid, appliedAt)
	if err != nil {
		return fmt.Errorf("failed to apply payment to invoice %s: %w", invoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: invoice %s for payment application", apperrors.ErrNotFound, invoiceID)
	}
	return nil
}
