package pgsql

import (
	"context"
	"fmt"

	portsrepo "github.com/finlake/invoice_pipeline/internal/core/ports/repositories"
	"github.com/finlake/invoice_pipeline/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// reportQueryRepository implements the read-only aggregates consumers issue
// against the reporting tier.
type reportQueryRepository struct {
	BaseRepository
}

var _ portsrepo.ReportQueryRepository = (*reportQueryRepository)(nil)

func newReportQueryRepository(pool *pgxpool.Pool) portsrepo.ReportQueryRepository {
	return &reportQueryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// TopCustomersByPaid retrieves the customers with the highest summed payments.
func (r *reportQueryRepository) TopCustomersByPaid(ctx context.Context, limit int) ([]models.CustomerPaidTotal, error) {
	query := `
		SELECT c.customer_id, c.first_name || ' ' || c.last_name AS customer_name,
			SUM(p.amount_paid) AS total_paid
		FROM payments p
		JOIN invoices i ON p.invoice_id = i.invoice_id
		JOIN customers c ON i.customer_id = c.customer_id
		GROUP BY c.customer_id, customer_name
		ORDER BY total_paid DESC
		LIMIT $1;
	`

	rows, err := r.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying top customers: %w", err)
	}
	defer rows.Close()

	result, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.CustomerPaidTotal, error) {
		var c models.CustomerPaidTotal
		err := row.Scan(&c.CustomerID, &c.CustomerName, &c.TotalPaid)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning top customer rows: %w", err)
	}
	if len(result) == 0 {
		return []models.CustomerPaidTotal{}, nil
	}
	return result, nil
}

// InvoiceStatusDistribution buckets non-canceled invoices by balance sign.
func (r *reportQueryRepository) InvoiceStatusDistribution(ctx context.Context) ([]models.PaymentStatusBucket, error) {
	query := `
		WITH classified_invoices AS (
			SELECT *,
				CASE
					WHEN balance > 0 THEN 'under_paid'
					WHEN balance = 0 THEN 'exact_paid'
					ELSE 'over_paid'
				END AS invoice_payment_status
			FROM invoices
			WHERE status IN ('Posted', 'Pending', 'Processing', 'Late')
		)
		SELECT invoice_payment_status, SUM(balance) AS amount, COUNT(invoice_id) AS count
		FROM classified_invoices
		GROUP BY invoice_payment_status
		ORDER BY count DESC;
	`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying invoice status distribution: %w", err)
	}
	defer rows.Close()

	result, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.PaymentStatusBucket, error) {
		var b models.PaymentStatusBucket
		err := row.Scan(&b.PaymentStatus, &b.Amount, &b.Count)
		return b, err
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning status distribution rows: %w", err)
	}
	if len(result) == 0 {
		return []models.PaymentStatusBucket{}, nil
	}
	return result, nil
}

// RevenueByDepartment sums invoice amount_due per department.
func (r *reportQueryRepository) RevenueByDepartment(ctx context.Context) ([]models.DepartmentRevenue, error) {
	query := `
		SELECT d.department_name, SUM(i.amount_due) AS total_revenue
		FROM invoices i
		JOIN departments d ON i.department_id = d.department_id
		GROUP BY d.department_name
		ORDER BY total_revenue DESC;
	`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying revenue by department: %w", err)
	}
	defer rows.Close()

	result, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.DepartmentRevenue, error) {
		var d models.DepartmentRevenue
		err := row.Scan(&d.DepartmentName, &d.TotalRevenue)
		return d, err
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning department revenue rows: %w", err)
	}
	if len(result) == 0 {
		return []models.DepartmentRevenue{}, nil
	}
	return result, nil
}

// AveragePayment returns the mean applied payment amount, zero when there
// are no payments yet.
func (r *reportQueryRepository) AveragePayment(ctx context.Context) (decimal.Decimal, error) {
	var avg decimal.NullDecimal
	err := r.Pool.QueryRow(ctx, `SELECT AVG(amount_paid) FROM payments;`).Scan(&avg)
	if err != nil {
		return decimal.Zero, fmt.Errorf("error querying average payment: %w", err)
	}
	if !avg.Valid {
		return decimal.Zero, nil
	}
	return avg.Decimal, nil
}

// DailyPaymentTotals returns summed payments per payment date, ascending.
func (r *reportQueryRepository) DailyPaymentTotals(ctx context.Context) ([]models.DailyPaymentTotal, error) {
	// payment_date is stored in display format, so lexicographic order
	// would interleave years; sort on the parsed date instead.
	query := `
		SELECT payment_date, SUM(amount_paid) AS total_paid
		FROM payments
		WHERE payment_date <> 'N/A'
		GROUP BY payment_date
		ORDER BY to_date(payment_date, 'MM-DD-YYYY');
	`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying daily payment totals: %w", err)
	}
	defer rows.Close()

	result, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.DailyPaymentTotal, error) {
		var d models.DailyPaymentTotal
		err := row.Scan(&d.PaymentDate, &d.TotalPaid)
		return d, err
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning daily total rows: %w", err)
	}
	if len(result) == 0 {
		return []models.DailyPaymentTotal{}, nil
	}
	return result, nil
}
