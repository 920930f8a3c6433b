package repositories

import (
	"context"

	"github.com/finlake/invoice_pipeline/internal/models"
	"github.com/shopspring/decimal"
)

// ReportQueryRepository defines the read-only aggregate queries served from
// the reporting tier. Consumers never write, so these run on the pool
// directly rather than inside a stage transaction.
type ReportQueryRepository interface {
	// TopCustomersByPaid retrieves the customers with the highest summed
	// payment amounts, best payer first.
	TopCustomersByPaid(ctx context.Context, limit int) ([]models.CustomerPaidTotal, error)

	// InvoiceStatusDistribution buckets non-canceled invoices into
	// under_paid / exact_paid / over_paid by balance sign.
	InvoiceStatusDistribution(ctx context.Context) ([]models.PaymentStatusBucket, error)

	// RevenueByDepartment sums invoice amount_due per department.
	RevenueByDepartment(ctx context.Context) ([]models.DepartmentRevenue, error)

	// AveragePayment returns the mean applied payment amount.
	AveragePayment(ctx context.Context) (decimal.Decimal, error)

	// DailyPaymentTotals returns summed payments per payment date, ascending.
	DailyPaymentTotals(ctx context.Context) ([]models.DailyPaymentTotal, error)
}

// SchemaRepository defines the structural operations the schema manager needs.
type SchemaRepository interface {
	// ExistingTableNames lists the table names present in the store's public
	// schema, lowercased.
	ExistingTableNames(ctx context.Context) ([]string, error)

	// ApplySchema applies the full migration script set in one pass. The
	// scripts use create-if-not-exists semantics, so applying over a
	// partially present schema is safe.
	ApplySchema(migrationsPath string) error
}
