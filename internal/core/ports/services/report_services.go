package services

import (
	"context"

	"github.com/finlake/invoice_pipeline/internal/dto"
)

// ReportingSvc serves the ad-hoc read-only aggregates over the reporting tier.
type ReportingSvc interface {
	TopCustomers(ctx context.Context, limit int) (dto.TopCustomersResponse, error)
	InvoiceStatusDistribution(ctx context.Context) (dto.StatusDistributionResponse, error)
	RevenueByDepartment(ctx context.Context) (dto.DepartmentRevenueResponse, error)
	AveragePayment(ctx context.Context) (dto.AveragePaymentResponse, error)
	DailyPaymentTotals(ctx context.Context) (dto.DailyTotalsResponse, error)
}
