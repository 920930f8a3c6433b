package services

import (
	"context"
	"fmt"

	portsrepo "github.com/finlake/invoice_pipeline/internal/core/ports/repositories"
	portssvc "github.com/finlake/invoice_pipeline/internal/core/ports/services"
	"github.com/finlake/invoice_pipeline/internal/dto"
	"github.com/shopspring/decimal"
)

// ReportingService serves the ad-hoc read-only aggregates over the
// reporting tier.
type ReportingService struct {
	BaseService
	reportQueryRepo portsrepo.ReportQueryRepository
}

var _ portssvc.ReportingSvc = (*ReportingService)(nil)

func NewReportingService(reportQueryRepo portsrepo.ReportQueryRepository) *ReportingService {
	return &ReportingService{reportQueryRepo: reportQueryRepo}
}

// TopCustomers returns the customers with the highest summed payments.
func (s *ReportingService) TopCustomers(ctx context.Context, limit int) (dto.TopCustomersResponse, error) {
	customers, err := s.reportQueryRepo.TopCustomersByPaid(ctx, limit)
	if err != nil {
		return dto.TopCustomersResponse{}, fmt.Errorf("failed to get top customers: %w", err)
	}
	return dto.TopCustomersResponse{Limit: limit, Customers: customers}, nil
}

// InvoiceStatusDistribution buckets invoices by payment status.
func (s *ReportingService) InvoiceStatusDistribution(ctx context.Context) (dto.StatusDistributionResponse, error) {
	buckets, err := s.reportQueryRepo.InvoiceStatusDistribution(ctx)
	if err != nil {
		return dto.StatusDistributionResponse{}, fmt.Errorf("failed to get status distribution: %w", err)
	}
	return dto.StatusDistributionResponse{Buckets: buckets}, nil
}

// RevenueByDepartment sums invoice amounts per department.
func (s *ReportingService) RevenueByDepartment(ctx context.Context) (dto.DepartmentRevenueResponse, error) {
	departments, err := s.reportQueryRepo.RevenueByDepartment(ctx)
	if err != nil {
		return dto.DepartmentRevenueResponse{}, fmt.Errorf("failed to get department revenue: %w", err)
	}

	total := decimal.Zero
	for _, d := range departments {
		total = total.Add(d.TotalRevenue)
	}
	return dto.DepartmentRevenueResponse{Departments: departments, Total: total}, nil
}

// AveragePayment returns the mean applied payment amount.
func (s *ReportingService) AveragePayment(ctx context.Context) (dto.AveragePaymentResponse, error) {
	avg, err := s.reportQueryRepo.AveragePayment(ctx)
	if err != nil {
		return dto.AveragePaymentResponse{}, fmt.Errorf("failed to get average payment: %w", err)
	}
	return dto.AveragePaymentResponse{AveragePayment: avg}, nil
}

// DailyPaymentTotals returns the daily payment time series.
func (s *ReportingService) DailyPaymentTotals(ctx context.Context) (dto.DailyTotalsResponse, error) {
	days, err := s.reportQueryRepo.DailyPaymentTotals(ctx)
	if err != nil {
		return dto.DailyTotalsResponse{}, fmt.Errorf("failed to get daily payment totals: %w", err)
	}
	return dto.DailyTotalsResponse{Days: days}, nil
}
