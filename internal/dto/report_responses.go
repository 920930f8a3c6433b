package dto

import (
	"github.com/finlake/invoice_pipeline/internal/models"
	"github.com/shopspring/decimal"
)

// TopCustomersResponse is the top-customers-by-paid-amount report response.
type TopCustomersResponse struct {
	Limit     int                        `json:"limit"`
	Customers []models.CustomerPaidTotal `json:"customers"`
}

// StatusDistributionResponse buckets invoices by payment status.
type StatusDistributionResponse struct {
	Buckets []models.PaymentStatusBucket `json:"buckets"`
}

// DepartmentRevenueResponse is the revenue-by-department report response.
type DepartmentRevenueResponse struct {
	Departments []models.DepartmentRevenue `json:"departments"`
	Total       decimal.Decimal            `json:"total"`
}

// AveragePaymentResponse carries the mean applied payment amount.
type AveragePaymentResponse struct {
	AveragePayment decimal.Decimal `json:"averagePayment"`
}

// DailyTotalsResponse is the daily payment time-series response.
type DailyTotalsResponse struct {
	Days []models.DailyPaymentTotal `json:"days"`
}
