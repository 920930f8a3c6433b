package models

import "github.com/shopspring/decimal"

// CustomerPaidTotal is one row of the top-customers-by-paid-amount report.
type CustomerPaidTotal struct {
	CustomerID   string          `json:"customerID"`
	CustomerName string          `json:"customerName"`
	TotalPaid    decimal.Decimal `json:"totalPaid"`
}

// PaymentStatusBucket groups invoices by how their balance compares to zero.
type PaymentStatusBucket struct {
	PaymentStatus string          `json:"paymentStatus"` // under_paid, exact_paid, over_paid
	Amount        decimal.Decimal `json:"amount"`
	Count         int64           `json:"count"`
}

// DepartmentRevenue is one row of the revenue-by-department report.
type DepartmentRevenue struct {
	DepartmentName string          `json:"departmentName"`
	TotalRevenue   decimal.Decimal `json:"totalRevenue"`
}

// DailyPaymentTotal is one point of the daily payment time series.
type DailyPaymentTotal struct {
	PaymentDate string          `json:"paymentDate"`
	TotalPaid   decimal.Decimal `json:"totalPaid"`
}
