package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is a reporting-tier dimension row. First write wins: once a
// customer_id exists, later source data never updates it.
type Customer struct {
	CustomerID      string `json:"customerID"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	CustomerEmail   string `json:"customerEmail"`
	CustomerAddress string `json:"customerAddress"`
}

// Department is a reporting-tier dimension row with a surrogate key.
type Department struct {
	DepartmentID   int64  `json:"departmentID"`
	DepartmentName string `json:"departmentName"`
}

// Invoice is the reporting-tier fact row. At creation amount_paid is zero
// and balance equals amount_due; applied payments are the only writers of
// amount_paid and balance afterwards.
type Invoice struct {
	InvoiceID    string          `json:"invoiceID"`
	CustomerID   string          `json:"customerID"`   // FK -> customers
	DepartmentID int64           `json:"departmentID"` // FK -> departments
	InvoiceType  string          `json:"invoiceType"`
	InvoiceDate  string          `json:"invoiceDate"`
	DueDate      string          `json:"dueDate"`
	AmountDue    decimal.Decimal `json:"amountDue"`
	AmountPaid   decimal.Decimal `json:"amountPaid"`
	Balance      decimal.Decimal `json:"balance"`
	Currency     string          `json:"currency"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// Payment is the reporting-tier fact row for a single applied payment.
type Payment struct {
	PaymentID   string          `json:"paymentID"`
	InvoiceID   string          `json:"invoiceID"` // FK -> invoices
	PaymentDate string          `json:"paymentDate"`
	AmountPaid  decimal.Decimal `json:"amountPaid"`
}
