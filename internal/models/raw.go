package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawInvoice is an invoice row exactly as it landed from a source CSV file,
// plus the load metadata the pipeline stamps on. Amounts are nullable because
// source files are allowed to omit them; the normalization stage gates on it.
type RawInvoice struct {
	InvoiceID       string              `json:"invoiceID"` // Natural business key, unique in the raw tier
	CustomerID      string              `json:"customerID"`
	FirstName       string              `json:"firstName"`
	LastName        string              `json:"lastName"`
	CustomerEmail   string              `json:"customerEmail"`
	CustomerAddress string              `json:"customerAddress"`
	InvoiceType     string              `json:"invoiceType"`
	InvoiceDate     string              `json:"invoiceDate"` // Unparsed source value, expected YYYY-MM-DD
	DueDate         string              `json:"dueDate"`
	AmountDue       decimal.NullDecimal `json:"amountDue"`
	Currency        string              `json:"currency"`
	Status          string              `json:"status"`
	IngestedAt      time.Time           `json:"ingestedAt"`
	Processed       bool                `json:"processed"`
}

// RawPayment is a payment row as it landed from a source CSV file.
type RawPayment struct {
	PaymentID   string              `json:"paymentID"` // Natural business key, unique in the raw tier
	InvoiceID   string              `json:"invoiceID"`
	DueDate     string              `json:"dueDate"`
	PaymentDate string              `json:"paymentDate"`
	AmountDue   decimal.NullDecimal `json:"amountDue"`
	AmountPaid  decimal.NullDecimal `json:"amountPaid"`
	IngestedAt  time.Time           `json:"ingestedAt"`
	Processed   bool                `json:"processed"`
}
