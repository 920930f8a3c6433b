package models

import "github.com/shopspring/decimal"

// ValidatedInvoice is the cleaned copy of an accepted raw invoice. Dates are
// in the MM-DD-YYYY display format or the literal "N/A"; the amount is
// guaranteed non-null and non-zero by the normalization gate.
type ValidatedInvoice struct {
	InvoiceID       string          `json:"invoiceID"`
	CustomerID      string          `json:"customerID"`
	FirstName       string          `json:"firstName"`
	LastName        string          `json:"lastName"`
	CustomerEmail   string          `json:"customerEmail"`
	CustomerAddress string          `json:"customerAddress"`
	InvoiceType     string          `json:"invoiceType"`
	InvoiceDate     string          `json:"invoiceDate"`
	DueDate         string          `json:"dueDate"`
	AmountDue       decimal.Decimal `json:"amountDue"`
	Currency        string          `json:"currency"`
	Status          string          `json:"status"`
	Processed       bool            `json:"processed"`
}

// ValidatedPayment is the cleaned copy of an accepted raw payment.
type ValidatedPayment struct {
	PaymentID   string          `json:"paymentID"`
	InvoiceID   string          `json:"invoiceID"`
	DueDate     string          `json:"dueDate"`
	PaymentDate string          `json:"paymentDate"`
	AmountDue   decimal.Decimal `json:"amountDue"`
	AmountPaid  decimal.Decimal `json:"amountPaid"`
	Processed   bool            `json:"processed"`
}
