// Package csvsource parses the delimited drop files produced by the external
// data generator into raw-tier records. Any structural problem with a file
// (unreadable, ragged rows, missing columns) fails the whole file so intake
// never partially loads one.
package csvsource

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/finlake/invoice_pipeline/internal/models"
	"github.com/shopspring/decimal"
)

// FileKind classifies a source file by its name.
type FileKind int

const (
	KindUnknown FileKind = iota
	KindInvoices
	KindPayments
)

// Classify determines the target raw table from the filename. Filenames
// encode the record type via substring match.
func Classify(filename string) FileKind {
	switch {
	case strings.Contains(filename, "invoices"):
		return KindInvoices
	case strings.Contains(filename, "payments"):
		return KindPayments
	default:
		return KindUnknown
	}
}

var invoiceColumns = []string{
	"invoice_id", "customer_id", "first_name", "last_name", "customer_email",
	"customer_address", "invoice_type", "invoice_date", "due_date",
	"amount_due", "currency", "status",
}

var paymentColumns = []string{
	"payment_id", "invoice_id", "due_date", "payment_date",
	"amount_due", "amount_paid",
}

// ParseInvoices reads an invoice drop file into raw records. Load metadata
// (ingestion timestamp, processed flag) is left for the caller to stamp.
func ParseInvoices(path string) ([]models.RawInvoice, error) {
	records, index, err := readAll(path, invoiceColumns)
	if err != nil {
		return nil, err
	}

	invoices := make([]models.RawInvoice, 0, len(records))
	for _, rec := range records {
		invoices = append(invoices, models.RawInvoice{
			InvoiceID:       rec[index["invoice_id"]],
			CustomerID:      rec[index["customer_id"]],
			FirstName:       rec[index["first_name"]],
			LastName:        rec[index["last_name"]],
			CustomerEmail:   rec[index["customer_email"]],
			CustomerAddress: rec[index["customer_address"]],
			InvoiceType:     rec[index["invoice_type"]],
			InvoiceDate:     rec[index["invoice_date"]],
			DueDate:         rec[index["due_date"]],
			AmountDue:       parseAmount(rec[index["amount_due"]]),
			Currency:        rec[index["currency"]],
			Status:          rec[index["status"]],
		})
	}
	return invoices, nil
}

// ParsePayments reads a payment drop file into raw records. The generator's
// amount_remaining column is derivable and not landed.
func ParsePayments(path string) ([]models.RawPayment, error) {
	records, index, err := readAll(path, paymentColumns)
	if err != nil {
		return nil, err
	}

	payments := make([]models.RawPayment, 0, len(records))
	for _, rec := range records {
		payments = append(payments, models.RawPayment{
			PaymentID:   rec[index["payment_id"]],
			InvoiceID:   rec[index["invoice_id"]],
			DueDate:     rec[index["due_date"]],
			PaymentDate: rec[index["payment_date"]],
			AmountDue:   parseAmount(rec[index["amount_due"]]),
			AmountPaid:  parseAmount(rec[index["amount_paid"]]),
		})
	}
	return payments, nil
}

// readAll loads a whole CSV file and maps required column names to indices.
func readAll(path string, required []string) ([][]string, map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open source file %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV file %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("source file %s has no header row", path)
	}

	index := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		index[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, name := range required {
		if _, ok := index[name]; !ok {
			return nil, nil, fmt.Errorf("source file %s is missing column %q", path, name)
		}
	}

	return rows[1:], index, nil
}

// parseAmount turns a source amount field into a nullable decimal. Empty or
// non-numeric values land as null; the normalization gate deals with them.
func parseAmount(value string) decimal.NullDecimal {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}
