package datagen_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/finlake/invoice_pipeline/internal/csvsource"
	"github.com/finlake/invoice_pipeline/internal/datagen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_ProducesParseableDropFiles(t *testing.T) {
	gen := datagen.New(datagen.Config{
		OutDir:       t.TempDir(),
		InvoiceCount: 50,
		PaymentCount: 30,
		Seed:         42,
	})

	invoicePath, paymentPath, err := gen.Run()
	require.NoError(t, err)

	// Filenames must classify into the right raw tables.
	assert.Equal(t, csvsource.KindInvoices, csvsource.Classify(filepath.Base(invoicePath)))
	assert.Equal(t, csvsource.KindPayments, csvsource.Classify(filepath.Base(paymentPath)))

	invoices, err := csvsource.ParseInvoices(invoicePath)
	require.NoError(t, err)
	assert.Len(t, invoices, 50)

	payments, err := csvsource.ParsePayments(paymentPath)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(payments), 30)

	// Every payment must reference a generated invoice.
	byID := make(map[string]bool, len(invoices))
	for _, inv := range invoices {
		byID[inv.InvoiceID] = true
	}
	for _, p := range payments {
		assert.True(t, byID[p.InvoiceID], "payment %s references unknown invoice %s", p.PaymentID, p.InvoiceID)
		assert.True(t, p.AmountPaid.Valid)
		assert.True(t, p.AmountPaid.Decimal.IsPositive())
	}
}

func TestRun_ChaosInjectsDefects(t *testing.T) {
	gen := datagen.New(datagen.Config{
		OutDir:         t.TempDir(),
		InvoiceCount:   200,
		PaymentCount:   0,
		ChaosThreshold: 0.5,
		Seed:           7,
	})

	invoicePath, _, err := gen.Run()
	require.NoError(t, err)

	invoices, err := csvsource.ParseInvoices(invoicePath)
	require.NoError(t, err)
	require.Len(t, invoices, 200)

	seen := make(map[string]int)
	missingAmounts := 0
	for _, inv := range invoices {
		seen[inv.InvoiceID]++
		if !inv.AmountDue.Valid {
			missingAmounts++
		}
	}

	duplicates := 0
	for _, n := range seen {
		if n > 1 {
			duplicates++
		}
	}

	// At 50% chaos over 200 rows both defect kinds are effectively certain.
	assert.Positive(t, duplicates, "expected duplicate rows")
	assert.Positive(t, missingAmounts, "expected invoices without amounts")
}

func TestRun_SameSeedIsDeterministic(t *testing.T) {
	cfg := datagen.Config{InvoiceCount: 20, PaymentCount: 10, Seed: 99}

	cfg.OutDir = t.TempDir()
	firstPath, _, err := datagen.New(cfg).Run()
	require.NoError(t, err)
	first, err := csvsource.ParseInvoices(firstPath)
	require.NoError(t, err)

	cfg.OutDir = t.TempDir()
	secondPath, _, err := datagen.New(cfg).Run()
	require.NoError(t, err)
	second, err := csvsource.ParseInvoices(secondPath)
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		// IDs carry random UUIDs, but the deterministic parts must match.
		assert.Equal(t, first[i].FirstName, second[i].FirstName)
		assert.Equal(t, first[i].Status, second[i].Status)
		assert.True(t, strings.HasPrefix(first[i].InvoiceID, "INV-"))
	}
}
