// Package datagen produces synthetic invoice and payment drop files in the
// format the intake stage consumes, with a controlled dose of data-quality
// chaos (missing amounts, duplicate rows, future dates) so the downstream
// gates have something to reject.
package datagen

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
)

// Config controls one generation run.
type Config struct {
	OutDir         string
	InvoiceCount   int
	PaymentCount   int
	ChaosThreshold float64 // probability of each chaos event per row
	Seed           int64   // 0 seeds from the clock
}

type invoice struct {
	invoiceID       string
	customerID      string
	firstName       string
	lastName        string
	customerEmail   string
	customerAddress string
	invoiceType     string
	invoiceDate     time.Time
	dueDate         time.Time
	amountDue       float64
	hasAmount       bool
	currency        string
	status          string
}

// Generator writes one dated invoice file and one dated payment file.
type Generator struct {
	cfg   Config
	rng   *rand.Rand
	faker *gofakeit.Faker
}

func New(cfg Config) *Generator {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(seed)),
		faker: gofakeit.New(uint64(seed)),
	}
}

var invoiceTypes = []string{"Subscription", "Product", "Consulting", "Training", "Maintenance", "Onboarding"}

// Run generates both files and returns their paths. Filenames carry the
// generation date suffix the intake classifier expects.
func (g *Generator) Run() (string, string, error) {
	if err := os.MkdirAll(g.cfg.OutDir, 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create output directory %s: %w", g.cfg.OutDir, err)
	}

	invoices := g.generateInvoices()

	stamp := time.Now().Format("2006_01_02")
	invoicePath := filepath.Join(g.cfg.OutDir, fmt.Sprintf("invoices_%s.csv", stamp))
	paymentPath := filepath.Join(g.cfg.OutDir, fmt.Sprintf("payments_%s.csv", stamp))

	if err := g.writeInvoices(invoicePath, invoices); err != nil {
		return "", "", err
	}
	if err := g.writePayments(paymentPath, invoices); err != nil {
		return "", "", err
	}
	return invoicePath, paymentPath, nil
}

func (g *Generator) generateInvoices() []invoice {
	today := time.Now().Truncate(24 * time.Hour)
	invoices := make([]invoice, 0, g.cfg.InvoiceCount)

	for i := 1; i <= g.cfg.InvoiceCount; i++ {
		// Occasionally repeat the previous row wholesale; intake has to
		// dedup on the business key.
		if len(invoices) > 0 && g.rng.Float64() <= g.cfg.ChaosThreshold {
			invoices = append(invoices, invoices[len(invoices)-1])
			continue
		}

		invoiceDate := today.AddDate(0, 0, -(7 + g.rng.Intn(29))) // 7..35 days back
		dueDate := invoiceDate.AddDate(0, 0, 30)
		status := g.pickStatus()

		inv := invoice{
			invoiceID:   fmt.Sprintf("INV-%d-%s", i, uuid.NewString()),
			customerID:  uuid.NewString(),
			firstName:   g.faker.FirstName(),
			lastName:    g.faker.LastName(),
			invoiceType: invoiceTypes[g.rng.Intn(len(invoiceTypes))],
			invoiceDate: invoiceDate,
			dueDate:     dueDate,
			amountDue:   roundCents(100 + g.rng.Float64()*4900),
			hasAmount:   true,
			currency:    "USD",
			status:      status,
		}
		inv.customerEmail = fmt.Sprintf("%s%s@%s", inv.firstName, inv.lastName[:1], g.faker.DomainName())
		inv.customerAddress = g.faker.Address().Address

		// Chaos: missing amounts on posted invoices, future-dated pending ones.
		if status == "Posted" && g.rng.Float64() <= g.cfg.ChaosThreshold {
			inv.hasAmount = false
		}
		if status == "Pending" && g.rng.Float64() <= g.cfg.ChaosThreshold {
			inv.invoiceDate = today.AddDate(0, 0, 7+g.rng.Intn(24))
		}
		if today.After(inv.dueDate) {
			inv.status = "Late"
		}

		invoices = append(invoices, inv)
	}
	return invoices
}

func (g *Generator) pickStatus() string {
	r := g.rng.Float64()
	switch {
	case r < 0.70:
		return "Posted"
	case r < 0.80:
		return "Pending"
	case r < 0.95:
		return "Processing"
	default:
		return "Canceled"
	}
}

func (g *Generator) writeInvoices(path string, invoices []invoice) error {
	rows := [][]string{{
		"invoice_id", "customer_id", "first_name", "last_name", "customer_email",
		"customer_address", "invoice_type", "invoice_date", "due_date",
		"amount_due", "currency", "status",
	}}
	for _, inv := range invoices {
		amount := ""
		if inv.hasAmount {
			amount = fmt.Sprintf("%.2f", inv.amountDue)
		}
		rows = append(rows, []string{
			inv.invoiceID, inv.customerID, inv.firstName, inv.lastName,
			inv.customerEmail, inv.customerAddress, inv.invoiceType,
			inv.invoiceDate.Format("2006-01-02"), inv.dueDate.Format("2006-01-02"),
			amount, inv.currency, inv.status,
		})
	}
	return writeCSV(path, rows)
}

// writePayments links payments to randomly chosen posted invoices that
// carry an amount, with full, partial or over payment variance.
func (g *Generator) writePayments(path string, invoices []invoice) error {
	var payable []invoice
	for _, inv := range invoices {
		if inv.status == "Posted" && inv.hasAmount {
			payable = append(payable, inv)
		}
	}
	g.rng.Shuffle(len(payable), func(i, j int) {
		payable[i], payable[j] = payable[j], payable[i]
	})
	count := g.cfg.PaymentCount
	if count > len(payable) {
		count = len(payable)
	}

	rows := [][]string{{
		"payment_id", "invoice_id", "due_date", "payment_date",
		"amount_due", "amount_paid", "amount_remaining",
	}}
	for i := 0; i < count; i++ {
		inv := payable[i]
		paymentDate := inv.dueDate.AddDate(0, 0, g.rng.Intn(31)-15)
		amountPaid := roundCents(inv.amountDue * g.paymentVariance())

		rows = append(rows, []string{
			fmt.Sprintf("PAY-%d-%s", i, uuid.NewString()),
			inv.invoiceID,
			inv.dueDate.Format("2006-01-02"),
			paymentDate.Format("2006-01-02"),
			fmt.Sprintf("%.2f", inv.amountDue),
			fmt.Sprintf("%.2f", amountPaid),
			fmt.Sprintf("%.2f", roundCents(inv.amountDue-amountPaid)),
		})
	}
	return writeCSV(path, rows)
}

// paymentVariance simulates exact (60%), partial (20%) or over (20%) payment.
func (g *Generator) paymentVariance() float64 {
	r := g.rng.Float64()
	switch {
	case r < 0.20:
		return 0.5 + g.rng.Float64()*0.4
	case r < 0.80:
		return 1.0
	default:
		return 1.1 + g.rng.Float64()*0.3
	}
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	w.Flush()
	return w.Error()
}

func roundCents(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
