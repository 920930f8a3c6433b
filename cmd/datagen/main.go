package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/finlake/invoice_pipeline/internal/datagen"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	outDir := flag.String("out", "./data/raw", "directory to write the generated CSV files into")
	invoices := flag.Int("invoices", 120, "number of invoices to generate")
	payments := flag.Int("payments", 90, "number of payments to generate")
	chaos := flag.Float64("chaos", 0.1, "probability of each data-quality defect per row")
	seed := flag.Int64("seed", 0, "random seed, 0 seeds from the clock")
	flag.Parse()

	gen := datagen.New(datagen.Config{
		OutDir:         *outDir,
		InvoiceCount:   *invoices,
		PaymentCount:   *payments,
		ChaosThreshold: *chaos,
		Seed:           *seed,
	})

	invoicePath, paymentPath, err := gen.Run()
	if err != nil {
		logger.Error("Generation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Generated drop files",
		slog.String("invoices", invoicePath),
		slog.String("payments", paymentPath),
	)
}
