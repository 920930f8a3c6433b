package dto

// FileIntakeResult summarizes what happened to a single source file.
type FileIntakeResult struct {
	FileName string `json:"fileName"`
	Table    string `json:"table"` // raw_invoices or raw_payments, empty when skipped
	Inserted int    `json:"inserted"`
	Skipped  int    `json:"skipped"` // rows whose keys were already stored
}

// IntakeResult is the explicit outcome of one raw intake invocation.
// Returning this instead of printing and swallowing lets the driver make a
// real pass/fail decision.
type IntakeResult struct {
	Files            []FileIntakeResult `json:"files"`
	FilesSkipped     int                `json:"filesSkipped"` // unrecognized or unparseable files
	InvoicesInserted int                `json:"invoicesInserted"`
	PaymentsInserted int                `json:"paymentsInserted"`
	RowsSkipped      int                `json:"rowsSkipped"`
}

// NormalizeResult is the explicit outcome of one normalization invocation.
type NormalizeResult struct {
	InvoicesValidated int `json:"invoicesValidated"`
	InvoicesRejected  int `json:"invoicesRejected"` // consumed by the amount gate, never copied
	PaymentsValidated int `json:"paymentsValidated"`
	PaymentsRejected  int `json:"paymentsRejected"`
}

// ProjectionResult is the explicit outcome of one reporting projection invocation.
type ProjectionResult struct {
	CustomersCreated   int `json:"customersCreated"`
	DepartmentsCreated int `json:"departmentsCreated"`
	InvoicesProjected  int `json:"invoicesProjected"`
	PaymentsApplied    int `json:"paymentsApplied"`
}
