// Package classification loads the external JSON document mapping department
// names to the invoice-type strings they cover. The projection stage
// consults it read-only.
package classification

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Lookup resolves invoice-type strings to department names.
type Lookup struct {
	byType map[string]string
}

// Load reads a mapping file of the form {"Department": ["TypeA", "TypeB"]}.
// A missing or malformed file is a startup precondition failure.
func Load(path string) (*Lookup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read department mappings %s: %w", path, err)
	}

	var mappings map[string][]string
	if err := json.Unmarshal(data, &mappings); err != nil {
		return nil, fmt.Errorf("failed to parse department mappings %s: %w", path, err)
	}

	// Departments are visited in sorted order and the first one claiming a
	// type wins, so a type listed under two departments resolves the same
	// way on every run.
	departments := make([]string, 0, len(mappings))
	for department := range mappings {
		departments = append(departments, department)
	}
	sort.Strings(departments)

	byType := make(map[string]string)
	for _, department := range departments {
		for _, t := range mappings[department] {
			if _, claimed := byType[t]; !claimed {
				byType[t] = department
			}
		}
	}
	return &Lookup{byType: byType}, nil
}

// DepartmentFor returns the department name covering the given invoice type.
// Unknown types classify as themselves, which makes the projection stage
// create a department named after the raw type string.
func (l *Lookup) DepartmentFor(invoiceType string) string {
	if department, ok := l.byType[invoiceType]; ok {
		return department
	}
	return invoiceType
}
