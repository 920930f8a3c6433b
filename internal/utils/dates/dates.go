package dates

import "time"

const (
	// SourceLayout is the date format source files are expected to carry.
	SourceLayout = "2006-01-02"
	// DisplayLayout is the canonical display format of the validated tier.
	DisplayLayout = "01-02-2006"
	// Unknown is the sentinel stored when a date is absent or unparseable.
	Unknown = "N/A"
)

// Normalize reformats a source date into the display format. Absent or
// unparseable input yields the Unknown sentinel; an invalid date is a
// recoverable data-quality condition, not an error.
func Normalize(value string) string {
	if value == "" {
		return Unknown
	}
	parsed, err := time.Parse(SourceLayout, value)
	if err != nil {
		return Unknown
	}
	return parsed.Format(DisplayLayout)
}
