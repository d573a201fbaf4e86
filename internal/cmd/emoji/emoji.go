// Package emoji provides symbol constants for CLI output.
package emoji

// Status symbols printed in front of alerts.
const (
	// Success marks a completed operation or a clean comparison.
	Success = "✓"

	// Error marks a failed operation.
	Error = "✗"

	// Warning marks discrepancies and skipped records.
	Warning = "!"

	// Unknown marks an unrecognized status.
	Unknown = "?"
)
