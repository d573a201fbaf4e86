// Package constants provides shared constants used throughout stockrecon:
// default folders, file permissions, worker limits and report layout.
package constants

// Default folders used by the extraction and reconciliation stages.
const (
	// DefaultIssueDir holds issue document (RW) records
	DefaultIssueDir = "RW_json"

	// DefaultDispatchDir holds dispatch document (WZ) records
	DefaultDispatchDir = "WZ_json"

	// DefaultTextDir holds raw OCR text of scanned issue documents
	DefaultTextDir = "RW_txt"
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Limit constants
const (
	// MaxConcurrentDecoders bounds the text extraction worker pool
	MaxConcurrentDecoders = 8

	// MaxRecordSize is the largest record file the store will read, in bytes
	MaxRecordSize = 4 << 20
)

// Report layout
const (
	// ReportRuleWidth is the width of the separator lines in the text report
	ReportRuleWidth = 150

	// UnknownID replaces a document identifier missing from its record
	UnknownID = "unknown"
)
