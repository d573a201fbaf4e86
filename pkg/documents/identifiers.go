package documents

import (
	"regexp"
	"strings"
)

var (
	issueIDPattern       = regexp.MustCompile(`^RW/U\d+/\d{2}$`)
	dispatchIDPattern    = regexp.MustCompile(`^(?:[A-Za-z]+[_ -]?)?\d{3}/\d{2}/\d{2}/6$`)
	dispositionIDPattern = regexp.MustCompile(`^\d{3}/\d{2}$`)
)

// CanonicalIssueID trims and uppercases an issue document identifier.
// Identifiers are case-insensitive on input ("Rw/u00018/23").
func CanonicalIssueID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

// ValidIssueID reports whether id has the RW/U<digits>/<yy> shape.
func ValidIssueID(id string) bool {
	return issueIDPattern.MatchString(CanonicalIssueID(id))
}

// ValidDispatchID reports whether id has the <nnn>/<mm>/<yy>/6 shape,
// optionally carrying a namespace prefix such as "WZ_".
func ValidDispatchID(id string) bool {
	return dispatchIDPattern.MatchString(strings.TrimSpace(id))
}

// ValidDispositionID reports whether id has the <nnn>/<yy> shape.
func ValidDispositionID(id string) bool {
	return dispositionIDPattern.MatchString(strings.TrimSpace(id))
}

// FileName returns the record file base name for a document identifier:
// slashes become underscores and the extension is appended.
func FileName(prefix, id, ext string) string {
	return prefix + strings.ReplaceAll(id, "/", "_") + ext
}
