// Package extract turns the OCR text of a scanned issue document (RW) into
// an IssueDocument record. Decoding is pattern based and forgiving: a field
// that cannot be found is left empty and reported by Verify instead of
// failing the document.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/agentstation/stockrecon/pkg/documents"
)

var (
	issueNumberPattern = regexp.MustCompile(`(?i)RW/U\d+/2[0-9]`)
	dispositionPattern = regexp.MustCompile(`(?i)DWS\s?(\d{3}/2[0-9])`)
	dispatchPattern    = regexp.MustCompile(`(?i)WZ\s?(\d{3}/\d{2}/2[0-9]/6)`)
	indexPattern       = regexp.MustCompile(`[0-9]{4}\s`)
	countPattern       = regexp.MustCompile(`\d+\s?SZT`)
	digitsPattern      = regexp.MustCompile(`\d+`)

	// itemTableHeader marks the line after which item lines are expected.
	itemTableHeader = regexp.MustCompile(`INDEKS|NAZWA|CENA`)
)

// DecodeIssueNumber returns the first issue document number found in text,
// uppercased, or "" when there is none.
func DecodeIssueNumber(text string) string {
	return strings.ToUpper(issueNumberPattern.FindString(text))
}

// DecodeDispositionNumbers returns every disposition number prefixed by "DWS".
func DecodeDispositionNumbers(text string) []string {
	return submatches(dispositionPattern, text)
}

// DecodeDispatchNumbers returns every dispatch number prefixed by "WZ".
func DecodeDispatchNumbers(text string) []string {
	return submatches(dispatchPattern, text)
}

func submatches(re *regexp.Regexp, text string) []string {
	out := []string{}
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		out = append(out, strings.ToUpper(m[1]))
	}
	return out
}

// IsItemLine reports whether line carries a four digit item index.
func IsItemLine(line string) bool {
	return indexPattern.MatchString(line)
}

// ItemIndex returns the first four digit item index on line, or 0.
func ItemIndex(line string) int {
	return leadingNumber(indexPattern.FindString(line))
}

// ItemCount returns the quantity written as "<n> SZT" on line, or 0.
func ItemCount(line string) int {
	return leadingNumber(countPattern.FindString(line))
}

func leadingNumber(s string) int {
	n, err := strconv.Atoi(digitsPattern.FindString(s))
	if err != nil {
		return 0
	}
	return n
}

// ItemLines returns the item lines of text: lines carrying an item index,
// starting at the item table header. Text without a header has no items.
func ItemLines(text string) []string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	start := -1
	for i, line := range lines {
		if itemTableHeader.MatchString(line) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil
	}

	var items []string
	for _, line := range lines[start:] {
		if IsItemLine(line) {
			items = append(items, line)
		}
	}
	return items
}

// DecodeIssue decodes the full text of one issue document.
func DecodeIssue(text string) documents.IssueDocument {
	doc := documents.IssueDocument{
		ID:              DecodeIssueNumber(text),
		DispositionRefs: DecodeDispositionNumbers(text),
		DispatchRefs:    DecodeDispatchNumbers(text),
		Items:           []documents.IssueItem{},
	}
	for _, line := range ItemLines(text) {
		doc.Items = append(doc.Items, documents.IssueItem{
			Index:    ItemIndex(line),
			Quantity: ItemCount(line),
		})
	}
	return doc
}
