package documents

import (
	stderrors "errors"
	"fmt"

	"github.com/agentstation/stockrecon/pkg/errors"
)

// Validate checks identifier formats. Problems are returned as
// *errors.ValidationError values describing the record; they are warnings,
// malformed identifiers are kept as-is and still take part in linking.
func (d IssueDocument) Validate() []error {
	var errs []error
	if !ValidIssueID(d.ID) {
		errs = append(errs, errors.NewValidationError("RW_document", d.ID, "does not match RW/U<digits>/<yy>"))
	}
	for _, ref := range d.DispositionRefs {
		if !ValidDispositionID(ref) {
			errs = append(errs, errors.NewValidationError("DWS_documents", ref, "does not match <nnn>/<yy>"))
		}
	}
	for _, ref := range d.DispatchRefs {
		if !ValidDispatchID(ref) {
			errs = append(errs, errors.NewValidationError("WZ_documents", ref, "does not match <nnn>/<mm>/<yy>/6"))
		}
	}
	return errs
}

// Validate checks identifier formats.
func (d DispatchDocument) Validate() []error {
	var errs []error
	if !ValidDispatchID(d.ID) {
		errs = append(errs, errors.NewValidationError("WZ_number", d.ID, "does not match <nnn>/<mm>/<yy>/6"))
	}
	if d.DispositionRef != "" && !ValidDispositionID(d.DispositionRef) {
		errs = append(errs, errors.NewValidationError("DWS_number", d.DispositionRef, "does not match <nnn>/<yy>"))
	}
	return errs
}

// CheckItems rejects negative indices and quantities. A record failing this
// check is malformed and must not contribute to any aggregation.
func (d IssueDocument) CheckItems() error {
	var errs []error
	for i, item := range d.Items {
		errs = append(errs, checkItem(i, item.Index, item.Quantity)...)
	}
	return stderrors.Join(errs...)
}

// CheckItems rejects negative indices and quantities.
func (d DispatchDocument) CheckItems() error {
	var errs []error
	for i, item := range d.Items {
		errs = append(errs, checkItem(i, item.Index, item.Quantity)...)
	}
	return stderrors.Join(errs...)
}

func checkItem(pos, index, quantity int) []error {
	var errs []error
	if index < 0 {
		errs = append(errs, errors.NewValidationError(fmt.Sprintf("items[%d].index", pos), index, "must not be negative"))
	}
	if quantity < 0 {
		errs = append(errs, errors.NewValidationError(fmt.Sprintf("items[%d].quantity", pos), quantity, "must not be negative"))
	}
	return errs
}
