package catalogimport

import (
	"fmt"
	"strings"

	"github.com/shopapi/backend/internal/domain/shared"
)

// Import error codes
const (
	ErrCodeMissingField     = "MISSING_FIELD"
	ErrCodeMalformedPayload = "MALFORMED_PAYLOAD"
)

// Import errors
var (
	// ErrMissingField is returned when a required key is absent from the document
	ErrMissingField = shared.NewDomainError(ErrCodeMissingField, "Required field is missing")
	// ErrMalformedPayload is returned when the document does not have the expected structure
	ErrMalformedPayload = shared.NewDomainError(ErrCodeMalformedPayload, "Import document is malformed")
	// ErrEmptyDocument is returned for an empty upload
	ErrEmptyDocument = ErrMalformedPayload.WithMessage("Import document is empty")
)

// FieldError names an offending location in the document, e.g. "items[2].price"
type FieldError struct {
	Path    string `json:"path"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ErrorCollection manages a bounded collection of document errors
type ErrorCollection struct {
	errors     []FieldError
	maxErrors  int
	totalCount int
}

// NewErrorCollection creates a new ErrorCollection with a maximum error limit
func NewErrorCollection(maxErrors int) *ErrorCollection {
	if maxErrors <= 0 {
		maxErrors = 100
	}
	return &ErrorCollection{
		errors:    make([]FieldError, 0),
		maxErrors: maxErrors,
	}
}

// Add adds an error to the collection
func (ec *ErrorCollection) Add(err FieldError) {
	ec.totalCount++
	if len(ec.errors) < ec.maxErrors {
		ec.errors = append(ec.errors, err)
	}
}

// AddMissing records a required field that is absent
func (ec *ErrorCollection) AddMissing(path string) {
	ec.Add(FieldError{Path: path, Code: ErrCodeMissingField, Message: "This field is required"})
}

// AddMalformed records a field whose value has the wrong shape
func (ec *ErrorCollection) AddMalformed(path, message string) {
	ec.Add(FieldError{Path: path, Code: ErrCodeMalformedPayload, Message: message})
}

// Errors returns the collected errors
func (ec *ErrorCollection) Errors() []FieldError {
	return ec.errors
}

// TotalCount returns the total number of errors including those not collected
func (ec *ErrorCollection) TotalCount() int {
	return ec.totalCount
}

// HasErrors returns true if there are any errors
func (ec *ErrorCollection) HasErrors() bool {
	return ec.totalCount > 0
}

// IsTruncated returns true if some errors were not collected due to the limit
func (ec *ErrorCollection) IsTruncated() bool {
	return ec.totalCount > ec.maxErrors
}

// String returns a string representation of all errors
func (ec *ErrorCollection) String() string {
	if !ec.HasErrors() {
		return "no errors"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d error(s) found", ec.totalCount)
	if ec.IsTruncated() {
		fmt.Fprintf(&sb, " (showing first %d)", ec.maxErrors)
	}
	sb.WriteString(":\n")
	for _, err := range ec.errors {
		fmt.Fprintf(&sb, "  - %s\n", err.Error())
	}
	return sb.String()
}

// DomainError folds the collection into a single domain error. It is a
// MISSING_FIELD error when every problem is an absent field, otherwise a
// MALFORMED_PAYLOAD error. Both carry the per-field details.
func (ec *ErrorCollection) DomainError() *shared.DomainError {
	if !ec.HasErrors() {
		return nil
	}

	base := ErrMissingField
	details := make([]shared.FieldError, 0, len(ec.errors))
	for _, e := range ec.errors {
		if e.Code != ErrCodeMissingField {
			base = ErrMalformedPayload
		}
		details = append(details, shared.FieldError{Field: e.Path, Message: e.Message})
	}
	if ec.IsTruncated() {
		base = base.WithMessage(fmt.Sprintf("%s (%d errors, showing first %d)", base.Message, ec.totalCount, ec.maxErrors))
	}
	return base.WithDetails(details...)
}
