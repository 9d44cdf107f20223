package domain

import "errors"

var (
	ErrInvalidActor    = errors.New("invalid_actor")
	ErrInvoiceNotFound = errors.New("invoice_not_found")

	// ErrSequenceExhausted means more than 9999 invoices were issued for one
	// supplier on one day; the fixed-width numbering scheme cannot represent
	// another, so the request is rejected.
	ErrSequenceExhausted = errors.New("invoice_sequence_exhausted")

	// ErrNumberConflictExhausted means every allocation attempt lost the race
	// for an invoice number.
	ErrNumberConflictExhausted = errors.New("invoice_number_conflict_exhausted")
)

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationError aggregates every rejected field of a request so the caller
// sees all problems at once.
type ValidationError struct {
	Fields []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	return "validation error"
}

// Add appends a field error and returns the receiver for chaining.
func (e *ValidationError) Add(field, code, message string) *ValidationError {
	e.Fields = append(e.Fields, FieldError{Field: field, Code: code, Message: message})
	return e
}

// OrNil returns nil when no field was rejected.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}
