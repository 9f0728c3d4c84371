package sift

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrorKind classifies a rejected request parameter.
type ErrorKind string

const (
	KindUnknownField         ErrorKind = "unknown_field"
	KindUnknownOperator      ErrorKind = "unknown_operator"
	KindInvalidValue         ErrorKind = "invalid_value"
	KindPagination           ErrorKind = "pagination"
	KindOrderingNotPermitted ErrorKind = "ordering_not_permitted"
)

// InputError describes one rejected request parameter. Location is the field
// name or parameter key the message applies to.
type InputError struct {
	Kind     ErrorKind `json:"kind"`
	Location string    `json:"location"`
	Message  string    `json:"message"`
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s", e.Location, e.Message)
}

// InputErrors aggregates request-input failures so the transport can render
// them as one client-error response.
type InputErrors []*InputError

func (e InputErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// AsInputErrors extracts request-input failures from err. A single InputError
// is promoted to a one-element list so the transport only deals with the
// aggregate shape.
func AsInputErrors(err error) (InputErrors, bool) {
	var inputErrs InputErrors
	if errors.As(err, &inputErrs) {
		return inputErrs, true
	}
	var inputErr *InputError
	if errors.As(err, &inputErr) {
		return InputErrors{inputErr}, true
	}
	return nil, false
}

func NewUnknownFieldError(field string) *InputError {
	return &InputError{
		Kind:     KindUnknownField,
		Location: field,
		Message:  fmt.Sprintf("unknown filtering field %q", field),
	}
}

func NewUnknownOrderingFieldError(field string) *InputError {
	return &InputError{
		Kind:     KindUnknownField,
		Location: field,
		Message:  fmt.Sprintf("unknown ordering field %q", field),
	}
}

func NewUnknownOperatorError(op string) *InputError {
	return &InputError{
		Kind:     KindUnknownOperator,
		Location: op,
		Message:  fmt.Sprintf("unknown lookup %q", op),
	}
}

func NewInvalidValueError(field string, message string) *InputError {
	return &InputError{
		Kind:     KindInvalidValue,
		Location: field,
		Message:  message,
	}
}

func NewPaginationError(param string, message string) *InputError {
	return &InputError{
		Kind:     KindPagination,
		Location: param,
		Message:  message,
	}
}

func NewOrderingNotPermittedError(field string) *InputError {
	return &InputError{
		Kind:     KindOrderingNotPermitted,
		Location: field,
		Message:  fmt.Sprintf("ordering by %q is not permitted", field),
	}
}

// SchemaError reports a declaration-time defect: a missing model or schema, a
// field without a backing column, an unregistered field type, or coercion
// invoked without operator context. These abort construction and are never
// rendered as request-input errors.
type SchemaError struct {
	msg string
}

func NewSchemaError(format string, args ...any) *SchemaError {
	return &SchemaError{msg: fmt.Sprintf(format, args...)}
}

func (e *SchemaError) Error() string { return e.msg }

func IsSchemaError(err error) bool {
	var schemaErr *SchemaError
	return errors.As(err, &schemaErr)
}
