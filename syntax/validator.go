package syntax

import (
	"fmt"
	"strings"

	"github.com/RReverser/espree/ast"
	"github.com/RReverser/espree/feature"
	"github.com/RReverser/espree/token"
)

// ValidationError is one node whose syntax is not allowed.
type ValidationError struct {
	Message  string
	Feature  feature.Feature // set by feature validators
	Node     ast.Node
	Position token.Position
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s at line %d, column %d", e.Message, e.Position.Line, e.Position.Column+1)
}

// ValidationErrors is the result of a failed validation, in source order.
type ValidationErrors struct {
	Errors []ValidationError
}

// NewValidationErrors wraps errs.
func NewValidationErrors(errs []ValidationError) *ValidationErrors {
	return &ValidationErrors{Errors: errs}
}

// Error implements the error interface. Several entries are listed one
// per line.
func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "no validation errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d validation errors:\n", len(e.Errors))
	for i := range e.Errors {
		b.WriteString("  - ")
		b.WriteString(e.Errors[i].Error())
		b.WriteByte('\n')
	}
	return b.String()
}

// Unwrap gives errors.Is and errors.As access to every entry.
func (e *ValidationErrors) Unwrap() []error {
	if len(e.Errors) == 0 {
		return nil
	}
	errs := make([]error, len(e.Errors))
	for i := range e.Errors {
		errs[i] = &e.Errors[i]
	}
	return errs
}

// Missing returns the features the entries name.
func (e *ValidationErrors) Missing() feature.Set {
	var set feature.Set
	for _, err := range e.Errors {
		set = set.With(err.Feature)
	}
	return set
}

// Validator checks a program without modifying it.
type Validator interface {
	Validate(program *ast.Program) []ValidationError
}

// ValidatorFunc adapts a function to the Validator interface.
type ValidatorFunc func(*ast.Program) []ValidationError

// Validate implements the Validator interface.
func (f ValidatorFunc) Validate(p *ast.Program) []ValidationError {
	return f(p)
}
