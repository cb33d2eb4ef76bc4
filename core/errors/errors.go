// Package errors provides the error taxonomy for document processing:
// malformed input, schema failures, and wrap helpers. Semantic violations
// are not errors in this sense; they are values (see core/rules).
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the per-document failure classes.
var (
	// ErrMalformed indicates the input could not be parsed as XML at all.
	ErrMalformed = errors.New("malformed XML")
	// ErrSchemaInvalid indicates the document parses but fails the grammar.
	ErrSchemaInvalid = errors.New("schema validation failed")
)

// ParseError represents an unparseable input document.
type ParseError struct {
	Path string // Source file path
	Err  error  // Underlying decoder error
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("file %s is malformed XML: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("malformed XML: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrMalformed
}

// Is lets a ParseError match ErrMalformed regardless of the wrapped cause.
func (e *ParseError) Is(target error) bool {
	return target == ErrMalformed
}

// SchemaError represents a grammar failure with the individual schema
// violation messages.
type SchemaError struct {
	Path     string   // Source file path
	Messages []string // Individual schema violation messages
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("validation error(s) in %s: %d schema violation(s)", e.Path, len(e.Messages))
}

func (e *SchemaError) Unwrap() error {
	return ErrSchemaInvalid
}

// NewParse creates a ParseError.
func NewParse(path string, err error) *ParseError {
	return &ParseError{Path: path, Err: err}
}

// NewSchema creates a SchemaError.
func NewSchema(path string, messages []string) *SchemaError {
	return &SchemaError{Path: path, Messages: messages}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// Is wraps errors.Is for convenience
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
