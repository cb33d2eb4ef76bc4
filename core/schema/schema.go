// Package schema validates transcripts against the ORTOFON EAF XML Schema.
// The grammar check is a precondition for meaningful semantic verification;
// its outcome is consumed by the driver as pass/fail plus messages.
package schema

import (
	"bytes"
	"embed"

	"github.com/jacoelho/xsd"
	xsderrors "github.com/jacoelho/xsd/errors"
)

//go:embed ortofon.xsd
var builtin embed.FS

// Validator wraps a compiled schema. Compilation happens once; Validate can
// be called concurrently.
type Validator struct {
	schema *xsd.Schema
}

// NewValidator compiles the embedded ORTOFON EAF schema.
func NewValidator() (*Validator, error) {
	s, err := xsd.LoadWithOptions(builtin, "ortofon.xsd", xsd.NewLoadOptions())
	if err != nil {
		return nil, err
	}
	return &Validator{schema: s}, nil
}

// NewValidatorFromFile compiles a schema from an external file, overriding
// the embedded one.
func NewValidatorFromFile(path string) (*Validator, error) {
	s, err := xsd.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return &Validator{schema: s}, nil
}

// Validate checks the document against the schema. It returns nil when the
// document conforms, otherwise the individual schema violation messages.
func (v *Validator) Validate(data []byte) []string {
	err := v.schema.Validate(bytes.NewReader(data))
	if err == nil {
		return nil
	}
	if violations, ok := xsderrors.AsValidations(err); ok {
		messages := make([]string, len(violations))
		for i := range violations {
			messages[i] = violations[i].Error()
		}
		return messages
	}
	return []string{err.Error()}
}
