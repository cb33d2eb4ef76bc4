// Package rules implements the semantic verification of ORTOFON transcripts:
// the checks the XML schema cannot express, and the engine that runs all of
// them against one document and aggregates every violation found.
package rules

import (
	"fmt"
	"strings"

	"github.com/ortofon/eafcheck/core/eaf"
)

// Violation is one detected rule failure. It is a snapshot: it never
// references the document tree after creation.
type Violation struct {
	Message string `json:"message"`
	Source  string `json:"source,omitempty"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
}

// String renders the violation in located form:
// <source>:<line>:<column>:VerificationError: <message>.
// Column is a constant 0; only element start lines are tracked.
func (v Violation) String() string {
	return fmt.Sprintf("%s:%d:%d:VerificationError: %s", v.Source, v.Line, v.Column, v.Message)
}

// VerificationError is the aggregate failure for one document: the full
// ordered set of violations from all checks.
type VerificationError struct {
	Violations []Violation
}

// Error renders the plain form: an indented, newline-separated message list.
func (e *VerificationError) Error() string {
	messages := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		messages[i] = v.Message
	}
	return "  " + strings.Join(messages, "\n  ")
}

// Check is one semantic rule. Apply is read-only over the document and
// returns every violation it finds; an empty result means the document is
// clean with respect to this rule.
type Check interface {
	Name() string
	Apply(doc *eaf.Document) []Violation
}

// Engine runs a fixed, ordered list of checks against one document.
type Engine struct {
	checks []Check
}

// NewEngine returns an engine with the full ORTOFON check set in its fixed
// registration order.
func NewEngine() *Engine {
	return &Engine{
		checks: []Check{
			VocabularyCheck{Category: "meta", Vocabulary: MetaVocabulary},
			VocabularyCheck{Category: "META", Vocabulary: BackgroundVocabulary},
			TierAttributesCheck{},
			HierarchyCheck{},
		},
	}
}

// Checks returns the registered checks in run order.
func (e *Engine) Checks() []Check {
	return e.checks
}

// Verify runs every check and concatenates their violations, preserving
// check-registration order and document order within a check. A failing
// check never prevents the remaining checks from running.
func (e *Engine) Verify(doc *eaf.Document) []Violation {
	var violations []Violation
	for _, check := range e.checks {
		violations = append(violations, check.Apply(doc)...)
	}
	return violations
}

// VerifyError runs Verify and wraps a non-empty result in a
// *VerificationError. It returns nil when the document is clean.
func (e *Engine) VerifyError(doc *eaf.Document) error {
	violations := e.Verify(doc)
	if len(violations) == 0 {
		return nil
	}
	return &VerificationError{Violations: violations}
}
