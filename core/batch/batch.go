// Package batch drives validation over a set of transcript files: per
// document it runs the grammar check and the semantic rule engine, collects
// a structured result, and never lets one document's failure abort the rest.
package batch

import (
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ortofon/eafcheck/core/eaf"
	eaferrors "github.com/ortofon/eafcheck/core/errors"
	"github.com/ortofon/eafcheck/core/rules"
	"github.com/ortofon/eafcheck/core/schema"
	"github.com/ortofon/eafcheck/internal/logging"
)

// Per-document status values. Precedence when several apply:
// malformed > schema-invalid > violations > pass. A schema-invalid document
// still records its semantic violations; only unparseable input skips the
// rule engine.
const (
	StatusPass          = "pass"
	StatusMalformed     = "malformed"
	StatusSchemaInvalid = "schema-invalid"
	StatusViolations    = "violations"
)

// DocumentResult is the outcome for one input file.
type DocumentResult struct {
	Source       string            `json:"source"`
	Status       string            `json:"status"`
	Error        string            `json:"error,omitempty"`
	SchemaErrors []string          `json:"schema_errors,omitempty"`
	Violations   []rules.Violation `json:"violations,omitempty"`
}

// Failed reports whether the document failed in any way.
func (r DocumentResult) Failed() bool {
	return r.Status != StatusPass
}

// Result is the outcome of one validation run over a batch of files.
type Result struct {
	RunID      string           `json:"run_id"`
	StartedAt  time.Time        `json:"started_at"`
	DurationMS int64            `json:"duration_ms"`
	Documents  []DocumentResult `json:"documents"`
}

// Failed reports whether any document in the run failed.
func (r *Result) Failed() bool {
	for _, d := range r.Documents {
		if d.Failed() {
			return true
		}
	}
	return false
}

// Runner validates documents. Validator may be nil to skip the grammar
// check; Engine must be set.
type Runner struct {
	Validator *schema.Validator
	Engine    *rules.Engine
	// Jobs is the number of documents checked concurrently. Documents
	// share no mutable state, so any value >= 1 is safe; results keep
	// input order either way.
	Jobs int
}

// NewRunner returns a sequential runner with the full rule set.
func NewRunner(validator *schema.Validator) *Runner {
	return &Runner{
		Validator: validator,
		Engine:    rules.NewEngine(),
		Jobs:      1,
	}
}

// Run validates every file and returns the aggregate result. One document's
// failure never stops the batch.
func (r *Runner) Run(paths []string) *Result {
	started := time.Now()
	result := &Result{
		RunID:     uuid.NewString(),
		StartedAt: started,
		Documents: make([]DocumentResult, len(paths)),
	}

	jobs := r.Jobs
	if jobs < 1 {
		jobs = 1
	}
	if jobs > len(paths) {
		jobs = len(paths)
	}

	if jobs <= 1 {
		for i, path := range paths {
			result.Documents[i] = r.checkDocument(path)
		}
	} else {
		var wg sync.WaitGroup
		sem := make(chan struct{}, jobs)
		for i, path := range paths {
			wg.Add(1)
			go func(i int, path string) {
				defer wg.Done()
				sem <- struct{}{}
				defer func() { <-sem }()
				result.Documents[i] = r.checkDocument(path)
			}(i, path)
		}
		wg.Wait()
	}

	result.DurationMS = time.Since(started).Milliseconds()

	failed := 0
	for _, d := range result.Documents {
		if d.Failed() {
			failed++
		}
	}
	logging.BatchFinished(result.RunID, len(result.Documents), failed, time.Since(started))
	return result
}

func (r *Runner) checkDocument(path string) DocumentResult {
	started := time.Now()
	result := DocumentResult{Source: path, Status: StatusPass}

	data, err := os.ReadFile(path)
	if err == nil {
		var doc *eaf.Document
		doc, err = eaf.Parse(data, path)
		if err == nil {
			if r.Validator != nil {
				result.SchemaErrors = r.Validator.Validate(data)
			}
			// Semantic checks run even after a grammar failure; the
			// rules normalize missing attributes to empty strings, so
			// a structurally odd tree degrades to reported violations.
			result.Violations = r.Engine.Verify(doc)
		}
	}

	switch {
	case err != nil:
		result.Status = StatusMalformed
		result.Error = eaferrors.NewParse(path, err).Error()
	case len(result.SchemaErrors) > 0:
		result.Status = StatusSchemaInvalid
	case len(result.Violations) > 0:
		result.Status = StatusViolations
	}

	logging.DocumentChecked(path, result.Status, len(result.Violations), time.Since(started))
	return result
}
