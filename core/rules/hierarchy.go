package rules

import (
	"fmt"

	"github.com/ortofon/eafcheck/core/eaf"
)

// HierarchyCheck verifies that forbidden element nesting does not occur:
// a dependent tier (one carrying PARENT_REF) must only contain reference
// annotations, never directly time-aligned ones.
//
// Granularity: one violation per offending tier, regardless of how many
// ALIGNABLE_ANNOTATIONs its subtree holds. This keeps each violation
// located at a tier without flooding the output.
type HierarchyCheck struct{}

// Name identifies the check in logs and reports.
func (HierarchyCheck) Name() string {
	return "hierarchy"
}

// Apply returns one violation per dependent tier containing an
// ALIGNABLE_ANNOTATION.
func (HierarchyCheck) Apply(doc *eaf.Document) []Violation {
	var violations []Violation
	for _, tier := range doc.Tiers() {
		if !tier.HasParentRef {
			continue
		}
		if !tier.ContainsAlignable() {
			continue
		}
		violations = append(violations, Violation{
			Message: fmt.Sprintf("ALIGNABLE_ANNOTATIONs are not allowed on TIER '%s' with a @PARENT_REF attribute.",
				tier.ID),
			Source: doc.Source(),
			Line:   tier.Line,
		})
	}
	return violations
}
