package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ortofon/eafcheck/core/eaf"
)

// CategoryPhonetic is the LINGUISTIC_TYPE_REF of phonetic tiers, which must
// be dependent on an orthographic parent tier.
const CategoryPhonetic = "fonetický"

// speakerPrefix matches the per-speaker numeric marker at the start of a
// TIER_ID, e.g. the "2 " in "2 fon".
var speakerPrefix = regexp.MustCompile(`^[0-9] `)

// allowedTierTypes is the allow-list of valid (LINGUISTIC_TYPE_REF,
// normalized TIER_ID) combinations.
var allowedTierTypes = map[string][]string{
	"ortografický": {"ort", "JO"},
	"fonetický":    {"fon"},
	"meta":         {"meta"},
	"anomálie":     {"anom"},
	"META":         {"META"},
}

// TierAttributesCheck verifies that tier attributes are present when
// required and mutually consistent. It runs three independent sub-checks
// and accumulates all their violations.
type TierAttributesCheck struct{}

// Name identifies the check in logs and reports.
func (TierAttributesCheck) Name() string {
	return "tier-attributes"
}

// Apply runs the parent-required, prefix-agreement and id-pattern rules.
// Missing attributes compare as empty strings; they are reported as
// violations, never raised as errors.
func (TierAttributesCheck) Apply(doc *eaf.Document) []Violation {
	tiers := doc.Tiers()
	var violations []Violation

	// Parent-required: a phonetic tier without PARENT_REF is invalid no
	// matter what its other attributes say.
	for _, tier := range tiers {
		if tier.LinguisticType != CategoryPhonetic || tier.HasParentRef {
			continue
		}
		violations = append(violations, Violation{
			Message: fmt.Sprintf("TIER '%s' with @LINGUISTIC_TYPE_REF = '%s' should have a @PARENT_REF attribute.",
				tier.ID, CategoryPhonetic),
			Source: doc.Source(),
			Line:   tier.Line,
		})
	}

	// Prefix-agreement: the numeric speaker prefixes of TIER_ID and
	// PARENT_REF must match on phonetic tiers that do carry a parent.
	for _, tier := range tiers {
		if tier.LinguisticType != CategoryPhonetic || !tier.HasParentRef {
			continue
		}
		if numericPrefix(tier.ID) == numericPrefix(tier.ParentRef) {
			continue
		}
		violations = append(violations, Violation{
			Message: fmt.Sprintf("The numeric prefixes of @TIER_ID = '%s' and @PARENT_REF = '%s' should match on a TIER with @LINGUISTIC_TYPE_REF = '%s'.",
				tier.ID, tier.ParentRef, CategoryPhonetic),
			Source: doc.Source(),
			Line:   tier.Line,
		})
	}

	// Id-pattern: after stripping the speaker prefix, the (category, id)
	// pair must be in the allow-list.
	for _, tier := range tiers {
		normalized := speakerPrefix.ReplaceAllString(tier.ID, "")
		if allowedCombination(tier.LinguisticType, normalized) {
			continue
		}
		violations = append(violations, Violation{
			Message: fmt.Sprintf("@TIER_ID = '%s' is not a valid combination with @LINGUISTIC_TYPE_REF = '%s'.",
				tier.ID, tier.LinguisticType),
			Source: doc.Source(),
			Line:   tier.Line,
		})
	}

	return violations
}

// numericPrefix returns the substring before the first space, or the whole
// string when there is none.
func numericPrefix(s string) string {
	prefix, _, _ := strings.Cut(s, " ")
	return prefix
}

func allowedCombination(category, normalizedID string) bool {
	for _, id := range allowedTierTypes[category] {
		if id == normalizedID {
			return true
		}
	}
	return false
}
