package rules

import (
	"fmt"

	"github.com/ortofon/eafcheck/core/eaf"
)

// Vocabulary is a closed set of permitted annotation labels.
type Vocabulary struct {
	entries map[string]struct{}
}

// NewVocabulary builds a vocabulary from its permitted entries.
func NewVocabulary(entries ...string) Vocabulary {
	set := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		set[e] = struct{}{}
	}
	return Vocabulary{entries: set}
}

// Contains reports membership of a label.
func (v Vocabulary) Contains(label string) bool {
	_, ok := v.entries[label]
	return ok
}

// Len returns the number of permitted entries.
func (v Vocabulary) Len() int {
	return len(v.entries)
}

// MetaVocabulary is the controlled vocabulary for meta tiers: speaker-bound
// non-speech events (vocalizations, disfluencies). Fixed by the ORTOFON
// transcription conventions.
var MetaVocabulary = NewVocabulary(
	"citoslovce",
	"citoslovce odporu",
	"citoslovce opovržení",
	"citoslovce údivu",
	"citoslovce úleku",
	"dlouhá pauza",
	"hvízdání",
	"kašel",
	"klepání",
	"kýchání",
	"lusknutí prsty",
	"líbání",
	"mlasknutí",
	"mluví ke zvířeti",
	"nadechnutí",
	"odkašlání",
	"plácnutí",
	"pláč",
	"polknutí",
	"pousmání",
	"povzdech",
	"pískání",
	"říhnutí",
	"smrkání",
	"smích",
	"srkání",
	"škytání",
	"tleskání",
	"vydechnutí",
	"zakoktání",
	"zívání",
)

// BackgroundVocabulary is the controlled vocabulary for the META tier:
// ambient and background noises not bound to a speaker. Distinct from
// MetaVocabulary and never merged with it.
var BackgroundVocabulary = NewVocabulary(
	"cinkání nádobí",
	"dlouhá pauza",
	"domácí spotřebič",
	"hlasitý hovor v pozadí",
	"hluk v pozadí",
	"hra na hudební nástroj",
	"jiné zvíře",
	"klepání",
	"kroky",
	"mňoukání kočky",
	"nesrozumitelný hovor více mluvčích najednou",
	"nábytek",
	"pláč dítěte",
	"počítač a příslušenství",
	"ruch z ulice",
	"rušivý zvuk",
	"smích více mluvčích najednou",
	"štěkání psa",
	"zvonění telefonu",
	"zvuk z rádia",
	"zvuk z televize",
	"zvuky při jídle",
)

// VocabularyCheck verifies that every annotation value under a tier of the
// given category belongs to the vocabulary. Absent text compares as an empty
// string, which is outside every vocabulary and therefore reported.
type VocabularyCheck struct {
	Category   string
	Vocabulary Vocabulary
}

// Name identifies the check in logs and reports.
func (c VocabularyCheck) Name() string {
	return "vocabulary/" + c.Category
}

// Apply returns one violation per annotation value outside the vocabulary.
func (c VocabularyCheck) Apply(doc *eaf.Document) []Violation {
	var violations []Violation
	for _, tier := range doc.TiersByType(c.Category) {
		for _, value := range tier.AnnotationValues() {
			if c.Vocabulary.Contains(value.Text) {
				continue
			}
			violations = append(violations, Violation{
				Message: fmt.Sprintf("'%s' is not allowed in a %s tier.", value.Text, c.Category),
				Source:  doc.Source(),
				Line:    value.Line,
			})
		}
	}
	return violations
}
