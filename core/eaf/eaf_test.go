package eaf

import (
	"testing"
)

const sampleEAF = `<?xml version="1.0" encoding="UTF-8"?>
<ANNOTATION_DOCUMENT AUTHOR="" DATE="2024-02-05T10:00:00+01:00" FORMAT="2.7" VERSION="2.7">
	<TIME_ORDER>
		<TIME_SLOT TIME_SLOT_ID="ts1" TIME_VALUE="0"/>
		<TIME_SLOT TIME_SLOT_ID="ts2" TIME_VALUE="1000"/>
	</TIME_ORDER>
	<TIER TIER_ID="1 ort" LINGUISTIC_TYPE_REF="ortografický">
		<ANNOTATION>
			<ALIGNABLE_ANNOTATION ANNOTATION_ID="a1" TIME_SLOT_REF1="ts1" TIME_SLOT_REF2="ts2">
				<ANNOTATION_VALUE>dobrý den</ANNOTATION_VALUE>
			</ALIGNABLE_ANNOTATION>
		</ANNOTATION>
	</TIER>
	<TIER TIER_ID="1 fon" LINGUISTIC_TYPE_REF="fonetický" PARENT_REF="1 ort">
		<ANNOTATION>
			<REF_ANNOTATION ANNOTATION_ID="a2" ANNOTATION_REF="a1">
				<ANNOTATION_VALUE>dobrí den</ANNOTATION_VALUE>
			</REF_ANNOTATION>
		</ANNOTATION>
	</TIER>
	<TIER TIER_ID="meta" LINGUISTIC_TYPE_REF="meta">
		<ANNOTATION>
			<ALIGNABLE_ANNOTATION ANNOTATION_ID="a3" TIME_SLOT_REF1="ts1" TIME_SLOT_REF2="ts2">
				<ANNOTATION_VALUE>kašel</ANNOTATION_VALUE>
			</ALIGNABLE_ANNOTATION>
		</ANNOTATION>
	</TIER>
</ANNOTATION_DOCUMENT>`

func parseSample(t *testing.T) *Document {
	t.Helper()
	doc, err := Parse([]byte(sampleEAF), "sample.eaf")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return doc
}

// TestTiers verifies tier extraction with attribute presence tracking.
func TestTiers(t *testing.T) {
	doc := parseSample(t)

	tiers := doc.Tiers()
	if len(tiers) != 3 {
		t.Fatalf("expected 3 tiers, got %d", len(tiers))
	}

	ort := tiers[0]
	if ort.ID != "1 ort" || ort.LinguisticType != "ortografický" {
		t.Errorf("unexpected first tier: %+v", ort)
	}
	if ort.HasParentRef {
		t.Error("ort tier should have no PARENT_REF")
	}

	fon := tiers[1]
	if !fon.HasParentRef || fon.ParentRef != "1 ort" {
		t.Errorf("fon tier should have PARENT_REF '1 ort', got %+v", fon)
	}
	if fon.Line == 0 {
		t.Error("tier should carry a source line")
	}
}

// TestTiersByType verifies category filtering.
func TestTiersByType(t *testing.T) {
	doc := parseSample(t)

	if got := doc.TiersByType("fonetický"); len(got) != 1 || got[0].ID != "1 fon" {
		t.Errorf("TiersByType(fonetický) = %+v", got)
	}
	if got := doc.TiersByType("chybí"); got != nil {
		t.Errorf("TiersByType on unknown category should be empty, got %+v", got)
	}
}

// TestAnnotationValues verifies text extraction under a tier.
func TestAnnotationValues(t *testing.T) {
	doc := parseSample(t)

	meta := doc.TiersByType("meta")
	if len(meta) != 1 {
		t.Fatalf("expected 1 meta tier, got %d", len(meta))
	}
	values := meta[0].AnnotationValues()
	if len(values) != 1 {
		t.Fatalf("expected 1 annotation value, got %d", len(values))
	}
	if values[0].Text != "kašel" {
		t.Errorf("value text = %q, want kašel", values[0].Text)
	}
	if values[0].Line == 0 {
		t.Error("annotation value should carry a source line")
	}
}

// TestContainsAlignable verifies alignable-annotation detection per subtree.
func TestContainsAlignable(t *testing.T) {
	doc := parseSample(t)
	tiers := doc.Tiers()

	if !tiers[0].ContainsAlignable() {
		t.Error("ort tier subtree holds an ALIGNABLE_ANNOTATION")
	}
	if tiers[1].ContainsAlignable() {
		t.Error("fon tier subtree holds only REF_ANNOTATIONs")
	}
}

// TestEmptyAnnotationValue verifies empty text is surfaced, not skipped.
func TestEmptyAnnotationValue(t *testing.T) {
	data := `<ANNOTATION_DOCUMENT>
	<TIER TIER_ID="meta" LINGUISTIC_TYPE_REF="meta">
		<ANNOTATION><ALIGNABLE_ANNOTATION><ANNOTATION_VALUE/></ALIGNABLE_ANNOTATION></ANNOTATION>
	</TIER>
</ANNOTATION_DOCUMENT>`
	doc, err := Parse([]byte(data), "empty.eaf")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	values := doc.Tiers()[0].AnnotationValues()
	if len(values) != 1 || values[0].Text != "" {
		t.Errorf("expected one empty value, got %+v", values)
	}
}
