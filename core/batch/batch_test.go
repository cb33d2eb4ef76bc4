package batch

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ortofon/eafcheck/core/schema"
)

const validEAF = `<?xml version="1.0" encoding="UTF-8"?>
<ANNOTATION_DOCUMENT AUTHOR="" DATE="2024-02-05T10:00:00+01:00" FORMAT="2.7" VERSION="2.7">
	<TIME_ORDER>
		<TIME_SLOT TIME_SLOT_ID="ts1" TIME_VALUE="0"/>
		<TIME_SLOT TIME_SLOT_ID="ts2" TIME_VALUE="1000"/>
	</TIME_ORDER>
	<TIER TIER_ID="meta" LINGUISTIC_TYPE_REF="meta">
		<ANNOTATION>
			<ALIGNABLE_ANNOTATION ANNOTATION_ID="a1" TIME_SLOT_REF1="ts1" TIME_SLOT_REF2="ts2">
				<ANNOTATION_VALUE>kašel</ANNOTATION_VALUE>
			</ALIGNABLE_ANNOTATION>
		</ANNOTATION>
	</TIER>
</ANNOTATION_DOCUMENT>`

const violationsEAF = `<?xml version="1.0" encoding="UTF-8"?>
<ANNOTATION_DOCUMENT>
	<TIER TIER_ID="meta" LINGUISTIC_TYPE_REF="meta">
		<ANNOTATION>
			<ALIGNABLE_ANNOTATION ANNOTATION_ID="a1" TIME_SLOT_REF1="ts1" TIME_SLOT_REF2="ts2">
				<ANNOTATION_VALUE>škytavka</ANNOTATION_VALUE>
			</ALIGNABLE_ANNOTATION>
		</ANNOTATION>
	</TIER>
</ANNOTATION_DOCUMENT>`

const malformedEAF = `<?xml version="1.0"?><ANNOTATION_DOCUMENT><TIER`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

// TestRunCleanDocument verifies a clean file passes.
func TestRunCleanDocument(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "clean.eaf", validEAF)

	result := NewRunner(nil).Run([]string{path})
	if result.Failed() {
		t.Fatalf("clean run should not fail: %+v", result.Documents)
	}
	if result.RunID == "" {
		t.Error("result should carry a run ID")
	}
	if result.Documents[0].Status != StatusPass {
		t.Errorf("status = %s, want %s", result.Documents[0].Status, StatusPass)
	}
}

// TestRunContinuesAfterFailure verifies one document's failure never stops
// the batch and results keep input order.
func TestRunContinuesAfterFailure(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "broken.eaf", malformedEAF),
		writeFile(t, dir, "bad.eaf", violationsEAF),
		writeFile(t, dir, "clean.eaf", validEAF),
	}

	result := NewRunner(nil).Run(paths)
	if len(result.Documents) != 3 {
		t.Fatalf("expected 3 documents, got %d", len(result.Documents))
	}
	if !result.Failed() {
		t.Error("run with failures should be marked failed")
	}

	wantStatus := []string{StatusMalformed, StatusViolations, StatusPass}
	for i, want := range wantStatus {
		if got := result.Documents[i].Status; got != want {
			t.Errorf("document %d status = %s, want %s", i, got, want)
		}
	}
	if result.Documents[0].Error == "" {
		t.Error("malformed document should carry an error message")
	}
	if len(result.Documents[1].Violations) != 1 {
		t.Errorf("expected 1 violation, got %+v", result.Documents[1].Violations)
	}
}

// TestRunParallel verifies parallel runs produce the same ordered outcomes
// as sequential ones.
func TestRunParallel(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "a.eaf", validEAF),
		writeFile(t, dir, "b.eaf", violationsEAF),
		writeFile(t, dir, "c.eaf", malformedEAF),
		writeFile(t, dir, "d.eaf", validEAF),
	}

	sequential := NewRunner(nil).Run(paths)

	parallel := NewRunner(nil)
	parallel.Jobs = 3
	concurrent := parallel.Run(paths)

	if len(sequential.Documents) != len(concurrent.Documents) {
		t.Fatalf("document counts differ: %d vs %d", len(sequential.Documents), len(concurrent.Documents))
	}
	for i := range sequential.Documents {
		seq, par := sequential.Documents[i], concurrent.Documents[i]
		if seq.Source != par.Source || seq.Status != par.Status || len(seq.Violations) != len(par.Violations) {
			t.Errorf("document %d differs: %+v vs %+v", i, seq, par)
		}
	}
}

// TestSchemaInvalidStillVerified verifies the decided policy: a document
// failing the grammar still undergoes semantic checking.
func TestSchemaInvalidStillVerified(t *testing.T) {
	validator, err := schema.NewValidator()
	if err != nil {
		t.Fatalf("NewValidator failed: %v", err)
	}

	doc := `<?xml version="1.0"?>
<ANNOTATION_DOCUMENT>
	<SURPRISE/>
	<TIER TIER_ID="meta" LINGUISTIC_TYPE_REF="meta">
		<ANNOTATION>
			<ALIGNABLE_ANNOTATION ANNOTATION_ID="a1" TIME_SLOT_REF1="ts1" TIME_SLOT_REF2="ts2">
				<ANNOTATION_VALUE>škytavka</ANNOTATION_VALUE>
			</ALIGNABLE_ANNOTATION>
		</ANNOTATION>
	</TIER>
</ANNOTATION_DOCUMENT>`

	dir := t.TempDir()
	path := writeFile(t, dir, "both.eaf", doc)

	result := NewRunner(validator).Run([]string{path})
	got := result.Documents[0]
	if got.Status != StatusSchemaInvalid {
		t.Errorf("status = %s, want %s", got.Status, StatusSchemaInvalid)
	}
	if len(got.SchemaErrors) == 0 {
		t.Error("schema errors should be recorded")
	}
	if len(got.Violations) != 1 {
		t.Errorf("semantic checks should still run, got %+v", got.Violations)
	}
}

// TestRenderPlain verifies the message list form and the exact banners.
func TestRenderPlain(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "bad.eaf", violationsEAF),
		writeFile(t, dir, "broken.eaf", malformedEAF),
	}
	result := NewRunner(nil).Run(paths)

	var buf bytes.Buffer
	RenderPlain(&buf, result)
	out := buf.String()

	if !strings.Contains(out, "Verification error(s) in "+paths[0]+":\n  'škytavka' is not allowed in a meta tier.") {
		t.Errorf("missing verification block:\n%s", out)
	}
	if !strings.Contains(out, "File "+paths[1]+" is malformed XML.") {
		t.Errorf("missing malformed line:\n%s", out)
	}
	if !strings.HasSuffix(out, FailureBanner) {
		t.Errorf("output should end with the failure banner:\n%s", out)
	}

	buf.Reset()
	clean := NewRunner(nil).Run([]string{writeFile(t, dir, "clean.eaf", validEAF)})
	RenderPlain(&buf, clean)
	if !strings.HasSuffix(buf.String(), SuccessBanner) {
		t.Errorf("clean output should end with the success banner:\n%s", buf.String())
	}
}

// TestRenderRich verifies the located one-line-per-failure form.
func TestRenderRich(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.eaf", violationsEAF)
	result := NewRunner(nil).Run([]string{path})

	var buf bytes.Buffer
	RenderRich(&buf, result)
	out := buf.String()

	if !strings.Contains(out, path+":6:0:VerificationError: 'škytavka' is not allowed in a meta tier.") {
		t.Errorf("missing located violation line:\n%s", out)
	}
}

// TestRenderJSON verifies the report round-trips as JSON.
func TestRenderJSON(t *testing.T) {
	dir := t.TempDir()
	result := NewRunner(nil).Run([]string{writeFile(t, dir, "bad.eaf", violationsEAF)})

	var buf bytes.Buffer
	if err := RenderJSON(&buf, result); err != nil {
		t.Fatalf("RenderJSON failed: %v", err)
	}

	var decoded Result
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if decoded.RunID != result.RunID {
		t.Errorf("run_id = %s, want %s", decoded.RunID, result.RunID)
	}
	if len(decoded.Documents) != 1 || decoded.Documents[0].Status != StatusViolations {
		t.Errorf("unexpected decoded documents: %+v", decoded.Documents)
	}
}
