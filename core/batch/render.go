package batch

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ortofon/eafcheck/core/rules"
)

// FailureBanner closes a run that found errors.
const FailureBanner = `
###############################################################################
Please correct the errors listed above and re-run the validation, new ones may
appear.
`

// SuccessBanner closes a clean run.
const SuccessBanner = `
###############################################################################
Validation completed. No errors were found.
`

// RenderPlain writes the per-document failures as indented message lists,
// then the final banner.
func RenderPlain(w io.Writer, result *Result) {
	for _, doc := range result.Documents {
		if doc.Status == StatusMalformed {
			fmt.Fprintf(w, "File %s is malformed XML.\n", doc.Source)
			continue
		}
		if len(doc.SchemaErrors) > 0 {
			fmt.Fprintf(w, "Validation error(s) in %s:\n  %s\n", doc.Source, strings.Join(doc.SchemaErrors, "\n  "))
		}
		if len(doc.Violations) > 0 {
			verr := &rules.VerificationError{Violations: doc.Violations}
			fmt.Fprintf(w, "Verification error(s) in %s:\n%s\n", doc.Source, verr.Error())
		}
	}
	renderBanner(w, result)
}

// RenderRich writes one located line per failure in
// source:line:column:Kind: message form, then the final banner.
func RenderRich(w io.Writer, result *Result) {
	for _, doc := range result.Documents {
		if doc.Status == StatusMalformed {
			fmt.Fprintf(w, "%s:0:0:ParseError: %s\n", doc.Source, doc.Error)
			continue
		}
		for _, msg := range doc.SchemaErrors {
			fmt.Fprintf(w, "%s:0:0:ValidationError: %s\n", doc.Source, msg)
		}
		for _, v := range doc.Violations {
			fmt.Fprintln(w, v.String())
		}
	}
	renderBanner(w, result)
}

// RenderJSON writes the whole result as an indented JSON report.
func RenderJSON(w io.Writer, result *Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func renderBanner(w io.Writer, result *Result) {
	if result.Failed() {
		fmt.Fprint(w, FailureBanner)
	} else {
		fmt.Fprint(w, SuccessBanner)
	}
}
