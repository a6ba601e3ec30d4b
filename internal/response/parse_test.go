package response

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"assessor/internal/document"
)

const payloadJSON = `{
  "answers": {"pentest": true, "maturity": "Defined", "notes": "Quarterly reviews"},
  "confidence": {"pentest": 0.9, "maturity": "80%"},
  "reasoning": {"pentest": "The report describes an annual test."},
  "evidence": {
    "pentest": [
      {"fileName": "soc2.pdf", "quote": "An independent firm performs annual penetration tests {scope: external}.", "pageNumber": 12, "relevance": "direct", "documentType": "Primary"},
      {"fileName": "", "quote": "missing name"},
      "not an object"
    ],
    "maturity": []
  }
}`

// TestParseEquivalentWrappings verifies fenced, prose-wrapped and bare payloads agree.
func TestParseEquivalentWrappings(t *testing.T) {
	inputs := map[string]string{
		"bare":              payloadJSON,
		"fenced":            "```json\n" + payloadJSON + "\n```",
		"prose":             "Here is the analysis you asked for:\n" + payloadJSON + "\nLet me know if you need more.",
		"fenced with prose": "Sure.\n```\n" + payloadJSON + "\n```\nDone.",
	}
	var baseline Payload
	first := true
	for name, input := range inputs {
		payload, err := Parse(input)
		if err != nil {
			t.Fatalf("%s: parse: %v", name, err)
		}
		if first {
			baseline = payload
			first = false
			continue
		}
		if !reflect.DeepEqual(payload, baseline) {
			t.Fatalf("%s: payload differs\n got %+v\nwant %+v", name, payload, baseline)
		}
	}
}

// TestParseReadsFields verifies claims, confidences and citations are decoded.
func TestParseReadsFields(t *testing.T) {
	payload, err := Parse(payloadJSON)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claim := payload.Answers["pentest"]; !claim.IsBool || !claim.Bool {
		t.Fatalf("unexpected pentest claim %+v", claim)
	}
	if claim := payload.Answers["maturity"]; claim.IsBool || claim.Text != "Defined" {
		t.Fatalf("unexpected maturity claim %+v", claim)
	}
	if payload.Confidence["maturity"] != 0.8 {
		t.Fatalf("expected percentage confidence to parse, got %v", payload.Confidence["maturity"])
	}
	citations := payload.Evidence["pentest"]
	if len(citations) != 1 {
		t.Fatalf("expected 1 valid citation, got %d", len(citations))
	}
	if payload.Dropped != 2 {
		t.Fatalf("expected 2 dropped citations, got %d", payload.Dropped)
	}
	c := citations[0]
	if c.DocumentName != "soc2.pdf" || c.PageOrSection != "12" || c.ClaimedRole != document.RolePrimary {
		t.Fatalf("unexpected citation %+v", c)
	}
	if _, ok := payload.Evidence["maturity"]; !ok {
		t.Fatalf("expected empty evidence list to be kept")
	}
}

// TestParseFailures verifies unusable text yields ParseFailure values.
func TestParseFailures(t *testing.T) {
	cases := []string{
		"",
		"I could not find anything relevant.",
		"{not json at all",
		`{"summary": "no answers key"}`,
		"```\nstill not json\n```",
	}
	for _, input := range cases {
		_, err := Parse(input)
		var failure *ParseFailure
		if !errors.As(err, &failure) {
			t.Fatalf("%q: expected parse failure, got %v", input, err)
		}
	}
}

// TestParseFailureKeepsExcerpt verifies the raw excerpt is bounded.
func TestParseFailureKeepsExcerpt(t *testing.T) {
	_, err := Parse(strings.Repeat("x", 2000))
	var failure *ParseFailure
	if !errors.As(err, &failure) {
		t.Fatalf("expected parse failure, got %v", err)
	}
	if len(failure.Excerpt) != excerptLimit+3 {
		t.Fatalf("expected bounded excerpt, got %d chars", len(failure.Excerpt))
	}
}

// TestParseSkipsLeadingBraces verifies stray braces before the payload are ignored.
func TestParseSkipsLeadingBraces(t *testing.T) {
	raw := "Using template {name} and {{ unbalanced, the result is " + payloadJSON
	payload, err := Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(payload.Answers) != 3 {
		t.Fatalf("expected 3 answers, got %d", len(payload.Answers))
	}
}
