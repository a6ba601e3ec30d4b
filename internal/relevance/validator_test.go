package relevance

import (
	"math"
	"strings"
	"testing"

	"assessor/internal/question"
	"assessor/internal/response"
)

func cite(quote string) response.Citation {
	return response.Citation{DocumentName: "doc.txt", Quote: quote}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// TestValidateRejectsSentinelQuotes verifies "no evidence" quotes are discarded.
func TestValidateRejectsSentinelQuotes(t *testing.T) {
	v := New(nil, DefaultParams())
	q := question.Question{ID: "enc", Text: "Is data encrypted at rest?"}
	result := v.Validate(q, []response.Citation{cite("No evidence found regarding encryption."), cite("  ")})
	if len(result.Accepted) != 0 || len(result.Rejected) != 2 {
		t.Fatalf("expected both quotes rejected, got %+v", result)
	}
	if result.Rejected[0].Reason != ReasonSentinel || !approx(result.Rejected[0].Confidence, 0.1) {
		t.Fatalf("unexpected rejection %+v", result.Rejected[0])
	}
}

// TestValidateRejectsOtherConcept verifies quotes about a different concept fail.
func TestValidateRejectsOtherConcept(t *testing.T) {
	v := New(nil, DefaultParams())
	q := question.Question{ID: "pentest", Text: "Does the vendor perform annual penetration testing?"}
	result := v.Validate(q, []response.Citation{cite("All customer data is encrypted with AES-256 at rest and TLS 1.2 in transit.")})
	if len(result.Accepted) != 0 {
		t.Fatalf("expected rejection, got %+v", result.Accepted)
	}
	if result.Rejected[0].Reason != ReasonNoOverlap {
		t.Fatalf("unexpected reason %q", result.Rejected[0].Reason)
	}
	if result.Best() != 0 {
		t.Fatalf("expected zero best confidence, got %v", result.Best())
	}
}

// TestValidateBroadenedSecurityVocabulary verifies varied testing terms are accepted.
func TestValidateBroadenedSecurityVocabulary(t *testing.T) {
	v := New(nil, DefaultParams())
	q := question.Question{ID: "pentest", Text: "Does the vendor perform annual penetration testing?"}
	result := v.Validate(q, []response.Citation{cite("Quarterly Nessus scans and an annual red team exercise are performed.")})
	if len(result.Accepted) != 1 {
		t.Fatalf("expected acceptance, got %+v", result)
	}
	scored := result.Accepted[0]
	if scored.Concept != "security_testing" {
		t.Fatalf("expected broadened concept, got %s", scored.Concept)
	}
	if len(scored.Matched) < 2 {
		t.Fatalf("expected multiple keyword matches, got %v", scored.Matched)
	}
}

// TestConfidenceCurve verifies the single and multi keyword confidence values.
func TestConfidenceCurve(t *testing.T) {
	params := DefaultParams()
	v := New(nil, params)
	if got := v.curve(1, 10); !approx(got, 0.6) {
		t.Fatalf("expected 0.6 for one of ten, got %v", got)
	}
	if got := v.curve(2, 10); !approx(got, 0.85) {
		t.Fatalf("expected 0.85 for two of ten, got %v", got)
	}
	if got := v.curve(1, 1); !approx(got, params.MaxSingleConfidence) {
		t.Fatalf("expected single match cap, got %v", got)
	}
	if got := v.curve(5, 5); !approx(got, params.Cap) {
		t.Fatalf("expected overall cap, got %v", got)
	}
}

// TestValidateGeneralConcept verifies the fallback for questions outside the taxonomy.
func TestValidateGeneralConcept(t *testing.T) {
	v := New(nil, DefaultParams())
	q := question.Question{ID: "roadmap", Text: "Does the vendor publish a product roadmap?"}
	long := "Customers receive a yearly briefing covering planned features and upcoming releases."
	result := v.Validate(q, []response.Citation{
		cite("Our public roadmap is updated monthly."),
		cite(long),
		cite("Planned features are shared."),
	})
	if !result.General {
		t.Fatalf("expected general concept")
	}
	if len(result.Accepted) != 2 {
		t.Fatalf("expected 2 accepted quotes, got %+v", result.Accepted)
	}
	if !approx(result.Accepted[1].Confidence, 0.4) {
		t.Fatalf("expected general confidence for long quote, got %v", result.Accepted[1].Confidence)
	}
	if result.Rejected[0].Reason != ReasonShortQuote {
		t.Fatalf("unexpected rejection %+v", result.Rejected[0])
	}
	if !strings.Contains(result.Accepted[0].Matched[0], "roadmap") {
		t.Fatalf("expected roadmap keyword match, got %v", result.Accepted[0].Matched)
	}
}

// TestValidateUsesPrimaryConceptOnly verifies a question touching two concepts
// is judged by the first one; a quote about the second is rejected.
func TestValidateUsesPrimaryConceptOnly(t *testing.T) {
	v := New(nil, DefaultParams())
	q := question.Question{ID: "ir", Text: "Do you maintain an incident response plan for network intrusions?"}
	result := v.Validate(q, []response.Citation{
		cite("All office sites are protected by a firewall."),
		cite("The incident response plan covers containment of network intrusions."),
	})
	if result.Concept != "incident_response" {
		t.Fatalf("expected incident_response, got %s", result.Concept)
	}
	if len(result.Rejected) != 1 || result.Rejected[0].Reason != ReasonNoOverlap {
		t.Fatalf("expected the firewall quote rejected, got %+v", result.Rejected)
	}
	if len(result.Accepted) != 1 || result.Accepted[0].Concept != "incident_response" {
		t.Fatalf("expected the incident quote accepted, got %+v", result.Accepted)
	}
}

// TestValidateNarrowPenetrationVocabulary verifies the row broadened by
// security testing still substantiates pen-test questions.
func TestValidateNarrowPenetrationVocabulary(t *testing.T) {
	v := New(nil, DefaultParams())
	q := question.Question{ID: "pentest", Text: "Does the vendor perform annual penetration testing?"}
	result := v.Validate(q, []response.Citation{cite("A CREST accredited firm performs an annual penetration test.")})
	if len(result.Accepted) != 1 || result.Accepted[0].Concept != "penetration_testing" {
		t.Fatalf("expected acceptance via the narrow row, got %+v", result)
	}
	if result.Concept != "security_testing" {
		t.Fatalf("expected broadened primary concept, got %s", result.Concept)
	}
}

// TestValidateKeepsQuotesStartingWithSentinelWords verifies only whole
// "no evidence" statements are discarded.
func TestValidateKeepsQuotesStartingWithSentinelWords(t *testing.T) {
	v := New(nil, DefaultParams())
	q := question.Question{ID: "incidents", Text: "Have there been security incidents or breaches in the last year?"}
	result := v.Validate(q, []response.Citation{
		cite("No information security incidents or breaches occurred during 2023; the incident register was reviewed."),
		cite("No evidence was found in the provided documents."),
		cite("Not specified."),
		cite("N/A"),
	})
	if len(result.Accepted) != 1 || !strings.HasPrefix(result.Accepted[0].Citation.Quote, "No information security incidents") {
		t.Fatalf("expected the real excerpt accepted, got %+v", result.Accepted)
	}
	if len(result.Rejected) != 3 {
		t.Fatalf("expected three sentinel rejections, got %+v", result.Rejected)
	}
	for _, rejection := range result.Rejected {
		if rejection.Reason != ReasonSentinel {
			t.Fatalf("unexpected rejection %+v", rejection)
		}
	}
}
