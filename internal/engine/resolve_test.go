package engine

import (
	"strings"
	"testing"

	"assessor/internal/document"
	"assessor/internal/question"
	"assessor/internal/risk"
)

// TestContainsLiteral verifies quotes are matched ignoring case, spacing and elisions.
func TestContainsLiteral(t *testing.T) {
	text := "Backups are taken   nightly.\nThey are restored\tquarterly as a test."
	cases := []struct {
		quote string
		want  bool
	}{
		{"backups are taken nightly.", true},
		{"\"They are restored quarterly\"", true},
		{"Backups are taken … quarterly as a test.", true},
		{"Backups are taken weekly.", false},
		{"...", false},
	}
	for _, tc := range cases {
		if got := containsLiteral(text, tc.quote); got != tc.want {
			t.Fatalf("containsLiteral(%q) = %v, want %v", tc.quote, got, tc.want)
		}
	}
}

// TestIsTitleQuote verifies file names and their stems count as titles.
func TestIsTitleQuote(t *testing.T) {
	if !isTitleQuote("SOC2 Report.pdf", "soc2 report") || !isTitleQuote("SOC2 Report.pdf", "SOC2 Report.pdf") {
		t.Fatalf("expected title match")
	}
	if isTitleQuote("SOC2 Report.pdf", "The SOC2 report covers twelve months.") {
		t.Fatalf("sentence must not be treated as a title")
	}
}

// TestRiskFactorsAndRecommendations verifies each weakness yields a factor
// and a follow-up, led by the level summary.
func TestRiskFactorsAndRecommendations(t *testing.T) {
	choice := question.Question{ID: "c", Text: "Patch cadence?", Type: question.TypeChoice, Options: []string{"Never", "Annually", "Quarterly", "Monthly"}}
	resolutions := []resolution{
		conservative(question.Question{ID: "a", Text: "Encrypted?", Type: question.TypeBoolean}, 0.1, NoEvidenceReasoning),
		{question: question.Question{ID: "b", Text: "MFA?", Type: question.TypeBoolean}, answer: question.BoolAnswer(false)},
		{question: choice, answer: question.TextAnswer(question.TypeChoice, "Annually")},
		{question: choice, answer: question.TextAnswer(question.TypeChoice, "Quarterly"), auxiliary: true},
	}
	factors, recommendations := riskFactors(resolutions, risk.LevelHigh)
	want := []string{
		"No evidence for: Encrypted?",
		"Control not in place: MFA?",
		"Low maturity (Annually) for: Patch cadence?",
		"Relies on fourth-party evidence only: Patch cadence?",
	}
	if len(factors) != len(want) {
		t.Fatalf("unexpected factors %v", factors)
	}
	for i := range want {
		if factors[i] != want[i] {
			t.Fatalf("factor %d = %q, want %q", i, factors[i], want[i])
		}
	}
	if len(recommendations) != len(want)+1 || recommendations[0] != levelRecommendation(risk.LevelHigh) {
		t.Fatalf("unexpected recommendations %v", recommendations)
	}
}

// TestNarrativeMentionsUnreadableDocuments verifies extraction failures are reported.
func TestNarrativeMentionsUnreadableDocuments(t *testing.T) {
	summary := document.Summary{Submitted: 3, Attached: 1, Extracted: 1, Failed: []string{"broken.txt"}}
	text := narrative(summary, nil, risk.Score{Value: 80, Level: risk.LevelLow}, nil)
	for _, fragment := range []string{"Analyzed 3 document(s)", "Could not read: broken.txt.", "Overall risk is Low (score 80 of 100)."} {
		if !strings.Contains(text, fragment) {
			t.Fatalf("narrative %q missing %q", text, fragment)
		}
	}
}
