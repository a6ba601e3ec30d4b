package engine

import (
	"math"
	"path/filepath"
	"regexp"
	"strings"

	"assessor/internal/document"
	"assessor/internal/question"
	"assessor/internal/relevance"
	"assessor/internal/response"
)

// Reasoning strings used when evidence does not support an answer.
const (
	NoEvidenceReasoning = "No directly relevant evidence found in the provided documents."
	ValidatedReasoning  = "Evidence found and validated in the provided documents."
	AuxiliaryNotice     = "Based on auxiliary (fourth-party) documents only."
)

// Local rejection reasons, on top of the ones reported by the relevance check.
const (
	reasonUnknownDocument = "quote cites a document that was not submitted"
	reasonTitleQuote      = "quote is the document title"
	reasonNotLiteral      = "quote does not appear in the document text"
	reasonSuperseded      = "auxiliary evidence superseded by primary evidence"
)

var ellipsisPattern = regexp.MustCompile(`\.{3,}|…`)

// resolution is the final decision for one question.
type resolution struct {
	question     question.Question
	answer       question.Answer
	confidence   float64
	reasoning    string
	evidence     []EvidenceCitation
	rejected     int
	auxiliary    bool
	conservative bool
}

func conservative(q question.Question, confidence float64, reasoning string) resolution {
	return resolution{
		question:     q,
		answer:       q.Conservative(),
		confidence:   confidence,
		reasoning:    reasoning,
		evidence:     []EvidenceCitation{},
		conservative: true,
	}
}

type resolver struct {
	validator            *relevance.Validator
	documents            map[string]document.Prepared
	literal              bool
	noEvidenceConfidence float64
}

func newResolver(opts Options, prepared []document.Prepared) *resolver {
	docs := make(map[string]document.Prepared, len(prepared)*2)
	for _, p := range prepared {
		if !p.Usable() {
			continue
		}
		key := documentKey(p.Input.FileName)
		if _, ok := docs[key]; !ok {
			docs[key] = p
		}
	}
	return &resolver{
		validator:            opts.Validator,
		documents:            docs,
		literal:              !opts.AllowParaphrase,
		noEvidenceConfidence: opts.NoEvidenceConfidence,
	}
}

// resolve applies the evidence-only policy to one question.
func (r *resolver) resolve(q question.Question, payload response.Payload) resolution {
	cited, rejected := r.screen(payload.Evidence[q.ID])
	checked := r.validator.Validate(q, cited)
	rejected += len(checked.Rejected)

	accepted := make([]EvidenceCitation, 0, len(checked.Accepted))
	for _, scored := range checked.Accepted {
		doc := r.documents[documentKey(scored.Citation.DocumentName)]
		accepted = append(accepted, EvidenceCitation{
			DocumentName:        doc.Input.FileName,
			Quote:               scored.Citation.Quote,
			PageOrSection:       scored.Citation.PageOrSection,
			Relevance:           scored.Citation.Relevance,
			SourceRole:          doc.Input.EffectiveRole(),
			RelationshipNote:    relationshipNote(doc, scored.Citation),
			RelevanceConfidence: scored.Confidence,
		})
	}
	accepted, superseded := preferPrimary(accepted)
	rejected += superseded
	if len(accepted) == 0 {
		res := conservative(q, r.noEvidenceConfidence, NoEvidenceReasoning)
		res.rejected = rejected
		return res
	}

	claim, ok := payload.Answers[q.ID]
	if !ok {
		res := conservative(q, r.noEvidenceConfidence, NoEvidenceReasoning)
		res.rejected = rejected
		return res
	}
	var answer question.Answer
	if claim.IsBool {
		answer, ok = q.AdmitBool(claim.Bool)
	} else {
		answer, ok = q.AdmitText(claim.Text)
	}
	if !ok {
		res := conservative(q, r.noEvidenceConfidence, NoEvidenceReasoning)
		res.rejected = rejected
		return res
	}

	best := 0.0
	for _, citation := range accepted {
		best = math.Max(best, citation.RelevanceConfidence)
	}
	confidence := best
	if claimed, ok := payload.Confidence[q.ID]; ok {
		confidence = math.Min(clampUnit(claimed), best)
	}

	reasoning := strings.TrimSpace(payload.Reasoning[q.ID])
	if reasoning == "" {
		reasoning = ValidatedReasoning
	}
	auxiliary := accepted[0].SourceRole == document.RoleAuxiliary
	if auxiliary {
		reasoning = AuxiliaryNotice + " " + reasoning
	}
	return resolution{
		question:   q,
		answer:     answer,
		confidence: confidence,
		reasoning:  reasoning,
		evidence:   accepted,
		rejected:   rejected,
		auxiliary:  auxiliary,
	}
}

// screen drops citations that cannot be traced back to a submitted document.
func (r *resolver) screen(citations []response.Citation) ([]response.Citation, int) {
	kept := make([]response.Citation, 0, len(citations))
	rejected := 0
	for _, citation := range citations {
		if r.rejectReason(citation) != "" {
			rejected++
			continue
		}
		kept = append(kept, citation)
	}
	return kept, rejected
}

func (r *resolver) rejectReason(citation response.Citation) string {
	doc, ok := r.documents[documentKey(citation.DocumentName)]
	if !ok {
		return reasonUnknownDocument
	}
	if isTitleQuote(doc.Input.FileName, citation.Quote) {
		return reasonTitleQuote
	}
	if r.literal && doc.Extracted && !containsLiteral(doc.Text, citation.Quote) {
		return reasonNotLiteral
	}
	return ""
}

// preferPrimary keeps only Primary citations when any exist.
func preferPrimary(citations []EvidenceCitation) ([]EvidenceCitation, int) {
	primary := make([]EvidenceCitation, 0, len(citations))
	for _, citation := range citations {
		if citation.SourceRole == document.RolePrimary {
			primary = append(primary, citation)
		}
	}
	if len(primary) == 0 {
		return citations, 0
	}
	return primary, len(citations) - len(primary)
}

func relationshipNote(doc document.Prepared, citation response.Citation) string {
	if note := strings.TrimSpace(doc.Input.RelationshipNote); note != "" {
		return note
	}
	if doc.Input.EffectiveRole() == document.RoleAuxiliary {
		return strings.TrimSpace(citation.Relationship)
	}
	return ""
}

func documentKey(name string) string {
	return strings.ToLower(strings.TrimSpace(filepath.Base(strings.TrimSpace(name))))
}

func isTitleQuote(fileName, quote string) bool {
	q := collapse(strings.Trim(quote, " \t\n\"'"))
	name := collapse(fileName)
	stem := collapse(strings.TrimSuffix(fileName, filepath.Ext(fileName)))
	return q == name || q == stem
}

// containsLiteral reports whether every ellipsis-separated segment of quote
// occurs in text, ignoring case and whitespace differences.
func containsLiteral(text, quote string) bool {
	haystack := collapse(text)
	found := false
	for _, segment := range ellipsisPattern.Split(quote, -1) {
		segment = collapse(strings.Trim(segment, " \t\n\"'"))
		if segment == "" {
			continue
		}
		if !strings.Contains(haystack, segment) {
			return false
		}
		found = true
	}
	return found
}

func collapse(text string) string {
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}

func clampUnit(value float64) float64 {
	switch {
	case math.IsNaN(value), value < 0:
		return 0
	case value > 1:
		return 1
	default:
		return value
	}
}
