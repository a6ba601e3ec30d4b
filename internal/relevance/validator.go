package relevance

import (
	"math"
	"strings"

	"assessor/internal/question"
	"assessor/internal/response"
	"assessor/internal/taxonomy"
)

// Rejection reasons.
const (
	ReasonSentinel   = "quote states that no evidence was found"
	ReasonNoOverlap  = "quote does not mention the concept asked about"
	ReasonShortQuote = "quote is too short to substantiate the question"
)

// Scored is an accepted citation with its locally computed confidence.
type Scored struct {
	Citation   response.Citation
	Confidence float64
	Concept    string
	Matched    []string
}

// Rejection is a discarded citation.
type Rejection struct {
	Citation   response.Citation
	Confidence float64
	Reason     string
}

// Result is the outcome of checking one question's evidence.
type Result struct {
	Concept  string
	General  bool
	Accepted []Scored
	Rejected []Rejection
}

// Best returns the highest confidence among accepted citations, or 0.
func (r Result) Best() float64 {
	best := 0.0
	for _, scored := range r.Accepted {
		best = math.Max(best, scored.Confidence)
	}
	return best
}

// Validator re-checks claimed evidence against the taxonomy, independently
// of the generator's own relevance claims.
type Validator struct {
	taxonomy *taxonomy.Taxonomy
	params   Params
}

// New constructs a Validator. A nil taxonomy uses the built-in one.
func New(tax *taxonomy.Taxonomy, params Params) *Validator {
	if tax == nil {
		tax = taxonomy.Default()
	}
	return &Validator{taxonomy: tax, params: params}
}

// Validate scores every citation for q and splits them into accepted and
// rejected, keeping input order.
func (v *Validator) Validate(q question.Question, citations []response.Citation) Result {
	resolution := v.taxonomy.Resolve(q.Text)
	result := Result{Concept: resolution.Concept(), General: resolution.General()}
	for _, citation := range citations {
		if v.isSentinel(citation.Quote) {
			result.Rejected = append(result.Rejected, Rejection{
				Citation:   citation,
				Confidence: v.params.NoEvidenceConfidence,
				Reason:     ReasonSentinel,
			})
			continue
		}
		scored, reason, ok := v.score(resolution, citation)
		if !ok {
			result.Rejected = append(result.Rejected, Rejection{Citation: citation, Reason: reason})
			continue
		}
		result.Accepted = append(result.Accepted, scored)
	}
	return result
}

// score checks the keyword sets in resolution order; the first set with any
// overlap decides the confidence.
func (v *Validator) score(resolution taxonomy.Resolution, citation response.Citation) (Scored, string, bool) {
	for _, set := range resolution.Sets {
		matched := set.Matches(citation.Quote)
		if len(matched) == 0 {
			continue
		}
		return Scored{
			Citation:   citation,
			Confidence: v.curve(len(matched), len(set.Keywords)),
			Concept:    set.Concept,
			Matched:    matched,
		}, "", true
	}
	if !resolution.General() {
		return Scored{}, ReasonNoOverlap, false
	}
	if len([]rune(strings.TrimSpace(citation.Quote))) < v.params.GeneralMinQuoteLength {
		return Scored{}, ReasonShortQuote, false
	}
	return Scored{
		Citation:   citation,
		Confidence: math.Min(v.params.GeneralConfidence, v.params.Cap),
		Concept:    resolution.Concept(),
	}, "", true
}

func (v *Validator) curve(matched, total int) float64 {
	if total <= 0 {
		return 0
	}
	ratio := float64(matched) / float64(total)
	confidence := v.params.BaseConfidence + v.params.RatioWeight*ratio
	confidence = math.Min(confidence, v.params.MaxSingleConfidence)
	if matched >= 2 {
		confidence += v.params.MultiMatchBoost
	}
	return clamp(math.Min(confidence, v.params.Cap))
}

// sentinelLeads are the words that may follow a "no evidence" phrase in a
// statement about missing evidence, as in "no evidence found regarding
// encryption". Any other continuation is a real excerpt, such as "no
// information security incidents occurred".
var sentinelLeads = map[string]struct{}{
	"found": {}, "was": {}, "were": {}, "is": {}, "available": {}, "given": {},
	"regarding": {}, "about": {}, "on": {}, "for": {}, "of": {}, "in": {}, "related": {},
}

// maxSentinelTail bounds the words allowed after a phrase.
const maxSentinelTail = 8

// isSentinel reports whether the whole quote is a "no evidence" statement.
// A real excerpt that merely starts with such a phrase is not one.
func (v *Validator) isSentinel(quote string) bool {
	normalized := normalizeQuote(quote)
	if normalized == "" {
		return true
	}
	for _, phrase := range v.params.SentinelPhrases {
		phrase = normalizeQuote(phrase)
		if phrase == "" {
			continue
		}
		if normalized == phrase {
			return true
		}
		tail, ok := strings.CutPrefix(normalized, phrase+" ")
		if !ok {
			continue
		}
		words := strings.Fields(tail)
		if _, lead := sentinelLeads[words[0]]; lead && len(words) <= maxSentinelTail {
			return true
		}
	}
	return false
}

func normalizeQuote(text string) string {
	text = strings.ToLower(strings.Join(strings.Fields(text), " "))
	return strings.Trim(text, " .,;:!?\"'()[]")
}

func clamp(value float64) float64 {
	switch {
	case math.IsNaN(value), value < 0:
		return 0
	case value > 1:
		return 1
	default:
		return value
	}
}
