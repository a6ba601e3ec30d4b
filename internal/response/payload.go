package response

import (
	"strings"

	"assessor/internal/document"
)

// Claim is the generator's answer for one question.
type Claim struct {
	IsBool bool
	Bool   bool
	Text   string
}

// Citation is one evidence entry as claimed by the generator. DocumentName
// and Quote are always non-empty; the rest are optional.
type Citation struct {
	DocumentName  string
	Quote         string
	PageOrSection string
	Relevance     string
	ClaimedRole   document.Role
	Relationship  string
}

// Payload is the structured generator output.
type Payload struct {
	Answers    map[string]Claim
	Confidence map[string]float64
	Reasoning  map[string]string
	Evidence   map[string][]Citation
	// Dropped counts evidence entries discarded for missing required fields.
	Dropped int
}

func buildPayload(root Value) Payload {
	payload := Payload{
		Answers:    map[string]Claim{},
		Confidence: map[string]float64{},
		Reasoning:  map[string]string{},
		Evidence:   map[string][]Citation{},
	}
	if answers, ok := root.FirstField("answers"); ok && answers.Kind == KindObject {
		for id, value := range answers.Object {
			if claim, ok := claimFrom(value); ok {
				payload.Answers[id] = claim
			}
		}
	}
	if confidence, ok := root.FirstField("confidence", "confidences"); ok && confidence.Kind == KindObject {
		for id, value := range confidence.Object {
			if number, ok := value.Float(); ok {
				payload.Confidence[id] = number
			}
		}
	}
	if reasoning, ok := root.FirstField("reasoning"); ok && reasoning.Kind == KindObject {
		for id, value := range reasoning.Object {
			if text, ok := value.Text(); ok && text != "" {
				payload.Reasoning[id] = text
			}
		}
	}
	if evidence, ok := root.FirstField("evidence"); ok && evidence.Kind == KindObject {
		for id, value := range evidence.Object {
			entries := value.Array
			if value.Kind == KindObject {
				entries = []Value{value}
			} else if value.Kind != KindArray {
				continue
			}
			citations := make([]Citation, 0, len(entries))
			for _, entry := range entries {
				citation, ok := citationFrom(entry)
				if !ok {
					payload.Dropped++
					continue
				}
				citations = append(citations, citation)
			}
			payload.Evidence[id] = citations
		}
	}
	return payload
}

func claimFrom(value Value) (Claim, bool) {
	switch value.Kind {
	case KindBool:
		return Claim{IsBool: true, Bool: value.Bool}, true
	case KindString, KindNumber:
		text, _ := value.Text()
		return Claim{Text: text}, text != ""
	default:
		return Claim{}, false
	}
}

func citationFrom(value Value) (Citation, bool) {
	if value.Kind != KindObject {
		return Citation{}, false
	}
	name := textField(value, "fileName", "documentName", "document", "source")
	quote := textField(value, "quote", "excerpt", "text")
	if name == "" || quote == "" {
		return Citation{}, false
	}
	citation := Citation{
		DocumentName:  name,
		Quote:         quote,
		PageOrSection: textField(value, "pageNumber", "page", "section", "pageOrSection"),
		Relevance:     textField(value, "relevance"),
		Relationship:  textField(value, "documentRelationship", "relationship"),
	}
	if role, err := document.ParseRole(textField(value, "documentType", "sourceRole")); err == nil {
		citation.ClaimedRole = role
	}
	return citation, true
}

func textField(value Value, names ...string) string {
	child, ok := value.FirstField(names...)
	if !ok {
		return ""
	}
	text, _ := child.Text()
	return strings.TrimSpace(text)
}
