package question

import (
	"encoding/json"
	"strconv"
	"strings"
)

// NotEvidencedMarker is the conservative answer for free-text questions.
const NotEvidencedMarker = "Not evidenced in the provided documents"

// Answer is a resolved answer: a boolean for boolean questions and text
// for choice and free-text questions.
type Answer struct {
	Type Type
	Bool bool
	Text string
}

// BoolAnswer builds a boolean answer.
func BoolAnswer(value bool) Answer {
	return Answer{Type: TypeBoolean, Bool: value}
}

// TextAnswer builds a text answer for the given question type.
func TextAnswer(questionType Type, value string) Answer {
	return Answer{Type: questionType, Text: value}
}

// String renders the answer for display.
func (a Answer) String() string {
	if a.Type == TypeBoolean {
		return strconv.FormatBool(a.Bool)
	}
	return a.Text
}

// MarshalJSON encodes boolean answers as JSON booleans and the rest as strings.
func (a Answer) MarshalJSON() ([]byte, error) {
	if a.Type == TypeBoolean {
		return json.Marshal(a.Bool)
	}
	return json.Marshal(a.Text)
}

// UnmarshalJSON accepts either a JSON boolean or a JSON string.
func (a *Answer) UnmarshalJSON(data []byte) error {
	var flag bool
	if err := json.Unmarshal(data, &flag); err == nil {
		*a = BoolAnswer(flag)
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return err
	}
	*a = Answer{Text: text}
	return nil
}

// NormalizeAnswerText trims whitespace and lowercases an answer for matching.
func NormalizeAnswerText(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// Conservative returns the most conservative admissible answer: false for
// boolean questions, the first declared option for choice questions, and
// NotEvidencedMarker for free text.
func (q Question) Conservative() Answer {
	switch q.Type {
	case TypeChoice:
		if len(q.Options) > 0 {
			return TextAnswer(TypeChoice, q.Options[0])
		}
		return TextAnswer(TypeChoice, "")
	case TypeFreeText:
		return TextAnswer(TypeFreeText, NotEvidencedMarker)
	default:
		return BoolAnswer(false)
	}
}

// IsConservative reports whether answer equals the conservative default.
func (q Question) IsConservative(answer Answer) bool {
	def := q.Conservative()
	if def.Type == TypeBoolean {
		return answer.Type == TypeBoolean && !answer.Bool
	}
	return answer.Text == def.Text
}

// AdmitBool converts a boolean claim into an admissible answer.
func (q Question) AdmitBool(value bool) (Answer, bool) {
	switch q.Type {
	case TypeBoolean:
		return BoolAnswer(value), true
	case TypeFreeText:
		if value {
			return TextAnswer(TypeFreeText, "Yes"), true
		}
		return TextAnswer(TypeFreeText, "No"), true
	default:
		return Answer{}, false
	}
}

// AdmitText converts a textual claim into an admissible answer. Boolean
// questions accept true/false/yes/no and choice questions accept one of
// their declared options, case-insensitively.
func (q Question) AdmitText(value string) (Answer, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return Answer{}, false
	}
	switch q.Type {
	case TypeBoolean:
		switch NormalizeAnswerText(trimmed) {
		case "true", "yes":
			return BoolAnswer(true), true
		case "false", "no":
			return BoolAnswer(false), true
		}
		return Answer{}, false
	case TypeChoice:
		index := q.OptionIndex(trimmed)
		if index < 0 {
			return Answer{}, false
		}
		return TextAnswer(TypeChoice, q.Options[index]), true
	default:
		return TextAnswer(TypeFreeText, trimmed), true
	}
}

// OptionIndex returns the index of the matching option or -1.
func (q Question) OptionIndex(value string) int {
	key := NormalizeAnswerText(value)
	for i, option := range q.Options {
		if NormalizeAnswerText(option) == key {
			return i
		}
	}
	return -1
}
