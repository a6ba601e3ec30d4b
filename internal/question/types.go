package question

// Type identifies the answer shape a question expects.
type Type string

const (
	TypeBoolean  Type = "boolean"
	TypeChoice   Type = "choice"
	TypeFreeText Type = "freetext"
)

// Set is the question set schema loaded from JSON or YAML.
type Set struct {
	Version   int        `json:"version" yaml:"version"`
	Questions []Question `json:"questions" yaml:"questions"`
}

// Question is a single weighted assessment question.
//
// Choice options are ordered from the most conservative (highest risk)
// option to the most favorable one.
type Question struct {
	ID      string   `json:"id" yaml:"id"`
	Text    string   `json:"question" yaml:"question"`
	Type    Type     `json:"type,omitempty" yaml:"type,omitempty"`
	Options []string `json:"options,omitempty" yaml:"options,omitempty"`
	Weight  float64  `json:"weight,omitempty" yaml:"weight,omitempty"`
}

// IDs returns the question ids in declaration order.
func IDs(questions []Question) []string {
	ids := make([]string, 0, len(questions))
	for _, q := range questions {
		ids = append(ids, q.ID)
	}
	return ids
}
