package engine

import (
	"assessor/internal/document"
	"assessor/internal/generator"
	"assessor/internal/question"
	"assessor/internal/risk"
)

// RunContext identifies who started a run and what it belongs to.
type RunContext struct {
	RequestedBy  string `json:"requestedBy,omitempty"`
	AssessmentID string `json:"assessmentId,omitempty"`
}

// Request is the input of one analysis run.
type Request struct {
	Documents       []document.Input
	Questions       []question.Question
	AssessmentLabel string
	Run             RunContext
}

// FailureKind names a run-level failure.
type FailureKind string

const (
	FailureUnsupportedInput FailureKind = "unsupported_input"
	FailureGeneration       FailureKind = "generation_failure"
	FailureParse            FailureKind = "parse_failure"
)

// Failure describes why a run fell back to conservative answers for every
// question. RawExcerpt is kept for diagnostics and never serialized.
type Failure struct {
	Kind       FailureKind `json:"kind"`
	Reason     string      `json:"reason"`
	RawExcerpt string      `json:"-"`
}

// EvidenceCitation is an accepted piece of evidence.
type EvidenceCitation struct {
	DocumentName        string        `json:"documentName"`
	Quote               string        `json:"quote"`
	PageOrSection       string        `json:"pageOrSection,omitempty"`
	Relevance           string        `json:"relevance"`
	SourceRole          document.Role `json:"sourceRole"`
	RelationshipNote    string        `json:"relationshipNote,omitempty"`
	RelevanceConfidence float64       `json:"relevanceConfidence"`
}

// Result is the outcome of one analysis run. Answers, Confidences,
// Reasoning and Evidence hold exactly one entry per question id.
type Result struct {
	RunID             string                        `json:"runId"`
	Answers           map[string]question.Answer    `json:"answers"`
	Confidences       map[string]float64            `json:"confidences"`
	Reasoning         map[string]string             `json:"reasoning"`
	Evidence          map[string][]EvidenceCitation `json:"evidence"`
	RiskScore         int                           `json:"riskScore"`
	RiskLevel         risk.Level                    `json:"riskLevel"`
	DocumentsAnalyzed int                           `json:"documentsAnalyzed"`
	Narrative         string                        `json:"narrative"`
	RiskFactors       []string                      `json:"riskFactors"`
	Recommendations   []string                      `json:"recommendations"`
	Failure           *Failure                      `json:"failure,omitempty"`
	TokenUsage        *generator.Usage              `json:"tokenUsage,omitempty"`
}
