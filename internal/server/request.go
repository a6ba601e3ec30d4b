package server

import (
	"fmt"

	"assessor/internal/document"
	"assessor/internal/engine"
	"assessor/internal/question"
)

// AnalysisRequest is the body of POST /v1/analyses. Document content is
// base64 encoded.
type AnalysisRequest struct {
	AssessmentLabel string              `json:"assessmentLabel" validate:"max=200"`
	RequestedBy     string              `json:"requestedBy" validate:"max=200"`
	AssessmentID    string              `json:"assessmentId" validate:"max=200"`
	Questions       []question.Question `json:"questions" validate:"required,min=1,max=500"`
	Documents       []DocumentPayload   `json:"documents" validate:"max=100,dive"`
}

// DocumentPayload is one uploaded document.
type DocumentPayload struct {
	FileName         string `json:"fileName" validate:"required,max=255"`
	MediaType        string `json:"mediaType" validate:"max=255"`
	Content          []byte `json:"content"`
	Role             string `json:"role" validate:"omitempty,oneof=primary auxiliary Primary Auxiliary"`
	RelationshipNote string `json:"relationshipNote" validate:"max=1000"`
}

// toEngine converts a decoded request into an engine request.
func (r AnalysisRequest) toEngine() (engine.Request, error) {
	docs := make([]document.Input, 0, len(r.Documents))
	for i, payload := range r.Documents {
		role, err := document.ParseRole(payload.Role)
		if err != nil {
			return engine.Request{}, fmt.Errorf("documents[%d].role: %w", i, err)
		}
		docs = append(docs, document.Input{
			FileName:         payload.FileName,
			MediaType:        payload.MediaType,
			Bytes:            payload.Content,
			Role:             role,
			RelationshipNote: payload.RelationshipNote,
		})
	}
	return engine.Request{
		Documents:       docs,
		Questions:       r.Questions,
		AssessmentLabel: r.AssessmentLabel,
		Run: engine.RunContext{
			RequestedBy:  r.RequestedBy,
			AssessmentID: r.AssessmentID,
		},
	}, nil
}
