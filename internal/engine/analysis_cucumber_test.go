//go:build cucumber

package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/cucumber/godog"

	"assessor/internal/document"
	"assessor/internal/generator"
	"assessor/internal/question"
)

const mfaOnlyResponse = `{"answers": {"enc": true, "mfa": false, "ir": true},
  "confidence": {"enc": 0.9, "mfa": 0.9, "ir": 0.9},
  "evidence": {
    "enc": [{"fileName": "policy.txt", "quote": "Multi-factor authentication is not yet enforced for administrator accounts."}],
    "mfa": [{"fileName": "policy.txt", "quote": "Multi-factor authentication is not yet enforced for administrator accounts."}],
    "ir": [{"fileName": "policy.txt", "quote": "Multi-factor authentication is not yet enforced for administrator accounts."}]
  }}`

// TestAnalysisScenarios runs the analysis feature scenarios.
func TestAnalysisScenarios(t *testing.T) {
	featurePath := filepath.Join("..", "..", "spec", "features", "analysis.feature")
	suite := godog.TestSuite{
		Name:                "analysis",
		ScenarioInitializer: InitializeAnalysisScenario,
		Options: &godog.Options{
			Format:    "pretty",
			Paths:     []string{featurePath},
			Strict:    true,
			TestingT:  t,
			Randomize: 0,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

// InitializeAnalysisScenario wires steps for analysis feature scenarios.
func InitializeAnalysisScenario(ctx *godog.ScenarioContext) {
	state := &analysisScenarioState{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		state.reset()
		return ctx, nil
	})

	ctx.Step(`^the vendor question set with weights 1, 1 and 2$`, state.givenQuestionSet)
	ctx.Step(`^the primary document "([^"]+)" with the security policy$`, state.givenPolicyDocument)
	ctx.Step(`^the document "([^"]+)" in an unsupported format$`, state.givenUnsupportedDocument)
	ctx.Step(`^the generator returns the recorded analysis$`, state.givenRecordedAnalysis)
	ctx.Step(`^the generator cites the multi-factor statement for every question$`, state.givenMFAOnlyEvidence)
	ctx.Step(`^the generator never responds$`, state.givenStalledGenerator)
	ctx.Step(`^the documents are analyzed$`, state.whenAnalyzed)
	ctx.Step(`^the analysis has no failure$`, state.thenNoFailure)
	ctx.Step(`^the run failure is "([^"]+)"$`, state.thenFailureKind)
	ctx.Step(`^the generator was not called$`, state.thenGeneratorNotCalled)
	ctx.Step(`^every question is answered conservatively$`, state.thenAllConservative)
	ctx.Step(`^question "([^"]+)" is answered conservatively$`, state.thenQuestionConservative)
	ctx.Step(`^question "([^"]+)" has (\d+) citations?$`, state.thenCitationCount)
	ctx.Step(`^(\d+) documents? (?:is|are) reported as analyzed$`, state.thenDocumentsAnalyzed)
	ctx.Step(`^the risk score is (\d+) with level "([^"]+)"$`, state.thenRisk)
}

// analysisScenarioState holds scenario state for analysis feature tests.
type analysisScenarioState struct {
	questions []question.Question
	documents []document.Input
	generate  func(ctx context.Context) (generator.Response, error)
	timeout   time.Duration
	calls     int
	result    Result
}

// reset clears scenario state.
func (s *analysisScenarioState) reset() {
	s.questions = nil
	s.documents = nil
	s.generate = nil
	s.timeout = time.Second
	s.calls = 0
	s.result = Result{}
}

func (s *analysisScenarioState) givenQuestionSet() error {
	s.questions = scenarioQuestions()
	return nil
}

func (s *analysisScenarioState) givenPolicyDocument(name string) error {
	doc := policyDoc()
	doc.FileName = name
	s.documents = append(s.documents, doc)
	return nil
}

func (s *analysisScenarioState) givenUnsupportedDocument(name string) error {
	s.documents = append(s.documents, document.Input{FileName: name, Bytes: []byte("PK\x03\x04\x14\x00\x00\x00\x08\x00")})
	return nil
}

func (s *analysisScenarioState) givenRecordedAnalysis() error {
	s.generate = func(context.Context) (generator.Response, error) {
		return generator.Response{Text: scenarioResponse}, nil
	}
	return nil
}

func (s *analysisScenarioState) givenMFAOnlyEvidence() error {
	s.generate = func(context.Context) (generator.Response, error) {
		return generator.Response{Text: mfaOnlyResponse}, nil
	}
	return nil
}

func (s *analysisScenarioState) givenStalledGenerator() error {
	s.timeout = 20 * time.Millisecond
	s.generate = func(ctx context.Context) (generator.Response, error) {
		<-ctx.Done()
		return generator.Response{}, ctx.Err()
	}
	return nil
}

func (s *analysisScenarioState) whenAnalyzed(ctx context.Context) error {
	gen := funcGenerator(func(ctx context.Context, _ generator.Request) (generator.Response, error) {
		s.calls++
		return s.generate(ctx)
	})
	e := New(Options{Generator: gen, Timeout: s.timeout})
	result, err := e.Analyze(ctx, Request{Documents: s.documents, Questions: s.questions})
	if err != nil {
		return err
	}
	s.result = result
	return nil
}

func (s *analysisScenarioState) thenNoFailure() error {
	if s.result.Failure != nil {
		return fmt.Errorf("unexpected failure %+v", s.result.Failure)
	}
	return nil
}

func (s *analysisScenarioState) thenFailureKind(kind string) error {
	if s.result.Failure == nil || string(s.result.Failure.Kind) != kind {
		return fmt.Errorf("expected failure %q, got %+v", kind, s.result.Failure)
	}
	return nil
}

func (s *analysisScenarioState) thenGeneratorNotCalled() error {
	if s.calls != 0 {
		return fmt.Errorf("generator called %d times", s.calls)
	}
	return nil
}

func (s *analysisScenarioState) thenAllConservative() error {
	for _, q := range s.questions {
		if err := s.thenQuestionConservative(q.ID); err != nil {
			return err
		}
	}
	return nil
}

func (s *analysisScenarioState) thenQuestionConservative(id string) error {
	q, ok := s.question(id)
	if !ok {
		return fmt.Errorf("unknown question %q", id)
	}
	if !q.IsConservative(s.result.Answers[id]) {
		return fmt.Errorf("%s: expected conservative answer, got %v", id, s.result.Answers[id])
	}
	if s.result.Confidences[id] > 0.1 {
		return fmt.Errorf("%s: confidence %v above the no-evidence level", id, s.result.Confidences[id])
	}
	if len(s.result.Evidence[id]) != 0 {
		return fmt.Errorf("%s: unexpected evidence %+v", id, s.result.Evidence[id])
	}
	return nil
}

func (s *analysisScenarioState) thenCitationCount(id string, count int) error {
	if got := len(s.result.Evidence[id]); got != count {
		return fmt.Errorf("%s: expected %d citations, got %d", id, count, got)
	}
	return nil
}

func (s *analysisScenarioState) thenDocumentsAnalyzed(count int) error {
	if s.result.DocumentsAnalyzed != count {
		return fmt.Errorf("expected %d documents analyzed, got %d", count, s.result.DocumentsAnalyzed)
	}
	return nil
}

func (s *analysisScenarioState) thenRisk(score int, level string) error {
	if s.result.RiskScore != score || string(s.result.RiskLevel) != level {
		return fmt.Errorf("expected %d/%s, got %d/%s", score, level, s.result.RiskScore, s.result.RiskLevel)
	}
	return nil
}

func (s *analysisScenarioState) question(id string) (question.Question, bool) {
	for _, q := range s.questions {
		if q.ID == id {
			return q, true
		}
	}
	return question.Question{}, false
}
