package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"assessor/internal/document"
	"assessor/internal/generator"
	"assessor/internal/metrics"
	"assessor/internal/prompt"
	"assessor/internal/question"
	"assessor/internal/relevance"
	"assessor/internal/response"
	"assessor/internal/risk"
	"assessor/internal/telemetry"

	"go.uber.org/zap"
)

// DefaultTimeout bounds the generation call when Options.Timeout is unset.
const DefaultTimeout = 2 * time.Minute

// Options wires an Engine. Only Generator is required.
type Options struct {
	Generator generator.Generator
	Sink      telemetry.Sink
	Validator *relevance.Validator
	Metrics   *metrics.Metrics
	Logger    *zap.Logger
	Now       func() time.Time

	Provider string
	Model    string

	Timeout           time.Duration
	ExtractionWorkers int
	MaxDocumentChars  int
	// NoEvidenceConfidence is kept within [0, relevance.MaxNoEvidenceConfidence];
	// zero selects the default.
	NoEvidenceConfidence float64
	// AllowParaphrase disables the literal quote check against extracted text.
	AllowParaphrase bool
}

// Engine runs document-grounded risk analyses. It holds no per-run state
// and is safe for concurrent use.
type Engine struct {
	opts Options
}

// New constructs an Engine, filling unset options with defaults.
func New(opts Options) *Engine {
	params := relevance.DefaultParams()
	if opts.Sink == nil {
		opts.Sink = telemetry.Nop{}
	}
	if opts.Validator == nil {
		opts.Validator = relevance.New(nil, params)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	switch {
	case opts.NoEvidenceConfidence == 0:
		opts.NoEvidenceConfidence = params.NoEvidenceConfidence
	case opts.NoEvidenceConfidence < 0:
		opts.NoEvidenceConfidence = 0
	case opts.NoEvidenceConfidence > relevance.MaxNoEvidenceConfidence:
		opts.NoEvidenceConfidence = relevance.MaxNoEvidenceConfidence
	}
	return &Engine{opts: opts}
}

// run carries the state of a single Analyze call.
type run struct {
	id        string
	questions []question.Question
	prepared  []document.Prepared
	summary   document.Summary
	usage     *generator.Usage
}

// Analyze runs the full pipeline. Run-level failures never surface as
// errors: they produce a fully conservative Result with Failure set. The
// error is non-nil only when the request itself is invalid.
func (e *Engine) Analyze(ctx context.Context, req Request) (Result, error) {
	questions, err := question.Normalize(req.Questions)
	if err != nil {
		return Result{}, err
	}
	started := e.opts.Now()
	r := &run{questions: questions}
	r.id = e.startRun(ctx, req, questions, started)
	log := e.opts.Logger.With(zap.String("run_id", r.id))
	log.Info("analysis started",
		zap.String("assessment_label", req.AssessmentLabel),
		zap.Int("documents", len(req.Documents)),
		zap.Int("questions", len(questions)),
	)

	r.prepared = document.Prepare(req.Documents, e.opts.ExtractionWorkers)
	r.summary = document.Summarize(r.prepared)
	e.observeDocuments(log, r)

	result := e.execute(ctx, log, req, r)
	result.RunID = r.id
	result.DocumentsAnalyzed = len(req.Documents)
	result.TokenUsage = r.usage

	e.finishRun(ctx, log, r, result)
	return result, nil
}

func (e *Engine) execute(ctx context.Context, log *zap.Logger, req Request, r *run) Result {
	if r.summary.Usable() == 0 {
		reason := "none of the submitted documents is in a supported format"
		if r.summary.Submitted == 0 {
			reason = "no documents were submitted"
		} else if len(r.summary.Failed) > 0 {
			reason = "none of the submitted documents could be read"
		}
		return e.failed(r, &Failure{Kind: FailureUnsupportedInput, Reason: reason})
	}

	request := prompt.Compose(r.prepared, r.questions, req.AssessmentLabel, prompt.Options{MaxDocumentChars: e.opts.MaxDocumentChars})
	callStarted := time.Now()
	resp, err := generator.Invoke(ctx, e.opts.Generator, request, e.opts.Timeout)
	if err != nil {
		reason := err.Error()
		var failure *generator.Failure
		if errors.As(err, &failure) {
			reason = failure.Reason
		}
		e.opts.Metrics.ObserveGeneration(time.Since(callStarted), 0)
		log.Warn("generation failed", zap.String("reason", reason))
		return e.failed(r, &Failure{Kind: FailureGeneration, Reason: reason})
	}
	usage := resp.Usage
	r.usage = &usage
	e.opts.Metrics.ObserveGeneration(time.Since(callStarted), usage.TotalTokens)

	payload, err := response.Parse(resp.Text)
	if err != nil {
		failure := &Failure{Kind: FailureParse, Reason: "the analysis response could not be interpreted"}
		var parseFailure *response.ParseFailure
		if errors.As(err, &parseFailure) {
			failure.Reason = parseFailure.Reason
			failure.RawExcerpt = parseFailure.Excerpt
		}
		log.Warn("response parse failed", zap.String("reason", failure.Reason))
		log.Debug("unparseable response", zap.String("excerpt", failure.RawExcerpt))
		return e.failed(r, failure)
	}
	if payload.Dropped > 0 {
		log.Debug("malformed citations dropped", zap.Int("count", payload.Dropped))
	}

	resolver := newResolver(e.opts, r.prepared)
	resolutions := make([]resolution, 0, len(r.questions))
	for _, q := range r.questions {
		res := resolver.resolve(q, payload)
		e.opts.Metrics.ObserveEvidence("accepted", len(res.evidence))
		e.opts.Metrics.ObserveEvidence("rejected", res.rejected)
		if res.rejected > 0 {
			log.Debug("evidence rejected", zap.String("question_id", q.ID), zap.Int("count", res.rejected))
		}
		resolutions = append(resolutions, res)
	}
	return e.assemble(r, resolutions, nil)
}

// failed builds the all-conservative result for a run-level failure.
func (e *Engine) failed(r *run, failure *Failure) Result {
	resolutions := make([]resolution, 0, len(r.questions))
	for _, q := range r.questions {
		resolutions = append(resolutions, conservative(q, e.opts.NoEvidenceConfidence, failureReasoning(failure)))
	}
	return e.assemble(r, resolutions, failure)
}

func (e *Engine) assemble(r *run, resolutions []resolution, failure *Failure) Result {
	result := Result{
		Answers:     make(map[string]question.Answer, len(resolutions)),
		Confidences: make(map[string]float64, len(resolutions)),
		Reasoning:   make(map[string]string, len(resolutions)),
		Evidence:    make(map[string][]EvidenceCitation, len(resolutions)),
		Failure:     failure,
	}
	for _, res := range resolutions {
		id := res.question.ID
		result.Answers[id] = res.answer
		result.Confidences[id] = res.confidence
		result.Reasoning[id] = res.reasoning
		result.Evidence[id] = res.evidence
	}
	score := risk.Aggregate(r.questions, result.Answers)
	result.RiskScore = score.Value
	result.RiskLevel = score.Level
	result.RiskFactors, result.Recommendations = riskFactors(resolutions, score.Level)
	result.Narrative = narrative(r.summary, resolutions, score, failure)
	return result
}

func (e *Engine) startRun(ctx context.Context, req Request, questions []question.Question, started time.Time) string {
	id, err := e.opts.Sink.RecordRunStart(context.WithoutCancel(ctx), telemetry.RunMeta{
		AssessmentLabel: req.AssessmentLabel,
		RequestedBy:     req.Run.RequestedBy,
		AssessmentID:    req.Run.AssessmentID,
		QuestionIDs:     question.IDs(questions),
		DocumentCount:   len(req.Documents),
		Provider:        e.opts.Provider,
		Model:           e.opts.Model,
		StartedAt:       started,
	})
	if err != nil {
		e.opts.Logger.Warn("telemetry run start failed", zap.Error(err))
	}
	if id == "" {
		id = telemetry.NewRunID()
	}
	return id
}

func (e *Engine) finishRun(ctx context.Context, log *zap.Logger, r *run, result Result) {
	outcome := telemetry.Outcome{
		Status:     telemetry.StatusSuccess,
		RiskScore:  result.RiskScore,
		RiskLevel:  string(result.RiskLevel),
		FinishedAt: e.opts.Now(),
	}
	label := "success"
	if result.Failure != nil {
		outcome.Status = telemetry.StatusFailure
		outcome.FailureKind = string(result.Failure.Kind)
		outcome.ErrorMessage = result.Failure.Reason
		label = string(result.Failure.Kind)
	}
	if r.usage != nil {
		outcome.Usage = &telemetry.TokenUsage{
			PromptTokens:     r.usage.PromptTokens,
			CompletionTokens: r.usage.CompletionTokens,
			TotalTokens:      r.usage.TotalTokens,
		}
	}
	if err := e.opts.Sink.RecordRunOutcome(context.WithoutCancel(ctx), r.id, outcome); err != nil {
		log.Warn("telemetry run outcome failed", zap.Error(err))
	}
	e.opts.Metrics.ObserveRun(label, result.RiskScore)
	log.Info("analysis finished",
		zap.String("outcome", label),
		zap.Int("risk_score", result.RiskScore),
		zap.String("risk_level", string(result.RiskLevel)),
	)
}

func (e *Engine) observeDocuments(log *zap.Logger, r *run) {
	e.opts.Metrics.ObserveDocuments("attached", r.summary.Attached)
	e.opts.Metrics.ObserveDocuments("extracted", r.summary.Extracted)
	e.opts.Metrics.ObserveDocuments("extraction_failed", len(r.summary.Failed))
	e.opts.Metrics.ObserveDocuments("unsupported", len(r.summary.Unsupported))
	for _, p := range r.prepared {
		if p.Failure != "" {
			log.Debug("text extraction failed", zap.String("document", p.Input.FileName), zap.String("reason", p.Failure))
		}
	}
}

func failureReasoning(failure *Failure) string {
	switch failure.Kind {
	case FailureUnsupportedInput:
		return fmt.Sprintf("%s Analysis could not run: %s.", NoEvidenceReasoning, failure.Reason)
	case FailureParse:
		return fmt.Sprintf("%s The analysis response could not be interpreted: %s.", NoEvidenceReasoning, failure.Reason)
	default:
		return fmt.Sprintf("%s The analysis service failed: %s.", NoEvidenceReasoning, failure.Reason)
	}
}
