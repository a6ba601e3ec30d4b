package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"assessor/internal/engine"
	"assessor/internal/question"
)

// DefaultMaxRequestBytes caps request bodies when Options leaves it unset.
const DefaultMaxRequestBytes = 64 << 20

// Analyzer runs one analysis.
type Analyzer interface {
	Analyze(ctx context.Context, req engine.Request) (engine.Result, error)
}

// Options configures the HTTP handler.
type Options struct {
	Analyzer        Analyzer
	Gatherer        prometheus.Gatherer
	Logger          *zap.Logger
	MaxRequestBytes int64
}

// Issue is a field-level request problem.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error  string  `json:"error"`
	Issues []Issue `json:"issues,omitempty"`
}

type handler struct {
	analyzer        Analyzer
	logger          *zap.Logger
	maxRequestBytes int64
	validate        *validator.Validate
}

// NewHandler builds the API router.
func NewHandler(opts Options) (http.Handler, error) {
	if opts.Analyzer == nil {
		return nil, errors.New("server: analyzer is required")
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.MaxRequestBytes <= 0 {
		opts.MaxRequestBytes = DefaultMaxRequestBytes
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}
	h := &handler{
		analyzer:        opts.Analyzer,
		logger:          opts.Logger,
		maxRequestBytes: opts.MaxRequestBytes,
		validate:        newRequestValidator(),
	}

	r := mux.NewRouter()
	v1 := r.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/analyses", h.createAnalysis).Methods(http.MethodPost)
	r.HandleFunc("/healthz", h.health).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	return r, nil
}

// health handles GET /healthz.
func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// createAnalysis handles POST /v1/analyses.
func (h *handler) createAnalysis(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxRequestBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large", nil)
			return
		}
		writeError(w, http.StatusBadRequest, "read request body", nil)
		return
	}

	var req AnalysisRequest
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error(), nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", fieldIssues(err))
		return
	}
	engineReq, err := req.toEngine()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	result, err := h.analyzer.Analyze(r.Context(), engineReq)
	if err != nil {
		var validationErr *question.ValidationError
		if errors.As(err, &validationErr) {
			issues := make([]Issue, 0, len(validationErr.Issues))
			for _, issue := range validationErr.Issues {
				issues = append(issues, Issue{Field: issue.Field, Message: issue.Message})
			}
			writeError(w, http.StatusBadRequest, "invalid question set", issues)
			return
		}
		h.logger.Error("analysis failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "analysis failed", nil)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func newRequestValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func fieldIssues(err error) []Issue {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []Issue{{Message: err.Error()}}
	}
	issues := make([]Issue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := fe.Namespace()
		if _, rest, ok := strings.Cut(field, "."); ok {
			field = rest
		}
		message := "failed " + fe.Tag() + " check"
		switch fe.Tag() {
		case "required":
			message = "is required"
		case "min":
			message = "must have at least " + fe.Param() + " entries"
		case "max":
			message = "must be at most " + fe.Param()
		case "oneof":
			message = "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
		}
		issues = append(issues, Issue{Field: field, Message: message})
	}
	return issues
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string, issues []Issue) {
	writeJSON(w, status, ErrorResponse{Error: message, Issues: issues})
}
