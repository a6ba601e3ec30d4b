package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"assessor/internal/config"
	"assessor/internal/engine"
	"assessor/internal/generator"
	"assessor/internal/logging"
	"assessor/internal/metrics"
	"assessor/internal/relevance"
	"assessor/internal/taxonomy"
	"assessor/internal/telemetry"
)

// newGenerator is a test seam for backend construction.
var newGenerator = generator.New

// app is the wired engine and the resources it owns.
type app struct {
	engine   *engine.Engine
	logger   *zap.Logger
	registry *prometheus.Registry
	closers  []io.Closer
}

// buildApp wires an engine from cfg. Logs go to logOut.
func buildApp(ctx context.Context, cfg config.Config, logOut io.Writer) (*app, error) {
	logger, err := logging.New(cfg.Logging, logOut)
	if err != nil {
		return nil, err
	}
	tax, err := taxonomy.Build(cfg.TaxonomyFile)
	if err != nil {
		return nil, fmt.Errorf("load taxonomy: %w", err)
	}
	gen, err := newGenerator(ctx, cfg.Generator.Settings(nil), &http.Client{})
	if err != nil {
		return nil, err
	}

	a := &app{logger: logger, registry: prometheus.NewRegistry()}
	a.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	sink, err := a.openSink(ctx, cfg.Telemetry)
	if err != nil {
		return nil, err
	}
	a.engine = engine.New(engine.Options{
		Generator:            gen,
		Sink:                 sink,
		Validator:            relevance.New(tax, cfg.Relevance),
		Metrics:              metrics.New(a.registry),
		Logger:               logger,
		Provider:             cfg.Generator.Provider,
		Model:                cfg.Generator.Model,
		Timeout:              cfg.Generator.Timeout(),
		ExtractionWorkers:    cfg.Analysis.ExtractionWorkers,
		MaxDocumentChars:     cfg.Analysis.MaxDocumentChars,
		NoEvidenceConfidence: cfg.Relevance.NoEvidenceConfidence,
		AllowParaphrase:      !cfg.Analysis.RequireLiteralQuotes,
	})
	return a, nil
}

func (a *app) openSink(ctx context.Context, cfg config.TelemetryConfig) (telemetry.Sink, error) {
	switch cfg.Sink {
	case "none":
		return telemetry.Nop{}, nil
	case "memory":
		return telemetry.NewMemory(), nil
	case "log":
		return telemetry.Log{Logger: a.logger}, nil
	case "duckdb":
		store, err := telemetry.OpenDuckDB(ctx, cfg.DuckDBPath)
		if err != nil {
			return nil, fmt.Errorf("open telemetry store: %w", err)
		}
		a.closers = append(a.closers, store)
		return telemetry.NewFanout(store, telemetry.Log{Logger: a.logger}), nil
	default:
		return nil, fmt.Errorf("unsupported telemetry sink %q", cfg.Sink)
	}
}

// Close releases owned resources and flushes the logger.
func (a *app) Close() error {
	var errs []error
	for _, closer := range a.closers {
		errs = append(errs, closer.Close())
	}
	_ = a.logger.Sync()
	return errors.Join(errs...)
}
