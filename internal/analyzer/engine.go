// Package analyzer wires the pipeline components behind a single Engine with
// one synchronous entry point. All components are pure functions over
// immutable inputs, so concurrent Analyze calls need no locking.
package analyzer

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mehrguard/qrguard/internal/brand"
	"github.com/mehrguard/qrguard/internal/classifier"
	"github.com/mehrguard/qrguard/internal/config"
	"github.com/mehrguard/qrguard/internal/features"
	"github.com/mehrguard/qrguard/internal/heuristics"
	"github.com/mehrguard/qrguard/internal/models"
	"github.com/mehrguard/qrguard/internal/normalizer"
	"github.com/mehrguard/qrguard/internal/redirect"
	"github.com/mehrguard/qrguard/internal/verdict"
)

// Engine is the assessment pipeline. Construct it once at startup; a broken
// model bundle or brand catalog fails construction so the hot path carries no
// defensive checks.
type Engine struct {
	logger zerolog.Logger

	norm       *normalizer.Normalizer
	heuristics *heuristics.Engine
	extractor  *features.Extractor
	simulator  *redirect.Simulator
	matcher    *brand.Matcher
	aggregator *verdict.Aggregator

	// Swapped atomically on reload so in-flight analyses always see a
	// consistent snapshot.
	model   atomic.Pointer[classifier.ModelWeights]
	catalog atomic.Pointer[brand.Catalog]
}

// Result pairs an assessment with its error for the async variant.
type Result struct {
	Assessment *models.RiskAssessment
	Err        error
}

// NewEngine builds an Engine from configuration, a model bundle, and a brand
// catalog. Nil model/catalog select the shipped defaults.
func NewEngine(cfg *config.EngineConfig, model *classifier.ModelWeights, catalog *brand.Catalog, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = config.NewDefaultEngineConfig()
	}
	if model == nil {
		model = classifier.DefaultModelWeights()
	}
	if catalog == nil {
		catalog = brand.DefaultCatalog()
	}
	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("cannot construct engine: %w", err)
	}
	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("cannot construct engine: %w", err)
	}

	engineLogger := logger.With().
		Str("module", "Analyzer").
		Str("engine_id", uuid.NewString()).
		Logger()

	ac := cfg.AnalyzerConfig
	e := &Engine{
		logger:     engineLogger,
		norm:       normalizer.NewNormalizer(logger),
		heuristics: heuristics.NewEngine(logger),
		extractor:  features.NewExtractor(),
		simulator:  redirect.NewSimulator(ac.MaxRedirectHops, logger),
		matcher:    brand.NewMatcher(ac.BrandSimilarityThreshold, ac.BrandMaxEditDistance, logger),
		aggregator: verdict.NewAggregator(ac.Thresholds, logger),
	}
	e.model.Store(model)
	e.catalog.Store(catalog)

	engineLogger.Info().
		Str("model_version", model.Version).
		Int("brands", len(catalog.Brands)).
		Msg("Engine constructed")
	return e, nil
}

// Analyze assesses one decoded QR payload. Unparsable payloads return an
// error wrapping models.ErrUnparsableInput; every other input resolves to an
// assessment.
func (e *Engine) Analyze(ctx context.Context, payload string, sensitivity models.Sensitivity) (*models.RiskAssessment, error) {
	u, err := e.norm.Normalize(payload)
	if err != nil {
		return nil, err
	}

	if u.Kind != models.PayloadURL {
		return e.analyzeNonURL(u, sensitivity), nil
	}

	reasons, heuristicScore := e.heuristics.Evaluate(u)
	probability := classifier.Predict(e.extractor.Extract(u), e.model.Load())
	chain := e.simulator.Simulate(ctx, u)
	match := e.matcher.Match(u, e.catalog.Load())

	assessment := e.aggregator.Aggregate(verdict.Inputs{
		HeuristicScore:   heuristicScore,
		HeuristicReasons: reasons,
		Probability:      probability,
		Chain:            chain,
		Brand:            match,
	}, sensitivity)

	e.logger.Debug().
		Str("kind", u.Kind.String()).
		Int("score", assessment.Score).
		Str("verdict", assessment.Verdict.String()).
		Msg("Payload analyzed")
	return assessment, nil
}

// AnalyzeAsync runs Analyze on its own goroutine and delivers the result on
// the returned channel. Intended for UI threads that must not block.
func (e *Engine) AnalyzeAsync(ctx context.Context, payload string, sensitivity models.Sensitivity) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		assessment, err := e.Analyze(ctx, payload, sensitivity)
		out <- Result{Assessment: assessment, Err: err}
		close(out)
	}()
	return out
}

// ReloadModel atomically swaps the model bundle. In-flight analyses keep the
// snapshot they started with.
func (e *Engine) ReloadModel(model *classifier.ModelWeights) error {
	if err := model.Validate(); err != nil {
		return fmt.Errorf("rejecting model reload: %w", err)
	}
	e.model.Store(model)
	e.logger.Info().Str("model_version", model.Version).Msg("Model bundle reloaded")
	return nil
}

// ReloadCatalog atomically swaps the brand catalog.
func (e *Engine) ReloadCatalog(catalog *brand.Catalog) error {
	if err := catalog.Validate(); err != nil {
		return fmt.Errorf("rejecting catalog reload: %w", err)
	}
	e.catalog.Store(catalog)
	e.logger.Info().Int("brands", len(catalog.Brands)).Msg("Brand catalog reloaded")
	return nil
}

// ModelVersion returns the version of the currently loaded model bundle.
func (e *Engine) ModelVersion() string {
	return e.model.Load().Version
}
