// Package config holds the engine's startup configuration: logging, the
// analysis tunables, and the paths of the model and brand-catalog bundles.
package config

import (
	"github.com/mehrguard/qrguard/internal/verdict"
)

// Default analysis tunables.
const (
	DefaultMaxRedirectHops          = 5
	DefaultBrandSimilarityThreshold = 0.8
	DefaultBrandMaxEditDistance     = 2

	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultMaxLogBackups = 3
	DefaultMaxLogSizeMB  = 100
)

// AnalyzerConfig defines the tunables of the assessment pipeline. Everything
// here is read once at engine construction; the pipeline itself never reads
// configuration per call.
type AnalyzerConfig struct {
	MaxRedirectHops          int                  `json:"max_redirect_hops,omitempty" yaml:"max_redirect_hops,omitempty" validate:"min=1,max=10"`
	BrandSimilarityThreshold float64              `json:"brand_similarity_threshold,omitempty" yaml:"brand_similarity_threshold,omitempty" validate:"gt=0,lte=1"`
	BrandMaxEditDistance     int                  `json:"brand_max_edit_distance,omitempty" yaml:"brand_max_edit_distance,omitempty" validate:"min=1,max=5"`
	ModelPath                string               `json:"model_path,omitempty" yaml:"model_path,omitempty"`
	BrandCatalogPath         string               `json:"brand_catalog_path,omitempty" yaml:"brand_catalog_path,omitempty"`
	Thresholds               verdict.ThresholdSet `json:"thresholds,omitempty" yaml:"thresholds,omitempty"`
}

// NewDefaultAnalyzerConfig creates default analyzer configuration.
func NewDefaultAnalyzerConfig() AnalyzerConfig {
	return AnalyzerConfig{
		MaxRedirectHops:          DefaultMaxRedirectHops,
		BrandSimilarityThreshold: DefaultBrandSimilarityThreshold,
		BrandMaxEditDistance:     DefaultBrandMaxEditDistance,
		Thresholds:               verdict.DefaultThresholdSet(),
	}
}

// EngineConfig contains all configuration sections for the engine.
type EngineConfig struct {
	AnalyzerConfig AnalyzerConfig `json:"analyzer_config,omitempty" yaml:"analyzer_config,omitempty"`
	LogConfig      LogConfig      `json:"log_config,omitempty" yaml:"log_config,omitempty"`
}

// NewDefaultEngineConfig creates a new EngineConfig with default values.
func NewDefaultEngineConfig() *EngineConfig {
	return &EngineConfig{
		AnalyzerConfig: NewDefaultAnalyzerConfig(),
		LogConfig:      NewDefaultLogConfig(),
	}
}
