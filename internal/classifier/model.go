// Package classifier scores feature vectors with a fixed, shipped ensemble:
// logistic regression, boosted one-feature stumps, and standalone override
// stumps. No training happens at runtime.
package classifier

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/mehrguard/qrguard/internal/models"
)

// LogisticModel is the linear sub-model: sigmoid(weights . features + bias).
type LogisticModel struct {
	Weights []float64 `json:"weights" yaml:"weights" validate:"required"`
	Bias    float64   `json:"bias" yaml:"bias"`
}

// Stump is one weak learner of the boosted ensemble: a threshold on a single
// feature selecting one of two leaf outputs.
type Stump struct {
	Feature   int     `json:"feature" yaml:"feature" validate:"min=0"`
	Threshold float64 `json:"threshold" yaml:"threshold"`
	Below     float64 `json:"below" yaml:"below"`
	Above     float64 `json:"above" yaml:"above"`
}

// OverrideStump is a standalone near-certain indicator. When the feature
// crosses the threshold the final probability is floored at Probability.
type OverrideStump struct {
	Feature     int     `json:"feature" yaml:"feature" validate:"min=0"`
	Threshold   float64 `json:"threshold" yaml:"threshold"`
	Probability float64 `json:"probability" yaml:"probability" validate:"min=0,max=1"`
}

// BlendWeights are the fixed sub-model mixing weights. They must sum to 1.
type BlendWeights struct {
	Logistic  float64 `json:"logistic" yaml:"logistic" validate:"min=0,max=1"`
	Stumps    float64 `json:"stumps" yaml:"stumps" validate:"min=0,max=1"`
	Overrides float64 `json:"overrides" yaml:"overrides" validate:"min=0,max=1"`
}

// ModelWeights is the immutable, versioned coefficient bundle. It is loaded
// once at engine construction and shared read-only across analyses.
type ModelWeights struct {
	Version   string          `json:"version" yaml:"version" validate:"required"`
	Blend     BlendWeights    `json:"blend" yaml:"blend"`
	Logistic  LogisticModel   `json:"logistic" yaml:"logistic"`
	Stumps    []Stump         `json:"stumps" yaml:"stumps"`
	Overrides []OverrideStump `json:"overrides" yaml:"overrides"`
}

// Validate checks the bundle against the feature schema. A broken bundle is
// fatal at engine construction, never a per-call error.
func (m *ModelWeights) Validate() error {
	validate := validator.New()
	if err := validate.Struct(m); err != nil {
		return fmt.Errorf("model bundle validation failed: %w", err)
	}
	if len(m.Logistic.Weights) != models.FeatureCount {
		return fmt.Errorf("logistic weights length %d does not match feature schema length %d",
			len(m.Logistic.Weights), models.FeatureCount)
	}
	for i, s := range m.Stumps {
		if s.Feature >= models.FeatureCount {
			return fmt.Errorf("stump %d references feature %d outside schema", i, s.Feature)
		}
	}
	for i, o := range m.Overrides {
		if o.Feature >= models.FeatureCount {
			return fmt.Errorf("override stump %d references feature %d outside schema", i, o.Feature)
		}
	}
	if sum := m.Blend.Logistic + m.Blend.Stumps + m.Blend.Overrides; math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("blend weights sum to %f, want 1.0", sum)
	}
	return nil
}

// DefaultModelWeights returns the shipped bundle. Coefficients were exported
// from the offline trainer; override stumps cover the near-certain single
// indicators (IP host, shortener, abused TLD).
func DefaultModelWeights() *ModelWeights {
	return &ModelWeights{
		Version: "qrguard-ensemble-v1",
		Blend: BlendWeights{
			Logistic:  0.5,
			Stumps:    0.3,
			Overrides: 0.2,
		},
		Logistic: LogisticModel{
			Weights: []float64{
				0.8,  // url length
				0.5,  // host length
				0.3,  // path length
				1.5,  // subdomain count
				-1.5, // has https
				2.0,  // ip host
				1.0,  // host entropy
				0.5,  // path entropy
				0.5,  // query params
				2.0,  // at sign
				0.5,  // dots
				1.0,  // dashes
				1.0,  // port
				1.5,  // shortener
				2.0,  // suspicious tld
			},
			Bias: -3.0,
		},
		Stumps: []Stump{
			{Feature: models.FeatureIPHost, Threshold: 0.5, Below: -0.5, Above: 1.2},
			{Feature: models.FeatureShortenerHost, Threshold: 0.5, Below: -0.5, Above: 1.0},
			{Feature: models.FeatureSuspiciousTLD, Threshold: 0.5, Below: -0.5, Above: 1.2},
			{Feature: models.FeatureSubdomainCount, Threshold: 0.4, Below: -0.5, Above: 0.8},
			{Feature: models.FeatureHasAtSign, Threshold: 0.5, Below: -0.5, Above: 1.0},
			{Feature: models.FeatureHostEntropy, Threshold: 0.8, Below: -0.5, Above: 0.7},
			{Feature: models.FeatureDashCount, Threshold: 0.3, Below: -0.5, Above: 0.6},
			{Feature: models.FeatureURLLength, Threshold: 0.5, Below: -0.5, Above: 0.6},
		},
		Overrides: []OverrideStump{
			{Feature: models.FeatureIPHost, Threshold: 0.5, Probability: 0.90},
			{Feature: models.FeatureHasAtSign, Threshold: 0.5, Probability: 0.85},
		},
	}
}

// legacyLogisticBundle is the original trainer export format: a bare
// logistic-regression weight file.
type legacyLogisticBundle struct {
	Weights []float64 `json:"weights"`
	Bias    float64   `json:"bias"`
}

// LoadModelWeights reads a bundle from a YAML or JSON file. A JSON file in
// the original trainer format ({"weights": [...], "bias": ...}) is upgraded
// into a full bundle around the default stump set.
func LoadModelWeights(path string) (*ModelWeights, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model bundle %s: %w", path, err)
	}

	bundle := &ModelWeights{}
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		err = yaml.Unmarshal(data, bundle)
	} else {
		err = json.Unmarshal(data, bundle)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse model bundle %s: %w", path, err)
	}

	if bundle.Version == "" {
		legacy := legacyLogisticBundle{}
		if jsonErr := json.Unmarshal(data, &legacy); jsonErr == nil && len(legacy.Weights) == models.FeatureCount {
			upgraded := DefaultModelWeights()
			upgraded.Version = "legacy-logistic"
			upgraded.Logistic = LogisticModel(legacy)
			bundle = upgraded
		}
	}

	if err := bundle.Validate(); err != nil {
		return nil, err
	}
	return bundle, nil
}
