package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mehrguard/qrguard/internal/verdict"
)

// ValidateEngineConfig performs validation on the EngineConfig structure.
func ValidateEngineConfig(cfg *EngineConfig) error {
	validate := validator.New()

	_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "debug", "info", "warn", "error", "fatal", "panic":
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("logformat", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "console", "json":
			return true
		default:
			return false
		}
	})

	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("engine config validation failed: %w", err)
	}

	return validateThresholds(cfg.AnalyzerConfig.Thresholds)
}

// validateThresholds enforces ordering inside each mode and monotonicity
// across modes, so raising sensitivity can never lower a verdict.
func validateThresholds(ts verdict.ThresholdSet) error {
	modes := []struct {
		name string
		t    verdict.Thresholds
	}{
		{"lenient", ts.Lenient},
		{"balanced", ts.Balanced},
		{"aggressive", ts.Aggressive},
	}
	for _, m := range modes {
		if m.t.Suspicious <= 0 || m.t.Malicious > 100 {
			return fmt.Errorf("%s thresholds out of range: %+v", m.name, m.t)
		}
		if m.t.Suspicious >= m.t.Malicious {
			return fmt.Errorf("%s suspicious threshold %d must be below malicious threshold %d",
				m.name, m.t.Suspicious, m.t.Malicious)
		}
	}
	if ts.Balanced.Suspicious > ts.Lenient.Suspicious || ts.Aggressive.Suspicious > ts.Balanced.Suspicious ||
		ts.Balanced.Malicious > ts.Lenient.Malicious || ts.Aggressive.Malicious > ts.Balanced.Malicious {
		return fmt.Errorf("thresholds must not increase from lenient to aggressive")
	}
	return nil
}
