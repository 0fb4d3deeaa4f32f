package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Verdict is the final three-level risk classification.
type Verdict int

const (
	VerdictSafe Verdict = iota
	VerdictSuspicious
	VerdictMalicious
)

// String returns the wire representation of the verdict.
func (v Verdict) String() string {
	switch v {
	case VerdictSafe:
		return "SAFE"
	case VerdictSuspicious:
		return "SUSPICIOUS"
	case VerdictMalicious:
		return "MALICIOUS"
	default:
		return "SAFE"
	}
}

// MarshalJSON serializes the verdict as its string form.
func (v Verdict) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

// UnmarshalJSON parses the string form of a verdict.
func (v *Verdict) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch strings.ToUpper(s) {
	case "SAFE":
		*v = VerdictSafe
	case "SUSPICIOUS":
		*v = VerdictSuspicious
	case "MALICIOUS":
		*v = VerdictMalicious
	default:
		return fmt.Errorf("unknown verdict %q", s)
	}
	return nil
}

// Sensitivity is the caller-selected strictness level. It shifts verdict
// thresholds only, never the underlying scoring.
type Sensitivity int

const (
	SensitivityLenient Sensitivity = iota
	SensitivityBalanced
	SensitivityAggressive
)

// String returns the wire representation of the sensitivity mode.
func (s Sensitivity) String() string {
	switch s {
	case SensitivityLenient:
		return "LENIENT"
	case SensitivityBalanced:
		return "BALANCED"
	case SensitivityAggressive:
		return "AGGRESSIVE"
	default:
		return "BALANCED"
	}
}

// ParseSensitivity converts a string into a Sensitivity mode.
func ParseSensitivity(s string) (Sensitivity, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LENIENT":
		return SensitivityLenient, nil
	case "BALANCED", "":
		return SensitivityBalanced, nil
	case "AGGRESSIVE":
		return SensitivityAggressive, nil
	default:
		return SensitivityBalanced, fmt.Errorf("unknown sensitivity %q", s)
	}
}

// SubScores exposes the raw per-component scores for diagnostics and testing.
type SubScores struct {
	Heuristic  int     `json:"heuristic"`
	Classifier float64 `json:"classifier"`
	Redirect   int     `json:"redirect"`
	Brand      float64 `json:"brand"`
}

// RiskAssessment is the final, immutable result of a single analysis call.
// Reasons preserve first-triggered order for stable, explainable display.
type RiskAssessment struct {
	Score     int       `json:"score"`
	Verdict   Verdict   `json:"verdict"`
	Reasons   []Reason  `json:"reasons"`
	SubScores SubScores `json:"subscores"`
}

// HasReason reports whether the assessment triggered the given code.
func (ra *RiskAssessment) HasReason(code ReasonCode) bool {
	for _, r := range ra.Reasons {
		if r.Code == code {
			return true
		}
	}
	return false
}
