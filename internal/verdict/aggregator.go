// Package verdict merges the component sub-scores into the final
// RiskAssessment. It is the only pipeline component whose branching depends
// on configuration (the sensitivity thresholds).
package verdict

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/mehrguard/qrguard/internal/models"
)

// Fixed aggregation weights. Heuristic and classifier contributions carry
// roughly equal weight; redirect structure carries the remainder.
const (
	heuristicWeight  = 0.40
	classifierWeight = 0.40
	redirectWeight   = 0.20

	lookalikeFloor     = 70
	exactBrandDiscount = 15
	redirectPenalty    = 15

	highConfidenceProbability = 0.75
)

// Redirect sub-scores per termination shape.
const (
	redirectRiskCycle    = 80
	redirectRiskMaxDepth = 70
	redirectRiskMulti    = 40
	redirectRiskSingle   = 20
)

// Thresholds are the score cutoffs for one sensitivity mode: scores at or
// above Suspicious (resp. Malicious) upgrade the verdict.
type Thresholds struct {
	Suspicious int `json:"suspicious" yaml:"suspicious" validate:"min=1,max=100"`
	Malicious  int `json:"malicious" yaml:"malicious" validate:"min=1,max=100"`
}

// ThresholdSet holds the cutoffs for all three sensitivity modes. Cutoffs
// must not increase from LENIENT to AGGRESSIVE so that verdict severity is
// monotonic in sensitivity.
type ThresholdSet struct {
	Lenient    Thresholds `json:"lenient" yaml:"lenient"`
	Balanced   Thresholds `json:"balanced" yaml:"balanced"`
	Aggressive Thresholds `json:"aggressive" yaml:"aggressive"`
}

// DefaultThresholdSet returns the calibrated default cutoffs.
func DefaultThresholdSet() ThresholdSet {
	return ThresholdSet{
		Lenient:    Thresholds{Suspicious: 40, Malicious: 75},
		Balanced:   Thresholds{Suspicious: 30, Malicious: 60},
		Aggressive: Thresholds{Suspicious: 20, Malicious: 45},
	}
}

// For selects the thresholds for a sensitivity mode.
func (ts ThresholdSet) For(s models.Sensitivity) Thresholds {
	switch s {
	case models.SensitivityLenient:
		return ts.Lenient
	case models.SensitivityAggressive:
		return ts.Aggressive
	default:
		return ts.Balanced
	}
}

// Inputs carries every component's output into aggregation.
type Inputs struct {
	HeuristicScore   int
	HeuristicReasons []models.Reason
	Probability      float64
	Chain            models.RedirectChain
	Brand            models.BrandMatch
}

// Aggregator computes final assessments. Safe for concurrent use.
type Aggregator struct {
	thresholds ThresholdSet
	logger     zerolog.Logger
}

// NewAggregator creates an Aggregator with the given threshold set.
func NewAggregator(thresholds ThresholdSet, logger zerolog.Logger) *Aggregator {
	return &Aggregator{
		thresholds: thresholds,
		logger:     logger.With().Str("module", "VerdictAggregator").Logger(),
	}
}

// Aggregate merges the sub-scores into a single assessment. Sensitivity
// shifts thresholds only, never the score computation.
func (a *Aggregator) Aggregate(in Inputs, sensitivity models.Sensitivity) *models.RiskAssessment {
	redirectRisk := redirectRiskScore(in.Chain)

	score := heuristicWeight*float64(in.HeuristicScore) +
		classifierWeight*in.Probability*100 +
		redirectWeight*float64(redirectRisk)

	reasons := make([]models.Reason, 0, len(in.HeuristicReasons)+4)
	reasons = append(reasons, in.HeuristicReasons...)

	if in.Probability >= highConfidenceProbability {
		reasons = append(reasons, models.NewReason(models.ReasonModelHighConfidence))
	}

	switch in.Chain.Termination {
	case models.TerminationCycleDetected:
		reasons = append(reasons, models.NewReason(models.ReasonRedirectChainCycle))
		score += redirectPenalty
	case models.TerminationMaxDepthReached:
		reasons = append(reasons, models.NewReason(models.ReasonRedirectChainTooLong))
		score += redirectPenalty
	default:
		if in.Chain.Length() > 0 {
			reasons = append(reasons, models.NewReason(models.ReasonRedirectIndirection))
		}
	}

	brandScore := 0.0
	switch in.Brand.Decision {
	case models.BrandLookalike:
		reasons = append(reasons, models.NewReason(models.ReasonHomographDomain))
		brandScore = in.Brand.Similarity
		// A lookalike is a near-certain indicator: floor, not average.
		if score < lookalikeFloor {
			score = lookalikeFloor
		}
	case models.BrandExact:
		// The brand owns this domain; structural noise on its own site is
		// discounted.
		score -= exactBrandDiscount
	default:
		brandScore = in.Brand.Similarity
	}

	finalScore := clampScore(int(math.Round(score)))

	assessment := &models.RiskAssessment{
		Score:   finalScore,
		Verdict: VerdictFor(finalScore, a.thresholds.For(sensitivity)),
		Reasons: dedupeReasons(reasons),
		SubScores: models.SubScores{
			Heuristic:  in.HeuristicScore,
			Classifier: in.Probability,
			Redirect:   redirectRisk,
			Brand:      brandScore,
		},
	}

	a.logger.Debug().
		Int("score", assessment.Score).
		Str("verdict", assessment.Verdict.String()).
		Str("sensitivity", sensitivity.String()).
		Msg("Aggregated assessment")
	return assessment
}

// redirectRiskScore maps the chain shape onto a 0..100 sub-score.
func redirectRiskScore(chain models.RedirectChain) int {
	switch {
	case chain.Cyclic():
		return redirectRiskCycle
	case chain.Termination == models.TerminationMaxDepthReached:
		return redirectRiskMaxDepth
	case chain.Length() >= 2:
		return redirectRiskMulti
	case chain.Length() == 1:
		return redirectRiskSingle
	default:
		return 0
	}
}

// ThresholdsFor exposes the aggregator's cutoffs for one sensitivity mode,
// used by the non-URL analysis path.
func (a *Aggregator) ThresholdsFor(s models.Sensitivity) Thresholds {
	return a.thresholds.For(s)
}

// VerdictFor maps a score onto a verdict using the given cutoffs.
func VerdictFor(score int, t Thresholds) models.Verdict {
	switch {
	case score >= t.Malicious:
		return models.VerdictMalicious
	case score >= t.Suspicious:
		return models.VerdictSuspicious
	default:
		return models.VerdictSafe
	}
}

// dedupeReasons removes duplicate codes while preserving first-triggered
// order.
func dedupeReasons(reasons []models.Reason) []models.Reason {
	seen := make(map[models.ReasonCode]bool, len(reasons))
	out := reasons[:0]
	for _, r := range reasons {
		if seen[r.Code] {
			continue
		}
		seen[r.Code] = true
		out = append(out, r)
	}
	return out
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
