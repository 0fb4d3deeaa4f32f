// Package heuristics evaluates a fixed ordered set of pure checks against a
// normalized URL and produces reason codes with a bounded sub-score.
package heuristics

import (
	"github.com/rs/zerolog"

	"github.com/mehrguard/qrguard/internal/models"
)

// Check is one independent, pure predicate over a NormalizedURL. Checks never
// depend on each other's results.
type Check struct {
	Code     models.ReasonCode
	Evaluate func(*models.NormalizedURL) bool
}

// DefaultChecks is the full rule set in its fixed evaluation order. The order
// determines the reason-code sequence, so it is part of the contract.
var DefaultChecks = []Check{
	{models.ReasonScriptScheme, checkScriptScheme},
	{models.ReasonIPLiteralHost, checkIPLiteralHost},
	{models.ReasonUserInfoInURL, checkUserInfo},
	{models.ReasonEncodedCredentials, checkEncodedCredentials},
	{models.ReasonAtSignConfusion, checkAtSignConfusion},
	{models.ReasonSuspiciousPort, checkSuspiciousPort},
	{models.ReasonExcessiveSubdomains, checkExcessiveSubdomains},
	{models.ReasonHyphenatedHost, checkHyphenatedHost},
	{models.ReasonDigitHeavyHost, checkDigitHeavyHost},
	{models.ReasonLongHost, checkLongHost},
	{models.ReasonPunycodeHost, checkPunycodeHost},
	{models.ReasonMixedScriptHost, checkMixedScriptHost},
	{models.ReasonSuspiciousTLD, checkSuspiciousTLD},
	{models.ReasonUncommonTLD, checkUncommonTLD},
	{models.ReasonURLShortener, checkURLShortener},
	{models.ReasonExcessiveURLLength, checkExcessiveURLLength},
	{models.ReasonLongPath, checkLongPath},
	{models.ReasonDeepPath, checkDeepPath},
	{models.ReasonSuspiciousPathKeyword, checkSuspiciousPathKeyword},
	{models.ReasonBrandKeywordHost, checkBrandKeywordHost},
	{models.ReasonDoubleEncoding, checkDoubleEncoding},
	{models.ReasonEncodedControlChars, checkEncodedControlChars},
	{models.ReasonExcessiveQueryParams, checkExcessiveQueryParams},
	{models.ReasonEmbeddedURLInQuery, checkEmbeddedURLInQuery},
	{models.ReasonInsecureTransport, checkInsecureTransport},
}

// Engine runs the rule set. It holds no mutable state and is safe for
// concurrent use.
type Engine struct {
	checks []Check
	logger zerolog.Logger
}

// NewEngine creates an Engine with the default rule set.
func NewEngine(logger zerolog.Logger) *Engine {
	return &Engine{
		checks: DefaultChecks,
		logger: logger.With().Str("module", "HeuristicEngine").Logger(),
	}
}

// NewEngineWithChecks creates an Engine with a custom rule set, used by tests
// to isolate individual checks.
func NewEngineWithChecks(checks []Check, logger zerolog.Logger) *Engine {
	return &Engine{
		checks: checks,
		logger: logger.With().Str("module", "HeuristicEngine").Logger(),
	}
}

// Evaluate runs every check in declared order and returns the triggered
// reasons plus the clamped heuristic sub-score in [0,100].
func (e *Engine) Evaluate(u *models.NormalizedURL) ([]models.Reason, int) {
	var reasons []models.Reason
	score := 0
	for _, check := range e.checks {
		if !check.Evaluate(u) {
			continue
		}
		reason := models.NewReason(check.Code)
		reasons = append(reasons, reason)
		score += reason.Weight
	}
	if score > 100 {
		score = 100
	}
	if len(reasons) > 0 {
		e.logger.Debug().
			Int("score", score).
			Int("triggered", len(reasons)).
			Msg("Heuristic checks triggered")
	}
	return reasons, score
}
