// Package redirect simulates plausible redirect chains from structural URL
// signals alone. No network I/O ever happens here; termination is guaranteed
// by the strictly decreasing hops-remaining bound.
package redirect

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mehrguard/qrguard/internal/models"
	"github.com/mehrguard/qrguard/internal/normalizer"
)

// DefaultMaxHops bounds chain exploration when no configuration is supplied.
const DefaultMaxHops = 5

// redirectParams are query keys that conventionally carry an embedded
// destination URL.
var redirectParams = map[string]bool{
	"url": true, "u": true, "redirect": true, "redirect_uri": true,
	"redirect_url": true, "next": true, "goto": true, "go": true,
	"dest": true, "destination": true, "target": true, "link": true,
	"r": true, "return": true, "returnurl": true, "return_to": true,
	"continue": true, "out": true, "to": true, "forward": true,
}

// Simulator explores redirect chains. Safe for concurrent use.
type Simulator struct {
	maxHops int
	norm    *normalizer.Normalizer
	logger  zerolog.Logger
}

// NewSimulator creates a Simulator with the given hop bound.
func NewSimulator(maxHops int, logger zerolog.Logger) *Simulator {
	if maxHops <= 0 {
		maxHops = DefaultMaxHops
	}
	return &Simulator{
		maxHops: maxHops,
		norm:    normalizer.NewNormalizer(logger),
		logger:  logger.With().Str("module", "RedirectSimulator").Logger(),
	}
}

// Simulate follows embedded-destination patterns until no pattern remains,
// the hop bound is exhausted, a host repeats, or ctx is cancelled. The
// context check at the top of each hop is the pipeline's only cancellation
// point.
func (s *Simulator) Simulate(ctx context.Context, u *models.NormalizedURL) models.RedirectChain {
	chain := models.RedirectChain{Termination: models.TerminationNoMorePatterns}
	if u == nil || !u.IsWebURL() {
		return chain
	}

	seen := map[string]bool{u.Host: true}
	current := u
	currentRaw := strings.TrimSpace(u.Raw)

	for remaining := s.maxHops; remaining > 0; remaining-- {
		if ctx.Err() != nil {
			chain.Termination = models.TerminationCancelled
			return chain
		}

		destRaw := extractDestination(current)
		if destRaw == "" {
			chain.Termination = models.TerminationNoMorePatterns
			return chain
		}
		dest, err := s.norm.Normalize(destRaw)
		if err != nil || !dest.IsWebURL() {
			chain.Termination = models.TerminationNoMorePatterns
			return chain
		}

		chain.Hops = append(chain.Hops, models.RedirectHop{
			From:  currentRaw,
			To:    destRaw,
			Index: len(chain.Hops),
		})

		if seen[dest.Host] {
			chain.Termination = models.TerminationCycleDetected
			return chain
		}
		seen[dest.Host] = true
		current = dest
		currentRaw = destRaw
	}

	chain.Termination = models.TerminationMaxDepthReached
	return chain
}

// extractDestination returns the first absolute http(s) URL carried in a
// redirect-style query parameter, scanning parameters in original order for
// determinism.
func extractDestination(u *models.NormalizedURL) string {
	for _, qp := range u.Query {
		if !redirectParams[strings.ToLower(qp.Key)] {
			continue
		}
		v := strings.TrimSpace(qp.Value)
		lower := strings.ToLower(v)
		if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
			return v
		}
	}
	return ""
}
