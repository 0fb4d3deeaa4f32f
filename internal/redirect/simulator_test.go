package redirect

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mehrguard/qrguard/internal/models"
	"github.com/mehrguard/qrguard/internal/normalizer"
)

func mustNormalize(t *testing.T, payload string) *models.NormalizedURL {
	t.Helper()
	u, err := normalizer.NewNormalizer(zerolog.Nop()).Normalize(payload)
	require.NoError(t, err)
	return u
}

func TestSimulator_Simulate_NoPattern(t *testing.T) {
	s := NewSimulator(DefaultMaxHops, zerolog.Nop())

	chain := s.Simulate(context.Background(), mustNormalize(t, "https://example.com/about?page=2"))
	assert.Equal(t, models.TerminationNoMorePatterns, chain.Termination)
	assert.Equal(t, 0, chain.Length())
	assert.False(t, chain.Cyclic())
}

func TestSimulator_Simulate_BareShortenerLink(t *testing.T) {
	s := NewSimulator(DefaultMaxHops, zerolog.Nop())

	// A shortener link without an embedded destination cannot be followed
	// offline; the chain stays empty.
	chain := s.Simulate(context.Background(), mustNormalize(t, "https://bit.ly/3xYz"))
	assert.Equal(t, models.TerminationNoMorePatterns, chain.Termination)
	assert.Empty(t, chain.Hops)
}

func TestSimulator_Simulate_NonWebPayload(t *testing.T) {
	s := NewSimulator(DefaultMaxHops, zerolog.Nop())

	chain := s.Simulate(context.Background(), mustNormalize(t, "tel:+61212345678"))
	assert.Equal(t, models.TerminationNoMorePatterns, chain.Termination)
	assert.Empty(t, chain.Hops)
}

func TestSimulator_Simulate_SingleHop(t *testing.T) {
	s := NewSimulator(DefaultMaxHops, zerolog.Nop())

	u := mustNormalize(t, "https://example.com/out?url=https://destination.example.net/page")
	chain := s.Simulate(context.Background(), u)

	assert.Equal(t, models.TerminationNoMorePatterns, chain.Termination)
	require.Equal(t, 1, chain.Length())
	assert.Equal(t, "https://destination.example.net/page", chain.Hops[0].To)
	assert.Equal(t, 0, chain.Hops[0].Index)
}

func TestSimulator_Simulate_RelativeDestinationIgnored(t *testing.T) {
	s := NewSimulator(DefaultMaxHops, zerolog.Nop())

	u := mustNormalize(t, "https://example.com/out?next=/local/path")
	chain := s.Simulate(context.Background(), u)
	assert.Equal(t, models.TerminationNoMorePatterns, chain.Termination)
	assert.Empty(t, chain.Hops)
}

func TestSimulator_Simulate_SelfCycle(t *testing.T) {
	s := NewSimulator(DefaultMaxHops, zerolog.Nop())

	u := mustNormalize(t, "https://bit.ly/x?url=https://bit.ly/x")
	chain := s.Simulate(context.Background(), u)

	assert.Equal(t, models.TerminationCycleDetected, chain.Termination)
	assert.Equal(t, 1, chain.Length())
	assert.True(t, chain.Cyclic())
}

func TestSimulator_Simulate_TwoHopCycle(t *testing.T) {
	s := NewSimulator(DefaultMaxHops, zerolog.Nop())

	u := mustNormalize(t, "https://a.example.org/?next=https://b.example.net/?next=https://a.example.org/")
	chain := s.Simulate(context.Background(), u)

	assert.Equal(t, models.TerminationCycleDetected, chain.Termination)
	require.Equal(t, 2, chain.Length())
	assert.Equal(t, "b.example.net", mustNormalize(t, chain.Hops[0].To).Host)
	assert.Equal(t, "a.example.org", mustNormalize(t, chain.Hops[1].To).Host)
}

func TestSimulator_Simulate_MaxDepth(t *testing.T) {
	s := NewSimulator(DefaultMaxHops, zerolog.Nop())

	// Six distinct hosts nested inside one another; only five hops may be taken.
	nested := "https://f.example.net/"
	for _, host := range []string{"e.example.net", "d.example.net", "c.example.net", "b.example.net", "a.example.net"} {
		nested = "https://" + host + "/?next=" + nested
	}
	payload := "https://start.example.org/?next=" + nested

	chain := s.Simulate(context.Background(), mustNormalize(t, payload))
	assert.Equal(t, models.TerminationMaxDepthReached, chain.Termination)
	assert.Equal(t, DefaultMaxHops, chain.Length())
}

func TestSimulator_Simulate_Cancelled(t *testing.T) {
	s := NewSimulator(DefaultMaxHops, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	u := mustNormalize(t, "https://example.com/out?url=https://destination.example.net/")
	chain := s.Simulate(ctx, u)
	assert.Equal(t, models.TerminationCancelled, chain.Termination)
	assert.Empty(t, chain.Hops)
}

func TestSimulator_Simulate_Deterministic(t *testing.T) {
	s := NewSimulator(DefaultMaxHops, zerolog.Nop())
	u := mustNormalize(t, "https://example.com/out?goto=https://hop.example.net/?to=https://final.example.io/")

	first := s.Simulate(context.Background(), u)
	second := s.Simulate(context.Background(), u)
	assert.Equal(t, first, second)
}
