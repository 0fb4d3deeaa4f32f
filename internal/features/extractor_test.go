package features

import (
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

func TestExtractor_Extract_BenignURL(t *testing.T) {
	e := NewExtractor()
	u := mustNormalize(t, "https://example.com/about")

	fv := e.Extract(u)

	assert.InDelta(t, 25.0/500.0, fv[models.FeatureURLLength], 1e-9)
	assert.InDelta(t, 11.0/100.0, fv[models.FeatureHostLength], 1e-9)
	assert.InDelta(t, 6.0/200.0, fv[models.FeaturePathLength], 1e-9)
	assert.Equal(t, 0.0, fv[models.FeatureSubdomainCount])
	assert.Equal(t, 1.0, fv[models.FeatureHasHTTPS])
	assert.Equal(t, 0.0, fv[models.FeatureIPHost])
	assert.Greater(t, fv[models.FeatureHostEntropy], 0.0)
	assert.Equal(t, 0.0, fv[models.FeatureQueryParamCount])
	assert.Equal(t, 0.0, fv[models.FeatureHasAtSign])
	assert.InDelta(t, 1.0/10.0, fv[models.FeatureDotCount], 1e-9)
	assert.Equal(t, 0.0, fv[models.FeatureDashCount])
	assert.Equal(t, 0.0, fv[models.FeatureHasPort])
	assert.Equal(t, 0.0, fv[models.FeatureShortenerHost])
	assert.Equal(t, 0.0, fv[models.FeatureSuspiciousTLD])
}

func TestExtractor_Extract_RiskySignals(t *testing.T) {
	e := NewExtractor()

	tests := []struct {
		name    string
		payload string
		feature int
		want    float64
	}{
		{"IP host", "http://10.0.0.1/x", models.FeatureIPHost, 1.0},
		{"Shortener", "https://bit.ly/abc", models.FeatureShortenerHost, 1.0},
		{"Suspicious TLD", "https://evil.tk/", models.FeatureSuspiciousTLD, 1.0},
		{"At sign", "https://example.com/a@b", models.FeatureHasAtSign, 1.0},
		{"Explicit port", "https://example.com:8443/", models.FeatureHasPort, 1.0},
		{"Subdomains", "https://a.b.c.example.com/", models.FeatureSubdomainCount, 3.0 / 5.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fv := e.Extract(mustNormalize(t, tt.payload))
			assert.InDelta(t, tt.want, fv[tt.feature], 1e-9)
		})
	}
}

func TestExtractor_Extract_ValuesBounded(t *testing.T) {
	e := NewExtractor()
	// Longer than every normalization cap.
	longURL := "http://very-long-subdomain-chain.a.b.c.d.e.f.g.h.example-long-host-name.tk/" +
		"path/segment/path/segment/path/segment/path/segment/path/segment/path/segment/" +
		"?a=1&b=2&c=3&d=4&e=5&f=6&g=7&h=8&i=9&j=10&k=11&l=12"
	fv := e.Extract(mustNormalize(t, longURL))

	for i, v := range fv {
		assert.GreaterOrEqualf(t, v, 0.0, "feature %d below range", i)
		assert.LessOrEqualf(t, v, 1.0, "feature %d above range", i)
	}
	assert.Equal(t, 1.0, fv[models.FeatureQueryParamCount])
	assert.Equal(t, 1.0, fv[models.FeatureSubdomainCount])
}

func TestExtractor_Extract_NeverPanicsOnSparseInput(t *testing.T) {
	e := NewExtractor()
	// Hostless script-scheme payload still yields a full vector.
	u := mustNormalize(t, "javascript:alert(1)")

	fv := e.Extract(u)
	assert.Equal(t, 0.0, fv[models.FeatureHostLength])
	assert.Equal(t, 0.0, fv[models.FeatureHasHTTPS])
}

func TestExtractor_Extract_ShortenerContainment(t *testing.T) {
	e := NewExtractor()

	// The trainer matched shortener domains by containment, so a shortener
	// buried inside a longer host still sets the feature.
	fv := e.Extract(mustNormalize(t, "https://bit.ly.evil.com/promo"))
	assert.Equal(t, 1.0, fv[models.FeatureShortenerHost])

	fv = e.Extract(mustNormalize(t, "https://example.com/"))
	assert.Equal(t, 0.0, fv[models.FeatureShortenerHost])
}

func TestExtractor_Extract_Deterministic(t *testing.T) {
	e := NewExtractor()
	u := mustNormalize(t, "https://login.example-secure.tk/verify?u=https://evil.tk")

	first := e.Extract(u)
	// Entropy features accumulate floating point; any order sensitivity shows
	// up as last-ULP drift across repeated runs.
	for i := 0; i < 200; i++ {
		require.Equal(t, first, e.Extract(u))
	}
}

func TestShannonEntropy(t *testing.T) {
	assert.Equal(t, 0.0, shannonEntropy(""))
	assert.Equal(t, 0.0, shannonEntropy("aaaa"))
	assert.InDelta(t, 1.0, shannonEntropy("aabb"), 1e-12)
	assert.InDelta(t, 2.0, shannonEntropy("abcd"), 1e-12)

	first := shannonEntropy("secure-login-verify.example-site.tk")
	for i := 0; i < 200; i++ {
		require.Equal(t, first, shannonEntropy("secure-login-verify.example-site.tk"))
	}
}
