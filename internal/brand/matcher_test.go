package brand

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

func newTestMatcher() *Matcher {
	return NewMatcher(DefaultSimilarityThreshold, DefaultMaxEditDistance, zerolog.Nop())
}

func TestMatcher_Match_ExactDomain(t *testing.T) {
	m := newTestMatcher()
	catalog := DefaultCatalog()

	tests := []struct {
		name    string
		payload string
		brand   string
	}{
		{"Registrable domain", "https://paypal.com/signin", "paypal"},
		{"Subdomain of canonical domain", "https://www.paypal.com/signin", "paypal"},
		{"Country-code suffix", "https://netbank.commbank.com.au/", "commbank"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match := m.Match(mustNormalize(t, tt.payload), catalog)
			assert.Equal(t, models.BrandExact, match.Decision)
			assert.Equal(t, tt.brand, match.Brand)
			assert.Equal(t, 1.0, match.Similarity)
			assert.Equal(t, 0, match.Distance)
		})
	}
}

func TestMatcher_Match_Lookalike(t *testing.T) {
	m := newTestMatcher()
	catalog := DefaultCatalog()

	tests := []struct {
		name    string
		payload string
		brand   string
	}{
		// Capital I lowercases to i, one edit away from paypal.
		{"Single-character swap", "https://paypaI.com/secure/verify", "paypal"},
		{"Digit homograph", "https://g00gle.com/login", "google"},
		{"Cyrillic homograph", "https://pаypal.com/", "paypal"},
		{"Brand label in foreign host", "https://paypal.com.evil.ga/webscr", "paypal"},
		{"Transposition", "https://mircosoft.com/account", "microsoft"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match := m.Match(mustNormalize(t, tt.payload), catalog)
			assert.Equal(t, models.BrandLookalike, match.Decision)
			assert.Equal(t, tt.brand, match.Brand)
			assert.Equal(t, models.MatchFieldHost, match.Field)
		})
	}
}

func TestMatcher_Match_NoMatch(t *testing.T) {
	m := newTestMatcher()
	catalog := DefaultCatalog()

	tests := []struct {
		name    string
		payload string
	}{
		{"Unrelated domain", "https://example.com/about"},
		{"IP hosts are never brand matches", "http://192.168.1.50/paypal"},
		{"Short names need high similarity", "https://any.com/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match := m.Match(mustNormalize(t, tt.payload), catalog)
			assert.Equal(t, models.BrandNone, match.Decision)
			assert.Empty(t, match.Brand)
		})
	}
}

func TestMatcher_Match_PathMention(t *testing.T) {
	m := newTestMatcher()
	catalog := DefaultCatalog()

	match := m.Match(mustNormalize(t, "https://example.com/paypal/login"), catalog)
	assert.Equal(t, models.BrandNone, match.Decision)
	assert.Equal(t, "paypal", match.Brand)
	assert.Equal(t, models.MatchFieldPath, match.Field)
	assert.Equal(t, pathMatchSubScore, match.Similarity)
}

func TestMatcher_Match_Deterministic(t *testing.T) {
	m := newTestMatcher()
	catalog := DefaultCatalog()
	u := mustNormalize(t, "https://paypaI.com/secure/verify")

	first := m.Match(u, catalog)
	second := m.Match(u, catalog)
	assert.Equal(t, first, second)
}

func TestHomographFold(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"PayPa1", "paypal"},
		{"g00gle", "google"},
		{"àpple", "apple"},
		{"pаypal", "paypal"}, // Cyrillic а
		{"example", "example"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HomographFold(tt.in))
	}
}

func TestDiceSimilarity(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"paypal", "paypal", 1.0},
		{"paypai", "paypal", 0.8},
		{"a", "paypal", 0.0},
		{"", "", 1.0},
	}
	for _, tt := range tests {
		assert.InDeltaf(t, tt.want, diceSimilarity(tt.a, tt.b), 1e-9, "%s vs %s", tt.a, tt.b)
	}
}

func TestDamerauLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"paypal", "paypal", 0},
		{"paypai", "paypal", 1},
		{"mircosoft", "microsoft", 1}, // adjacent transposition
		{"amaz0n", "amazon", 1},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
	}
	for _, tt := range tests {
		assert.Equalf(t, tt.want, damerauLevenshtein(tt.a, tt.b), "%s vs %s", tt.a, tt.b)
	}
}

func TestCatalog_Validate(t *testing.T) {
	require.NoError(t, DefaultCatalog().Validate())

	assert.Error(t, (&Catalog{}).Validate())
	assert.Error(t, (&Catalog{Brands: []Brand{{Name: "", Domain: "x.com"}}}).Validate())
	assert.Error(t, (&Catalog{Brands: []Brand{{Name: "x", Domain: "nodot"}}}).Validate())
}
