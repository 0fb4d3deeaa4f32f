package brand

import (
	"strings"
	"unicode"

	"github.com/hbakhtiyor/strsim"
	"github.com/rs/zerolog"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/mehrguard/qrguard/internal/models"
)

// Matching thresholds. Fixed so the nearest-match search stays deterministic.
const (
	DefaultSimilarityThreshold = 0.8
	DefaultMaxEditDistance     = 2
	// minNameLenForDistance keeps short brand names (anz, ups) from matching
	// unrelated three-letter domains by edit distance alone.
	minNameLenForDistance = 5
	pathMatchSubScore     = 0.25
)

// homographFoldMap maps visually confusable characters to their Latin
// look-alike. Applied after Unicode normalization and diacritic stripping.
var homographFoldMap = map[rune]rune{
	'0': 'o', '1': 'l', '3': 'e', '4': 'a', '5': 's', '7': 't',
	'8': 'b', '9': 'g', '@': 'a', '$': 's', '!': 'i', '|': 'l',
	// Cyrillic
	'а': 'a', 'е': 'e', 'о': 'o', 'р': 'p', 'с': 'c', 'х': 'x',
	'у': 'y', 'і': 'i', 'ѕ': 's', 'ј': 'j', 'ԁ': 'd', 'ь': 'b',
	// Greek
	'ο': 'o', 'α': 'a', 'ε': 'e', 'ι': 'i', 'ν': 'v', 'τ': 't',
}

var diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Matcher performs deterministic nearest-match search over a brand catalog.
type Matcher struct {
	similarityThreshold float64
	maxEditDistance     int
	logger              zerolog.Logger
}

// NewMatcher creates a Matcher with the given thresholds; zero values select
// the defaults.
func NewMatcher(similarityThreshold float64, maxEditDistance int, logger zerolog.Logger) *Matcher {
	if similarityThreshold <= 0 {
		similarityThreshold = DefaultSimilarityThreshold
	}
	if maxEditDistance <= 0 {
		maxEditDistance = DefaultMaxEditDistance
	}
	return &Matcher{
		similarityThreshold: similarityThreshold,
		maxEditDistance:     maxEditDistance,
		logger:              logger.With().Str("module", "BrandMatcher").Logger(),
	}
}

// Match compares the decoded display host, then path segments, against the
// catalog. Ties are broken by higher similarity, then shorter edit distance,
// then catalog declaration order.
func (m *Matcher) Match(u *models.NormalizedURL, catalog *Catalog) models.BrandMatch {
	none := models.BrandMatch{Decision: models.BrandNone}
	if u == nil || !u.IsWebURL() || u.IsIPHost {
		return none
	}

	asciiRegistrable := registrableDomain(u.Host)
	folded := HomographFold(u.DisplayHost)
	foldedRegistrable := registrableDomain(folded)
	foldedLabel := secondLevelLabel(foldedRegistrable)

	// Exact canonical domain wins outright: a brand's own host is never a
	// lookalike.
	for _, b := range catalog.Brands {
		if asciiRegistrable == b.Domain {
			return models.BrandMatch{
				Brand:      b.Name,
				Domain:     b.Domain,
				Similarity: 1.0,
				Distance:   0,
				Field:      models.MatchFieldHost,
				Decision:   models.BrandExact,
			}
		}
	}

	best := none
	bestDistance := 0
	for _, b := range catalog.Brands {
		name := HomographFold(b.Name)

		distance := damerauLevenshtein(foldedLabel, name)
		similarity := diceSimilarity(foldedLabel, name)
		// A brand name sitting as a whole label in a foreign host
		// (paypal.com.evil.ga) is as deceptive as an edit-distance twin.
		if hasLabel(folded, name) && foldedRegistrable != HomographFold(b.Domain) {
			similarity = 1.0
			distance = 0
		}

		if !m.isLookalike(similarity, distance, name, foldedLabel) {
			continue
		}
		if best.Decision == models.BrandNone ||
			similarity > best.Similarity ||
			(similarity == best.Similarity && distance < bestDistance) {
			best = models.BrandMatch{
				Brand:      b.Name,
				Domain:     b.Domain,
				Similarity: similarity,
				Distance:   distance,
				Field:      models.MatchFieldHost,
				Decision:   models.BrandLookalike,
			}
			bestDistance = distance
		}
	}
	if best.Decision == models.BrandLookalike {
		m.logger.Debug().
			Str("brand", best.Brand).
			Float64("similarity", best.Similarity).
			Msg("Lookalike brand match")
		return best
	}

	// Secondary pass: a brand token in the path is recorded for diagnostics
	// but does not by itself make the URL a lookalike.
	for _, segment := range strings.Split(u.Path, "/") {
		fold := HomographFold(segment)
		for _, b := range catalog.Brands {
			if fold == HomographFold(b.Name) {
				return models.BrandMatch{
					Brand:      b.Name,
					Domain:     b.Domain,
					Similarity: pathMatchSubScore,
					Field:      models.MatchFieldPath,
					Decision:   models.BrandNone,
				}
			}
		}
	}
	return none
}

func (m *Matcher) isLookalike(similarity float64, distance int, name, label string) bool {
	if label == "" {
		return false
	}
	if similarity >= m.similarityThreshold {
		return true
	}
	return distance > 0 && distance <= m.maxEditDistance && len(name) >= minNameLenForDistance
}

// HomographFold lowercases, strips diacritics, and maps confusable
// characters onto their Latin look-alikes.
func HomographFold(s string) string {
	lowered := strings.ToLower(s)
	stripped, _, err := transform.String(diacriticStripper, lowered)
	if err != nil {
		stripped = lowered
	}
	var sb strings.Builder
	sb.Grow(len(stripped))
	for _, r := range stripped {
		if mapped, ok := homographFoldMap[r]; ok {
			r = mapped
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// registrableDomain returns the eTLD+1 of host, falling back to the last two
// labels when the public-suffix list cannot place it.
func registrableDomain(host string) string {
	if host == "" {
		return ""
	}
	if d, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return d
	}
	parts := strings.Split(host, ".")
	if len(parts) < 2 {
		return host
	}
	return parts[len(parts)-2] + "." + parts[len(parts)-1]
}

func secondLevelLabel(domain string) string {
	if idx := strings.Index(domain, "."); idx > 0 {
		return domain[:idx]
	}
	return domain
}

// hasLabel reports whether name appears as a complete dot-separated label of
// host.
func hasLabel(host, name string) bool {
	for _, label := range strings.Split(host, ".") {
		if label == name {
			return true
		}
	}
	return false
}

// diceSimilarity wraps the strsim Dice-coefficient comparison; strings too
// short for bigrams compare by equality.
func diceSimilarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if len(a) < 2 || len(b) < 2 {
		return 0.0
	}
	return strsim.Compare(a, b)
}

// damerauLevenshtein computes the optimal-string-alignment edit distance,
// counting adjacent transpositions as a single edit.
func damerauLevenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}

	prev2 := make([]int, lb+1)
	prev := make([]int, lb+1)
	curr := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}

	for i := 1; i <= la; i++ {
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = minInt(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				if t := prev2[j-2] + 1; t < curr[j] {
					curr[j] = t
				}
			}
		}
		prev2, prev, curr = prev, curr, prev2
	}
	return prev[lb]
}

func minInt(values ...int) int {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
