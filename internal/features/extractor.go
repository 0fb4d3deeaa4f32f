// Package features derives the fixed 15-slot numeric vector the classifier
// consumes. The slots, their order, and the normalization constants mirror
// the training pipeline and must not drift from it.
package features

import (
	"math"
	"slices"
	"strings"

	"github.com/mehrguard/qrguard/internal/heuristics"
	"github.com/mehrguard/qrguard/internal/models"
)

// Normalization caps baked into the schema. Shared with the trainer.
const (
	maxURLLength    = 500.0
	maxHostLength   = 100.0
	maxPathLength   = 200.0
	maxSubdomains   = 5.0
	maxEntropy      = 5.0
	maxQueryParams  = 10.0
	maxDots         = 10.0
	maxDashes       = 10.0
)

// Extractor computes feature vectors. Stateless and safe for concurrent use.
type Extractor struct{}

// NewExtractor creates an Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract builds the feature vector for a structurally valid NormalizedURL.
// It never fails; absent signals map to 0.
func (e *Extractor) Extract(u *models.NormalizedURL) models.FeatureVector {
	var fv models.FeatureVector

	hostWithPort := u.Host
	if u.Port != "" {
		hostWithPort += ":" + u.Port
	}

	fv[models.FeatureURLLength] = capped(float64(len(u.Raw)), maxURLLength)
	fv[models.FeatureHostLength] = capped(float64(len(hostWithPort)), maxHostLength)
	fv[models.FeaturePathLength] = capped(float64(len(u.Path)), maxPathLength)
	fv[models.FeatureSubdomainCount] = capped(subdomainCount(u), maxSubdomains)
	fv[models.FeatureHasHTTPS] = boolFeature(u.Scheme == "https")
	fv[models.FeatureIPHost] = boolFeature(u.IsIPHost)
	fv[models.FeatureHostEntropy] = capped(shannonEntropy(hostWithPort), maxEntropy)
	fv[models.FeaturePathEntropy] = capped(shannonEntropy(u.Path), maxEntropy)
	fv[models.FeatureQueryParamCount] = capped(float64(len(u.Query)), maxQueryParams)
	fv[models.FeatureHasAtSign] = boolFeature(strings.Contains(u.Raw, "@"))
	fv[models.FeatureDotCount] = capped(float64(strings.Count(u.Raw, ".")), maxDots)
	fv[models.FeatureDashCount] = capped(float64(strings.Count(u.Raw, "-")), maxDashes)
	fv[models.FeatureHasPort] = boolFeature(u.Port != "")
	fv[models.FeatureShortenerHost] = boolFeature(heuristics.HostContainsShortener(u.Host))
	fv[models.FeatureSuspiciousTLD] = boolFeature(heuristics.IsSuspiciousTLD(tldOf(u)))

	return fv
}

func capped(value, max float64) float64 {
	v := value / max
	if v > 1.0 {
		return 1.0
	}
	return v
}

func boolFeature(b bool) float64 {
	if b {
		return 1.0
	}
	return 0.0
}

// subdomainCount counts labels beyond the registrable pair, matching the
// trainer's dots-minus-one rule.
func subdomainCount(u *models.NormalizedURL) float64 {
	if u.Host == "" || u.IsIPHost {
		return 0
	}
	n := strings.Count(u.Host, ".") - 1
	if n < 0 {
		n = 0
	}
	return float64(n)
}

// shannonEntropy computes character entropy in bits. Counts are summed in
// sorted rune order so the floating-point accumulation is reproducible.
func shannonEntropy(s string) float64 {
	if s == "" {
		return 0
	}
	freq := make(map[rune]int)
	total := 0
	for _, r := range s {
		freq[r]++
		total++
	}
	runes := make([]rune, 0, len(freq))
	for r := range freq {
		runes = append(runes, r)
	}
	slices.Sort(runes)

	entropy := 0.0
	for _, r := range runes {
		p := float64(freq[r]) / float64(total)
		entropy -= p * math.Log2(p)
	}
	return entropy
}

func tldOf(u *models.NormalizedURL) string {
	if u.Host == "" || u.IsIPHost {
		return ""
	}
	idx := strings.LastIndex(u.Host, ".")
	if idx == -1 {
		return ""
	}
	return u.Host[idx+1:]
}
