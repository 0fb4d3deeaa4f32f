// Package normalizer turns a raw decoded QR payload into the immutable
// NormalizedURL value every other pipeline component consumes.
package normalizer

import (
	"net"
	"net/url"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/net/idna"
	"golang.org/x/text/unicode/norm"

	"github.com/mehrguard/qrguard/internal/models"
)

var (
	schemeRegex  = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*:`)
	percentRegex = regexp.MustCompile(`%[0-9a-fA-F]{2}`)
)

// nonURLSchemes maps recognized non-web schemes to their payload kind.
// These payloads skip host-based analysis entirely.
var nonURLSchemes = map[string]models.PayloadKind{
	"tel":    models.PayloadPhone,
	"sms":    models.PayloadSMS,
	"smsto":  models.PayloadSMS,
	"mailto": models.PayloadEmail,
	"wifi":   models.PayloadWifi,
	"geo":    models.PayloadGeo,
	"mecard": models.PayloadContact,
}

// Normalizer parses raw payloads. It is stateless and safe for concurrent
// use.
type Normalizer struct {
	logger zerolog.Logger
}

// NewNormalizer creates a Normalizer with a module-scoped logger.
func NewNormalizer(logger zerolog.Logger) *Normalizer {
	return &Normalizer{
		logger: logger.With().Str("module", "Normalizer").Logger(),
	}
}

// Normalize parses a raw payload into a NormalizedURL in a single step.
// Parse failures return an error wrapping models.ErrUnparsableInput; the
// function never returns a partially populated value.
func (n *Normalizer) Normalize(raw string) (*models.NormalizedURL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, models.NewURLParseError(raw, "payload is empty or only whitespace")
	}

	if kind, opaque, ok := classifyNonURL(trimmed); ok {
		return &models.NormalizedURL{Raw: raw, Kind: kind, Scheme: schemeOf(trimmed), Opaque: opaque}, nil
	}

	candidate := trimmed
	if !schemeRegex.MatchString(candidate) {
		if !looksLikeBareDomain(candidate) {
			// Free text without URL structure: nothing to analyze.
			return &models.NormalizedURL{Raw: raw, Kind: models.PayloadText, Opaque: trimmed}, nil
		}
		candidate = "http://" + candidate
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return nil, models.NewURLParseError(raw, "could not parse URL: "+err.Error())
	}

	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		// Unknown or scripty scheme (data:, javascript:, ...). Keep it on the
		// URL path so the heuristic engine can flag it, but without a host.
		return &models.NormalizedURL{
			Raw:    raw,
			Kind:   models.PayloadURL,
			Scheme: scheme,
			Opaque: parsed.Opaque,
		}, nil
	}
	if parsed.Host == "" {
		return nil, models.NewURLParseError(raw, "URL lacks a hostname")
	}

	host := strings.ToLower(parsed.Hostname())
	host = strings.TrimSuffix(host, ".")
	if host == "" {
		return nil, models.NewURLParseError(raw, "URL lacks a hostname")
	}

	displayHost, isPunycode := decodeHost(host)

	u := &models.NormalizedURL{
		Raw:             raw,
		Kind:            models.PayloadURL,
		Scheme:          scheme,
		Host:            host,
		DisplayHost:     displayHost,
		Port:            parsed.Port(),
		Path:            parsed.EscapedPath(),
		Query:           parseQuery(parsed.RawQuery),
		Fragment:        parsed.Fragment,
		IsIPHost:        isIPLiteral(host),
		HasUserInfo:     parsed.User != nil,
		HasEncodedChars: percentRegex.MatchString(trimmed),
		DoubleEncoded:   isDoubleEncoded(trimmed),
		IsPunycode:      isPunycode,
	}
	return u, nil
}

// classifyNonURL recognizes the non-web payload kinds (tel:, WIFI:, vCard...)
// and returns the scheme-specific remainder.
func classifyNonURL(payload string) (models.PayloadKind, string, bool) {
	upper := strings.ToUpper(payload)
	if strings.HasPrefix(upper, "BEGIN:VCARD") {
		return models.PayloadContact, payload, true
	}

	idx := strings.Index(payload, ":")
	if idx <= 0 {
		return 0, "", false
	}
	scheme := strings.ToLower(payload[:idx])
	if kind, ok := nonURLSchemes[scheme]; ok {
		return kind, payload[idx+1:], true
	}
	return 0, "", false
}

func schemeOf(payload string) string {
	if idx := strings.Index(payload, ":"); idx > 0 {
		return strings.ToLower(payload[:idx])
	}
	return ""
}

// looksLikeBareDomain reports whether a scheme-less payload is plausibly a
// host (example.com, 192.168.0.1/admin) rather than free text.
func looksLikeBareDomain(s string) bool {
	if strings.ContainsAny(s, " \t\n") {
		return false
	}
	firstSegment := s
	if idx := strings.IndexAny(s, "/?#"); idx != -1 {
		firstSegment = s[:idx]
	}
	return strings.Contains(firstSegment, ".")
}

// decodeHost converts xn-- labels to their Unicode form for homograph
// comparison. The ASCII form is kept for exact matching.
func decodeHost(host string) (string, bool) {
	if !strings.Contains(host, "xn--") {
		return norm.NFKC.String(host), false
	}
	decoded, err := idna.Lookup.ToUnicode(host)
	if err != nil || decoded == "" {
		// Invalid punycode stays as-is; the punycode prefix alone is already
		// a heuristic signal.
		return host, true
	}
	return norm.NFKC.String(decoded), true
}

// isIPLiteral reports whether host is an IPv4 or IPv6 literal.
func isIPLiteral(host string) bool {
	h := host
	if len(h) >= 2 && h[0] == '[' && h[len(h)-1] == ']' {
		h = h[1 : len(h)-1]
	}
	return net.ParseIP(h) != nil
}

// isDoubleEncoded reports whether one round of percent-decoding still leaves
// percent-encoded sequences, e.g. %2561 -> %61. Double encoding is flagged,
// never silently resolved.
func isDoubleEncoded(s string) bool {
	if !percentRegex.MatchString(s) {
		return false
	}
	decoded, err := url.QueryUnescape(s)
	if err != nil {
		return false
	}
	return decoded != s && percentRegex.MatchString(decoded)
}

// parseQuery splits a raw query string into ordered key/value pairs. The
// standard library's url.Values loses ordering, which the deterministic
// pipeline needs.
func parseQuery(rawQuery string) []models.QueryParam {
	if rawQuery == "" {
		return nil
	}
	pairs := strings.Split(rawQuery, "&")
	params := make([]models.QueryParam, 0, len(pairs))
	for _, pair := range pairs {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		decodedKey, err := url.QueryUnescape(key)
		if err != nil {
			decodedKey = key
		}
		decodedValue, err := url.QueryUnescape(value)
		if err != nil {
			decodedValue = value
		}
		params = append(params, models.QueryParam{Key: decodedKey, Value: decodedValue})
	}
	return params
}
