package heuristics

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/mehrguard/qrguard/internal/models"
)

var (
	encodedUserInfoRegex = regexp.MustCompile(`://[^/@?#]*%[0-9a-fA-F]{2}[^/@?#]*@`)
	encodedControlRegex  = regexp.MustCompile(`(?i)%(0[0-9a-f]|1[0-9a-f]|7f)`)
)

// expectedPorts are ports that carry no signal for http(s) URLs.
var expectedPorts = map[string]bool{
	"": true, "80": true, "443": true, "8080": true, "8443": true,
}

func checkScriptScheme(u *models.NormalizedURL) bool {
	return u.Kind == models.PayloadURL && u.Scheme != "http" && u.Scheme != "https"
}

func checkIPLiteralHost(u *models.NormalizedURL) bool {
	return u.IsIPHost
}

func checkUserInfo(u *models.NormalizedURL) bool {
	return u.HasUserInfo
}

func checkEncodedCredentials(u *models.NormalizedURL) bool {
	return u.HasUserInfo && encodedUserInfoRegex.MatchString(u.Raw)
}

func checkAtSignConfusion(u *models.NormalizedURL) bool {
	// An @ outside the userinfo position still confuses readers about the
	// real destination.
	return !u.HasUserInfo && strings.Contains(u.Raw, "@")
}

func checkSuspiciousPort(u *models.NormalizedURL) bool {
	return u.Host != "" && !expectedPorts[u.Port]
}

func checkExcessiveSubdomains(u *models.NormalizedURL) bool {
	if u.Host == "" || u.IsIPHost {
		return false
	}
	return strings.Count(u.Host, ".") >= 4
}

func checkHyphenatedHost(u *models.NormalizedURL) bool {
	return strings.Count(u.Host, "-") >= 3
}

func checkDigitHeavyHost(u *models.NormalizedURL) bool {
	if u.Host == "" || u.IsIPHost || len(u.Host) < 8 {
		return false
	}
	digits := 0
	for _, r := range u.Host {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return float64(digits)/float64(len(u.Host)) > 0.3
}

func checkLongHost(u *models.NormalizedURL) bool {
	return len(u.Host) > 40
}

func checkPunycodeHost(u *models.NormalizedURL) bool {
	return u.IsPunycode
}

func checkMixedScriptHost(u *models.NormalizedURL) bool {
	if u.DisplayHost == "" {
		return false
	}
	hasASCII, hasOther := false, false
	for _, r := range u.DisplayHost {
		switch {
		case r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z':
			hasASCII = true
		case r > unicode.MaxASCII && unicode.IsLetter(r):
			hasOther = true
		}
	}
	return hasASCII && hasOther
}

func checkSuspiciousTLD(u *models.NormalizedURL) bool {
	return IsSuspiciousTLD(tldOf(u))
}

func checkUncommonTLD(u *models.NormalizedURL) bool {
	tld := tldOf(u)
	return tld != "" && !commonTLDs[tld] && !suspiciousTLDs[tld]
}

func checkURLShortener(u *models.NormalizedURL) bool {
	return IsShortenerHost(u.Host)
}

func checkExcessiveURLLength(u *models.NormalizedURL) bool {
	return len(u.Raw) > 120
}

func checkLongPath(u *models.NormalizedURL) bool {
	return len(u.Path) > 60
}

func checkDeepPath(u *models.NormalizedURL) bool {
	return len(pathSegments(u.Path)) > 5
}

func checkSuspiciousPathKeyword(u *models.NormalizedURL) bool {
	haystack := strings.ToLower(u.Path)
	for _, qp := range u.Query {
		haystack += "/" + strings.ToLower(qp.Key)
	}
	for _, kw := range suspiciousPathKeywords {
		if strings.Contains(haystack, kw) {
			return true
		}
	}
	return false
}

func checkBrandKeywordHost(u *models.NormalizedURL) bool {
	if u.Host == "" || u.IsIPHost {
		return false
	}
	secondLevel := secondLevelLabel(u.Host)
	for _, token := range brandTokens {
		if strings.Contains(u.Host, token) && secondLevel != token {
			return true
		}
	}
	return false
}

func checkDoubleEncoding(u *models.NormalizedURL) bool {
	return u.DoubleEncoded
}

func checkEncodedControlChars(u *models.NormalizedURL) bool {
	return encodedControlRegex.MatchString(u.Raw)
}

func checkExcessiveQueryParams(u *models.NormalizedURL) bool {
	return len(u.Query) > 8
}

func checkEmbeddedURLInQuery(u *models.NormalizedURL) bool {
	for _, qp := range u.Query {
		v := strings.ToLower(qp.Value)
		if strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") {
			return true
		}
	}
	return false
}

func checkInsecureTransport(u *models.NormalizedURL) bool {
	return u.Scheme == "http" && u.Host != ""
}

// tldOf returns the last label of the host, or "" for IP literals and
// hostless payloads.
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

// secondLevelLabel returns the label left of the TLD ("paypal" for
// paypal.com, "evil" for paypal.com.evil.ga).
func secondLevelLabel(host string) string {
	parts := strings.Split(host, ".")
	if len(parts) < 2 {
		return host
	}
	return parts[len(parts)-2]
}

func pathSegments(path string) []string {
	var segments []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}
