package heuristics

import "strings"

// Fixed lookup data for the heuristic checks. These are shipped constants,
// not runtime-tunable configuration, so results stay reproducible.

// shortenerDomains lists well-known URL shortening services.
var shortenerDomains = map[string]bool{
	"bit.ly":       true,
	"tinyurl.com":  true,
	"t.co":         true,
	"goo.gl":       true,
	"ow.ly":        true,
	"is.gd":        true,
	"buff.ly":      true,
	"rebrand.ly":   true,
	"cutt.ly":      true,
	"shorturl.at":  true,
	"rb.gy":        true,
	"t.ly":         true,
	"tiny.cc":      true,
	"lnkd.in":      true,
	"s.id":         true,
	"qrco.de":      true,
	"bl.ink":       true,
	"short.gy":     true,
	"v.gd":         true,
	"soo.gd":       true,
	"clck.ru":      true,
	"shorte.st":    true,
	"adf.ly":       true,
	"bitly.com":    true,
	"tr.im":        true,
	"u.to":         true,
	"x.co":         true,
	"linktr.ee":    false, // link hub, not a redirector
	"surl.li":      true,
	"gg.gg":        true,
	"shrtco.de":    true,
	"urlshort.io":  true,
	"short.io":     true,
	"zws.im":       true,
	"snip.ly":      true,
	"hyperurl.co":  true,
	"qr-url.tk":    true,
	"redirect.vip": true,
}

// IsShortenerHost reports whether host is a known URL shortener.
func IsShortenerHost(host string) bool {
	return shortenerDomains[host]
}

// HostContainsShortener reports whether any shortener domain appears inside
// host. The classifier's training pipeline used containment rather than exact
// lookup, so the feature extractor must match it.
func HostContainsShortener(host string) bool {
	for domain, isShortener := range shortenerDomains {
		if isShortener && strings.Contains(host, domain) {
			return true
		}
	}
	return false
}

// suspiciousTLDs are domain endings with a documented record of phishing
// abuse (free or near-free registrations).
var suspiciousTLDs = map[string]bool{
	"tk":       true,
	"ml":       true,
	"ga":       true,
	"cf":       true,
	"gq":       true,
	"xyz":      true,
	"icu":      true,
	"top":      true,
	"work":     true,
	"click":    true,
	"link":     true,
	"fit":      true,
	"loan":     true,
	"racing":   true,
	"men":      true,
	"gdn":      true,
	"stream":   true,
	"download": true,
	"zip":      true,
	"mov":      true,
	"rest":     true,
	"cam":      true,
	"monster":  true,
	"quest":    true,
	"cfd":      true,
	"sbs":      true,
}

// IsSuspiciousTLD reports whether tld is in the abused-TLD bucket.
func IsSuspiciousTLD(tld string) bool {
	return suspiciousTLDs[tld]
}

// commonTLDs are endings frequent enough that their absence from this list is
// itself a weak signal.
var commonTLDs = map[string]bool{
	"com": true, "org": true, "net": true, "edu": true, "gov": true,
	"mil": true, "int": true, "io": true, "co": true, "me": true,
	"dev": true, "app": true, "info": true, "biz": true, "tv": true,
	"us": true, "uk": true, "au": true, "nz": true, "ca": true,
	"de": true, "fr": true, "nl": true, "es": true, "it": true,
	"se": true, "no": true, "fi": true, "dk": true, "ch": true,
	"at": true, "be": true, "ie": true, "jp": true, "kr": true,
	"cn": true, "in": true, "br": true, "mx": true, "ru": true,
	"pl": true, "cz": true, "pt": true, "gr": true, "tr": true,
	"za": true, "sg": true, "hk": true, "tw": true, "id": true,
	"my": true, "th": true, "ph": true, "vn": true, "ir": true,
	"eu": true, "ai": true, "sh": true, "ly": true, "gl": true,
}

// suspiciousPathKeywords are wordings typical of credential-phishing pages.
var suspiciousPathKeywords = []string{
	"login", "signin", "sign-in", "logon", "verify", "verification",
	"secure", "security", "account", "update", "confirm", "password",
	"banking", "webscr", "wallet", "recover", "unlock", "invoice",
	"authenticate", "validation",
}

// brandTokens are brand names commonly embedded in deceptive hosts. The full
// curated catalog lives in the brand matcher; this short list only backs the
// independent host-keyword heuristic.
var brandTokens = []string{
	"paypal", "apple", "google", "microsoft", "amazon", "netflix",
	"facebook", "instagram", "whatsapp", "outlook", "office365",
	"commbank", "westpac", "auspost", "dropbox", "linkedin",
}
