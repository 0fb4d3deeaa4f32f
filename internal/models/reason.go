package models

import "fmt"

// ReasonCode is a stable identifier for one triggered risk indicator.
// Codes are part of the external contract and must never be renamed.
type ReasonCode string

const (
	ReasonIPLiteralHost         ReasonCode = "IP_LITERAL_HOST"
	ReasonUserInfoInURL         ReasonCode = "USERINFO_IN_URL"
	ReasonEncodedCredentials    ReasonCode = "ENCODED_CREDENTIALS"
	ReasonSuspiciousPort        ReasonCode = "SUSPICIOUS_PORT"
	ReasonExcessiveSubdomains   ReasonCode = "EXCESSIVE_SUBDOMAINS"
	ReasonHyphenatedHost        ReasonCode = "HYPHEN_HEAVY_HOST"
	ReasonDigitHeavyHost        ReasonCode = "DIGIT_HEAVY_HOST"
	ReasonLongHost              ReasonCode = "LONG_HOST"
	ReasonPunycodeHost          ReasonCode = "PUNYCODE_HOST"
	ReasonMixedScriptHost       ReasonCode = "MIXED_SCRIPT_HOST"
	ReasonSuspiciousTLD         ReasonCode = "SUSPICIOUS_TLD"
	ReasonUncommonTLD           ReasonCode = "UNCOMMON_TLD"
	ReasonURLShortener          ReasonCode = "URL_SHORTENER"
	ReasonExcessiveURLLength    ReasonCode = "EXCESSIVE_URL_LENGTH"
	ReasonLongPath              ReasonCode = "LONG_PATH"
	ReasonDeepPath              ReasonCode = "DEEP_PATH"
	ReasonSuspiciousPathKeyword ReasonCode = "SUSPICIOUS_PATH_KEYWORD"
	ReasonBrandKeywordHost      ReasonCode = "BRAND_KEYWORD_HOST"
	ReasonAtSignConfusion       ReasonCode = "AT_SIGN_CONFUSION"
	ReasonDoubleEncoding        ReasonCode = "DOUBLE_ENCODING"
	ReasonEncodedControlChars   ReasonCode = "ENCODED_CONTROL_CHARS"
	ReasonExcessiveQueryParams  ReasonCode = "EXCESSIVE_QUERY_PARAMS"
	ReasonEmbeddedURLInQuery    ReasonCode = "EMBEDDED_URL_IN_QUERY"
	ReasonScriptScheme          ReasonCode = "SCRIPT_SCHEME"
	ReasonInsecureTransport     ReasonCode = "INSECURE_TRANSPORT"

	ReasonHomographDomain      ReasonCode = "HOMOGRAPH_DOMAIN"
	ReasonRedirectChainCycle   ReasonCode = "REDIRECT_CHAIN_CYCLE"
	ReasonRedirectChainTooLong ReasonCode = "REDIRECT_CHAIN_TOO_LONG"
	ReasonRedirectIndirection  ReasonCode = "REDIRECT_INDIRECTION"
	ReasonModelHighConfidence  ReasonCode = "MODEL_HIGH_CONFIDENCE"
	ReasonPremiumRateNumber    ReasonCode = "PREMIUM_RATE_NUMBER"
	ReasonOpenWifiNetwork      ReasonCode = "OPEN_WIFI_NETWORK"
)

// Reason is one triggered risk indicator with its fixed severity weight and
// a human-readable message.
type Reason struct {
	Code    ReasonCode `json:"code"`
	Weight  int        `json:"weight"`
	Message string     `json:"message"`
}

// reasonEntry holds the fixed weight and message template for a code.
type reasonEntry struct {
	weight  int
	message string
}

// reasonCatalog maps every known code to its fixed weight and message.
// Weights are constants, never derived at runtime, so the same input always
// yields the same reasons.
var reasonCatalog = map[ReasonCode]reasonEntry{
	ReasonIPLiteralHost:         {25, "The link points to a raw IP address instead of a domain name"},
	ReasonUserInfoInURL:         {30, "The link embeds a username or password before the host"},
	ReasonEncodedCredentials:    {35, "The link hides credentials behind percent-encoding"},
	ReasonSuspiciousPort:        {15, "The link uses an unusual network port"},
	ReasonExcessiveSubdomains:   {15, "The host has an unusually deep subdomain chain"},
	ReasonHyphenatedHost:        {10, "The host contains many hyphens, common in fake domains"},
	ReasonDigitHeavyHost:        {10, "The host contains an unusual amount of digits"},
	ReasonLongHost:              {10, "The host name is unusually long"},
	ReasonPunycodeHost:          {20, "The host uses punycode, which can disguise foreign characters"},
	ReasonMixedScriptHost:       {35, "The host mixes characters from different alphabets"},
	ReasonSuspiciousTLD:         {20, "The domain ending is frequently abused for phishing"},
	ReasonUncommonTLD:           {8, "The domain ending is uncommon"},
	ReasonURLShortener:          {15, "The link goes through a URL shortening service"},
	ReasonExcessiveURLLength:    {10, "The link is unusually long"},
	ReasonLongPath:              {8, "The link path is unusually long"},
	ReasonDeepPath:              {8, "The link path is unusually deep"},
	ReasonSuspiciousPathKeyword: {15, "The link path contains wording typical of phishing pages"},
	ReasonBrandKeywordHost:      {25, "The host name includes a well-known brand it does not belong to"},
	ReasonAtSignConfusion:       {20, "An @ sign makes the real destination ambiguous"},
	ReasonDoubleEncoding:        {20, "The link is encoded twice, a common obfuscation trick"},
	ReasonEncodedControlChars:   {25, "The link contains encoded control characters"},
	ReasonExcessiveQueryParams:  {8, "The link carries an unusual number of parameters"},
	ReasonEmbeddedURLInQuery:    {15, "The link carries another web address inside its parameters"},
	ReasonScriptScheme:          {40, "The payload uses a script or data scheme instead of a web address"},
	ReasonInsecureTransport:     {8, "The link uses unencrypted HTTP"},

	ReasonHomographDomain:      {45, "The domain closely imitates a well-known brand"},
	ReasonRedirectChainCycle:   {25, "The link redirects in a loop"},
	ReasonRedirectChainTooLong: {20, "The link passes through too many redirects"},
	ReasonRedirectIndirection:  {10, "The link forwards to another destination"},
	ReasonModelHighConfidence:  {20, "Statistical analysis rates this link as likely phishing"},
	ReasonPremiumRateNumber:    {30, "The phone number looks like a premium-rate service"},
	ReasonOpenWifiNetwork:      {10, "The Wi-Fi network has no encryption"},
}

// NewReason builds the Reason for a code from the fixed catalog.
// Unknown codes are a programming error.
func NewReason(code ReasonCode) Reason {
	entry, ok := reasonCatalog[code]
	if !ok {
		panic(fmt.Sprintf("models: unknown reason code %q", code))
	}
	return Reason{Code: code, Weight: entry.weight, Message: entry.message}
}

// ReasonWeight returns the fixed weight for a code, or 0 for unknown codes.
func ReasonWeight(code ReasonCode) int {
	return reasonCatalog[code].weight
}
