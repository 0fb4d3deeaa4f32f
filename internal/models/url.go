package models

// PayloadKind classifies a decoded QR payload. Non-URL kinds skip the
// host-based pipeline entirely.
type PayloadKind int

const (
	PayloadURL PayloadKind = iota
	PayloadPhone
	PayloadSMS
	PayloadEmail
	PayloadWifi
	PayloadGeo
	PayloadContact
	PayloadText
)

// String returns a short name for the payload kind.
func (k PayloadKind) String() string {
	switch k {
	case PayloadURL:
		return "url"
	case PayloadPhone:
		return "phone"
	case PayloadSMS:
		return "sms"
	case PayloadEmail:
		return "email"
	case PayloadWifi:
		return "wifi"
	case PayloadGeo:
		return "geo"
	case PayloadContact:
		return "contact"
	case PayloadText:
		return "text"
	default:
		return "unknown"
	}
}

// QueryParam is one key/value pair from the query string, in original order.
type QueryParam struct {
	Key   string
	Value string
}

// NormalizedURL is the immutable parse result every component consumes.
// It is constructed in a single step by the normalizer and never mutated.
type NormalizedURL struct {
	Raw    string
	Kind   PayloadKind
	Scheme string

	// Host is the lowercased host without port or IPv6 brackets. DisplayHost
	// is the punycode-decoded Unicode form used for homograph comparison;
	// identical to Host for pure ASCII hosts.
	Host        string
	DisplayHost string
	Port        string
	Path        string
	Query       []QueryParam
	Fragment    string

	// Opaque carries the scheme-specific remainder for non-URL payloads
	// (phone number, wifi descriptor, ...).
	Opaque string

	IsIPHost        bool
	HasUserInfo     bool
	HasEncodedChars bool
	DoubleEncoded   bool
	IsPunycode      bool
}

// IsWebURL reports whether host-based analysis applies to this payload.
func (u *NormalizedURL) IsWebURL() bool {
	return u.Kind == PayloadURL && u.Host != ""
}
