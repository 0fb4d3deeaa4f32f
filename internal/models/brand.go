package models

// BrandDecision classifies the outcome of brand matching.
type BrandDecision int

const (
	// BrandNone means no catalog brand came close enough to matter.
	BrandNone BrandDecision = iota
	// BrandExact means the host is the brand's own canonical domain.
	BrandExact
	// BrandLookalike means the host imitates a brand it does not own.
	BrandLookalike
)

// String returns the wire representation of the decision.
func (d BrandDecision) String() string {
	switch d {
	case BrandExact:
		return "exact"
	case BrandLookalike:
		return "lookalike"
	default:
		return "none"
	}
}

// MatchField records which part of the URL matched a brand.
type MatchField int

const (
	MatchFieldHost MatchField = iota
	MatchFieldPath
)

// String returns a short name for the matched field.
func (f MatchField) String() string {
	if f == MatchFieldPath {
		return "path"
	}
	return "host"
}

// BrandMatch is the result of comparing a URL against the brand catalog.
type BrandMatch struct {
	Brand      string        `json:"brand"`
	Domain     string        `json:"domain"`
	Similarity float64       `json:"similarity"`
	Distance   int           `json:"distance"`
	Field      MatchField    `json:"field"`
	Decision   BrandDecision `json:"decision"`
}
