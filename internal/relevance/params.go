package relevance

// MaxNoEvidenceConfidence is the ceiling for answers without accepted evidence.
const MaxNoEvidenceConfidence = 0.1

// Params holds the tunable constants of the relevance check.
type Params struct {
	// NoEvidenceConfidence is assigned to discarded sentinel quotes.
	NoEvidenceConfidence float64 `yaml:"no_evidence_confidence" validate:"gte=0,lte=0.1"`
	// BaseConfidence is the starting confidence of an accepted quote.
	BaseConfidence float64 `yaml:"base_confidence" validate:"gte=0,lte=1"`
	// RatioWeight scales the keyword overlap ratio added to the base.
	RatioWeight float64 `yaml:"ratio_weight" validate:"gte=0"`
	// MaxSingleConfidence caps quotes that match a single keyword.
	MaxSingleConfidence float64 `yaml:"max_single_confidence" validate:"gte=0,lte=1"`
	// MultiMatchBoost is added when two or more distinct keywords match.
	MultiMatchBoost float64 `yaml:"multi_match_boost" validate:"gte=0,lte=1"`
	// Cap is the highest confidence the check ever reports.
	Cap float64 `yaml:"cap" validate:"gte=0,lte=1"`
	// GeneralMinQuoteLength is the quote length at which a quote with no
	// keyword overlap is still accepted for a general concept.
	GeneralMinQuoteLength int `yaml:"general_min_quote_length" validate:"gte=0"`
	// GeneralConfidence is assigned to such quotes.
	GeneralConfidence float64 `yaml:"general_confidence" validate:"gte=0,lte=1"`
	// SentinelPhrases mark quotes that state evidence is absent.
	SentinelPhrases []string `yaml:"sentinel_phrases"`
}

// DefaultSentinelPhrases lists the built-in "no evidence" phrases.
func DefaultSentinelPhrases() []string {
	return []string{
		"no evidence",
		"no relevant evidence",
		"no direct evidence",
		"no directly relevant evidence",
		"no information",
		"no mention",
		"not found",
		"not mentioned",
		"not addressed",
		"not specified",
		"not provided",
		"none found",
		"n/a",
	}
}

// DefaultParams returns the stock confidence curve.
func DefaultParams() Params {
	return Params{
		NoEvidenceConfidence:  0.1,
		BaseConfidence:        0.5,
		RatioWeight:           1.0,
		MaxSingleConfidence:   0.9,
		MultiMatchBoost:       0.15,
		Cap:                   0.95,
		GeneralMinQuoteLength: 50,
		GeneralConfidence:     0.4,
		SentinelPhrases:       DefaultSentinelPhrases(),
	}
}
