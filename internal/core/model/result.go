package model

// PairingResult is one row of an offspring distribution.
type PairingResult struct {
	Key             string   `json:"key"` // joint-state key
	Probability     float64  `json:"probability"`
	Genotype        Genotype `json:"genotype"`
	PhenotypeTokens []string `json:"phenotype_tokens"`
	Summary         string   `json:"summary"`

	// Filled by the consumer layer, never by the engine.
	Combos        []string `json:"combos,omitempty"`
	DisplayTokens []string `json:"display_tokens,omitempty"`
	Invalid       bool     `json:"invalid,omitempty"`
}

// Ranked is an ordered, optionally truncated distribution. Remainder is the
// probability mass of the rows left out of Top.
type Ranked struct {
	Top       []PairingResult `json:"top"`
	Remainder float64         `json:"remainder"`
}
