package model

// ExtractedGene is one gene pick returned by the LLM genotype extractor.
type ExtractedGene struct {
	Key    string   `json:"key"`
	State  Zygosity `json:"state"`
	PosHet *float64 `json:"pos_het,omitempty"`
}

type ExtractedGenotype struct {
	Genes      []ExtractedGene `json:"genes"`
	Unresolved []string        `json:"unresolved,omitempty"`
}
