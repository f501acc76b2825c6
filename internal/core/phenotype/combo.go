package phenotype

import (
	"strings"

	"github.com/agenthands/clutch/internal/core/model"
)

// ApplyCombos names gene combinations on already computed rows using an
// ordered alias table. Aliases are tried in order and a gene can belong to at
// most one combo per row. Each returned row carries the matched combo names
// and DisplayTokens: the combos followed by the tokens of the remaining genes.
// The input rows are not modified.
func ApplyCombos(rows []model.PairingResult, genes []model.GeneDefinition, aliases []model.ComboAlias) []model.PairingResult {
	out := make([]model.PairingResult, len(rows))

	for i, row := range rows {
		consumed := make(map[string]bool)
		var combos []string

		for _, alias := range aliases {
			keys, ok := matchAlias(alias, row.Genotype, genes, consumed)
			if !ok {
				continue
			}
			for _, k := range keys {
				consumed[k] = true
			}
			combos = append(combos, alias.Name)
		}

		// Consumed genes are dropped before labels merge, so a label another
		// gene still carries survives.
		var rest []Token
		for _, tok := range geneTokens(row.Genotype, genes) {
			if !consumed[tok.Gene] {
				rest = append(rest, tok)
			}
		}
		display := append([]string(nil), combos...)
		for _, tok := range mergeTokens(rest) {
			display = append(display, tok.Label)
		}

		row.Combos = combos
		row.DisplayTokens = display
		out[i] = row
	}

	return out
}

func matchAlias(alias model.ComboAlias, g model.Genotype, genes []model.GeneDefinition, consumed map[string]bool) ([]string, bool) {
	if len(alias.Requires) == 0 {
		return nil, false
	}

	keys := make([]string, 0, len(alias.Requires))
	for _, req := range alias.Requires {
		key, state, exact := strings.Cut(req, ":")
		if consumed[key] {
			return nil, false
		}

		gene, known := lookup(genes, key)
		if !known {
			return nil, false
		}
		got := g.Get(key).State

		if exact {
			if got != model.Zygosity(state) {
				return nil, false
			}
		} else if !isVisual(gene, got) {
			return nil, false
		}
		keys = append(keys, key)
	}
	return keys, true
}

// isVisual reports whether a state shows on the animal, as opposed to a
// hidden het or a normal.
func isVisual(gene model.GeneDefinition, z model.Zygosity) bool {
	switch gene.Mode {
	case model.IncompleteDominant:
		return z == model.Expressed || z == model.Super
	case model.Recessive, model.Dominant:
		return z == model.Expressed
	case model.Polygenic:
		return z == model.Expressed && gene.IsVisible()
	}
	return false
}

func lookup(genes []model.GeneDefinition, key string) (model.GeneDefinition, bool) {
	for _, g := range genes {
		if g.Key == key {
			return g, true
		}
	}
	return model.GeneDefinition{}, false
}
