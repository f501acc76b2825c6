package validate

import (
	"fmt"
	"sort"

	"github.com/agenthands/clutch/internal/core/model"
)

// Conflict is a pair of genes whose homozygous forms are mutually exclusive
// yet both present in one genotype.
type Conflict struct {
	Parent string `json:"parent,omitempty"`
	GeneA  string `json:"gene_a"`
	GeneB  string `json:"gene_b"`
}

func (c Conflict) Error() string {
	if c.Parent == "" {
		return fmt.Sprintf("%s and %s homozygous forms are incompatible", c.GeneA, c.GeneB)
	}
	return fmt.Sprintf("parent %s: %s and %s homozygous forms are incompatible", c.Parent, c.GeneA, c.GeneB)
}

// Homozygous reports whether a state is the gene's homozygous form: super for
// incomplete dominants, expressed for recessives.
func Homozygous(gene model.GeneDefinition, z model.Zygosity) bool {
	switch gene.Mode {
	case model.IncompleteDominant:
		return z == model.Super
	case model.Recessive:
		return z == model.Expressed
	}
	return false
}

// Genotype lists incompatible homozygous pairs in one genotype. The relation
// is symmetric: either gene naming the other is enough. Pairs are reported
// once, ordered by catalog position.
func Genotype(genes []model.GeneDefinition, g model.Genotype) []Conflict {
	pos := make(map[string]int, len(genes))
	for i, gene := range genes {
		pos[gene.Key] = i
	}

	var conflicts []Conflict
	seen := make(map[[2]int]bool)

	for i, gene := range genes {
		if !Homozygous(gene, g.Get(gene.Key).State) {
			continue
		}
		for _, other := range gene.IncompatibleWith {
			j, ok := pos[other]
			if !ok || j == i || !Homozygous(genes[j], g.Get(other).State) {
				continue
			}
			pair := [2]int{min(i, j), max(i, j)}
			if seen[pair] {
				continue
			}
			seen[pair] = true
			conflicts = append(conflicts, Conflict{GeneA: genes[pair[0]].Key, GeneB: genes[pair[1]].Key})
		}
	}

	sort.SliceStable(conflicts, func(a, b int) bool {
		pa, pb := pos[conflicts[a].GeneA], pos[conflicts[b].GeneA]
		if pa != pb {
			return pa < pb
		}
		return pos[conflicts[a].GeneB] < pos[conflicts[b].GeneB]
	})
	return conflicts
}

// Parents is the pre-flight check run before a pairing: it reports conflicts
// carried by either parent.
func Parents(genes []model.GeneDefinition, a, b model.Genotype) []Conflict {
	var out []Conflict
	for _, c := range Genotype(genes, a) {
		c.Parent = "a"
		out = append(out, c)
	}
	for _, c := range Genotype(genes, b) {
		c.Parent = "b"
		out = append(out, c)
	}
	return out
}

// Flag marks result rows whose genotype carries an incompatible pair. Rows
// are copied; the input is not modified.
func Flag(genes []model.GeneDefinition, rows []model.PairingResult) []model.PairingResult {
	out := make([]model.PairingResult, len(rows))
	for i, r := range rows {
		r.Invalid = len(Genotype(genes, r.Genotype)) > 0
		out[i] = r
	}
	return out
}
