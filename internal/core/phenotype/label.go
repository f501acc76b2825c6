package phenotype

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/agenthands/clutch/internal/core/allele"
	"github.com/agenthands/clutch/internal/core/model"
)

// Tier orders phenotype tokens; lower tiers sort first and win dedup.
// Values are scaled by ten so the possible-het tier fits between 3 and 4.
type Tier int

const (
	TierSuper       Tier = 0
	TierIncomplete  Tier = 10
	TierRecessive   Tier = 20
	TierDominant    Tier = 30
	TierPossibleHet Tier = 35
	TierHet         Tier = 40
	TierPolygenic   Tier = 60
)

type Token struct {
	Label string
	Tier  Tier
	Gene  string
}

// Tokens labels a genotype against the catalog. Genes are read in catalog
// order; keys missing from the catalog are ignored. The result is deduplicated
// by label and sorted.
func Tokens(g model.Genotype, genes []model.GeneDefinition) []Token {
	return mergeTokens(geneTokens(g, genes))
}

// geneTokens returns one token per labeled gene, in catalog order, before
// labels shared by several genes are merged.
func geneTokens(g model.Genotype, genes []model.GeneDefinition) []Token {
	var tokens []Token
	for _, gene := range genes {
		if tok, ok := geneToken(gene, g.Get(gene.Key)); ok {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// mergeTokens keeps one token per label, the lowest tier winning, and sorts.
func mergeTokens(in []Token) []Token {
	var tokens []Token
	seen := make(map[string]int)

	for _, tok := range in {
		if at, dup := seen[tok.Label]; dup {
			if tok.Tier < tokens[at].Tier {
				tokens[at] = tok
			}
			continue
		}
		seen[tok.Label] = len(tokens)
		tokens = append(tokens, tok)
	}

	sortTokens(tokens)
	return tokens
}

// Label returns the display strings of Tokens.
func Label(g model.Genotype, genes []model.GeneDefinition) []string {
	tokens := Tokens(g, genes)
	labels := make([]string, len(tokens))
	for i, t := range tokens {
		labels[i] = t.Label
	}
	return labels
}

func geneToken(gene model.GeneDefinition, e model.Entry) (Token, bool) {
	tok := Token{Gene: gene.Key}

	switch gene.Mode {
	case model.IncompleteDominant:
		switch e.State {
		case model.Super:
			tok.Label, tok.Tier = gene.SuperName(), TierSuper
		case model.Expressed:
			tok.Label, tok.Tier = gene.Name, TierIncomplete
		default:
			return tok, false
		}
	case model.Recessive:
		if e.State == model.Expressed {
			tok.Label, tok.Tier = gene.Name, TierRecessive
			break
		}
		if frac, ok := allele.PosHetFraction(e); ok {
			pct := NormalizePercent(frac * 100)
			if pct == 0 {
				return tok, false
			}
			tok.Label, tok.Tier = fmt.Sprintf("%d%% Het %s", pct, gene.Name), TierPossibleHet
			break
		}
		if e.State != model.Het {
			return tok, false
		}
		tok.Label, tok.Tier = "Het "+gene.Name, TierHet
	case model.Dominant:
		if e.State != model.Expressed {
			return tok, false
		}
		tok.Label, tok.Tier = gene.Name, TierDominant
	case model.Polygenic:
		if e.State != model.Expressed || !gene.IsVisible() {
			return tok, false
		}
		tok.Label, tok.Tier = LineLabel(gene.Name), TierPolygenic
	default:
		return tok, false
	}

	return tok, true
}

// LineLabel names a polygenic trait as a line, e.g. "Hypo" -> "Hypo Line".
func LineLabel(name string) string {
	if strings.HasSuffix(strings.ToLower(name), "line") {
		return name
	}
	return name + " Line"
}

func sortTokens(tokens []Token) {
	// A Collator keeps internal buffers, so each call gets its own.
	c := collate.New(language.English)
	sort.SliceStable(tokens, func(i, j int) bool {
		if tokens[i].Tier != tokens[j].Tier {
			return tokens[i].Tier < tokens[j].Tier
		}
		if cmp := c.CompareString(tokens[i].Label, tokens[j].Label); cmp != 0 {
			return cmp < 0
		}
		return tokens[i].Label < tokens[j].Label
	})
}
