package parse

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/agenthands/clutch/internal/config"
	"github.com/agenthands/clutch/internal/core/common"
	"github.com/agenthands/clutch/internal/core/model"
	"github.com/agenthands/clutch/internal/llm"
)

// Parser turns free-text genotype picks such as "66% het clown, super pastel"
// into a Genotype. Phrases the grammar cannot place are handed to the LLM
// when one is configured.
type Parser struct {
	LLM     llm.LLMClient
	Prompts config.ParsePrompts
}

func NewParser(llmClient llm.LLMClient, prompts config.ParsePrompts) *Parser {
	return &Parser{
		LLM:     llmClient,
		Prompts: prompts,
	}
}

type Parsed struct {
	Genotype   model.Genotype `json:"genotype"`
	Unresolved []string       `json:"unresolved,omitempty"`
	UsedLLM    bool           `json:"used_llm,omitempty"`
}

var (
	separators = strings.NewReplacer(",", " ", ";", " ", "+", " ", "/", " ", "_", " ", "\n", " ", "\t", " ")
	percentRe  = regexp.MustCompile(`^(\d+(?:\.\d+)?)%$`)
)

type modifier int

const (
	modNone modifier = iota
	modSuper
	modHet
)

// Parse never loses the deterministic result: when the LLM call fails the
// returned Parsed still holds every phrase the grammar resolved, and the
// error describes the failed fallback.
func (p *Parser) Parse(ctx context.Context, text string, genes []model.GeneDefinition) (Parsed, error) {
	parsed := Grammar(text, genes)
	if len(parsed.Unresolved) == 0 || p == nil || p.LLM == nil || p.Prompts.Genotype == "" {
		return parsed, nil
	}

	var catalogList string
	for _, g := range genes {
		catalogList += fmt.Sprintf("- key: %s, name: %s, inheritance: %s\n", g.Key, g.Name, g.Mode)
	}

	prompt := fmt.Sprintf(p.Prompts.Genotype, catalogList, strings.Join(parsed.Unresolved, ", "))
	response, err := p.LLM.Generate(ctx, prompt)
	if err != nil {
		return parsed, fmt.Errorf("failed to generate genotype picks: %w", err)
	}

	result, err := common.ParseJSON[model.ExtractedGenotype](response)
	if err != nil {
		return parsed, fmt.Errorf("failed to extract genotype picks: %w", err)
	}

	known := make(map[string]bool, len(genes))
	for _, g := range genes {
		known[g.Key] = true
	}
	for _, eg := range result.Genes {
		if !known[eg.Key] {
			continue
		}
		// Grammar matches win over the model's guesses.
		if _, ok := parsed.Genotype[eg.Key]; ok {
			continue
		}
		parsed.Genotype[eg.Key] = model.Entry{State: eg.State, PosHet: eg.PosHet}
	}
	parsed.Unresolved = result.Unresolved
	parsed.UsedLLM = true

	return parsed, nil
}

// Grammar resolves text against gene names and keys without any model. It
// understands "super X", "het X", "NN% het X", "pos het X" (50%) and a bare
// "X" for the visual form. Multi-word names match longest first.
func Grammar(text string, genes []model.GeneDefinition) Parsed {
	words := strings.Fields(strings.ToLower(separators.Replace(text)))
	names, maxWords := nameIndex(genes)

	parsed := Parsed{Genotype: model.Genotype{}}
	var pending []string
	flush := func() {
		if len(pending) > 0 {
			parsed.Unresolved = append(parsed.Unresolved, strings.Join(pending, " "))
			pending = nil
		}
	}

	mod := modNone
	var pct *float64
	var modWords []string

	for i := 0; i < len(words); {
		w := words[i]

		// A multi-word name may start with a modifier word ("Super Stripe").
		gene, n := match(words[i:], names, maxWords)
		if n > 1 || (n == 1 && !isModifier(w)) {
			flush()
			parsed.Genotype[gene.Key] = entryFor(gene, mod, pct)
			mod, pct, modWords = modNone, nil, nil
			i += n
			continue
		}

		switch {
		case w == "super":
			mod = modSuper
		case w == "het":
			mod = modHet
		case w == "pos" || w == "possible" || w == "ph":
			v := 50.0
			pct = &v
			if w == "ph" {
				mod = modHet
			}
		case w == "visual":
		case percentRe.MatchString(w):
			v, _ := strconv.ParseFloat(strings.TrimSuffix(w, "%"), 64)
			pct = &v
		default:
			pending = append(pending, modWords...)
			pending = append(pending, w)
			mod, pct, modWords = modNone, nil, nil
			i++
			continue
		}
		modWords = append(modWords, w)
		i++
	}

	pending = append(pending, modWords...)
	flush()
	return parsed
}

func isModifier(w string) bool {
	switch w {
	case "super", "het", "pos", "possible", "ph", "visual":
		return true
	}
	return percentRe.MatchString(w)
}

func entryFor(gene model.GeneDefinition, mod modifier, pct *float64) model.Entry {
	if gene.Mode == model.Recessive && pct != nil && mod != modSuper {
		return model.PossibleHet(model.Het, *pct)
	}

	switch mod {
	case modSuper:
		if gene.Mode == model.IncompleteDominant {
			return model.State(model.Super)
		}
		return model.State(model.Expressed)
	case modHet:
		if gene.Mode == model.Recessive {
			return model.State(model.Het)
		}
		return model.State(model.Expressed)
	}
	return model.State(model.Expressed)
}

func normalizeName(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.ReplaceAll(s, "_", " "))), " ")
}

func nameIndex(genes []model.GeneDefinition) (map[string]model.GeneDefinition, int) {
	names := make(map[string]model.GeneDefinition, 2*len(genes))
	maxWords := 1
	add := func(s string, g model.GeneDefinition) {
		n := normalizeName(s)
		if n == "" {
			return
		}
		if _, taken := names[n]; !taken {
			names[n] = g
		}
		if c := len(strings.Fields(n)); c > maxWords {
			maxWords = c
		}
	}
	for _, g := range genes {
		add(g.Name, g)
	}
	for _, g := range genes {
		add(g.Key, g)
	}
	return names, maxWords
}

func match(words []string, names map[string]model.GeneDefinition, maxWords int) (model.GeneDefinition, int) {
	for n := min(maxWords, len(words)); n > 0; n-- {
		if g, ok := names[strings.Join(words[:n], " ")]; ok {
			return g, n
		}
	}
	return model.GeneDefinition{}, 0
}
