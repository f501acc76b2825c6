// Package normalize is the input boundary of the engine. Malformed catalogs
// and parent genotypes are repaired here so the engine never has to fail;
// every repair is reported as a Warning for the caller to log or display.
package normalize

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/agenthands/clutch/internal/core/model"
)

type Warning struct {
	Gene    string `json:"gene,omitempty"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	if w.Gene == "" {
		return w.Message
	}
	return fmt.Sprintf("%s: %s", w.Gene, w.Message)
}

// Catalog drops genes without a key, with a key holding a joint-key
// separator ("=" or ";"), with an unknown inheritance mode, or repeating an
// earlier key. Names default to the key.
func Catalog(genes []model.GeneDefinition) ([]model.GeneDefinition, []Warning) {
	var warnings []Warning
	out := make([]model.GeneDefinition, 0, len(genes))
	seen := make(map[string]bool, len(genes))

	for _, g := range genes {
		g.Key = strings.TrimSpace(g.Key)
		switch {
		case g.Key == "":
			warnings = append(warnings, Warning{Message: "gene without key dropped"})
			continue
		case strings.ContainsAny(g.Key, "=;"):
			warnings = append(warnings, Warning{Gene: g.Key, Message: `key may not contain "=" or ";", gene dropped`})
			continue
		case seen[g.Key]:
			warnings = append(warnings, Warning{Gene: g.Key, Message: "duplicate gene key dropped"})
			continue
		case !g.Mode.Valid():
			warnings = append(warnings, Warning{Gene: g.Key, Message: fmt.Sprintf("unknown inheritance mode %q, gene dropped", g.Mode)})
			continue
		}
		seen[g.Key] = true
		if strings.TrimSpace(g.Name) == "" {
			g.Name = g.Key
		}
		out = append(out, g)
	}

	return out, warnings
}

// Parent returns a copy of a parent genotype restricted to catalog genes.
// Unknown keys are dropped, states the inheritance mode cannot have become
// normal, and posHet is kept only for recessive het/normal entries, clamped
// into [0,100].
func Parent(genes []model.GeneDefinition, g model.Genotype) (model.Genotype, []Warning) {
	var warnings []Warning
	byKey := make(map[string]model.GeneDefinition, len(genes))
	for _, gene := range genes {
		byKey[gene.Key] = gene
	}

	out := make(model.Genotype, len(g))
	for key, e := range g {
		gene, ok := byKey[key]
		if !ok {
			warnings = append(warnings, Warning{Gene: key, Message: "not in catalog, ignored"})
			continue
		}

		entry := model.Entry{State: model.Zygosity(strings.ToLower(strings.TrimSpace(string(e.State))))}
		if entry.State == "" {
			entry.State = model.Normal
		}
		if !entry.State.Valid() || !gene.AllowsState(entry.State) {
			warnings = append(warnings, Warning{Gene: key, Message: fmt.Sprintf("state %q not valid for %s gene, using normal", e.State, gene.Mode)})
			entry.State = model.Normal
		}

		if e.PosHet != nil {
			entry.PosHet = posHet(gene, entry.State, *e.PosHet, key, &warnings)
		}
		out[key] = entry
	}

	sortWarnings(warnings)
	return out, warnings
}

func posHet(gene model.GeneDefinition, state model.Zygosity, v float64, key string, warnings *[]Warning) *float64 {
	if gene.Mode != model.Recessive || (state != model.Het && state != model.Normal) {
		*warnings = append(*warnings, Warning{Gene: key, Message: "pos het ignored for this state"})
		return nil
	}
	if math.IsNaN(v) {
		*warnings = append(*warnings, Warning{Gene: key, Message: "pos het is not a number, ignored"})
		return nil
	}
	if v < 0 || v > 100 {
		*warnings = append(*warnings, Warning{Gene: key, Message: fmt.Sprintf("pos het %.2f clamped into [0,100]", v)})
		v = math.Max(0, math.Min(100, v))
	}
	return &v
}

// Parent genotypes are maps; warnings are sorted so output is stable.
func sortWarnings(w []Warning) {
	sort.SliceStable(w, func(i, j int) bool {
		if w[i].Gene != w[j].Gene {
			return w[i].Gene < w[j].Gene
		}
		return w[i].Message < w[j].Message
	})
}
