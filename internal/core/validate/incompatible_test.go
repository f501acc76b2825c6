package validate

import (
	"testing"

	"github.com/agenthands/clutch/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var genes = []model.GeneDefinition{
	{Key: "spider", Name: "Spider", Mode: model.IncompleteDominant},
	{Key: "champagne", Name: "Champagne", Mode: model.IncompleteDominant, IncompatibleWith: []string{"spider", "missing"}},
	{Key: "clown", Name: "Clown", Mode: model.Recessive, IncompatibleWith: []string{"champagne"}},
	{Key: "pin", Name: "Pinstripe", Mode: model.Dominant, IncompatibleWith: []string{"clown"}},
}

func TestGenotype_SymmetricAndOncePerPair(t *testing.T) {
	g := model.Genotype{
		"spider":    model.State(model.Super),
		"champagne": model.State(model.Super),
		"clown":     model.State(model.Expressed),
		"pin":       model.State(model.Expressed),
	}

	conflicts := Genotype(genes, g)
	require.Len(t, conflicts, 2)
	assert.Equal(t, Conflict{GeneA: "spider", GeneB: "champagne"}, conflicts[0])
	assert.Equal(t, Conflict{GeneA: "champagne", GeneB: "clown"}, conflicts[1])
}

func TestGenotype_HeterozygousFormsAreFine(t *testing.T) {
	g := model.Genotype{
		"spider":    model.State(model.Expressed),
		"champagne": model.State(model.Super),
		"clown":     model.State(model.Het),
	}
	assert.Empty(t, Genotype(genes, g))
}

func TestParents(t *testing.T) {
	a := model.Genotype{"spider": model.State(model.Super), "champagne": model.State(model.Super)}
	b := model.Genotype{"clown": model.State(model.Expressed)}

	conflicts := Parents(genes, a, b)
	require.Len(t, conflicts, 1)
	assert.Equal(t, "a", conflicts[0].Parent)
	assert.Contains(t, conflicts[0].Error(), "parent a")
}

func TestFlag(t *testing.T) {
	rows := []model.PairingResult{
		{Key: "bad", Genotype: model.Genotype{"champagne": model.State(model.Super), "clown": model.State(model.Expressed)}},
		{Key: "ok", Genotype: model.Genotype{"champagne": model.State(model.Expressed)}},
	}

	out := Flag(genes, rows)
	assert.True(t, out[0].Invalid)
	assert.False(t, out[1].Invalid)
	assert.False(t, rows[0].Invalid)
}
