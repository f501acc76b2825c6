package phenotype

import (
	"testing"

	"github.com/agenthands/clutch/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hidden() *bool {
	v := false
	return &v
}

var catalog = []model.GeneDefinition{
	{Key: "pastel", Name: "Pastel", Mode: model.IncompleteDominant},
	{Key: "mojave", Name: "Mojave", Mode: model.IncompleteDominant, SuperLabel: "Blue Eyed Lucy"},
	{Key: "clown", Name: "Clown", Mode: model.Recessive},
	{Key: "albino", Name: "Albino", Mode: model.Recessive},
	{Key: "pinstripe", Name: "Pinstripe", Mode: model.Dominant},
	{Key: "hypo", Name: "Hypo", Mode: model.Polygenic},
	{Key: "redline", Name: "Red Line", Mode: model.Polygenic},
	{Key: "orange", Name: "Orange", Mode: model.Polygenic, Visible: hidden()},
}

func TestLabel_TierOrder(t *testing.T) {
	g := model.Genotype{
		"hypo":      model.State(model.Expressed),
		"clown":     model.State(model.Het),
		"pinstripe": model.State(model.Expressed),
		"albino":    model.State(model.Expressed),
		"pastel":    model.State(model.Expressed),
		"mojave":    model.State(model.Super),
	}

	assert.Equal(t, []string{
		"Blue Eyed Lucy",
		"Pastel",
		"Albino",
		"Pinstripe",
		"Het Clown",
		"Hypo Line",
	}, Label(g, catalog))
}

func TestLabel_DefaultSuperLabel(t *testing.T) {
	g := model.Genotype{"pastel": model.State(model.Super)}
	assert.Equal(t, []string{"Super Pastel"}, Label(g, catalog))
}

func TestLabel_PossibleHet(t *testing.T) {
	g := model.Genotype{
		"clown":  model.PossibleHet(model.Het, 65),
		"albino": model.PossibleHet(model.Normal, 2),
	}
	assert.Equal(t, []string{"66% Het Clown"}, Label(g, catalog))

	g = model.Genotype{"clown": model.PossibleHet(model.Normal, 97)}
	tokens := Tokens(g, catalog)
	require.Len(t, tokens, 1)
	assert.Equal(t, "100% Het Clown", tokens[0].Label)
	assert.Equal(t, TierPossibleHet, tokens[0].Tier)
}

func TestLabel_NormalAndHiddenProduceNothing(t *testing.T) {
	g := model.Genotype{
		"pastel": model.State(model.Normal),
		"orange": model.State(model.Expressed),
		"ghost":  model.State(model.Expressed),
	}
	assert.Empty(t, Label(g, catalog))
}

func TestLabel_LineSuffixNotDoubled(t *testing.T) {
	g := model.Genotype{"redline": model.State(model.Expressed)}
	assert.Equal(t, []string{"Red Line"}, Label(g, catalog))
}

func TestLabel_DedupKeepsHigherPrecedence(t *testing.T) {
	genes := []model.GeneDefinition{
		{Key: "desert", Name: "Desert", Mode: model.Recessive},
		{Key: "desert_ghost", Name: "Desert", Mode: model.IncompleteDominant},
		{Key: "banana", Name: "Banana", Mode: model.IncompleteDominant},
	}
	g := model.Genotype{
		"desert":       model.State(model.Expressed),
		"desert_ghost": model.State(model.Expressed),
		"banana":       model.State(model.Expressed),
	}

	tokens := Tokens(g, genes)
	require.Len(t, tokens, 2)
	assert.Equal(t, "Banana", tokens[0].Label)
	assert.Equal(t, "Desert", tokens[1].Label)
	assert.Equal(t, TierIncomplete, tokens[1].Tier)
	assert.Equal(t, "desert_ghost", tokens[1].Gene)
}

func TestLabel_LocaleOrderWithinTier(t *testing.T) {
	genes := []model.GeneDefinition{
		{Key: "z", Name: "zebra", Mode: model.Dominant},
		{Key: "e", Name: "Éclair", Mode: model.Dominant},
		{Key: "a", Name: "Axanthic", Mode: model.Dominant},
	}
	g := model.Genotype{
		"z": model.State(model.Expressed),
		"e": model.State(model.Expressed),
		"a": model.State(model.Expressed),
	}
	assert.Equal(t, []string{"Axanthic", "Éclair", "zebra"}, Label(g, genes))
}

func TestLabel_Deterministic(t *testing.T) {
	g := model.Genotype{
		"pastel":    model.State(model.Expressed),
		"pinstripe": model.State(model.Expressed),
		"clown":     model.State(model.Het),
		"albino":    model.State(model.Het),
	}
	first := Label(g, catalog)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Label(g, catalog))
	}
}

func TestNormalizePercent(t *testing.T) {
	cases := map[float64]int{
		96:   100,
		4.9:  0,
		30:   33,
		36:   33,
		47.5: 50,
		63:   66,
		69:   66,
		70:   70,
		40.4: 40,
		5:    5,
		95:   95,
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizePercent(in), "input %v", in)
	}
}
