package normalize

import (
	"math"
	"testing"

	"github.com/agenthands/clutch/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var genes = []model.GeneDefinition{
	{Key: "clown", Name: "Clown", Mode: model.Recessive},
	{Key: "pastel", Name: "Pastel", Mode: model.IncompleteDominant},
	{Key: "pin", Name: "Pinstripe", Mode: model.Dominant},
	{Key: "hypo", Name: "Hypo", Mode: model.Polygenic},
}

func TestCatalog_DropsMalformedGenes(t *testing.T) {
	in := []model.GeneDefinition{
		{Key: "clown", Name: "Clown", Mode: model.Recessive},
		{Key: " ", Name: "Blank", Mode: model.Recessive},
		{Key: "clown", Name: "Clown again", Mode: model.Dominant},
		{Key: "spotted", Name: "Spotted", Mode: "sex_linked"},
		{Key: "ghost", Mode: model.Recessive},
	}

	out, warnings := Catalog(in)

	require.Len(t, out, 2)
	assert.Equal(t, "Clown", out[0].Name)
	assert.Equal(t, "ghost", out[1].Name)
	assert.Len(t, warnings, 3)
	// The input slice is left alone.
	assert.Equal(t, "", in[4].Name)
}

func TestCatalog_DropsKeysWithJointKeySeparators(t *testing.T) {
	// Left alone, "a=x;b" and "a" + "b" could render the same joint key.
	in := []model.GeneDefinition{
		{Key: "a=x;b", Name: "Odd", Mode: model.Recessive},
		{Key: "a;b", Name: "Odd", Mode: model.Recessive},
		{Key: "a", Name: "A", Mode: model.Recessive},
		{Key: "b", Name: "B", Mode: model.Dominant},
	}

	out, warnings := Catalog(in)

	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].Key)
	assert.Equal(t, "b", out[1].Key)
	require.Len(t, warnings, 2)
	assert.Equal(t, "a=x;b", warnings[0].Gene)
	assert.Contains(t, warnings[0].Message, `"="`)
}

func TestParent_InvalidStatesBecomeNormal(t *testing.T) {
	in := model.Genotype{
		"clown":  model.State(model.Super),
		"pastel": model.State(model.Het),
		"pin":    model.State("EXPRESSED"),
		"hypo":   model.State("bogus"),
		"ghost":  model.State(model.Het),
	}

	out, warnings := Parent(genes, in)

	assert.Equal(t, model.Normal, out["clown"].State)
	assert.Equal(t, model.Normal, out["pastel"].State)
	assert.Equal(t, model.Expressed, out["pin"].State)
	assert.Equal(t, model.Normal, out["hypo"].State)
	assert.NotContains(t, out, "ghost")
	require.Len(t, warnings, 4)
	assert.Equal(t, "clown", warnings[0].Gene)
	assert.Equal(t, "ghost", warnings[1].Gene)
}

func TestParent_PosHet(t *testing.T) {
	in := model.Genotype{
		"clown":  model.PossibleHet(model.Het, 140),
		"pastel": model.PossibleHet(model.Expressed, 50),
	}

	out, warnings := Parent(genes, in)

	require.NotNil(t, out["clown"].PosHet)
	assert.Equal(t, 100.0, *out["clown"].PosHet)
	assert.Nil(t, out["pastel"].PosHet)
	assert.Len(t, warnings, 2)
	// Caller's value is not rewritten.
	assert.Equal(t, 140.0, *in["clown"].PosHet)

	out, _ = Parent(genes, model.Genotype{"clown": model.PossibleHet(model.Normal, math.NaN())})
	assert.Nil(t, out["clown"].PosHet)

	out, warnings = Parent(genes, model.Genotype{"clown": model.PossibleHet(model.Normal, 66)})
	assert.Empty(t, warnings)
	assert.Equal(t, 66.0, *out["clown"].PosHet)
}

func TestParent_EmptyStateIsNormal(t *testing.T) {
	out, warnings := Parent(genes, model.Genotype{"clown": {}})
	assert.Empty(t, warnings)
	assert.Equal(t, model.Normal, out["clown"].State)
}
