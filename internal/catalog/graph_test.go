package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/clutch/internal/core/model"
	"github.com/agenthands/clutch/internal/driver"
)

var catalogKeys = []string{
	"species", "species_name", "key", "name", "inheritance_mode",
	"super_label", "visible", "incompatible", "position",
}

func TestGraphStore_Catalog(t *testing.T) {
	d := &MockDriver{Results: map[string]neo4j.EagerResult{
		driver.GetCatalogQuery: {
			Keys: catalogKeys,
			Records: []*neo4j.Record{
				record(catalogKeys, "ball_python", "Ball Python", "pastel", "Pastel", "incomplete_dominant", "Super Pastel", nil, []any{}, int64(0)),
				record(catalogKeys, "ball_python", "Ball Python", "spider", "Spider", "dominant", nil, nil, []any{"spider"}, int64(1)),
				record(catalogKeys, "ball_python", "Ball Python", "hypo", "Hypo", "polygenic", nil, false, []any{}, int64(2)),
			},
		},
	}}

	c, err := NewGraphStore(d).Catalog(context.Background(), "ball_python")
	require.NoError(t, err)

	assert.Equal(t, "Ball Python", c.Name)
	require.Len(t, c.Genes, 3)
	assert.Equal(t, model.IncompleteDominant, c.Genes[0].Mode)
	assert.Equal(t, "Super Pastel", c.Genes[0].SuperLabel)
	assert.Empty(t, c.Genes[0].IncompatibleWith)
	assert.Equal(t, []string{"spider"}, c.Genes[1].IncompatibleWith)
	require.NotNil(t, c.Genes[2].Visible)
	assert.False(t, c.Genes[2].IsVisible())
	assert.Equal(t, "ball_python", d.Calls[0].Params["species"])
}

func TestGraphStore_CatalogWithoutGenes(t *testing.T) {
	d := &MockDriver{Results: map[string]neo4j.EagerResult{
		driver.GetCatalogQuery: {Records: []*neo4j.Record{
			record(catalogKeys, "corn", "Corn Snake", nil, nil, nil, nil, nil, []any{}, nil),
		}},
	}}

	c, err := NewGraphStore(d).Catalog(context.Background(), "corn")
	require.NoError(t, err)
	assert.Empty(t, c.Genes)
}

func TestGraphStore_CatalogNotFound(t *testing.T) {
	_, err := NewGraphStore(&MockDriver{}).Catalog(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrSpeciesNotFound)
}

func TestGraphStore_Species(t *testing.T) {
	d := &MockDriver{Results: map[string]neo4j.EagerResult{
		driver.ListSpeciesQuery: {Records: []*neo4j.Record{
			record([]string{"key"}, "ball_python"),
			record([]string{"key"}, "leopard_gecko"),
		}},
	}}

	keys, err := NewGraphStore(d).Species(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"ball_python", "leopard_gecko"}, keys)
}

func TestGraphStore_SaveCatalog(t *testing.T) {
	d := &MockDriver{}
	hidden := false
	c := model.Catalog{
		Species: "ball_python",
		Name:    "Ball Python",
		Genes: []model.GeneDefinition{
			{Key: "spider", Name: "Spider", Mode: model.Dominant, IncompatibleWith: []string{"spider"}},
			{Key: "hypo", Name: "Hypo", Mode: model.Polygenic, Visible: &hidden},
		},
	}

	require.NoError(t, NewGraphStore(d).SaveCatalog(context.Background(), c))

	require.Len(t, d.Calls, 4)
	assert.Equal(t, driver.SaveSpeciesQuery, d.Calls[0].Query)
	assert.Equal(t, driver.SaveGeneQuery, d.Calls[1].Query)
	assert.Equal(t, 0, d.Calls[1].Params["position"])
	assert.Nil(t, d.Calls[1].Params["visible"])
	assert.Equal(t, 1, d.Calls[2].Params["position"])
	assert.Equal(t, false, d.Calls[2].Params["visible"])
	assert.Equal(t, driver.LinkIncompatibleQuery, d.Calls[3].Query)
	assert.Equal(t, "spider", d.Calls[3].Params["other"])
}

func TestGraphStore_DriverError(t *testing.T) {
	d := &MockDriver{Err: errors.New("connection refused")}
	s := NewGraphStore(d)

	_, err := s.Catalog(context.Background(), "ball_python")
	assert.ErrorContains(t, err, "connection refused")
	assert.Error(t, s.SaveCatalog(context.Background(), model.Catalog{Species: "x"}))
	assert.Error(t, s.DeleteSpecies(context.Background(), "x"))
}
