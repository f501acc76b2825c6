package catalog

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/agenthands/clutch/internal/core/model"
	"github.com/agenthands/clutch/internal/driver"
)

// GraphStore keeps catalogs in Memgraph.
type GraphStore struct {
	Driver driver.GraphDriver
}

func NewGraphStore(d driver.GraphDriver) *GraphStore {
	return &GraphStore{Driver: d}
}

func (s *GraphStore) Species(ctx context.Context) ([]string, error) {
	res, err := s.Driver.ExecuteQuery(ctx, driver.ListSpeciesQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list species: %w", err)
	}

	var keys []string
	for _, rec := range res.Records {
		if k, ok := stringValue(rec, "key"); ok {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

func (s *GraphStore) Catalog(ctx context.Context, species string) (model.Catalog, error) {
	res, err := s.Driver.ExecuteQuery(ctx, driver.GetCatalogQuery, map[string]any{"species": species})
	if err != nil {
		return model.Catalog{}, fmt.Errorf("failed to load catalog %s: %w", species, err)
	}
	if len(res.Records) == 0 {
		return model.Catalog{}, fmt.Errorf("%w: %s", ErrSpeciesNotFound, species)
	}

	c := model.Catalog{Species: species}
	c.Name, _ = stringValue(res.Records[0], "species_name")

	for _, rec := range res.Records {
		// A species without genes yields a single row of nulls.
		key, ok := stringValue(rec, "key")
		if !ok {
			continue
		}
		g := model.GeneDefinition{Key: key}
		g.Name, _ = stringValue(rec, "name")
		mode, _ := stringValue(rec, "inheritance_mode")
		g.Mode = model.InheritanceMode(mode)
		g.SuperLabel, _ = stringValue(rec, "super_label")
		if v, ok := rec.Get("visible"); ok {
			if b, ok := v.(bool); ok {
				g.Visible = &b
			}
		}
		if v, ok := rec.Get("incompatible"); ok {
			if list, ok := v.([]any); ok {
				for _, item := range list {
					if k, ok := item.(string); ok {
						g.IncompatibleWith = append(g.IncompatibleWith, k)
					}
				}
			}
		}
		c.Genes = append(c.Genes, g)
	}

	return c, nil
}

// SaveCatalog replaces a species' gene list, keeping catalog order.
func (s *GraphStore) SaveCatalog(ctx context.Context, c model.Catalog) error {
	_, err := s.Driver.ExecuteQuery(ctx, driver.SaveSpeciesQuery, map[string]any{
		"species": c.Species,
		"name":    c.Name,
	})
	if err != nil {
		return fmt.Errorf("failed to save species %s: %w", c.Species, err)
	}

	for i, g := range c.Genes {
		var visible any
		if g.Visible != nil {
			visible = *g.Visible
		}
		params := map[string]any{
			"species":          c.Species,
			"key":              g.Key,
			"name":             g.Name,
			"inheritance_mode": string(g.Mode),
			"super_label":      g.SuperLabel,
			"visible":          visible,
			"position":         i,
		}
		if _, err := s.Driver.ExecuteQuery(ctx, driver.SaveGeneQuery, params); err != nil {
			return fmt.Errorf("failed to save gene %s: %w", g.Key, err)
		}
	}

	// Links go in once every gene node exists.
	for _, g := range c.Genes {
		for _, other := range g.IncompatibleWith {
			params := map[string]any{"species": c.Species, "key": g.Key, "other": other}
			if _, err := s.Driver.ExecuteQuery(ctx, driver.LinkIncompatibleQuery, params); err != nil {
				return fmt.Errorf("failed to link %s to %s: %w", g.Key, other, err)
			}
		}
	}

	return nil
}

func (s *GraphStore) DeleteSpecies(ctx context.Context, species string) error {
	if _, err := s.Driver.ExecuteQuery(ctx, driver.DeleteSpeciesQuery, map[string]any{"species": species}); err != nil {
		return fmt.Errorf("failed to delete species %s: %w", species, err)
	}
	return nil
}

func stringValue(rec *neo4j.Record, key string) (string, bool) {
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
