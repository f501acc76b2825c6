// Package catalog serves species gene catalogs to the breeder. Catalogs are
// owned here, never by the engine.
package catalog

import (
	"context"
	"errors"

	"github.com/agenthands/clutch/internal/core/model"
)

var ErrSpeciesNotFound = errors.New("species not found")

type Store interface {
	Species(ctx context.Context) ([]string, error)
	Catalog(ctx context.Context, species string) (model.Catalog, error)
}

func clone(c model.Catalog) model.Catalog {
	out := c
	out.Genes = make([]model.GeneDefinition, len(c.Genes))
	for i, g := range c.Genes {
		g.IncompatibleWith = append([]string(nil), g.IncompatibleWith...)
		if g.Visible != nil {
			v := *g.Visible
			g.Visible = &v
		}
		out.Genes[i] = g
	}
	return out
}
