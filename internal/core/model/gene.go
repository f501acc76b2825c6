package model

import "fmt"

type InheritanceMode string

const (
	Recessive          InheritanceMode = "recessive"
	IncompleteDominant InheritanceMode = "incomplete_dominant"
	Dominant           InheritanceMode = "dominant"
	Polygenic          InheritanceMode = "polygenic"
)

func (m InheritanceMode) Valid() bool {
	switch m {
	case Recessive, IncompleteDominant, Dominant, Polygenic:
		return true
	}
	return false
}

// GeneDefinition describes one locus in a species catalog. Catalogs are
// supplied by a store and treated as immutable for a computation.
type GeneDefinition struct {
	Key              string          `json:"key" toml:"key" yaml:"key" validate:"required"`
	Name             string          `json:"name" toml:"name" yaml:"name" validate:"required"`
	Mode             InheritanceMode `json:"inheritance_mode" toml:"inheritance_mode" yaml:"inheritance_mode" validate:"required"`
	SuperLabel       string          `json:"super_label,omitempty" toml:"super_label,omitempty" yaml:"super_label,omitempty"`
	IncompatibleWith []string        `json:"incompatible_with,omitempty" toml:"incompatible_with,omitempty" yaml:"incompatible_with,omitempty"`
	Visible          *bool           `json:"visible,omitempty" toml:"visible,omitempty" yaml:"visible,omitempty"`
}

// IsVisible reports whether the gene contributes a phenotype token. Only an
// explicit false hides it.
func (g GeneDefinition) IsVisible() bool {
	return g.Visible == nil || *g.Visible
}

// SuperName is the label of the homozygous incomplete-dominant form.
func (g GeneDefinition) SuperName() string {
	if g.SuperLabel != "" {
		return g.SuperLabel
	}
	return fmt.Sprintf("Super %s", g.Name)
}

// AllowsState reports whether a zygosity state is meaningful for the gene's
// inheritance mode.
func (g GeneDefinition) AllowsState(z Zygosity) bool {
	if z == Normal {
		return true
	}
	switch g.Mode {
	case Recessive:
		return z == Het || z == Expressed
	case IncompleteDominant:
		return z == Expressed || z == Super
	case Dominant, Polygenic:
		return z == Expressed
	}
	return false
}

// Catalog is the ordered gene list of one species.
type Catalog struct {
	Species string           `json:"species" toml:"key" yaml:"key" validate:"required"`
	Name    string           `json:"name,omitempty" toml:"name,omitempty" yaml:"name,omitempty"`
	Genes   []GeneDefinition `json:"genes" toml:"genes" yaml:"genes" validate:"dive"`
}

func (c Catalog) Lookup(key string) (GeneDefinition, bool) {
	for _, g := range c.Genes {
		if g.Key == key {
			return g, true
		}
	}
	return GeneDefinition{}, false
}

// ComboAlias names a combination of genes shown as a single morph, e.g.
// "Pewter" for pastel + cinnamon. A requirement is either a gene key, which
// matches any visual state, or "key:state" for an exact state.
type ComboAlias struct {
	Name     string   `json:"name" toml:"name" yaml:"name" validate:"required"`
	Requires []string `json:"requires" toml:"requires" yaml:"requires" validate:"required,min=1"`
}
