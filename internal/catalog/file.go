package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/agenthands/clutch/internal/core/model"
)

type catalogFile struct {
	Species []model.Catalog `toml:"species" yaml:"species" validate:"dive"`
}

var validate = validator.New()

// FileStore serves catalogs read once from a TOML or YAML file.
type FileStore struct {
	catalogs map[string]model.Catalog
}

func NewFileStore(path string) (*FileStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file '%s': %w", path, err)
	}

	var f catalogFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &f)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &f)
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog file '%s': %w", path, err)
	}

	return NewMemoryStore(f.Species...)
}

// NewMemoryStore serves the given catalogs. Species keys must be unique.
func NewMemoryStore(catalogs ...model.Catalog) (*FileStore, error) {
	if err := validate.Struct(catalogFile{Species: catalogs}); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	s := &FileStore{catalogs: make(map[string]model.Catalog, len(catalogs))}
	for _, c := range catalogs {
		if _, dup := s.catalogs[c.Species]; dup {
			return nil, fmt.Errorf("duplicate species %q", c.Species)
		}
		s.catalogs[c.Species] = clone(c)
	}
	return s, nil
}

func (s *FileStore) Species(ctx context.Context) ([]string, error) {
	keys := make([]string, 0, len(s.catalogs))
	for k := range s.catalogs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *FileStore) Catalog(ctx context.Context, species string) (model.Catalog, error) {
	c, ok := s.catalogs[species]
	if !ok {
		return model.Catalog{}, fmt.Errorf("%w: %s", ErrSpeciesNotFound, species)
	}
	return clone(c), nil
}
