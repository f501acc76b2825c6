package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"

	"github.com/agenthands/clutch/internal/core/model"
)

type ParsePrompts struct {
	Genotype string `toml:"genotype"`
}

type LLMConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
}

type MemgraphConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

type ServerConfig struct {
	Port string `toml:"port" validate:"required,numeric"`
	Mode string `toml:"mode" validate:"omitempty,oneof=debug release test"`
}

type CatalogConfig struct {
	// Source is "file" or "memgraph".
	Source string `toml:"source" validate:"required,oneof=file memgraph"`
	Path   string `toml:"path" validate:"required_if=Source file"`
}

type StoreConfig struct {
	SQLitePath string `toml:"sqlite_path" validate:"required"`
}

type EngineConfig struct {
	DefaultLimit int `toml:"default_limit" validate:"gte=0"`
	// MaxGenes bounds catalog size per pairing; 0 disables the check.
	MaxGenes int `toml:"max_genes" validate:"gte=0"`
	// StrictIncompatibility rejects pairings whose parents carry an
	// incompatible homozygous pair instead of warning.
	StrictIncompatibility bool `toml:"strict_incompatibility"`
}

type ConcurrencyConfig struct {
	BulkPairings int `toml:"bulk_pairings" validate:"gte=1"`
}

type LoggingConfig struct {
	Level string `toml:"level" validate:"omitempty,oneof=debug info warn error"`
}

type Config struct {
	Server      ServerConfig                  `toml:"server"`
	LLM         LLMConfig                     `toml:"llm"`
	Memgraph    MemgraphConfig                `toml:"memgraph"`
	Catalog     CatalogConfig                 `toml:"catalog"`
	Store       StoreConfig                   `toml:"store"`
	Engine      EngineConfig                  `toml:"engine"`
	Parse       ParsePrompts                  `toml:"parse"`
	Concurrency ConcurrencyConfig             `toml:"concurrency"`
	Logging     LoggingConfig                 `toml:"logging"`
	Combos      map[string][]model.ComboAlias `toml:"combos" validate:"dive,dive"`
}

var validate = validator.New()

// Default is the configuration used for any key the file leaves out.
func Default() *Config {
	return &Config{
		Server:      ServerConfig{Port: "8080", Mode: "release"},
		Catalog:     CatalogConfig{Source: "file", Path: "config/catalog.toml"},
		Store:       StoreConfig{SQLitePath: "clutch.db"},
		Engine:      EngineConfig{DefaultLimit: 20, MaxGenes: 12},
		Concurrency: ConcurrencyConfig{BulkPairings: 4},
		Logging:     LoggingConfig{Level: "info"},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overrides file settings with environment variables when present.
func (c *Config) ApplyEnv() {
	override := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	override(&c.Server.Port, "PORT")
	override(&c.Server.Mode, "GIN_MODE")
	override(&c.Memgraph.URI, "MEMGRAPH_URI")
	override(&c.Memgraph.User, "MEMGRAPH_USER")
	override(&c.Memgraph.Password, "MEMGRAPH_PASSWORD")
	override(&c.LLM.Provider, "LLM_PROVIDER")
	override(&c.LLM.Model, "LLM_MODEL")
	override(&c.LLM.APIKey, "LLM_API_KEY")
	override(&c.LLM.BaseURL, "LLM_BASE_URL")
	override(&c.Catalog.Source, "CLUTCH_CATALOG_SOURCE")
	override(&c.Catalog.Path, "CLUTCH_CATALOG_PATH")
	override(&c.Store.SQLitePath, "CLUTCH_SQLITE_PATH")
	override(&c.Logging.Level, "CLUTCH_LOG_LEVEL")

	if v, err := strconv.Atoi(os.Getenv("CLUTCH_MAX_GENES")); err == nil {
		c.Engine.MaxGenes = v
	}
	if v, err := strconv.ParseBool(os.Getenv("CLUTCH_STRICT_INCOMPATIBILITY")); err == nil {
		c.Engine.StrictIncompatibility = v
	}
}

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// CombosFor returns the combo alias table of a species.
func (c *Config) CombosFor(species string) []model.ComboAlias {
	if c == nil {
		return nil
	}
	return c.Combos[species]
}
