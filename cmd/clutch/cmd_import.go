package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/agenthands/clutch/internal/catalog"
	"github.com/agenthands/clutch/internal/config"
	"github.com/agenthands/clutch/internal/core/model"
	"github.com/agenthands/clutch/internal/driver"
)

// import copies file catalogs into Memgraph so the server can run with
// catalog.source = "memgraph".
func newImportCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Load a catalog file into Memgraph",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if opts.configPath != "" {
				var err error
				if cfg, err = config.Load(opts.configPath); err != nil {
					return err
				}
			}
			cfg.ApplyEnv()
			uri := cfg.Memgraph.URI
			if uri == "" {
				uri = "bolt://localhost:7687"
			}

			files, err := catalog.NewFileStore(opts.catalogPath)
			if err != nil {
				return err
			}

			ctx := context.Background()
			d, err := driver.NewMemgraphDriver(ctx, uri, cfg.Memgraph.User, cfg.Memgraph.Password, opts.logger)
			if err != nil {
				return fmt.Errorf("failed to connect to Memgraph: %w", err)
			}
			defer d.Close(ctx)
			if err := d.BuildIndices(ctx); err != nil {
				return err
			}

			return importCatalogs(ctx, files, catalog.NewGraphStore(d), opts.species, opts.logger, cmd)
		},
	}
}

type catalogSaver interface {
	SaveCatalog(ctx context.Context, c model.Catalog) error
}

func importCatalogs(ctx context.Context, from catalog.Store, to catalogSaver, only string, logger *zap.Logger, cmd *cobra.Command) error {
	species, err := from.Species(ctx)
	if err != nil {
		return err
	}
	for _, s := range species {
		if only != "" && s != only {
			continue
		}
		c, err := from.Catalog(ctx, s)
		if err != nil {
			return err
		}
		if err := to.SaveCatalog(ctx, c); err != nil {
			return err
		}
		logger.Info("imported catalog", zap.String("species", s), zap.Int("genes", len(c.Genes)))
		fmt.Fprintf(cmd.OutOrStdout(), "imported %s (%d genes)\n", s, len(c.Genes))
	}
	return nil
}
