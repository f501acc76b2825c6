package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/agenthands/clutch/internal/catalog"
	"github.com/agenthands/clutch/internal/config"
	"github.com/agenthands/clutch/internal/core"
)

type options struct {
	catalogPath string
	configPath  string
	species     string
	verbose     bool
	logger      *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "clutch",
		Short:         "Predict reptile clutch outcomes from a gene catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logCfg := zap.NewDevelopmentConfig()
			logCfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
			if opts.verbose {
				logCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			opts.logger, err = logCfg.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&opts.catalogPath, "catalog", "config/catalog.toml", "Gene catalog file (.toml or .yaml)")
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file for combos and engine limits")
	root.PersistentFlags().StringVar(&opts.species, "species", "", "Species key")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(newPairCmd(opts))
	root.AddCommand(newGenesCmd(opts))
	root.AddCommand(newImportCmd(opts))

	return root
}

// breeder builds a file-backed breeder; the CLI never stores snapshots.
func (o *options) breeder() (*core.Breeder, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return nil, err
		}
	}
	cfg.ApplyEnv()

	store, err := catalog.NewFileStore(o.catalogPath)
	if err != nil {
		return nil, err
	}
	return core.NewBreeder(store, nil, nil, cfg, o.logger), nil
}

func (o *options) requireSpecies() error {
	if o.species == "" {
		return fmt.Errorf("--species is required")
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
