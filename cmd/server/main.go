package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/agenthands/clutch/internal/catalog"
	"github.com/agenthands/clutch/internal/config"
	"github.com/agenthands/clutch/internal/core"
	"github.com/agenthands/clutch/internal/core/parse"
	"github.com/agenthands/clutch/internal/driver"
	"github.com/agenthands/clutch/internal/llm"
	"github.com/agenthands/clutch/internal/logging"
	"github.com/agenthands/clutch/internal/server"
	"github.com/agenthands/clutch/internal/snapshot"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults")
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Printf("Could not load %s: %v. Using defaults", cfgPath, err)
		cfg = config.Default()
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(cfg.Logging.Level)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	ctx := context.Background()

	var store catalog.Store
	switch cfg.Catalog.Source {
	case "memgraph":
		uri := cfg.Memgraph.URI
		if uri == "" {
			uri = "bolt://localhost:7687"
		}
		d, err := driver.NewMemgraphDriver(ctx, uri, cfg.Memgraph.User, cfg.Memgraph.Password, logger)
		if err != nil {
			logger.Fatal("failed to connect to Memgraph", zap.Error(err))
		}
		defer d.Close(ctx)
		if err := d.BuildIndices(ctx); err != nil {
			logger.Fatal("failed to build indices", zap.Error(err))
		}
		store = catalog.NewGraphStore(d)
	default:
		store, err = catalog.NewFileStore(cfg.Catalog.Path)
		if err != nil {
			logger.Fatal("failed to load catalog", zap.Error(err))
		}
	}

	snaps, err := snapshot.Open(ctx, cfg.Store.SQLitePath, logger)
	if err != nil {
		logger.Fatal("failed to open snapshot store", zap.Error(err))
	}
	defer snaps.Close()

	llmClient, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		logger.Fatal("failed to initialize LLM client", zap.Error(err))
	}
	if llmClient == nil {
		logger.Info("no LLM provider configured, genotype parsing is grammar only")
	}

	breeder := core.NewBreeder(store, snaps, parse.NewParser(llmClient, cfg.Parse), cfg, logger)
	srv := server.NewServer(breeder, snaps, logger)
	r := srv.SetupRouter()

	logger.Info("starting server", zap.String("port", cfg.Server.Port), zap.String("catalog", cfg.Catalog.Source))
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
