package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/agenthands/clutch/internal/catalog"
	"github.com/agenthands/clutch/internal/core"
	"github.com/agenthands/clutch/internal/core/model"
	"github.com/agenthands/clutch/internal/core/normalize"
	"github.com/agenthands/clutch/internal/snapshot"
)

type SnapshotStore interface {
	Save(ctx context.Context, snap snapshot.Snapshot) (snapshot.Snapshot, error)
	Get(ctx context.Context, id string) (snapshot.Snapshot, error)
	List(ctx context.Context, species string) ([]snapshot.Snapshot, error)
	Delete(ctx context.Context, id string) error
}

type Server struct {
	Breeder   *core.Breeder
	Snapshots SnapshotStore
	Logger    *zap.Logger
}

func NewServer(breeder *core.Breeder, snapshots SnapshotStore, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		Breeder:   breeder,
		Snapshots: snapshots,
		Logger:    logger,
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/healthz", s.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/species", s.ListSpecies)
	r.GET("/species/:species/genes", s.ListGenes)

	r.POST("/pairings", s.Pair)
	r.POST("/pairings/batch", s.PairBatch)
	r.POST("/genotypes/parse", s.ParseGenotype)

	if s.Snapshots != nil {
		r.POST("/animals", s.SaveAnimal)
		r.GET("/animals", s.ListAnimals)
		r.GET("/animals/:id", s.GetAnimal)
		r.DELETE("/animals/:id", s.DeleteAnimal)
	}

	return r
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.Logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// fail maps known errors to a status and logs everything else.
func (s *Server) fail(c *gin.Context, err error, msg string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, catalog.ErrSpeciesNotFound), errors.Is(err, snapshot.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, core.ErrTooManyGenes),
		errors.Is(err, core.ErrIncompatibleParents),
		errors.Is(err, core.ErrSpeciesMismatch):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		s.Logger.Error(msg, zap.Error(err))
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) ListSpecies(c *gin.Context) {
	species, err := s.Breeder.Species(c.Request.Context())
	if err != nil {
		s.fail(c, err, "Failed to list species")
		return
	}
	if species == nil {
		species = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"species": species})
}

func (s *Server) ListGenes(c *gin.Context) {
	genes, warnings, err := s.Breeder.Genes(c.Request.Context(), c.Param("species"))
	if err != nil {
		s.fail(c, err, "Failed to load catalog")
		return
	}
	if genes == nil {
		genes = []model.GeneDefinition{}
	}
	if warnings == nil {
		warnings = []normalize.Warning{}
	}
	c.JSON(http.StatusOK, gin.H{"species": c.Param("species"), "genes": genes, "warnings": warnings})
}

func (s *Server) Pair(c *gin.Context) {
	var req core.PairingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	resp, err := s.Breeder.Predict(c.Request.Context(), req)
	if err != nil {
		s.fail(c, err, "Failed to predict pairing")
		return
	}
	c.JSON(http.StatusOK, resp)
}

type BatchRequest struct {
	Pairings []core.PairingRequest `json:"pairings" binding:"required,min=1,dive"`
}

func (s *Server) PairBatch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	items, err := s.Breeder.PredictBatch(c.Request.Context(), req.Pairings)
	if err != nil {
		s.fail(c, err, "Failed to predict pairings")
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": items})
}

type ParseRequest struct {
	Species string `json:"species" binding:"required"`
	Text    string `json:"text" binding:"required"`
}

func (s *Server) ParseGenotype(c *gin.Context) {
	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	resp, err := s.Breeder.ParseGenotype(c.Request.Context(), req.Species, req.Text)
	if err != nil {
		s.fail(c, err, "Failed to parse genotype")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AnimalRequest stores an animal from either a genotype or free text.
type AnimalRequest struct {
	ID       string         `json:"id"`
	Species  string         `json:"species" binding:"required"`
	Name     string         `json:"name"`
	Genotype model.Genotype `json:"genotype"`
	Text     string         `json:"text"`
}

func (s *Server) SaveAnimal(c *gin.Context) {
	var req AnimalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	ctx := c.Request.Context()

	genes, _, err := s.Breeder.Genes(ctx, req.Species)
	if err != nil {
		s.fail(c, err, "Failed to load catalog")
		return
	}

	g := req.Genotype
	var warnings []normalize.Warning
	if req.Text != "" {
		parsed, err := s.Breeder.ParseGenotype(ctx, req.Species, req.Text)
		if err != nil {
			s.fail(c, err, "Failed to parse genotype")
			return
		}
		for key, e := range parsed.Genotype {
			if _, set := g[key]; !set {
				if g == nil {
					g = model.Genotype{}
				}
				g[key] = e
			}
		}
		for _, u := range parsed.Unresolved {
			warnings = append(warnings, normalize.Warning{Message: "unresolved: " + u})
		}
	}

	g, ws := normalize.Parent(genes, g)
	warnings = append(warnings, ws...)

	snap, err := s.Snapshots.Save(ctx, snapshot.Snapshot{
		ID:       req.ID,
		Species:  req.Species,
		Name:     req.Name,
		Genotype: g,
	})
	if err != nil {
		s.fail(c, err, "Failed to save animal")
		return
	}
	if warnings == nil {
		warnings = []normalize.Warning{}
	}
	c.JSON(http.StatusCreated, gin.H{"animal": snap, "warnings": warnings})
}

func (s *Server) GetAnimal(c *gin.Context) {
	snap, err := s.Snapshots.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err, "Failed to load animal")
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (s *Server) ListAnimals(c *gin.Context) {
	snaps, err := s.Snapshots.List(c.Request.Context(), c.Query("species"))
	if err != nil {
		s.fail(c, err, "Failed to list animals")
		return
	}
	c.JSON(http.StatusOK, gin.H{"animals": snaps})
}

func (s *Server) DeleteAnimal(c *gin.Context) {
	if err := s.Snapshots.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err, "Failed to delete animal")
		return
	}
	c.Status(http.StatusNoContent)
}
