package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/agenthands/clutch/internal/catalog"
	"github.com/agenthands/clutch/internal/config"
	"github.com/agenthands/clutch/internal/core/model"
	"github.com/agenthands/clutch/internal/core/normalize"
	"github.com/agenthands/clutch/internal/core/pairing"
	"github.com/agenthands/clutch/internal/core/parse"
	"github.com/agenthands/clutch/internal/core/phenotype"
	"github.com/agenthands/clutch/internal/core/rank"
	"github.com/agenthands/clutch/internal/core/validate"
	"github.com/agenthands/clutch/internal/snapshot"
)

var (
	ErrTooManyGenes        = errors.New("catalog has too many genes for one pairing")
	ErrIncompatibleParents = errors.New("parents carry incompatible homozygous genes")
	ErrSpeciesMismatch     = errors.New("snapshot belongs to another species")
)

// SnapshotGetter is the part of the snapshot store the breeder reads.
type SnapshotGetter interface {
	Get(ctx context.Context, id string) (snapshot.Snapshot, error)
}

type Breeder struct {
	Catalogs  catalog.Store
	Snapshots SnapshotGetter
	Parser    *parse.Parser
	Config    *config.Config
	Logger    *zap.Logger
}

func NewBreeder(catalogs catalog.Store, snapshots SnapshotGetter, parser *parse.Parser, cfg *config.Config, logger *zap.Logger) *Breeder {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Breeder{
		Catalogs:  catalogs,
		Snapshots: snapshots,
		Parser:    parser,
		Config:    cfg,
		Logger:    logger,
	}
}

type PairingRequest struct {
	Species   string         `json:"species" binding:"required"`
	ParentA   model.Genotype `json:"parent_a"`
	ParentB   model.Genotype `json:"parent_b"`
	ParentAID string         `json:"parent_a_id,omitempty"`
	ParentBID string         `json:"parent_b_id,omitempty"`
	// Limit caps the rows returned; nil uses the configured default and
	// zero or less returns every row.
	Limit *int `json:"limit,omitempty"`
}

type PairingResponse struct {
	ID        string                `json:"id"`
	Species   string                `json:"species"`
	Top       []model.PairingResult `json:"top"`
	Remainder float64               `json:"remainder"`
	Pruned    float64               `json:"pruned"`
	Warnings  []normalize.Warning   `json:"warnings"`
	Conflicts []validate.Conflict   `json:"conflicts,omitempty"`
}

// Genes returns the normalized catalog of a species.
func (b *Breeder) Genes(ctx context.Context, species string) ([]model.GeneDefinition, []normalize.Warning, error) {
	c, err := b.Catalogs.Catalog(ctx, species)
	if err != nil {
		return nil, nil, err
	}
	genes, warnings := normalize.Catalog(c.Genes)
	return genes, warnings, nil
}

func (b *Breeder) Species(ctx context.Context) ([]string, error) {
	return b.Catalogs.Species(ctx)
}

func (b *Breeder) Predict(ctx context.Context, req PairingRequest) (*PairingResponse, error) {
	start := time.Now()
	resp, err := b.predict(ctx, req)
	if err != nil {
		pairingsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	pairingDuration.Observe(time.Since(start).Seconds())
	pairingsTotal.WithLabelValues("ok").Inc()
	return resp, nil
}

func (b *Breeder) predict(ctx context.Context, req PairingRequest) (*PairingResponse, error) {
	genes, warnings, err := b.Genes(ctx, req.Species)
	if err != nil {
		return nil, err
	}
	if n := b.Config.Engine.MaxGenes; n > 0 && len(genes) > n {
		return nil, fmt.Errorf("%w: %s has %d, limit %d", ErrTooManyGenes, req.Species, len(genes), n)
	}

	rawA, err := b.parent(ctx, req.Species, req.ParentA, req.ParentAID)
	if err != nil {
		return nil, fmt.Errorf("parent a: %w", err)
	}
	rawB, err := b.parent(ctx, req.Species, req.ParentB, req.ParentBID)
	if err != nil {
		return nil, fmt.Errorf("parent b: %w", err)
	}

	for _, p := range []struct {
		name, id string
		inline   model.Genotype
	}{{"a", req.ParentAID, req.ParentA}, {"b", req.ParentBID, req.ParentB}} {
		if p.id != "" && len(p.inline) > 0 {
			warnings = append(warnings, normalize.Warning{
				Message: fmt.Sprintf("parent %s: inline genotype ignored, using snapshot %s", p.name, p.id),
			})
		}
	}

	parentA, wa := normalize.Parent(genes, rawA)
	parentB, wb := normalize.Parent(genes, rawB)
	warnings = append(warnings, prefix("a", wa)...)
	warnings = append(warnings, prefix("b", wb)...)

	conflicts := validate.Parents(genes, parentA, parentB)
	if len(conflicts) > 0 {
		if b.Config.Engine.StrictIncompatibility {
			return nil, fmt.Errorf("%w: %s", ErrIncompatibleParents, conflicts[0].Error())
		}
		for _, c := range conflicts {
			warnings = append(warnings, normalize.Warning{Gene: c.GeneA, Message: c.Error()})
		}
	}

	pred := pairing.Predict(genes, parentA, parentB)
	rows := validate.Flag(genes, pred.Results)
	pairingRows.Observe(float64(len(rows)))
	pairingPruned.Observe(pred.Pruned)

	limit := b.Config.Engine.DefaultLimit
	if req.Limit != nil {
		limit = *req.Limit
	}
	ranked := rank.Rank(rows, limit)
	top := phenotype.ApplyCombos(ranked.Top, genes, b.Config.CombosFor(req.Species))
	if top == nil {
		top = []model.PairingResult{}
	}
	if warnings == nil {
		warnings = []normalize.Warning{}
	}

	resp := &PairingResponse{
		ID:        uuid.New().String(),
		Species:   req.Species,
		Top:       top,
		Remainder: ranked.Remainder,
		Pruned:    pred.Pruned,
		Warnings:  warnings,
		Conflicts: conflicts,
	}

	b.Logger.Debug("pairing predicted",
		zap.String("id", resp.ID),
		zap.String("species", req.Species),
		zap.Int("genes", len(genes)),
		zap.Int("rows", len(rows)),
		zap.Float64("pruned", pred.Pruned),
		zap.Int("warnings", len(warnings)),
	)
	return resp, nil
}

// parent resolves a stored snapshot when an ID is given, otherwise the
// inline genotype is used as-is. An ID wins over an inline genotype.
func (b *Breeder) parent(ctx context.Context, species string, inline model.Genotype, id string) (model.Genotype, error) {
	if id == "" {
		return inline, nil
	}
	if b.Snapshots == nil {
		return nil, fmt.Errorf("%w: %s (no snapshot store)", snapshot.ErrNotFound, id)
	}
	snap, err := b.Snapshots.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if snap.Species != species {
		return nil, fmt.Errorf("%w: %s is %s", ErrSpeciesMismatch, id, snap.Species)
	}
	return snap.Genotype, nil
}

func prefix(parent string, ws []normalize.Warning) []normalize.Warning {
	out := make([]normalize.Warning, len(ws))
	for i, w := range ws {
		w.Message = fmt.Sprintf("parent %s: %s", parent, w.Message)
		out[i] = w
	}
	return out
}

type BatchItem struct {
	Result *PairingResponse `json:"result,omitempty"`
	Error  string           `json:"error,omitempty"`
}

// PredictBatch runs pairings concurrently, bounded by concurrency.bulk_pairings.
// One failing pairing does not stop the others; its error is reported in
// place and items keep request order.
func (b *Breeder) PredictBatch(ctx context.Context, reqs []PairingRequest) ([]BatchItem, error) {
	items := make([]BatchItem, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, b.Config.Concurrency.BulkPairings))

	for i, req := range reqs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			resp, err := b.Predict(gctx, req)
			if err != nil {
				b.Logger.Warn("batch pairing failed", zap.Int("index", i), zap.Error(err))
				items[i].Error = err.Error()
				return nil
			}
			items[i].Result = resp
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}

type ParseResponse struct {
	Genotype   model.Genotype      `json:"genotype"`
	Unresolved []string            `json:"unresolved"`
	Tokens     []string            `json:"tokens"`
	Summary    string              `json:"summary"`
	Warnings   []normalize.Warning `json:"warnings,omitempty"`
}

// ParseGenotype reads free-text picks for one animal. A failed LLM fallback
// is logged and the grammar's result returned.
func (b *Breeder) ParseGenotype(ctx context.Context, species, text string) (*ParseResponse, error) {
	genes, _, err := b.Genes(ctx, species)
	if err != nil {
		return nil, err
	}

	var parsed parse.Parsed
	if b.Parser != nil {
		parsed, err = b.Parser.Parse(ctx, text, genes)
	} else {
		parsed = parse.Grammar(text, genes)
	}
	switch {
	case err != nil:
		parseFallbacks.WithLabelValues("error").Inc()
		b.Logger.Warn("genotype parse fallback failed", zap.String("species", species), zap.Error(err))
	case parsed.UsedLLM:
		parseFallbacks.WithLabelValues("ok").Inc()
	}

	g, warnings := normalize.Parent(genes, parsed.Genotype)
	unresolved := parsed.Unresolved
	if unresolved == nil {
		unresolved = []string{}
	}
	tokens := phenotype.Label(g, genes)
	if tokens == nil {
		tokens = []string{}
	}

	return &ParseResponse{
		Genotype:   g,
		Unresolved: unresolved,
		Tokens:     tokens,
		Summary:    phenotype.Compact(g, genes),
		Warnings:   warnings,
	}, nil
}
