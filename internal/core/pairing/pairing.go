// Package pairing predicts the offspring of two parents over a gene catalog.
// It is a pure function of its inputs: no I/O, no shared state, and results
// for identical inputs are identical, so callers may cache them.
package pairing

import (
	"github.com/agenthands/clutch/internal/core/cross"
	"github.com/agenthands/clutch/internal/core/model"
	"github.com/agenthands/clutch/internal/core/phenotype"
	"github.com/agenthands/clutch/internal/core/rank"
)

type Prediction struct {
	Results []model.PairingResult
	// Pruned is the probability mass dropped as negligible during expansion.
	Pruned float64
}

// Predict expands every locus, labels each joint genotype and returns the
// rows sorted by probability. Inputs are expected to be normalized; nothing
// here returns an error.
func Predict(genes []model.GeneDefinition, parentA, parentB model.Genotype) Prediction {
	dist := cross.Expand(genes, parentA, parentB)
	if len(dist.Rows) == 0 {
		return Prediction{Pruned: dist.Pruned}
	}

	results := make([]model.PairingResult, 0, len(dist.Rows))
	for _, row := range dist.Rows {
		results = append(results, model.PairingResult{
			Key:             row.Key,
			Probability:     row.Probability,
			Genotype:        row.Genotype,
			PhenotypeTokens: phenotype.Label(row.Genotype, genes),
			Summary:         phenotype.Compact(row.Genotype, genes),
		})
	}

	return Prediction{Results: rank.Sort(results), Pruned: dist.Pruned}
}

// Compute is Predict without the pruning report.
func Compute(genes []model.GeneDefinition, parentA, parentB model.Genotype) []model.PairingResult {
	return Predict(genes, parentA, parentB).Results
}
