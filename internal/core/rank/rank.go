package rank

import (
	"sort"

	"github.com/agenthands/clutch/internal/core/model"
)

// RemainderEpsilon floors tiny remainders left by floating error.
const RemainderEpsilon = 1e-6

// Sort orders rows by probability descending, breaking ties by joint-state
// key so identical inputs always give identical order. The input is not
// modified.
func Sort(results []model.PairingResult) []model.PairingResult {
	out := make([]model.PairingResult, len(results))
	copy(out, results)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Probability != out[j].Probability {
			return out[i].Probability > out[j].Probability
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// Rank sorts results and keeps the first limit rows. A limit <= 0 keeps
// everything. Rows are never merged here.
func Rank(results []model.PairingResult, limit int) model.Ranked {
	sorted := Sort(results)
	if limit > 0 && limit < len(sorted) {
		sorted = sorted[:limit]
	}

	var shown float64
	for _, r := range sorted {
		shown += r.Probability
	}

	remainder := 1 - shown
	if remainder < RemainderEpsilon {
		remainder = 0
	}
	if len(results) == 0 {
		remainder = 0
	}

	return model.Ranked{Top: sorted, Remainder: remainder}
}
