package allele

import (
	"math"

	"github.com/agenthands/clutch/internal/core/model"
)

// Probability returns the chance that a parent with the given entry passes on
// the non-wildtype allele of gene. It never fails: a malformed posHet is
// clamped and the result is kept inside [0,1].
func Probability(gene model.GeneDefinition, entry model.Entry) float64 {
	var p float64

	switch gene.Mode {
	case model.Recessive:
		switch entry.State {
		case model.Expressed:
			p = 1
		case model.Het:
			p = 0.5
			if pct, ok := PosHetFraction(entry); ok {
				p = 0.5 * pct
			}
		case model.Normal:
			if pct, ok := PosHetFraction(entry); ok {
				p = 0.5 * pct
			}
		}
	case model.IncompleteDominant:
		switch entry.State {
		case model.Super:
			p = 1
		case model.Expressed:
			p = 0.5
		}
	case model.Dominant:
		// Homozygous dominant animals are not tracked separately.
		if entry.State == model.Expressed {
			p = 0.5
		}
	}

	return clamp(p, 0, 1)
}

// PosHetFraction returns the entry's posHet as a fraction in [0,1]. The
// second result is false when no usable posHet is recorded, including NaN and
// states other than het/normal.
func PosHetFraction(entry model.Entry) (float64, bool) {
	if entry.PosHet == nil {
		return 0, false
	}
	if entry.State != model.Het && entry.State != model.Normal {
		return 0, false
	}
	v := *entry.PosHet
	if math.IsNaN(v) {
		return 0, false
	}
	return clamp(v, 0, 100) / 100, true
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
