package phenotype

import (
	"fmt"
	"strings"

	"github.com/agenthands/clutch/internal/core/allele"
	"github.com/agenthands/clutch/internal/core/model"
)

// Compact renders a dense one-line genotype, e.g. "Pastel/super; Clown/het",
// with one segment per non-normal gene in catalog order. Hidden polygenic
// genes are left out. It ignores token dedup and precedence.
func Compact(g model.Genotype, genes []model.GeneDefinition) string {
	var segments []string

	for _, gene := range genes {
		if gene.Mode == model.Polygenic && !gene.IsVisible() {
			continue
		}
		e := g.Get(gene.Key)

		if gene.Mode == model.Recessive && e.State != model.Expressed {
			if frac, ok := allele.PosHetFraction(e); ok {
				if pct := NormalizePercent(frac * 100); pct > 0 {
					segments = append(segments, fmt.Sprintf("%s/%d%% het", gene.Name, pct))
				}
				continue
			}
		}

		if e.State == model.Normal || !e.State.Valid() {
			continue
		}
		segments = append(segments, fmt.Sprintf("%s/%s", gene.Name, e.State))
	}

	return strings.Join(segments, "; ")
}
