package cross

import (
	"strings"

	"github.com/agenthands/clutch/internal/core/allele"
	"github.com/agenthands/clutch/internal/core/model"
)

// PruneEpsilon is the smallest joint probability kept after each gene step.
const PruneEpsilon = 1e-9

type Outcome struct {
	State       model.Zygosity
	Probability float64
}

// Outcomes crosses one locus given each parent's chance of passing on the
// mutant allele. Outcomes are ordered homozygous-mutant, heterozygous,
// wildtype. Dominant genes have no separate homozygous outcome.
func Outcomes(gene model.GeneDefinition, pA, pB float64) []Outcome {
	hom := pA * pB
	wild := (1 - pA) * (1 - pB)
	het := 1 - hom - wild
	if het < 0 {
		het = 0
	}

	switch gene.Mode {
	case model.Recessive:
		return []Outcome{
			{State: model.Expressed, Probability: hom},
			{State: model.Het, Probability: het},
			{State: model.Normal, Probability: wild},
		}
	case model.IncompleteDominant:
		return []Outcome{
			{State: model.Super, Probability: hom},
			{State: model.Expressed, Probability: het},
			{State: model.Normal, Probability: wild},
		}
	case model.Dominant:
		return []Outcome{
			{State: model.Expressed, Probability: 1 - wild},
			{State: model.Normal, Probability: wild},
		}
	}
	return nil
}

// PolygenicState is expressed iff either parent expresses the trait.
func PolygenicState(a, b model.Entry) model.Zygosity {
	if a.State == model.Expressed || b.State == model.Expressed {
		return model.Expressed
	}
	return model.Normal
}

type Row struct {
	Key         string
	Probability float64
	Genotype    model.Genotype
}

// Distribution is the joint offspring distribution over a catalog. Pruned is
// the probability mass dropped by epsilon pruning.
type Distribution struct {
	Rows   []Row
	Pruned float64
}

func (d Distribution) Total() float64 {
	var sum float64
	for _, r := range d.Rows {
		sum += r.Probability
	}
	return sum
}

// arena holds joint-state rows as one flat slice of states, stride genes per
// row, so each expansion step allocates two slices instead of a map per row.
type arena struct {
	stride int
	states []model.Zygosity
	probs  []float64
}

func newArena(stride, capacity int) *arena {
	return &arena{
		stride: stride,
		states: make([]model.Zygosity, 0, stride*capacity),
		probs:  make([]float64, 0, capacity),
	}
}

func (a *arena) len() int { return len(a.probs) }

func (a *arena) row(i int) []model.Zygosity {
	return a.states[i*a.stride : (i+1)*a.stride]
}

func (a *arena) push(states []model.Zygosity, p float64) int {
	a.states = append(a.states, states...)
	a.probs = append(a.probs, p)
	return len(a.probs) - 1
}

// Expand builds the joint distribution gene by gene in catalog order.
// Polygenic genes do not branch; their single state is set on every row once
// the other loci are expanded.
func Expand(genes []model.GeneDefinition, parentA, parentB model.Genotype) Distribution {
	if len(genes) == 0 {
		return Distribution{}
	}

	n := len(genes)
	cur := newArena(n, 1)
	start := make([]model.Zygosity, n)
	for i := range start {
		start[i] = model.Normal
	}
	cur.push(start, 1)

	var pruned float64
	scratch := make([]model.Zygosity, n)

	for gi, gene := range genes {
		if gene.Mode == model.Polygenic {
			continue
		}
		pA := allele.Probability(gene, parentA.Get(gene.Key))
		pB := allele.Probability(gene, parentB.Get(gene.Key))
		outcomes := Outcomes(gene, pA, pB)

		next := newArena(n, cur.len()*len(outcomes))
		index := make(map[string]int, cur.len()*len(outcomes))

		for ri := 0; ri < cur.len(); ri++ {
			base := cur.probs[ri]
			for _, o := range outcomes {
				p := base * o.Probability
				if p == 0 {
					continue
				}
				copy(scratch, cur.row(ri))
				scratch[gi] = o.State

				k := partialKey(genes[:gi+1], scratch)
				if at, ok := index[k]; ok {
					next.probs[at] += p
					continue
				}
				index[k] = next.push(scratch, p)
			}
		}

		cur, pruned = prune(next, pruned)
	}

	for gi, gene := range genes {
		if gene.Mode != model.Polygenic {
			continue
		}
		state := PolygenicState(parentA.Get(gene.Key), parentB.Get(gene.Key))
		for ri := 0; ri < cur.len(); ri++ {
			cur.row(ri)[gi] = state
		}
	}

	rows := make([]Row, 0, cur.len())
	for ri := 0; ri < cur.len(); ri++ {
		states := cur.row(ri)
		g := make(model.Genotype, n)
		for gi, gene := range genes {
			g[gene.Key] = model.State(states[gi])
		}
		rows = append(rows, Row{
			Key:         partialKey(genes, states),
			Probability: cur.probs[ri],
			Genotype:    g,
		})
	}

	return Distribution{Rows: rows, Pruned: pruned}
}

func prune(a *arena, pruned float64) (*arena, float64) {
	out := newArena(a.stride, a.len())
	for i := 0; i < a.len(); i++ {
		if a.probs[i] < PruneEpsilon {
			pruned += a.probs[i]
			continue
		}
		out.push(a.row(i), a.probs[i])
	}
	return out, pruned
}

// partialKey is the joint-state key over the given leading genes.
func partialKey(genes []model.GeneDefinition, states []model.Zygosity) string {
	var sb strings.Builder
	for i, gene := range genes {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(gene.Key)
		sb.WriteByte('=')
		sb.WriteString(string(states[i]))
	}
	return sb.String()
}
