package smallworld

import (
	"fmt"

	da "github.com/rmt1947/cov-swn/pkg/datastructure"
	"github.com/rmt1947/cov-swn/pkg/metrics"
	"github.com/rmt1947/cov-swn/pkg/random"
	"github.com/rmt1947/cov-swn/pkg/util"
	"go.uber.org/zap"
)

type Config struct {
	NumberOfVertices int
	HalfDegree       int
	Beta             float64
}

// Builder constructs a Watts-Strogatz small-world network.
//
// [1] D.J. Watts & S.H. Strogatz 1998 Nature, 393, 440-442.
type Builder struct {
	graph      *da.AdjacencyStore
	n          int
	halfDegree int
	beta       float64
	threshold  random.Threshold
	rd         *random.Stream
	logger     *zap.Logger

	rewired int
	skipped int
}

func NewBuilder(cfg Config, rd *random.Stream, logger *zap.Logger) (*Builder, error) {
	if cfg.HalfDegree <= 0 {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "halfdegree must be positive, got %d", cfg.HalfDegree)
	}
	if cfg.NumberOfVertices <= 2*cfg.HalfDegree {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "too few nodes: must exceed %d", 2*cfg.HalfDegree)
	}
	threshold, err := random.Quantize(cfg.Beta)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "beta out of range")
	}

	return &Builder{
		graph:      da.NewAdjacencyStore(cfg.NumberOfVertices),
		n:          cfg.NumberOfVertices,
		halfDegree: cfg.HalfDegree,
		beta:       cfg.Beta,
		threshold:  threshold,
		rd:         rd,
		logger:     logger,
	}, nil
}

func (b *Builder) GetGraph() *da.AdjacencyStore {
	return b.graph
}

func (b *Builder) ring(j, offset int) da.Index {
	m := (j + offset) % b.n
	if m < 0 {
		m += b.n
	}
	return da.Index(m)
}

// BuildRingLattice links every node to its halfdegree nearest nodes on each side.
// Each edge is requested from both endpoints; the second request is a no-op.
func (b *Builder) BuildRingLattice() {
	for j := 0; j < b.n; j++ {
		for o := 1; o <= b.halfDegree; o++ {
			b.graph.AddEdge(da.Index(j), b.ring(j, o))
		}
		for o := 1; o <= b.halfDegree; o++ {
			b.graph.AddEdge(da.Index(j), b.ring(j, -o))
		}
	}
}

/*
Rewire runs halfdegree laps. On lap l every node j, in index order, rewires its link to j+l+1
with probability beta to a uniformly chosen node. Draws equal to j, or already linked to j, are
rejected and redrawn, so a rewire never creates a self-loop or a duplicate edge.

The lattice link j-(j+l+1) is always still present on lap l: the only other way to remove it is
from node j+l+1 on a lap l' with l+l'+2 = 0 mod n, and l+l'+2 <= 2*halfdegree < n.
*/
func (b *Builder) Rewire() {
	for lap := 0; lap < b.halfDegree; lap++ {
		for j := 0; j < b.n; j++ {
			if !b.rd.Bernoulli(b.threshold) {
				continue
			}
			u := da.Index(j)
			m := b.ring(j, lap+1)

			if b.graph.Degree(u) >= b.n-1 {
				// every other node is already a neighbor; no target can be accepted
				b.skipped++
				continue
			}

			var other da.Index
			for {
				other = da.Index(b.rd.Intn(b.n))
				if other == u {
					continue
				}
				if !b.graph.Linked(other, u) {
					break
				}
			}

			removed := b.graph.RemoveEdge(u, m)
			util.AssertPanic(removed == da.LINK_REMOVED,
				fmt.Sprintf("smallworld: lattice link %d-%d missing on lap %d", u, m, lap))
			added := b.graph.AddEdge(u, other)
			util.AssertPanic(added == da.LINK_ADDED,
				fmt.Sprintf("smallworld: rewired link %d-%d already present", u, other))
			b.rewired++
		}
	}
}

// TallyDegrees bins every node's current degree. A tally that does not account for every node panics.
func (b *Builder) TallyDegrees() *metrics.DegreeTally {
	tally := metrics.NewDegreeTally(b.halfDegree)
	for j := 0; j < b.n; j++ {
		tally.Add(b.graph.Degree(da.Index(j)))
	}
	tally.AssertTotal(b.n)
	return tally
}

// Build runs the full construction: lattice, rewiring, invariant check and degree tally.
func (b *Builder) Build() *Network {
	b.BuildRingLattice()
	b.Rewire()

	if err := b.graph.Validate(); err != nil {
		panic(err)
	}

	tally := b.TallyDegrees()
	comp, components := b.graph.ConnectedComponents()
	largest := da.LargestComponent(comp, components)
	b.logger.Info("small-world network built",
		zap.Int("manynode", b.n),
		zap.Int("halfdegree", b.halfDegree),
		zap.Float64("beta", b.beta),
		zap.Float64("beta_quantized", b.threshold.Probability()),
		zap.Int("rewired", b.rewired),
		zap.Int("skipped", b.skipped),
		zap.Int("edges", b.graph.NumberOfEdges()),
		zap.Int("components", components),
		zap.Int("largest_component", largest))

	return &Network{
		graph:      b.graph,
		tally:      tally,
		halfDegree: b.halfDegree,
		beta:       b.beta,
		rewired:    b.rewired,
		skipped:    b.skipped,
		components: components,
		largest:    largest,
	}
}

// Build constructs a network from cfg with draws taken from rd.
func Build(cfg Config, rd *random.Stream, logger *zap.Logger) (*Network, error) {
	b, err := NewBuilder(cfg, rd, logger)
	if err != nil {
		return nil, err
	}
	return b.Build(), nil
}
