package smallworld

import (
	da "github.com/rmt1947/cov-swn/pkg/datastructure"
	"github.com/rmt1947/cov-swn/pkg/metrics"
)

// Network is a built graph together with its construction summary.
// After construction nothing mutates the graph.
type Network struct {
	graph      *da.AdjacencyStore
	tally      *metrics.DegreeTally
	halfDegree int
	beta       float64
	rewired    int
	skipped    int
	components int
	largest    int
}

func (nw *Network) GetGraph() *da.AdjacencyStore {
	return nw.graph
}

func (nw *Network) GetTally() *metrics.DegreeTally {
	return nw.tally
}

func (nw *Network) GetHalfDegree() int {
	return nw.halfDegree
}

func (nw *Network) GetBeta() float64 {
	return nw.beta
}

func (nw *Network) NumberOfVertices() int {
	return nw.graph.NumberOfVertices()
}

func (nw *Network) GetRewired() int {
	return nw.rewired
}

func (nw *Network) GetSkipped() int {
	return nw.skipped
}

// GetComponents is the number of connected components right after construction.
func (nw *Network) GetComponents() int {
	return nw.components
}

func (nw *Network) GetLargestComponent() int {
	return nw.largest
}

// Release frees the graph storage. The network must not be used afterwards.
func (nw *Network) Release() {
	if nw.graph != nil {
		nw.graph.Release()
		nw.graph = nil
	}
	nw.tally = nil
}
