package datastructure

import (
	"fmt"

	"github.com/rmt1947/cov-swn/pkg/util"
)

type Index uint32

// Link reports what AddEdge/RemoveEdge did.
type Link uint8

const (
	LINK_ADDED Link = iota
	LINK_ALREADY_LINKED
	LINK_REMOVED
	LINK_NOT_LINKED
)

func (l Link) String() string {
	switch l {
	case LINK_ADDED:
		return "added"
	case LINK_ALREADY_LINKED:
		return "already linked"
	case LINK_REMOVED:
		return "removed"
	case LINK_NOT_LINKED:
		return "not linked"
	default:
		return "unknown"
	}
}

// AdjacencyStore is an undirected simple graph over a fixed vertex set [0, n).
// Every edge is stored on both endpoints; neighbor lists keep insertion order.
type AdjacencyStore struct {
	adj [][]Index
}

func NewAdjacencyStore(numberOfVertices int) *AdjacencyStore {
	adj := make([][]Index, numberOfVertices)
	for i := range adj {
		adj[i] = make([]Index, 0)
	}
	return &AdjacencyStore{adj: adj}
}

func (g *AdjacencyStore) NumberOfVertices() int {
	return len(g.adj)
}

func (g *AdjacencyStore) NumberOfEdges() int {
	sum := 0
	for _, nbs := range g.adj {
		sum += len(nbs)
	}
	return sum / 2
}

func (g *AdjacencyStore) Degree(u Index) int {
	return len(g.adj[u])
}

// Neighbors returns u's neighbor list. The slice is owned by the store and must not be modified.
func (g *AdjacencyStore) Neighbors(u Index) []Index {
	return g.adj[u]
}

func (g *AdjacencyStore) ForNeighbors(u Index, handle func(v Index)) {
	for _, v := range g.adj[u] {
		handle(v)
	}
}

func (g *AdjacencyStore) position(u, v Index) int {
	for i, w := range g.adj[u] {
		if w == v {
			return i
		}
	}
	return -1
}

// Linked reports whether u lists v. It only inspects u's side.
func (g *AdjacencyStore) Linked(u, v Index) bool {
	return g.position(u, v) >= 0
}

// AddEdge links u and v on both sides. Linking a vertex to itself, or finding the pair
// linked on one side only, panics: both mean the caller or the store is corrupted.
func (g *AdjacencyStore) AddEdge(u, v Index) Link {
	util.AssertPanic(u != v, fmt.Sprintf("datastructure: self-loop requested on vertex %d", u))

	pu, pv := g.position(u, v), g.position(v, u)
	if pu >= 0 || pv >= 0 {
		util.AssertPanic(pu >= 0 && pv >= 0,
			fmt.Sprintf("datastructure: asymmetric edge %d-%d", u, v))
		return LINK_ALREADY_LINKED
	}

	g.adj[u] = append(g.adj[u], v)
	g.adj[v] = append(g.adj[v], u)
	return LINK_ADDED
}

// RemoveEdge unlinks u and v on both sides, compacting each list in place.
func (g *AdjacencyStore) RemoveEdge(u, v Index) Link {
	pu, pv := g.position(u, v), g.position(v, u)
	if pu < 0 || pv < 0 {
		util.AssertPanic(pu < 0 && pv < 0,
			fmt.Sprintf("datastructure: asymmetric edge %d-%d", u, v))
		return LINK_NOT_LINKED
	}

	g.adj[u] = append(g.adj[u][:pu], g.adj[u][pu+1:]...)
	g.adj[v] = append(g.adj[v][:pv], g.adj[v][pv+1:]...)
	return LINK_REMOVED
}

// Validate walks every list and reports the first symmetry, self-loop or duplicate violation.
func (g *AdjacencyStore) Validate() error {
	n := Index(len(g.adj))
	for u := Index(0); u < n; u++ {
		seen := make(map[Index]struct{}, len(g.adj[u]))
		for _, v := range g.adj[u] {
			if v >= n {
				return util.WrapErrorf(nil, util.ErrInternal, "vertex %d lists out-of-range neighbor %d", u, v)
			}
			if v == u {
				return util.WrapErrorf(nil, util.ErrInternal, "vertex %d lists itself", u)
			}
			if _, dup := seen[v]; dup {
				return util.WrapErrorf(nil, util.ErrInternal, "vertex %d lists %d twice", u, v)
			}
			seen[v] = struct{}{}
			if !g.Linked(v, u) {
				return util.WrapErrorf(nil, util.ErrInternal, "edge %d-%d is not mirrored", u, v)
			}
		}
	}
	return nil
}

// Release drops every neighbor list. The store is empty afterwards.
func (g *AdjacencyStore) Release() {
	for i := range g.adj {
		g.adj[i] = nil
	}
	g.adj = nil
}
