package datastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnectedComponents(t *testing.T) {
	testCases := []struct {
		name      string
		n         int
		edges     [][2]Index
		wantComp  []Index
		wantCount int
		largest   int
	}{
		{
			name:      "empty",
			n:         0,
			wantComp:  []Index{},
			wantCount: 0,
			largest:   0,
		},
		{
			name:      "isolated vertices",
			n:         3,
			wantComp:  []Index{0, 1, 2},
			wantCount: 3,
			largest:   1,
		},
		{
			name:      "two pieces",
			n:         6,
			edges:     [][2]Index{{0, 4}, {4, 2}, {1, 3}},
			wantComp:  []Index{0, 1, 0, 1, 0, 2},
			wantCount: 3,
			largest:   3,
		},
		{
			name:      "ring",
			n:         5,
			edges:     [][2]Index{{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 0}},
			wantComp:  []Index{0, 0, 0, 0, 0},
			wantCount: 1,
			largest:   5,
		},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			g := NewAdjacencyStore(tt.n)
			for _, e := range tt.edges {
				g.AddEdge(e[0], e[1])
			}
			comp, count := g.ConnectedComponents()
			assert.Equal(t, tt.wantComp, comp)
			assert.Equal(t, tt.wantCount, count)
			assert.Equal(t, tt.largest, g.LargestComponentSize())
		})
	}
}
