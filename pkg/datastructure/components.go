package datastructure

// ConnectedComponents labels every vertex with the id of its component and returns the
// labels together with the number of components. Ids are handed out in order of the
// smallest vertex of each component, so vertex 0 is always in component 0.
func (g *AdjacencyStore) ConnectedComponents() ([]Index, int) {
	n := Index(len(g.adj))
	comp := make([]Index, n)
	visited := make([]bool, n)

	count := 0
	stack := make([]Index, 0, 64)
	for s := Index(0); s < n; s++ {
		if visited[s] {
			continue
		}
		id := Index(count)
		count++

		visited[s] = true
		stack = append(stack[:0], s)
		for len(stack) > 0 {
			u := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			comp[u] = id
			for _, v := range g.adj[u] {
				if !visited[v] {
					visited[v] = true
					stack = append(stack, v)
				}
			}
		}
	}
	return comp, count
}

// LargestComponentSize returns the vertex count of the biggest component.
func (g *AdjacencyStore) LargestComponentSize() int {
	return LargestComponent(g.ConnectedComponents())
}

// LargestComponent sizes the biggest component from labels produced by ConnectedComponents.
func LargestComponent(comp []Index, count int) int {
	if count == 0 {
		return 0
	}
	sizes := make([]int, count)
	best := 0
	for _, c := range comp {
		sizes[c]++
		if sizes[c] > best {
			best = sizes[c]
		}
	}
	return best
}
