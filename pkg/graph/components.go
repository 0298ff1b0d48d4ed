package graph

// Components splits g into its connected components, ignoring edge
// direction. Each component is an induced subgraph that shares vertex
// and edge values with g; mutating a component's attributes mutates the
// original. Components are ordered by the first appearance of their
// vertices in g, and vertices and edges inside each component keep g's
// insertion order.
func Components(g *Graph) []*Graph {
	adj := make(map[string][]string, len(g.vertices))
	for _, e := range g.edges {
		adj[e.From] = append(adj[e.From], e.To)
		adj[e.To] = append(adj[e.To], e.From)
	}

	compOf := make(map[string]int, len(g.vertices))
	count := 0
	for _, key := range g.order {
		if _, seen := compOf[key]; seen {
			continue
		}
		// BFS over the undirected adjacency
		queue := []string{key}
		compOf[key] = count
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, next := range adj[cur] {
				if _, seen := compOf[next]; !seen {
					compOf[next] = count
					queue = append(queue, next)
				}
			}
		}
		count++
	}

	out := make([]*Graph, count)
	for i := range out {
		out[i] = New(nil)
	}
	for _, key := range g.order {
		c := out[compOf[key]]
		c.vertices[key] = g.vertices[key]
		c.order = append(c.order, key)
	}
	for _, e := range g.edges {
		c := out[compOf[e.From]]
		c.edges = append(c.edges, e)
	}
	return out
}

// ComponentCount returns the number of connected components of g.
func ComponentCount(g *Graph) int {
	return len(Components(g))
}

// ComponentContaining returns the connected component that contains the
// vertex with the given key, or false when no such vertex exists.
func ComponentContaining(g *Graph, key string) (*Graph, bool) {
	if !g.HasVertex(key) {
		return nil, false
	}
	for _, c := range Components(g) {
		if c.HasVertex(key) {
			return c, true
		}
	}
	return nil, false
}
