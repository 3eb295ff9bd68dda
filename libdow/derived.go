package libdow

import (
	"strconv"

	"github.com/katalvlaran/lvlath/bfs"
	"github.com/katalvlaran/lvlath/core"
	"github.com/pkg/errors"

	"github.com/dow-systems/godow/godow"
)

// BuildDerivedGraph builds the undirected trace graph of w over an
// alphabet of n generators.  Vertices are the signed generators -n..n
// plus the basepoint 0.  Reading w from the basepoint contributes one
// edge into the first letter, one edge between the exit of each letter
// and the entry of the next, and a closing edge from the exit of the
// last letter back to the basepoint, so a word of length m always yields
// m+1 edges.  Parallel edges and self loops are kept, they decide the
// cycle test below.
func vtxID(v int) string {
	return strconv.Itoa(v)
}

func BuildDerivedGraph(w godow.Word, n int) (*core.Graph, error) {
	if err := w.Validate(n); err != nil {
		return nil, err
	}

	g, err := core.NewGraph(core.WithMultiEdges(), core.WithLoops())
	if err != nil {
		return nil, errors.Wrap(err, "creating derived graph")
	}
	for v := -n; v <= n; v++ {
		if err := g.AddVertex(vtxID(v)); err != nil {
			return nil, errors.Wrapf(err, "adding vertex %d", v)
		}
	}

	addEdge := func(a, b int) error {
		_, err := g.AddEdge(vtxID(a), vtxID(b), 0)
		return errors.Wrapf(err, "adding edge {%d,%d}", a, b)
	}

	m := len(w)
	if err := addEdge(0, int(w[0])); err != nil {
		return nil, err
	}
	for i := 0; i+1 < m; i++ {
		if err := addEdge(-int(w[i]), int(w[i+1])); err != nil {
			return nil, err
		}
	}
	if err := addEdge(-int(w[m-1]), 0); err != nil {
		return nil, err
	}
	return g, nil
}

// IsSimpleCycle reports whether g is a single simple cycle through every
// vertex: as many edges as vertices, every vertex of degree exactly two,
// and one connected component.  A self loop puts degree two on its vertex
// but then strands the rest of the graph, so it can only pass on a single
// vertex, which never occurs here.
func IsSimpleCycle(g *core.Graph) bool {
	verts := g.Vertices()
	if len(verts) == 0 {
		return false
	}
	if g.EdgeCount() != len(verts) {
		return false
	}

	degree := make(map[string]int, len(verts))
	for _, e := range g.Edges() {
		degree[e.From]++
		degree[e.To]++
	}
	for _, id := range verts {
		if degree[id] != 2 {
			return false
		}
	}

	res, err := bfs.BFS(g, verts[0])
	if err != nil {
		return false
	}
	return len(res.Order) == len(verts)
}

// IsCycleWord reports whether the derived graph of w over n generators is
// a simple cycle visiting all 2n+1 vertices.
func IsCycleWord(w godow.Word, n int) (bool, error) {
	g, err := BuildDerivedGraph(w, n)
	if err != nil {
		return false, err
	}
	return IsSimpleCycle(g), nil
}
