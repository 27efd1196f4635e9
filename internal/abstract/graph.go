package abstract

import (
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Topology is an undirected gonum view of the abstract circuit, used
// for connectivity checks before the detailed build. Self-loops are
// skipped and parallel edges collapse.
type Topology struct {
	g     *simple.UndirectedGraph
	nodes map[string]graph.Node
}

// Graph returns the circuit's topology over component unique names.
func (s *System) Graph() *Topology {
	t := &Topology{
		g:     simple.NewUndirectedGraph(),
		nodes: make(map[string]graph.Node, len(s.Components)),
	}
	for _, conn := range s.Connections {
		from := t.node(conn.From)
		to := t.node(conn.To)
		if from.ID() == to.ID() {
			continue
		}
		t.g.SetEdge(t.g.NewEdge(from, to))
	}
	for _, c := range s.Components {
		t.node(c.UniqueName())
	}
	return t
}

func (t *Topology) node(name string) graph.Node {
	if n, ok := t.nodes[name]; ok {
		return n
	}
	n := t.g.NewNode()
	t.g.AddNode(n)
	t.nodes[name] = n
	return n
}

// NodeCount returns the number of components in the view.
func (t *Topology) NodeCount() int { return t.g.Nodes().Len() }

// EdgeCount returns the number of distinct component pairs connected.
func (t *Topology) EdgeCount() int { return t.g.Edges().Len() }

// HasEdgeBetween reports whether two components are directly
// connected.
func (t *Topology) HasEdgeBetween(a, b string) bool {
	na, okA := t.nodes[a]
	nb, okB := t.nodes[b]
	if !okA || !okB {
		return false
	}
	return t.g.HasEdgeBetween(na.ID(), nb.ID())
}

// Degree returns how many distinct components the named component is
// connected to.
func (t *Topology) Degree(name string) int {
	n, ok := t.nodes[name]
	if !ok {
		return 0
	}
	return t.g.From(n.ID()).Len()
}

// Connected reports whether every component is reachable from every
// other. The empty circuit counts as connected.
func (t *Topology) Connected() bool {
	return len(topo.ConnectedComponents(t.g)) <= 1
}

// Isolated returns the unique names of components with no connections,
// sorted. A well-formed circuit has none.
func (t *Topology) Isolated() []string {
	var isolated []string
	for name, n := range t.nodes {
		if t.g.From(n.ID()).Len() == 0 {
			isolated = append(isolated, name)
		}
	}
	sort.Strings(isolated)
	return isolated
}
