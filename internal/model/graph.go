package model

import (
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// WiringGraph is an undirected view of a container's connections with
// one node per endpoint unique name. Self-loops are skipped and
// parallel connections collapse into a single edge, so the view is
// suited for reachability questions rather than exact wire counts.
type WiringGraph struct {
	g     *simple.UndirectedGraph
	nodes map[string]graph.Node
}

func newWiringGraph(names []string, conns []*Connection) *WiringGraph {
	w := &WiringGraph{
		g:     simple.NewUndirectedGraph(),
		nodes: make(map[string]graph.Node, len(names)),
	}
	for _, conn := range conns {
		from := w.node(conn.From.UniqueName())
		to := w.node(conn.To.UniqueName())
		if from.ID() == to.ID() {
			continue
		}
		w.g.SetEdge(w.g.NewEdge(from, to))
	}
	for _, name := range names {
		w.node(name)
	}
	return w
}

func (w *WiringGraph) node(name string) graph.Node {
	if n, ok := w.nodes[name]; ok {
		return n
	}
	n := w.g.NewNode()
	w.g.AddNode(n)
	w.nodes[name] = n
	return n
}

// NodeCount returns the number of distinct endpoints.
func (w *WiringGraph) NodeCount() int { return w.g.Nodes().Len() }

// EdgeCount returns the number of distinct endpoint pairs wired
// together.
func (w *WiringGraph) EdgeCount() int { return w.g.Edges().Len() }

// HasNode reports whether the named endpoint appears in the graph.
func (w *WiringGraph) HasNode(name string) bool {
	_, ok := w.nodes[name]
	return ok
}

// HasEdgeBetween reports whether the two named endpoints are wired
// directly.
func (w *WiringGraph) HasEdgeBetween(a, b string) bool {
	na, okA := w.nodes[a]
	nb, okB := w.nodes[b]
	if !okA || !okB {
		return false
	}
	return w.g.HasEdgeBetween(na.ID(), nb.ID())
}

// Degree returns how many distinct endpoints the named endpoint is
// wired to.
func (w *WiringGraph) Degree(name string) int {
	n, ok := w.nodes[name]
	if !ok {
		return 0
	}
	return w.g.From(n.ID()).Len()
}

// Connected reports whether every endpoint is reachable from every
// other. The empty graph counts as connected.
func (w *WiringGraph) Connected() bool {
	return len(topo.ConnectedComponents(w.g)) <= 1
}

// Graph returns the subsystem's wiring as an undirected graph over
// its components.
func (s *Subsystem) Graph() *WiringGraph {
	return newWiringGraph(s.ComponentNames(), s.connections)
}

// Graph returns the system's top-level wiring as an undirected graph
// over its components and subsystems.
func (sys *System) Graph() *WiringGraph {
	names := append(sys.ComponentNames(), sys.SubsystemNames()...)
	return newWiringGraph(names, sys.connections)
}
