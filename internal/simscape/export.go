// Package simscape flattens a detailed system model into the data the
// MATLAB/Simulink backend consumes and renders it as a standalone
// build script. The export carries, per block, the library path, the
// diagram position, the canonical port list and the stringified
// parameter dictionary; the script replays the model construction one
// backend call at a time.
package simscape

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Patrick-Hummel/AI-Simscape-Model-Generator/internal/blocks"
	"github.com/Patrick-Hummel/AI-Simscape-Model-Generator/internal/model"
)

// Parameter is one stringified name/value pair, ready for set_param.
type Parameter struct {
	Name  string
	Value string
}

// BlockData is the backend view of one block. Parameters holds only
// the keys the backend applies; bookkeeping keys (underscore prefix)
// are dropped. Ports is the canonical port list, outputs first.
type BlockData struct {
	Name       string
	Kind       string
	Library    string
	Position   [4]int
	Ports      []string
	Parameters []Parameter
}

// Line is one routed connection inside a subsystem, both endpoints in
// "Block/port" form.
type Line struct {
	From string
	To   string
}

// SubsystemData is the backend view of one subsystem shell and its
// contents.
type SubsystemData struct {
	Name     string
	Position [4]int
	Blocks   []BlockData
	Lines    []Line
}

// HandleRef addresses one endpoint of a top-level line. Block
// endpoints name a port-handle group and a 1-based index on the block
// itself; subsystem endpoints go through the boundary connection-port
// block inside the subsystem.
type HandleRef struct {
	Subsystem bool
	// Path is the block's unique name, or "Subsystem/ConnectionPort"
	// for subsystem endpoints.
	Path string
	// Conn and Index pick the handle group for block endpoints.
	Conn  string
	Index int
}

// TopLine is one top-level connection between two resolved handles.
type TopLine struct {
	From HandleRef
	To   HandleRef
}

// SystemData is the complete flattened model.
type SystemData struct {
	Name       string
	Parameters []Parameter
	Subsystems []SubsystemData
	Blocks     []BlockData
	Lines      []TopLine
}

// Export flattens sys for the simulation backend. Subsystems come
// first in the position grid, top-level blocks after them; inside each
// subsystem the grid restarts. Port names are taken as stored, so the
// system should have passed its connection check first.
func Export(sys *model.System) (*SystemData, error) {
	data := &SystemData{
		Name:       sys.Name(),
		Parameters: stringifyParameters(sys.Parameters()),
	}

	grid := Positions(len(sys.Subsystems()) + len(sys.Components()))
	for i, sub := range sys.Subsystems() {
		data.Subsystems = append(data.Subsystems, exportSubsystem(sub, grid[i]))
	}
	offset := len(sys.Subsystems())
	for i, component := range sys.Components() {
		data.Blocks = append(data.Blocks, exportBlock(component, grid[offset+i]))
	}

	for _, conn := range sys.Connections() {
		from, err := resolveHandle(conn.From, conn.FromPort)
		if err != nil {
			return nil, err
		}
		to, err := resolveHandle(conn.To, conn.ToPort)
		if err != nil {
			return nil, err
		}
		data.Lines = append(data.Lines, TopLine{From: from, To: to})
	}
	return data, nil
}

func exportSubsystem(sub *model.Subsystem, pos [4]int) SubsystemData {
	sd := SubsystemData{Name: sub.UniqueName(), Position: pos}
	grid := Positions(len(sub.Components()))
	for i, component := range sub.Components() {
		sd.Blocks = append(sd.Blocks, exportBlock(component, grid[i]))
	}
	for _, conn := range sub.Connections() {
		sd.Lines = append(sd.Lines, Line{From: conn.FromPath(), To: conn.ToPath()})
	}
	return sd
}

func exportBlock(b blocks.Block, pos [4]int) BlockData {
	return BlockData{
		Name:       b.UniqueName(),
		Kind:       string(b.Kind()),
		Library:    b.LibraryPath(),
		Position:   pos,
		Ports:      canonicalPorts(b.Ports()),
		Parameters: stringifyParameters(b.Parameters()),
	}
}

// canonicalPorts strips the port decorations and orders the names by
// PortOrder, keeping declaration order within a rank.
func canonicalPorts(ports []blocks.Port) []string {
	sorted := append([]blocks.Port(nil), ports...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return PortOrder(sorted[i].Raw) < PortOrder(sorted[j].Raw)
	})
	names := make([]string, len(sorted))
	for i, p := range sorted {
		names[i] = p.Name
	}
	return names
}

// stringifyParameters sorts the parameter dictionary by name and
// renders every value the way set_param expects. Underscore-prefixed
// keys are internal bookkeeping and are not exported.
func stringifyParameters(params map[string]any) []Parameter {
	names := make([]string, 0, len(params))
	for name := range params {
		if strings.HasPrefix(name, "_") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Parameter, len(names))
	for i, name := range names {
		out[i] = Parameter{Name: name, Value: fmt.Sprint(params[name])}
	}
	return out
}

// resolveHandle maps a top-level connection endpoint onto the handle
// the backend will look up. A block port must name a handle group and
// an index, "RConn 1" style.
func resolveHandle(endpoint model.Endpoint, port string) (HandleRef, error) {
	if _, ok := endpoint.(*model.Subsystem); ok {
		return HandleRef{Subsystem: true, Path: endpoint.UniqueName() + "/" + port}, nil
	}
	fields := strings.Fields(port)
	if len(fields) != 2 {
		return HandleRef{}, fmt.Errorf("simscape: port %q of %s has no addressable handle", port, endpoint.UniqueName())
	}
	index, err := strconv.Atoi(fields[1])
	if err != nil {
		return HandleRef{}, fmt.Errorf("simscape: port %q of %s has no addressable handle", port, endpoint.UniqueName())
	}
	return HandleRef{Path: endpoint.UniqueName(), Conn: fields[0], Index: index}, nil
}
