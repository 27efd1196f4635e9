package model

import (
	"errors"
	"fmt"

	"github.com/Patrick-Hummel/AI-Simscape-Model-Generator/internal/blocks"
)

var (
	// ErrComponentNotFound is returned when a unique name does not match
	// any component in the container.
	ErrComponentNotFound = errors.New("model: component not found")

	// ErrInvalidBoundaryPort is returned when a connection-port block
	// carries a port type other than Inport or Outport.
	ErrInvalidBoundaryPort = errors.New("model: invalid boundary port type")
)

// Container is the shared component-and-wiring store embedded by both
// Subsystem and System. Boundary connection ports are tracked in
// separate in/out lists in addition to the component list, so callers
// can wire across the boundary by position.
type Container struct {
	name        string
	alloc       *blocks.Allocator
	components  []blocks.Block
	connections []*Connection
	inPorts     []*blocks.ConnectionPort
	outPorts    []*blocks.ConnectionPort
}

func newContainer(name string, alloc *blocks.Allocator) Container {
	if alloc == nil {
		alloc = blocks.NewAllocator()
	}
	return Container{name: name, alloc: alloc}
}

// Name returns the container's display name.
func (ct *Container) Name() string { return ct.name }

// Allocator returns the ID allocator shared by every block created
// inside this container tree.
func (ct *Container) Allocator() *blocks.Allocator { return ct.alloc }

// AddComponent appends blocks to the container. Connection-port blocks
// are additionally classified into the boundary in/out lists by their
// port type.
func (ct *Container) AddComponent(components ...blocks.Block) error {
	for _, component := range components {
		if port, ok := component.(*blocks.ConnectionPort); ok {
			switch {
			case port.IsInput():
				ct.inPorts = append(ct.inPorts, port)
			case port.IsOutput():
				ct.outPorts = append(ct.outPorts, port)
			default:
				return fmt.Errorf("add component %s: %w", port.UniqueName(), ErrInvalidBoundaryPort)
			}
		}
		ct.components = append(ct.components, component)
	}
	return nil
}

// AddConnection appends connections to the container.
func (ct *Container) AddConnection(conns ...*Connection) {
	ct.connections = append(ct.connections, conns...)
}

// Connect creates a connection between two endpoint ports, stores it
// and returns it.
func (ct *Container) Connect(from Endpoint, fromPort string, to Endpoint, toPort string) *Connection {
	conn := NewConnection(from, fromPort, to, toPort)
	ct.connections = append(ct.connections, conn)
	return conn
}

// Components returns the component list in insertion order.
func (ct *Container) Components() []blocks.Block { return ct.components }

// Connections returns the connection list in insertion order.
func (ct *Container) Connections() []*Connection { return ct.connections }

// InPorts returns the boundary input connection ports in insertion
// order.
func (ct *Container) InPorts() []*blocks.ConnectionPort { return ct.inPorts }

// OutPorts returns the boundary output connection ports in insertion
// order.
func (ct *Container) OutPorts() []*blocks.ConnectionPort { return ct.outPorts }

// ComponentNames returns the unique names of all components in
// insertion order.
func (ct *Container) ComponentNames() []string {
	names := make([]string, 0, len(ct.components))
	for _, component := range ct.components {
		names = append(names, component.UniqueName())
	}
	return names
}

// ComponentByUniqueName looks a component up by its unique name.
func (ct *Container) ComponentByUniqueName(name string) (blocks.Block, bool) {
	for _, component := range ct.components {
		if component.UniqueName() == name {
			return component, true
		}
	}
	return nil, false
}

// RemoveComponentByUniqueName removes the named component, every
// connection touching it and, for boundary ports, its entry in the
// in/out port lists.
func (ct *Container) RemoveComponentByUniqueName(name string) error {
	idx := -1
	for i, component := range ct.components {
		if component.UniqueName() == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("remove component %s: %w", name, ErrComponentNotFound)
	}

	if port, ok := ct.components[idx].(*blocks.ConnectionPort); ok {
		ct.inPorts = removePort(ct.inPorts, port)
		ct.outPorts = removePort(ct.outPorts, port)
	}
	ct.components = append(ct.components[:idx], ct.components[idx+1:]...)
	ct.RemoveConnectionsTouching(name)
	return nil
}

func removePort(ports []*blocks.ConnectionPort, target *blocks.ConnectionPort) []*blocks.ConnectionPort {
	for i, port := range ports {
		if port == target {
			return append(ports[:i], ports[i+1:]...)
		}
	}
	return ports
}

// RemoveConnectionsTouching removes every connection with the named
// endpoint on either side and returns how many were removed.
func (ct *Container) RemoveConnectionsTouching(name string) int {
	kept := ct.connections[:0]
	removed := 0
	for _, conn := range ct.connections {
		if conn.Touches(name) {
			removed++
			continue
		}
		kept = append(kept, conn)
	}
	ct.connections = kept
	return removed
}

// RemoveConnectionByComponentNames removes the first connection between
// the two named endpoints, in either direction. It reports whether a
// connection was found.
func (ct *Container) RemoveConnectionByComponentNames(first, second string) bool {
	for i, conn := range ct.connections {
		fromName := conn.From.UniqueName()
		toName := conn.To.UniqueName()
		if (fromName == first && toName == second) || (fromName == second && toName == first) {
			ct.connections = append(ct.connections[:i], ct.connections[i+1:]...)
			return true
		}
	}
	return false
}

// CheckConnections strips the routing decorations from every stored
// port name so the simulation script sees the bare port identifiers.
// Connections whose direction contradicts their port decoration are
// left as they are; a warning describing each one is returned for the
// caller to log. The pass is idempotent.
func (ct *Container) CheckConnections() []string {
	var warnings []string
	for _, conn := range ct.connections {
		fromPort, misdirected := blocks.NormalizeFromPort(conn.FromPort)
		if misdirected {
			warnings = append(warnings, fmt.Sprintf("from port %q of %s is defined as an input port", conn.FromPort, conn.From.UniqueName()))
		}
		conn.FromPort = fromPort

		toPort, misdirected := blocks.NormalizeToPort(conn.ToPort)
		if misdirected {
			warnings = append(warnings, fmt.Sprintf("to port %q of %s is defined as an output port", conn.ToPort, conn.To.UniqueName()))
		}
		conn.ToPort = toPort
	}
	return warnings
}
