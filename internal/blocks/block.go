// Package blocks is the catalog of primitive simulation blocks: every
// supported kind with its library path, its ordered port list and its
// parameter contract. Blocks are pure data plus identity; all wiring
// lives in the model package.
package blocks

import (
	"errors"
	"fmt"
)

// ErrUnknownKind is returned when a kind selector is not in the
// registry.
var ErrUnknownKind = errors.New("blocks: unknown kind")

// ErrMissingParameter is returned when a serialized parameter
// dictionary lacks a key the kind requires.
var ErrMissingParameter = errors.New("blocks: missing required parameter")

// Kind names a concrete block type. The set of kinds is closed; see
// the registry table.
type Kind string

// Block is one primitive component instance. Kind and ID are fixed at
// construction; the port list is mutable only for resizable kinds;
// parameters may be changed through the concrete type.
type Block interface {
	Kind() Kind
	ID() int
	// UniqueName is Kind_ID, unique per allocator lifetime.
	UniqueName() string
	// Ports is the ordered decorated port list.
	Ports() []Port
	// Parameters is the dictionary the simulation backend applies to
	// the block, with any physical-plausibility derivations applied.
	Parameters() map[string]any
	// LibraryPath is the simulation library identifier, preserved
	// verbatim for the backend.
	LibraryPath() string
}

// SignalSink is implemented by blocks that take a control or
// modulation signal on a dedicated input port.
type SignalSink interface {
	Block
	// SignalPort returns the block's control-signal input.
	SignalPort() Port
}

// Resizable is implemented by variable-arity blocks (Mux, Demux,
// VectorConcatenate, SPMTSwitch). Resizing regenerates the whole
// ordered port list, it never patches in place.
type Resizable interface {
	Block
	Resize(n int)
}

// core carries the identity shared by every catalog block.
type core struct {
	kind  Kind
	id    int
	ports []Port
}

func newCore(a *Allocator, kind Kind, rawPorts ...string) core {
	return core{kind: kind, id: a.Next(kind), ports: ParsePorts(rawPorts...)}
}

func restoredCore(a *Allocator, kind Kind, id int, rawPorts ...string) core {
	return core{kind: kind, id: a.Reserve(kind, id), ports: ParsePorts(rawPorts...)}
}

func (c *core) Kind() Kind    { return c.kind }
func (c *core) ID() int       { return c.id }
func (c *core) Ports() []Port { return c.ports }

func (c *core) UniqueName() string {
	return fmt.Sprintf("%s_%d", c.kind, c.id)
}

// signalPort returns the first signal-role input port. Catalog kinds
// implementing SignalSink all declare exactly one.
func (c *core) signalPort() Port {
	for _, p := range c.ports {
		if p.Role == RoleSignal && p.Direction == DirIn {
			return p
		}
	}
	return Port{}
}

// LastPort returns the final port in a block's ordered list, which for
// resizable blocks is always the single output.
func LastPort(b Block) Port {
	ports := b.Ports()
	return ports[len(ports)-1]
}

// parameter-dictionary readers used by the restore constructors

func floatParam(params map[string]any, key string) (float64, error) {
	v, ok := params[key]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrMissingParameter, key)
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case string:
		var f float64
		if _, err := fmt.Sscanf(n, "%g", &f); err != nil {
			return 0, fmt.Errorf("blocks: parameter %q: %w", key, err)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("blocks: parameter %q has unsupported type %T", key, v)
	}
}

func intParam(params map[string]any, key string) (int, error) {
	f, err := floatParam(params, key)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

func stringParam(params map[string]any, key string) (string, error) {
	v, ok := params[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrMissingParameter, key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("blocks: parameter %q has unsupported type %T", key, v)
	}
	return s, nil
}

func boolParam(params map[string]any, key string) (bool, error) {
	v, ok := params[key]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrMissingParameter, key)
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("blocks: parameter %q has unsupported type %T", key, v)
	}
	return b, nil
}
