// Package builder expands an abstract circuit into a detailed system.
// Every abstract component is instantiated through its catalog
// association as a subsystem template or a bare catalog block, every
// abstract connection is resolved to a concrete pair of unused ports,
// and the global solver and electrical reference are anchored to the
// first subsystem.
package builder

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Patrick-Hummel/AI-Simscape-Model-Generator/internal/abstract"
	"github.com/Patrick-Hummel/AI-Simscape-Model-Generator/internal/blocks"
	"github.com/Patrick-Hummel/AI-Simscape-Model-Generator/internal/model"
	"github.com/Patrick-Hummel/AI-Simscape-Model-Generator/internal/templates"
)

var (
	// ErrUnknownKind is returned when an abstract component's kind has
	// no catalog association to expand to.
	ErrUnknownKind = errors.New("builder: unknown abstract kind")

	// ErrPortsExhausted is returned when an abstract component carries
	// more connections than its concrete form has unused ports.
	ErrPortsExhausted = errors.New("builder: component ports exhausted")
)

// Builder expands abstract circuits into detailed systems.
type Builder struct {
	log *zap.Logger
}

// New creates a builder. A nil logger disables logging.
func New(log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{log: log}
}

// Build expands the abstract circuit into a detailed system with the
// given name.
//
// Components are instantiated in declaration order; an abstract kind
// outside the catalog fails the build. Each connection then claims the
// next unused port on both sides: subsystem endpoints claim boundary
// ports (output side and input side separately), block endpoints claim
// ports from their single port list. Claims are never reused within
// one build, so connection order decides which concrete port an edge
// binds to. A connection naming a component that is not in the circuit
// is skipped and logged; a component with no unused port left fails
// the build. The solver and electrical reference are added last and
// wired to the first subsystem's first input port; a system without
// such a port keeps them unwired.
func (b *Builder) Build(abs *abstract.System, name string) (*model.System, error) {
	sys := model.NewSystem(name)

	endpoints := make(map[string]model.Endpoint, len(abs.Components))
	for _, component := range abs.Components {
		info, ok := abstract.Lookup(component.Kind)
		if !ok {
			return nil, fmt.Errorf("build %s: %w: %q", component.UniqueName(), ErrUnknownKind, component.Kind)
		}
		if info.IsBlock() {
			block, err := blocks.New(info.BlockKind, sys.Allocator())
			if err != nil {
				return nil, fmt.Errorf("build %s: %w", component.UniqueName(), err)
			}
			if err := sys.AddComponent(block); err != nil {
				return nil, fmt.Errorf("build %s: %w", component.UniqueName(), err)
			}
			endpoints[component.UniqueName()] = block
			continue
		}
		sub, err := templates.New(info.Template, sys.Allocator())
		if err != nil {
			return nil, fmt.Errorf("build %s: %w", component.UniqueName(), err)
		}
		sys.AddSubsystem(sub)
		endpoints[component.UniqueName()] = sub
	}

	claimed := make(map[string]map[string]bool, len(endpoints))
	claims := func(name string) map[string]bool {
		set := claimed[name]
		if set == nil {
			set = make(map[string]bool)
			claimed[name] = set
		}
		return set
	}

	for _, conn := range abs.Connections {
		from, okFrom := endpoints[conn.From]
		to, okTo := endpoints[conn.To]
		if !okFrom || !okTo {
			b.log.Warn("skipping connection with unknown endpoint",
				zap.String("from", conn.From),
				zap.String("to", conn.To))
			continue
		}
		fromPort, err := claimSourcePort(from, claims(conn.From))
		if err != nil {
			return nil, fmt.Errorf("connect %s -> %s: %w", conn.From, conn.To, err)
		}
		toPort, err := claimTargetPort(to, claims(conn.To))
		if err != nil {
			return nil, fmt.Errorf("connect %s -> %s: %w", conn.From, conn.To, err)
		}
		sys.Connect(from, fromPort, to, toPort)
	}

	solver := blocks.NewSolver(sys.Allocator())
	reference := blocks.NewReference(sys.Allocator())
	if err := sys.AddComponent(solver, reference); err != nil {
		return nil, fmt.Errorf("add solver and reference: %w", err)
	}
	if anchor, port, ok := anchorPort(sys); ok {
		sys.Connect(solver, solver.Ports()[0].Raw, anchor, port)
		sys.Connect(reference, reference.Ports()[0].Raw, anchor, port)
	} else {
		b.log.Warn("no subsystem input port to anchor solver and reference",
			zap.String("system", sys.Name()))
	}

	for _, warning := range sys.CheckAllConnections() {
		b.log.Warn("connection check", zap.String("detail", warning))
	}

	b.log.Info("expanded abstract circuit",
		zap.String("system", sys.Name()),
		zap.Int("subsystems", len(sys.Subsystems())),
		zap.Int("components", len(sys.Components())),
		zap.Int("connections", len(sys.Connections())))

	return sys, nil
}

// claimSourcePort claims the endpoint's next unused source-side port:
// the first unclaimed output boundary port for subsystems, the first
// unclaimed port in declaration order for blocks.
func claimSourcePort(endpoint model.Endpoint, used map[string]bool) (string, error) {
	switch e := endpoint.(type) {
	case *model.Subsystem:
		if port, ok := nextBoundaryPort(e.OutPorts(), used); ok {
			return port, nil
		}
	case blocks.Block:
		if port, ok := nextBlockPort(e, used); ok {
			return port, nil
		}
	}
	return "", fmt.Errorf("%s: %w", endpoint.UniqueName(), ErrPortsExhausted)
}

// claimTargetPort is the input-side counterpart of claimSourcePort.
func claimTargetPort(endpoint model.Endpoint, used map[string]bool) (string, error) {
	switch e := endpoint.(type) {
	case *model.Subsystem:
		if port, ok := nextBoundaryPort(e.InPorts(), used); ok {
			return port, nil
		}
	case blocks.Block:
		if port, ok := nextBlockPort(e, used); ok {
			return port, nil
		}
	}
	return "", fmt.Errorf("%s: %w", endpoint.UniqueName(), ErrPortsExhausted)
}

func nextBoundaryPort(ports []*blocks.ConnectionPort, used map[string]bool) (string, bool) {
	for _, port := range ports {
		name := port.UniqueName()
		if !used[name] {
			used[name] = true
			return name, true
		}
	}
	return "", false
}

func nextBlockPort(block blocks.Block, used map[string]bool) (string, bool) {
	for _, port := range block.Ports() {
		if !used[port.Raw] {
			used[port.Raw] = true
			return port.Raw, true
		}
	}
	return "", false
}

// anchorPort returns the first subsystem and the unique name of its
// first input boundary port. The anchor is claimed by neither side, so
// it may already carry a circuit connection.
func anchorPort(sys *model.System) (*model.Subsystem, string, bool) {
	subs := sys.Subsystems()
	if len(subs) == 0 {
		return nil, "", false
	}
	in := subs[0].InPorts()
	if len(in) == 0 {
		return nil, "", false
	}
	return subs[0], in[0].UniqueName(), true
}
