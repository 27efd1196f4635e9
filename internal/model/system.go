package model

import (
	"errors"
	"fmt"

	"github.com/Patrick-Hummel/AI-Simscape-Model-Generator/internal/blocks"
)

// MATLAB simulation defaults applied to every new system.
const (
	DefaultSolver   = "ode23t"
	DefaultStopTime = 100
)

// ErrSubsystemNotFound is returned when a unique name does not match
// any subsystem in the system.
var ErrSubsystemNotFound = errors.New("model: subsystem not found")

// System is the complete detailed model: top-level components such as
// the solver and electrical reference, the subsystems and the
// connections between them, plus the simulation parameters.
type System struct {
	Container

	subsystems []*Subsystem

	Solver   string
	StopTime int
}

// NewSystem creates an empty system with default simulation
// parameters and a fresh block ID space. An empty name defaults to
// NewSystem.
func NewSystem(name string) *System {
	if name == "" {
		name = "NewSystem"
	}
	return &System{
		Container: newContainer(name, blocks.NewAllocator()),
		Solver:    DefaultSolver,
		StopTime:  DefaultStopTime,
	}
}

// Parameters returns the simulation parameter dictionary consumed by
// the simulation scripts.
func (sys *System) Parameters() map[string]any {
	return map[string]any{"Solver": sys.Solver, "StopTime": sys.StopTime}
}

// AddSubsystem appends subsystems to the system.
func (sys *System) AddSubsystem(subs ...*Subsystem) {
	sys.subsystems = append(sys.subsystems, subs...)
}

// Subsystems returns the subsystem list in insertion order.
func (sys *System) Subsystems() []*Subsystem { return sys.subsystems }

// SubsystemNames returns the unique names of all subsystems in
// insertion order.
func (sys *System) SubsystemNames() []string {
	names := make([]string, 0, len(sys.subsystems))
	for _, sub := range sys.subsystems {
		names = append(names, sub.UniqueName())
	}
	return names
}

// SubsystemByUniqueName looks a subsystem up by its unique name.
func (sys *System) SubsystemByUniqueName(name string) (*Subsystem, bool) {
	for _, sub := range sys.subsystems {
		if sub.UniqueName() == name {
			return sub, true
		}
	}
	return nil, false
}

// RemoveSubsystemByUniqueName removes the named subsystem and every
// top-level connection touching it.
func (sys *System) RemoveSubsystemByUniqueName(name string) error {
	for i, sub := range sys.subsystems {
		if sub.UniqueName() == name {
			sys.subsystems = append(sys.subsystems[:i], sys.subsystems[i+1:]...)
			sys.RemoveConnectionsTouching(name)
			return nil
		}
	}
	return fmt.Errorf("remove subsystem %s: %w", name, ErrSubsystemNotFound)
}

// EndpointByUniqueName resolves a unique name against the system's
// top-level components and subsystems.
func (sys *System) EndpointByUniqueName(name string) (Endpoint, bool) {
	if component, ok := sys.ComponentByUniqueName(name); ok {
		return component, true
	}
	if sub, ok := sys.SubsystemByUniqueName(name); ok {
		return sub, true
	}
	return nil, false
}

// CheckAllConnections normalizes the port names of the system's own
// connections and of every subsystem's connections, returning the
// combined warnings.
func (sys *System) CheckAllConnections() []string {
	warnings := sys.CheckConnections()
	for _, sub := range sys.subsystems {
		warnings = append(warnings, sub.CheckConnections()...)
	}
	return warnings
}
