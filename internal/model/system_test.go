package model

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Patrick-Hummel/AI-Simscape-Model-Generator/internal/blocks"
)

func TestNewSystemDefaults(t *testing.T) {
	sys := NewSystem("")
	if got := sys.Name(); got != "NewSystem" {
		t.Fatalf("Name() = %q, want NewSystem", got)
	}

	want := map[string]any{"Solver": "ode23t", "StopTime": 100}
	if diff := cmp.Diff(want, sys.Parameters()); diff != "" {
		t.Fatalf("Parameters() mismatch (-want +got):\n%s", diff)
	}
}

func TestAddAndRemoveSubsystem(t *testing.T) {
	sys := NewSystem("demo")
	source := NewSubsystem(sys.Allocator(), "BatterySubsystem")
	load := NewSubsystem(sys.Allocator(), "MissionSubsystem")
	sys.AddSubsystem(source, load)

	want := []string{"BatterySubsystem_0", "MissionSubsystem_1"}
	if diff := cmp.Diff(want, sys.SubsystemNames()); diff != "" {
		t.Fatalf("SubsystemNames() mismatch (-want +got):\n%s", diff)
	}

	sys.Connect(source, "ConnectionPort_1", load, "ConnectionPort_2")

	if err := sys.RemoveSubsystemByUniqueName(source.UniqueName()); err != nil {
		t.Fatalf("RemoveSubsystemByUniqueName() error = %v", err)
	}
	if got := len(sys.Subsystems()); got != 1 {
		t.Fatalf("len(Subsystems()) = %d, want 1", got)
	}
	if got := len(sys.Connections()); got != 0 {
		t.Fatalf("len(Connections()) = %d, want 0 after cascade", got)
	}

	err := sys.RemoveSubsystemByUniqueName(source.UniqueName())
	if !errors.Is(err, ErrSubsystemNotFound) {
		t.Fatalf("second removal error = %v, want ErrSubsystemNotFound", err)
	}
}

func TestEndpointByUniqueName(t *testing.T) {
	sys := NewSystem("demo")
	solver := blocks.NewSolver(sys.Allocator())
	if err := sys.AddComponent(solver); err != nil {
		t.Fatalf("AddComponent() error = %v", err)
	}
	sub := NewSubsystem(sys.Allocator(), "PassiveElementSubsystem")
	sys.AddSubsystem(sub)

	if got, ok := sys.EndpointByUniqueName(solver.UniqueName()); !ok || got != Endpoint(solver) {
		t.Fatalf("EndpointByUniqueName(%q) = %v, %t", solver.UniqueName(), got, ok)
	}
	if got, ok := sys.EndpointByUniqueName(sub.UniqueName()); !ok || got != Endpoint(sub) {
		t.Fatalf("EndpointByUniqueName(%q) = %v, %t", sub.UniqueName(), got, ok)
	}
	if _, ok := sys.EndpointByUniqueName("Ghost_7"); ok {
		t.Fatal("EndpointByUniqueName(Ghost_7) resolved, want miss")
	}
}

func TestCheckAllConnections(t *testing.T) {
	sys := NewSystem("demo")
	sub := NewSubsystem(sys.Allocator(), "Sensing")
	sys.AddSubsystem(sub)

	source := blocks.NewControlledVoltageSource(sub.Allocator())
	conv := blocks.NewSimuPSConv(sub.Allocator())
	if err := sub.AddComponent(source, conv); err != nil {
		t.Fatalf("AddComponent() error = %v", err)
	}
	// Misdirected inside the subsystem.
	sub.Connect(source, "signalINRConn 1", conv, "IN1")

	reference := blocks.NewReference(sys.Allocator())
	if err := sys.AddComponent(reference); err != nil {
		t.Fatalf("AddComponent() error = %v", err)
	}
	// Misdirected at the system level.
	sys.Connect(reference, "INLConn 1", sub, "ConnectionPort_9")

	warnings := sys.CheckAllConnections()
	if len(warnings) != 2 {
		t.Fatalf("CheckAllConnections() returned %d warnings, want 2: %v", len(warnings), warnings)
	}
}
