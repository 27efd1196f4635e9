package model

import (
	"testing"

	"github.com/Patrick-Hummel/AI-Simscape-Model-Generator/internal/blocks"
)

func TestGraphConnectivity(t *testing.T) {
	sub := NewSubsystem(nil, "Wiring")
	battery := blocks.NewBattery(sub.Allocator())
	resistor := blocks.NewResistor(sub.Allocator())
	lamp := blocks.NewIncandescentLamp(sub.Allocator())
	if err := sub.AddComponent(battery, resistor, lamp); err != nil {
		t.Fatalf("AddComponent() error = %v", err)
	}
	sub.Connect(battery, "+", resistor, "L")
	sub.Connect(resistor, "R", lamp, "L")

	g := sub.Graph()
	if !g.Connected() {
		t.Fatal("Connected() = false for a chained branch")
	}
	if got := g.NodeCount(); got != 3 {
		t.Fatalf("NodeCount() = %d, want 3", got)
	}
	if !g.HasEdgeBetween(battery.UniqueName(), resistor.UniqueName()) {
		t.Fatal("missing battery-resistor edge")
	}
	if g.HasEdgeBetween(battery.UniqueName(), lamp.UniqueName()) {
		t.Fatal("battery-lamp edge reported without a connection")
	}

	// An isolated component splits the graph.
	diode := blocks.NewDiode(sub.Allocator())
	if err := sub.AddComponent(diode); err != nil {
		t.Fatalf("AddComponent() error = %v", err)
	}
	g = sub.Graph()
	if g.Connected() {
		t.Fatal("Connected() = true with an isolated diode")
	}
	if !g.HasNode(diode.UniqueName()) {
		t.Fatal("isolated diode missing from the graph")
	}
}

func TestGraphCollapsesParallelEdgesAndSelfLoops(t *testing.T) {
	sub := NewSubsystem(nil, "Wiring")
	battery := blocks.NewBattery(sub.Allocator())
	resistor := blocks.NewResistor(sub.Allocator())
	if err := sub.AddComponent(battery, resistor); err != nil {
		t.Fatalf("AddComponent() error = %v", err)
	}
	sub.Connect(battery, "+", resistor, "L")
	sub.Connect(resistor, "R", battery, "-")
	sub.Connect(battery, "+", battery, "-")

	g := sub.Graph()
	if got := g.EdgeCount(); got != 1 {
		t.Fatalf("EdgeCount() = %d, want parallel wires collapsed to 1", got)
	}
	if got := g.Degree(battery.UniqueName()); got != 1 {
		t.Fatalf("Degree(battery) = %d, want 1", got)
	}
}

func TestSystemGraphIncludesSubsystems(t *testing.T) {
	sys := NewSystem("demo")
	solver := blocks.NewSolver(sys.Allocator())
	if err := sys.AddComponent(solver); err != nil {
		t.Fatalf("AddComponent() error = %v", err)
	}
	source := NewSubsystem(sys.Allocator(), "BatterySubsystem")
	load := NewSubsystem(sys.Allocator(), "MissionSubsystem")
	sys.AddSubsystem(source, load)

	g := sys.Graph()
	if got := g.NodeCount(); got != 3 {
		t.Fatalf("NodeCount() = %d, want solver plus two subsystems", got)
	}
	if g.Connected() {
		t.Fatal("Connected() = true for three isolated nodes")
	}

	sys.Connect(solver, "RConn 1", source, "ConnectionPort_0")
	sys.Connect(source, "ConnectionPort_1", load, "ConnectionPort_2")

	if !sys.Graph().Connected() {
		t.Fatal("Connected() = false after wiring all nodes")
	}
}
