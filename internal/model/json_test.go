package model

import (
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Patrick-Hummel/AI-Simscape-Model-Generator/internal/blocks"
)

// sampleSystem builds a small two-level system: solver and reference
// at the top, one subsystem with a powered resistor branch behind
// boundary ports.
func sampleSystem(t *testing.T) *System {
	t.Helper()
	sys := NewSystem("sample")
	alloc := sys.Allocator()

	sub := NewSubsystem(alloc, "PassiveElementSubsystem")
	in := blocks.NewConnectionPort(alloc, "left", blocks.PortTypeIn)
	out := blocks.NewConnectionPort(alloc, "right", blocks.PortTypeOut)
	resistor := blocks.NewResistor(alloc)
	battery := blocks.NewBattery(alloc)
	if err := sub.AddComponent(in, out, resistor, battery); err != nil {
		t.Fatalf("AddComponent() error = %v", err)
	}
	sub.Connect(in, in.Ports()[0].Raw, resistor, resistor.Ports()[0].Raw)
	sub.Connect(resistor, resistor.Ports()[1].Raw, battery, battery.Ports()[0].Raw)
	sub.Connect(battery, battery.Ports()[1].Raw, out, out.Ports()[0].Raw)
	sys.AddSubsystem(sub)

	solver := blocks.NewSolver(alloc)
	reference := blocks.NewReference(alloc)
	if err := sys.AddComponent(solver, reference); err != nil {
		t.Fatalf("AddComponent() error = %v", err)
	}
	sys.Connect(solver, solver.Ports()[0].Raw, sub, in.UniqueName())
	sys.Connect(reference, reference.Ports()[0].Raw, sub, in.UniqueName())

	return sys
}

func TestSystemJSONRoundTrip(t *testing.T) {
	sys := sampleSystem(t)

	data, err := sys.JSON()
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}

	loaded, err := SystemFromJSON(data)
	if err != nil {
		t.Fatalf("SystemFromJSON() error = %v", err)
	}

	again, err := loaded.JSON()
	if err != nil {
		t.Fatalf("JSON() after reload error = %v", err)
	}
	if diff := cmp.Diff(string(data), string(again)); diff != "" {
		t.Fatalf("serialized form changed across a reload (-first +second):\n%s", diff)
	}
}

func TestRoundTripPreservesBlockIDs(t *testing.T) {
	sys := sampleSystem(t)

	data, err := sys.JSON()
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}
	loaded, err := SystemFromJSON(data)
	if err != nil {
		t.Fatalf("SystemFromJSON() error = %v", err)
	}

	sub := loaded.Subsystems()[0]
	if _, ok := sub.ComponentByUniqueName("Resistor_0"); !ok {
		t.Fatalf("reloaded subsystem lost Resistor_0, has %v", sub.ComponentNames())
	}

	// The allocator continues behind the highest restored ID.
	next := blocks.NewResistor(loaded.Allocator())
	if got := next.UniqueName(); got != "Resistor_1" {
		t.Fatalf("next resistor = %q, want Resistor_1", got)
	}
}

func TestRoundTripKeepsSubsystemWiring(t *testing.T) {
	sys := sampleSystem(t)

	data, err := sys.JSON()
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}
	loaded, err := SystemFromJSON(data)
	if err != nil {
		t.Fatalf("SystemFromJSON() error = %v", err)
	}

	sub := loaded.Subsystems()[0]
	if got := len(sub.Connections()); got != 3 {
		t.Fatalf("reloaded subsystem has %d connections, want 3", got)
	}
	if got := len(sub.InPorts()); got != 1 {
		t.Fatalf("reloaded subsystem has %d in ports, want 1", got)
	}
	if got := len(loaded.Connections()); got != 2 {
		t.Fatalf("reloaded system has %d connections, want 2", got)
	}

	// System-level connections address the subsystem itself.
	conn := loaded.Connections()[0]
	if conn.To.UniqueName() != sub.UniqueName() {
		t.Fatalf("system connection points at %s, want %s", conn.To.UniqueName(), sub.UniqueName())
	}
}

func TestNaNConstantRoundTrip(t *testing.T) {
	sys := NewSystem("markers")
	sub := NewSubsystem(sys.Allocator(), "Sensing")
	marker := blocks.NewConstant(sys.Allocator(), math.NaN())
	if err := sub.AddComponent(marker); err != nil {
		t.Fatalf("AddComponent() error = %v", err)
	}
	sys.AddSubsystem(sub)

	data, err := sys.JSON()
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}
	if !strings.Contains(string(data), `"Value": "nan"`) {
		t.Fatalf("serialized marker missing string NaN:\n%s", data)
	}

	loaded, err := SystemFromJSON(data)
	if err != nil {
		t.Fatalf("SystemFromJSON() error = %v", err)
	}
	restored := findKind(t, loaded.Subsystems()[0].Components(), blocks.KindConstant).(*blocks.Constant)
	if !math.IsNaN(restored.Value) {
		t.Fatalf("restored marker = %v, want NaN", restored.Value)
	}
}

func TestSystemFromJSONDropsUnresolvableConnections(t *testing.T) {
	data := []byte(`{
        "name": "partial",
        "components": [
            {"id": "Solver_0", "type": "Solver", "parameters": {}}
        ],
        "subsystems": [],
        "connections": [
            {"from": "Solver_0#RConn 1", "to": "Ghost_9#LConn 1"}
        ],
        "parameters": {"Solver": "ode45", "StopTime": 25}
    }`)

	sys, err := SystemFromJSON(data)
	if err != nil {
		t.Fatalf("SystemFromJSON() error = %v", err)
	}
	if got := len(sys.Connections()); got != 0 {
		t.Fatalf("len(Connections()) = %d, want unresolvable connection dropped", got)
	}
	if sys.Solver != "ode45" || sys.StopTime != 25 {
		t.Fatalf("parameters = %q/%d, want ode45/25", sys.Solver, sys.StopTime)
	}
}

func TestSystemFromJSONMissingParameters(t *testing.T) {
	data := []byte(`{
        "name": "broken",
        "components": [{"id": "Resistor_0", "type": "Resistor"}],
        "subsystems": [],
        "connections": []
    }`)

	if _, err := SystemFromJSON(data); err == nil {
		t.Fatal("SystemFromJSON() accepted a component without parameters")
	}
}

func TestSystemFromJSONUnknownKind(t *testing.T) {
	data := []byte(`{
        "name": "broken",
        "components": [{"id": "Flux_0", "type": "Flux", "parameters": {}}],
        "subsystems": [],
        "connections": []
    }`)

	_, err := SystemFromJSON(data)
	if !errors.Is(err, blocks.ErrUnknownKind) {
		t.Fatalf("SystemFromJSON() error = %v, want ErrUnknownKind", err)
	}
}

func TestSaveAndLoadJSON(t *testing.T) {
	sys := sampleSystem(t)
	dir := t.TempDir()

	path, err := sys.SaveJSON(dir)
	if err != nil {
		t.Fatalf("SaveJSON() error = %v", err)
	}

	base := filepath.Base(path)
	if !strings.HasPrefix(base, "system_sample_") || !strings.HasSuffix(base, ".json") {
		t.Fatalf("written filename = %q, want system_sample_<timestamp>.json", base)
	}

	loaded, err := LoadJSON(path)
	if err != nil {
		t.Fatalf("LoadJSON() error = %v", err)
	}
	if loaded.Name() != sys.Name() {
		t.Fatalf("loaded name = %q, want %q", loaded.Name(), sys.Name())
	}
}

func TestLoadJSONMissingFile(t *testing.T) {
	if _, err := LoadJSON(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("LoadJSON() on a missing file succeeded")
	}
}
