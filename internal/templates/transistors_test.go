package templates

import (
	"errors"
	"testing"

	"github.com/Patrick-Hummel/AI-Simscape-Model-Generator/internal/blocks"
)

func TestNChannelMOSFETTemplate(t *testing.T) {
	sub, err := NewNChannelMOSFETSubsystem(blocks.NewAllocator())
	if err != nil {
		t.Fatalf("NewNChannelMOSFETSubsystem failed: %v", err)
	}
	if got := len(sub.Components()); got != 16 {
		t.Fatalf("component count = %d, want 16", got)
	}
	if countKind(sub.Components(), blocks.KindCurrentSensor) != 2 {
		t.Fatalf("current sensor count = %d, want 2", countKind(sub.Components(), blocks.KindCurrentSensor))
	}
	if countKind(sub.Components(), blocks.KindVoltageSensor) != 1 {
		t.Fatalf("voltage sensor count = %d, want 1", countKind(sub.Components(), blocks.KindVoltageSensor))
	}
	if got := len(sub.InPorts()); got != 1 {
		t.Errorf("boundary input count = %d, want 1", got)
	}
	if got := len(sub.OutPorts()); got != 2 {
		t.Errorf("boundary output count = %d, want 2", got)
	}

	conns := sub.Connections()
	if len(conns) != 16 {
		t.Fatalf("connection count = %d, want 16", len(conns))
	}
	// Gate current sensor in series on the boundary input path.
	if !hasConnection(conns, "ConnectionPort_0", "RConn 1", "CurrentSensor_0", "RConn 2") {
		t.Errorf("missing boundary input to gate sensor connection")
	}
	if !hasConnection(conns, "CurrentSensor_0", "LConn 1", "NChannelMOSFET_0", "LConn 1") {
		t.Errorf("missing gate sensor to transistor connection")
	}
	// Drain current sensor in series toward the first boundary output.
	if !hasConnection(conns, "NChannelMOSFET_0", "RConn 1", "CurrentSensor_1", "RConn 2") {
		t.Errorf("missing drain to drain sensor connection")
	}
	if !hasConnection(conns, "CurrentSensor_1", "LConn 1", "ConnectionPort_1", "RConn 1") {
		t.Errorf("missing drain sensor to boundary output connection")
	}
	// Voltage sensor across drain and source.
	if !hasConnection(conns, "NChannelMOSFET_0", "RConn 1", "VoltageSensor_0", "RConn 2") {
		t.Errorf("missing drain to voltage sensor connection")
	}
	if !hasConnection(conns, "VoltageSensor_0", "LConn 1", "NChannelMOSFET_0", "RConn 2") {
		t.Errorf("missing voltage sensor to source connection")
	}
	// Second boundary output straight onto the source terminal.
	if !hasConnection(conns, "ConnectionPort_2", "RConn 1", "NChannelMOSFET_0", "RConn 2") {
		t.Errorf("missing boundary output to source connection")
	}
}

func TestTransistorVariants(t *testing.T) {
	tests := []struct {
		template string
		kind     blocks.Kind
	}{
		{"NChannelMOSFETSubsystem", blocks.KindNChannelMOSFET},
		{"PChannelMOSFETSubsystem", blocks.KindPChannelMOSFET},
		{"NPNBipolarTransistorSubsystem", blocks.KindNPNBipolarTransistor},
		{"PNPBipolarTransistorSubsystem", blocks.KindPNPBipolarTransistor},
	}
	for _, tt := range tests {
		sub, err := New(tt.template, blocks.NewAllocator())
		if err != nil {
			t.Fatalf("New(%q) failed: %v", tt.template, err)
		}
		if countKind(sub.Components(), tt.kind) != 1 {
			t.Errorf("%s: no %s component", tt.template, tt.kind)
		}
	}
}

func TestTransistorRejectsUnknownType(t *testing.T) {
	if _, err := NewTransistorSubsystem(blocks.NewAllocator(), "JFET"); !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("unknown transistor error = %v, want ErrUnsupportedType", err)
	}
}
