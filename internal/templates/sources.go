package templates

import (
	"fmt"

	"github.com/Patrick-Hummel/AI-Simscape-Model-Generator/internal/blocks"
	"github.com/Patrick-Hummel/AI-Simscape-Model-Generator/internal/model"
)

// Source type selectors for the electrical source family.
const (
	SourceVoltage = "Voltage"
	SourceCurrent = "Current"
	SourceBattery = "Battery"
)

// Current type selectors for the electrical source family.
const (
	CurrentDC = "DC"
	CurrentAC = "AC"
)

// NewElectricalSourceSubsystem builds a source subsystem of the given
// type. Controllable sources carry an extra signal terminal ahead of
// the electrical pair and are driven from a workspace variable.
func NewElectricalSourceSubsystem(alloc *blocks.Allocator, sourceType, currentType string, controllable bool) (*model.Subsystem, error) {
	return newSourceSubsystem(alloc, "ElectricalSourceSubsystem", sourceType, currentType, controllable)
}

func NewVoltageSourceDCSubsystem(alloc *blocks.Allocator) (*model.Subsystem, error) {
	return newSourceSubsystem(alloc, "VoltageSourceDCSubsystem", SourceVoltage, CurrentDC, false)
}

func NewVoltageSourceACSubsystem(alloc *blocks.Allocator) (*model.Subsystem, error) {
	return newSourceSubsystem(alloc, "VoltageSourceACSubsystem", SourceVoltage, CurrentAC, false)
}

func NewControlledVoltageSourceDCSubsystem(alloc *blocks.Allocator) (*model.Subsystem, error) {
	return newSourceSubsystem(alloc, "ControlledVoltageSourceDCSubsystem", SourceVoltage, CurrentDC, true)
}

func NewControlledVoltageSourceACSubsystem(alloc *blocks.Allocator) (*model.Subsystem, error) {
	return newSourceSubsystem(alloc, "ControlledVoltageSourceACSubsystem", SourceVoltage, CurrentAC, true)
}

func NewCurrentSourceDCSubsystem(alloc *blocks.Allocator) (*model.Subsystem, error) {
	return newSourceSubsystem(alloc, "CurrentSourceDCSubsystem", SourceCurrent, CurrentDC, false)
}

func NewCurrentSourceACSubsystem(alloc *blocks.Allocator) (*model.Subsystem, error) {
	return newSourceSubsystem(alloc, "CurrentSourceACSubsystem", SourceCurrent, CurrentAC, false)
}

func NewControlledCurrentSourceDCSubsystem(alloc *blocks.Allocator) (*model.Subsystem, error) {
	return newSourceSubsystem(alloc, "ControlledCurrentSourceDCSubsystem", SourceCurrent, CurrentDC, true)
}

func NewControlledCurrentSourceACSubsystem(alloc *blocks.Allocator) (*model.Subsystem, error) {
	return newSourceSubsystem(alloc, "ControlledCurrentSourceACSubsystem", SourceCurrent, CurrentAC, true)
}

func NewBatterySubsystem(alloc *blocks.Allocator) (*model.Subsystem, error) {
	return newSourceSubsystem(alloc, "BatterySubsystem", SourceBattery, CurrentDC, false)
}

func newSourceSubsystem(alloc *blocks.Allocator, name, sourceType, currentType string, controllable bool) (*model.Subsystem, error) {
	sub := model.NewSubsystem(alloc, name)

	var source blocks.Block
	switch sourceType {
	case SourceVoltage:
		switch currentType {
		case CurrentDC:
			if controllable {
				source = blocks.NewControlledVoltageSource(sub.Allocator())
			} else {
				source = blocks.NewVoltageSourceDC(sub.Allocator())
			}
		case CurrentAC:
			if controllable {
				// TODO drive the controlled AC variants from a Sine
				// source instead of a workspace vector.
				source = blocks.NewControlledVoltageSource(sub.Allocator())
			} else {
				source = blocks.NewVoltageSourceAC(sub.Allocator())
			}
		default:
			return nil, fmt.Errorf("%w: current type must be %q or %q, got %q", ErrUnsupportedType, CurrentDC, CurrentAC, currentType)
		}
	case SourceCurrent:
		switch currentType {
		case CurrentDC:
			if controllable {
				source = blocks.NewControlledCurrentSource(sub.Allocator())
			} else {
				source = blocks.NewCurrentSourceDC(sub.Allocator())
			}
		case CurrentAC:
			if controllable {
				source = blocks.NewControlledCurrentSource(sub.Allocator())
			} else {
				source = blocks.NewCurrentSourceAC(sub.Allocator())
			}
		default:
			return nil, fmt.Errorf("%w: current type must be %q or %q, got %q", ErrUnsupportedType, CurrentDC, CurrentAC, currentType)
		}
	case SourceBattery:
		source = blocks.NewBattery(sub.Allocator())
	default:
		return nil, fmt.Errorf("%w: source type must be %q, %q or %q, got %q", ErrUnsupportedType, SourceVoltage, SourceCurrent, SourceBattery, sourceType)
	}
	if err := sub.AddComponent(source); err != nil {
		return nil, err
	}

	portIn, portOut := 0, 1
	if controllable {
		// Controlled sources lead with a signal terminal.
		portIn, portOut = 1, 2
		if _, err := sub.AddSignalFromWorkspace(source, source.Ports()[0].Raw); err != nil {
			return nil, err
		}
	}

	in := blocks.NewConnectionPort(sub.Allocator(), "left", blocks.PortTypeIn)
	if err := sub.AddComponent(in); err != nil {
		return nil, err
	}
	sub.Connect(in, in.Ports()[0].Raw, source, source.Ports()[portIn].Raw)

	out := blocks.NewConnectionPort(sub.Allocator(), "right", blocks.PortTypeOut)
	if err := sub.AddComponent(out); err != nil {
		return nil, err
	}
	sub.Connect(source, source.Ports()[portOut].Raw, out, out.Ports()[0].Raw)

	sub.CheckConnections()
	return sub, nil
}
