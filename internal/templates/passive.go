package templates

import (
	"fmt"

	"github.com/Patrick-Hummel/AI-Simscape-Model-Generator/internal/blocks"
	"github.com/Patrick-Hummel/AI-Simscape-Model-Generator/internal/model"
)

// Element type selectors for the passive element family.
const (
	ElementResistor          = "Resistor"
	ElementVaristor          = "Varistor"
	ElementCapacitor         = "Capacitor"
	ElementVariableCapacitor = "VariableCapacitor"
	ElementInductor          = "Inductor"
	ElementVariableInductor  = "VariableInductor"
	ElementDiode             = "Diode"
)

// NewPassiveElementSubsystem builds a passive element subsystem: the
// element sits between the two boundary ports with a voltage sensor in
// parallel and a current sensor in series on the input path. Variable
// elements carry an extra signal terminal and are driven from a
// workspace variable.
func NewPassiveElementSubsystem(alloc *blocks.Allocator, elementType string) (*model.Subsystem, error) {
	return newPassiveSubsystem(alloc, "PassiveElementSubsystem", elementType)
}

func NewResistorSubsystem(alloc *blocks.Allocator) (*model.Subsystem, error) {
	return newPassiveSubsystem(alloc, "ResistorSubsystem", ElementResistor)
}

func NewVaristorSubsystem(alloc *blocks.Allocator) (*model.Subsystem, error) {
	return newPassiveSubsystem(alloc, "VaristorSubsystem", ElementVaristor)
}

func NewCapacitorSubsystem(alloc *blocks.Allocator) (*model.Subsystem, error) {
	return newPassiveSubsystem(alloc, "CapacitorSubsystem", ElementCapacitor)
}

func NewVariableCapacitorSubsystem(alloc *blocks.Allocator) (*model.Subsystem, error) {
	return newPassiveSubsystem(alloc, "VariableCapacitorSubsystem", ElementVariableCapacitor)
}

func NewInductorSubsystem(alloc *blocks.Allocator) (*model.Subsystem, error) {
	return newPassiveSubsystem(alloc, "InductorSubsystem", ElementInductor)
}

func NewVariableInductorSubsystem(alloc *blocks.Allocator) (*model.Subsystem, error) {
	return newPassiveSubsystem(alloc, "VariableInductorSubsystem", ElementVariableInductor)
}

func NewDiodeSubsystem(alloc *blocks.Allocator) (*model.Subsystem, error) {
	return newPassiveSubsystem(alloc, "DiodeSubsystem", ElementDiode)
}

func newPassiveSubsystem(alloc *blocks.Allocator, name, elementType string) (*model.Subsystem, error) {
	sub := model.NewSubsystem(alloc, name)

	var element blocks.Block
	switch elementType {
	case ElementResistor:
		element = blocks.NewResistor(sub.Allocator())
	case ElementVaristor:
		v, err := blocks.NewVaristor(sub.Allocator(), blocks.VaristorLinear)
		if err != nil {
			return nil, err
		}
		element = v
	case ElementCapacitor:
		element = blocks.NewCapacitor(sub.Allocator())
	case ElementVariableCapacitor:
		element = blocks.NewVariableCapacitor(sub.Allocator())
	case ElementInductor:
		element = blocks.NewInductor(sub.Allocator())
	case ElementVariableInductor:
		element = blocks.NewVariableInductor(sub.Allocator())
	case ElementDiode:
		element = blocks.NewDiode(sub.Allocator())
	default:
		return nil, fmt.Errorf("%w: element type must be %q, %q, %q, %q, %q, %q or %q, got %q", ErrUnsupportedType,
			ElementResistor, ElementVaristor, ElementCapacitor, ElementVariableCapacitor,
			ElementInductor, ElementVariableInductor, ElementDiode, elementType)
	}
	if err := sub.AddComponent(element); err != nil {
		return nil, err
	}

	portIn, portOut := 0, 1
	if elementType == ElementVariableCapacitor || elementType == ElementVariableInductor {
		// Variable elements lead with a signal terminal.
		portIn, portOut = 1, 2
		if _, err := sub.AddSignalFromWorkspace(element, element.Ports()[0].Raw); err != nil {
			return nil, err
		}
	}

	in := blocks.NewConnectionPort(sub.Allocator(), "left", blocks.PortTypeIn)
	if err := sub.AddComponent(in); err != nil {
		return nil, err
	}
	out := blocks.NewConnectionPort(sub.Allocator(), "right", blocks.PortTypeOut)
	if err := sub.AddComponent(out); err != nil {
		return nil, err
	}

	if _, err := sub.AddSensorBetween(element, element.Ports()[portIn].Raw, element, element.Ports()[portOut].Raw, model.QuantityVoltage, true); err != nil {
		return nil, err
	}
	if _, err := sub.AddSensorBetween(in, in.Ports()[0].Raw, element, element.Ports()[portIn].Raw, model.QuantityCurrent, true); err != nil {
		return nil, err
	}
	sub.Connect(element, element.Ports()[portOut].Raw, out, out.Ports()[0].Raw)

	sub.CheckConnections()
	return sub, nil
}
