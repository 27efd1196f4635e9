package templates

import (
	"fmt"

	"github.com/Patrick-Hummel/AI-Simscape-Model-Generator/internal/blocks"
	"github.com/Patrick-Hummel/AI-Simscape-Model-Generator/internal/model"
)

// Transistor type selectors for the transistor family.
const (
	TransistorNMOSFET = "N_Channel_MOSFET"
	TransistorPMOSFET = "P_Channel_MOSFET"
	TransistorNPN     = "NPN_Bipolar_Transistor"
	TransistorPNP     = "PNP_Bipolar_Transistor"
)

// NewTransistorSubsystem builds a transistor subsystem with one
// boundary input on the gate/base path and two boundary outputs on the
// power side. Current sensors instrument the input and drain paths, a
// voltage sensor spans the two power terminals.
func NewTransistorSubsystem(alloc *blocks.Allocator, transistorType string) (*model.Subsystem, error) {
	return newTransistorSubsystem(alloc, "TransistorSubsystem", transistorType)
}

func NewNChannelMOSFETSubsystem(alloc *blocks.Allocator) (*model.Subsystem, error) {
	return newTransistorSubsystem(alloc, "NChannelMOSFETSubsystem", TransistorNMOSFET)
}

func NewPChannelMOSFETSubsystem(alloc *blocks.Allocator) (*model.Subsystem, error) {
	return newTransistorSubsystem(alloc, "PChannelMOSFETSubsystem", TransistorPMOSFET)
}

func NewNPNBipolarTransistorSubsystem(alloc *blocks.Allocator) (*model.Subsystem, error) {
	return newTransistorSubsystem(alloc, "NPNBipolarTransistorSubsystem", TransistorNPN)
}

func NewPNPBipolarTransistorSubsystem(alloc *blocks.Allocator) (*model.Subsystem, error) {
	return newTransistorSubsystem(alloc, "PNPBipolarTransistorSubsystem", TransistorPNP)
}

func newTransistorSubsystem(alloc *blocks.Allocator, name, transistorType string) (*model.Subsystem, error) {
	sub := model.NewSubsystem(alloc, name)

	var transistor blocks.Block
	switch transistorType {
	case TransistorNMOSFET:
		transistor = blocks.NewNChannelMOSFET(sub.Allocator())
	case TransistorPMOSFET:
		transistor = blocks.NewPChannelMOSFET(sub.Allocator())
	case TransistorNPN:
		transistor = blocks.NewNPNBipolarTransistor(sub.Allocator())
	case TransistorPNP:
		transistor = blocks.NewPNPBipolarTransistor(sub.Allocator())
	default:
		return nil, fmt.Errorf("%w: transistor type must be %q, %q, %q or %q, got %q", ErrUnsupportedType,
			TransistorNMOSFET, TransistorPMOSFET, TransistorNPN, TransistorPNP, transistorType)
	}
	if err := sub.AddComponent(transistor); err != nil {
		return nil, err
	}

	in := blocks.NewConnectionPort(sub.Allocator(), "left", blocks.PortTypeIn)
	if err := sub.AddComponent(in); err != nil {
		return nil, err
	}
	out1 := blocks.NewConnectionPort(sub.Allocator(), "right", blocks.PortTypeOut)
	if err := sub.AddComponent(out1); err != nil {
		return nil, err
	}
	out2 := blocks.NewConnectionPort(sub.Allocator(), "right", blocks.PortTypeOut)
	if err := sub.AddComponent(out2); err != nil {
		return nil, err
	}

	// Gate/base current, drain current, then drain-source voltage.
	if _, err := sub.AddSensorBetween(in, in.Ports()[0].Raw, transistor, transistor.Ports()[0].Raw, model.QuantityCurrent, true); err != nil {
		return nil, err
	}
	if _, err := sub.AddSensorBetween(transistor, transistor.Ports()[1].Raw, out1, out1.Ports()[0].Raw, model.QuantityCurrent, true); err != nil {
		return nil, err
	}
	if _, err := sub.AddSensorBetween(transistor, transistor.Ports()[1].Raw, transistor, transistor.Ports()[2].Raw, model.QuantityVoltage, true); err != nil {
		return nil, err
	}
	sub.Connect(out2, out2.Ports()[0].Raw, transistor, transistor.Ports()[2].Raw)

	sub.CheckConnections()
	return sub, nil
}
