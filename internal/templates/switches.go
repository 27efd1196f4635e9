package templates

import (
	"github.com/Patrick-Hummel/AI-Simscape-Model-Generator/internal/blocks"
	"github.com/Patrick-Hummel/AI-Simscape-Model-Generator/internal/model"
)

// NewSPMTSwitchSubsystem builds a single-pole switch subsystem with
// the given throw count. The boundary input feeds the common terminal,
// each throw gets its own boundary output and the control signal is
// injected from a workspace variable.
func NewSPMTSwitchSubsystem(alloc *blocks.Allocator, threshold float64, throwCount int) (*model.Subsystem, error) {
	return newSwitchSubsystem(alloc, "SPMTSwitchSubsystem", threshold, throwCount)
}

// NewSPSTSwitchSubsystem builds a single-throw switch subsystem.
func NewSPSTSwitchSubsystem(alloc *blocks.Allocator, threshold float64) (*model.Subsystem, error) {
	return newSwitchSubsystem(alloc, "SPSTSwitchSubsystem", threshold, 1)
}

// NewSPDTSwitchSubsystem builds a double-throw switch subsystem.
func NewSPDTSwitchSubsystem(alloc *blocks.Allocator, threshold float64) (*model.Subsystem, error) {
	return newSwitchSubsystem(alloc, "SPDTSwitchSubsystem", threshold, 2)
}

func newSwitchSubsystem(alloc *blocks.Allocator, name string, threshold float64, throwCount int) (*model.Subsystem, error) {
	sub := model.NewSubsystem(alloc, name)

	var sw blocks.Block
	switch throwCount {
	case 1:
		s := blocks.NewSPSTSwitch(sub.Allocator())
		s.Threshold = threshold
		sw = s
	case 2:
		s := blocks.NewSPDTSwitch(sub.Allocator())
		s.Threshold = threshold
		sw = s
	default:
		// The multi-throw block carries no threshold parameter and
		// clamps the throw count to its supported range.
		sw = blocks.NewSPMTSwitch(sub.Allocator(), throwCount)
	}
	if err := sub.AddComponent(sw); err != nil {
		return nil, err
	}
	if _, err := sub.AddSignalFromWorkspace(sw, sw.Ports()[0].Raw); err != nil {
		return nil, err
	}

	in := blocks.NewConnectionPort(sub.Allocator(), "left", blocks.PortTypeIn)
	if err := sub.AddComponent(in); err != nil {
		return nil, err
	}
	sub.Connect(in, in.Ports()[0].Raw, sw, sw.Ports()[1].Raw)

	// One boundary output per throw terminal.
	for i := 2; i < len(sw.Ports()); i++ {
		out := blocks.NewConnectionPort(sub.Allocator(), "right", blocks.PortTypeOut)
		if err := sub.AddComponent(out); err != nil {
			return nil, err
		}
		sub.Connect(sw, sw.Ports()[i].Raw, out, out.Ports()[0].Raw)
	}

	sub.CheckConnections()
	return sub, nil
}
