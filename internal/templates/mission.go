package templates

import (
	"fmt"

	"github.com/Patrick-Hummel/AI-Simscape-Model-Generator/internal/blocks"
	"github.com/Patrick-Hummel/AI-Simscape-Model-Generator/internal/model"
)

// Mission type selectors for the mission load family.
const (
	MissionMotor = "Motor"
	MissionLamp  = "Lamp"
	MissionLED   = "LED"
)

// NewMissionSubsystem builds a mission load subsystem: the load sits
// between the two boundary ports with a voltage sensor in parallel and
// a current sensor in series on the input path. A motor additionally
// gets an inertia loop across its mechanical terminals.
func NewMissionSubsystem(alloc *blocks.Allocator, missionType string) (*model.Subsystem, error) {
	return newMissionSubsystem(alloc, "MissionSubsystem", missionType)
}

func NewMotorMissionSubsystem(alloc *blocks.Allocator) (*model.Subsystem, error) {
	return newMissionSubsystem(alloc, "MotorMissionSubsystem", MissionMotor)
}

func NewLampMissionSubsystem(alloc *blocks.Allocator) (*model.Subsystem, error) {
	return newMissionSubsystem(alloc, "LampMissionSubsystem", MissionLamp)
}

func newMissionSubsystem(alloc *blocks.Allocator, name, missionType string) (*model.Subsystem, error) {
	sub := model.NewSubsystem(alloc, name)

	var mission blocks.Block
	switch missionType {
	case MissionMotor:
		mission = blocks.NewUniversalMotor(sub.Allocator())
	case MissionLamp:
		mission = blocks.NewIncandescentLamp(sub.Allocator())
	case MissionLED:
		return nil, fmt.Errorf("%w: LED mission is not implemented", ErrUnsupportedType)
	default:
		return nil, fmt.Errorf("%w: mission type must be %q, %q or %q, got %q", ErrUnsupportedType, MissionMotor, MissionLamp, MissionLED, missionType)
	}
	if err := sub.AddComponent(mission); err != nil {
		return nil, err
	}

	if missionType == MissionMotor {
		// Close the mechanical side through an inertia.
		inertia := blocks.NewInertia(sub.Allocator())
		if err := sub.AddComponent(inertia); err != nil {
			return nil, err
		}
		sub.Connect(mission, mission.Ports()[2].Raw, inertia, inertia.Ports()[0].Raw)
		sub.Connect(inertia, inertia.Ports()[1].Raw, mission, mission.Ports()[3].Raw)
	}

	in := blocks.NewConnectionPort(sub.Allocator(), "left", blocks.PortTypeIn)
	if err := sub.AddComponent(in); err != nil {
		return nil, err
	}
	out := blocks.NewConnectionPort(sub.Allocator(), "right", blocks.PortTypeOut)
	if err := sub.AddComponent(out); err != nil {
		return nil, err
	}

	if _, err := sub.AddSensorBetween(mission, mission.Ports()[0].Raw, mission, mission.Ports()[1].Raw, model.QuantityVoltage, true); err != nil {
		return nil, err
	}
	if _, err := sub.AddSensorBetween(in, in.Ports()[0].Raw, mission, mission.Ports()[0].Raw, model.QuantityCurrent, true); err != nil {
		return nil, err
	}
	sub.Connect(mission, mission.Ports()[1].Raw, out, out.Ports()[0].Raw)

	sub.CheckConnections()
	return sub, nil
}
