package model

import (
	"errors"
	"fmt"

	"github.com/Patrick-Hummel/AI-Simscape-Model-Generator/internal/blocks"
)

// KindSubsystem is the allocator key shared by every subsystem, so
// subsystem IDs are unique across all subsystem variants of a system.
const KindSubsystem = blocks.Kind("Subsystem")

var (
	// ErrUnknownQuantity is returned for a sensor quantity other than
	// Voltage or Current.
	ErrUnknownQuantity = errors.New("model: unknown sensor quantity")

	// ErrNotASensor is returned when a sensor operation is pointed at a
	// component that is not a voltage or current sensor.
	ErrNotASensor = errors.New("model: component is not a sensor")
)

// Quantity is the physical quantity a sensor measures.
type Quantity string

const (
	QuantityVoltage Quantity = "Voltage"
	QuantityCurrent Quantity = "Current"
)

// Subsystem is one functional group of blocks with boundary connection
// ports, nested inside a System. FaultTolerance records how many
// simultaneous sensor faults the subsystem's redundancy pattern
// masks; zero means no pattern has been applied.
type Subsystem struct {
	Container

	id             int
	FaultTolerance int
}

// NewSubsystem creates an empty subsystem. An empty name defaults to
// NewSubsystem. A nil allocator starts a fresh ID space; pass the
// system's allocator to keep IDs unique across the whole model.
func NewSubsystem(alloc *blocks.Allocator, name string) *Subsystem {
	if name == "" {
		name = "NewSubsystem"
	}
	s := &Subsystem{Container: newContainer(name, alloc)}
	s.id = s.alloc.Next(KindSubsystem)
	return s
}

// restoreSubsystem rebuilds a subsystem under a previously assigned ID.
func restoreSubsystem(alloc *blocks.Allocator, name string, id int) *Subsystem {
	s := &Subsystem{Container: newContainer(name, alloc)}
	s.id = s.alloc.Reserve(KindSubsystem, id)
	return s
}

// ID returns the subsystem's numeric ID.
func (s *Subsystem) ID() int { return s.id }

// UniqueName returns the subsystem's name-and-ID identifier, such as
// "BatterySubsystem_0".
func (s *Subsystem) UniqueName() string {
	return fmt.Sprintf("%s_%d", s.name, s.id)
}

// workspaceVariableName builds the base-workspace variable a workspace
// block shares with the simulation scripts, such as
// "Subsystem_3_CurrentSensor_7_simout_0".
func workspaceVariableName(subsystemID int, componentUniqueName, role string) string {
	return fmt.Sprintf("Subsystem_%d_%s_%s_0", subsystemID, componentUniqueName, role)
}

// AddSensorBetween splices a voltage or current sensor between two
// endpoint ports and exports its reading through a PS-Simulink
// converter into a workspace variable named after the sensor. With
// includeScope a scope block is attached to the same converter output.
// The new sensor block is returned.
func (s *Subsystem) AddSensorBetween(first Endpoint, firstPort string, second Endpoint, secondPort string, quantity Quantity, includeScope bool) (blocks.Block, error) {
	var sensor blocks.Block
	switch quantity {
	case QuantityVoltage:
		sensor = blocks.NewVoltageSensor(s.alloc)
	case QuantityCurrent:
		sensor = blocks.NewCurrentSensor(s.alloc)
	default:
		return nil, fmt.Errorf("add sensor between %s and %s: %w: %q", first.UniqueName(), second.UniqueName(), ErrUnknownQuantity, quantity)
	}
	if err := s.AddComponent(sensor); err != nil {
		return nil, err
	}

	conv := blocks.NewPSSimuConv(s.alloc)
	if err := s.AddComponent(conv); err != nil {
		return nil, err
	}

	workspace := blocks.NewToWorkspace(s.alloc, workspaceVariableName(s.id, sensor.UniqueName(), "simout"))
	workspace.SampleTime = 0
	if err := s.AddComponent(workspace); err != nil {
		return nil, err
	}

	// Sensor reading to the workspace via the converter.
	s.Connect(conv, conv.Ports()[1].Raw, workspace, workspace.Ports()[0].Raw)
	s.Connect(sensor, sensor.Ports()[0].Raw, conv, conv.Ports()[0].Raw)

	if includeScope {
		scope := blocks.NewScope(s.alloc)
		if err := s.AddComponent(scope); err != nil {
			return nil, err
		}
		s.Connect(conv, conv.Ports()[1].Raw, scope, scope.Ports()[0].Raw)
	}

	// Splice the sensor's electrical ports into the measured branch.
	s.Connect(first, firstPort, sensor, sensor.Ports()[2].Raw)
	s.Connect(sensor, sensor.Ports()[1].Raw, second, secondPort)

	return sensor, nil
}

// sensorQuantity maps a sensor block to the quantity it measures.
func sensorQuantity(sensor blocks.Block) (Quantity, error) {
	switch sensor.(type) {
	case *blocks.VoltageSensor:
		return QuantityVoltage, nil
	case *blocks.CurrentSensor:
		return QuantityCurrent, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrNotASensor, sensor.UniqueName())
	}
}

// sensorNeighbors finds the two measured endpoints an existing sensor
// is spliced between, skipping the sensor's own converter tap.
func (s *Subsystem) sensorNeighbors(sensor blocks.Block) (first Endpoint, firstPort string, second Endpoint, secondPort string) {
	name := sensor.UniqueName()
	for _, conn := range s.connections {
		if conn.From.UniqueName() == name {
			if _, isConv := conn.To.(*blocks.PSSimuConv); isConv {
				continue
			}
			second, secondPort = conn.To, conn.ToPort
		}
		if conn.To.UniqueName() == name {
			first, firstPort = conn.From, conn.FromPort
		}
	}
	return first, firstPort, second, secondPort
}

// AddSensorsLikeExistingSensor clones an existing sensor count times,
// measuring the same branch. Voltage sensors are cloned in parallel
// across the same two endpoints; current sensors are chained in
// series behind the existing sensor so each clone still carries the
// full branch current. The clones are returned in creation order.
func (s *Subsystem) AddSensorsLikeExistingSensor(sensor blocks.Block, count int) ([]blocks.Block, error) {
	quantity, err := sensorQuantity(sensor)
	if err != nil {
		return nil, err
	}
	if count <= 0 {
		return nil, nil
	}

	first, firstPort, second, secondPort := s.sensorNeighbors(sensor)
	if first == nil || second == nil {
		return nil, fmt.Errorf("clone sensor %s: sensor is not spliced between two endpoints", sensor.UniqueName())
	}

	clones := make([]blocks.Block, 0, count)

	switch quantity {
	case QuantityVoltage:
		for i := 0; i < count; i++ {
			clone, err := s.AddSensorBetween(first, firstPort, second, secondPort, quantity, false)
			if err != nil {
				return nil, err
			}
			clones = append(clones, clone)
		}

	case QuantityCurrent:
		prev := sensor
		for i := 0; i < count; i++ {
			s.RemoveConnectionByComponentNames(prev.UniqueName(), second.UniqueName())
			clone, err := s.AddSensorBetween(prev, prev.Ports()[1].Raw, second, secondPort, quantity, false)
			if err != nil {
				return nil, err
			}
			clones = append(clones, clone)
			prev = clone
		}
	}

	return clones, nil
}

// AddSignalFromWorkspace feeds a workspace variable into a component's
// signal port through a Simulink-PS converter. The variable is named
// after the component receiving the signal. The new FromWorkspace
// block is returned.
func (s *Subsystem) AddSignalFromWorkspace(component Endpoint, signalPort string) (*blocks.FromWorkspace, error) {
	conv := blocks.NewSimuPSConv(s.alloc)
	if err := s.AddComponent(conv); err != nil {
		return nil, err
	}

	source := blocks.NewFromWorkspace(s.alloc, workspaceVariableName(s.id, component.UniqueName(), "simin"))
	source.SampleTime = 0
	if err := s.AddComponent(source); err != nil {
		return nil, err
	}

	s.Connect(conv, conv.Ports()[1].Raw, component, signalPort)
	s.Connect(source, source.Ports()[0].Raw, conv, conv.Ports()[0].Raw)

	return source, nil
}
