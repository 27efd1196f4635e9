package model

import (
	"fmt"
	"math"

	"github.com/Patrick-Hummel/AI-Simscape-Model-Generator/internal/blocks"
)

// Fault detection and fault masking patterns. Each method takes the
// redundant sensors measuring one branch and wires their converter
// outputs into a detection or voting network whose decision lands in a
// workspace variable. All pattern wiring ends with a normalization
// pass so the stored port names are bare identifiers.

// converterFor finds the PS-Simulink converter carrying a sensor's
// reading.
func (s *Subsystem) converterFor(sensor blocks.Block) (*blocks.PSSimuConv, bool) {
	name := sensor.UniqueName()
	for _, conn := range s.connections {
		if conn.From.UniqueName() != name {
			continue
		}
		if conv, ok := conn.To.(*blocks.PSSimuConv); ok {
			return conv, true
		}
	}
	return nil, false
}

// attachSensorTaps connects each sensor's converter output to the
// target's inputs in sensor order.
func (s *Subsystem) attachSensorTaps(sensors []blocks.Block, target blocks.Block) error {
	ports := target.Ports()
	for i, sensor := range sensors {
		conv, ok := s.converterFor(sensor)
		if !ok {
			return fmt.Errorf("attach sensor taps: %s has no converter output", sensor.UniqueName())
		}
		if i >= len(ports) {
			return fmt.Errorf("attach sensor taps: %s has no free input for %s", target.UniqueName(), sensor.UniqueName())
		}
		s.Connect(conv, conv.Ports()[1].Raw, target, ports[i].Raw)
	}
	return nil
}

// sensorPairs splits the sensor list into consecutive pairs.
func sensorPairs(pattern string, sensors []blocks.Block) ([][2]blocks.Block, error) {
	if len(sensors)%2 != 0 {
		return nil, fmt.Errorf("%s pattern needs an even number of sensors, got %d", pattern, len(sensors))
	}
	pairs := make([][2]blocks.Block, 0, len(sensors)/2)
	for i := 0; i < len(sensors); i += 2 {
		pairs = append(pairs, [2]blocks.Block{sensors[i], sensors[i+1]})
	}
	return pairs, nil
}

// AddComparatorPattern feeds two redundant sensors into a comparator
// whose match signal is exported to the workspace.
func (s *Subsystem) AddComparatorPattern(sensors []blocks.Block) error {
	comparator := blocks.NewComparator(s.alloc)
	workspace := blocks.NewToWorkspace(s.alloc, workspaceVariableName(s.id, comparator.UniqueName(), "simout"))
	if err := s.AddComponent(comparator, workspace); err != nil {
		return err
	}

	s.Connect(comparator, comparator.Ports()[2].Raw, workspace, workspace.Ports()[0].Raw)

	if err := s.attachSensorTaps(sensors, comparator); err != nil {
		return err
	}
	s.CheckConnections()
	return nil
}

// AddVoterPattern multiplexes the redundant sensor readings into a
// majority voter whose decision is exported to the workspace.
func (s *Subsystem) AddVoterPattern(sensors []blocks.Block) error {
	voter := blocks.NewVoter(s.alloc)
	mux := blocks.NewMux(s.alloc, len(sensors))
	workspace := blocks.NewToWorkspace(s.alloc, workspaceVariableName(s.id, mux.UniqueName(), "simout"))
	if err := s.AddComponent(voter, mux, workspace); err != nil {
		return err
	}

	s.Connect(mux, blocks.LastPort(mux).Raw, voter, voter.Ports()[0].Raw)
	s.Connect(voter, voter.Ports()[1].Raw, workspace, workspace.Ports()[0].Raw)

	if err := s.attachSensorTaps(sensors, mux); err != nil {
		return err
	}
	s.CheckConnections()
	return nil
}

// AddComparatorVoterPattern compares the sensors pairwise and votes on
// the surviving readings. Each pair drives a comparator that steers a
// switch between the pair's first reading and a NaN marker, so a
// disagreeing pair is excluded from the vote.
func (s *Subsystem) AddComparatorVoterPattern(sensors []blocks.Block) error {
	pairs, err := sensorPairs("comparator-voter", sensors)
	if err != nil {
		return err
	}

	voter := blocks.NewVoter(s.alloc)
	mux := blocks.NewMux(s.alloc, len(sensors))
	workspace := blocks.NewToWorkspace(s.alloc, workspaceVariableName(s.id, mux.UniqueName(), "simout"))
	if err := s.AddComponent(voter, mux, workspace); err != nil {
		return err
	}

	s.Connect(mux, blocks.LastPort(mux).Raw, voter, voter.Ports()[0].Raw)
	s.Connect(voter, voter.Ports()[1].Raw, workspace, workspace.Ports()[0].Raw)

	marker := blocks.NewConstant(s.alloc, math.NaN())
	if err := s.AddComponent(marker); err != nil {
		return err
	}

	for i, pair := range pairs {
		comparator := blocks.NewComparator(s.alloc)
		sw := blocks.NewCommonSwitch(s.alloc)
		if err := s.AddComponent(comparator, sw); err != nil {
			return err
		}

		s.Connect(comparator, comparator.Ports()[2].Raw, sw, sw.Ports()[1].Raw)
		s.Connect(marker, marker.Ports()[0].Raw, sw, sw.Ports()[2].Raw)
		s.Connect(sw, blocks.LastPort(sw).Raw, mux, mux.Ports()[i].Raw)

		for n, sensor := range pair {
			conv, ok := s.converterFor(sensor)
			if !ok {
				return fmt.Errorf("comparator-voter pattern: %s has no converter output", sensor.UniqueName())
			}
			s.Connect(conv, conv.Ports()[1].Raw, comparator, comparator.Ports()[n].Raw)
			if n == 0 {
				s.Connect(conv, conv.Ports()[1].Raw, sw, sw.Ports()[0].Raw)
			}
		}
	}

	s.CheckConnections()
	return nil
}

// AddVoterComparatorPattern votes on all readings first and compares
// each reading against the delayed vote. A reading that drifts from
// the previous consensus is replaced by a NaN marker before the next
// vote.
func (s *Subsystem) AddVoterComparatorPattern(sensors []blocks.Block) error {
	voter := blocks.NewVoter(s.alloc)
	mux := blocks.NewMux(s.alloc, len(sensors))
	workspace := blocks.NewToWorkspace(s.alloc, workspaceVariableName(s.id, mux.UniqueName(), "simout"))
	delayOut := blocks.NewUnitDelay(s.alloc)
	if err := s.AddComponent(voter, mux, workspace, delayOut); err != nil {
		return err
	}

	s.Connect(mux, blocks.LastPort(mux).Raw, voter, voter.Ports()[0].Raw)
	s.Connect(voter, voter.Ports()[1].Raw, workspace, workspace.Ports()[0].Raw)
	s.Connect(voter, voter.Ports()[1].Raw, delayOut, delayOut.Ports()[0].Raw)

	marker := blocks.NewConstant(s.alloc, math.NaN())
	if err := s.AddComponent(marker); err != nil {
		return err
	}

	for i, sensor := range sensors {
		comparator := blocks.NewComparator(s.alloc)
		sw := blocks.NewCommonSwitch(s.alloc)
		delay := blocks.NewUnitDelay(s.alloc)
		if err := s.AddComponent(comparator, sw, delay); err != nil {
			return err
		}

		s.Connect(comparator, comparator.Ports()[2].Raw, sw, sw.Ports()[1].Raw)
		s.Connect(marker, marker.Ports()[0].Raw, sw, sw.Ports()[2].Raw)
		s.Connect(sw, blocks.LastPort(sw).Raw, mux, mux.Ports()[i].Raw)

		conv, ok := s.converterFor(sensor)
		if !ok {
			return fmt.Errorf("voter-comparator pattern: %s has no converter output", sensor.UniqueName())
		}
		s.Connect(conv, conv.Ports()[1].Raw, sw, sw.Ports()[0].Raw)
		s.Connect(conv, conv.Ports()[1].Raw, delay, delay.Ports()[0].Raw)

		s.Connect(delay, delay.Ports()[1].Raw, comparator, comparator.Ports()[0].Raw)
		s.Connect(delayOut, delayOut.Ports()[1].Raw, comparator, comparator.Ports()[1].Raw)
	}

	s.CheckConnections()
	return nil
}

// AddComparatorSparingPattern compares the sensors pairwise and feeds
// both the first-of-pair readings and the pair error flags into a
// sparing selector that picks a healthy reading.
func (s *Subsystem) AddComparatorSparingPattern(sensors []blocks.Block) error {
	pairs, err := sensorPairs("comparator-sparing", sensors)
	if err != nil {
		return err
	}

	muxError := blocks.NewMux(s.alloc, len(sensors)/2)
	muxSignal := blocks.NewMux(s.alloc, len(sensors)/2)
	sparing := blocks.NewSparing(s.alloc, 1)
	workspace := blocks.NewToWorkspace(s.alloc, workspaceVariableName(s.id, muxError.UniqueName(), "simout"))
	if err := s.AddComponent(muxError, muxSignal, workspace, sparing); err != nil {
		return err
	}

	s.Connect(sparing, sparing.Ports()[2].Raw, workspace, workspace.Ports()[0].Raw)
	s.Connect(muxSignal, blocks.LastPort(muxSignal).Raw, sparing, sparing.Ports()[0].Raw)
	s.Connect(muxError, blocks.LastPort(muxError).Raw, sparing, sparing.Ports()[1].Raw)

	for i, pair := range pairs {
		comparator := blocks.NewComparator(s.alloc)
		if err := s.AddComponent(comparator); err != nil {
			return err
		}

		s.Connect(comparator, blocks.LastPort(comparator).Raw, muxError, muxError.Ports()[i].Raw)

		for n, sensor := range pair {
			conv, ok := s.converterFor(sensor)
			if !ok {
				return fmt.Errorf("comparator-sparing pattern: %s has no converter output", sensor.UniqueName())
			}
			s.Connect(conv, conv.Ports()[1].Raw, comparator, comparator.Ports()[n].Raw)
			if n == 0 {
				s.Connect(conv, conv.Ports()[1].Raw, muxSignal, muxSignal.Ports()[i].Raw)
			}
		}
	}

	s.CheckConnections()
	return nil
}

// AddVoterComparatorSparingPattern combines delayed-consensus fault
// detection with a sparing selector of the given degree: every reading
// is compared against the delayed vote and the selector picks the
// oddInteger healthy readings the voter then decides on.
func (s *Subsystem) AddVoterComparatorSparingPattern(sensors []blocks.Block, oddInteger int) error {
	muxSignal := blocks.NewMux(s.alloc, len(sensors))
	muxError := blocks.NewMux(s.alloc, len(sensors))
	sparing := blocks.NewSparing(s.alloc, oddInteger)
	voter := blocks.NewVoter(s.alloc)
	delayOut := blocks.NewUnitDelay(s.alloc)
	workspace := blocks.NewToWorkspace(s.alloc, workspaceVariableName(s.id, voter.UniqueName(), "simout"))
	if err := s.AddComponent(muxSignal, muxError, voter, sparing, delayOut, workspace); err != nil {
		return err
	}

	s.Connect(voter, voter.Ports()[1].Raw, workspace, workspace.Ports()[0].Raw)
	s.Connect(voter, voter.Ports()[1].Raw, delayOut, delayOut.Ports()[0].Raw)
	s.Connect(sparing, blocks.LastPort(sparing).Raw, voter, voter.Ports()[0].Raw)
	s.Connect(muxSignal, blocks.LastPort(muxSignal).Raw, sparing, sparing.Ports()[0].Raw)
	s.Connect(muxError, blocks.LastPort(muxError).Raw, sparing, sparing.Ports()[1].Raw)

	for i, sensor := range sensors {
		comparator := blocks.NewComparator(s.alloc)
		delay := blocks.NewUnitDelay(s.alloc)
		if err := s.AddComponent(comparator, delay); err != nil {
			return err
		}

		s.Connect(comparator, blocks.LastPort(comparator).Raw, muxError, muxError.Ports()[i].Raw)

		conv, ok := s.converterFor(sensor)
		if !ok {
			return fmt.Errorf("voter-comparator-sparing pattern: %s has no converter output", sensor.UniqueName())
		}
		s.Connect(conv, conv.Ports()[1].Raw, muxSignal, muxSignal.Ports()[i].Raw)
		s.Connect(conv, conv.Ports()[1].Raw, delay, delay.Ports()[0].Raw)

		s.Connect(delay, blocks.LastPort(delay).Raw, comparator, comparator.Ports()[0].Raw)
		s.Connect(delayOut, blocks.LastPort(delayOut).Raw, comparator, comparator.Ports()[1].Raw)
	}

	s.CheckConnections()
	return nil
}
