package blocks

import "fmt"

// Electrically actuated switches. All take a control signal on their
// first port; the single-pole variants differ only in throw count.

// CircuitBreaker opens its contact when the control signal crosses the
// threshold.
type CircuitBreaker struct {
	core
	Threshold       float64
	BreakerBehavior int
}

func NewCircuitBreaker(a *Allocator) *CircuitBreaker {
	return &CircuitBreaker{
		core:            newCore(a, KindCircuitBreaker, "signalINLConn 1", "LConn 2", "RConn 1"),
		Threshold:       0.5,
		BreakerBehavior: 2,
	}
}

func restoreCircuitBreaker(a *Allocator, id int, params map[string]any) (Block, error) {
	threshold, err := floatParam(params, "threshold")
	if err != nil {
		return nil, err
	}
	behavior, err := intParam(params, "breaker_behavior")
	if err != nil {
		return nil, err
	}
	return &CircuitBreaker{
		core:            restoredCore(a, KindCircuitBreaker, id, "signalINLConn 1", "LConn 2", "RConn 1"),
		Threshold:       threshold,
		BreakerBehavior: behavior,
	}, nil
}

func (*CircuitBreaker) LibraryPath() string { return "ee_lib/Switches & Breakers/Circuit Breaker" }

func (b *CircuitBreaker) Parameters() map[string]any {
	return map[string]any{"threshold": b.Threshold, "breaker_behavior": b.BreakerBehavior}
}

func (b *CircuitBreaker) SignalPort() Port { return b.signalPort() }

// SPSTSwitch is a single-pole single-throw switch.
type SPSTSwitch struct {
	core
	Threshold float64
}

func NewSPSTSwitch(a *Allocator) *SPSTSwitch {
	return &SPSTSwitch{
		core:      newCore(a, KindSPSTSwitch, "signalINLConn 1", "LConn 2", "RConn 1"),
		Threshold: 0.5,
	}
}

func restoreSPSTSwitch(a *Allocator, id int, params map[string]any) (Block, error) {
	threshold, err := floatParam(params, "Threshold")
	if err != nil {
		return nil, err
	}
	return &SPSTSwitch{core: restoredCore(a, KindSPSTSwitch, id, "signalINLConn 1", "LConn 2", "RConn 1"), Threshold: threshold}, nil
}

func (*SPSTSwitch) LibraryPath() string { return "ee_lib/Switches & Breakers/SPST Switch" }

func (s *SPSTSwitch) Parameters() map[string]any {
	return map[string]any{"Threshold": s.Threshold}
}

func (s *SPSTSwitch) SignalPort() Port { return s.signalPort() }

// SPDTSwitch is a single-pole double-throw switch.
type SPDTSwitch struct {
	core
	Threshold float64
}

func NewSPDTSwitch(a *Allocator) *SPDTSwitch {
	return &SPDTSwitch{
		core:      newCore(a, KindSPDTSwitch, "signalINLConn 1", "LConn 2", "RConn 1", "RConn 2"),
		Threshold: 0.5,
	}
}

func restoreSPDTSwitch(a *Allocator, id int, params map[string]any) (Block, error) {
	threshold, err := floatParam(params, "Threshold")
	if err != nil {
		return nil, err
	}
	return &SPDTSwitch{core: restoredCore(a, KindSPDTSwitch, id, "signalINLConn 1", "LConn 2", "RConn 1", "RConn 2"), Threshold: threshold}, nil
}

func (*SPDTSwitch) LibraryPath() string { return "ee_lib/Switches & Breakers/SPDT Switch" }

func (s *SPDTSwitch) Parameters() map[string]any {
	return map[string]any{"Threshold": s.Threshold}
}

func (s *SPDTSwitch) SignalPort() Port { return s.signalPort() }

// SPMT throw counts the simulation library supports.
const (
	minSPMTThrows = 3
	maxSPMTThrows = 8
)

// SPMTSwitch is a single-pole multiple-throw switch. The throw count
// is clamped to [3, 8]; resizing regenerates the whole throw list.
type SPMTSwitch struct {
	core
	Throws int
}

func NewSPMTSwitch(a *Allocator, throws int) *SPMTSwitch {
	s := &SPMTSwitch{core: newCore(a, KindSPMTSwitch)}
	s.Resize(throws)
	return s
}

func restoreSPMTSwitch(a *Allocator, id int, params map[string]any) (Block, error) {
	throws, err := intParam(params, "number_throws")
	if err != nil {
		return nil, err
	}
	s := &SPMTSwitch{core: restoredCore(a, KindSPMTSwitch, id)}
	s.Resize(throws)
	return s, nil
}

// Resize sets the throw count, clamped to the supported range, and
// regenerates the port list: signal input, common terminal, then one
// RConn per throw.
func (s *SPMTSwitch) Resize(n int) {
	switch {
	case n < minSPMTThrows:
		n = minSPMTThrows
	case n > maxSPMTThrows:
		n = maxSPMTThrows
	}
	s.Throws = n
	raws := []string{"signalINLConn 1", "LConn 2"}
	for i := 1; i <= n; i++ {
		raws = append(raws, fmt.Sprintf("RConn %d", i))
	}
	s.ports = ParsePorts(raws...)
}

func (*SPMTSwitch) LibraryPath() string { return "ee_lib/Switches & Breakers/SPMT Switch" }

func (s *SPMTSwitch) Parameters() map[string]any {
	return map[string]any{"number_throws": s.Throws}
}

func (s *SPMTSwitch) SignalPort() Port { return s.signalPort() }
