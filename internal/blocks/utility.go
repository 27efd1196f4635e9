package blocks

// Physical-network utility blocks: subsystem boundary ports, the
// global solver configuration, the electrical reference and the
// converters between physical and Simulink signals.

// Boundary port types a ConnectionPort may declare.
const (
	PortTypeIn  = "Inport"
	PortTypeOut = "Outport"
)

// ConnectionPort is a subsystem boundary terminal. Its PortType
// decides whether the owning container lists it as an input or an
// output boundary; any other value is rejected at add time.
type ConnectionPort struct {
	core
	Orientation string
	PortType    string
}

// NewConnectionPort creates a boundary terminal. orientation is the
// diagram side ("left"/"right"); portType is PortTypeIn or PortTypeOut.
func NewConnectionPort(a *Allocator, orientation, portType string) *ConnectionPort {
	return &ConnectionPort{
		core:        newCore(a, KindConnectionPort, "RConn 1"),
		Orientation: orientation,
		PortType:    portType,
	}
}

func restoreConnectionPort(a *Allocator, id int, params map[string]any) (Block, error) {
	orientation, err := stringParam(params, "Orientation")
	if err != nil {
		return nil, err
	}
	portType, err := stringParam(params, "_Port_Type")
	if err != nil {
		return nil, err
	}
	return &ConnectionPort{core: restoredCore(a, KindConnectionPort, id, "RConn 1"), Orientation: orientation, PortType: portType}, nil
}

func (*ConnectionPort) LibraryPath() string { return "nesl_utility/Connection Port" }

func (p *ConnectionPort) Parameters() map[string]any {
	return map[string]any{"Orientation": p.Orientation, "Side": p.Orientation, "_Port_Type": p.PortType}
}

// IsInput reports whether the boundary terminal is an input port.
func (p *ConnectionPort) IsInput() bool { return p.PortType == PortTypeIn }

// IsOutput reports whether the boundary terminal is an output port.
func (p *ConnectionPort) IsOutput() bool { return p.PortType == PortTypeOut }

// Solver is the solver-configuration block every physical network
// needs exactly once.
type Solver struct{ core }

func NewSolver(a *Allocator) *Solver {
	return &Solver{core: newCore(a, KindSolver, "RConn 1")}
}

func (*Solver) LibraryPath() string        { return "nesl_utility/Solver Configuration" }
func (*Solver) Parameters() map[string]any { return map[string]any{} }

// PSSimuConv converts a physical signal to a Simulink signal; sensor
// taps pass through one before export.
type PSSimuConv struct{ core }

func NewPSSimuConv(a *Allocator) *PSSimuConv {
	return &PSSimuConv{core: newCore(a, KindPSSimuConv, "INLConn 1", "OUT1")}
}

func (*PSSimuConv) LibraryPath() string        { return "nesl_utility/PS-Simulink Converter" }
func (*PSSimuConv) Parameters() map[string]any { return map[string]any{} }

// SimuPSConv converts a Simulink signal to a physical signal; signal
// injection chains pass through one on the way in.
type SimuPSConv struct {
	core
	FilteringAndDerivatives string
}

func NewSimuPSConv(a *Allocator) *SimuPSConv {
	return &SimuPSConv{
		core:                    newCore(a, KindSimuPSConv, "IN1", "OUTRConn 1"),
		FilteringAndDerivatives: "filter",
	}
}

func restoreSimuPSConv(a *Allocator, id int, params map[string]any) (Block, error) {
	filter, err := stringParam(params, "FilteringAndDerivatives")
	if err != nil {
		return nil, err
	}
	return &SimuPSConv{core: restoredCore(a, KindSimuPSConv, id, "IN1", "OUTRConn 1"), FilteringAndDerivatives: filter}, nil
}

func (*SimuPSConv) LibraryPath() string { return "nesl_utility/Simulink-PS Converter" }

func (s *SimuPSConv) Parameters() map[string]any {
	return map[string]any{"FilteringAndDerivatives": s.FilteringAndDerivatives}
}

// Reference is the electrical ground; exactly one per system.
type Reference struct{ core }

func NewReference(a *Allocator) *Reference {
	return &Reference{core: newCore(a, KindReference, "LConn 1")}
}

func (*Reference) LibraryPath() string        { return "ee_lib/Connectors & References/Electrical Reference" }
func (*Reference) Parameters() map[string]any { return map[string]any{} }
