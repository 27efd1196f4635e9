package blocks

// Mission loads: the blocks a circuit exists to power.

// IncandescentLamp models a filament whose resistance rises with
// temperature.
type IncandescentLamp struct {
	core
	R0     float64 // cold resistance
	R1     float64 // rated resistance
	Vrated float64
	Alpha  float64
}

func NewIncandescentLamp(a *Allocator) *IncandescentLamp {
	return &IncandescentLamp{
		core:   newCore(a, KindIncandescentLamp, "+LConn 1", "-RConn 1"),
		R0:     0.15,
		R1:     1,
		Vrated: 12,
		Alpha:  0.004,
	}
}

func restoreIncandescentLamp(a *Allocator, id int, params map[string]any) (Block, error) {
	l := &IncandescentLamp{core: restoredCore(a, KindIncandescentLamp, id, "+LConn 1", "-RConn 1")}
	var err error
	if l.R0, err = floatParam(params, "R0"); err != nil {
		return nil, err
	}
	if l.R1, err = floatParam(params, "R1"); err != nil {
		return nil, err
	}
	if l.Vrated, err = floatParam(params, "Vrated"); err != nil {
		return nil, err
	}
	if l.Alpha, err = floatParam(params, "alpha"); err != nil {
		return nil, err
	}
	return l, nil
}

func (*IncandescentLamp) LibraryPath() string { return "ee_lib/Passive/Incandescent Lamp" }

func (l *IncandescentLamp) Parameters() map[string]any {
	return map[string]any{"R0": l.R0, "R1": l.R1, "Vrated": l.Vrated, "alpha": l.Alpha}
}

// UniversalMotor is a brushed motor with two electrical and two
// mechanical terminals.
type UniversalMotor struct {
	core
	WRated float64 // rated speed
	PRated float64 // rated mechanical power
	VDC    float64 // rated DC voltage
	PIn    float64 // rated electrical input power
	LTot   float64 // total armature and field inductance
}

func NewUniversalMotor(a *Allocator) *UniversalMotor {
	return &UniversalMotor{
		core:   newCore(a, KindUniversalMotor, "+LConn 1", "-RConn 1", "LConn 2", "RConn 2"),
		WRated: 6500,
		PRated: 75,
		VDC:    200,
		PIn:    160,
		LTot:   0.525,
	}
}

func restoreUniversalMotor(a *Allocator, id int, params map[string]any) (Block, error) {
	m := &UniversalMotor{core: restoredCore(a, KindUniversalMotor, id, "+LConn 1", "-RConn 1", "LConn 2", "RConn 2")}
	var err error
	if m.WRated, err = floatParam(params, "w_rated"); err != nil {
		return nil, err
	}
	if m.PRated, err = floatParam(params, "P_rated"); err != nil {
		return nil, err
	}
	if m.VDC, err = floatParam(params, "V_dc"); err != nil {
		return nil, err
	}
	if m.PIn, err = floatParam(params, "P_in"); err != nil {
		return nil, err
	}
	if m.LTot, err = floatParam(params, "Ltot"); err != nil {
		return nil, err
	}
	return m, nil
}

func (*UniversalMotor) LibraryPath() string {
	return "ee_lib/Electromechanical/Brushed Motors/Universal Motor"
}

// Parameters applies the plausibility derivation: input power must
// exceed rated mechanical power.
func (m *UniversalMotor) Parameters() map[string]any {
	pin := m.PIn
	if pin <= m.PRated {
		pin = m.PRated + 50
	}
	return map[string]any{"w_rated": m.WRated, "P_rated": m.PRated, "V_dc": m.VDC, "P_in": pin, "Ltot": m.LTot}
}

// Inertia is the rotational load closing a motor's mechanical loop.
type Inertia struct {
	core
	Inertia  float64
	NumPorts int
}

func NewInertia(a *Allocator) *Inertia {
	return &Inertia{
		core:     newCore(a, KindInertia, "LConn 1", "RConn 1"),
		Inertia:  0.5,
		NumPorts: 2,
	}
}

func restoreInertia(a *Allocator, id int, params map[string]any) (Block, error) {
	i := &Inertia{core: restoredCore(a, KindInertia, id, "LConn 1", "RConn 1")}
	var err error
	if i.Inertia, err = floatParam(params, "inertia"); err != nil {
		return nil, err
	}
	if i.NumPorts, err = intParam(params, "num_ports"); err != nil {
		return nil, err
	}
	return i, nil
}

func (*Inertia) LibraryPath() string { return "fl_lib/Mechanical/Rotational Elements/Inertia" }

func (i *Inertia) Parameters() map[string]any {
	return map[string]any{"inertia": i.Inertia, "num_ports": i.NumPorts}
}
