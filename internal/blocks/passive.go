package blocks

import "fmt"

// Passive elements. The variable capacitor/inductor take their value
// from a control signal; the varistor switches between a linear and a
// power-law characteristic.

// Capacitor with a fixed capacitance.
type Capacitor struct {
	core
	Capacitance float64
}

func NewCapacitor(a *Allocator) *Capacitor {
	return &Capacitor{core: newCore(a, KindCapacitor, "LConn 1", "RConn 1"), Capacitance: 10}
}

func restoreCapacitor(a *Allocator, id int, params map[string]any) (Block, error) {
	c, err := floatParam(params, "c")
	if err != nil {
		return nil, err
	}
	return &Capacitor{core: restoredCore(a, KindCapacitor, id, "LConn 1", "RConn 1"), Capacitance: c}, nil
}

func (*Capacitor) LibraryPath() string { return "ee_lib/Passive/Capacitor" }

func (c *Capacitor) Parameters() map[string]any {
	return map[string]any{"c": c.Capacitance}
}

// VariableCapacitor tracks the capacitance commanded on its signal
// port, floored at Cmin.
type VariableCapacitor struct {
	core
	Cmin float64
}

func NewVariableCapacitor(a *Allocator) *VariableCapacitor {
	return &VariableCapacitor{
		core: newCore(a, KindVariableCapacitor, "signalINLConn 1", "LConn 2", "RConn 1"),
		Cmin: 1e-9,
	}
}

func restoreVariableCapacitor(a *Allocator, id int, params map[string]any) (Block, error) {
	cmin, err := floatParam(params, "Cmin")
	if err != nil {
		return nil, err
	}
	return &VariableCapacitor{core: restoredCore(a, KindVariableCapacitor, id, "signalINLConn 1", "LConn 2", "RConn 1"), Cmin: cmin}, nil
}

func (*VariableCapacitor) LibraryPath() string { return "ee_lib/Passive/Variable Capacitor" }

func (c *VariableCapacitor) Parameters() map[string]any {
	return map[string]any{"Cmin": c.Cmin}
}

func (c *VariableCapacitor) SignalPort() Port { return c.signalPort() }

// Inductor with a fixed inductance.
type Inductor struct {
	core
	Inductance float64
}

func NewInductor(a *Allocator) *Inductor {
	return &Inductor{core: newCore(a, KindInductor, "LConn 1", "RConn 1"), Inductance: 10}
}

func restoreInductor(a *Allocator, id int, params map[string]any) (Block, error) {
	l, err := floatParam(params, "L")
	if err != nil {
		return nil, err
	}
	return &Inductor{core: restoredCore(a, KindInductor, id, "LConn 1", "RConn 1"), Inductance: l}, nil
}

func (*Inductor) LibraryPath() string { return "ee_lib/Passive/Inductor" }

func (i *Inductor) Parameters() map[string]any {
	return map[string]any{"L": i.Inductance}
}

// VariableInductor tracks the inductance commanded on its signal port,
// floored at Lmin.
type VariableInductor struct {
	core
	Lmin float64
}

func NewVariableInductor(a *Allocator) *VariableInductor {
	return &VariableInductor{
		core: newCore(a, KindVariableInductor, "signalINLConn 1", "LConn 2", "RConn 1"),
		Lmin: 1e-6,
	}
}

func restoreVariableInductor(a *Allocator, id int, params map[string]any) (Block, error) {
	lmin, err := floatParam(params, "Lmin")
	if err != nil {
		return nil, err
	}
	return &VariableInductor{core: restoredCore(a, KindVariableInductor, id, "signalINLConn 1", "LConn 2", "RConn 1"), Lmin: lmin}, nil
}

func (*VariableInductor) LibraryPath() string { return "ee_lib/Passive/Variable Inductor" }

func (i *VariableInductor) Parameters() map[string]any {
	return map[string]any{"Lmin": i.Lmin}
}

func (i *VariableInductor) SignalPort() Port { return i.signalPort() }

// Resistor with a fixed resistance.
type Resistor struct {
	core
	Resistance float64
}

func NewResistor(a *Allocator) *Resistor {
	return &Resistor{core: newCore(a, KindResistor, "LConn 1", "RConn 1"), Resistance: 10}
}

func restoreResistor(a *Allocator, id int, params map[string]any) (Block, error) {
	r, err := floatParam(params, "R")
	if err != nil {
		return nil, err
	}
	return &Resistor{core: restoredCore(a, KindResistor, id, "LConn 1", "RConn 1"), Resistance: r}, nil
}

func (*Resistor) LibraryPath() string { return "ee_lib/Passive/Resistor" }

func (r *Resistor) Parameters() map[string]any {
	return map[string]any{"R": r.Resistance}
}

// Varistor characteristic modes.
const (
	VaristorLinear   = "linear"
	VaristorPowerLaw = "power-law"
)

// Varistor is a voltage-dependent resistor in either linear or
// power-law mode; only the active mode's parameters are exported.
type Varistor struct {
	core
	Mode string

	// linear mode
	VClamp float64
	ROff   float64
	ROn    float64

	// power-law mode
	VLN         float64
	VNU         float64
	AlphaNormal float64
	RUpturn     float64
	RLeak       float64
}

// NewVaristor creates a varistor in the given mode with the catalog
// defaults; an unknown mode is a configuration error.
func NewVaristor(a *Allocator, mode string) (*Varistor, error) {
	if mode != VaristorLinear && mode != VaristorPowerLaw {
		return nil, fmt.Errorf("blocks: varistor mode must be %q or %q, got %q", VaristorLinear, VaristorPowerLaw, mode)
	}
	return &Varistor{
		core:        newCore(a, KindVaristor, "LConn 1", "RConn 1"),
		Mode:        mode,
		VClamp:      0.1,
		ROff:        10,
		ROn:         1,
		VLN:         0.1,
		VNU:         100,
		AlphaNormal: 45,
		RUpturn:     0.1,
		RLeak:       10,
	}, nil
}

func restoreVaristor(a *Allocator, id int, params map[string]any) (Block, error) {
	mode, err := stringParam(params, "prm")
	if err != nil {
		return nil, err
	}
	v := &Varistor{core: restoredCore(a, KindVaristor, id, "LConn 1", "RConn 1")}
	switch mode {
	case VaristorLinear, "1":
		v.Mode = VaristorLinear
		if v.VClamp, err = floatParam(params, "vclamp"); err != nil {
			return nil, err
		}
		if v.ROff, err = floatParam(params, "roff"); err != nil {
			return nil, err
		}
		if v.ROn, err = floatParam(params, "ron"); err != nil {
			return nil, err
		}
		return v, nil
	case VaristorPowerLaw, "2":
		v.Mode = VaristorPowerLaw
		if v.VLN, err = floatParam(params, "vln"); err != nil {
			return nil, err
		}
		if v.VNU, err = floatParam(params, "vnu"); err != nil {
			return nil, err
		}
		if v.AlphaNormal, err = floatParam(params, "alphaNormal"); err != nil {
			return nil, err
		}
		if v.RUpturn, err = floatParam(params, "rUpturn"); err != nil {
			return nil, err
		}
		if v.RLeak, err = floatParam(params, "rLeak"); err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, fmt.Errorf("blocks: varistor mode must be %q or %q, got %q", VaristorLinear, VaristorPowerLaw, mode)
	}
}

func (*Varistor) LibraryPath() string { return "ee_lib/Passive/Varistor" }

// Parameters exports the active mode. Power-law mode clamps the lower
// breakover voltage below the upper one.
func (v *Varistor) Parameters() map[string]any {
	if v.Mode == VaristorLinear {
		return map[string]any{"prm": "1", "vclamp": v.VClamp, "roff": v.ROff, "ron": v.ROn}
	}
	vln := v.VLN
	if vln > v.VNU {
		vln = v.VNU - 50
	}
	return map[string]any{"prm": "2", "vln": vln, "vnu": v.VNU, "alphaNormal": v.AlphaNormal, "rUpturn": v.RUpturn, "rLeak": v.RLeak}
}

// Diode with forward voltage, on resistance and breakdown voltage.
type Diode struct {
	core
	ForwardV float64
	OnR      float64
	BreakV   float64
}

func NewDiode(a *Allocator) *Diode {
	return &Diode{
		core:     newCore(a, KindDiode, "LConn 1", "RConn 1"),
		ForwardV: 0.5,
		OnR:      0.01,
		BreakV:   500,
	}
}

func restoreDiode(a *Allocator, id int, params map[string]any) (Block, error) {
	d := &Diode{core: restoredCore(a, KindDiode, id, "LConn 1", "RConn 1")}
	var err error
	if d.ForwardV, err = floatParam(params, "Vf"); err != nil {
		return nil, err
	}
	if d.OnR, err = floatParam(params, "Ron"); err != nil {
		return nil, err
	}
	if d.BreakV, err = floatParam(params, "BV"); err != nil {
		return nil, err
	}
	return d, nil
}

func (*Diode) LibraryPath() string { return "ee_lib/Semiconductors & Converters/Diode" }

func (d *Diode) Parameters() map[string]any {
	return map[string]any{"Vf": d.ForwardV, "Ron": d.OnR, "BV": d.BreakV}
}
