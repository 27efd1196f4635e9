package blocks

// Electrical sources. The battery carries the only multi-rule
// parameter derivation in the catalog: its discharge curve must stay
// physically plausible, so the rated-capacity point is clamped against
// the nominal point before export.

// Battery is a finite- or infinite-capacity DC source.
type Battery struct {
	core
	Vnom     float64 // nominal voltage
	InnerR   float64 // internal resistance
	Capacity float64 // ampere-hour capacity at nominal voltage
	V1       float64 // voltage at the rated capacity point
	AH1      float64 // capacity at V1
	Infinite bool
}

func NewBattery(a *Allocator) *Battery {
	return &Battery{
		core:     newCore(a, KindBattery, "+LConn 1", "-RConn 1"),
		Vnom:     12,
		InnerR:   2,
		Capacity: 50,
		V1:       11.5,
		AH1:      25,
	}
}

func restoreBattery(a *Allocator, id int, params map[string]any) (Block, error) {
	b := &Battery{core: restoredCore(a, KindBattery, id, "+LConn 1", "-RConn 1")}
	var err error
	if b.Vnom, err = floatParam(params, "Vnom"); err != nil {
		return nil, err
	}
	if b.InnerR, err = floatParam(params, "R1"); err != nil {
		return nil, err
	}
	// Infinite batteries serialize only the nominal pair.
	if _, ok := params["AH"]; !ok {
		b.Infinite = true
		return b, nil
	}
	if b.Capacity, err = floatParam(params, "AH"); err != nil {
		return nil, err
	}
	if b.V1, err = floatParam(params, "V1"); err != nil {
		return nil, err
	}
	if b.AH1, err = floatParam(params, "AH1"); err != nil {
		return nil, err
	}
	return b, nil
}

func (*Battery) LibraryPath() string { return "ee_lib/Sources/Battery" }

// Parameters applies the plausibility derivations: the rated-capacity
// voltage may not exceed nominal, and the capacity proportion at V1
// may not exceed the nominal proportion.
func (b *Battery) Parameters() map[string]any {
	if b.Infinite {
		return map[string]any{"Vnom": b.Vnom, "R1": b.InnerR}
	}
	v1, ah1 := b.V1, b.AH1
	if v1 > b.Vnom {
		v1 = b.Vnom - 0.5
	}
	if ah1/v1 > b.Capacity/b.Vnom {
		ah1 = v1 * (b.Capacity / b.Vnom)
	}
	return map[string]any{
		"prm_AH": "2",
		"Vnom":   b.Vnom,
		"R1":     b.InnerR,
		"AH":     b.Capacity,
		"V1":     v1,
		"AH1":    ah1,
	}
}

// VoltageSourceAC is a sinusoidal voltage source.
type VoltageSourceAC struct {
	core
	Peak       float64
	PhaseShift float64
	Frequency  float64
	DCVoltage  float64
}

func NewVoltageSourceAC(a *Allocator) *VoltageSourceAC {
	return &VoltageSourceAC{
		core:       newCore(a, KindVoltageSourceAC, "+LConn 1", "-RConn 1"),
		Peak:       10,
		PhaseShift: 10,
		Frequency:  50,
	}
}

func restoreVoltageSourceAC(a *Allocator, id int, params map[string]any) (Block, error) {
	s := &VoltageSourceAC{core: restoredCore(a, KindVoltageSourceAC, id, "+LConn 1", "-RConn 1")}
	var err error
	if s.DCVoltage, err = floatParam(params, "dc_voltage"); err != nil {
		return nil, err
	}
	if s.Peak, err = floatParam(params, "ac_voltage"); err != nil {
		return nil, err
	}
	if s.PhaseShift, err = floatParam(params, "ac_shift"); err != nil {
		return nil, err
	}
	if s.Frequency, err = floatParam(params, "ac_frequency"); err != nil {
		return nil, err
	}
	return s, nil
}

func (*VoltageSourceAC) LibraryPath() string { return "ee_lib/Sources/Voltage Source" }

func (s *VoltageSourceAC) Parameters() map[string]any {
	return map[string]any{"dc_voltage": s.DCVoltage, "ac_voltage": s.Peak, "ac_shift": s.PhaseShift, "ac_frequency": s.Frequency}
}

// CurrentSourceAC is a sinusoidal current source.
type CurrentSourceAC struct {
	core
	Peak       float64
	PhaseShift float64
	Frequency  float64
	DCCurrent  float64
}

func NewCurrentSourceAC(a *Allocator) *CurrentSourceAC {
	return &CurrentSourceAC{
		core:       newCore(a, KindCurrentSourceAC, "+LConn 1", "-RConn 1"),
		Peak:       10,
		PhaseShift: 10,
		Frequency:  50,
	}
}

func restoreCurrentSourceAC(a *Allocator, id int, params map[string]any) (Block, error) {
	s := &CurrentSourceAC{core: restoredCore(a, KindCurrentSourceAC, id, "+LConn 1", "-RConn 1")}
	var err error
	if s.DCCurrent, err = floatParam(params, "dc_current"); err != nil {
		return nil, err
	}
	if s.Peak, err = floatParam(params, "ac_current"); err != nil {
		return nil, err
	}
	if s.PhaseShift, err = floatParam(params, "ac_shift"); err != nil {
		return nil, err
	}
	if s.Frequency, err = floatParam(params, "ac_frequency"); err != nil {
		return nil, err
	}
	return s, nil
}

func (*CurrentSourceAC) LibraryPath() string { return "ee_lib/Sources/Current Source" }

func (s *CurrentSourceAC) Parameters() map[string]any {
	return map[string]any{"dc_current": s.DCCurrent, "ac_current": s.Peak, "ac_shift": s.PhaseShift, "ac_frequency": s.Frequency}
}

// VoltageSourceDC is a constant voltage source.
type VoltageSourceDC struct {
	core
	Voltage float64
}

func NewVoltageSourceDC(a *Allocator) *VoltageSourceDC {
	return &VoltageSourceDC{core: newCore(a, KindVoltageSourceDC, "+LConn 1", "-RConn 1"), Voltage: 10}
}

func restoreVoltageSourceDC(a *Allocator, id int, params map[string]any) (Block, error) {
	voltage, err := floatParam(params, "dc_voltage")
	if err != nil {
		return nil, err
	}
	return &VoltageSourceDC{core: restoredCore(a, KindVoltageSourceDC, id, "+LConn 1", "-RConn 1"), Voltage: voltage}, nil
}

func (*VoltageSourceDC) LibraryPath() string { return "ee_lib/Sources/Voltage Source" }

func (s *VoltageSourceDC) Parameters() map[string]any {
	return map[string]any{"dc_voltage": s.Voltage}
}

// CurrentSourceDC is a constant current source.
type CurrentSourceDC struct {
	core
	Current float64
}

func NewCurrentSourceDC(a *Allocator) *CurrentSourceDC {
	return &CurrentSourceDC{core: newCore(a, KindCurrentSourceDC, "+LConn 1", "-RConn 1"), Current: 10}
}

func restoreCurrentSourceDC(a *Allocator, id int, params map[string]any) (Block, error) {
	current, err := floatParam(params, "dc_current")
	if err != nil {
		return nil, err
	}
	return &CurrentSourceDC{core: restoredCore(a, KindCurrentSourceDC, id, "+LConn 1", "-RConn 1"), Current: current}, nil
}

func (*CurrentSourceDC) LibraryPath() string { return "ee_lib/Sources/Current Source" }

func (s *CurrentSourceDC) Parameters() map[string]any {
	return map[string]any{"dc_current": s.Current}
}

// ControlledVoltageSource produces the voltage commanded on its signal
// port.
type ControlledVoltageSource struct{ core }

func NewControlledVoltageSource(a *Allocator) *ControlledVoltageSource {
	return &ControlledVoltageSource{core: newCore(a, KindControlledVoltageSource, "signalINRConn 1", "+LConn 1", "-RConn 2")}
}

func (*ControlledVoltageSource) LibraryPath() string {
	return "fl_lib/Electrical/Electrical Sources/Controlled Voltage Source"
}

func (*ControlledVoltageSource) Parameters() map[string]any { return map[string]any{} }

func (s *ControlledVoltageSource) SignalPort() Port { return s.signalPort() }

// ControlledCurrentSource produces the current commanded on its signal
// port.
type ControlledCurrentSource struct{ core }

func NewControlledCurrentSource(a *Allocator) *ControlledCurrentSource {
	return &ControlledCurrentSource{core: newCore(a, KindControlledCurrentSource, "signalINRConn 1", "+LConn 1", "-RConn 2")}
}

func (*ControlledCurrentSource) LibraryPath() string {
	return "fl_lib/Electrical/Electrical Sources/Controlled Current Source"
}

func (*ControlledCurrentSource) Parameters() map[string]any { return map[string]any{} }

func (s *ControlledCurrentSource) SignalPort() Port { return s.signalPort() }
