package blocks

// Discrete transistors. The first terminal is the gate respectively
// base; the remaining two are drain/source respectively
// collector/emitter, in that order.

// NChannelMOSFET with threshold voltage and on resistance.
type NChannelMOSFET struct {
	core
	Vth float64
	Rds float64
}

func NewNChannelMOSFET(a *Allocator) *NChannelMOSFET {
	return &NChannelMOSFET{
		core: newCore(a, KindNChannelMOSFET, "LConn 1", "RConn 1", "RConn 2"),
		Vth:  1.7,
		Rds:  0.025,
	}
}

func restoreNChannelMOSFET(a *Allocator, id int, params map[string]any) (Block, error) {
	t := &NChannelMOSFET{core: restoredCore(a, KindNChannelMOSFET, id, "LConn 1", "RConn 1", "RConn 2")}
	var err error
	if t.Vth, err = floatParam(params, "Vth"); err != nil {
		return nil, err
	}
	if t.Rds, err = floatParam(params, "Rds"); err != nil {
		return nil, err
	}
	return t, nil
}

func (*NChannelMOSFET) LibraryPath() string {
	return "ee_lib/Semiconductors & Converters/N-Channel MOSFET"
}

func (t *NChannelMOSFET) Parameters() map[string]any {
	return map[string]any{"Vth": t.Vth, "Rds": t.Rds}
}

// PChannelMOSFET with threshold voltage and on resistance.
type PChannelMOSFET struct {
	core
	Vth float64
	Rds float64
}

func NewPChannelMOSFET(a *Allocator) *PChannelMOSFET {
	return &PChannelMOSFET{
		core: newCore(a, KindPChannelMOSFET, "LConn 1", "RConn 1", "RConn 2"),
		Vth:  -1.4,
		Rds:  0.05,
	}
}

func restorePChannelMOSFET(a *Allocator, id int, params map[string]any) (Block, error) {
	t := &PChannelMOSFET{core: restoredCore(a, KindPChannelMOSFET, id, "LConn 1", "RConn 1", "RConn 2")}
	var err error
	if t.Vth, err = floatParam(params, "Vth"); err != nil {
		return nil, err
	}
	if t.Rds, err = floatParam(params, "Rds"); err != nil {
		return nil, err
	}
	return t, nil
}

func (*PChannelMOSFET) LibraryPath() string {
	return "ee_lib/Semiconductors & Converters/P-Channel MOSFET"
}

func (t *PChannelMOSFET) Parameters() map[string]any {
	return map[string]any{"Vth": t.Vth, "Rds": t.Rds}
}

// NPNBipolarTransistor with forward current gain.
type NPNBipolarTransistor struct {
	core
	Hfe float64
}

func NewNPNBipolarTransistor(a *Allocator) *NPNBipolarTransistor {
	return &NPNBipolarTransistor{
		core: newCore(a, KindNPNBipolarTransistor, "LConn 1", "RConn 1", "RConn 2"),
		Hfe:  100,
	}
}

func restoreNPNBipolarTransistor(a *Allocator, id int, params map[string]any) (Block, error) {
	hfe, err := floatParam(params, "hfe")
	if err != nil {
		return nil, err
	}
	return &NPNBipolarTransistor{core: restoredCore(a, KindNPNBipolarTransistor, id, "LConn 1", "RConn 1", "RConn 2"), Hfe: hfe}, nil
}

func (*NPNBipolarTransistor) LibraryPath() string {
	return "ee_lib/Semiconductors & Converters/NPN Bipolar Transistor"
}

func (t *NPNBipolarTransistor) Parameters() map[string]any {
	return map[string]any{"hfe": t.Hfe}
}

// PNPBipolarTransistor with forward current gain.
type PNPBipolarTransistor struct {
	core
	Hfe float64
}

func NewPNPBipolarTransistor(a *Allocator) *PNPBipolarTransistor {
	return &PNPBipolarTransistor{
		core: newCore(a, KindPNPBipolarTransistor, "LConn 1", "RConn 1", "RConn 2"),
		Hfe:  100,
	}
}

func restorePNPBipolarTransistor(a *Allocator, id int, params map[string]any) (Block, error) {
	hfe, err := floatParam(params, "hfe")
	if err != nil {
		return nil, err
	}
	return &PNPBipolarTransistor{core: restoredCore(a, KindPNPBipolarTransistor, id, "LConn 1", "RConn 1", "RConn 2"), Hfe: hfe}, nil
}

func (*PNPBipolarTransistor) LibraryPath() string {
	return "ee_lib/Semiconductors & Converters/PNP Bipolar Transistor"
}

func (t *PNPBipolarTransistor) Parameters() map[string]any {
	return map[string]any{"hfe": t.Hfe}
}
