package blocks

import "fmt"

// Signal-routing blocks. Mux, Demux and VectorConcatenate are
// variable-arity: Resize regenerates the whole numbered port list.

// Mux combines N scalar signals into one vector signal.
type Mux struct {
	core
	// Inputs is the current input arity.
	Inputs int
}

func NewMux(a *Allocator, inputs int) *Mux {
	m := &Mux{core: newCore(a, KindMux)}
	m.Resize(inputs)
	return m
}

func restoreMux(a *Allocator, id int, params map[string]any) (Block, error) {
	n, err := intParam(params, "Inputs")
	if err != nil {
		return nil, err
	}
	m := &Mux{core: restoredCore(a, KindMux, id)}
	m.Resize(n)
	return m, nil
}

// Resize regenerates the port list as IN1..INn followed by OUT1.
func (m *Mux) Resize(n int) {
	m.Inputs = n
	m.ports = numberedPorts("IN", n, "OUT1")
}

func (*Mux) LibraryPath() string { return "simulink/Commonly Used Blocks/Mux" }

func (m *Mux) Parameters() map[string]any {
	return map[string]any{"Inputs": m.Inputs}
}

// Demux splits one vector signal into N scalar signals.
type Demux struct {
	core
	Outputs int
}

func NewDemux(a *Allocator, outputs int) *Demux {
	d := &Demux{core: newCore(a, KindDemux)}
	d.Resize(outputs)
	return d
}

func restoreDemux(a *Allocator, id int, params map[string]any) (Block, error) {
	n, err := intParam(params, "Outputs")
	if err != nil {
		return nil, err
	}
	d := &Demux{core: restoredCore(a, KindDemux, id)}
	d.Resize(n)
	return d, nil
}

// Resize regenerates the port list as IN1 followed by OUT1..OUTn.
func (d *Demux) Resize(n int) {
	d.Outputs = n
	ports := []string{"IN1"}
	for i := 1; i <= n; i++ {
		ports = append(ports, fmt.Sprintf("OUT%d", i))
	}
	d.ports = ParsePorts(ports...)
}

func (*Demux) LibraryPath() string { return "simulink/Commonly Used Blocks/Demux" }

func (d *Demux) Parameters() map[string]any {
	return map[string]any{"Outputs": d.Outputs}
}

// VectorConcatenate stacks N signals into one vector, preserving
// per-channel rows (unlike Mux it concatenates matrices).
type VectorConcatenate struct {
	core
	Inputs int
}

func NewVectorConcatenate(a *Allocator, inputs int) *VectorConcatenate {
	v := &VectorConcatenate{core: newCore(a, KindVectorConcatenate)}
	v.Resize(inputs)
	return v
}

func restoreVectorConcatenate(a *Allocator, id int, params map[string]any) (Block, error) {
	n, err := intParam(params, "NumInputs")
	if err != nil {
		return nil, err
	}
	v := &VectorConcatenate{core: restoredCore(a, KindVectorConcatenate, id)}
	v.Resize(n)
	return v, nil
}

// Resize regenerates the port list as IN1..INn followed by OUT1.
func (v *VectorConcatenate) Resize(n int) {
	v.Inputs = n
	v.ports = numberedPorts("IN", n, "OUT1")
}

func (*VectorConcatenate) LibraryPath() string {
	return "simulink/Commonly Used Blocks/Vector Concatenate"
}

func (v *VectorConcatenate) Parameters() map[string]any {
	return map[string]any{"NumInputs": v.Inputs}
}

// CommonSwitch routes IN1 or IN3 to its output depending on the
// control value on IN2 against Threshold.
type CommonSwitch struct {
	core
	Threshold float64
}

func NewCommonSwitch(a *Allocator) *CommonSwitch {
	return &CommonSwitch{core: newCore(a, KindCommonSwitch, "IN1", "IN2", "IN3", "OUT1")}
}

func restoreCommonSwitch(a *Allocator, id int, params map[string]any) (Block, error) {
	threshold, err := floatParam(params, "Threshold")
	if err != nil {
		return nil, err
	}
	return &CommonSwitch{core: restoredCore(a, KindCommonSwitch, id, "IN1", "IN2", "IN3", "OUT1"), Threshold: threshold}, nil
}

func (*CommonSwitch) LibraryPath() string { return "simulink/Commonly Used Blocks/Switch" }

func (s *CommonSwitch) Parameters() map[string]any {
	return map[string]any{"Threshold": s.Threshold}
}

// UnitDelay holds a signal for one sample step; the temporal-voting
// patterns use it for self-comparison and decision feedback.
type UnitDelay struct{ core }

func NewUnitDelay(a *Allocator) *UnitDelay {
	return &UnitDelay{core: newCore(a, KindUnitDelay, "IN1", "OUT1")}
}

func (*UnitDelay) LibraryPath() string        { return "simulink/Discrete/Unit Delay" }
func (*UnitDelay) Parameters() map[string]any { return map[string]any{} }

func numberedPorts(prefix string, n int, trailing ...string) []Port {
	raws := make([]string, 0, n+len(trailing))
	for i := 1; i <= n; i++ {
		raws = append(raws, fmt.Sprintf("%s%d", prefix, i))
	}
	raws = append(raws, trailing...)
	return ParsePorts(raws...)
}
