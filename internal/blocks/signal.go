package blocks

import "math"

// Signal sources fed into control ports during template assembly.

// Constant emits a fixed value; the comparator-and-switch patterns use
// a NaN constant as their "no data" channel.
type Constant struct {
	core
	Value float64
}

func NewConstant(a *Allocator, value float64) *Constant {
	return &Constant{core: newCore(a, KindConstant, "OUT1"), Value: value}
}

func restoreConstant(a *Allocator, id int, params map[string]any) (Block, error) {
	value, err := floatParam(params, "Value")
	if err != nil {
		return nil, err
	}
	return &Constant{core: restoredCore(a, KindConstant, id, "OUT1"), Value: value}, nil
}

func (*Constant) LibraryPath() string { return "simulink/Sources/Constant" }

func (c *Constant) Parameters() map[string]any {
	// JSON cannot carry a NaN float; the serialized form is the string
	// "nan", which the restore path parses back.
	if math.IsNaN(c.Value) {
		return map[string]any{"Value": "nan"}
	}
	return map[string]any{"Value": c.Value}
}

// Step jumps from Before to After at StepTime.
type Step struct {
	core
	StepTime     float64
	InitialValue float64
	FinalValue   float64
	SampleTime   float64
}

func NewStep(a *Allocator) *Step {
	return &Step{
		core:         newCore(a, KindStep, "OUT1"),
		StepTime:     1,
		InitialValue: 0,
		FinalValue:   1,
		SampleTime:   0,
	}
}

func restoreStep(a *Allocator, id int, params map[string]any) (Block, error) {
	s := &Step{core: restoredCore(a, KindStep, id, "OUT1")}
	var err error
	if s.StepTime, err = floatParam(params, "Time"); err != nil {
		return nil, err
	}
	if s.InitialValue, err = floatParam(params, "Before"); err != nil {
		return nil, err
	}
	if s.FinalValue, err = floatParam(params, "After"); err != nil {
		return nil, err
	}
	if s.SampleTime, err = floatParam(params, "SampleTime"); err != nil {
		return nil, err
	}
	return s, nil
}

func (*Step) LibraryPath() string { return "simulink/Sources/Step" }

func (s *Step) Parameters() map[string]any {
	return map[string]any{"Time": s.StepTime, "Before": s.InitialValue, "After": s.FinalValue, "SampleTime": s.SampleTime}
}

// Sine emits Amplitude*sin(2*pi*Frequency*t + Phase) + Bias.
type Sine struct {
	core
	Amplitude  float64
	Bias       float64
	Frequency  float64
	Phase      float64
	SampleTime float64
}

func NewSine(a *Allocator) *Sine {
	return &Sine{
		core:      newCore(a, KindSine, "OUT1"),
		Amplitude: 1,
		Frequency: 1,
	}
}

func restoreSine(a *Allocator, id int, params map[string]any) (Block, error) {
	s := &Sine{core: restoredCore(a, KindSine, id, "OUT1")}
	var err error
	if s.Amplitude, err = floatParam(params, "Amplitude"); err != nil {
		return nil, err
	}
	if s.Bias, err = floatParam(params, "Bias"); err != nil {
		return nil, err
	}
	if s.Frequency, err = floatParam(params, "Frequency"); err != nil {
		return nil, err
	}
	if s.Phase, err = floatParam(params, "Phase"); err != nil {
		return nil, err
	}
	if s.SampleTime, err = floatParam(params, "SampleTime"); err != nil {
		return nil, err
	}
	return s, nil
}

func (*Sine) LibraryPath() string { return "simulink/Sources/Sine Wave" }

func (s *Sine) Parameters() map[string]any {
	return map[string]any{"Amplitude": s.Amplitude, "Bias": s.Bias, "Frequency": s.Frequency, "Phase": s.Phase, "SampleTime": s.SampleTime}
}
