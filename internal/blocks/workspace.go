package blocks

// Workspace I/O blocks carry simulation data across the model
// boundary: FromWorkspace injects externally prepared signals,
// ToWorkspace exports sensor readings and pattern decisions.

// FromWorkspace reads a timeseries variable from the base workspace.
type FromWorkspace struct {
	core
	VariableName string
	SampleTime   int
}

func NewFromWorkspace(a *Allocator, variableName string) *FromWorkspace {
	return &FromWorkspace{core: newCore(a, KindFromWorkspace, "OUT1"), VariableName: variableName}
}

func restoreFromWorkspace(a *Allocator, id int, params map[string]any) (Block, error) {
	name, err := stringParam(params, "VariableName")
	if err != nil {
		return nil, err
	}
	sample, err := intParam(params, "SampleTime")
	if err != nil {
		return nil, err
	}
	return &FromWorkspace{core: restoredCore(a, KindFromWorkspace, id, "OUT1"), VariableName: name, SampleTime: sample}, nil
}

func (*FromWorkspace) LibraryPath() string { return "simulink/Sources/From Workspace" }

func (f *FromWorkspace) Parameters() map[string]any {
	return map[string]any{"SampleTime": f.SampleTime, "VariableName": f.VariableName}
}

// ToWorkspace writes a signal into a base-workspace variable.
type ToWorkspace struct {
	core
	VariableName string
	SampleTime   int
	SaveFormat   string
}

func NewToWorkspace(a *Allocator, variableName string) *ToWorkspace {
	return &ToWorkspace{
		core:         newCore(a, KindToWorkspace, "IN1"),
		VariableName: variableName,
		SampleTime:   -1,
		SaveFormat:   "Structure with Time",
	}
}

func restoreToWorkspace(a *Allocator, id int, params map[string]any) (Block, error) {
	t := &ToWorkspace{core: restoredCore(a, KindToWorkspace, id, "IN1")}
	var err error
	if t.VariableName, err = stringParam(params, "VariableName"); err != nil {
		return nil, err
	}
	if t.SampleTime, err = intParam(params, "SampleTime"); err != nil {
		return nil, err
	}
	if t.SaveFormat, err = stringParam(params, "SaveFormat"); err != nil {
		return nil, err
	}
	return t, nil
}

func (*ToWorkspace) LibraryPath() string { return "simulink/Sinks/To Workspace" }

func (t *ToWorkspace) Parameters() map[string]any {
	return map[string]any{"SampleTime": t.SampleTime, "VariableName": t.VariableName, "SaveFormat": t.SaveFormat}
}

// Scope displays a signal during simulation.
type Scope struct{ core }

func NewScope(a *Allocator) *Scope {
	return &Scope{core: newCore(a, KindScope, "IN1")}
}

func (*Scope) LibraryPath() string        { return "simulink/Commonly Used Blocks/Scope" }
func (*Scope) Parameters() map[string]any { return map[string]any{} }
