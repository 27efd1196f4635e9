package blocks

// Electrical sensors. Both expose a measurement tap (scope port) plus
// the two terminals the tap is attached across (voltage, parallel) or
// through (current, series).

// CurrentSensor measures the current through its +/- terminals.
type CurrentSensor struct{ core }

func NewCurrentSensor(a *Allocator) *CurrentSensor {
	return &CurrentSensor{core: newCore(a, KindCurrentSensor, "scopeOUTRConn 1", "+LConn 1", "-RConn 2")}
}

func (*CurrentSensor) LibraryPath() string        { return "ee_lib/Sensors & Transducers/Current Sensor" }
func (*CurrentSensor) Parameters() map[string]any { return map[string]any{} }

// VoltageSensor measures the voltage across its +/- terminals.
type VoltageSensor struct{ core }

func NewVoltageSensor(a *Allocator) *VoltageSensor {
	return &VoltageSensor{core: newCore(a, KindVoltageSensor, "scopeOUTRConn 1", "+LConn 1", "-RConn 2")}
}

func (*VoltageSensor) LibraryPath() string        { return "ee_lib/Sensors & Transducers/Voltage Sensor" }
func (*VoltageSensor) Parameters() map[string]any { return map[string]any{} }
