package blocks

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRegistry_NewAllKinds(t *testing.T) {
	a := NewAllocator()
	for _, kind := range Kinds() {
		b, err := New(kind, a)
		if err != nil {
			t.Fatalf("New(%s) error = %v", kind, err)
		}
		if b.Kind() != kind {
			t.Fatalf("New(%s).Kind() = %s", kind, b.Kind())
		}
		if want := fmt.Sprintf("%s_0", kind); b.UniqueName() != want {
			t.Fatalf("UniqueName() = %q, want %q", b.UniqueName(), want)
		}
		if len(b.Ports()) == 0 {
			t.Fatalf("New(%s) has no ports", kind)
		}
		if b.LibraryPath() == "" {
			t.Fatalf("New(%s) has no library path", kind)
		}
		if b.Parameters() == nil {
			t.Fatalf("New(%s).Parameters() = nil", kind)
		}
	}
}

func TestRegistry_RestoreRoundTrip(t *testing.T) {
	for _, kind := range Kinds() {
		b, err := New(kind, NewAllocator())
		if err != nil {
			t.Fatalf("New(%s) error = %v", kind, err)
		}
		restored, err := Restore(kind, NewAllocator(), b.ID(), b.Parameters())
		if err != nil {
			t.Fatalf("Restore(%s) error = %v", kind, err)
		}
		if restored.UniqueName() != b.UniqueName() {
			t.Errorf("Restore(%s).UniqueName() = %q, want %q", kind, restored.UniqueName(), b.UniqueName())
		}
		if diff := cmp.Diff(b.Parameters(), restored.Parameters()); diff != "" {
			t.Errorf("Restore(%s) parameters mismatch (-new +restored):\n%s", kind, diff)
		}
		if diff := cmp.Diff(b.Ports(), restored.Ports()); diff != "" {
			t.Errorf("Restore(%s) ports mismatch (-new +restored):\n%s", kind, diff)
		}
	}
}

func TestRegistry_RestoreKeepsID(t *testing.T) {
	a := NewAllocator()
	b, err := Restore(KindResistor, a, 4, map[string]any{"R": 220.0})
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if b.UniqueName() != "Resistor_4" {
		t.Fatalf("UniqueName() = %q, want Resistor_4", b.UniqueName())
	}
	// The counter must have advanced past the restored ID.
	next := NewResistor(a)
	if next.UniqueName() != "Resistor_5" {
		t.Fatalf("next UniqueName() = %q, want Resistor_5", next.UniqueName())
	}
}

func TestRegistry_UnknownKind(t *testing.T) {
	if _, err := New("Flywheel", NewAllocator()); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("New(Flywheel) error = %v, want ErrUnknownKind", err)
	}
	if _, err := Restore("Flywheel", NewAllocator(), 0, nil); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("Restore(Flywheel) error = %v, want ErrUnknownKind", err)
	}
}

func TestRegistry_RestoreMissingParameter(t *testing.T) {
	kinds := []Kind{KindResistor, KindBattery, KindSPMTSwitch, KindFromWorkspace, KindVaristor}
	for _, kind := range kinds {
		_, err := Restore(kind, NewAllocator(), 0, map[string]any{})
		if !errors.Is(err, ErrMissingParameter) {
			t.Errorf("Restore(%s, {}) error = %v, want ErrMissingParameter", kind, err)
		}
	}
}

func TestBattery_InfiniteSerializesNominalPairOnly(t *testing.T) {
	a := NewAllocator()
	b := NewBattery(a)
	b.Infinite = true

	params := b.Parameters()
	want := map[string]any{"Vnom": 12.0, "R1": 2.0}
	if diff := cmp.Diff(want, params); diff != "" {
		t.Fatalf("infinite battery parameters mismatch (-want +got):\n%s", diff)
	}

	restored, err := Restore(KindBattery, NewAllocator(), b.ID(), params)
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if !restored.(*Battery).Infinite {
		t.Fatal("restored battery not infinite")
	}
}

func TestBattery_DischargeCurveClamps(t *testing.T) {
	a := NewAllocator()

	// V1 above nominal is pulled half a volt below it.
	b := NewBattery(a)
	b.V1 = 13
	if got := b.Parameters()["V1"]; got != 11.5 {
		t.Fatalf("V1 = %v, want 11.5", got)
	}

	// A capacity proportion at V1 above the nominal proportion is
	// scaled back onto the nominal curve.
	b = NewBattery(a)
	b.AH1 = 60
	want := 11.5 * (50.0 / 12.0)
	if got := b.Parameters()["AH1"]; got != want {
		t.Fatalf("AH1 = %v, want %v", got, want)
	}

	// In-range values pass through untouched, and exporting twice
	// must not compound the clamping.
	b = NewBattery(a)
	first := b.Parameters()
	second := b.Parameters()
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("Parameters() not stable (-first +second):\n%s", diff)
	}
	if first["V1"] != 11.5 || first["AH1"] != 25.0 {
		t.Fatalf("defaults altered: V1=%v AH1=%v", first["V1"], first["AH1"])
	}
}

func TestUniversalMotor_InputPowerClamp(t *testing.T) {
	a := NewAllocator()

	m := NewUniversalMotor(a)
	if got := m.Parameters()["P_in"]; got != 160.0 {
		t.Fatalf("default P_in = %v, want 160", got)
	}

	m.PIn = m.PRated
	if got := m.Parameters()["P_in"]; got != m.PRated+50 {
		t.Fatalf("P_in at rated power = %v, want %v", got, m.PRated+50)
	}
	m.PIn = 10
	if got := m.Parameters()["P_in"]; got != m.PRated+50 {
		t.Fatalf("P_in below rated power = %v, want %v", got, m.PRated+50)
	}
}

func TestVaristor_Modes(t *testing.T) {
	a := NewAllocator()

	if _, err := NewVaristor(a, "quadratic"); err == nil {
		t.Fatal("NewVaristor(quadratic) error = nil, want error")
	}

	linear, err := NewVaristor(a, VaristorLinear)
	if err != nil {
		t.Fatalf("NewVaristor(linear) error = %v", err)
	}
	if got := linear.Parameters()["prm"]; got != "1" {
		t.Fatalf("linear prm = %v, want 1", got)
	}
	if _, ok := linear.Parameters()["vln"]; ok {
		t.Fatal("linear parameters leak power-law keys")
	}

	power, err := NewVaristor(a, VaristorPowerLaw)
	if err != nil {
		t.Fatalf("NewVaristor(power-law) error = %v", err)
	}
	if got := power.Parameters()["prm"]; got != "2" {
		t.Fatalf("power-law prm = %v, want 2", got)
	}
	// Lower breakover voltage is clamped below the upper one.
	power.VLN = 200
	if got := power.Parameters()["vln"]; got != power.VNU-50 {
		t.Fatalf("vln = %v, want %v", got, power.VNU-50)
	}
}

func TestSPMTSwitch_ThrowClamp(t *testing.T) {
	a := NewAllocator()

	tests := []struct {
		request    int
		wantThrows int
	}{
		{1, 3},
		{3, 3},
		{5, 5},
		{8, 8},
		{12, 8},
	}
	for _, tt := range tests {
		s := NewSPMTSwitch(a, tt.request)
		if s.Throws != tt.wantThrows {
			t.Errorf("NewSPMTSwitch(%d).Throws = %d, want %d", tt.request, s.Throws, tt.wantThrows)
		}
		if got := len(s.Ports()); got != tt.wantThrows+2 {
			t.Errorf("NewSPMTSwitch(%d) has %d ports, want %d", tt.request, got, tt.wantThrows+2)
		}
	}

	s := NewSPMTSwitch(a, 3)
	s.Resize(5)
	ports := s.Ports()
	if ports[0].Raw != "signalINLConn 1" || ports[1].Raw != "LConn 2" {
		t.Fatalf("head ports = %q, %q", ports[0].Raw, ports[1].Raw)
	}
	if last := ports[len(ports)-1]; last.Raw != "RConn 5" {
		t.Fatalf("last port = %q, want RConn 5", last.Raw)
	}
}

func TestMux_ResizeRegeneratesPorts(t *testing.T) {
	a := NewAllocator()

	m := NewMux(a, 2)
	if got := len(m.Ports()); got != 3 {
		t.Fatalf("NewMux(2) has %d ports, want 3", got)
	}
	m.Resize(4)
	ports := m.Ports()
	if got := len(ports); got != 5 {
		t.Fatalf("Resize(4) left %d ports, want 5", got)
	}
	if ports[3].Raw != "IN4" {
		t.Fatalf("ports[3] = %q, want IN4", ports[3].Raw)
	}
	if LastPort(m).Raw != "OUT1" {
		t.Fatalf("last port = %q, want OUT1", LastPort(m).Raw)
	}
	if got := m.Parameters()["Inputs"]; got != 4 {
		t.Fatalf("Inputs = %v, want 4", got)
	}
}

func TestSparing_SelectFunctionCarriesCount(t *testing.T) {
	a := NewAllocator()
	s := NewSparing(a, 2)

	fn, ok := s.Parameters()["Function"].(string)
	if !ok {
		t.Fatal("Function parameter missing")
	}
	if !strings.Contains(fn, "counter < 2") || !strings.Contains(fn, "zeros(2,") {
		t.Fatalf("select function does not carry n=2:\n%s", fn)
	}
}

func TestSignalSinks(t *testing.T) {
	a := NewAllocator()

	sinks := []Block{
		NewSPSTSwitch(a),
		NewSPDTSwitch(a),
		NewSPMTSwitch(a, 3),
		NewCircuitBreaker(a),
		NewControlledVoltageSource(a),
		NewControlledCurrentSource(a),
		NewVariableCapacitor(a),
		NewVariableInductor(a),
	}
	for _, b := range sinks {
		sink, ok := b.(SignalSink)
		if !ok {
			t.Errorf("%s does not implement SignalSink", b.Kind())
			continue
		}
		p := sink.SignalPort()
		if p.Role != RoleSignal || p.Direction != DirIn {
			t.Errorf("%s signal port = %+v, want signal input", b.Kind(), p)
		}
	}

	// Passive two-terminal blocks must not expose a signal port.
	if _, ok := Block(NewResistor(a)).(SignalSink); ok {
		t.Error("Resistor implements SignalSink")
	}
}

func TestConnectionPort_Classification(t *testing.T) {
	a := NewAllocator()

	in := NewConnectionPort(a, "left", PortTypeIn)
	if !in.IsInput() || in.IsOutput() {
		t.Fatalf("Inport classified as IsInput=%v IsOutput=%v", in.IsInput(), in.IsOutput())
	}
	out := NewConnectionPort(a, "right", PortTypeOut)
	if out.IsInput() || !out.IsOutput() {
		t.Fatalf("Outport classified as IsInput=%v IsOutput=%v", out.IsInput(), out.IsOutput())
	}
}
