package upgrader

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/Patrick-Hummel/AI-Simscape-Model-Generator/internal/blocks"
	"github.com/Patrick-Hummel/AI-Simscape-Model-Generator/internal/model"
	"github.com/Patrick-Hummel/AI-Simscape-Model-Generator/internal/templates"
)

// newTestSystem builds a system with one subsystem of the given
// template. The resistor template starts with one current and one
// voltage sensor.
func newTestSystem(t *testing.T, template string) (*model.System, *model.Subsystem) {
	t.Helper()
	sys := model.NewSystem("Test")
	sub, err := templates.New(template, sys.Allocator())
	if err != nil {
		t.Fatalf("New(%q) failed: %v", template, err)
	}
	sys.AddSubsystem(sub)
	return sys, sub
}

func newSeededUpgrader() *Upgrader {
	return New(nil, rand.New(rand.NewSource(1)))
}

func countKind(components []blocks.Block, kind blocks.Kind) int {
	n := 0
	for _, c := range components {
		if c.Kind() == kind {
			n++
		}
	}
	return n
}

func findKind(t *testing.T, components []blocks.Block, kind blocks.Kind) blocks.Block {
	t.Helper()
	for _, c := range components {
		if c.Kind() == kind {
			return c
		}
	}
	t.Fatalf("no %s component found", kind)
	return nil
}

func TestApplyComparatorPattern(t *testing.T) {
	sys, sub := newTestSystem(t, "ResistorSubsystem")

	if err := newSeededUpgrader().Apply(sys, sub.UniqueName(), PatternComparator, 0); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	components := sub.Components()
	if got := countKind(components, blocks.KindCurrentSensor); got != 2 {
		t.Errorf("current sensors = %d, want 2", got)
	}
	if got := countKind(components, blocks.KindVoltageSensor); got != 2 {
		t.Errorf("voltage sensors = %d, want 2", got)
	}
	if got := countKind(components, blocks.KindComparator); got != 2 {
		t.Errorf("comparators = %d, want 2", got)
	}
	if sub.FaultTolerance != 0 {
		t.Errorf("FaultTolerance = %d, want 0 for the binary pattern", sub.FaultTolerance)
	}

	// Each comparator's decision lands in its own workspace variable.
	var decisions int
	for _, c := range components {
		if w, ok := c.(*blocks.ToWorkspace); ok &&
			(w.VariableName == "Subsystem_0_Comparator_0_simout_0" || w.VariableName == "Subsystem_0_Comparator_1_simout_0") {
			decisions++
		}
	}
	if decisions != 2 {
		t.Errorf("comparator decision exports = %d, want 2", decisions)
	}
}

func TestApplyVoterPattern(t *testing.T) {
	sys, sub := newTestSystem(t, "ResistorSubsystem")

	// 1.2 rounds up to 2, so each quantity needs 2*2+1 sensors.
	if err := newSeededUpgrader().Apply(sys, sub.UniqueName(), PatternVoter, 1.2); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	components := sub.Components()
	if got := countKind(components, blocks.KindCurrentSensor); got != 5 {
		t.Errorf("current sensors = %d, want 5", got)
	}
	if got := countKind(components, blocks.KindVoltageSensor); got != 5 {
		t.Errorf("voltage sensors = %d, want 5", got)
	}
	if got := countKind(components, blocks.KindVoter); got != 2 {
		t.Errorf("voters = %d, want 2", got)
	}
	if got := countKind(components, blocks.KindMux); got != 2 {
		t.Errorf("muxes = %d, want 2", got)
	}
	if sub.FaultTolerance != 2 {
		t.Errorf("FaultTolerance = %d, want 2", sub.FaultTolerance)
	}

	mux := findKind(t, components, blocks.KindMux)
	if got := len(mux.Ports()); got != 6 {
		t.Errorf("mux has %d ports, want 5 inputs and 1 output", got)
	}
}

func TestApplyVoterPatternKeepsExcessSensors(t *testing.T) {
	sys, sub := newTestSystem(t, "ResistorSubsystem")

	// Target 0 needs a single sensor per quantity; nothing is cloned
	// and nothing is removed.
	if err := newSeededUpgrader().Apply(sys, sub.UniqueName(), PatternVoter, 0); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	components := sub.Components()
	if got := countKind(components, blocks.KindCurrentSensor); got != 1 {
		t.Errorf("current sensors = %d, want 1", got)
	}
	if got := countKind(components, blocks.KindVoltageSensor); got != 1 {
		t.Errorf("voltage sensors = %d, want 1", got)
	}
	if sub.FaultTolerance != 0 {
		t.Errorf("FaultTolerance = %d, want 0", sub.FaultTolerance)
	}
}

func TestApplyComparatorVoterPattern(t *testing.T) {
	sys, sub := newTestSystem(t, "ResistorSubsystem")

	// Target 2: the pair count rounds up to 3 odd, so 6 sensors per
	// quantity.
	if err := newSeededUpgrader().Apply(sys, sub.UniqueName(), PatternComparatorVoter, 2); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	components := sub.Components()
	if got := countKind(components, blocks.KindCurrentSensor); got != 6 {
		t.Errorf("current sensors = %d, want 6", got)
	}
	if got := countKind(components, blocks.KindVoltageSensor); got != 6 {
		t.Errorf("voltage sensors = %d, want 6", got)
	}
	if got := countKind(components, blocks.KindComparator); got != 6 {
		t.Errorf("comparators = %d, want one per sensor pair", got)
	}
	if got := countKind(components, blocks.KindCommonSwitch); got != 6 {
		t.Errorf("switches = %d, want one per sensor pair", got)
	}
	if got := countKind(components, blocks.KindConstant); got != 2 {
		t.Errorf("markers = %d, want one per quantity", got)
	}
	if sub.FaultTolerance != 2 {
		t.Errorf("FaultTolerance = %d, want 2", sub.FaultTolerance)
	}
}

func TestApplyVoterComparatorPattern(t *testing.T) {
	sys, sub := newTestSystem(t, "ResistorSubsystem")

	// Target 1 rounds 3 up to 3 sensors per quantity.
	if err := newSeededUpgrader().Apply(sys, sub.UniqueName(), PatternVoterComparator, 1); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	components := sub.Components()
	if got := countKind(components, blocks.KindCurrentSensor); got != 3 {
		t.Errorf("current sensors = %d, want 3", got)
	}
	if got := countKind(components, blocks.KindVoltageSensor); got != 3 {
		t.Errorf("voltage sensors = %d, want 3", got)
	}
	if got := countKind(components, blocks.KindComparator); got != 6 {
		t.Errorf("comparators = %d, want one per sensor", got)
	}
	if got := countKind(components, blocks.KindUnitDelay); got != 8 {
		t.Errorf("unit delays = %d, want one per sensor plus one per quantity", got)
	}
	if sub.FaultTolerance != 1 {
		t.Errorf("FaultTolerance = %d, want 1", sub.FaultTolerance)
	}
}

func TestApplyComparatorSparingPattern(t *testing.T) {
	sys, sub := newTestSystem(t, "ResistorSubsystem")

	if err := newSeededUpgrader().Apply(sys, sub.UniqueName(), PatternComparatorSparing, 0); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	components := sub.Components()
	for _, kind := range []blocks.Kind{blocks.KindCurrentSensor, blocks.KindVoltageSensor} {
		got := countKind(components, kind)
		if got != 4 && got != 6 {
			t.Errorf("%s count = %d, want the drawn even size 4 or 6", kind, got)
		}
	}
	if got := countKind(components, blocks.KindSparing); got != 2 {
		t.Errorf("sparing blocks = %d, want one per quantity", got)
	}
	if got := countKind(components, blocks.KindMux); got != 4 {
		t.Errorf("muxes = %d, want a signal and an error mux per quantity", got)
	}
	if sub.FaultTolerance != 0 {
		t.Errorf("FaultTolerance = %d, want 0 for the sparing pattern", sub.FaultTolerance)
	}
}

func TestApplyVoterComparatorSparingPattern(t *testing.T) {
	sys, sub := newTestSystem(t, "ResistorSubsystem")

	// Target 1 fixes the set size at 3, which pins the sparing degree
	// draw to 3 as well.
	if err := newSeededUpgrader().Apply(sys, sub.UniqueName(), PatternVoterComparatorSparing, 1); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	components := sub.Components()
	if got := countKind(components, blocks.KindCurrentSensor); got != 3 {
		t.Errorf("current sensors = %d, want 3", got)
	}
	if got := countKind(components, blocks.KindVoltageSensor); got != 3 {
		t.Errorf("voltage sensors = %d, want 3", got)
	}
	if got := countKind(components, blocks.KindVoter); got != 2 {
		t.Errorf("voters = %d, want one per quantity", got)
	}
	sparing := findKind(t, components, blocks.KindSparing).(*blocks.Sparing)
	if sparing.N != 3 {
		t.Errorf("sparing degree = %d, want 3", sparing.N)
	}
	if sub.FaultTolerance != 1 {
		t.Errorf("FaultTolerance = %d, want 1", sub.FaultTolerance)
	}
}

func TestApplyVoterComparatorSparingRejectsZeroTarget(t *testing.T) {
	sys, sub := newTestSystem(t, "ResistorSubsystem")

	err := newSeededUpgrader().Apply(sys, sub.UniqueName(), PatternVoterComparatorSparing, 0)
	if !errors.Is(err, ErrTargetTooSmall) {
		t.Errorf("Apply error = %v, want ErrTargetTooSmall", err)
	}
}

func TestApplyUnknownPatternIsFatal(t *testing.T) {
	sys, sub := newTestSystem(t, "ResistorSubsystem")

	err := newSeededUpgrader().Apply(sys, sub.UniqueName(), "triplex", 1)
	if !errors.Is(err, ErrUnknownPattern) {
		t.Errorf("Apply error = %v, want ErrUnknownPattern", err)
	}
}

func TestApplyUnknownSubsystemIsFatal(t *testing.T) {
	sys, _ := newTestSystem(t, "ResistorSubsystem")

	err := newSeededUpgrader().Apply(sys, "GhostSubsystem_9", PatternVoter, 1)
	if !errors.Is(err, model.ErrSubsystemNotFound) {
		t.Errorf("Apply error = %v, want ErrSubsystemNotFound", err)
	}
}

func TestApplySkipsQuantitiesWithoutSensors(t *testing.T) {
	sys, sub := newTestSystem(t, "SPSTSwitchSubsystem")

	if err := newSeededUpgrader().Apply(sys, sub.UniqueName(), PatternComparator, 0); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if got := countKind(sub.Components(), blocks.KindComparator); got != 0 {
		t.Errorf("comparators = %d, want 0 in a sensorless subsystem", got)
	}
}

func TestPatternsListsAllSix(t *testing.T) {
	patterns := Patterns()
	if len(patterns) != 6 {
		t.Fatalf("Patterns() returned %d entries, want 6", len(patterns))
	}
	seen := make(map[string]bool, len(patterns))
	for _, p := range patterns {
		seen[p] = true
	}
	for _, want := range []string{"comparator", "voter", "C+V", "V+C", "C+S", "V+C+S"} {
		if !seen[want] {
			t.Errorf("Patterns() is missing %q", want)
		}
	}
}
