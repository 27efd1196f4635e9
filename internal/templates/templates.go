// Package templates builds the default subsystem library: pre-wired,
// sensor-instrumented subsystems for switches, electrical sources,
// mission loads, passive elements and transistors. Each template is
// registered under the name the generated subsystem will carry, so a
// circuit builder can instantiate one from a type selector alone.
package templates

import (
	"fmt"
	"sort"

	"github.com/Patrick-Hummel/AI-Simscape-Model-Generator/internal/blocks"
	"github.com/Patrick-Hummel/AI-Simscape-Model-Generator/internal/model"
)

// ErrUnknownTemplate is returned by New for a name no template is
// registered under.
var ErrUnknownTemplate = fmt.Errorf("templates: unknown subsystem template")

// ErrUnsupportedType is returned when a family builder is asked for a
// variant it does not implement.
var ErrUnsupportedType = fmt.Errorf("templates: unsupported type")

// BuildFunc constructs one default subsystem on the given allocator.
type BuildFunc func(alloc *blocks.Allocator) (*model.Subsystem, error)

// registry maps subsystem names to their builders. The family entries
// (SPMTSwitchSubsystem, ElectricalSourceSubsystem, ...) build with the
// family defaults.
var registry = map[string]BuildFunc{
	"SPMTSwitchSubsystem": func(a *blocks.Allocator) (*model.Subsystem, error) {
		return newSwitchSubsystem(a, "SPMTSwitchSubsystem", 0.5, 1)
	},
	"SPSTSwitchSubsystem": func(a *blocks.Allocator) (*model.Subsystem, error) {
		return NewSPSTSwitchSubsystem(a, 0.5)
	},
	"SPDTSwitchSubsystem": func(a *blocks.Allocator) (*model.Subsystem, error) {
		return NewSPDTSwitchSubsystem(a, 0.5)
	},

	"ElectricalSourceSubsystem": func(a *blocks.Allocator) (*model.Subsystem, error) {
		return newSourceSubsystem(a, "ElectricalSourceSubsystem", SourceVoltage, CurrentDC, false)
	},
	"VoltageSourceDCSubsystem":           NewVoltageSourceDCSubsystem,
	"VoltageSourceACSubsystem":           NewVoltageSourceACSubsystem,
	"ControlledVoltageSourceDCSubsystem": NewControlledVoltageSourceDCSubsystem,
	"ControlledVoltageSourceACSubsystem": NewControlledVoltageSourceACSubsystem,
	"CurrentSourceDCSubsystem":           NewCurrentSourceDCSubsystem,
	"CurrentSourceACSubsystem":           NewCurrentSourceACSubsystem,
	"ControlledCurrentSourceDCSubsystem": NewControlledCurrentSourceDCSubsystem,
	"ControlledCurrentSourceACSubsystem": NewControlledCurrentSourceACSubsystem,
	"BatterySubsystem":                   NewBatterySubsystem,

	"MissionSubsystem": func(a *blocks.Allocator) (*model.Subsystem, error) {
		return newMissionSubsystem(a, "MissionSubsystem", MissionMotor)
	},
	"MotorMissionSubsystem": NewMotorMissionSubsystem,
	"LampMissionSubsystem":  NewLampMissionSubsystem,

	"PassiveElementSubsystem": func(a *blocks.Allocator) (*model.Subsystem, error) {
		return newPassiveSubsystem(a, "PassiveElementSubsystem", ElementResistor)
	},
	"ResistorSubsystem":          NewResistorSubsystem,
	"VaristorSubsystem":          NewVaristorSubsystem,
	"CapacitorSubsystem":         NewCapacitorSubsystem,
	"VariableCapacitorSubsystem": NewVariableCapacitorSubsystem,
	"InductorSubsystem":          NewInductorSubsystem,
	"VariableInductorSubsystem":  NewVariableInductorSubsystem,
	"DiodeSubsystem":             NewDiodeSubsystem,

	"TransistorSubsystem": func(a *blocks.Allocator) (*model.Subsystem, error) {
		return newTransistorSubsystem(a, "TransistorSubsystem", TransistorNMOSFET)
	},
	"NChannelMOSFETSubsystem":       NewNChannelMOSFETSubsystem,
	"PChannelMOSFETSubsystem":       NewPChannelMOSFETSubsystem,
	"NPNBipolarTransistorSubsystem": NewNPNBipolarTransistorSubsystem,
	"PNPBipolarTransistorSubsystem": NewPNPBipolarTransistorSubsystem,
}

// New builds the template registered under name. The name doubles as
// the subsystem name inside the generated system.
func New(name string, alloc *blocks.Allocator) (*model.Subsystem, error) {
	build, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}
	return build(alloc)
}

// Names returns every registered template name in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
