// Package abstract models the circuit sketch the language model
// produces: typed components and port-free connections, one level
// above the detailed block diagram. Every abstract kind declares the
// subsystem template or bare catalog block it expands to, and carries
// the description the prompts offer to the model.
package abstract

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Patrick-Hummel/AI-Simscape-Model-Generator/internal/blocks"
)

// Kind selects an abstract component type, e.g. "Resistor".
type Kind string

// The closed set of abstract kinds offered to the language model.
const (
	KindSPSTSwitch           Kind = "SPSTSwitch"
	KindSPDTSwitch           Kind = "SPDTSwitch"
	KindSPMTSwitch           Kind = "SPMTSwitch"
	KindBattery              Kind = "Battery"
	KindVoltageSourceAC      Kind = "VoltageSourceAC"
	KindVoltageSourceDC      Kind = "VoltageSourceDC"
	KindCurrentSourceAC      Kind = "CurrentSourceAC"
	KindCurrentSourceDC      Kind = "CurrentSourceDC"
	KindCapacitor            Kind = "Capacitor"
	KindInductor             Kind = "Inductor"
	KindResistor             Kind = "Resistor"
	KindDiode                Kind = "Diode"
	KindNChannelMOSFET       Kind = "NChannelMOSFET"
	KindPChannelMOSFET       Kind = "PChannelMOSFET"
	KindNPNBipolarTransistor Kind = "NPNBipolarTransistor"
	KindPNPBipolarTransistor Kind = "PNPBipolarTransistor"
	KindLamp                 Kind = "Lamp"
	KindMotor                Kind = "Motor"
)

// Info describes one abstract kind: the description the prompts show
// the model, and the concrete form the kind expands to. Template names
// a subsystem template; a kind with an empty Template expands to the
// bare catalog block named by BlockKind instead.
type Info struct {
	Description string
	Template    string
	BlockKind   blocks.Kind
}

// IsBlock reports whether the kind expands to a bare catalog block
// rather than a subsystem template.
func (i Info) IsBlock() bool { return i.Template == "" }

var catalog = map[Kind]Info{
	KindSPSTSwitch: {Description: "Electrical single-pole single-throw switch", Template: "SPSTSwitchSubsystem"},
	KindSPDTSwitch: {Description: "Electrical single-pole dual-throw switch", Template: "SPDTSwitchSubsystem"},
	KindSPMTSwitch: {Description: "Electrical single-pole multiple-throw switch", Template: "SPMTSwitchSubsystem"},

	// The battery expands to a controlled DC source so its output can
	// be driven from the workspace.
	KindBattery:         {Description: "Battery with nominal voltage, inner resistance and capacity", Template: "ControlledVoltageSourceDCSubsystem"},
	KindVoltageSourceAC: {Description: "AC voltage source", Template: "VoltageSourceACSubsystem"},
	KindVoltageSourceDC: {Description: "DC voltage source", Template: "VoltageSourceDCSubsystem"},
	KindCurrentSourceAC: {Description: "AC current source", Template: "CurrentSourceACSubsystem"},
	KindCurrentSourceDC: {Description: "DC current source", Template: "CurrentSourceDCSubsystem"},

	KindCapacitor: {Description: "A capacitor with capacitance in Farad", Template: "CapacitorSubsystem"},
	KindInductor:  {Description: "An inductor with an inductance in Henry", Template: "InductorSubsystem"},
	KindResistor:  {Description: "A resistor with a resistance in Ohm", Template: "ResistorSubsystem"},

	// The diode is the only kind expanding to a bare block.
	KindDiode: {Description: "A simple diode", BlockKind: blocks.KindDiode},

	KindNChannelMOSFET:       {Description: "A n-channel MOSFET transistor", Template: "NChannelMOSFETSubsystem"},
	KindPChannelMOSFET:       {Description: "A p-channel MOSFET transistor", Template: "PChannelMOSFETSubsystem"},
	KindNPNBipolarTransistor: {Description: "A NPN bipolar transistor", Template: "NPNBipolarTransistorSubsystem"},
	KindPNPBipolarTransistor: {Description: "A PNP bipolar transistor", Template: "PNPBipolarTransistorSubsystem"},

	KindLamp:  {Description: "A regular incandescent lamp", Template: "LampMissionSubsystem"},
	KindMotor: {Description: "A universal motor", Template: "MotorMissionSubsystem"},
}

// Lookup returns the catalog entry for kind.
func Lookup(kind Kind) (Info, bool) {
	info, ok := catalog[kind]
	return info, ok
}

// Kinds returns every abstract kind in sorted order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(catalog))
	for kind := range catalog {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// ParseName splits a component unique name like "Resistor_0" into a
// kind selector and numeric ID. The kind is not checked against the
// catalog; callers that need a known kind use Lookup on the result.
func ParseName(name string) (Kind, int, error) {
	i := strings.LastIndex(name, "_")
	if i <= 0 || i == len(name)-1 {
		return "", 0, fmt.Errorf("abstract: component name %q is not of the form Kind_ID", name)
	}
	id, err := strconv.Atoi(name[i+1:])
	if err != nil {
		return "", 0, fmt.Errorf("abstract: component name %q is not of the form Kind_ID", name)
	}
	return Kind(name[:i]), id, nil
}
