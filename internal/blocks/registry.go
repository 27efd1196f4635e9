package blocks

import (
	"fmt"
	"sort"
)

// The closed set of catalog kinds. Kind strings double as the type
// field in serialized systems and as the prefix of unique names.
const (
	KindComparator              Kind = "Comparator"
	KindVoter                   Kind = "Voter"
	KindSparing                 Kind = "Sparing"
	KindSignalAlter             Kind = "SignalAlter"
	KindFromWorkspace           Kind = "FromWorkspace"
	KindToWorkspace             Kind = "ToWorkspace"
	KindConnectionPort          Kind = "ConnectionPort"
	KindSolver                  Kind = "Solver"
	KindPSSimuConv              Kind = "PSSimuConv"
	KindSimuPSConv              Kind = "SimuPSConv"
	KindScope                   Kind = "Scope"
	KindReference               Kind = "Reference"
	KindMux                     Kind = "Mux"
	KindDemux                   Kind = "Demux"
	KindVectorConcatenate       Kind = "VectorConcatenate"
	KindCommonSwitch            Kind = "CommonSwitch"
	KindUnitDelay               Kind = "UnitDelay"
	KindConstant                Kind = "Constant"
	KindStep                    Kind = "Step"
	KindSine                    Kind = "Sine"
	KindCircuitBreaker          Kind = "CircuitBreaker"
	KindSPSTSwitch              Kind = "SPSTSwitch"
	KindSPDTSwitch              Kind = "SPDTSwitch"
	KindSPMTSwitch              Kind = "SPMTSwitch"
	KindCurrentSensor           Kind = "CurrentSensor"
	KindVoltageSensor           Kind = "VoltageSensor"
	KindBattery                 Kind = "Battery"
	KindVoltageSourceAC         Kind = "VoltageSourceAC"
	KindCurrentSourceAC         Kind = "CurrentSourceAC"
	KindVoltageSourceDC         Kind = "VoltageSourceDC"
	KindCurrentSourceDC         Kind = "CurrentSourceDC"
	KindControlledVoltageSource Kind = "ControlledVoltageSource"
	KindControlledCurrentSource Kind = "ControlledCurrentSource"
	KindCapacitor               Kind = "Capacitor"
	KindVariableCapacitor       Kind = "VariableCapacitor"
	KindInductor                Kind = "Inductor"
	KindVariableInductor        Kind = "VariableInductor"
	KindResistor                Kind = "Resistor"
	KindVaristor                Kind = "Varistor"
	KindDiode                   Kind = "Diode"
	KindIncandescentLamp        Kind = "IncandescentLamp"
	KindUniversalMotor          Kind = "UniversalMotor"
	KindInertia                 Kind = "Inertia"
	KindNChannelMOSFET          Kind = "NChannelMOSFET"
	KindPChannelMOSFET          Kind = "PChannelMOSFET"
	KindNPNBipolarTransistor    Kind = "NPNBipolarTransistor"
	KindPNPBipolarTransistor    Kind = "PNPBipolarTransistor"
)

// Entry binds a kind to its constructors.
type Entry struct {
	// New builds an instance with catalog defaults.
	New func(a *Allocator) Block
	// Restore rebuilds an instance from a serialized parameter
	// dictionary under its original ID.
	Restore func(a *Allocator, id int, params map[string]any) (Block, error)
}

// registry is the statically-written kind table. Registration happens
// here and nowhere else; there is no runtime discovery.
var registry = map[Kind]Entry{
	KindComparator: {
		New:     func(a *Allocator) Block { return NewComparator(a) },
		Restore: func(a *Allocator, id int, _ map[string]any) (Block, error) { return restoredComparator(a, id), nil },
	},
	KindVoter: {
		New:     func(a *Allocator) Block { return NewVoter(a) },
		Restore: func(a *Allocator, id int, _ map[string]any) (Block, error) { return restoredVoter(a, id), nil },
	},
	KindSparing: {
		New:     func(a *Allocator) Block { return NewSparing(a, 1) },
		Restore: restoreSparing,
	},
	KindSignalAlter: {
		New: func(a *Allocator) Block { return NewSignalAlter(a) },
		Restore: func(a *Allocator, id int, _ map[string]any) (Block, error) {
			return &SignalAlter{core: restoredCore(a, KindSignalAlter, id, "IN1", "OUT1")}, nil
		},
	},
	KindFromWorkspace: {
		New:     func(a *Allocator) Block { return NewFromWorkspace(a, "simin") },
		Restore: restoreFromWorkspace,
	},
	KindToWorkspace: {
		New:     func(a *Allocator) Block { return NewToWorkspace(a, "simout") },
		Restore: restoreToWorkspace,
	},
	KindConnectionPort: {
		New:     func(a *Allocator) Block { return NewConnectionPort(a, "left", PortTypeIn) },
		Restore: restoreConnectionPort,
	},
	KindSolver: {
		New: func(a *Allocator) Block { return NewSolver(a) },
		Restore: func(a *Allocator, id int, _ map[string]any) (Block, error) {
			return &Solver{core: restoredCore(a, KindSolver, id, "RConn 1")}, nil
		},
	},
	KindPSSimuConv: {
		New: func(a *Allocator) Block { return NewPSSimuConv(a) },
		Restore: func(a *Allocator, id int, _ map[string]any) (Block, error) {
			return &PSSimuConv{core: restoredCore(a, KindPSSimuConv, id, "INLConn 1", "OUT1")}, nil
		},
	},
	KindSimuPSConv: {
		New:     func(a *Allocator) Block { return NewSimuPSConv(a) },
		Restore: restoreSimuPSConv,
	},
	KindScope: {
		New: func(a *Allocator) Block { return NewScope(a) },
		Restore: func(a *Allocator, id int, _ map[string]any) (Block, error) {
			return &Scope{core: restoredCore(a, KindScope, id, "IN1")}, nil
		},
	},
	KindReference: {
		New: func(a *Allocator) Block { return NewReference(a) },
		Restore: func(a *Allocator, id int, _ map[string]any) (Block, error) {
			return &Reference{core: restoredCore(a, KindReference, id, "LConn 1")}, nil
		},
	},
	KindMux: {
		New:     func(a *Allocator) Block { return NewMux(a, 2) },
		Restore: restoreMux,
	},
	KindDemux: {
		New:     func(a *Allocator) Block { return NewDemux(a, 2) },
		Restore: restoreDemux,
	},
	KindVectorConcatenate: {
		New:     func(a *Allocator) Block { return NewVectorConcatenate(a, 2) },
		Restore: restoreVectorConcatenate,
	},
	KindCommonSwitch: {
		New:     func(a *Allocator) Block { return NewCommonSwitch(a) },
		Restore: restoreCommonSwitch,
	},
	KindUnitDelay: {
		New: func(a *Allocator) Block { return NewUnitDelay(a) },
		Restore: func(a *Allocator, id int, _ map[string]any) (Block, error) {
			return &UnitDelay{core: restoredCore(a, KindUnitDelay, id, "IN1", "OUT1")}, nil
		},
	},
	KindConstant: {
		New:     func(a *Allocator) Block { return NewConstant(a, 1) },
		Restore: restoreConstant,
	},
	KindStep: {
		New:     func(a *Allocator) Block { return NewStep(a) },
		Restore: restoreStep,
	},
	KindSine: {
		New:     func(a *Allocator) Block { return NewSine(a) },
		Restore: restoreSine,
	},
	KindCircuitBreaker: {
		New:     func(a *Allocator) Block { return NewCircuitBreaker(a) },
		Restore: restoreCircuitBreaker,
	},
	KindSPSTSwitch: {
		New:     func(a *Allocator) Block { return NewSPSTSwitch(a) },
		Restore: restoreSPSTSwitch,
	},
	KindSPDTSwitch: {
		New:     func(a *Allocator) Block { return NewSPDTSwitch(a) },
		Restore: restoreSPDTSwitch,
	},
	KindSPMTSwitch: {
		New:     func(a *Allocator) Block { return NewSPMTSwitch(a, 3) },
		Restore: restoreSPMTSwitch,
	},
	KindCurrentSensor: {
		New: func(a *Allocator) Block { return NewCurrentSensor(a) },
		Restore: func(a *Allocator, id int, _ map[string]any) (Block, error) {
			return &CurrentSensor{core: restoredCore(a, KindCurrentSensor, id, "scopeOUTRConn 1", "+LConn 1", "-RConn 2")}, nil
		},
	},
	KindVoltageSensor: {
		New: func(a *Allocator) Block { return NewVoltageSensor(a) },
		Restore: func(a *Allocator, id int, _ map[string]any) (Block, error) {
			return &VoltageSensor{core: restoredCore(a, KindVoltageSensor, id, "scopeOUTRConn 1", "+LConn 1", "-RConn 2")}, nil
		},
	},
	KindBattery: {
		New:     func(a *Allocator) Block { return NewBattery(a) },
		Restore: restoreBattery,
	},
	KindVoltageSourceAC: {
		New:     func(a *Allocator) Block { return NewVoltageSourceAC(a) },
		Restore: restoreVoltageSourceAC,
	},
	KindCurrentSourceAC: {
		New:     func(a *Allocator) Block { return NewCurrentSourceAC(a) },
		Restore: restoreCurrentSourceAC,
	},
	KindVoltageSourceDC: {
		New:     func(a *Allocator) Block { return NewVoltageSourceDC(a) },
		Restore: restoreVoltageSourceDC,
	},
	KindCurrentSourceDC: {
		New:     func(a *Allocator) Block { return NewCurrentSourceDC(a) },
		Restore: restoreCurrentSourceDC,
	},
	KindControlledVoltageSource: {
		New: func(a *Allocator) Block { return NewControlledVoltageSource(a) },
		Restore: func(a *Allocator, id int, _ map[string]any) (Block, error) {
			return &ControlledVoltageSource{core: restoredCore(a, KindControlledVoltageSource, id, "signalINRConn 1", "+LConn 1", "-RConn 2")}, nil
		},
	},
	KindControlledCurrentSource: {
		New: func(a *Allocator) Block { return NewControlledCurrentSource(a) },
		Restore: func(a *Allocator, id int, _ map[string]any) (Block, error) {
			return &ControlledCurrentSource{core: restoredCore(a, KindControlledCurrentSource, id, "signalINRConn 1", "+LConn 1", "-RConn 2")}, nil
		},
	},
	KindCapacitor: {
		New:     func(a *Allocator) Block { return NewCapacitor(a) },
		Restore: restoreCapacitor,
	},
	KindVariableCapacitor: {
		New:     func(a *Allocator) Block { return NewVariableCapacitor(a) },
		Restore: restoreVariableCapacitor,
	},
	KindInductor: {
		New:     func(a *Allocator) Block { return NewInductor(a) },
		Restore: restoreInductor,
	},
	KindVariableInductor: {
		New:     func(a *Allocator) Block { return NewVariableInductor(a) },
		Restore: restoreVariableInductor,
	},
	KindResistor: {
		New:     func(a *Allocator) Block { return NewResistor(a) },
		Restore: restoreResistor,
	},
	KindVaristor: {
		New: func(a *Allocator) Block {
			v, _ := NewVaristor(a, VaristorLinear)
			return v
		},
		Restore: restoreVaristor,
	},
	KindDiode: {
		New:     func(a *Allocator) Block { return NewDiode(a) },
		Restore: restoreDiode,
	},
	KindIncandescentLamp: {
		New:     func(a *Allocator) Block { return NewIncandescentLamp(a) },
		Restore: restoreIncandescentLamp,
	},
	KindUniversalMotor: {
		New:     func(a *Allocator) Block { return NewUniversalMotor(a) },
		Restore: restoreUniversalMotor,
	},
	KindInertia: {
		New:     func(a *Allocator) Block { return NewInertia(a) },
		Restore: restoreInertia,
	},
	KindNChannelMOSFET: {
		New:     func(a *Allocator) Block { return NewNChannelMOSFET(a) },
		Restore: restoreNChannelMOSFET,
	},
	KindPChannelMOSFET: {
		New:     func(a *Allocator) Block { return NewPChannelMOSFET(a) },
		Restore: restorePChannelMOSFET,
	},
	KindNPNBipolarTransistor: {
		New:     func(a *Allocator) Block { return NewNPNBipolarTransistor(a) },
		Restore: restoreNPNBipolarTransistor,
	},
	KindPNPBipolarTransistor: {
		New:     func(a *Allocator) Block { return NewPNPBipolarTransistor(a) },
		Restore: restorePNPBipolarTransistor,
	},
}

func restoredComparator(a *Allocator, id int) *Comparator {
	return &Comparator{core: restoredCore(a, KindComparator, id, "IN1", "IN2", "OUT1")}
}

func restoredVoter(a *Allocator, id int) *Voter {
	return &Voter{core: restoredCore(a, KindVoter, id, "IN1", "OUT1")}
}

// New builds a block of the given kind with catalog defaults.
func New(kind Kind, a *Allocator) (Block, error) {
	entry, ok := registry[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return entry.New(a), nil
}

// Restore rebuilds a block from its serialized kind, ID and parameter
// dictionary. Missing required keys surface as ErrMissingParameter.
func Restore(kind Kind, a *Allocator, id int, params map[string]any) (Block, error) {
	entry, ok := registry[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	b, err := entry.Restore(a, id, params)
	if err != nil {
		return nil, fmt.Errorf("restore %s_%d: %w", kind, id, err)
	}
	return b, nil
}

// Kinds lists every registered kind in sorted order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(registry))
	for k := range registry {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
