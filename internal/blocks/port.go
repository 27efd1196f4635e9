package blocks

import "strings"

// PortRole classifies what a port carries.
type PortRole int

const (
	// RolePower marks a conserving electrical (or mechanical) terminal.
	RolePower PortRole = iota
	// RoleSignal marks a Simulink data-signal port, including the
	// physical-signal side of converter blocks.
	RoleSignal
	// RoleInstrumentation marks a measurement tap meant for scopes and
	// workspace export, never for circuit wiring.
	RoleInstrumentation
)

func (r PortRole) String() string {
	switch r {
	case RolePower:
		return "power"
	case RoleSignal:
		return "signal"
	case RoleInstrumentation:
		return "instrumentation"
	}
	return "unknown"
}

// PortDirection is the wiring direction a port accepts.
type PortDirection int

const (
	// DirEither suits conserving terminals: current may flow both ways.
	DirEither PortDirection = iota
	DirIn
	DirOut
)

func (d PortDirection) String() string {
	switch d {
	case DirIn:
		return "in"
	case DirOut:
		return "out"
	}
	return "either"
}

// Polarity distinguishes the +/- terminals of polarized blocks.
type Polarity int

const (
	PolarityNone Polarity = iota
	PolarityPositive
	PolarityNegative
)

// Port is one attachment point on a block. Raw is the decorated name
// exactly as the simulation library spells it ("signalINLConn 1",
// "+LConn 1", "scopeOUTRConn 1", "IN1"); Name is the canonical
// identifier left after the decorations are stripped ("LConn 1", "1").
// Role, Direction and Polarity carry the information the decorations
// encode, so wiring logic never has to sniff substrings.
type Port struct {
	Raw       string
	Name      string
	Role      PortRole
	Direction PortDirection
	Polarity  Polarity
}

// ParsePort splits a decorated port literal into its canonical name and
// role/direction/polarity flags. Parsing is the only place the
// decoration grammar is interpreted; everything downstream works with
// the struct fields.
func ParsePort(raw string) Port {
	p := Port{Raw: raw}
	s := raw

	switch {
	case strings.HasPrefix(s, "+"):
		p.Polarity = PolarityPositive
		s = s[1:]
	case strings.HasPrefix(s, "-"):
		p.Polarity = PolarityNegative
		s = s[1:]
	}

	switch {
	case strings.HasPrefix(s, "signal"):
		p.Role = RoleSignal
		s = strings.TrimPrefix(s, "signal")
	case strings.HasPrefix(s, "scope"):
		p.Role = RoleInstrumentation
		s = strings.TrimPrefix(s, "scope")
	}

	switch {
	case strings.HasPrefix(s, "IN"):
		p.Direction = DirIn
		s = strings.TrimPrefix(s, "IN")
	case strings.HasPrefix(s, "OUT"):
		p.Direction = DirOut
		s = strings.TrimPrefix(s, "OUT")
	}

	p.Name = s

	// Bare numbered ports are Simulink data signals; conserving LConn/
	// RConn terminals default to power unless a decoration said signal
	// or scope.
	if p.Role == RolePower && !strings.HasPrefix(s, "LConn") && !strings.HasPrefix(s, "RConn") {
		p.Role = RoleSignal
	}
	return p
}

// ParsePorts parses an ordered decorated port list.
func ParsePorts(raws ...string) []Port {
	ports := make([]Port, len(raws))
	for i, r := range raws {
		ports[i] = ParsePort(r)
	}
	return ports
}

// NormalizeFromPort strips the decorations off a connection's source
// port name. Returns the canonical name and whether the port was
// actually declared as an input (a wiring mistake worth reporting).
func NormalizeFromPort(name string) (string, bool) {
	misdirected := false
	if strings.Contains(name, "OUT") {
		name = strings.ReplaceAll(name, "OUT", "")
	} else if strings.Contains(name, "IN") {
		misdirected = true
	}
	return stripCommon(name), misdirected
}

// NormalizeToPort is the destination-side counterpart of
// NormalizeFromPort.
func NormalizeToPort(name string) (string, bool) {
	misdirected := false
	if strings.Contains(name, "IN") {
		name = strings.ReplaceAll(name, "IN", "")
	} else if strings.Contains(name, "OUT") {
		misdirected = true
	}
	return stripCommon(name), misdirected
}

func stripCommon(name string) string {
	name = strings.ReplaceAll(name, "signal", "")
	name = strings.ReplaceAll(name, "+", "")
	name = strings.ReplaceAll(name, "-", "")
	name = strings.ReplaceAll(name, "scope", "")
	return name
}
