package blocks

import "testing"

func TestParsePort(t *testing.T) {
	tests := []struct {
		raw       string
		name      string
		role      PortRole
		direction PortDirection
		polarity  Polarity
	}{
		{"LConn 1", "LConn 1", RolePower, DirEither, PolarityNone},
		{"RConn 3", "RConn 3", RolePower, DirEither, PolarityNone},
		{"+LConn 1", "LConn 1", RolePower, DirEither, PolarityPositive},
		{"-RConn 2", "RConn 2", RolePower, DirEither, PolarityNegative},
		{"signalINLConn 1", "LConn 1", RoleSignal, DirIn, PolarityNone},
		{"signalINRConn 1", "RConn 1", RoleSignal, DirIn, PolarityNone},
		{"scopeOUTRConn 1", "RConn 1", RoleInstrumentation, DirOut, PolarityNone},
		{"INLConn 1", "LConn 1", RolePower, DirIn, PolarityNone},
		{"OUTRConn 1", "RConn 1", RolePower, DirOut, PolarityNone},
		{"IN1", "1", RoleSignal, DirIn, PolarityNone},
		{"IN2", "2", RoleSignal, DirIn, PolarityNone},
		{"OUT1", "1", RoleSignal, DirOut, PolarityNone},
	}
	for _, tt := range tests {
		p := ParsePort(tt.raw)
		if p.Raw != tt.raw {
			t.Errorf("ParsePort(%q).Raw = %q, want %q", tt.raw, p.Raw, tt.raw)
		}
		if p.Name != tt.name {
			t.Errorf("ParsePort(%q).Name = %q, want %q", tt.raw, p.Name, tt.name)
		}
		if p.Role != tt.role {
			t.Errorf("ParsePort(%q).Role = %v, want %v", tt.raw, p.Role, tt.role)
		}
		if p.Direction != tt.direction {
			t.Errorf("ParsePort(%q).Direction = %v, want %v", tt.raw, p.Direction, tt.direction)
		}
		if p.Polarity != tt.polarity {
			t.Errorf("ParsePort(%q).Polarity = %v, want %v", tt.raw, p.Polarity, tt.polarity)
		}
	}
}

func TestNormalizeFromPort(t *testing.T) {
	tests := []struct {
		in          string
		want        string
		misdirected bool
	}{
		{"OUT1", "1", false},
		{"OUTRConn 1", "RConn 1", false},
		{"scopeOUTRConn 1", "RConn 1", false},
		{"signalOUTRConn 1", "RConn 1", false},
		{"+LConn 1", "LConn 1", false},
		{"-RConn 2", "RConn 2", false},
		{"LConn 2", "LConn 2", false},
		// Source side declared as an input: reported, not rewritten.
		{"signalINLConn 1", "INLConn 1", true},
		{"IN1", "IN1", true},
	}
	for _, tt := range tests {
		got, misdirected := NormalizeFromPort(tt.in)
		if got != tt.want || misdirected != tt.misdirected {
			t.Errorf("NormalizeFromPort(%q) = (%q, %v), want (%q, %v)",
				tt.in, got, misdirected, tt.want, tt.misdirected)
		}
	}
}

func TestNormalizeToPort(t *testing.T) {
	tests := []struct {
		in          string
		want        string
		misdirected bool
	}{
		{"IN1", "1", false},
		{"INLConn 1", "LConn 1", false},
		{"signalINLConn 1", "LConn 1", false},
		{"signalINRConn 1", "RConn 1", false},
		{"+LConn 1", "LConn 1", false},
		{"RConn 1", "RConn 1", false},
		// Destination side declared as an output: reported, not
		// rewritten.
		{"OUT1", "OUT1", true},
		{"scopeOUTRConn 1", "OUTRConn 1", true},
	}
	for _, tt := range tests {
		got, misdirected := NormalizeToPort(tt.in)
		if got != tt.want || misdirected != tt.misdirected {
			t.Errorf("NormalizeToPort(%q) = (%q, %v), want (%q, %v)",
				tt.in, got, misdirected, tt.want, tt.misdirected)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	raws := []string{
		"OUT1", "OUTRConn 1", "scopeOUTRConn 1", "signalOUTRConn 1",
		"+LConn 1", "-RConn 2", "LConn 2", "RConn 1",
	}
	for _, raw := range raws {
		once, _ := NormalizeFromPort(raw)
		twice, _ := NormalizeFromPort(once)
		if once != twice {
			t.Errorf("NormalizeFromPort not idempotent on %q: %q then %q", raw, once, twice)
		}
	}
	raws = []string{
		"IN1", "INLConn 1", "signalINLConn 1", "+LConn 1", "RConn 1",
	}
	for _, raw := range raws {
		once, _ := NormalizeToPort(raw)
		twice, _ := NormalizeToPort(once)
		if once != twice {
			t.Errorf("NormalizeToPort not idempotent on %q: %q then %q", raw, once, twice)
		}
	}
}
