package abstract

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Component is one node of the abstract circuit. Ports are opaque
// labels the language model invented; only their count matters to the
// prompts, the builder resolves concrete ports on its own.
type Component struct {
	Kind  Kind
	ID    int
	Ports []string
}

// UniqueName is Kind_ID, e.g. "Resistor_0".
func (c Component) UniqueName() string {
	return fmt.Sprintf("%s_%d", c.Kind, c.ID)
}

// Connection is one port-free edge between two components, each named
// by component unique name.
type Connection struct {
	From string
	To   string
}

// System is the abstract circuit: the builder's sole input besides
// the catalogs.
type System struct {
	Components  []Component
	Connections []Connection
}

// ComponentByName returns the component with the given unique name.
func (s *System) ComponentByName(name string) (Component, bool) {
	for _, c := range s.Components {
		if c.UniqueName() == name {
			return c, true
		}
	}
	return Component{}, false
}

// ComponentError reports abstract components whose type selector is
// outside the catalog. The offending names feed the correction prompt.
type ComponentError struct {
	Message    string
	Components []string
}

func (e *ComponentError) Error() string { return e.Message }

// ConnectionError reports connections whose endpoints resolve to no
// known component. The offending endpoint pairs feed the correction
// prompt.
type ConnectionError struct {
	Message     string
	Connections []string
}

func (e *ConnectionError) Error() string { return e.Message }

type componentJSON struct {
	Name  string   `json:"name"`
	Ports []string `json:"ports"`
}

type connectionJSON struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type systemJSON struct {
	Components  []componentJSON  `json:"components"`
	Connections []connectionJSON `json:"connections"`
}

// FromJSON decodes an abstract circuit document. Components with a
// malformed name or a type outside the catalog are collected into a
// single ComponentError; connection endpoints are trimmed from their
// port-qualified form ("Resistor_0_R1") to the owning component, and
// endpoints naming no component are collected into a ConnectionError.
func FromJSON(data []byte) (*System, error) {
	var doc systemJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("abstract: decode system: %w", err)
	}

	sys := &System{
		Components:  make([]Component, 0, len(doc.Components)),
		Connections: make([]Connection, 0, len(doc.Connections)),
	}

	var wrongComponents []string
	for _, c := range doc.Components {
		kind, id, err := ParseName(c.Name)
		if err != nil {
			wrongComponents = append(wrongComponents, c.Name)
			continue
		}
		if _, ok := Lookup(kind); !ok {
			wrongComponents = append(wrongComponents, c.Name)
			continue
		}
		sys.Components = append(sys.Components, Component{Kind: kind, ID: id, Ports: c.Ports})
	}
	if len(wrongComponents) > 0 {
		return nil, &ComponentError{
			Message:    fmt.Sprintf("%d component types are not in the catalog", len(wrongComponents)),
			Components: wrongComponents,
		}
	}

	var wrongConnections []string
	for _, conn := range doc.Connections {
		from, okFrom := sys.resolveEndpoint(conn.From)
		to, okTo := sys.resolveEndpoint(conn.To)
		if !okFrom || !okTo {
			wrongConnections = append(wrongConnections, fmt.Sprintf("%s -> %s", conn.From, conn.To))
			continue
		}
		sys.Connections = append(sys.Connections, Connection{From: from, To: to})
	}
	if len(wrongConnections) > 0 {
		return nil, &ConnectionError{
			Message:     fmt.Sprintf("%d connections reference unknown components", len(wrongConnections)),
			Connections: wrongConnections,
		}
	}

	return sys, nil
}

// resolveEndpoint trims a possibly port-qualified endpoint down to the
// unique name of the component it belongs to. The longest matching
// component name wins so numeric IDs never alias.
func (s *System) resolveEndpoint(endpoint string) (string, bool) {
	best := ""
	for _, c := range s.Components {
		name := c.UniqueName()
		if endpoint == name {
			return name, true
		}
		if strings.HasPrefix(endpoint, name+"_") && len(name) > len(best) {
			best = name
		}
	}
	return best, best != ""
}

// JSON encodes the system back into the document form FromJSON reads.
func (s *System) JSON() ([]byte, error) {
	doc := systemJSON{
		Components:  make([]componentJSON, 0, len(s.Components)),
		Connections: make([]connectionJSON, 0, len(s.Connections)),
	}
	for _, c := range s.Components {
		doc.Components = append(doc.Components, componentJSON{Name: c.UniqueName(), Ports: c.Ports})
	}
	for _, conn := range s.Connections {
		doc.Connections = append(doc.Connections, connectionJSON{From: conn.From, To: conn.To})
	}
	return json.MarshalIndent(doc, "", "    ")
}
