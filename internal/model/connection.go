package model

import "fmt"

// Endpoint is anything a connection can attach to: a catalog block or
// a subsystem. Connections only ever address endpoints by unique name.
type Endpoint interface {
	UniqueName() string
}

// Connection is one wired edge between two endpoint ports. The stored
// direction exists for diagram rendering; electrically the edge is
// undirected. Endpoints are non-owning references into the container
// that holds the connection.
//
// The port string is a decorated port literal for block endpoints, or
// the unique name of a boundary connection-port block for subsystem
// endpoints.
type Connection struct {
	From     Endpoint
	FromPort string
	To       Endpoint
	ToPort   string
}

// NewConnection wires from's port to to's port. Port names are taken
// verbatim; the container's normalization pass strips the decorations
// later.
func NewConnection(from Endpoint, fromPort string, to Endpoint, toPort string) *Connection {
	return &Connection{From: from, FromPort: fromPort, To: to, ToPort: toPort}
}

// FromRef is the serialized source endpoint, "UniqueName#port".
func (c *Connection) FromRef() string {
	return fmt.Sprintf("%s#%s", c.From.UniqueName(), c.FromPort)
}

// ToRef is the serialized destination endpoint, "UniqueName#port".
func (c *Connection) ToRef() string {
	return fmt.Sprintf("%s#%s", c.To.UniqueName(), c.ToPort)
}

// FromPath is the source endpoint in the "UniqueName/port" form the
// simulation script builder consumes.
func (c *Connection) FromPath() string {
	return fmt.Sprintf("%s/%s", c.From.UniqueName(), c.FromPort)
}

// ToPath is the destination endpoint in the "UniqueName/port" form the
// simulation script builder consumes.
func (c *Connection) ToPath() string {
	return fmt.Sprintf("%s/%s", c.To.UniqueName(), c.ToPort)
}

// Touches reports whether either endpoint is the named block or
// subsystem.
func (c *Connection) Touches(uniqueName string) bool {
	return c.From.UniqueName() == uniqueName || c.To.UniqueName() == uniqueName
}
