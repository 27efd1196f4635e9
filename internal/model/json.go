package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Patrick-Hummel/AI-Simscape-Model-Generator/internal/blocks"
)

// Serialized system layout. Components are stored with their unique
// name, kind and parameter dictionary; connections store endpoint
// references as "UniqueName#port". Unlike in-memory construction,
// reloading preserves every stored ID so the names in follow-up
// scripts keep pointing at the same blocks.

type componentJSON struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Parameters map[string]any `json:"parameters"`
}

type connectionJSON struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type subsystemJSON struct {
	ID          string           `json:"id"`
	Components  []componentJSON  `json:"components"`
	Connections []connectionJSON `json:"connections"`
}

type parametersJSON struct {
	Solver   string `json:"Solver"`
	StopTime int    `json:"StopTime"`
}

type systemJSON struct {
	Name        string           `json:"name"`
	Components  []componentJSON  `json:"components"`
	Subsystems  []subsystemJSON  `json:"subsystems"`
	Connections []connectionJSON `json:"connections"`
	Parameters  *parametersJSON  `json:"parameters"`
}

func componentsAsJSON(components []blocks.Block) []componentJSON {
	docs := make([]componentJSON, 0, len(components))
	for _, component := range components {
		docs = append(docs, componentJSON{
			ID:         component.UniqueName(),
			Type:       string(component.Kind()),
			Parameters: component.Parameters(),
		})
	}
	return docs
}

func connectionsAsJSON(conns []*Connection) []connectionJSON {
	docs := make([]connectionJSON, 0, len(conns))
	for _, conn := range conns {
		docs = append(docs, connectionJSON{From: conn.FromRef(), To: conn.ToRef()})
	}
	return docs
}

func (s *Subsystem) asJSON() subsystemJSON {
	return subsystemJSON{
		ID:          s.UniqueName(),
		Components:  componentsAsJSON(s.components),
		Connections: connectionsAsJSON(s.connections),
	}
}

func (sys *System) asJSON() systemJSON {
	subs := make([]subsystemJSON, 0, len(sys.subsystems))
	for _, sub := range sys.subsystems {
		subs = append(subs, sub.asJSON())
	}
	return systemJSON{
		Name:        sys.name,
		Components:  componentsAsJSON(sys.components),
		Subsystems:  subs,
		Connections: connectionsAsJSON(sys.connections),
		Parameters:  &parametersJSON{Solver: sys.Solver, StopTime: sys.StopTime},
	}
}

// JSON renders the serialized system, indented four spaces.
func (sys *System) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(sys.asJSON(), "", "    ")
	if err != nil {
		return nil, fmt.Errorf("encode system %s: %w", sys.name, err)
	}
	return data, nil
}

// SaveJSON writes the serialized system into dir as
// system_<name>_<timestamp>.json, creating the directory if needed,
// and returns the written path.
func (sys *System) SaveJSON(dir string) (string, error) {
	data, err := sys.JSON()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("save system: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("system_%s_%s.json", sys.name, time.Now().Format("20060102_1504")))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("save system: %w", err)
	}
	return path, nil
}

// splitUniqueName splits "Resistor_7" into kind prefix and numeric ID.
func splitUniqueName(unique string) (string, int, error) {
	i := strings.LastIndex(unique, "_")
	if i < 0 {
		return "", 0, fmt.Errorf("malformed unique name %q", unique)
	}
	id, err := strconv.Atoi(unique[i+1:])
	if err != nil {
		return "", 0, fmt.Errorf("malformed unique name %q: %w", unique, err)
	}
	return unique[:i], id, nil
}

func restoreComponent(alloc *blocks.Allocator, doc componentJSON) (blocks.Block, error) {
	if doc.Parameters == nil {
		return nil, fmt.Errorf("component %s: missing parameters object", doc.ID)
	}
	_, id, err := splitUniqueName(doc.ID)
	if err != nil {
		return nil, err
	}
	return blocks.Restore(blocks.Kind(doc.Type), alloc, id, doc.Parameters)
}

// resolveConnection rebuilds one connection against the restored
// endpoints. Connections naming endpoints that were not restored are
// dropped.
func resolveConnection(byName map[string]Endpoint, doc connectionJSON) (*Connection, bool) {
	fromName, fromPort, ok := strings.Cut(doc.From, "#")
	if !ok {
		return nil, false
	}
	toName, toPort, ok := strings.Cut(doc.To, "#")
	if !ok {
		return nil, false
	}
	from, okFrom := byName[fromName]
	to, okTo := byName[toName]
	if !okFrom || !okTo {
		return nil, false
	}
	return NewConnection(from, fromPort, to, toPort), true
}

func subsystemFromJSON(alloc *blocks.Allocator, doc subsystemJSON) (*Subsystem, error) {
	name, id, err := splitUniqueName(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("subsystem %s: %w", doc.ID, err)
	}
	sub := restoreSubsystem(alloc, name, id)

	byName := make(map[string]Endpoint, len(doc.Components))
	for _, componentDoc := range doc.Components {
		component, err := restoreComponent(alloc, componentDoc)
		if err != nil {
			return nil, fmt.Errorf("subsystem %s: %w", doc.ID, err)
		}
		if err := sub.AddComponent(component); err != nil {
			return nil, fmt.Errorf("subsystem %s: %w", doc.ID, err)
		}
		byName[componentDoc.ID] = component
	}

	for _, connDoc := range doc.Connections {
		if conn, ok := resolveConnection(byName, connDoc); ok {
			sub.AddConnection(conn)
		}
	}
	return sub, nil
}

// SystemFromJSON rebuilds a system from its serialized form. Stored
// block and subsystem IDs are preserved, so names stay stable across
// a save and reload.
func SystemFromJSON(data []byte) (*System, error) {
	var doc systemJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode system: %w", err)
	}

	sys := NewSystem(doc.Name)
	byName := make(map[string]Endpoint, len(doc.Components)+len(doc.Subsystems))

	for _, componentDoc := range doc.Components {
		component, err := restoreComponent(sys.Allocator(), componentDoc)
		if err != nil {
			return nil, err
		}
		if err := sys.AddComponent(component); err != nil {
			return nil, err
		}
		byName[componentDoc.ID] = component
	}

	for _, subDoc := range doc.Subsystems {
		sub, err := subsystemFromJSON(sys.Allocator(), subDoc)
		if err != nil {
			return nil, err
		}
		sys.AddSubsystem(sub)
		byName[subDoc.ID] = sub
	}

	for _, connDoc := range doc.Connections {
		if conn, ok := resolveConnection(byName, connDoc); ok {
			sys.AddConnection(conn)
		}
	}

	if doc.Parameters != nil {
		sys.Solver = doc.Parameters.Solver
		sys.StopTime = doc.Parameters.StopTime
	}
	return sys, nil
}

// LoadJSON reads a serialized system from disk.
func LoadJSON(path string) (*System, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load system: %w", err)
	}
	sys, err := SystemFromJSON(data)
	if err != nil {
		return nil, fmt.Errorf("load system %s: %w", filepath.Base(path), err)
	}
	return sys, nil
}
