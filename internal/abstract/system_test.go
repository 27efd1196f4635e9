package abstract

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleCircuitJSON = `{
    "components": [
        {"name": "Battery_0", "ports": ["Battery_0_plus", "Battery_0_minus"]},
        {"name": "SPSTSwitch_0", "ports": ["SPSTSwitch_0_L1", "SPSTSwitch_0_R1"]},
        {"name": "Lamp_0", "ports": ["Lamp_0_L1", "Lamp_0_R1"]}
    ],
    "connections": [
        {"from": "Battery_0_plus", "to": "SPSTSwitch_0_L1"},
        {"from": "SPSTSwitch_0_R1", "to": "Lamp_0_L1"},
        {"from": "Lamp_0_R1", "to": "Battery_0_minus"}
    ]
}`

func TestFromJSONTrimsPortQualifiedEndpoints(t *testing.T) {
	sys, err := FromJSON([]byte(sampleCircuitJSON))
	if err != nil {
		t.Fatalf("FromJSON failed: %v", err)
	}
	if len(sys.Components) != 3 {
		t.Fatalf("component count = %d, want 3", len(sys.Components))
	}

	battery, ok := sys.ComponentByName("Battery_0")
	if !ok {
		t.Fatal("Battery_0 not found")
	}
	if battery.Kind != KindBattery || battery.ID != 0 {
		t.Errorf("battery = %s_%d, want Battery_0", battery.Kind, battery.ID)
	}
	if len(battery.Ports) != 2 {
		t.Errorf("battery port count = %d, want 2", len(battery.Ports))
	}

	want := []Connection{
		{From: "Battery_0", To: "SPSTSwitch_0"},
		{From: "SPSTSwitch_0", To: "Lamp_0"},
		{From: "Lamp_0", To: "Battery_0"},
	}
	if diff := cmp.Diff(want, sys.Connections); diff != "" {
		t.Errorf("connections mismatch (-want +got):\n%s", diff)
	}
}

func TestFromJSONCollectsUnknownComponents(t *testing.T) {
	doc := `{
        "components": [
            {"name": "Resistor_0", "ports": []},
            {"name": "FluxCapacitor_0", "ports": []},
            {"name": "Nonsense", "ports": []}
        ],
        "connections": []
    }`
	_, err := FromJSON([]byte(doc))
	var compErr *ComponentError
	if !errors.As(err, &compErr) {
		t.Fatalf("error = %v, want a ComponentError", err)
	}
	want := []string{"FluxCapacitor_0", "Nonsense"}
	if diff := cmp.Diff(want, compErr.Components); diff != "" {
		t.Errorf("wrong components mismatch (-want +got):\n%s", diff)
	}
}

func TestFromJSONCollectsUnknownConnectionEndpoints(t *testing.T) {
	doc := `{
        "components": [
            {"name": "Battery_0", "ports": ["Battery_0_plus"]},
            {"name": "Lamp_0", "ports": ["Lamp_0_L1"]}
        ],
        "connections": [
            {"from": "Battery_0_plus", "to": "Lamp_0_L1"},
            {"from": "Ghost_1_L1", "to": "Lamp_0_L1"}
        ]
    }`
	_, err := FromJSON([]byte(doc))
	var connErr *ConnectionError
	if !errors.As(err, &connErr) {
		t.Fatalf("error = %v, want a ConnectionError", err)
	}
	want := []string{"Ghost_1_L1 -> Lamp_0_L1"}
	if diff := cmp.Diff(want, connErr.Connections); diff != "" {
		t.Errorf("wrong connections mismatch (-want +got):\n%s", diff)
	}
}

func TestFromJSONMalformedDocument(t *testing.T) {
	if _, err := FromJSON([]byte("{")); err == nil {
		t.Fatal("FromJSON accepted malformed JSON")
	}
}

func TestSystemJSONRoundTrip(t *testing.T) {
	sys, err := FromJSON([]byte(sampleCircuitJSON))
	if err != nil {
		t.Fatalf("FromJSON failed: %v", err)
	}
	encoded, err := sys.JSON()
	if err != nil {
		t.Fatalf("JSON failed: %v", err)
	}
	reloaded, err := FromJSON(encoded)
	if err != nil {
		t.Fatalf("FromJSON(reencoded) failed: %v", err)
	}
	if diff := cmp.Diff(sys, reloaded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveEndpointPrefersLongestName(t *testing.T) {
	doc := `{
        "components": [
            {"name": "SPSTSwitch_1", "ports": []},
            {"name": "SPSTSwitch_11", "ports": []},
            {"name": "Battery_0", "ports": []}
        ],
        "connections": [
            {"from": "SPSTSwitch_11_L1", "to": "Battery_0"}
        ]
    }`
	sys, err := FromJSON([]byte(doc))
	if err != nil {
		t.Fatalf("FromJSON failed: %v", err)
	}
	if len(sys.Connections) != 1 {
		t.Fatalf("connection count = %d, want 1", len(sys.Connections))
	}
	if sys.Connections[0].From != "SPSTSwitch_11" {
		t.Errorf("resolved endpoint = %q, want %q", sys.Connections[0].From, "SPSTSwitch_11")
	}
}
