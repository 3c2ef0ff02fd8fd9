package schematic

import (
	"path/filepath"
	"testing"
)

func TestInstanceRefTextRoundTrip(t *testing.T) {
	cases := []InstanceRef{
		{Module: "top"},
		NewRef("top", "u1"),
		NewRef("top", "u1", "pinA"),
	}
	for _, ref := range cases {
		text, err := ref.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", ref, err)
		}
		var got InstanceRef
		if err := got.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", text, err)
		}
		if got != ref {
			t.Fatalf("round trip mismatch: got %+v, want %+v", got, ref)
		}
	}
}

func TestInstanceRefUnmarshalTextRejectsMissingSeparator(t *testing.T) {
	var r InstanceRef
	if err := r.UnmarshalText([]byte("no-colon-here")); err == nil {
		t.Fatal("expected an error for a ref with no module separator")
	}
}

func TestSchematicJSONRoundTrip(t *testing.T) {
	original := NewSchematic(InstanceRef{Module: "top"})
	r1 := NewRef("top", "u1")
	pin := NewRef("top", "u1", "p1")
	original.Instances[r1] = &Instance{
		Kind:                KindComponent,
		ReferenceDesignator: "R1",
		Attributes: map[string]AttributeValue{
			"type": {Kind: AttrScalar, Scalar: "resistor"},
		},
	}
	original.Instances[pin] = &Instance{Kind: KindPin}
	original.Nets["net1"] = &Net{Name: "net1", ID: 7, Ports: []PortRef{pin}}

	path := filepath.Join(t.TempDir(), "schematic.json")
	if err := SaveJSON(original, path); err != nil {
		t.Fatalf("SaveJSON: %v", err)
	}

	loaded, err := LoadJSON(path)
	if err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}

	got, ok := loaded.Instances[r1]
	if !ok {
		t.Fatalf("expected instance %s to survive the round trip", r1)
	}
	if got.ReferenceDesignator != "R1" || got.Kind != KindComponent {
		t.Fatalf("unexpected round-tripped instance: %+v", got)
	}
	net, ok := loaded.Nets["net1"]
	if !ok || net.ID != 7 || len(net.Ports) != 1 || net.Ports[0] != pin {
		t.Fatalf("unexpected round-tripped net: %+v", net)
	}
}
