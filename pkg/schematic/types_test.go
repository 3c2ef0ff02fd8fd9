package schematic

import (
	"fmt"
	"testing"

	"pgregory.net/rapid"
)

func refdesOf(s string) *Instance {
	return &Instance{Kind: KindComponent, ReferenceDesignator: s}
}

func pinRef(module string, component string, pin string) InstanceRef {
	return NewRef(module, component, pin)
}

func newValidSchematic() *Schematic {
	s := NewSchematic(InstanceRef{Module: "top"})
	compR1 := NewRef("top", "r1")
	compR2 := NewRef("top", "r2")
	s.Instances[compR1] = &Instance{Kind: KindComponent, ReferenceDesignator: "R1"}
	s.Instances[compR2] = &Instance{Kind: KindComponent, ReferenceDesignator: "R2"}
	p1 := pinRef("top", "r1", "p1")
	p2 := pinRef("top", "r2", "p1")
	s.Instances[p1] = &Instance{Kind: KindPin}
	s.Instances[p2] = &Instance{Kind: KindPin}

	counter := NewNetIDCounter()
	s.Nets["net1"] = &Net{Name: "net1", ID: counter.Next(), Ports: []PortRef{p1, p2}}
	return s
}

func TestInstanceKindString(t *testing.T) {
	cases := []struct {
		kind InstanceKind
		want string
	}{
		{KindModule, "Module"},
		{KindComponent, "Component"},
		{KindInterface, "Interface"},
		{KindPort, "Port"},
		{KindPin, "Pin"},
		{InstanceKind(99), "Unknown(99)"},
	}
	for _, c := range cases {
		if got := c.kind.String(); got != c.want {
			t.Errorf("InstanceKind(%d).String() = %q, want %q", c.kind, got, c.want)
		}
	}
}

func TestInstanceRefStringAndEquality(t *testing.T) {
	a := NewRef("top", "r1", "p1")
	b := NewRef("top", "r1", "p1")
	c := NewRef("top", "r1", "p2")

	if a != b {
		t.Error("identical InstanceRefs should compare equal")
	}
	if a == c {
		t.Error("differing InstanceRefs should not compare equal")
	}
	if a.String() != "top:r1/p1" {
		t.Errorf("unexpected String() form: %q", a.String())
	}

	m := map[InstanceRef]int{a: 1}
	if m[b] != 1 {
		t.Error("InstanceRef must be usable as a map key with structural equality")
	}
}

func TestInstanceRefParentAndLeaf(t *testing.T) {
	ref := NewRef("top", "r1", "p1")
	parent, ok := ref.Parent()
	if !ok {
		t.Fatal("expected a parent")
	}
	want := NewRef("top", "r1")
	if parent != want {
		t.Errorf("Parent() = %+v, want %+v", parent, want)
	}
	if ref.Leaf() != "p1" {
		t.Errorf("Leaf() = %q, want p1", ref.Leaf())
	}

	root := InstanceRef{Module: "top"}
	if _, ok := root.Parent(); ok {
		t.Error("root ref should have no parent")
	}
	if root.Leaf() != "" {
		t.Error("root ref should have empty leaf")
	}
}

func TestNetIDCounterMonotonicAndReset(t *testing.T) {
	c := NewNetIDCounter()
	first := c.Next()
	second := c.Next()
	if first != 1 || second != 2 {
		t.Fatalf("expected 1 then 2, got %d then %d", first, second)
	}
	c.Reset()
	if got := c.Next(); got != 1 {
		t.Fatalf("expected counter to restart at 1 after Reset, got %d", got)
	}
}

func TestNetRoutable(t *testing.T) {
	n := &Net{Ports: []PortRef{pinRef("top", "r1", "p1")}}
	if n.Routable() {
		t.Error("a net with a single port must not be routable")
	}
	n.Ports = append(n.Ports, pinRef("top", "r2", "p1"))
	if !n.Routable() {
		t.Error("a net with two ports must be routable")
	}
}

func TestSchematicValidate_Valid(t *testing.T) {
	s := newValidSchematic()
	if err := s.Validate(); err != nil {
		t.Fatalf("expected valid schematic, got %v", err)
	}
}

func TestSchematicValidate_UnresolvedPortRef(t *testing.T) {
	s := newValidSchematic()
	bogus := pinRef("top", "ghost", "p1")
	s.Nets["net1"].Ports = append(s.Nets["net1"].Ports, bogus)
	if err := s.Validate(); err == nil {
		t.Fatal("expected validation failure for unresolved port ref")
	}
}

func TestSchematicValidate_PortParentNotComponent(t *testing.T) {
	s := NewSchematic(InstanceRef{Module: "top"})
	moduleRef := NewRef("top", "sub")
	s.Instances[moduleRef] = &Instance{Kind: KindModule}
	pin := NewRef("top", "sub", "p1")
	s.Instances[pin] = &Instance{Kind: KindPin}
	other := pinRef("top", "r2", "p1")
	s.Instances[NewRef("top", "r2")] = &Instance{Kind: KindComponent}
	s.Instances[other] = &Instance{Kind: KindPin}

	counter := NewNetIDCounter()
	s.Nets["net1"] = &Net{Name: "net1", ID: counter.Next(), Ports: []PortRef{pin, other}}
	if err := s.Validate(); err == nil {
		t.Fatal("expected validation failure when a port's parent is not a Component")
	}
}

func TestSchematicValidate_DuplicateRefdes(t *testing.T) {
	s := newValidSchematic()
	s.Instances[NewRef("top", "r2")].ReferenceDesignator = "R1"
	if err := s.Validate(); err == nil {
		t.Fatal("expected validation failure for duplicate reference designator")
	}
}

func TestSchematicValidate_DuplicateNetID(t *testing.T) {
	s := newValidSchematic()
	p1 := pinRef("top", "r1", "p2")
	s.Instances[p1] = &Instance{Kind: KindPin}
	p2 := pinRef("top", "r2", "p2")
	s.Instances[p2] = &Instance{Kind: KindPin}
	s.Nets["net2"] = &Net{Name: "net2", ID: s.Nets["net1"].ID, Ports: []PortRef{p1, p2}}
	if err := s.Validate(); err == nil {
		t.Fatal("expected validation failure for duplicate NetId")
	}
}

func TestDeriveNetNames_ShortestUniqueComponentPath(t *testing.T) {
	s := NewSchematic(InstanceRef{Module: "top"})
	counter := NewNetIDCounter()

	mkPin := func(path ...Name) PortRef {
		ref := NewRef("top", path...)
		s.Instances[ref] = &Instance{Kind: KindPin}
		return ref
	}
	compA := NewRef("top", "blockA", "u1")
	s.Instances[compA] = &Instance{Kind: KindComponent}
	compB := NewRef("top", "blockB", "u1")
	s.Instances[compB] = &Instance{Kind: KindComponent}

	pA := mkPin("blockA", "u1", "vcc")
	pA2 := mkPin("blockA", "other", "vcc")
	s.Instances[NewRef("top", "blockA", "other")] = &Instance{Kind: KindComponent}

	pB := mkPin("blockB", "u1", "vcc")
	pB2 := mkPin("blockB", "other2", "vcc")
	s.Instances[NewRef("top", "blockB", "other2")] = &Instance{Kind: KindComponent}

	s.Nets["a"] = &Net{ID: counter.Next(), Ports: []PortRef{pA, pA2}}
	s.Nets["b"] = &Net{ID: counter.Next(), Ports: []PortRef{pB, pB2}}

	s.DeriveNetNames()

	if s.Nets["a"] != nil {
		t.Fatal("net stored under \"a\" with an empty Name should have been re-keyed")
	}
	var names []string
	for name := range s.Nets {
		names = append(names, name)
	}
	if len(names) != 2 {
		t.Fatalf("expected 2 nets after derivation, got %d: %v", len(names), names)
	}
	for name, n := range s.Nets {
		if n.Name != name {
			t.Errorf("net stored under %q has mismatched Name %q", name, n.Name)
		}
		if n.Name == "" {
			t.Error("derived name must not be empty")
		}
	}
}

func TestDeriveNetNames_FallbackToNetID(t *testing.T) {
	s := NewSchematic(InstanceRef{Module: "top"})
	counter := NewNetIDCounter()
	n := &Net{ID: counter.Next()}
	s.Nets[""] = n
	s.DeriveNetNames()
	want := fmt.Sprintf("NET_%d", n.ID)
	if n.Name != want {
		t.Errorf("expected fallback name %q, got %q", want, n.Name)
	}
}

func TestAttributeValueScalarKind(t *testing.T) {
	cases := []struct {
		v    AttributeValue
		kind string
		ok   bool
	}{
		{AttributeValue{Kind: AttrScalar, Scalar: true}, "bool", true},
		{AttributeValue{Kind: AttrScalar, Scalar: int64(1)}, "int", true},
		{AttributeValue{Kind: AttrScalar, Scalar: 1.5}, "float", true},
		{AttributeValue{Kind: AttrScalar, Scalar: "x"}, "string", true},
		{AttributeValue{Kind: AttrList}, "", false},
	}
	for _, c := range cases {
		kind, ok := c.v.ScalarKind()
		if kind != c.kind || ok != c.ok {
			t.Errorf("ScalarKind() = (%q, %v), want (%q, %v)", kind, ok, c.kind, c.ok)
		}
	}
}

func TestAttributeValueSourceKind(t *testing.T) {
	v := AttributeValue{Kind: AttrMap, Map: map[string]AttributeValue{
		"__kind__": {Kind: AttrScalar, Scalar: "Net"},
	}}
	if got := v.SourceKind(); got != "Net" {
		t.Errorf("SourceKind() = %q, want Net", got)
	}
	if got := (AttributeValue{Kind: AttrScalar}).SourceKind(); got != "" {
		t.Errorf("SourceKind() on non-map = %q, want empty", got)
	}
}

// TestCompareRefsTotalOrder exercises CompareRefs/SortedRefs against
// randomly generated sets of InstanceRefs, checking that SortedRefs
// returns every adjacent pair in CompareRefs order.
func TestCompareRefsTotalOrder(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 20).Draw(t, "n")
		refs := make(map[InstanceRef]int, n)
		for i := 0; i < n; i++ {
			segs := rapid.IntRange(0, 3).Draw(t, fmt.Sprintf("segs_%d", i))
			path := make([]Name, segs)
			for j := range path {
				path[j] = rapid.StringMatching(`[a-z][a-z0-9]{0,4}`).Draw(t, fmt.Sprintf("seg_%d_%d", i, j))
			}
			mod := rapid.StringMatching(`[a-z][a-z0-9]{0,4}`).Draw(t, fmt.Sprintf("mod_%d", i))
			refs[NewRef(mod, path...)] = i
		}
		sorted := SortedRefs(refs)
		for i := 1; i < len(sorted); i++ {
			if !CompareRefs(sorted[i-1], sorted[i]) && sorted[i-1] != sorted[i] {
				t.Fatalf("SortedRefs output not monotonically increasing at index %d", i)
			}
		}
	})
}

func TestRectOverlapArea(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	b := Rect{X: 5, Y: 5, Width: 10, Height: 10}
	if got := a.OverlapArea(b); got != 25 {
		t.Errorf("OverlapArea() = %v, want 25", got)
	}
	c := Rect{X: 20, Y: 20, Width: 5, Height: 5}
	if got := a.OverlapArea(c); got != 0 {
		t.Errorf("OverlapArea() of disjoint rects = %v, want 0", got)
	}
}
