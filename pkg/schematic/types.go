package schematic

import (
	"fmt"
	"sort"
	"strings"
)

// Point is a 2D coordinate in millimetres. Origin is top-left, +y down.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in millimetres.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether p lies within r, inclusive of the boundary.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width && p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Center returns the midpoint of r.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// OverlapArea returns the area of intersection between r and other, or 0
// if they do not overlap.
func (r Rect) OverlapArea(other Rect) float64 {
	x1 := max(r.X, other.X)
	y1 := max(r.Y, other.Y)
	x2 := min(r.X+r.Width, other.X+other.Width)
	y2 := min(r.Y+r.Height, other.Y+other.Height)
	if x2 <= x1 || y2 <= y1 {
		return 0
	}
	return (x2 - x1) * (y2 - y1)
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// InstanceKind classifies the role an Instance plays in the module tree.
// The placer considers only Component.
type InstanceKind int

const (
	KindModule InstanceKind = iota
	KindComponent
	KindInterface
	KindPort
	KindPin
)

// String returns the human-readable InstanceKind name.
func (k InstanceKind) String() string {
	switch k {
	case KindModule:
		return "Module"
	case KindComponent:
		return "Component"
	case KindInterface:
		return "Interface"
	case KindPort:
		return "Port"
	case KindPin:
		return "Pin"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Name is a single path segment of an InstanceRef — one identifier in
// the hierarchical instance path (e.g. a module field name or a repeat
// index rendered as a string).
type Name = string

// InstanceRef is the hierarchical address of an instance: the module
// that defines it plus the path of names from that module's root down
// to the instance. Path holds the segments pre-joined with "/" rather
// than as a slice so that InstanceRef stays comparable — a struct with
// a slice field cannot be used as a map key or compared with ==, and
// InstanceRef is used as both throughout this package.
type InstanceRef struct {
	Module string
	Path   string
}

// NewRef builds an InstanceRef from a module name and its path segments.
func NewRef(module string, segments ...Name) InstanceRef {
	return InstanceRef{Module: module, Path: strings.Join(segments, "/")}
}

// Segments splits Path back into its individual name components, or nil
// if r names the module root.
func (r InstanceRef) Segments() []Name {
	if r.Path == "" {
		return nil
	}
	return strings.Split(r.Path, "/")
}

// String renders the canonical textual form used for sorting and for
// disambiguating net names: "module:seg/seg/seg".
func (r InstanceRef) String() string {
	return r.Module + ":" + r.Path
}

// Parent returns the InstanceRef of the immediate parent (one path
// segment shorter) and true, or the zero value and false if r is
// already at the module root.
func (r InstanceRef) Parent() (InstanceRef, bool) {
	segments := r.Segments()
	if len(segments) == 0 {
		return InstanceRef{}, false
	}
	return NewRef(r.Module, segments[:len(segments)-1]...), true
}

// Leaf returns the final path segment (e.g. a pin name for a PortRef),
// or "" if the path is empty.
func (r InstanceRef) Leaf() Name {
	segments := r.Segments()
	if len(segments) == 0 {
		return ""
	}
	return segments[len(segments)-1]
}

// CompareRefs orders InstanceRefs by their canonical string form. This
// is the single canonical ordering used throughout the core (refdes
// assignment, deterministic placement seeding, SVG draw order) so that
// identical schematics always produce identical output regardless of
// map iteration or insertion order.
func CompareRefs(a, b InstanceRef) bool {
	return a.String() < b.String()
}

// SortedRefs returns the keys of refs sorted by CompareRefs.
func SortedRefs[V any](refs map[InstanceRef]V) []InstanceRef {
	out := make([]InstanceRef, 0, len(refs))
	for r := range refs {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return CompareRefs(out[i], out[j]) })
	return out
}

// PortRef is an InstanceRef whose last path segment names a pin.
type PortRef = InstanceRef

// AttributeKind tags the variant stored in an AttributeValue. Richer
// source-language types (interfaces, records, enums) collapse to Map
// with a "__kind__" entry; consumers that don't recognize a __kind__
// tag must treat it as an opaque string, per spec §9.
type AttributeKind int

const (
	AttrScalar AttributeKind = iota
	AttrList
	AttrMap
)

// AttributeValue is the fixed tagged union every source-language value
// collapses to in the flat schematic.
type AttributeValue struct {
	Kind AttributeKind

	// Scalar holds a bool, int64, float64, or string when Kind == AttrScalar.
	Scalar any

	// List holds nested values when Kind == AttrList.
	List []AttributeValue

	// Map holds nested values when Kind == AttrMap. A "__kind__" entry,
	// if present, names the richer source type this map was serialized
	// from (e.g. "Net", "Interface", "Enum").
	Map map[string]AttributeValue
}

// ScalarKind returns ("bool"|"int"|"float"|"string", true) for a Scalar
// attribute, or ("", false) otherwise.
func (v AttributeValue) ScalarKind() (string, bool) {
	if v.Kind != AttrScalar {
		return "", false
	}
	switch v.Scalar.(type) {
	case bool:
		return "bool", true
	case int64:
		return "int", true
	case float64:
		return "float", true
	case string:
		return "string", true
	default:
		return "", false
	}
}

// SourceKind returns the "__kind__" tag of a Map attribute, or "" if
// absent or not a Map.
func (v AttributeValue) SourceKind() string {
	if v.Kind != AttrMap {
		return ""
	}
	tag, ok := v.Map["__kind__"]
	if !ok || tag.Kind != AttrScalar {
		return ""
	}
	s, _ := tag.Scalar.(string)
	return s
}

// Symbol carries the KiCad-facing pad/signal mapping and raw footprint
// token attached to a Component instance. It is opaque to placement and
// routing beyond the pad-center geometry a future exporter would need;
// the core never interprets FootprintToken.
type Symbol struct {
	// PadToSignal maps a pad/pin designator (e.g. "1", "A3") to the
	// signal/pin name the schematic uses for it.
	PadToSignal map[string]string
	// FootprintToken is the raw footprint identifier as recorded by the
	// evaluator layer (opaque beyond LIB:NAME parsing — see Instance.Footprint).
	FootprintToken string
}

// Instance is one node of the flat module tree: a module, component,
// interface, port, or pin.
type Instance struct {
	Kind InstanceKind

	// ReferenceDesignator is set by the refdes assigner for Component
	// instances; empty until assigned, and for non-Component kinds.
	ReferenceDesignator string

	// Attributes holds arbitrary source-language attributes attached to
	// this instance (type, value, user metadata, ...).
	Attributes map[string]AttributeValue

	// Symbol is populated for Component instances that carry pad/signal
	// and footprint metadata. Nil otherwise.
	Symbol *Symbol

	// Footprint is the "LIB:NAME" footprint identifier for Component
	// instances, or "" if unset.
	Footprint string
}

// TypeAttribute returns the "type" attribute's string value, or "" if
// absent or not a string scalar.
func (i *Instance) TypeAttribute() string {
	if i.Attributes == nil {
		return ""
	}
	v, ok := i.Attributes["type"]
	if !ok || v.Kind != AttrScalar {
		return ""
	}
	s, _ := v.Scalar.(string)
	return s
}

// Net is an electrical equivalence class over pins.
type Net struct {
	// Name is the stable, globally-unique key this net is stored under
	// in Schematic.Nets. May be empty transiently during flattening,
	// before name derivation (§9) assigns a final name.
	Name string

	ID NetID

	// Ports lists every pin-level PortRef belonging to this net, in the
	// order they were connected during elaboration. Order matters: the
	// router's star topology anchors at Ports[0].
	Ports []PortRef

	// Properties carries optional symbol metadata (symbol_name,
	// symbol_path) and any other source-supplied net properties.
	Properties map[string]AttributeValue
}

// Routable reports whether a net has enough terminals to route (§3: a
// net with fewer than 2 ports is retained but never emitted to the
// router).
func (n *Net) Routable() bool {
	return len(n.Ports) >= 2
}

// Schematic is the flat, read-only (after elaboration) graph the
// evaluator layer hands to the rest of the core.
type Schematic struct {
	RootRef InstanceRef

	Instances map[InstanceRef]*Instance
	Nets      map[string]*Net
}

// NewSchematic returns an empty Schematic rooted at root.
func NewSchematic(root InstanceRef) *Schematic {
	return &Schematic{
		RootRef:   root,
		Instances: make(map[InstanceRef]*Instance),
		Nets:      make(map[string]*Net),
	}
}

// Components returns the refs of every Kind==KindComponent instance,
// sorted by CompareRefs for deterministic iteration.
func (s *Schematic) Components() []InstanceRef {
	out := make([]InstanceRef, 0, len(s.Instances))
	for ref, inst := range s.Instances {
		if inst.Kind == KindComponent {
			out = append(out, ref)
		}
	}
	sort.Slice(out, func(i, j int) bool { return CompareRefs(out[i], out[j]) })
	return out
}

// SortedNetNames returns the keys of s.Nets in ascending order.
func (s *Schematic) SortedNetNames() []string {
	out := make([]string, 0, len(s.Nets))
	for name := range s.Nets {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// RoutableNets returns the nets with Ports cardinality >= 2, sorted by
// name for deterministic default ordering (the router's priority pass
// re-sorts by port count then name; see pkg/router).
func (s *Schematic) RoutableNets() []*Net {
	names := s.SortedNetNames()
	out := make([]*Net, 0, len(names))
	for _, name := range names {
		if n := s.Nets[name]; n.Routable() {
			out = append(out, n)
		}
	}
	return out
}
