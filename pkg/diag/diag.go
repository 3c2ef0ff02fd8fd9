package diag

import "fmt"

// Severity classifies a Diagnostic per the propagation policy in spec §7:
// fatal kinds terminate the run with no result value; warnings and
// informational kinds accumulate on the returned value.
type Severity int

const (
	// Info marks a purely informational diagnostic (e.g. HintIgnored).
	Info Severity = iota
	// Warning marks a diagnostic that still returns a usable result.
	Warning
	// Error marks a fatal diagnostic; no result is returned alongside it.
	Error
)

// String returns the human-readable severity name.
func (s Severity) String() string {
	switch s {
	case Info:
		return "Info"
	case Warning:
		return "Warning"
	case Error:
		return "Error"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// Kind enumerates the fixed taxonomy from spec §7. It is a closed set:
// callers switch on Kind to decide what to do with a Diagnostic, rather
// than parsing its Message.
type Kind string

const (
	// KindSchematicInvalid means an input schematic violated a §3
	// invariant. Fatal.
	KindSchematicInvalid Kind = "SchematicInvalid"
	// KindRefdesConflict means two pinned refdeses of the same prefix
	// collided. Fatal.
	KindRefdesConflict Kind = "RefdesConflict"
	// KindPlacementNotFullyResolved means the SA placer converged with
	// residual overlap. Warning.
	KindPlacementNotFullyResolved Kind = "PlacementNotFullyResolved"
	// KindPlacementBudgetExhausted means the placer's iteration or
	// wall-clock budget ran out before convergence. Warning.
	KindPlacementBudgetExhausted Kind = "PlacementBudgetExhausted"
	// KindRouteUnresolved means A* found no path for one terminal pair
	// of a net. Warning.
	KindRouteUnresolved Kind = "RouteUnresolved"
	// KindHintIgnored means a placement hint or routing priority named
	// an unknown refdes/net. Informational.
	KindHintIgnored Kind = "HintIgnored"
)

// Diagnostic is a single typed condition raised by a pipeline stage.
// Fields beyond Kind/Severity/Message are free-form context (prefix,
// number, net, residual area, ...) kept in Fields so consumers can
// render or filter without a type switch per Kind.
type Diagnostic struct {
	Kind     Kind
	Severity Severity
	Message  string
	Fields   map[string]any
}

// Error lets Diagnostic satisfy the error interface so fatal diagnostics
// can be returned/wrapped with fmt.Errorf("...: %w", diag) directly.
func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s[%s]: %s", d.Kind, d.Severity, d.Message)
}

// New builds a Diagnostic with the given kind, severity, and message.
func New(kind Kind, severity Severity, message string, fields map[string]any) *Diagnostic {
	return &Diagnostic{Kind: kind, Severity: severity, Message: message, Fields: fields}
}

// RefdesConflict builds the fatal diagnostic for a pinned-refdes collision.
func RefdesConflict(prefix string, number int) *Diagnostic {
	return New(KindRefdesConflict, Error,
		fmt.Sprintf("pinned reference designator %s%d assigned to more than one instance", prefix, number),
		map[string]any{"prefix": prefix, "number": number})
}

// SchematicInvalid builds the fatal diagnostic for a §3 invariant violation.
func SchematicInvalid(reason string) *Diagnostic {
	return New(KindSchematicInvalid, Error, reason, nil)
}

// PlacementNotFullyResolved builds the warning for residual overlap after
// the SA placer's best-found state.
func PlacementNotFullyResolved(residualOverlapArea float64) *Diagnostic {
	return New(KindPlacementNotFullyResolved, Warning,
		fmt.Sprintf("placement did not fully resolve overlaps: residual area %.3f mm^2", residualOverlapArea),
		map[string]any{"residual_overlap_area": residualOverlapArea})
}

// PlacementBudgetExhausted builds the warning for an exhausted iteration
// or wall-clock budget.
func PlacementBudgetExhausted() *Diagnostic {
	return New(KindPlacementBudgetExhausted, Warning,
		"placement iteration/wall-clock budget exhausted before convergence", nil)
}

// RouteUnresolved builds the warning for a terminal pair A* could not
// connect.
func RouteUnresolved(net, from, to string) *Diagnostic {
	return New(KindRouteUnresolved, Warning,
		fmt.Sprintf("net %s: no path found from %s to %s", net, from, to),
		map[string]any{"net": net, "from": from, "to": to})
}

// HintIgnored builds the informational diagnostic for an advisory hint
// that named an unknown refdes or net.
func HintIgnored(refdesOrNet, reason string) *Diagnostic {
	return New(KindHintIgnored, Info,
		fmt.Sprintf("hint for %s ignored: %s", refdesOrNet, reason),
		map[string]any{"refdes_or_net": refdesOrNet, "reason": reason})
}

// List is an ordered collection of diagnostics accumulated over a
// pipeline run. Order of append is preserved; nothing is deduplicated.
type List []*Diagnostic

// Add appends a diagnostic to the list.
func (l *List) Add(d *Diagnostic) {
	*l = append(*l, d)
}

// HasErrors reports whether any diagnostic in the list is fatal.
func (l List) HasErrors() bool {
	for _, d := range l {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// OfKind returns the subset of diagnostics matching kind, in order.
func (l List) OfKind(kind Kind) List {
	out := make(List, 0, len(l))
	for _, d := range l {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}
