package schematic

import (
	"fmt"

	"github.com/boardgen/boardcore/pkg/diag"
)

// Validate checks the §3 invariants that must hold after elaboration
// and before the Schematic is handed to the placer. It returns the
// first fatal diagnostic found, wrapped as an error; callers that need
// every violation (rather than fail-fast) should use CollectDiagnostics.
func (s *Schematic) Validate() error {
	var d diag.List
	s.collectInvariantViolations(&d)
	if d.HasErrors() {
		return d[0]
	}
	return nil
}

// CollectDiagnostics runs every §3 invariant check and appends a fatal
// SchematicInvalid diagnostic per violation found, rather than stopping
// at the first one.
func (s *Schematic) CollectDiagnostics(out *diag.List) {
	s.collectInvariantViolations(out)
}

func (s *Schematic) collectInvariantViolations(out *diag.List) {
	s.checkPortRefsResolve(out)
	s.checkRefdesUniqueness(out)
	s.checkNetNameUniqueness(out)
	s.checkNetIDUniqueness(out)
}

// checkPortRefsResolve enforces: every PortRef in every Net.Ports
// resolves to an existing Instance whose parent is a Component.
func (s *Schematic) checkPortRefsResolve(out *diag.List) {
	for _, name := range s.SortedNetNames() {
		n := s.Nets[name]
		for _, port := range n.Ports {
			inst, ok := s.Instances[port]
			if !ok {
				out.Add(diag.SchematicInvalid(fmt.Sprintf(
					"net %q references unknown instance %s", n.Name, port)))
				continue
			}
			if inst.Kind != KindPin {
				out.Add(diag.SchematicInvalid(fmt.Sprintf(
					"net %q port %s does not resolve to a Pin (kind %s)", n.Name, port, inst.Kind)))
				continue
			}
			parent, ok := port.Parent()
			if !ok {
				out.Add(diag.SchematicInvalid(fmt.Sprintf(
					"net %q port %s has no parent instance", n.Name, port)))
				continue
			}
			parentInst, ok := s.Instances[parent]
			if !ok || parentInst.Kind != KindComponent {
				out.Add(diag.SchematicInvalid(fmt.Sprintf(
					"net %q port %s's parent %s is not a Component", n.Name, port, parent)))
			}
		}
	}
}

// checkRefdesUniqueness enforces: reference designators are unique
// across instances when assigned.
func (s *Schematic) checkRefdesUniqueness(out *diag.List) {
	seen := make(map[string]InstanceRef)
	for _, ref := range SortedRefs(s.Instances) {
		inst := s.Instances[ref]
		if inst.ReferenceDesignator == "" {
			continue
		}
		if prior, ok := seen[inst.ReferenceDesignator]; ok {
			out.Add(diag.SchematicInvalid(fmt.Sprintf(
				"reference designator %q assigned to both %s and %s",
				inst.ReferenceDesignator, prior, ref)))
			continue
		}
		seen[inst.ReferenceDesignator] = ref
	}
}

// checkNetNameUniqueness enforces: net names are globally unique. Since
// Nets is keyed by Name, duplicate keys cannot coexist in the map; this
// instead catches the degenerate case of an empty-string key slipping
// through before DeriveNetNames ran.
func (s *Schematic) checkNetNameUniqueness(out *diag.List) {
	for key, n := range s.Nets {
		if key == "" || n.Name == "" {
			out.Add(diag.SchematicInvalid("net with empty name reached validation; DeriveNetNames must run first"))
		}
		if key != n.Name {
			out.Add(diag.SchematicInvalid(fmt.Sprintf(
				"net stored under key %q but Name is %q", key, n.Name)))
		}
	}
}

// checkNetIDUniqueness enforces: NetIDs are unique within one
// elaboration run.
func (s *Schematic) checkNetIDUniqueness(out *diag.List) {
	seen := make(map[NetID]string)
	for _, name := range s.SortedNetNames() {
		n := s.Nets[name]
		if prior, ok := seen[n.ID]; ok {
			out.Add(diag.SchematicInvalid(fmt.Sprintf(
				"NetId %d assigned to both net %q and %q", n.ID, prior, n.Name)))
			continue
		}
		seen[n.ID] = n.Name
	}
}
