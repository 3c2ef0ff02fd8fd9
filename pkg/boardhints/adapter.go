package boardhints

import "github.com/boardgen/boardcore/pkg/schematic"

// Suggestions is the result of a successful Adapter call: advisory
// placement hints, a routing priority order, and the oracle's free-form
// rationale for them.
type Suggestions struct {
	Placement schematic.PlacementHints
	Priority  schematic.RoutingPriorities
	Reasoning string
}

// Adapter produces advisory Suggestions for a Schematic. An Adapter may
// fail (an unreachable oracle, a malformed response, ...); callers MUST
// proceed with empty hints rather than abort the pipeline on failure.
type Adapter interface {
	Suggest(s *schematic.Schematic) (Suggestions, error)
}

// Empty returns the zero-value Suggestions used whenever an Adapter is
// absent or fails.
func Empty() Suggestions {
	return Suggestions{}
}
