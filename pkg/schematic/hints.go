package schematic

// PlacementHints maps a reference designator to an advisory target
// point in board coordinates. Hints are optional input to the placer;
// unknown refdeses must be tolerated silently (surfaced only as an
// informational diagnostic by the caller, never a fatal one).
type PlacementHints map[string]Point

// RoutingPriorities is an ordered list of net names the router should
// route first, in the given order, before falling back to its default
// ordering for the remaining nets. Unknown net names must be tolerated
// silently.
type RoutingPriorities []string
