// Package router produces a RoutedPath for every net with at least two
// terminals: a uniform grid, single-source A* with a soft obstacle
// penalty, and a star-topology net ordering driven by advisory routing
// priorities.
//
// Routing is deterministic given an identical Layout, Schematic, and
// priority order: net processing order and A* tie-breaking never
// depend on map iteration.
package router
