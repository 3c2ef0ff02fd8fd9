// Package diag defines the diagnostics taxonomy shared across the
// schematic, placer, router, and render stages.
//
// Diagnostics are data, not log lines: every stage that can produce a
// warning or informational condition appends it as a value to the List
// its caller passes in (pipeline.Result.Diagnostics carries the full
// list of a run), never prints it. Fatal conditions
// are returned as plain errors instead and carry no Layout/route data.
package diag
