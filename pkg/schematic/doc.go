// Package schematic defines the flat netlist data model the evaluator
// layer hands to the rest of the core: instances keyed by hierarchical
// reference, nets keyed by stable name, and the invariants that must
// hold before a Schematic is handed to the placer.
//
// Schematic is immutable after elaboration: the evaluator (out of
// scope for this module) and the refdes assigner are the only writers;
// once a Schematic reaches the placer it is treated as read-only.
package schematic
