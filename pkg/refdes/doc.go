// Package refdes assigns reference designators ("R1", "C3", "U7", ...)
// to every Component instance of a schematic that lacks one.
//
// Assignment is deterministic and single-pass: instances are grouped by
// type prefix, sorted by canonical InstanceRef, and each unassigned
// instance in a group takes the smallest positive integer not already
// occupied by a pinned refdes of the same prefix.
package refdes
