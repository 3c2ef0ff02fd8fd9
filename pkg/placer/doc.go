// Package placer produces a board Layout from a Schematic: a
// deterministic grid seed stage followed by an optional simulated-
// annealing refinement that minimizes wire length and overlap while
// respecting advisory placement hints.
//
// Both stages are deterministic: identical schematics, configuration,
// and RNG seed always produce bit-identical output.
package placer
