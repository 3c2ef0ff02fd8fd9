package refdes

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/boardgen/boardcore/pkg/diag"
	"github.com/boardgen/boardcore/pkg/schematic"
)

// typePrefixes maps a lowercased "type" attribute or module-name stem to
// its reference-designator prefix, per §4.1's type-to-prefix table.
var typePrefixes = map[string]string{
	"resistor":   "R",
	"capacitor":  "C",
	"inductor":   "L",
	"diode":      "D",
	"transistor": "Q",
	"ic":         "U",
	"generic":    "U",
}

const fallbackPrefix = "U"

var refdesPattern = regexp.MustCompile(`^([A-Za-z]+)([0-9]+)$`)

// Assign mutates every Component instance in s that lacks a
// ReferenceDesignator, giving it the smallest unused positive integer
// within its type prefix's pool. Pinned (pre-existing) refdeses occupy
// their slots first. Assign is deterministic: identical schematics
// yield identical refdes maps.
//
// Returns a fatal RefdesConflict diagnostic if two pinned refdeses of
// the same prefix collide.
func Assign(s *schematic.Schematic) error {
	groups := make(map[string][]schematic.InstanceRef)

	for _, ref := range s.Components() {
		prefix := prefixFor(ref, s.Instances[ref])
		groups[prefix] = append(groups[prefix], ref)
	}

	for prefix, refs := range groups {
		taken := make(map[int]schematic.InstanceRef)

		// First pass: register pinned refdeses and detect collisions.
		for _, ref := range refs {
			inst := s.Instances[ref]
			if inst.ReferenceDesignator == "" {
				continue
			}
			p, num, ok := parseRefdes(inst.ReferenceDesignator)
			if !ok || p != prefix {
				continue
			}
			if prior, exists := taken[num]; exists && prior != ref {
				d := diag.RefdesConflict(prefix, num)
				return fmt.Errorf("refdes assignment failed for %s and %s: %w", prior, ref, d)
			}
			taken[num] = ref
		}

		// Second pass: assign the smallest unused integer to every
		// unassigned instance in canonical order.
		next := 1
		for _, ref := range refs {
			inst := s.Instances[ref]
			if inst.ReferenceDesignator != "" {
				continue
			}
			for {
				if _, occupied := taken[next]; !occupied {
					break
				}
				next++
			}
			inst.ReferenceDesignator = fmt.Sprintf("%s%d", prefix, next)
			taken[next] = ref
			next++
		}
	}
	return nil
}

// prefixFor derives the reference-designator prefix for inst, preferring
// its "type" attribute and falling back to the defining module's name
// stem, per §4.1.
func prefixFor(ref schematic.InstanceRef, inst *schematic.Instance) string {
	if t := inst.TypeAttribute(); t != "" {
		if prefix, ok := typePrefixes[strings.ToLower(t)]; ok {
			return prefix
		}
	}
	if prefix, ok := typePrefixes[strings.ToLower(moduleStem(ref.Module))]; ok {
		return prefix
	}
	return fallbackPrefix
}

// moduleStem returns the final segment of a dotted or slashed module
// identifier, e.g. "parts.passive.Resistor" -> "Resistor".
func moduleStem(module string) string {
	module = strings.TrimRight(module, "/")
	if i := strings.LastIndexAny(module, "./"); i >= 0 {
		return module[i+1:]
	}
	return module
}

// parseRefdes splits a refdes like "R12" into its alphabetic prefix and
// numeric suffix.
func parseRefdes(s string) (prefix string, number int, ok bool) {
	m := refdesPattern.FindStringSubmatch(s)
	if m == nil {
		return "", 0, false
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return "", 0, false
	}
	return m[1], n, true
}
