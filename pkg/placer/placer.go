package placer

import (
	"sort"

	"github.com/boardgen/boardcore/pkg/boardconfig"
	"github.com/boardgen/boardcore/pkg/boardrng"
	"github.com/boardgen/boardcore/pkg/diag"
	"github.com/boardgen/boardcore/pkg/schematic"
)

// Place runs the two-stage placement algorithm of §4.2: a deterministic
// grid seed followed by an optional simulated-annealing refinement. It
// never fails outright — an unresolved overlap or an ignored hint is
// reported as a diagnostic on diagnostics, not as an error — so the
// caller always receives a usable Layout.
//
// Unknown refdeses named in hints are reported as informational
// HintIgnored diagnostics and otherwise skipped.
func Place(s *schematic.Schematic, hints schematic.PlacementHints, cfg *boardconfig.Config, rng *boardrng.RNG, diagnostics *diag.List) *Layout {
	reportUnknownHints(s, hints, diagnostics)

	layout := GridSeed(s, cfg)
	if cfg.Placer.IterationBudget <= 0 {
		return layout
	}

	residual := Anneal(layout, s, hints, cfg.Placer, rng)
	if residual > 0 {
		diagnostics.Add(diag.PlacementNotFullyResolved(residual))
	}
	return layout
}

// reportUnknownHints emits a HintIgnored diagnostic for every refdes in
// hints that does not name a placed component.
func reportUnknownHints(s *schematic.Schematic, hints schematic.PlacementHints, diagnostics *diag.List) {
	if len(hints) == 0 {
		return
	}
	known := make(map[string]bool)
	for _, ref := range s.Components() {
		if inst := s.Instances[ref]; inst.ReferenceDesignator != "" {
			known[inst.ReferenceDesignator] = true
		}
	}
	for _, refdes := range sortedHintKeys(hints) {
		if !known[refdes] {
			diagnostics.Add(diag.HintIgnored(refdes, "no placed component carries this reference designator"))
		}
	}
}

func sortedHintKeys(hints schematic.PlacementHints) []string {
	out := make([]string, 0, len(hints))
	for k := range hints {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
