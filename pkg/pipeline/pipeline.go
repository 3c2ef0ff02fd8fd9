package pipeline

import (
	"context"
	"fmt"

	"github.com/boardgen/boardcore/pkg/boardconfig"
	"github.com/boardgen/boardcore/pkg/boardhints"
	"github.com/boardgen/boardcore/pkg/boardrng"
	"github.com/boardgen/boardcore/pkg/boardsvg"
	"github.com/boardgen/boardcore/pkg/diag"
	"github.com/boardgen/boardcore/pkg/placer"
	"github.com/boardgen/boardcore/pkg/refdes"
	"github.com/boardgen/boardcore/pkg/router"
	"github.com/boardgen/boardcore/pkg/schematic"
)

// Result is the outcome of a full Run: the schematic as assigned and
// validated, the placement, the routed nets, the rendered SVG document,
// the suggestions an advisory adapter produced (if any), and every
// diagnostic collected along the way.
type Result struct {
	Schematic   *schematic.Schematic
	Layout      *placer.Layout
	Routes      []router.RoutedPath
	SVG         []byte
	Hints       boardhints.Suggestions
	Diagnostics diag.List
}

// Runner drives the schematic -> refdes -> placement -> routing -> render
// pipeline. The zero value runs with no advisory hint adapter.
type Runner struct {
	// Hints, if set, is consulted after refdes assignment for advisory
	// placement hints and routing priorities. A failing Hints adapter
	// never aborts the run: the pipeline records an informational
	// HintIgnored diagnostic and proceeds with empty suggestions.
	Hints boardhints.Adapter
}

// Run executes the full pipeline against s using cfg, deterministically:
// the same Schematic, Config, and master seed always produce the same
// Result. Context cancellation is checked between stages and stops the
// run, returning ctx.Err().
func (r Runner) Run(ctx context.Context, s *schematic.Schematic, cfg *boardconfig.Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	var diagnostics diag.List
	configHash := cfg.Hash()

	placerRNG := boardrng.New(cfg.Seed, "placer", configHash)

	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}

	s.DeriveNetNames()
	s.CollectDiagnostics(&diagnostics)
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("schematic invalid: %w", err)
	}

	if err := refdes.Assign(s); err != nil {
		return nil, fmt.Errorf("refdes assignment failed: %w", err)
	}

	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}

	hints := r.gatherHints(s, &diagnostics)

	layout := placer.Place(s, hints.Placement, cfg, placerRNG, &diagnostics)

	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}

	routes := router.Route(s, layout, hints.Priority, cfg.Router, &diagnostics)

	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}

	svg := boardsvg.Render(layout, s, routes, cfg.Render)

	return &Result{
		Schematic:   s,
		Layout:      layout,
		Routes:      routes,
		SVG:         svg,
		Hints:       hints,
		Diagnostics: diagnostics,
	}, nil
}

// gatherHints consults the configured advisory adapter, if any, tolerating
// failure per the adapter's contract: a failure yields empty suggestions
// and an informational HintIgnored diagnostic rather than aborting the run.
func (r Runner) gatherHints(s *schematic.Schematic, diagnostics *diag.List) boardhints.Suggestions {
	if r.Hints == nil {
		return boardhints.Empty()
	}
	suggestions, err := r.Hints.Suggest(s)
	if err != nil {
		diagnostics.Add(diag.HintIgnored("*", fmt.Sprintf("advisory adapter failed: %v", err)))
		return boardhints.Empty()
	}
	return suggestions
}

func checkCancelled(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
