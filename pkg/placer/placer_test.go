package placer

import (
	"fmt"
	"testing"

	"pgregory.net/rapid"

	"github.com/boardgen/boardcore/pkg/boardconfig"
	"github.com/boardgen/boardcore/pkg/boardrng"
	"github.com/boardgen/boardcore/pkg/diag"
	"github.com/boardgen/boardcore/pkg/schematic"
)

func schematicWithComponents(n int) *schematic.Schematic {
	s := schematic.NewSchematic(schematic.InstanceRef{Module: "top"})
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("c%03d", i)
		ref := schematic.NewRef("top", name)
		s.Instances[ref] = &schematic.Instance{Kind: schematic.KindComponent, ReferenceDesignator: fmt.Sprintf("U%d", i+1)}
	}
	return s
}

func TestGridSeed_Empty(t *testing.T) {
	s := schematic.NewSchematic(schematic.InstanceRef{Module: "top"})
	cfg := boardconfig.DefaultConfig()
	layout := GridSeed(s, cfg)
	if len(layout.Components) != 0 {
		t.Fatalf("expected no placed components, got %d", len(layout.Components))
	}
	if layout.Width != cfg.Board.DefaultWidthMM || layout.Height != cfg.Board.DefaultHeightMM {
		t.Fatalf("expected default board dimensions, got %vx%v", layout.Width, layout.Height)
	}
}

func TestGridSeed_NoOverlap(t *testing.T) {
	s := schematicWithComponents(17)
	cfg := boardconfig.DefaultConfig()
	layout := GridSeed(s, cfg)
	if err := layout.Validate(); err != nil {
		t.Fatalf("grid seed must never overlap or leave the board: %v", err)
	}
	if len(layout.Components) != 17 {
		t.Fatalf("expected 17 placed components, got %d", len(layout.Components))
	}
}

func TestGridSeed_Deterministic(t *testing.T) {
	s := schematicWithComponents(9)
	cfg := boardconfig.DefaultConfig()
	a := GridSeed(s, cfg)
	b := GridSeed(s, cfg)
	for i := range a.Components {
		if a.Components[i].Ref != b.Components[i].Ref || a.Components[i].Bounds != b.Components[i].Bounds {
			t.Fatalf("grid seed is not deterministic at index %d", i)
		}
	}
}

func TestPlace_SkipsAnnealWhenBudgetZero(t *testing.T) {
	s := schematicWithComponents(6)
	cfg := boardconfig.DefaultConfig()
	cfg.Placer.IterationBudget = 0
	rng := boardrng.New(cfg.Seed, "placement", cfg.Hash())
	var diags diag.List
	layout := Place(s, nil, cfg, rng, &diags)
	seed := GridSeed(s, cfg)
	for i := range layout.Components {
		if layout.Components[i].Bounds != seed.Components[i].Bounds {
			t.Fatal("with a zero iteration budget, Place must return the grid seed unchanged")
		}
	}
}

func TestPlace_NeverOverlapsAfterAnneal(t *testing.T) {
	s := schematicWithComponents(12)
	cfg := boardconfig.DefaultConfig()
	cfg.Placer.IterationBudget = 300
	rng := boardrng.New(cfg.Seed, "placement", cfg.Hash())
	var diags diag.List
	layout := Place(s, nil, cfg, rng, &diags)
	if err := layout.Validate(); err != nil {
		t.Fatalf("annealed layout must stay within the board: %v", err)
	}
}

func TestPlace_IsDeterministic(t *testing.T) {
	s := schematicWithComponents(10)
	cfg := boardconfig.DefaultConfig()
	cfg.Placer.IterationBudget = 200

	run := func() *Layout {
		rng := boardrng.New(cfg.Seed, "placement", cfg.Hash())
		var diags diag.List
		return Place(s, nil, cfg, rng, &diags)
	}
	a, b := run(), run()
	for i := range a.Components {
		if a.Components[i].Bounds != b.Components[i].Bounds {
			t.Fatalf("identical seed/config must yield bit-identical placement at index %d", i)
		}
	}
}

func TestPlace_UnknownHintReported(t *testing.T) {
	s := schematicWithComponents(3)
	cfg := boardconfig.DefaultConfig()
	cfg.Placer.IterationBudget = 0
	rng := boardrng.New(cfg.Seed, "placement", cfg.Hash())
	var diags diag.List
	hints := schematic.PlacementHints{"Q999": {X: 5, Y: 5}}
	Place(s, hints, cfg, rng, &diags)

	found := false
	for _, d := range diags.OfKind(diag.KindHintIgnored) {
		if d.Fields["refdes_or_net"] == "Q999" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a HintIgnored diagnostic for an unknown refdes")
	}
}

func TestAnneal_FrozenComponentStaysAtHint(t *testing.T) {
	s := schematicWithComponents(8)
	cfg := boardconfig.DefaultConfig()
	cfg.Placer.IterationBudget = 500
	cfg.Placer.HintFreezeEpsilonMM = 1000 // everything within range freezes immediately
	rng := boardrng.New(cfg.Seed, "placement", cfg.Hash())

	layout := GridSeed(s, cfg)
	firstRef := layout.Components[0].Ref
	inst := s.Instances[firstRef]
	target := layout.Components[0].Center()
	hints := schematic.PlacementHints{inst.ReferenceDesignator: target}

	Anneal(layout, s, hints, cfg.Placer, rng)

	placed, ok := layout.By(firstRef)
	if !ok {
		t.Fatal("expected placed component")
	}
	center := placed.Center()
	if center != target {
		t.Fatalf("frozen component moved: got %+v, want %+v", center, target)
	}
}

func TestGridSeed_PropertyNoOverlapForAnyN(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 60).Draw(t, "n")
		s := schematicWithComponents(n)
		cfg := boardconfig.DefaultConfig()
		layout := GridSeed(s, cfg)
		if err := layout.Validate(); err != nil {
			t.Fatalf("grid seed invariant violated for n=%d: %v", n, err)
		}
	})
}
