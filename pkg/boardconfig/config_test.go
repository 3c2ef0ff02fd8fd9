package boardconfig

import (
	"bytes"
	"testing"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
}

func TestLoadConfigFromBytes_PartialOverride(t *testing.T) {
	data := []byte(`
seed: 42
placer:
  iterationBudget: 0
`)
	cfg, err := LoadConfigFromBytes(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Seed != 42 {
		t.Errorf("expected seed 42, got %d", cfg.Seed)
	}
	if cfg.Placer.IterationBudget != 0 {
		t.Errorf("expected iteration budget override to 0, got %d", cfg.Placer.IterationBudget)
	}
	// Unspecified fields retain the default.
	if cfg.Board.MarginMM != DefaultConfig().Board.MarginMM {
		t.Errorf("expected default margin to be preserved, got %v", cfg.Board.MarginMM)
	}
}

func TestLoadConfigFromBytes_InvalidRejected(t *testing.T) {
	data := []byte(`
board:
  defaultWidthMM: -10
`)
	if _, err := LoadConfigFromBytes(data); err == nil {
		t.Fatal("expected validation error for negative board width")
	}
}

func TestHashDeterministic(t *testing.T) {
	a := DefaultConfig()
	b := DefaultConfig()
	ha := a.Hash()
	hb := b.Hash()
	if !bytes.Equal(ha, hb) {
		t.Fatal("identical configs must hash identically")
	}
	b.Seed = 2
	if bytes.Equal(ha, b.Hash()) {
		t.Fatal("differing configs must hash differently")
	}
}
