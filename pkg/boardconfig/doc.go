// Package boardconfig holds the YAML-driven tuning parameters shared by
// the placer, router, and renderer: board defaults, the simulated
// annealing schedule, grid resolution, and rendering options.
//
// Config.Hash is the canonical-form digest fed into pkg/boardrng's
// per-stage seed derivation, so two runs with identical configuration
// (down to field order, since hashing goes through YAML re-encoding)
// produce bit-identical output.
package boardconfig
