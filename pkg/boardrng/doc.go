// Package boardrng provides deterministic, stage-isolated random number
// generation for the placement and routing pipeline.
//
// Each pipeline stage derives its own seed from the run's master seed
// and config hash rather than sharing one global generator, so stages
// are reproducible independently of each other and of execution order.
package boardrng
