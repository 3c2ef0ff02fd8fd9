// Package pipeline orchestrates the full schematic-to-board run: refdes
// assignment, placement, routing, and SVG rendering, with an optional
// advisory hint pass in between. It mirrors the teacher's Generator
// pattern (a single entry point, stage-seeded RNGs derived from one
// master seed plus a config hash, and a context check between stages).
package pipeline
