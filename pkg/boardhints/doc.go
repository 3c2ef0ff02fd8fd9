// Package boardhints defines the boundary between the deterministic
// core and an external advisory oracle: a pure function from Schematic
// to placement hints, routing priorities, and free-form reasoning text.
//
// The oracle's own protocol (HTTP calls, prompt construction, LLM
// response parsing) is explicitly out of scope — Adapter is the only
// contract the core depends on, and the core must tolerate an Adapter
// that fails by proceeding with empty hints.
package boardhints
