// Package levelgen implements the deterministic procedural level generator
// for manifold.space.
//
// Given a 32-bit seed, a generator configuration, and a set of difficulty
// modifiers, Generate synthesizes a connected spatial graph, partitions it
// into dimension layers, derives objectives, and (for cooperative play)
// allocates multiplayer synchronization zones.
//
// # Determinism
//
// Identical inputs yield identical output on any platform: level
// fingerprints back leaderboards and shareable level codes, so every source
// of randomness flows from a single Rand instance constructed per call.
// There is no package-level random state. Generation is a pure synchronous
// computation with no I/O; concurrent calls are safe because each owns its
// own Rand.
package levelgen
