// Package store defines the durable storage collaborators the guard engine
// persists its state through: Cell, a single-value persistent slot, and Map,
// a persistent map keyed by string.
//
// The Redis implementations are the production backend; the memory
// implementations back tests and fully embedded deployments. Both are safe
// for concurrent use, but the engine additionally serializes every
// read-modify-write sequence so that no writer can interleave between a load
// and its commit.
package store
