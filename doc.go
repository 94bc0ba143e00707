// Package goGuard provides a permission and execution-guard engine for
// long-lived stateful services: single-owner two-step ownership transfer, an
// owner-managed admin set, a 32-role bitflag capability engine with a
// role-admin delegation matrix, a pausable gate, and a per-caller reentrancy
// guard.
//
// State is persisted through the store.Cell and store.Map abstractions
// (Redis-backed in production, in-memory for tests), so permission decisions
// survive process restarts. Engine methods resolve the acting caller from the
// request context ([WithCaller]) and are safe to call from multiple
// goroutines after initialization through [Builder.Build].
package goGuard
