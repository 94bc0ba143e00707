package goGuard

import "errors"

var (
	// ErrEngineNotReady is an exported constant or variable used by the guard engine.
	ErrEngineNotReady = errors.New("engine not ready")
	// ErrNotOwner is an exported constant or variable used by the guard engine.
	ErrNotOwner = errors.New("caller is not the owner")
	// ErrNotAdmin is an exported constant or variable used by the guard engine.
	ErrNotAdmin = errors.New("caller is not an admin")
	// ErrNoPendingOwner is an exported constant or variable used by the guard engine.
	ErrNoPendingOwner = errors.New("no pending owner")
	// ErrNotPendingOwner is an exported constant or variable used by the guard engine.
	ErrNotPendingOwner = errors.New("only pending owner can accept ownership")
	// ErrAnonymousIdentity is an exported constant or variable used by the guard engine.
	ErrAnonymousIdentity = errors.New("anonymous identity not allowed")
	// ErrRoleUnauthorized is an exported constant or variable used by the guard engine.
	ErrRoleUnauthorized = errors.New("caller lacks required role")
	// ErrPaused is an exported constant or variable used by the guard engine.
	ErrPaused = errors.New("engine is paused")
	// ErrNotPaused is an exported constant or variable used by the guard engine.
	ErrNotPaused = errors.New("engine is not paused")
	// ErrReentrantCall is an exported constant or variable used by the guard engine.
	ErrReentrantCall = errors.New("reentrant call")
	// ErrStoreUnavailable is an exported constant or variable used by the guard engine.
	ErrStoreUnavailable = errors.New("durable store unavailable")
)
