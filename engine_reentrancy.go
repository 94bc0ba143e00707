package goGuard

import (
	"context"
	"errors"
	"time"
)

// NonReentrant runs fn under the caller's reentrancy ticket. Acquisition
// fails with [ErrReentrantCall] when a ticket for the same caller is already
// outstanding — including one held by a different guarded operation that has
// suspended mid-flight. Tickets are caller-scoped, not operation-scoped: two
// distinct callers may hold tickets concurrently.
//
// The ticket is released on every exit path — normal return, error, or
// panic — so a failing fn can never lock its caller out permanently. The
// release write ignores ctx cancellation for the same reason.
//
//	Docs: docs/guards.md
func (e *Engine) NonReentrant(ctx context.Context, fn func(context.Context) error) error {
	caller := CallerFromContext(ctx)

	if err := e.acquireTicket(ctx, caller); err != nil {
		if errors.Is(err, ErrReentrantCall) {
			e.metricInc(MetricReentrancyBlocked)
			e.emitAudit(ctx, auditEventReentrancyBlocked, false, caller, err, nil)
		}
		return err
	}

	start := time.Now()
	defer func() {
		e.releaseTicket(context.WithoutCancel(ctx), caller)
		e.metricObserve(MetricGuardedLatency, time.Since(start))
	}()

	e.metricInc(MetricGuardAcquired)
	return fn(ctx)
}

func (e *Engine) acquireTicket(ctx context.Context, caller Identity) error {
	// The check and the insert must not interleave with another acquire
	// for the same caller.
	e.mu.Lock()
	defer e.mu.Unlock()

	held, err := e.guardMap.Contains(ctx, string(caller))
	if err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	if held {
		return ErrReentrantCall
	}

	if err := e.guardMap.Insert(ctx, string(caller), nil); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

func (e *Engine) releaseTicket(ctx context.Context, caller Identity) {
	// Unconditional: a stuck ticket permanently locks the caller out, so a
	// failed release is only logged through audit rather than propagated.
	if err := e.guardMap.Remove(ctx, string(caller)); err != nil {
		e.emitAudit(ctx, auditEventGuardReleaseFailed, false, caller, err, nil)
	}
}
