package goGuard

import "context"

// IsPaused returns the current pause status.
func (e *Engine) IsPaused(ctx context.Context) (bool, error) {
	flags, err := e.loadFlags(ctx)
	if err != nil {
		return false, err
	}
	return flags.Paused, nil
}

// WhenNotPaused is a guard predicate for operations that must refuse
// execution while the engine is paused: nil when running, [ErrPaused] when
// paused.
//
//	Docs: docs/guards.md
func (e *Engine) WhenNotPaused(ctx context.Context) error {
	paused, err := e.IsPaused(ctx)
	if err != nil {
		return err
	}
	if paused {
		return ErrPaused
	}
	return nil
}

// WhenPaused is the inverse guard predicate: nil while paused,
// [ErrNotPaused] otherwise. Useful for maintenance-only operations.
func (e *Engine) WhenPaused(ctx context.Context) error {
	paused, err := e.IsPaused(ctx)
	if err != nil {
		return err
	}
	if !paused {
		return ErrNotPaused
	}
	return nil
}

// Pause sets the pause flag. Admin only. Pause is indefinite until an admin
// calls [Engine.Resume]; there is no automatic unpause timer.
func (e *Engine) Pause(ctx context.Context) error {
	err := e.setPaused(ctx, true)
	if err == nil {
		e.metricInc(MetricPaused)
	}
	e.emitAudit(ctx, auditEventPause, err == nil, CallerFromContext(ctx), err, nil)
	return err
}

// Resume clears the pause flag. Admin only.
func (e *Engine) Resume(ctx context.Context) error {
	err := e.setPaused(ctx, false)
	if err == nil {
		e.metricInc(MetricResumed)
	}
	e.emitAudit(ctx, auditEventResume, err == nil, CallerFromContext(ctx), err, nil)
	return err
}

func (e *Engine) setPaused(ctx context.Context, paused bool) error {
	if err := e.OnlyAdmin(ctx); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	flags, err := e.loadFlags(ctx)
	if err != nil {
		return err
	}

	flags.Paused = paused
	return e.commitFlags(ctx, flags)
}
