package goGuard

import "context"

// Owner returns the current owner, or the zero identity when ownership has
// been renounced.
func (e *Engine) Owner(ctx context.Context) (Identity, error) {
	rec, err := e.loadAccess(ctx)
	if err != nil {
		return "", err
	}
	return rec.Owner, nil
}

// PendingOwner returns the identity of an in-flight transfer candidate, or
// the zero identity when no transfer is pending.
func (e *Engine) PendingOwner(ctx context.Context) (Identity, error) {
	rec, err := e.loadAccess(ctx)
	if err != nil {
		return "", err
	}
	return rec.PendingOwner, nil
}

// OwnerAndPendingOwner returns both ownership fields in one read.
func (e *Engine) OwnerAndPendingOwner(ctx context.Context) (Ownership, error) {
	rec, err := e.loadAccess(ctx)
	if err != nil {
		return Ownership{}, err
	}
	return Ownership{Owner: rec.Owner, PendingOwner: rec.PendingOwner}, nil
}

// IsOwner reports whether the candidate is the current owner. Always false
// after renouncement.
func (e *Engine) IsOwner(ctx context.Context, candidate Identity) (bool, error) {
	rec, err := e.loadAccess(ctx)
	if err != nil {
		return false, err
	}
	return !rec.Owner.IsZero() && rec.Owner == candidate, nil
}

// OnlyOwner is the owner guard: it returns nil when the context caller is
// the current owner and [ErrNotOwner] otherwise. Compose it as a
// precondition of privileged operations.
//
//	Docs: docs/guards.md
func (e *Engine) OnlyOwner(ctx context.Context) error {
	rec, err := e.loadAccess(ctx)
	if err != nil {
		return err
	}
	if rec.Owner.IsZero() || rec.Owner != CallerFromContext(ctx) {
		return ErrNotOwner
	}
	return nil
}

// TransferOwnership starts a two-step ownership transfer to newOwner. Owner
// only. Ownership is unaffected until the candidate calls
// [Engine.AcceptOwnership]. Passing the zero identity cancels any pending
// transfer. The anonymous sentinel is rejected.
func (e *Engine) TransferOwnership(ctx context.Context, newOwner Identity) error {
	err := e.transferOwnership(ctx, newOwner, false)
	if err == nil {
		e.metricInc(MetricOwnershipTransferStarted)
	}
	e.emitAudit(ctx, auditEventOwnershipTransfer, err == nil, newOwner, err, func() map[string]string {
		return map[string]string{"mode": "two-step"}
	})
	return err
}

// TransferOwnershipImmediate transfers ownership in a single step. Owner
// only. There is no recourse if the wrong identity is specified; prefer
// [Engine.TransferOwnership] unless the receiving identity is structurally
// unable to call [Engine.AcceptOwnership].
func (e *Engine) TransferOwnershipImmediate(ctx context.Context, newOwner Identity) error {
	err := e.transferOwnership(ctx, newOwner, true)
	if err == nil {
		e.metricInc(MetricOwnershipTransferred)
	}
	e.emitAudit(ctx, auditEventOwnershipTransfer, err == nil, newOwner, err, func() map[string]string {
		return map[string]string{"mode": "immediate"}
	})
	return err
}

func (e *Engine) transferOwnership(ctx context.Context, newOwner Identity, immediate bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	rec, err := e.loadAccess(ctx)
	if err != nil {
		return err
	}
	// Owner check first: a non-owner naming the anonymous sentinel fails
	// authorization, not target validation.
	if rec.Owner.IsZero() || rec.Owner != CallerFromContext(ctx) {
		return ErrNotOwner
	}
	if newOwner.IsAnonymous() {
		return ErrAnonymousIdentity
	}

	if immediate {
		rec.Owner = newOwner
		rec.PendingOwner = ""
	} else {
		rec.PendingOwner = newOwner
	}

	return e.commitAccess(ctx, rec)
}

// AcceptOwnership completes a two-step transfer. The caller must be the
// pending owner; it fails with [ErrNoPendingOwner] when no transfer is in
// flight.
func (e *Engine) AcceptOwnership(ctx context.Context) error {
	caller := CallerFromContext(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()

	rec, err := e.loadAccess(ctx)
	if err != nil {
		e.emitAudit(ctx, auditEventOwnershipAccepted, false, caller, err, nil)
		return err
	}

	if rec.PendingOwner.IsZero() {
		e.emitAudit(ctx, auditEventOwnershipAccepted, false, caller, ErrNoPendingOwner, nil)
		return ErrNoPendingOwner
	}
	if rec.PendingOwner != caller {
		e.emitAudit(ctx, auditEventOwnershipAccepted, false, caller, ErrNotPendingOwner, nil)
		return ErrNotPendingOwner
	}

	rec.Owner = rec.PendingOwner
	rec.PendingOwner = ""

	if err := e.commitAccess(ctx, rec); err != nil {
		e.emitAudit(ctx, auditEventOwnershipAccepted, false, caller, err, nil)
		return err
	}

	e.metricInc(MetricOwnershipTransferred)
	e.emitAudit(ctx, auditEventOwnershipAccepted, true, caller, nil, nil)
	return nil
}

// RenounceOwnership clears the owner. Owner only. Terminal: every
// reassignment path requires being the owner, so no operation can ever set
// an owner again.
func (e *Engine) RenounceOwnership(ctx context.Context) error {
	caller := CallerFromContext(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()

	rec, err := e.loadAccess(ctx)
	if err != nil {
		e.emitAudit(ctx, auditEventOwnershipRenounced, false, caller, err, nil)
		return err
	}
	if rec.Owner.IsZero() || rec.Owner != caller {
		e.emitAudit(ctx, auditEventOwnershipRenounced, false, caller, ErrNotOwner, nil)
		return ErrNotOwner
	}

	rec.Owner = ""
	rec.PendingOwner = ""

	if err := e.commitAccess(ctx, rec); err != nil {
		e.emitAudit(ctx, auditEventOwnershipRenounced, false, caller, err, nil)
		return err
	}

	e.metricInc(MetricOwnershipRenounced)
	e.emitAudit(ctx, auditEventOwnershipRenounced, true, caller, nil, nil)
	return nil
}
