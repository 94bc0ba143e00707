package goGuard

import "context"

// IsAdmin reports whether the identity is a member of the admin set.
func (e *Engine) IsAdmin(ctx context.Context, id Identity) (bool, error) {
	rec, err := e.loadAccess(ctx)
	if err != nil {
		return false, err
	}
	return rec.isAdmin(id), nil
}

// OnlyAdmin is the admin guard: it returns nil when the context caller is a
// member of the admin set and [ErrNotAdmin] otherwise.
//
//	Docs: docs/guards.md
func (e *Engine) OnlyAdmin(ctx context.Context) error {
	rec, err := e.loadAccess(ctx)
	if err != nil {
		return err
	}
	if !rec.isAdmin(CallerFromContext(ctx)) {
		return ErrNotAdmin
	}
	return nil
}

// GrantAdmin adds an identity to the admin set. Owner only. Granting an
// existing admin is a no-op, not an error. The anonymous sentinel is
// rejected.
func (e *Engine) GrantAdmin(ctx context.Context, newAdmin Identity) error {
	err := e.grantAdmin(ctx, newAdmin)
	if err == nil {
		e.metricInc(MetricAdminGranted)
	}
	e.emitAudit(ctx, auditEventAdminGrant, err == nil, newAdmin, err, nil)
	return err
}

func (e *Engine) grantAdmin(ctx context.Context, newAdmin Identity) error {
	if newAdmin.IsAnonymous() || newAdmin.IsZero() {
		return ErrAnonymousIdentity
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	rec, err := e.loadAccess(ctx)
	if err != nil {
		return err
	}
	if rec.Owner.IsZero() || rec.Owner != CallerFromContext(ctx) {
		return ErrNotOwner
	}

	if rec.isAdmin(newAdmin) {
		return nil
	}

	rec.Admins = append(rec.Admins, newAdmin)
	return e.commitAccess(ctx, rec)
}

// RevokeAdmin removes an identity from the admin set. Owner only.
// Revoking a non-member is a no-op.
func (e *Engine) RevokeAdmin(ctx context.Context, admin Identity) error {
	err := e.removeAdmin(ctx, admin, false)
	if err == nil {
		e.metricInc(MetricAdminRevoked)
	}
	e.emitAudit(ctx, auditEventAdminRevoke, err == nil, admin, err, nil)
	return err
}

// RenounceAdmin removes the caller from the admin set. The caller must
// currently be an admin.
func (e *Engine) RenounceAdmin(ctx context.Context) error {
	caller := CallerFromContext(ctx)
	err := e.removeAdmin(ctx, caller, true)
	if err == nil {
		e.metricInc(MetricAdminRevoked)
	}
	e.emitAudit(ctx, auditEventAdminRenounce, err == nil, caller, err, nil)
	return err
}

func (e *Engine) removeAdmin(ctx context.Context, admin Identity, selfService bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	rec, err := e.loadAccess(ctx)
	if err != nil {
		return err
	}

	caller := CallerFromContext(ctx)
	if selfService {
		if !rec.isAdmin(caller) {
			return ErrNotAdmin
		}
	} else if rec.Owner.IsZero() || rec.Owner != caller {
		return ErrNotOwner
	}

	kept := rec.Admins[:0]
	for _, a := range rec.Admins {
		if a != admin {
			kept = append(kept, a)
		}
	}
	rec.Admins = kept

	return e.commitAccess(ctx, rec)
}
