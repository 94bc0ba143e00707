package goGuard

import (
	"context"
	"strconv"
	"strings"

	"github.com/MrEthical07/goGuard/rolebits"
)

/*
====================================
ROLE GRANT / REVOKE
====================================
*/

// GrantRoles sets the requested role bits on the target identity and returns
// a per-role success flag in input order. A role is granted when the caller
// is an admin, or when a role the caller currently holds appears in the
// delegation matrix row for that role. Out-of-range indices (>= 32) and
// unauthorized entries yield false at their position without aborting the
// batch.
//
// Re-granting an already-held role reports true for an authorized caller and
// false for an unauthorized one, regardless of prior state.
func (e *Engine) GrantRoles(ctx context.Context, roles []uint8, target Identity) ([]bool, error) {
	return e.updateRoles(ctx, roles, target, true)
}

// RevokeRoles clears the requested role bits on the target identity.
// Authorization and per-entry semantics mirror [Engine.GrantRoles].
func (e *Engine) RevokeRoles(ctx context.Context, roles []uint8, target Identity) ([]bool, error) {
	return e.updateRoles(ctx, roles, target, false)
}

func (e *Engine) updateRoles(ctx context.Context, roles []uint8, target Identity, grant bool) ([]bool, error) {
	caller := CallerFromContext(ctx)
	event := auditEventRolesRevoke
	if grant {
		event = auditEventRolesGrant
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	rec, err := e.loadAccess(ctx)
	if err != nil {
		e.emitAudit(ctx, event, false, target, err, nil)
		return nil, err
	}

	callerMask, err := e.maskOf(ctx, caller)
	if err != nil {
		e.emitAudit(ctx, event, false, target, err, nil)
		return nil, err
	}

	targetMask, err := e.maskOf(ctx, target)
	if err != nil {
		e.emitAudit(ctx, event, false, target, err, nil)
		return nil, err
	}

	callerIsAdmin := rec.isAdmin(caller)

	success := make([]bool, 0, len(roles))
	granted := 0
	for _, role := range roles {
		authorized := rolebits.Valid(role) &&
			(callerIsAdmin || rec.RoleAdmins.IsAdmin(callerMask, role))
		if !authorized {
			success = append(success, false)
			e.metricInc(MetricRoleDenied)
			continue
		}

		if grant {
			targetMask = targetMask.Set(role)
			e.metricInc(MetricRoleGranted)
		} else {
			targetMask = targetMask.Clear(role)
			e.metricInc(MetricRoleRevoked)
		}
		success = append(success, true)
		granted++
	}

	// A zero mask is retained rather than pruning the entry, matching the
	// single-write commit discipline.
	if err := e.commitMask(ctx, target, targetMask); err != nil {
		e.emitAudit(ctx, event, false, target, err, nil)
		return nil, err
	}

	e.emitAudit(ctx, event, true, target, nil, func() map[string]string {
		return map[string]string{
			"roles":   formatRoles(roles),
			"applied": strconv.Itoa(granted),
		}
	})

	return success, nil
}

func formatRoles(roles []uint8) string {
	var b strings.Builder
	for i, role := range roles {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(int(role)))
	}
	return b.String()
}

/*
====================================
ROLE QUERIES
====================================
*/

// GetUserRoles returns the raw role bitmask held by an identity. Identities
// never granted a role report the empty mask.
func (e *Engine) GetUserRoles(ctx context.Context, id Identity) (rolebits.Mask, error) {
	return e.maskOf(ctx, id)
}

// UserHasRole reports whether the identity holds the role. Out-of-range
// indices report false.
func (e *Engine) UserHasRole(ctx context.Context, role uint8, id Identity) (bool, error) {
	mask, err := e.maskOf(ctx, id)
	if err != nil {
		return false, err
	}
	return mask.Has(role), nil
}

// UserHasRolesAll reports whether the identity holds every listed role.
// Vacuously true for an empty list.
func (e *Engine) UserHasRolesAll(ctx context.Context, roles []uint8, id Identity) (bool, error) {
	mask, err := e.maskOf(ctx, id)
	if err != nil {
		return false, err
	}
	return mask.HasAll(roles), nil
}

// UserHasRolesAny reports whether the identity holds at least one listed
// role. Vacuously false for an empty list.
func (e *Engine) UserHasRolesAny(ctx context.Context, roles []uint8, id Identity) (bool, error) {
	mask, err := e.maskOf(ctx, id)
	if err != nil {
		return false, err
	}
	return mask.HasAny(roles), nil
}

/*
====================================
CALLER GUARDS
====================================
*/

// HasRole is the role guard: nil when the context caller holds the role,
// [ErrRoleUnauthorized] otherwise.
//
//	Docs: docs/guards.md
func (e *Engine) HasRole(ctx context.Context, role uint8) error {
	ok, err := e.UserHasRole(ctx, role, CallerFromContext(ctx))
	if err != nil {
		return err
	}
	if !ok {
		return ErrRoleUnauthorized
	}
	return nil
}

// HasRolesAll guards on the caller holding every listed role.
func (e *Engine) HasRolesAll(ctx context.Context, roles []uint8) error {
	ok, err := e.UserHasRolesAll(ctx, roles, CallerFromContext(ctx))
	if err != nil {
		return err
	}
	if !ok {
		return ErrRoleUnauthorized
	}
	return nil
}

// HasRolesAny guards on the caller holding at least one listed role.
func (e *Engine) HasRolesAny(ctx context.Context, roles []uint8) error {
	ok, err := e.UserHasRolesAny(ctx, roles, CallerFromContext(ctx))
	if err != nil {
		return err
	}
	if !ok {
		return ErrRoleUnauthorized
	}
	return nil
}

/*
====================================
DELEGATION MATRIX
====================================
*/

// RoleAdmins returns the delegation matrix row for a role: the bitmask of
// roles authorized to grant and revoke it. Out-of-range indices return the
// empty mask.
func (e *Engine) RoleAdmins(ctx context.Context, role uint8) (rolebits.Mask, error) {
	rec, err := e.loadAccess(ctx)
	if err != nil {
		return 0, err
	}
	return rec.RoleAdmins.Admins(role), nil
}

// SetRoleAdmins OR's the listed roles into the delegation matrix row for
// role. Admin only. An out-of-range role is a bounds-checked no-op, never a
// crash. A role may be made its own admin and circular relationships are
// accepted; both are legal but operationally hazardous.
func (e *Engine) SetRoleAdmins(ctx context.Context, role uint8, adminRoles []uint8) error {
	err := e.updateRoleAdmins(ctx, role, adminRoles, true)
	e.emitAudit(ctx, auditEventRoleAdminsSet, err == nil, CallerFromContext(ctx), err, func() map[string]string {
		return map[string]string{
			"role":   strconv.Itoa(int(role)),
			"admins": formatRoles(adminRoles),
		}
	})
	return err
}

// RevokeRoleAdmins clears the listed roles from the delegation matrix row
// for role. Admin only. Same boundary policy as [Engine.SetRoleAdmins].
func (e *Engine) RevokeRoleAdmins(ctx context.Context, role uint8, adminRoles []uint8) error {
	err := e.updateRoleAdmins(ctx, role, adminRoles, false)
	e.emitAudit(ctx, auditEventRoleAdminsRevoke, err == nil, CallerFromContext(ctx), err, func() map[string]string {
		return map[string]string{
			"role":   strconv.Itoa(int(role)),
			"admins": formatRoles(adminRoles),
		}
	})
	return err
}

func (e *Engine) updateRoleAdmins(ctx context.Context, role uint8, adminRoles []uint8, grant bool) error {
	flags := rolebits.Fold(adminRoles)

	e.mu.Lock()
	defer e.mu.Unlock()

	rec, err := e.loadAccess(ctx)
	if err != nil {
		return err
	}
	if !rec.isAdmin(CallerFromContext(ctx)) {
		return ErrNotAdmin
	}

	if grant {
		rec.RoleAdmins.Grant(role, flags)
	} else {
		rec.RoleAdmins.Revoke(role, flags)
	}

	return e.commitAccess(ctx, rec)
}
