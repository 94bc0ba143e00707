package rolebits

// Matrix is the role-admin delegation matrix. Matrix[i] is the bitmask of
// roles whose holders may grant and revoke role i:
//
//	Role 0: 0 0 0 ... 1 1 0 0  <- role 0 is managed by role 2 and role 3
//	Role 1: 0 0 0 ... 0 0 0 1  <- role 1 is managed by role 0
//	...
//	Role x: r31 r30 r29 ... r2 r1 r0
//
// A role may list itself as its own admin, and circular relationships
// (A manages B, B manages A) are representable. Neither is detected or
// rejected here; both are operationally hazardous.
type Matrix [MaxRoles]Mask

// Admins returns the admin mask for role. Out-of-range indices return the
// empty mask.
func (x *Matrix) Admins(role uint8) Mask {
	if !Valid(role) {
		return 0
	}
	return x[role]
}

// Grant OR's admins into role's admin mask. Out-of-range role indices are a
// bounds-checked no-op, never a panic.
func (x *Matrix) Grant(role uint8, admins Mask) {
	if !Valid(role) {
		return
	}
	x[role] |= admins
}

// Revoke clears admins from role's admin mask. Out-of-range role indices are
// a bounds-checked no-op.
func (x *Matrix) Revoke(role uint8, admins Mask) {
	if !Valid(role) {
		return
	}
	x[role] &^= admins
}

// IsAdmin reports whether any role held in callerMask administers role.
// Out-of-range indices report false.
func (x *Matrix) IsAdmin(callerMask Mask, role uint8) bool {
	if !Valid(role) {
		return false
	}
	return x[role].Intersects(callerMask)
}
