package rolebits

// MaxRoles is the fixed role capacity. Role indices are in [0, MaxRoles).
const MaxRoles = 32

// Mask is a 32-bit role bitmask: bit i set means role i is held.
type Mask uint32

// Valid reports whether role is a usable role index.
func Valid(role uint8) bool {
	return role < MaxRoles
}

// Has reports whether the role bit is set. Out-of-range indices report false.
func (m Mask) Has(role uint8) bool {
	if !Valid(role) {
		return false
	}
	return m&(1<<role) != 0
}

// Set returns the mask with the role bit set. Out-of-range indices are a no-op.
func (m Mask) Set(role uint8) Mask {
	if !Valid(role) {
		return m
	}
	return m | (1 << role)
}

// Clear returns the mask with the role bit cleared. Out-of-range indices are a no-op.
func (m Mask) Clear(role uint8) Mask {
	if !Valid(role) {
		return m
	}
	return m &^ (1 << role)
}

// HasAll reports whether every listed role bit is set. Vacuously true for an
// empty list.
func (m Mask) HasAll(roles []uint8) bool {
	for _, role := range roles {
		if !m.Has(role) {
			return false
		}
	}
	return true
}

// HasAny reports whether at least one listed role bit is set. Vacuously false
// for an empty list.
func (m Mask) HasAny(roles []uint8) bool {
	for _, role := range roles {
		if m.Has(role) {
			return true
		}
	}
	return false
}

// Intersects reports whether the two masks share any set bit.
func (m Mask) Intersects(other Mask) bool {
	return m&other != 0
}

// Raw returns the mask as a plain uint32.
func (m Mask) Raw() uint32 {
	return uint32(m)
}

// Fold collapses a role index list into a mask. Out-of-range indices are
// dropped silently.
func Fold(roles []uint8) Mask {
	var m Mask
	for _, role := range roles {
		m = m.Set(role)
	}
	return m
}
