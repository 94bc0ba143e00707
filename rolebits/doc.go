// Package rolebits implements the fixed-width bitmask arithmetic behind the
// goGuard capability engine: a 32-bit per-identity role mask and a 32x32
// role-admin delegation matrix.
//
// Role indices are uint8 but only 0-31 are meaningful. The boundary policy is
// deliberately split: mask operations targeting an out-of-range index are
// silent no-ops (reads report false), while batch grant/revoke callers are
// expected to surface a per-entry failure instead. Do not unify the two.
package rolebits
