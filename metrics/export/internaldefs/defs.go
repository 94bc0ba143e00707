package internaldefs

import (
	goGuard "github.com/MrEthical07/goGuard"
)

// CounterDef defines a public type used by goGuard APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   goGuard.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by goGuard APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   goGuard.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the guard engine.
var CounterDefs = []CounterDef{
	{ID: goGuard.MetricOwnershipTransferStarted, Name: "goguard_ownership_transfer_started_total", Help: "Two-step ownership transfers initiated."},
	{ID: goGuard.MetricOwnershipTransferred, Name: "goguard_ownership_transferred_total", Help: "Completed ownership transfers."},
	{ID: goGuard.MetricOwnershipRenounced, Name: "goguard_ownership_renounced_total", Help: "Ownership renouncements."},
	{ID: goGuard.MetricAdminGranted, Name: "goguard_admin_granted_total", Help: "Admin grants."},
	{ID: goGuard.MetricAdminRevoked, Name: "goguard_admin_revoked_total", Help: "Admin revocations, including self-renouncements."},
	{ID: goGuard.MetricRoleGranted, Name: "goguard_role_granted_total", Help: "Individual role bits granted."},
	{ID: goGuard.MetricRoleRevoked, Name: "goguard_role_revoked_total", Help: "Individual role bits revoked."},
	{ID: goGuard.MetricRoleDenied, Name: "goguard_role_denied_total", Help: "Role grant or revoke entries denied by authorization."},
	{ID: goGuard.MetricPaused, Name: "goguard_paused_total", Help: "Pause operations."},
	{ID: goGuard.MetricResumed, Name: "goguard_resumed_total", Help: "Resume operations."},
	{ID: goGuard.MetricGuardAcquired, Name: "goguard_guard_acquired_total", Help: "Reentrancy tickets acquired."},
	{ID: goGuard.MetricReentrancyBlocked, Name: "goguard_reentrancy_blocked_total", Help: "Calls blocked by the reentrancy guard."},
}

// HistogramDefs is an exported constant or variable used by the guard engine.
var HistogramDefs = []HistogramDef{
	{ID: goGuard.MetricGuardedLatency, Name: "goguard_guarded_latency_seconds", Help: "Guarded-section latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the guard engine.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the guard engine.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets describes the normalizebuckets operation and its observable behavior.
//
// NormalizeBuckets may return an error when input validation, dependency calls, or security checks fail.
// NormalizeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets describes the cumulativebuckets operation and its observable behavior.
//
// CumulativeBuckets may return an error when input validation, dependency calls, or security checks fail.
// CumulativeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
