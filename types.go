package goGuard

import (
	"fmt"

	"github.com/MrEthical07/goGuard/rolebits"
)

// Identity is an opaque, comparable principal value identifying a caller.
// The zero value ("") means "no identity" and is how an absent owner or a
// cancelled pending transfer is represented.
//
//	Docs: docs/identity.md
type Identity string

// Anonymous is the distinguished sentinel for unauthenticated callers.
// Ownership and admin membership can never be assigned to it.
const Anonymous Identity = "anonymous"

// IsZero reports whether the identity is absent.
func (id Identity) IsZero() bool {
	return id == ""
}

// IsAnonymous reports whether the identity is the anonymous sentinel.
func (id Identity) IsAnonymous() bool {
	return id == Anonymous
}

// Ownership is the result of [Engine.OwnerAndPendingOwner]. A zero Owner
// means ownership has been renounced; a zero PendingOwner means no transfer
// is in flight.
type Ownership struct {
	Owner        Identity
	PendingOwner Identity
}

// accessRecord is the durable ownership/admin record, persisted as a single
// slot. Mutations are read-modify-write on a decoded copy followed by one
// commit (see Engine.mu).
type accessRecord struct {
	Owner        Identity        `json:"owner"`
	PendingOwner Identity        `json:"pending_owner"`
	Admins       []Identity      `json:"admins"`
	RoleAdmins   rolebits.Matrix `json:"role_admins"`
}

func (r *accessRecord) isAdmin(id Identity) bool {
	for _, a := range r.Admins {
		if a == id {
			return true
		}
	}
	return false
}

// globalFlags is the durable flags record. Only Paused is part of the guard
// surface; the remaining fields are service bookkeeping carried alongside it.
type globalFlags struct {
	Paused           bool   `json:"paused"`
	AuditInitialized bool   `json:"audit_initialized"`
	LogIndex         uint64 `json:"log_index"`
	TraceIndex       uint64 `json:"trace_index"`
	StoragePageEnd   uint64 `json:"storage_page_end"`
}

// Lifecycle is the durable version record maintained by [Engine.OnUpgrade].
//
//	Docs: docs/lifecycle.md
type Lifecycle struct {
	SchemaVersion uint16 `json:"schema_version"`
	VersionMajor  uint16 `json:"version_major"`
	VersionMinor  uint16 `json:"version_minor"`
	VersionPatch  uint16 `json:"version_patch"`
	LastUpgraded  int64  `json:"last_upgraded"`
	BuildVersion  uint64 `json:"build_version"`
}

// String renders the record as "v<maj>.<min>.<patch>,build_v<n>,schema_v<n>,<sec>.<ns>".
func (l Lifecycle) String() string {
	return fmt.Sprintf(
		"v%d.%d.%d,build_v%d,schema_v%d,%d.%09d",
		l.VersionMajor,
		l.VersionMinor,
		l.VersionPatch,
		l.BuildVersion,
		l.SchemaVersion,
		l.LastUpgraded/1_000_000_000,
		l.LastUpgraded%1_000_000_000,
	)
}
