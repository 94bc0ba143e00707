package goGuard

import (
	"context"
	"errors"
	"testing"

	"github.com/MrEthical07/goGuard/rolebits"
)

func TestRoleGrantRevokeRoundTrip(t *testing.T) {
	engine := newMemoryEngine(t, "alice")
	ctx := callerCtx("alice")

	success, err := engine.GrantRoles(ctx, []uint8{3, 5}, "bob")
	if err != nil {
		t.Fatalf("GrantRoles failed: %v", err)
	}
	for i, ok := range success {
		if !ok {
			t.Fatalf("expected entry %d granted", i)
		}
	}

	mask, err := engine.GetUserRoles(ctx, "bob")
	if err != nil {
		t.Fatalf("GetUserRoles failed: %v", err)
	}
	if mask != rolebits.Mask(0b101000) {
		t.Fatalf("expected mask 0b101000, got %b", mask)
	}

	if _, err := engine.RevokeRoles(ctx, []uint8{3}, "bob"); err != nil {
		t.Fatalf("RevokeRoles failed: %v", err)
	}

	mask, err = engine.GetUserRoles(ctx, "bob")
	if err != nil {
		t.Fatalf("GetUserRoles failed: %v", err)
	}
	if mask != rolebits.Mask(0b100000) {
		t.Fatalf("expected mask 0b100000, got %b", mask)
	}
}

func TestRoleBatchOutOfRangeEntriesFail(t *testing.T) {
	engine := newMemoryEngine(t, "alice")
	ctx := callerCtx("alice")

	success, err := engine.GrantRoles(ctx, []uint8{2, 40, 31, 32}, "bob")
	if err != nil {
		t.Fatalf("GrantRoles failed: %v", err)
	}
	want := []bool{true, false, true, false}
	for i := range want {
		if success[i] != want[i] {
			t.Fatalf("entry %d: expected %v, got %v", i, want[i], success[i])
		}
	}

	has, err := engine.UserHasRole(ctx, 31, "bob")
	if err != nil {
		t.Fatalf("UserHasRole failed: %v", err)
	}
	if !has {
		t.Fatal("expected role 31 granted")
	}
}

func TestRoleGrantByUnauthorizedCallerFailsPerEntry(t *testing.T) {
	engine := newMemoryEngine(t, "alice")

	success, err := engine.GrantRoles(callerCtx("mallory"), []uint8{1, 2}, "bob")
	if err != nil {
		t.Fatalf("GrantRoles failed: %v", err)
	}
	for i, ok := range success {
		if ok {
			t.Fatalf("entry %d: expected denial for unauthorized caller", i)
		}
	}

	mask, err := engine.GetUserRoles(context.Background(), "bob")
	if err != nil {
		t.Fatalf("GetUserRoles failed: %v", err)
	}
	if mask != 0 {
		t.Fatalf("expected bob unchanged, got mask %b", mask)
	}
}

func TestRoleDelegationThroughMatrix(t *testing.T) {
	engine := newMemoryEngine(t, "alice")
	owner := callerCtx("alice")

	// Holders of role 2 may manage role 7.
	if err := engine.SetRoleAdmins(owner, 7, []uint8{2}); err != nil {
		t.Fatalf("SetRoleAdmins failed: %v", err)
	}
	if _, err := engine.GrantRoles(owner, []uint8{2}, "carol"); err != nil {
		t.Fatalf("GrantRoles failed: %v", err)
	}

	// carol is not an admin but holds role 2, so she can grant role 7.
	success, err := engine.GrantRoles(callerCtx("carol"), []uint8{7}, "bob")
	if err != nil {
		t.Fatalf("GrantRoles failed: %v", err)
	}
	if !success[0] {
		t.Fatal("expected delegated grant of role 7 to succeed")
	}

	// Delegation is per role: carol cannot manage role 6.
	success, err = engine.GrantRoles(callerCtx("carol"), []uint8{6}, "bob")
	if err != nil {
		t.Fatalf("GrantRoles failed: %v", err)
	}
	if success[0] {
		t.Fatal("expected grant of undelegated role 6 to fail")
	}

	// Revocation uses the same authorization path.
	success, err = engine.RevokeRoles(callerCtx("carol"), []uint8{7}, "bob")
	if err != nil {
		t.Fatalf("RevokeRoles failed: %v", err)
	}
	if !success[0] {
		t.Fatal("expected delegated revoke of role 7 to succeed")
	}
}

func TestSetRoleAdminsRequiresAdmin(t *testing.T) {
	engine := newMemoryEngine(t, "alice")

	if err := engine.SetRoleAdmins(callerCtx("mallory"), 7, []uint8{2}); !errors.Is(err, ErrNotAdmin) {
		t.Fatalf("expected ErrNotAdmin, got %v", err)
	}
	if err := engine.RevokeRoleAdmins(callerCtx("mallory"), 7, []uint8{2}); !errors.Is(err, ErrNotAdmin) {
		t.Fatalf("expected ErrNotAdmin, got %v", err)
	}
}

func TestRoleAdminsRowRoundTrip(t *testing.T) {
	engine := newMemoryEngine(t, "alice")
	ctx := callerCtx("alice")

	if err := engine.SetRoleAdmins(ctx, 7, []uint8{2, 4}); err != nil {
		t.Fatalf("SetRoleAdmins failed: %v", err)
	}

	row, err := engine.RoleAdmins(ctx, 7)
	if err != nil {
		t.Fatalf("RoleAdmins failed: %v", err)
	}
	if row != rolebits.Mask(0b10100) {
		t.Fatalf("expected row 0b10100, got %b", row)
	}

	if err := engine.RevokeRoleAdmins(ctx, 7, []uint8{2}); err != nil {
		t.Fatalf("RevokeRoleAdmins failed: %v", err)
	}

	row, err = engine.RoleAdmins(ctx, 7)
	if err != nil {
		t.Fatalf("RoleAdmins failed: %v", err)
	}
	if row != rolebits.Mask(0b10000) {
		t.Fatalf("expected row 0b10000, got %b", row)
	}
}

func TestSetRoleAdminsOutOfRangeIsNoOp(t *testing.T) {
	engine := newMemoryEngine(t, "alice")
	ctx := callerCtx("alice")

	// Out-of-range target role: accepted silently, nothing written.
	if err := engine.SetRoleAdmins(ctx, 40, []uint8{2}); err != nil {
		t.Fatalf("expected silent no-op for out-of-range role, got %v", err)
	}

	row, err := engine.RoleAdmins(ctx, 40)
	if err != nil {
		t.Fatalf("RoleAdmins failed: %v", err)
	}
	if row != 0 {
		t.Fatalf("expected empty row for out-of-range role, got %b", row)
	}

	// Out-of-range admin roles are dropped from the folded mask.
	if err := engine.SetRoleAdmins(ctx, 7, []uint8{2, 40}); err != nil {
		t.Fatalf("SetRoleAdmins failed: %v", err)
	}
	row, err = engine.RoleAdmins(ctx, 7)
	if err != nil {
		t.Fatalf("RoleAdmins failed: %v", err)
	}
	if row != rolebits.Mask(0b100) {
		t.Fatalf("expected only role 2 folded in, got %b", row)
	}
}

func TestSelfManagingRoleIsLegal(t *testing.T) {
	engine := newMemoryEngine(t, "alice")
	owner := callerCtx("alice")

	if err := engine.SetRoleAdmins(owner, 5, []uint8{5}); err != nil {
		t.Fatalf("SetRoleAdmins failed: %v", err)
	}
	if _, err := engine.GrantRoles(owner, []uint8{5}, "carol"); err != nil {
		t.Fatalf("GrantRoles failed: %v", err)
	}

	success, err := engine.GrantRoles(callerCtx("carol"), []uint8{5}, "bob")
	if err != nil {
		t.Fatalf("GrantRoles failed: %v", err)
	}
	if !success[0] {
		t.Fatal("expected self-managing role holder to grant it onward")
	}
}

func TestRoleGuards(t *testing.T) {
	engine := newMemoryEngine(t, "alice")
	owner := callerCtx("alice")

	if _, err := engine.GrantRoles(owner, []uint8{3}, "bob"); err != nil {
		t.Fatalf("GrantRoles failed: %v", err)
	}

	bob := callerCtx("bob")
	if err := engine.HasRole(bob, 3); err != nil {
		t.Fatalf("HasRole failed for holder: %v", err)
	}
	if err := engine.HasRole(bob, 4); !errors.Is(err, ErrRoleUnauthorized) {
		t.Fatalf("expected ErrRoleUnauthorized, got %v", err)
	}
	if err := engine.HasRolesAll(bob, []uint8{3, 4}); !errors.Is(err, ErrRoleUnauthorized) {
		t.Fatalf("expected ErrRoleUnauthorized, got %v", err)
	}
	if err := engine.HasRolesAny(bob, []uint8{3, 4}); err != nil {
		t.Fatalf("HasRolesAny failed: %v", err)
	}
}

func TestRoleCheckVacuousSemantics(t *testing.T) {
	engine := newMemoryEngine(t, "alice")
	ctx := context.Background()

	all, err := engine.UserHasRolesAll(ctx, nil, "nobody")
	if err != nil {
		t.Fatalf("UserHasRolesAll failed: %v", err)
	}
	if !all {
		t.Fatal("expected empty all-of check to pass vacuously")
	}

	any, err := engine.UserHasRolesAny(ctx, nil, "nobody")
	if err != nil {
		t.Fatalf("UserHasRolesAny failed: %v", err)
	}
	if any {
		t.Fatal("expected empty any-of check to fail vacuously")
	}
}

func TestUngrantedIdentityHasEmptyMask(t *testing.T) {
	engine := newMemoryEngine(t, "alice")

	mask, err := engine.GetUserRoles(context.Background(), "stranger")
	if err != nil {
		t.Fatalf("GetUserRoles failed: %v", err)
	}
	if mask != 0 {
		t.Fatalf("expected empty mask, got %b", mask)
	}
}
