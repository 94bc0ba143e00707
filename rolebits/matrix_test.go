package rolebits

import "testing"

func TestMatrixGrantRevoke(t *testing.T) {
	var x Matrix

	x.Grant(7, Fold([]uint8{2}))
	if x.Admins(7) != 0b100 {
		t.Fatalf("expected role 2 to administer role 7, got %#b", x.Admins(7))
	}

	x.Grant(7, Fold([]uint8{3}))
	if x.Admins(7) != 0b1100 {
		t.Fatalf("expected roles 2,3, got %#b", x.Admins(7))
	}

	x.Revoke(7, Fold([]uint8{2}))
	if x.Admins(7) != 0b1000 {
		t.Fatalf("expected role 3 only, got %#b", x.Admins(7))
	}
}

func TestMatrixIsAdmin(t *testing.T) {
	var x Matrix
	x.Grant(7, Fold([]uint8{2}))

	if !x.IsAdmin(Fold([]uint8{2}), 7) {
		t.Fatal("holder of role 2 should administer role 7")
	}
	if x.IsAdmin(Fold([]uint8{1}), 7) {
		t.Fatal("holder of role 1 should not administer role 7")
	}
	if x.IsAdmin(0, 7) {
		t.Fatal("empty mask should never administer")
	}
}

func TestMatrixOutOfRangeIsSilentNoOp(t *testing.T) {
	var x Matrix

	// Must not panic and must not touch any row.
	x.Grant(32, 0xFFFFFFFF)
	x.Revoke(200, 0xFFFFFFFF)

	for i := range x {
		if x[i] != 0 {
			t.Fatalf("row %d mutated by out-of-range access", i)
		}
	}
	if x.Admins(32) != 0 {
		t.Fatal("Admins(32) must return empty mask")
	}
	if x.IsAdmin(0xFFFFFFFF, 32) {
		t.Fatal("IsAdmin with out-of-range role must be false")
	}
}

func TestMatrixSelfManagingRoleRepresentable(t *testing.T) {
	var x Matrix
	x.Grant(4, Fold([]uint8{4}))

	if !x.IsAdmin(Fold([]uint8{4}), 4) {
		t.Fatal("self-managing role must be representable")
	}
}
