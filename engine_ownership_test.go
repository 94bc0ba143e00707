package goGuard

import (
	"context"
	"errors"
	"testing"
)

func newMemoryEngine(t *testing.T, owner Identity) *Engine {
	t.Helper()

	engine, err := New().
		WithMemoryStorage().
		WithOwner(owner).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(engine.Close)

	return engine
}

func callerCtx(id Identity) context.Context {
	return WithCaller(context.Background(), id)
}

func TestTwoStepTransferKeepsOwnerUntilAccept(t *testing.T) {
	engine := newMemoryEngine(t, "alice")
	ctx := callerCtx("alice")

	if err := engine.TransferOwnership(ctx, "bob"); err != nil {
		t.Fatalf("TransferOwnership failed: %v", err)
	}

	state, err := engine.OwnerAndPendingOwner(ctx)
	if err != nil {
		t.Fatalf("OwnerAndPendingOwner failed: %v", err)
	}
	if state.Owner != "alice" {
		t.Fatalf("expected owner alice before accept, got %q", state.Owner)
	}
	if state.PendingOwner != "bob" {
		t.Fatalf("expected pending owner bob, got %q", state.PendingOwner)
	}

	if err := engine.AcceptOwnership(callerCtx("bob")); err != nil {
		t.Fatalf("AcceptOwnership failed: %v", err)
	}

	state, err = engine.OwnerAndPendingOwner(ctx)
	if err != nil {
		t.Fatalf("OwnerAndPendingOwner failed: %v", err)
	}
	if state.Owner != "bob" {
		t.Fatalf("expected owner bob after accept, got %q", state.Owner)
	}
	if !state.PendingOwner.IsZero() {
		t.Fatalf("expected pending owner cleared, got %q", state.PendingOwner)
	}
}

func TestTransferZeroIdentityCancelsPending(t *testing.T) {
	engine := newMemoryEngine(t, "alice")
	ctx := callerCtx("alice")

	if err := engine.TransferOwnership(ctx, "bob"); err != nil {
		t.Fatalf("TransferOwnership failed: %v", err)
	}
	if err := engine.TransferOwnership(ctx, ""); err != nil {
		t.Fatalf("cancel transfer failed: %v", err)
	}

	if err := engine.AcceptOwnership(callerCtx("bob")); !errors.Is(err, ErrNoPendingOwner) {
		t.Fatalf("expected ErrNoPendingOwner after cancel, got %v", err)
	}
}

func TestAcceptOwnershipRequiresPendingOwner(t *testing.T) {
	engine := newMemoryEngine(t, "alice")

	if err := engine.AcceptOwnership(callerCtx("bob")); !errors.Is(err, ErrNoPendingOwner) {
		t.Fatalf("expected ErrNoPendingOwner, got %v", err)
	}

	if err := engine.TransferOwnership(callerCtx("alice"), "bob"); err != nil {
		t.Fatalf("TransferOwnership failed: %v", err)
	}
	if err := engine.AcceptOwnership(callerCtx("mallory")); !errors.Is(err, ErrNotPendingOwner) {
		t.Fatalf("expected ErrNotPendingOwner, got %v", err)
	}
}

func TestTransferByNonOwnerFails(t *testing.T) {
	engine := newMemoryEngine(t, "alice")

	if err := engine.TransferOwnership(callerCtx("bob"), "bob"); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if err := engine.TransferOwnershipImmediate(callerCtx("bob"), "bob"); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
}

func TestTransferToAnonymousRejected(t *testing.T) {
	engine := newMemoryEngine(t, "alice")
	ctx := callerCtx("alice")

	if err := engine.TransferOwnership(ctx, Anonymous); !errors.Is(err, ErrAnonymousIdentity) {
		t.Fatalf("expected ErrAnonymousIdentity, got %v", err)
	}
	if err := engine.TransferOwnershipImmediate(ctx, Anonymous); !errors.Is(err, ErrAnonymousIdentity) {
		t.Fatalf("expected ErrAnonymousIdentity, got %v", err)
	}

	// Authorization is checked before the target: a non-owner naming the
	// sentinel fails as not-owner.
	if err := engine.TransferOwnership(callerCtx("mallory"), Anonymous); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner for non-owner caller, got %v", err)
	}
}

func TestImmediateTransferSkipsAccept(t *testing.T) {
	engine := newMemoryEngine(t, "alice")

	if err := engine.TransferOwnershipImmediate(callerCtx("alice"), "bob"); err != nil {
		t.Fatalf("TransferOwnershipImmediate failed: %v", err)
	}

	owner, err := engine.Owner(context.Background())
	if err != nil {
		t.Fatalf("Owner failed: %v", err)
	}
	if owner != "bob" {
		t.Fatalf("expected owner bob, got %q", owner)
	}
}

func TestImmediateTransferClearsPending(t *testing.T) {
	engine := newMemoryEngine(t, "alice")
	ctx := callerCtx("alice")

	if err := engine.TransferOwnership(ctx, "bob"); err != nil {
		t.Fatalf("TransferOwnership failed: %v", err)
	}
	if err := engine.TransferOwnershipImmediate(ctx, "carol"); err != nil {
		t.Fatalf("TransferOwnershipImmediate failed: %v", err)
	}

	pending, err := engine.PendingOwner(context.Background())
	if err != nil {
		t.Fatalf("PendingOwner failed: %v", err)
	}
	if !pending.IsZero() {
		t.Fatalf("expected pending owner cleared, got %q", pending)
	}
}

func TestRenounceOwnershipIsTerminal(t *testing.T) {
	engine := newMemoryEngine(t, "alice")
	ctx := callerCtx("alice")

	if err := engine.RenounceOwnership(ctx); err != nil {
		t.Fatalf("RenounceOwnership failed: %v", err)
	}

	owner, err := engine.Owner(context.Background())
	if err != nil {
		t.Fatalf("Owner failed: %v", err)
	}
	if !owner.IsZero() {
		t.Fatalf("expected zero owner, got %q", owner)
	}

	isOwner, err := engine.IsOwner(context.Background(), "")
	if err != nil {
		t.Fatalf("IsOwner failed: %v", err)
	}
	if isOwner {
		t.Fatal("zero identity must never pass the owner check")
	}

	// Every reassignment path requires being the owner.
	if err := engine.TransferOwnership(ctx, "bob"); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner after renounce, got %v", err)
	}
	if err := engine.RenounceOwnership(ctx); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner on second renounce, got %v", err)
	}
}

func TestOnlyOwnerGuard(t *testing.T) {
	engine := newMemoryEngine(t, "alice")

	if err := engine.OnlyOwner(callerCtx("alice")); err != nil {
		t.Fatalf("OnlyOwner failed for owner: %v", err)
	}
	if err := engine.OnlyOwner(callerCtx("bob")); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if err := engine.OnlyOwner(context.Background()); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner for anonymous caller, got %v", err)
	}
}
