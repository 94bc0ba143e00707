package goGuard

import "context"

type callerContextKey struct{}

// WithCaller attaches the acting caller identity to ctx. Every Engine
// operation resolves its caller through this value; requests without one are
// treated as [Anonymous].
//
//	Docs: docs/identity.md
func WithCaller(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, callerContextKey{}, id)
}

// CallerFromContext returns the caller identity attached to ctx, or
// [Anonymous] when none is present. The value is stable for the duration of
// one operation.
func CallerFromContext(ctx context.Context) Identity {
	if ctx == nil {
		return Anonymous
	}

	id, _ := ctx.Value(callerContextKey{}).(Identity)
	if id.IsZero() {
		return Anonymous
	}

	return id
}
