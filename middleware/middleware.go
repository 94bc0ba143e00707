package middleware

import (
	"errors"
	"net/http"
	"strings"

	goGuard "github.com/MrEthical07/goGuard"
	"github.com/MrEthical07/goGuard/token"
)

// Caller resolves the bearer identity token on each request and attaches the
// verified identity to the request context. Requests without a valid token
// proceed as [goGuard.Anonymous]; downstream guards decide whether that is
// acceptable.
func Caller(manager *token.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok || manager == nil {
				next.ServeHTTP(w, r)
				return
			}

			subject, err := manager.Verify(raw)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := goGuard.WithCaller(r.Context(), goGuard.Identity(subject))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireOwner rejects requests whose caller is not the current owner.
func RequireOwner(engine *goGuard.Engine) func(http.Handler) http.Handler {
	return requireGuard(engine, func(r *http.Request) error {
		return engine.OnlyOwner(r.Context())
	})
}

// RequireAdmin rejects requests whose caller is not a member of the admin set.
func RequireAdmin(engine *goGuard.Engine) func(http.Handler) http.Handler {
	return requireGuard(engine, func(r *http.Request) error {
		return engine.OnlyAdmin(r.Context())
	})
}

// RequireRoles rejects requests whose caller does not hold every listed role.
func RequireRoles(engine *goGuard.Engine, roles ...uint8) func(http.Handler) http.Handler {
	return requireGuard(engine, func(r *http.Request) error {
		return engine.HasRolesAll(r.Context(), roles)
	})
}

// NotPaused rejects requests with 503 while the engine is paused.
func NotPaused(engine *goGuard.Engine) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				http.Error(w, "service unavailable", http.StatusServiceUnavailable)
				return
			}
			if err := engine.WhenNotPaused(r.Context()); err != nil {
				http.Error(w, "service unavailable", http.StatusServiceUnavailable)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func requireGuard(engine *goGuard.Engine, check func(*http.Request) error) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			err := check(r)
			switch {
			case err == nil:
				next.ServeHTTP(w, r)
			case errors.Is(err, goGuard.ErrNotOwner),
				errors.Is(err, goGuard.ErrNotAdmin),
				errors.Is(err, goGuard.ErrRoleUnauthorized):
				http.Error(w, "forbidden", http.StatusForbidden)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
		})
	}
}

func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	tok := value[len(bearer):]
	if tok == "" {
		return "", false
	}

	return tok, true
}
