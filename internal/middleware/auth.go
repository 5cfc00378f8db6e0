package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/smartewaste/ewaste-backend/internal/api/httpx"
	"github.com/smartewaste/ewaste-backend/internal/auth"
	"github.com/smartewaste/ewaste-backend/internal/policy"
)

type actorKey struct{}

// ActorFrom returns the authenticated caller stored by Auth.
func ActorFrom(ctx context.Context) (policy.Actor, bool) {
	a, ok := ctx.Value(actorKey{}).(policy.Actor)
	return a, ok
}

type AuthMiddleware struct {
	TM *auth.TokenManager
}

func NewAuthMiddleware(tm *auth.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{TM: tm}
}

// Require rejects requests without a valid bearer token and puts the actor
// into the request context.
func (m *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ah := r.Header.Get("Authorization")
		if ah == "" || !strings.HasPrefix(strings.ToLower(ah), "bearer ") {
			httpx.WriteError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		token := strings.TrimSpace(ah[len("Bearer "):])
		claims, err := m.TM.Parse(token)
		if err != nil {
			httpx.WriteError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		actor := policy.Actor{ID: claims.UserID, Role: claims.Role}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), actorKey{}, actor)))
	})
}
